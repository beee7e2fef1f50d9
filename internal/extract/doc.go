// Package extract evaluates JMESPath expressions against decoded JSON
// documents for hywatch.
//
// The package exists to give the evaluator one property JMESPath itself
// lacks: a query that matches nothing is distinguishable from a query that
// matches an explicit JSON null. Nulls in the document are swapped for a
// sentinel before evaluation, so a nil search result can only mean "no
// match".
//
// This package is internal to hywatch; configuration is done through the
// main hywatch package.
package extract
