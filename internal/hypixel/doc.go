// Package hypixel provides the authenticated Hypixel API client and the
// per-endpoint request parameter rules for hywatch.
//
// The main components are:
//
//   - [Client]: HTTP client with timeout, 2xx check, and JSON decoding
//   - [BuildParams]: endpoint-specific request parameter construction
//   - [APIError]: a failed fetch, recoverable by retrying next cycle
//   - [ParamError]: a misconfigured endpoint, fatal before the loop starts
//
// This package is internal to hywatch; configuration is done through the
// main hywatch package.
package hypixel
