package extract

import (
	"fmt"

	"github.com/jmespath/go-jmespath"
)

// Result holds one evaluation outcome.
//
// Found is false when the expression matched nothing in the document.
// A Found result with nil Data means the expression matched an explicit
// JSON null.
type Result struct {
	Data  any
	Found bool
}

// Query is a compiled JMESPath expression.
//
// A Query is immutable and safe for repeated use. The expression is
// compiled once via [Compile]; a malformed expression is a configuration
// bug and surfaces there rather than on every cycle.
type Query struct {
	expr     string
	compiled *jmespath.JMESPath
}

// Compile parses a JMESPath expression.
func Compile(expr string) (*Query, error) {
	compiled, err := jmespath.Compile(expr)
	if err != nil {
		return nil, fmt.Errorf("invalid jmespath expression %q: %w", expr, err)
	}
	return &Query{expr: expr, compiled: compiled}, nil
}

// Expression returns the source text of the compiled expression.
func (q *Query) Expression() string {
	return q.expr
}

// Search evaluates the expression against doc, a value decoded with
// encoding/json conventions (map[string]any, []any, string, float64, bool,
// nil).
//
// A nil evaluation result means the expression matched nothing and yields
// an absent [Result]. Explicit nulls in the document survive as found
// results with nil Data. Evaluator errors (type mismatches while
// navigating) are returned as-is; the caller treats them as fatal.
func (q *Query) Search(doc any) (Result, error) {
	out, err := q.compiled.Search(sentinelNulls(doc))
	if err != nil {
		return Result{}, fmt.Errorf("jmespath evaluation failed for %q: %w", q.expr, err)
	}
	if out == nil {
		return Result{}, nil
	}
	return Result{Data: restoreNulls(out), Found: true}, nil
}

// jsonNull stands in for explicit nulls during evaluation so that a nil
// search result can only mean "no match".
type jsonNull struct{}

// sentinelNulls returns a copy of doc with every nil leaf replaced by
// jsonNull. Maps and slices are copied; scalars pass through.
func sentinelNulls(doc any) any {
	switch v := doc.(type) {
	case nil:
		return jsonNull{}
	case map[string]any:
		cp := make(map[string]any, len(v))
		for k, val := range v {
			cp[k] = sentinelNulls(val)
		}
		return cp
	case []any:
		cp := make([]any, len(v))
		for i, val := range v {
			cp[i] = sentinelNulls(val)
		}
		return cp
	default:
		return v
	}
}

// restoreNulls undoes sentinelNulls on an extracted result, so callers see
// ordinary JSON values.
func restoreNulls(out any) any {
	switch v := out.(type) {
	case jsonNull:
		return nil
	case map[string]any:
		cp := make(map[string]any, len(v))
		for k, val := range v {
			cp[k] = restoreNulls(val)
		}
		return cp
	case []any:
		cp := make([]any, len(v))
		for i, val := range v {
			cp[i] = restoreNulls(val)
		}
		return cp
	default:
		return v
	}
}
