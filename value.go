package hywatch

import (
	"encoding/json"
	"reflect"
)

// Value is the result of evaluating the query expression against one API
// response.
//
// Value distinguishes a query that matched nothing (absent) from a query
// that matched an explicit JSON null. Both are legitimate observations and
// both participate in change detection, but they compare as different
// values: a field disappearing from the response is a change even if its
// last value was null.
//
// The zero Value is absent.
type Value struct {
	data  any
	found bool
}

// Absent returns the Value representing a query that matched nothing.
func Absent() Value {
	return Value{}
}

// NewValue wraps an extracted JSON value. data uses encoding/json
// conventions: map[string]any, []any, string, float64, bool, or nil for an
// explicit JSON null.
func NewValue(data any) Value {
	return Value{data: data, found: true}
}

// Found reports whether the query matched anything. A found Value may
// still hold nil (an explicit JSON null).
func (v Value) Found() bool {
	return v.found
}

// Interface returns the underlying JSON value, or nil if the Value is
// absent.
func (v Value) Interface() any {
	return v.data
}

// Equal reports structural equality between two values.
//
// Mappings are compared by key/value set irrespective of key order,
// sequences element by element in order, scalars by value and type. Two
// absent values are equal; an absent value never equals a found one, even
// a found null.
func (v Value) Equal(other Value) bool {
	if v.found != other.found {
		return false
	}
	if !v.found {
		return true
	}
	return reflect.DeepEqual(v.data, other.data)
}

// String renders the value for console output. Absent values render as
// "<absent>", everything else as compact JSON (so null renders as "null").
func (v Value) String() string {
	if !v.found {
		return "<absent>"
	}
	b, err := json.Marshal(v.data)
	if err != nil {
		// data came from json.Unmarshal, so this should be unreachable
		return "<unprintable>"
	}
	return string(b)
}
