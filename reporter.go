package hywatch

import (
	"fmt"
	"io"
)

// reporter emits the line-oriented cycle output. Prefixes are stable for
// scripting: [ERROR] for fetch failures, [INIT] for the first observed
// value, [CHANGE] for detected changes; unchanged cycles print a plain
// line so the output shows liveness every interval.
type reporter struct {
	w io.Writer
}

func (r reporter) fetchError(err error) {
	fmt.Fprintf(r.w, "[ERROR] fetch failed: %v\n", err)
}

func (r reporter) outcome(o Outcome) {
	switch o.Kind {
	case OutcomeInitialized:
		fmt.Fprintf(r.w, "[INIT] monitored value: %s\n", o.New)
	case OutcomeChanged:
		fmt.Fprintf(r.w, "[CHANGE] value changed: %s -> %s\n", o.Old, o.New)
	default:
		fmt.Fprintf(r.w, "no change, current value: %s\n", o.New)
	}
}
