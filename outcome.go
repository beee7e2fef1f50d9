package hywatch

import "time"

// OutcomeKind classifies the result of one successful monitoring cycle.
type OutcomeKind string

const (
	// OutcomeInitialized indicates the first successfully extracted value.
	// It is never treated as a change; no notification fires for it.
	OutcomeInitialized OutcomeKind = "initialized"

	// OutcomeUnchanged indicates the extracted value equals the previously
	// observed one.
	OutcomeUnchanged OutcomeKind = "unchanged"

	// OutcomeChanged indicates the extracted value differs from the
	// previously observed one.
	OutcomeChanged OutcomeKind = "changed"
)

// String returns the string representation of the outcome kind.
func (k OutcomeKind) String() string {
	return string(k)
}

// Outcome holds the result of comparing one cycle's extracted value against
// the previous observation.
//
// Old is meaningful only when Kind is [OutcomeChanged]; it holds the value
// that was replaced.
type Outcome struct {
	// Kind classifies the observation.
	Kind OutcomeKind

	// Old is the previously observed value. Only set for OutcomeChanged.
	Old Value

	// New is the value observed this cycle.
	New Value

	// CheckedAt is when the observation was made.
	CheckedAt time.Time
}

// Tracker is the change detector. It holds the last observed value and
// decides whether a new observation constitutes a reportable change.
//
// Tracker is not safe for concurrent use; the monitor owns exactly one and
// calls it from a single goroutine. State mutates only on an initialized or
// changed observation, never on a failed cycle (failed fetches never reach
// the tracker).
type Tracker struct {
	last        Value
	initialized bool
}

// NewTracker creates a Tracker with no observed value.
func NewTracker() *Tracker {
	return &Tracker{}
}

// Observe compares v against the last observed value and updates the
// tracker accordingly.
//
// The first call always yields [OutcomeInitialized], regardless of the
// value (including absent or null). Later calls yield [OutcomeUnchanged]
// when v is structurally equal to the stored value, or [OutcomeChanged]
// with both old and new values when it is not.
func (t *Tracker) Observe(v Value) Outcome {
	now := time.Now()

	if !t.initialized {
		t.initialized = true
		t.last = v
		return Outcome{Kind: OutcomeInitialized, New: v, CheckedAt: now}
	}

	if t.last.Equal(v) {
		return Outcome{Kind: OutcomeUnchanged, New: v, CheckedAt: now}
	}

	old := t.last
	t.last = v
	return Outcome{Kind: OutcomeChanged, Old: old, New: v, CheckedAt: now}
}
