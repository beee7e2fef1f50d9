// Package history keeps a bounded in-memory log of monitoring cycle
// outcomes for hywatch.
//
// The log lets embedders inspect recent cycles and subscribe to new ones
// without touching the monitor's own state. Nothing is persisted across
// process restarts. This package is internal to hywatch.
package history

import (
	"sync"
	"time"
)

// Record is the storage representation of one completed cycle.
//
// Record is decoupled from the monitor's outcome types so it can be
// serialized and retained independently. Values are stored in their
// rendered form.
type Record struct {
	// Kind is the cycle outcome: "initialized", "unchanged", "changed",
	// or "error" for a failed fetch.
	Kind string `json:"kind"`

	// Value is the rendered extracted value. Empty for error records.
	Value string `json:"value,omitempty"`

	// Previous is the rendered prior value. Only set for changed records.
	Previous string `json:"previous,omitempty"`

	// Error contains the fetch error message for error records.
	// nil otherwise.
	Error *string `json:"error"`

	// CheckedAt is when the cycle completed.
	CheckedAt time.Time `json:"checked_at"`
}

// Log is a thread-safe bounded record log with non-blocking pub/sub.
//
// Records beyond the configured capacity fall off the front. Subscribers
// receive new records via buffered channels; if a subscriber's buffer is
// full the record is dropped for that subscriber rather than blocking the
// monitoring loop.
type Log struct {
	mu      sync.RWMutex
	records []Record
	max     int

	subMu       sync.RWMutex
	subscribers map[chan Record]struct{}
}

// NewLog creates a [Log] retaining at most max records. A non-positive max
// retains a single record.
func NewLog(max int) *Log {
	if max < 1 {
		max = 1
	}
	return &Log{
		max:         max,
		subscribers: make(map[chan Record]struct{}),
	}
}

// Append stores a record, evicting the oldest when full, and notifies all
// subscribers.
func (l *Log) Append(r Record) {
	l.mu.Lock()
	l.records = append(l.records, r)
	if len(l.records) > l.max {
		l.records = l.records[len(l.records)-l.max:]
	}
	l.mu.Unlock()

	l.notifySubscribers(r)
}

// Records returns a snapshot of the retained records, oldest first.
//
// The returned slice is a copy; modifications do not affect the log.
func (l *Log) Records() []Record {
	l.mu.RLock()
	defer l.mu.RUnlock()

	cp := make([]Record, len(l.records))
	copy(cp, l.records)
	return cp
}

// Subscribe creates a subscription and returns a channel for receiving new
// records.
//
// The channel has a buffer of 16 records. If the buffer fills, records are
// dropped for this subscriber. Callers must call [Log.Unsubscribe] when
// done to prevent resource leaks.
func (l *Log) Subscribe() <-chan Record {
	ch := make(chan Record, 16)

	l.subMu.Lock()
	l.subscribers[ch] = struct{}{}
	l.subMu.Unlock()

	return ch
}

// Unsubscribe removes a subscription and closes its channel.
//
// Safe to call multiple times or with an unknown channel.
func (l *Log) Unsubscribe(ch <-chan Record) {
	l.subMu.Lock()
	defer l.subMu.Unlock()

	for subCh := range l.subscribers {
		if subCh == ch {
			delete(l.subscribers, subCh)
			close(subCh)
			break
		}
	}
}

// notifySubscribers sends the record to all active subscribers without
// blocking the append path.
func (l *Log) notifySubscribers(r Record) {
	l.subMu.RLock()
	defer l.subMu.RUnlock()

	for ch := range l.subscribers {
		select {
		case ch <- r:
		default:
			// subscriber is slow, drop the record
		}
	}
}
