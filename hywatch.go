package hywatch

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/url"
	"os"
	"runtime/debug"
	"time"

	"github.com/google/uuid"

	"github.com/hywatch/hywatch/internal/extract"
	"github.com/hywatch/hywatch/internal/history"
	"github.com/hywatch/hywatch/internal/hypixel"
	"github.com/hywatch/hywatch/internal/mojang"
)

const (
	// DefaultBaseURL is the production Hypixel API root.
	DefaultBaseURL = "https://api.hypixel.net"

	// DefaultMojangURL is the production Mojang API root.
	DefaultMojangURL = "https://api.mojang.com"

	// DefaultInterval is the polling interval used when none is configured.
	DefaultInterval = 300 * time.Second

	// MinInterval is the floor applied to configured intervals at run
	// time, protecting the API from overly aggressive polling.
	MinInterval = 5 * time.Second
)

const (
	defaultFetchTimeout   = 15 * time.Second
	defaultResolveTimeout = 10 * time.Second
	defaultHistorySize    = 256
	notificationTitle     = "hywatch"
)

// Startup validation errors returned by [New].
var (
	ErrAPIKeyRequired = errors.New("hypixel api key is required")
	ErrQueryRequired  = errors.New("a jmespath query expression is required")
)

// Notifier is the desktop notification capability injected into a
// [Monitor].
//
// Implementations are best effort: a returned error is logged and
// swallowed, never surfaced to the monitoring loop. The capability is
// chosen once at startup rather than probed per call.
type Notifier interface {
	Notify(title, message string) error
}

// CycleRecord is one retained cycle outcome, as returned by
// [Monitor.History]. Values are stored in their rendered form.
type CycleRecord struct {
	// Kind is "initialized", "unchanged", "changed", or "error".
	Kind string

	// Value is the rendered extracted value. Empty for error records.
	Value string

	// Previous is the rendered prior value. Only set for changed records.
	Previous string

	// Error is the fetch error message for error records, nil otherwise.
	Error *string

	// CheckedAt is when the cycle completed.
	CheckedAt time.Time
}

// Monitor polls one Hypixel endpoint and reports when the extracted value
// changes.
//
// Monitor is created with [New] and driven by [Monitor.Start], which
// blocks until the context is cancelled or a fatal error occurs. One
// monitor watches one endpoint; run separate processes to watch several.
type Monitor struct {
	apiKey    string
	username  string
	uuid      string
	endpoint  string
	query     string
	profileID string
	params    map[string]string

	interval     time.Duration
	notifier     Notifier
	logger       *slog.Logger
	out          io.Writer
	baseURL      string
	mojangURL    string
	outcomeFuncs []func(Outcome)

	log *history.Log
}

// New creates a [Monitor] from the given options.
//
// An API key ([WithAPIKey]) and a query expression ([WithQuery]) are
// required; their absence is a startup validation error and no network
// activity is attempted. Everything else has a default: endpoint "player",
// 5 minute interval, no-op notifier, output to stdout.
func New(opts ...Option) (*Monitor, error) {
	cfg := &monitorConfig{
		endpoint:    "player",
		interval:    DefaultInterval,
		baseURL:     DefaultBaseURL,
		mojangURL:   DefaultMojangURL,
		historySize: defaultHistorySize,
	}

	for _, opt := range opts {
		if err := opt(cfg); err != nil {
			return nil, err
		}
	}

	if cfg.apiKey == "" {
		return nil, ErrAPIKeyRequired
	}
	if cfg.query == "" {
		return nil, ErrQueryRequired
	}

	logger := cfg.logger
	if logger == nil {
		logger = slog.Default()
	}
	out := cfg.out
	if out == nil {
		out = os.Stdout
	}
	var notifier Notifier = cfg.notifier
	if notifier == nil {
		notifier = noopNotifier{}
	}

	return &Monitor{
		apiKey:       cfg.apiKey,
		username:     cfg.username,
		uuid:         cfg.uuid,
		endpoint:     cfg.endpoint,
		query:        cfg.query,
		profileID:    cfg.profileID,
		params:       cfg.params,
		interval:     cfg.interval,
		notifier:     notifier,
		logger:       logger,
		out:          out,
		baseURL:      cfg.baseURL,
		mojangURL:    cfg.mojangURL,
		outcomeFuncs: cfg.outcomeFuncs,
		log:          history.NewLog(cfg.historySize),
	}, nil
}

// noopNotifier is the default when no notifier is configured.
type noopNotifier struct{}

func (noopNotifier) Notify(title, message string) error { return nil }

// Start runs the monitoring loop until ctx is cancelled or a fatal error
// occurs.
//
// Startup performs, in order: username resolution (only when no UUID was
// supplied), endpoint parameter construction, and query compilation. Any
// failure there is fatal and returned immediately; no polling begins.
//
// The loop then fetches, extracts, compares, and reports, sleeping the
// effective interval between cycles. A failed fetch is reported and
// retried on the next cycle, forever; a query evaluation error terminates
// the loop with an error.
//
// Returns nil on context cancellation.
func (m *Monitor) Start(ctx context.Context) error {
	m.logger.Info("monitor starting",
		"endpoint", m.endpoint,
		"interval", m.effectiveInterval().String(),
	)

	if ctx.Err() != nil {
		return nil
	}

	s, err := m.prepare(ctx)
	if err != nil {
		return err
	}
	defer s.client.Close()

	interval := m.effectiveInterval()
	for {
		if err := s.cycle(ctx); err != nil {
			return err
		}

		select {
		case <-ctx.Done():
			m.logger.Info("monitor stopped")
			return nil
		case <-time.After(interval):
		}
	}
}

// History returns a snapshot of the retained cycle records, oldest first.
func (m *Monitor) History() []CycleRecord {
	records := m.log.Records()
	out := make([]CycleRecord, len(records))
	for i, r := range records {
		out[i] = CycleRecord{
			Kind:      r.Kind,
			Value:     r.Value,
			Previous:  r.Previous,
			Error:     r.Error,
			CheckedAt: r.CheckedAt,
		}
	}
	return out
}

// Endpoint returns the configured endpoint path.
func (m *Monitor) Endpoint() string {
	return m.endpoint
}

// Interval returns the configured polling interval, before the
// [MinInterval] floor is applied.
func (m *Monitor) Interval() time.Duration {
	return m.interval
}

// effectiveInterval is the sleep between cycles: the configured interval,
// floored at MinInterval.
func (m *Monitor) effectiveInterval() time.Duration {
	if m.interval < MinInterval {
		return MinInterval
	}
	return m.interval
}

// session holds the per-run state assembled at startup: resolved
// parameters, the compiled query, the API client, and the change tracker.
type session struct {
	monitor *Monitor
	client  *hypixel.Client
	params  url.Values
	query   *extract.Query
	tracker *Tracker
	rep     reporter
}

// prepare performs the fatal-on-failure startup sequence: identity
// resolution, parameter construction, query compilation.
func (m *Monitor) prepare(ctx context.Context) (*session, error) {
	accountUUID := m.uuid
	if accountUUID == "" && m.username != "" {
		m.logger.Info("resolving username", "username", m.username)
		resolver := mojang.NewResolver(m.mojangURL, defaultResolveTimeout)
		id, err := resolver.UUID(ctx, m.username)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve username %q: %w", m.username, err)
		}
		accountUUID = id
		m.logger.Info("username resolved", "username", m.username, "uuid", accountUUID)
	}

	identity := hypixel.Identity{
		Username:  m.username,
		UUID:      accountUUID,
		ProfileID: m.profileID,
	}
	params, err := hypixel.BuildParams(m.endpoint, identity, m.params)
	if err != nil {
		return nil, err
	}

	query, err := extract.Compile(m.query)
	if err != nil {
		return nil, err
	}

	return &session{
		monitor: m,
		client:  hypixel.NewClient(m.baseURL, m.apiKey, defaultFetchTimeout),
		params:  params,
		query:   query,
		tracker: NewTracker(),
		rep:     reporter{w: m.out},
	}, nil
}

// cycle runs one fetch, extract, compare, report sequence. A fetch failure
// is reported and absorbed (nil return); an extraction failure is returned
// and terminates the run.
func (s *session) cycle(ctx context.Context) error {
	m := s.monitor

	doc, err := s.client.Fetch(ctx, m.endpoint, s.params)
	if err != nil {
		if ctx.Err() != nil {
			// interrupted mid-fetch; not a cycle outcome
			return nil
		}
		s.rep.fetchError(err)
		m.logger.Warn("fetch failed, retrying next interval", "endpoint", m.endpoint, "error", err)
		msg := err.Error()
		m.log.Append(history.Record{Kind: "error", Error: &msg, CheckedAt: time.Now()})
		return nil
	}

	res, err := s.query.Search(doc)
	if err != nil {
		return err
	}
	value := Absent()
	if res.Found {
		value = NewValue(res.Data)
	}

	outcome := s.tracker.Observe(value)
	s.rep.outcome(outcome)
	m.log.Append(outcomeToRecord(outcome))

	for _, fn := range m.outcomeFuncs {
		m.invokeOutcomeFuncSafe(fn, outcome)
	}

	if outcome.Kind == OutcomeChanged {
		msg := fmt.Sprintf("Value changed: %s -> %s", outcome.Old, outcome.New)
		if err := m.notifier.Notify(notificationTitle, msg); err != nil {
			m.logger.Warn("desktop notification failed", "error", err)
		}
	}

	return nil
}

// outcomeToRecord converts an Outcome to its storage representation.
func outcomeToRecord(o Outcome) history.Record {
	r := history.Record{
		Kind:      o.Kind.String(),
		Value:     o.New.String(),
		CheckedAt: o.CheckedAt,
	}
	if o.Kind == OutcomeChanged {
		r.Previous = o.Old.String()
	}
	return r
}

// invokeOutcomeFuncSafe calls an outcome callback with panic recovery.
// Panics are logged with a correlation ID but do not propagate.
func (m *Monitor) invokeOutcomeFuncSafe(fn func(Outcome), o Outcome) {
	defer func() {
		if r := recover(); r != nil {
			correlationID := uuid.NewString()
			m.logger.Error("outcome callback panicked",
				"correlation_id", correlationID,
				"panic", fmt.Sprintf("%v", r),
				"stack", string(debug.Stack()),
			)
		}
	}()
	fn(o)
}
