package hywatch

import (
	"errors"
	"io"
	"log/slog"
	"time"
)

// monitorConfig holds mutable state during Monitor construction.
type monitorConfig struct {
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
	historySize  int
	outcomeFuncs []func(Outcome)
}

// Option configures a [Monitor] during construction.
//
// Option implements the functional options pattern. Options return an
// error if validation fails, which [New] propagates.
type Option func(*monitorConfig) error

// WithAPIKey sets the Hypixel API key used to authenticate every request.
// Required. The key is injected into requests and never logged.
func WithAPIKey(key string) Option {
	return func(cfg *monitorConfig) error {
		cfg.apiKey = key
		return nil
	}
}

// WithUsername sets the Minecraft username to monitor.
//
// Unless a UUID is also supplied with [WithUUID], the username is resolved
// to an account UUID via the Mojang API once when [Monitor.Start] begins.
// A failed resolution is fatal to startup.
func WithUsername(name string) Option {
	return func(cfg *monitorConfig) error {
		cfg.username = name
		return nil
	}
}

// WithUUID sets the account UUID directly, skipping Mojang resolution even
// when a username is also configured.
func WithUUID(id string) Option {
	return func(cfg *monitorConfig) error {
		cfg.uuid = id
		return nil
	}
}

// WithEndpoint selects the Hypixel endpoint to poll. Defaults to "player".
//
// Known endpoints ("player", "skyblock/profiles", "skyblock/profile") have
// fixed parameter rules; any other endpoint receives the parameters given
// via [WithParams] verbatim.
func WithEndpoint(endpoint string) Option {
	return func(cfg *monitorConfig) error {
		if endpoint == "" {
			return errors.New("endpoint cannot be empty")
		}
		cfg.endpoint = endpoint
		return nil
	}
}

// WithQuery sets the JMESPath expression that extracts the monitored value
// from each response. Required.
//
// The expression is compiled once at startup; a malformed expression is
// fatal. An evaluation error against live data is also fatal: the
// expression is assumed constant, so a mismatch is a configuration bug
// rather than data variability.
func WithQuery(expr string) Option {
	return func(cfg *monitorConfig) error {
		cfg.query = expr
		return nil
	}
}

// WithProfileID sets the Skyblock profile id. Required only when the
// endpoint is "skyblock/profile".
func WithProfileID(id string) Option {
	return func(cfg *monitorConfig) error {
		cfg.profileID = id
		return nil
	}
}

// WithParams sets extra request parameters, used verbatim for endpoints
// without fixed parameter rules. The map is copied.
func WithParams(params map[string]string) Option {
	return func(cfg *monitorConfig) error {
		if len(params) == 0 {
			return nil
		}
		cp := make(map[string]string, len(params))
		for k, v := range params {
			cp[k] = v
		}
		cfg.params = cp
		return nil
	}
}

// WithInterval sets the time between polling cycles. Defaults to 5
// minutes. Intervals below [MinInterval] are raised to it at run time.
//
// Returns an error if the duration is zero or negative.
func WithInterval(d time.Duration) Option {
	return func(cfg *monitorConfig) error {
		if d <= 0 {
			return errors.New("polling interval must be positive")
		}
		cfg.interval = d
		return nil
	}
}

// WithNotifier sets the desktop notification capability used when a change
// is detected. Defaults to a no-op. Delivery failures are logged and
// swallowed; they never affect the monitoring loop.
func WithNotifier(n Notifier) Option {
	return func(cfg *monitorConfig) error {
		if n == nil {
			return errors.New("notifier cannot be nil")
		}
		cfg.notifier = n
		return nil
	}
}

// WithLogger sets the structured logger for diagnostics. Defaults to
// [slog.Default]. The stdout line protocol (see [WithOutput]) is separate
// from this logger.
func WithLogger(logger *slog.Logger) Option {
	return func(cfg *monitorConfig) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		cfg.logger = logger
		return nil
	}
}

// WithOutput sets the writer for the line-oriented cycle output
// ("[INIT]", "[CHANGE]", "[ERROR]", and no-change lines). Defaults to
// [os.Stdout].
func WithOutput(w io.Writer) Option {
	return func(cfg *monitorConfig) error {
		if w == nil {
			return errors.New("output writer cannot be nil")
		}
		cfg.out = w
		return nil
	}
}

// WithBaseURL overrides the Hypixel API root. Intended for tests and
// proxies.
func WithBaseURL(u string) Option {
	return func(cfg *monitorConfig) error {
		if u == "" {
			return errors.New("base URL cannot be empty")
		}
		cfg.baseURL = u
		return nil
	}
}

// WithMojangURL overrides the Mojang API root. Intended for tests and
// proxies.
func WithMojangURL(u string) Option {
	return func(cfg *monitorConfig) error {
		if u == "" {
			return errors.New("mojang URL cannot be empty")
		}
		cfg.mojangURL = u
		return nil
	}
}

// WithHistorySize sets how many cycle records the monitor retains in
// memory. Defaults to 256.
func WithHistorySize(n int) Option {
	return func(cfg *monitorConfig) error {
		if n < 1 {
			return errors.New("history size must be at least 1")
		}
		cfg.historySize = n
		return nil
	}
}

// WithOutcomeFunc registers a callback invoked after every successful
// cycle with its [Outcome].
//
// Callbacks run synchronously on the monitoring goroutine, in registration
// order. A panicking callback is recovered and logged with a correlation
// ID; it cannot crash the monitor.
func WithOutcomeFunc(fn func(Outcome)) Option {
	return func(cfg *monitorConfig) error {
		if fn == nil {
			return errors.New("outcome callback cannot be nil")
		}
		cfg.outcomeFuncs = append(cfg.outcomeFuncs, fn)
		return nil
	}
}
