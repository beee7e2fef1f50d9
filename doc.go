// Package hywatch monitors a single value in the Hypixel API and reports
// when it changes between polls.
//
// hywatch fetches a Hypixel endpoint at a fixed interval, extracts one
// value from the JSON response using a JMESPath expression, and compares
// it against the previously observed value. The first observation is
// reported as the initial value; subsequent observations are reported as
// changed or unchanged.
//
// # Quick Start
//
// Create a monitor and run it until the context is cancelled:
//
//	m, _ := hywatch.New(
//	    hywatch.WithAPIKey(os.Getenv("HYPIXEL_API_KEY")),
//	    hywatch.WithUUID("b876ec32e396476ba1158438d83c67d4"),
//	    hywatch.WithQuery("player.karma"),
//	)
//
//	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
//	defer stop()
//
//	m.Start(ctx) // blocks until cancelled or a fatal error occurs
//
// # Configuration
//
// hywatch uses the functional options pattern:
//
//	m, err := hywatch.New(
//	    hywatch.WithAPIKey(key),
//	    hywatch.WithUsername("Technoblade"),      // resolved to a UUID at startup
//	    hywatch.WithEndpoint("skyblock/profiles"),
//	    hywatch.WithQuery("profiles[0].cute_name"),
//	    hywatch.WithInterval(time.Minute),
//	    hywatch.WithNotifier(notify.Desktop{}),
//	)
//
// A username is resolved to an account UUID via the Mojang API once at
// startup; if a UUID is supplied directly, no resolution happens.
//
// # Failure Policy
//
// A failed fetch (network error, timeout, non-2xx status, unparseable body)
// is reported and retried on the next cycle, forever, at a fixed cadence.
// Misconfiguration is fatal: a missing API key or query expression, a
// username that cannot be resolved, an endpoint missing a required
// parameter, or a query expression the evaluator rejects all terminate
// [Monitor.Start] with an error rather than being retried.
//
// # Architecture
//
// The internal packages are not part of the public API:
//
//   - internal/hypixel: authenticated API client and endpoint parameter rules
//   - internal/mojang: username to UUID resolution
//   - internal/extract: JMESPath evaluation with an explicit absent value
//   - internal/history: bounded in-memory log of cycle outcomes
//   - internal/notify: desktop notification capability with no-op fallback
package hywatch
