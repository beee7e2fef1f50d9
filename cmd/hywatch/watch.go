package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/hywatch/hywatch"
	"github.com/hywatch/hywatch/config"
	"github.com/hywatch/hywatch/internal/notify"
)

// newLogger creates a JSON logger for CLI use. Diagnostics go to stderr;
// stdout carries only the cycle output lines.
func newLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
}

// watchCmd starts the monitoring loop.
var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Start monitoring a value",
	Long: `Start polling the configured endpoint and report value changes.

Each cycle prints exactly one line to stdout:
  [INIT]   the first successfully observed value
  [CHANGE] the value changed since the last cycle
  [ERROR]  the fetch failed; retried next interval
  a plain line when the value is unchanged

The command runs until interrupted (Ctrl+C) or a fatal configuration
error occurs. Fetch failures are never fatal.

Example:
  hywatch watch -k YOUR_KEY -u YourName -j player.karma -i 60
  hywatch watch -c hywatch.yaml --notify`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
	addSettingFlags(watchCmd)
}

// addSettingFlags declares the monitoring settings flags, shared by watch
// and validate.
func addSettingFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("config", "c", "", "path to YAML config file")
	cmd.Flags().StringP("api-key", "k", "", "Hypixel API key")
	cmd.Flags().StringP("username", "u", "", "Minecraft username to monitor (resolved to a UUID)")
	cmd.Flags().String("uuid", "", "Minecraft UUID to monitor (skips username resolution)")
	cmd.Flags().StringP("endpoint", "e", "", `Hypixel endpoint to call (default "player")`)
	cmd.Flags().StringP("jmespath", "j", "", "JMESPath expression selecting the value to monitor")
	cmd.Flags().IntP("interval", "i", 0, "poll interval in seconds (default 300, floor 5)")
	cmd.Flags().Bool("notify", false, "show desktop notifications on change")
	cmd.Flags().String("profile", "", "Skyblock profile id (endpoint skyblock/profile only)")
	cmd.Flags().StringToString("param", nil, "extra request parameter for other endpoints (key=value)")
}

// overridesFromFlags collects explicitly supplied flags into overrides.
// Only changed flags participate, so flag defaults never shadow file
// values.
func overridesFromFlags(cmd *cobra.Command) config.Overrides {
	var o config.Overrides

	o.APIKey, _ = cmd.Flags().GetString("api-key")
	o.Username, _ = cmd.Flags().GetString("username")
	o.UUID, _ = cmd.Flags().GetString("uuid")
	o.Endpoint, _ = cmd.Flags().GetString("endpoint")
	o.Query, _ = cmd.Flags().GetString("jmespath")
	o.Profile, _ = cmd.Flags().GetString("profile")
	o.Params, _ = cmd.Flags().GetStringToString("param")

	if cmd.Flags().Changed("interval") {
		o.Interval, _ = cmd.Flags().GetInt("interval")
		o.IntervalSet = true
	}
	if cmd.Flags().Changed("notify") {
		o.Notify, _ = cmd.Flags().GetBool("notify")
		o.NotifySet = true
	}

	return o
}

// resolveSettings loads the optional config file and merges it with flag
// overrides.
func resolveSettings(cmd *cobra.Command) (*config.Config, error) {
	var fileCfg *config.Config

	if path, _ := cmd.Flags().GetString("config"); path != "" {
		cfg, err := config.Load(path)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		fileCfg = cfg
	}

	return config.Resolve(fileCfg, overridesFromFlags(cmd))
}

func runWatch(cmd *cobra.Command, args []string) error {
	logger := newLogger()

	cfg, err := resolveSettings(cmd)
	if err != nil {
		return err
	}

	opts := []hywatch.Option{
		hywatch.WithAPIKey(cfg.APIKey),
		hywatch.WithQuery(cfg.Query),
		hywatch.WithEndpoint(cfg.Endpoint),
		hywatch.WithInterval(time.Duration(cfg.Interval) * time.Second),
		hywatch.WithLogger(logger),
	}
	if cfg.Username != "" {
		opts = append(opts, hywatch.WithUsername(cfg.Username))
	}
	if cfg.UUID != "" {
		opts = append(opts, hywatch.WithUUID(cfg.UUID))
	}
	if cfg.Profile != "" {
		opts = append(opts, hywatch.WithProfileID(cfg.Profile))
	}
	if len(cfg.Params) > 0 {
		opts = append(opts, hywatch.WithParams(cfg.Params))
	}
	if cfg.Notify {
		// capability chosen once here; delivery failures are logged
		// and swallowed by the monitor
		opts = append(opts, hywatch.WithNotifier(notify.Desktop{}))
	}

	m, err := hywatch.New(opts...)
	if err != nil {
		return err
	}

	// cancel on SIGINT/SIGTERM; cancellation is a clean exit
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := m.Start(ctx); err != nil {
		return fmt.Errorf("monitor stopped: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}
