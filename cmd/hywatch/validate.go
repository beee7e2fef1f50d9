package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// validateCmd validates settings without any network activity.
var validateCmd = &cobra.Command{
	Use:   "validate",
	Short: "Validate settings without polling",
	Long: `Validate the merged settings (config file plus flags) without starting
the monitor. No network requests are made: username resolution and the
first fetch happen only under "watch".

Exit codes:
  0 - Settings are valid
  1 - Settings are invalid (error details printed to stderr)

Example:
  hywatch validate -c hywatch.yaml
  hywatch validate -k KEY --endpoint skyblock/profile -j 'profile.banking.balance'`,
	RunE: runValidate,
}

func init() {
	rootCmd.AddCommand(validateCmd)
	addSettingFlags(validateCmd)
}

func runValidate(cmd *cobra.Command, args []string) error {
	cfg, err := resolveSettings(cmd)
	if err != nil {
		return fmt.Errorf("invalid settings: %w", err)
	}

	identity := cfg.UUID
	if identity == "" && cfg.Username != "" {
		identity = cfg.Username + " (resolved at startup)"
	}
	if identity == "" {
		identity = "(none)"
	}

	fmt.Printf("Settings are valid!\n")
	fmt.Printf("  Endpoint:   %s\n", cfg.Endpoint)
	fmt.Printf("  Identity:   %s\n", identity)
	fmt.Printf("  Expression: %s\n", cfg.Query)
	fmt.Printf("  Interval:   %ds\n", cfg.Interval)
	fmt.Printf("  Notify:     %t\n", cfg.Notify)

	return nil
}
