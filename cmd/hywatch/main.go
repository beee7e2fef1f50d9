// Package main is the entry point for the hywatch CLI.
//
// hywatch can be used as a library (SDK) or as this standalone binary.
//
// Usage:
//
//	hywatch watch -k KEY -u Name -j player.karma   # start monitoring
//	hywatch watch -c hywatch.yaml                  # settings from a file
//	hywatch validate -c hywatch.yaml               # validate configuration
//	hywatch version                                # show version info
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Version information - set by GoReleaser at build time via ldflags.
// Example: go build -ldflags "-X main.version=1.0.0"
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// rootCmd is the base command when called without subcommands.
// It just displays help - actual functionality is in subcommands.
var rootCmd = &cobra.Command{
	Use:   "hywatch",
	Short: "Monitor a Hypixel API value and report when it changes",
	Long: `hywatch polls a Hypixel API endpoint at a fixed interval, extracts one
value from the JSON response with a JMESPath expression, and prints a line
whenever that value changes.

Quick start:
  hywatch watch -k YOUR_KEY -u YourName -j player.karma

Settings can also come from a YAML config file; explicit flags override
file values:
  api_key: ${HYPIXEL_API_KEY}
  username: YourName
  jmespath: player.karma
  interval: 300
  notify: true`,
	// No Run/RunE means this just shows help when called without subcommands
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		// Cobra already prints the error, just exit with code 1
		os.Exit(1)
	}
}

func main() {
	Execute()
}

// versionCmd prints version information.
var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long:  `Print the version, commit hash, and build date of this hywatch binary.`,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Printf("hywatch %s\n", version)
		fmt.Printf("  commit: %s\n", commit)
		fmt.Printf("  built:  %s\n", date)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
