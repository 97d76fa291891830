// Package cli provides the Cobra command structure for esfix.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/esfix/internal/logging"
)

// BuildInfo holds build-time version information.
type BuildInfo struct {
	Version string
	Commit  string
	Date    string
}

// NewRootCommand creates the root esfix command with all subcommands.
func NewRootCommand(info BuildInfo) *cobra.Command {
	var debug bool
	var configPath string
	var color string

	rootCmd := &cobra.Command{
		Use:   "esfix",
		Short: "A mechanical source repairer for ECMAScript lint diagnostics",
		Long: `esfix applies mechanical fixes for ESLint diagnostics to JavaScript and
TypeScript sources.

It takes the diagnostics a linter already produced, sorts them so edits
never invalidate one another, and applies rule-specific fixers with
syntax validation after every edit. Fixes that would touch strings,
comments, or template literals are refused rather than guessed at, and
a broken fix is rolled back before the next one runs.`,
		PersistentPreRun: func(_ *cobra.Command, _ []string) {
			if debug {
				logging.SetLevel("debug")
			}
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// Global flags.
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "path to config file")
	rootCmd.PersistentFlags().StringVar(&color, "color", "auto",
		"colorize output: auto, always, never")

	// Add subcommands.
	rootCmd.AddCommand(newFixCommand())
	rootCmd.AddCommand(newRulesCommand())
	rootCmd.AddCommand(newInitCommand())
	rootCmd.AddCommand(newMigrateCommand())
	rootCmd.AddCommand(newVersionCommand(info))

	// Apply styled help formatting.
	helpFormatter := NewHelpFormatter(color, os.Stdout)
	helpFormatter.ApplyToCommand(rootCmd)

	return rootCmd
}
