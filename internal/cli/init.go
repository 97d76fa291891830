package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/yaklabco/esfix/internal/logging"
)

// configFilePermissions is the file mode for configuration files (world-readable).
const configFilePermissions = 0644

// initFlags holds the flags for the init command.
type initFlags struct {
	force  bool
	output string
}

func newInitCommand() *cobra.Command {
	flags := &initFlags{}

	cmd := &cobra.Command{
		Use:   "init",
		Short: "Initialize a new esfix configuration file",
		Long: `Create a new .esfix.yml configuration file in the current directory
with the defaults written out and documented. The file can be customized
to disable rules, tune wave sizes, or point at a re-lint command.

Examples:
  esfix init                      Create .esfix.yml
  esfix init --output custom.yml  Write to a custom file path`,
		RunE: func(_ *cobra.Command, _ []string) error {
			return runInit(flags)
		},
	}

	cmd.Flags().BoolVarP(&flags.force, "force", "f", false, "Overwrite existing configuration file")
	cmd.Flags().StringVarP(&flags.output, "output", "o", "", "Output file path (default: .esfix.yml)")

	return cmd
}

// starterConfig is the documented template written by init.
const starterConfig = `# esfix configuration
# See: https://github.com/yaklabco/esfix

# Logging verbosity: debug, info, warn, error
log_level: info

batch:
  # Fixes applied between re-lint queries. 0 disables mid-batch re-linting.
  wave_size: 10

  # Seconds before one re-lint call is abandoned.
  relint_timeout_seconds: 10

  # Compare structural signals before and after each fix.
  semantic_checks: true

# External linter run between waves to discover fresh diagnostics.
# args are appended after the {file} placeholder is substituted.
relint:
  command: ""
  args: []

backups:
  # Keep a .esfix.bak sidecar before the first in-place rewrite.
  enabled: true

# Per-rule overrides. Run 'esfix rules' for the full list.
rules: {}
#  prefer-const:
#    enabled: false
#  quotes:
#    options:
#      style: single
`

func runInit(flags *initFlags) error {
	logger := logging.NewInteractive()

	outputPath := flags.output
	if outputPath == "" {
		outputPath = ".esfix.yml"
	}

	absPath, err := filepath.Abs(outputPath)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	// Check if file exists
	if _, err := os.Stat(absPath); err == nil {
		if !flags.force {
			return fmt.Errorf("file %q already exists; use --force to overwrite", outputPath)
		}
		logger.Warn("overwriting existing file", logging.FieldPath, outputPath)
	}

	if err := os.WriteFile(absPath, []byte(starterConfig), configFilePermissions); err != nil {
		return fmt.Errorf("write file: %w", err)
	}

	logger.Info("created configuration file", logging.FieldPath, outputPath)
	logger.Info("run 'esfix rules' to see all fixable rules")

	return nil
}
