package cli

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/yaklabco/esfix/internal/logging"
	"github.com/yaklabco/esfix/pkg/fix"
	_ "github.com/yaklabco/esfix/pkg/fix/fixers" // Register built-in fixers
)

type rulesFlags struct {
	format string
}

const formatJSON = "json"

// ruleInfo represents a fixable rule in JSON output.
type ruleInfo struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

func newRulesCommand() *cobra.Command {
	flags := &rulesFlags{}

	cmd := &cobra.Command{
		Use:   "rules",
		Short: "List ESLint rules with registered fixers",
		Long: `List the ESLint rules esfix can repair, with the name and description
of each fixer. Diagnostics for rules not in this list fail with the
no-fixer failure kind.`,
		RunE: func(_ *cobra.Command, _ []string) error {
			fixers := fix.DefaultRegistry.Fixers()

			// Handle JSON output format.
			if flags.format == formatJSON {
				return outputRulesJSON(fixers)
			}

			// Default to text output.
			logger := logging.NewInteractive()

			if len(fixers) == 0 {
				logger.Info("no fixers registered")
				return nil
			}

			logger.Info("fixable rules")

			for _, fixer := range fixers {
				enabled := "yes"
				if !fix.DefaultRegistry.Enabled(fixer.RuleID()) {
					enabled = "no"
				}

				logger.Info(fixer.RuleID(),
					logging.FieldName, fixer.Name(),
					"enabled", enabled,
					logging.FieldDescription, fixer.Description(),
				)
			}

			return nil
		},
	}

	cmd.Flags().StringVar(&flags.format, "format", "text",
		"output format: text, json")

	return cmd
}

// outputRulesJSON outputs fixable rules as a JSON array.
func outputRulesJSON(fixers []fix.Fixer) error {
	infos := make([]ruleInfo, 0, len(fixers))
	for _, fixer := range fixers {
		infos = append(infos, ruleInfo{
			ID:          fixer.RuleID(),
			Name:        fixer.Name(),
			Description: fixer.Description(),
			Enabled:     fix.DefaultRegistry.Enabled(fixer.RuleID()),
		})
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(infos); err != nil {
		return fmt.Errorf("encoding rules: %w", err)
	}
	return nil
}
