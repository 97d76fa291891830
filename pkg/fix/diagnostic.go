package fix

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/yaklabco/esfix/pkg/config"
)

// Diagnostic is one reported rule violation. It mirrors the common linter
// diagnostic shape and is accepted verbatim from any linter; it is never
// mutated by the engine.
type Diagnostic struct {
	// RuleID is the identifier of the rule that produced this diagnostic.
	RuleID string `json:"ruleId"`

	// Message is the human-readable description of the violation.
	Message string `json:"message"`

	// Line is the 1-based line number of the violation.
	Line int `json:"line"`

	// Column is the 1-based column number of the violation.
	Column int `json:"column"`

	// EndLine is the 1-based line where the violation ends (0 if unknown).
	EndLine int `json:"endLine,omitempty"`

	// EndColumn is the 1-based column where the violation ends (0 if unknown).
	EndColumn int `json:"endColumn,omitempty"`

	// Severity indicates the importance of the diagnostic.
	Severity config.Severity `json:"severity"`
}

// Key returns the identity of a diagnostic (ruleId+line+column), used to
// match fresh re-lint results against already-applied fixes.
func (d Diagnostic) Key() string {
	return fmt.Sprintf("%s:%d:%d", d.RuleID, d.Line, d.Column)
}

// Position returns the position formatted as "line:column".
func (d Diagnostic) Position() string {
	return fmt.Sprintf("%d:%d", d.Line, d.Column)
}

// SortForBatch orders diagnostics by descending line and, within a line,
// descending column. Fixes must be applied bottom-to-top, right-to-left so
// that an applied edit never shifts the positions of diagnostics that are
// still pending.
func SortForBatch(diags []Diagnostic) {
	slices.SortStableFunc(diags, func(a, b Diagnostic) int {
		if c := cmp.Compare(b.Line, a.Line); c != 0 {
			return c
		}
		return cmp.Compare(b.Column, a.Column)
	})
}
