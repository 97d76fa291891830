package analysis

import (
	"time"

	"github.com/yaklabco/esfix/pkg/fix"
)

// Report contains pre-computed views of one batch run.
// Computed once by Analyze(), used by all renderers.
type Report struct {
	// ByRule groups fix outcomes by rule.
	ByRule []RuleAnalysis `json:"byRule,omitempty"`

	// Failures groups unresolved diagnostics by failure kind.
	Failures []FailureGroup `json:"failures,omitempty"`

	// Recommendations are human-readable follow-up suggestions derived
	// from the failure groups.
	Recommendations []string `json:"recommendations,omitempty"`

	// Totals contains aggregate statistics.
	Totals Totals `json:"summary"`

	// Version is the report format version.
	Version string `json:"version"`

	// Timestamp is when the analysis was performed.
	Timestamp time.Time `json:"timestamp"`
}

// Totals contains aggregate statistics for the report.
type Totals struct {
	Diagnostics  int     `json:"totalDiagnostics"`
	Applied      int     `json:"appliedFixes"`
	Failed       int     `json:"failedFixes"`
	FixRate      float64 `json:"fixRate"`
	Waves        int     `json:"waves"`
	Success      bool    `json:"success"`
	ProcessingMS int64   `json:"processingMs"`
}

// AllResolved returns true when every diagnostic was fixed.
func (t Totals) AllResolved() bool {
	return t.Failed == 0 && t.Applied == t.Diagnostics
}

// HasFailures returns true if any diagnostic went unresolved.
func (t Totals) HasFailures() bool {
	return t.Failed > 0
}

// RuleAnalysis contains aggregated outcomes for a single rule.
type RuleAnalysis struct {
	RuleID   string `json:"ruleId"`
	Attempts int    `json:"attempts"`
	Applied  int    `json:"applied"`
	Failed   int    `json:"failed"`
}

// FailureGroup aggregates failures sharing one failure kind.
type FailureGroup struct {
	Kind     fix.FailureKind `json:"kind"`
	Count    int             `json:"count"`
	Rules    []string        `json:"rules,omitempty"`
	Messages []string        `json:"messages,omitempty"`
}
