package batch

import (
	"time"

	"github.com/yaklabco/esfix/pkg/fix"
)

// Phase names the batch state machine's states.
type Phase string

const (
	PhaseAnalyzing  Phase = "analyzing"
	PhaseFixing     Phase = "fixing"
	PhaseValidating Phase = "validating"
	PhaseComplete   Phase = "complete"
	PhaseError      Phase = "error"
)

// Result is the outcome of one batch run. A batch call never panics or
// returns a bare error; it always returns a Result describing exactly what
// succeeded and what failed.
type Result struct {
	// SourceCode is the source the run started from, kept so reporters
	// can diff against it.
	SourceCode string `json:"-"`

	// FinalCode is the repaired source. It parses whenever Applied is
	// non-empty; on a failed run it is never weaker than the last
	// validated snapshot.
	FinalCode string `json:"finalCode"`

	// Applied holds the audit records of every applied fix, in the order
	// they were applied.
	Applied []fix.Summary `json:"appliedFixes"`

	// Failed holds a record for every diagnostic that was not resolved,
	// with its failure kind.
	Failed []fix.Summary `json:"failedFixes"`

	// TotalDiagnostics counts the diagnostics handed to the run,
	// including any discovered by re-lint waves.
	TotalDiagnostics int `json:"totalErrors"`

	// FixedCount counts the applied fixes.
	FixedCount int `json:"fixedErrors"`

	// Success is true when the run completed: every diagnostic was
	// attempted (some may individually have failed) and the run was
	// neither aborted nor cancelled.
	Success bool `json:"success"`

	// Err is the terminal error of an aborted or cancelled run.
	Err error `json:"-"`

	// ErrorMessage mirrors Err for serialized reports.
	ErrorMessage string `json:"error,omitempty"`

	// Strategy names the recovery strategy used, when one ran.
	Strategy string `json:"recoveryStrategy,omitempty"`

	// Phase is the state the run finished in.
	Phase Phase `json:"phase"`

	// Waves counts completed re-lint waves.
	Waves int `json:"waves"`

	// ProcessingTime is the wall-clock duration of the run.
	ProcessingTime time.Duration `json:"processingTime"`
}

// failf records a terminal error on the result.
func (r *Result) failf(err error) {
	r.Err = err
	if err != nil {
		r.ErrorMessage = err.Error()
	}
	r.Success = false
	r.Phase = PhaseError
}
