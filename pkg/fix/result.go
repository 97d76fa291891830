package fix

import "time"

// Result is the outcome of one fixer invocation. Code always holds a usable
// source string: the patched source on success, the unchanged input on
// failure. Callers must not assume mutation.
type Result struct {
	// Success is true when the fix was fully applied.
	Success bool

	// Code is the resulting source text.
	Code string

	// Message describes what was done, or why the fix was refused.
	Message string

	// Warnings contains non-fatal notes about the fix.
	Warnings []string
}

// Applied builds a successful Result.
func Applied(code, message string) Result {
	return Result{Success: true, Code: code, Message: message}
}

// Refused builds a failed Result carrying the unchanged source.
func Refused(source, message string) Result {
	return Result{Success: false, Code: source, Message: message}
}

// FailureKind classifies why a diagnostic was not resolved.
type FailureKind string

const (
	// KindUnsafeContext marks a position inside a string, comment, regex,
	// or template literal. Never attempted.
	KindUnsafeContext FailureKind = "unsafe-context"

	// KindNoFixer marks an unregistered or disabled rule.
	KindNoFixer FailureKind = "no-fixer"

	// KindCannotHandle marks a rule-specific precondition failure.
	KindCannotHandle FailureKind = "cannot-handle"

	// KindSyntax marks a fix whose output failed the syntax check.
	KindSyntax FailureKind = "validation-syntax"

	// KindSemantic marks a tripped structural heuristic. Recorded as a
	// warning, not necessarily rolled back.
	KindSemantic FailureKind = "validation-semantic"

	// KindUnexpected marks a defensive catch-all failure.
	KindUnexpected FailureKind = "unexpected"

	// KindAborted marks a diagnostic left unattempted because the batch
	// aborted earlier.
	KindAborted FailureKind = "batch-aborted"
)

// Summary is the audit record for one fix attempt. Successful summaries
// carry the replaced text region and double as the unit of rollback.
type Summary struct {
	// RuleID is the rule the attempt was for.
	RuleID string `json:"ruleId"`

	// Line and Column are the diagnostic's original position.
	Line   int `json:"line"`
	Column int `json:"column"`

	// Success is true when the fix was applied and validated.
	Success bool `json:"success"`

	// Message describes the outcome.
	Message string `json:"message"`

	// Kind classifies a failure. Empty on success.
	Kind FailureKind `json:"kind,omitempty"`

	// AppliedAt is when the attempt finished.
	AppliedAt time.Time `json:"appliedAt"`

	// StartOffset is the byte offset of the changed region in the source
	// version the fix was applied to. Only set on success.
	StartOffset int `json:"startOffset,omitempty"`

	// OriginalText is the text the fix replaced.
	OriginalText string `json:"originalText,omitempty"`

	// FixedText is the replacement text.
	FixedText string `json:"fixedText,omitempty"`

	// Warnings holds non-fatal notes, including semantic-heuristic trips.
	Warnings []string `json:"warnings,omitempty"`
}

// DiffRegion computes the changed region between two source versions as a
// (offset, originalText, fixedText) triple by trimming the common prefix and
// suffix. It feeds Summary rollback records.
func DiffRegion(before, after string) (int, string, string) {
	if before == after {
		return 0, "", ""
	}

	prefix := 0
	for prefix < len(before) && prefix < len(after) && before[prefix] == after[prefix] {
		prefix++
	}

	suffix := 0
	for suffix < len(before)-prefix && suffix < len(after)-prefix &&
		before[len(before)-1-suffix] == after[len(after)-1-suffix] {
		suffix++
	}

	return prefix, before[prefix : len(before)-suffix], after[prefix : len(after)-suffix]
}
