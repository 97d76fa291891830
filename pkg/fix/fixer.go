package fix

// Fixer defines the contract every per-rule repair algorithm implements.
//
// Implementations must:
//   - Consult the lexical context analyzer in CanFix before any
//     rule-specific check, and treat an unsafe position as a hard refusal.
//   - Keep CanFix free of side effects.
//   - Keep Fix pure: no shared mutable state across calls, and never a
//     partially applied edit. Fix returns either a fully patched source or
//     the original source unchanged.
type Fixer interface {
	// RuleID returns the lint rule identifier this fixer repairs
	// (e.g., "no-var").
	RuleID() string

	// Name returns the human-readable name of the fixer.
	Name() string

	// Description returns a detailed description of the repair performed.
	Description() string

	// CanFix reports whether this fixer can repair the given diagnostic
	// in the given source.
	CanFix(source string, d Diagnostic) bool

	// Fix attempts the repair and returns the result. On failure the
	// result's Code equals the input source.
	Fix(source string, d Diagnostic) Result

	// Validate checks a rule-specific structural invariant between the
	// source before and after the fix.
	Validate(before, after string) bool
}

// BaseFixer provides the identity portion of the Fixer interface.
// Embed it in fixer implementations.
//
// Fields are unexported to avoid stutter and name collisions with interface
// methods.
type BaseFixer struct {
	ruleID string
	name   string
	desc   string
}

// NewBaseFixer creates a BaseFixer with the given identity.
func NewBaseFixer(ruleID, name, desc string) BaseFixer {
	return BaseFixer{
		ruleID: ruleID,
		name:   name,
		desc:   desc,
	}
}

// RuleID returns the lint rule identifier this fixer repairs.
func (f *BaseFixer) RuleID() string {
	return f.ruleID
}

// Name returns the human-readable name of the fixer.
func (f *BaseFixer) Name() string {
	return f.name
}

// Description returns a detailed description of the repair performed.
func (f *BaseFixer) Description() string {
	return f.desc
}
