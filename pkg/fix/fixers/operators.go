package fixers

import (
	"regexp"
	"strings"

	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/scan"
)

// EqeqeqFixer upgrades loose equality operators to strict ones.
type EqeqeqFixer struct {
	fix.BaseFixer
}

// NewEqeqeqFixer creates a fixer for eqeqeq.
func NewEqeqeqFixer() *EqeqeqFixer {
	return &EqeqeqFixer{
		BaseFixer: fix.NewBaseFixer(
			"eqeqeq",
			"eqeqeq",
			"Replaces == with === and != with !==",
		),
	}
}

// looseOpAt returns the loose operator at off, if any. A strict operator
// (===, !==) must not match.
func looseOpAt(source string, off int) (string, bool) {
	if off+2 > len(source) {
		return "", false
	}
	op := source[off : off+2]
	if op != "==" && op != "!=" {
		return "", false
	}
	if off+2 < len(source) && source[off+2] == '=' {
		return "", false
	}
	if off > 0 && (source[off-1] == '=' || source[off-1] == '!' ||
		source[off-1] == '<' || source[off-1] == '>') {
		return "", false
	}
	return op, true
}

// CanFix reports whether a loose equality operator sits at the position.
func (f *EqeqeqFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}
	off, ok := scan.New(source).OffsetOf(d.Line, d.Column)
	if !ok {
		return false
	}
	_, found := looseOpAt(source, off)
	return found
}

// Fix replaces the operator with its strict form.
func (f *EqeqeqFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	off, ok := scan.New(source).OffsetOf(d.Line, d.Column)
	if !ok {
		return fix.Refused(source, "position out of range")
	}

	op, found := looseOpAt(source, off)
	if !found {
		return fix.Refused(source, "no loose equality operator at reported position")
	}

	strict := "==="
	if op == "!=" {
		strict = "!=="
	}

	out, err := fix.ReplaceRange(source, off, off+2, strict)
	if err != nil {
		return fix.Refused(source, err.Error())
	}
	return fix.Applied(out, "replaced "+op+" with "+strict)
}

// Validate requires the changed region to be a single added equals sign.
func (f *EqeqeqFixer) Validate(before, after string) bool {
	if after == before || len(after) != len(before)+1 {
		return false
	}
	_, _, fixed := fix.DiffRegion(before, after)
	return strings.Contains(fixed, "=")
}

// SpaceInfixOpsFixer inserts spaces around an unspaced binary operator.
type SpaceInfixOpsFixer struct {
	fix.BaseFixer
}

// NewSpaceInfixOpsFixer creates a fixer for space-infix-ops.
func NewSpaceInfixOpsFixer() *SpaceInfixOpsFixer {
	return &SpaceInfixOpsFixer{
		BaseFixer: fix.NewBaseFixer(
			"space-infix-ops",
			"space-infix-ops",
			"Inserts spaces around binary operators",
		),
	}
}

var operatorMessageRe = regexp.MustCompile(`[Oo]perator '([^']+)'`)

// reportedOperator extracts the operator named in the diagnostic message.
func (f *SpaceInfixOpsFixer) reportedOperator(d fix.Diagnostic) (string, bool) {
	m := operatorMessageRe.FindStringSubmatch(d.Message)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// CanFix reports whether the named operator sits unspaced at the position.
func (f *SpaceInfixOpsFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}
	op, ok := f.reportedOperator(d)
	if !ok {
		return false
	}

	off, ok := scan.New(source).OffsetOf(d.Line, d.Column)
	if !ok || !strings.HasPrefix(source[off:], op) {
		return false
	}

	spacedBefore := off > 0 && source[off-1] == ' '
	spacedAfter := off+len(op) < len(source) && source[off+len(op)] == ' '
	return !spacedBefore || !spacedAfter
}

// Fix pads the operator with single spaces on both sides.
func (f *SpaceInfixOpsFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	op, ok := f.reportedOperator(d)
	if !ok {
		return fix.Refused(source, "message does not name an operator")
	}

	off, ok := scan.New(source).OffsetOf(d.Line, d.Column)
	if !ok || !strings.HasPrefix(source[off:], op) {
		return fix.Refused(source, "operator not found at reported position")
	}

	replacement := op
	if off == 0 || source[off-1] != ' ' {
		replacement = " " + replacement
	}
	if end := off + len(op); end >= len(source) || source[end] != ' ' {
		replacement += " "
	}
	if replacement == op {
		return fix.Refused(source, "operator already spaced")
	}

	out, err := fix.ReplaceRange(source, off, off+len(op), replacement)
	if err != nil {
		return fix.Refused(source, err.Error())
	}
	return fix.Applied(out, "spaced operator "+op)
}

// Validate requires the output to have grown by the inserted spaces only.
func (f *SpaceInfixOpsFixer) Validate(before, after string) bool {
	grown := len(after) - len(before)
	return after != before && grown >= 1 && grown <= 2 &&
		strings.Count(after, "\n") == strings.Count(before, "\n")
}
