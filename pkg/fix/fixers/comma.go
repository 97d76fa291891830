package fixers

import (
	"strings"

	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/scan"
)

// CommaDangleFixer adds or removes a trailing comma, as directed by the
// diagnostic message.
type CommaDangleFixer struct {
	fix.BaseFixer
}

// NewCommaDangleFixer creates a fixer for comma-dangle.
func NewCommaDangleFixer() *CommaDangleFixer {
	return &CommaDangleFixer{
		BaseFixer: fix.NewBaseFixer(
			"comma-dangle",
			"comma-dangle",
			"Adds missing trailing commas and removes unexpected ones",
		),
	}
}

func (f *CommaDangleFixer) missing(d fix.Diagnostic) bool {
	return strings.Contains(strings.ToLower(d.Message), "missing")
}

// CanFix reports whether the comma repair applies at the position.
func (f *CommaDangleFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}
	off, ok := scan.New(source).OffsetOf(d.Line, d.Column)
	if !ok {
		return false
	}

	if f.missing(d) {
		return off <= len(source)
	}
	return commaAt(source, off) >= 0
}

// commaAt returns the offset of the comma at or just before off, or -1.
func commaAt(source string, off int) int {
	if off < len(source) && source[off] == ',' {
		return off
	}
	if off > 0 && source[off-1] == ',' {
		return off - 1
	}
	return -1
}

// Fix applies the comma repair.
func (f *CommaDangleFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	off, ok := scan.New(source).OffsetOf(d.Line, d.Column)
	if !ok {
		return fix.Refused(source, "position out of range")
	}

	if f.missing(d) {
		if off < len(source) && source[off] == ',' {
			return fix.Refused(source, "comma already present")
		}
		out, err := fix.ReplaceRange(source, off, off, ",")
		if err != nil {
			return fix.Refused(source, err.Error())
		}
		return fix.Applied(out, "inserted trailing comma")
	}

	at := commaAt(source, off)
	if at < 0 {
		return fix.Refused(source, "no comma at reported position")
	}
	out, err := fix.ReplaceRange(source, at, at+1, "")
	if err != nil {
		return fix.Refused(source, err.Error())
	}
	return fix.Applied(out, "removed trailing comma")
}

// Validate requires the comma count to change by exactly one.
func (f *CommaDangleFixer) Validate(before, after string) bool {
	if after == before {
		return false
	}
	delta := strings.Count(after, ",") - strings.Count(before, ",")
	return delta == 1 || delta == -1
}
