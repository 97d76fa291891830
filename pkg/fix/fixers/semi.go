package fixers

import (
	"strings"

	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/scan"
)

// SemiFixer inserts a missing statement terminator, or removes an extra one
// when the diagnostic message says so.
type SemiFixer struct {
	fix.BaseFixer
}

// NewSemiFixer creates a fixer for semi.
func NewSemiFixer() *SemiFixer {
	return &SemiFixer{
		BaseFixer: fix.NewBaseFixer(
			"semi",
			"semi",
			"Inserts missing statement terminators and removes extra ones",
		),
	}
}

func (f *SemiFixer) missing(d fix.Diagnostic) bool {
	return strings.Contains(strings.ToLower(d.Message), "missing")
}

// CanFix reports whether the terminator repair applies at the position.
func (f *SemiFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}

	a := scan.New(source)
	seg, _, ok := lineCode(source, a, d.Line)
	if !ok || seg == "" {
		return false
	}

	if f.missing(d) {
		return !strings.HasSuffix(seg, ";")
	}
	return strings.Contains(seg, ";")
}

// lineCode returns the line's content with any trailing line comment and
// trailing whitespace removed, plus the absolute offset just past it.
func lineCode(source string, a *scan.Analyzer, line int) (string, int, bool) {
	text, ok := a.Line(line)
	if !ok {
		return "", 0, false
	}
	start, _ := a.LineStart(line)

	mask := scan.CodeMask(source)
	lineEnd := start + len(text)
	codeEnd := lineEnd
	for i := start; i+1 < lineEnd; i++ {
		if source[i] == '/' && source[i+1] == '/' && (i >= len(mask) || mask[i]) {
			codeEnd = i
			break
		}
	}

	seg := strings.TrimRight(source[start:codeEnd], " \t")
	return seg, start + len(seg), true
}

// Fix applies the terminator repair.
func (f *SemiFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	a := scan.New(source)

	if f.missing(d) {
		// Insert before any trailing line comment, not after it.
		seg, insertAt, ok := lineCode(source, a, d.Line)
		if !ok {
			return fix.Refused(source, "line out of range")
		}
		if seg == "" || strings.HasSuffix(seg, ";") {
			return fix.Refused(source, "no insertion point on line")
		}
		out, err := fix.ReplaceRange(source, insertAt, insertAt, ";")
		if err != nil {
			return fix.Refused(source, err.Error())
		}
		return fix.Applied(out, "inserted missing semicolon")
	}

	// Extra semicolon: remove the one at the reported column.
	off, ok := a.OffsetOf(d.Line, d.Column)
	if !ok {
		return fix.Refused(source, "position out of range")
	}
	if off >= len(source) || source[off] != ';' {
		// The linter may report the column just after the semicolon.
		if off > 0 && source[off-1] == ';' {
			off--
		} else {
			return fix.Refused(source, "no semicolon at reported position")
		}
	}
	out, err := fix.ReplaceRange(source, off, off+1, "")
	if err != nil {
		return fix.Refused(source, err.Error())
	}
	return fix.Applied(out, "removed extra semicolon")
}

// Validate requires the semicolon count to change by exactly one.
func (f *SemiFixer) Validate(before, after string) bool {
	if after == before {
		return false
	}
	delta := strings.Count(after, ";") - strings.Count(before, ";")
	return delta == 1 || delta == -1
}

// ExtraSemiFixer collapses duplicate terminators into one, or deletes a
// lone stray terminator.
type ExtraSemiFixer struct {
	fix.BaseFixer
}

// NewExtraSemiFixer creates a fixer for no-extra-semi.
func NewExtraSemiFixer() *ExtraSemiFixer {
	return &ExtraSemiFixer{
		BaseFixer: fix.NewBaseFixer(
			"no-extra-semi",
			"extra-semi",
			"Collapses duplicate statement terminators",
		),
	}
}

// semiRun locates the run of consecutive semicolons around offset.
func semiRun(source string, off int) (int, int, bool) {
	if off >= len(source) || source[off] != ';' {
		if off > 0 && source[off-1] == ';' {
			off--
		} else {
			return 0, 0, false
		}
	}
	start := off
	for start > 0 && source[start-1] == ';' {
		start--
	}
	end := off + 1
	for end < len(source) && source[end] == ';' {
		end++
	}
	return start, end, true
}

// CanFix reports whether a semicolon sits at the reported position.
func (f *ExtraSemiFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}
	off, ok := scan.New(source).OffsetOf(d.Line, d.Column)
	if !ok {
		return false
	}
	_, _, found := semiRun(source, off)
	return found
}

// Fix collapses the run to a single terminator, or removes a lone stray one.
func (f *ExtraSemiFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	off, ok := scan.New(source).OffsetOf(d.Line, d.Column)
	if !ok {
		return fix.Refused(source, "position out of range")
	}

	start, end, found := semiRun(source, off)
	if !found {
		return fix.Refused(source, "no semicolon at reported position")
	}

	replacement := ";"
	if end-start == 1 {
		// A lone reported semicolon is an empty statement; drop it.
		replacement = ""
	}

	out, err := fix.ReplaceRange(source, start, end, replacement)
	if err != nil {
		return fix.Refused(source, err.Error())
	}
	return fix.Applied(out, "removed unnecessary semicolon")
}

// Validate requires fewer semicolons than before.
func (f *ExtraSemiFixer) Validate(before, after string) bool {
	return after != before &&
		strings.Count(after, ";") < strings.Count(before, ";")
}
