package fixers

import (
	"strings"

	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/scan"
)

// TrailingSpaceFixer removes trailing whitespace on the diagnostic line.
type TrailingSpaceFixer struct {
	fix.BaseFixer
}

// NewTrailingSpaceFixer creates a fixer for no-trailing-spaces.
func NewTrailingSpaceFixer() *TrailingSpaceFixer {
	return &TrailingSpaceFixer{
		BaseFixer: fix.NewBaseFixer(
			"no-trailing-spaces",
			"trailing-spaces",
			"Removes whitespace at the end of the reported line",
		),
	}
}

// CanFix reports whether the line carries removable trailing whitespace.
func (f *TrailingSpaceFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}
	a := scan.New(source)
	line, ok := a.Line(d.Line)
	if !ok {
		return false
	}
	return line != strings.TrimRight(line, " \t")
}

// Fix trims the line in place.
func (f *TrailingSpaceFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	a := scan.New(source)
	line, ok := a.Line(d.Line)
	if !ok {
		return fix.Refused(source, "line out of range")
	}

	trimmed := strings.TrimRight(line, " \t")
	if trimmed == line {
		return fix.Refused(source, "no trailing whitespace on line")
	}

	start, end, _ := lineSpan(a, d.Line)
	out, err := fix.ReplaceRange(source, start+len(trimmed), end, "")
	if err != nil {
		return fix.Refused(source, err.Error())
	}
	return fix.Applied(out, "removed trailing whitespace")
}

// Validate requires the output to be strictly shorter.
func (f *TrailingSpaceFixer) Validate(before, after string) bool {
	return after != before && len(after) < len(before)
}

// MultipleEmptyLinesFixer collapses runs of blank lines.
type MultipleEmptyLinesFixer struct {
	fix.BaseFixer
}

// NewMultipleEmptyLinesFixer creates a fixer for no-multiple-empty-lines.
func NewMultipleEmptyLinesFixer() *MultipleEmptyLinesFixer {
	return &MultipleEmptyLinesFixer{
		BaseFixer: fix.NewBaseFixer(
			"no-multiple-empty-lines",
			"multiple-empty-lines",
			"Collapses consecutive blank lines down to a single blank line",
		),
	}
}

func isBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// blankRun finds the [first, last] line numbers of the blank run containing
// the given line.
func blankRun(a *scan.Analyzer, line int) (int, int, bool) {
	text, ok := a.Line(line)
	if !ok || !isBlank(text) {
		return 0, 0, false
	}

	first := line
	for first > 1 {
		prev, _ := a.Line(first - 1)
		if !isBlank(prev) {
			break
		}
		first--
	}

	last := line
	for last < a.LineCount() {
		next, ok := a.Line(last + 1)
		if !ok || !isBlank(next) {
			break
		}
		last++
	}
	return first, last, true
}

// CanFix reports whether the diagnostic sits in a run of two or more blank
// lines.
func (f *MultipleEmptyLinesFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}
	first, last, ok := blankRun(scan.New(source), d.Line)
	return ok && last > first
}

// Fix keeps the first blank line of the run and deletes the rest.
func (f *MultipleEmptyLinesFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	a := scan.New(source)
	first, last, ok := blankRun(a, d.Line)
	if !ok || last == first {
		return fix.Refused(source, "no blank-line run at position")
	}

	delStart, _ := a.LineStart(first + 1)
	var delEnd int
	if last < a.LineCount() {
		delEnd, _ = a.LineStart(last + 1)
	} else {
		delEnd = len(source)
	}

	out, err := fix.ReplaceRange(source, delStart, delEnd, "")
	if err != nil {
		return fix.Refused(source, err.Error())
	}
	return fix.Applied(out, "collapsed blank lines")
}

// Validate requires fewer newlines than before.
func (f *MultipleEmptyLinesFixer) Validate(before, after string) bool {
	return after != before &&
		strings.Count(after, "\n") < strings.Count(before, "\n")
}

// FinalNewlineFixer ensures the source ends with exactly one newline.
type FinalNewlineFixer struct {
	fix.BaseFixer
}

// NewFinalNewlineFixer creates a fixer for eol-last.
func NewFinalNewlineFixer() *FinalNewlineFixer {
	return &FinalNewlineFixer{
		BaseFixer: fix.NewBaseFixer(
			"eol-last",
			"eol-last",
			"Ensures the file ends with a single newline character",
		),
	}
}

// CanFix reports whether the file ending needs repair.
func (f *FinalNewlineFixer) CanFix(source string, d fix.Diagnostic) bool {
	if source == "" || !safeToEdit(source, d) {
		return false
	}
	if !strings.HasSuffix(source, "\n") {
		return true
	}
	return strings.HasSuffix(source, "\n\n")
}

// Fix normalizes the file ending to a single newline.
func (f *FinalNewlineFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	if source == "" {
		return fix.Refused(source, "empty source")
	}

	trimmed := strings.TrimRight(source, "\n")
	if trimmed+"\n" == source {
		return fix.Refused(source, "file already ends with a single newline")
	}
	return fix.Applied(trimmed+"\n", "normalized final newline")
}

// Validate requires the output to end with exactly one newline.
func (f *FinalNewlineFixer) Validate(before, after string) bool {
	return after != before &&
		strings.HasSuffix(after, "\n") && !strings.HasSuffix(after, "\n\n")
}
