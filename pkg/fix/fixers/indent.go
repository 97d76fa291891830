package fixers

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/scan"
)

// IndentFixer re-indents the reported line to the expected width parsed
// from the diagnostic message.
type IndentFixer struct {
	fix.BaseFixer
}

// NewIndentFixer creates a fixer for indent.
func NewIndentFixer() *IndentFixer {
	return &IndentFixer{
		BaseFixer: fix.NewBaseFixer(
			"indent",
			"indent",
			"Re-indents a line to the expected number of spaces",
		),
	}
}

var indentMessageRe = regexp.MustCompile(`[Ee]xpected indentation of (\d+) spaces?`)

// expectedIndent parses the expected indentation width from the message.
func (f *IndentFixer) expectedIndent(d fix.Diagnostic) (int, bool) {
	m := indentMessageRe.FindStringSubmatch(d.Message)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		return 0, false
	}
	return n, true
}

// CanFix reports whether the line's indentation differs from the expected
// width.
func (f *IndentFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, fix.Diagnostic{RuleID: d.RuleID, Line: d.Line, Column: 1}) {
		return false
	}
	want, ok := f.expectedIndent(d)
	if !ok {
		return false
	}
	line, ok := scan.New(source).Line(d.Line)
	if !ok || strings.TrimSpace(line) == "" {
		return false
	}
	return indentOf(line) != strings.Repeat(" ", want)
}

// Fix replaces the line's leading whitespace.
func (f *IndentFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	want, ok := f.expectedIndent(d)
	if !ok {
		return fix.Refused(source, "message does not state expected indentation")
	}

	a := scan.New(source)
	line, ok := a.Line(d.Line)
	if !ok {
		return fix.Refused(source, "line out of range")
	}

	indent := indentOf(line)
	target := strings.Repeat(" ", want)
	if indent == target {
		return fix.Refused(source, "line already at expected indentation")
	}

	start, _ := a.LineStart(d.Line)
	out, err := fix.ReplaceRange(source, start, start+len(indent), target)
	if err != nil {
		return fix.Refused(source, err.Error())
	}
	return fix.Applied(out, "re-indented line to "+strconv.Itoa(want)+" spaces")
}

// Validate requires an indentation-only change: same line count, same
// trimmed content.
func (f *IndentFixer) Validate(before, after string) bool {
	if after == before {
		return false
	}
	if strings.Count(after, "\n") != strings.Count(before, "\n") {
		return false
	}
	_, orig, fixed := fix.DiffRegion(before, after)
	return strings.TrimSpace(orig) == "" && strings.TrimSpace(fixed) == ""
}
