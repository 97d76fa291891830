package fixers

import (
	"strings"

	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/scan"
)

// ArrowCallbackFixer rewrites an anonymous function expression callback as
// an arrow function. Functions that reference this or arguments change
// meaning under that rewrite and are refused.
type ArrowCallbackFixer struct {
	fix.BaseFixer
}

// NewArrowCallbackFixer creates a fixer for prefer-arrow-callback.
func NewArrowCallbackFixer() *ArrowCallbackFixer {
	return &ArrowCallbackFixer{
		BaseFixer: fix.NewBaseFixer(
			"prefer-arrow-callback",
			"arrow-callback",
			"Rewrites anonymous callback functions as arrow functions",
		),
	}
}

// callback describes a matched anonymous function expression.
type callback struct {
	funcStart  int // offset of the function keyword
	parenOpen  int // opening paren of the parameter list
	parenClose int // its matching close
	bodyOpen   int // opening brace of the body
	bodyClose  int // its matching close
}

// matchCallback parses the anonymous function expression on the diagnostic
// line. Named function expressions are skipped; their name may be used for
// recursion.
func (f *ArrowCallbackFixer) matchCallback(source string, a *scan.Analyzer, mask []bool, line int) (callback, bool) {
	start, end, ok := lineSpan(a, line)
	if !ok {
		return callback{}, false
	}

	for _, off := range occurrences(source, mask, "function", start, end) {
		cb, ok := f.parseAt(source, mask, off)
		if ok {
			return cb, true
		}
	}
	return callback{}, false
}

func (f *ArrowCallbackFixer) parseAt(source string, mask []bool, funcStart int) (callback, bool) {
	cb := callback{funcStart: funcStart}

	i := funcStart + len("function")
	for i < len(source) && (source[i] == ' ' || source[i] == '\t') {
		i++
	}
	if i >= len(source) || source[i] != '(' {
		return callback{}, false
	}
	cb.parenOpen = i

	depth := 0
	cb.parenClose = -1
	for j := i; j < len(source); j++ {
		if j < len(mask) && !mask[j] {
			continue
		}
		switch source[j] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				cb.parenClose = j
			}
		}
		if cb.parenClose >= 0 {
			break
		}
	}
	if cb.parenClose < 0 {
		return callback{}, false
	}

	j := cb.parenClose + 1
	for j < len(source) && (source[j] == ' ' || source[j] == '\t' || source[j] == '\n') {
		j++
	}
	if j >= len(source) || source[j] != '{' {
		return callback{}, false
	}
	cb.bodyOpen = j
	cb.bodyClose = matchBrace(source, mask, j)
	return cb, cb.bodyClose >= 0
}

// bindingSafe checks that the function body never touches this or
// arguments, directly or through a nested function that the rewrite would
// not shield.
func (f *ArrowCallbackFixer) bindingSafe(source string, mask []bool, cb callback) bool {
	return len(occurrences(source, mask, "this", cb.bodyOpen, cb.bodyClose)) == 0 &&
		len(occurrences(source, mask, "arguments", cb.bodyOpen, cb.bodyClose)) == 0
}

// CanFix reports whether the callback can become an arrow function.
func (f *ArrowCallbackFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}

	a := scan.New(source)
	mask := scan.CodeMask(source)
	cb, ok := f.matchCallback(source, a, mask, d.Line)
	return ok && f.bindingSafe(source, mask, cb)
}

// Fix drops the function keyword and joins parameters and body with an
// arrow.
func (f *ArrowCallbackFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	a := scan.New(source)
	mask := scan.CodeMask(source)

	cb, ok := f.matchCallback(source, a, mask, d.Line)
	if !ok {
		return fix.Refused(source, "no anonymous function expression on reported line")
	}
	if !f.bindingSafe(source, mask, cb) {
		return fix.Refused(source, "function body references this or arguments")
	}

	out := source[:cb.funcStart] +
		source[cb.parenOpen:cb.parenClose+1] +
		" => " +
		source[cb.bodyOpen:]
	return fix.Applied(out, "rewrote callback as arrow function")
}

// Validate requires one function keyword to disappear and an arrow to
// appear with brackets staying balanced.
func (f *ArrowCallbackFixer) Validate(before, after string) bool {
	if after == before {
		return false
	}
	beforeMask := scan.CodeMask(before)
	afterMask := scan.CodeMask(after)
	if countToken(after, afterMask, "function") != countToken(before, beforeMask, "function")-1 {
		return false
	}
	if strings.Count(after, "=>") != strings.Count(before, "=>")+1 {
		return false
	}
	return strings.Count(after, "(") == strings.Count(after, ")") &&
		strings.Count(after, "{") == strings.Count(after, "}")
}
