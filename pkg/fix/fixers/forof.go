package fixers

import (
	"regexp"
	"strings"

	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/scan"
)

// forHeaderRe matches a counted loop that walks a collection front to back:
// for (let i = 0; i < coll.length; i++). The index keyword, name, and the
// collection expression are captured.
var forHeaderRe = regexp.MustCompile(
	`for\s*\(\s*(var|let)\s+([A-Za-z_$][A-Za-z0-9_$]*)\s*=\s*0\s*;` +
		`\s*([A-Za-z_$][A-Za-z0-9_$]*)\s*<\s*([A-Za-z_$][A-Za-z0-9_$.]*)\.length\s*;` +
		`\s*(?:([A-Za-z_$][A-Za-z0-9_$]*)\+\+|\+\+([A-Za-z_$][A-Za-z0-9_$]*))\s*\)`,
)

// forLoop describes a matched counted loop.
type forLoop struct {
	headerStart int    // offset of the for keyword
	headerEnd   int    // offset just past the closing paren
	keyword     string // var or let
	index       string // index variable name
	collection  string // collection expression
	bodyOpen    int    // offset of the body's opening brace
	bodyClose   int    // offset of the body's closing brace
}

// ForOfFixer rewrites counted index loops into for-of loops when the index
// variable is only ever used to subscript the iterated collection.
type ForOfFixer struct {
	fix.BaseFixer
}

// NewForOfFixer creates a fixer for prefer-for-of.
func NewForOfFixer() *ForOfFixer {
	return &ForOfFixer{
		BaseFixer: fix.NewBaseFixer(
			"prefer-for-of",
			"prefer-for-of",
			"Rewrites counted collection loops as for-of loops",
		),
	}
}

// matchLoop locates and parses the counted loop on the diagnostic line.
func (f *ForOfFixer) matchLoop(source string, a *scan.Analyzer, mask []bool, line int) (forLoop, bool) {
	start, end, ok := lineSpan(a, line)
	if !ok {
		return forLoop{}, false
	}

	m := forHeaderRe.FindStringSubmatchIndex(source[start:end])
	if m == nil {
		return forLoop{}, false
	}

	sub := func(i int) string {
		if m[2*i] < 0 {
			return ""
		}
		return source[start+m[2*i] : start+m[2*i+1]]
	}

	lp := forLoop{
		headerStart: start + m[0],
		headerEnd:   start + m[1],
		keyword:     sub(1),
		index:       sub(2),
		collection:  sub(4),
	}

	// All three index positions must name the same variable.
	update := sub(5)
	if update == "" {
		update = sub(6)
	}
	if sub(3) != lp.index || update != lp.index {
		return forLoop{}, false
	}

	// Only braced bodies are rewritten.
	open := lp.headerEnd
	for open < len(source) && (source[open] == ' ' || source[open] == '\t') {
		open++
	}
	if open >= len(source) || source[open] != '{' {
		return forLoop{}, false
	}
	close := matchBrace(source, mask, open)
	if close < 0 {
		return forLoop{}, false
	}
	lp.bodyOpen, lp.bodyClose = open, close
	return lp, true
}

// subscriptSpan expands an index occurrence to the surrounding coll[index]
// expression, returning the span covering collection through the closing
// bracket.
func subscriptSpan(source string, lp forLoop, off int) (int, int, bool) {
	// Backwards over whitespace to the opening bracket.
	i := off - 1
	for i >= 0 && (source[i] == ' ' || source[i] == '\t') {
		i--
	}
	if i < 0 || source[i] != '[' {
		return 0, 0, false
	}
	// The bracket must be subscripting the iterated collection.
	exprStart := i - len(lp.collection)
	if exprStart < 0 || source[exprStart:i] != lp.collection {
		return 0, 0, false
	}
	if exprStart > 0 && isIdentByte(source[exprStart-1]) {
		return 0, 0, false
	}

	// Forwards over whitespace to the closing bracket.
	j := off + len(lp.index)
	for j < len(source) && (source[j] == ' ' || source[j] == '\t') {
		j++
	}
	if j >= len(source) || source[j] != ']' {
		return 0, 0, false
	}
	return exprStart, j + 1, true
}

// elementName picks a name for the iterated element that does not collide
// with anything already referenced in the loop body.
func (f *ForOfFixer) elementName(source string, mask []bool, lp forLoop) (string, bool) {
	base := lp.collection
	if dot := strings.LastIndexByte(base, '.'); dot >= 0 {
		base = base[dot+1:]
	}

	for _, candidate := range []string{singularize(base), "item", "entry"} {
		if candidate == "" || candidate == base || candidate == lp.index {
			continue
		}
		if len(occurrences(source, mask, candidate, lp.bodyOpen, lp.bodyClose)) == 0 {
			return candidate, true
		}
	}
	return "", false
}

// rewrite builds the fix: body subscripts first, back to front, then the
// loop header.
func (f *ForOfFixer) rewrite(source string, mask []bool, lp forLoop) (string, bool) {
	uses := occurrences(source, mask, lp.index, lp.bodyOpen, lp.bodyClose)
	spans := make([][2]int, 0, len(uses))
	for _, off := range uses {
		s, e, ok := subscriptSpan(source, lp, off)
		if !ok {
			return "", false // index used outside a collection subscript
		}
		spans = append(spans, [2]int{s, e})
	}

	elem, ok := f.elementName(source, mask, lp)
	if !ok {
		return "", false
	}

	out := source
	for i := len(spans) - 1; i >= 0; i-- {
		replaced, err := fix.ReplaceRange(out, spans[i][0], spans[i][1], elem)
		if err != nil {
			return "", false
		}
		out = replaced
	}

	header := "for (const " + elem + " of " + lp.collection + ")"
	replaced, err := fix.ReplaceRange(out, lp.headerStart, lp.headerEnd, header)
	if err != nil {
		return "", false
	}
	return replaced, true
}

// CanFix reports whether the counted loop can become a for-of loop.
func (f *ForOfFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}

	a := scan.New(source)
	mask := scan.CodeMask(source)
	lp, ok := f.matchLoop(source, a, mask, d.Line)
	if !ok {
		return false
	}

	// A var index visible after the loop cannot be removed.
	if lp.keyword == "var" {
		_, blockEnd := enclosingBlock(source, mask, lp.headerStart)
		if len(occurrences(source, mask, lp.index, lp.bodyClose+1, blockEnd)) > 0 {
			return false
		}
	}

	_, rewritable := f.rewrite(source, mask, lp)
	return rewritable
}

// Fix rewrites the loop header and every collection subscript in the body.
func (f *ForOfFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	a := scan.New(source)
	mask := scan.CodeMask(source)

	lp, ok := f.matchLoop(source, a, mask, d.Line)
	if !ok {
		return fix.Refused(source, "no convertible counted loop on reported line")
	}

	out, ok := f.rewrite(source, mask, lp)
	if !ok {
		return fix.Refused(source, "index variable is used beyond subscripting the collection")
	}
	return fix.Applied(out, "rewrote counted loop as for-of")
}

// Validate requires the for count to hold steady while an of keyword
// appears and brackets stay balanced.
func (f *ForOfFixer) Validate(before, after string) bool {
	if after == before {
		return false
	}
	beforeMask := scan.CodeMask(before)
	afterMask := scan.CodeMask(after)
	if countToken(after, afterMask, "for") != countToken(before, beforeMask, "for") {
		return false
	}
	if countToken(after, afterMask, "of") <= countToken(before, beforeMask, "of") {
		return false
	}
	return strings.Count(after, "{") == strings.Count(after, "}") &&
		strings.Count(after, "(") == strings.Count(after, ")")
}
