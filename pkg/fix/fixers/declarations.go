package fixers

import (
	"regexp"
	"strings"

	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/scan"
)

// identMessageRe extracts the identifier a diagnostic message names, e.g.
// "'count' is never reassigned".
var identMessageRe = regexp.MustCompile(`'([A-Za-z_$][A-Za-z0-9_$]*)'`)

func reportedIdent(d fix.Diagnostic) (string, bool) {
	m := identMessageRe.FindStringSubmatch(d.Message)
	if m == nil {
		return "", false
	}
	return m[1], true
}

// declarationAt finds the given declaration keyword on the diagnostic line,
// restricted to code-masked positions. Returns the keyword's offset.
func declarationAt(source string, a *scan.Analyzer, mask []bool, line int, keyword string) (int, bool) {
	start, end, ok := lineSpan(a, line)
	if !ok {
		return 0, false
	}
	offs := occurrences(source, mask, keyword, start, end)
	if len(offs) == 0 {
		return 0, false
	}
	return offs[0], true
}

// declStatement describes one parsed declaration statement.
type declStatement struct {
	keywordOff int        // offset of var/let/const
	keyword    string     // the declaration keyword
	end        int        // offset just past the statement (after ; or at \n)
	bodyOff    int        // absolute offset of the body's first byte
	body       string     // text between keyword and terminator
	terminated bool       // statement ends with ;
	names      []string   // declared names in order
	decls      []string   // raw declarator texts in order
	spans      []declSpan // declarator ranges, relative to body
}

// parseDeclaration parses the declaration statement whose keyword starts at
// keywordOff.
func parseDeclaration(source string, mask []bool, keywordOff int, keyword string) declStatement {
	end := statementEnd(source, mask, keywordOff)

	bodyStart := keywordOff + len(keyword)
	bodyEnd := end
	terminated := false
	if bodyEnd > bodyStart && source[bodyEnd-1] == ';' {
		terminated = true
		bodyEnd--
	}
	body := source[bodyStart:bodyEnd]

	st := declStatement{
		keywordOff: keywordOff,
		keyword:    keyword,
		end:        end,
		bodyOff:    bodyStart,
		body:       body,
		terminated: terminated,
	}
	for _, sp := range splitDeclarators(body, mask, bodyStart) {
		decl := body[sp.start:sp.end]
		st.decls = append(st.decls, decl)
		st.names = append(st.names, declaratorName(decl))
		st.spans = append(st.spans, sp)
	}
	return st
}

// NoVarFixer re-scopes a legacy var declaration to let. The conversion is
// refused when the binding's usage depends on function-scoped hoisting:
// any occurrence before the declaration, or outside the declaration's
// enclosing block.
type NoVarFixer struct {
	fix.BaseFixer
}

// NewNoVarFixer creates a fixer for no-var.
func NewNoVarFixer() *NoVarFixer {
	return &NoVarFixer{
		BaseFixer: fix.NewBaseFixer(
			"no-var",
			"no-var",
			"Replaces var declarations with let where block scoping is safe",
		),
	}
}

// rescopeSafe checks that every declared name is only used inside the
// declaration's enclosing block and never before the declaration.
func (f *NoVarFixer) rescopeSafe(source string, mask []bool, st declStatement) bool {
	_, blockEnd := enclosingBlock(source, mask, st.keywordOff)

	for _, name := range st.names {
		if name == "" {
			return false
		}
		for _, off := range occurrences(source, mask, name, 0, len(source)) {
			if off < st.keywordOff || off >= blockEnd {
				return false
			}
		}
	}
	return true
}

// CanFix reports whether the var declaration can be safely re-scoped.
func (f *NoVarFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}

	a := scan.New(source)
	mask := scan.CodeMask(source)
	off, ok := declarationAt(source, a, mask, d.Line, "var")
	if !ok {
		return false
	}

	st := parseDeclaration(source, mask, off, "var")
	return f.rescopeSafe(source, mask, st)
}

// Fix replaces the var keyword with let.
func (f *NoVarFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	a := scan.New(source)
	mask := scan.CodeMask(source)

	off, ok := declarationAt(source, a, mask, d.Line, "var")
	if !ok {
		return fix.Refused(source, "no var declaration on reported line")
	}

	st := parseDeclaration(source, mask, off, "var")
	if !f.rescopeSafe(source, mask, st) {
		return fix.Refused(source, "binding usage relies on function scoping")
	}

	out, err := fix.ReplaceRange(source, off, off+len("var"), "let")
	if err != nil {
		return fix.Refused(source, err.Error())
	}
	return fix.Applied(out, "re-scoped var declaration to let")
}

// Validate requires exactly one var to become a let.
func (f *NoVarFixer) Validate(before, after string) bool {
	if after == before {
		return false
	}
	beforeMask := scan.CodeMask(before)
	afterMask := scan.CodeMask(after)
	return countToken(after, afterMask, "var") == countToken(before, beforeMask, "var")-1 &&
		countToken(after, afterMask, "let") == countToken(before, beforeMask, "let")+1
}

// PreferConstFixer declares a let binding const when no occurrence after
// the declaration reassigns it. A declaration naming several bindings is
// converted only when every binding qualifies.
type PreferConstFixer struct {
	fix.BaseFixer
}

// NewPreferConstFixer creates a fixer for prefer-const.
func NewPreferConstFixer() *PreferConstFixer {
	return &PreferConstFixer{
		BaseFixer: fix.NewBaseFixer(
			"prefer-const",
			"prefer-const",
			"Declares never-reassigned let bindings as const",
		),
	}
}

// constSafe checks that every name in the declaration has an initializer
// and is never reassigned afterwards.
func (f *PreferConstFixer) constSafe(source string, mask []bool, st declStatement) bool {
	_, blockEnd := enclosingBlock(source, mask, st.keywordOff)

	for i, name := range st.names {
		if name == "" {
			return false
		}
		if !strings.Contains(st.decls[i], "=") {
			return false // no initializer; const requires one
		}

		for _, off := range occurrences(source, mask, name, st.end, blockEnd) {
			if classifyOccurrence(source, off, len(name)) == occWrite {
				return false
			}
		}
	}
	return true
}

// CanFix reports whether the let declaration can become const.
func (f *PreferConstFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}

	a := scan.New(source)
	mask := scan.CodeMask(source)
	off, ok := declarationAt(source, a, mask, d.Line, "let")
	if !ok {
		return false
	}

	st := parseDeclaration(source, mask, off, "let")
	return f.constSafe(source, mask, st)
}

// Fix replaces the let keyword with const.
func (f *PreferConstFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	a := scan.New(source)
	mask := scan.CodeMask(source)

	off, ok := declarationAt(source, a, mask, d.Line, "let")
	if !ok {
		return fix.Refused(source, "no let declaration on reported line")
	}

	st := parseDeclaration(source, mask, off, "let")
	if !f.constSafe(source, mask, st) {
		return fix.Refused(source, "binding is reassigned or lacks an initializer")
	}

	out, err := fix.ReplaceRange(source, off, off+len("let"), "const")
	if err != nil {
		return fix.Refused(source, err.Error())
	}
	return fix.Applied(out, "declared binding const")
}

// Validate requires exactly one let to become a const.
func (f *PreferConstFixer) Validate(before, after string) bool {
	if after == before {
		return false
	}
	beforeMask := scan.CodeMask(before)
	afterMask := scan.CodeMask(after)
	return countToken(after, afterMask, "let") == countToken(before, beforeMask, "let")-1 &&
		countToken(after, afterMask, "const") == countToken(before, beforeMask, "const")+1
}

// UnusedVarsFixer removes an unused binding from its declaration statement.
// When several names share the statement, the remainder are rejoined with a
// comma-space separator; the statement is deleted entirely only when no
// names remain.
type UnusedVarsFixer struct {
	fix.BaseFixer
}

// NewUnusedVarsFixer creates a fixer for no-unused-vars.
func NewUnusedVarsFixer() *UnusedVarsFixer {
	return &UnusedVarsFixer{
		BaseFixer: fix.NewBaseFixer(
			"no-unused-vars",
			"unused-vars",
			"Removes declarations of bindings that are never used",
		),
	}
}

// locate finds the declaration statement containing the reported name on
// the diagnostic line.
func (f *UnusedVarsFixer) locate(source string, a *scan.Analyzer, mask []bool, d fix.Diagnostic) (declStatement, int, bool) {
	name, ok := reportedIdent(d)
	if !ok {
		return declStatement{}, 0, false
	}

	for _, keyword := range []string{"const", "let", "var"} {
		off, found := declarationAt(source, a, mask, d.Line, keyword)
		if !found {
			continue
		}
		st := parseDeclaration(source, mask, off, keyword)
		for i, n := range st.names {
			if n == name {
				return st, i, true
			}
		}
	}
	return declStatement{}, 0, false
}

// removable checks that the binding has no occurrences outside its own
// declaration and that removing its initializer cannot drop a side effect.
func (f *UnusedVarsFixer) removable(source string, mask []bool, st declStatement, idx int) bool {
	name := st.names[idx]

	for _, off := range occurrences(source, mask, name, 0, len(source)) {
		if off < st.keywordOff || off >= st.end {
			return false
		}
	}

	// A call in the initializer may carry a side effect; leave it alone.
	return !strings.Contains(st.decls[idx], "(")
}

// CanFix reports whether the unused binding can be removed.
func (f *UnusedVarsFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}

	a := scan.New(source)
	mask := scan.CodeMask(source)
	st, idx, ok := f.locate(source, a, mask, d)
	return ok && f.removable(source, mask, st, idx)
}

// Fix removes the binding, or the whole statement when it was the last one.
func (f *UnusedVarsFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	a := scan.New(source)
	mask := scan.CodeMask(source)

	st, idx, ok := f.locate(source, a, mask, d)
	if !ok {
		return fix.Refused(source, "no matching declaration on reported line")
	}
	if !f.removable(source, mask, st, idx) {
		return fix.Refused(source, "binding is referenced or initializer may have side effects")
	}

	b := fix.NewEditBuilder()

	if len(st.spans) == 1 {
		// Delete the whole statement; take the line with it when the
		// statement is alone on its line.
		delStart, delEnd := st.keywordOff, st.end
		lineStart, lineEnd, _ := lineSpan(a, d.Line)
		rest := source[lineStart:delStart] + trimStatementTail(source, delEnd, lineEnd)
		if strings.TrimSpace(rest) == "" {
			delStart = lineStart
			if lineEnd < len(source) {
				delEnd = lineEnd + 1 // include the newline
			} else {
				delEnd = lineEnd
			}
		}
		b.Delete(delStart, delEnd)
		out, err := b.Apply(source)
		if err != nil {
			return fix.Refused(source, err.Error())
		}
		return fix.Applied(out, "removed unused declaration statement")
	}

	// Delete only the declarator and its separating comma; the surviving
	// declarators keep their original bytes.
	sp := st.spans[idx]
	if idx < len(st.spans)-1 {
		b.Delete(st.bodyOff+sp.start, st.bodyOff+st.spans[idx+1].start)
	} else {
		b.Delete(st.bodyOff+st.spans[idx-1].end, st.bodyOff+sp.end)
	}
	out, err := b.Apply(source)
	if err != nil {
		return fix.Refused(source, err.Error())
	}
	return fix.Applied(out, "removed unused binding "+st.names[idx])
}

// trimStatementTail returns the text between the statement end and the end
// of its line, bounded for safety.
func trimStatementTail(source string, from, to int) string {
	if from > to || to > len(source) {
		return ""
	}
	return source[from:to]
}

// Validate requires the output to shrink without breaking bracket parity.
func (f *UnusedVarsFixer) Validate(before, after string) bool {
	if after == before || len(after) >= len(before) {
		return false
	}
	for _, pair := range [][2]string{{"{", "}"}, {"(", ")"}, {"[", "]"}} {
		if strings.Count(after, pair[0]) != strings.Count(after, pair[1]) &&
			strings.Count(before, pair[0]) == strings.Count(before, pair[1]) {
			return false
		}
	}
	return true
}
