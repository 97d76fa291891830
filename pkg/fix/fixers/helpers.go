package fixers

import (
	"strings"

	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/scan"
)

// safeToEdit runs the mandatory context-analyzer check every CanFix starts
// with. An unsafe position is a hard refusal regardless of rule specifics.
func safeToEdit(source string, d fix.Diagnostic) bool {
	return scan.New(source).SafeEditZone(d.Line, d.Column).Safe
}

// lineSpan returns the [start, end) offsets of the 1-based line's content,
// excluding the trailing newline.
func lineSpan(a *scan.Analyzer, line int) (int, int, bool) {
	start, ok := a.LineStart(line)
	if !ok {
		return 0, 0, false
	}
	text, _ := a.Line(line)
	return start, start + len(text), true
}

// indentOf returns the leading whitespace of a line.
func indentOf(line string) string {
	for i := 0; i < len(line); i++ {
		if line[i] != ' ' && line[i] != '\t' {
			return line[:i]
		}
	}
	return line
}

// isIdentByte matches ECMAScript identifier bytes (ASCII subset).
func isIdentByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}

// occurrences returns the offsets of every word-boundary occurrence of name
// within source[from:to), restricted to positions the code mask marks safe.
func occurrences(source string, mask []bool, name string, from, to int) []int {
	if from < 0 {
		from = 0
	}
	if to > len(source) {
		to = len(source)
	}

	var offs []int
	for i := from; i+len(name) <= to; {
		idx := strings.Index(source[i:to], name)
		if idx < 0 {
			break
		}
		pos := i + idx
		i = pos + 1

		if pos > 0 && isIdentByte(source[pos-1]) {
			continue
		}
		if pos+len(name) < len(source) && isIdentByte(source[pos+len(name)]) {
			continue
		}
		if pos < len(mask) && !mask[pos] {
			continue
		}
		offs = append(offs, pos)
	}
	return offs
}

// occurrenceKind classifies one syntactic occurrence of an identifier.
type occurrenceKind int

const (
	occRead occurrenceKind = iota
	occWrite
)

// compoundAssignOps are the compound assignment operators checked after an
// identifier occurrence. Longer operators listed first so prefixes do not
// shadow them.
var compoundAssignOps = []string{
	"**=", "<<=", ">>>=", ">>=", "&&=", "||=", "??=",
	"+=", "-=", "*=", "/=", "%=", "&=", "|=", "^=",
}

// classifyOccurrence decides whether the identifier occurrence at off is a
// reassignment (simple =, compound assignment, or increment/decrement) or a
// plain reference.
func classifyOccurrence(source string, off, nameLen int) occurrenceKind {
	// Preceding ++ or --.
	before := strings.TrimRight(source[:off], " \t")
	if strings.HasSuffix(before, "++") || strings.HasSuffix(before, "--") {
		return occWrite
	}

	rest := source[off+nameLen:]
	trimmed := strings.TrimLeft(rest, " \t")

	if strings.HasPrefix(trimmed, "++") || strings.HasPrefix(trimmed, "--") {
		return occWrite
	}

	for _, op := range compoundAssignOps {
		if strings.HasPrefix(trimmed, op) {
			return occWrite
		}
	}

	// Simple assignment: = not followed by = (equality) or > (arrow).
	if strings.HasPrefix(trimmed, "=") &&
		!strings.HasPrefix(trimmed, "==") && !strings.HasPrefix(trimmed, "=>") {
		return occWrite
	}

	return occRead
}

// enclosingBlock returns the [start, end) offsets of the innermost brace
// block containing off, walking brace depth over code-masked positions only.
// When off sits at program top level the whole source is returned.
func enclosingBlock(source string, mask []bool, off int) (int, int) {
	if off > len(source) {
		off = len(source)
	}

	// Walk backwards to the unmatched opening brace.
	depth := 0
	start := -1
back:
	for i := off - 1; i >= 0; i-- {
		if i < len(mask) && !mask[i] {
			continue
		}
		switch source[i] {
		case '}':
			depth++
		case '{':
			if depth == 0 {
				start = i + 1
				break back
			}
			depth--
		}
	}

	if start < 0 {
		return 0, len(source)
	}

	// Walk forwards to the matching closing brace.
	depth = 0
	for i := start; i < len(source); i++ {
		if i < len(mask) && !mask[i] {
			continue
		}
		switch source[i] {
		case '{':
			depth++
		case '}':
			if depth == 0 {
				return start, i
			}
			depth--
		}
	}
	return start, len(source)
}

// matchBrace returns the offset of the closing brace matching the opening
// brace at open, or -1 when unbalanced.
func matchBrace(source string, mask []bool, open int) int {
	if open >= len(source) || source[open] != '{' {
		return -1
	}
	depth := 0
	for i := open; i < len(source); i++ {
		if i < len(mask) && !mask[i] {
			continue
		}
		switch source[i] {
		case '{':
			depth++
		case '}':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

// statementEnd returns the offset just past the declaration statement that
// starts at start: the terminating semicolon, or the end of line when the
// statement has no terminator. Separators nested in (), [], {} are skipped.
func statementEnd(source string, mask []bool, start int) int {
	parens, brackets, braces := 0, 0, 0
	for i := start; i < len(source); i++ {
		if i < len(mask) && !mask[i] {
			continue
		}
		switch source[i] {
		case '(':
			parens++
		case ')':
			parens--
		case '[':
			brackets++
		case ']':
			brackets--
		case '{':
			braces++
		case '}':
			braces--
		case ';':
			if parens == 0 && brackets == 0 && braces == 0 {
				return i + 1
			}
		case '\n':
			if parens == 0 && brackets == 0 && braces == 0 {
				return i
			}
		}
	}
	return len(source)
}

// declSpan is one declarator's [start, end) range, relative to the
// declaration body it was split from.
type declSpan struct {
	start, end int
}

// splitDeclarators splits the body of a declaration statement ("a = 1, b,
// c = f(x, y)") on top-level commas. Commas inside strings, comments,
// regexes, and template text are resolved through the code mask; base is
// the absolute offset of body[0] within the masked source.
func splitDeclarators(body string, mask []bool, base int) []declSpan {
	var spans []declSpan
	parens, brackets, braces := 0, 0, 0
	last := 0
	for i := 0; i < len(body); i++ {
		abs := base + i
		if abs < len(mask) && !mask[abs] {
			continue
		}
		switch body[i] {
		case '(':
			parens++
		case ')':
			parens--
		case '[':
			brackets++
		case ']':
			brackets--
		case '{':
			braces++
		case '}':
			braces--
		case ',':
			if parens == 0 && brackets == 0 && braces == 0 {
				spans = append(spans, declSpan{start: last, end: i})
				last = i + 1
			}
		}
	}
	spans = append(spans, declSpan{start: last, end: len(body)})
	return spans
}

// declaratorName extracts the bound name from one declarator ("x = 1" -> "x").
func declaratorName(decl string) string {
	s := strings.TrimSpace(decl)
	for i := 0; i < len(s); i++ {
		if !isIdentByte(s[i]) {
			return s[:i]
		}
	}
	return s
}

// singularize derives an element name from a collection name: strip a
// trailing "List" or "Array" suffix, else a trailing "s"; fall back to a
// generic name when nothing sensible remains.
func singularize(collection string) string {
	base := collection
	if idx := strings.LastIndex(base, "."); idx >= 0 {
		base = base[idx+1:]
	}

	switch {
	case strings.HasSuffix(base, "List") && len(base) > len("List"):
		base = strings.TrimSuffix(base, "List")
	case strings.HasSuffix(base, "Array") && len(base) > len("Array"):
		base = strings.TrimSuffix(base, "Array")
	case strings.HasSuffix(base, "ies") && len(base) > len("ies"):
		base = strings.TrimSuffix(base, "ies") + "y"
	case strings.HasSuffix(base, "s") && len(base) > 1:
		base = strings.TrimSuffix(base, "s")
	default:
		return "item"
	}

	if base == "" || base == collection {
		return "item"
	}
	return strings.ToLower(base[:1]) + base[1:]
}

// countToken counts word-boundary occurrences of a token in code-masked
// regions of the whole source.
func countToken(source string, mask []bool, token string) int {
	return len(occurrences(source, mask, token, 0, len(source)))
}
