package fixers

import (
	"strings"

	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/scan"
)

// TernaryFixer expands a conditional expression statement into an if/else
// block. Three statement shapes are handled: return statements, plain
// assignments, and declarations with an initializer. Anything else, and any
// ternary spanning multiple lines, is refused.
type TernaryFixer struct {
	fix.BaseFixer
}

// NewTernaryFixer creates a fixer for no-ternary.
func NewTernaryFixer() *TernaryFixer {
	return &TernaryFixer{
		BaseFixer: fix.NewBaseFixer(
			"no-ternary",
			"no-ternary",
			"Expands conditional expressions into if/else blocks",
		),
	}
}

// ternaryParts is a single-line statement split around its conditional.
type ternaryParts struct {
	head      string // text before the condition: "return ", "x = ", "let x = ", or ""
	cond      string
	whenTrue  string
	whenFalse string
}

// splitTernary locates the outermost ? and its matching : within the
// statement, honoring nesting depth for (), [], {} and chained ternaries.
// Offsets are relative to stmt; mask offsets are absolute via base.
func splitTernary(source string, mask []bool, base int, stmt string) (int, int, bool) {
	parens, brackets, braces, tdepth := 0, 0, 0, 0
	q := -1
	for i := 0; i < len(stmt); i++ {
		abs := base + i
		if abs < len(mask) && !mask[abs] {
			continue
		}
		switch stmt[i] {
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
		case '?':
			// ?? and ?. are not conditionals.
			if i+1 < len(stmt) && (stmt[i+1] == '?' || stmt[i+1] == '.') {
				i++
				continue
			}
			if i > 0 && stmt[i-1] == '?' {
				continue
			}
			if parens == 0 && brackets == 0 && braces == 0 {
				if q < 0 {
					q = i
				} else {
					tdepth++
				}
			}
		case ':':
			if q >= 0 && parens == 0 && brackets == 0 && braces == 0 {
				if tdepth == 0 {
					return q, i, true
				}
				tdepth--
			}
		}
	}
	return 0, 0, false
}

// parse splits the diagnostic line into the parts of an expandable ternary
// statement. The statement must be alone on its line and end with a
// semicolon.
func (f *TernaryFixer) parse(source string, a *scan.Analyzer, mask []bool, line int) (ternaryParts, string, bool) {
	start, end, ok := lineSpan(a, line)
	if !ok {
		return ternaryParts{}, "", false
	}

	raw := source[start:end]
	indent := indentOf(raw)
	stmt := strings.TrimSpace(raw)
	if !strings.HasSuffix(stmt, ";") {
		return ternaryParts{}, "", false
	}
	stmt = strings.TrimSuffix(stmt, ";")

	stmtBase := start + len(indent)
	q, c, ok := splitTernary(source, mask, stmtBase, stmt)
	if !ok {
		return ternaryParts{}, "", false
	}

	p := ternaryParts{
		cond:      strings.TrimSpace(stmt[:q]),
		whenTrue:  strings.TrimSpace(stmt[q+1 : c]),
		whenFalse: strings.TrimSpace(stmt[c+1:]),
	}
	if p.cond == "" || p.whenTrue == "" || p.whenFalse == "" {
		return ternaryParts{}, "", false
	}

	if rest, found := strings.CutPrefix(p.cond, "return "); found {
		p.head = "return "
		p.cond = strings.TrimSpace(rest)
		return p, indent, p.cond != ""
	}

	if lhs, rhs, found := splitAssignment(stmt[:q], mask, stmtBase); found {
		p.head = lhs + " = "
		p.cond = rhs
		return p, indent, p.cond != ""
	}

	// Bare expression statement: the branches stand alone.
	return p, indent, true
}

// splitAssignment splits "lhs = rhs" at the first simple top-level
// assignment, rejecting comparison and arrow tokens. An = inside a string,
// comment, or template is resolved through the code mask; base is the
// absolute offset of s[0].
func splitAssignment(s string, mask []bool, base int) (string, string, bool) {
	parens, brackets, braces := 0, 0, 0
	for i := 0; i < len(s); i++ {
		abs := base + i
		if abs < len(mask) && !mask[abs] {
			continue
		}
		switch s[i] {
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
		case '=':
			if parens != 0 || brackets != 0 || braces != 0 {
				continue
			}
			if i+1 < len(s) && (s[i+1] == '=' || s[i+1] == '>') {
				i++
				continue
			}
			if i > 0 && strings.ContainsRune("=!<>+-*/%&|^", rune(s[i-1])) {
				continue
			}
			lhs := strings.TrimSpace(s[:i])
			rhs := strings.TrimSpace(s[i+1:])
			if lhs == "" || rhs == "" {
				return "", "", false
			}
			return lhs, rhs, true
		}
	}
	return "", "", false
}

// declKeyword splits a declaration head like "let x = " into its keyword
// and binding.
func declKeyword(head string) (string, string, bool) {
	trimmed := strings.TrimSuffix(head, " = ")
	for _, kw := range []string{"const", "let", "var"} {
		if rest, found := strings.CutPrefix(trimmed, kw+" "); found {
			return kw, strings.TrimSpace(rest), true
		}
	}
	return "", "", false
}

// CanFix reports whether the ternary statement can be expanded.
func (f *TernaryFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}
	a := scan.New(source)
	mask := scan.CodeMask(source)
	_, _, ok := f.parse(source, a, mask, d.Line)
	return ok
}

// Fix replaces the statement line with an if/else block. A declaration
// head is hoisted above the block; const is relaxed to let so the branches
// can assign.
func (f *TernaryFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	a := scan.New(source)
	mask := scan.CodeMask(source)

	p, indent, ok := f.parse(source, a, mask, d.Line)
	if !ok {
		return fix.Refused(source, "no expandable ternary statement on reported line")
	}

	unit := "  "
	if strings.Contains(indent, "\t") {
		unit = "\t"
	}

	var b strings.Builder
	var warnings []string

	assign := p.head
	if kw, name, isDecl := declKeyword(p.head); isDecl {
		if kw == "const" {
			kw = "let"
			warnings = append(warnings, "const declaration relaxed to let to allow branch assignment")
		}
		b.WriteString(indent + kw + " " + name + ";\n")
		assign = name + " = "
	}

	b.WriteString(indent + "if (" + p.cond + ") {\n")
	b.WriteString(indent + unit + assign + p.whenTrue + ";\n")
	b.WriteString(indent + "} else {\n")
	b.WriteString(indent + unit + assign + p.whenFalse + ";\n")
	b.WriteString(indent + "}")

	start, end, _ := lineSpan(a, d.Line)
	out, err := fix.ReplaceRange(source, start, end, b.String())
	if err != nil {
		return fix.Refused(source, err.Error())
	}

	res := fix.Applied(out, "expanded ternary into if/else block")
	res.Warnings = warnings
	return res
}

// Validate requires a new if/else pair with balanced braces and no
// remaining top-level change to bracket parity.
func (f *TernaryFixer) Validate(before, after string) bool {
	if after == before {
		return false
	}
	beforeMask := scan.CodeMask(before)
	afterMask := scan.CodeMask(after)
	if countToken(after, afterMask, "if") != countToken(before, beforeMask, "if")+1 {
		return false
	}
	if countToken(after, afterMask, "else") != countToken(before, beforeMask, "else")+1 {
		return false
	}
	return strings.Count(after, "{") == strings.Count(after, "}")
}
