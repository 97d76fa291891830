// Package scan classifies byte offsets in ECMAScript source text by their
// lexical context: string literal, comment, regular-expression literal, or
// template literal. Fixers use it to refuse edits at positions where a rule
// violation only appears to exist (for example inside a string that happens
// to contain code-like text).
//
// The scanner is a character-level state machine, not a tokenizer. It is
// deliberately isolated behind this package so it could be replaced by a
// real tokenizer without touching any fixer.
package scan

// CommentType distinguishes the two ECMAScript comment forms.
type CommentType string

const (
	// CommentLine is a // comment running to end of line.
	CommentLine CommentType = "line"

	// CommentBlock is a /* */ comment.
	CommentBlock CommentType = "block"
)

// Context is a snapshot of the lexical state at one absolute offset.
type Context struct {
	// InString is true inside a single- or double-quoted string literal.
	InString bool

	// InComment is true inside a line or block comment.
	InComment bool

	// InRegex is true inside a regular-expression literal.
	InRegex bool

	// InTemplate is true anywhere inside a template literal, including
	// nested interpolations.
	InTemplate bool

	// InTemplateExpr is true inside a ${ } interpolation, where ordinary
	// code resumes.
	InTemplateExpr bool

	// StringChar is the quote character when InString is true.
	StringChar byte

	// CommentType is set when InComment is true.
	CommentType CommentType
}

// Safe reports whether an edit at this position touches executable code
// rather than literal text. Code inside a template interpolation is safe;
// template text between interpolations is not.
func (c Context) Safe() bool {
	if c.InString || c.InComment || c.InRegex {
		return false
	}
	if c.InTemplate && !c.InTemplateExpr {
		return false
	}
	return true
}

// Describe returns a short human-readable description of the unsafe region,
// or "code" when the position is safe.
func (c Context) Describe() string {
	switch {
	case c.InComment && c.CommentType == CommentBlock:
		return "block comment"
	case c.InComment:
		return "line comment"
	case c.InString:
		return "string literal"
	case c.InRegex:
		return "regular expression literal"
	case c.InTemplate && !c.InTemplateExpr:
		return "template literal text"
	default:
		return "code"
	}
}
