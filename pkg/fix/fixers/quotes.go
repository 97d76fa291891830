package fixers

import (
	"strings"

	"github.com/yaklabco/esfix/pkg/fix"
	"github.com/yaklabco/esfix/pkg/scan"
)

// QuoteFixer converts a string literal between single and double quote
// style, re-escaping as needed. The diagnostic points at the opening quote.
type QuoteFixer struct {
	fix.BaseFixer
}

// NewQuoteFixer creates a fixer for quotes.
func NewQuoteFixer() *QuoteFixer {
	return &QuoteFixer{
		BaseFixer: fix.NewBaseFixer(
			"quotes",
			"quotes",
			"Converts string literals to the configured quote style",
		),
	}
}

// targetQuote derives the desired quote character from the message.
func (f *QuoteFixer) targetQuote(d fix.Diagnostic) (byte, bool) {
	msg := strings.ToLower(d.Message)
	switch {
	case strings.Contains(msg, "singlequote"), strings.Contains(msg, "single quote"):
		return '\'', true
	case strings.Contains(msg, "doublequote"), strings.Contains(msg, "double quote"):
		return '"', true
	default:
		return 0, false
	}
}

// literalAt returns the [start, end) span of the quoted literal whose
// opening quote sits at off, honoring backslash escapes. end includes the
// closing quote.
func literalAt(source string, off int) (int, int, bool) {
	if off >= len(source) {
		return 0, 0, false
	}
	quote := source[off]
	if quote != '\'' && quote != '"' {
		return 0, 0, false
	}
	for i := off + 1; i < len(source); i++ {
		switch source[i] {
		case '\\':
			i++
		case quote:
			return off, i + 1, true
		case '\n':
			return 0, 0, false // unterminated
		}
	}
	return 0, 0, false
}

// CanFix reports whether a convertible literal starts at the position.
func (f *QuoteFixer) CanFix(source string, d fix.Diagnostic) bool {
	if !safeToEdit(source, d) {
		return false
	}
	target, ok := f.targetQuote(d)
	if !ok {
		return false
	}

	off, ok := scan.New(source).OffsetOf(d.Line, d.Column)
	if !ok {
		return false
	}
	start, _, ok := literalAt(source, off)
	return ok && source[start] != target
}

// Fix rewrites the literal with the target quote style.
func (f *QuoteFixer) Fix(source string, d fix.Diagnostic) fix.Result {
	target, ok := f.targetQuote(d)
	if !ok {
		return fix.Refused(source, "message does not name a quote style")
	}

	off, ok := scan.New(source).OffsetOf(d.Line, d.Column)
	if !ok {
		return fix.Refused(source, "position out of range")
	}

	start, end, ok := literalAt(source, off)
	if !ok {
		return fix.Refused(source, "no string literal at reported position")
	}

	old := source[start]
	if old == target {
		return fix.Refused(source, "literal already uses the requested quote style")
	}

	body := source[start+1 : end-1]
	var sb strings.Builder
	sb.WriteByte(target)
	for i := 0; i < len(body); i++ {
		ch := body[i]
		if ch == '\\' && i+1 < len(body) {
			next := body[i+1]
			if next == old {
				// The old delimiter no longer needs escaping.
				sb.WriteByte(old)
			} else {
				sb.WriteByte('\\')
				sb.WriteByte(next)
			}
			i++
			continue
		}
		if ch == target {
			sb.WriteByte('\\')
		}
		sb.WriteByte(ch)
	}
	sb.WriteByte(target)

	out, err := fix.ReplaceRange(source, start, end, sb.String())
	if err != nil {
		return fix.Refused(source, err.Error())
	}
	return fix.Applied(out, "converted string literal quote style")
}

// Validate requires the changed region to swap one literal kind for the
// other.
func (f *QuoteFixer) Validate(before, after string) bool {
	if after == before {
		return false
	}
	_, orig, fixed := fix.DiffRegion(before, after)
	if orig == "" || fixed == "" {
		return false
	}
	isQuote := func(b byte) bool { return b == '\'' || b == '"' }
	return isQuote(orig[0]) && isQuote(fixed[0]) && orig[0] != fixed[0]
}
