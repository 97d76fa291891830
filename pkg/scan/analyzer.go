package scan

import (
	"fmt"
	"strings"
)

// Analyzer answers lexical-context queries against one immutable source
// version. Results are cached per offset; build a new Analyzer whenever the
// source text changes, since offsets are positional, not content-addressed.
//
// The Analyzer is not safe for concurrent use. Batch runs are
// single-threaded by design, so no locking is needed.
type Analyzer struct {
	source     string
	lineStarts []int
	cache      map[int]Context
}

// New creates an Analyzer bound to the given source text.
func New(source string) *Analyzer {
	starts := make([]int, 0, strings.Count(source, "\n")+1)
	starts = append(starts, 0)
	for i := 0; i < len(source); i++ {
		if source[i] == '\n' {
			starts = append(starts, i+1)
		}
	}
	return &Analyzer{
		source:     source,
		lineStarts: starts,
		cache:      make(map[int]Context),
	}
}

// Source returns the source text this analyzer was built for.
func (a *Analyzer) Source() string {
	return a.source
}

// LineCount returns the number of lines in the source.
func (a *Analyzer) LineCount() int {
	return len(a.lineStarts)
}

// Classify returns the lexical context at the given absolute offset.
// Offsets at or beyond the end of the source classify as plain code.
func (a *Analyzer) Classify(offset int) Context {
	if offset < 0 || offset > len(a.source) {
		return Context{}
	}
	if ctx, ok := a.cache[offset]; ok {
		return ctx
	}

	s := newScanner(a.source)
	s.stepTo(offset)
	ctx := s.context()

	a.cache[offset] = ctx
	return ctx
}

// OffsetOf converts a 1-based line/column position to an absolute byte
// offset. Column may point one past the last character of the line (an
// insertion point at end of line).
func (a *Analyzer) OffsetOf(line, column int) (int, bool) {
	if line < 1 || line > len(a.lineStarts) || column < 1 {
		return 0, false
	}
	start := a.lineStarts[line-1]
	end := len(a.source)
	if line < len(a.lineStarts) {
		end = a.lineStarts[line] // includes the newline
	}
	offset := start + column - 1
	if offset > end {
		return 0, false
	}
	return offset, true
}

// LineStart returns the absolute offset of the first character of the given
// 1-based line.
func (a *Analyzer) LineStart(line int) (int, bool) {
	if line < 1 || line > len(a.lineStarts) {
		return 0, false
	}
	return a.lineStarts[line-1], true
}

// Line returns the text of the given 1-based line without its newline.
func (a *Analyzer) Line(line int) (string, bool) {
	start, ok := a.LineStart(line)
	if !ok {
		return "", false
	}
	end := len(a.source)
	if line < len(a.lineStarts) {
		end = a.lineStarts[line] - 1 // strip the newline
	}
	if end < start {
		end = start
	}
	return a.source[start:end], true
}

// SafeResult is the outcome of a safe-edit-zone check.
type SafeResult struct {
	// Safe is true when the position may be edited.
	Safe bool

	// Reason explains why the position is unsafe. Empty when Safe.
	Reason string

	// Context is the lexical context at the position.
	Context Context
}

// SafeEditZone reports whether the 1-based line/column position is a safe
// place to edit. It never panics: out-of-range positions are reported as
// unsafe with a reason rather than an error.
func (a *Analyzer) SafeEditZone(line, column int) SafeResult {
	offset, ok := a.OffsetOf(line, column)
	if !ok {
		return SafeResult{
			Safe:   false,
			Reason: fmt.Sprintf("position %d:%d is outside the source text", line, column),
		}
	}

	ctx := a.Classify(offset)
	if !ctx.Safe() {
		return SafeResult{
			Safe:    false,
			Reason:  fmt.Sprintf("position %d:%d is inside a %s", line, column, ctx.Describe()),
			Context: ctx,
		}
	}
	return SafeResult{Safe: true, Context: ctx}
}

// Classify is a convenience for one-off queries. Repeated queries against
// the same source should share an Analyzer to benefit from the cache.
func Classify(source string, offset int) Context {
	return New(source).Classify(offset)
}

// CodeMask scans the whole source once and returns a slice, indexed by byte
// offset, that is true where the byte belongs to executable code. Fixers use
// it to restrict identifier and bracket searches to safe regions.
func CodeMask(source string) []bool {
	mask := make([]bool, len(source))
	s := newScanner(source)
	for s.i < len(source) {
		safe := s.context().Safe()
		// The brace closing a ${ } interpolation is template punctuation;
		// its ${ opener is masked out, so the closer must be too.
		if f := s.top(); f.m == modeExpr && f.braces == 0 && source[s.i] == '}' {
			safe = false
		}
		start := s.i
		s.stepOne()
		for j := start; j < s.i && j < len(mask); j++ {
			mask[j] = safe
		}
	}
	return mask
}
