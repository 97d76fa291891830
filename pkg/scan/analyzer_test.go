package scan_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/esfix/pkg/scan"
)

// offsetOf returns the offset of the nth occurrence (1-based) of sub.
func offsetOf(t *testing.T, source, sub string, n int) int {
	t.Helper()
	offset := -1
	for range n {
		idx := strings.Index(source[offset+1:], sub)
		require.GreaterOrEqual(t, idx, 0, "substring %q not found", sub)
		offset = offset + 1 + idx
	}
	return offset
}

func TestClassify_Strings(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		source   string
		sub      string
		inString bool
		quote    byte
	}{
		{
			name:     "inside double quoted string",
			source:   `const x = "hello world";`,
			sub:      "world",
			inString: true,
			quote:    '"',
		},
		{
			name:     "inside single quoted string",
			source:   `const x = 'hello';`,
			sub:      "ello",
			inString: true,
			quote:    '\'',
		},
		{
			name:     "after string closes",
			source:   `const x = "hello" + y;`,
			sub:      "y;",
			inString: false,
		},
		{
			name:     "escaped quote does not close string",
			source:   `const x = "a\"b" + c;`,
			sub:      "b\"",
			inString: true,
			quote:    '"',
		},
		{
			name:     "code before string",
			source:   `const x = "hello";`,
			sub:      "x =",
			inString: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := scan.Classify(tt.source, offsetOf(t, tt.source, tt.sub, 1))
			assert.Equal(t, tt.inString, ctx.InString)
			if tt.inString {
				assert.Equal(t, tt.quote, ctx.StringChar)
			}
		})
	}
}

func TestClassify_Comments(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name        string
		source      string
		sub         string
		inComment   bool
		commentType scan.CommentType
	}{
		{
			name:        "inside line comment",
			source:      "let x = 1; // remove this\nlet y = 2;",
			sub:         "remove",
			inComment:   true,
			commentType: scan.CommentLine,
		},
		{
			name:      "line comment ends at newline",
			source:    "let x = 1; // note\nlet y = 2;",
			sub:       "y = 2",
			inComment: false,
		},
		{
			name:        "inside block comment",
			source:      "let x = 1; /* var y = 2; */ let z;",
			sub:         "var y",
			inComment:   true,
			commentType: scan.CommentBlock,
		},
		{
			name:      "after block comment closes",
			source:    "/* header */ let z = 3;",
			sub:       "z = 3",
			inComment: false,
		},
		{
			name:      "division is not a comment",
			source:    "let r = a / b; let q = 1;",
			sub:       "q = 1",
			inComment: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := scan.Classify(tt.source, offsetOf(t, tt.source, tt.sub, 1))
			assert.Equal(t, tt.inComment, ctx.InComment)
			if tt.inComment {
				assert.Equal(t, tt.commentType, ctx.CommentType)
			}
		})
	}
}

func TestClassify_RegexVsDivision(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		source  string
		sub     string
		inRegex bool
	}{
		{
			name:    "regex after assignment",
			source:  `const re = /ab+c/; let x;`,
			sub:     "ab+c",
			inRegex: true,
		},
		{
			name:    "regex after return",
			source:  `function f() { return /pat/ }`,
			sub:     "pat",
			inRegex: true,
		},
		{
			name:    "regex after open paren",
			source:  `match(/x=y/, s);`,
			sub:     "x=y",
			inRegex: true,
		},
		{
			name:    "division after identifier",
			source:  `const r = total / count; let x;`,
			sub:     "count",
			inRegex: false,
		},
		{
			name:    "division after closing paren",
			source:  `const r = (a + b) / c; let x;`,
			sub:     "c;",
			inRegex: false,
		},
		{
			name:    "slash inside regex char class",
			source:  `const re = /[/]x/; let tail;`,
			sub:     "x/",
			inRegex: true,
		},
		{
			name:    "code after regex closes",
			source:  `const re = /ab/; let tail;`,
			sub:     "tail",
			inRegex: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			ctx := scan.Classify(tt.source, offsetOf(t, tt.source, tt.sub, 1))
			assert.Equal(t, tt.inRegex, ctx.InRegex)
		})
	}
}

func TestClassify_Templates(t *testing.T) {
	t.Parallel()

	source := "const msg = `count is ${items.length} of ${limit + `${nested}`} total`;"

	tests := []struct {
		name   string
		sub    string
		want   func(t *testing.T, ctx scan.Context)
	}{
		{
			name: "template text is unsafe",
			sub:  "count is",
			want: func(t *testing.T, ctx scan.Context) {
				assert.True(t, ctx.InTemplate)
				assert.False(t, ctx.InTemplateExpr)
				assert.False(t, ctx.Safe())
			},
		},
		{
			name: "interpolation code is safe",
			sub:  "items.length",
			want: func(t *testing.T, ctx scan.Context) {
				assert.True(t, ctx.InTemplate)
				assert.True(t, ctx.InTemplateExpr)
				assert.True(t, ctx.Safe())
			},
		},
		{
			name: "second interpolation is safe",
			sub:  "limit",
			want: func(t *testing.T, ctx scan.Context) {
				assert.True(t, ctx.InTemplateExpr)
				assert.True(t, ctx.Safe())
			},
		},
		{
			name: "nested interpolation code is safe",
			sub:  "nested",
			want: func(t *testing.T, ctx scan.Context) {
				assert.True(t, ctx.InTemplate)
				assert.True(t, ctx.InTemplateExpr)
				assert.True(t, ctx.Safe())
			},
		},
		{
			name: "text after interpolations is unsafe",
			sub:  "total",
			want: func(t *testing.T, ctx scan.Context) {
				assert.True(t, ctx.InTemplate)
				assert.False(t, ctx.InTemplateExpr)
				assert.False(t, ctx.Safe())
			},
		},
		{
			name: "code after template closes",
			sub:  ";",
			want: func(t *testing.T, ctx scan.Context) {
				assert.False(t, ctx.InTemplate)
				assert.True(t, ctx.Safe())
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tt.want(t, scan.Classify(source, offsetOf(t, source, tt.sub, 1)))
		})
	}
}

func TestClassify_InterpolationBraces(t *testing.T) {
	t.Parallel()

	// Braces inside the interpolation expression must not terminate it.
	source := "const s = `v: ${fn({a: 1})} end`;"
	ctx := scan.Classify(source, offsetOf(t, source, "end", 1))
	assert.True(t, ctx.InTemplate)
	assert.False(t, ctx.InTemplateExpr, "object literal brace must not close the interpolation")
}

func TestAnalyzer_OffsetOf(t *testing.T) {
	t.Parallel()

	a := scan.New("let x = 1;\nlet y = 2;\n")

	tests := []struct {
		name   string
		line   int
		column int
		want   int
		ok     bool
	}{
		{name: "first char", line: 1, column: 1, want: 0, ok: true},
		{name: "second line", line: 2, column: 5, want: 15, ok: true},
		{name: "end of line insertion point", line: 1, column: 11, want: 10, ok: true},
		{name: "line out of range", line: 9, column: 1, ok: false},
		{name: "zero line", line: 0, column: 1, ok: false},
		{name: "zero column", line: 1, column: 0, ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got, ok := a.OffsetOf(tt.line, tt.column)
			assert.Equal(t, tt.ok, ok)
			if tt.ok {
				assert.Equal(t, tt.want, got)
			}
		})
	}
}

func TestAnalyzer_SafeEditZone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		source string
		line   int
		column int
		safe   bool
		reason string
	}{
		{
			name:   "plain code is safe",
			source: "var x = 1\nvar y = 2",
			line:   2,
			column: 1,
			safe:   true,
		},
		{
			name:   "inside string is unsafe",
			source: `const s = "var x = 1";`,
			line:   1,
			column: 13,
			safe:   false,
			reason: "string literal",
		},
		{
			name:   "inside comment is unsafe",
			source: "// var x = 1\nlet y;",
			line:   1,
			column: 5,
			safe:   false,
			reason: "comment",
		},
		{
			name:   "out of range is unsafe not panic",
			source: "let x;",
			line:   40,
			column: 2,
			safe:   false,
			reason: "outside the source",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			res := scan.New(tt.source).SafeEditZone(tt.line, tt.column)
			assert.Equal(t, tt.safe, res.Safe)
			if !tt.safe {
				assert.Contains(t, res.Reason, tt.reason)
			}
		})
	}
}

func TestAnalyzer_Line(t *testing.T) {
	t.Parallel()

	a := scan.New("first\nsecond\nthird")

	line, ok := a.Line(2)
	require.True(t, ok)
	assert.Equal(t, "second", line)

	line, ok = a.Line(3)
	require.True(t, ok)
	assert.Equal(t, "third", line)

	_, ok = a.Line(4)
	assert.False(t, ok)
}

func TestCodeMask(t *testing.T) {
	t.Parallel()

	source := `let x = "let y"; // let z`
	mask := scan.CodeMask(source)
	require.Len(t, mask, len(source))

	assert.True(t, mask[offsetOf(t, source, "x =", 1)], "declaration is code")
	assert.False(t, mask[offsetOf(t, source, "let y", 1)], "string body is not code")
	assert.False(t, mask[offsetOf(t, source, "let z", 1)], "comment body is not code")
}

func TestCodeMask_TemplateInterpolation(t *testing.T) {
	t.Parallel()

	source := "const s = `hello ${name} world`;\n"
	mask := scan.CodeMask(source)
	require.Len(t, mask, len(source))

	assert.True(t, mask[offsetOf(t, source, "name", 1)], "interpolation code is code")
	assert.False(t, mask[offsetOf(t, source, "hello", 1)], "template text is not code")
	assert.False(t, mask[offsetOf(t, source, "${", 1)], "interpolation opener is punctuation")
	assert.False(t, mask[offsetOf(t, source, "}", 1)], "interpolation closer is punctuation")

	// Braces belonging to an object inside the interpolation stay code, so
	// bracket walks over the mask stay balanced.
	nested := "const o = `v: ${ {a: 1}.a }`;\n"
	nestedMask := scan.CodeMask(nested)
	open := offsetOf(t, nested, "{a", 1)
	assert.True(t, nestedMask[open], "object opener inside interpolation is code")
	assert.True(t, nestedMask[offsetOf(t, nested, "}.a", 1)], "object closer inside interpolation is code")
	assert.False(t, nestedMask[offsetOf(t, nested, " }`", 1)+1], "interpolation closer is punctuation")
}

func TestClassify_CacheConsistency(t *testing.T) {
	t.Parallel()

	source := "const s = 'abc'; let t = 2;"
	a := scan.New(source)

	off := offsetOf(t, source, "abc", 1)
	first := a.Classify(off)
	second := a.Classify(off)
	assert.Equal(t, first, second)
	assert.True(t, first.InString)
}
