package validate

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/esfix/pkg/fix"
)

func TestValidateSyntax(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{
			name: "well formed source",
			code: "const x = 1;\nfunction f(a) {\n  return a + x;\n}\n",
		},
		{
			name: "template literal with interpolation",
			code: "const msg = `total: ${a + b}`;\n",
		},
		{
			name:    "unclosed brace",
			code:    "function f() {\n  return 1;\n",
			wantErr: true,
		},
		{
			name:    "stray closing paren",
			code:    "const x = (1 + 2));\n",
			wantErr: true,
		},
		{
			name:    "broken statement",
			code:    "const = ;\n",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v := New(true)
			err := v.ValidateSyntax(context.Background(), tt.code)
			if tt.wantErr {
				require.Error(t, err)
				var syntaxErr *SyntaxError
				assert.ErrorAs(t, err, &syntaxErr)
				assert.Positive(t, syntaxErr.Line)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestCheckBrackets(t *testing.T) {
	tests := []struct {
		name    string
		code    string
		wantErr bool
	}{
		{"balanced", "f(a[0], {b: 1});\n", false},
		{"bracket inside string ignored", "const s = '([{';\nf();\n", false},
		{"bracket inside comment ignored", "// ({[\nf();\n", false},
		{"bracket inside template text ignored", "const t = `)}`;\n", false},
		{"interpolation delimiters balanced", "const t = `a ${x} b ${y[0]} c`;\n", false},
		{"nested object inside interpolation", "const t = `v: ${ {a: 1}.a }`;\n", false},
		{"unclosed paren", "f(a;\n", true},
		{"mismatched pair", "f(a];\n", true},
		{"stray closer", "}\n", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckBrackets(tt.code)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestValidateSemantics(t *testing.T) {
	v := New(true)

	t.Run("unchanged source is clean", func(t *testing.T) {
		code := "function f() {\n  return 1;\n}\n"
		warnings, err := v.ValidateSemantics(code, code, 0)
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("drop within tolerance warns", func(t *testing.T) {
		before := "const a = 1;\nconst b = 2;\n"
		after := "const b = 2;\n"
		warnings, err := v.ValidateSemantics(before, after, 1)
		require.NoError(t, err)
		assert.Len(t, warnings, 1)
	})

	t.Run("drop beyond tolerance fails", func(t *testing.T) {
		before := "function f() {}\nfunction g() {}\nfunction h() {}\n"
		after := "function h() {}\n"
		_, err := v.ValidateSemantics(before, after, 0)
		assert.Error(t, err)
	})

	t.Run("keyword inside string does not count", func(t *testing.T) {
		before := "const s = 'function function';\nconst x = 1;\n"
		after := "const s = 'none';\nconst x = 1;\n"
		warnings, err := v.ValidateSemantics(before, after, 0)
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})

	t.Run("disabled validator reports nothing", func(t *testing.T) {
		off := New(false)
		warnings, err := off.ValidateSemantics("function f() {}\n", "\n", 0)
		require.NoError(t, err)
		assert.Empty(t, warnings)
	})
}

func TestHistoryRevert(t *testing.T) {
	v := New(true)

	before := "if (a == b) {\n}\n"
	after := "if (a === b) {\n}\n"
	start, orig, fixed := fix.DiffRegion(before, after)
	v.RecordFix(fix.Summary{
		RuleID:       "eqeqeq",
		Success:      true,
		StartOffset:  start,
		OriginalText: orig,
		FixedText:    fixed,
	})

	require.Len(t, v.History(), 1)

	reverted, ok := v.RevertLastFix(after)
	require.True(t, ok)
	assert.Equal(t, before, reverted)
	assert.Empty(t, v.History())

	_, ok = v.RevertLastFix(after)
	assert.False(t, ok, "empty history cannot revert")
}

func TestRevertRefusesMovedRegion(t *testing.T) {
	v := New(true)
	v.RecordFix(fix.Summary{
		RuleID:       "semi",
		Success:      true,
		StartOffset:  5,
		OriginalText: "x",
		FixedText:    "x;",
	})

	// The recorded region no longer matches; the undo must not corrupt.
	code := "abc\n"
	out, ok := v.RevertLastFix(code)
	assert.False(t, ok)
	assert.Equal(t, code, out)
	assert.Len(t, v.History(), 1)
}

func TestSnapshots(t *testing.T) {
	v := New(true)

	v.CreateSnapshot("pre-batch", "const x = 1;\n")

	code, ok := v.Snapshot("pre-batch")
	require.True(t, ok)
	assert.Equal(t, "const x = 1;\n", code)

	same, found := v.CompareSnapshot("pre-batch", "const x = 1;\n")
	assert.True(t, found)
	assert.True(t, same)

	same, found = v.CompareSnapshot("pre-batch", "const x = 2;\n")
	assert.True(t, found)
	assert.False(t, same)

	_, found = v.CompareSnapshot("missing", "")
	assert.False(t, found)

	v.DropSnapshot("pre-batch")
	_, ok = v.Snapshot("pre-batch")
	assert.False(t, ok)

	v.CreateSnapshot("a", "1")
	v.RecordFix(fix.Summary{RuleID: "semi", Success: true})
	v.Reset()
	_, ok = v.Snapshot("a")
	assert.False(t, ok)
	assert.Empty(t, v.History())
}
