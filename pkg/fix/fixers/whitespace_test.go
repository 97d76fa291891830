package fixers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrailingSpaceFixer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		col     int
		canFix  bool
		wantFix string
	}{
		{
			name:    "trailing spaces removed",
			input:   "const x = 1;   \nconst y = 2;\n",
			line:    1,
			col:     13,
			canFix:  true,
			wantFix: "const x = 1;\nconst y = 2;\n",
		},
		{
			name:    "trailing tab removed",
			input:   "let a = f();\t\n",
			line:    1,
			col:     13,
			canFix:  true,
			wantFix: "let a = f();\n",
		},
		{
			name:   "clean line refused",
			input:  "const x = 1;\n",
			line:   1,
			col:    13,
			canFix: false,
		},
		{
			name:   "position inside string refused",
			input:  "const s = 'a   b';\n",
			line:   1,
			col:    13,
			canFix: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTrailingSpaceFixer()
			d := diag("no-trailing-spaces", tt.line, tt.col, "Trailing spaces not allowed.")

			assert.Equal(t, tt.canFix, f.CanFix(tt.input, d))
			if !tt.canFix {
				return
			}

			res := f.Fix(tt.input, d)
			require.True(t, res.Success, res.Message)
			assert.Equal(t, tt.wantFix, res.Code)
			assert.True(t, f.Validate(tt.input, res.Code))

			// Re-running on the fixed output must find nothing to do.
			assert.False(t, f.CanFix(res.Code, d))
		})
	}
}

func TestMultipleEmptyLinesFixer(t *testing.T) {
	f := NewMultipleEmptyLinesFixer()

	input := "const a = 1;\n\n\n\nconst b = 2;\n"
	d := diag("no-multiple-empty-lines", 3, 1, "More than 1 blank line not allowed.")

	require.True(t, f.CanFix(input, d))
	res := f.Fix(input, d)
	require.True(t, res.Success, res.Message)
	assert.Equal(t, "const a = 1;\n\nconst b = 2;\n", res.Code)
	assert.True(t, f.Validate(input, res.Code))
	assert.False(t, f.CanFix(res.Code, d))
}

func TestFinalNewlineFixer(t *testing.T) {
	f := NewFinalNewlineFixer()

	t.Run("appends missing newline", func(t *testing.T) {
		input := "const x = 1;"
		d := diag("eol-last", 1, 13, "Newline required at end of file but not found.")

		require.True(t, f.CanFix(input, d))
		res := f.Fix(input, d)
		require.True(t, res.Success, res.Message)
		assert.Equal(t, "const x = 1;\n", res.Code)
		assert.True(t, f.Validate(input, res.Code))
	})

	t.Run("already terminated refused", func(t *testing.T) {
		d := diag("eol-last", 1, 13, "Newline required at end of file but not found.")
		assert.False(t, f.CanFix("const x = 1;\n", d))
	})
}
