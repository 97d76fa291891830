package fixers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIndentFixer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		msg     string
		canFix  bool
		wantFix string
	}{
		{
			name:    "over-indented line pulled back",
			input:   "function f() {\n      return 1;\n}\n",
			line:    2,
			msg:     "Expected indentation of 2 spaces but found 6.",
			canFix:  true,
			wantFix: "function f() {\n  return 1;\n}\n",
		},
		{
			name:    "tab indentation replaced with spaces",
			input:   "function f() {\n\treturn 1;\n}\n",
			line:    2,
			msg:     "Expected indentation of 4 spaces but found 1 tab.",
			canFix:  true,
			wantFix: "function f() {\n    return 1;\n}\n",
		},
		{
			name:   "correct indentation refused",
			input:  "function f() {\n  return 1;\n}\n",
			line:   2,
			msg:    "Expected indentation of 2 spaces but found 2.",
			canFix: false,
		},
		{
			name:   "message without width refused",
			input:  "function f() {\n      return 1;\n}\n",
			line:   2,
			msg:    "Bad indentation.",
			canFix: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewIndentFixer()
			d := diag("indent", tt.line, 1, tt.msg)

			assert.Equal(t, tt.canFix, f.CanFix(tt.input, d))
			if !tt.canFix {
				return
			}

			res := f.Fix(tt.input, d)
			require.True(t, res.Success, res.Message)
			assert.Equal(t, tt.wantFix, res.Code)
			assert.True(t, f.Validate(tt.input, res.Code))
			assert.False(t, f.CanFix(res.Code, d))
		})
	}
}
