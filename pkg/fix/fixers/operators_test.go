package fixers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEqeqeqFixer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		col     int
		canFix  bool
		wantFix string
	}{
		{
			name:    "loose equality upgraded",
			input:   "if (a == b) {\n}\n",
			line:    1,
			col:     7,
			canFix:  true,
			wantFix: "if (a === b) {\n}\n",
		},
		{
			name:    "loose inequality upgraded",
			input:   "if (a != b) {\n}\n",
			line:    1,
			col:     7,
			canFix:  true,
			wantFix: "if (a !== b) {\n}\n",
		},
		{
			name:   "already strict refused",
			input:  "if (a === b) {\n}\n",
			line:   1,
			col:    7,
			canFix: false,
		},
		{
			name:   "comparison inside string refused",
			input:  "const s = 'a == b';\n",
			line:   1,
			col:    14,
			canFix: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewEqeqeqFixer()
			d := diag("eqeqeq", tt.line, tt.col, "Expected '===' and instead saw '=='.")

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

func TestSpaceInfixOpsFixer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		col     int
		msg     string
		wantFix string
	}{
		{
			name:    "plus operator padded",
			input:   "const n = a+b;\n",
			line:    1,
			col:     12,
			msg:     "Operator '+' must be spaced.",
			wantFix: "const n = a + b;\n",
		},
		{
			name:    "assignment padded on one side",
			input:   "let n =1;\n",
			line:    1,
			col:     7,
			msg:     "Operator '=' must be spaced.",
			wantFix: "let n = 1;\n",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewSpaceInfixOpsFixer()
			d := diag("space-infix-ops", tt.line, tt.col, tt.msg)

			require.True(t, f.CanFix(tt.input, d))
			res := f.Fix(tt.input, d)
			require.True(t, res.Success, res.Message)
			assert.Equal(t, tt.wantFix, res.Code)
			assert.True(t, f.Validate(tt.input, res.Code))
		})
	}
}
