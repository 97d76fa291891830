package fixers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTernaryFixer(t *testing.T) {
	tests := []struct {
		name         string
		input        string
		line         int
		canFix       bool
		wantFix      string
		wantWarnings int
	}{
		{
			name:    "return statement expanded",
			input:   "function pick(n) {\n  return n > 0 ? 'pos' : 'neg';\n}\n",
			line:    2,
			canFix:  true,
			wantFix: "function pick(n) {\n  if (n > 0) {\n    return 'pos';\n  } else {\n    return 'neg';\n  }\n}\n",
		},
		{
			name:    "assignment expanded",
			input:   "label = ok ? 'yes' : 'no';\n",
			line:    1,
			canFix:  true,
			wantFix: "if (ok) {\n  label = 'yes';\n} else {\n  label = 'no';\n}\n",
		},
		{
			name:    "let declaration hoisted above block",
			input:   "let label = ok ? 'yes' : 'no';\n",
			line:    1,
			canFix:  true,
			wantFix: "let label;\nif (ok) {\n  label = 'yes';\n} else {\n  label = 'no';\n}\n",
		},
		{
			name:         "const declaration relaxed to let",
			input:        "const label = ok ? 'yes' : 'no';\n",
			line:         1,
			canFix:       true,
			wantFix:      "let label;\nif (ok) {\n  label = 'yes';\n} else {\n  label = 'no';\n}\n",
			wantWarnings: 1,
		},
		{
			name:    "bare expression statement expanded",
			input:   "ready ? start() : wait();\n",
			line:    1,
			canFix:  true,
			wantFix: "if (ready) {\n  start();\n} else {\n  wait();\n}\n",
		},
		{
			name:    "equals sign inside string is not an assignment",
			input:   "s === \"=\" ? a() : b();\n",
			line:    1,
			canFix:  true,
			wantFix: "if (s === \"=\") {\n  a();\n} else {\n  b();\n}\n",
		},
		{
			name:   "optional chaining is not a ternary",
			input:  "const v = obj?.field;\n",
			line:   1,
			canFix: false,
		},
		{
			name:   "nullish coalescing is not a ternary",
			input:  "const v = a ?? b;\n",
			line:   1,
			canFix: false,
		},
		{
			name:   "chained ternary splits at outermost pair",
			input:  "x = a ? b : c ? d : e;\n",
			line:   1,
			canFix: true,
		},
		{
			name:   "unterminated statement refused",
			input:  "x = ok ? 1 : 2\n",
			line:   1,
			canFix: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewTernaryFixer()
			d := diag("no-ternary", tt.line, 1, "Ternary operator used.")

			assert.Equal(t, tt.canFix, f.CanFix(tt.input, d))
			if !tt.canFix || tt.wantFix == "" {
				return
			}

			res := f.Fix(tt.input, d)
			require.True(t, res.Success, res.Message)
			assert.Equal(t, tt.wantFix, res.Code)
			assert.Len(t, res.Warnings, tt.wantWarnings)
			assert.True(t, f.Validate(tt.input, res.Code))
		})
	}
}
