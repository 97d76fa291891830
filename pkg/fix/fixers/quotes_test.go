package fixers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteFixer(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		line    int
		col     int
		msg     string
		canFix  bool
		wantFix string
	}{
		{
			name:    "double to single",
			input:   `const s = "hello";` + "\n",
			line:    1,
			col:     11,
			msg:     "Strings must use singlequote.",
			canFix:  true,
			wantFix: `const s = 'hello';` + "\n",
		},
		{
			name:    "single to double",
			input:   `const s = 'hello';` + "\n",
			line:    1,
			col:     11,
			msg:     "Strings must use doublequote.",
			canFix:  true,
			wantFix: `const s = "hello";` + "\n",
		},
		{
			name:    "embedded target quote is escaped",
			input:   `const s = "it's fine";` + "\n",
			line:    1,
			col:     11,
			msg:     "Strings must use singlequote.",
			canFix:  true,
			wantFix: `const s = 'it\'s fine';` + "\n",
		},
		{
			name:    "escaped old delimiter is unescaped",
			input:   `const s = 'say \'hi\'';` + "\n",
			line:    1,
			col:     11,
			msg:     "Strings must use doublequote.",
			canFix:  true,
			wantFix: `const s = "say 'hi'";` + "\n",
		},
		{
			name:   "already target style refused",
			input:  `const s = 'hello';` + "\n",
			line:   1,
			col:    11,
			msg:    "Strings must use singlequote.",
			canFix: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := NewQuoteFixer()
			d := diag("quotes", tt.line, tt.col, tt.msg)

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
