package validate

import (
	"strings"

	"github.com/yaklabco/esfix/pkg/scan"
)

// CheckBrackets verifies that (), [], {} nest correctly across the code
// regions of the source. Brackets inside strings, comments, regular
// expressions, and template literal text are ignored.
func CheckBrackets(code string) error {
	mask := scan.CodeMask(code)

	type open struct {
		char byte
		off  int
	}
	var stack []open

	for i := 0; i < len(code); i++ {
		if i < len(mask) && !mask[i] {
			continue
		}
		c := code[i]
		switch c {
		case '(', '[', '{':
			stack = append(stack, open{c, i})
		case ')', ']', '}':
			if len(stack) == 0 {
				return bracketError(code, i, "unmatched closing "+string(c))
			}
			top := stack[len(stack)-1]
			if closerFor(top.char) != c {
				return bracketError(code, i,
					"expected "+string(closerFor(top.char))+" before "+string(c))
			}
			stack = stack[:len(stack)-1]
		}
	}

	if len(stack) > 0 {
		top := stack[len(stack)-1]
		return bracketError(code, top.off, "unclosed "+string(top.char))
	}
	return nil
}

func closerFor(open byte) byte {
	switch open {
	case '(':
		return ')'
	case '[':
		return ']'
	default:
		return '}'
	}
}

func bracketError(code string, off int, detail string) *SyntaxError {
	line, col := lineColAt(code, off)
	return &SyntaxError{Line: line, Column: col, Detail: detail}
}

// lineColAt converts a byte offset into 1-based line and column numbers.
func lineColAt(code string, off int) (int, int) {
	if off > len(code) {
		off = len(code)
	}
	line := strings.Count(code[:off], "\n") + 1
	col := off - strings.LastIndexByte(code[:off], '\n')
	return line, col
}
