package validate

import (
	"fmt"

	"github.com/yaklabco/esfix/pkg/scan"
)

// declarationTokens introduce bindings or definitions; losing one that no
// fix removed means the repair destroyed code.
var declarationTokens = []string{"function", "class", "const", "let", "var"}

// controlTokens shape control flow. A repair run may legally convert them
// (ternary expansion adds an if, loop conversion keeps the for) but never
// silently drop more than the applied fixes account for.
var controlTokens = []string{"if", "for", "while", "switch", "return"}

// ValidateSemantics compares token populations between the pre-repair and
// post-repair sources. Each applied fix may legally add or remove one
// construct, so the tolerance scales with applied. Drops within tolerance
// come back as warnings; drops beyond it are an error.
func (v *Validator) ValidateSemantics(before, after string, applied int) ([]string, error) {
	if !v.semantic {
		return nil, nil
	}
	if applied < 0 {
		applied = 0
	}

	beforeMask := scan.CodeMask(before)
	afterMask := scan.CodeMask(after)

	count := func(source string, mask []bool, tokens []string) map[string]int {
		counts := make(map[string]int, len(tokens))
		for _, tok := range tokens {
			counts[tok] = countWord(source, mask, tok)
		}
		return counts
	}

	var warnings []string
	check := func(tokens []string, group string) error {
		beforeCounts := count(before, beforeMask, tokens)
		afterCounts := count(after, afterMask, tokens)

		lost := 0
		for _, tok := range tokens {
			if drop := beforeCounts[tok] - afterCounts[tok]; drop > 0 {
				lost += drop
				warnings = append(warnings, fmt.Sprintf(
					"%s count for %q dropped from %d to %d",
					group, tok, beforeCounts[tok], afterCounts[tok]))
			}
		}
		if lost > applied {
			return fmt.Errorf(
				"%d %s construct(s) lost but only %d fix(es) applied",
				lost, group, applied)
		}
		return nil
	}

	if err := check(declarationTokens, "declaration"); err != nil {
		return warnings, err
	}
	if err := check(controlTokens, "control"); err != nil {
		return warnings, err
	}
	return warnings, nil
}

// countWord counts word-boundary occurrences of a keyword in code-masked
// regions.
func countWord(source string, mask []bool, word string) int {
	n := 0
	for i := 0; i+len(word) <= len(source); i++ {
		if i < len(mask) && !mask[i] {
			continue
		}
		if source[i:i+len(word)] != word {
			continue
		}
		if i > 0 && isWordByte(source[i-1]) {
			continue
		}
		if end := i + len(word); end < len(source) && isWordByte(source[end]) {
			continue
		}
		n++
		i += len(word) - 1
	}
	return n
}

func isWordByte(b byte) bool {
	return b == '_' || b == '$' ||
		(b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z') || (b >= '0' && b <= '9')
}
