// Package langdetect guards the fix pipeline against non-ECMAScript
// input. It uses go-enry to identify the language of a source file
// before any fixer touches it.
package langdetect

import (
	"path/filepath"
	"strings"

	"github.com/go-enry/go-enry/v2"
)

// scriptLanguages are the enry language names accepted as ECMAScript
// input. TypeScript is included because the lexical fixers operate on
// the shared subset of the two grammars.
var scriptLanguages = map[string]bool{
	"JavaScript": true,
	"TypeScript": true,
	"JSX":        true,
	"TSX":        true,
}

// scriptExtensions short-circuits detection for unambiguous file names.
var scriptExtensions = map[string]bool{
	".js":  true,
	".jsx": true,
	".mjs": true,
	".cjs": true,
	".ts":  true,
	".tsx": true,
	".mts": true,
	".cts": true,
}

// Detect returns the enry language name for the given file name and
// content, or an empty string when detection fails.
func Detect(filename string, content []byte) string {
	// Shebang lines are the most reliable signal for extensionless
	// scripts.
	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return lang
	}

	lang := enry.GetLanguage(filepath.Base(filename), content)
	if lang == enry.OtherLanguage {
		return ""
	}
	return lang
}

// IsECMAScript reports whether the file looks like JavaScript or
// TypeScript source. Files with a known script extension pass without
// content analysis; everything else goes through enry.
func IsECMAScript(filename string, content []byte) bool {
	if scriptExtensions[strings.ToLower(filepath.Ext(filename))] {
		return true
	}

	lang := Detect(filename, content)
	if lang == "" {
		// Extensionless input with no shebang. Fall back to the
		// classifier over the script family.
		classified, safe := enry.GetLanguageByClassifier(content, []string{
			"JavaScript", "TypeScript", "JSON", "Text",
		})
		return safe && scriptLanguages[classified]
	}
	return scriptLanguages[lang]
}
