package fixers

import "github.com/yaklabco/esfix/pkg/fix"

// RegisterAll registers all built-in fixers with the given registry.
func RegisterAll(registry *fix.Registry) {
	// Whitespace fixers
	registry.MustRegister(NewTrailingSpaceFixer())      // no-trailing-spaces
	registry.MustRegister(NewMultipleEmptyLinesFixer()) // no-multiple-empty-lines
	registry.MustRegister(NewFinalNewlineFixer())       // eol-last

	// Punctuation fixers
	registry.MustRegister(NewSemiFixer())        // semi
	registry.MustRegister(NewExtraSemiFixer())   // no-extra-semi
	registry.MustRegister(NewQuoteFixer())       // quotes
	registry.MustRegister(NewCommaDangleFixer()) // comma-dangle

	// Operator and layout fixers
	registry.MustRegister(NewEqeqeqFixer())        // eqeqeq
	registry.MustRegister(NewSpaceInfixOpsFixer()) // space-infix-ops
	registry.MustRegister(NewIndentFixer())        // indent

	// Declaration fixers
	registry.MustRegister(NewNoVarFixer())       // no-var
	registry.MustRegister(NewPreferConstFixer()) // prefer-const
	registry.MustRegister(NewUnusedVarsFixer())  // no-unused-vars

	// Structural rewrite fixers
	registry.MustRegister(NewForOfFixer())         // prefer-for-of
	registry.MustRegister(NewArrowCallbackFixer()) // prefer-arrow-callback
	registry.MustRegister(NewTernaryFixer())       // no-ternary
}

// init registers all built-in fixers with the default registry.
//
//nolint:gochecknoinits // Init is intentional for automatic fixer registration
func init() {
	RegisterAll(fix.DefaultRegistry)
}
