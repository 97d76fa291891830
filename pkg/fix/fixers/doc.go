// Package fixers provides the built-in rule fixers for esfix.
//
// # Fixer Domains
//
// This package contains fixer implementations across several domains:
//
//   - Whitespace and layout:
//
//   - no-trailing-spaces - Removes trailing whitespace from lines
//
//   - no-multiple-empty-lines - Collapses runs of blank lines
//
//   - eol-last - Ensures files end with a single newline
//
//   - indent - Normalizes leading indentation to the expected width
//
//   - Punctuation:
//
//   - semi - Inserts missing or removes extra statement semicolons
//
//   - no-extra-semi - Removes redundant semicolons
//
//   - quotes - Converts string literal delimiters, re-escaping the body
//
//   - comma-dangle - Inserts or removes trailing commas
//
//   - Operators:
//
//   - eqeqeq - Upgrades loose equality to strict equality
//
//   - space-infix-ops - Pads infix operators with spaces
//
//   - Declarations:
//
//   - no-var - Re-scopes var declarations to let
//
//   - prefer-const - Declares never-reassigned let bindings const
//
//   - no-unused-vars - Removes declarations of unused bindings
//
//   - Structural rewrites:
//
//   - prefer-for-of - Rewrites counted collection loops as for-of
//
//   - prefer-arrow-callback - Rewrites anonymous callbacks as arrows
//
//   - no-ternary - Expands conditional expressions into if/else blocks
//
// # Safety
//
// Every fixer consults the lexical context analyzer before touching the
// source: a diagnostic that points into a string literal, comment, regular
// expression, or template literal text is refused rather than edited. The
// structural fixers additionally verify scope and usage constraints before
// rewriting and refuse anything they cannot prove safe.
//
// # Registration
//
// Fixers are registered with the default registry via RegisterAll. Each
// fixer follows the fix.Fixer interface; its Validate method is the rule's
// own post-application check, run in addition to full-source validation.
package fixers
