// Package fix defines the diagnostic model, the per-rule fixer contract,
// the fixer registry, and the text-edit primitives fixers are built on.
package fix

import "fmt"

// TextEdit represents a single text replacement in a source buffer.
type TextEdit struct {
	// StartOffset is the byte index where the edit begins (inclusive).
	StartOffset int

	// EndOffset is the byte index where the edit ends (exclusive).
	EndOffset int

	// NewText is the replacement text.
	NewText string
}

// EditBuilder accumulates text edits against one source version.
type EditBuilder struct {
	Edits []TextEdit
}

// NewEditBuilder creates a new EditBuilder.
func NewEditBuilder() *EditBuilder {
	return &EditBuilder{
		Edits: make([]TextEdit, 0),
	}
}

// ReplaceRange adds an edit that replaces bytes [start, end) with newText.
func (b *EditBuilder) ReplaceRange(start, end int, newText string) {
	b.Edits = append(b.Edits, TextEdit{
		StartOffset: start,
		EndOffset:   end,
		NewText:     newText,
	})
}

// Insert adds an edit that inserts text at the given offset.
func (b *EditBuilder) Insert(offset int, text string) {
	b.ReplaceRange(offset, offset, text)
}

// Delete adds an edit that deletes bytes [start, end).
func (b *EditBuilder) Delete(start, end int) {
	b.ReplaceRange(start, end, "")
}

// Apply validates the accumulated edits against the source and applies them,
// returning the patched source. The source is never partially modified: any
// invalid or conflicting edit fails the whole application.
func (b *EditBuilder) Apply(source string) (string, error) {
	prepared, err := PrepareEdits(b.Edits, len(source))
	if err != nil {
		return source, err
	}
	return ApplyEdits(source, prepared), nil
}

// ReplaceRange replaces bytes [start, end) of source with newText, bounds
// checked against the source length. Simple fixers use this for single-site
// substitutions.
func ReplaceRange(source string, start, end int, newText string) (string, error) {
	if start < 0 || end < start || end > len(source) {
		return source, fmt.Errorf("edit range [%d:%d) invalid for source of length %d",
			start, end, len(source))
	}
	return source[:start] + newText + source[end:], nil
}
