package fix

import "strings"

// ApplyEdits applies a prepared slice of edits to source and returns the
// patched text. Edits must come from PrepareEdits: sorted, bounds checked,
// and free of overlaps.
func ApplyEdits(source string, edits []TextEdit) string {
	if len(edits) == 0 {
		return source
	}

	size := len(source)
	for _, e := range edits {
		size += len(e.NewText) - (e.EndOffset - e.StartOffset)
	}

	var b strings.Builder
	b.Grow(size)

	cursor := 0
	for _, e := range edits {
		b.WriteString(source[cursor:e.StartOffset])
		b.WriteString(e.NewText)
		cursor = e.EndOffset
	}
	b.WriteString(source[cursor:])

	return b.String()
}
