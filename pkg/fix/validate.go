package fix

import (
	"fmt"
	"sort"
)

// ValidationError describes an edit whose range does not fit the source.
type ValidationError struct {
	Edit    TextEdit
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid edit [%d:%d]: %s", e.Edit.StartOffset, e.Edit.EndOffset, e.Message)
}

// ConflictError describes two edits claiming overlapping ranges.
type ConflictError struct {
	Edit1 TextEdit
	Edit2 TextEdit
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("overlapping edits: [%d:%d] and [%d:%d]",
		e.Edit1.StartOffset, e.Edit1.EndOffset,
		e.Edit2.StartOffset, e.Edit2.EndOffset)
}

// ValidateEdits checks every edit range against the source length.
// Returns the first invalid edit found, or nil.
func ValidateEdits(edits []TextEdit, sourceLen int) error {
	for _, edit := range edits {
		switch {
		case edit.StartOffset < 0:
			return &ValidationError{Edit: edit, Message: "start offset is negative"}
		case edit.EndOffset < edit.StartOffset:
			return &ValidationError{Edit: edit, Message: "end offset is before start offset"}
		case edit.EndOffset > sourceLen:
			return &ValidationError{
				Edit:    edit,
				Message: fmt.Sprintf("end offset %d exceeds source length %d", edit.EndOffset, sourceLen),
			}
		}
	}
	return nil
}

// SortEdits orders edits by start offset, then end offset, so application
// is deterministic and overlap detection is a single pass.
func SortEdits(edits []TextEdit) {
	sort.Slice(edits, func(i, j int) bool {
		if edits[i].StartOffset != edits[j].StartOffset {
			return edits[i].StartOffset < edits[j].StartOffset
		}
		return edits[i].EndOffset < edits[j].EndOffset
	})
}

// DetectConflicts reports the first pair of overlapping edits in a sorted
// slice, or nil when no ranges overlap. Two edits conflict when the later
// one starts before the earlier one ends.
func DetectConflicts(edits []TextEdit) error {
	for i := 1; i < len(edits); i++ {
		prev, curr := edits[i-1], edits[i]
		if curr.StartOffset < prev.EndOffset {
			return &ConflictError{Edit1: prev, Edit2: curr}
		}
	}
	return nil
}

// PrepareEdits validates, sorts, and conflict-checks a slice of edits,
// returning a sorted copy ready for ApplyEdits. The input slice is not
// modified. Any invalid or overlapping edit fails the whole set; a fixer
// either applies all of its edits or none.
func PrepareEdits(edits []TextEdit, sourceLen int) ([]TextEdit, error) {
	if len(edits) == 0 {
		return edits, nil
	}

	if err := ValidateEdits(edits, sourceLen); err != nil {
		return nil, err
	}

	prepared := make([]TextEdit, len(edits))
	copy(prepared, edits)
	SortEdits(prepared)

	if err := DetectConflicts(prepared); err != nil {
		return nil, err
	}

	return prepared, nil
}
