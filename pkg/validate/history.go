package validate

import "github.com/yaklabco/esfix/pkg/fix"

// RecordFix appends an applied fix to the run's history. Only successful
// fixes belong in the history; they are what RevertLastFix can undo.
func (v *Validator) RecordFix(s fix.Summary) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.history = append(v.history, s)
}

// History returns a copy of the applied-fix history, oldest first.
func (v *Validator) History() []fix.Summary {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]fix.Summary, len(v.history))
	copy(out, v.history)
	return out
}

// LastFix returns the most recently recorded fix.
func (v *Validator) LastFix() (fix.Summary, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	if len(v.history) == 0 {
		return fix.Summary{}, false
	}
	return v.history[len(v.history)-1], true
}

// RevertLastFix undoes the most recent recorded fix by substituting its
// original text back into code. The revert only proceeds when the fixed
// text is still present at the recorded offset; a later edit that moved or
// changed that region makes the undo unsound, and the history entry is
// left in place.
func (v *Validator) RevertLastFix(code string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()

	if len(v.history) == 0 {
		return code, false
	}
	last := v.history[len(v.history)-1]

	start := last.StartOffset
	end := start + len(last.FixedText)
	if start < 0 || end > len(code) || code[start:end] != last.FixedText {
		return code, false
	}

	v.history = v.history[:len(v.history)-1]
	return code[:start] + last.OriginalText + code[end:], true
}
