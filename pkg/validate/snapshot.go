package validate

// CreateSnapshot stores a labeled copy of the source. An existing snapshot
// under the same label is replaced.
func (v *Validator) CreateSnapshot(label, code string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	v.snapshots[label] = code
}

// Snapshot returns the source stored under label.
func (v *Validator) Snapshot(label string) (string, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	code, ok := v.snapshots[label]
	return code, ok
}

// CompareSnapshot reports whether code still matches the snapshot stored
// under label. The second return is false when no such snapshot exists.
func (v *Validator) CompareSnapshot(label, code string) (bool, bool) {
	v.mu.Lock()
	defer v.mu.Unlock()
	stored, ok := v.snapshots[label]
	if !ok {
		return false, false
	}
	return stored == code, true
}

// DropSnapshot removes the snapshot stored under label.
func (v *Validator) DropSnapshot(label string) {
	v.mu.Lock()
	defer v.mu.Unlock()
	delete(v.snapshots, label)
}
