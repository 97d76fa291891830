package fix

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Registry holds all registered fixers and their enablement state. A fixer
// can be disabled without being unregistered, so operators can temporarily
// exclude a rule while its metadata remains visible for reporting.
type Registry struct {
	mu      sync.RWMutex
	byID    map[string]Fixer
	enabled map[string]bool
}

// NewRegistry creates an empty fixer registry.
func NewRegistry() *Registry {
	return &Registry{
		byID:    make(map[string]Fixer),
		enabled: make(map[string]bool),
	}
}

// Register adds a fixer to the registry, enabled by default. Registering the
// same instance again is a no-op; registering a different fixer under an
// already-taken rule ID is rejected.
func (r *Registry) Register(f Fixer) error {
	if f == nil {
		return fmt.Errorf("register: nil fixer")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.byID[f.RuleID()]; ok {
		if existing == f {
			return nil
		}
		return fmt.Errorf("register: duplicate fixer for rule %q", f.RuleID())
	}

	r.byID[f.RuleID()] = f
	r.enabled[f.RuleID()] = true
	return nil
}

// MustRegister registers a fixer and panics on conflict. Used by the
// built-in fixers' init registration.
func (r *Registry) MustRegister(f Fixer) {
	if err := r.Register(f); err != nil {
		panic(err)
	}
}

// Get retrieves a fixer by rule ID regardless of enablement.
func (r *Registry) Get(ruleID string) (Fixer, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	f, ok := r.byID[ruleID]
	return f, ok
}

// IsFixable reports whether the rule is registered and enabled.
func (r *Registry) IsFixable(ruleID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byID[ruleID]
	return ok && r.enabled[ruleID]
}

// Enabled reports the enablement state of a registered rule.
func (r *Registry) Enabled(ruleID string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.enabled[ruleID]
}

// SetEnabled toggles a registered rule without unregistering it. Returns
// false if the rule is not registered.
func (r *Registry) SetEnabled(ruleID string, enabled bool) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byID[ruleID]; !ok {
		return false
	}
	r.enabled[ruleID] = enabled
	return true
}

// FixableRules returns the IDs of all enabled rules in sorted order.
func (r *Registry) FixableRules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		if r.enabled[id] {
			result = append(result, id)
		}
	}

	slices.Sort(result)
	return result
}

// IDs returns all registered rule IDs in sorted order, enabled or not.
func (r *Registry) IDs() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]string, 0, len(r.byID))
	for id := range r.byID {
		result = append(result, id)
	}

	slices.Sort(result)
	return result
}

// Fixers returns all registered fixers sorted by rule ID.
func (r *Registry) Fixers() []Fixer {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Fixer, 0, len(r.byID))
	for _, f := range r.byID {
		result = append(result, f)
	}

	slices.SortFunc(result, func(a, b Fixer) int {
		return cmp.Compare(a.RuleID(), b.RuleID())
	})

	return result
}

// DefaultRegistry is the global registry for built-in fixers. Fixers
// register themselves during init(). Engine code takes a *Registry
// explicitly; tests construct their own.
//
//nolint:gochecknoglobals // Global registry is intentional for fixer registration
var DefaultRegistry = NewRegistry()
