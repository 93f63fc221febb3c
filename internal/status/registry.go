package status

import "fmt"

// Registry resolves kinds to their tuning policies. It is immutable after
// construction and shared by every combatant's store.
type Registry struct {
	policies [numKinds]Policy
}

// NewRegistry builds a registry from an injected policy table. The table
// must cover every kind exactly once with positive base numbers; anything
// else is a configuration mistake and is rejected.
func NewRegistry(table []Policy) (*Registry, error) {
	r := &Registry{}
	var seen [numKinds]bool
	for _, p := range table {
		if !p.Kind.Valid() {
			return nil, fmt.Errorf("status: policy for unknown kind %d", int(p.Kind))
		}
		if seen[p.Kind] {
			return nil, fmt.Errorf("status: duplicate policy for %s", p.Kind)
		}
		if p.BaseDuration <= 0 {
			return nil, fmt.Errorf("status: %s base duration must be positive, got %d", p.Kind, p.BaseDuration)
		}
		if p.BaseIntensity <= 0 {
			return nil, fmt.Errorf("status: %s base intensity must be positive, got %g", p.Kind, p.BaseIntensity)
		}
		seen[p.Kind] = true
		r.policies[p.Kind] = p
	}
	for k, ok := range seen {
		if !ok {
			return nil, fmt.Errorf("status: no policy for %s", Kind(k))
		}
	}
	return r, nil
}

// MustNewRegistry builds a registry from a known-good table, panicking on
// error. Use for wiring embedded data at startup.
func MustNewRegistry(table []Policy) *Registry {
	r, err := NewRegistry(table)
	if err != nil {
		panic(err)
	}
	return r
}

// Policy returns the tuning for kind. Looking up a kind outside the closed
// set is a programming error, not a runtime condition, and panics.
func (r *Registry) Policy(k Kind) Policy {
	if !k.Valid() {
		panic(fmt.Sprintf("status: policy lookup for invalid kind %d", int(k)))
	}
	return r.policies[k]
}
