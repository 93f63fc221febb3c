package status

import (
	"fmt"
	"math"

	"github.com/voidmaw/skirmish/internal/random"
)

// Instance is one active effect on a combatant. Duration counts whole turns
// remaining and stays positive while the instance is active; intensity
// scales the kind's numeric effect and never exceeds the kind's cap.
type Instance struct {
	Kind      Kind
	Duration  int
	Intensity float64
}

// Owner is the combatant surface turn-start ticks mutate.
type Owner interface {
	TakeDamage(amount int, ignoreProtection bool) int
	Heal(amount int) int
	Alive() bool
}

// Tick reports one instance's turn-start numeric effect.
type Tick struct {
	Kind   Kind
	Damage int
	Heal   int
}

// ApplyOutcome reports how an application landed.
type ApplyOutcome struct {
	// Stacked is false when the application inserted a fresh instance.
	Stacked   bool
	Duration  int
	Intensity float64
}

// Store holds the active effects for one combatant: at most one instance
// per kind, keyed by the closed enumeration. Gates (paralyzed, slowed, ...)
// are never stored here; combatants derive them from membership so flag and
// effect cannot drift apart.
type Store struct {
	reg       *Registry
	rng       random.Source
	instances [numKinds]*Instance
}

// NewStore builds an empty store sharing the given registry and random
// source. The source drives stacking rolls only.
func NewStore(reg *Registry, rng random.Source) *Store {
	if reg == nil {
		panic("status: store requires a registry")
	}
	if rng == nil {
		panic("status: store requires a random source")
	}
	return &Store{reg: reg, rng: rng}
}

// Policy exposes the registry tuning for kind.
func (s *Store) Policy(k Kind) Policy {
	return s.reg.Policy(k)
}

// Apply inserts kind with the requested numbers, or stacks onto the active
// instance by the kind's stacking mode:
//
//   - duration stacking adds duration × U(0.5,1.0) turns (rounded to
//     nearest), capped at 2× the kind's base duration; intensity untouched.
//   - intensity stacking adds intensity × U(0.5,1.0), capped at 3× the
//     kind's base intensity; remaining duration resets to the larger of the
//     current remainder and the incoming duration.
//
// The uniform roll scales the incoming amounts, never the active ones.
// Requested values must be positive; intensity is clamped to the kind's cap
// on insert so the instance invariant holds from the first turn.
func (s *Store) Apply(k Kind, duration int, intensity float64) ApplyOutcome {
	p := s.reg.Policy(k)
	if duration <= 0 {
		panic(fmt.Sprintf("status: applying %s with non-positive duration %d", k, duration))
	}
	if intensity <= 0 {
		panic(fmt.Sprintf("status: applying %s with non-positive intensity %g", k, intensity))
	}

	inst := s.instances[k]
	if inst == nil {
		inst = &Instance{
			Kind:      k,
			Duration:  duration,
			Intensity: math.Min(intensity, p.MaxIntensity()),
		}
		s.instances[k] = inst
		return ApplyOutcome{Duration: inst.Duration, Intensity: inst.Intensity}
	}

	roll := s.uniformHalfToOne()
	switch p.Stacking {
	case StackDuration:
		ext := int(math.Round(float64(duration) * roll))
		inst.Duration += ext
		if cap := p.MaxDuration(); inst.Duration > cap {
			inst.Duration = cap
		}
	case StackIntensity:
		inst.Intensity += intensity * roll
		if cap := p.MaxIntensity(); inst.Intensity > cap {
			inst.Intensity = cap
		}
		if duration > inst.Duration {
			inst.Duration = duration
		}
	}
	return ApplyOutcome{Stacked: true, Duration: inst.Duration, Intensity: inst.Intensity}
}

// uniformHalfToOne draws the stacking multiplier U(0.5,1.0).
func (s *Store) uniformHalfToOne() float64 {
	return 0.5 + s.rng.Float64()*0.5
}

// TickTurnStart applies every active instance's turn-start numeric effect
// to the owner, in kind-enumeration order for reproducibility. Tick damage
// bypasses Protection. Ticking stops if the owner dies mid-pass; the dead
// do not regenerate.
func (s *Store) TickTurnStart(owner Owner) []Tick {
	var ticks []Tick
	for k := Kind(0); k < numKinds; k++ {
		inst := s.instances[k]
		if inst == nil {
			continue
		}
		if !owner.Alive() {
			break
		}
		p := s.reg.Policy(k)
		var t Tick
		t.Kind = k
		if p.TickDamage > 0 {
			t.Damage = owner.TakeDamage(int(p.TickDamage*inst.Intensity), true)
		}
		if p.TickHeal > 0 {
			t.Heal = owner.Heal(int(p.TickHeal * inst.Intensity))
		}
		if t.Damage != 0 || t.Heal != 0 {
			ticks = append(ticks, t)
		}
	}
	return ticks
}

// TickTurnEnd decrements every active instance's duration by one in a
// single pass and removes the ones that expired, returning the expired
// kinds in enumeration order.
func (s *Store) TickTurnEnd() []Kind {
	var expired []Kind
	for k := Kind(0); k < numKinds; k++ {
		inst := s.instances[k]
		if inst == nil {
			continue
		}
		inst.Duration--
		if inst.Duration <= 0 {
			s.remove(k)
			expired = append(expired, k)
		}
	}
	return expired
}

// Has reports whether kind is active.
func (s *Store) Has(k Kind) bool {
	if !k.Valid() {
		panic(fmt.Sprintf("status: membership check for invalid kind %d", int(k)))
	}
	return s.instances[k] != nil
}

// Get returns a copy of the active instance for kind.
func (s *Store) Get(k Kind) (Instance, bool) {
	if !k.Valid() {
		panic(fmt.Sprintf("status: lookup for invalid kind %d", int(k)))
	}
	inst := s.instances[k]
	if inst == nil {
		return Instance{}, false
	}
	return *inst, true
}

// Intensity returns the active intensity for kind, or zero when absent.
func (s *Store) Intensity(k Kind) float64 {
	inst, ok := s.Get(k)
	if !ok {
		return 0
	}
	return inst.Intensity
}

// Duration returns the turns remaining for kind, or zero when absent.
func (s *Store) Duration(k Kind) int {
	inst, ok := s.Get(k)
	if !ok {
		return 0
	}
	return inst.Duration
}

// Remove cures kind immediately, running its on-remove side effect. It
// reports false, mutating nothing, when the kind is not active.
func (s *Store) Remove(k Kind) bool {
	if !s.Has(k) {
		return false
	}
	s.remove(k)
	return true
}

// remove deletes the instance. Gates derive from membership, so deletion
// itself is the on-remove side effect.
func (s *Store) remove(k Kind) {
	s.instances[k] = nil
}

// Clear drops every active instance. Used when combat-only state is torn
// down.
func (s *Store) Clear() {
	for k := range s.instances {
		s.instances[k] = nil
	}
}

// Active returns the active kinds in enumeration order.
func (s *Store) Active() []Kind {
	var out []Kind
	for k := Kind(0); k < numKinds; k++ {
		if s.instances[k] != nil {
			out = append(out, k)
		}
	}
	return out
}

// Len returns the number of active instances.
func (s *Store) Len() int {
	n := 0
	for _, inst := range s.instances {
		if inst != nil {
			n++
		}
	}
	return n
}
