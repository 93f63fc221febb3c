// Package status implements status-effect policies and the per-combatant
// store of active effect instances. The set of effect kinds is closed:
// everything the engine understands is enumerated here, and the registry
// refuses tuning tables that do not cover the set exactly.
package status

import "fmt"

// Kind identifies one status effect.
type Kind int

const (
	Poison Kind = iota
	Paralysis
	Blindness
	Confusion
	Haste
	Slow
	Regeneration
	Strength
	Weakness
	Protection

	numKinds
)

var kindNames = [numKinds]string{
	Poison:       "poison",
	Paralysis:    "paralysis",
	Blindness:    "blindness",
	Confusion:    "confusion",
	Haste:        "haste",
	Slow:         "slow",
	Regeneration: "regeneration",
	Strength:     "strength",
	Weakness:     "weakness",
	Protection:   "protection",
}

// String returns the kind's data-file identifier.
func (k Kind) String() string {
	if !k.Valid() {
		return fmt.Sprintf("Kind(%d)", int(k))
	}
	return kindNames[k]
}

// Valid reports whether k belongs to the closed set.
func (k Kind) Valid() bool {
	return k >= 0 && k < numKinds
}

// Kinds returns every kind in enumeration order. All deterministic iteration
// over effects uses this order.
func Kinds() []Kind {
	out := make([]Kind, numKinds)
	for i := range out {
		out[i] = Kind(i)
	}
	return out
}

// ParseKind maps a data-file identifier onto its Kind.
func ParseKind(s string) (Kind, error) {
	for i, name := range kindNames {
		if name == s {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("unknown status effect %q", s)
}

// Stacking selects how a repeated application of the same kind combines with
// the active instance.
type Stacking int

const (
	// StackDuration extends the remaining duration; magnitude is untouched.
	StackDuration Stacking = iota
	// StackIntensity raises the magnitude and resets the remaining duration
	// to the larger of the current remainder and the incoming base. The
	// reset-not-extend asymmetry against StackDuration is a deliberate
	// balance rule.
	StackIntensity
)

var stackingNames = map[Stacking]string{
	StackDuration:  "duration",
	StackIntensity: "intensity",
}

func (s Stacking) String() string {
	if name, ok := stackingNames[s]; ok {
		return name
	}
	return fmt.Sprintf("Stacking(%d)", int(s))
}

// ParseStacking maps a data-file identifier onto its Stacking mode.
func ParseStacking(s string) (Stacking, error) {
	for mode, name := range stackingNames {
		if name == s {
			return mode, nil
		}
	}
	return 0, fmt.Errorf("unknown stacking mode %q", s)
}

// Caps on stacked values, as multiples of a kind's base numbers.
const (
	durationCapFactor  = 2
	intensityCapFactor = 3
)

// Policy is the immutable tuning for one effect kind. Tables are injected at
// registry construction; nothing in this package carries package-level
// mutable tuning.
type Policy struct {
	Kind          Kind
	Name          string
	Stacking      Stacking
	BaseDuration  int
	BaseIntensity float64

	// TickDamage and TickHeal are per-intensity-point amounts applied to
	// the owner at its turn start. Tick damage bypasses Protection.
	TickDamage float64
	TickHeal   float64

	// MissChance is the chance an attack made under this effect misses.
	MissChance float64
	// SkipChance is the per-turn chance the owner loses its action.
	SkipChance float64
	// RedirectChance is the chance a hostile single-target action is
	// redirected to a random live combatant.
	RedirectChance float64

	// OutputScale and TakenScale are per-intensity-point multipliers on
	// damage dealt and damage received.
	OutputScale float64
	TakenScale  float64
}

// MaxDuration is the ceiling stacking may extend remaining duration to.
func (p Policy) MaxDuration() int {
	return p.BaseDuration * durationCapFactor
}

// MaxIntensity is the ceiling stacking may raise intensity to.
func (p Policy) MaxIntensity() float64 {
	return p.BaseIntensity * intensityCapFactor
}
