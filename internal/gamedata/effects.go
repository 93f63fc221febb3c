package gamedata

import (
	"fmt"

	"github.com/voidmaw/skirmish/internal/status"
)

// StatusEffectDef is one entry of the status-effect balance table. The table
// must cover the engine's closed kind set exactly; the status registry
// rejects anything else at construction.
type StatusEffectDef struct {
	ID             string  `json:"id"`
	Name           string  `json:"name"`
	Stacking       string  `json:"stacking"` // "duration" or "intensity"
	Duration       int     `json:"duration"`
	Intensity      float64 `json:"intensity"`
	TickDamage     float64 `json:"tickDamage,omitempty"`
	TickHeal       float64 `json:"tickHeal,omitempty"`
	MissChance     float64 `json:"missChance,omitempty"`
	SkipChance     float64 `json:"skipChance,omitempty"`
	RedirectChance float64 `json:"redirectChance,omitempty"`
	OutputScale    float64 `json:"outputScale,omitempty"`
	TakenScale     float64 `json:"takenScale,omitempty"`
}

// Policy converts the def into the engine's typed tuning entry.
func (d StatusEffectDef) Policy() (status.Policy, error) {
	kind, err := status.ParseKind(d.ID)
	if err != nil {
		return status.Policy{}, fmt.Errorf("effect %q: %w", d.ID, err)
	}
	mode, err := status.ParseStacking(d.Stacking)
	if err != nil {
		return status.Policy{}, fmt.Errorf("effect %q: %w", d.ID, err)
	}
	return status.Policy{
		Kind:           kind,
		Name:           d.Name,
		Stacking:       mode,
		BaseDuration:   d.Duration,
		BaseIntensity:  d.Intensity,
		TickDamage:     d.TickDamage,
		TickHeal:       d.TickHeal,
		MissChance:     d.MissChance,
		SkipChance:     d.SkipChance,
		RedirectChance: d.RedirectChance,
		OutputScale:    d.OutputScale,
		TakenScale:     d.TakenScale,
	}, nil
}

// StatusEffectsFile is the structure of effects.json.
type StatusEffectsFile struct {
	Effects []StatusEffectDef `json:"effects"`
}

// LoadStatusEffects loads the balance table from the embedded effects.json.
func LoadStatusEffects() ([]status.Policy, error) {
	file, err := Load[StatusEffectsFile]("effects.json")
	if err != nil {
		return nil, err
	}
	policies := make([]status.Policy, 0, len(file.Effects))
	for _, def := range file.Effects {
		p, err := def.Policy()
		if err != nil {
			return nil, err
		}
		policies = append(policies, p)
	}
	return policies, nil
}

// LoadStatusRegistry builds the shared effect registry from the embedded
// table.
func LoadStatusRegistry() (*status.Registry, error) {
	policies, err := LoadStatusEffects()
	if err != nil {
		return nil, err
	}
	return status.NewRegistry(policies)
}

// MustLoadStatusRegistry is LoadStatusRegistry panicking on error.
func MustLoadStatusRegistry() *status.Registry {
	reg, err := LoadStatusRegistry()
	if err != nil {
		panic(err)
	}
	return reg
}
