package gamedata

// =============================================================================
// ABILITY SYSTEM
// =============================================================================
//
// Abilities are composable, data-driven combat actions shared by the player
// and enemies. They are defined in abilities.json and loaded once at startup;
// the engine resolves them by id when an action is applied.
//
// An ability has one kind:
//   - damage:  reduce target HP, optionally riding a status effect on the hit
//   - heal:    restore target HP
//   - restore: restore target MP
//   - cure:    strip one named status effect from the target
//   - apply:   apply a status effect (duration/intensity from the def)
//
// and one target mode:
//   - enemy: a combatant on the opposing side
//   - ally:  a combatant on the caster's side, the caster included
//   - self:  the caster only
//
// Preconditions (mana cost, cooldown) are validated by the engine before any
// state mutates; a failing precondition rejects the action without consuming
// the turn. Cooldown and mana are charged only when the ability lands.
//
// Defend is itself an ability ("defend"): the universal guard action resolves
// through this table so its numbers stay data, not code.
//
// JSON schema:
//
//	{
//	  "id": "fireball",
//	  "name": "Fireball",
//	  "kind": "damage",
//	  "target": "enemy",
//	  "power": 25,
//	  "manaCost": 15,
//	  "cooldown": 2,
//	  "range": 4
//	}
//
// Integration points:
//   - EnemyDef.Abilities and ClassDef.Abilities list ability ids.
//   - The engine charges mana/cooldown and applies the effect payload.
//   - AI behaviors read readiness (cooldown zero, mana affordable) and range
//     when choosing an action.

import (
	"fmt"

	"github.com/voidmaw/skirmish/internal/status"
)

// AbilityKind classifies what an ability does when it lands.
type AbilityKind string

const (
	AbilityDamage  AbilityKind = "damage"
	AbilityHeal    AbilityKind = "heal"
	AbilityRestore AbilityKind = "restore"
	AbilityCure    AbilityKind = "cure"
	AbilityApply   AbilityKind = "apply"
)

// TargetMode says who an ability may land on.
type TargetMode string

const (
	TargetEnemy TargetMode = "enemy"
	TargetAlly  TargetMode = "ally"
	TargetSelf  TargetMode = "self"
)

// EffectRef points an ability at a status effect along with the numbers to
// apply it with.
type EffectRef struct {
	ID        string  `json:"id"`
	Duration  int     `json:"duration"`
	Intensity float64 `json:"intensity"`
}

// Kind resolves the referenced status-effect kind.
func (r EffectRef) Kind() (status.Kind, error) {
	return status.ParseKind(r.ID)
}

// AbilityDef defines an ability loaded from JSON.
type AbilityDef struct {
	ID          string      `json:"id"`
	Name        string      `json:"name"`
	Description string      `json:"description,omitempty"`
	Kind        AbilityKind `json:"kind"`
	Target      TargetMode  `json:"target"`
	Power       int         `json:"power,omitempty"`
	ManaCost    int         `json:"manaCost,omitempty"`
	Cooldown    int         `json:"cooldown,omitempty"`
	Range       int         `json:"range,omitempty"`
	Effect      *EffectRef  `json:"effect,omitempty"`
	Cures       string      `json:"cures,omitempty"`
}

// Offensive reports whether the ability lands on the opposing side.
func (a *AbilityDef) Offensive() bool {
	return a.Target == TargetEnemy
}

// Validate checks the def's enumerations and cross-references.
func (a *AbilityDef) Validate() error {
	if a.ID == "" {
		return fmt.Errorf("ability with empty id")
	}
	switch a.Kind {
	case AbilityDamage, AbilityHeal, AbilityRestore, AbilityCure, AbilityApply:
	default:
		return fmt.Errorf("ability %q: unknown kind %q", a.ID, a.Kind)
	}
	switch a.Target {
	case TargetEnemy, TargetAlly, TargetSelf:
	default:
		return fmt.Errorf("ability %q: unknown target %q", a.ID, a.Target)
	}
	if a.Kind == AbilityApply && a.Effect == nil {
		return fmt.Errorf("ability %q: apply kind without an effect payload", a.ID)
	}
	if a.Effect != nil {
		if _, err := a.Effect.Kind(); err != nil {
			return fmt.Errorf("ability %q: %w", a.ID, err)
		}
		if a.Effect.Duration <= 0 || a.Effect.Intensity <= 0 {
			return fmt.Errorf("ability %q: effect payload needs positive duration and intensity", a.ID)
		}
	}
	if a.Kind == AbilityCure {
		if a.Cures == "" {
			return fmt.Errorf("ability %q: cure kind without a cures target", a.ID)
		}
		if _, err := status.ParseKind(a.Cures); err != nil {
			return fmt.Errorf("ability %q: %w", a.ID, err)
		}
	}
	if a.Cooldown < 0 || a.ManaCost < 0 || a.Power < 0 || a.Range < 0 {
		return fmt.Errorf("ability %q: negative tuning values", a.ID)
	}
	return nil
}

// AbilitiesFile is the structure of abilities.json.
type AbilitiesFile struct {
	Abilities []AbilityDef `json:"abilities"`
}

// LoadAbilities loads and validates ability definitions from the embedded
// abilities.json.
func LoadAbilities() ([]AbilityDef, error) {
	file, err := Load[AbilitiesFile]("abilities.json")
	if err != nil {
		return nil, err
	}
	for i := range file.Abilities {
		if err := file.Abilities[i].Validate(); err != nil {
			return nil, err
		}
	}
	return file.Abilities, nil
}
