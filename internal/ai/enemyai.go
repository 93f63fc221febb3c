package ai

import (
	"fmt"

	"github.com/voidmaw/skirmish/internal/encounter"
	"github.com/voidmaw/skirmish/internal/gamedata"
	"github.com/voidmaw/skirmish/internal/random"
)

// EnemyAI drives one enemy: a behavior picks the by-the-book action and the
// personality scalars occasionally override it. These two rolls are the only
// randomness in enemy decision-making.
type EnemyAI struct {
	behavior   Behavior
	aggression float64
	caution    float64
	rng        random.Source
}

var _ encounter.Controller = (*EnemyAI)(nil)

// NewEnemyAI wraps a behavior with personality weights in [0, 1].
func NewEnemyAI(behavior Behavior, aggression, caution float64, rng random.Source) (*EnemyAI, error) {
	if behavior == nil {
		return nil, fmt.Errorf("ai: behavior is required")
	}
	if rng == nil {
		return nil, fmt.Errorf("ai: random source is required")
	}
	if aggression < 0 || aggression > 1 {
		return nil, fmt.Errorf("ai: aggression %v outside [0, 1]", aggression)
	}
	if caution < 0 || caution > 1 {
		return nil, fmt.Errorf("ai: caution %v outside [0, 1]", caution)
	}
	return &EnemyAI{
		behavior:   behavior,
		aggression: aggression,
		caution:    caution,
		rng:        rng,
	}, nil
}

// FromDef builds the controller an enemy def asks for.
func FromDef(def *gamedata.EnemyDef, rng random.Source) (*EnemyAI, error) {
	b, err := BehaviorByName(def.Behavior)
	if err != nil {
		return nil, fmt.Errorf("ai: enemy %q: %w", def.ID, err)
	}
	ctrl, err := NewEnemyAI(b, def.Aggression, def.Caution, rng)
	if err != nil {
		return nil, fmt.Errorf("ai: enemy %q: %w", def.ID, err)
	}
	return ctrl, nil
}

// BehaviorByName resolves a behavior id from enemy data.
func BehaviorByName(name string) (Behavior, error) {
	switch name {
	case "aggressive":
		return Aggressive{}, nil
	case "defensive":
		return Defensive{}, nil
	case "support":
		return Support{}, nil
	case "spellcaster":
		return Spellcaster{}, nil
	case "cowardly":
		return Cowardly{}, nil
	}
	return nil, fmt.Errorf("unknown behavior %q", name)
}

// Behavior returns the wrapped behavior.
func (e *EnemyAI) Behavior() Behavior {
	return e.behavior
}

// Act decides the enemy's action for this turn.
func (e *EnemyAI) Act(ctx encounter.AIContext) encounter.Action {
	return e.temper(ctx, e.behavior.Decide(ctx))
}

// temper applies at most one personality roll: caution can turn an attack
// into a guard, aggression can turn idling or guarding into an attack.
func (e *EnemyAI) temper(ctx encounter.AIContext, act encounter.Action) encounter.Action {
	switch act.Type {
	case encounter.ActionAttack:
		if e.caution > 0 && ctx.Actor.AbilityReady(encounter.DefendAbilityID) && e.rng.Float64() < e.caution {
			return defend()
		}
	case encounter.ActionWait, encounter.ActionDefend:
		if e.aggression > 0 && ctx.Target != nil && adjacent(ctx.Actor, ctx.Target) && e.rng.Float64() < e.aggression {
			return attack(ctx.Target)
		}
	}
	return act
}
