// Package ai decides enemy actions. Behaviors are pure rule tables over the
// battle snapshot; the personality wrapper in enemyai.go layers the only
// randomness on top, so a behavior alone replays identically from the same
// state.
package ai

import (
	"github.com/voidmaw/skirmish/internal/encounter"
	"github.com/voidmaw/skirmish/internal/gamedata"
)

// Behavior turns a battle snapshot into one action. Implementations must
// not mutate the context and must be deterministic.
type Behavior interface {
	Name() string
	Decide(ctx encounter.AIContext) encounter.Action
}

const (
	hurtRatio     = 0.4
	fleeRatio     = 0.35
	pressRatio    = 0.25
	triageRatio   = 0.5
	advanceWithin = 2
)

// Aggressive closes and swings: melee when adjacent, a damage cast when one
// reaches, otherwise a step toward the target.
type Aggressive struct{}

func (Aggressive) Name() string { return "aggressive" }

func (Aggressive) Decide(ctx encounter.AIContext) encounter.Action {
	target := ctx.Target
	if target == nil {
		return wait()
	}
	if adjacent(ctx.Actor, target) {
		return attack(target)
	}
	if act, ok := castOffensive(ctx, target); ok {
		return act
	}
	if act, ok := stepTowardView(ctx, target); ok {
		return act
	}
	return wait()
}

// Defensive guards when hurt and holds ground otherwise, only advancing on
// targets that are already close.
type Defensive struct{}

func (Defensive) Name() string { return "defensive" }

func (Defensive) Decide(ctx encounter.AIContext) encounter.Action {
	target := ctx.Target
	if target == nil {
		return wait()
	}
	if ctx.Actor.HealthRatio() < hurtRatio && ctx.Actor.AbilityReady(encounter.DefendAbilityID) {
		return defend()
	}
	if adjacent(ctx.Actor, target) {
		return attack(target)
	}
	if distance(ctx.Actor, target) <= advanceWithin {
		if act, ok := stepTowardView(ctx, target); ok {
			return act
		}
	}
	return wait()
}

// Support triages: heal the worst-off ally under half health, close on a
// wounded ally that is out of reach, and fight only as a fallback.
type Support struct{}

func (Support) Name() string { return "support" }

func (Support) Decide(ctx encounter.AIContext) encounter.Action {
	target := ctx.Target
	patient := mostInjured(ctx.Allies)
	heal := firstReady(ctx, func(def *gamedata.AbilityDef) bool {
		return def.Kind == gamedata.AbilityHeal && def.Target == gamedata.TargetAlly
	})
	if patient != nil && heal != nil {
		if inRange(ctx.Actor, patient, heal) {
			return cast(heal, patient)
		}
		if act, ok := stepTowardView(ctx, patient); ok {
			return act
		}
	}
	if target == nil {
		return wait()
	}
	if adjacent(ctx.Actor, target) {
		return attack(target)
	}
	if act, ok := stepTowardView(ctx, target); ok {
		return act
	}
	return wait()
}

// Spellcaster casts from range and kites anything that closes in.
type Spellcaster struct{}

func (Spellcaster) Name() string { return "spellcaster" }

func (Spellcaster) Decide(ctx encounter.AIContext) encounter.Action {
	target := ctx.Target
	if target == nil {
		return wait()
	}
	if act, ok := castOffensive(ctx, target); ok {
		return act
	}
	if distance(ctx.Actor, target) < advanceWithin {
		if act, ok := stepAwayFromView(ctx, target); ok {
			return act
		}
		// Cornered at melee reach.
		return attack(target)
	}
	if act, ok := stepTowardView(ctx, target); ok {
		return act
	}
	return wait()
}

// Cowardly lurks, pounces on nearly dead targets, and runs when badly hurt.
type Cowardly struct{}

func (Cowardly) Name() string { return "cowardly" }

func (Cowardly) Decide(ctx encounter.AIContext) encounter.Action {
	target := ctx.Target
	if target == nil {
		return wait()
	}
	if ctx.Actor.HealthRatio() < fleeRatio {
		if act, ok := stepAwayFromView(ctx, target); ok {
			return act
		}
		// Cornered.
		if ctx.Actor.AbilityReady(encounter.DefendAbilityID) {
			return defend()
		}
		if adjacent(ctx.Actor, target) {
			return attack(target)
		}
		return wait()
	}
	if target.HealthRatio() < pressRatio && !adjacent(ctx.Actor, target) {
		if act, ok := stepTowardView(ctx, target); ok {
			return act
		}
	}
	if adjacent(ctx.Actor, target) {
		if act, ok := castOffensive(ctx, target); ok {
			return act
		}
		return attack(target)
	}
	return wait()
}

func wait() encounter.Action {
	return encounter.Action{Type: encounter.ActionWait}
}

func defend() encounter.Action {
	return encounter.Action{Type: encounter.ActionDefend}
}

func attack(target encounter.CombatantView) encounter.Action {
	return encounter.Action{Type: encounter.ActionAttack, Target: target.ID()}
}

func cast(def *gamedata.AbilityDef, target encounter.CombatantView) encounter.Action {
	return encounter.Action{Type: encounter.ActionUseAbility, Ability: def.ID, Target: target.ID()}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v < 0:
		return -1
	case v > 0:
		return 1
	}
	return 0
}

func manhattan(ax, ay, bx, by int) int {
	return abs(ax-bx) + abs(ay-by)
}

func distance(a, b encounter.CombatantView) int {
	ax, ay := a.Pos()
	bx, by := b.Pos()
	return manhattan(ax, ay, bx, by)
}

func adjacent(a, b encounter.CombatantView) bool {
	return distance(a, b) <= 1
}

func inRange(actor, target encounter.CombatantView, def *gamedata.AbilityDef) bool {
	if def.Range <= 0 {
		return true
	}
	return distance(actor, target) <= def.Range
}

// firstReady walks the actor's loadout in order and returns the first def
// that matches, is off cooldown, and is affordable.
func firstReady(ctx encounter.AIContext, match func(*gamedata.AbilityDef) bool) *gamedata.AbilityDef {
	for _, id := range ctx.Actor.Abilities() {
		def := ctx.Abilities.GetByID(id)
		if def == nil || !match(def) {
			continue
		}
		if !ctx.Actor.AbilityReady(def.ID) || ctx.Actor.Mana() < def.ManaCost {
			continue
		}
		return def
	}
	return nil
}

// castOffensive picks the first ready enemy-targeting ability that reaches
// the target.
func castOffensive(ctx encounter.AIContext, target encounter.CombatantView) (encounter.Action, bool) {
	def := firstReady(ctx, func(def *gamedata.AbilityDef) bool {
		return def.Offensive() && inRange(ctx.Actor, target, def)
	})
	if def == nil {
		return encounter.Action{}, false
	}
	return cast(def, target), true
}

// mostInjured returns the ally with the lowest health ratio under the triage
// threshold, or nil when nobody qualifies.
func mostInjured(allies []encounter.CombatantView) encounter.CombatantView {
	var worst encounter.CombatantView
	for _, a := range allies {
		if a.HealthRatio() >= triageRatio {
			continue
		}
		if worst == nil || a.HealthRatio() < worst.HealthRatio() {
			worst = a
		}
	}
	return worst
}

// stepToward picks one orthogonal step that closes the gap to (tx, ty):
// the larger axis delta first, x before y on ties, falling back to the
// other axis when the first is blocked.
func stepToward(ctx encounter.AIContext, tx, ty int) (encounter.Action, bool) {
	ax, ay := ctx.Actor.Pos()
	return pickStep(ctx, ax, ay, tx-ax, ty-ay)
}

// stepAwayFrom mirrors stepToward, widening the gap instead.
func stepAwayFrom(ctx encounter.AIContext, tx, ty int) (encounter.Action, bool) {
	ax, ay := ctx.Actor.Pos()
	return pickStep(ctx, ax, ay, ax-tx, ay-ty)
}

func stepTowardView(ctx encounter.AIContext, v encounter.CombatantView) (encounter.Action, bool) {
	tx, ty := v.Pos()
	return stepToward(ctx, tx, ty)
}

func stepAwayFromView(ctx encounter.AIContext, v encounter.CombatantView) (encounter.Action, bool) {
	tx, ty := v.Pos()
	return stepAwayFrom(ctx, tx, ty)
}

func pickStep(ctx encounter.AIContext, ax, ay, dx, dy int) (encounter.Action, bool) {
	sx, sy := sign(dx), sign(dy)
	var cands [][2]int
	if abs(dx) >= abs(dy) {
		if sx != 0 {
			cands = append(cands, [2]int{ax + sx, ay})
		}
		if sy != 0 {
			cands = append(cands, [2]int{ax, ay + sy})
		}
	} else {
		if sy != 0 {
			cands = append(cands, [2]int{ax, ay + sy})
		}
		if sx != 0 {
			cands = append(cands, [2]int{ax + sx, ay})
		}
	}
	for _, c := range cands {
		if ctx.CanStep(c[0], c[1]) {
			return encounter.Action{Type: encounter.ActionMove, DestX: c[0], DestY: c[1]}, true
		}
	}
	return encounter.Action{}, false
}
