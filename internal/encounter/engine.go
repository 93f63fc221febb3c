package encounter

import (
	"fmt"

	"github.com/google/uuid"

	"github.com/voidmaw/skirmish/internal/entity"
	"github.com/voidmaw/skirmish/internal/gamedata"
	"github.com/voidmaw/skirmish/internal/random"
	"github.com/voidmaw/skirmish/internal/status"
)

const (
	// DefendAbilityID is the data table entry the universal guard action
	// resolves through. Every combatant may Defend whether or not the id is
	// in its loadout.
	DefendAbilityID = "defend"

	// fleeChance is the per-attempt odds of escaping combat.
	fleeChance = 0.5
)

// Engine runs one player's encounters. It owns the phase machine, the turn
// order, and all combat mutation; callers drive it one event at a time
// through Advance.
type Engine struct {
	player  *entity.Combatant
	enemies []*entity.Combatant
	ctrls   map[uuid.UUID]Controller

	abilities *gamedata.AbilityRegistry
	rng       random.Source

	proximity Proximity
	terrain   Terrain
	rewards   Rewards

	phase Phase
	order []*entity.Combatant
	idx   int
	round int
	turn  int

	// current is the combatant whose turn is open; acted marks its action
	// resolved (or forfeited) with the turn-end tick still pending.
	current *entity.Combatant
	acted   bool

	fled     bool
	defeated []*entity.Combatant
}

// NewEngine wires an engine around the player and its collaborator ports.
// The ability registry must carry the "defend" entry; the guard action
// resolves through it.
func NewEngine(player *entity.Combatant, abilities *gamedata.AbilityRegistry, prox Proximity, terrain Terrain, rewards Rewards, rng random.Source) (*Engine, error) {
	if player == nil || !player.IsPlayer() {
		return nil, fmt.Errorf("encounter: engine requires a player-controlled combatant")
	}
	if abilities == nil {
		return nil, fmt.Errorf("encounter: engine requires an ability registry")
	}
	if def := abilities.GetByID(DefendAbilityID); def == nil || def.Effect == nil {
		return nil, fmt.Errorf("encounter: ability registry is missing a usable %q entry", DefendAbilityID)
	}
	if prox == nil || terrain == nil || rewards == nil {
		return nil, fmt.Errorf("encounter: proximity, terrain, and rewards ports are all required")
	}
	if rng == nil {
		return nil, fmt.Errorf("encounter: engine requires a random source")
	}
	return &Engine{
		player:    player,
		ctrls:     make(map[uuid.UUID]Controller),
		abilities: abilities,
		rng:       rng,
		proximity: prox,
		terrain:   terrain,
		rewards:   rewards,
		phase:     Exploration,
	}, nil
}

// AddEnemy registers an enemy and its controller. Enemies join only during
// exploration; mid-combat reinforcement is not part of this system.
func (e *Engine) AddEnemy(c *entity.Combatant, ctrl Controller) error {
	const op = "add_enemy"
	if e.phase != Exploration {
		return contractErr(op, "enemies join during exploration, not %s", e.phase)
	}
	if c == nil || ctrl == nil {
		return contractErr(op, "enemy and controller are both required")
	}
	if c.IsPlayer() {
		return contractErr(op, "%s is player-controlled", c.Name())
	}
	e.enemies = append(e.enemies, c)
	e.ctrls[c.ID()] = ctrl
	return nil
}

// Advance performs one step of the encounter and returns the single event it
// produced. act carries the player's choice and may only be non-nil while
// the engine is waiting for player input; any other time it is a broken
// contract. A rejected player action returns an InvalidAction error with
// nothing mutated and the same turn still open.
func (e *Engine) Advance(act *Action) (Event, error) {
	const op = "advance"
	switch e.phase {
	case Exploration:
		if act != nil {
			return Event{}, contractErr(op, "no player turn awaits input during %s", e.phase)
		}
		return e.pollEngagement(), nil
	case CombatInit:
		if act != nil {
			return Event{}, contractErr(op, "no player turn awaits input during %s", e.phase)
		}
		return e.beginCombat(), nil
	case CombatActive:
		return e.stepCombat(act)
	case CombatResolution:
		if act != nil {
			return Event{}, contractErr(op, "no player turn awaits input during %s", e.phase)
		}
		return e.resolveCombat(), nil
	case CombatExit:
		if act != nil {
			return Event{}, contractErr(op, "no player turn awaits input during %s", e.phase)
		}
		return e.exitCombat(), nil
	}
	return Event{}, contractErr(op, "engine in unknown phase %d", int(e.phase))
}

// pollEngagement checks whether any living enemy has closed to melee reach.
func (e *Engine) pollEngagement() Event {
	px, py := e.player.Pos()
	for _, en := range e.enemies {
		if !en.Alive() {
			continue
		}
		ex, ey := en.Pos()
		if e.proximity.Adjacent(px, py, ex, ey) {
			return e.transition(CombatInit)
		}
	}
	return Event{Type: EventNone}
}

// beginCombat freezes participants into the turn order: the player first,
// then living enemies in spawn order.
func (e *Engine) beginCombat() Event {
	e.order = make([]*entity.Combatant, 0, 1+len(e.enemies))
	e.order = append(e.order, e.player)
	for _, en := range e.enemies {
		if en.Alive() {
			e.order = append(e.order, en)
		}
	}
	e.idx = 0
	e.round = 1
	e.turn = 0
	e.current = nil
	e.acted = false
	e.fled = false
	e.defeated = nil
	return e.transition(CombatActive)
}

// stepCombat advances the turn loop by one event.
func (e *Engine) stepCombat(act *Action) (Event, error) {
	const op = "advance"

	if e.combatOver() {
		if act != nil {
			return Event{}, contractErr(op, "no player turn awaits input; combat is resolving")
		}
		e.current = nil
		e.acted = false
		return e.transition(CombatResolution), nil
	}

	if e.current == nil {
		if act != nil {
			return Event{}, contractErr(op, "no player turn awaits input")
		}
		if e.idx >= len(e.order) {
			e.idx = 0
			e.round++
			return Event{Type: EventRoundAdvanced, Round: e.round}, nil
		}
		return e.openTurn(), nil
	}

	if !e.acted {
		if e.current.IsPlayer() {
			if act == nil {
				return Event{Type: EventWaitingForPlayerInput, Combatant: e.current.ID(), Round: e.round}, nil
			}
			res, err := e.applyAction(e.current, *act)
			if err != nil {
				return Event{}, err
			}
			e.acted = true
			return Event{Type: EventActionResolved, Combatant: e.current.ID(), Action: act, Result: res, Round: e.round}, nil
		}
		if act != nil {
			return Event{}, contractErr(op, "no player turn awaits input; it is %s's turn", e.current.Name())
		}
		decided := e.decideEnemyAction(e.current)
		res, err := e.applyAction(e.current, decided)
		if err != nil {
			// An unplayable decision degrades to waiting out the turn.
			decided = Action{Type: ActionWait}
			res = &Result{Message: fmt.Sprintf("%s hesitates.", e.current.Name())}
		}
		e.acted = true
		return Event{Type: EventActionResolved, Combatant: e.current.ID(), Action: &decided, Result: res, Round: e.round}, nil
	}

	if act != nil {
		return Event{}, contractErr(op, "no player turn awaits input; %s's turn is closing", e.current.Name())
	}
	e.finishTurn()
	if e.idx >= len(e.order) {
		e.idx = 0
		e.round++
		return Event{Type: EventRoundAdvanced, Round: e.round}, nil
	}
	return e.openTurn(), nil
}

// openTurn begins order[idx]'s turn: mana regeneration, turn-start effect
// ticks, and the can-act roll. A combatant that dies to its own ticks is
// removed on the spot and produces no action.
func (e *Engine) openTurn() Event {
	c := e.order[e.idx]
	e.turn++

	res := &Result{}
	if c.MaxMana() > 0 {
		res.ManaRestored = c.RegenMana()
	}
	for _, t := range c.Effects().TickTurnStart(c) {
		res.Damage += t.Damage
		res.Healing += t.Heal
	}

	ev := Event{Type: EventTurnStarted, Combatant: c.ID(), Result: res, Round: e.round}
	if !c.Alive() {
		res.Defeated = append(res.Defeated, c.ID())
		res.Message = fmt.Sprintf("%s collapses.", c.Name())
		e.removeFromOrder(c)
		e.current = nil
		e.acted = false
		return ev
	}

	e.current = c
	if !c.CanAct(e.rng) {
		res.Skipped = true
		if c.HasEffect(status.Paralysis) {
			res.Message = fmt.Sprintf("%s is paralyzed and cannot act.", c.Name())
		} else {
			res.Message = fmt.Sprintf("%s is too slow to act.", c.Name())
		}
		e.acted = true
	} else {
		e.acted = false
	}
	return ev
}

// finishTurn closes the current combatant's turn: durations tick down,
// expired effects drop, and cooldowns advance.
func (e *Engine) finishTurn() {
	e.current.Effects().TickTurnEnd()
	e.current.TickCooldowns()
	e.current = nil
	e.acted = false
	e.idx++
}

// decideEnemyAction asks the enemy's controller for a decision.
func (e *Engine) decideEnemyAction(c *entity.Combatant) Action {
	ctrl := e.ctrls[c.ID()]
	if ctrl == nil {
		return Action{Type: ActionWait}
	}
	return ctrl.Act(e.aiContext(c))
}

// aiContext snapshots the battle from one enemy's point of view.
func (e *Engine) aiContext(actor *entity.Combatant) AIContext {
	ctx := AIContext{
		Actor:     actor,
		Round:     e.round,
		Turn:      e.turn,
		Abilities: e.abilities,
		CanStep:   e.canStep,
	}
	for _, c := range e.order {
		if c == actor || !c.Alive() {
			continue
		}
		if c.IsPlayer() == actor.IsPlayer() {
			ctx.Allies = append(ctx.Allies, c)
		} else {
			ctx.Opponents = append(ctx.Opponents, c)
		}
	}
	if len(ctx.Opponents) > 0 {
		ctx.Target = ctx.Opponents[0]
	}
	return ctx
}

// combatOver reports whether the encounter has a decided outcome.
func (e *Engine) combatOver() bool {
	if e.fled || !e.player.Alive() {
		return true
	}
	return e.livingEnemies() == 0
}

func (e *Engine) livingEnemies() int {
	n := 0
	for _, en := range e.enemies {
		if en.Alive() {
			n++
		}
	}
	return n
}

// resolveCombat applies the encounter outcome to the rewards sink.
func (e *Engine) resolveCombat() Event {
	switch {
	case e.fled:
		e.rewards.Fled()
	case !e.player.Alive():
		e.rewards.Defeat()
	default:
		views := make([]CombatantView, len(e.defeated))
		for i, c := range e.defeated {
			views[i] = c
		}
		e.rewards.Victory(views)
	}
	return e.transition(CombatExit)
}

// exitCombat tears down combat-only state. Health and mana persist; status
// effects and cooldowns are combat-scoped and clear here.
func (e *Engine) exitCombat() Event {
	e.player.Effects().Clear()
	e.player.ResetCooldowns()

	living := make([]*entity.Combatant, 0, len(e.enemies))
	for _, en := range e.enemies {
		if !en.Alive() {
			delete(e.ctrls, en.ID())
			continue
		}
		en.Effects().Clear()
		en.ResetCooldowns()
		living = append(living, en)
	}
	e.enemies = living

	e.order = nil
	e.idx = 0
	e.round = 0
	e.turn = 0
	e.current = nil
	e.acted = false
	e.fled = false
	e.defeated = nil
	return e.transition(Exploration)
}

func (e *Engine) transition(to Phase) Event {
	from := e.phase
	e.phase = to
	return Event{Type: EventPhaseChanged, From: from, To: to, Round: e.round}
}

// removeFromOrder drops a fallen combatant from the turn order, keeping the
// index on the entry that would have acted next.
func (e *Engine) removeFromOrder(c *entity.Combatant) {
	for i, o := range e.order {
		if o != c {
			continue
		}
		e.order = append(e.order[:i], e.order[i+1:]...)
		if i < e.idx {
			e.idx--
		}
		break
	}
	if !c.IsPlayer() {
		e.defeated = append(e.defeated, c)
	}
}

// applyAction validates and resolves one action for the actor. Validation
// runs to completion before anything mutates, so a rejection leaves no
// trace.
func (e *Engine) applyAction(actor *entity.Combatant, act Action) (*Result, error) {
	switch act.Type {
	case ActionAttack:
		return e.applyAttack(actor, act)
	case ActionDefend:
		return e.applyDefend(actor)
	case ActionUseAbility:
		return e.applyAbility(actor, act)
	case ActionMove:
		return e.applyMove(actor, act)
	case ActionWait:
		return &Result{Message: fmt.Sprintf("%s waits.", actor.Name())}, nil
	case ActionFlee:
		return e.applyFlee(actor)
	}
	return nil, invalidErr("advance", "unknown action type %d", int(act.Type))
}

func (e *Engine) applyAttack(actor *entity.Combatant, act Action) (*Result, error) {
	const op = "advance"
	target := e.findTarget(act.Target)
	if target == nil {
		return nil, invalidErr(op, "attack target is not in this fight")
	}
	if target.IsPlayer() == actor.IsPlayer() {
		return nil, invalidErr(op, "%s is not an opponent", target.Name())
	}
	ax, ay := actor.Pos()
	tx, ty := target.Pos()
	if !e.proximity.Adjacent(ax, ay, tx, ty) {
		return nil, invalidErr(op, "%s is out of reach", target.Name())
	}

	res := &Result{}
	if e.rollMiss(actor) {
		res.Missed = true
		res.Message = fmt.Sprintf("%s swings at %s and misses.", actor.Name(), target.Name())
		return res, nil
	}
	target = e.rollRedirect(actor, target, res)
	res.Damage = target.TakeDamage(actor.EffectiveDamage(actor.Attack()), false)
	if res.Redirected {
		res.Message = fmt.Sprintf("%s, confused, strikes %s for %d damage.", actor.Name(), target.Name(), res.Damage)
	} else {
		res.Message = fmt.Sprintf("%s strikes %s for %d damage.", actor.Name(), target.Name(), res.Damage)
	}
	e.noteDeath(target, res)
	return res, nil
}

func (e *Engine) applyDefend(actor *entity.Combatant) (*Result, error) {
	def := e.abilities.GetByID(DefendAbilityID)
	if !actor.AbilityReady(def.ID) {
		return nil, invalidErr("advance", "%s is still recovering their guard", actor.Name())
	}
	kind, err := def.Effect.Kind()
	if err != nil {
		return nil, contractErr("advance", "defend effect: %v", err)
	}
	actor.Effects().Apply(kind, def.Effect.Duration, def.Effect.Intensity)
	actor.StartCooldown(def.ID, def.Cooldown)
	return &Result{
		Applied: []status.Kind{kind},
		Message: fmt.Sprintf("%s braces for the next blow.", actor.Name()),
	}, nil
}

func (e *Engine) applyAbility(actor *entity.Combatant, act Action) (*Result, error) {
	const op = "advance"
	def := e.abilities.GetByID(act.Ability)
	if def == nil {
		return nil, invalidErr(op, "unknown ability %q", act.Ability)
	}
	if !actor.HasAbility(def.ID) {
		return nil, invalidErr(op, "%s does not know %s", actor.Name(), def.Name)
	}
	if !actor.AbilityReady(def.ID) {
		return nil, invalidErr(op, "%s is on cooldown for %d more turns", def.Name, actor.CooldownRemaining(def.ID))
	}
	if actor.Mana() < def.ManaCost {
		return nil, invalidErr(op, "%s needs %d mana; %s has %d", def.Name, def.ManaCost, actor.Name(), actor.Mana())
	}
	target, err := e.resolveAbilityTarget(actor, def, act)
	if err != nil {
		return nil, err
	}

	res := &Result{}
	switch def.Kind {
	case gamedata.AbilityDamage:
		if e.rollMiss(actor) {
			res.Missed = true
			res.Message = fmt.Sprintf("%s's %s goes wide of %s.", actor.Name(), def.Name, target.Name())
			break
		}
		target = e.rollRedirect(actor, target, res)
		res.Damage = target.TakeDamage(actor.EffectiveDamage(def.Power), false)
		res.Message = fmt.Sprintf("%s hits %s with %s for %d damage.", actor.Name(), target.Name(), def.Name, res.Damage)
		if def.Effect != nil && target.Alive() {
			kind, kerr := def.Effect.Kind()
			if kerr == nil {
				target.Effects().Apply(kind, def.Effect.Duration, def.Effect.Intensity)
				res.Applied = append(res.Applied, kind)
			}
		}
		e.noteDeath(target, res)

	case gamedata.AbilityHeal:
		res.Healing = target.Heal(def.Power)
		if target == actor {
			res.Message = fmt.Sprintf("%s uses %s and recovers %d health.", actor.Name(), def.Name, res.Healing)
		} else {
			res.Message = fmt.Sprintf("%s heals %s for %d health.", actor.Name(), target.Name(), res.Healing)
		}

	case gamedata.AbilityRestore:
		res.ManaRestored = target.RestoreMana(def.Power)
		res.Message = fmt.Sprintf("%s uses %s and recovers %d mana.", actor.Name(), def.Name, res.ManaRestored)

	case gamedata.AbilityCure:
		kind, kerr := status.ParseKind(def.Cures)
		if kerr != nil {
			return nil, contractErr(op, "cure target: %v", kerr)
		}
		if target.Effects().Remove(kind) {
			res.Removed = append(res.Removed, kind)
			res.Message = fmt.Sprintf("%s's %s purges the %s.", actor.Name(), def.Name, kind)
		} else {
			res.Message = fmt.Sprintf("%s uses %s, but there is nothing to cure.", actor.Name(), def.Name)
		}

	case gamedata.AbilityApply:
		kind, kerr := def.Effect.Kind()
		if kerr != nil {
			return nil, contractErr(op, "%s effect: %v", def.ID, kerr)
		}
		if def.Offensive() {
			if e.rollMiss(actor) {
				res.Missed = true
				res.Message = fmt.Sprintf("%s's %s fizzles against %s.", actor.Name(), def.Name, target.Name())
				break
			}
			target = e.rollRedirect(actor, target, res)
		}
		target.Effects().Apply(kind, def.Effect.Duration, def.Effect.Intensity)
		res.Applied = append(res.Applied, kind)
		name := target.Effects().Policy(kind).Name
		switch {
		case target == actor:
			res.Message = fmt.Sprintf("%s uses %s and gains %s.", actor.Name(), def.Name, name)
		case def.Offensive():
			res.Message = fmt.Sprintf("%s afflicts %s with %s.", actor.Name(), target.Name(), name)
		default:
			res.Message = fmt.Sprintf("%s casts %s on %s, granting %s.", actor.Name(), def.Name, target.Name(), name)
		}

	default:
		return nil, contractErr(op, "ability %s has unknown kind %q", def.ID, def.Kind)
	}

	actor.SpendMana(def.ManaCost)
	actor.StartCooldown(def.ID, def.Cooldown)
	return res, nil
}

func (e *Engine) applyMove(actor *entity.Combatant, act Action) (*Result, error) {
	const op = "advance"
	ax, ay := actor.Pos()
	if e.proximity.Distance(ax, ay, act.DestX, act.DestY) != 1 {
		return nil, invalidErr(op, "can only step to an adjacent tile")
	}
	if !e.canStep(act.DestX, act.DestY) {
		return nil, invalidErr(op, "the way is blocked")
	}
	actor.MoveTo(act.DestX, act.DestY)
	return &Result{Message: fmt.Sprintf("%s moves.", actor.Name())}, nil
}

func (e *Engine) applyFlee(actor *entity.Combatant) (*Result, error) {
	if !actor.IsPlayer() {
		return nil, invalidErr("advance", "only the player may flee")
	}
	if e.rng.Float64() < fleeChance {
		e.fled = true
		return &Result{Fled: true, Message: fmt.Sprintf("%s breaks away from the fight!", actor.Name())}, nil
	}
	return &Result{Message: fmt.Sprintf("%s tries to flee but cannot break away.", actor.Name())}, nil
}

// resolveAbilityTarget picks and validates the combatant an ability lands
// on, honoring the def's target mode and range.
func (e *Engine) resolveAbilityTarget(actor *entity.Combatant, def *gamedata.AbilityDef, act Action) (*entity.Combatant, error) {
	const op = "advance"
	switch def.Target {
	case gamedata.TargetSelf:
		return actor, nil

	case gamedata.TargetAlly:
		if act.Target == uuid.Nil || act.Target == actor.ID() {
			return actor, nil
		}
		ally := e.findTarget(act.Target)
		if ally == nil {
			return nil, invalidErr(op, "ally target is not in this fight")
		}
		if ally.IsPlayer() != actor.IsPlayer() {
			return nil, invalidErr(op, "%s cannot land on an opponent", def.Name)
		}
		if !e.inRange(actor, ally, def) {
			return nil, invalidErr(op, "%s is out of range of %s", ally.Name(), def.Name)
		}
		return ally, nil

	case gamedata.TargetEnemy:
		target := e.findTarget(act.Target)
		if target == nil {
			return nil, invalidErr(op, "target is not in this fight")
		}
		if target.IsPlayer() == actor.IsPlayer() {
			return nil, invalidErr(op, "%s is not an opponent", target.Name())
		}
		if !e.inRange(actor, target, def) {
			return nil, invalidErr(op, "%s is out of range of %s", target.Name(), def.Name)
		}
		return target, nil
	}
	return nil, contractErr(op, "ability %s has unknown target mode %q", def.ID, def.Target)
}

func (e *Engine) inRange(a, b *entity.Combatant, def *gamedata.AbilityDef) bool {
	if def.Range <= 0 {
		return true
	}
	ax, ay := a.Pos()
	bx, by := b.Pos()
	return e.proximity.Distance(ax, ay, bx, by) <= def.Range
}

// rollMiss rolls the blind-miss chance for an offensive action.
func (e *Engine) rollMiss(actor *entity.Combatant) bool {
	if !actor.Blinded() {
		return false
	}
	return e.rng.Float64() < actor.Effects().Policy(status.Blindness).MissChance
}

// rollRedirect rolls confusion: on a failed roll the action stays on the
// intended target, otherwise it lands on a uniformly random live combatant
// other than the actor, which may still be the intended one.
func (e *Engine) rollRedirect(actor, intended *entity.Combatant, res *Result) *entity.Combatant {
	if !actor.Confused() {
		return intended
	}
	if e.rng.Float64() >= actor.Effects().Policy(status.Confusion).RedirectChance {
		return intended
	}
	candidates := make([]*entity.Combatant, 0, len(e.order))
	for _, c := range e.order {
		if c != actor && c.Alive() {
			candidates = append(candidates, c)
		}
	}
	if len(candidates) == 0 {
		return intended
	}
	picked := candidates[e.rng.Intn(len(candidates))]
	if picked != intended {
		res.Redirected = true
	}
	return picked
}

// noteDeath records a kill on the result and drops the fallen combatant
// from the turn order.
func (e *Engine) noteDeath(target *entity.Combatant, res *Result) {
	if target.Alive() {
		return
	}
	res.Defeated = append(res.Defeated, target.ID())
	res.Message += fmt.Sprintf(" %s falls!", target.Name())
	e.removeFromOrder(target)
}

// findTarget resolves an id to a living member of the turn order.
func (e *Engine) findTarget(id uuid.UUID) *entity.Combatant {
	if id == uuid.Nil {
		return nil
	}
	for _, c := range e.order {
		if c.ID() == id && c.Alive() {
			return c
		}
	}
	return nil
}

// canStep reports whether a tile is open for movement: passable terrain
// with no living combatant standing on it.
func (e *Engine) canStep(x, y int) bool {
	if !e.terrain.IsPassable(x, y) {
		return false
	}
	for _, c := range e.order {
		if !c.Alive() {
			continue
		}
		cx, cy := c.Pos()
		if cx == x && cy == y {
			return false
		}
	}
	return true
}

// findKnown resolves an id to a living participant of this encounter.
func (e *Engine) findKnown(id uuid.UUID) *entity.Combatant {
	if e.player.ID() == id && e.player.Alive() {
		return e.player
	}
	for _, en := range e.enemies {
		if en.ID() == id && en.Alive() {
			return en
		}
	}
	return nil
}

// ApplyStatusEffect applies an effect to a combatant through the engine
// surface, stacking per the kind's policy when already active.
func (e *Engine) ApplyStatusEffect(id uuid.UUID, k status.Kind, duration int, intensity float64) error {
	const op = "apply_status_effect"
	if !k.Valid() {
		return contractErr(op, "unknown status effect kind %d", int(k))
	}
	if duration <= 0 || intensity <= 0 {
		return contractErr(op, "%s needs positive duration and intensity", k)
	}
	c := e.findKnown(id)
	if c == nil {
		return contractErr(op, "combatant %s is not part of this encounter", id)
	}
	c.Effects().Apply(k, duration, intensity)
	return nil
}

// RemoveStatusEffect cures an effect immediately. Removing an effect that
// is not active reports false and mutates nothing.
func (e *Engine) RemoveStatusEffect(id uuid.UUID, k status.Kind) (bool, error) {
	const op = "remove_status_effect"
	if !k.Valid() {
		return false, contractErr(op, "unknown status effect kind %d", int(k))
	}
	c := e.findKnown(id)
	if c == nil {
		return false, contractErr(op, "combatant %s is not part of this encounter", id)
	}
	return c.Effects().Remove(k), nil
}

// ActiveEffects returns a combatant's active effect kinds in enumeration
// order.
func (e *Engine) ActiveEffects(id uuid.UUID) ([]status.Kind, error) {
	c := e.findKnown(id)
	if c == nil {
		return nil, contractErr("active_effects", "combatant %s is not part of this encounter", id)
	}
	return c.Effects().Active(), nil
}

// CurrentPhase returns the phase the engine is in.
func (e *Engine) CurrentPhase() Phase {
	return e.phase
}

// InCombat reports whether an encounter is underway.
func (e *Engine) InCombat() bool {
	return e.phase != Exploration
}

// Round returns the current round, starting at 1; zero outside combat.
func (e *Engine) Round() int {
	return e.round
}

// Turn returns the global turn counter for this encounter.
func (e *Engine) Turn() int {
	return e.turn
}

// CurrentCombatant returns the id of the combatant whose turn is open.
func (e *Engine) CurrentCombatant() (uuid.UUID, bool) {
	if e.phase == CombatActive && e.current != nil {
		return e.current.ID(), true
	}
	return uuid.Nil, false
}

// TurnOrder returns a copy of the remaining turn order.
func (e *Engine) TurnOrder() []uuid.UUID {
	out := make([]uuid.UUID, len(e.order))
	for i, c := range e.order {
		out[i] = c.ID()
	}
	return out
}

// Player returns the player's read-only view.
func (e *Engine) Player() CombatantView {
	return e.player
}

// Combatants returns read-only views of the player and every living enemy.
func (e *Engine) Combatants() []CombatantView {
	out := make([]CombatantView, 0, 1+len(e.enemies))
	out = append(out, e.player)
	for _, en := range e.enemies {
		if en.Alive() {
			out = append(out, en)
		}
	}
	return out
}

// View resolves an id to a read-only combatant view.
func (e *Engine) View(id uuid.UUID) (CombatantView, bool) {
	if e.player.ID() == id {
		return e.player, true
	}
	for _, en := range e.enemies {
		if en.ID() == id {
			return en, true
		}
	}
	return nil, false
}
