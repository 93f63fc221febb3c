package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"

	"github.com/voidmaw/skirmish/internal/encounter"
)

// handleInput blocks on the next terminal event and dispatches it.
func (g *Game) handleInput(ctx context.Context) {
	switch ev := g.screen.PollEvent().(type) {
	case *tcell.EventKey:
		g.handleKey(ctx, ev)
	case *tcell.EventResize:
		g.screen.Sync()
	}
}

func (g *Game) handleKey(ctx context.Context, ev *tcell.EventKey) {
	if ev.Key() == tcell.KeyEscape || ev.Key() == tcell.KeyCtrlC {
		g.running = false
		return
	}
	if g.engine.InCombat() {
		g.handleCombatKey(ctx, ev)
		return
	}
	g.handleExploreKey(ev)
}

func (g *Game) handleExploreKey(ev *tcell.EventKey) {
	x, y := g.player.Pos()
	switch ev.Key() {
	case tcell.KeyUp:
		g.tryStep(x, y-1)
	case tcell.KeyDown:
		g.tryStep(x, y+1)
	case tcell.KeyLeft:
		g.tryStep(x-1, y)
	case tcell.KeyRight:
		g.tryStep(x+1, y)
	case tcell.KeyRune:
		if ev.Rune() == 'q' || ev.Rune() == 'Q' {
			g.running = false
		}
	}
}

// tryStep moves the player one tile while exploring. Engagement is not
// checked here; the next engine poll notices adjacency.
func (g *Game) tryStep(x, y int) {
	if !g.arena.IsPassable(x, y) || g.occupied(x, y) {
		return
	}
	g.player.MoveTo(x, y)
}

func (g *Game) handleCombatKey(ctx context.Context, ev *tcell.EventKey) {
	x, y := g.player.Pos()
	var act *encounter.Action
	switch ev.Key() {
	case tcell.KeyUp:
		act = moveAction(x, y-1)
	case tcell.KeyDown:
		act = moveAction(x, y+1)
	case tcell.KeyLeft:
		act = moveAction(x-1, y)
	case tcell.KeyRight:
		act = moveAction(x+1, y)
	case tcell.KeyRune:
		act = g.runeAction(ev.Rune())
	}
	if act != nil {
		g.submit(ctx, *act)
	}
}

func moveAction(x, y int) *encounter.Action {
	return &encounter.Action{Type: encounter.ActionMove, DestX: x, DestY: y}
}

func (g *Game) runeAction(r rune) *encounter.Action {
	switch r {
	case 'q', 'Q':
		g.running = false
		return nil
	case 'a', 'A':
		target, ok := g.nearestOpponent(1)
		if !ok {
			g.say("Nothing in reach.")
			return nil
		}
		return &encounter.Action{Type: encounter.ActionAttack, Target: target}
	case 'd', 'D':
		return &encounter.Action{Type: encounter.ActionDefend}
	case 'f', 'F':
		return &encounter.Action{Type: encounter.ActionFlee}
	case '.', ' ':
		return &encounter.Action{Type: encounter.ActionWait}
	}
	if r >= '1' && r <= '9' {
		return g.abilityAction(int(r - '1'))
	}
	return nil
}

// abilityAction builds a cast for the numbered hotbar slot, picking the
// closest opponent for offensive abilities.
func (g *Game) abilityAction(slot int) *encounter.Action {
	ids := g.player.Abilities()
	if slot >= len(ids) {
		return nil
	}
	id := ids[slot]
	def := g.abilities.GetByID(id)
	if def == nil {
		return nil
	}
	act := &encounter.Action{Type: encounter.ActionUseAbility, Ability: id}
	if def.Offensive() {
		target, ok := g.nearestOpponent(def.Range)
		if !ok {
			g.say(fmt.Sprintf("No target in range of %s.", def.Name))
			return nil
		}
		act.Target = target
	}
	return act
}

// nearestOpponent returns the closest living enemy, bounded by reach when
// reach is positive.
func (g *Game) nearestOpponent(reach int) (uuid.UUID, bool) {
	px, py := g.player.Pos()
	best := uuid.Nil
	bestDist := 0
	for _, c := range g.engine.Combatants() {
		if c.IsPlayer() {
			continue
		}
		cx, cy := c.Pos()
		d := g.arena.Distance(px, py, cx, cy)
		if reach > 0 && d > reach {
			continue
		}
		if best == uuid.Nil || d < bestDist {
			best = c.ID()
			bestDist = d
		}
	}
	return best, best != uuid.Nil
}

// submit hands the player's action to the engine. Rejections keep the
// turn open and surface as feed messages rather than faults.
func (g *Game) submit(ctx context.Context, act encounter.Action) {
	ev, err := g.engine.Advance(&act)
	if err != nil {
		if encounter.IsInvalidAction(err) {
			var encErr *encounter.Error
			if errors.As(err, &encErr) {
				g.say(encErr.Message)
			}
			return
		}
		g.log.Error("action rejected", "err", err)
		g.running = false
		return
	}
	g.consume(ctx, ev)
}
