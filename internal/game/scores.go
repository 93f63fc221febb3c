package game

import (
	"github.com/google/uuid"

	"github.com/voidmaw/skirmish/internal/encounter"
)

// ScoreKeeper tallies encounter outcomes into the run score. Bounties are
// registered at spawn time so defeated combatants settle by id alone.
type ScoreKeeper struct {
	bounties map[uuid.UUID]int
	score    int
	kills    int
	defeats  int
	escapes  int
}

var _ encounter.Rewards = (*ScoreKeeper)(nil)

// NewScoreKeeper creates an empty tally.
func NewScoreKeeper() *ScoreKeeper {
	return &ScoreKeeper{bounties: make(map[uuid.UUID]int)}
}

// Register sets the bounty paid when the enemy falls. Unregistered enemies
// are worth nothing.
func (s *ScoreKeeper) Register(id uuid.UUID, bounty int) {
	s.bounties[id] = bounty
}

// Victory settles bounties for everything defeated in the encounter.
func (s *ScoreKeeper) Victory(defeated []encounter.CombatantView) {
	for _, c := range defeated {
		s.score += s.bounties[c.ID()]
		s.kills++
	}
}

// Defeat records the player going down.
func (s *ScoreKeeper) Defeat() {
	s.defeats++
}

// Fled records an escape; no bounty, no penalty.
func (s *ScoreKeeper) Fled() {
	s.escapes++
}

// Score returns the accumulated bounty total.
func (s *ScoreKeeper) Score() int {
	return s.score
}

// Kills returns how many enemies have fallen.
func (s *ScoreKeeper) Kills() int {
	return s.kills
}

// Escapes returns how many fights the player has fled.
func (s *ScoreKeeper) Escapes() int {
	return s.escapes
}

// Defeated reports whether the player has gone down.
func (s *ScoreKeeper) Defeated() bool {
	return s.defeats > 0
}
