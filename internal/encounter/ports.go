package encounter

import (
	"github.com/google/uuid"

	"github.com/voidmaw/skirmish/internal/entity"
	"github.com/voidmaw/skirmish/internal/gamedata"
	"github.com/voidmaw/skirmish/internal/status"
)

// CombatantView is the read-only combatant surface the engine hands to
// controllers and callers. Mutable internals never cross it.
type CombatantView interface {
	ID() uuid.UUID
	Name() string
	IsPlayer() bool
	Alive() bool
	Health() int
	MaxHealth() int
	HealthRatio() float64
	Mana() int
	MaxMana() int
	Glyph() rune
	Color() string
	Pos() (int, int)
	Abilities() []string
	HasAbility(id string) bool
	AbilityReady(id string) bool
	HasEffect(k status.Kind) bool
}

var _ CombatantView = (*entity.Combatant)(nil)

// Proximity answers the spatial questions combat asks: melee reach and
// ability range. The map module owns the metric; the engine never assumes
// one.
type Proximity interface {
	// Adjacent reports whether two positions are within melee reach.
	// Engagement that pulls Exploration into combat uses the same check.
	Adjacent(ax, ay, bx, by int) bool
	// Distance returns the tile distance used for ability ranges.
	Distance(ax, ay, bx, by int) int
}

// Terrain answers passability for movement validation.
type Terrain interface {
	IsPassable(x, y int) bool
}

// Rewards is the outcome sink invoked once during resolution, before the
// transition to the exit phase.
type Rewards interface {
	Victory(defeated []CombatantView)
	Defeat()
	Fled()
}

// Controller decides one enemy's action each turn. The engine builds a
// fresh AIContext per decision and applies whatever comes back, substituting
// Wait for anything unplayable.
type Controller interface {
	Act(ctx AIContext) Action
}

// AIContext is the snapshot a controller decides from.
type AIContext struct {
	Actor     CombatantView
	Target    CombatantView   // primary opponent
	Allies    []CombatantView // living, actor excluded
	Opponents []CombatantView // living
	Round     int
	Turn      int

	// Abilities resolves ability ids to their tuning defs.
	Abilities *gamedata.AbilityRegistry

	// CanStep reports whether a tile is open for movement: passable and
	// unoccupied. Never nil during combat.
	CanStep func(x, y int) bool
}
