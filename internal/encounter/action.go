package encounter

import "github.com/google/uuid"

// ActionType is what a combatant chose to do with its turn.
type ActionType int

const (
	// ActionAttack is a basic melee strike against an adjacent opponent.
	ActionAttack ActionType = iota
	// ActionDefend raises the universal guard, applying Protection to self.
	ActionDefend
	// ActionUseAbility resolves a data-driven ability by id.
	ActionUseAbility
	// ActionMove steps one tile.
	ActionMove
	// ActionWait passes the turn.
	ActionWait
	// ActionFlee attempts to leave combat. Player only.
	ActionFlee
)

// String returns a human-readable action name.
func (t ActionType) String() string {
	switch t {
	case ActionAttack:
		return "attack"
	case ActionDefend:
		return "defend"
	case ActionUseAbility:
		return "use_ability"
	case ActionMove:
		return "move"
	case ActionWait:
		return "wait"
	case ActionFlee:
		return "flee"
	default:
		return "unknown"
	}
}

// Action is one combatant's declared intent for its turn. Which fields
// matter depends on Type: Target for attacks and targeted abilities,
// Ability for ability casts, DestX/DestY for movement.
type Action struct {
	Type    ActionType
	Target  uuid.UUID
	Ability string
	DestX   int
	DestY   int

	// Priority is accepted for forward compatibility and ignored;
	// resolution order is strictly the turn order.
	Priority int
}
