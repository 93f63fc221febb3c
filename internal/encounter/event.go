package encounter

import (
	"github.com/google/uuid"

	"github.com/voidmaw/skirmish/internal/status"
)

// EventType classifies what one Advance call produced.
type EventType int

const (
	// EventNone is an uneventful poll: exploration with no engagement.
	EventNone EventType = iota
	// EventTurnStarted reports a turn opening, carrying that combatant's
	// turn-start tick results.
	EventTurnStarted
	// EventActionResolved reports a resolved action and its outcome.
	EventActionResolved
	// EventRoundAdvanced reports the turn order wrapping into a new round.
	EventRoundAdvanced
	// EventPhaseChanged reports one phase transition.
	EventPhaseChanged
	// EventWaitingForPlayerInput reports that the engine is suspended until
	// the player supplies an action. Repeatable; nothing changes between
	// repeats.
	EventWaitingForPlayerInput
)

// String returns a human-readable event name.
func (t EventType) String() string {
	switch t {
	case EventNone:
		return "none"
	case EventTurnStarted:
		return "turn_started"
	case EventActionResolved:
		return "action_resolved"
	case EventRoundAdvanced:
		return "round_advanced"
	case EventPhaseChanged:
		return "phase_changed"
	case EventWaitingForPlayerInput:
		return "waiting_for_player_input"
	default:
		return "unknown"
	}
}

// Event is the single observable outcome of one Advance call. Combatant is
// set for turn and action events, Result where an outcome was produced, and
// From/To for phase transitions. Round is always the current round.
type Event struct {
	Type      EventType
	Combatant uuid.UUID
	Action    *Action
	Result    *Result
	Round     int
	From, To  Phase
}

// Result reports what an action or a turn start did to the world. A miss or
// a failed flee is a normal outcome that still consumes the turn; those are
// never errors.
type Result struct {
	Damage       int
	Healing      int
	ManaRestored int

	Applied []status.Kind
	Removed []status.Kind

	// Missed marks an offensive action that rolled a miss. Skipped marks a
	// turn forfeited to Paralysis or Slow. Redirected marks a confused actor
	// whose action landed on an unintended target. Fled marks a successful
	// escape.
	Missed     bool
	Skipped    bool
	Redirected bool
	Fled       bool

	// Defeated lists combatants that fell.
	Defeated []uuid.UUID

	// Message is the log line for the event feed.
	Message string
}
