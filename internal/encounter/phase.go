// Package encounter implements the combat engine: the phase state machine,
// turn and round progression, action resolution, and the event stream the
// rest of the application consumes. The engine mutates combatants only
// through Advance and the two status-effect endpoints; everything else it
// exposes is read-only.
package encounter

// Phase is one stage of the encounter lifecycle. Transitions are linear and
// never skip a stage: Exploration → CombatInit → CombatActive →
// CombatResolution → CombatExit → Exploration.
type Phase int

const (
	// Exploration is free movement; the engine only polls for engagement.
	Exploration Phase = iota
	// CombatInit freezes participants and builds the turn order.
	CombatInit
	// CombatActive is the turn loop; all actions happen here.
	CombatActive
	// CombatResolution applies the outcome: rewards, defeat, or escape.
	CombatResolution
	// CombatExit tears down combat-only state before returning to the map.
	CombatExit
)

// String returns a human-readable phase name.
func (p Phase) String() string {
	switch p {
	case Exploration:
		return "exploration"
	case CombatInit:
		return "combat_init"
	case CombatActive:
		return "combat_active"
	case CombatResolution:
		return "combat_resolution"
	case CombatExit:
		return "combat_exit"
	default:
		return "unknown"
	}
}
