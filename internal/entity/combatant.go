// Package entity defines the combatant model the engine and AI operate on.
// The player persists across encounters; enemies are built per encounter
// from their defs and discarded with it.
package entity

import (
	"github.com/google/uuid"

	"github.com/voidmaw/skirmish/internal/gamedata"
	"github.com/voidmaw/skirmish/internal/random"
	"github.com/voidmaw/skirmish/internal/status"
)

// Combatant is one participant in an encounter. All mutation goes through
// methods; the engine owns call ordering.
type Combatant struct {
	id    uuid.UUID
	name  string
	glyph rune
	color string

	health    int
	maxHealth int
	mana      int
	maxMana   int
	manaRegen int
	attack    int

	player bool
	x, y   int

	abilities []string
	cooldowns map[string]int

	effects *status.Store
}

var _ status.Owner = (*Combatant)(nil)

// Stats is the numeric loadout for direct construction.
type Stats struct {
	MaxHealth int
	MaxMana   int
	ManaRegen int
	Attack    int
	Player    bool
	Glyph     rune
	Color     string
	X, Y      int
	Abilities []string
}

// New builds a combatant at full health and mana. The registry and random
// source are shared with the combatant's effect store.
func New(name string, s Stats, reg *status.Registry, rng random.Source) *Combatant {
	c := &Combatant{
		id:        uuid.New(),
		name:      name,
		glyph:     s.Glyph,
		color:     s.Color,
		health:    s.MaxHealth,
		maxHealth: s.MaxHealth,
		mana:      s.MaxMana,
		maxMana:   s.MaxMana,
		manaRegen: s.ManaRegen,
		attack:    s.Attack,
		player:    s.Player,
		x:         s.X,
		y:         s.Y,
		abilities: append([]string(nil), s.Abilities...),
		cooldowns: make(map[string]int),
		effects:   status.NewStore(reg, rng),
	}
	if c.glyph == 0 {
		c.glyph = '?'
	}
	return c
}

// NewFromClass builds the player combatant from a class definition.
func NewFromClass(def *gamedata.ClassDef, reg *status.Registry, rng random.Source) *Combatant {
	return New(def.Name, Stats{
		MaxHealth: def.HP,
		MaxMana:   def.Mana,
		ManaRegen: def.ManaRegen,
		Attack:    def.Attack,
		Player:    true,
		Glyph:     def.SymbolRune(),
		Color:     "#FFFFFF",
		Abilities: def.Abilities,
	}, reg, rng)
}

// NewFromEnemy builds one enemy combatant from its archetype definition at
// the given spawn position.
func NewFromEnemy(def *gamedata.EnemyDef, x, y int, reg *status.Registry, rng random.Source) *Combatant {
	return New(def.Name, Stats{
		MaxHealth: def.HP,
		MaxMana:   def.Mana,
		ManaRegen: def.ManaRegen,
		Attack:    def.Attack,
		Glyph:     def.GlyphRune(),
		Color:     def.Color,
		X:         x,
		Y:         y,
		Abilities: def.Abilities,
	}, reg, rng)
}

// ID returns the combatant's stable identity.
func (c *Combatant) ID() uuid.UUID { return c.id }

// Name returns the display name.
func (c *Combatant) Name() string { return c.name }

// Glyph returns the map glyph.
func (c *Combatant) Glyph() rune { return c.glyph }

// Color returns the render color hint as a hex string.
func (c *Combatant) Color() string { return c.color }

// IsPlayer reports whether this combatant is player-controlled.
func (c *Combatant) IsPlayer() bool { return c.player }

// Alive reports whether the combatant still stands.
func (c *Combatant) Alive() bool { return c.health > 0 }

// Health returns current hit points.
func (c *Combatant) Health() int { return c.health }

// MaxHealth returns the hit point ceiling.
func (c *Combatant) MaxHealth() int { return c.maxHealth }

// HealthRatio returns current health as a fraction of max.
func (c *Combatant) HealthRatio() float64 {
	if c.maxHealth == 0 {
		return 0
	}
	return float64(c.health) / float64(c.maxHealth)
}

// Mana returns current mana points.
func (c *Combatant) Mana() int { return c.mana }

// MaxMana returns the mana ceiling; zero means the combatant has no pool.
func (c *Combatant) MaxMana() int { return c.maxMana }

// Attack returns base attack power before effect scaling.
func (c *Combatant) Attack() int { return c.attack }

// Pos returns the grid position.
func (c *Combatant) Pos() (int, int) { return c.x, c.y }

// MoveTo places the combatant on the grid.
func (c *Combatant) MoveTo(x, y int) {
	c.x, c.y = x, y
}

// Effects exposes the combatant's status-effect store.
func (c *Combatant) Effects() *status.Store { return c.effects }

// HasEffect reports whether the named effect is active.
func (c *Combatant) HasEffect(k status.Kind) bool { return c.effects.Has(k) }

// Derived gates, recomputed from the effect store on every read so a flag
// can never outlive or predate its effect.

func (c *Combatant) Paralyzed() bool    { return c.effects.Has(status.Paralysis) }
func (c *Combatant) Blinded() bool      { return c.effects.Has(status.Blindness) }
func (c *Combatant) Confused() bool     { return c.effects.Has(status.Confusion) }
func (c *Combatant) Hasted() bool       { return c.effects.Has(status.Haste) }
func (c *Combatant) Slowed() bool       { return c.effects.Has(status.Slow) }
func (c *Combatant) Strengthened() bool { return c.effects.Has(status.Strength) }
func (c *Combatant) Weakened() bool     { return c.effects.Has(status.Weakness) }
func (c *Combatant) Protected() bool    { return c.effects.Has(status.Protection) }

// CanAct reports whether the combatant may produce an action this turn.
// Paralysis always forfeits the turn; Slow forfeits it on a failed roll
// unless Haste is countering it.
func (c *Combatant) CanAct(rng random.Source) bool {
	if c.Paralyzed() {
		return false
	}
	if c.Slowed() && !c.Hasted() {
		return rng.Float64() >= c.effects.Policy(status.Slow).SkipChance
	}
	return true
}

// TakeDamage applies damage and returns the hit points actually lost.
// Active Protection scales the amount down by its per-intensity factor
// unless the source bypasses it; the result truncates toward zero and
// health never goes below zero.
func (c *Combatant) TakeDamage(amount int, ignoreProtection bool) int {
	if amount < 0 {
		amount = 0
	}
	if !ignoreProtection && c.Protected() {
		mult := 1 - c.effects.Policy(status.Protection).TakenScale*c.effects.Intensity(status.Protection)
		if mult < 0 {
			mult = 0
		}
		amount = int(float64(amount) * mult)
	}
	if amount > c.health {
		amount = c.health
	}
	c.health -= amount
	return amount
}

// Heal restores hit points up to max and returns the amount actually
// restored.
func (c *Combatant) Heal(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if c.health+amount > c.maxHealth {
		amount = c.maxHealth - c.health
	}
	c.health += amount
	return amount
}

// EffectiveDamage scales base attack output by Strength and Weakness. The
// two apply multiplicatively and the final multiplier never drops below
// zero, so stacked Weakness cannot turn damage into healing.
func (c *Combatant) EffectiveDamage(base int) int {
	mult := 1.0
	if c.Strengthened() {
		mult *= 1 + c.effects.Policy(status.Strength).OutputScale*c.effects.Intensity(status.Strength)
	}
	if c.Weakened() {
		mult *= 1 - c.effects.Policy(status.Weakness).OutputScale*c.effects.Intensity(status.Weakness)
	}
	if mult < 0 {
		mult = 0
	}
	return int(float64(base) * mult)
}

// SpendMana deducts cost if the pool covers it, reporting whether it did.
// An unaffordable cost mutates nothing.
func (c *Combatant) SpendMana(cost int) bool {
	if cost < 0 || cost > c.mana {
		return cost == 0
	}
	c.mana -= cost
	return true
}

// RestoreMana refills mana up to max and returns the amount restored.
func (c *Combatant) RestoreMana(amount int) int {
	if amount < 0 {
		amount = 0
	}
	if c.mana+amount > c.maxMana {
		amount = c.maxMana - c.mana
	}
	c.mana += amount
	return amount
}

// RegenMana applies the per-turn mana regeneration at turn start.
func (c *Combatant) RegenMana() int {
	return c.RestoreMana(c.manaRegen)
}

// Abilities returns the combatant's ability ids.
func (c *Combatant) Abilities() []string {
	return append([]string(nil), c.abilities...)
}

// HasAbility reports whether the combatant knows the ability.
func (c *Combatant) HasAbility(id string) bool {
	for _, a := range c.abilities {
		if a == id {
			return true
		}
	}
	return false
}

// AbilityReady reports whether the ability is off cooldown.
func (c *Combatant) AbilityReady(id string) bool {
	return c.cooldowns[id] == 0
}

// CooldownRemaining returns the turns left before the ability readies.
func (c *Combatant) CooldownRemaining(id string) int {
	return c.cooldowns[id]
}

// StartCooldown puts the ability on cooldown for the given turns.
func (c *Combatant) StartCooldown(id string, turns int) {
	if turns <= 0 {
		return
	}
	c.cooldowns[id] = turns
}

// TickCooldowns advances every running cooldown by one turn. Called at the
// owner's turn end.
func (c *Combatant) TickCooldowns() {
	for id, left := range c.cooldowns {
		if left <= 1 {
			delete(c.cooldowns, id)
			continue
		}
		c.cooldowns[id] = left - 1
	}
}

// ResetCooldowns clears every running cooldown. Cooldowns are combat-scoped
// and reset when an encounter ends.
func (c *Combatant) ResetCooldowns() {
	clear(c.cooldowns)
}
