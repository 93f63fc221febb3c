package entity

import (
	"testing"

	"github.com/google/uuid"

	"github.com/voidmaw/skirmish/internal/gamedata"
	"github.com/voidmaw/skirmish/internal/status"
)

// fixedSource always rolls the same value.
type fixedSource struct {
	f float64
	n int
}

func (s fixedSource) Float64() float64 { return s.f }
func (s fixedSource) Intn(n int) int   { return s.n % n }

func newCombatant(t *testing.T, s Stats) *Combatant {
	t.Helper()
	return New("test", s, gamedata.MustLoadStatusRegistry(), fixedSource{})
}

func TestNewFromClass(t *testing.T) {
	classes := gamedata.MustLoadClasses()
	def, err := gamedata.FindClass(classes, "warrior")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}

	c := NewFromClass(def, gamedata.MustLoadStatusRegistry(), fixedSource{})
	if !c.IsPlayer() {
		t.Error("class combatant should be player-controlled")
	}
	if c.Health() != 100 || c.MaxHealth() != 100 {
		t.Errorf("health = %d/%d, want 100/100", c.Health(), c.MaxHealth())
	}
	if c.Mana() != 50 || c.MaxMana() != 50 {
		t.Errorf("mana = %d/%d, want 50/50", c.Mana(), c.MaxMana())
	}
	if c.Attack() != 10 {
		t.Errorf("attack = %d, want 10", c.Attack())
	}
	if !c.Alive() {
		t.Error("fresh combatant should be alive")
	}
	if r := c.HealthRatio(); r != 1.0 {
		t.Errorf("health ratio = %g, want 1.0", r)
	}
	if !c.HasAbility("defend") {
		t.Error("warrior should know defend")
	}
}

func TestNewFromEnemy(t *testing.T) {
	enemies := gamedata.MustLoadEnemyRegistry()
	def := enemies.GetByID("goblin")
	if def == nil {
		t.Fatal("goblin missing from the enemy registry")
	}

	c := NewFromEnemy(def, 4, 7, gamedata.MustLoadStatusRegistry(), fixedSource{})
	if c.IsPlayer() {
		t.Error("enemy combatant should not be player-controlled")
	}
	if c.Health() != def.HP {
		t.Errorf("health = %d, want %d", c.Health(), def.HP)
	}
	if x, y := c.Pos(); x != 4 || y != 7 {
		t.Errorf("pos = (%d,%d), want (4,7)", x, y)
	}
	if c.Glyph() != def.GlyphRune() {
		t.Errorf("glyph = %q, want %q", c.Glyph(), def.GlyphRune())
	}
	if c.ID() == uuid.Nil {
		t.Error("enemy should get a nonzero id")
	}
}

func TestTakeDamageProtection(t *testing.T) {
	tests := []struct {
		name      string
		intensity float64
		amount    int
		ignore    bool
		want      int
	}{
		{name: "scaled and truncated", intensity: 2.0, amount: 20, want: 16},
		{name: "exact product", intensity: 2.0, amount: 25, want: 20},
		{name: "fraction dropped", intensity: 2.0, amount: 23, want: 18},
		{name: "single point", intensity: 1.0, amount: 10, want: 9},
		{name: "bypassed", intensity: 2.0, amount: 20, ignore: true, want: 20},
		{name: "negative clamps to zero", intensity: 2.0, amount: -5, want: 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCombatant(t, Stats{MaxHealth: 100})
			c.Effects().Apply(status.Protection, 2, tt.intensity)

			dealt := c.TakeDamage(tt.amount, tt.ignore)
			if dealt != tt.want {
				t.Errorf("dealt = %d, want %d", dealt, tt.want)
			}
			if c.Health() != 100-tt.want {
				t.Errorf("health = %d, want %d", c.Health(), 100-tt.want)
			}
		})
	}
}

func TestTakeDamageOverkill(t *testing.T) {
	c := newCombatant(t, Stats{MaxHealth: 100})
	c.TakeDamage(90, false)

	dealt := c.TakeDamage(50, false)
	if dealt != 10 {
		t.Errorf("dealt = %d, want the 10 remaining", dealt)
	}
	if c.Health() != 0 {
		t.Errorf("health = %d, want 0", c.Health())
	}
	if c.Alive() {
		t.Error("combatant at 0 health should be dead")
	}
}

func TestHealClamp(t *testing.T) {
	c := newCombatant(t, Stats{MaxHealth: 100})
	c.TakeDamage(30, false)

	if healed := c.Heal(20); healed != 20 {
		t.Errorf("healed = %d, want 20", healed)
	}
	if healed := c.Heal(50); healed != 10 {
		t.Errorf("healed = %d, want the 10 missing", healed)
	}
	if c.Health() != 100 {
		t.Errorf("health = %d, want 100", c.Health())
	}
	if healed := c.Heal(-5); healed != 0 {
		t.Errorf("negative heal restored %d, want 0", healed)
	}
}

func TestEffectiveDamage(t *testing.T) {
	tests := []struct {
		name     string
		strength float64
		weakness float64
		base     int
		want     int
	}{
		{name: "unmodified", base: 10, want: 10},
		{name: "strengthened", strength: 1.0, base: 10, want: 11},
		{name: "weakened", weakness: 1.0, base: 10, want: 9},
		{name: "both multiply then truncate", strength: 1.0, weakness: 1.0, base: 10, want: 9},
		{name: "stacked strength", strength: 3.0, base: 10, want: 13},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCombatant(t, Stats{MaxHealth: 100, Attack: tt.base})
			if tt.strength > 0 {
				c.Effects().Apply(status.Strength, 2, tt.strength)
			}
			if tt.weakness > 0 {
				c.Effects().Apply(status.Weakness, 2, tt.weakness)
			}
			if got := c.EffectiveDamage(tt.base); got != tt.want {
				t.Errorf("EffectiveDamage(%d) = %d, want %d", tt.base, got, tt.want)
			}
		})
	}
}

func TestEffectiveDamageNeverNegative(t *testing.T) {
	table := []status.Policy{
		{Kind: status.Poison, Stacking: status.StackIntensity, BaseDuration: 3, BaseIntensity: 1.0, TickDamage: 5},
		{Kind: status.Paralysis, Stacking: status.StackDuration, BaseDuration: 1, BaseIntensity: 1.0},
		{Kind: status.Blindness, Stacking: status.StackDuration, BaseDuration: 2, BaseIntensity: 1.0, MissChance: 0.5},
		{Kind: status.Confusion, Stacking: status.StackDuration, BaseDuration: 2, BaseIntensity: 1.0, RedirectChance: 0.5},
		{Kind: status.Haste, Stacking: status.StackDuration, BaseDuration: 3, BaseIntensity: 1.0},
		{Kind: status.Slow, Stacking: status.StackDuration, BaseDuration: 3, BaseIntensity: 1.0, SkipChance: 0.5},
		{Kind: status.Regeneration, Stacking: status.StackIntensity, BaseDuration: 3, BaseIntensity: 1.0, TickHeal: 3},
		{Kind: status.Strength, Stacking: status.StackIntensity, BaseDuration: 2, BaseIntensity: 1.0, OutputScale: 0.1},
		// A harsher scale than stock so full stacks push the multiplier
		// below zero.
		{Kind: status.Weakness, Stacking: status.StackIntensity, BaseDuration: 2, BaseIntensity: 1.0, OutputScale: 0.5},
		{Kind: status.Protection, Stacking: status.StackIntensity, BaseDuration: 2, BaseIntensity: 1.0, TakenScale: 0.1},
	}
	reg := status.MustNewRegistry(table)

	c := New("test", Stats{MaxHealth: 100}, reg, fixedSource{})
	c.Effects().Apply(status.Weakness, 2, 3.0)

	if got := c.EffectiveDamage(10); got != 0 {
		t.Errorf("EffectiveDamage(10) = %d, want 0 when the multiplier bottoms out", got)
	}
}

func TestCanAct(t *testing.T) {
	tests := []struct {
		name      string
		paralysis bool
		slow      bool
		haste     bool
		roll      float64
		want      bool
	}{
		{name: "unhindered", roll: 0.0, want: true},
		{name: "paralyzed low roll", paralysis: true, roll: 0.0, want: false},
		{name: "paralyzed high roll", paralysis: true, roll: 0.99, want: false},
		{name: "slowed roll below threshold", slow: true, roll: 0.49, want: false},
		{name: "slowed roll at threshold", slow: true, roll: 0.5, want: true},
		{name: "haste counters slow", slow: true, haste: true, roll: 0.0, want: true},
		{name: "paralysis trumps haste", paralysis: true, haste: true, roll: 0.99, want: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := newCombatant(t, Stats{MaxHealth: 100})
			if tt.paralysis {
				c.Effects().Apply(status.Paralysis, 1, 1.0)
			}
			if tt.slow {
				c.Effects().Apply(status.Slow, 3, 1.0)
			}
			if tt.haste {
				c.Effects().Apply(status.Haste, 3, 1.0)
			}
			if got := c.CanAct(fixedSource{f: tt.roll}); got != tt.want {
				t.Errorf("CanAct() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestGatesFollowStore(t *testing.T) {
	c := newCombatant(t, Stats{MaxHealth: 100})
	if c.Paralyzed() || c.Protected() || c.Slowed() {
		t.Fatal("fresh combatant should have no gates raised")
	}

	c.Effects().Apply(status.Paralysis, 1, 1.0)
	if !c.Paralyzed() {
		t.Error("Paralyzed() should follow an active Paralysis instance")
	}

	c.Effects().Remove(status.Paralysis)
	if c.Paralyzed() {
		t.Error("Paralyzed() should clear the moment the instance is removed")
	}
}

func TestManaOps(t *testing.T) {
	c := newCombatant(t, Stats{MaxHealth: 100, MaxMana: 50, ManaRegen: 5})

	if !c.SpendMana(30) {
		t.Fatal("SpendMana(30) should succeed with 50 available")
	}
	if c.Mana() != 20 {
		t.Errorf("mana = %d, want 20", c.Mana())
	}
	if c.SpendMana(25) {
		t.Error("SpendMana(25) should fail with 20 available")
	}
	if c.Mana() != 20 {
		t.Errorf("failed spend mutated mana to %d", c.Mana())
	}
	if !c.SpendMana(0) {
		t.Error("zero cost should always succeed")
	}

	if restored := c.RestoreMana(100); restored != 30 {
		t.Errorf("restored = %d, want the 30 missing", restored)
	}
	c.SpendMana(50)
	if regen := c.RegenMana(); regen != 5 {
		t.Errorf("regen = %d, want 5", regen)
	}
	if c.Mana() != 5 {
		t.Errorf("mana = %d, want 5", c.Mana())
	}
}

func TestCooldowns(t *testing.T) {
	c := newCombatant(t, Stats{MaxHealth: 100, Abilities: []string{"fireball"}})

	if !c.AbilityReady("fireball") {
		t.Fatal("fresh ability should be ready")
	}
	c.StartCooldown("fireball", 2)
	if c.AbilityReady("fireball") {
		t.Error("ability on cooldown should not be ready")
	}
	if left := c.CooldownRemaining("fireball"); left != 2 {
		t.Errorf("remaining = %d, want 2", left)
	}

	c.TickCooldowns()
	if left := c.CooldownRemaining("fireball"); left != 1 {
		t.Errorf("remaining after one tick = %d, want 1", left)
	}
	c.TickCooldowns()
	if !c.AbilityReady("fireball") {
		t.Error("ability should ready after its cooldown elapses")
	}

	c.StartCooldown("fireball", 0)
	if !c.AbilityReady("fireball") {
		t.Error("zero-turn cooldown should be a no-op")
	}
}

func TestAbilitiesCopy(t *testing.T) {
	c := newCombatant(t, Stats{MaxHealth: 100, Abilities: []string{"defend", "heal"}})

	got := c.Abilities()
	got[0] = "tampered"
	if !c.HasAbility("defend") {
		t.Error("mutating the returned slice should not touch the combatant")
	}
	if c.HasAbility("tampered") {
		t.Error("tampered id leaked into the combatant")
	}
}

func TestMoveTo(t *testing.T) {
	c := newCombatant(t, Stats{MaxHealth: 100, X: 1, Y: 1})
	c.MoveTo(3, 5)
	if x, y := c.Pos(); x != 3 || y != 5 {
		t.Errorf("pos = (%d,%d), want (3,5)", x, y)
	}
}
