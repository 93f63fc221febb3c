package gamedata

import (
	"testing"

	"github.com/voidmaw/skirmish/internal/random"
	"github.com/voidmaw/skirmish/internal/status"
)

func TestLoadStatusRegistryCoversClosedSet(t *testing.T) {
	reg, err := LoadStatusRegistry()
	if err != nil {
		t.Fatalf("LoadStatusRegistry: %v", err)
	}

	for _, k := range status.Kinds() {
		p := reg.Policy(k)
		if p.Name == "" {
			t.Errorf("%s has no display name", k)
		}
		if p.BaseDuration <= 0 {
			t.Errorf("%s has non-positive base duration", k)
		}
	}

	// Spot-check the stock numbers the rest of the game is tuned around.
	poison := reg.Policy(status.Poison)
	if poison.Stacking != status.StackIntensity || poison.TickDamage != 5 {
		t.Errorf("poison policy = %+v", poison)
	}
	slow := reg.Policy(status.Slow)
	if slow.Stacking != status.StackDuration || slow.SkipChance != 0.5 {
		t.Errorf("slow policy = %+v", slow)
	}
}

func TestLoadAbilities(t *testing.T) {
	abilities, err := LoadAbilities()
	if err != nil {
		t.Fatalf("LoadAbilities: %v", err)
	}

	byID := make(map[string]AbilityDef, len(abilities))
	for _, a := range abilities {
		byID[a.ID] = a
	}

	for _, id := range []string{"defend", "fireball", "heal", "hex", "antidote"} {
		if _, ok := byID[id]; !ok {
			t.Errorf("expected ability %q not found", id)
		}
	}

	defend := byID["defend"]
	if defend.Effect == nil || defend.Effect.ID != "protection" || defend.Effect.Intensity != 2.0 {
		t.Errorf("defend effect payload = %+v", defend.Effect)
	}
	if defend.Cooldown != 3 {
		t.Errorf("defend cooldown = %d, want 3", defend.Cooldown)
	}

	fireball := byID["fireball"]
	if fireball.Kind != AbilityDamage || fireball.Power != 25 || fireball.ManaCost != 15 {
		t.Errorf("fireball def = %+v", fireball)
	}
}

func TestAbilityValidateRejectsBadDefs(t *testing.T) {
	tests := []struct {
		name string
		def  AbilityDef
	}{
		{"empty id", AbilityDef{Kind: AbilityDamage, Target: TargetEnemy}},
		{"unknown kind", AbilityDef{ID: "x", Kind: "summon", Target: TargetEnemy}},
		{"unknown target", AbilityDef{ID: "x", Kind: AbilityDamage, Target: "everyone"}},
		{"apply without effect", AbilityDef{ID: "x", Kind: AbilityApply, Target: TargetSelf}},
		{"cure without cures", AbilityDef{ID: "x", Kind: AbilityCure, Target: TargetSelf}},
		{"bad effect ref", AbilityDef{ID: "x", Kind: AbilityApply, Target: TargetSelf,
			Effect: &EffectRef{ID: "petrify", Duration: 2, Intensity: 1}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.def.Validate(); err == nil {
				t.Error("expected validation error, got nil")
			}
		})
	}
}

func TestEnemyRegistry(t *testing.T) {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		t.Fatalf("LoadEnemyRegistry: %v", err)
	}

	if registry.Count() != 6 {
		t.Errorf("expected 6 enemy archetypes, got %d", registry.Count())
	}

	goblin := registry.GetByID("goblin")
	if goblin == nil {
		t.Fatal("goblin not found by id")
	}
	if goblin.Name != "Goblin" || goblin.Behavior != "aggressive" {
		t.Errorf("goblin def = %+v", goblin)
	}

	// Weighted spawning is deterministic under the same seed.
	rng1 := random.New(12345)
	rng2 := random.New(12345)
	for i := 0; i < 20; i++ {
		a := registry.SpawnRandom(rng1)
		b := registry.SpawnRandom(rng2)
		if a.ID != b.ID {
			t.Fatalf("spawn %d diverged: %s vs %s", i, a.ID, b.ID)
		}
	}
}

func TestEnemyAbilityRefsResolve(t *testing.T) {
	abilities := MustLoadAbilityRegistry()
	for _, e := range MustLoadEnemyRegistry().All() {
		if err := abilities.Resolve(e.Abilities); err != nil {
			t.Errorf("enemy %q: %v", e.ID, err)
		}
	}
}

func TestClassAbilityRefsResolve(t *testing.T) {
	abilities := MustLoadAbilityRegistry()
	classes := MustLoadClasses()
	if len(classes) == 0 {
		t.Fatal("no classes loaded")
	}
	for _, c := range classes {
		if err := abilities.Resolve(c.Abilities); err != nil {
			t.Errorf("class %q: %v", c.ID, err)
		}
	}

	warrior, err := FindClass(classes, "warrior")
	if err != nil {
		t.Fatalf("FindClass: %v", err)
	}
	if warrior.HP != 100 || warrior.Mana != 50 || warrior.ManaRegen != 5 {
		t.Errorf("warrior stats = %+v", warrior)
	}

	if _, err := FindClass(classes, "bard"); err == nil {
		t.Error("expected error for unknown class")
	}
}

func TestParseHexColor(t *testing.T) {
	tests := []struct {
		input   string
		wantErr bool
	}{
		{"#FF0000", false},
		{"00ff00", false},
		{"#12345", true},
		{"#GGGGGG", true},
		{"", true},
	}

	for _, tt := range tests {
		_, err := ParseHexColor(tt.input)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseHexColor(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
		}
	}
}
