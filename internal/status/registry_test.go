package status

import (
	"strings"
	"testing"
)

// testPolicies returns a full tuning table with the stock balance numbers.
func testPolicies() []Policy {
	return []Policy{
		{Kind: Poison, Name: "Poison", Stacking: StackIntensity, BaseDuration: 3, BaseIntensity: 1.0, TickDamage: 5},
		{Kind: Paralysis, Name: "Paralysis", Stacking: StackDuration, BaseDuration: 1, BaseIntensity: 1.0},
		{Kind: Blindness, Name: "Blindness", Stacking: StackDuration, BaseDuration: 2, BaseIntensity: 1.0, MissChance: 0.5},
		{Kind: Confusion, Name: "Confusion", Stacking: StackDuration, BaseDuration: 2, BaseIntensity: 1.0, RedirectChance: 0.5},
		{Kind: Haste, Name: "Haste", Stacking: StackDuration, BaseDuration: 3, BaseIntensity: 1.0},
		{Kind: Slow, Name: "Slow", Stacking: StackDuration, BaseDuration: 3, BaseIntensity: 1.0, SkipChance: 0.5},
		{Kind: Regeneration, Name: "Regeneration", Stacking: StackIntensity, BaseDuration: 3, BaseIntensity: 1.0, TickHeal: 3},
		{Kind: Strength, Name: "Strength", Stacking: StackIntensity, BaseDuration: 2, BaseIntensity: 1.0, OutputScale: 0.1},
		{Kind: Weakness, Name: "Weakness", Stacking: StackIntensity, BaseDuration: 2, BaseIntensity: 1.0, OutputScale: 0.1},
		{Kind: Protection, Name: "Protection", Stacking: StackIntensity, BaseDuration: 2, BaseIntensity: 1.0, TakenScale: 0.1},
	}
}

func TestNewRegistryCoversClosedSet(t *testing.T) {
	reg, err := NewRegistry(testPolicies())
	if err != nil {
		t.Fatalf("NewRegistry: %v", err)
	}
	for _, k := range Kinds() {
		p := reg.Policy(k)
		if p.Kind != k {
			t.Errorf("Policy(%s) returned policy for %s", k, p.Kind)
		}
	}
}

func TestNewRegistryRejectsBadTables(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func([]Policy) []Policy
		wantErr string
	}{
		{
			name:    "missing kind",
			mutate:  func(ps []Policy) []Policy { return ps[1:] },
			wantErr: "no policy for poison",
		},
		{
			name:    "duplicate kind",
			mutate:  func(ps []Policy) []Policy { return append(ps, ps[0]) },
			wantErr: "duplicate policy for poison",
		},
		{
			name: "unknown kind",
			mutate: func(ps []Policy) []Policy {
				ps[0].Kind = Kind(99)
				return ps
			},
			wantErr: "unknown kind",
		},
		{
			name: "non-positive duration",
			mutate: func(ps []Policy) []Policy {
				ps[3].BaseDuration = 0
				return ps
			},
			wantErr: "base duration must be positive",
		},
		{
			name: "non-positive intensity",
			mutate: func(ps []Policy) []Policy {
				ps[5].BaseIntensity = -1
				return ps
			},
			wantErr: "base intensity must be positive",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRegistry(tt.mutate(testPolicies()))
			if err == nil {
				t.Fatal("expected error, got nil")
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("error %q does not mention %q", err, tt.wantErr)
			}
		})
	}
}

func TestPolicyLookupInvalidKindPanics(t *testing.T) {
	reg := MustNewRegistry(testPolicies())
	defer func() {
		if recover() == nil {
			t.Error("expected panic for invalid kind lookup")
		}
	}()
	reg.Policy(Kind(42))
}

func TestPolicyCaps(t *testing.T) {
	reg := MustNewRegistry(testPolicies())

	paralysis := reg.Policy(Paralysis)
	if got := paralysis.MaxDuration(); got != 2 {
		t.Errorf("paralysis max duration = %d, want 2", got)
	}
	poison := reg.Policy(Poison)
	if got := poison.MaxIntensity(); got != 3.0 {
		t.Errorf("poison max intensity = %g, want 3.0", got)
	}
}

func TestParseKindRoundTrip(t *testing.T) {
	for _, k := range Kinds() {
		parsed, err := ParseKind(k.String())
		if err != nil {
			t.Fatalf("ParseKind(%q): %v", k.String(), err)
		}
		if parsed != k {
			t.Errorf("ParseKind(%q) = %s", k.String(), parsed)
		}
	}
	if _, err := ParseKind("petrify"); err == nil {
		t.Error("expected error for unknown kind name")
	}
}
