package status

import "testing"

// fixedSource always rolls the same value. Float64 may return 1.0 to force
// the top of the uniform range.
type fixedSource struct {
	f float64
	n int
}

func (s fixedSource) Float64() float64 { return s.f }
func (s fixedSource) Intn(n int) int   { return s.n % n }

// stubOwner is a minimal tick target.
type stubOwner struct {
	hp          int
	lastIgnored bool
}

func (o *stubOwner) TakeDamage(amount int, ignoreProtection bool) int {
	o.lastIgnored = ignoreProtection
	if amount > o.hp {
		amount = o.hp
	}
	o.hp -= amount
	return amount
}

func (o *stubOwner) Heal(amount int) int {
	o.hp += amount
	return amount
}

func (o *stubOwner) Alive() bool { return o.hp > 0 }

func newTestStore(roll float64) *Store {
	return NewStore(MustNewRegistry(testPolicies()), fixedSource{f: roll})
}

func TestApplyInsertsExactRequestedValues(t *testing.T) {
	s := newTestStore(0)

	out := s.Apply(Poison, 3, 1.0)
	if out.Stacked {
		t.Error("first application reported as stacked")
	}
	if out.Duration != 3 || out.Intensity != 1.0 {
		t.Errorf("inserted (%d, %g), want (3, 1.0)", out.Duration, out.Intensity)
	}
	if !s.Has(Poison) {
		t.Error("poison not active after apply")
	}
}

func TestApplyClampsInsertIntensityToCap(t *testing.T) {
	s := newTestStore(0)

	out := s.Apply(Poison, 3, 99.0)
	if out.Intensity != 3.0 {
		t.Errorf("insert intensity = %g, want cap 3.0", out.Intensity)
	}
}

func TestDurationStackingBoundary(t *testing.T) {
	// Paralysis(1) reapplied with the uniform roll forced to 1.0 lands
	// exactly on the cap of 2.
	s := NewStore(MustNewRegistry(testPolicies()), fixedSource{f: 1.0})
	s.Apply(Paralysis, 1, 1.0)
	out := s.Apply(Paralysis, 1, 1.0)
	if !out.Stacked {
		t.Fatal("second application did not stack")
	}
	if out.Duration != 2 {
		t.Errorf("stacked duration = %d, want exactly 2", out.Duration)
	}
	if out.Intensity != 1.0 {
		t.Errorf("duration stacking touched intensity: %g", out.Intensity)
	}
}

func TestDurationStackingMonotoneAndCapped(t *testing.T) {
	rolls := []float64{0.0, 0.25, 0.5, 0.99, 1.0}
	for _, roll := range rolls {
		s := NewStore(MustNewRegistry(testPolicies()), fixedSource{f: roll})
		s.Apply(Slow, 3, 1.0)
		prev := s.Duration(Slow)
		for i := 0; i < 20; i++ {
			out := s.Apply(Slow, 3, 1.0)
			if out.Duration < prev {
				t.Fatalf("roll %g: duration decreased %d -> %d", roll, prev, out.Duration)
			}
			if out.Duration > 6 {
				t.Fatalf("roll %g: duration %d exceeds cap 6", roll, out.Duration)
			}
			prev = out.Duration
		}
	}
}

func TestIntensityStackingMonotoneAndCapped(t *testing.T) {
	rolls := []float64{0.0, 0.25, 0.5, 0.99, 1.0}
	for _, roll := range rolls {
		s := NewStore(MustNewRegistry(testPolicies()), fixedSource{f: roll})
		s.Apply(Strength, 2, 1.0)
		prev := s.Intensity(Strength)
		for i := 0; i < 20; i++ {
			out := s.Apply(Strength, 2, 1.0)
			if out.Intensity < prev {
				t.Fatalf("roll %g: intensity decreased %g -> %g", roll, prev, out.Intensity)
			}
			if out.Intensity > 3.0 {
				t.Fatalf("roll %g: intensity %g exceeds cap 3.0", roll, out.Intensity)
			}
			prev = out.Intensity
		}
	}
}

func TestIntensityStackingScalesIncomingOnly(t *testing.T) {
	// With the roll forced to the bottom of the range the incoming 1.0
	// contributes exactly 0.5; the active 1.0 is untouched.
	s := NewStore(MustNewRegistry(testPolicies()), fixedSource{f: 0.0})
	s.Apply(Poison, 3, 1.0)
	out := s.Apply(Poison, 3, 1.0)
	if out.Intensity != 1.5 {
		t.Errorf("stacked intensity = %g, want 1.5", out.Intensity)
	}
}

func TestIntensityStackingResetsDurationToMax(t *testing.T) {
	tests := []struct {
		name      string
		remaining int
		incoming  int
		want      int
	}{
		{"incoming larger", 1, 3, 3},
		{"remaining larger", 3, 2, 3},
		{"equal", 2, 2, 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := newTestStore(1.0)
			s.Apply(Poison, tt.remaining, 1.0)
			out := s.Apply(Poison, tt.incoming, 1.0)
			if out.Duration != tt.want {
				t.Errorf("duration after stack = %d, want exactly %d", out.Duration, tt.want)
			}
		})
	}
}

func TestTickTurnStartPoisonBypassesProtection(t *testing.T) {
	s := newTestStore(0)
	owner := &stubOwner{hp: 100}
	s.Apply(Poison, 3, 1.0)
	s.Apply(Protection, 2, 1.0)

	ticks := s.TickTurnStart(owner)
	if owner.hp != 95 {
		t.Errorf("hp after poison tick = %d, want 95", owner.hp)
	}
	if !owner.lastIgnored {
		t.Error("poison tick did not bypass protection")
	}
	if len(ticks) != 1 || ticks[0].Kind != Poison || ticks[0].Damage != 5 {
		t.Errorf("ticks = %+v, want single poison tick of 5", ticks)
	}
}

func TestTickTurnStartScalesWithIntensity(t *testing.T) {
	s := newTestStore(0)
	owner := &stubOwner{hp: 100}
	s.Apply(Poison, 3, 2.5)

	s.TickTurnStart(owner)
	// int(5 * 2.5) = 12, truncated.
	if owner.hp != 88 {
		t.Errorf("hp = %d, want 88", owner.hp)
	}
}

func TestTickTurnStartOrderAndRegen(t *testing.T) {
	s := newTestStore(0)
	owner := &stubOwner{hp: 50}
	s.Apply(Regeneration, 3, 2.0)
	s.Apply(Poison, 3, 1.0)

	ticks := s.TickTurnStart(owner)
	if len(ticks) != 2 {
		t.Fatalf("got %d ticks, want 2", len(ticks))
	}
	if ticks[0].Kind != Poison || ticks[1].Kind != Regeneration {
		t.Errorf("tick order = [%s %s], want enumeration order poison then regeneration", ticks[0].Kind, ticks[1].Kind)
	}
	// -5 poison, +6 regen (int(3 * 2.0)).
	if owner.hp != 51 {
		t.Errorf("hp = %d, want 51", owner.hp)
	}
}

func TestTickTurnStartStopsWhenOwnerDies(t *testing.T) {
	s := newTestStore(0)
	owner := &stubOwner{hp: 4}
	s.Apply(Poison, 3, 1.0)
	s.Apply(Regeneration, 3, 1.0)

	s.TickTurnStart(owner)
	if owner.hp != 0 {
		t.Errorf("hp = %d, want 0; the dead do not regenerate", owner.hp)
	}
}

func TestTickTurnEndExpiry(t *testing.T) {
	s := newTestStore(0)
	s.Apply(Paralysis, 1, 1.0)
	s.Apply(Blindness, 2, 1.0)

	expired := s.TickTurnEnd()
	if len(expired) != 1 || expired[0] != Paralysis {
		t.Fatalf("first pass expired %v, want [paralysis]", expired)
	}
	if s.Has(Paralysis) {
		t.Error("paralysis still active after expiry")
	}
	if got := s.Duration(Blindness); got != 1 {
		t.Errorf("blindness duration = %d, want 1", got)
	}

	expired = s.TickTurnEnd()
	if len(expired) != 1 || expired[0] != Blindness {
		t.Fatalf("second pass expired %v, want [blindness]", expired)
	}
	if s.Len() != 0 {
		t.Errorf("store still holds %d instances", s.Len())
	}
}

func TestRemoveAbsentIsNoOp(t *testing.T) {
	s := newTestStore(0)
	s.Apply(Poison, 3, 1.0)

	if s.Remove(Blindness) {
		t.Error("removing absent kind reported success")
	}
	if s.Len() != 1 || !s.Has(Poison) {
		t.Error("removing absent kind mutated the store")
	}
	if !s.Remove(Poison) {
		t.Error("removing active kind reported failure")
	}
	if s.Has(Poison) {
		t.Error("poison still active after removal")
	}
}

func TestClearAndActiveOrder(t *testing.T) {
	s := newTestStore(0)
	s.Apply(Protection, 2, 1.0)
	s.Apply(Poison, 3, 1.0)
	s.Apply(Haste, 3, 1.0)

	active := s.Active()
	want := []Kind{Poison, Haste, Protection}
	if len(active) != len(want) {
		t.Fatalf("active = %v, want %v", active, want)
	}
	for i := range want {
		if active[i] != want[i] {
			t.Fatalf("active = %v, want %v", active, want)
		}
	}

	s.Clear()
	if s.Len() != 0 {
		t.Errorf("store holds %d instances after clear", s.Len())
	}
}

func TestApplyRejectsNonPositiveValues(t *testing.T) {
	s := newTestStore(0)
	for _, tc := range []struct {
		name      string
		duration  int
		intensity float64
	}{
		{"zero duration", 0, 1.0},
		{"negative intensity", 3, -1.0},
	} {
		t.Run(tc.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Error("expected panic")
				}
			}()
			s.Apply(Poison, tc.duration, tc.intensity)
		})
	}
}
