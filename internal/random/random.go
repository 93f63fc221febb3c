// Package random provides the seedable randomness dependency shared by the
// combat engine, effect stacking, and enemy AI. Components never reach for a
// global random source; they receive a Source so every roll is reproducible
// from a recorded seed.
package random

import (
	crand "crypto/rand"
	"encoding/binary"
	"fmt"
	"math/rand"
)

// Source is the rolling contract injected into anything that randomizes.
// *math/rand.Rand satisfies it; tests substitute fixed sources to force
// outcomes.
type Source interface {
	// Float64 returns a value in [0.0, 1.0).
	Float64() float64
	// Intn returns a value in [0, n). Panics if n <= 0.
	Intn(n int) int
}

// New returns a deterministic Source for the given seed.
func New(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// Seed derives a fresh seed from the OS entropy pool. The result is
// non-negative so it can round-trip through configuration files.
func Seed() (int64, error) {
	var buf [8]byte
	if _, err := crand.Read(buf[:]); err != nil {
		return 0, fmt.Errorf("reading entropy: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(buf[:]) &^ (1 << 63)), nil
}
