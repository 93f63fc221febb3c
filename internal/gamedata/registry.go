package gamedata

import (
	"errors"
	"fmt"

	"github.com/voidmaw/skirmish/internal/random"
)

// EnemyRegistry holds enemy definitions and spawning utilities.
type EnemyRegistry struct {
	enemies     []EnemyDef
	totalWeight int
}

// NewEnemyRegistry builds a registry from enemy definitions, rejecting
// duplicate ids and non-viable stats.
func NewEnemyRegistry(enemies []EnemyDef) (*EnemyRegistry, error) {
	seen := make(map[string]bool, len(enemies))
	totalWeight := 0
	for _, e := range enemies {
		if e.ID == "" {
			return nil, errors.New("enemy with empty id")
		}
		if seen[e.ID] {
			return nil, fmt.Errorf("duplicate enemy id %q", e.ID)
		}
		seen[e.ID] = true
		if e.HP <= 0 {
			return nil, fmt.Errorf("enemy %q: hp must be positive, got %d", e.ID, e.HP)
		}
		if e.SpawnWeight < 0 {
			return nil, fmt.Errorf("enemy %q: negative spawn weight", e.ID)
		}
		totalWeight += e.SpawnWeight
	}
	return &EnemyRegistry{enemies: enemies, totalWeight: totalWeight}, nil
}

// LoadEnemyRegistry loads a registry from the embedded enemies.json.
func LoadEnemyRegistry() (*EnemyRegistry, error) {
	enemies, err := LoadEnemies()
	if err != nil {
		return nil, err
	}
	if len(enemies) == 0 {
		return nil, errors.New("no enemies loaded from enemies.json")
	}
	return NewEnemyRegistry(enemies)
}

// MustLoadEnemyRegistry loads a registry, panicking on error.
func MustLoadEnemyRegistry() *EnemyRegistry {
	registry, err := LoadEnemyRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// SpawnRandom selects an enemy definition by weighted probability; defs with
// higher spawnWeight come up more often. Returns nil when nothing is
// spawnable.
func (r *EnemyRegistry) SpawnRandom(rng random.Source) *EnemyDef {
	if r.totalWeight <= 0 || len(r.enemies) == 0 {
		return nil
	}

	roll := rng.Intn(r.totalWeight)
	cumulative := 0
	for i := range r.enemies {
		cumulative += r.enemies[i].SpawnWeight
		if roll < cumulative {
			return &r.enemies[i]
		}
	}
	return &r.enemies[0]
}

// GetByID returns the enemy definition with the given id, or nil.
func (r *EnemyRegistry) GetByID(id string) *EnemyDef {
	for i := range r.enemies {
		if r.enemies[i].ID == id {
			return &r.enemies[i]
		}
	}
	return nil
}

// All returns all enemy definitions.
func (r *EnemyRegistry) All() []EnemyDef {
	return r.enemies
}

// Count returns the number of enemy archetypes.
func (r *EnemyRegistry) Count() int {
	return len(r.enemies)
}

// AbilityRegistry holds validated ability definitions keyed by id.
type AbilityRegistry struct {
	abilities map[string]*AbilityDef
	all       []AbilityDef
}

// NewAbilityRegistry builds a registry from ability definitions, validating
// each def and rejecting duplicate ids.
func NewAbilityRegistry(abilities []AbilityDef) (*AbilityRegistry, error) {
	registry := &AbilityRegistry{
		abilities: make(map[string]*AbilityDef, len(abilities)),
		all:       abilities,
	}
	for i := range abilities {
		def := &abilities[i]
		if err := def.Validate(); err != nil {
			return nil, err
		}
		if _, dup := registry.abilities[def.ID]; dup {
			return nil, fmt.Errorf("duplicate ability id %q", def.ID)
		}
		registry.abilities[def.ID] = def
	}
	return registry, nil
}

// LoadAbilityRegistry loads a registry from the embedded abilities.json.
func LoadAbilityRegistry() (*AbilityRegistry, error) {
	abilities, err := LoadAbilities()
	if err != nil {
		return nil, err
	}
	if len(abilities) == 0 {
		return nil, errors.New("no abilities loaded from abilities.json")
	}
	return NewAbilityRegistry(abilities)
}

// MustLoadAbilityRegistry loads a registry, panicking on error.
func MustLoadAbilityRegistry() *AbilityRegistry {
	registry, err := LoadAbilityRegistry()
	if err != nil {
		panic(err)
	}
	return registry
}

// GetByID returns the ability definition with the given id, or nil.
func (r *AbilityRegistry) GetByID(id string) *AbilityDef {
	return r.abilities[id]
}

// Resolve checks that every id in the list is registered.
func (r *AbilityRegistry) Resolve(ids []string) error {
	for _, id := range ids {
		if r.abilities[id] == nil {
			return fmt.Errorf("unknown ability %q", id)
		}
	}
	return nil
}

// All returns all ability definitions.
func (r *AbilityRegistry) All() []AbilityDef {
	return r.all
}

// Count returns the number of abilities.
func (r *AbilityRegistry) Count() int {
	return len(r.all)
}
