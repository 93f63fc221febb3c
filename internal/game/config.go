package game

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/voidmaw/skirmish/internal/random"
)

const (
	minEnemies = 1
	maxEnemies = 8
)

// Config holds the run options. Values layer: built-in defaults, then the
// optional YAML file, then SKIRMISH_* environment variables.
type Config struct {
	// Seed drives every random decision in the run. Zero derives a fresh
	// seed, logged at startup so a run can be replayed.
	Seed int64 `yaml:"seed" env:"SKIRMISH_SEED"`

	// Class is the player's class id from classes.json.
	Class string `yaml:"class" env:"SKIRMISH_CLASS"`

	// Enemies is how many foes spawn across the arena.
	Enemies int `yaml:"enemies" env:"SKIRMISH_ENEMIES"`

	// Obstacles is the number of wall tiles scattered between the spawn
	// bands.
	Obstacles int `yaml:"obstacles" env:"SKIRMISH_OBSTACLES"`

	// LogFile receives structured logs; empty discards them. The terminal
	// itself belongs to the game.
	LogFile string `yaml:"log_file" env:"SKIRMISH_LOG"`

	// Telemetry enables the OTLP trace exporter.
	Telemetry bool `yaml:"telemetry" env:"SKIRMISH_TELEMETRY"`
}

// DefaultConfig returns the built-in settings.
func DefaultConfig() Config {
	return Config{
		Class:     "warrior",
		Enemies:   3,
		Obstacles: 25,
	}
}

// LoadConfig layers the file at path (when it exists) and the environment
// over the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		switch {
		case errors.Is(err, fs.ErrNotExist):
			// No file is fine; defaults plus environment apply.
		case err != nil:
			return cfg, fmt.Errorf("read config %s: %w", path, err)
		default:
			if err := yaml.Unmarshal(data, &cfg); err != nil {
				return cfg, fmt.Errorf("parse config %s: %w", path, err)
			}
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks ranges. Whether the class id exists is checked against
// game data at startup, not here.
func (c Config) Validate() error {
	if c.Enemies < minEnemies || c.Enemies > maxEnemies {
		return fmt.Errorf("enemies must be between %d and %d, got %d", minEnemies, maxEnemies, c.Enemies)
	}
	if c.Obstacles < 0 {
		return fmt.Errorf("obstacles must not be negative, got %d", c.Obstacles)
	}
	if c.Class == "" {
		return errors.New("class must not be empty")
	}
	return nil
}

// EffectiveSeed returns the configured seed, deriving a random one when
// unset.
func (c Config) EffectiveSeed() (int64, error) {
	if c.Seed != 0 {
		return c.Seed, nil
	}
	return random.Seed()
}
