package gamedata

import "github.com/gdamore/tcell/v2"

// EnemyDef defines an enemy archetype loaded from JSON. Enemies are
// instantiated from defs per encounter; the def itself never mutates.
type EnemyDef struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Glyph     string `json:"glyph"`
	Color     string `json:"color"`
	HP        int    `json:"hp"`
	Attack    int    `json:"attack"`
	Mana      int    `json:"mana,omitempty"`
	ManaRegen int    `json:"manaRegen,omitempty"`

	// Behavior names the AI decision variant; Aggression and Caution are
	// the personality weights that probabilistically override it.
	Behavior   string  `json:"behavior"`
	Aggression float64 `json:"aggression"`
	Caution    float64 `json:"caution"`

	// SpawnWeight sets relative spawn frequency; Score is the reward the
	// sink collects when this enemy falls.
	SpawnWeight int `json:"spawnWeight"`
	Score       int `json:"score"`

	Abilities []string `json:"abilities,omitempty"`
}

// GlyphRune returns the map glyph for rendering.
func (e *EnemyDef) GlyphRune() rune {
	if len(e.Glyph) == 0 {
		return '?'
	}
	return []rune(e.Glyph)[0]
}

// TCellColor returns the def's color, falling back to white on bad data.
func (e *EnemyDef) TCellColor() tcell.Color {
	color, err := ParseHexColor(e.Color)
	if err != nil {
		return tcell.ColorWhite
	}
	return color
}

// EnemiesFile is the structure of enemies.json.
type EnemiesFile struct {
	Enemies []EnemyDef `json:"enemies"`
}

// LoadEnemies loads enemy definitions from the embedded enemies.json.
func LoadEnemies() ([]EnemyDef, error) {
	file, err := Load[EnemiesFile]("enemies.json")
	if err != nil {
		return nil, err
	}
	return file.Enemies, nil
}
