package gamedata

import (
	"encoding/json"
	"fmt"
)

// Load reads and unmarshals one embedded JSON definition file.
func Load[T any](filename string) (T, error) {
	var out T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return out, fmt.Errorf("reading embedded file %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &out); err != nil {
		return out, fmt.Errorf("parsing %s: %w", filename, err)
	}

	return out, nil
}

// MustLoad is Load panicking on error. Use for data the game cannot start
// without.
func MustLoad[T any](filename string) T {
	out, err := Load[T](filename)
	if err != nil {
		panic(err)
	}
	return out
}
