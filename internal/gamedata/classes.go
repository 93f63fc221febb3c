package gamedata

import "fmt"

// ClassDef defines a playable class loaded from JSON.
type ClassDef struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Symbol    string   `json:"symbol"`
	HP        int      `json:"hp"`
	Mana      int      `json:"mana"`
	ManaRegen int      `json:"manaRegen"`
	Attack    int      `json:"attack"`
	Abilities []string `json:"abilities"`
}

// SymbolRune returns the class symbol for rendering.
func (c *ClassDef) SymbolRune() rune {
	if len(c.Symbol) == 0 {
		return '@'
	}
	return []rune(c.Symbol)[0]
}

// ClassesFile is the structure of classes.json.
type ClassesFile struct {
	Classes []ClassDef `json:"classes"`
}

// LoadClasses loads class definitions from the embedded classes.json.
func LoadClasses() ([]ClassDef, error) {
	file, err := Load[ClassesFile]("classes.json")
	if err != nil {
		return nil, err
	}
	return file.Classes, nil
}

// MustLoadClasses loads class definitions, panicking on error.
func MustLoadClasses() []ClassDef {
	classes, err := LoadClasses()
	if err != nil {
		panic(err)
	}
	return classes
}

// FindClass returns the class with the given id.
func FindClass(classes []ClassDef, id string) (*ClassDef, error) {
	for i := range classes {
		if classes[i].ID == id {
			return &classes[i], nil
		}
	}
	return nil, fmt.Errorf("unknown class %q", id)
}
