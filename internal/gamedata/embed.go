// Package gamedata provides the embedded balance tables and definition
// files, plus typed loaders and registries over them. Every number the
// engine consumes is injected from here at construction time; nothing in
// the engine reads these files mid-game.
package gamedata

import "embed"

// dataFS embeds every JSON definition file in this directory at build time.
//
//go:embed *.json
var dataFS embed.FS
