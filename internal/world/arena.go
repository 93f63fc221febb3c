package world

import (
	"context"
	"time"

	"go.opentelemetry.io/otel/attribute"

	"github.com/voidmaw/skirmish/internal/random"
	"github.com/voidmaw/skirmish/internal/telemetry"
)

const (
	// Default arena dimensions
	DefaultWidth  = 40
	DefaultHeight = 18

	// spawnDepth is how many interior columns each side's spawn band claims.
	spawnDepth = 4

	// scatterAttempts bounds the random placement loop per obstacle.
	scatterAttempts = 100
)

// Arena is the bounded field an encounter is fought on: a walled rectangle
// with scattered obstacle pillars. The western spawn band belongs to the
// player side, the eastern one to the enemies; obstacles never land in
// either, so both sides always place.
type Arena struct {
	Width  int
	Height int
	Tiles  [][]Tile

	playerSpawn Region
	enemySpawn  Region
}

// NewArena creates an arena filled with walls. Generate carves the interior.
func NewArena(width, height int) *Arena {
	tiles := make([][]Tile, height)
	for y := range tiles {
		tiles[y] = make([]Tile, width)
		for x := range tiles[y] {
			tiles[y][x] = TileWall
		}
	}

	depth := spawnDepth
	if limit := (width - 2) / 3; limit < depth {
		depth = limit
	}
	if depth < 1 {
		depth = 1
	}

	return &Arena{
		Width:  width,
		Height: height,
		Tiles:  tiles,
		playerSpawn: Region{
			X: 1, Y: 1,
			Width: depth, Height: height - 2,
		},
		enemySpawn: Region{
			X: width - 1 - depth, Y: 1,
			Width: depth, Height: height - 2,
		},
	}
}

// Generate carves the interior floor and scatters obstacle pillars. The
// layout is a pure function of the injected random source.
func (a *Arena) Generate(ctx context.Context, rng random.Source, obstacles int) {
	tracer := telemetry.Tracer("world")
	_, span := tracer.Start(ctx, "arena.generate")
	defer span.End()

	startTime := time.Now()

	for y := 1; y < a.Height-1; y++ {
		for x := 1; x < a.Width-1; x++ {
			a.Tiles[y][x] = TileFloor
		}
	}

	placed := 0
	for i := 0; i < obstacles; i++ {
		if a.placeObstacle(rng) {
			placed++
		}
	}

	span.SetAttributes(
		attribute.Int("arena.width", a.Width),
		attribute.Int("arena.height", a.Height),
		attribute.Int("arena.obstacles", placed),
		attribute.Int64("arena.generation_ms", time.Since(startTime).Milliseconds()),
	)
}

// placeObstacle turns one random interior floor tile back into wall, keeping
// clear of both spawn bands. It reports false when no legal tile turned up
// within the attempt budget.
func (a *Arena) placeObstacle(rng random.Source) bool {
	for i := 0; i < scatterAttempts; i++ {
		x := 1 + rng.Intn(a.Width-2)
		y := 1 + rng.Intn(a.Height-2)
		if a.playerSpawn.Contains(x, y) || a.enemySpawn.Contains(x, y) {
			continue
		}
		if a.Tiles[y][x] != TileFloor {
			continue
		}
		a.Tiles[y][x] = TileWall
		return true
	}
	return false
}

// IsPassable returns true if the given position can be walked on.
func (a *Arena) IsPassable(x, y int) bool {
	if x < 0 || x >= a.Width || y < 0 || y >= a.Height {
		return false
	}
	return a.Tiles[y][x].IsPassable()
}

// At returns the tile at the given position; out-of-bounds reads as wall.
func (a *Arena) At(x, y int) Tile {
	if x < 0 || x >= a.Width || y < 0 || y >= a.Height {
		return TileWall
	}
	return a.Tiles[y][x]
}

// Distance returns the Manhattan distance between two positions. Range
// checks for abilities and melee reach all use this metric.
func (a *Arena) Distance(ax, ay, bx, by int) int {
	dx := ax - bx
	if dx < 0 {
		dx = -dx
	}
	dy := ay - by
	if dy < 0 {
		dy = -dy
	}
	return dx + dy
}

// Adjacent reports whether two positions are within melee reach of each
// other: the same tile or one orthogonal step apart.
func (a *Arena) Adjacent(ax, ay, bx, by int) bool {
	return a.Distance(ax, ay, bx, by) <= 1
}

// PlayerSpawn returns the player side's spawn band.
func (a *Arena) PlayerSpawn() Region {
	return a.playerSpawn
}

// EnemySpawn returns the enemy side's spawn band.
func (a *Arena) EnemySpawn() Region {
	return a.enemySpawn
}

// RandomPointIn returns a random passable point inside the region, falling
// back to the region center when the attempt budget runs out.
func (a *Arena) RandomPointIn(r Region, rng random.Source) (int, int) {
	for i := 0; i < scatterAttempts; i++ {
		x := r.X + rng.Intn(r.Width)
		y := r.Y + rng.Intn(r.Height)
		if a.IsPassable(x, y) {
			return x, y
		}
	}
	return r.Center()
}
