// Package game wires the arena, the encounter engine, and the terminal UI
// into a playable run.
package game

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"

	"github.com/voidmaw/skirmish/internal/ai"
	"github.com/voidmaw/skirmish/internal/encounter"
	"github.com/voidmaw/skirmish/internal/entity"
	"github.com/voidmaw/skirmish/internal/gamedata"
	"github.com/voidmaw/skirmish/internal/random"
	"github.com/voidmaw/skirmish/internal/status"
	"github.com/voidmaw/skirmish/internal/telemetry"
	"github.com/voidmaw/skirmish/internal/ui"
	"github.com/voidmaw/skirmish/internal/world"
)

const (
	feedCap      = 40
	spawnRetries = 20
	hotbarSlots  = 9
)

// Game holds one run: the arena, the player, the engine, and the UI.
type Game struct {
	cfg  Config
	log  *slog.Logger
	seed int64
	rng  random.Source

	screen   *ui.Screen
	renderer *ui.Renderer

	arena     *world.Arena
	statuses  *status.Registry
	abilities *gamedata.AbilityRegistry
	bestiary  *gamedata.EnemyRegistry

	player *entity.Combatant
	engine *encounter.Engine
	scores *ScoreKeeper

	feed    []string
	running bool
}

// New loads game data, rolls the seed, opens the terminal, and builds the
// run.
func New(cfg Config, log *slog.Logger) (*Game, error) {
	if log == nil {
		log = slog.Default()
	}

	statuses, err := gamedata.LoadStatusRegistry()
	if err != nil {
		return nil, fmt.Errorf("load status effects: %w", err)
	}
	abilities, err := gamedata.LoadAbilityRegistry()
	if err != nil {
		return nil, fmt.Errorf("load abilities: %w", err)
	}
	bestiary, err := gamedata.LoadEnemyRegistry()
	if err != nil {
		return nil, fmt.Errorf("load enemies: %w", err)
	}
	classes, err := gamedata.LoadClasses()
	if err != nil {
		return nil, fmt.Errorf("load classes: %w", err)
	}
	class, err := gamedata.FindClass(classes, cfg.Class)
	if err != nil {
		return nil, err
	}
	if err := abilities.Resolve(class.Abilities); err != nil {
		return nil, fmt.Errorf("class %s: %w", class.ID, err)
	}

	seed, err := cfg.EffectiveSeed()
	if err != nil {
		return nil, err
	}
	rng := random.New(seed)

	arena := world.NewArena(world.DefaultWidth, world.DefaultHeight)
	player := entity.NewFromClass(class, statuses, rng)
	scores := NewScoreKeeper()

	engine, err := encounter.NewEngine(player, abilities, arena, arena, scores, rng)
	if err != nil {
		return nil, err
	}

	screen, err := ui.NewScreen()
	if err != nil {
		return nil, fmt.Errorf("open screen: %w", err)
	}

	return &Game{
		cfg:       cfg,
		log:       log,
		seed:      seed,
		rng:       rng,
		screen:    screen,
		renderer:  ui.NewRenderer(screen),
		arena:     arena,
		statuses:  statuses,
		abilities: abilities,
		bestiary:  bestiary,
		player:    player,
		engine:    engine,
		scores:    scores,
		feed:      []string{"You step into the arena."},
		running:   true,
	}, nil
}

// Run executes the main game loop until the run ends or the player quits.
func (g *Game) Run(ctx context.Context) error {
	defer g.screen.Close()

	tracer := telemetry.Tracer("game")
	ctx, initSpan := tracer.Start(ctx, "game.init")
	g.arena.Generate(ctx, g.rng, g.cfg.Obstacles)
	g.placePlayer()
	err := g.spawnEnemies(ctx)
	initSpan.SetAttributes(
		attribute.Int64("seed", g.seed),
		attribute.String("class", g.cfg.Class),
		attribute.Int("enemies", g.cfg.Enemies),
	)
	initSpan.End()
	if err != nil {
		return err
	}
	g.log.Info("run started",
		"seed", g.seed,
		"class", g.cfg.Class,
		"enemies", g.cfg.Enemies,
		"obstacles", g.cfg.Obstacles,
	)

	for g.running {
		g.pump(ctx)
		g.renderer.Render(g.frame())
		if g.finished() {
			g.showOutcome()
			break
		}
		if g.running {
			g.handleInput(ctx)
		}
	}

	g.log.Info("run ended",
		"score", g.scores.Score(),
		"kills", g.scores.Kills(),
		"escapes", g.scores.Escapes(),
		"player_alive", g.player.Alive(),
	)
	return nil
}

// Close cleans up game resources.
func (g *Game) Close() {
	if g.screen != nil {
		g.screen.Close()
	}
}

func (g *Game) placePlayer() {
	x, y := g.arena.RandomPointIn(g.arena.PlayerSpawn(), g.rng)
	g.player.MoveTo(x, y)
}

// spawnEnemies rolls the bestiary and scatters the foes across the enemy
// spawn band, wiring each to its behavior controller.
func (g *Game) spawnEnemies(ctx context.Context) error {
	_, span := telemetry.Tracer("game").Start(ctx, "game.spawn")
	defer span.End()

	band := g.arena.EnemySpawn()
	for i := 0; i < g.cfg.Enemies; i++ {
		def := g.bestiary.SpawnRandom(g.rng)
		if def == nil {
			return fmt.Errorf("bestiary is empty")
		}
		if err := g.abilities.Resolve(def.Abilities); err != nil {
			return fmt.Errorf("enemy %s: %w", def.ID, err)
		}
		x, y := g.openPointIn(band)
		c := entity.NewFromEnemy(def, x, y, g.statuses, g.rng)
		ctrl, err := ai.FromDef(def, g.rng)
		if err != nil {
			return err
		}
		if err := g.engine.AddEnemy(c, ctrl); err != nil {
			return err
		}
		g.scores.Register(c.ID(), def.Score)
		g.log.Info("enemy spawned", "enemy", def.ID, "behavior", def.Behavior, "x", x, "y", y)
	}
	span.SetAttributes(attribute.Int("spawned", g.cfg.Enemies))
	return nil
}

// openPointIn picks an unoccupied point in the region, settling for an
// occupied one if the band is crowded.
func (g *Game) openPointIn(r world.Region) (int, int) {
	x, y := g.arena.RandomPointIn(r, g.rng)
	for i := 0; i < spawnRetries && g.occupied(x, y); i++ {
		x, y = g.arena.RandomPointIn(r, g.rng)
	}
	return x, y
}

func (g *Game) occupied(x, y int) bool {
	for _, c := range g.engine.Combatants() {
		cx, cy := c.Pos()
		if cx == x && cy == y {
			return true
		}
	}
	return false
}

// pump advances the engine until it needs player input or settles back
// into exploration.
func (g *Game) pump(ctx context.Context) {
	for {
		ev, err := g.engine.Advance(nil)
		if err != nil {
			g.log.Error("engine fault", "err", err)
			g.running = false
			return
		}
		g.consume(ctx, ev)
		switch {
		case ev.Type == encounter.EventNone,
			ev.Type == encounter.EventWaitingForPlayerInput,
			ev.Type == encounter.EventPhaseChanged && ev.To == encounter.Exploration:
			return
		}
		g.renderer.Render(g.frame())
	}
}

// consume folds one engine event into the feed, the log, and the traces.
func (g *Game) consume(ctx context.Context, ev encounter.Event) {
	switch ev.Type {
	case encounter.EventPhaseChanged:
		g.onPhaseChange(ctx, ev)
	case encounter.EventTurnStarted:
		if ev.Result != nil && ev.Result.Message != "" {
			g.say(ev.Result.Message)
		}
	case encounter.EventActionResolved:
		g.onActionResolved(ctx, ev)
	case encounter.EventRoundAdvanced:
		g.say(fmt.Sprintf("Round %d.", ev.Round))
	}
}

func (g *Game) onPhaseChange(ctx context.Context, ev encounter.Event) {
	tracer := telemetry.Tracer("combat")
	switch ev.To {
	case encounter.CombatInit:
		_, span := tracer.Start(ctx, "combat.start")
		span.SetAttributes(attribute.Int("enemies", len(g.engine.Combatants())-1))
		span.End()
		g.say("Battle is joined!")
		g.log.Info("combat started", "enemies", len(g.engine.Combatants())-1)
	case encounter.CombatResolution:
		outcome := g.outcomeLabel()
		_, span := tracer.Start(ctx, "combat.end")
		span.SetAttributes(
			attribute.String("outcome", outcome),
			attribute.Int("rounds", ev.Round),
			attribute.Int("player_hp", g.player.Health()),
		)
		span.End()
		g.log.Info("combat resolved", "outcome", outcome, "rounds", ev.Round)
	case encounter.Exploration:
		if g.player.Alive() {
			g.say("You catch your breath.")
		}
	}
}

// outcomeLabel names the encounter result while it is being resolved.
func (g *Game) outcomeLabel() string {
	switch {
	case !g.player.Alive():
		return "defeat"
	case len(g.engine.Combatants()) == 1:
		return "victory"
	}
	return "flight"
}

func (g *Game) onActionResolved(ctx context.Context, ev encounter.Event) {
	res := ev.Result
	if res == nil {
		return
	}
	if res.Message != "" {
		g.say(res.Message)
	}

	actor := "unknown"
	if view, ok := g.engine.View(ev.Combatant); ok {
		actor = view.Name()
	}
	_, span := telemetry.Tracer("combat").Start(ctx, "combat.turn")
	span.SetAttributes(
		attribute.String("actor", actor),
		attribute.String("action", ev.Action.Type.String()),
		attribute.Int("round", ev.Round),
	)
	if res.Damage > 0 {
		span.SetAttributes(attribute.Int("damage", res.Damage))
	}
	if res.Healing > 0 {
		span.SetAttributes(attribute.Int("healing", res.Healing))
	}
	if res.Missed {
		span.SetAttributes(attribute.Bool("missed", true))
	}
	if len(res.Defeated) > 0 {
		span.SetAttributes(attribute.Int("defeated", len(res.Defeated)))
	}
	span.End()
}

func (g *Game) say(msg string) {
	g.feed = append(g.feed, msg)
	if len(g.feed) > feedCap {
		g.feed = g.feed[len(g.feed)-feedCap:]
	}
}

// frame assembles the render snapshot.
func (g *Game) frame() ui.Frame {
	views := g.engine.Combatants()
	effects := make(map[uuid.UUID][]status.Kind, len(views))
	for _, v := range views {
		if kinds, err := g.engine.ActiveEffects(v.ID()); err == nil && len(kinds) > 0 {
			effects[v.ID()] = kinds
		}
	}
	current, _ := g.engine.CurrentCombatant()
	return ui.Frame{
		Arena:      g.arena,
		Combatants: views,
		Effects:    effects,
		InCombat:   g.engine.InCombat(),
		Round:      g.engine.Round(),
		Current:    current,
		Feed:       g.feed,
		Slots:      g.slots(),
		Hint:       g.hint(),
	}
}

func (g *Game) slots() []ui.AbilitySlot {
	ids := g.player.Abilities()
	if len(ids) > hotbarSlots {
		ids = ids[:hotbarSlots]
	}
	slots := make([]ui.AbilitySlot, 0, len(ids))
	for i, id := range ids {
		def := g.abilities.GetByID(id)
		if def == nil {
			continue
		}
		slots = append(slots, ui.AbilitySlot{
			Key:      rune('1' + i),
			Name:     def.Name,
			Cost:     def.ManaCost,
			Cooldown: g.player.CooldownRemaining(id),
			Usable:   g.player.AbilityReady(id) && g.player.Mana() >= def.ManaCost,
		})
	}
	return slots
}

func (g *Game) hint() string {
	if g.engine.InCombat() {
		return "arrows step | a attack | d defend | 1-9 cast | f flee | . wait | q quit"
	}
	return "arrows move | q quit"
}

// finished reports whether the run is over: the player is down or every
// enemy is.
func (g *Game) finished() bool {
	if g.engine.InCombat() {
		return false
	}
	if !g.player.Alive() {
		return true
	}
	return len(g.engine.Combatants()) == 1
}

func (g *Game) showOutcome() {
	title := "VICTORY"
	if !g.player.Alive() {
		title = "DEFEATED"
	}
	g.renderer.Banner(g.frame(),
		title,
		fmt.Sprintf("Score %d", g.scores.Score()),
		"press any key",
	)
	g.waitForKey()
}

func (g *Game) waitForKey() {
	for {
		switch g.screen.PollEvent().(type) {
		case *tcell.EventKey:
			return
		case *tcell.EventResize:
			g.screen.Sync()
		}
	}
}
