package ui

import (
	"fmt"

	"github.com/gdamore/tcell/v2"
	"github.com/google/uuid"
	"github.com/mattn/go-runewidth"

	"github.com/voidmaw/skirmish/internal/encounter"
	"github.com/voidmaw/skirmish/internal/gamedata"
	"github.com/voidmaw/skirmish/internal/status"
	"github.com/voidmaw/skirmish/internal/world"
)

const (
	panelGap  = 2
	nameWidth = 10
	barWidth  = 12
	feedLines = 6
)

// AbilitySlot is one hotbar entry.
type AbilitySlot struct {
	Key      rune
	Name     string
	Cost     int
	Cooldown int
	Usable   bool
}

// Frame is one complete picture of the game. The game layer assembles it;
// the renderer only draws.
type Frame struct {
	Arena      *world.Arena
	Combatants []encounter.CombatantView
	Effects    map[uuid.UUID][]status.Kind
	InCombat   bool
	Round      int
	Current    uuid.UUID
	Feed       []string
	Slots      []AbilitySlot
	Hint       string
}

// Renderer draws frames to a screen.
type Renderer struct {
	screen *Screen
}

// NewRenderer creates a renderer for the given screen.
func NewRenderer(screen *Screen) *Renderer {
	return &Renderer{screen: screen}
}

// Render draws one frame and flushes it.
func (r *Renderer) Render(f Frame) {
	r.screen.Clear()
	r.drawArena(f.Arena)
	r.drawCombatants(f)
	r.drawPanel(f.Arena.Width+panelGap, 0, f)
	r.drawFeed(0, f.Arena.Height+1, f)
	r.screen.Show()
}

// Banner overlays centered lines on the arena, for victory and defeat.
func (r *Renderer) Banner(f Frame, lines ...string) {
	r.Render(f)
	cy := f.Arena.Height/2 - len(lines)/2
	style := tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	for i, line := range lines {
		cx := (f.Arena.Width - runewidth.StringWidth(line)) / 2
		if cx < 0 {
			cx = 0
		}
		r.drawText(cx, cy+i, line, style)
	}
	r.screen.Show()
}

func (r *Renderer) drawArena(a *world.Arena) {
	for y := 0; y < a.Height; y++ {
		for x := 0; x < a.Width; x++ {
			tile := a.At(x, y)
			r.screen.SetContent(x, y, tile.Rune(), tileStyle(tile))
		}
	}
}

func (r *Renderer) drawCombatants(f Frame) {
	for _, c := range f.Combatants {
		if !c.Alive() {
			continue
		}
		color, err := gamedata.ParseHexColor(c.Color())
		if err != nil {
			color = tcell.ColorWhite
		}
		style := tcell.StyleDefault.Foreground(color)
		if c.IsPlayer() {
			style = style.Bold(true)
		}
		if f.InCombat && c.ID() == f.Current {
			style = style.Reverse(true)
		}
		x, y := c.Pos()
		r.screen.SetContent(x, y, c.Glyph(), style)
	}
}

// drawPanel renders the sidebar: the round header, then one block per
// combatant with bars and active effect tags.
func (r *Renderer) drawPanel(x, y int, f Frame) {
	header := "Exploring"
	if f.InCombat {
		header = fmt.Sprintf("Round %d", f.Round)
	}
	r.drawText(x, y, header, tcell.StyleDefault.Foreground(tcell.ColorWhite).Bold(true))
	y += 2

	for _, c := range f.Combatants {
		if !c.Alive() {
			continue
		}
		nameStyle := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if f.InCombat && c.ID() == f.Current {
			nameStyle = nameStyle.Bold(true)
		}
		name := runewidth.Truncate(c.Name(), nameWidth, "…")
		r.drawText(x, y, runewidth.FillRight(name, nameWidth+1), nameStyle)

		bx := x + nameWidth + 1
		bx = r.drawBar(bx, y, barWidth, ratio(c.Health(), c.MaxHealth()), healthColor(c.HealthRatio()))
		r.drawText(bx+1, y, fmt.Sprintf("%d/%d", c.Health(), c.MaxHealth()), dimStyle())
		y++

		if c.IsPlayer() && c.MaxMana() > 0 {
			r.drawText(x, y, runewidth.FillRight("", nameWidth+1), dimStyle())
			bx = r.drawBar(x+nameWidth+1, y, barWidth, ratio(c.Mana(), c.MaxMana()), tcell.ColorBlue)
			r.drawText(bx+1, y, fmt.Sprintf("%d/%d", c.Mana(), c.MaxMana()), dimStyle())
			y++
		}

		if tags := f.Effects[c.ID()]; len(tags) > 0 {
			tx := x + nameWidth + 1
			for _, k := range tags {
				label, color := effectTag(k)
				tx = r.drawText(tx, y, label, tcell.StyleDefault.Foreground(color)) + 1
			}
			y++
		}
		y++
	}
}

// drawFeed renders the recent messages, the ability hotbar, and the key
// hint line below the arena.
func (r *Renderer) drawFeed(x, y int, f Frame) {
	width, _ := r.screen.Size()
	if width <= 0 {
		width = f.Arena.Width
	}

	feed := f.Feed
	if len(feed) > feedLines {
		feed = feed[len(feed)-feedLines:]
	}
	for i, msg := range feed {
		style := dimStyle()
		if i == len(feed)-1 {
			style = tcell.StyleDefault.Foreground(tcell.ColorWhite)
		}
		r.drawText(x, y+i, runewidth.Truncate(msg, width, "…"), style)
	}
	y += feedLines

	sx := x
	for _, slot := range f.Slots {
		label := fmt.Sprintf("[%c] %s", slot.Key, slot.Name)
		if slot.Cost > 0 {
			label += fmt.Sprintf(" %dmp", slot.Cost)
		}
		if slot.Cooldown > 0 {
			label += fmt.Sprintf(" (%d)", slot.Cooldown)
		}
		style := tcell.StyleDefault.Foreground(tcell.ColorWhite)
		if !slot.Usable {
			style = dimStyle()
		}
		sx = r.drawText(sx, y, label, style) + 2
	}
	y++

	if f.Hint != "" {
		r.drawText(x, y, runewidth.Truncate(f.Hint, width, "…"), dimStyle())
	}
}

// drawText writes a string and returns the x position after its last cell,
// accounting for wide runes.
func (r *Renderer) drawText(x, y int, s string, style tcell.Style) int {
	cx := x
	for _, ch := range s {
		r.screen.SetContent(cx, y, ch, style)
		cx += runewidth.RuneWidth(ch)
	}
	return cx
}

// drawBar renders a fixed-width gauge and returns the x position after it.
func (r *Renderer) drawBar(x, y, width int, ratio float64, fill tcell.Color) int {
	filled := int(ratio*float64(width) + 0.5)
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}
	for i := 0; i < width; i++ {
		ch := '░'
		style := tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
		if i < filled {
			ch = '█'
			style = tcell.StyleDefault.Foreground(fill)
		}
		r.screen.SetContent(x+i, y, ch, style)
	}
	return x + width
}

func tileStyle(tile world.Tile) tcell.Style {
	switch tile {
	case world.TileWall:
		return tcell.StyleDefault.Foreground(tcell.ColorDarkGray)
	case world.TileFloor:
		return tcell.StyleDefault.Foreground(tcell.ColorGray)
	default:
		return tcell.StyleDefault
	}
}

func dimStyle() tcell.Style {
	return tcell.StyleDefault.Foreground(tcell.ColorGray)
}

func healthColor(ratio float64) tcell.Color {
	switch {
	case ratio > 0.5:
		return tcell.ColorGreen
	case ratio > 0.25:
		return tcell.ColorYellow
	}
	return tcell.ColorRed
}

func ratio(cur, max int) float64 {
	if max <= 0 {
		return 0
	}
	return float64(cur) / float64(max)
}

// effectTag maps an active effect to its HUD label and color.
func effectTag(k status.Kind) (string, tcell.Color) {
	switch k {
	case status.Poison:
		return "PSN", tcell.ColorGreen
	case status.Paralysis:
		return "PAR", tcell.ColorYellow
	case status.Blindness:
		return "BLD", tcell.ColorDarkGray
	case status.Confusion:
		return "CNF", tcell.ColorFuchsia
	case status.Haste:
		return "HST", tcell.ColorAqua
	case status.Slow:
		return "SLW", tcell.ColorBlue
	case status.Regeneration:
		return "RGN", tcell.ColorLime
	case status.Strength:
		return "STR", tcell.ColorOrange
	case status.Weakness:
		return "WKN", tcell.ColorMaroon
	case status.Protection:
		return "PRT", tcell.ColorTeal
	}
	return "???", tcell.ColorWhite
}
