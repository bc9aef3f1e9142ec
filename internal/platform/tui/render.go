package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-cafe/internal/cafe"
	"github.com/vovakirdan/tui-cafe/internal/core"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault:      lipgloss.NewStyle(),
	core.ColorRed:          lipgloss.NewStyle().Foreground(lipgloss.Color("1")),
	core.ColorGreen:        lipgloss.NewStyle().Foreground(lipgloss.Color("2")),
	core.ColorYellow:       lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
	core.ColorBlue:         lipgloss.NewStyle().Foreground(lipgloss.Color("4")),
	core.ColorMagenta:      lipgloss.NewStyle().Foreground(lipgloss.Color("5")),
	core.ColorCyan:         lipgloss.NewStyle().Foreground(lipgloss.Color("6")),
	core.ColorWhite:        lipgloss.NewStyle().Foreground(lipgloss.Color("7")),
	core.ColorBrightYellow: lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBrightWhite:  lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:       lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:         lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// itemGlyphs maps item kinds to their floor glyphs.
var itemGlyphs = map[cafe.ItemKind]rune{
	cafe.KindMachine: 'M',
	cafe.KindSource:  'T',
	cafe.KindCounter: '=',
	cafe.KindTrash:   'X',
	cafe.KindQueue:   '#',
}

// customerGlyphs maps customer states to glyphs.
var customerGlyphs = map[cafe.CustomerState]rune{
	cafe.CustomerInLineHappy: 'c',
	cafe.CustomerInLineOK:    'c',
	cafe.CustomerAngry:       '!',
	cafe.CustomerServed:      '*',
}

// customerColors maps customer states to colors.
var customerColors = map[cafe.CustomerState]core.Color{
	cafe.CustomerInLineHappy: core.ColorGreen,
	cafe.CustomerInLineOK:    core.ColorYellow,
	cafe.CustomerAngry:       core.ColorRed,
	cafe.CustomerServed:      core.ColorCyan,
}

// drawSnapshot renders an engine snapshot into the screen buffer.
func drawSnapshot(snap cafe.Snapshot, grid core.Grid, dst *core.Screen) {
	dst.Clear()
	drawHUD(snap, dst)

	// Floor items
	for _, it := range snap.Items {
		x, y := cellOf(grid, it.X, it.Y)
		glyph := itemGlyphs[it.Kind]
		color := core.ColorWhite
		switch {
		case it.Kind == cafe.KindMachine && it.State == cafe.StateWorking:
			color = core.ColorYellow
		case it.Kind == cafe.KindMachine && it.State == cafe.StateDone:
			color = core.ColorBrightYellow
		case it.Kind == cafe.KindCounter && it.Stored != cafe.FoodNone:
			color = core.ColorOrange
		}
		dst.SetColor(x, y, glyph, color)
	}

	// Customers
	for _, c := range snap.Customers {
		x, y := cellOf(grid, c.X, c.Y)
		dst.SetColor(x, y, customerGlyphs[c.State], customerColors[c.State])
	}

	// Actor on top
	ax, ay := cellOf(grid, snap.ActorX, snap.ActorY)
	dst.SetColor(ax, ay, '@', core.ColorBrightWhite)

	if snap.Announcement != "" {
		drawCentered(dst, snap.Announcement, dst.Height()/2, core.ColorBrightYellow)
	}
}

// drawHUD draws the top status lines.
func drawHUD(snap cafe.Snapshot, dst *core.Screen) {
	held := string(snap.Held)
	if held == "" {
		held = "-"
	}
	hud := fmt.Sprintf(" %s — $%d  Points: %d  Time: %d  Served: %d  Holding: %s",
		snap.LevelName, snap.Session.Money, snap.Session.Points,
		snap.Session.Remaining, snap.Served, held)
	dst.SetString(0, 0, hud, core.ColorDefault)
	for x := range dst.Width() {
		dst.Set(x, 1, '─')
	}
}

// drawCentered draws text centered horizontally.
func drawCentered(dst *core.Screen, text string, y int, c core.Color) {
	x := (dst.Width() - len(text)) / 2
	dst.SetString(x, y, text, c)
}

// cellOf converts engine grid coordinates to screen cells, leaving room for
// the HUD.
func cellOf(grid core.Grid, gx, gy float64) (int, int) {
	px, py := grid.ToDevice(gx, gy)
	return int(px), int(py) + hudHeight
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape
// sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}
		x := 0
		for x < s.Width() {
			start := s.GetCell(x, y).Color
			var run strings.Builder
			for x < s.Width() {
				cell := s.GetCell(x, y)
				if cell.Color != start {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}
			if start == core.ColorDefault {
				sb.WriteString(run.String())
			} else {
				sb.WriteString(colorStyles[start].Render(run.String()))
			}
		}
	}
	return sb.String()
}
