package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cafe/internal/core"
)

// mapKey translates a key press into a semantic action.
func mapKey(msg tea.KeyMsg) core.Action {
	switch msg.String() {
	case "up", "w":
		return core.ActionUp
	case "down", "s":
		return core.ActionDown
	case "left", "a":
		return core.ActionLeft
	case "right", "d":
		return core.ActionRight
	case " ":
		return core.ActionTap
	case "enter":
		return core.ActionConfirm
	case "p", "esc":
		return core.ActionPause
	case "q", "ctrl+c":
		return core.ActionQuit
	default:
		return core.ActionNone
	}
}

// walkDelta returns the grid offset for a movement action.
func walkDelta(a core.Action) (dx, dy float64, ok bool) {
	switch a {
	case core.ActionUp:
		return 0, -1, true
	case core.ActionDown:
		return 0, 1, true
	case core.ActionLeft:
		return -1, 0, true
	case core.ActionRight:
		return 1, 0, true
	default:
		return 0, 0, false
	}
}
