package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-cafe/internal/core"
)

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "up":
		return tea.KeyMsg{Type: tea.KeyUp}
	case "down":
		return tea.KeyMsg{Type: tea.KeyDown}
	case "left":
		return tea.KeyMsg{Type: tea.KeyLeft}
	case "right":
		return tea.KeyMsg{Type: tea.KeyRight}
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func TestMapKey(t *testing.T) {
	tests := []struct {
		key  string
		want core.Action
	}{
		{"up", core.ActionUp},
		{"w", core.ActionUp},
		{"down", core.ActionDown},
		{"s", core.ActionDown},
		{"left", core.ActionLeft},
		{"a", core.ActionLeft},
		{"right", core.ActionRight},
		{"d", core.ActionRight},
		{" ", core.ActionTap},
		{"enter", core.ActionConfirm},
		{"p", core.ActionPause},
		{"esc", core.ActionPause},
		{"q", core.ActionQuit},
		{"ctrl+c", core.ActionQuit},
		{"x", core.ActionNone},
	}

	for _, tc := range tests {
		if got := mapKey(keyMsg(tc.key)); got != tc.want {
			t.Errorf("mapKey(%q) = %v, want %v", tc.key, got, tc.want)
		}
	}
}

func TestWalkDelta(t *testing.T) {
	tests := []struct {
		action core.Action
		dx, dy float64
		ok     bool
	}{
		{core.ActionUp, 0, -1, true},
		{core.ActionDown, 0, 1, true},
		{core.ActionLeft, -1, 0, true},
		{core.ActionRight, 1, 0, true},
		{core.ActionTap, 0, 0, false},
		{core.ActionNone, 0, 0, false},
	}

	for _, tc := range tests {
		dx, dy, ok := walkDelta(tc.action)
		if dx != tc.dx || dy != tc.dy || ok != tc.ok {
			t.Errorf("walkDelta(%v) = (%v,%v,%v), want (%v,%v,%v)",
				tc.action, dx, dy, ok, tc.dx, tc.dy, tc.ok)
		}
	}
}
