package tui

import (
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-cafe/internal/cafe"
	"github.com/vovakirdan/tui-cafe/internal/core"
	"github.com/vovakirdan/tui-cafe/internal/storage"
)

// hudHeight is the number of screen rows reserved above the café floor.
const hudHeight = 2

// uiMode is the model's top-level display mode.
type uiMode int

const (
	modeNameEntry uiMode = iota
	modePlaying
	modeDialog
)

// dialog is a modal between-level prompt.
type dialog struct {
	title string
	lines []string
	fatal bool // Game over: confirm quits instead of continuing
	retry bool // Level failed: confirm replays the level
}

// Model is the Bubble Tea model running one café play session.
type Model struct {
	engine *cafe.Engine
	ses    *cafe.Session
	store  *storage.Store
	logger *log.Logger

	tun    cafe.Tuning
	cfg    core.RuntimeConfig
	grid   core.Grid
	screen *core.Screen

	mode     uiMode
	nameIn   textinput.Model
	dlg      dialog
	quitting bool
}

// NewModel creates the play-session model. When cfg.Character is empty the
// model starts in name entry; otherwise it resumes that character's save.
func NewModel(store *storage.Store, tun cafe.Tuning, cfg core.RuntimeConfig, logger *log.Logger) Model {
	if logger == nil {
		logger = log.New(io.Discard)
	}
	ti := textinput.New()
	ti.Placeholder = "barista name"
	ti.CharLimit = 24
	ti.Focus()

	m := Model{
		store:  store,
		logger: logger,
		tun:    tun,
		cfg:    cfg,
		screen: core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		nameIn: ti,
		mode:   modeNameEntry,
	}
	m.grid = fitGrid(tun, cfg.ScreenW, cfg.ScreenH)
	if cfg.Character != "" {
		m.startSession(cfg.Character)
	}
	return m
}

// fitGrid maps the logical play grid onto the available screen area.
func fitGrid(tun cafe.Tuning, screenW, screenH int) core.Grid {
	cellW := float64(screenW) / float64(tun.GridCols)
	cellH := float64(screenH-hudHeight) / float64(tun.GridRows)
	if cellW < 1 {
		cellW = 1
	}
	if cellH < 1 {
		cellH = 1
	}
	return core.NewGrid(tun.GridCols, tun.GridRows, cellW, cellH, 0, 0)
}

// startSession builds the session and engine for a character, restoring a
// saved game when one exists.
func (m *Model) startSession(character string) {
	ses := cafe.NewSession(character)
	if m.store != nil {
		if snap, err := m.store.LoadGame(character); err != nil {
			m.logger.Warn("could not load saved game", "character", character, "error", err)
		} else if snap != nil {
			ses.Restore(*snap)
		}
	}
	if m.cfg.Level > 0 {
		ses.SetLevel(m.cfg.Level)
	}
	m.ses = ses
	m.engine = cafe.NewEngine(ses, m.tun, m.cfg.Seed, m.logger)
	m.engine.Start()
	m.mode = modePlaying
}

// Init starts the render frame loop.
func (m Model) Init() tea.Cmd {
	return frameCmd(m.cfg.FPS)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)
	case tea.WindowSizeMsg:
		m.cfg.ScreenW = msg.Width
		m.cfg.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		m.grid = fitGrid(m.tun, msg.Width, msg.Height)
		return m, nil
	case FrameMsg:
		return m.handleFrame()
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if m.mode == modeNameEntry {
		switch msg.String() {
		case "ctrl+c", "esc":
			m.quitting = true
			return m, tea.Quit
		case "enter":
			name := m.nameIn.Value()
			if name != "" {
				m.startSession(name)
			}
			return m, nil
		}
		var cmd tea.Cmd
		m.nameIn, cmd = m.nameIn.Update(msg)
		return m, cmd
	}

	action := mapKey(msg)
	switch action {
	case core.ActionQuit:
		m.saveGame()
		m.quitting = true
		if m.engine != nil {
			m.engine.Stop()
		}
		return m, tea.Quit

	case core.ActionPause:
		if m.mode == modePlaying {
			m.engine.Pause(!m.engine.Paused())
		}
		return m, nil

	case core.ActionConfirm:
		if m.mode == modeDialog {
			return m.closeDialog()
		}
		return m, nil

	case core.ActionTap:
		if m.mode == modePlaying {
			snap := m.engine.Snapshot()
			m.engine.Send(cafe.TapMsg{GX: snap.ActorX, GY: snap.ActorY})
		}
		return m, nil
	}

	if dx, dy, ok := walkDelta(action); ok && m.mode == modePlaying {
		snap := m.engine.Snapshot()
		gx := core.ClampF(snap.ActorX+dx, 0, float64(m.grid.Cols)-1)
		gy := core.ClampF(snap.ActorY+dy, 0, float64(m.grid.Rows)-1)
		m.engine.Send(cafe.TapMsg{GX: gx, GY: gy})
	}
	return m, nil
}

// handleFrame drains engine events and schedules the next frame.
func (m Model) handleFrame() (tea.Model, tea.Cmd) {
	if m.engine != nil {
		m.drainEvents()
	}
	return m, frameCmd(m.cfg.FPS)
}

// drainEvents consumes pending engine notifications without blocking.
func (m *Model) drainEvents() {
	for {
		select {
		case ev := <-m.engine.Events():
			m.handleEvent(ev)
		default:
			return
		}
	}
}

func (m *Model) handleEvent(ev cafe.Event) {
	switch ev := ev.(type) {
	case cafe.LevelSummaryEvent:
		m.recordResult(ev)
		m.dlg = dialog{
			title: "Level complete!",
			lines: []string{
				fmt.Sprintf("Earned: %d points, $%d", ev.EarnedPoints, ev.EarnedMoney),
				fmt.Sprintf("Bonus: %d points, $%d", ev.BonusPoints, ev.BonusMoney),
				fmt.Sprintf("Total: %d points, $%d", ev.TotalPoints, ev.TotalMoney),
				"Press Enter for the next shift",
			},
		}
		m.mode = modeDialog

	case cafe.LevelFailedEvent:
		m.dlg = dialog{
			title: "Shift failed",
			lines: []string{
				fmt.Sprintf("Served %d of %d required customers", ev.Achieved, ev.Required),
				"Press Enter to retry",
			},
			retry: true,
		}
		m.mode = modeDialog

	case cafe.LevelEndedEvent:
		m.saveGame()

	case cafe.GameOverEvent:
		m.saveGame()
		m.dlg = dialog{
			title: "Closing time — you finished the campaign!",
			lines: []string{"Press Enter to exit"},
			fatal: true,
		}
		m.mode = modeDialog

	case cafe.SetPausedEvent, cafe.AnnounceEvent, cafe.ClearAnnouncementEvent:
		// Announcements render from the snapshot; pause is engine-side.

	case cafe.PlayLevelMusicEvent, cafe.PlayShortEffectEvent:
		// No sound collaborator attached.
	}
}

func (m Model) closeDialog() (tea.Model, tea.Cmd) {
	if m.dlg.fatal {
		m.quitting = true
		m.engine.Stop()
		return m, tea.Quit
	}
	if m.dlg.retry {
		m.engine.Send(cafe.LoadLevelMsg{Level: m.ses.Level()})
	} else {
		m.engine.Send(cafe.NextLevelMsg{})
	}
	m.engine.Send(cafe.DialogClosedMsg{})
	m.mode = modePlaying
	return m, nil
}

// saveGame persists the current session, if a store is attached.
func (m *Model) saveGame() {
	if m.store == nil || m.ses == nil {
		return
	}
	if err := m.store.SaveGame(m.ses.Snapshot(), ""); err != nil {
		m.logger.Warn("could not save game", "error", err)
	}
}

// recordResult appends the level outcome to the history table.
func (m *Model) recordResult(ev cafe.LevelSummaryEvent) {
	m.saveGame()
	if m.store == nil || m.ses == nil {
		return
	}
	snap := m.engine.Snapshot()
	_, err := m.store.RecordLevelResult(storage.LevelResult{
		Character: m.ses.Character(),
		Level:     ev.Level,
		Points:    ev.EarnedPoints,
		Money:     ev.EarnedMoney,
		Served:    snap.Served,
		Ignored:   snap.Ignored,
	})
	if err != nil {
		m.logger.Warn("could not record level result", "error", err)
	}
}

// View renders the current frame.
func (m Model) View() string {
	if m.quitting {
		return ""
	}
	switch m.mode {
	case modeNameEntry:
		return "\n  Who's behind the counter today?\n\n  " + m.nameIn.View() + "\n\n  (Enter to start, Esc to quit)\n"
	case modeDialog:
		var s string
		s = "\n  " + m.dlg.title + "\n\n"
		for _, line := range m.dlg.lines {
			s += "  " + line + "\n"
		}
		return s
	default:
		drawSnapshot(m.engine.Snapshot(), m.grid, m.screen)
		return RenderScreen(m.screen)
	}
}

// Run starts a play session and blocks until the player quits.
func Run(store *storage.Store, tun cafe.Tuning, cfg core.RuntimeConfig, logger *log.Logger) error {
	model := NewModel(store, tun, cfg, logger)
	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithOutput(os.Stdout))
	_, err := p.Run()
	return err
}
