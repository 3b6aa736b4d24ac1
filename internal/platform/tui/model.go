package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/tetris"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// Recorder is implemented by games that record their runs for replay.
type Recorder interface {
	Recording() tetris.Recording
	TakePrevious() (tetris.Recording, bool)
}

// Model is the Bubble Tea model for playing a game.
type Model struct {
	game       registry.Game
	screen     *core.Screen
	store      *storage.Store
	logger     *log.Logger
	keys       *KeyMapper
	config     core.RuntimeConfig
	inputFrame core.InputFrame
	gameState  core.GameState
	quitting   bool
	saved      bool // current run already written to the journal
	lastSaved  int64
}

// NewModel creates a new Bubble Tea model for the given game.
// store may be nil, in which case nothing is recorded to disk.
func NewModel(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) Model {
	// Use time-based seed if not specified
	if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}
	if logger == nil {
		logger = log.New(io.Discard)
	}

	game.Reset(cfg)

	return Model{
		game:       game,
		screen:     core.NewScreen(cfg.ScreenW, cfg.ScreenH),
		store:      store,
		logger:     logger,
		keys:       NewKeyMapper(),
		config:     cfg,
		inputFrame: core.NewInputFrame(),
		gameState:  game.State(),
	}
}

// Init starts the tick loop.
func (m Model) Init() tea.Cmd {
	return tickCmd(m.config.TickRate)
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.config.ScreenW = msg.Width
		m.config.ScreenH = msg.Height
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick()
	}

	return m, nil
}

// handleKey queues the action for the next tick. Quit is handled here.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	if m.keys.MapKeyToFrame(msg, &m.inputFrame) {
		m.quitting = true
		if !m.saved {
			m.saveRecording(m.currentRecording())
		}
		return m, tea.Quit
	}
	return m, nil
}

// handleTick processes simulation ticks.
func (m Model) handleTick() (tea.Model, tea.Cmd) {
	result := m.game.Step(m.inputFrame)
	m.gameState = result.State
	m.inputFrame.Clear()

	if result.Restarted {
		if rec, ok := m.previousRecording(); ok && !m.saved {
			m.saveRecording(&rec)
		}
		m.saved = false
	}

	// Save the run once when it ends
	if m.gameState.GameOver && !m.saved {
		m.saveRecording(m.currentRecording())
		m.saved = true
	}

	return m, tickCmd(m.config.TickRate)
}

func (m Model) currentRecording() *tetris.Recording {
	r, ok := m.game.(Recorder)
	if !ok {
		return nil
	}
	rec := r.Recording()
	return &rec
}

func (m Model) previousRecording() (tetris.Recording, bool) {
	r, ok := m.game.(Recorder)
	if !ok {
		return tetris.Recording{}, false
	}
	return r.TakePrevious()
}

// saveRecording writes rec to the journal. Failures are logged and play
// continues. Runs without input are not worth keeping.
func (m *Model) saveRecording(rec *tetris.Recording) {
	if m.store == nil || rec == nil || rec.Empty() {
		return
	}
	id, err := m.store.SaveReplay(ReplayFromRecording(m.game.ID(), *rec))
	if err != nil {
		m.logger.Warn("could not save replay", "error", err)
		return
	}
	m.lastSaved = id
	m.logger.Info("replay saved", "id", id, "score", rec.Score, "lines", rec.Lines, "events", len(rec.Events))
}

// LastSaved returns the ID of the most recent replay written, or 0.
func (m Model) LastSaved() int64 {
	return m.lastSaved
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.game.Render(m.screen)

	home, err := os.UserHomeDir()
	if err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	dir := filepath.Join(home, ".blocks", "screenshots")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.game.ID(), timestamp))
	if err := os.WriteFile(path, []byte(m.screen.String()), 0o600); err != nil {
		m.logger.Warn("could not save screenshot", "error", err)
		return
	}
	m.logger.Info("screenshot saved", "path", path)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.game.Render(m.screen)
	return RenderScreen(m.screen)
}

// Run starts the Bubble Tea program with the given game and returns the
// ID of the last replay saved, or 0.
func Run(game registry.Game, store *storage.Store, logger *log.Logger, cfg core.RuntimeConfig) (int64, error) {
	model := NewModel(game, store, logger, cfg)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	final, err := p.Run()
	if err != nil {
		return 0, err
	}
	if m, ok := final.(Model); ok {
		return m.LastSaved(), nil
	}
	return 0, nil
}
