package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/tetris"
)

// maxPlaybackSpeed is the largest number of game ticks per frame.
const maxPlaybackSpeed = 16

// statusLines is the room kept below the playfield for status and help.
const statusLines = 2

// PlaybackKeyMap defines the key bindings of the replay player.
type PlaybackKeyMap struct {
	Pause  key.Binding
	Faster key.Binding
	Slower key.Binding
	Skip   key.Binding
	Quit   key.Binding
}

// ShortHelp returns key bindings for the short help view.
func (k PlaybackKeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Pause, k.Faster, k.Slower, k.Skip, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k PlaybackKeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{k.ShortHelp()}
}

// DefaultPlaybackKeyMap returns default key bindings.
func DefaultPlaybackKeyMap() PlaybackKeyMap {
	return PlaybackKeyMap{
		Pause: key.NewBinding(
			key.WithKeys(" ", "p"),
			key.WithHelp("space", "pause"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "=", "right"),
			key.WithHelp("+", "faster"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-", "left"),
			key.WithHelp("-", "slower"),
		),
		Skip: key.NewBinding(
			key.WithKeys("e", "end"),
			key.WithHelp("e", "skip to end"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "esc", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// PlaybackModel shows a recorded run in real time.
type PlaybackModel struct {
	player   *tetris.Player
	replayID int64
	screen   *core.Screen
	keys     PlaybackKeyMap
	help     help.Model
	speed    int
	paused   bool
	quitting bool
	finished bool
	err      error // result of Verify once finished
}

// NewPlaybackModel creates a player model for a stored replay.
func NewPlaybackModel(replayID int64, rec tetris.Recording, display config.DisplayConfig, width, height int) PlaybackModel {
	return PlaybackModel{
		player:   tetris.NewPlayer(rec, display),
		replayID: replayID,
		screen:   core.NewScreen(width, max(1, height-statusLines)),
		keys:     DefaultPlaybackKeyMap(),
		help:     help.New(),
		speed:    1,
	}
}

// Init starts the tick loop at the recorded rate.
func (m PlaybackModel) Init() tea.Cmd {
	return tickCmd(m.player.Recording().TickRate)
}

// Update handles messages for the player.
func (m PlaybackModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			m.quitting = true
			return m, tea.Quit
		case key.Matches(msg, m.keys.Pause):
			m.paused = !m.paused
		case key.Matches(msg, m.keys.Faster):
			m.speed = min(maxPlaybackSpeed, m.speed*2)
		case key.Matches(msg, m.keys.Slower):
			m.speed = max(1, m.speed/2)
		case key.Matches(msg, m.keys.Skip):
			m.player.Run()
			m.finish()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, max(1, msg.Height-statusLines))
		m.help.Width = msg.Width
		return m, nil

	case TickMsg:
		if !m.paused {
			for i := 0; i < m.speed && !m.player.Done(); i++ {
				m.player.Step()
			}
			m.finish()
		}
		return m, tickCmd(m.player.Recording().TickRate)
	}

	return m, nil
}

// finish verifies the outcome the first time playback reaches the end.
func (m *PlaybackModel) finish() {
	if m.finished || !m.player.Done() {
		return
	}
	m.finished = true
	m.err = m.player.Verify()
}

// Done reports whether playback has reached the end of the recording.
func (m PlaybackModel) Done() bool {
	return m.player.Done()
}

// Err returns the verification error of a finished playback, if any.
func (m PlaybackModel) Err() error {
	return m.err
}

// View renders the playfield, a status line and help.
func (m PlaybackModel) View() string {
	if m.quitting {
		return ""
	}

	m.player.Game().Render(m.screen)

	var b strings.Builder
	b.WriteString(RenderScreen(m.screen))
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	helpStyle := lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
	b.WriteString(helpStyle.Render(m.help.View(m.keys)))
	return b.String()
}

func (m PlaybackModel) statusLine() string {
	tick, total := m.player.Progress()
	rate := max(1, m.player.Recording().TickRate)
	status := fmt.Sprintf("Replay #%d  %s / %s  x%d",
		m.replayID, clock(tick, rate), clock(total, rate), m.speed)

	style := lipgloss.NewStyle().Foreground(lipgloss.Color("229"))
	switch {
	case m.finished && m.err != nil:
		status += "  finished, " + m.err.Error()
		style = style.Foreground(lipgloss.Color("9"))
	case m.finished:
		status += "  finished, result verified"
		style = style.Foreground(lipgloss.Color("10"))
	case m.paused:
		status += "  paused"
	}
	return style.Render(status)
}

// clock formats a tick count as m:ss at the given rate.
func clock(ticks uint64, rate int) string {
	secs := ticks / uint64(rate)
	return fmt.Sprintf("%d:%02d", secs/60, secs%60)
}

// RunPlayback plays a replay until the user quits. It returns the
// verification error if playback finished and did not match.
func RunPlayback(replayID int64, rec tetris.Recording, display config.DisplayConfig, width, height int) error {
	model := NewPlaybackModel(replayID, rec, display, width, height)

	p := tea.NewProgram(model, tea.WithAltScreen())
	final, err := p.Run()
	if err != nil {
		return err
	}
	if m, ok := final.(PlaybackModel); ok {
		return m.Err()
	}
	return nil
}
