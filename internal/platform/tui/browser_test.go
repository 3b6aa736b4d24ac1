package tui

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/tetris"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// recordRun plays a short run and returns its recording.
func recordRun(seed int64, drops int) tetris.Recording {
	g := tetris.New()
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: seed})
	for range drops {
		f := core.NewInputFrame()
		f.Set(core.ActionHardDrop)
		g.Step(f)
	}
	return g.Recording()
}

func seedReplays(t *testing.T, store *storage.Store, n int) []int64 {
	t.Helper()
	ids := make([]int64, 0, n)
	for i := range n {
		id, err := store.SaveReplay(ReplayFromRecording(tetris.ID, recordRun(int64(i+1), 3)))
		if err != nil {
			t.Fatalf("SaveReplay() failed: %v", err)
		}
		ids = append(ids, id)
	}
	return ids
}

func updateBrowser(t *testing.T, m BrowserModel, msg tea.Msg) BrowserModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(BrowserModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestBrowserEmpty(t *testing.T) {
	m := NewBrowserModel(openStore(t), tetris.ID, 100, 30)
	view := m.View()
	if !strings.Contains(view, "No replays recorded yet") {
		t.Errorf("empty browser view:\n%s", view)
	}
	if !strings.Contains(view, "no runs yet") {
		t.Error("stats panel should show in wide layout")
	}

	m = updateBrowser(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	if m.Selected() != 0 {
		t.Error("nothing to select in an empty browser")
	}
}

func TestBrowserListsAndSelects(t *testing.T) {
	store := openStore(t)
	ids := seedReplays(t, store, 3)

	m := NewBrowserModel(store, tetris.ID, 100, 30)
	if len(m.replays) != 3 {
		t.Fatalf("loaded %d replays, want 3", len(m.replays))
	}
	view := m.View()
	if !strings.Contains(view, "REPLAYS") || !strings.Contains(view, "Runs       3") {
		t.Errorf("unexpected view:\n%s", view)
	}

	m = updateBrowser(t, m, tea.KeyMsg{Type: tea.KeyDown})
	m = updateBrowser(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	// Newest first: the second row is the second-newest replay.
	if got, want := m.Selected(), ids[1]; got != want {
		t.Errorf("Selected() = %d, want %d", got, want)
	}
}

func TestBrowserDeletes(t *testing.T) {
	store := openStore(t)
	ids := seedReplays(t, store, 2)

	m := NewBrowserModel(store, tetris.ID, 60, 20)
	if m.showStats {
		t.Error("stats panel should be hidden in narrow layout")
	}
	m = updateBrowser(t, m, runeKey('d'))

	if len(m.replays) != 1 {
		t.Fatalf("expected 1 replay after delete, got %d", len(m.replays))
	}
	if m.replays[0].ID != ids[0] {
		t.Errorf("wrong replay deleted: remaining %d", m.replays[0].ID)
	}
	if m.status != "" {
		t.Errorf("unexpected status %q", m.status)
	}
}

func TestBrowserQuit(t *testing.T) {
	m := NewBrowserModel(nil, tetris.ID, 80, 24)
	m = updateBrowser(t, m, runeKey('q'))
	if !m.quitting || m.View() != "" {
		t.Error("q should quit the browser")
	}
}

func TestReplayRow(t *testing.T) {
	row := ReplayRow(storage.Replay{ID: 7, Score: 1200, Lines: 4, Level: 0, Ticks: 3900, TickRate: 60, GameOver: true})
	if row[0] != "7" || row[2] != "1200" || row[5] != "1:05" || row[6] != "over" {
		t.Errorf("unexpected row %v", row)
	}
}

func updatePlayback(t *testing.T, m PlaybackModel, msg tea.Msg) PlaybackModel {
	t.Helper()
	next, _ := m.Update(msg)
	model, ok := next.(PlaybackModel)
	if !ok {
		t.Fatalf("Update returned %T", next)
	}
	return model
}

func TestPlaybackRunsToVerifiedEnd(t *testing.T) {
	rec := recordRun(9, 5)
	m := NewPlaybackModel(1, rec, config.DefaultTetrisConfig().Display, 80, 26)

	m = updatePlayback(t, m, TickMsg{})
	if m.Done() {
		t.Fatal("one tick should not finish the replay")
	}

	m = updatePlayback(t, m, runeKey('+'))
	if m.speed != 2 {
		t.Errorf("speed = %d, want 2", m.speed)
	}

	m = updatePlayback(t, m, runeKey('e'))
	if !m.Done() {
		t.Fatal("skip should finish the replay")
	}
	if err := m.Err(); err != nil {
		t.Errorf("replay did not verify: %v", err)
	}
	if !strings.Contains(m.View(), "result verified") {
		t.Error("status line should report verification")
	}
}

func TestPlaybackPauseAndSpeedBounds(t *testing.T) {
	rec := recordRun(10, 2)
	m := NewPlaybackModel(2, rec, config.DisplayConfig{}, 80, 26)

	m = updatePlayback(t, m, tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}})
	if !m.paused {
		t.Fatal("space should pause")
	}
	m = updatePlayback(t, m, TickMsg{})
	if tick, _ := m.player.Progress(); tick != 0 {
		t.Errorf("paused playback advanced to tick %d", tick)
	}

	m = updatePlayback(t, m, runeKey('-'))
	if m.speed != 1 {
		t.Errorf("speed = %d, want floor of 1", m.speed)
	}
	for range 10 {
		m = updatePlayback(t, m, runeKey('+'))
	}
	if m.speed != maxPlaybackSpeed {
		t.Errorf("speed = %d, want cap %d", m.speed, maxPlaybackSpeed)
	}
}
