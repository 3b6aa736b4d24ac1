package tetris

import (
	"math/rand/v2"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

func newGame(t *testing.T, seed int64) *Game {
	t.Helper()
	g := New()
	g.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 24, TickRate: 60, Seed: seed})
	return g
}

func frame(actions ...core.Action) core.InputFrame {
	f := core.NewInputFrame()
	for _, a := range actions {
		f.Set(a)
	}
	return f
}

// play drives g with a scripted pseudo-random player until game over or
// maxTicks, pausing once along the way.
func play(g *Game, seed uint64, maxTicks int) {
	rng := rand.New(rand.NewPCG(seed, seed))
	moves := []core.Action{core.ActionLeft, core.ActionRight, core.ActionRotate, core.ActionDown}
	f := core.NewInputFrame()
	for i := 1; i <= maxTicks && !g.State().GameOver; i++ {
		f.Clear()
		switch {
		case i == 100 || i == 160:
			f.Set(core.ActionPause)
		case i%45 == 0:
			f.Set(core.ActionHardDrop)
		case i%4 == 0:
			f.Set(moves[rng.IntN(len(moves))])
			if rng.IntN(3) == 0 {
				f.Set(moves[rng.IntN(len(moves))])
			}
		}
		g.Step(f)
	}
}

func TestRegistered(t *testing.T) {
	require.True(t, registry.Exists(ID))

	g, err := registry.Create(ID)
	require.NoError(t, err)
	assert.Equal(t, "tetris", g.ID())
	assert.Equal(t, "Tetris", g.Title())
}

func TestDeterminism(t *testing.T) {
	g1 := newGame(t, 12345)
	g2 := newGame(t, 12345)

	play(g1, 7, 3000)
	play(g2, 7, 3000)

	assert.Equal(t, g1.Snapshot(), g2.Snapshot())
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := newGame(t, 1)
	b := newGame(t, 2)

	var kindsA, kindsB []engine.Kind
	for range 20 {
		kindsA = append(kindsA, a.Snapshot().Active)
		kindsB = append(kindsB, b.Snapshot().Active)
		a.Step(frame(core.ActionHardDrop))
		b.Step(frame(core.ActionHardDrop))
	}
	assert.NotEqual(t, kindsA, kindsB)
}

func TestGravityTiming(t *testing.T) {
	g := newGame(t, 3)
	require.Equal(t, 16, g.tickMs)

	// 62 ticks of 16ms is 992ms: not yet a full second.
	for range 62 {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, 0, g.Snapshot().ActiveY)

	g.Step(core.NewInputFrame())
	assert.Equal(t, 1, g.Snapshot().ActiveY, "gravity fires once 1000ms have elapsed")

	for range 62 {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, 1, g.Snapshot().ActiveY, "accumulator restarts after a drop")
	g.Step(core.NewInputFrame())
	assert.Equal(t, 2, g.Snapshot().ActiveY)
}

func TestGravityFollowsConfig(t *testing.T) {
	g := New()
	cfg := config.DefaultTetrisConfig()
	cfg.Gravity = config.GravityConfig{BaseMs: 100, StepMs: 0, FloorMs: 100}
	g.Configure(cfg)
	g.Reset(core.RuntimeConfig{TickRate: 10, Seed: 1})

	g.Step(core.NewInputFrame())
	assert.Equal(t, 1, g.Snapshot().ActiveY, "100ms ticks against a 100ms interval drop every tick")
}

func TestPauseStopsGravity(t *testing.T) {
	g := newGame(t, 4)
	g.Step(frame(core.ActionPause))
	require.True(t, g.State().Paused)

	for range 500 {
		g.Step(core.NewInputFrame())
	}
	assert.Equal(t, 0, g.Snapshot().ActiveY)
	assert.Equal(t, engine.PhasePaused, g.Snapshot().Phase)

	g.Step(frame(core.ActionPause))
	assert.False(t, g.State().Paused)
}

func TestInputAppliedInArrivalOrder(t *testing.T) {
	leftThenDrop := newGame(t, 5)
	dropThenLeft := newGame(t, 5)

	leftThenDrop.Step(frame(core.ActionLeft, core.ActionHardDrop))
	dropThenLeft.Step(frame(core.ActionHardDrop, core.ActionLeft))

	assert.NotEqual(t, leftThenDrop.Snapshot().Board, dropThenLeft.Snapshot().Board,
		"the first piece must land in a different column")

	twice := newGame(t, 5)
	start := twice.Snapshot().ActiveX
	twice.Step(frame(core.ActionLeft, core.ActionLeft))
	assert.Equal(t, start-2, twice.Snapshot().ActiveX, "repeated actions in one tick both apply")
}

func TestQuitDoesNotReachEngine(t *testing.T) {
	g := newGame(t, 6)
	before := g.Snapshot()

	g.Step(frame(core.ActionQuit, core.ActionNone))

	after := g.Snapshot()
	after.Tick = before.Tick
	assert.Equal(t, before, after)
	assert.Empty(t, g.Recording().Events)
}

func TestGameOverIgnoresInputUntilRestart(t *testing.T) {
	g := newGame(t, 8)
	for range 200 {
		if g.State().GameOver {
			break
		}
		g.Step(frame(core.ActionHardDrop))
	}
	require.True(t, g.State().GameOver)

	over := g.Snapshot()
	events := len(g.Recording().Events)
	g.Step(frame(core.ActionLeft, core.ActionPause, core.ActionHardDrop))
	after := g.Snapshot()
	after.Tick = over.Tick
	assert.Equal(t, over, after)
	assert.Len(t, g.Recording().Events, events, "nothing is recorded after game over")

	res := g.Step(frame(core.ActionRestart))
	assert.True(t, res.Restarted)
	assert.False(t, res.State.GameOver)
	assert.Equal(t, 0, res.State.Score)
	assert.Equal(t, uint64(0), g.Tick())
}

func TestRestartHandsOverRecording(t *testing.T) {
	g := newGame(t, 9)
	g.Step(frame(core.ActionLeft))
	g.Step(frame(core.ActionHardDrop))

	_, ok := g.TakePrevious()
	require.False(t, ok)

	res := g.Step(frame(core.ActionRotate, core.ActionRestart, core.ActionLeft))
	require.True(t, res.Restarted)

	prev, ok := g.TakePrevious()
	require.True(t, ok)
	assert.Equal(t, uint64(9), prev.Seed)
	assert.Equal(t, []Event{
		{Tick: 1, Action: core.ActionLeft},
		{Tick: 2, Action: core.ActionHardDrop},
		{Tick: 3, Action: core.ActionRotate},
	}, prev.Events)
	assert.Equal(t, uint64(3), prev.Ticks)

	_, ok = g.TakePrevious()
	assert.False(t, ok, "previous run is handed over once")

	cur := g.Recording()
	assert.True(t, cur.Empty(), "actions after restart in the same frame are dropped")
	assert.Equal(t, g.Engine().Seed(), cur.Seed)
	assert.NotEqual(t, prev.Seed, cur.Seed)

	// The finished run replays to the same tallies.
	p := NewPlayer(prev, config.DefaultTetrisConfig().Display)
	p.Run()
	assert.NoError(t, p.Verify())
}

func TestRecordingCanBeDisabled(t *testing.T) {
	g := newGame(t, 10)
	g.SetRecording(false)
	g.Step(frame(core.ActionLeft, core.ActionRotate))
	assert.True(t, g.Recording().Empty())
}

func TestReplayReproducesRun(t *testing.T) {
	g := newGame(t, 2024)
	play(g, 99, 20000)

	rec := g.Recording()
	require.NotEmpty(t, rec.Events)
	require.True(t, rec.GameOver, "scripted play should top out")
	assert.Equal(t, g.State().Score, rec.Score)
	assert.Equal(t, g.State().Lines, rec.Lines)

	p := NewPlayer(rec, config.DefaultTetrisConfig().Display)
	final := p.Run()

	require.NoError(t, p.Verify())
	assert.True(t, final.GameOver)
	assert.Equal(t, g.Snapshot().Board, p.Game().Snapshot().Board)
	assert.Equal(t, g.Snapshot().Pieces, p.Game().Snapshot().Pieces)

	tick, total := p.Progress()
	assert.Equal(t, total, tick)
}

func TestReplayOfUnfinishedRun(t *testing.T) {
	g := newGame(t, 77)
	play(g, 3, 400)
	require.False(t, g.State().GameOver)

	rec := g.Recording()
	assert.Equal(t, uint64(400), rec.Ticks)

	p := NewPlayer(rec, config.DisplayConfig{})
	p.Run()
	require.NoError(t, p.Verify())
	assert.Equal(t, g.Snapshot(), p.Game().Snapshot())
}

func TestVerifyDetectsDivergence(t *testing.T) {
	g := newGame(t, 11)
	play(g, 5, 600)

	rec := g.Recording()
	rec.Score += 40

	p := NewPlayer(rec, config.DisplayConfig{})
	p.Run()
	assert.Error(t, p.Verify())
}

func TestRender(t *testing.T) {
	g := newGame(t, 12)
	screen := core.NewScreen(80, 24)

	g.Render(screen)
	out := screen.String()

	assert.Contains(t, out, "Tetris")
	assert.Contains(t, out, "Score  0")
	assert.Contains(t, out, "Next")
	assert.Contains(t, out, "[]")
	assert.Contains(t, out, "::", "ghost piece is drawn")
	assert.Equal(t, 2, strings.Count(out, "┌"), "well and preview boxes")

	g.Step(frame(core.ActionPause))
	g.Render(screen)
	assert.Contains(t, screen.String(), "Paused")
}

func TestRenderWithoutGhostAndPreview(t *testing.T) {
	g := New()
	cfg := config.DefaultTetrisConfig()
	cfg.Display = config.DisplayConfig{}
	g.Configure(cfg)
	g.Reset(core.RuntimeConfig{TickRate: 60, Seed: 12})

	screen := core.NewScreen(80, 24)
	g.Render(screen)
	out := screen.String()

	assert.NotContains(t, out, "::")
	assert.NotContains(t, out, "Next")
}

func TestRenderColorsBlocks(t *testing.T) {
	g := newGame(t, 13)
	screen := core.NewScreen(80, 24)
	g.Render(screen)

	want := engine.ColorOf(g.Snapshot().Active)
	found := false
	for y := range screen.Height() {
		for x := range screen.Width() {
			c := screen.GetCell(x, y)
			if c.Rune == '[' && c.Color == want {
				found = true
			}
		}
	}
	assert.True(t, found, "active piece drawn in its catalog color")
}

func TestRenderGameOverAndTooSmall(t *testing.T) {
	g := newGame(t, 14)
	for range 200 {
		if g.State().GameOver {
			break
		}
		g.Step(frame(core.ActionHardDrop))
	}
	screen := core.NewScreen(80, 24)
	g.Render(screen)
	assert.Contains(t, screen.String(), "Game Over")

	small := core.NewScreen(20, 10)
	g.Render(small)
	assert.Contains(t, small.String(), "Window too small")
}
