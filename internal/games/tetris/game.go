// Package tetris adapts the pure falling-block engine to the arcade
// platform: it gates gravity by elapsed ticks, maps platform actions to
// engine commands in arrival order, records every run for replay and
// renders the playfield into a core.Screen.
package tetris

import (
	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-blocks/internal/registry"
)

// ID is the registry identifier of the game.
const ID = "tetris"

// Game implements registry.Game for the falling-block puzzle.
type Game struct {
	cfg     config.TetrisConfig
	gravity engine.Gravity

	state engine.State

	tick     uint64
	tickMs   int
	tickRate int
	dropAcc  int // milliseconds since the last gravity step

	record   bool
	rec      Recording
	previous *Recording // run ended by the latest restart
}

// New creates a game with the default configuration.
func New() *Game {
	g := &Game{record: true}
	g.Configure(config.DefaultTetrisConfig())
	return g
}

func init() {
	registry.Register(ID, func() registry.Game {
		return New()
	})
}

// Configure replaces the board and gravity settings. It takes effect on
// the next Reset.
func (g *Game) Configure(cfg config.TetrisConfig) {
	g.cfg = cfg
	g.gravity = engine.Gravity{
		BaseMs:  cfg.Gravity.BaseMs,
		StepMs:  cfg.Gravity.StepMs,
		FloorMs: cfg.Gravity.FloorMs,
	}
}

// SetRecording enables or disables input recording.
func (g *Game) SetRecording(on bool) {
	g.record = on
}

// ID returns the game identifier.
func (g *Game) ID() string { return ID }

// Title returns the display name.
func (g *Game) Title() string { return "Tetris" }

// Reset starts a fresh session seeded from cfg.Seed. The screen size is
// not needed: Render lays out against whatever buffer it is given.
func (g *Game) Reset(cfg core.RuntimeConfig) {
	g.tickRate = cfg.TickRate
	if g.tickRate <= 0 {
		g.tickRate = core.DefaultConfig().TickRate
	}
	g.tickMs = cfg.TickMillis()
	g.previous = nil
	g.start(engine.New(g.engineConfig(), uint64(cfg.Seed)))
}

// start installs s as the current session and rewinds the clock and the
// recording.
func (g *Game) start(s engine.State) {
	g.state = s
	g.tick = 0
	g.dropAcc = 0
	g.rec = Recording{
		Seed:     s.Seed(),
		Width:    g.cfg.Board.Width,
		Height:   g.cfg.Board.Height,
		TickRate: g.tickRate,
		Gravity:  g.gravity,
	}
}

func (g *Game) engineConfig() engine.Config {
	return engine.Config{Width: g.cfg.Board.Width, Height: g.cfg.Board.Height}
}

// commands maps platform actions to engine commands. Quit is handled by
// the platform and never reaches the engine.
var commands = map[core.Action]engine.Command{
	core.ActionLeft:     engine.CmdMoveLeft,
	core.ActionRight:    engine.CmdMoveRight,
	core.ActionDown:     engine.CmdSoftDrop,
	core.ActionRotate:   engine.CmdRotate,
	core.ActionHardDrop: engine.CmdHardDrop,
	core.ActionPause:    engine.CmdTogglePause,
	core.ActionRestart:  engine.CmdRestart,
}

// Step advances the game by one tick. Actions are applied in the order
// they arrived, then gravity runs if enough time has accumulated.
// A restart completes the current tick for the old run and then starts a
// new one; actions after it in the same frame are dropped.
func (g *Game) Step(in core.InputFrame) core.StepResult {
	g.tick++
	wasOver := g.state.IsGameOver()

	restart := false
	for _, a := range in.Actions {
		cmd, ok := commands[a]
		if !ok {
			continue
		}
		if cmd == engine.CmdRestart {
			restart = true
			break
		}
		if g.state.IsGameOver() {
			continue
		}
		g.recordAction(a)
		g.state = engine.Apply(g.state, cmd)
	}

	g.applyGravity()

	if !wasOver {
		g.syncTallies()
	}
	if restart {
		g.restart()
		return core.StepResult{State: g.State(), Restarted: true}
	}
	return core.StepResult{State: g.State()}
}

// applyGravity accumulates one tick of time and drops the piece one row
// once the level's interval has elapsed. Time does not pass while paused
// or after game over.
func (g *Game) applyGravity() {
	if g.state.Phase() != engine.PhaseActive {
		return
	}
	g.dropAcc += g.tickMs
	if g.dropAcc < g.gravity.Interval(g.state.Level()) {
		return
	}
	g.dropAcc = 0
	g.state = g.state.Gravity()
}

func (g *Game) restart() {
	finished := g.Recording()
	g.previous = &finished
	g.start(g.state.Restart())
}

// State returns the platform view of the session.
func (g *Game) State() core.GameState {
	return core.GameState{
		Score:    g.state.Score(),
		Lines:    g.state.Lines(),
		Level:    g.state.Level(),
		GameOver: g.state.IsGameOver(),
		Paused:   g.state.IsPaused(),
	}
}

// Engine returns the current engine state.
func (g *Game) Engine() engine.State {
	return g.state
}

// Tick returns the number of ticks since the session started.
func (g *Game) Tick() uint64 {
	return g.tick
}
