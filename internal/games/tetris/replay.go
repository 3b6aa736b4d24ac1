package tetris

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Player re-runs a Recording tick by tick on a fresh game.
type Player struct {
	rec    Recording
	game   *Game
	cursor int
	frame  core.InputFrame
}

// NewPlayer prepares playback of rec. display controls the ghost and
// preview, which do not affect the outcome.
func NewPlayer(rec Recording, display config.DisplayConfig) *Player {
	g := &Game{}
	g.Configure(config.TetrisConfig{
		Board: config.BoardConfig{Width: rec.Width, Height: rec.Height},
		Gravity: config.GravityConfig{
			BaseMs:  rec.Gravity.BaseMs,
			StepMs:  rec.Gravity.StepMs,
			FloorMs: rec.Gravity.FloorMs,
		},
		Display: display,
	})
	g.Reset(core.RuntimeConfig{
		TickRate: rec.TickRate,
		Seed:     int64(rec.Seed),
	})
	return &Player{rec: rec, game: g}
}

// Game returns the game being driven, for rendering.
func (p *Player) Game() *Game {
	return p.game
}

// Recording returns the recording being played.
func (p *Player) Recording() Recording {
	return p.rec
}

// Progress returns the current tick and the total recorded ticks.
func (p *Player) Progress() (tick, total uint64) {
	return p.game.Tick(), p.rec.Ticks
}

// Step feeds the actions recorded for the next tick and advances the game.
func (p *Player) Step() core.StepResult {
	next := p.game.Tick() + 1
	p.frame.Clear()
	for p.cursor < len(p.rec.Events) && p.rec.Events[p.cursor].Tick <= next {
		p.frame.Set(p.rec.Events[p.cursor].Action)
		p.cursor++
	}
	return p.game.Step(p.frame)
}

// Done reports whether every recorded action has been applied and the
// recorded run length has been reached.
func (p *Player) Done() bool {
	if p.cursor < len(p.rec.Events) {
		return false
	}
	return p.game.Tick() >= p.rec.Ticks || p.game.State().GameOver
}

// Run steps until Done and returns the final state.
func (p *Player) Run() core.GameState {
	for !p.Done() {
		p.Step()
	}
	return p.game.State()
}

// Verify checks the finished playback against the recorded tallies.
func (p *Player) Verify() error {
	got := p.game.State()
	if got.Score != p.rec.Score || got.Lines != p.rec.Lines || got.Level != p.rec.Level {
		return fmt.Errorf("tetris: replay diverged: got score=%d lines=%d level=%d, recorded score=%d lines=%d level=%d",
			got.Score, got.Lines, got.Level, p.rec.Score, p.rec.Lines, p.rec.Level)
	}
	return nil
}
