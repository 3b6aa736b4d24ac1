package tetris

import (
	"slices"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/tetris/engine"
)

// Event is an action applied on a given tick.
type Event struct {
	Tick   uint64
	Action core.Action
}

// Recording is everything needed to play a run again: the starting
// conditions plus every action in arrival order. The tallies are what the
// run ended with and are checked on playback.
type Recording struct {
	Seed     uint64
	Width    int
	Height   int
	TickRate int
	Gravity  engine.Gravity

	Events []Event

	Score    int
	Lines    int
	Level    int
	Ticks    uint64
	GameOver bool
}

// Empty reports whether the run received no input.
func (r Recording) Empty() bool {
	return len(r.Events) == 0
}

func (g *Game) recordAction(a core.Action) {
	if !g.record {
		return
	}
	g.rec.Events = append(g.rec.Events, Event{Tick: g.tick, Action: a})
}

func (g *Game) syncTallies() {
	g.rec.Score = g.state.Score()
	g.rec.Lines = g.state.Lines()
	g.rec.Level = g.state.Level()
	g.rec.Ticks = g.tick
	g.rec.GameOver = g.state.IsGameOver()
}

// Recording returns a copy of the current run's recording.
func (g *Game) Recording() Recording {
	rec := g.rec
	rec.Events = slices.Clone(g.rec.Events)
	return rec
}

// TakePrevious returns the run ended by the most recent restart, once.
func (g *Game) TakePrevious() (Recording, bool) {
	if g.previous == nil {
		return Recording{}, false
	}
	rec := *g.previous
	g.previous = nil
	return rec, true
}
