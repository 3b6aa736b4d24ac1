package tui

import (
	"fmt"

	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/tetris"
	"github.com/vovakirdan/tui-blocks/internal/games/tetris/engine"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

// ReplayFromRecording converts a game recording into its stored form.
// Actions are stored by name.
func ReplayFromRecording(gameID string, rec tetris.Recording) storage.Replay {
	events := make([]storage.Event, len(rec.Events))
	for i, ev := range rec.Events {
		events[i] = storage.Event{Tick: ev.Tick, Action: ev.Action.String()}
	}
	return storage.Replay{
		GameID:         gameID,
		Seed:           rec.Seed,
		Width:          rec.Width,
		Height:         rec.Height,
		TickRate:       rec.TickRate,
		GravityBaseMs:  rec.Gravity.BaseMs,
		GravityStepMs:  rec.Gravity.StepMs,
		GravityFloorMs: rec.Gravity.FloorMs,
		Score:          rec.Score,
		Lines:          rec.Lines,
		Level:          rec.Level,
		Ticks:          rec.Ticks,
		GameOver:       rec.GameOver,
		Events:         events,
		EventCount:     len(events),
	}
}

// RecordingFromReplay is the inverse of ReplayFromRecording. It fails on
// action names it does not know.
func RecordingFromReplay(r *storage.Replay) (tetris.Recording, error) {
	events := make([]tetris.Event, len(r.Events))
	for i, ev := range r.Events {
		a, ok := core.ParseAction(ev.Action)
		if !ok || a == core.ActionNone {
			return tetris.Recording{}, fmt.Errorf("replay %d: event %d: unknown action %q", r.ID, i, ev.Action)
		}
		events[i] = tetris.Event{Tick: ev.Tick, Action: a}
	}
	return tetris.Recording{
		Seed:     r.Seed,
		Width:    r.Width,
		Height:   r.Height,
		TickRate: r.TickRate,
		Gravity: engine.Gravity{
			BaseMs:  r.GravityBaseMs,
			StepMs:  r.GravityStepMs,
			FloorMs: r.GravityFloorMs,
		},
		Events:   events,
		Score:    r.Score,
		Lines:    r.Lines,
		Level:    r.Level,
		Ticks:    r.Ticks,
		GameOver: r.GameOver,
	}, nil
}
