package tetris

import "github.com/vovakirdan/tui-blocks/internal/games/tetris/engine"

// Snapshot captures the complete game state for determinism testing and replay.
type Snapshot struct {
	Tick     uint64
	Phase    engine.Phase
	Score    int
	Lines    int
	Level    int
	Pieces   int
	Active   engine.Kind
	ActiveX  int
	ActiveY  int
	Rotation int
	Next     engine.Kind
	Board    string // locked cells, one letter per occupied cell
}

// Snapshot returns the current game snapshot for determinism verification.
func (g *Game) Snapshot() Snapshot {
	s := g.state
	snap := Snapshot{
		Tick:   g.tick,
		Phase:  s.Phase(),
		Score:  s.Score(),
		Lines:  s.Lines(),
		Level:  s.Level(),
		Pieces: s.Pieces(),
		Next:   s.Next(),
		Board:  s.Board().String(),
	}
	if p, ok := s.Active(); ok {
		snap.Active = p.Kind
		snap.ActiveX = p.X
		snap.ActiveY = p.Y
		snap.Rotation = p.Rotation
	}
	return snap
}
