package engine

import (
	"math/rand/v2"
)

// Phase is the session state machine position.
type Phase int

const (
	PhaseActive Phase = iota
	PhasePaused
	PhaseGameOver
)

// String returns the phase name.
func (p Phase) String() string {
	switch p {
	case PhaseActive:
		return "active"
	case PhasePaused:
		return "paused"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Config fixes the board size of a session.
type Config struct {
	Width  int
	Height int
}

// DefaultConfig is the standard 10x20 well.
func DefaultConfig() Config {
	return Config{Width: 10, Height: 20}
}

// pcgIncrement is mixed into the second PCG word so seed 0 is usable.
const pcgIncrement = 0x9e3779b97f4a7c15

// State is one complete snapshot of a game. It is a value: every method
// returns a new State and leaves the receiver unchanged, so a renderer can
// hold on to a State while the driver moves on.
//
// The random source is carried inside the State, which makes the sequence
// of pieces a function of the seed and the commands applied.
type State struct {
	board     Board
	active    Piece
	hasActive bool
	next      Kind

	score  int
	lines  int
	level  int
	pieces int // locked pieces

	gameOver bool
	paused   bool

	seed uint64
	rng  rand.PCG
}

// New starts a session on an empty board. The first piece is spawned
// immediately and the following one is queued.
func New(cfg Config, seed uint64) State {
	s := State{
		board: NewBoard(cfg.Width, cfg.Height),
		seed:  seed,
		rng:   *rand.NewPCG(seed, seed^pcgIncrement),
	}

	var first, next Kind
	first, s = s.draw()
	next, s = s.draw()
	s.next = next
	s.active = Spawn(first, cfg.Width)
	s.hasActive = true
	return s
}

// draw picks the next kind uniformly and advances the random source.
func (s State) draw() (Kind, State) {
	src := s.rng
	k := Kinds[rand.New(&src).IntN(len(Kinds))]
	s.rng = src
	return k, s
}

// Board returns the locked cells, without the active piece.
func (s State) Board() Board { return s.board }

// Active returns the falling piece. ok is false when there is none,
// which only happens after game over.
func (s State) Active() (p Piece, ok bool) { return s.active, s.hasActive }

// Next returns the queued kind shown in the preview.
func (s State) Next() Kind { return s.next }

// Score returns the accumulated score.
func (s State) Score() int { return s.score }

// Lines returns the total number of cleared lines.
func (s State) Lines() int { return s.lines }

// Level returns the current level.
func (s State) Level() int { return s.level }

// Pieces returns how many pieces have locked this session.
func (s State) Pieces() int { return s.pieces }

// IsGameOver reports whether the session has ended.
func (s State) IsGameOver() bool { return s.gameOver }

// IsPaused reports whether the session is paused.
func (s State) IsPaused() bool { return s.paused }

// Seed returns the seed this session was started with.
func (s State) Seed() uint64 { return s.seed }

// Config returns the board dimensions of the session.
func (s State) Config() Config {
	return Config{Width: s.board.Width(), Height: s.board.Height()}
}

// Phase returns the state machine position.
func (s State) Phase() Phase {
	switch {
	case s.gameOver:
		return PhaseGameOver
	case s.paused:
		return PhasePaused
	default:
		return PhaseActive
	}
}

// accepting reports whether piece commands are honoured.
func (s State) accepting() bool {
	return s.hasActive && !s.gameOver && !s.paused
}

// Move shifts the active piece by (dx, dy). An illegal downward move locks
// the piece where it is; any other illegal move leaves the state unchanged.
func (s State) Move(dx, dy int) State {
	if !s.accepting() {
		return s
	}
	moved := s.active.Translate(dx, dy)
	if moved.Fits(s.board) {
		s.active = moved
		return s
	}
	if dy > 0 {
		return s.lock()
	}
	return s
}

// Rotate turns the active piece clockwise if the result fits in place.
// There are no wall kicks and rotation never locks.
func (s State) Rotate() State {
	if !s.accepting() {
		return s
	}
	turned := s.active.Rotated()
	if !turned.Fits(s.board) {
		return s
	}
	s.active = turned
	return s
}

// Gravity is one automatic step down.
func (s State) Gravity() State {
	return s.Move(0, 1)
}

// DropDistance returns how many rows the active piece can fall before it
// would collide. Zero when there is no active piece.
func (s State) DropDistance() int {
	if !s.hasActive {
		return 0
	}
	d := 0
	for s.active.Translate(0, d+1).Fits(s.board) {
		d++
	}
	return d
}

// HardDrop drops the active piece to the lowest legal row and locks it.
func (s State) HardDrop() State {
	if !s.accepting() {
		return s
	}
	s.active = s.active.Translate(0, s.DropDistance())
	return s.lock()
}

// TogglePause switches between active and paused. Ignored after game over.
func (s State) TogglePause() State {
	if s.gameOver {
		return s
	}
	s.paused = !s.paused
	return s
}

// Restart begins a new session on a board of the same size. The new seed
// comes from this session's random source, so restarts replay
// deterministically.
func (s State) Restart() State {
	src := s.rng
	seed := rand.New(&src).Uint64()
	return New(s.Config(), seed)
}

// lock stamps the active piece, clears rows, updates the tallies and
// promotes the queued piece. If the promoted piece does not fit at its
// spawn position the session is over.
func (s State) lock() State {
	board := s.board.Stamp(s.active.Shape, s.active.X, s.active.Y, s.active.Kind)
	board, cleared := board.ClearFullRows()

	s.board = board
	s.score += ScoreDelta(cleared, s.level)
	s.lines += cleared
	s.level = LevelFor(s.lines)
	s.pieces++

	spawned := Spawn(s.next, board.Width())
	var next Kind
	next, s = s.draw()
	s.next = next

	if !spawned.Fits(board) {
		s.active = Piece{}
		s.hasActive = false
		s.gameOver = true
		return s
	}
	s.active = spawned
	return s
}

// Ghost returns the active piece moved to where a hard drop would land.
func (s State) Ghost() (Piece, bool) {
	if !s.hasActive {
		return Piece{}, false
	}
	return s.active.Translate(0, s.DropDistance()), true
}

// Display returns the board with the active piece drawn in. It is for
// rendering only and is never fed back into the session.
func (s State) Display() Board {
	if !s.hasActive {
		return s.board
	}
	return s.board.Stamp(s.active.Shape, s.active.X, s.active.Y, s.active.Kind)
}
