package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// placed returns s with the given board and active piece.
func placed(s State, b Board, p Piece) State {
	s.board = b
	s.active = p
	s.hasActive = true
	return s
}

func verticalI(x, y int) Piece {
	return Spawn(KindI, 10).Rotated().Translate(x-3, y)
}

func TestNewState(t *testing.T) {
	s := New(DefaultConfig(), 7)

	assert.Equal(t, 0, s.Score())
	assert.Equal(t, 0, s.Lines())
	assert.Equal(t, 0, s.Level())
	assert.Equal(t, PhaseActive, s.Phase())
	assert.True(t, s.Next().Valid())
	assert.True(t, NewBoard(10, 20).Equal(s.Board()))

	p, ok := s.Active()
	require.True(t, ok)
	assert.Equal(t, 0, p.Y)
	assert.True(t, p.Fits(s.Board()))
	assert.Equal(t, uint64(7), s.Seed())
}

func TestNewStateIsDeterministic(t *testing.T) {
	a := New(DefaultConfig(), 12345)
	b := New(DefaultConfig(), 12345)
	assert.Equal(t, a, b)

	for range 30 {
		a = a.HardDrop()
		b = b.HardDrop()
	}
	assert.Equal(t, a, b)
}

func TestSpawnCentersOPiece(t *testing.T) {
	p := Spawn(KindO, 10)
	assert.Equal(t, 4, p.X)
	assert.Equal(t, 0, p.Y)
	assert.Equal(t, 0, p.Rotation)

	b := NewBoard(10, 20)
	require.True(t, b.IsLegal(p.Shape, p.X, p.Y))

	stamped := b.Stamp(p.Shape, p.X, p.Y, p.Kind)
	for _, cell := range [][2]int{{4, 0}, {5, 0}, {4, 1}, {5, 1}} {
		assert.True(t, stamped.Filled(cell[0], cell[1]), "cell %v", cell)
	}

	assert.Equal(t, 3, Spawn(KindI, 10).X)
	assert.Equal(t, 3, Spawn(KindT, 10).X)
}

func TestMoveSideways(t *testing.T) {
	s := placed(New(DefaultConfig(), 1), NewBoard(10, 20), Spawn(KindO, 10))

	right := s.Move(1, 0)
	p, _ := right.Active()
	assert.Equal(t, 5, p.X)

	orig, _ := s.Active()
	assert.Equal(t, 4, orig.X, "Move must not modify the receiver")

	atWall := placed(s, s.Board(), Spawn(KindO, 10).Translate(-4, 0))
	blocked := atWall.Move(-1, 0)
	assert.Equal(t, atWall, blocked, "illegal sideways move is a no-op")
}

func TestMoveDownLocksWhenBlocked(t *testing.T) {
	s := placed(New(DefaultConfig(), 1), NewBoard(10, 20), Spawn(KindO, 10).Translate(0, 18))

	locked := s.Move(0, 1)

	assert.Equal(t, 1, locked.Pieces())
	assert.True(t, locked.Board().Filled(4, 18))
	assert.True(t, locked.Board().Filled(5, 19))
	p, ok := locked.Active()
	require.True(t, ok)
	assert.Equal(t, s.Next(), p.Kind, "queued piece is promoted")
	assert.Equal(t, 0, p.Y)
}

func TestRotate(t *testing.T) {
	s := placed(New(DefaultConfig(), 1), NewBoard(10, 20), Spawn(KindT, 10).Translate(0, 5))

	turned := s.Rotate()
	p, _ := turned.Active()
	assert.Equal(t, 1, p.Rotation)
	assert.Equal(t, 2, p.Shape.Width())
	assert.Equal(t, 3, p.Shape.Height())

	// A horizontal I on the floor cannot stand up: no kick, no lock.
	floor := placed(s, NewBoard(10, 20), Spawn(KindI, 10).Translate(0, 19))
	assert.Equal(t, floor, floor.Rotate())
}

func TestPauseBlocksPieceCommands(t *testing.T) {
	s := New(DefaultConfig(), 3)
	paused := s.TogglePause()

	require.Equal(t, PhasePaused, paused.Phase())
	assert.Equal(t, paused, paused.Move(1, 0))
	assert.Equal(t, paused, paused.Move(0, 1))
	assert.Equal(t, paused, paused.Rotate())
	assert.Equal(t, paused, paused.HardDrop())
	assert.Equal(t, paused, paused.Gravity())

	resumed := paused.TogglePause()
	assert.Equal(t, PhaseActive, resumed.Phase())
	assert.Equal(t, s, resumed)
}

func TestHardDropMatchesRepeatedSoftDrops(t *testing.T) {
	b := well(t, 10, 20,
		"....ZZ....",
		"JJJ..ZZ..I",
	)
	s := placed(New(DefaultConfig(), 9), b, Spawn(KindL, 10))

	hard := s.HardDrop()

	soft := s
	for soft.Pieces() == s.Pieces() {
		soft = soft.Move(0, 1)
	}

	assert.Equal(t, hard, soft)
	assert.Equal(t, 1, hard.Pieces())
}

func TestDropDistanceAndGhost(t *testing.T) {
	s := placed(New(DefaultConfig(), 1), NewBoard(10, 20), Spawn(KindO, 10))
	assert.Equal(t, 18, s.DropDistance())

	ghost, ok := s.Ghost()
	require.True(t, ok)
	assert.Equal(t, 18, ghost.Y)
	assert.Equal(t, 4, ghost.X)
}

func TestSingleLineClearScores(t *testing.T) {
	b := well(t, 10, 20, ".IIIIIIIII")
	s := placed(New(DefaultConfig(), 1), b, verticalI(0, 0))

	after := s.HardDrop()

	assert.Equal(t, 40, after.Score())
	assert.Equal(t, 1, after.Lines())
	assert.Equal(t, 0, after.Level())
	assert.False(t, after.Board().Filled(1, 19), "row 19 was cleared")
	assert.True(t, after.Board().Filled(0, 19))
}

func TestFourLinesAtLevelTwo(t *testing.T) {
	b := well(t, 10, 20,
		".IIIIIIIII",
		".IIIIIIIII",
		".IIIIIIIII",
		".IIIIIIIII",
	)
	s := placed(New(DefaultConfig(), 1), b, verticalI(0, 0))
	s.lines = 20
	s.level = 2

	after := s.HardDrop()

	assert.Equal(t, 3600, after.Score())
	assert.Equal(t, 24, after.Lines())
	assert.Equal(t, 2, after.Level())
	assert.True(t, NewBoard(10, 20).Equal(after.Board()))
}

func TestLevelIncreasesWithLines(t *testing.T) {
	b := well(t, 10, 20, ".IIIIIIIII")
	s := placed(New(DefaultConfig(), 1), b, verticalI(0, 0))
	s.lines = 9

	after := s.HardDrop()

	assert.Equal(t, 10, after.Lines())
	assert.Equal(t, 1, after.Level())
	assert.Equal(t, 40, after.Score(), "points use the level before the clear")
}

func TestGameOverAndRestart(t *testing.T) {
	s := New(DefaultConfig(), 2024)
	for i := 0; i < 200 && !s.IsGameOver(); i++ {
		s = s.HardDrop()
	}
	require.True(t, s.IsGameOver(), "stacking in the middle must end the game")
	assert.Equal(t, PhaseGameOver, s.Phase())

	_, ok := s.Active()
	assert.False(t, ok, "no active piece after game over")

	assert.Equal(t, s, s.Move(-1, 0))
	assert.Equal(t, s, s.Move(0, 1))
	assert.Equal(t, s, s.Rotate())
	assert.Equal(t, s, s.HardDrop())
	assert.Equal(t, s, s.TogglePause())
	assert.Equal(t, s, s.Gravity())
	assert.True(t, s.Display().Equal(s.Board()), "nothing is drawn over a finished board")

	fresh := s.Restart()
	assert.False(t, fresh.IsGameOver())
	assert.Equal(t, 0, fresh.Score())
	assert.Equal(t, 0, fresh.Lines())
	assert.Equal(t, 0, fresh.Level())
	assert.Equal(t, 0, fresh.Pieces())
	assert.True(t, NewBoard(10, 20).Equal(fresh.Board()))
	_, ok = fresh.Active()
	assert.True(t, ok)

	assert.Equal(t, fresh.Seed(), s.Restart().Seed(), "restart seed is derived deterministically")
}

func TestDisplayDoesNotTouchBoard(t *testing.T) {
	s := placed(New(DefaultConfig(), 1), NewBoard(10, 20), Spawn(KindO, 10))

	display := s.Display()

	assert.True(t, display.Filled(4, 0))
	assert.False(t, s.Board().Filled(4, 0))
}

func TestApply(t *testing.T) {
	s := placed(New(DefaultConfig(), 5), NewBoard(10, 20), Spawn(KindT, 10).Translate(0, 3))

	tests := []struct {
		cmd  Command
		want State
	}{
		{CmdNone, s},
		{CmdMoveLeft, s.Move(-1, 0)},
		{CmdMoveRight, s.Move(1, 0)},
		{CmdSoftDrop, s.Move(0, 1)},
		{CmdRotate, s.Rotate()},
		{CmdHardDrop, s.HardDrop()},
		{CmdTogglePause, s.TogglePause()},
		{CmdRestart, s.Restart()},
	}

	for _, tc := range tests {
		t.Run(tc.cmd.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, Apply(s, tc.cmd))
		})
	}
}
