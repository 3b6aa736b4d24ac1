package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScoreDelta(t *testing.T) {
	tests := []struct {
		lines, level, want int
	}{
		{0, 0, 0},
		{1, 0, 40},
		{2, 0, 100},
		{3, 0, 300},
		{4, 0, 1200},
		{1, 1, 80},
		{4, 2, 3600},
		{0, 9, 0},
	}

	for _, tc := range tests {
		assert.Equal(t, tc.want, ScoreDelta(tc.lines, tc.level), "ScoreDelta(%d, %d)", tc.lines, tc.level)
	}
}

func TestScoreDeltaRejectsImpossibleClears(t *testing.T) {
	assert.Panics(t, func() { ScoreDelta(5, 0) })
	assert.Panics(t, func() { ScoreDelta(-1, 0) })
}

func TestLevelFor(t *testing.T) {
	assert.Equal(t, 0, LevelFor(0))
	assert.Equal(t, 0, LevelFor(9))
	assert.Equal(t, 1, LevelFor(10))
	assert.Equal(t, 12, LevelFor(129))
}

func TestDropIntervalMs(t *testing.T) {
	assert.Equal(t, 1000, DropIntervalMs(0))
	assert.Equal(t, 950, DropIntervalMs(1))
	assert.Equal(t, 100, DropIntervalMs(18))
	assert.Equal(t, 50, DropIntervalMs(19))
	assert.Equal(t, 50, DropIntervalMs(40))

	prev := DropIntervalMs(0)
	for level := 1; level < 30; level++ {
		cur := DropIntervalMs(level)
		assert.LessOrEqual(t, cur, prev, "interval must not grow with level")
		prev = cur
	}
}

func TestGravityInterval(t *testing.T) {
	g := Gravity{BaseMs: 800, StepMs: 100, FloorMs: 200}
	assert.Equal(t, 800, g.Interval(0))
	assert.Equal(t, 300, g.Interval(5))
	assert.Equal(t, 200, g.Interval(7))
}
