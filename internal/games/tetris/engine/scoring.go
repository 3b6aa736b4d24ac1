package engine

import "fmt"

// LinesPerLevel is how many cleared lines raise the level by one.
const LinesPerLevel = 10

// lineScores is the base award for clearing 0..4 rows with one piece.
var lineScores = [...]int{0, 40, 100, 300, 1200}

// ScoreDelta returns the points for clearing lines rows at once on level.
// A piece is at most four rows tall, so lines outside 0..4 means the board
// model is broken; that panics rather than being clamped.
func ScoreDelta(lines, level int) int {
	if lines < 0 || lines >= len(lineScores) {
		panic(fmt.Sprintf("engine: impossible line clear count %d", lines))
	}
	return lineScores[lines] * (level + 1)
}

// LevelFor returns the level reached after totalLines cleared lines.
func LevelFor(totalLines int) int {
	return totalLines / LinesPerLevel
}

// Gravity describes how the automatic drop interval shrinks with level.
type Gravity struct {
	BaseMs  int // interval at level 0
	StepMs  int // reduction per level
	FloorMs int // lower bound
}

// DefaultGravity is 1000ms at level 0, 50ms faster per level, never below 50ms.
var DefaultGravity = Gravity{BaseMs: 1000, StepMs: 50, FloorMs: 50}

// Interval returns the drop interval in milliseconds for level.
func (g Gravity) Interval(level int) int {
	return max(g.FloorMs, g.BaseMs-level*g.StepMs)
}

// DropIntervalMs returns the default drop interval for level.
func DropIntervalMs(level int) int {
	return DefaultGravity.Interval(level)
}
