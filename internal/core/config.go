package core

import "time"

// RuntimeConfig contains configuration passed to games at initialization.
// Games use this to adapt to screen size and for deterministic simulation.
type RuntimeConfig struct {
	ScreenW  int   // Screen width in characters
	ScreenH  int   // Screen height in characters
	TickRate int   // Simulation ticks per second (default 60)
	Seed     int64 // RNG seed for deterministic gameplay
}

// DefaultConfig returns a RuntimeConfig with sensible defaults.
func DefaultConfig() RuntimeConfig {
	return RuntimeConfig{
		ScreenW:  80,
		ScreenH:  24,
		TickRate: 60,
		Seed:     0, // 0 means use current time in platform layer
	}
}

// rate returns the tick rate, falling back to the default for
// non-positive values.
func (c RuntimeConfig) rate() int {
	if c.TickRate <= 0 {
		return DefaultConfig().TickRate
	}
	return c.TickRate
}

// TickMillis returns the game time one tick accounts for, in whole
// milliseconds: 60 ticks per second gives 16ms.
func (c RuntimeConfig) TickMillis() int {
	return max(1, 1000/c.rate())
}

// TickInterval is the wall-clock time between ticks.
func (c RuntimeConfig) TickInterval() time.Duration {
	return time.Second / time.Duration(c.rate())
}

// GameState represents the current state of a game.
// Returned by Game.State() to communicate status to the platform.
type GameState struct {
	Score    int  // Current score
	Lines    int  // Total lines cleared
	Level    int  // Current level
	GameOver bool // Whether the game has ended
	Paused   bool // Whether the game is paused
}

// StepResult is returned by Game.Step() after each simulation tick.
type StepResult struct {
	State GameState
	// Restarted is true when the tick started a new run (restart command).
	Restarted bool
}
