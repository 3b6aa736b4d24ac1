// Package config provides YAML-based configuration loading and
// difficulty presets for the blocks game.
package config

import (
	"errors"
	"fmt"
)

// MinBoardSide is the smallest accepted board width or height.
const MinBoardSide = 4

// TetrisConfig contains all configuration for the falling-block game.
type TetrisConfig struct {
	Board   BoardConfig   `yaml:"board"`
	Gravity GravityConfig `yaml:"gravity"`
	Display DisplayConfig `yaml:"display"`
}

// BoardConfig fixes the well dimensions.
type BoardConfig struct {
	Width  int `yaml:"width"`
	Height int `yaml:"height"`
}

// GravityConfig is the drop interval curve:
// interval(level) = max(floor_ms, base_ms - level*step_ms).
type GravityConfig struct {
	BaseMs  int `yaml:"base_ms"`
	StepMs  int `yaml:"step_ms"`
	FloorMs int `yaml:"floor_ms"`
}

// DisplayConfig toggles optional parts of the playfield.
type DisplayConfig struct {
	Ghost   bool `yaml:"ghost"`   // landing preview of the active piece
	Preview bool `yaml:"preview"` // next piece box
}

// Validate reports the first problem with cfg, or nil.
func (c TetrisConfig) Validate() error {
	var errs []error
	if c.Board.Width < MinBoardSide {
		errs = append(errs, fmt.Errorf("board.width %d is below %d", c.Board.Width, MinBoardSide))
	}
	if c.Board.Height < MinBoardSide {
		errs = append(errs, fmt.Errorf("board.height %d is below %d", c.Board.Height, MinBoardSide))
	}
	if c.Gravity.BaseMs <= 0 {
		errs = append(errs, fmt.Errorf("gravity.base_ms must be positive, got %d", c.Gravity.BaseMs))
	}
	if c.Gravity.StepMs < 0 {
		errs = append(errs, fmt.Errorf("gravity.step_ms must not be negative, got %d", c.Gravity.StepMs))
	}
	if c.Gravity.FloorMs <= 0 {
		errs = append(errs, fmt.Errorf("gravity.floor_ms must be positive, got %d", c.Gravity.FloorMs))
	}
	if len(errs) > 0 {
		return fmt.Errorf("config: %w", errors.Join(errs...))
	}
	return nil
}
