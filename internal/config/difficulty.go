package config

import "fmt"

// DifficultyPreset represents a named gravity curve.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed" // no speed-up with level
)

// Presets lists the accepted preset names in menu order.
var Presets = []DifficultyPreset{DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed}

// ParsePreset resolves a preset name. The empty string means normal.
func ParsePreset(name string) (DifficultyPreset, error) {
	if name == "" {
		return DifficultyNormal, nil
	}
	for _, p := range Presets {
		if string(p) == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("config: unknown difficulty %q", name)
}

// ApplyPreset replaces the gravity curve of cfg with the preset's curve.
// Normal keeps whatever the loaded file configured; fixed keeps the base
// interval and disables the per-level speed-up.
func ApplyPreset(cfg *TetrisConfig, preset DifficultyPreset) {
	switch preset {
	case DifficultyEasy:
		cfg.Gravity = GravityConfig{BaseMs: 1200, StepMs: 40, FloorMs: 100}
	case DifficultyHard:
		cfg.Gravity = GravityConfig{BaseMs: 700, StepMs: 60, FloorMs: 50}
	case DifficultyFixed:
		cfg.Gravity.StepMs = 0
		cfg.Gravity.FloorMs = min(cfg.Gravity.FloorMs, cfg.Gravity.BaseMs)
	}
}
