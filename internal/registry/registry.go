// Package registry lets games announce themselves from init so the CLI
// and menus can look them up by ID without importing each one directly.
package registry

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/vovakirdan/tui-blocks/internal/core"
)

// Game is what the terminal harness drives. Implementations hold pure
// game logic: the harness owns timing, key mapping and drawing to the
// terminal.
type Game interface {
	// ID is the stable identifier used on the command line and as the
	// game_id of stored replays (e.g. "tetris").
	ID() string

	// Title is the display name.
	Title() string

	// Reset starts a new session from the runtime config. Restarts
	// requested through input are handled inside Step.
	Reset(cfg core.RuntimeConfig)

	// Step advances one fixed tick, applying the frame's actions in order.
	Step(in core.InputFrame) core.StepResult

	// Render draws into dst, which the caller has sized to the terminal.
	Render(dst *core.Screen)

	// State returns the current tallies and phase flags.
	State() core.GameState
}

// GameInfo describes a registered game.
type GameInfo struct {
	ID    string
	Title string
}

// Factory creates a fresh game instance.
type Factory func() Game

type entry struct {
	factory Factory
	title   string
}

var (
	mu      sync.RWMutex
	entries = make(map[string]entry)
)

// Register adds a game factory under id. The title is read from one
// throwaway instance. Registering the same id twice panics.
func Register(id string, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: game %q already registered", id))
	}
	entries[id] = entry{factory: f, title: f().Title()}
}

// List returns all registered games sorted by ID.
func List() []GameInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]GameInfo, 0, len(entries))
	for id, e := range entries {
		result = append(result, GameInfo{ID: id, Title: e.title})
	}
	slices.SortFunc(result, func(a, b GameInfo) int {
		return cmp.Compare(a.ID, b.ID)
	})
	return result
}

// Create instantiates the game registered under id.
func Create(id string) (Game, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown game %q", id)
	}
	return e.factory(), nil
}

// Exists reports whether id is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}
