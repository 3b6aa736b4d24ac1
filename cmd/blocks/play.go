package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/tetris"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/registry"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagNoRecord   bool
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing. The game defaults to tetris.

Controls:
  Left/Right, A/D  - Move
  Down, S          - Soft drop
  Up, W            - Rotate clockwise
  Space            - Hard drop
  P                - Pause
  R                - Restart
  Q/Ctrl+C         - Quit
  Ctrl+S           - Save a text screenshot

Difficulty options:
  easy   - Slow start, gentle speed-up
  normal - The configured gravity curve
  hard   - Fast start, steep speed-up
  fixed  - No speed-up with level

Examples:
  blocks play
  blocks play --difficulty hard
  blocks play --seed 42 --no-record
  blocks play --config ./my-tetris.yaml`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	playCmd.Flags().BoolVar(&flagNoRecord, "no-record", false, "Do not save a replay of this session")
}

// loadConfig resolves the game configuration from --config and --difficulty.
func loadConfig() (config.TetrisConfig, error) {
	cfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return cfg, err
	}
	preset, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return cfg, err
	}
	config.ApplyPreset(&cfg, preset)
	return cfg, cfg.Validate()
}

func runPlay(cmd *cobra.Command, args []string) error {
	gameID := tetris.ID
	if len(args) == 1 {
		gameID = args[0]
	}
	if !registry.Exists(gameID) {
		return fmt.Errorf("unknown game %q, run 'blocks list' to see available games", gameID)
	}

	gameCfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	game, err := newGame(gameID, gameCfg)
	if err != nil {
		return err
	}

	var store *storage.Store
	if !flagNoRecord {
		store, err = storage.Open(flagDBPath)
		if err != nil {
			// Continue without storage - game still works
			logger.Warn("could not open replay database", "error", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "Warning: replays will not be saved: %v\n", err)
			store = nil
		} else {
			defer store.Close()
		}
	}

	width, height := terminalSize()
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	logger.Info("starting game", "game", gameID, "seed", runtime.Seed, "fps", runtime.TickRate)
	lastID, err := tui.Run(game, store, logger, runtime)
	if err != nil {
		return fmt.Errorf("running game: %w", err)
	}

	if lastID != 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "Replay saved as #%d. Watch it with 'blocks replay %d'.\n", lastID, lastID)
	}
	return nil
}

// newGame creates a registered game and applies the game configuration
// when the game supports it.
func newGame(gameID string, cfg config.TetrisConfig) (registry.Game, error) {
	game, err := registry.Create(gameID)
	if err != nil {
		return nil, err
	}
	if tg, ok := game.(*tetris.Game); ok {
		tg.Configure(cfg)
		tg.SetRecording(!flagNoRecord)
	}
	return game, nil
}
