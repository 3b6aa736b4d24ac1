package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/core"
	"github.com/vovakirdan/tui-blocks/internal/games/tetris"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the main menu",
	Long: `Start in interactive menu mode.

Pick Play to start a run, Replays to browse recorded runs.
After a run ends, you return to the menu.

Controls:
  Up/Down/j/k   - Navigate menu
  Left/Right    - Change difficulty
  Enter/Space   - Select
  Q             - Quit

Examples:
  blocks menu
  blocks menu --fps 30
  blocks menu --db ./blocks.db`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	menuCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Initial difficulty preset")
}

func runMenu(cmd *cobra.Command, _ []string) error {
	baseCfg, err := config.LoadTetris(flagConfig)
	if err != nil {
		return err
	}
	difficulty, err := config.ParsePreset(flagDifficulty)
	if err != nil {
		return err
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("could not open replay database", "error", err)
		fmt.Fprintf(cmd.ErrOrStderr(), "Warning: replays will not be saved: %v\n", err)
		store = nil
	} else {
		defer store.Close()
	}

	width, height := terminalSize()
	runtime := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	for {
		result, err := tui.RunMenu(runtime, difficulty)
		if err != nil {
			return fmt.Errorf("running menu: %w", err)
		}
		runtime = result.Config
		difficulty = result.Difficulty

		switch result.Choice {
		case tui.MenuPlay:
			gameCfg := baseCfg
			config.ApplyPreset(&gameCfg, difficulty)
			game, err := newGame(tetris.ID, gameCfg)
			if err != nil {
				return err
			}
			if flagSeed == 0 {
				runtime.Seed = time.Now().UnixNano()
			}
			logger.Info("starting game", "difficulty", difficulty, "seed", runtime.Seed)
			if _, err := tui.Run(game, store, logger, runtime); err != nil {
				return fmt.Errorf("running game: %w", err)
			}

		case tui.MenuReplays:
			if store == nil {
				continue
			}
			id, err := tui.RunReplayBrowser(store, tetris.ID, runtime.ScreenW, runtime.ScreenH)
			if err != nil {
				return fmt.Errorf("running replay browser: %w", err)
			}
			if id != 0 {
				if err := watchReplay(store, id, baseCfg.Display); err != nil {
					logger.Error("cannot play replay", "id", id, "error", err)
				}
			}

		default:
			return nil
		}
	}
}
