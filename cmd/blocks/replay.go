package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/games/tetris"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var flagVerify bool

var replayCmd = &cobra.Command{
	Use:   "replay <id>",
	Short: "Watch a recorded run",
	Long: `Plays back a recorded run by its ID. Use 'blocks replays' to find IDs.

Playback controls:
  Space/P     - Pause
  +/-         - Change speed
  E/End       - Skip to the end
  Q/Esc       - Quit

With --verify the run is replayed without drawing and its final score is
checked against the stored one.

Examples:
  blocks replay 12
  blocks replay 12 --verify`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagVerify, "verify", false, "Replay headless and check the result")
}

func runReplay(cmd *cobra.Command, args []string) error {
	id, err := strconv.ParseInt(args[0], 10, 64)
	if err != nil || id <= 0 {
		return fmt.Errorf("invalid replay id %q", args[0])
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open replay database: %w", err)
	}
	defer store.Close()

	if flagVerify {
		r, err := store.LoadReplay(id)
		if isNotFound(err) {
			return fmt.Errorf("replay #%d does not exist", id)
		}
		if err != nil {
			return err
		}
		return verifyReplay(cmd.OutOrStdout(), r)
	}

	err = watchReplay(store, id, displayConfig())
	if isNotFound(err) {
		return fmt.Errorf("replay #%d does not exist", id)
	}
	return err
}

// verifyReplay runs a stored replay to the end and reports whether it
// reproduced the recorded result.
func verifyReplay(out io.Writer, r *storage.Replay) error {
	rec, err := tui.RecordingFromReplay(r)
	if err != nil {
		return err
	}

	player := tetris.NewPlayer(rec, displayConfig())
	final := player.Run()
	if err := player.Verify(); err != nil {
		return err
	}

	fmt.Fprintf(out, "Replay #%d verified: score %d, lines %d, level %d, %d ticks.\n",
		r.ID, final.Score, final.Lines, final.Level, rec.Ticks)
	return nil
}
