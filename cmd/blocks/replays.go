package main

import (
	"errors"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-blocks/internal/config"
	"github.com/vovakirdan/tui-blocks/internal/games/tetris"
	"github.com/vovakirdan/tui-blocks/internal/platform/tui"
	"github.com/vovakirdan/tui-blocks/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var replaysCmd = &cobra.Command{
	Use:   "replays",
	Short: "Browse recorded runs",
	Long: `Opens the replay browser. Select a run to watch it, press d to delete it.

With --plain the runs are printed as text instead.

Examples:
  blocks replays
  blocks replays --plain --limit 50`,
	Args: cobra.NoArgs,
	RunE: runReplays,
}

func init() {
	replaysCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print a text listing instead of the browser")
	replaysCmd.Flags().IntVar(&flagLimit, "limit", 20, "Maximum number of runs to print with --plain")
}

func runReplays(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("cannot open replay database: %w", err)
	}
	defer store.Close()

	if flagPlain {
		replays, err := store.ListReplays(tetris.ID, flagLimit)
		if err != nil {
			return err
		}
		writeReplayList(cmd.OutOrStdout(), replays)
		return nil
	}

	logger, closeLog, err := newLogger(true)
	if err != nil {
		return err
	}
	defer closeLog()

	display := displayConfig()
	for {
		width, height := terminalSize()
		id, err := tui.RunReplayBrowser(store, tetris.ID, width, height)
		if err != nil {
			return fmt.Errorf("running replay browser: %w", err)
		}
		if id == 0 {
			return nil
		}

		if err := watchReplay(store, id, display); err != nil {
			// Back to the browser; one broken replay should not end the session.
			logger.Error("cannot play replay", "id", id, "error", err)
			fmt.Fprintf(cmd.ErrOrStderr(), "Replay #%d: %v\n", id, err)
		}
	}
}

// watchReplay loads a stored replay and plays it back full screen.
func watchReplay(store *storage.Store, id int64, display config.DisplayConfig) error {
	r, err := store.LoadReplay(id)
	if err != nil {
		return err
	}
	rec, err := tui.RecordingFromReplay(r)
	if err != nil {
		return err
	}
	width, height := terminalSize()
	return tui.RunPlayback(id, rec, display, width, height)
}

// displayConfig returns the display options of the local configuration,
// falling back to the defaults when it cannot be loaded.
func displayConfig() config.DisplayConfig {
	cfg, err := config.LoadTetris("")
	if err != nil {
		return config.DefaultTetrisConfig().Display
	}
	return cfg.Display
}

// writeReplayList prints replays as an aligned text table.
func writeReplayList(out io.Writer, replays []storage.Replay) {
	if len(replays) == 0 {
		fmt.Fprintln(out, "No replays recorded yet. Run 'blocks play' to start one.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tDATE\tSCORE\tLINES\tLEVEL\tTIME\tEND\tEVENTS")
	for _, r := range replays {
		row := tui.ReplayRow(r)
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%d\n",
			row[0], row[1], row[2], row[3], row[4], row[5], row[6], r.EventCount)
	}
	tw.Flush()

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Run 'blocks replay <id>' to watch a run.")
}

// isNotFound reports whether err means the replay does not exist.
func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
