package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/tui-collide/internal/platform/tui"
	"github.com/vovakirdan/tui-collide/internal/registry"
	"github.com/vovakirdan/tui-collide/internal/storage"
)

var (
	flagPlain bool
	flagLimit int
)

var runsCmd = &cobra.Command{
	Use:   "runs [scene]",
	Short: "Show recorded runs",
	Long: `Browse the runs recorded when a simulation scene was left.

Without --plain an interactive browser is shown; Tab switches scene.
With --plain the most recent runs are printed, optionally for one scene.

Examples:
  collide runs
  collide runs --plain
  collide runs swarm --plain --limit 5`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRuns,
}

func init() {
	runsCmd.Flags().BoolVar(&flagPlain, "plain", false, "Print runs instead of opening the browser")
	runsCmd.Flags().IntVar(&flagLimit, "limit", 10, "Number of runs to print with --plain")
}

func runRuns(_ *cobra.Command, args []string) error {
	sceneID := ""
	if len(args) == 1 {
		sceneID = args[0]
		if !registry.Exists(sceneID) {
			return fmt.Errorf("unknown scene %q, run 'collide list' to see registered scenes", sceneID)
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if !flagPlain {
		width, height := 80, 24
		if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
			width, height = w, h
		}
		return tui.RunRuns(store, width, height)
	}

	runs, err := store.RecentRuns(sceneID, flagLimit)
	if err != nil {
		return fmt.Errorf("retrieving runs: %w", err)
	}
	if len(runs) == 0 {
		fmt.Println("No runs recorded yet.")
		return nil
	}

	fmt.Printf("  %-8s  %-12s  %-5s  %8s  %6s  %4s  %s\n", "Run", "Scene", "Axes", "Ticks", "Bodies", "Peak", "Date")
	fmt.Printf("  %-8s  %-12s  %-5s  %8s  %6s  %4s  %s\n", "---", "-----", "----", "-----", "------", "----", "----")
	for _, r := range runs {
		id := r.ID
		if len(id) > 8 {
			id = id[:8]
		}
		fmt.Printf("  %-8s  %-12s  %-5s  %8d  %6d  %4d  %s\n",
			id, r.SceneID, r.AxisMode, r.Ticks, r.Bodies, r.PeakColliding, r.CreatedAt.Format("2006-01-02 15:04"))
	}

	if sceneID != "" {
		stats, err := store.SceneStats(sceneID)
		if err == nil && stats.Runs > 0 {
			fmt.Println()
			fmt.Printf("Total: %d runs, %d ticks, peak colliding %d\n", stats.Runs, stats.TotalTicks, stats.PeakColliding)
		}
	}
	return nil
}
