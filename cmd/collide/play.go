package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-collide/internal/platform/tui"
	"github.com/vovakirdan/tui-collide/internal/registry"
	"github.com/vovakirdan/tui-collide/internal/scene"
)

var flagLayout string

var playCmd = &cobra.Command{
	Use:   "play [scene]",
	Short: "Start a simulation",
	Long: `Start the given simulation scene directly, through the loading scene.
Without an argument the collisions scene is started.

Controls:
  Tab/Shift+Tab  - Select next/previous body
  Arrows/WASD    - Nudge the selected body's speed
  N / X          - Add / remove a body
  M              - Toggle collision axes (first/both)
  Ctrl+S         - Save the layout
  Space/P        - Pause
  Esc/B          - Back to the menu
  Q/Ctrl+C       - Quit

Examples:
  collide play
  collide play swarm --speed fast
  collide play collisions --seed 42 --axes both
  collide play collisions --layout quicksave`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagLayout, "layout", "", "Restore a saved layout instead of generating bodies")
}

func runPlay(_ *cobra.Command, args []string) error {
	sceneID := "collisions"
	if len(args) == 1 {
		sceneID = args[0]
	}
	if !registry.Exists(sceneID) {
		return fmt.Errorf("unknown scene %q, run 'collide list' to see registered scenes", sceneID)
	}
	return runSession(sceneID, flagLayout)
}

// runSession runs one local session starting at sceneID. An empty id starts
// at the menu.
func runSession(sceneID, layout string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	logger, closeLog := openLogger("collide")
	defer closeLog()

	store := openStore()
	if store != nil {
		defer store.Close()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info("session starting", "scene", sceneID, "layout", layout, "seed", flagSeed, "axes", cfg.Collision.Axes)
	err = tui.Run(ctx, tui.Options{
		Config:  cfg,
		Runtime: runtimeConfig(),
		Store:   store,
		Logger:  logger,
		Start:   sceneID,
		Layout:  layout,
	})
	if errors.Is(err, scene.ErrMissingSurface) {
		return fmt.Errorf("%w: terminal size unknown, pass --width and --height", err)
	}
	return err
}
