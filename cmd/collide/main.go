// collide is a terminal sandbox for convex polygon collision detection.
//
// Usage:
//
//	collide list               - List registered scenes
//	collide play [scene]       - Start a scene directly
//	collide menu               - Pick a scene from the main menu
//	collide serve              - Start SSH server for remote sessions
//	collide runs               - Browse recorded runs
//	collide layouts            - List or delete saved layouts
//
// Global flags:
//
//	--fps <rate>      - Set tick rate (default: 30)
//	--seed <value>    - Set RNG seed for reproducible layouts
//	--db <path>       - Set database path (default: ~/.collide/collide.db)
//	--config <path>   - Use a custom config YAML
//	--log <path>      - Write logs to a file (default: ~/.collide/collide.log)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import scenes to register them
	_ "github.com/vovakirdan/tui-collide/internal/scenes/collisions"
	_ "github.com/vovakirdan/tui-collide/internal/scenes/loading"
	_ "github.com/vovakirdan/tui-collide/internal/scenes/menu"
	_ "github.com/vovakirdan/tui-collide/internal/scenes/snake"
)

var (
	// Global flags
	flagFPS     int
	flagSeed    int64
	flagDBPath  string
	flagConfig  string
	flagLogPath string
	flagWidth   int
	flagHeight  int
	flagSpeed   string
	flagAxes    string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "collide",
	Short: "Collide - convex polygon collisions in your terminal",
	Long: `Collide drifts convex polygons around the terminal and highlights
every pair the separating axis test finds overlapping.

Available commands:
  list     - Show all registered scenes
  play     - Start a simulation directly
  menu     - Interactive scene picker
  serve    - Start SSH server for remote sessions
  runs     - Browse recorded runs
  layouts  - Manage saved layouts

Examples:
  collide list
  collide play collisions --seed 42
  collide menu --speed slow
  collide serve --ssh :2222
  collide runs`,
	SilenceUsage: true,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 30, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.collide/collide.db", "Path to runs database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom config YAML")
	rootCmd.PersistentFlags().StringVar(&flagLogPath, "log", "~/.collide/collide.log", "Path to log file")
	rootCmd.PersistentFlags().IntVar(&flagWidth, "width", 0, "Screen width when the terminal size is unknown")
	rootCmd.PersistentFlags().IntVar(&flagHeight, "height", 0, "Screen height when the terminal size is unknown")
	rootCmd.PersistentFlags().StringVar(&flagSpeed, "speed", "", "Speed preset: slow, normal, fast, frozen")
	rootCmd.PersistentFlags().StringVar(&flagAxes, "axes", "", "Collision axes: first or both (overrides config)")

	// Add subcommands
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(runsCmd)
	rootCmd.AddCommand(layoutsCmd)
}
