package main

import (
	"github.com/spf13/cobra"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start with the scene picker menu",
	Long: `Start collide in interactive menu mode.

Use arrow keys or j/k to navigate, Enter to start a simulation.
Esc in a simulation returns to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter        - Start simulation
  Q/Esc        - Quit

Examples:
  collide menu
  collide menu --fps 60
  collide menu --db ./collide.db`,
	Args: cobra.NoArgs,
	RunE: func(_ *cobra.Command, _ []string) error {
		// Uses global flags from main.go
		return runSession("", "")
	},
}
