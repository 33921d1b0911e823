package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-collide/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all registered scenes",
	Long:  `Shows every scene registered in the collide binary, simulations and support scenes alike.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	scenes := registry.List()

	if len(scenes) == 0 {
		fmt.Println("No scenes registered.")
		return
	}

	fmt.Println("Registered scenes:")
	fmt.Println()

	// Calculate column widths
	maxIDLen := 2 // "ID" header
	for _, s := range scenes {
		maxIDLen = max(maxIDLen, len(s.ID))
	}

	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "ID", "Kind", "Title")
	fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, "--", "----", "-----")

	for _, s := range scenes {
		fmt.Printf("  %-*s  %-10s  %s\n", maxIDLen, s.ID, s.Kind, s.Title)
	}

	fmt.Println()
	fmt.Println("Run 'collide play <id>' to start a simulation.")
}
