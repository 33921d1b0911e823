package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/tui-collide/internal/storage"
)

var layoutsCmd = &cobra.Command{
	Use:   "layouts",
	Short: "List saved layouts",
	Long: `Layouts are saved from a running simulation with Ctrl+S and restored
with 'collide play <scene> --layout <name>'.

Examples:
  collide layouts
  collide layouts delete quicksave`,
	Args: cobra.NoArgs,
	RunE: runLayouts,
}

var layoutsDeleteCmd = &cobra.Command{
	Use:   "delete <name>",
	Short: "Delete a saved layout",
	Args:  cobra.ExactArgs(1),
	RunE:  runLayoutsDelete,
}

func init() {
	layoutsCmd.AddCommand(layoutsDeleteCmd)
}

func runLayouts(_ *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	layouts, err := store.ListLayouts()
	if err != nil {
		return fmt.Errorf("listing layouts: %w", err)
	}
	if len(layouts) == 0 {
		fmt.Println("No layouts saved yet.")
		return nil
	}

	maxNameLen := 4 // "Name" header
	for _, l := range layouts {
		maxNameLen = max(maxNameLen, len(l.Name))
	}

	fmt.Printf("  %-*s  %6s  %s\n", maxNameLen, "Name", "Bodies", "Saved")
	fmt.Printf("  %-*s  %6s  %s\n", maxNameLen, "----", "------", "-----")
	for _, l := range layouts {
		fmt.Printf("  %-*s  %6d  %s\n", maxNameLen, l.Name, l.Bodies, l.CreatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runLayoutsDelete(_ *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("opening runs database: %w", err)
	}
	defer store.Close()

	if err := store.DeleteLayout(args[0]); err != nil {
		return err
	}
	fmt.Printf("Deleted layout %q\n", args[0])
	return nil
}
