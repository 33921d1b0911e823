package tui

import (
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/tui-collide/internal/registry"
	"github.com/vovakirdan/tui-collide/internal/storage"
)

var testScenes = []registry.SceneInfo{
	{ID: "collisions", Title: "SAT Collisions", Kind: registry.KindSimulation},
	{ID: "swarm", Title: "Swarm", Kind: registry.KindSimulation},
}

func TestRunsModelView(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()

	for _, ticks := range []uint64{40, 120} {
		if _, err := store.SaveRun(storage.Run{SceneID: "collisions", Ticks: ticks, Bodies: 10, PeakColliding: 3}); err != nil {
			t.Fatal(err)
		}
	}

	m := NewRunsModel(store, testScenes, 100, 30)
	view := m.View()
	for _, want := range []string{"RUNS - SAT Collisions", "2 runs | 160 ticks | peak colliding 3", "Scenes"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	m = next.(RunsModel)
	view = m.View()
	if !strings.Contains(view, "RUNS - Swarm") || !strings.Contains(view, "no runs") {
		t.Error("tab should switch to the swarm scene with no runs")
	}
	if !strings.Contains(view, "No runs recorded yet.") {
		t.Error("empty table message missing")
	}

	next, _ = m.Update(tea.KeyMsg{Type: tea.KeyShiftTab})
	m = next.(RunsModel)
	if !strings.Contains(m.View(), "RUNS - SAT Collisions") {
		t.Error("shift+tab should switch back")
	}
}

func TestRunsModelNarrowHidesSidebar(t *testing.T) {
	m := NewRunsModel(nil, testScenes, 60, 20)
	if m.showSidebar {
		t.Error("sidebar shown on a narrow terminal")
	}
	if !strings.Contains(m.View(), "no runs") {
		t.Error("a model without a store should report no runs")
	}

	next, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	if !next.(RunsModel).showSidebar {
		t.Error("sidebar hidden after growing the terminal")
	}
}

func TestRunsModelQuit(t *testing.T) {
	m := NewRunsModel(nil, testScenes, 80, 24)
	next, cmd := m.Update(runeKey('q'))
	if cmd == nil {
		t.Fatal("quit should return a command")
	}
	if next.View() != "" {
		t.Error("view should be empty after quit")
	}
}
