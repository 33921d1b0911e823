package menu

import (
	"path/filepath"
	"strings"
	"testing"

	"github.com/vovakirdan/tui-collide/internal/core"
	"github.com/vovakirdan/tui-collide/internal/registry"
	"github.com/vovakirdan/tui-collide/internal/storage"
)

var catalogue = []registry.SceneInfo{
	{ID: "collisions", Title: "SAT Collisions"},
	{ID: "swarm", Title: "Swarm"},
}

func press(a core.Action) core.InputFrame {
	in := core.NewInputFrame()
	in.Set(a)
	return in
}

func TestNavigation(t *testing.T) {
	m := New(catalogue, nil, nil)
	m.Init(core.NewScreen(80, 24))

	tests := []struct {
		action core.Action
		want   int
	}{
		{core.ActionUp, 0}, // Clamped at top
		{core.ActionDown, 1},
		{core.ActionDown, 1}, // Clamped at bottom
		{core.ActionPrev, 0},
		{core.ActionNext, 1},
	}
	for i, tt := range tests {
		m.HandleInput(press(tt.action))
		if m.Cursor() != tt.want {
			t.Errorf("step %d (%v): cursor = %d, expected %d", i, tt.action, m.Cursor(), tt.want)
		}
	}
}

func TestConfirmRequestsSceneThroughLoading(t *testing.T) {
	m := New(catalogue, nil, nil)
	m.Init(core.NewScreen(80, 24))

	m.HandleInput(press(core.ActionDown))
	m.HandleInput(press(core.ActionConfirm))

	req, ok := m.TakeRequest()
	if !ok {
		t.Fatal("confirm should raise a request")
	}
	if req.Target != "swarm" || req.Loading != LoadingID || req.KeepPrevious || req.Quit {
		t.Errorf("request = %+v", req)
	}
	if _, ok := m.TakeRequest(); ok {
		t.Error("request should be handed out once")
	}
}

func TestQuitRequest(t *testing.T) {
	m := New(catalogue, nil, nil)
	m.Init(core.NewScreen(80, 24))

	m.HandleInput(press(core.ActionQuit))
	req, ok := m.TakeRequest()
	if !ok || !req.Quit {
		t.Errorf("request = %+v, %v", req, ok)
	}
}

func TestEmptyCatalogue(t *testing.T) {
	m := New(nil, nil, nil)
	screen := core.NewScreen(80, 24)
	m.Init(screen)

	m.HandleInput(press(core.ActionConfirm))
	if _, ok := m.TakeRequest(); ok {
		t.Error("empty menu should not request a scene")
	}
	m.Render(screen)
	if !strings.Contains(screen.String(), "no simulations") {
		t.Error("empty menu should say so")
	}
}

func TestRenderShowsItemsAndStats(t *testing.T) {
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatal(err)
	}
	defer store.Close()
	store.SaveRun(storage.Run{SceneID: "collisions", Ticks: 120, Bodies: 10, PeakColliding: 3})

	m := New(catalogue, store, nil)
	screen := core.NewScreen(80, 24)
	m.Init(screen)
	m.Render(screen)

	out := screen.String()
	for _, want := range []string{"C O L L I D E", "> SAT Collisions", "Swarm", "runs 1", "peak colliding 3"} {
		if !strings.Contains(out, want) {
			t.Errorf("menu output missing %q:\n%s", want, out)
		}
	}

	// Moving to a scene without runs hides the stats line.
	m.HandleInput(press(core.ActionDown))
	screen.Clear()
	m.Render(screen)
	if strings.Contains(screen.String(), "runs 1") {
		t.Error("stats should follow the cursor")
	}
}
