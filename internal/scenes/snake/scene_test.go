package snake

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/vovakirdan/tui-collide/internal/config"
	"github.com/vovakirdan/tui-collide/internal/core"
	"github.com/vovakirdan/tui-collide/internal/registry"
	"github.com/vovakirdan/tui-collide/internal/scene"
	"github.com/vovakirdan/tui-collide/internal/storage"
)

func testDeps(t *testing.T) registry.Deps {
	t.Helper()
	store, err := storage.Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("storage.Open: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return registry.Deps{Config: config.DefaultConfig(), Store: store, Seed: 1}
}

func TestSceneThroughManager(t *testing.T) {
	deps := testDeps(t)
	s := New(deps)

	m, err := scene.NewManager(core.NewScreen(80, 24))
	if err != nil {
		t.Fatal(err)
	}
	if err := m.AddScene(s); err != nil {
		t.Fatal(err)
	}
	if err := m.ChangeScene(context.Background(), ID); err != nil {
		t.Fatalf("ChangeScene: %v", err)
	}
	if top := m.Top(); top == nil || top.ID() != ID {
		t.Fatalf("top = %v, expected the snake scene", top)
	}

	m.HandleInput(press(core.ActionDown))
	for range 8 {
		m.Update(time.Second / 30)
	}
	snap, ok := s.Snapshot()
	if !ok {
		t.Fatal("no game after Init")
	}
	if snap.Tick != 8 || snap.Dir != DirDown {
		t.Errorf("snapshot = %+v, expected 8 ticks heading down", snap)
	}

	m.Render()

	m.HandleInput(press(core.ActionBack))
	req, ok := m.TakeRequest()
	if !ok || req.Target != "menu" {
		t.Fatalf("request = %+v, %v", req, ok)
	}

	m.Close()
	if _, ok := s.Snapshot(); ok {
		t.Error("Close should drop the game")
	}
	runs, err := deps.Store.RecentRuns(ID, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Ticks != 8 || runs[0].Bodies < startSegment {
		t.Errorf("runs = %+v, expected one run of 8 ticks", runs)
	}
}

func TestSceneRestartReseeds(t *testing.T) {
	s := New(registry.Deps{Config: config.DefaultConfig(), Seed: 4})
	screen := core.NewScreen(80, 24)

	if p := s.Init(screen); p != nil {
		t.Fatal("snake Init should be synchronous")
	}
	first, _ := s.Snapshot()
	for range 10 {
		s.Update(time.Second / 30)
	}
	s.Clean()

	s.Init(screen)
	again, _ := s.Snapshot()
	if again != first {
		t.Errorf("restart = %+v, expected %+v", again, first)
	}
}

func TestRegistered(t *testing.T) {
	var found bool
	for _, info := range registry.Simulations() {
		if info.ID == ID {
			found = true
			if info.Title != "Snake" {
				t.Errorf("title = %q", info.Title)
			}
		}
	}
	if !found {
		t.Fatal("snake is not offered as a simulation")
	}

	s, err := registry.Create(ID, registry.Deps{Config: config.DefaultConfig()})
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := s.(scene.InputHandler); !ok {
		t.Error("snake scene should handle input")
	}
	if _, ok := s.(scene.Requester); !ok {
		t.Error("snake scene should issue requests")
	}
}
