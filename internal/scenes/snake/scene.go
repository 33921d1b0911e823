// Package snake implements the classic snake game as a scene: a short
// campaign of walled levels, each cleared by eating enough food.
package snake

import (
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-collide/internal/core"
	"github.com/vovakirdan/tui-collide/internal/registry"
	"github.com/vovakirdan/tui-collide/internal/scene"
	"github.com/vovakirdan/tui-collide/internal/storage"
)

// ID is the registry key of the snake scene.
const ID = "snake"

// Palette colours the level.
type Palette struct {
	Wall  core.Color
	Snake core.Color
	Food  core.Color
}

// Scene wraps a Game for the scene manager. Input is buffered and applied
// on the next Update.
type Scene struct {
	store  *storage.Store
	logger *log.Logger
	seed   int64
	pal    Palette

	mu      sync.Mutex
	game    *Game
	input   core.InputFrame
	request *scene.Request
}

// New creates a snake scene. It does nothing until Init.
func New(deps registry.Deps) *Scene {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	p := deps.Config.Render.Palette()
	return &Scene{
		store:  deps.Store,
		logger: logger.WithPrefix(ID),
		seed:   deps.Seed,
		pal:    Palette{Wall: p.Idle, Snake: p.Selected, Food: p.Colliding},
		input:  core.NewInputFrame(),
	}
}

func (s *Scene) ID() string { return ID }

// Init starts a fresh campaign sized for screen.
func (s *Scene) Init(screen *core.Screen) scene.Pending {
	w, h := screen.Size()

	s.mu.Lock()
	defer s.mu.Unlock()
	s.game = NewGame(s.seed, w, h)
	s.input.Clear()
	s.request = nil
	return nil
}

// Clean records the run and drops the game.
func (s *Scene) Clean() {
	s.mu.Lock()
	g := s.game
	s.game = nil
	s.request = nil
	s.mu.Unlock()

	if g == nil {
		return
	}
	snap := g.Snapshot()
	s.logger.Info("game over", "score", snap.Score, "level", snap.Level+1, "ticks", snap.Tick)
	if s.store == nil || snap.Tick == 0 {
		return
	}
	if _, err := s.store.SaveRun(storage.Run{SceneID: ID, Ticks: snap.Tick, Bodies: snap.Length}); err != nil {
		s.logger.Error("failed to save run", "error", err)
	}
}

// HandleInput buffers steering and pause input. Back asks for the menu.
func (s *Scene) HandleInput(in core.InputFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Has(core.ActionBack) {
		s.request = &scene.Request{Target: "menu"}
		return
	}
	for a, on := range in.Actions {
		if on {
			s.input.Set(a)
		}
	}
}

// TakeRequest returns the pending transition request once.
func (s *Scene) TakeRequest() (scene.Request, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.request == nil {
		return scene.Request{}, false
	}
	r := *s.request
	s.request = nil
	return r, true
}

// Update runs one game tick with the buffered input.
func (s *Scene) Update(time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		return
	}
	s.game.Step(s.input)
	s.input.Clear()
}

func (s *Scene) Render(dst *core.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dst.Clear()
	if s.game == nil {
		return
	}
	s.game.Resize(dst.Width(), dst.Height())
	s.game.Render(dst, s.pal)
}

// Snapshot returns the game state, or false before Init.
func (s *Scene) Snapshot() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.game == nil {
		return Snapshot{}, false
	}
	return s.game.Snapshot(), true
}

func init() {
	registry.Register(ID, "Snake", registry.KindSimulation, func(d registry.Deps) scene.Scene {
		return New(d)
	})
}
