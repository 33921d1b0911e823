// Package collisions implements the polygon collision scene: a set of convex
// bodies drifting around the screen, highlighted while they overlap.
package collisions

import (
	"context"
	"fmt"
	"math/rand"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-collide/internal/config"
	"github.com/vovakirdan/tui-collide/internal/core"
	"github.com/vovakirdan/tui-collide/internal/registry"
	"github.com/vovakirdan/tui-collide/internal/sat"
	"github.com/vovakirdan/tui-collide/internal/scene"
	"github.com/vovakirdan/tui-collide/internal/storage"
)

const (
	nudgeStep     = 0.1 // Speed change per arrow press
	statusTicks   = 60  // How long a status line stays up
	quickSaveName = "quicksave"
)

// Scene is the collision simulation.
type Scene struct {
	id     string
	title  string
	cfg    config.Config
	store  *storage.Store
	logger *log.Logger
	seed   int64
	layout string

	mu      sync.Mutex
	cancel  context.CancelFunc // Stops a running Init
	rng     *rand.Rand
	world   *sat.World
	width   float64 // World extent in world units
	height  float64
	paused  bool
	status  string
	statusT int
	request *scene.Request
}

// New creates a collision scene. It does nothing until Init.
func New(id, title string, deps registry.Deps) *Scene {
	logger := deps.Logger
	if logger == nil {
		logger = log.Default()
	}
	return &Scene{
		id:     id,
		title:  title,
		cfg:    deps.Config,
		store:  deps.Store,
		logger: logger.WithPrefix(id),
		seed:   deps.Seed,
		layout: deps.Layout,
	}
}

// ID returns the registry key of the scene.
func (s *Scene) ID() string {
	return s.id
}

// Title returns the display name.
func (s *Scene) Title() string {
	return s.title
}

// Init builds the bodies for the given screen. Bodies are restored from the
// configured layout when one is set, otherwise generated from the seed.
// The scene stays in loading for at least the configured minimum duration.
//
// Clean cancels an Init that has not finished; its bodies are dropped.
func (s *Scene) Init(screen *core.Screen) scene.Pending {
	w, h := screen.Size()
	width := float64(w)
	height := float64(h) / s.cfg.Simulation.Aspect
	minDuration := s.cfg.Loading.MinDuration

	ctx, cancel := context.WithCancel(context.Background())
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
	}
	s.cancel = cancel
	s.mu.Unlock()

	return scene.Go(ctx, func(ctx context.Context) error {
		start := time.Now()

		bodies, err := s.buildBodies(width, height)
		if err != nil {
			return err
		}

		world := sat.NewWorld(bodies, s.cfg.AxisMode())

		if wait := minDuration - time.Since(start); wait > 0 {
			select {
			case <-time.After(wait):
			case <-ctx.Done():
				return ctx.Err()
			}
		}

		s.mu.Lock()
		defer s.mu.Unlock()
		if err := ctx.Err(); err != nil {
			return err
		}
		s.world = world
		s.width, s.height = width, height
		s.paused = false
		s.status, s.statusT = "", 0
		s.request = nil

		s.logger.Debug("scene ready", "bodies", len(bodies), "axes", world.Mode, "took", time.Since(start))
		return nil
	})
}

func (s *Scene) buildBodies(width, height float64) ([]*sat.Body, error) {
	s.mu.Lock()
	s.rng = rand.New(rand.NewSource(s.seed))
	sp := s.spawnerLocked(width, height)
	s.mu.Unlock()

	if s.layout == "" {
		return sp.bodies(s.cfg.Simulation.Bodies), nil
	}
	if s.store == nil {
		return nil, fmt.Errorf("collisions: layout %q requested without a store", s.layout)
	}
	l, err := s.store.LoadLayout(s.layout)
	if err != nil {
		return nil, fmt.Errorf("collisions: %w", err)
	}
	return bodiesFromLayout(l.Bodies), nil
}

func (s *Scene) spawnerLocked(width, height float64) spawner {
	return spawner{rng: s.rng, sim: s.cfg.Simulation, width: width, height: height}
}

// Clean records the finished run and drops the bodies.
func (s *Scene) Clean() {
	s.mu.Lock()
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	world := s.world
	s.world = nil
	s.request = nil
	s.mu.Unlock()

	if world == nil || s.store == nil {
		return
	}
	st := world.Stats()
	if st.Tick == 0 {
		return
	}
	id, err := s.store.SaveRun(storage.Run{
		SceneID:       s.id,
		AxisMode:      world.Mode.String(),
		Ticks:         st.Tick,
		Bodies:        world.Len(),
		PeakColliding: st.PeakColliding,
	})
	if err != nil {
		s.logger.Error("failed to save run", "error", err)
		return
	}
	s.logger.Info("run saved", "run", id, "ticks", st.Tick, "peak", st.PeakColliding)
}

// Update bounces bodies off the walls and runs one collision pass.
func (s *Scene) Update(time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.statusT > 0 {
		s.statusT--
	}
	if s.world == nil || s.paused {
		return
	}
	bounce(s.world.Bodies, s.width, s.height)
	s.world.Step()
}

// Render draws every body and the HUD.
func (s *Scene) Render(dst *core.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.world == nil {
		return
	}

	fill, _ := utf8.DecodeRuneInString(s.cfg.Render.Fill)
	outline, _ := utf8.DecodeRuneInString(s.cfg.Render.Outline)
	aspect := s.cfg.Simulation.Aspect
	pal := s.cfg.Render.Palette()

	for _, b := range s.world.Bodies {
		pts := b.WorldPoints()
		for i := range pts {
			pts[i][1] *= aspect
		}

		c := pal.Idle
		if b.Colliding {
			c = pal.Colliding
		}
		edge := c
		if b.Selected {
			edge = pal.Selected
		}

		if fill != utf8.RuneError && fill != ' ' {
			dst.FillPolygon(pts, fill, c)
		}
		if outline != utf8.RuneError {
			dst.StrokePolygon(pts, outline, edge)
		}
	}

	if s.cfg.Render.HUD {
		st := s.world.Stats()
		hud := fmt.Sprintf(" %s | bodies %d | colliding %d | axes %s | tick %d ",
			s.title, s.world.Len(), st.Colliding, s.world.Mode, st.Tick)
		dst.DrawText(0, 0, hud, core.ColorBrightWhite)
	}

	if s.statusT > 0 && s.status != "" {
		dst.DrawText(0, dst.Height()-1, " "+s.status+" ", core.ColorGreen)
	}

	if s.paused {
		dst.DrawTextCentered(dst.Height()/2, " PAUSED ", core.ColorBrightWhite)
	}
}

// World returns the live world, or nil before Init. Callers must not keep it
// across ticks.
func (s *Scene) World() *sat.World {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.world
}

// Paused reports whether the simulation is paused.
func (s *Scene) Paused() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.paused
}

func (s *Scene) setStatus(msg string) {
	s.status = msg
	s.statusT = statusTicks
}

// Status returns the status line currently shown, if any.
func (s *Scene) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.statusT == 0 {
		return ""
	}
	return s.status
}

func init() {
	registry.Register("collisions", "SAT Collisions", registry.KindSimulation, func(d registry.Deps) scene.Scene {
		return New("collisions", "SAT Collisions", d)
	})
	registry.Register("swarm", "Swarm", registry.KindSimulation, func(d registry.Deps) scene.Scene {
		d.Config.Simulation.Bodies *= 4
		d.Config.Simulation.MinRadius /= 2
		d.Config.Simulation.MaxRadius /= 2
		return New("swarm", "Swarm", d)
	})
}
