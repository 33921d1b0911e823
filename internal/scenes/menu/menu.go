// Package menu implements the main menu scene: a list of the registered
// simulations the player can start.
package menu

import (
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-collide/internal/core"
	"github.com/vovakirdan/tui-collide/internal/registry"
	"github.com/vovakirdan/tui-collide/internal/scene"
	"github.com/vovakirdan/tui-collide/internal/storage"
)

// ID is the registry key of the menu scene.
const ID = "menu"

// LoadingID is the scene shown while a chosen simulation starts.
const LoadingID = "loading"

// Item is one selectable simulation.
type Item struct {
	SceneID string
	Title   string
}

// Scene is the main menu.
type Scene struct {
	items  []Item
	store  *storage.Store
	logger *log.Logger

	mu      sync.Mutex
	cursor  int
	stats   *storage.SceneStats
	request *scene.Request
}

// New creates a menu over the given catalogue.
func New(catalogue []registry.SceneInfo, store *storage.Store, logger *log.Logger) *Scene {
	items := make([]Item, 0, len(catalogue))
	for _, info := range catalogue {
		items = append(items, Item{SceneID: info.ID, Title: info.Title})
	}
	if logger == nil {
		logger = log.Default()
	}
	return &Scene{items: items, store: store, logger: logger.WithPrefix(ID)}
}

func (s *Scene) ID() string { return ID }

// Items returns the menu entries in display order.
func (s *Scene) Items() []Item {
	return append([]Item(nil), s.items...)
}

// Cursor returns the highlighted entry index.
func (s *Scene) Cursor() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cursor
}

// Init keeps the cursor where it was and refreshes the run statistics.
func (s *Scene) Init(*core.Screen) scene.Pending {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.request = nil
	if s.cursor >= len(s.items) {
		s.cursor = 0
	}
	s.refreshStatsLocked()
	return nil
}

func (s *Scene) Clean() {}

func (s *Scene) Update(time.Duration) {}

func (s *Scene) refreshStatsLocked() {
	s.stats = nil
	if s.store == nil || len(s.items) == 0 {
		return
	}
	stats, err := s.store.SceneStats(s.items[s.cursor].SceneID)
	if err != nil {
		s.logger.Warn("failed to load scene stats", "error", err)
		return
	}
	s.stats = stats
}

// HandleInput processes menu navigation.
func (s *Scene) HandleInput(in core.InputFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	switch {
	case in.Has(core.ActionQuit), in.Has(core.ActionBack):
		s.request = &scene.Request{Quit: true}

	case in.Has(core.ActionUp), in.Has(core.ActionPrev):
		if s.cursor > 0 {
			s.cursor--
			s.refreshStatsLocked()
		}

	case in.Has(core.ActionDown), in.Has(core.ActionNext):
		if s.cursor < len(s.items)-1 {
			s.cursor++
			s.refreshStatsLocked()
		}

	case in.Has(core.ActionConfirm):
		if len(s.items) > 0 {
			s.request = &scene.Request{Target: s.items[s.cursor].SceneID, Loading: LoadingID}
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

func (s *Scene) Render(dst *core.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dst.Clear()
	w, h := dst.Width(), dst.Height()

	y := max(1, h/2-len(s.items)-3)
	dst.DrawTextCentered(y, "  C O L L I D E  ", core.ColorCyan)
	dst.DrawTextCentered(y+2, "Select a simulation", core.ColorGray)

	y += 4
	for i, item := range s.items {
		cursor := "  "
		c := core.ColorDefault
		if i == s.cursor {
			cursor = "> "
			c = core.ColorYellow
		}
		dst.DrawTextCentered(y+i, cursor+item.Title, c)
	}
	if len(s.items) == 0 {
		dst.DrawTextCentered(y, "no simulations registered", core.ColorRed)
	}

	if s.stats != nil && s.stats.Runs > 0 {
		line := fmt.Sprintf("runs %d | ticks %d | peak colliding %d", s.stats.Runs, s.stats.TotalTicks, s.stats.PeakColliding)
		dst.DrawTextCentered(y+len(s.items)+1, line, core.ColorGray)
	}

	controls := "Up/Down: Navigate  |  Enter: Start  |  Q: Quit"
	if len(controls) > w {
		controls = "Enter: Start  Q: Quit"
	}
	dst.DrawTextCentered(h-2, controls, core.ColorGray)
}

func init() {
	registry.Register(ID, "Main Menu", registry.KindSupport, func(d registry.Deps) scene.Scene {
		return New(d.Catalogue, d.Store, d.Logger)
	})
}
