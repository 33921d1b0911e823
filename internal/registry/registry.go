// Package registry provides a global catalogue of scene factories.
// Scenes register themselves in init() functions, allowing the platform
// to discover and instantiate them without hardcoded dependencies.
package registry

import (
	"fmt"
	"sort"
	"sync"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-collide/internal/config"
	"github.com/vovakirdan/tui-collide/internal/scene"
	"github.com/vovakirdan/tui-collide/internal/storage"
)

// Deps is everything a factory may hand to the scene it builds.
type Deps struct {
	Config config.Config
	Store  *storage.Store // May be nil when persistence is disabled
	Logger *log.Logger
	Seed   int64
	Layout string // Saved layout to restore instead of generating bodies

	// Catalogue lists the scenes a menu may offer. Filled by Build.
	Catalogue []SceneInfo
}

// Kind groups registered scenes.
type Kind int

const (
	// KindSimulation scenes can be chosen from the menu and played directly.
	KindSimulation Kind = iota
	// KindSupport scenes (menu, loading) are only reached through transitions.
	KindSupport
)

func (k Kind) String() string {
	if k == KindSupport {
		return "support"
	}
	return "simulation"
}

// SceneInfo contains metadata about a registered scene.
type SceneInfo struct {
	ID    string
	Title string
	Kind  Kind
}

// Factory builds a new scene instance.
type Factory func(deps Deps) scene.Scene

type entry struct {
	info    SceneInfo
	factory Factory
}

var (
	entries = make(map[string]entry)
	mu      sync.RWMutex
)

// Register adds a scene factory to the registry.
// Typically called from a scene package's init() function.
// Panics if a scene with the same ID is already registered.
func Register(id, title string, kind Kind, f Factory) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := entries[id]; exists {
		panic(fmt.Sprintf("registry: scene %q already registered", id))
	}
	entries[id] = entry{info: SceneInfo{ID: id, Title: title, Kind: kind}, factory: f}
}

// List returns information about all registered scenes, sorted by ID.
func List() []SceneInfo {
	mu.RLock()
	defer mu.RUnlock()

	result := make([]SceneInfo, 0, len(entries))
	for _, e := range entries {
		result = append(result, e.info)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].ID < result[j].ID
	})

	return result
}

// Simulations returns only the scenes of KindSimulation, sorted by ID.
func Simulations() []SceneInfo {
	var result []SceneInfo
	for _, info := range List() {
		if info.Kind == KindSimulation {
			result = append(result, info)
		}
	}
	return result
}

// Create instantiates a new scene by its ID.
// Returns an error if the scene ID is not registered.
func Create(id string, deps Deps) (scene.Scene, error) {
	mu.RLock()
	e, ok := entries[id]
	mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("registry: unknown scene %q", id)
	}
	return e.factory(deps), nil
}

// Exists checks if a scene with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := entries[id]
	return ok
}

// Build creates one instance of every registered scene and adds them all to
// m, in ID order. Deps.Catalogue is filled with the simulation scenes first.
func Build(m *scene.Manager, deps Deps) error {
	deps.Catalogue = Simulations()
	for _, info := range List() {
		s, err := Create(info.ID, deps)
		if err != nil {
			return err
		}
		if err := m.AddScene(s); err != nil {
			return err
		}
	}
	return nil
}
