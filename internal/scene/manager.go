package scene

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-collide/internal/core"
)

var (
	// ErrSceneNotFound is returned when an id is absent from the collection
	// an operation looks in.
	ErrSceneNotFound = errors.New("scene: not found")

	// ErrDuplicateSceneID is returned by AddScene when the id is taken.
	// It is a warning: the registered scene is left untouched.
	ErrDuplicateSceneID = errors.New("scene: duplicate id")

	// ErrMissingSurface is returned by NewManager without a screen.
	ErrMissingSurface = errors.New("scene: missing surface")

	// ErrTransitionInProgress is returned by ChangeScene while another
	// transition is still waiting on a scene's Init.
	ErrTransitionInProgress = errors.New("scene: transition in progress")

	// ErrClosed is returned by ChangeScene once Close has been called.
	ErrClosed = errors.New("scene: manager closed")
)

// Manager owns the registered scenes and the ordered active set.
//
// Registration is permanent. A scene becomes active only through ChangeScene
// and leaves through DeleteScene or a later ChangeScene. The manager is safe
// for concurrent use so a transition can wait on a background goroutine while
// the driving loop keeps rendering the loading scene; only one transition runs
// at a time.
type Manager struct {
	mu         sync.Mutex
	screen     *core.Screen
	registered map[string]Scene
	order      []string
	active     []Scene
	busy       bool
	closed     bool
	abort      context.CancelFunc // Cancels the running transition
	logger     *log.Logger
}

// Option configures a Manager.
type Option func(*Manager)

// WithLogger sets the logger used for warnings and transition traces.
func WithLogger(l *log.Logger) Option {
	return func(m *Manager) {
		if l != nil {
			m.logger = l
		}
	}
}

// NewManager creates a manager that hands screen to every scene's Init.
func NewManager(screen *core.Screen, opts ...Option) (*Manager, error) {
	if screen == nil {
		return nil, ErrMissingSurface
	}
	m := &Manager{
		screen:     screen,
		registered: make(map[string]Scene),
		logger:     log.Default().WithPrefix("scene"),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// Screen returns the surface scenes draw on.
func (m *Manager) Screen() *core.Screen {
	return m.screen
}

// AddScene registers s under its id. A duplicate id is logged and ignored;
// the returned error wraps ErrDuplicateSceneID so callers may inspect it.
func (m *Manager) AddScene(s Scene) error {
	if s == nil {
		return errors.New("scene: nil scene")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	id := s.ID()
	if _, exists := m.registered[id]; exists {
		m.logger.Warn("scene with same id already exists, provide a new id", "id", id)
		return fmt.Errorf("%w: %q", ErrDuplicateSceneID, id)
	}
	m.registered[id] = s
	m.order = append(m.order, id)
	return nil
}

// Registered returns the ids of all registered scenes in registration order.
func (m *Manager) Registered() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.order...)
}

// Lookup returns the registered scene with the given id.
func (m *Manager) Lookup(id string) (Scene, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.registered[id]
	return s, ok
}

// DeleteScene cleans the active scene with the given id and removes it from
// the active set. Only active scenes can be deleted.
func (m *Manager) DeleteScene(id string) error {
	m.mu.Lock()
	i := m.activeIndex(id)
	if i < 0 {
		m.mu.Unlock()
		return fmt.Errorf("%w: no active scene %q", ErrSceneNotFound, id)
	}
	s := m.active[i]
	m.active = append(m.active[:i:i], m.active[i+1:]...)
	m.mu.Unlock()

	s.Clean()
	m.logger.Debug("scene deleted", "id", id)
	return nil
}

// CurrentScenes returns a copy of the active set, bottom first.
func (m *Manager) CurrentScenes() []Scene {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Scene(nil), m.active...)
}

// Top returns the topmost active scene, or nil.
func (m *Manager) Top() Scene {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.active) == 0 {
		return nil
	}
	return m.active[len(m.active)-1]
}

// Busy reports whether a transition is in progress.
func (m *Manager) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.busy
}

type change struct {
	keepPrevious bool
	loading      string
}

// ChangeOption configures a ChangeScene call.
type ChangeOption func(*change)

// KeepPrevious leaves the previously topmost scene active under the target.
func KeepPrevious() ChangeOption {
	return func(c *change) { c.keepPrevious = true }
}

// WithLoading shows the scene with the given id while the target initialises.
func WithLoading(id string) ChangeOption {
	return func(c *change) { c.loading = id }
}

// ChangeScene makes the scene registered under id the topmost active scene.
//
// The sequence is: remember the current top scene, resolve the target (and
// the loading scene if one was requested), initialise and push the loading
// scene, initialise the target, delete the previous top scene unless
// KeepPrevious was given, delete the loading scene, push the target. The
// previous scene is torn down only after the target is ready, except when
// the target is itself the previous scene: a scene that is already active
// when it is about to be initialised is cleaned and removed first, so each
// scene value appears at most once and a restart tears down before Init.
//
// If an Init fails the transition stops: a pushed loading scene is cleaned
// and removed, the failed scene is cleaned, the previous scene stays active,
// and the error is returned. Cancelling ctx fails the transition the same way.
//
// Close during a transition cancels it. Scenes the transition initialised are
// cleaned instead of pushed and ErrClosed is returned.
func (m *Manager) ChangeScene(ctx context.Context, id string, opts ...ChangeOption) error {
	var c change
	for _, opt := range opts {
		opt(&c)
	}

	m.mu.Lock()
	if m.closed {
		m.mu.Unlock()
		return ErrClosed
	}
	if m.busy {
		m.mu.Unlock()
		return ErrTransitionInProgress
	}
	var previous Scene
	if len(m.active) > 0 {
		previous = m.active[len(m.active)-1]
	}
	target, ok := m.registered[id]
	if !ok {
		m.mu.Unlock()
		return fmt.Errorf("%w: %q", ErrSceneNotFound, id)
	}
	var loading Scene
	if c.loading != "" {
		if loading, ok = m.registered[c.loading]; !ok {
			m.mu.Unlock()
			return fmt.Errorf("%w: loading scene %q", ErrSceneNotFound, c.loading)
		}
	}
	ctx, cancel := context.WithCancel(ctx)
	m.busy = true
	m.abort = cancel
	m.mu.Unlock()

	defer func() {
		m.mu.Lock()
		m.busy = false
		m.abort = nil
		m.mu.Unlock()
		cancel()
	}()

	start := time.Now()
	m.logger.Debug("changing scene", "from", sceneID(previous), "to", id, "loading", c.loading)

	if loading != nil {
		m.evict(loading)
		if err := m.initScene(ctx, loading); err != nil {
			loading.Clean()
			return m.initErr(fmt.Errorf("scene: init loading scene %q: %w", c.loading, err))
		}
		if !m.push(loading) {
			loading.Clean()
			return ErrClosed
		}
	}

	m.evict(target)
	if err := m.initScene(ctx, target); err != nil {
		if loading != nil {
			m.remove(loading)
		}
		target.Clean()
		err = m.initErr(fmt.Errorf("scene: init %q: %w", id, err))
		if !errors.Is(err, ErrClosed) {
			m.logger.Error("scene init failed", "id", id, "error", err)
		}
		return err
	}

	if !c.keepPrevious && previous != nil {
		m.remove(previous)
	}
	if loading != nil {
		m.remove(loading)
	}
	if !m.push(target) {
		target.Clean()
		return ErrClosed
	}

	m.logger.Debug("scene changed", "id", id, "took", time.Since(start))
	return nil
}

func (m *Manager) initScene(ctx context.Context, s Scene) error {
	p := s.Init(m.screen)
	if p == nil {
		return ctx.Err()
	}
	return p.Wait(ctx)
}

// evict cleans and removes s if it is already active.
func (m *Manager) evict(s Scene) {
	if m.remove(s) {
		m.logger.Debug("re-initialising active scene", "id", s.ID())
	}
}

// remove cleans s and drops it from the active set if present.
func (m *Manager) remove(s Scene) bool {
	m.mu.Lock()
	i := -1
	for k, a := range m.active {
		if a == s {
			i = k
			break
		}
	}
	if i < 0 {
		m.mu.Unlock()
		return false
	}
	m.active = append(m.active[:i:i], m.active[i+1:]...)
	m.mu.Unlock()

	s.Clean()
	return true
}

// push appends s to the active set unless the manager is closed.
func (m *Manager) push(s Scene) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.closed {
		return false
	}
	m.active = append(m.active, s)
	return true
}

// initErr reports an Init failure caused by Close as ErrClosed.
func (m *Manager) initErr(err error) error {
	m.mu.Lock()
	closed := m.closed
	m.mu.Unlock()
	if closed {
		return fmt.Errorf("%w: %w", ErrClosed, err)
	}
	return err
}

func (m *Manager) activeIndex(id string) int {
	for i, s := range m.active {
		if s.ID() == id {
			return i
		}
	}
	return -1
}

// Update advances every active scene, bottom first.
func (m *Manager) Update(dt time.Duration) {
	for _, s := range m.CurrentScenes() {
		s.Update(dt)
	}
}

// Render draws every active scene, bottom first, so later scenes draw on top.
func (m *Manager) Render() {
	for _, s := range m.CurrentScenes() {
		s.Render(m.screen)
	}
}

// HandleInput forwards input to the topmost active scene that accepts it.
func (m *Manager) HandleInput(in core.InputFrame) {
	scenes := m.CurrentScenes()
	for i := len(scenes) - 1; i >= 0; i-- {
		if h, ok := scenes[i].(InputHandler); ok {
			h.HandleInput(in)
			return
		}
	}
}

// TakeRequest returns the first pending transition request raised by an
// active scene, scanning from the top.
func (m *Manager) TakeRequest() (Request, bool) {
	scenes := m.CurrentScenes()
	for i := len(scenes) - 1; i >= 0; i-- {
		if r, ok := scenes[i].(Requester); ok {
			if req, ok := r.TakeRequest(); ok {
				return req, true
			}
		}
	}
	return Request{}, false
}

// Close cleans every active scene, top first, and empties the active set.
// A running transition is cancelled and later ones fail with ErrClosed.
func (m *Manager) Close() {
	m.mu.Lock()
	m.closed = true
	if m.abort != nil {
		m.abort()
	}
	scenes := m.active
	m.active = nil
	m.mu.Unlock()

	for i := len(scenes) - 1; i >= 0; i-- {
		scenes[i].Clean()
	}
}

func sceneID(s Scene) string {
	if s == nil {
		return ""
	}
	return s.ID()
}
