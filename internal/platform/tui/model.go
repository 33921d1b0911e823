package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/tui-collide/internal/config"
	"github.com/vovakirdan/tui-collide/internal/core"
	"github.com/vovakirdan/tui-collide/internal/registry"
	"github.com/vovakirdan/tui-collide/internal/scene"
	"github.com/vovakirdan/tui-collide/internal/storage"
)

// Scene ids the session relies on.
const (
	MenuSceneID    = "menu"
	LoadingSceneID = "loading"
)

// maxTickGap caps the dt handed to scenes after a stall.
const maxTickGap = 4

// TransitionDoneMsg reports the end of a scene change started by the model.
type TransitionDoneMsg struct {
	Request scene.Request
	Err     error
}

// Options configures a session.
type Options struct {
	Config  config.Config
	Runtime core.RuntimeConfig
	Store   *storage.Store // Optional
	Logger  *log.Logger

	// Start is the first scene to show. Empty starts at the menu.
	Start string

	// Layout restores a saved layout into simulation scenes.
	Layout string
}

// Model is the Bubble Tea model for one session. It owns the screen and the
// scene manager, feeds ticks and input into the manager and runs requested
// transitions off the UI goroutine.
type Model struct {
	ctx           context.Context
	manager       *scene.Manager
	screen        *core.Screen
	keyMapper     *KeyMapper
	input         core.InputFrame
	tickRate      int
	first         scene.Request
	lastTick      time.Time
	transitioning bool
	quitting      bool
	err           error
	logger        *log.Logger
}

// NewModel builds a session: a screen of the runtime size, a manager holding
// one instance of every registered scene, and the first transition to run.
// A runtime without a usable size has no surface and fails with
// scene.ErrMissingSurface.
func NewModel(ctx context.Context, opts Options) (Model, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	rt := opts.Runtime
	if rt.Seed == 0 {
		rt.Seed = time.Now().UnixNano()
	}
	if rt.TickRate <= 0 {
		rt.TickRate = core.DefaultConfig().TickRate
	}

	var screen *core.Screen
	if rt.ScreenW > 0 && rt.ScreenH > 0 {
		screen = core.NewScreen(rt.ScreenW, rt.ScreenH)
	}
	manager, err := scene.NewManager(screen, scene.WithLogger(logger.WithPrefix("scene")))
	if err != nil {
		return Model{}, err
	}

	deps := registry.Deps{
		Config: opts.Config,
		Store:  opts.Store,
		Logger: logger,
		Seed:   rt.Seed,
		Layout: opts.Layout,
	}
	if err := registry.Build(manager, deps); err != nil {
		return Model{}, err
	}

	first := scene.Request{Target: MenuSceneID}
	if opts.Start != "" && opts.Start != MenuSceneID {
		first = scene.Request{Target: opts.Start, Loading: LoadingSceneID}
	}
	if _, ok := manager.Lookup(first.Target); !ok {
		return Model{}, fmt.Errorf("%w: %q", scene.ErrSceneNotFound, first.Target)
	}

	return Model{
		ctx:       ctx,
		manager:   manager,
		screen:    screen,
		keyMapper: NewKeyMapper(),
		input:     core.NewInputFrame(),
		tickRate:  rt.TickRate,
		first:     first,
		logger:    logger,

		// Init always starts the first transition.
		transitioning: true,
	}, nil
}

// Manager returns the scene manager driven by the model.
func (m Model) Manager() *scene.Manager {
	return m.manager
}

// Err returns the error that ended the session, if any.
func (m Model) Err() error {
	return m.err
}

// Init starts the tick loop and the first transition.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(m.tickRate), m.changeCmd(m.first))
}

// changeCmd runs a transition on a background goroutine. The UI keeps
// ticking and rendering the loading scene meanwhile.
func (m Model) changeCmd(req scene.Request) tea.Cmd {
	manager, ctx := m.manager, m.ctx
	return func() tea.Msg {
		err := manager.ChangeScene(ctx, req.Target, req.Options()...)
		return TransitionDoneMsg{Request: req, Err: err}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if m.keyMapper.MapKeyToFrame(msg, &m.input) {
			return m.quit()
		}
		return m, nil

	case tea.WindowSizeMsg:
		m.screen.Resize(msg.Width, msg.Height)
		return m, nil

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case TransitionDoneMsg:
		return m.handleTransitionDone(msg)
	}

	return m, nil
}

func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	if m.quitting {
		return m, nil
	}

	interval := tickInterval(m.tickRate)
	dt := interval
	if !m.lastTick.IsZero() {
		dt = min(now.Sub(m.lastTick), maxTickGap*interval)
	}
	m.lastTick = now

	if !m.input.Empty() {
		m.manager.HandleInput(m.input)
		m.input.Clear()
	}
	m.manager.Update(dt)

	cmds := []tea.Cmd{tickCmd(m.tickRate)}
	if !m.transitioning {
		if req, ok := m.manager.TakeRequest(); ok {
			if req.Quit {
				return m.quit()
			}
			m.transitioning = true
			cmds = append(cmds, m.changeCmd(req))
		}
	}
	return m, tea.Batch(cmds...)
}

func (m Model) handleTransitionDone(msg TransitionDoneMsg) (tea.Model, tea.Cmd) {
	m.transitioning = false
	if msg.Err == nil || errors.Is(msg.Err, scene.ErrClosed) {
		return m, nil
	}

	m.logger.Error("scene change failed", "target", msg.Request.Target, "error", msg.Err)
	if m.manager.Top() == nil {
		// Nothing left to show.
		m.err = msg.Err
		return m.quit()
	}
	return m, nil
}

func (m Model) quit() (tea.Model, tea.Cmd) {
	if !m.quitting {
		m.quitting = true
		m.manager.Close()
	}
	return m, tea.Quit
}

// View renders the active scenes to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	m.screen.Clear()
	m.manager.Render()
	return RenderScreen(m.screen)
}

// Run starts a Bubble Tea program for a local session.
func Run(ctx context.Context, opts Options) error {
	model, err := NewModel(ctx, opts)
	if err != nil {
		return err
	}

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithContext(ctx),
	)

	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(Model); ok {
		return fm.Err()
	}
	return nil
}
