// Package scene manages the lifecycle of the units the driving loop updates and
// renders: which scenes are registered, which are active, and how the host
// moves from one to another, optionally through a loading scene.
package scene

import (
	"context"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/vovakirdan/tui-collide/internal/core"
)

// Scene is a unit with identity, setup, teardown and per-tick hooks.
type Scene interface {
	// ID returns the key the scene is registered under.
	ID() string

	// Init prepares the scene to draw on screen. It may return a Pending the
	// manager waits on before the scene counts as ready; nil means ready.
	Init(screen *core.Screen) Pending

	// Clean tears the scene down. Always called before it leaves the active set.
	Clean()

	// Update advances the scene by one tick.
	Update(dt time.Duration)

	// Render draws the scene into the screen buffer.
	Render(screen *core.Screen)
}

// InputHandler is implemented by scenes that react to player input.
type InputHandler interface {
	HandleInput(in core.InputFrame)
}

// Request asks the host to run a transition.
type Request struct {
	Target       string
	Loading      string
	KeepPrevious bool
	Quit         bool // Leave the program instead of changing scene
}

// Options converts the request into ChangeScene options.
func (r Request) Options() []ChangeOption {
	var opts []ChangeOption
	if r.Loading != "" {
		opts = append(opts, WithLoading(r.Loading))
	}
	if r.KeepPrevious {
		opts = append(opts, KeepPrevious())
	}
	return opts
}

// Requester is implemented by scenes that can ask the host for a transition,
// such as a menu. TakeRequest returns the pending request once and clears it.
type Requester interface {
	TakeRequest() (Request, bool)
}

// Pending is the result of an asynchronous Init. Wait blocks until the work
// has finished or ctx is done.
type Pending interface {
	Wait(ctx context.Context) error
}

type resolved struct {
	err error
}

func (r resolved) Wait(context.Context) error {
	return r.err
}

// Done returns a Pending that is already resolved with err.
func Done(err error) Pending {
	return resolved{err: err}
}

type task struct {
	done chan struct{}
	err  error
}

// Go runs fn on its own goroutine and returns a Pending resolved with its
// result. fn gets the errgroup's derived context: it is cancelled when ctx is
// cancelled or once fn returns. The group's Wait has no context of its own,
// so a second goroutine turns it into a channel that Wait can select on.
func Go(ctx context.Context, fn func(ctx context.Context) error) Pending {
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		return fn(gctx)
	})

	t := &task{done: make(chan struct{})}
	go func() {
		t.err = g.Wait()
		close(t.done)
	}()
	return t
}

func (t *task) Wait(ctx context.Context) error {
	select {
	case <-t.done:
		return t.err
	case <-ctx.Done():
		return ctx.Err()
	}
}
