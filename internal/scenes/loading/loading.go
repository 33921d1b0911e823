// Package loading implements the scene shown while another scene initialises.
package loading

import (
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/vovakirdan/tui-collide/internal/core"
	"github.com/vovakirdan/tui-collide/internal/registry"
	"github.com/vovakirdan/tui-collide/internal/scene"
)

// ID is the registry key of the loading scene.
const ID = "loading"

const (
	barWidth        = 30
	defaultDuration = time.Second
)

// Scene draws a spinner and an eased progress bar over a cleared screen.
// Progress is cosmetic: it fills over the expected load time and then holds.
type Scene struct {
	duration time.Duration
	frames   []string
	frameDur time.Duration

	mu       sync.Mutex
	elapsed  time.Duration
	tween    *gween.Tween
	progress float32
}

// New creates a loading scene whose bar fills over duration.
func New(duration time.Duration) *Scene {
	if duration <= 0 {
		duration = defaultDuration
	}
	return &Scene{
		duration: duration,
		frames:   spinner.Dot.Frames,
		frameDur: spinner.Dot.FPS,
	}
}

func (s *Scene) ID() string { return ID }

// Init restarts the animation. The scene is ready immediately.
func (s *Scene) Init(*core.Screen) scene.Pending {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elapsed = 0
	s.progress = 0
	s.tween = gween.New(0, 1, float32(s.duration.Seconds()), ease.InOutQuad)
	return nil
}

func (s *Scene) Clean() {
	s.mu.Lock()
	s.tween = nil
	s.mu.Unlock()
}

func (s *Scene) Update(dt time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.elapsed += dt
	if s.tween != nil {
		s.progress, _ = s.tween.Update(float32(dt.Seconds()))
	}
}

// Frame returns the spinner frame for the current time.
func (s *Scene) Frame() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.frameLocked()
}

func (s *Scene) frameLocked() string {
	if len(s.frames) == 0 || s.frameDur <= 0 {
		return ""
	}
	return s.frames[int(s.elapsed/s.frameDur)%len(s.frames)]
}

// Progress returns the bar fill in [0, 1].
func (s *Scene) Progress() float32 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.progress
}

func (s *Scene) Render(dst *core.Screen) {
	s.mu.Lock()
	defer s.mu.Unlock()

	dst.Clear()
	y := dst.Height()/2 - 1

	dst.DrawTextCentered(y, s.frameLocked()+"Loading", core.ColorCyan)

	filled := int(float32(barWidth)*s.progress + 0.5)
	filled = core.Clamp(filled, 0, barWidth)
	bar := "[" + strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled) + "]"
	dst.DrawTextCentered(y+2, bar, core.ColorGray)
}

func init() {
	registry.Register(ID, "Loading", registry.KindSupport, func(d registry.Deps) scene.Scene {
		return New(d.Config.Loading.MinDuration)
	})
}
