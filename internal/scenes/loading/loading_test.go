package loading

import (
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/bubbles/spinner"

	"github.com/vovakirdan/tui-collide/internal/core"
)

func TestInitIsReady(t *testing.T) {
	s := New(time.Second)
	if p := s.Init(core.NewScreen(40, 10)); p != nil {
		t.Errorf("loading scene should be ready immediately, got %v", p)
	}
	if s.Progress() != 0 {
		t.Errorf("progress = %v after init", s.Progress())
	}
}

func TestProgressEases(t *testing.T) {
	s := New(time.Second)
	s.Init(core.NewScreen(40, 10))

	s.Update(250 * time.Millisecond)
	quarter := s.Progress()
	s.Update(250 * time.Millisecond)
	half := s.Progress()
	s.Update(2 * time.Second)
	done := s.Progress()

	if !(quarter > 0 && quarter < half && half < done) {
		t.Errorf("progress not increasing: %v, %v, %v", quarter, half, done)
	}
	// In-out easing is slow at the start.
	if quarter >= 0.25 {
		t.Errorf("quarter progress = %v, expected below linear", quarter)
	}
	if done != 1 {
		t.Errorf("progress = %v after the full duration, expected 1", done)
	}
}

func TestSpinnerFrames(t *testing.T) {
	s := New(time.Second)
	s.Init(core.NewScreen(40, 10))

	if s.Frame() != spinner.Dot.Frames[0] {
		t.Errorf("first frame = %q", s.Frame())
	}
	s.Update(spinner.Dot.FPS)
	if s.Frame() != spinner.Dot.Frames[1] {
		t.Errorf("frame after one interval = %q", s.Frame())
	}
	s.Update(spinner.Dot.FPS * time.Duration(len(spinner.Dot.Frames)))
	if s.Frame() != spinner.Dot.Frames[1] {
		t.Errorf("frames should wrap, got %q", s.Frame())
	}
}

func TestRenderClearsAndDrawsBar(t *testing.T) {
	screen := core.NewScreen(40, 10)
	screen.DrawText(0, 0, "underneath", core.ColorDefault)

	s := New(time.Second)
	s.Init(screen)
	s.Update(2 * time.Second)
	s.Render(screen)

	if strings.Contains(screen.String(), "underneath") {
		t.Error("loading scene should cover the scene below")
	}
	if !strings.Contains(screen.Row(4), "Loading") {
		t.Errorf("row 4 = %q", screen.Row(4))
	}
	if !strings.Contains(screen.Row(6), strings.Repeat("█", barWidth)) {
		t.Errorf("full bar expected on row 6, got %q", screen.Row(6))
	}
}

func TestZeroDurationFallsBack(t *testing.T) {
	s := New(0)
	if s.duration != defaultDuration {
		t.Errorf("duration = %v, expected %v", s.duration, defaultDuration)
	}
}
