package collisions

import (
	"fmt"

	"github.com/vovakirdan/tui-collide/internal/core"
	"github.com/vovakirdan/tui-collide/internal/sat"
	"github.com/vovakirdan/tui-collide/internal/scene"
	"github.com/vovakirdan/tui-collide/internal/storage"
)

// HandleInput applies one frame of player actions.
func (s *Scene) HandleInput(in core.InputFrame) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if in.Has(core.ActionBack) {
		s.request = &scene.Request{Target: "menu"}
		return
	}
	if s.world == nil {
		return
	}

	if in.Has(core.ActionPause) {
		s.paused = !s.paused
	}

	if in.Has(core.ActionNext) {
		s.world.SelectNext()
	}
	if in.Has(core.ActionPrev) {
		s.world.SelectPrev()
	}

	if b := s.world.SelectedBody(); b != nil {
		if in.Has(core.ActionLeft) {
			b.Speed[0] -= nudgeStep
		}
		if in.Has(core.ActionRight) {
			b.Speed[0] += nudgeStep
		}
		if in.Has(core.ActionUp) {
			b.Speed[1] -= nudgeStep
		}
		if in.Has(core.ActionDown) {
			b.Speed[1] += nudgeStep
		}
	}

	if in.Has(core.ActionAdd) {
		b := s.spawnerLocked(s.width, s.height).body(s.world.NextID())
		s.world.Add(b)
		s.world.Selected = s.world.Len() - 1
		s.setStatus(fmt.Sprintf("added body %d", b.ID))
	}

	if in.Has(core.ActionRemove) {
		if b := s.world.SelectedBody(); b != nil {
			s.world.Remove(b.ID)
			s.setStatus(fmt.Sprintf("removed body %d", b.ID))
		}
	}

	if in.Has(core.ActionAxes) {
		if s.world.Mode == sat.AxesFirst {
			s.world.Mode = sat.AxesBoth
		} else {
			s.world.Mode = sat.AxesFirst
		}
		s.setStatus("axes: " + s.world.Mode.String())
	}

	if in.Has(core.ActionSave) {
		s.saveLayoutLocked()
	}
}

func (s *Scene) saveLayoutLocked() {
	if s.store == nil {
		s.setStatus("no database, layout not saved")
		return
	}
	name := s.layout
	if name == "" {
		name = quickSaveName
	}
	err := s.store.SaveLayout(storage.Layout{Name: name, Bodies: layoutBodies(s.world.Bodies)})
	if err != nil {
		s.logger.Error("failed to save layout", "layout", name, "error", err)
		s.setStatus("save failed")
		return
	}
	s.logger.Info("layout saved", "layout", name, "bodies", s.world.Len())
	s.setStatus(fmt.Sprintf("saved layout %q", name))
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
