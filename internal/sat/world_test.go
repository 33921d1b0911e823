package sat

import (
	"testing"

	"github.com/vovakirdan/tui-collide/internal/core"
)

func still(id int, points []core.Vec2, pos core.Vec2) *Body {
	return NewBody(id, points, pos, core.V(0, 0))
}

func TestStepResetsFlags(t *testing.T) {
	a := still(1, square(1), core.V(0, 0))
	b := still(2, square(1), core.V(10, 0))
	a.Colliding, b.Colliding = true, true

	w := NewWorld([]*Body{a, b}, AxesFirst)
	w.Step()

	if a.Colliding || b.Colliding {
		t.Error("separated bodies must not keep a stale colliding flag")
	}
}

func TestStepIntegratesBeforeTesting(t *testing.T) {
	// b starts far away and moves onto a in a single tick.
	a := still(1, square(1), core.V(0, 0))
	b := NewBody(2, square(1), core.V(3, 0), core.V(-2.5, 0))

	w := NewWorld([]*Body{a, b}, AxesFirst)
	w.Step()

	if b.Position != core.V(0.5, 0) {
		t.Errorf("position = %v, expected (0.5, 0)", b.Position)
	}
	if !a.Colliding || !b.Colliding {
		t.Error("bodies overlapping after integration should collide this tick")
	}
}

func TestStepIntegration(t *testing.T) {
	b := NewBody(1, square(1), core.V(1, 2), core.V(0.5, -1))
	s := still(2, square(1), core.V(7, 7))

	w := NewWorld([]*Body{b, s}, AxesFirst)
	for range 4 {
		w.Step()
	}

	if b.Position != core.V(3, -2) {
		t.Errorf("moving body at %v, expected (3, -2)", b.Position)
	}
	if s.Position != core.V(7, 7) {
		t.Errorf("still body moved to %v", s.Position)
	}
}

func TestStepSelection(t *testing.T) {
	bodies := []*Body{
		still(1, square(1), core.V(0, 0)),
		still(2, square(1), core.V(5, 0)),
		still(3, square(1), core.V(10, 0)),
	}
	w := NewWorld(bodies, AxesFirst)
	w.Selected = 1
	w.Step()

	for i, b := range bodies {
		if b.Selected != (i == 1) {
			t.Errorf("body %d Selected = %v", i, b.Selected)
		}
	}

	w.Selected = 99
	w.Step()
	for i, b := range bodies {
		if b.Selected {
			t.Errorf("out-of-range index should select nothing, body %d selected", i)
		}
	}
}

func TestStepComputesAxes(t *testing.T) {
	b := still(1, square(1), core.V(0, 0))
	w := NewWorld([]*Body{b}, AxesFirst)
	w.Step()

	if len(b.Normals()) != 2 {
		t.Errorf("axes = %v, expected 2 after first pass", b.Normals())
	}
}

func TestStepPairCount(t *testing.T) {
	for n := 0; n <= 6; n++ {
		bodies := make([]*Body, n)
		for i := range bodies {
			bodies[i] = still(i, square(1), core.V(float64(i)*3, 0))
		}
		w := NewWorld(bodies, AxesFirst)
		w.Step()

		if got, want := w.Stats().PairTests, n*(n-1)/2; got != want {
			t.Errorf("n=%d: %d pair tests, expected %d", n, got, want)
		}
	}
}

func TestStepKeepsHitAcrossPairs(t *testing.T) {
	// a overlaps b, b is far from c. The (b, c) test runs after (a, b) and
	// must not clear b's flag.
	a := still(1, square(1), core.V(0, 0))
	b := still(2, square(1), core.V(0.5, 0.5))
	c := still(3, square(1), core.V(20, 20))

	w := NewWorld([]*Body{a, b, c}, AxesFirst)
	w.Step()

	if !a.Colliding || !b.Colliding {
		t.Error("a and b should collide")
	}
	if c.Colliding {
		t.Error("c should not collide")
	}

	st := w.Stats()
	if st.Tick != 1 || st.Colliding != 2 || st.PeakColliding != 2 {
		t.Errorf("stats = %+v", st)
	}
}

func TestStepDegenerateBodyLimitation(t *testing.T) {
	// The two-point body sits at index 0, so every pair it leads uses its
	// empty axis set and is never reported, even though it is inside box.
	line := still(1, []core.Vec2{core.V(0, 0), core.V(1, 1)}, core.V(0.5, 0.5))
	box := still(2, square(2), core.V(0, 0))

	w := NewWorld([]*Body{line, box}, AxesFirst)
	w.Step()

	if line.Colliding || box.Colliding {
		t.Error("degenerate body must not register a collision through its own axes")
	}
}

func TestStepAxisModeBoth(t *testing.T) {
	sq, tri := cornerCase()

	w := NewWorld([]*Body{sq, tri}, AxesFirst)
	w.Step()
	if !sq.Colliding {
		t.Fatal("first-axes mode should report the corner pair")
	}

	w.Mode = AxesBoth
	w.Step()
	if sq.Colliding || tri.Colliding {
		t.Error("both-axes mode should separate the corner pair")
	}
	if w.Stats().PeakColliding != 2 {
		t.Errorf("peak should remember the earlier hit, got %d", w.Stats().PeakColliding)
	}
}

func TestWorldSelectionAndRemoval(t *testing.T) {
	w := NewWorld(nil, AxesFirst)
	w.SelectNext()
	w.SelectPrev()
	if w.SelectedBody() != nil {
		t.Fatal("empty world should have no selected body")
	}

	for i := range 3 {
		w.Add(still(i+10, square(1), core.V(float64(i)*5, 0)))
	}
	if w.NextID() != 13 {
		t.Errorf("NextID() = %d, expected 13", w.NextID())
	}

	w.SelectPrev()
	if w.Selected != 2 {
		t.Errorf("SelectPrev from 0 should wrap to 2, got %d", w.Selected)
	}
	w.SelectNext()
	if w.Selected != 0 {
		t.Errorf("SelectNext from 2 should wrap to 0, got %d", w.Selected)
	}

	w.Selected = 2
	if !w.Remove(12) {
		t.Fatal("Remove(12) should find the body")
	}
	if w.Len() != 2 || w.Selected != 1 {
		t.Errorf("after removal len=%d selected=%d, expected 2 and 1", w.Len(), w.Selected)
	}
	if w.Remove(99) {
		t.Error("Remove of unknown id should report false")
	}
}
