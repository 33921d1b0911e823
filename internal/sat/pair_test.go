package sat

import (
	"testing"

	"github.com/vovakirdan/tui-collide/internal/core"
)

func TestIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Interval
		expected bool
	}{
		{"overlapping", Interval{0, 2}, Interval{1, 3}, true},
		{"contained", Interval{0, 10}, Interval{4, 5}, true},
		{"touching", Interval{0, 1}, Interval{1, 2}, true},
		{"disjoint", Interval{0, 1}, Interval{1.5, 2}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestProject(t *testing.T) {
	iv := Project(square(2), core.V(1, 1))
	if iv.Min != 0 || iv.Max != 4 {
		t.Errorf("Project() = %+v, expected [0, 4]", iv)
	}
}

func TestTestPair(t *testing.T) {
	tests := []struct {
		name     string
		offset   core.Vec2
		expected bool
	}{
		{"unit squares offset by half", core.V(0.5, 0.5), true},
		{"identical placement", core.V(0, 0), true},
		{"touching edges", core.V(1, 0), true},
		{"disjoint horizontally", core.V(3, 0), false},
		{"disjoint vertically", core.V(0, -1.01), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			a := NewBody(1, square(1), core.V(0, 0), core.V(0, 0))
			b := NewBody(2, square(1), tc.offset, core.V(0, 0))
			a.EnsureNormals()

			got := TestPair(a, b, a.Normals())
			if got != tc.expected {
				t.Errorf("TestPair() = %v, expected %v", got, tc.expected)
			}
			if a.Colliding != tc.expected || b.Colliding != tc.expected {
				t.Errorf("flags = (%v, %v), expected both %v", a.Colliding, b.Colliding, tc.expected)
			}
		})
	}
}

func TestTestPairSeparatedKeepsEarlierHit(t *testing.T) {
	a := NewBody(1, square(1), core.V(0, 0), core.V(0, 0))
	b := NewBody(2, square(1), core.V(5, 5), core.V(0, 0))
	a.EnsureNormals()
	b.Colliding = true

	if TestPair(a, b, a.Normals()) {
		t.Fatal("separated pair should not be marked")
	}
	if !b.Colliding {
		t.Error("a separated pair must not clear a flag set by another pair")
	}
	if a.Colliding {
		t.Error("separated pair must not set a flag")
	}
}

func TestTestPairEmptyAxesNeverCollides(t *testing.T) {
	// A two-point body has no axes, so overlap is never reported through it
	// even though it lies inside the square.
	line := NewBody(1, []core.Vec2{core.V(0, 0), core.V(1, 1)}, core.V(0, 0), core.V(0, 0))
	box := NewBody(2, square(2), core.V(0, 0), core.V(0, 0))
	line.EnsureNormals()

	if len(line.Normals()) != 0 {
		t.Fatalf("expected no axes for a two-point body, got %v", line.Normals())
	}
	if TestPair(line, box, line.Normals()) {
		t.Error("empty axis set must never report a collision")
	}
	if line.Colliding || box.Colliding {
		t.Error("flags must stay false for an empty axis set")
	}
}

// cornerCase builds a square and a triangle that overlap on both of the
// square's axes but are split by the triangle's hypotenuse.
func cornerCase() (*Body, *Body) {
	sq := NewBody(1, square(1), core.V(0, 0), core.V(0, 0))
	tri := NewBody(2, []core.Vec2{core.V(0, 0.8), core.V(0.8, 0), core.V(0.8, 0.8)}, core.V(0.8, 0.8), core.V(0, 0))
	sq.EnsureNormals()
	tri.EnsureNormals()
	return sq, tri
}

func TestFirstBodyAxesOnlyReportsCornerOverlap(t *testing.T) {
	sq, tri := cornerCase()

	if !TestPair(sq, tri, pairAxes(AxesFirst, sq, tri)) {
		t.Error("with only the square's axes the pair is reported as colliding")
	}
}

func TestBothBodiesAxesSeparatesCorner(t *testing.T) {
	sq, tri := cornerCase()

	if TestPair(sq, tri, pairAxes(AxesBoth, sq, tri)) {
		t.Error("the triangle's hypotenuse axis should separate the pair")
	}
	if sq.Colliding || tri.Colliding {
		t.Error("separated pair should leave flags false")
	}
}

func TestPairAxesUnionDeduplicates(t *testing.T) {
	a := NewBody(1, square(1), core.V(0, 0), core.V(0, 0))
	b := NewBody(2, square(1), core.V(4, 4), core.V(0, 0))
	c := NewBody(3, square(3), core.V(0, 0), core.V(0, 0))
	a.EnsureNormals()
	b.EnsureNormals()
	c.EnsureNormals()

	if got := pairAxes(AxesBoth, a, b); len(got) != 2 {
		t.Errorf("union of equal squares' axes = %v, expected 2 axes", got)
	}
	// Axes are not normalised, so a scaled square contributes new entries.
	if got := pairAxes(AxesBoth, a, c); len(got) != 4 {
		t.Errorf("union with a larger square = %v, expected 4 axes", got)
	}
	if got := pairAxes(AxesFirst, a, c); len(got) != 2 {
		t.Errorf("first-body axes = %v, expected 2 axes", got)
	}
}

func TestParseAxisMode(t *testing.T) {
	tests := []struct {
		in   string
		want AxisMode
		ok   bool
	}{
		{"", AxesFirst, true},
		{"first", AxesFirst, true},
		{"both", AxesBoth, true},
		{"all", AxesFirst, false},
	}

	for _, tc := range tests {
		got, ok := ParseAxisMode(tc.in)
		if got != tc.want || ok != tc.ok {
			t.Errorf("ParseAxisMode(%q) = (%v, %v), expected (%v, %v)", tc.in, got, ok, tc.want, tc.ok)
		}
	}
	if AxesBoth.String() != "both" || AxesFirst.String() != "first" {
		t.Error("unexpected mode names")
	}
}
