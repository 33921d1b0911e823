package sat

import (
	"math"

	"github.com/vovakirdan/tui-collide/internal/core"
)

// Interval is the [Min, Max] range of a polygon projected onto an axis.
type Interval struct {
	Min, Max float64
}

// Overlaps reports whether two closed intervals share at least one point.
// Touching intervals overlap.
func (i Interval) Overlaps(o Interval) bool {
	return i.Max >= o.Min && o.Max >= i.Min
}

// Project returns the projection interval of points onto axis.
func Project(points []core.Vec2, axis core.Vec2) Interval {
	iv := Interval{Min: math.Inf(1), Max: math.Inf(-1)}
	for _, p := range points {
		d := p.Dot(axis)
		iv.Min = math.Min(iv.Min, d)
		iv.Max = math.Max(iv.Max, d)
	}
	return iv
}

// Separated reports whether some axis splits the two world-space vertex sets.
// It stops at the first separating axis. With no axes nothing is separated.
func Separated(pa, pb, axes []core.Vec2) bool {
	for _, axis := range axes {
		if !Project(pa, axis).Overlaps(Project(pb, axis)) {
			return true
		}
	}
	return false
}

// TestPair runs the separating axis test between a and b over axes and marks
// both bodies colliding when every axis shows overlap. A separated pair leaves
// the flags untouched so an earlier hit in the same pass is preserved.
//
// An empty axis set never marks the pair, even if the shapes overlap.
// Returns whether the pair was marked.
func TestPair(a, b *Body, axes []core.Vec2) bool {
	if len(axes) == 0 {
		return false
	}
	if Separated(a.WorldPoints(), b.WorldPoints(), axes) {
		return false
	}
	a.Colliding = true
	b.Colliding = true
	return true
}

// AxisMode selects which bodies contribute candidate axes to a pair test.
type AxisMode int

const (
	// AxesFirst tests only the first body's axes. It can report overlap for
	// shapes that are separated along one of the second body's edges.
	AxesFirst AxisMode = iota

	// AxesBoth tests the union of both bodies' axes, which is exact for
	// convex polygons.
	AxesBoth
)

// String returns the config name of the mode.
func (m AxisMode) String() string {
	if m == AxesBoth {
		return "both"
	}
	return "first"
}

// ParseAxisMode converts a config name into an AxisMode.
func ParseAxisMode(s string) (AxisMode, bool) {
	switch s {
	case "", "first":
		return AxesFirst, true
	case "both":
		return AxesBoth, true
	}
	return AxesFirst, false
}

// pairAxes returns the axis set a pair test should use under mode.
func pairAxes(mode AxisMode, a, b *Body) []core.Vec2 {
	if mode != AxesBoth || len(b.Normals()) == 0 {
		return a.Normals()
	}
	axes := append([]core.Vec2(nil), a.Normals()...)
	for _, n := range b.Normals() {
		if !containsAxis(axes, n) {
			axes = append(axes, n)
		}
	}
	return axes
}
