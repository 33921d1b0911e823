package sat

import "github.com/vovakirdan/tui-collide/internal/core"

// EdgeNormals returns one perpendicular axis per closed edge of the polygon.
//
// Two axes count as duplicates when their absolute x and absolute y components
// both match; only the first is kept, so the result follows edge order and has
// at most len(points) entries. Zero-length edges are skipped because a zero axis
// projects everything onto a single point and can never separate. Fewer than
// three points is not a polygon and yields no axes.
func EdgeNormals(points []core.Vec2) []core.Vec2 {
	n := len(points)
	if n < 3 {
		return nil
	}

	axes := make([]core.Vec2, 0, n)
	for i := range points {
		edge := points[(i+1)%n].Sub(points[i])
		axis := core.Perp(edge)
		if core.IsZero(axis) || containsAxis(axes, axis) {
			continue
		}
		axes = append(axes, axis)
	}
	return axes
}

func containsAxis(axes []core.Vec2, axis core.Vec2) bool {
	for _, a := range axes {
		if core.AbsEqual(a, axis) {
			return true
		}
	}
	return false
}
