// Package sat implements per-tick narrow-phase collision detection for convex
// polygons using the Separating Axis Theorem.
//
// The engine only answers "which bodies overlap right now". It never resolves
// collisions: no impulses, no penetration depth, no restitution.
package sat

import "github.com/vovakirdan/tui-collide/internal/core"

// Body is a convex polygon moving under constant velocity.
type Body struct {
	// ID identifies the body for selection and diagnostics.
	// The engine itself does not require it to be unique.
	ID int

	// Points are the polygon vertices in local space. Consecutive points form
	// the edges and the last point connects back to the first.
	Points []core.Vec2

	// Position is the world-space translation applied to every point.
	Position core.Vec2

	// Speed is added to Position once per tick.
	Speed core.Vec2

	// Colliding is true when the body overlapped at least one other body
	// during the most recent pass.
	Colliding bool

	// Selected is a presentation flag driven by the world's selection index.
	Selected bool

	normals []core.Vec2
	dirty   bool
}

// NewBody creates a body from local points, a position and a speed.
// The points slice is copied.
func NewBody(id int, points []core.Vec2, position, speed core.Vec2) *Body {
	return &Body{
		ID:       id,
		Points:   append([]core.Vec2(nil), points...),
		Position: position,
		Speed:    speed,
	}
}

// Normals returns the cached candidate separating axes.
// The slice is empty until EnsureNormals has run.
func (b *Body) Normals() []core.Vec2 {
	return b.normals
}

// EnsureNormals computes the axis cache when it is empty or has been marked
// dirty by SetPoints. Editing Points in place does not invalidate the cache.
func (b *Body) EnsureNormals() {
	if len(b.normals) > 0 && !b.dirty {
		return
	}
	b.normals = EdgeNormals(b.Points)
	b.dirty = false
}

// SetPoints replaces the polygon geometry and invalidates the axis cache.
func (b *Body) SetPoints(points []core.Vec2) {
	b.Points = append(b.Points[:0], points...)
	b.dirty = true
}

// Degenerate reports whether the body can never register a collision
// through its own axes.
func (b *Body) Degenerate() bool {
	return len(b.Points) < 3
}

// WorldPoints returns the vertices translated to world space.
func (b *Body) WorldPoints() []core.Vec2 {
	out := make([]core.Vec2, len(b.Points))
	for i, p := range b.Points {
		out[i] = p.Add(b.Position)
	}
	return out
}

// Bounds returns the world-space bounding box of the polygon.
func (b *Body) Bounds() core.Box {
	box := core.EmptyBox()
	for _, p := range b.Points {
		box = box.Extend(p.Add(b.Position))
	}
	return box
}

// integrate advances the position by one tick of speed. Zero components are
// skipped so a stationary axis never accumulates rounding.
func (b *Body) integrate() {
	if b.Speed.X() != 0 {
		b.Position[0] += b.Speed.X()
	}
	if b.Speed.Y() != 0 {
		b.Position[1] += b.Speed.Y()
	}
}
