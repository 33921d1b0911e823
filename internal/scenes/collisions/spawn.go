package collisions

import (
	"math"
	"math/rand"

	"github.com/vovakirdan/tui-collide/internal/config"
	"github.com/vovakirdan/tui-collide/internal/core"
	"github.com/vovakirdan/tui-collide/internal/sat"
	"github.com/vovakirdan/tui-collide/internal/storage"
)

// regularPolygon returns n vertices on a circle of the given radius around the
// origin, starting at phase radians. The result is always convex.
func regularPolygon(n int, radius, phase float64) []core.Vec2 {
	pts := make([]core.Vec2, n)
	for i := range pts {
		a := phase + 2*math.Pi*float64(i)/float64(n)
		pts[i] = core.V(radius*math.Cos(a), radius*math.Sin(a))
	}
	return pts
}

// spawner builds random bodies inside a world of the given extent.
type spawner struct {
	rng    *rand.Rand
	sim    config.SimulationConfig
	width  float64
	height float64
}

func (s spawner) body(id int) *sat.Body {
	n := s.sim.MinVertices + s.rng.Intn(s.sim.MaxVertices-s.sim.MinVertices+1)
	r := s.sim.MinRadius + s.rng.Float64()*(s.sim.MaxRadius-s.sim.MinRadius)
	phase := s.rng.Float64() * 2 * math.Pi

	pos := core.V(
		s.coord(r, s.width),
		s.coord(r, s.height),
	)
	speed := core.V(
		(s.rng.Float64()*2-1)*s.sim.MaxSpeed.X,
		(s.rng.Float64()*2-1)*s.sim.MaxSpeed.Y,
	)
	return sat.NewBody(id, regularPolygon(n, r, phase), pos, speed)
}

// coord picks a centre coordinate that keeps a body of radius r inside
// [0, extent] when the extent allows it.
func (s spawner) coord(r, extent float64) float64 {
	if extent <= 2*r {
		return extent / 2
	}
	return r + s.rng.Float64()*(extent-2*r)
}

func (s spawner) bodies(n int) []*sat.Body {
	out := make([]*sat.Body, n)
	for i := range out {
		out[i] = s.body(i)
	}
	return out
}

func toPoint(v core.Vec2) storage.Point {
	return storage.Point{X: v.X(), Y: v.Y()}
}

func fromPoint(p storage.Point) core.Vec2 {
	return core.V(p.X, p.Y)
}

// layoutBodies converts the world's bodies into their stored form.
func layoutBodies(bodies []*sat.Body) []storage.BodySpec {
	specs := make([]storage.BodySpec, len(bodies))
	for i, b := range bodies {
		pts := make([]storage.Point, len(b.Points))
		for k, p := range b.Points {
			pts[k] = toPoint(p)
		}
		specs[i] = storage.BodySpec{
			Points:   pts,
			Position: toPoint(b.Position),
			Speed:    toPoint(b.Speed),
		}
	}
	return specs
}

// bodiesFromLayout rebuilds bodies from a stored layout. IDs follow layout order.
func bodiesFromLayout(specs []storage.BodySpec) []*sat.Body {
	bodies := make([]*sat.Body, len(specs))
	for i, spec := range specs {
		pts := make([]core.Vec2, len(spec.Points))
		for k, p := range spec.Points {
			pts[k] = fromPoint(p)
		}
		bodies[i] = sat.NewBody(i, pts, fromPoint(spec.Position), fromPoint(spec.Speed))
	}
	return bodies
}

// bounce reverses the speed component of every body that is outside the
// world box and still heading further out.
func bounce(bodies []*sat.Body, width, height float64) {
	for _, b := range bodies {
		box := b.Bounds()
		if (box.Min.X() < 0 && b.Speed.X() < 0) || (box.Max.X() > width && b.Speed.X() > 0) {
			b.Speed[0] = -b.Speed[0]
		}
		if (box.Min.Y() < 0 && b.Speed.Y() < 0) || (box.Max.Y() > height && b.Speed.Y() > 0) {
			b.Speed[1] = -b.Speed[1]
		}
	}
}
