package sat

import (
	"math"
	"testing"

	"github.com/vovakirdan/tui-collide/internal/core"
)

func square(size float64) []core.Vec2 {
	return []core.Vec2{core.V(0, 0), core.V(size, 0), core.V(size, size), core.V(0, size)}
}

// regular returns an n-gon of the given radius centred on the origin.
func regular(n int, radius, phase float64) []core.Vec2 {
	pts := make([]core.Vec2, n)
	for i := range pts {
		a := phase + 2*math.Pi*float64(i)/float64(n)
		pts[i] = core.V(radius*math.Cos(a), radius*math.Sin(a))
	}
	return pts
}

func TestEdgeNormals(t *testing.T) {
	tests := []struct {
		name   string
		points []core.Vec2
		want   []core.Vec2
	}{
		{
			name:   "square keeps one axis per direction",
			points: square(1),
			want:   []core.Vec2{core.V(0, 1), core.V(-1, 0)},
		},
		{
			name:   "right triangle",
			points: []core.Vec2{core.V(0, 0), core.V(2, 0), core.V(0, 2)},
			want:   []core.Vec2{core.V(0, 2), core.V(-2, -2), core.V(2, 0)},
		},
		{
			name:   "repeated vertex skips zero edge",
			points: []core.Vec2{core.V(0, 0), core.V(0, 0), core.V(2, 0), core.V(0, 2)},
			want:   []core.Vec2{core.V(0, 2), core.V(-2, -2), core.V(2, 0)},
		},
		{
			// Absolute-component matching folds (1,1) and (1,-1) together even
			// though they are different directions.
			name:   "diamond collapses to a single axis",
			points: []core.Vec2{core.V(0, 1), core.V(1, 0), core.V(0, -1), core.V(-1, 0)},
			want:   []core.Vec2{core.V(1, 1)},
		},
		{
			name:   "two points is not a polygon",
			points: []core.Vec2{core.V(0, 0), core.V(1, 0)},
			want:   nil,
		},
		{
			name:   "empty",
			points: nil,
			want:   nil,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := EdgeNormals(tc.points)
			if len(got) != len(tc.want) {
				t.Fatalf("EdgeNormals() = %v, expected %v", got, tc.want)
			}
			for i := range got {
				if got[i] != tc.want[i] {
					t.Errorf("axis %d = %v, expected %v", i, got[i], tc.want[i])
				}
			}
		})
	}
}

func TestEdgeNormalsCountBounds(t *testing.T) {
	for n := 3; n <= 12; n++ {
		pts := regular(n, 5, 0.3)
		axes := EdgeNormals(pts)
		if len(axes) < 1 || len(axes) > n {
			t.Errorf("%d-gon: got %d axes, expected between 1 and %d", n, len(axes), n)
		}
		for i, a := range axes {
			for j := i + 1; j < len(axes); j++ {
				if core.AbsEqual(a, axes[j]) {
					t.Errorf("%d-gon: axes %d and %d are duplicates", n, i, j)
				}
			}
		}
	}
}

func TestEnsureNormalsCachesOnce(t *testing.T) {
	b := NewBody(1, square(1), core.V(0, 0), core.V(0, 0))
	if len(b.Normals()) != 0 {
		t.Fatal("normals should be empty before first use")
	}

	b.EnsureNormals()
	first := b.Normals()
	if len(first) != 2 {
		t.Fatalf("expected 2 axes for a square, got %d", len(first))
	}

	// Editing points in place does not invalidate the cache.
	b.Points[2] = core.V(5, 9)
	b.EnsureNormals()
	if len(b.Normals()) != len(first) || b.Normals()[0] != first[0] || b.Normals()[1] != first[1] {
		t.Errorf("cache changed after in-place edit: %v -> %v", first, b.Normals())
	}
}

func TestSetPointsInvalidatesCache(t *testing.T) {
	b := NewBody(1, square(1), core.V(0, 0), core.V(0, 0))
	b.EnsureNormals()

	b.SetPoints([]core.Vec2{core.V(0, 0), core.V(2, 0), core.V(0, 2)})
	b.EnsureNormals()

	if len(b.Normals()) != 3 {
		t.Errorf("expected cache to be rebuilt with 3 axes, got %v", b.Normals())
	}
}

func TestNewBodyCopiesPoints(t *testing.T) {
	pts := square(1)
	b := NewBody(1, pts, core.V(0, 0), core.V(0, 0))
	pts[0] = core.V(100, 100)
	if b.Points[0] != core.V(0, 0) {
		t.Error("NewBody should copy the points slice")
	}
}
