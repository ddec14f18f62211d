package picking

import (
	gomath "math"

	"github.com/Faultbox/latticeforge/pkg/math"
)

// Hit is the nearest intersection found by a pick.
type Hit struct {
	Index int // Point index or triangle index
	T     float64
	Point math.Vec3
}

// PickPoint returns the nearest point whose handle sphere the ray hits.
func PickPoint(r Ray, points []math.Vec3, radius float64) (Hit, bool) {
	best := Hit{Index: -1, T: gomath.Inf(1)}
	for i, p := range points {
		if t, ok := r.IntersectSphere(p, radius); ok && t < best.T {
			best = Hit{Index: i, T: t, Point: r.At(t)}
		}
	}
	return best, best.Index >= 0
}

// PickMesh returns the nearest triangle hit. positions are indexed by
// triangle list indices.
func PickMesh(r Ray, positions []math.Vec3, indices []uint32) (Hit, bool) {
	if _, ok := r.IntersectBox(math.BoxFromPoints(positions)); !ok {
		return Hit{Index: -1}, false
	}

	best := Hit{Index: -1, T: gomath.Inf(1)}
	for tri := 0; tri+2 < len(indices); tri += 3 {
		a, b, c := positions[indices[tri]], positions[indices[tri+1]], positions[indices[tri+2]]
		if t, ok := r.IntersectTriangle(a, b, c); ok && t < best.T {
			best = Hit{Index: tri / 3, T: t, Point: r.At(t)}
		}
	}
	return best, best.Index >= 0
}
