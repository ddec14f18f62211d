// Package guide builds the guide surface a user authors by placing points,
// and samples it into positions for the region blend.
package guide

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/spatial/r3"

	"github.com/Faultbox/latticeforge/pkg/math"
)

// MinPoints is the smallest point set that can enclose a volume.
const MinPoints = 4

var (
	ErrTooFewPoints   = errors.New("guide surface needs at least 4 points")
	ErrDegenerateHull = errors.New("guide points do not span a volume")
)

// Surface is a closed triangulated convex hull.
type Surface struct {
	Vertices []math.Vec3
	Faces    [][3]int
}

type face struct {
	v    [3]int
	n    r3.Vec
	d    float64
	dead bool
}

func newFace(pts []r3.Vec, a, b, c int) *face {
	n := r3.Unit(r3.Cross(r3.Sub(pts[b], pts[a]), r3.Sub(pts[c], pts[a])))
	return &face{v: [3]int{a, b, c}, n: n, d: r3.Dot(n, pts[a])}
}

func (f *face) above(p r3.Vec) float64 {
	return r3.Dot(f.n, p) - f.d
}

// Hull computes the convex hull of points by incremental insertion.
// Points inside the hull, or within tolerance of a face, are dropped.
func Hull(points []math.Vec3) (*Surface, error) {
	if len(points) < MinPoints {
		return nil, fmt.Errorf("%d points: %w", len(points), ErrTooFewPoints)
	}

	pts := make([]r3.Vec, len(points))
	for i, p := range points {
		pts[i] = p.R3()
	}
	extent := math.BoxFromPoints(points).Size().Length()
	eps := 1e-9 * extent

	seed, err := initialTetrahedron(pts, eps)
	if err != nil {
		return nil, err
	}

	centroid := r3.Scale(0.25, r3.Add(r3.Add(pts[seed[0]], pts[seed[1]]), r3.Add(pts[seed[2]], pts[seed[3]])))
	var faces []*face
	for _, tri := range [4][3]int{{0, 1, 2}, {0, 3, 1}, {0, 2, 3}, {1, 3, 2}} {
		f := newFace(pts, seed[tri[0]], seed[tri[1]], seed[tri[2]])
		if f.above(centroid) > 0 {
			f = newFace(pts, seed[tri[0]], seed[tri[2]], seed[tri[1]])
		}
		faces = append(faces, f)
	}

	used := map[int]bool{seed[0]: true, seed[1]: true, seed[2]: true, seed[3]: true}
	for i, p := range pts {
		if used[i] {
			continue
		}

		var lit []*face
		visible := make(map[[2]int]bool)
		for _, f := range faces {
			if f.dead || f.above(p) <= eps {
				continue
			}
			f.dead = true
			lit = append(lit, f)
			for k := range f.v {
				visible[[2]int{f.v[k], f.v[(k+1)%3]}] = true
			}
		}
		if len(lit) == 0 {
			continue
		}

		// Horizon edges belong to exactly one lit face; walking lit faces
		// in order keeps the output deterministic.
		for _, f := range lit {
			for k := range f.v {
				a, b := f.v[k], f.v[(k+1)%3]
				if !visible[[2]int{b, a}] {
					faces = append(faces, newFace(pts, a, b, i))
				}
			}
		}
		used[i] = true
	}

	return collect(points, faces), nil
}

// initialTetrahedron picks four points spanning a non-degenerate volume.
func initialTetrahedron(pts []r3.Vec, eps float64) ([4]int, error) {
	var seed [4]int

	best := -1.0
	for i, p := range pts {
		if d := r3.Norm(r3.Sub(p, pts[0])); d > best {
			best, seed[1] = d, i
		}
	}
	if best <= eps {
		return seed, fmt.Errorf("all points coincide: %w", ErrDegenerateHull)
	}

	axis := r3.Unit(r3.Sub(pts[seed[1]], pts[0]))
	best = -1
	for i, p := range pts {
		if d := r3.Norm(r3.Cross(axis, r3.Sub(p, pts[0]))); d > best {
			best, seed[2] = d, i
		}
	}
	if best <= eps {
		return seed, fmt.Errorf("points are collinear: %w", ErrDegenerateHull)
	}

	n := r3.Unit(r3.Cross(r3.Sub(pts[seed[1]], pts[0]), r3.Sub(pts[seed[2]], pts[0])))
	best = -1
	for i, p := range pts {
		d := r3.Dot(n, r3.Sub(p, pts[0]))
		if d < 0 {
			d = -d
		}
		if d > best {
			best, seed[3] = d, i
		}
	}
	if best <= eps {
		return seed, fmt.Errorf("points are coplanar: %w", ErrDegenerateHull)
	}
	return seed, nil
}

// collect compacts the live faces onto the vertices they reference,
// in order of first use.
func collect(points []math.Vec3, faces []*face) *Surface {
	s := &Surface{}
	remap := make(map[int]int)
	for _, f := range faces {
		if f.dead {
			continue
		}
		var tri [3]int
		for k, v := range f.v {
			idx, ok := remap[v]
			if !ok {
				idx = len(s.Vertices)
				remap[v] = idx
				s.Vertices = append(s.Vertices, points[v])
			}
			tri[k] = idx
		}
		s.Faces = append(s.Faces, tri)
	}
	return s
}
