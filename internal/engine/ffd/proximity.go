package ffd

import (
	"gonum.org/v1/gonum/spatial/kdtree"

	"github.com/Faultbox/latticeforge/pkg/math"
)

// ProximityIndex answers "is any guide sample within r of p" in
// logarithmic time. Which sample is nearest is irrelevant to Blend, so
// the answer matches a first-match scan over the same samples.
type ProximityIndex struct {
	tree *kdtree.Tree
}

// NewProximityIndex builds a kd-tree over a copy of samples.
func NewProximityIndex(samples []math.Vec3) *ProximityIndex {
	pts := make(kdtree.Points, len(samples))
	for i, s := range samples {
		pts[i] = kdtree.Point{s.X, s.Y, s.Z}
	}
	if len(pts) == 0 {
		return &ProximityIndex{}
	}
	return &ProximityIndex{tree: kdtree.New(pts, false)}
}

// Within reports whether some sample is strictly closer than r to p.
func (x *ProximityIndex) Within(p math.Vec3, r float64) bool {
	if x.tree == nil {
		return false
	}
	_, d2 := x.tree.Nearest(kdtree.Point{p.X, p.Y, p.Z})
	return d2 < r*r
}
