package ffd

import (
	"github.com/Faultbox/latticeforge/internal/engine/lattice"
	"github.com/Faultbox/latticeforge/pkg/math"
)

// DeformAll evaluates every rest vertex through lat and returns a new
// buffer with the results at matching indices. rest is never modified.
func DeformAll(rest []math.Vec3, lat *lattice.Lattice) []math.Vec3 {
	out := make([]math.Vec3, len(rest))
	e := NewEvaluator(lat)
	for i, v := range rest {
		out[i] = e.Eval(v)
	}
	return out
}
