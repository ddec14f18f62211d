package ffd

import (
	"github.com/Faultbox/latticeforge/internal/engine/lattice"
	"github.com/Faultbox/latticeforge/pkg/math"
)

// Evaluator maps rest-pose points through a lattice.
// It reuses basis buffers between calls, so one Evaluator must not be
// shared across goroutines. The lattice must not be rebuilt while an
// Evaluator over it is in use.
type Evaluator struct {
	lat        *lattice.Lattice
	bu, bv, bw []float64
}

// NewEvaluator prepares an evaluator for lat.
func NewEvaluator(lat *lattice.Lattice) *Evaluator {
	spans := lat.Spans()
	return &Evaluator{
		lat: lat,
		bu:  make([]float64, spans[0]+1),
		bv:  make([]float64, spans[1]+1),
		bw:  make([]float64, spans[2]+1),
	}
}

// Eval returns the deformed position of p.
func (e *Evaluator) Eval(p math.Vec3) math.Vec3 {
	s, t, u := Parametric(p, e.lat.Frame())
	bernsteinInto(e.bu, s)
	bernsteinInto(e.bv, t)
	bernsteinInto(e.bw, u)

	var out math.Vec3
	for k, wk := range e.bw {
		if wk == 0 {
			continue
		}
		for j, wj := range e.bv {
			wjk := wj * wk
			if wjk == 0 {
				continue
			}
			for i, wi := range e.bu {
				w := wi * wjk
				if w == 0 {
					continue
				}
				out = out.Add(e.lat.At(i, j, k).Scale(w))
			}
		}
	}
	return out
}

// Evaluate returns the deformed position of a single world point.
func Evaluate(p math.Vec3, lat *lattice.Lattice) math.Vec3 {
	return NewEvaluator(lat).Eval(p)
}
