// Package ffd implements Sederberg-Parry free-form deformation over a
// control lattice: the trivariate Bernstein evaluator, the full-mesh
// deformation driver and the guide-restricted region blend.
package ffd

import (
	"gonum.org/v1/gonum/stat/combin"

	"github.com/Faultbox/latticeforge/internal/engine/lattice"
	"github.com/Faultbox/latticeforge/pkg/math"
)

// Bernstein returns the n+1 Bernstein polynomials of degree n at s:
// B(n,i,s) = C(n,i) * s^i * (1-s)^(n-i).
func Bernstein(n int, s float64) []float64 {
	out := make([]float64, n+1)
	bernsteinInto(out, s)
	return out
}

// bernsteinInto fills out (len n+1) with the degree-n basis at s.
// Powers are built by repeated multiplication so that s in {0, 1}
// produces exact 0/1 weights.
func bernsteinInto(out []float64, s float64) {
	n := len(out) - 1
	r := 1 - s

	// out[i] temporarily holds s^i.
	out[0] = 1
	for i := 1; i <= n; i++ {
		out[i] = out[i-1] * s
	}

	rPow := 1.0
	for i := n; i >= 0; i-- {
		out[i] *= binomial(n, i) * rPow
		rPow *= r
	}
}

// exactBinomialDegree is the largest degree whose coefficients
// combin.Binomial computes without integer overflow.
const exactBinomialDegree = 60

// binomial returns C(n, k) as a float64. Small degrees are exact; larger
// ones go through the log-gamma form.
func binomial(n, k int) float64 {
	if n <= exactBinomialDegree {
		return float64(combin.Binomial(n, k))
	}
	return combin.GeneralizedBinomial(float64(n), float64(k))
}

// Parametric maps a world point into the frame's unit cube.
// Points outside the box map outside [0,1] and are not clamped.
// A zero-thickness axis always maps to 0.
func Parametric(p math.Vec3, frame lattice.Frame) (s, t, u float64) {
	b := frame.Box
	return param(p.X, b.Min.X, b.Max.X), param(p.Y, b.Min.Y, b.Max.Y), param(p.Z, b.Min.Z, b.Max.Z)
}

func param(x, lo, hi float64) float64 {
	d := hi - lo
	if d == 0 {
		return 0
	}
	return (x - lo) / d
}

// Weights returns the trivariate weight of every control point at
// parametric (s, t, u), indexed by the lattice's linear index.
func Weights(lat *lattice.Lattice, s, t, u float64) []float64 {
	spans := lat.Spans()
	bu := Bernstein(spans[0], s)
	bv := Bernstein(spans[1], t)
	bw := Bernstein(spans[2], u)

	w := make([]float64, lat.TotalCount())
	for k, wk := range bw {
		for j, wj := range bv {
			for i, wi := range bu {
				w[lat.Index(i, j, k)] = wi * wj * wk
			}
		}
	}
	return w
}
