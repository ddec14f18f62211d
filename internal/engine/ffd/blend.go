package ffd

import (
	"errors"
	"fmt"
	gomath "math"

	"github.com/Faultbox/latticeforge/internal/engine/lattice"
	"github.com/Faultbox/latticeforge/pkg/math"
)

// DefaultRadius is the guide proximity threshold in world units.
const DefaultRadius = 20.0

// indexThreshold is the sample count above which Region builds a kd-tree
// instead of scanning samples per vertex.
const indexThreshold = 64

var ErrInvalidFactor = errors.New("blend factor must be within [0, 1]")

// Match returns the index of the first sample strictly closer than radius
// to v, scanning samples in order.
func Match(v math.Vec3, samples []math.Vec3, radius float64) (int, bool) {
	r2 := radius * radius
	for i, s := range samples {
		if v.DistanceSquared(s) < r2 {
			return i, true
		}
	}
	return -1, false
}

// Region reports, per rest vertex, whether any guide sample lies within radius.
func Region(rest, samples []math.Vec3, radius float64) []bool {
	in := make([]bool, len(rest))
	if len(samples) == 0 || radius <= 0 {
		return in
	}

	if len(samples) > indexThreshold {
		idx := NewProximityIndex(samples)
		for i, v := range rest {
			in[i] = idx.Within(v, radius)
		}
		return in
	}

	for i, v := range rest {
		_, in[i] = Match(v, samples, radius)
	}
	return in
}

// Blend moves each rest vertex near the guide toward its deformed position
// by factor; vertices away from the guide stay at rest. The result is
// computed from rest on every call.
func Blend(rest, samples []math.Vec3, lat *lattice.Lattice, radius, factor float64) ([]math.Vec3, error) {
	if err := checkFactor(factor); err != nil {
		return nil, err
	}
	return BlendRegion(rest, Region(rest, samples, radius), lat, factor)
}

// BlendRegion is Blend with the proximity classification already done;
// in[i] selects whether rest[i] is blended.
func BlendRegion(rest []math.Vec3, in []bool, lat *lattice.Lattice, factor float64) ([]math.Vec3, error) {
	if err := checkFactor(factor); err != nil {
		return nil, err
	}
	if len(in) != len(rest) {
		return nil, fmt.Errorf("region mask has %d entries for %d vertices", len(in), len(rest))
	}

	out := make([]math.Vec3, len(rest))
	e := NewEvaluator(lat)
	for i, v := range rest {
		if !in[i] {
			out[i] = v
			continue
		}
		out[i] = v.Lerp(e.Eval(v), factor)
	}
	return out, nil
}

func checkFactor(f float64) error {
	if gomath.IsNaN(f) || f < 0 || f > 1 {
		return fmt.Errorf("factor %v: %w", f, ErrInvalidFactor)
	}
	return nil
}
