package lattice

import (
	"fmt"

	"github.com/Faultbox/latticeforge/pkg/math"
)

// Build creates a lattice of evenly spaced control points over box.
// Point (i, j, k) sits at min + (max-min) * (i/nx, j/ny, k/nz).
func Build(box math.Box, spans Spans) (*Lattice, error) {
	if !box.Valid() {
		return nil, fmt.Errorf("box %v..%v: %w", box.Min, box.Max, ErrInvalidBounds)
	}
	if err := spans.Validate(); err != nil {
		return nil, err
	}

	l := &Lattice{
		spans:  spans,
		frame:  Frame{Box: box},
		points: make([]math.Vec3, spans.Total()),
	}

	size := box.Size()
	for k := 0; k <= spans[2]; k++ {
		for j := 0; j <= spans[1]; j++ {
			for i := 0; i <= spans[0]; i++ {
				frac := math.Vec3{
					X: float64(i) / float64(spans[0]),
					Y: float64(j) / float64(spans[1]),
					Z: float64(k) / float64(spans[2]),
				}
				l.points[l.Index(i, j, k)] = box.Min.Add(size.Mul(frac))
			}
		}
	}
	return l, nil
}
