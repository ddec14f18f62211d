package guide

import "github.com/Faultbox/latticeforge/pkg/math"

// Samples returns the hull vertices followed by, when density > 1, a
// barycentric grid of density steps per edge on every face. Grid points
// on shared edges appear once per adjacent face.
func (s *Surface) Samples(density int) []math.Vec3 {
	out := append([]math.Vec3(nil), s.Vertices...)
	if density <= 1 {
		return out
	}

	step := 1 / float64(density)
	for _, f := range s.Faces {
		a, b, c := s.Vertices[f[0]], s.Vertices[f[1]], s.Vertices[f[2]]
		ab, ac := b.Sub(a), c.Sub(a)
		for i := 0; i <= density; i++ {
			for j := 0; i+j <= density; j++ {
				if isCorner(i, j, density) {
					continue
				}
				out = append(out, a.Add(ab.Scale(float64(i)*step)).Add(ac.Scale(float64(j)*step)))
			}
		}
	}
	return out
}

func isCorner(i, j, n int) bool {
	return (i == 0 && j == 0) || (i == n && j == 0) || (i == 0 && j == n)
}

// Build computes the hull of points and samples it in one step.
func Build(points []math.Vec3, density int) ([]math.Vec3, *Surface, error) {
	s, err := Hull(points)
	if err != nil {
		return nil, nil, err
	}
	return s.Samples(density), s, nil
}
