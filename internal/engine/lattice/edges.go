package lattice

// Edge connects two control points by linear index.
type Edge struct {
	A, B int
}

// Edges lists every lattice line: all X-direction edges first, then Y, then Z.
func (l *Lattice) Edges() []Edge {
	nx, ny, nz := l.spans[0], l.spans[1], l.spans[2]
	edges := make([]Edge, 0, nx*(ny+1)*(nz+1)+(nx+1)*ny*(nz+1)+(nx+1)*(ny+1)*nz)

	for i := 0; i < nx; i++ {
		for j := 0; j <= ny; j++ {
			for k := 0; k <= nz; k++ {
				edges = append(edges, Edge{l.Index(i, j, k), l.Index(i+1, j, k)})
			}
		}
	}
	for i := 0; i <= nx; i++ {
		for j := 0; j < ny; j++ {
			for k := 0; k <= nz; k++ {
				edges = append(edges, Edge{l.Index(i, j, k), l.Index(i, j+1, k)})
			}
		}
	}
	for i := 0; i <= nx; i++ {
		for j := 0; j <= ny; j++ {
			for k := 0; k < nz; k++ {
				edges = append(edges, Edge{l.Index(i, j, k), l.Index(i, j, k+1)})
			}
		}
	}
	return edges
}
