// Package mesh supplies undeformed triangle meshes for the closed set of
// base shapes an editing session can start from.
package mesh

import "github.com/Faultbox/latticeforge/pkg/math"

// Mesh is an indexed triangle mesh. Only Positions feed the deformation
// engine; Indices are kept for presentation.
type Mesh struct {
	Positions []math.Vec3
	Indices   []uint32
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Positions)
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// Bounds returns the axis-aligned bounding box of all positions.
func (m *Mesh) Bounds() math.Box {
	return math.BoxFromPoints(m.Positions)
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Positions: append([]math.Vec3(nil), m.Positions...),
		Indices:   append([]uint32(nil), m.Indices...),
	}
}

// append merges other into m, offsetting its indices.
func (m *Mesh) append(other *Mesh) {
	base := uint32(len(m.Positions))
	m.Positions = append(m.Positions, other.Positions...)
	for _, idx := range other.Indices {
		m.Indices = append(m.Indices, base+idx)
	}
}

// addTriangle appends a triangle unless it is degenerate relative to its
// own edge lengths (collapsed poles and cone apexes).
func (m *Mesh) addTriangle(a, b, c uint32) {
	pa := m.Positions[a]
	ab, ac := m.Positions[b].Sub(pa), m.Positions[c].Sub(pa)
	if ab.Cross(ac).Length() <= 1e-12*(ab.Dot(ab)+ac.Dot(ac)) {
		return
	}
	m.Indices = append(m.Indices, a, b, c)
}
