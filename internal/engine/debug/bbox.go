// Package debug produces line geometry for the lattice overlay: the frame
// box and the control-point grid, flattened for upload by a renderer.
package debug

import (
	"github.com/Faultbox/latticeforge/internal/engine/lattice"
	"github.com/Faultbox/latticeforge/pkg/math"
)

// BBoxWireframeVertexCount is the number of vertices for a bbox wireframe (12 edges × 2).
const BBoxWireframeVertexCount = 24

// DefaultBBoxPadding is the default padding for selection boxes.
const DefaultBBoxPadding = 1.0

// GenerateBBoxWireframeVertices creates line vertices for a wireframe bounding box.
// Returns 24 vertices (12 edges × 2 endpoints), format: [x, y, z] per vertex.
func GenerateBBoxWireframeVertices(b math.Box) []float32 {
	minX, minY, minZ := float32(b.Min.X), float32(b.Min.Y), float32(b.Min.Z)
	maxX, maxY, maxZ := float32(b.Max.X), float32(b.Max.Y), float32(b.Max.Z)
	return []float32{
		// Bottom face (4 edges)
		minX, minY, minZ, maxX, minY, minZ,
		maxX, minY, minZ, maxX, minY, maxZ,
		maxX, minY, maxZ, minX, minY, maxZ,
		minX, minY, maxZ, minX, minY, minZ,
		// Top face (4 edges)
		minX, maxY, minZ, maxX, maxY, minZ,
		maxX, maxY, minZ, maxX, maxY, maxZ,
		maxX, maxY, maxZ, minX, maxY, maxZ,
		minX, maxY, maxZ, minX, maxY, minZ,
		// Vertical edges (4 edges)
		minX, minY, minZ, minX, maxY, minZ,
		maxX, minY, minZ, maxX, maxY, minZ,
		maxX, minY, maxZ, maxX, maxY, maxZ,
		minX, minY, maxZ, minX, maxY, maxZ,
	}
}

// GenerateFrameWireframe outlines the lattice frame, expanded by padding.
func GenerateFrameWireframe(lat *lattice.Lattice, padding float64) []float32 {
	return GenerateBBoxWireframeVertices(lat.Frame().Box.Pad(padding))
}

// GenerateLatticeWireframe returns two vertices per lattice edge at the
// current control-point positions, in lattice.Edges order.
func GenerateLatticeWireframe(lat *lattice.Lattice) []float32 {
	edges := lat.Edges()
	pts := lat.Points()
	out := make([]float32, 0, len(edges)*6)
	for _, e := range edges {
		a, b := pts[e.A], pts[e.B]
		out = append(out,
			float32(a.X), float32(a.Y), float32(a.Z),
			float32(b.X), float32(b.Y), float32(b.Z),
		)
	}
	return out
}

// FlattenPositions converts a vertex buffer to interleaved float32 xyz.
func FlattenPositions(pts []math.Vec3) []float32 {
	out := make([]float32, 0, len(pts)*3)
	for _, p := range pts {
		out = append(out, float32(p.X), float32(p.Y), float32(p.Z))
	}
	return out
}
