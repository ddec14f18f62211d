package mesh

import (
	"errors"
	"fmt"

	"github.com/Faultbox/latticeforge/pkg/math"
)

// Refinement level bounds.
const (
	MinLevel = 0
	MaxLevel = 4
)

var ErrInvalidLevel = errors.New("refinement level out of range")

// Refine splits every triangle into four at its edge midpoints, level times.
// The surface shape is unchanged; only vertex density grows.
func Refine(m *Mesh, level int) (*Mesh, error) {
	if level < MinLevel || level > MaxLevel {
		return nil, fmt.Errorf("level %d: %w", level, ErrInvalidLevel)
	}
	out := m.Clone()
	for i := 0; i < level; i++ {
		out = subdivide(out)
	}
	return out, nil
}

// subdivide performs one 1-to-4 midpoint split, sharing midpoints of
// edges that reference the same vertex pair.
func subdivide(m *Mesh) *Mesh {
	out := &Mesh{
		Positions: append(make([]math.Vec3, 0, len(m.Positions)*4), m.Positions...),
		Indices:   make([]uint32, 0, len(m.Indices)*4),
	}
	mid := make(map[[2]uint32]uint32)
	midpoint := func(a, b uint32) uint32 {
		key := [2]uint32{a, b}
		if b < a {
			key = [2]uint32{b, a}
		}
		if idx, ok := mid[key]; ok {
			return idx
		}
		idx := uint32(len(out.Positions))
		out.Positions = append(out.Positions, m.Positions[a].Lerp(m.Positions[b], 0.5))
		mid[key] = idx
		return idx
	}

	for t := 0; t+2 < len(m.Indices); t += 3 {
		a, b, c := m.Indices[t], m.Indices[t+1], m.Indices[t+2]
		ab, bc, ca := midpoint(a, b), midpoint(b, c), midpoint(c, a)
		out.Indices = append(out.Indices,
			a, ab, ca,
			ab, b, bc,
			ca, bc, c,
			ab, bc, ca,
		)
	}
	return out
}

// Load generates the catalog entry's mesh at the given refinement level
// and applies its mesh scale.
func Load(e Entry, level int) (*Mesh, error) {
	if e.Shape == nil {
		return nil, fmt.Errorf("nil shape: %w", ErrUnknownShape)
	}
	if e.MeshScale <= 0 {
		return nil, fmt.Errorf("mesh scale %v: %w", e.MeshScale, ErrInvalidShape)
	}
	base, err := Generate(e.Shape)
	if err != nil {
		return nil, err
	}
	m, err := Refine(base, level)
	if err != nil {
		return nil, err
	}
	if e.MeshScale != 1 {
		math.Scale(e.MeshScale, e.MeshScale, e.MeshScale).TransformAll(m.Positions)
	}
	return m, nil
}
