package session

import (
	"github.com/Faultbox/latticeforge/internal/engine/debug"
	"github.com/Faultbox/latticeforge/internal/engine/lattice"
	"github.com/Faultbox/latticeforge/pkg/math"
)

// Snapshot is a read-only copy of session state for a presentation layer.
// Nothing in it aliases session memory.
type Snapshot struct {
	Revision uint64
	Settings Settings

	Spans         lattice.Spans
	Frame         lattice.Frame
	ControlPoints []math.Vec3
	Edges         []lattice.Edge

	Indices  []uint32
	Rest     []math.Vec3
	Deformed []math.Vec3

	GuidePoints  []math.Vec3
	GuideSamples []math.Vec3
	Blended      []math.Vec3 // nil until a blend ran against the current lattice
	BlendedCount int

	// Render-ready xyz float32 buffers. Lines hold two vertices per segment.
	LatticeLines []float32
	FrameLines   []float32
	Surface      []float32 // Blended if present, else Deformed
}

// HasMesh reports whether a mesh and lattice were loaded.
func (s *Snapshot) HasMesh() bool {
	return s.ControlPoints != nil
}

// Snapshot copies the current state.
func (s *Session) Snapshot() Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	snap := Snapshot{
		Revision:     s.revision,
		Settings:     s.settings,
		Indices:      cloneIndices(s.indices),
		Rest:         clonePoints(s.rest),
		Deformed:     clonePoints(s.deformed),
		GuidePoints:  clonePoints(s.guidePoints),
		GuideSamples: clonePoints(s.samples),
		Blended:      clonePoints(s.blended),
		BlendedCount: s.blendCount,
	}
	if s.lat != nil {
		snap.Spans = s.lat.Spans()
		snap.Frame = s.lat.Frame()
		snap.ControlPoints = s.lat.Points()
		snap.Edges = s.lat.Edges()
		snap.LatticeLines = debug.GenerateLatticeWireframe(s.lat)
		snap.FrameLines = debug.GenerateFrameWireframe(s.lat, debug.DefaultBBoxPadding)
	}
	if s.blended != nil {
		snap.Surface = debug.FlattenPositions(s.blended)
	} else if s.deformed != nil {
		snap.Surface = debug.FlattenPositions(s.deformed)
	}
	return snap
}

func clonePoints(p []math.Vec3) []math.Vec3 {
	if p == nil {
		return nil
	}
	return append([]math.Vec3(nil), p...)
}

func cloneIndices(idx []uint32) []uint32 {
	if idx == nil {
		return nil
	}
	return append([]uint32(nil), idx...)
}
