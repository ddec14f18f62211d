package session

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Faultbox/latticeforge/internal/engine/debug"
	"github.com/Faultbox/latticeforge/internal/engine/ffd"
	"github.com/Faultbox/latticeforge/internal/engine/guide"
	"github.com/Faultbox/latticeforge/internal/engine/lattice"
	"github.com/Faultbox/latticeforge/internal/engine/mesh"
	"github.com/Faultbox/latticeforge/internal/engine/picking"
	"github.com/Faultbox/latticeforge/internal/logger"
	"github.com/Faultbox/latticeforge/pkg/math"
)

var corner = math.Vec3{X: 100, Y: 100, Z: 100}

func newBoxSession(t *testing.T) *Session {
	t.Helper()
	s, err := New(DefaultSettings())
	require.NoError(t, err)

	e, err := mesh.Lookup(mesh.KindBox)
	require.NoError(t, err)
	require.NoError(t, s.LoadShape(e, 0))
	return s
}

func assertClose(t *testing.T, want, got []math.Vec3, tol float64) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		assert.InDelta(t, 0, want[i].Distance(got[i]), tol, "vertex %d: want %v got %v", i, want[i], got[i])
	}
}

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := New(Settings{Spans: lattice.Spans{0, 1, 1}})
	assert.ErrorIs(t, err, lattice.ErrDimensionMismatch)

	_, err = New(Settings{Spans: lattice.Spans{1, 1, 1}, Factor: 3})
	assert.ErrorIs(t, err, ffd.ErrInvalidFactor)

	s, err := New(Settings{Spans: lattice.Spans{1, 1, 1}})
	require.NoError(t, err)
	assert.Equal(t, ffd.DefaultRadius, s.Settings().Radius)
}

func TestOperationsRequireMesh(t *testing.T) {
	s, err := New(DefaultSettings())
	require.NoError(t, err)

	assert.ErrorIs(t, s.MoveControlPoint(0, math.Vec3{}), ErrNoMesh)
	assert.ErrorIs(t, s.MoveControlPointAt(0, 0, 0, math.Vec3{}), ErrNoMesh)
	assert.ErrorIs(t, s.Rebuild(lattice.Spans{1, 1, 1}), ErrNoMesh)
	assert.ErrorIs(t, s.RebuildLattice(math.Box{}, lattice.Spans{1, 1, 1}), ErrNoMesh)
	assert.ErrorIs(t, s.ApplyBlend(), ErrNoMesh)
	assert.ErrorIs(t, s.SetMesh(&mesh.Mesh{}), ErrNoMesh)
	_, err = s.ControlPoint(0)
	assert.ErrorIs(t, err, ErrNoMesh)
	_, err = s.EvalWorld(math.Vec3{})
	assert.ErrorIs(t, err, ErrNoMesh)

	snap := s.Snapshot()
	assert.False(t, snap.HasMesh())
}

func TestLoadShapeIsIdentity(t *testing.T) {
	s := newBoxSession(t)
	snap := s.Snapshot()

	require.True(t, snap.HasMesh())
	assert.Len(t, snap.ControlPoints, 27)
	assert.Equal(t, lattice.Spans{2, 2, 2}, snap.Spans)
	assert.Equal(t, corner, snap.Frame.Box.Max)
	assertClose(t, snap.Rest, snap.Deformed, 1e-9)
	assert.Nil(t, snap.Blended)

	center, err := s.ControlPoint(13)
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{}, center)
}

func TestMoveControlPointDeformsFromRest(t *testing.T) {
	s := newBoxSession(t)
	before := s.Snapshot()

	require.NoError(t, s.MoveControlPoint(26, math.Vec3{X: 150, Y: 150, Z: 150}))
	moved := s.Snapshot()
	assert.Greater(t, moved.Revision, before.Revision)

	for i, v := range moved.Rest {
		if v == corner {
			assert.Equal(t, math.Vec3{X: 150, Y: 150, Z: 150}, moved.Deformed[i])
		}
	}

	got, err := s.EvalWorld(corner)
	require.NoError(t, err)
	assert.Equal(t, math.Vec3{X: 150, Y: 150, Z: 150}, got)

	// Same edit again: identical output, no accumulation.
	require.NoError(t, s.MoveControlPoint(26, math.Vec3{X: 150, Y: 150, Z: 150}))
	assert.Equal(t, moved.Deformed, s.Snapshot().Deformed)

	// Undo the edit: back to the first buffer exactly.
	require.NoError(t, s.MoveControlPointAt(2, 2, 2, corner))
	assert.Equal(t, before.Deformed, s.Snapshot().Deformed)
	assert.Equal(t, before.Rest, s.Snapshot().Rest)
}

func TestMoveControlPointOutOfRange(t *testing.T) {
	s := newBoxSession(t)
	rev := s.Snapshot().Revision

	assert.ErrorIs(t, s.MoveControlPoint(27, math.Vec3{}), lattice.ErrOutOfRange)
	assert.ErrorIs(t, s.MoveControlPointAt(0, 3, 0, math.Vec3{}), lattice.ErrOutOfRange)
	_, err := s.ControlPointIndex(0, 0, 3)
	assert.ErrorIs(t, err, lattice.ErrOutOfRange)
	assert.Equal(t, rev, s.Snapshot().Revision)

	idx, err := s.ControlPointIndex(2, 2, 2)
	require.NoError(t, err)
	assert.Equal(t, 26, idx)
}

func TestRebuildKeepsFrameAndDropsEdits(t *testing.T) {
	s := newBoxSession(t)
	frame := s.Snapshot().Frame
	require.NoError(t, s.MoveControlPoint(0, math.Vec3{X: -300}))

	require.NoError(t, s.Rebuild(lattice.Spans{3, 1, 4}))
	snap := s.Snapshot()
	assert.Equal(t, frame, snap.Frame)
	assert.Len(t, snap.ControlPoints, 4*2*5)
	assert.Equal(t, lattice.Spans{3, 1, 4}, s.Settings().Spans)
	assert.Equal(t, math.Vec3{X: -100, Y: -100, Z: -100}, snap.ControlPoints[0])
	assertClose(t, snap.Rest, snap.Deformed, 1e-9)
}

func TestRebuildLogsSpans(t *testing.T) {
	path := filepath.Join(t.TempDir(), "session.log")
	require.NoError(t, logger.InitWithFileConfig("debug", logger.FileConfig{Path: path, MaxSizeMB: 1}, false))
	t.Cleanup(logger.InitNop)

	s := newBoxSession(t)
	require.NoError(t, s.Rebuild(lattice.Spans{3, 1, 4}))
	logger.Sync()

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "lattice rebuilt")
	assert.Contains(t, string(data), `"spans": [3, 1, 4]`)
	assert.Contains(t, string(data), `"control_points": 40`)
}

func TestFailedRebuildKeepsLattice(t *testing.T) {
	s := newBoxSession(t)
	require.NoError(t, s.MoveControlPoint(5, math.Vec3{X: 1, Y: 2, Z: 3}))
	before := s.Snapshot()

	assert.ErrorIs(t, s.Rebuild(lattice.Spans{2, 0, 2}), lattice.ErrDimensionMismatch)
	inverted := math.Box{Min: corner, Max: math.Vec3{}}
	assert.ErrorIs(t, s.RebuildLattice(inverted, lattice.Spans{2, 2, 2}), lattice.ErrInvalidBounds)

	after := s.Snapshot()
	assert.Equal(t, before.ControlPoints, after.ControlPoints)
	assert.Equal(t, before.Deformed, after.Deformed)
	assert.Equal(t, lattice.Spans{2, 2, 2}, s.Settings().Spans)
}

func TestRebuildLatticeExplicitBox(t *testing.T) {
	s := newBoxSession(t)
	big := math.Box{Min: math.Vec3{X: -200, Y: -200, Z: -200}, Max: math.Vec3{X: 200, Y: 200, Z: 200}}
	require.NoError(t, s.RebuildLattice(big, lattice.Spans{1, 1, 1}))

	snap := s.Snapshot()
	assert.Equal(t, big, snap.Frame.Box)
	assert.Len(t, snap.ControlPoints, 8)
	assertClose(t, snap.Rest, snap.Deformed, 1e-9)
}

func guideAroundCorner(s *Session) {
	for _, dz := range []float64{-10, 10} {
		for _, dy := range []float64{-10, 10} {
			for _, dx := range []float64{-10, 10} {
				s.AddGuidePoint(corner.Add(math.Vec3{X: dx, Y: dy, Z: dz}))
			}
		}
	}
}

func TestGuideBlend(t *testing.T) {
	s := newBoxSession(t)
	require.NoError(t, s.MoveControlPoint(26, math.Vec3{X: 150, Y: 150, Z: 150}))

	s.AddGuidePoint(corner)
	assert.ErrorIs(t, s.CommitGuide(), guide.ErrTooFewPoints)

	s.ClearGuide()
	guideAroundCorner(s)
	require.NoError(t, s.SetBlendFactor(1))
	require.NoError(t, s.CommitGuide())

	snap := s.Snapshot()
	require.NotNil(t, snap.Blended)
	assert.Len(t, snap.GuideSamples, 8)
	assert.Positive(t, snap.BlendedCount)
	for i, v := range snap.Rest {
		if v == corner {
			assert.Equal(t, snap.Deformed[i], snap.Blended[i])
		} else {
			assert.Equal(t, v, snap.Blended[i], "vertex %v is away from the guide", v)
		}
	}

	require.NoError(t, s.SetBlendFactor(0))
	snap = s.Snapshot()
	assert.Equal(t, snap.Rest, snap.Blended)

	require.NoError(t, s.SetBlendFactor(0.5))
	snap = s.Snapshot()
	for i, v := range snap.Rest {
		if v == corner {
			assert.InDelta(t, 125, snap.Blended[i].X, 1e-9)
		}
	}

	assert.ErrorIs(t, s.SetBlendFactor(1.5), ffd.ErrInvalidFactor)
	assert.Equal(t, 0.5, s.Settings().Factor)
}

func TestEditDropsBlend(t *testing.T) {
	s := newBoxSession(t)
	guideAroundCorner(s)
	require.NoError(t, s.CommitGuide())
	require.NotNil(t, s.Snapshot().Blended)

	require.NoError(t, s.MoveControlPoint(0, math.Vec3{X: -120, Y: -100, Z: -100}))
	snap := s.Snapshot()
	assert.Nil(t, snap.Blended)
	assert.Zero(t, snap.BlendedCount)
	assert.Len(t, snap.GuideSamples, 8, "samples survive lattice edits")

	require.NoError(t, s.ApplyBlend())
	assert.NotNil(t, s.Snapshot().Blended)
}

func TestSnapshotRenderBuffers(t *testing.T) {
	s := newBoxSession(t)
	snap := s.Snapshot()
	assert.Len(t, snap.LatticeLines, len(snap.Edges)*6)
	assert.Len(t, snap.FrameLines, debug.BBoxWireframeVertexCount*3)
	assert.Equal(t, float32(-100-debug.DefaultBBoxPadding), snap.FrameLines[0])
	require.Len(t, snap.Surface, len(snap.Rest)*3)

	require.NoError(t, s.MoveControlPoint(26, math.Vec3{X: 150, Y: 150, Z: 150}))
	snap = s.Snapshot()
	for i, v := range snap.Deformed {
		assert.Equal(t, float32(v.Y), snap.Surface[i*3+1])
	}
	last := snap.LatticeLines[len(snap.LatticeLines)-3:]
	assert.Equal(t, []float32{150, 150, 150}, last, "z edges end at the moved corner")

	guideAroundCorner(s)
	require.NoError(t, s.SetBlendFactor(0))
	require.NoError(t, s.CommitGuide())
	snap = s.Snapshot()
	for i, v := range snap.Rest {
		assert.Equal(t, float32(v.X), snap.Surface[i*3], "surface shows the blended buffer")
	}

	empty, err := New(DefaultSettings())
	require.NoError(t, err)
	none := empty.Snapshot()
	assert.Nil(t, none.LatticeLines)
	assert.Nil(t, none.Surface)
}

func TestSnapshotIsIsolated(t *testing.T) {
	s := newBoxSession(t)
	snap := s.Snapshot()
	snap.ControlPoints[0] = math.Vec3{X: 999}
	snap.Rest[0] = math.Vec3{X: 999}
	snap.Deformed[0] = math.Vec3{X: 999}

	again := s.Snapshot()
	assert.NotEqual(t, math.Vec3{X: 999}, again.ControlPoints[0])
	assert.NotEqual(t, math.Vec3{X: 999}, again.Rest[0])
	assert.NotEqual(t, math.Vec3{X: 999}, again.Deformed[0])
}

func TestSetMeshReplacesRest(t *testing.T) {
	s := newBoxSession(t)
	require.NoError(t, s.MoveControlPoint(26, math.Vec3{X: 150, Y: 150, Z: 150}))

	m := &mesh.Mesh{Positions: []math.Vec3{{}, {X: 10}, {Y: 10}, {Z: 10}}, Indices: []uint32{0, 1, 2}}
	require.NoError(t, s.SetMesh(m))
	m.Positions[0] = math.Vec3{X: 42}

	snap := s.Snapshot()
	assert.Equal(t, math.Vec3{}, snap.Rest[0], "session keeps its own rest copy")
	assert.Equal(t, math.Vec3{X: 10, Y: 10, Z: 10}, snap.Frame.Box.Max)
	assertClose(t, snap.Rest, snap.Deformed, 1e-12)
}

func TestConcurrentEditsAndSnapshots(t *testing.T) {
	s := newBoxSession(t)

	var wg sync.WaitGroup
	for w := 0; w < 4; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for n := 0; n < 25; n++ {
				p := math.Vec3{X: float64(w), Y: float64(n), Z: 0}
				assert.NoError(t, s.MoveControlPoint(13, p))
				snap := s.Snapshot()
				assert.Len(t, snap.Deformed, len(snap.Rest))
			}
		}(w)
	}
	wg.Wait()

	snap := s.Snapshot()
	assert.Equal(t, ffd.DeformAll(snap.Rest, mustLattice(t, snap)), snap.Deformed)
}

// mustLattice rebuilds a lattice from snapshot data.
func mustLattice(t *testing.T, snap Snapshot) *lattice.Lattice {
	t.Helper()
	l, err := lattice.Build(snap.Frame.Box, snap.Spans)
	require.NoError(t, err)
	for i, p := range snap.ControlPoints {
		require.NoError(t, l.SetPosition(i, p))
	}
	return l
}

func TestPicking(t *testing.T) {
	s, err := New(DefaultSettings())
	require.NoError(t, err)
	_, ok := s.PickControlPoint(picking.NewRay(math.Vec3{}, math.Vec3{Y: -1}))
	assert.False(t, ok)

	s = newBoxSession(t)
	down := func(x, z float64) picking.Ray {
		return picking.NewRay(math.Vec3{X: x, Y: 500, Z: z}, math.Vec3{Y: -1})
	}

	idx, ok := s.PickControlPoint(down(100, 100))
	require.True(t, ok)
	assert.Equal(t, 26, idx, "top corner is nearest along the ray")

	_, ok = s.PickControlPoint(down(50, 50))
	assert.False(t, ok)

	p, ok := s.PickSurface(down(30, 30))
	require.True(t, ok)
	assert.InDelta(t, 100, p.Y, 1e-9)

	// Lifting the top corner raises the surface under the ray.
	require.NoError(t, s.MoveControlPoint(26, math.Vec3{X: 100, Y: 200, Z: 100}))
	lifted, ok := s.PickSurface(down(30, 30))
	require.True(t, ok)
	assert.Greater(t, lifted.Y, p.Y)

	placed, ok := s.PlaceGuidePoint(down(30, 30))
	require.True(t, ok)
	assert.Equal(t, lifted, placed)
	assert.Equal(t, []math.Vec3{placed}, s.Snapshot().GuidePoints)

	_, ok = s.PlaceGuidePoint(down(900, 0))
	assert.False(t, ok)
	assert.Len(t, s.Snapshot().GuidePoints, 1)
}
