// Package session owns one mesh editing session: the rest-pose buffer, the
// control lattice, the guide surface and every buffer derived from them.
// All mutations run to completion under the session lock; readers get
// deep-copied snapshots.
package session

import (
	"errors"
	"fmt"
	gomath "math"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/latticeforge/internal/engine/ffd"
	"github.com/Faultbox/latticeforge/internal/engine/lattice"
	"github.com/Faultbox/latticeforge/internal/engine/mesh"
	"github.com/Faultbox/latticeforge/internal/logger"
	"github.com/Faultbox/latticeforge/pkg/math"
)

var ErrNoMesh = errors.New("no mesh loaded")

// Settings are the tunables passed into each recomputation.
type Settings struct {
	Spans   lattice.Spans
	Factor  float64
	Radius  float64
	Density int
}

// DefaultSettings mirrors config.Default.
func DefaultSettings() Settings {
	return Settings{
		Spans:  lattice.Spans{2, 2, 2},
		Factor: 0.5,
		Radius: ffd.DefaultRadius,
	}
}

// Session is the sole owner of lattice and rest-buffer state.
type Session struct {
	mu  sync.RWMutex
	log *zap.Logger

	settings Settings
	indices  []uint32
	rest     []math.Vec3
	lat      *lattice.Lattice
	deformed []math.Vec3

	guidePoints []math.Vec3
	samples     []math.Vec3
	blended     []math.Vec3
	blendCount  int

	revision uint64
}

// New creates an empty session. A mesh must be loaded before editing.
func New(settings Settings) (*Session, error) {
	if err := settings.Spans.Validate(); err != nil {
		return nil, err
	}
	if err := checkFactor(settings.Factor); err != nil {
		return nil, err
	}
	if settings.Radius <= 0 {
		settings.Radius = ffd.DefaultRadius
	}
	return &Session{
		log:      logger.Named("session"),
		settings: settings,
	}, nil
}

// Settings returns the current settings.
func (s *Session) Settings() Settings {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.settings
}

// LoadShape generates a catalog shape at the given refinement level and
// makes it the session mesh.
func (s *Session) LoadShape(e mesh.Entry, level int) error {
	m, err := mesh.Load(e, level)
	if err != nil {
		return fmt.Errorf("loading %s: %w", e.Shape.Kind(), err)
	}
	s.log.Info("shape loaded",
		zap.String("shape", string(e.Shape.Kind())),
		zap.Int("level", level),
		zap.Int("vertices", m.VertexCount()),
		zap.Int("triangles", m.TriangleCount()))
	return s.SetMesh(m)
}

// SetMesh captures m's positions as the new rest pose and rebuilds the
// lattice around them. On failure the previous state is kept.
func (s *Session) SetMesh(m *mesh.Mesh) error {
	if m == nil || m.VertexCount() == 0 {
		return ErrNoMesh
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	box := m.Bounds()
	lat, err := lattice.Build(box, s.settings.Spans)
	if err != nil {
		return fmt.Errorf("building lattice for mesh: %w", err)
	}

	s.rest = append([]math.Vec3(nil), m.Positions...)
	s.indices = append([]uint32(nil), m.Indices...)
	s.installLattice(lat)
	return nil
}

// Rebuild replaces the lattice with new span counts over the previously
// recorded frame, discarding control-point edits.
func (s *Session) Rebuild(spans lattice.Spans) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lat == nil {
		return ErrNoMesh
	}
	lat, err := lattice.Build(s.lat.Frame().Box, spans)
	if err != nil {
		return err
	}
	s.settings.Spans = spans
	s.installLattice(lat)
	return nil
}

// RebuildLattice replaces the lattice with one over an explicit box.
func (s *Session) RebuildLattice(box math.Box, spans lattice.Spans) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rest == nil {
		return ErrNoMesh
	}
	lat, err := lattice.Build(box, spans)
	if err != nil {
		return err
	}
	s.settings.Spans = spans
	s.installLattice(lat)
	return nil
}

// installLattice swaps in lat and recomputes the deformed buffer.
// Caller holds the write lock.
func (s *Session) installLattice(lat *lattice.Lattice) {
	s.lat = lat
	spans := lat.Spans()
	s.log.Debug("lattice rebuilt",
		zap.Ints("spans", spans[:]),
		zap.Int("control_points", lat.TotalCount()),
		zap.Any("min", lat.Frame().Box.Min),
		zap.Any("max", lat.Frame().Box.Max))
	s.deform()
}

// deform recomputes the full deformation from rest. Any previous region
// blend no longer matches the lattice and is dropped.
func (s *Session) deform() {
	start := time.Now()
	s.deformed = ffd.DeformAll(s.rest, s.lat)
	s.blended = nil
	s.blendCount = 0
	s.revision++
	s.log.Debug("deform pass",
		zap.Int("vertices", len(s.rest)),
		zap.Duration("took", time.Since(start)))
}

// MoveControlPoint sets a control point by linear index and redeforms.
func (s *Session) MoveControlPoint(idx int, p math.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lat == nil {
		return ErrNoMesh
	}
	if err := s.lat.SetPosition(idx, p); err != nil {
		return err
	}
	s.deform()
	return nil
}

// MoveControlPointAt sets a control point by (i, j, k) and redeforms.
func (s *Session) MoveControlPointAt(i, j, k int, p math.Vec3) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lat == nil {
		return ErrNoMesh
	}
	if err := s.lat.SetPositionAt(i, j, k, p); err != nil {
		return err
	}
	s.deform()
	return nil
}

// ControlPoint returns a control point by linear index.
func (s *Session) ControlPoint(idx int) (math.Vec3, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lat == nil {
		return math.Vec3{}, ErrNoMesh
	}
	return s.lat.Position(idx)
}

// ControlPointIndex maps (i, j, k) to a linear index.
func (s *Session) ControlPointIndex(i, j, k int) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lat == nil {
		return 0, ErrNoMesh
	}
	if _, err := s.lat.PositionAt(i, j, k); err != nil {
		return 0, err
	}
	return s.lat.Index(i, j, k), nil
}

// EvalWorld maps a single world point through the current lattice.
func (s *Session) EvalWorld(p math.Vec3) (math.Vec3, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lat == nil {
		return math.Vec3{}, ErrNoMesh
	}
	return ffd.Evaluate(p, s.lat), nil
}

func checkFactor(f float64) error {
	if gomath.IsNaN(f) || f < 0 || f > 1 {
		return fmt.Errorf("blend factor %v: %w", f, ffd.ErrInvalidFactor)
	}
	return nil
}
