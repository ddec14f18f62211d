package session

import (
	"go.uber.org/zap"

	"github.com/Faultbox/latticeforge/internal/engine/picking"
	"github.com/Faultbox/latticeforge/pkg/math"
)

// PickControlPoint returns the index of the nearest control point handle
// hit by r.
func (s *Session) PickControlPoint(r picking.Ray) (int, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.lat == nil {
		return -1, false
	}
	hit, ok := picking.PickPoint(r, s.lat.Points(), picking.ControlPointRadius)
	return hit.Index, ok
}

// PickSurface returns the nearest point where r hits the displayed mesh:
// the blended buffer when one exists, the deformed buffer otherwise.
func (s *Session) PickSurface(r picking.Ray) (math.Vec3, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	return s.pickSurface(r)
}

func (s *Session) pickSurface(r picking.Ray) (math.Vec3, bool) {
	shown := s.deformed
	if s.blended != nil {
		shown = s.blended
	}
	if len(shown) == 0 {
		return math.Vec3{}, false
	}
	hit, ok := picking.PickMesh(r, shown, s.indices)
	return hit.Point, ok
}

// PlaceGuidePoint adds a guide point where r hits the displayed mesh.
func (s *Session) PlaceGuidePoint(r picking.Ray) (math.Vec3, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	p, ok := s.pickSurface(r)
	if !ok {
		return math.Vec3{}, false
	}
	s.guidePoints = append(s.guidePoints, p)
	s.revision++
	s.log.Debug("guide point placed", zap.Any("point", p), zap.Int("points", len(s.guidePoints)))
	return p, true
}
