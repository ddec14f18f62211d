package session

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/latticeforge/internal/engine/ffd"
	"github.com/Faultbox/latticeforge/internal/engine/guide"
	"github.com/Faultbox/latticeforge/pkg/math"
)

// AddGuidePoint records a guide authoring point. The guide surface is not
// rebuilt until CommitGuide.
func (s *Session) AddGuidePoint(p math.Vec3) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.guidePoints = append(s.guidePoints, p)
	s.revision++
}

// ClearGuide drops guide points, samples and any blended buffer.
func (s *Session) ClearGuide() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.guidePoints = nil
	s.samples = nil
	s.blended = nil
	s.blendCount = 0
	s.revision++
}

// CommitGuide rebuilds the guide surface from the authored points and runs
// the region blend. On failure the previous samples are kept.
func (s *Session) CommitGuide() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	samples, surface, err := guide.Build(s.guidePoints, s.settings.Density)
	if err != nil {
		return fmt.Errorf("building guide surface: %w", err)
	}
	s.samples = samples
	s.log.Info("guide surface built",
		zap.Int("points", len(s.guidePoints)),
		zap.Int("hull_vertices", len(surface.Vertices)),
		zap.Int("hull_faces", len(surface.Faces)),
		zap.Int("samples", len(samples)))

	if s.lat == nil {
		return nil
	}
	return s.blend()
}

// SetBlendFactor changes the blend factor and reruns the region blend
// when a guide surface exists.
func (s *Session) SetBlendFactor(f float64) error {
	if err := checkFactor(f); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.settings.Factor = f
	s.revision++
	if s.samples == nil || s.lat == nil {
		return nil
	}
	return s.blend()
}

// ApplyBlend reruns the region blend with the current samples and factor.
func (s *Session) ApplyBlend() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.lat == nil {
		return ErrNoMesh
	}
	return s.blend()
}

// blend recomputes the blended buffer from rest. Caller holds the write lock.
func (s *Session) blend() error {
	start := time.Now()
	in := ffd.Region(s.rest, s.samples, s.settings.Radius)
	out, err := ffd.BlendRegion(s.rest, in, s.lat, s.settings.Factor)
	if err != nil {
		return err
	}

	count := 0
	for _, hit := range in {
		if hit {
			count++
		}
	}

	s.blended = out
	s.blendCount = count
	s.revision++
	s.log.Info("region blend",
		zap.Float64("factor", s.settings.Factor),
		zap.Float64("radius", s.settings.Radius),
		zap.Int("blended", count),
		zap.Int("vertices", len(out)),
		zap.Duration("took", time.Since(start)))
	return nil
}
