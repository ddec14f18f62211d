package edits

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/Faultbox/latticeforge/internal/engine/lattice"
	"github.com/Faultbox/latticeforge/internal/logger"
	"github.com/Faultbox/latticeforge/pkg/math"
)

// Target is the part of a session a script drives.
type Target interface {
	MoveControlPoint(idx int, p math.Vec3) error
	ControlPoint(idx int) (math.Vec3, error)
	ControlPointIndex(i, j, k int) (int, error)
	Rebuild(spans lattice.Spans) error
	RebuildLattice(box math.Box, spans lattice.Spans) error
	AddGuidePoint(p math.Vec3)
	ClearGuide()
	CommitGuide() error
	SetBlendFactor(f float64) error
}

// Apply runs the script steps in order and stops at the first failure.
// It returns the number of steps that completed.
func Apply(t Target, s *Script) (int, error) {
	log := logger.Named("edits")
	for i, st := range s.Steps {
		if err := applyStep(t, st); err != nil {
			return i, fmt.Errorf("step %d (%s): %w", i, st.Name(), err)
		}
		log.Debug("step applied", zap.Int("step", i), zap.String("action", st.Name()))
	}
	log.Info("script applied", zap.Int("steps", len(s.Steps)))
	return len(s.Steps), nil
}

func applyStep(t Target, st Step) error {
	if err := st.validate(); err != nil {
		return err
	}

	switch {
	case st.Move != nil:
		return applyMove(t, st.Move)
	case st.Rebuild != nil:
		spans := lattice.Spans(st.Rebuild.Spans)
		if box, ok := st.Rebuild.box(); ok {
			return t.RebuildLattice(box, spans)
		}
		return t.Rebuild(spans)
	case st.Guide != nil:
		for _, p := range st.Guide {
			t.AddGuidePoint(math.FromArray(p))
		}
	case st.Commit:
		return t.CommitGuide()
	case st.ClearGuide:
		t.ClearGuide()
	case st.Factor != nil:
		return t.SetBlendFactor(*st.Factor)
	}
	return nil
}

func applyMove(t Target, m *Move) error {
	idx := 0
	if m.Index != nil {
		idx = *m.Index
	} else {
		var err error
		if idx, err = t.ControlPointIndex(m.At[0], m.At[1], m.At[2]); err != nil {
			return err
		}
	}

	if m.To != nil {
		return t.MoveControlPoint(idx, math.FromArray(*m.To))
	}
	cur, err := t.ControlPoint(idx)
	if err != nil {
		return err
	}
	return t.MoveControlPoint(idx, cur.Add(math.FromArray(*m.Offset)))
}
