// Package edits replays YAML edit scripts against an editing session.
//
// A script is an ordered list of steps. Each step carries exactly one
// action:
//
//	steps:
//	  - move: {at: [2, 2, 2], to: [150, 150, 150]}
//	  - move: {index: 4, offset: [0, 30, 0]}
//	  - guide: [[90, 90, 90], [110, 90, 90], [90, 110, 90], [90, 90, 110]]
//	  - commit: true
//	  - factor: 0.75
//	  - rebuild: {spans: [3, 3, 3]}
//	  - clear_guide: true
package edits

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/Faultbox/latticeforge/internal/engine/lattice"
	"github.com/Faultbox/latticeforge/pkg/math"
)

var ErrInvalidStep = errors.New("invalid edit step")

// Script is a parsed edit script.
type Script struct {
	Steps []Step `yaml:"steps"`
}

// Step is one scripted action. Exactly one field is set.
type Step struct {
	Move       *Move        `yaml:"move,omitempty"`
	Rebuild    *Rebuild     `yaml:"rebuild,omitempty"`
	Guide      [][3]float64 `yaml:"guide,omitempty"`
	Commit     bool         `yaml:"commit,omitempty"`
	ClearGuide bool         `yaml:"clear_guide,omitempty"`
	Factor     *float64     `yaml:"factor,omitempty"`
}

// Move addresses a control point by linear index or by (i, j, k) and
// either places it at an absolute position or offsets it.
type Move struct {
	Index  *int        `yaml:"index,omitempty"`
	At     *[3]int     `yaml:"at,omitempty"`
	To     *[3]float64 `yaml:"to,omitempty"`
	Offset *[3]float64 `yaml:"offset,omitempty"`
}

// Rebuild replaces the lattice. Without Min/Max the current frame is kept.
type Rebuild struct {
	Spans [3]int      `yaml:"spans"`
	Min   *[3]float64 `yaml:"min,omitempty"`
	Max   *[3]float64 `yaml:"max,omitempty"`
}

// Load reads and validates a script file.
func Load(path string) (*Script, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return s, nil
}

// Parse decodes and validates a script. Unknown keys are rejected.
func Parse(data []byte) (*Script, error) {
	var s Script
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&s); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	if err := s.Validate(); err != nil {
		return nil, err
	}
	return &s, nil
}

// Validate checks that every step names exactly one well-formed action.
func (s *Script) Validate() error {
	for i, st := range s.Steps {
		if err := st.validate(); err != nil {
			return fmt.Errorf("step %d: %w", i, err)
		}
	}
	return nil
}

func (st Step) validate() error {
	actions := 0
	if st.Move != nil {
		actions++
	}
	if st.Rebuild != nil {
		actions++
	}
	if st.Guide != nil {
		actions++
	}
	if st.Commit {
		actions++
	}
	if st.ClearGuide {
		actions++
	}
	if st.Factor != nil {
		actions++
	}
	if actions != 1 {
		return fmt.Errorf("%d actions: %w", actions, ErrInvalidStep)
	}

	switch {
	case st.Move != nil:
		m := st.Move
		if (m.Index == nil) == (m.At == nil) {
			return fmt.Errorf("move needs one of index or at: %w", ErrInvalidStep)
		}
		if (m.To == nil) == (m.Offset == nil) {
			return fmt.Errorf("move needs one of to or offset: %w", ErrInvalidStep)
		}
	case st.Rebuild != nil:
		if (st.Rebuild.Min == nil) != (st.Rebuild.Max == nil) {
			return fmt.Errorf("rebuild box needs both min and max: %w", ErrInvalidStep)
		}
		if err := lattice.Spans(st.Rebuild.Spans).Validate(); err != nil {
			return err
		}
	case st.Guide != nil:
		if len(st.Guide) == 0 {
			return fmt.Errorf("empty guide: %w", ErrInvalidStep)
		}
	}
	return nil
}

// Name is a short label for logging.
func (st Step) Name() string {
	switch {
	case st.Move != nil:
		return "move"
	case st.Rebuild != nil:
		return "rebuild"
	case st.Guide != nil:
		return "guide"
	case st.Commit:
		return "commit"
	case st.ClearGuide:
		return "clear_guide"
	case st.Factor != nil:
		return "factor"
	}
	return "empty"
}

// box returns the explicit rebuild box, if any.
func (r *Rebuild) box() (math.Box, bool) {
	if r.Min == nil || r.Max == nil {
		return math.Box{}, false
	}
	return math.Box{Min: math.FromArray(*r.Min), Max: math.FromArray(*r.Max)}, true
}
