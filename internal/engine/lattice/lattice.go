// Package lattice holds the FFD control lattice: control-point positions,
// per-axis span counts and the axis-aligned frame they were built in.
package lattice

import (
	"errors"
	"fmt"

	"github.com/Faultbox/latticeforge/pkg/math"
)

var (
	ErrInvalidBounds     = errors.New("invalid lattice bounds")
	ErrOutOfRange        = errors.New("control point index out of range")
	ErrDimensionMismatch = errors.New("span count out of range")
)

// MaxSpan is the largest span count per axis. Beyond it the degree-n
// Bernstein coefficients and powers leave float64 range for points
// slightly outside the frame.
const MaxSpan = 256

// Spans holds the number of lattice cells along X, Y and Z.
type Spans [3]int

// Validate returns ErrDimensionMismatch if any span is outside [1, MaxSpan].
func (s Spans) Validate() error {
	for axis, n := range s {
		if n < 1 || n > MaxSpan {
			return fmt.Errorf("axis %d span %d not in [1, %d]: %w", axis, n, MaxSpan, ErrDimensionMismatch)
		}
	}
	return nil
}

// Total returns the number of control points the spans produce.
func (s Spans) Total() int {
	return (s[0] + 1) * (s[1] + 1) * (s[2] + 1)
}

// Frame is the lattice's local coordinate system.
// Only axis-aligned frames are supported.
type Frame struct {
	Box math.Box
}

// Lattice is a (nx+1)(ny+1)(nz+1) grid of control points.
// Topology is fixed at build time; only positions change afterwards.
type Lattice struct {
	spans  Spans
	frame  Frame
	points []math.Vec3
}

// Spans returns the span counts.
func (l *Lattice) Spans() Spans {
	return l.spans
}

// Frame returns the frame the lattice was built in.
func (l *Lattice) Frame() Frame {
	return l.frame
}

// AxisCount returns the number of control points along axis (span + 1).
func (l *Lattice) AxisCount(axis int) int {
	if axis < 0 || axis > 2 {
		return 0
	}
	return l.spans[axis] + 1
}

// TotalCount returns the number of control points.
func (l *Lattice) TotalCount() int {
	return len(l.points)
}

// Index maps (i, j, k) to a linear index without bounds checking.
func (l *Lattice) Index(i, j, k int) int {
	nx1 := l.spans[0] + 1
	ny1 := l.spans[1] + 1
	return i + j*nx1 + k*nx1*ny1
}

// Ternary is the inverse of Index.
func (l *Lattice) Ternary(idx int) (i, j, k int) {
	nx1 := l.spans[0] + 1
	ny1 := l.spans[1] + 1
	return idx % nx1, (idx / nx1) % ny1, idx / (nx1 * ny1)
}

// Position returns the control point at a linear index.
func (l *Lattice) Position(idx int) (math.Vec3, error) {
	if idx < 0 || idx >= len(l.points) {
		return math.Vec3{}, fmt.Errorf("index %d of %d: %w", idx, len(l.points), ErrOutOfRange)
	}
	return l.points[idx], nil
}

// SetPosition moves the control point at a linear index.
func (l *Lattice) SetPosition(idx int, p math.Vec3) error {
	if idx < 0 || idx >= len(l.points) {
		return fmt.Errorf("index %d of %d: %w", idx, len(l.points), ErrOutOfRange)
	}
	l.points[idx] = p
	return nil
}

// PositionAt returns the control point at (i, j, k).
func (l *Lattice) PositionAt(i, j, k int) (math.Vec3, error) {
	if err := l.checkTernary(i, j, k); err != nil {
		return math.Vec3{}, err
	}
	return l.points[l.Index(i, j, k)], nil
}

// SetPositionAt moves the control point at (i, j, k).
func (l *Lattice) SetPositionAt(i, j, k int, p math.Vec3) error {
	if err := l.checkTernary(i, j, k); err != nil {
		return err
	}
	l.points[l.Index(i, j, k)] = p
	return nil
}

// At returns the control point at (i, j, k) with no bounds checking.
// Callers iterating 0..span on each axis use this on the hot path.
func (l *Lattice) At(i, j, k int) math.Vec3 {
	return l.points[l.Index(i, j, k)]
}

// Points returns a copy of all control points in linear-index order.
func (l *Lattice) Points() []math.Vec3 {
	out := make([]math.Vec3, len(l.points))
	copy(out, l.points)
	return out
}

// Clone returns an independent copy of the lattice.
func (l *Lattice) Clone() *Lattice {
	return &Lattice{spans: l.spans, frame: l.frame, points: l.Points()}
}

func (l *Lattice) checkTernary(i, j, k int) error {
	if i < 0 || i > l.spans[0] || j < 0 || j > l.spans[1] || k < 0 || k > l.spans[2] {
		return fmt.Errorf("(%d, %d, %d) outside spans %v: %w", i, j, k, l.spans, ErrOutOfRange)
	}
	return nil
}
