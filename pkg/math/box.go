package math

import "math"

// Box is an axis-aligned bounding box.
type Box struct {
	Min Vec3
	Max Vec3
}

// EmptyBox returns an inverted box that any Extend call will replace.
func EmptyBox() Box {
	inf := math.Inf(1)
	return Box{
		Min: Vec3{inf, inf, inf},
		Max: Vec3{-inf, -inf, -inf},
	}
}

// BoxFromPoints returns the tightest box around pts.
// An empty slice yields EmptyBox.
func BoxFromPoints(pts []Vec3) Box {
	b := EmptyBox()
	for _, p := range pts {
		b = b.Extend(p)
	}
	return b
}

// Extend returns the box grown to include p.
func (b Box) Extend(p Vec3) Box {
	return Box{Min: b.Min.Min(p), Max: b.Max.Max(p)}
}

// Size returns Max - Min.
func (b Box) Size() Vec3 {
	return b.Max.Sub(b.Min)
}

// Valid reports whether both corners are finite and Min <= Max on every axis.
// Zero-thickness axes are valid.
func (b Box) Valid() bool {
	if !b.Min.IsFinite() || !b.Max.IsFinite() {
		return false
	}
	return b.Min.X <= b.Max.X && b.Min.Y <= b.Max.Y && b.Min.Z <= b.Max.Z
}

// Pad returns the box expanded by d on all sides.
func (b Box) Pad(d float64) Box {
	p := Vec3{d, d, d}
	return Box{Min: b.Min.Sub(p), Max: b.Max.Add(p)}
}
