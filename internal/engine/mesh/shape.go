package mesh

import (
	"errors"
	"fmt"
	gomath "math"
	"strings"
)

var (
	ErrUnknownShape = errors.New("unknown shape")
	ErrInvalidShape = errors.New("invalid shape parameters")
)

// Kind names a base shape.
type Kind string

const (
	KindBox         Kind = "box"
	KindTorus       Kind = "torus"
	KindSphere      Kind = "sphere"
	KindIcosahedron Kind = "icosahedron"
	KindCylinder    Kind = "cylinder"
	KindOctahedron  Kind = "octahedron"
)

// Kinds lists every supported base shape in catalog order.
var Kinds = []Kind{KindBox, KindTorus, KindSphere, KindIcosahedron, KindCylinder, KindOctahedron}

// ParseKind resolves a case-insensitive shape name.
func ParseKind(name string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(name)))
	for _, known := range Kinds {
		if k == known {
			return k, nil
		}
	}
	return "", fmt.Errorf("%q: %w", name, ErrUnknownShape)
}

// Shape is one of the base-shape parameter sets below. The set is closed:
// Generate switches over every implementation.
type Shape interface {
	Kind() Kind
	shape()
}

// Box is an axis-aligned box centred on the origin.
type Box struct {
	Width, Height, Depth float64
	Segments             [3]int
}

// Torus lies in the XZ plane around the Y axis.
type Torus struct {
	Radius          float64
	Tube            float64
	RadialSegments  int
	TubularSegments int
	Arc             float64
}

// Sphere is a UV sphere with poles on the Y axis.
type Sphere struct {
	Radius         float64
	WidthSegments  int
	HeightSegments int
}

// Icosahedron is a regular icosahedron; Detail rounds of midpoint
// subdivision are projected back onto the circumscribed sphere.
type Icosahedron struct {
	Radius float64
	Detail int
}

// Cylinder is a capped, possibly tapered cylinder along the Y axis.
type Cylinder struct {
	RadiusTop      float64
	RadiusBottom   float64
	Height         float64
	RadialSegments int
	HeightSegments int
}

// Octahedron is a regular octahedron, subdivided like Icosahedron.
type Octahedron struct {
	Radius float64
	Detail int
}

func (Box) Kind() Kind         { return KindBox }
func (Torus) Kind() Kind       { return KindTorus }
func (Sphere) Kind() Kind      { return KindSphere }
func (Icosahedron) Kind() Kind { return KindIcosahedron }
func (Cylinder) Kind() Kind    { return KindCylinder }
func (Octahedron) Kind() Kind  { return KindOctahedron }

func (Box) shape()         {}
func (Torus) shape()       {}
func (Sphere) shape()      {}
func (Icosahedron) shape() {}
func (Cylinder) shape()    {}
func (Octahedron) shape()  {}

// Entry is a catalog shape plus the uniform scale applied to its mesh.
type Entry struct {
	Shape     Shape
	MeshScale float64
}

// Library returns the default catalog, one entry per Kind.
func Library() []Entry {
	return []Entry{
		{Shape: Box{Width: 200, Height: 200, Depth: 200, Segments: [3]int{2, 2, 2}}, MeshScale: 1},
		{Shape: Torus{Radius: 100, Tube: 60, RadialSegments: 4, TubularSegments: 8, Arc: 2 * gomath.Pi}, MeshScale: 1},
		{Shape: Sphere{Radius: 100, WidthSegments: 3, HeightSegments: 3}, MeshScale: 1.5},
		{Shape: Icosahedron{Radius: 100, Detail: 1}, MeshScale: 1.5},
		{Shape: Cylinder{RadiusTop: 25, RadiusBottom: 75, Height: 200, RadialSegments: 8, HeightSegments: 3}, MeshScale: 1.5},
		{Shape: Octahedron{Radius: 200, Detail: 0}, MeshScale: 1},
	}
}

// Lookup returns the catalog entry for kind.
func Lookup(kind Kind) (Entry, error) {
	for _, e := range Library() {
		if e.Shape.Kind() == kind {
			return e, nil
		}
	}
	return Entry{}, fmt.Errorf("%q: %w", kind, ErrUnknownShape)
}
