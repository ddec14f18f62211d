package mesh

import (
	"fmt"
	gomath "math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/Faultbox/latticeforge/pkg/math"
)

// Generate builds the unrefined mesh for shape.
func Generate(shape Shape) (*Mesh, error) {
	switch s := shape.(type) {
	case Box:
		return generateBox(s)
	case Torus:
		return generateTorus(s)
	case Sphere:
		return generateSphere(s)
	case Icosahedron:
		return generateIcosahedron(s)
	case Cylinder:
		return generateCylinder(s)
	case Octahedron:
		return generateOctahedron(s)
	default:
		return nil, fmt.Errorf("%T: %w", shape, ErrUnknownShape)
	}
}

// yUp rotates mathgl's z-up conversions into the engine's y-up frame.
func yUp(v mgl64.Vec3) math.Vec3 {
	return math.Vec3{X: v[1], Y: v[2], Z: v[0]}
}

// patch samples f over a rows x cols grid of (u, v) in [0,1]^2 and
// triangulates each cell, dropping zero-area triangles at poles and apexes.
func patch(rows, cols int, f func(u, v float64) math.Vec3) *Mesh {
	m := &Mesh{}
	for r := 0; r <= rows; r++ {
		for c := 0; c <= cols; c++ {
			m.Positions = append(m.Positions, f(float64(c)/float64(cols), float64(r)/float64(rows)))
		}
	}

	stride := uint32(cols + 1)
	for r := 0; r < rows; r++ {
		for c := 0; c < cols; c++ {
			a := uint32(r)*stride + uint32(c)
			b := a + stride
			m.addTriangle(a, b, a+1)
			m.addTriangle(b, b+1, a+1)
		}
	}
	return m
}

func generateBox(s Box) (*Mesh, error) {
	if s.Width <= 0 || s.Height <= 0 || s.Depth <= 0 {
		return nil, fmt.Errorf("box %vx%vx%v: %w", s.Width, s.Height, s.Depth, ErrInvalidShape)
	}
	sx, sy, sz := s.Segments[0], s.Segments[1], s.Segments[2]
	if sx < 1 || sy < 1 || sz < 1 {
		return nil, fmt.Errorf("box segments %v: %w", s.Segments, ErrInvalidShape)
	}

	hw, hh, hd := s.Width/2, s.Height/2, s.Depth/2
	faces := []struct {
		origin, du, dv math.Vec3
		nu, nv         int
	}{
		{math.Vec3{X: hw, Y: -hh, Z: hd}, math.Vec3{Z: -s.Depth}, math.Vec3{Y: s.Height}, sz, sy},
		{math.Vec3{X: -hw, Y: -hh, Z: -hd}, math.Vec3{Z: s.Depth}, math.Vec3{Y: s.Height}, sz, sy},
		{math.Vec3{X: -hw, Y: hh, Z: hd}, math.Vec3{X: s.Width}, math.Vec3{Z: -s.Depth}, sx, sz},
		{math.Vec3{X: -hw, Y: -hh, Z: -hd}, math.Vec3{X: s.Width}, math.Vec3{Z: s.Depth}, sx, sz},
		{math.Vec3{X: -hw, Y: -hh, Z: hd}, math.Vec3{X: s.Width}, math.Vec3{Y: s.Height}, sx, sy},
		{math.Vec3{X: hw, Y: -hh, Z: -hd}, math.Vec3{X: -s.Width}, math.Vec3{Y: s.Height}, sx, sy},
	}

	m := &Mesh{}
	for _, f := range faces {
		m.append(patch(f.nv, f.nu, func(u, v float64) math.Vec3 {
			return f.origin.Add(f.du.Scale(u)).Add(f.dv.Scale(v))
		}))
	}
	return m, nil
}

func generateTorus(s Torus) (*Mesh, error) {
	if s.Radius <= 0 || s.Tube <= 0 || s.Arc <= 0 || s.RadialSegments < 2 || s.TubularSegments < 3 {
		return nil, fmt.Errorf("torus %+v: %w", s, ErrInvalidShape)
	}
	return patch(s.RadialSegments, s.TubularSegments, func(u, v float64) math.Vec3 {
		tube := v * 2 * gomath.Pi
		return yUp(mgl64.CylindricalToCartesian(s.Radius+s.Tube*gomath.Cos(tube), u*s.Arc, s.Tube*gomath.Sin(tube)))
	}), nil
}

func generateSphere(s Sphere) (*Mesh, error) {
	if s.Radius <= 0 || s.WidthSegments < 3 || s.HeightSegments < 2 {
		return nil, fmt.Errorf("sphere %+v: %w", s, ErrInvalidShape)
	}
	return patch(s.HeightSegments, s.WidthSegments, func(u, v float64) math.Vec3 {
		return yUp(mgl64.SphericalToCartesian(s.Radius, v*gomath.Pi, u*2*gomath.Pi))
	}), nil
}

func generateCylinder(s Cylinder) (*Mesh, error) {
	if s.RadiusTop < 0 || s.RadiusBottom < 0 || s.RadiusTop+s.RadiusBottom == 0 ||
		s.Height <= 0 || s.RadialSegments < 3 || s.HeightSegments < 1 {
		return nil, fmt.Errorf("cylinder %+v: %w", s, ErrInvalidShape)
	}

	half := s.Height / 2
	m := patch(s.HeightSegments, s.RadialSegments, func(u, v float64) math.Vec3 {
		rho := s.RadiusTop + (s.RadiusBottom-s.RadiusTop)*v
		return yUp(mgl64.CylindricalToCartesian(rho, u*2*gomath.Pi, half-v*s.Height))
	})
	if s.RadiusTop > 0 {
		m.append(patch(1, s.RadialSegments, func(u, v float64) math.Vec3 {
			return yUp(mgl64.CylindricalToCartesian(s.RadiusTop*v, -u*2*gomath.Pi, half))
		}))
	}
	if s.RadiusBottom > 0 {
		m.append(patch(1, s.RadialSegments, func(u, v float64) math.Vec3 {
			return yUp(mgl64.CylindricalToCartesian(s.RadiusBottom*v, u*2*gomath.Pi, -half))
		}))
	}
	return m, nil
}

var (
	icosahedronVertices = func() []math.Vec3 {
		t := (1 + gomath.Sqrt(5)) / 2
		return []math.Vec3{
			{X: -1, Y: t}, {X: 1, Y: t}, {X: -1, Y: -t}, {X: 1, Y: -t},
			{Y: -1, Z: t}, {Y: 1, Z: t}, {Y: -1, Z: -t}, {Y: 1, Z: -t},
			{X: t, Z: -1}, {X: t, Z: 1}, {X: -t, Z: -1}, {X: -t, Z: 1},
		}
	}()
	icosahedronIndices = []uint32{
		0, 11, 5, 0, 5, 1, 0, 1, 7, 0, 7, 10, 0, 10, 11,
		1, 5, 9, 5, 11, 4, 11, 10, 2, 10, 7, 6, 7, 1, 8,
		3, 9, 4, 3, 4, 2, 3, 2, 6, 3, 6, 8, 3, 8, 9,
		4, 9, 5, 2, 4, 11, 6, 2, 10, 8, 6, 7, 9, 8, 1,
	}

	octahedronVertices = []math.Vec3{
		{X: 1}, {X: -1}, {Y: 1}, {Y: -1}, {Z: 1}, {Z: -1},
	}
	octahedronIndices = []uint32{
		0, 2, 4, 0, 4, 3, 0, 3, 5, 0, 5, 2,
		1, 2, 5, 1, 5, 3, 1, 3, 4, 1, 4, 2,
	}
)

func generateIcosahedron(s Icosahedron) (*Mesh, error) {
	return polyhedron(icosahedronVertices, icosahedronIndices, s.Radius, s.Detail)
}

func generateOctahedron(s Octahedron) (*Mesh, error) {
	return polyhedron(octahedronVertices, octahedronIndices, s.Radius, s.Detail)
}

// polyhedron subdivides the base solid detail times and projects every
// vertex onto the sphere of the given radius.
func polyhedron(verts []math.Vec3, indices []uint32, radius float64, detail int) (*Mesh, error) {
	if radius <= 0 || detail < 0 {
		return nil, fmt.Errorf("polyhedron radius %v detail %d: %w", radius, detail, ErrInvalidShape)
	}
	m := &Mesh{
		Positions: append([]math.Vec3(nil), verts...),
		Indices:   append([]uint32(nil), indices...),
	}
	for i := 0; i < detail; i++ {
		m = subdivide(m)
	}
	for i, p := range m.Positions {
		m.Positions[i] = p.Normalize().Scale(radius)
	}
	return m, nil
}
