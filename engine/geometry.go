package engine

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Shape identifies a wireframe primitive in the palette
type Shape int

const (
	ShapeIcosahedron Shape = iota
	ShapeOctahedron
	ShapeTetrahedron
	ShapeBox

	shapeCount
)

var shapeNames = [...]string{"icosahedron", "octahedron", "tetrahedron", "box"}

func (s Shape) String() string {
	if s < 0 || s >= shapeCount {
		return "unknown"
	}
	return shapeNames[s]
}

// Wireframe is a unit-sized solid drawn as edges only
type Wireframe struct {
	Vertices []mgl64.Vec3
	Edges    [][2]int
}

var wireframes = [shapeCount]Wireframe{
	ShapeIcosahedron: newWireframe(icosahedronVertices()),
	ShapeOctahedron:  newWireframe(octahedronVertices()),
	ShapeTetrahedron: newWireframe(tetrahedronVertices()),
	ShapeBox:         newWireframe(boxVertices()),
}

// WireframeOf returns the shared geometry of a shape
func WireframeOf(s Shape) *Wireframe {
	if s < 0 || s >= shapeCount {
		s = ShapeBox
	}
	return &wireframes[s]
}

// newWireframe connects every pair of vertices at the minimum pairwise
// distance, which yields exactly the edges of a regular polyhedron or a cube.
func newWireframe(verts []mgl64.Vec3) Wireframe {
	minDist := math.Inf(1)
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			if d := verts[i].Sub(verts[j]).Len(); d < minDist {
				minDist = d
			}
		}
	}
	const eps = 1e-6
	var edges [][2]int
	for i := range verts {
		for j := i + 1; j < len(verts); j++ {
			if verts[i].Sub(verts[j]).Len() <= minDist+eps {
				edges = append(edges, [2]int{i, j})
			}
		}
	}
	return Wireframe{Vertices: verts, Edges: edges}
}

func icosahedronVertices() []mgl64.Vec3 {
	phi := (1 + math.Sqrt(5)) / 2
	raw := []mgl64.Vec3{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	for i := range raw {
		raw[i] = raw[i].Normalize()
	}
	return raw
}

func octahedronVertices() []mgl64.Vec3 {
	return []mgl64.Vec3{
		{1, 0, 0}, {-1, 0, 0},
		{0, 1, 0}, {0, -1, 0},
		{0, 0, 1}, {0, 0, -1},
	}
}

func tetrahedronVertices() []mgl64.Vec3 {
	raw := []mgl64.Vec3{{1, 1, 1}, {-1, -1, 1}, {-1, 1, -1}, {1, -1, -1}}
	for i := range raw {
		raw[i] = raw[i].Normalize()
	}
	return raw
}

func boxVertices() []mgl64.Vec3 {
	verts := make([]mgl64.Vec3, 0, 8)
	for _, x := range []float64{-0.5, 0.5} {
		for _, y := range []float64{-0.5, 0.5} {
			for _, z := range []float64{-0.5, 0.5} {
				verts = append(verts, mgl64.Vec3{x, y, z})
			}
		}
	}
	return verts
}
