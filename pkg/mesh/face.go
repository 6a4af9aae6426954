package mesh

import "github.com/philipparndt/gosubdiv/pkg/geometry"

// Quad is a four-sided face with edges a-b, b-c, c-d, d-a.
type Quad struct {
	Vertices [4]Vertex
}

// NewQuad creates a quad from its corners in winding order
func NewQuad(a, b, c, d Vertex) Quad {
	return Quad{Vertices: [4]Vertex{a, b, c, d}}
}

// Corners returns the vertex cycle of the quad
func (q Quad) Corners() []Vertex {
	return q.Vertices[:]
}

// Center is the average of the midpoints of edges a-b and c-d.
func (q Quad) Center() Vertex {
	return Midpoint(Midpoint(q.Vertices[0], q.Vertices[1]), Midpoint(q.Vertices[2], q.Vertices[3]))
}

// Triangle is a three-sided face with edges a-b, b-c, c-a.
type Triangle struct {
	Vertices [3]Vertex
}

// NewTriangle creates a triangle from its corners in winding order
func NewTriangle(a, b, c Vertex) Triangle {
	return Triangle{Vertices: [3]Vertex{a, b, c}}
}

// Corners returns the vertex cycle of the triangle
func (t Triangle) Corners() []Vertex {
	return t.Vertices[:]
}

// Face is the set of polygon kinds a mesh can be made of.
// A mesh is a slice of a single kind.
type Face interface {
	Quad | Triangle
	Corners() []Vertex
}

// Normal is the unit normal of a face, taken from its first two edges.
func Normal[F Face](f F) geometry.Vector3 {
	c := f.Corners()
	e1 := c[0].Position.Sub(c[1].Position).Normalize()
	e2 := c[1].Position.Sub(c[2].Position).Normalize()
	return e1.Cross(e2).Normalize()
}

// Arity returns the number of corners of the face kind F.
func Arity[F Face]() int {
	var f F
	return len(f.Corners())
}
