package subdivide

import (
	"fmt"

	"github.com/philipparndt/gosubdiv/internal/parallel"
	"github.com/philipparndt/gosubdiv/pkg/geometry"
	"github.com/philipparndt/gosubdiv/pkg/mesh"
)

type quadIndex = mesh.Incidence[mesh.Quad]

func (s Subdivider) catmullClarkOnce(quads []mesh.Quad) []mesh.Quad {
	inc := mesh.BuildIncidence(quads)
	out := make([]mesh.Quad, 4*len(quads))

	parallel.ForEach(s.Pool, len(quads), func(start, end int) {
		for i := start; i < end; i++ {
			split := s.splitQuad(inc, quads[i])
			copy(out[4*i:4*i+4], split[:])
		}
	})

	return out
}

func (s Subdivider) splitQuad(inc *quadIndex, q mesh.Quad) [4]mesh.Quad {
	self := inc.MustFaceOf(q)
	a, b, c, d := q.Vertices[0], q.Vertices[1], q.Vertices[2], q.Vertices[3]

	center := q.Center()

	ab := s.quadEdgePoint(inc, self, q, a, b)
	bc := s.quadEdgePoint(inc, self, q, b, c)
	cd := s.quadEdgePoint(inc, self, q, c, d)
	da := s.quadEdgePoint(inc, self, q, a, d)

	na := s.quadVertexPoint(inc, a)
	nb := s.quadVertexPoint(inc, b)
	nc := s.quadVertexPoint(inc, c)
	nd := s.quadVertexPoint(inc, d)

	return [4]mesh.Quad{
		mesh.NewQuad(na, ab, center, da),
		mesh.NewQuad(ab, nb, bc, center),
		mesh.NewQuad(center, bc, nc, cd),
		mesh.NewQuad(da, center, cd, nd),
	}
}

// quadEdgePoint blends the edge midpoint with the centers of both faces
// sharing the edge. Boundary and crease edges stay at the midpoint.
func (s Subdivider) quadEdgePoint(inc *quadIndex, self mesh.FaceID, q mesh.Quad, a, b mesh.Vertex) mesh.Vertex {
	mid := mesh.Midpoint(a, b)

	nid := inc.Neighbor(self, a, b)
	if nid == mesh.NoFace {
		return mid
	}
	neighbor := inc.Face(nid)

	if s.Creases && creased(mesh.Normal(q), mesh.Normal(neighbor)) {
		return mid
	}

	return mesh.Midpoint(mesh.Midpoint(q.Center(), neighbor.Center()), mid)
}

// quadVertexPoint moves an original vertex to (F + 2R + (n-3)P) / n where F
// averages the centers of the n faces around it and R averages the 2n edge
// midpoints next to it in those faces.
func (s Subdivider) quadVertexPoint(inc *quadIndex, v mesh.Vertex) mesh.Vertex {
	faces := inc.IncidentIDs(inc.MustLookup(v))
	n := float64(len(faces))

	if s.Creases {
		normals := make([]geometry.Vector3, len(faces))
		for i, fid := range faces {
			normals[i] = mesh.Normal(inc.Face(fid))
		}
		if minPairwiseDot(normals) < CreaseThreshold {
			return v
		}
	}

	var centers, midpoints geometry.Vector3
	for _, fid := range faces {
		q := inc.Face(fid)
		centers = centers.Add(q.Center().Position)
		prev, next := edgeMidpoints(v, q)
		midpoints = midpoints.Add(prev.Position).Add(next.Position)
	}

	f := centers.Scale(1 / n)
	r := midpoints.Scale(1 / (2 * n))
	p := f.Add(r.Scale(2)).Add(v.Position.Scale(n - 3)).Scale(1 / n)

	return mesh.Vertex{Position: p}
}

// edgeMidpoints returns the midpoints of the two edges of q meeting at v.
func edgeMidpoints(v mesh.Vertex, q mesh.Quad) (mesh.Vertex, mesh.Vertex) {
	for i, corner := range q.Vertices {
		if corner.Equals(v) {
			prev := q.Vertices[(i+3)%4]
			next := q.Vertices[(i+1)%4]
			return mesh.Midpoint(v, prev), mesh.Midpoint(v, next)
		}
	}
	panic(fmt.Errorf("%w: vertex %v is not a corner of quad %v", mesh.ErrInvariant, v.Position, q.Vertices))
}
