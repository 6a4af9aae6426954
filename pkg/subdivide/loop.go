package subdivide

import (
	"github.com/philipparndt/gosubdiv/internal/parallel"
	"github.com/philipparndt/gosubdiv/pkg/geometry"
	"github.com/philipparndt/gosubdiv/pkg/mesh"
)

type triangleIndex = mesh.Incidence[mesh.Triangle]

func (s Subdivider) loopOnce(triangles []mesh.Triangle) []mesh.Triangle {
	inc := mesh.BuildIncidence(triangles)
	out := make([]mesh.Triangle, 4*len(triangles))

	parallel.ForEach(s.Pool, len(triangles), func(start, end int) {
		for i := start; i < end; i++ {
			split := s.splitTriangle(inc, triangles[i])
			copy(out[4*i:4*i+4], split[:])
		}
	})

	return out
}

func (s Subdivider) splitTriangle(inc *triangleIndex, t mesh.Triangle) [4]mesh.Triangle {
	self := inc.MustFaceOf(t)
	a, b, c := t.Vertices[0], t.Vertices[1], t.Vertices[2]

	// odd vertices
	ab := s.edgeVertex(inc, self, a, b, c)
	bc := s.edgeVertex(inc, self, b, c, a)
	ac := s.edgeVertex(inc, self, c, a, b)

	// even vertices
	na := s.evenVertex(inc, a)
	nb := s.evenVertex(inc, b)
	nc := s.evenVertex(inc, c)

	return [4]mesh.Triangle{
		mesh.NewTriangle(na, ab, ac),
		mesh.NewTriangle(nb, ab, bc),
		mesh.NewTriangle(nc, ac, bc),
		mesh.NewTriangle(ab, bc, ac),
	}
}

// opposite finds the corner of the neighbor across edge a-b that is on
// neither end of the edge.
func opposite(inc *triangleIndex, self mesh.FaceID, a, b mesh.Vertex) (mesh.Vertex, bool) {
	nid := inc.Neighbor(self, a, b)
	if nid == mesh.NoFace {
		return mesh.Vertex{}, false
	}

	corners := inc.Face(nid).Vertices
	for _, w := range corners[:2] {
		if !w.Equals(a) && !w.Equals(b) {
			return w, true
		}
	}
	return corners[2], true
}

func (s Subdivider) edgeVertex(inc *triangleIndex, self mesh.FaceID, a, b, c mesh.Vertex) mesh.Vertex {
	d, ok := opposite(inc, self, a, b)
	return s.oddVertex(a, b, c, d, ok)
}

// oddVertex places the new vertex on edge a-b, where c is the third corner
// of this triangle and d the far corner of the neighbor.
func (s Subdivider) oddVertex(a, b, c, d mesh.Vertex, hasNeighbor bool) mesh.Vertex {
	mid := mesh.Midpoint(a, b)
	if !hasNeighbor {
		return mid
	}

	if s.Creases {
		shared := a.Position.Sub(b.Position).Normalize()
		e1 := a.Position.Sub(c.Position).Normalize()
		e2 := a.Position.Sub(d.Position).Normalize()
		n1 := shared.Cross(e1).Normalize()
		n2 := e2.Cross(shared).Normalize()
		if creased(n1, n2) {
			return mid
		}
	}

	p := a.Position.Scale(3.0 / 8.0).
		Add(b.Position.Scale(3.0 / 8.0)).
		Add(c.Position.Scale(1.0 / 8.0)).
		Add(d.Position.Scale(1.0 / 8.0))
	return mesh.Vertex{Position: p}
}

// evenVertex repositions an original vertex against its one-ring. A ring
// vertex is one shared by at least two of the triangles around v.
func (s Subdivider) evenVertex(inc *triangleIndex, v mesh.Vertex) mesh.Vertex {
	self := inc.MustLookup(v)
	faces := inc.IncidentIDs(self)

	counts := make(map[mesh.VertexID]int)
	var seen []mesh.VertexID
	for _, fid := range faces {
		for _, id := range inc.Corners(fid) {
			if counts[id] == 0 {
				seen = append(seen, id)
			}
			counts[id]++
		}
	}

	var ring []geometry.Vector3
	for _, id := range seen {
		if id != self && counts[id] >= 2 {
			ring = append(ring, inc.Vertex(id).Position)
		}
	}

	n := len(ring)
	switch n {
	case 0:
		return v
	case 2:
		p := v.Position.Scale(3.0 / 4.0).
			Add(ring[0].Scale(1.0 / 8.0)).
			Add(ring[1].Scale(1.0 / 8.0))
		return mesh.Vertex{Position: p}
	}

	if s.Creases {
		normals := make([]geometry.Vector3, len(faces))
		for i, fid := range faces {
			normals[i] = mesh.Normal(inc.Face(fid))
		}
		if minPairwiseDot(normals) < CreaseThreshold {
			return v
		}
	}

	k := float64(n)
	beta := 3.0 / (8.0 * k)
	if n == 3 {
		beta = 3.0 / 16.0
	}

	p := v.Position.Scale(1 - k*beta)
	for _, r := range ring {
		p = p.Add(r.Scale(beta))
	}
	return mesh.Vertex{Position: p}
}
