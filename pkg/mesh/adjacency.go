package mesh

import "fmt"

// Adjacency maps every distinct face to the face across each of its edges.
// Entry i of a face's neighbors is the face across the edge from corner i to
// corner i+1 (wrapping), or NoFace.
type Adjacency[F Face] struct {
	inc       *Incidence[F]
	neighbors [][]FaceID
}

// BuildAdjacency indexes faces and resolves the neighbor across every edge.
func BuildAdjacency[F Face](faces []F) *Adjacency[F] {
	inc := BuildIncidence(faces)
	adj := &Adjacency[F]{
		inc:       inc,
		neighbors: make([][]FaceID, inc.FaceCount()),
	}

	for fid := range adj.neighbors {
		corners := inc.Face(FaceID(fid)).Corners()
		n := make([]FaceID, len(corners))
		for i := range corners {
			n[i] = inc.Neighbor(FaceID(fid), corners[i], corners[(i+1)%len(corners)])
		}
		adj.neighbors[fid] = n
	}

	return adj
}

// Incidence returns the vertex index the adjacency was derived from.
func (adj *Adjacency[F]) Incidence() *Incidence[F] {
	return adj.inc
}

// NeighborsOf returns the per-edge neighbors of a face id.
func (adj *Adjacency[F]) NeighborsOf(id FaceID) []FaceID {
	return adj.neighbors[id]
}

// Neighbors returns the per-edge neighbors of f. It panics when f was not
// part of the face list the adjacency was built from.
func (adj *Adjacency[F]) Neighbors(f F) (FaceID, []FaceID) {
	fid, ok := adj.inc.FaceOf(f)
	if !ok {
		panic(fmt.Errorf("%w: face %v is not in the adjacency map", ErrInvariant, f.Corners()))
	}
	return fid, adj.neighbors[fid]
}
