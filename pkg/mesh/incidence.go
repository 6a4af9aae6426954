package mesh

import "fmt"

// VertexID identifies a welded vertex within one Incidence.
type VertexID int

// FaceID identifies a distinct face within one Incidence.
type FaceID int

// NoFace is the neighbor reported across an edge that no other face shares.
const NoFace FaceID = -1

type faceKey [4]VertexID

// Incidence maps every distinct vertex of a face list to the faces touching it.
//
// Vertices are welded into an arena on insertion: a position is looked up in
// the bucket of its Key and matched with Equals against the vertices already
// there; the first match wins, otherwise it gets a new id. Faces whose corners
// weld to the same ids are the same face and are stored once.
//
// An Incidence is a snapshot of one subdivision level. It is never updated;
// the next level builds a new one.
type Incidence[F Face] struct {
	vertices []Vertex
	buckets  map[Key][]VertexID

	faces    []F
	corners  [][]VertexID
	byKey    map[faceKey]FaceID
	incident [][]FaceID
}

// BuildIncidence indexes faces in list order.
func BuildIncidence[F Face](faces []F) *Incidence[F] {
	inc := &Incidence[F]{
		buckets: make(map[Key][]VertexID),
		byKey:   make(map[faceKey]FaceID, len(faces)),
	}

	for _, f := range faces {
		key := faceKey{-1, -1, -1, -1}
		ids := make([]VertexID, 0, 4)
		for i, v := range f.Corners() {
			id := inc.weld(v)
			key[i] = id
			ids = append(ids, id)
		}

		if _, exists := inc.byKey[key]; exists {
			continue
		}

		fid := FaceID(len(inc.faces))
		inc.faces = append(inc.faces, f)
		inc.corners = append(inc.corners, ids)
		inc.byKey[key] = fid
		for _, id := range ids {
			inc.incident[id] = appendFace(inc.incident[id], fid)
		}
	}

	return inc
}

func (inc *Incidence[F]) weld(v Vertex) VertexID {
	if id, ok := inc.Lookup(v); ok {
		return id
	}
	id := VertexID(len(inc.vertices))
	inc.vertices = append(inc.vertices, v)
	inc.incident = append(inc.incident, nil)
	k := v.Key()
	inc.buckets[k] = append(inc.buckets[k], id)
	return id
}

func appendFace(set []FaceID, id FaceID) []FaceID {
	for _, existing := range set {
		if existing == id {
			return set
		}
	}
	return append(set, id)
}

// Lookup returns the welded id of v, if v is part of the mesh.
func (inc *Incidence[F]) Lookup(v Vertex) (VertexID, bool) {
	for _, id := range inc.buckets[v.Key()] {
		if inc.vertices[id].Equals(v) {
			return id, true
		}
	}
	return 0, false
}

// MustLookup is Lookup for vertices known to be in the mesh.
func (inc *Incidence[F]) MustLookup(v Vertex) VertexID {
	id, ok := inc.Lookup(v)
	if !ok {
		panic(fmt.Errorf("%w: vertex %v is not in the incidence map", ErrInvariant, v.Position))
	}
	return id
}

// Vertex returns the representative vertex of a welded id.
func (inc *Incidence[F]) Vertex(id VertexID) Vertex {
	return inc.vertices[id]
}

// VertexCount returns the number of distinct vertices.
func (inc *Incidence[F]) VertexCount() int {
	return len(inc.vertices)
}

// FaceCount returns the number of distinct faces.
func (inc *Incidence[F]) FaceCount() int {
	return len(inc.faces)
}

// Face returns the face stored under id.
func (inc *Incidence[F]) Face(id FaceID) F {
	return inc.faces[id]
}

// Corners returns the welded vertex ids of a face in winding order.
func (inc *Incidence[F]) Corners(id FaceID) []VertexID {
	return inc.corners[id]
}

// FaceOf returns the id of f, if f is part of the mesh.
func (inc *Incidence[F]) FaceOf(f F) (FaceID, bool) {
	key := faceKey{-1, -1, -1, -1}
	for i, v := range f.Corners() {
		id, ok := inc.Lookup(v)
		if !ok {
			return NoFace, false
		}
		key[i] = id
	}
	fid, ok := inc.byKey[key]
	if !ok {
		return NoFace, false
	}
	return fid, true
}

// MustFaceOf is FaceOf for faces known to be in the mesh.
func (inc *Incidence[F]) MustFaceOf(f F) FaceID {
	fid, ok := inc.FaceOf(f)
	if !ok {
		panic(fmt.Errorf("%w: face %v is not in the incidence map", ErrInvariant, f.Corners()))
	}
	return fid
}

// IncidentIDs returns the faces touching a welded vertex, in insertion order.
func (inc *Incidence[F]) IncidentIDs(id VertexID) []FaceID {
	return inc.incident[id]
}

// Neighbor returns the first face other than self that touches both a and b,
// or NoFace. With more than one candidate (a non-manifold edge) the pick
// depends only on insertion order and carries no other meaning.
func (inc *Incidence[F]) Neighbor(self FaceID, a, b Vertex) FaceID {
	ia := inc.MustLookup(a)
	ib := inc.MustLookup(b)

	for _, fid := range inc.incident[ia] {
		if fid == self {
			continue
		}
		for _, other := range inc.incident[ib] {
			if other == fid {
				return fid
			}
		}
	}
	return NoFace
}
