package mesh

import (
	"math"

	"github.com/philipparndt/gosubdiv/pkg/geometry"
)

// Stats summarizes a face list
type Stats struct {
	Faces         int
	DistinctFaces int
	Vertices      int
	Edges         int
	BoundaryEdges int
	Bounds        geometry.BoundingBox
	MinEdgeLength float64
	MaxEdgeLength float64
	AvgEdgeLength float64
	SurfaceArea   float64
	// Volume is only meaningful for closed, consistently wound meshes.
	Volume float64
}

type edgeKey [2]VertexID

func newEdgeKey(a, b VertexID) edgeKey {
	if b < a {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// Analyze computes statistics over the welded form of faces
func Analyze[F Face](faces []F) Stats {
	inc := BuildIncidence(faces)
	stats := Stats{
		Faces:         len(faces),
		DistinctFaces: inc.FaceCount(),
		Vertices:      inc.VertexCount(),
		Bounds:        geometry.NewBoundingBox(),
	}

	for id := range inc.VertexCount() {
		stats.Bounds.Extend(inc.Vertex(VertexID(id)).Position)
	}

	uses := make(map[edgeKey]int)
	var order []edgeKey
	for fid := range inc.FaceCount() {
		corners := inc.Corners(FaceID(fid))
		area, volume := fanMeasure(inc, corners)
		stats.SurfaceArea += area
		stats.Volume += volume
		for i := range corners {
			k := newEdgeKey(corners[i], corners[(i+1)%len(corners)])
			if uses[k] == 0 {
				order = append(order, k)
			}
			uses[k]++
		}
	}

	stats.Volume = math.Abs(stats.Volume)
	stats.Edges = len(order)
	if stats.Edges == 0 {
		return stats
	}

	stats.MinEdgeLength = math.MaxFloat64
	total := 0.0
	for _, k := range order {
		if uses[k] == 1 {
			stats.BoundaryEdges++
		}
		length := inc.Vertex(k[0]).Position.Distance(inc.Vertex(k[1]).Position)
		total += length
		stats.MinEdgeLength = math.Min(stats.MinEdgeLength, length)
		stats.MaxEdgeLength = math.Max(stats.MaxEdgeLength, length)
	}
	stats.AvgEdgeLength = total / float64(stats.Edges)

	return stats
}

// fanMeasure returns the area of a face and its signed volume contribution
// (divergence theorem), triangulating it as a fan around the first corner.
func fanMeasure[F Face](inc *Incidence[F], corners []VertexID) (area, volume float64) {
	a := inc.Vertex(corners[0]).Position
	for i := 1; i+1 < len(corners); i++ {
		b := inc.Vertex(corners[i]).Position
		c := inc.Vertex(corners[i+1]).Position
		area += b.Sub(a).Cross(c.Sub(a)).Length() / 2
		volume += a.Dot(b.Cross(c)) / 6
	}
	return area, volume
}
