// Package transform turns a subdivided face list into a flat, render-ready
// triangle vertex stream with a debug color per face.
package transform

import (
	"fmt"

	"github.com/philipparndt/gosubdiv/pkg/geometry"
	"github.com/philipparndt/gosubdiv/pkg/mesh"
)

// Color is an RGB triple in [0,1]
type Color [3]float32

// Colors is the debug palette. Quads use all five entries, triangles the
// first four: one more than the edges of a face, so a face always finds a
// color its neighbors do not use.
var Colors = [...]Color{
	{1, 0, 0},
	{0, 1, 0},
	{0, 0, 1},
	{1, 1, 0},
	{0, 1, 1},
}

// Palette returns the colors available to faces of kind F.
func Palette[F mesh.Face]() []Color {
	return Colors[:mesh.Arity[F]()+1]
}

// ColoredVertex is one corner of an output triangle.
type ColoredVertex struct {
	Position   geometry.Vector3
	Color      Color
	ColorIndex int
}

// Transform colors faces greedily in list order, emits one triangle per
// triangle and two per quad (split along its a-c diagonal) and recenters the
// stream.
//
// The subtracted center is the sum of every face's corners divided by
// arity × face count, so a vertex shared by k faces counts k times.
// It panics with mesh.ErrInvariant if the palette runs out.
func Transform[F mesh.Face](faces []F) []ColoredVertex {
	if len(faces) == 0 {
		return []ColoredVertex{}
	}

	colors := Assign(faces)
	palette := Palette[F]()
	arity := mesh.Arity[F]()

	out := make([]ColoredVertex, 0, len(faces)*3*(arity-2))
	var sum geometry.Vector3
	for i, f := range faces {
		corners := f.Corners()
		c := colors[i]
		for _, idx := range triangulate(arity) {
			out = append(out, ColoredVertex{
				Position:   corners[idx].Position,
				Color:      palette[c],
				ColorIndex: c,
			})
		}
		for _, corner := range corners {
			sum = sum.Add(corner.Position)
		}
	}

	center := sum.Scale(1 / float64(arity*len(faces)))
	for i := range out {
		out[i].Position = out[i].Position.Sub(center)
	}

	return out
}

var (
	triangleFan = []int{0, 1, 2}
	quadFan     = []int{0, 1, 2, 2, 0, 3}
)

func triangulate(arity int) []int {
	if arity == 4 {
		return quadFan
	}
	return triangleFan
}

// Assign returns a palette index per face such that no two faces sharing an
// edge get the same index. Faces are visited in list order and take the
// lowest index not used by an already colored neighbor.
func Assign[F mesh.Face](faces []F) []int {
	adj := mesh.BuildAdjacency(faces)
	size := len(Palette[F]())

	assigned := make(map[mesh.FaceID]int, len(faces))
	colors := make([]int, len(faces))
	taken := make([]bool, size)

	for i, f := range faces {
		clear(taken)
		fid, neighbors := adj.Neighbors(f)
		for _, n := range neighbors {
			if n == mesh.NoFace {
				continue
			}
			if c, ok := assigned[n]; ok {
				taken[c] = true
			}
		}

		c := lowestFree(taken)
		if c < 0 {
			panic(fmt.Errorf("%w: no free color among %d for face %d", mesh.ErrInvariant, size, i))
		}
		assigned[fid] = c
		colors[i] = c
	}

	return colors
}

func lowestFree(taken []bool) int {
	for i, t := range taken {
		if !t {
			return i
		}
	}
	return -1
}
