package transform

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gosubdiv/pkg/geometry"
	"github.com/philipparndt/gosubdiv/pkg/mesh"
	"github.com/philipparndt/gosubdiv/pkg/subdivide"
)

func v(x, y, z float64) mesh.Vertex { return mesh.NewVertex(x, y, z) }

func grid(n int) []mesh.Quad {
	var quads []mesh.Quad
	for y := range n {
		for x := range n {
			fx, fy := float64(x), float64(y)
			quads = append(quads, mesh.NewQuad(v(fx, fy, 0), v(fx+1, fy, 0), v(fx+1, fy+1, 0), v(fx, fy+1, 0)))
		}
	}
	return quads
}

func octahedron() []mesh.Triangle {
	px, nx := v(2, 0, 0), v(-2, 0, 0)
	py, ny := v(0, 2, 0), v(0, -2, 0)
	pz, nz := v(0, 0, 2), v(0, 0, -2)
	return []mesh.Triangle{
		mesh.NewTriangle(px, py, pz), mesh.NewTriangle(py, nx, pz),
		mesh.NewTriangle(nx, ny, pz), mesh.NewTriangle(ny, px, pz),
		mesh.NewTriangle(py, px, nz), mesh.NewTriangle(nx, py, nz),
		mesh.NewTriangle(ny, nx, nz), mesh.NewTriangle(px, ny, nz),
	}
}

func assertProperColoring[F mesh.Face](t *testing.T, faces []F) {
	t.Helper()
	colors := Assign(faces)
	adj := mesh.BuildAdjacency(faces)
	inc := adj.Incidence()

	byFace := make(map[mesh.FaceID]int)
	for i, f := range faces {
		byFace[inc.MustFaceOf(f)] = colors[i]
		assert.Less(t, colors[i], len(Palette[F]()))
	}
	for fid, c := range byFace {
		for _, n := range adj.NeighborsOf(fid) {
			if n != mesh.NoFace {
				assert.NotEqual(t, c, byFace[n], "faces %d and %d share an edge and a color", fid, n)
			}
		}
	}
}

func TestPaletteSize(t *testing.T) {
	assert.Len(t, Palette[mesh.Quad](), 5)
	assert.Len(t, Palette[mesh.Triangle](), 4)
}

func TestAssignIsProperColoring(t *testing.T) {
	assertProperColoring(t, grid(5))
	assertProperColoring(t, subdivide.Linear(grid(2), 2))
	assertProperColoring(t, octahedron())
	assertProperColoring(t, subdivide.Loop(octahedron(), 2, false))
}

func TestAssignGreedyOrder(t *testing.T) {
	colors := Assign(grid(2))
	assert.Equal(t, []int{0, 1, 1, 0}, colors)
}

func TestTransformQuadWindings(t *testing.T) {
	quads := []mesh.Quad{mesh.NewQuad(v(0, 0, 0), v(2, 0, 0), v(2, 2, 0), v(0, 2, 0))}
	out := Transform(quads)
	require.Len(t, out, 6)

	expected := []geometry.Vector3{
		{X: -1, Y: -1}, {X: 1, Y: -1}, {X: 1, Y: 1},
		{X: 1, Y: 1}, {X: -1, Y: -1}, {X: -1, Y: 1},
	}
	for i, cv := range out {
		assert.Equal(t, expected[i], cv.Position)
		assert.Equal(t, Colors[0], cv.Color)
		assert.Equal(t, 0, cv.ColorIndex)
	}
}

func TestTransformTriangleStream(t *testing.T) {
	tris := octahedron()
	out := Transform(tris)
	require.Len(t, out, 3*len(tris))

	for i := 0; i < len(out); i += 3 {
		assert.Equal(t, out[i].Color, out[i+1].Color)
		assert.Equal(t, out[i].Color, out[i+2].Color)
	}
}

func TestTransformRecentersQuads(t *testing.T) {
	quads := subdivide.Linear(grid(3), 1)
	for i := range quads {
		for j := range quads[i].Vertices {
			quads[i].Vertices[j].Position = quads[i].Vertices[j].Position.Add(geometry.NewVector3(10, -4, 7))
		}
	}

	out := Transform(quads)

	// Corners a, b, c, d of each quad appear at stream offsets 0, 1, 2, 5.
	var sum geometry.Vector3
	for i := 0; i < len(out); i += 6 {
		for _, k := range []int{0, 1, 2, 5} {
			sum = sum.Add(out[i+k].Position)
		}
	}
	mean := sum.Scale(1 / float64(4*len(quads)))
	assert.True(t, mean.ApproxEqual(geometry.Vector3{}, 1e-9), "mean %v", mean)
}

func TestTransformRecentersTriangles(t *testing.T) {
	tris := octahedron()
	for i := range tris {
		for j := range tris[i].Vertices {
			tris[i].Vertices[j].Position = tris[i].Vertices[j].Position.Add(geometry.NewVector3(1, 2, 3))
		}
	}

	out := Transform(tris)

	var sum geometry.Vector3
	for _, cv := range out {
		sum = sum.Add(cv.Position)
	}
	mean := sum.Scale(1 / float64(len(out)))
	assert.True(t, mean.ApproxEqual(geometry.Vector3{}, 1e-9), "mean %v", mean)
}

func TestTransformEmpty(t *testing.T) {
	assert.Empty(t, Transform([]mesh.Quad{}))
	assert.Empty(t, Transform[mesh.Triangle](nil))
}
