package subdivide

import "github.com/philipparndt/gosubdiv/pkg/mesh"

func linearOnce[F mesh.Face](faces []F) []F {
	switch fs := any(faces).(type) {
	case []mesh.Quad:
		return any(splitQuads(fs)).([]F)
	case []mesh.Triangle:
		return any(splitTriangles(fs)).([]F)
	}
	panic("unreachable")
}

// splitQuads cuts every quad into four at its edge midpoints and center.
func splitQuads(quads []mesh.Quad) []mesh.Quad {
	out := make([]mesh.Quad, 0, 4*len(quads))
	for _, q := range quads {
		a, b, c, d := q.Vertices[0], q.Vertices[1], q.Vertices[2], q.Vertices[3]
		ab := mesh.Midpoint(a, b)
		bc := mesh.Midpoint(b, c)
		cd := mesh.Midpoint(c, d)
		da := mesh.Midpoint(a, d)
		center := mesh.Midpoint(ab, cd)

		out = append(out,
			mesh.NewQuad(a, ab, center, da),
			mesh.NewQuad(ab, b, bc, center),
			mesh.NewQuad(center, bc, c, cd),
			mesh.NewQuad(da, center, cd, d),
		)
	}
	return out
}

// splitTriangles cuts every triangle into three corner triangles and one
// center triangle at its edge midpoints.
func splitTriangles(triangles []mesh.Triangle) []mesh.Triangle {
	out := make([]mesh.Triangle, 0, 4*len(triangles))
	for _, t := range triangles {
		a, b, c := t.Vertices[0], t.Vertices[1], t.Vertices[2]
		ab := mesh.Midpoint(a, b)
		bc := mesh.Midpoint(c, b)
		ac := mesh.Midpoint(a, c)

		out = append(out,
			mesh.NewTriangle(a, ab, ac),
			mesh.NewTriangle(b, ab, bc),
			mesh.NewTriangle(c, ac, bc),
			mesh.NewTriangle(ab, bc, ac),
		)
	}
	return out
}
