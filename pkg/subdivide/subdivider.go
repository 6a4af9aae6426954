// Package subdivide refines quad and triangle meshes: uniform linear
// splitting, Catmull-Clark for quads and Loop for triangles.
//
// Every pass reads an immutable face list and returns a new one with four
// times as many faces. Smoothing passes build a fresh mesh.Incidence over
// their input; nothing survives from one level to the next.
package subdivide

import (
	"github.com/philipparndt/gosubdiv/internal/parallel"
	"github.com/philipparndt/gosubdiv/pkg/geometry"
	"github.com/philipparndt/gosubdiv/pkg/mesh"
)

// CreaseThreshold is the normal dot product below which two faces meet at a
// sharp edge when crease handling is on.
const CreaseThreshold = 0.6

// Subdivider runs smoothing passes. The zero value smooths everything and
// works on the calling goroutine.
type Subdivider struct {
	// Creases keeps edges and vertices between faces whose normals
	// disagree (dot < CreaseThreshold) at their linear positions.
	Creases bool

	// Pool spreads the faces of one pass over workers. Output order and
	// values do not depend on it.
	Pool *parallel.WorkerPool
}

// Linear applies levels uniform splits.
func Linear[F mesh.Face](faces []F, levels int) []F {
	for level := range levels {
		n := len(faces)
		faces = linearOnce(faces)
		Logger().Debug("linear pass", "level", level+1, "faces_in", n, "faces_out", len(faces))
	}
	return faces
}

// CatmullClark applies levels Catmull-Clark passes to a quad mesh.
func CatmullClark(quads []mesh.Quad, levels int, creases bool) []mesh.Quad {
	return Subdivider{Creases: creases}.CatmullClark(quads, levels)
}

// Loop applies levels Loop passes to a triangle mesh.
func Loop(triangles []mesh.Triangle, levels int, creases bool) []mesh.Triangle {
	return Subdivider{Creases: creases}.Loop(triangles, levels)
}

// CatmullClark applies levels Catmull-Clark passes to a quad mesh.
func (s Subdivider) CatmullClark(quads []mesh.Quad, levels int) []mesh.Quad {
	for level := range levels {
		n := len(quads)
		quads = s.catmullClarkOnce(quads)
		Logger().Debug("catmull-clark pass", "level", level+1, "creases", s.Creases, "faces_in", n, "faces_out", len(quads))
	}
	return quads
}

// Loop applies levels Loop passes to a triangle mesh.
func (s Subdivider) Loop(triangles []mesh.Triangle, levels int) []mesh.Triangle {
	for level := range levels {
		n := len(triangles)
		triangles = s.loopOnce(triangles)
		Logger().Debug("loop pass", "level", level+1, "creases", s.Creases, "faces_in", n, "faces_out", len(triangles))
	}
	return triangles
}

// Smooth dispatches to the smoothing scheme matching the face kind.
func Smooth[F mesh.Face](s Subdivider, faces []F, levels int) []F {
	switch fs := any(faces).(type) {
	case []mesh.Quad:
		return any(s.CatmullClark(fs, levels)).([]F)
	case []mesh.Triangle:
		return any(s.Loop(fs, levels)).([]F)
	}
	panic("unreachable")
}

// creased reports whether two face normals meet at a sharp edge. A zero
// normal (a face with collinear corners) never forms a crease.
func creased(n1, n2 geometry.Vector3) bool {
	if n1 == (geometry.Vector3{}) || n2 == (geometry.Vector3{}) {
		return false
	}
	return n1.Dot(n2) < CreaseThreshold
}

// minPairwiseDot is the smallest dot product between two distinct normals,
// or 1 with fewer than two normals. Zero normals are skipped.
func minPairwiseDot(normals []geometry.Vector3) float64 {
	s := 1.0
	for i := range normals {
		for j := range normals {
			if i == j || normals[i] == (geometry.Vector3{}) || normals[j] == (geometry.Vector3{}) {
				continue
			}
			if d := normals[i].Dot(normals[j]); d < s {
				s = d
			}
		}
	}
	return s
}
