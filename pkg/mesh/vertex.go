// Package mesh holds the face and vertex types shared by the subdivision
// passes, plus the per-level incidence and adjacency indexes built over them.
package mesh

import (
	"errors"
	"math"

	"github.com/philipparndt/gosubdiv/pkg/geometry"
)

// Epsilon is the per-axis tolerance under which two positions are the same vertex.
const Epsilon = 1e-4

// ErrInvariant marks a broken structural invariant of a mesh pass.
// Functions in this module panic with an error wrapping it; it is never returned.
var ErrInvariant = errors.New("mesh invariant violated")

// Vertex is a mesh corner. Identity is approximate, see Equals.
type Vertex struct {
	Position geometry.Vector3
}

// NewVertex creates a vertex at the given coordinates
func NewVertex(x, y, z float64) Vertex {
	return Vertex{Position: geometry.NewVector3(x, y, z)}
}

// Equals reports whether every coordinate differs by less than Epsilon.
func (v Vertex) Equals(other Vertex) bool {
	return v.Position.ApproxEqual(other.Position, Epsilon)
}

// Key is the bucket a vertex hashes into: each coordinate truncated toward zero.
//
// Equality is finer than the key, and two vertices within Epsilon that straddle
// an integer boundary land in different buckets and are never merged. Welding
// depends on this quantization, so it must not be "fixed" without changing
// every subdivision result near integer coordinates.
type Key [3]int32

// Key returns the bucket of the vertex
func (v Vertex) Key() Key {
	return Key{truncate(v.Position.X), truncate(v.Position.Y), truncate(v.Position.Z)}
}

// truncate converts like a saturating float-to-int cast: NaN maps to 0.
func truncate(f float64) int32 {
	switch {
	case math.IsNaN(f):
		return 0
	case f >= math.MaxInt32:
		return math.MaxInt32
	case f <= math.MinInt32:
		return math.MinInt32
	}
	return int32(f)
}

// Midpoint returns the vertex halfway between a and b
func Midpoint(a, b Vertex) Vertex {
	return Vertex{Position: geometry.Average(a.Position, b.Position)}
}
