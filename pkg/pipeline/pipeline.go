// Package pipeline chains the subdivision stages: linear splits, then the
// smoothing scheme matching the face kind, then coloring and recentering.
package pipeline

import (
	"errors"
	"fmt"
	"time"

	"github.com/philipparndt/gosubdiv/internal/parallel"
	"github.com/philipparndt/gosubdiv/pkg/mesh"
	"github.com/philipparndt/gosubdiv/pkg/subdivide"
	"github.com/philipparndt/gosubdiv/pkg/transform"
)

// Config selects how far a mesh is refined.
type Config struct {
	LinearLevels int
	SmoothLevels int
	Creases      bool

	// Workers > 1 spreads each pass over a worker pool.
	Workers int
}

// Validate rejects negative level counts.
func (c Config) Validate() error {
	if c.LinearLevels < 0 {
		return fmt.Errorf("linear levels must not be negative, got %d", c.LinearLevels)
	}
	if c.SmoothLevels < 0 {
		return fmt.Errorf("smooth levels must not be negative, got %d", c.SmoothLevels)
	}
	return nil
}

// Result is the outcome of one pipeline run.
type Result[F mesh.Face] struct {
	Faces    []F
	Vertices []transform.ColoredVertex
	Elapsed  time.Duration
}

// GetVertices refines faces and returns the colored, recentered triangle
// stream. Quads are smoothed with Catmull-Clark, triangles with Loop.
// It panics if a mesh invariant breaks; use Run to get an error instead.
func GetVertices[F mesh.Face](faces []F, linearLevels, smoothLevels int, creases bool) []transform.ColoredVertex {
	faces = subdivide.Linear(faces, linearLevels)
	faces = subdivide.Smooth(subdivide.Subdivider{Creases: creases}, faces, smoothLevels)
	return transform.Transform(faces)
}

// Run is GetVertices driven by a Config. A broken mesh invariant aborts the
// run and is returned as an error wrapping mesh.ErrInvariant.
func Run[F mesh.Face](faces []F, cfg Config) (result *Result[F], err error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	defer func() {
		if r := recover(); r != nil {
			if e, ok := r.(error); ok && errors.Is(e, mesh.ErrInvariant) {
				result, err = nil, fmt.Errorf("subdivision aborted: %w", e)
				return
			}
			panic(r)
		}
	}()

	start := time.Now()
	s := subdivide.Subdivider{Creases: cfg.Creases}
	workers := 1
	if cfg.Workers > 1 {
		s.Pool = parallel.NewWorkerPool(cfg.Workers)
		defer s.Pool.Close()
		workers = s.Pool.Workers()
	}

	refined := subdivide.Linear(faces, cfg.LinearLevels)
	refined = subdivide.Smooth(s, refined, cfg.SmoothLevels)
	vertices := transform.Transform(refined)

	result = &Result[F]{
		Faces:    refined,
		Vertices: vertices,
		Elapsed:  time.Since(start),
	}

	subdivide.Logger().Info("pipeline finished",
		"arity", mesh.Arity[F](),
		"linear", cfg.LinearLevels,
		"smooth", cfg.SmoothLevels,
		"creases", cfg.Creases,
		"workers", workers,
		"faces_in", len(faces),
		"faces_out", len(refined),
		"vertices", len(vertices),
		"elapsed", result.Elapsed,
	)

	return result, nil
}
