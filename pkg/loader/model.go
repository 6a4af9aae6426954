// Package loader reads polygon meshes from Wavefront OBJ and STL files and
// writes subdivided faces back out as OBJ.
package loader

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/philipparndt/gosubdiv/pkg/geometry"
	"github.com/philipparndt/gosubdiv/pkg/mesh"
)

var (
	// ErrUnsupportedFormat is returned for unknown file extensions and for
	// OpenSCAD sources when openscad is not installed.
	ErrUnsupportedFormat = errors.New("unsupported mesh format")
	// ErrMixedArity is returned when a model is converted to a face kind that
	// not all of its polygons have.
	ErrMixedArity = errors.New("mesh mixes polygon sizes")
	// ErrEmptyMesh is returned when a model has no faces.
	ErrEmptyMesh = errors.New("mesh has no faces")
)

// Model is a polygon soup as read from disk
type Model struct {
	Name     string
	Polygons [][]geometry.Vector3
}

// AddPolygon appends a face given by its corner positions
func (m *Model) AddPolygon(corners ...geometry.Vector3) {
	m.Polygons = append(m.Polygons, corners)
}

// Quads converts every polygon to a quad
func (m *Model) Quads() ([]mesh.Quad, error) {
	if err := m.checkArity(4); err != nil {
		return nil, err
	}
	quads := make([]mesh.Quad, len(m.Polygons))
	for i, p := range m.Polygons {
		quads[i] = mesh.NewQuad(vertex(p[0]), vertex(p[1]), vertex(p[2]), vertex(p[3]))
	}
	return quads, nil
}

// Triangles converts every polygon to a triangle
func (m *Model) Triangles() ([]mesh.Triangle, error) {
	if err := m.checkArity(3); err != nil {
		return nil, err
	}
	tris := make([]mesh.Triangle, len(m.Polygons))
	for i, p := range m.Polygons {
		tris[i] = mesh.NewTriangle(vertex(p[0]), vertex(p[1]), vertex(p[2]))
	}
	return tris, nil
}

func (m *Model) checkArity(n int) error {
	if len(m.Polygons) == 0 {
		return ErrEmptyMesh
	}
	for i, p := range m.Polygons {
		if len(p) != n {
			return fmt.Errorf("%w: face %d has %d corners, expected %d", ErrMixedArity, i, len(p), n)
		}
	}
	return nil
}

func vertex(p geometry.Vector3) mesh.Vertex {
	return mesh.Vertex{Position: p}
}

// Load reads a model, picking the parser by file extension. OpenSCAD
// sources are rendered with the openscad binary first.
func Load(path string) (*Model, error) {
	return LoadContext(context.Background(), path)
}

// LoadContext is Load with a context bounding the OpenSCAD render.
func LoadContext(ctx context.Context, path string) (*Model, error) {
	var parse func(f *os.File) (*Model, error)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".scad":
		model, err := renderSCAD(ctx, path)
		if err != nil {
			return nil, err
		}
		if model.Name == "" {
			model.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		return model, nil
	case ".obj":
		parse = func(f *os.File) (*Model, error) { return ParseOBJ(f) }
	case ".stl":
		parse = func(f *os.File) (*Model, error) { return ParseSTL(f) }
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	model, err := parse(file)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	if model.Name == "" {
		model.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	}
	return model, nil
}
