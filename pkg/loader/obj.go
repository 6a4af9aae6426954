package loader

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/g3n/engine/loader/obj"

	"github.com/philipparndt/gosubdiv/pkg/geometry"
	"github.com/philipparndt/gosubdiv/pkg/mesh"
)

// defaultObject collects faces that appear before the first o record.
const defaultObject = "default"

// ParseOBJ decodes a Wavefront OBJ stream and keeps the polygon of every
// face of every object, in file order. Materials, normals and texture
// coordinates are ignored.
func ParseOBJ(reader io.Reader) (*Model, error) {
	src := io.MultiReader(strings.NewReader("o "+defaultObject+"\n"), reader)
	dec, err := obj.DecodeReader(src, strings.NewReader(""))
	if err != nil {
		return nil, fmt.Errorf("failed to decode OBJ: %w", err)
	}

	model := &Model{}
	count := len(dec.Vertices) / 3
	for i, object := range dec.Objects {
		if i > 0 && model.Name == "" {
			model.Name = object.Name
		}
		for j, face := range object.Faces {
			if len(face.Vertices) < 3 {
				return nil, fmt.Errorf("object %q face %d: needs at least 3 corners, got %d", object.Name, j, len(face.Vertices))
			}
			corners := make([]geometry.Vector3, len(face.Vertices))
			for k, idx := range face.Vertices {
				if idx < 0 || idx >= count {
					return nil, fmt.Errorf("object %q face %d: vertex index %d out of range (%d vertices)", object.Name, j, idx+1, count)
				}
				corners[k] = geometry.NewVector3(
					float64(dec.Vertices[3*idx]),
					float64(dec.Vertices[3*idx+1]),
					float64(dec.Vertices[3*idx+2]),
				)
			}
			model.AddPolygon(corners...)
		}
	}

	return model, nil
}

// WriteOBJ writes faces as an indexed OBJ with welded vertices.
func WriteOBJ[F mesh.Face](w io.Writer, name string, faces []F) error {
	inc := mesh.BuildIncidence(faces)
	bw := bufio.NewWriter(w)

	if name != "" {
		fmt.Fprintf(bw, "o %s\n", name)
	}
	for id := range inc.VertexCount() {
		p := inc.Vertex(mesh.VertexID(id)).Position
		fmt.Fprintf(bw, "v %g %g %g\n", p.X, p.Y, p.Z)
	}
	for _, f := range faces {
		bw.WriteString("f")
		for _, id := range inc.Corners(inc.MustFaceOf(f)) {
			fmt.Fprintf(bw, " %d", id+1)
		}
		bw.WriteString("\n")
	}

	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to write OBJ: %w", err)
	}
	return nil
}
