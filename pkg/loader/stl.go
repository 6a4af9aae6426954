package loader

import (
	"bufio"
	"bytes"
	"encoding/binary"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/philipparndt/gosubdiv/pkg/geometry"
)

// ParseSTL reads an ASCII or binary STL stream. Every facet becomes a
// triangle; stored normals are ignored.
func ParseSTL(reader io.Reader) (*Model, error) {
	br := bufio.NewReader(reader)

	// Binary files may also start with "solid", so check for a facet too.
	head, _ := br.Peek(512)
	if bytes.HasPrefix(head, []byte("solid")) && bytes.Contains(head, []byte("facet")) {
		return parseASCII(br)
	}
	return parseBinary(br)
}

func parseASCII(reader io.Reader) (*Model, error) {
	scanner := bufio.NewScanner(reader)
	model := &Model{}

	var vertices []geometry.Vector3
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}

		switch fields[0] {
		case "solid":
			if len(fields) > 1 {
				model.Name = strings.Join(fields[1:], " ")
			}

		case "vertex":
			if len(fields) < 4 {
				return nil, fmt.Errorf("vertex needs 3 coordinates: %q", scanner.Text())
			}
			var xyz [3]float64
			for i := range xyz {
				f, err := strconv.ParseFloat(fields[i+1], 64)
				if err != nil {
					return nil, fmt.Errorf("invalid coordinate %q: %w", fields[i+1], err)
				}
				xyz[i] = f
			}
			vertices = append(vertices, geometry.NewVector3(xyz[0], xyz[1], xyz[2]))

		case "endfacet":
			if len(vertices) != 3 {
				return nil, fmt.Errorf("facet has %d vertices, expected 3", len(vertices))
			}
			model.AddPolygon(vertices[0], vertices[1], vertices[2])
			vertices = vertices[:0]
		}
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading ASCII STL: %w", err)
	}

	return model, nil
}

// stlFacet is the 50-byte binary facet record.
type stlFacet struct {
	Normal    [3]float32
	Vertices  [3][3]float32
	Attribute uint16
}

func parseBinary(reader io.Reader) (*Model, error) {
	model := &Model{}

	header := make([]byte, 80)
	if _, err := io.ReadFull(reader, header); err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}
	model.Name = strings.TrimSpace(string(bytes.TrimRight(header, "\x00")))

	var count uint32
	if err := binary.Read(reader, binary.LittleEndian, &count); err != nil {
		return nil, fmt.Errorf("failed to read triangle count: %w", err)
	}

	for i := range count {
		var facet stlFacet
		if err := binary.Read(reader, binary.LittleEndian, &facet); err != nil {
			return nil, fmt.Errorf("failed to read triangle %d: %w", i, err)
		}
		var corners [3]geometry.Vector3
		for j, v := range facet.Vertices {
			corners[j] = geometry.NewVector3(float64(v[0]), float64(v[1]), float64(v[2]))
		}
		model.AddPolygon(corners[:]...)
	}

	return model, nil
}
