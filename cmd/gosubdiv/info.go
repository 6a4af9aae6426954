package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosubdiv/pkg/geometry"
	"github.com/philipparndt/gosubdiv/pkg/loader"
	"github.com/philipparndt/gosubdiv/pkg/mesh"
)

var infoQuads bool

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a mesh",
	Long:  "Show face and welded vertex counts, boundary edges, bounding box, edge length statistics, surface area and volume.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)

	infoCmd.Flags().BoolVarP(&infoQuads, "quads", "q", false, "Load faces as quads instead of triangles")
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	model, err := loader.Load(filename)
	if err != nil {
		return err
	}

	var stats mesh.Stats
	kind := "triangle"
	if infoQuads {
		kind = "quad"
		quads, err := model.Quads()
		if err != nil {
			return err
		}
		stats = mesh.Analyze(quads)
	} else {
		triangles, err := model.Triangles()
		if err != nil {
			return err
		}
		stats = mesh.Analyze(triangles)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Mesh Information")
	fmt.Fprintln(out, "================")
	if model.Name != "" {
		fmt.Fprintf(out, "Name: %s\n", model.Name)
	}
	fmt.Fprintf(out, "File: %s\n\n", filename)

	fmt.Fprintln(out, "Topology:")
	fmt.Fprintf(out, "  Faces: %d %ss (%d distinct)\n", stats.Faces, kind, stats.DistinctFaces)
	fmt.Fprintf(out, "  Vertices: %d (welded)\n", stats.Vertices)
	fmt.Fprintf(out, "  Edges: %d (%d on the boundary)\n\n", stats.Edges, stats.BoundaryEdges)

	fmt.Fprintln(out, "Bounding Box:")
	fmt.Fprintf(out, "  Min: %s\n", formatVector(stats.Bounds.Min))
	fmt.Fprintf(out, "  Max: %s\n", formatVector(stats.Bounds.Max))
	fmt.Fprintf(out, "  Center: %s\n", formatVector(stats.Bounds.Center()))
	fmt.Fprintf(out, "  Diagonal: %.6f units\n\n", stats.Bounds.Diagonal())

	fmt.Fprintln(out, "Edge Lengths:")
	fmt.Fprintf(out, "  Minimum: %.6f units\n", stats.MinEdgeLength)
	fmt.Fprintf(out, "  Maximum: %.6f units\n", stats.MaxEdgeLength)
	fmt.Fprintf(out, "  Average: %.6f units\n\n", stats.AvgEdgeLength)

	fmt.Fprintln(out, "Measurements:")
	fmt.Fprintf(out, "  Surface Area: %.6f square units\n", stats.SurfaceArea)
	if stats.BoundaryEdges == 0 {
		fmt.Fprintf(out, "  Volume: %.6f cubic units\n", stats.Volume)
	} else {
		fmt.Fprintln(out, "  Volume: n/a (open mesh)")
	}
	return nil
}

func formatVector(v geometry.Vector3) string {
	return fmt.Sprintf("(%.6f, %.6f, %.6f)", v.X, v.Y, v.Z)
}
