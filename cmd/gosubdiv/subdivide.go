package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosubdiv/pkg/transform"
)

var (
	subdivideOpts pipelineFlags
	subdivideOut  string
)

var subdivideCmd = &cobra.Command{
	Use:   "subdivide [file]",
	Short: "Subdivide a mesh and report the result",
	Long:  "Apply linear and smoothing subdivision levels to an OBJ, STL or OpenSCAD mesh, optionally writing the refined faces as OBJ.",
	Args:  cobra.ExactArgs(1),
	RunE:  runSubdivide,
}

func init() {
	rootCmd.AddCommand(subdivideCmd)

	subdivideOpts.register(subdivideCmd)
	subdivideCmd.Flags().StringVarP(&subdivideOut, "out", "o", "", "Write the refined faces to this OBJ file")
}

func runSubdivide(cmd *cobra.Command, args []string) error {
	result, err := subdivideOpts.execute(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Subdivision Result")
	fmt.Fprintln(out, "==================")
	fmt.Fprintf(out, "Mesh: %s (%ss)\n", result.name, result.kind)
	fmt.Fprintf(out, "Levels: %d linear, %d smooth, creases %t\n\n", subdivideOpts.linear, subdivideOpts.smooth, subdivideOpts.creases)
	fmt.Fprintf(out, "  Faces in:  %d\n", result.facesIn)
	fmt.Fprintf(out, "  Faces out: %d\n", result.facesOut)
	fmt.Fprintf(out, "  Vertices:  %d (%d triangles)\n", len(result.vertices), len(result.vertices)/3)
	fmt.Fprintf(out, "  Time:      %s\n\n", result.elapsed)

	fmt.Fprintln(out, "Face colors:")
	for i, n := range result.colors {
		c := transform.Colors[i]
		fmt.Fprintf(out, "  %d (%.0f, %.0f, %.0f): %d\n", i, c[0], c[1], c[2], n)
	}

	if subdivideOut == "" {
		return nil
	}

	file, err := os.Create(subdivideOut)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", subdivideOut, err)
	}
	if err := result.writeOBJ(file); err != nil {
		file.Close()
		return err
	}
	if err := file.Close(); err != nil {
		return fmt.Errorf("failed to close %s: %w", subdivideOut, err)
	}
	fmt.Fprintf(out, "\nWrote %s\n", subdivideOut)
	return nil
}
