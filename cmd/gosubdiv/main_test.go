package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const unitQuadOBJ = "v 0 0 0\nv 1 0 0\nv 1 1 0\nv 0 1 0\nf 1 2 3 4\n"

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	return out.String(), err
}

func TestSubdivideCommandWritesOBJ(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "quad.obj")
	outPath := filepath.Join(dir, "refined.obj")
	require.NoError(t, os.WriteFile(in, []byte(unitQuadOBJ), 0o644))

	out, err := execute(t, "subdivide", in, "--quads", "--linear", "1", "--out", outPath)
	require.NoError(t, err)
	assert.Contains(t, out, "Faces out: 4")
	assert.Contains(t, out, "Vertices:  24 (8 triangles)")

	written, err := os.ReadFile(outPath)
	require.NoError(t, err)
	assert.Equal(t, 9, strings.Count(string(written), "\nv "))
	assert.Equal(t, 4, strings.Count(string(written), "\nf "))
}

func TestInfoCommand(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(in, []byte(unitQuadOBJ), 0o644))

	out, err := execute(t, "info", in, "--quads")
	require.NoError(t, err)
	assert.Contains(t, out, "Faces: 1 quads (1 distinct)")
	assert.Contains(t, out, "Edges: 4 (4 on the boundary)")
	assert.Contains(t, out, "Surface Area: 1.000000 square units")
	assert.Contains(t, out, "Volume: n/a (open mesh)")
}

func TestInfoRejectsMixedArity(t *testing.T) {
	dir := t.TempDir()
	in := filepath.Join(dir, "quad.obj")
	require.NoError(t, os.WriteFile(in, []byte(unitQuadOBJ), 0o644))

	_, err := execute(t, "info", in, "--quads=false")
	assert.Error(t, err)
}
