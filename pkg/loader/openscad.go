package loader

import (
	"bufio"
	"bytes"
	"context"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"regexp"
	"strings"
)

// openscadBinary is the renderer invoked for .scad sources.
var openscadBinary = "openscad"

var dependencyPattern = regexp.MustCompile(`^\s*(?:use|include)\s*<([^>]+)>`)

// renderSCAD renders an OpenSCAD source to a temporary STL and parses it.
func renderSCAD(ctx context.Context, path string) (*Model, error) {
	if _, err := exec.LookPath(openscadBinary); err != nil {
		return nil, fmt.Errorf("%w: %s not found in PATH, install OpenSCAD from https://openscad.org/", ErrUnsupportedFormat, openscadBinary)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}

	tmp, err := os.CreateTemp("", "gosubdiv-*.stl")
	if err != nil {
		return nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmp.Close()
	defer os.Remove(tmp.Name())

	cmd := exec.CommandContext(ctx, openscadBinary, "-o", tmp.Name(), abs)
	cmd.Dir = filepath.Dir(abs)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("failed to render %s: %w: %s", path, err, strings.TrimSpace(stderr.String()))
	}

	file, err := os.Open(tmp.Name())
	if err != nil {
		return nil, fmt.Errorf("failed to open rendered STL: %w", err)
	}
	defer file.Close()

	return ParseSTL(file)
}

// Dependencies returns path followed by every file it pulls in, directly or
// transitively. Only OpenSCAD sources have dependencies (use <...> and
// include <...>); for other formats the result is just path.
func Dependencies(path string) ([]string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve path %s: %w", path, err)
	}
	if !strings.EqualFold(filepath.Ext(abs), ".scad") {
		return []string{abs}, nil
	}

	visited := make(map[string]bool)
	var deps []string
	if err := collectDependencies(abs, filepath.Dir(abs), visited, &deps); err != nil {
		return nil, err
	}
	return deps, nil
}

func collectDependencies(file, root string, visited map[string]bool, deps *[]string) error {
	if visited[file] {
		return nil
	}
	visited[file] = true
	*deps = append(*deps, file)

	f, err := os.Open(file)
	if err != nil {
		return fmt.Errorf("failed to open %s: %w", file, err)
	}
	defer f.Close()

	var children []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.HasPrefix(strings.TrimSpace(line), "//") {
			continue
		}
		if m := dependencyPattern.FindStringSubmatch(line); m != nil {
			children = append(children, resolveDependency(m[1], filepath.Dir(file), root))
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("error reading %s: %w", file, err)
	}

	for _, child := range children {
		if err := collectDependencies(child, root, visited, deps); err != nil {
			return err
		}
	}
	return nil
}

// resolveDependency looks next to the including file first, then in root.
func resolveDependency(dep, dir, root string) string {
	local := filepath.Join(dir, dep)
	if strings.HasPrefix(dep, "./") || strings.HasPrefix(dep, "../") {
		return filepath.Clean(local)
	}
	if _, err := os.Stat(local); err == nil {
		return filepath.Clean(local)
	}
	return filepath.Clean(filepath.Join(root, dep))
}
