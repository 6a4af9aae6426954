package main

import (
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosubdiv/pkg/loader"
	"github.com/philipparndt/gosubdiv/pkg/mesh"
	"github.com/philipparndt/gosubdiv/pkg/pipeline"
	"github.com/philipparndt/gosubdiv/pkg/transform"
)

// pipelineFlags are shared by every command that runs the pipeline
type pipelineFlags struct {
	linear  int
	smooth  int
	creases bool
	quads   bool
	workers int
}

func (o *pipelineFlags) register(cmd *cobra.Command) {
	cmd.Flags().IntVarP(&o.linear, "linear", "l", 0, "Number of linear subdivision levels")
	cmd.Flags().IntVarP(&o.smooth, "smooth", "s", 0, "Number of Catmull-Clark (quads) or Loop (triangles) levels")
	cmd.Flags().BoolVarP(&o.creases, "creases", "c", false, "Keep sharp creases")
	cmd.Flags().BoolVarP(&o.quads, "quads", "q", false, "Load faces as quads instead of triangles")
	cmd.Flags().IntVarP(&o.workers, "workers", "w", 1, "Worker goroutines per pass")
}

func (o *pipelineFlags) config() pipeline.Config {
	return pipeline.Config{
		LinearLevels: o.linear,
		SmoothLevels: o.smooth,
		Creases:      o.creases,
		Workers:      o.workers,
	}
}

func (o *pipelineFlags) kind() string {
	if o.quads {
		return "quad"
	}
	return "triangle"
}

// outcome is a pipeline result with the face kind erased
type outcome struct {
	name     string
	kind     string
	facesIn  int
	facesOut int
	vertices []transform.ColoredVertex
	elapsed  time.Duration
	colors   []int
	writeOBJ func(w io.Writer) error
}

func process[F mesh.Face](name, kind string, faces []F, cfg pipeline.Config) (*outcome, error) {
	result, err := pipeline.Run(faces, cfg)
	if err != nil {
		return nil, err
	}

	colors := make([]int, len(transform.Palette[F]()))
	stride := 3 * (mesh.Arity[F]() - 2)
	for i := 0; i < len(result.Vertices); i += stride {
		colors[result.Vertices[i].ColorIndex]++
	}

	return &outcome{
		name:     name,
		kind:     kind,
		facesIn:  len(faces),
		facesOut: len(result.Faces),
		vertices: result.Vertices,
		elapsed:  result.Elapsed,
		colors:   colors,
		writeOBJ: func(w io.Writer) error {
			return loader.WriteOBJ(w, name, result.Faces)
		},
	}, nil
}

// execute loads path and runs the pipeline on it
func (o *pipelineFlags) execute(path string) (*outcome, error) {
	model, err := loader.Load(path)
	if err != nil {
		return nil, err
	}

	if o.quads {
		quads, err := model.Quads()
		if err != nil {
			return nil, err
		}
		return process(model.Name, o.kind(), quads, o.config())
	}

	triangles, err := model.Triangles()
	if err != nil {
		return nil, err
	}
	return process(model.Name, o.kind(), triangles, o.config())
}
