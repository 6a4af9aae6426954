package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosubdiv/pkg/subdivide"
	"github.com/philipparndt/gosubdiv/version"
)

var (
	verbose bool
	logger  = slog.New(slog.DiscardHandler)
)

var rootCmd = &cobra.Command{
	Use:   "gosubdiv",
	Short: "Refine quad and triangle meshes with subdivision surfaces",
	Long: `gosubdiv refines polygon meshes loaded from OBJ, STL or OpenSCAD files.
Quads are smoothed with Catmull-Clark, triangles with Loop, optionally
keeping sharp creases. The result can be written back as OBJ or streamed
to a renderer over websockets.`,
	Version:      version.GetFullVersion(),
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		configureLogging(cmd)
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Log every subdivision pass to stderr")
}

func configureLogging(cmd *cobra.Command) {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	logger = slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), &slog.HandlerOptions{Level: level}))
	subdivide.SetLogger(logger)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
