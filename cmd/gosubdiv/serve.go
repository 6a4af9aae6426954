package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/philipparndt/gosubdiv/internal/stream"
	"github.com/philipparndt/gosubdiv/pkg/loader"
	"github.com/philipparndt/gosubdiv/pkg/watcher"
)

var (
	serveOpts  pipelineFlags
	serveAddr  string
	serveWatch bool
)

var serveCmd = &cobra.Command{
	Use:   "serve [file]",
	Short: "Stream the subdivided mesh to renderers over websockets",
	Long: `Subdivide a mesh and serve the colored triangle stream on /ws (websocket)
and /frame (latest frame as JSON). With --watch the mesh is subdivided again
and pushed to every client whenever the file, or for OpenSCAD sources any
file it uses or includes, is saved.`,
	Args: cobra.ExactArgs(1),
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveOpts.register(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "localhost:8080", "Listen address")
	serveCmd.Flags().BoolVar(&serveWatch, "watch", false, "Recompute when the file changes")
}

func publish(srv *stream.Server, path string) error {
	result, err := serveOpts.execute(path)
	if err != nil {
		return err
	}
	_, err = srv.Publish(stream.NewFrame(result.kind, result.facesOut, result.vertices))
	return err
}

func runServe(cmd *cobra.Command, args []string) error {
	path := args[0]

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	srv := stream.NewServer(logger)
	if err := publish(srv, path); err != nil {
		return err
	}

	if serveWatch {
		fw, err := watcher.NewFileWatcher(500*time.Millisecond, logger)
		if err != nil {
			return err
		}
		defer fw.Close()

		deps, err := loader.Dependencies(path)
		if err != nil {
			return err
		}
		for _, dep := range deps {
			err = fw.Watch(dep, func(changed string) {
				logger.Info("file changed, recomputing", "changed", changed)
				if err := publish(srv, path); err != nil {
					logger.Error("failed to refresh mesh", "path", path, "error", err)
				}
			})
			if err != nil {
				return err
			}
		}
		go func() { _ = fw.Run(ctx) }()
	}

	mux := http.NewServeMux()
	mux.Handle("/ws", srv)
	mux.Handle("/frame", srv.LatestHandler())

	httpServer := &http.Server{Addr: serveAddr, Handler: mux}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = httpServer.Shutdown(shutdownCtx)
	}()

	fmt.Fprintf(cmd.OutOrStdout(), "Serving %s on http://%s/ws\n", path, serveAddr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("server failed: %w", err)
	}
	return nil
}
