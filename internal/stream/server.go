// Package stream publishes subdivided vertex streams to external renderers
// over websockets.
package stream

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"sync"

	"github.com/coder/websocket"

	"github.com/philipparndt/gosubdiv/pkg/transform"
)

// Vertex is the wire form of transform.ColoredVertex.
type Vertex struct {
	Position   [3]float64 `json:"position"`
	Color      [3]float32 `json:"color"`
	ColorIndex int        `json:"colorIndex"`
}

// Frame is one complete triangle list. Vertices are consumed in groups of
// three; there is no index buffer.
type Frame struct {
	Sequence uint64   `json:"sequence"`
	Kind     string   `json:"kind"`
	Faces    int      `json:"faces"`
	Vertices []Vertex `json:"vertices"`
}

// NewFrame converts a pipeline result into a frame. Sequence is assigned on
// Publish.
func NewFrame(kind string, faces int, vertices []transform.ColoredVertex) Frame {
	out := make([]Vertex, len(vertices))
	for i, v := range vertices {
		out[i] = Vertex{
			Position:   [3]float64{v.Position.X, v.Position.Y, v.Position.Z},
			Color:      v.Color,
			ColorIndex: v.ColorIndex,
		}
	}
	return Frame{Kind: kind, Faces: faces, Vertices: out}
}

// Server keeps the latest frame and pushes every new one to all clients.
// A client receives the latest frame as soon as it connects.
type Server struct {
	hub    *Hub
	logger *slog.Logger

	mu       sync.Mutex
	sequence uint64
	latest   []byte
}

// NewServer creates a server. A nil logger discards output.
func NewServer(logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{hub: NewHub(), logger: logger}
}

// Publish stamps the next sequence number on f and broadcasts it.
func (s *Server) Publish(f Frame) (uint64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f.Sequence = s.sequence + 1
	data, err := json.Marshal(f)
	if err != nil {
		return 0, fmt.Errorf("failed to encode frame: %w", err)
	}

	s.sequence = f.Sequence
	s.latest = data
	s.hub.Broadcast(data)
	s.logger.Info("frame published", "sequence", f.Sequence, "vertices", len(f.Vertices), "clients", s.hub.Len())
	return f.Sequence, nil
}

// Clients returns the number of connected clients.
func (s *Server) Clients() int {
	return s.hub.Len()
}

// ServeHTTP upgrades the request to a websocket and keeps it registered
// until the client goes away.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := websocket.Accept(w, r, &websocket.AcceptOptions{InsecureSkipVerify: true})
	if err != nil {
		s.logger.Warn("websocket accept failed", "error", err)
		return
	}

	if err := s.register(r.Context(), conn); err != nil {
		_ = conn.Close(websocket.StatusInternalError, "")
		return
	}
	s.logger.Debug("client connected", "remote", r.RemoteAddr)

	defer s.hub.Remove(conn)
	defer conn.Close(websocket.StatusNormalClosure, "")
	for {
		if _, _, err := conn.Read(r.Context()); err != nil {
			s.logger.Debug("client disconnected", "remote", r.RemoteAddr)
			return
		}
	}
}

// register sends the latest frame and adds conn under the publish lock so
// the client never sees frames out of order.
func (s *Server) register(ctx context.Context, conn *websocket.Conn) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.latest != nil {
		wctx, cancel := context.WithTimeout(ctx, writeTimeout)
		err := conn.Write(wctx, websocket.MessageText, s.latest)
		cancel()
		if err != nil {
			return err
		}
	}
	s.hub.Add(conn)
	return nil
}

// LatestHandler serves the latest frame as plain JSON.
func (s *Server) LatestHandler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s.mu.Lock()
		data := s.latest
		s.mu.Unlock()

		if data == nil {
			http.Error(w, "no frame published yet", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(data)
	})
}
