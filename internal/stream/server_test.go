package stream

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/coder/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/gosubdiv/pkg/geometry"
	"github.com/philipparndt/gosubdiv/pkg/transform"
)

func testFrame() Frame {
	return NewFrame("triangle", 1, []transform.ColoredVertex{
		{Position: geometry.NewVector3(-1, 0, 0), Color: transform.Colors[0]},
		{Position: geometry.NewVector3(1, 0, 0), Color: transform.Colors[0]},
		{Position: geometry.NewVector3(0, 1, 0), Color: transform.Colors[0]},
	})
}

func readFrame(t *testing.T, ctx context.Context, conn *websocket.Conn) Frame {
	t.Helper()
	_, data, err := conn.Read(ctx)
	require.NoError(t, err)
	var f Frame
	require.NoError(t, json.Unmarshal(data, &f))
	return f
}

func TestServerStreamsFrames(t *testing.T) {
	srv := NewServer(nil)
	ts := httptest.NewServer(srv)
	defer ts.Close()

	seq, err := srv.Publish(testFrame())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), seq)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	conn, _, err := websocket.Dial(ctx, "ws"+strings.TrimPrefix(ts.URL, "http"), nil)
	require.NoError(t, err)
	defer conn.Close(websocket.StatusNormalClosure, "")

	first := readFrame(t, ctx, conn)
	assert.Equal(t, uint64(1), first.Sequence)
	assert.Equal(t, "triangle", first.Kind)
	require.Len(t, first.Vertices, 3)
	assert.Equal(t, [3]float64{0, 1, 0}, first.Vertices[2].Position)
	assert.Equal(t, [3]float32{1, 0, 0}, first.Vertices[2].Color)

	_, err = srv.Publish(testFrame())
	require.NoError(t, err)
	second := readFrame(t, ctx, conn)
	assert.Equal(t, uint64(2), second.Sequence)
	assert.Equal(t, 1, srv.Clients())
}

func TestLatestHandler(t *testing.T) {
	srv := NewServer(nil)
	ts := httptest.NewServer(srv.LatestHandler())
	defer ts.Close()

	resp, err := http.Get(ts.URL)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)

	_, err = srv.Publish(testFrame())
	require.NoError(t, err)

	resp, err = http.Get(ts.URL)
	require.NoError(t, err)
	defer resp.Body.Close()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Contains(t, string(body), `"sequence":1`)
}
