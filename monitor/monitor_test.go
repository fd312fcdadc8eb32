package monitor

import (
	"context"
	"encoding/json"
	"io"
	"net"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lixenwraith/genpop/genetic"
)

func get(t *testing.T, url string) string {
	t.Helper()
	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return string(body)
}

func readMessage(t *testing.T, c *websocket.Conn) Message {
	t.Helper()
	require.NoError(t, c.SetReadDeadline(time.Now().Add(5*time.Second)))
	var msg Message
	require.NoError(t, c.ReadJSON(&msg))
	return msg
}

func TestServer_MetricsAndStatus(t *testing.T) {
	s := New("threshold")
	defer s.Close()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	s.Observe(genetic.Stats{Generation: 0, Best: 40, Average: 30, Worst: 20}, 100, "above=40/100", true)
	s.Observe(genetic.Stats{Generation: 1, Best: 45, Average: 33, Worst: 21, StdDev: 2}, 100, "above=45/100", true)

	metrics := get(t, ts.URL+"/metrics")
	assert.Contains(t, metrics, "genpop_generation 1")
	assert.Contains(t, metrics, `genpop_fitness{kind="best"} 45`)
	assert.Contains(t, metrics, `genpop_fitness{kind="worst"} 21`)
	assert.Contains(t, metrics, "genpop_generations_total 2")
	assert.Contains(t, metrics, "genpop_evaluations_total 200")

	var status Status
	require.NoError(t, json.Unmarshal([]byte(get(t, ts.URL+"/status")), &status))
	assert.Equal(t, "threshold", status.Problem)
	assert.Equal(t, "running", status.State)
	assert.Equal(t, 1, status.Generation)
	assert.Equal(t, 45.0, status.Best)
	assert.Equal(t, "above=45/100", status.Fittest)

	s.Finish("target")
	assert.Equal(t, "target", s.Status().State)
}

func TestServer_WebSocketStream(t *testing.T) {
	s := New("maze")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	// The greeting arrives once the client is registered
	hello := readMessage(t, conn)
	assert.Equal(t, MsgStatus, hello.Type)

	s.Observe(genetic.Stats{Generation: 3, Best: 0.5}, 10, "steps=4 dist=1", true)
	gen := readMessage(t, conn)
	assert.Equal(t, MsgGeneration, gen.Type)
	data, ok := gen.Data.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, 3.0, data["generation"])

	best := readMessage(t, conn)
	assert.Equal(t, MsgBest, best.Type)

	s.Finish("max_generations")
	done := readMessage(t, conn)
	assert.Equal(t, MsgStatus, done.Type)
	assert.Equal(t, "max_generations", done.Data.(map[string]any)["state"])

	s.Close()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "%v", err)
}

func TestServer_CloseDeliversQueuedStatus(t *testing.T) {
	s := New("threshold")
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()
	readMessage(t, conn)

	for gen := range 20 {
		s.Observe(genetic.Stats{Generation: gen, Best: float64(gen)}, 100, "", true)
	}
	s.Finish("max_generations")
	s.Close()

	var final *Message
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var msg Message
		if err := conn.ReadJSON(&msg); err != nil {
			assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "%v", err)
			break
		}
		if msg.Type == MsgStatus {
			final = &msg
		}
	}
	require.NotNil(t, final, "status message after Finish")
	assert.Equal(t, "max_generations", final.Data.(map[string]any)["state"])
}

func TestServer_CORS(t *testing.T) {
	s := New("x")
	defer s.Close()
	ts := httptest.NewServer(s.Handler())
	defer ts.Close()

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/status", nil)
	require.NoError(t, err)
	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))
}

func TestServer_ServeStopsOnCancel(t *testing.T) {
	s := New("x")
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	errc := make(chan error, 1)
	go func() { errc <- s.Serve(ctx, ln) }()

	get(t, "http://"+ln.Addr().String()+"/status")
	cancel()

	select {
	case err := <-errc:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("server did not stop")
	}
}
