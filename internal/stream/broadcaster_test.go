package stream

import (
	"encoding/json"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	ws "github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dial(t *testing.T, srv *httptest.Server) *ws.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn
}

func waitForClients(t *testing.T, b *Broadcaster, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for b.ClientCount() != want {
		if time.Now().After(deadline) {
			t.Fatalf("client count never reached %d (have %d)", want, b.ClientCount())
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestBroadcasterDeliversFrames(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()
	srv := httptest.NewServer(b)
	defer srv.Close()

	conn := dial(t, srv)
	waitForClients(t, b, 1)

	frame := map[string]any{"clock": 16.6, "over": false}
	require.NoError(t, b.Publish(frame))

	conn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := conn.ReadMessage()
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, false, got["over"])
	assert.InDelta(t, 16.6, got["clock"].(float64), 1e-9)
}

func TestBroadcasterFansOut(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()
	srv := httptest.NewServer(b)
	defer srv.Close()

	c1 := dial(t, srv)
	c2 := dial(t, srv)
	waitForClients(t, b, 2)

	require.NoError(t, b.Publish(map[string]int{"n": 7}))
	for _, conn := range []*ws.Conn{c1, c2} {
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, data, err := conn.ReadMessage()
		require.NoError(t, err)
		assert.JSONEq(t, `{"n":7}`, string(data))
	}
}

func TestBroadcasterDropsSlowClient(t *testing.T) {
	b := NewBroadcaster()
	defer b.Close()
	srv := httptest.NewServer(b)
	defer srv.Close()

	conn := dial(t, srv)
	waitForClients(t, b, 1)
	// Never read on the client side and publish frames big enough to
	// fill the socket buffer, so the write loop stalls and the send
	// queue overflows.
	_ = conn
	payload := map[string]string{"blob": strings.Repeat("x", 1<<20)}
	deadline := time.Now().Add(5 * time.Second)
	for b.ClientCount() > 0 {
		if time.Now().After(deadline) {
			t.Fatal("slow client was never dropped")
		}
		require.NoError(t, b.Publish(payload))
	}
}

func TestBroadcasterCloseRejectsNewClients(t *testing.T) {
	b := NewBroadcaster()
	srv := httptest.NewServer(b)
	defer srv.Close()

	b.Close()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := ws.DefaultDialer.Dial(url, nil)
	if err == nil {
		// Upgrade may succeed before the server side closes; the
		// connection must then fail on first read.
		conn.SetReadDeadline(time.Now().Add(2 * time.Second))
		_, _, rerr := conn.ReadMessage()
		assert.Error(t, rerr)
		conn.Close()
	}
	assert.Equal(t, 0, b.ClientCount())
}
