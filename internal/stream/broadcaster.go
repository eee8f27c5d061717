// Package stream pushes per-frame match snapshots to rendering
// collaborators over WebSocket. The simulation core stays draw-agnostic:
// it publishes JSON snapshots and this package fans them out.
package stream

import (
	"encoding/json"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	ws "github.com/gorilla/websocket"
)

const (
	clientSendBuffer = 16 // frames buffered per client before it is dropped
	writeWait        = 5 * time.Second
)

// Broadcaster is an http.Handler that upgrades connections and fans
// published frames out to every connected client. Slow clients are
// disconnected rather than allowed to stall the frame loop.
type Broadcaster struct {
	upgrader ws.Upgrader

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
}

type client struct {
	conn   *ws.Conn
	sendCh chan []byte
}

// NewBroadcaster creates an empty broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		upgrader: ws.Upgrader{
			// Local rendering collaborators only; no origin policy.
			CheckOrigin: func(*http.Request) bool { return true },
		},
		clients: make(map[*client]struct{}),
	}
}

// ServeHTTP upgrades the request and registers the client until its
// connection drops.
func (b *Broadcaster) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := b.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn("snapshot stream upgrade failed", "error", err)
		return
	}

	c := &client{conn: conn, sendCh: make(chan []byte, clientSendBuffer)}
	b.mu.Lock()
	if b.closed {
		b.mu.Unlock()
		conn.Close()
		return
	}
	b.clients[c] = struct{}{}
	n := len(b.clients)
	b.mu.Unlock()
	log.Info("renderer connected", "clients", n, "remote", conn.RemoteAddr())

	go b.writeLoop(c)
}

// Publish marshals a frame and queues it to every client. Clients whose
// buffer is full are dropped; the frame loop never blocks here.
func (b *Broadcaster) Publish(frame any) error {
	data, err := json.Marshal(frame)
	if err != nil {
		return err
	}

	b.mu.Lock()
	defer b.mu.Unlock()
	for c := range b.clients {
		select {
		case c.sendCh <- data:
		default:
			delete(b.clients, c)
			close(c.sendCh)
			log.Warn("dropping slow renderer", "remote", c.conn.RemoteAddr())
		}
	}
	return nil
}

// ClientCount returns the number of connected renderers.
func (b *Broadcaster) ClientCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.clients)
}

// Close disconnects every client and rejects future connections.
func (b *Broadcaster) Close() {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.closed {
		return
	}
	b.closed = true
	for c := range b.clients {
		delete(b.clients, c)
		close(c.sendCh)
	}
}

func (b *Broadcaster) writeLoop(c *client) {
	defer c.conn.Close()
	for data, ok := <-c.sendCh; ok; data, ok = <-c.sendCh {
		c.conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := c.conn.WriteMessage(ws.TextMessage, data); err != nil {
			b.remove(c)
			return
		}
	}
}

func (b *Broadcaster) remove(c *client) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, ok := b.clients[c]; ok {
		delete(b.clients, c)
		close(c.sendCh)
	}
}
