package inspect

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	json "github.com/goccy/go-json"
	"github.com/gorilla/websocket"
)

// writeWait bounds a single frame write to a slow client.
const writeWait = 5 * time.Second

// Hub manages WebSocket connections that receive frame snapshots.
type Hub struct {
	clients  map[*websocket.Conn]*sync.Mutex
	mu       sync.RWMutex
	upgrader websocket.Upgrader
	logger   *slog.Logger

	lastMu sync.RWMutex
	last   []byte
}

// NewHub creates a hub with no clients.
func NewHub(logger *slog.Logger) *Hub {
	if logger == nil {
		logger = slog.Default()
	}
	return &Hub{
		clients: make(map[*websocket.Conn]*sync.Mutex),
		logger:  logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			CheckOrigin: func(r *http.Request) bool {
				return true // The inspector is a local debugging tool
			},
		},
	}
}

// HandleWebSocket upgrades the request and keeps the client registered
// until it disconnects. A new client receives the latest snapshot at once.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, req *http.Request) {
	conn, err := h.upgrader.Upgrade(w, req, nil)
	if err != nil {
		h.logger.Debug("websocket upgrade failed", "error", err)
		return
	}

	wmu := &sync.Mutex{}
	h.mu.Lock()
	h.clients[conn] = wmu
	h.mu.Unlock()

	h.lastMu.RLock()
	last := h.last
	h.lastMu.RUnlock()
	if last != nil {
		h.write(conn, wmu, last)
	}

	// Clients only listen; reading detects the close.
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}

	h.drop(conn)
}

// Broadcast sends s to all connected clients.
func (h *Hub) Broadcast(s *Snapshot) {
	data, err := json.Marshal(s)
	if err != nil {
		h.logger.Warn("snapshot encoding failed", "seq", s.Seq, "error", err)
		return
	}

	h.lastMu.Lock()
	h.last = data
	h.lastMu.Unlock()

	h.mu.RLock()
	clients := make(map[*websocket.Conn]*sync.Mutex, len(h.clients))
	for c, wmu := range h.clients {
		clients[c] = wmu
	}
	h.mu.RUnlock()

	for c, wmu := range clients {
		h.write(c, wmu, data)
	}
}

func (h *Hub) write(c *websocket.Conn, wmu *sync.Mutex, data []byte) {
	wmu.Lock()
	c.SetWriteDeadline(time.Now().Add(writeWait))
	err := c.WriteMessage(websocket.TextMessage, data)
	wmu.Unlock()
	if err != nil {
		h.drop(c)
	}
}

func (h *Hub) drop(c *websocket.Conn) {
	h.mu.Lock()
	_, ok := h.clients[c]
	delete(h.clients, c)
	h.mu.Unlock()
	if ok {
		c.Close()
	}
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close closes all client connections.
func (h *Hub) Close() {
	h.mu.Lock()
	defer h.mu.Unlock()

	for c := range h.clients {
		c.Close()
		delete(h.clients, c)
	}
}
