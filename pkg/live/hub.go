package live

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/gorilla/websocket"
	"github.com/hashicorp/go-multierror"

	"github.com/vango-dev/toastkit/pkg/render"
	"github.com/vango-dev/toastkit/pkg/surface"
)

// Hub manages the WebSocket connections mirroring one surface.
type Hub struct {
	surface  *surface.Surface
	config   Config
	logger   *slog.Logger
	renderer *render.Renderer
	upgrader websocket.Upgrader

	mu      sync.RWMutex
	clients map[uuid.UUID]*client
}

// NewHub creates a hub for s.
func NewHub(s *surface.Surface, opts ...Option) *Hub {
	config := defaultConfig()
	for _, opt := range opts {
		opt(&config)
	}
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	return &Hub{
		surface:  s,
		config:   config,
		logger:   config.Logger.With("component", "live"),
		renderer: render.NewRenderer(render.RendererConfig{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     config.CheckOrigin,
		},
		clients: make(map[uuid.UUID]*client),
	}
}

// HandleWebSocket upgrades the request and serves the connection until the
// client goes away.
func (h *Hub) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// The upgrader has already replied.
		h.logger.Debug("upgrade failed", "error", err)
		return
	}

	id, err := uuid.NewV4()
	if err != nil {
		h.logger.Error("client id", "error", err)
		conn.Close()
		return
	}
	c := newClient(h, id, conn)

	snapshot, cancel, err := h.surface.Subscribe(c)
	if err != nil {
		h.logger.Error("snapshot failed", "client", id, "error", err)
		conn.Close()
		return
	}
	defer cancel()

	reset, err := json.Marshal(ServerMessage{Type: MessageReset, HTML: snapshot})
	if err != nil {
		conn.Close()
		return
	}
	if err := c.write(websocket.TextMessage, reset); err != nil {
		h.logger.Warn("reset write failed", "client", id, "error", err)
		c.close()
		return
	}

	h.mu.Lock()
	h.clients[id] = c
	h.mu.Unlock()
	h.logger.Debug("client connected", "client", id)

	go c.writeLoop()
	c.readLoop()

	h.mu.Lock()
	delete(h.clients, id)
	h.mu.Unlock()
	c.close()
	h.logger.Debug("client disconnected", "client", id)
}

// ClientCount returns the number of connected clients.
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients)
}

// Close sends a close frame to every client and drops the connections.
// Failures are collected, one per client.
func (h *Hub) Close() error {
	h.mu.Lock()
	clients := make([]*client, 0, len(h.clients))
	for id, c := range h.clients {
		clients = append(clients, c)
		delete(h.clients, id)
	}
	h.mu.Unlock()

	var result *multierror.Error
	deadline := time.Now().Add(h.config.WriteTimeout)
	msg := websocket.FormatCloseMessage(websocket.CloseGoingAway, "server shutting down")
	for _, c := range clients {
		if err := c.conn.WriteControl(websocket.CloseMessage, msg, deadline); err != nil && err != websocket.ErrCloseSent {
			result = multierror.Append(result, err)
		}
		c.close()
	}
	return result.ErrorOrNil()
}

// ServePage writes the surface as a complete document wired to the hub.
func (h *Hub) ServePage(title string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/html; charset=utf-8")
		w.Header().Set("Cache-Control", "no-store")
		if err := h.surface.WritePage(w, title, ClientScript); err != nil {
			h.logger.Error("page render failed", "error", err)
		}
	}
}
