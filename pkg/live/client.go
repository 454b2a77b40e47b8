package live

import (
	"encoding/json"
	"sync"
	"time"

	"github.com/gofrs/uuid"
	"github.com/gorilla/websocket"

	"github.com/vango-dev/toastkit/pkg/vdom"
)

type client struct {
	hub  *Hub
	id   uuid.UUID
	conn *websocket.Conn

	// seq is only touched from Patches, which the surface serializes.
	seq  uint64
	send chan []byte

	done      chan struct{}
	closeOnce sync.Once
	writeMu   sync.Mutex
}

func newClient(h *Hub, id uuid.UUID, conn *websocket.Conn) *client {
	return &client{
		hub:  h,
		id:   id,
		conn: conn,
		send: make(chan []byte, h.config.SendBuffer),
		done: make(chan struct{}),
	}
}

// Patches implements surface.Sink. It runs with the surface locked, so it
// only encodes and queues.
func (c *client) Patches(batch []vdom.Patch) {
	select {
	case <-c.done:
		return
	default:
	}

	frames, err := EncodeFrames(c.hub.renderer, batch)
	if err != nil {
		c.hub.logger.Error("patch encoding failed", "client", c.id, "error", err)
		return
	}
	c.seq++
	data, err := json.Marshal(ServerMessage{Type: MessagePatches, Seq: c.seq, Patches: frames})
	if err != nil {
		c.hub.logger.Error("patch encoding failed", "client", c.id, "error", err)
		return
	}

	select {
	case c.send <- data:
	default:
		c.hub.logger.Warn("client too slow, disconnecting", "client", c.id)
		c.close()
	}
}

func (c *client) write(messageType int, data []byte) error {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.conn.SetWriteDeadline(time.Now().Add(c.hub.config.WriteTimeout))
	return c.conn.WriteMessage(messageType, data)
}

// writeLoop drains the send queue and keeps the connection alive.
func (c *client) writeLoop() {
	ticker := time.NewTicker(c.hub.config.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case data := <-c.send:
			if err := c.write(websocket.TextMessage, data); err != nil {
				c.hub.logger.Warn("write failed", "client", c.id, "error", err)
				c.close()
				return
			}
		case <-ticker.C:
			if err := c.write(websocket.PingMessage, nil); err != nil {
				c.close()
				return
			}
		case <-c.done:
			return
		}
	}
}

// readLoop handles client events until the connection fails.
func (c *client) readLoop() {
	cfg := c.hub.config
	c.conn.SetReadLimit(cfg.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(2 * cfg.PingInterval))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(2 * cfg.PingInterval))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err,
				websocket.CloseGoingAway,
				websocket.CloseAbnormalClosure,
				websocket.CloseNormalClosure) {
				c.hub.logger.Warn("read error", "client", c.id, "error", err)
			}
			return
		}
		c.conn.SetReadDeadline(time.Now().Add(2 * cfg.PingInterval))

		msg, err := DecodeClientMessage(data)
		if err != nil {
			c.hub.logger.Warn("malformed client message", "client", c.id, "error", err)
			continue
		}
		if err := c.hub.surface.Trigger(msg.HID, msg.Event); err != nil {
			c.hub.logger.Warn("event dropped", "client", c.id, "error", err)
		}
	}
}

// close tears the connection down. Safe to call from any goroutine and
// more than once.
func (c *client) close() {
	c.closeOnce.Do(func() {
		close(c.done)
		c.conn.Close()
	})
}
