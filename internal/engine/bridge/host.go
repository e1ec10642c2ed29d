package bridge

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/eleven-am/soda-stream/internal/engine"
	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  4096,
	WriteBufferSize: 4096,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Host is the far side of the bridge: it serves the protocol on a
// websocket and drives a local engine for each connection. One connection
// owns at most one engine instance.
//
// Connections are hijacked from the HTTP server, so shutting the server down
// does not reach them; Close does.
type Host struct {
	engine engine.Engine
	logger *slog.Logger

	mu     sync.Mutex
	conns  map[*hostConn]struct{}
	closed bool
	wg     sync.WaitGroup
}

func NewHost(eng engine.Engine, logger *slog.Logger) *Host {
	if logger == nil {
		logger = slog.Default()
	}
	return &Host{
		engine: eng,
		logger: logger.With("component", "bridge_host"),
		conns:  make(map[*hostConn]struct{}),
	}
}

func (h *Host) HandleConnection(c echo.Context) error {
	ws, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.logger.Error("websocket upgrade failed", "error", err)
		return err
	}

	conn := &hostConn{ws: ws, engine: h.engine, logger: h.logger.With("remote", c.RealIP())}
	if !h.track(conn) {
		ws.Close()
		return nil
	}
	defer h.untrack(conn)

	conn.serve()
	return nil
}

func (h *Host) track(c *hostConn) bool {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.closed {
		return false
	}
	h.conns[c] = struct{}{}
	h.wg.Add(1)
	return true
}

func (h *Host) untrack(c *hostConn) {
	h.mu.Lock()
	delete(h.conns, c)
	h.mu.Unlock()
	h.wg.Done()
}

// Close disconnects every client and returns once each connection has
// destroyed its engine instance. Later connections are refused.
func (h *Host) Close() {
	h.mu.Lock()
	h.closed = true
	for c := range h.conns {
		c.shutdown()
	}
	h.mu.Unlock()

	h.wg.Wait()
}

type hostConn struct {
	ws     *websocket.Conn
	engine engine.Engine
	logger *slog.Logger

	writeMu sync.Mutex
	inst    engine.Instance
}

func (c *hostConn) serve() {
	defer c.ws.Close()
	defer c.release()

	c.ws.SetReadLimit(maxMessageSize)
	c.logger.Info("bridge client connected")

	for {
		mt, payload, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				c.logger.Warn("bridge client read failed", "error", err)
			}
			c.logger.Info("bridge client disconnected")
			return
		}

		if mt == websocket.BinaryMessage {
			c.addAudio(payload)
			continue
		}

		var msg controlMessage
		if err := json.Unmarshal(payload, &msg); err != nil {
			c.logger.Warn("invalid control message", "error", err)
			continue
		}
		c.handleControl(msg)
	}
}

func (c *hostConn) handleControl(msg controlMessage) {
	switch msg.Type {
	case msgCreate:
		if c.inst != nil {
			c.writeControl(controlMessage{Type: msgError, Message: "instance already created"})
			return
		}
		inst, err := c.engine.Create(msg.Config, c.forward)
		if err != nil {
			c.writeControl(controlMessage{Type: msgError, Message: err.Error()})
			return
		}
		if inst == nil {
			c.writeControl(controlMessage{Type: msgError, Message: "engine returned no handle"})
			return
		}
		c.inst = inst
		c.writeControl(controlMessage{Type: msgCreated})
	case msgStart:
		if c.inst == nil {
			c.writeControl(controlMessage{Type: msgError, Message: "start before create"})
			return
		}
		if err := c.inst.Start(); err != nil {
			c.writeControl(controlMessage{Type: msgError, Message: err.Error()})
		}
	case msgDestroy:
		c.release()
	default:
		c.logger.Warn("unknown control message", "type", msg.Type)
	}
}

func (c *hostConn) addAudio(chunk []byte) {
	if c.inst == nil {
		c.logger.Warn("audio before create, dropping", "bytes", len(chunk))
		return
	}
	if err := c.inst.AddAudio(chunk); err != nil {
		c.logger.Warn("add audio failed", "error", err)
	}
}

// forward runs on engine threads and relays one response to the client.
func (c *hostConn) forward(buf []byte, n int) {
	if n < 0 || n > len(buf) {
		n = len(buf)
	}
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteMessage(websocket.BinaryMessage, buf[:n]); err != nil {
		c.logger.Debug("dropping response, client gone", "error", err)
	}
}

func (c *hostConn) writeControl(msg controlMessage) {
	c.writeMu.Lock()
	defer c.writeMu.Unlock()
	c.ws.SetWriteDeadline(time.Now().Add(writeWait))
	if err := c.ws.WriteJSON(msg); err != nil {
		c.logger.Warn("control write failed", "type", msg.Type, "error", err)
	}
}

// shutdown sends a close frame and closes the socket, which ends the read
// loop in serve.
func (c *hostConn) shutdown() {
	c.writeMu.Lock()
	_ = c.ws.WriteControl(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseGoingAway, "host shutting down"),
		time.Now().Add(writeWait))
	c.writeMu.Unlock()
	c.ws.Close()
}

func (c *hostConn) release() {
	if c.inst == nil {
		return
	}
	if err := c.inst.Destroy(); err != nil {
		c.logger.Warn("destroy failed", "error", err)
	}
	c.inst = nil
}
