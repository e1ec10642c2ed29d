// Package bridge reaches a native engine hosted by another process over a
// websocket. Control messages are JSON text frames, audio goes up and
// responses come back as binary frames.
package bridge

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/url"
	"sync"
	"time"

	"github.com/eleven-am/soda-stream/internal/engine"
	"github.com/gorilla/websocket"
)

const (
	defaultHandshakeTimeout = 10 * time.Second
	defaultCreateTimeout    = 30 * time.Second
	writeWait               = 10 * time.Second
	maxMessageSize          = 1024 * 1024
)

const (
	msgCreate  = "create"
	msgCreated = "created"
	msgStart   = "start"
	msgDestroy = "destroy"
	msgError   = "error"
)

type controlMessage struct {
	Type    string `json:"type"`
	Config  []byte `json:"config,omitempty"`
	Message string `json:"message,omitempty"`
}

type Config struct {
	URL              string
	HandshakeTimeout time.Duration
	CreateTimeout    time.Duration
}

type Engine struct {
	url    string
	dialer *websocket.Dialer
	create time.Duration
	logger *slog.Logger
}

func New(cfg Config, logger *slog.Logger) (*Engine, error) {
	if cfg.URL == "" {
		return nil, errors.New("bridge URL is empty")
	}
	if _, err := url.Parse(cfg.URL); err != nil {
		return nil, fmt.Errorf("invalid bridge URL: %w", err)
	}
	if logger == nil {
		logger = slog.Default()
	}

	handshake := cfg.HandshakeTimeout
	if handshake <= 0 {
		handshake = defaultHandshakeTimeout
	}
	create := cfg.CreateTimeout
	if create <= 0 {
		create = defaultCreateTimeout
	}

	return &Engine{
		url:    cfg.URL,
		dialer: &websocket.Dialer{HandshakeTimeout: handshake},
		create: create,
		logger: logger.With("engine", "bridge"),
	}, nil
}

func (e *Engine) Name() string {
	return "bridge"
}

func (e *Engine) Create(config []byte, cb engine.Callback) (engine.Instance, error) {
	conn, _, err := e.dialer.Dial(e.url, nil)
	if err != nil {
		return nil, fmt.Errorf("dial bridge: %w", err)
	}
	conn.SetReadLimit(maxMessageSize)

	inst := &instance{conn: conn, cb: cb, logger: e.logger, done: make(chan struct{})}
	if err := inst.writeControl(controlMessage{Type: msgCreate, Config: config}); err != nil {
		conn.Close()
		return nil, fmt.Errorf("send create: %w", err)
	}

	_ = conn.SetReadDeadline(time.Now().Add(e.create))
	var reply controlMessage
	if err := conn.ReadJSON(&reply); err != nil {
		conn.Close()
		return nil, fmt.Errorf("await create: %w", err)
	}
	_ = conn.SetReadDeadline(time.Time{})

	switch reply.Type {
	case msgCreated:
	case msgError:
		e.logger.Warn("bridge refused create", "message", reply.Message)
		conn.Close()
		return nil, nil
	default:
		conn.Close()
		return nil, fmt.Errorf("unexpected bridge reply %q", reply.Type)
	}

	go inst.readLoop()
	return inst, nil
}

type instance struct {
	conn   *websocket.Conn
	cb     engine.Callback
	logger *slog.Logger

	writeMu sync.Mutex
	once    sync.Once
	done    chan struct{}
}

func (i *instance) readLoop() {
	defer close(i.done)
	for {
		messageType, payload, err := i.conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure) {
				i.logger.Debug("bridge read loop ended", "error", err)
			}
			return
		}

		switch messageType {
		case websocket.BinaryMessage:
			if i.cb != nil {
				i.cb(payload, len(payload))
			}
		case websocket.TextMessage:
			var msg controlMessage
			if err := json.Unmarshal(payload, &msg); err != nil {
				continue
			}
			if msg.Type == msgError {
				i.logger.Warn("bridge reported error", "message", msg.Message)
			}
		}
	}
}

func (i *instance) Start() error {
	return i.writeControl(controlMessage{Type: msgStart})
}

func (i *instance) AddAudio(chunk []byte) error {
	i.writeMu.Lock()
	defer i.writeMu.Unlock()
	_ = i.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return i.conn.WriteMessage(websocket.BinaryMessage, chunk)
}

func (i *instance) Destroy() error {
	var err error
	i.once.Do(func() {
		if werr := i.writeControl(controlMessage{Type: msgDestroy}); werr != nil {
			i.logger.Debug("send destroy failed", "error", werr)
		}
		i.writeMu.Lock()
		_ = i.conn.WriteMessage(websocket.CloseMessage, websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		i.writeMu.Unlock()
		err = i.conn.Close()
		<-i.done
	})
	return err
}

func (i *instance) writeControl(msg controlMessage) error {
	i.writeMu.Lock()
	defer i.writeMu.Unlock()
	_ = i.conn.SetWriteDeadline(time.Now().Add(writeWait))
	return i.conn.WriteJSON(msg)
}
