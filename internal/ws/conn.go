package ws

import (
	"context"
	"encoding/json"
	"log/slog"
	"sync"
	"time"

	"github.com/gorilla/websocket"
)

// Conn is a single persistent websocket connection to the exchange. It
// exposes inbound frames on Messages and transport failures on Errors;
// exactly one error is delivered per connection lifetime.
type Conn struct {
	cfg    Config
	logger *slog.Logger

	conn *websocket.Conn

	messages chan RawMessage
	errors   chan error
	done     chan struct{}

	// Write serialization: gorilla allows one concurrent writer only.
	writeMu sync.Mutex

	mu        sync.RWMutex
	connected bool
	closed    bool
}

// Dial establishes a connection and starts the read and keepalive loops.
func Dial(ctx context.Context, cfg Config, logger *slog.Logger) (*Conn, error) {
	if logger == nil {
		logger = slog.Default()
	}
	cfg.applyDefaults()

	dialer := websocket.Dialer{HandshakeTimeout: cfg.HandshakeTimeout}
	wsConn, _, err := dialer.DialContext(ctx, cfg.URL, nil)
	if err != nil {
		return nil, err
	}

	c := &Conn{
		cfg:      cfg,
		logger:   logger,
		conn:     wsConn,
		messages: make(chan RawMessage, cfg.BufferSize),
		errors:   make(chan error, 1),
		done:     make(chan struct{}),
	}
	c.connected = true

	go c.readLoop()
	go c.pingLoop()

	logger.Debug("websocket connected", "url", cfg.URL)
	return c, nil
}

// Close gracefully closes the connection. Safe to call more than once.
func (c *Conn) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	c.connected = false
	c.mu.Unlock()

	close(c.done)

	c.writeMu.Lock()
	c.conn.WriteControl(
		websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
		time.Now().Add(time.Second),
	)
	c.writeMu.Unlock()

	return c.conn.Close()
}

// SendJSON marshals v and writes it as a single text frame.
func (c *Conn) SendJSON(v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return c.Send(data)
}

// Send writes raw bytes as a single text frame.
func (c *Conn) Send(data []byte) error {
	c.mu.RLock()
	if !c.connected {
		c.mu.RUnlock()
		return ErrNotConnected
	}
	c.mu.RUnlock()

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	c.conn.SetWriteDeadline(time.Now().Add(c.cfg.WriteTimeout))
	return c.conn.WriteMessage(websocket.TextMessage, data)
}

// Messages returns the inbound frame channel.
func (c *Conn) Messages() <-chan RawMessage {
	return c.messages
}

// Errors returns the transport error channel.
func (c *Conn) Errors() <-chan error {
	return c.errors
}

// IsConnected reports whether the connection is usable.
func (c *Conn) IsConnected() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.connected
}

// readLoop reads frames until the connection fails or Close is called.
func (c *Conn) readLoop() {
	defer func() {
		c.mu.Lock()
		c.connected = false
		c.mu.Unlock()
	}()

	for {
		_, data, err := c.conn.ReadMessage()
		receivedAt := time.Now()

		if err != nil {
			// Errors after Close() are expected; do not report them.
			select {
			case <-c.done:
			default:
				select {
				case c.errors <- err:
				default:
				}
			}
			return
		}

		select {
		case c.messages <- RawMessage{Data: data, ReceivedAt: receivedAt}:
		case <-c.done:
			return
		default:
			c.logger.Warn("message buffer full, dropping frame")
		}
	}
}

// pingLoop sends the exchange's application-level ping op on an interval.
// The server answers with a pong frame and keeps the connection alive.
func (c *Conn) pingLoop() {
	ticker := time.NewTicker(c.cfg.PingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			if err := c.Send([]byte(`{"op":"ping"}`)); err != nil {
				c.logger.Debug("failed to send ping", "error", err)
			}
		}
	}
}
