package ws

import (
	"errors"
	"time"
)

// Errors
var (
	ErrNotConnected  = errors.New("not connected")
	ErrAlreadyClosed = errors.New("already closed")
)

// RawMessage wraps raw frame bytes with the local receive timestamp.
type RawMessage struct {
	Data       []byte    // Raw message bytes from the websocket
	ReceivedAt time.Time // Local timestamp when ReadMessage() returned
}

// Config configures a websocket connection.
type Config struct {
	URL              string        // Websocket URL (e.g. wss://ftx.com/ws/)
	HandshakeTimeout time.Duration // Dial handshake deadline
	PingInterval     time.Duration // Interval between application-level ping frames
	WriteTimeout     time.Duration // Write deadline for sends
	BufferSize       int           // Message channel buffer size
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		HandshakeTimeout: 10 * time.Second,
		PingInterval:     15 * time.Second,
		WriteTimeout:     5 * time.Second,
		BufferSize:       1000,
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.HandshakeTimeout == 0 {
		c.HandshakeTimeout = def.HandshakeTimeout
	}
	if c.PingInterval == 0 {
		c.PingInterval = def.PingInterval
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.BufferSize == 0 {
		c.BufferSize = def.BufferSize
	}
}
