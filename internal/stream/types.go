package stream

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/ashah/ftx-mirror/internal/auth"
	"github.com/ashah/ftx-mirror/internal/model"
)

// Errors
var (
	ErrNotConnected        = errors.New("not connected")
	ErrClosed              = errors.New("client closed")
	ErrCredentialsRequired = errors.New("credentials required for private channels")
)

// errReconnect signals the dispatch loop to tear the connection down and
// re-establish it. Never returned to callers.
var errReconnect = errors.New("reconnect requested")

// ServerError is a fatal error frame from the exchange. It stops the
// current connection and is surfaced to the caller via Err().
type ServerError struct {
	Code    int
	Message string
}

func (e *ServerError) Error() string {
	return fmt.Sprintf("server error %d: %s", e.Code, e.Message)
}

// reconnectRequestCode is the info code the server sends when it is about
// to restart and wants clients to reconnect proactively.
const reconnectRequestCode = 20001

// State is the connection lifecycle state.
type State string

const (
	StateDisconnected State = "disconnected"
	StateConnecting   State = "connecting"
	StateOpen         State = "open" // Connected, state freshly reset, dispatch not yet running
	StateStreaming    State = "streaming"
	StateReconnecting State = "reconnecting"
)

// Channel names multiplexed over the single connection.
const (
	ChannelOrderbook = "orderbook"
	ChannelTrades    = "trades"
	ChannelTicker    = "ticker"
	ChannelFills     = "fills"
	ChannelOrders    = "orders"
)

// Subscription identifies one (channel, market) stream. Market is empty
// for the account-wide private channels (fills, orders). Equality is
// structural, which gives the registry its set semantics.
type Subscription struct {
	Channel string
	Market  string
}

// Config configures the stream client.
type Config struct {
	URL string // Websocket endpoint (e.g. wss://ftx.com/ws/)

	HandshakeTimeout time.Duration // Dial handshake deadline
	PingInterval     time.Duration // Keepalive ping interval
	WriteTimeout     time.Duration // Outbound frame write deadline
	FrameBufferSize  int           // Inbound frame channel capacity

	ReconnectBaseDelay time.Duration // First reconnect backoff step
	ReconnectMaxDelay  time.Duration // Backoff ceiling

	RetentionLimit       int           // Max buffered trades per market / fills overall
	FirstSnapshotTimeout time.Duration // How long a first Orderbook read waits for a snapshot
}

// DefaultConfig returns sensible defaults.
func DefaultConfig() Config {
	return Config{
		URL:                  "wss://ftx.com/ws/",
		HandshakeTimeout:     10 * time.Second,
		PingInterval:         15 * time.Second,
		WriteTimeout:         5 * time.Second,
		FrameBufferSize:      1000,
		ReconnectBaseDelay:   time.Second,
		ReconnectMaxDelay:    60 * time.Second,
		RetentionLimit:       10000,
		FirstSnapshotTimeout: 5 * time.Second,
	}
}

func (c *Config) applyDefaults() {
	def := DefaultConfig()
	if c.URL == "" {
		c.URL = def.URL
	}
	if c.HandshakeTimeout == 0 {
		c.HandshakeTimeout = def.HandshakeTimeout
	}
	if c.PingInterval == 0 {
		c.PingInterval = def.PingInterval
	}
	if c.WriteTimeout == 0 {
		c.WriteTimeout = def.WriteTimeout
	}
	if c.FrameBufferSize == 0 {
		c.FrameBufferSize = def.FrameBufferSize
	}
	if c.ReconnectBaseDelay == 0 {
		c.ReconnectBaseDelay = def.ReconnectBaseDelay
	}
	if c.ReconnectMaxDelay == 0 {
		c.ReconnectMaxDelay = def.ReconnectMaxDelay
	}
	if c.RetentionLimit == 0 {
		c.RetentionLimit = def.RetentionLimit
	}
	if c.FirstSnapshotTimeout == 0 {
		c.FirstSnapshotTimeout = def.FirstSnapshotTimeout
	}
}

// -----------------------------------------------------------------------------
// Wire types
// -----------------------------------------------------------------------------

// subscribeFrame is the outbound subscribe/unsubscribe op.
type subscribeFrame struct {
	Op      string `json:"op"`
	Channel string `json:"channel"`
	Market  string `json:"market,omitempty"`
}

// loginFrame is the outbound login op for private channels.
type loginFrame struct {
	Op   string         `json:"op"`
	Args auth.LoginArgs `json:"args"`
}

// inboundFrame is the envelope of every message from the server. Payload
// shape depends on channel and is decoded lazily from Data.
type inboundFrame struct {
	Type    string          `json:"type"`
	Channel string          `json:"channel"`
	Market  string          `json:"market"`
	Code    int             `json:"code"`
	Msg     string          `json:"msg"`
	Data    json.RawMessage `json:"data"`
}

// orderbookData is the payload of an orderbook channel message.
type orderbookData struct {
	Action   string             `json:"action"` // "partial" (snapshot) or "update" (diff)
	Bids     []model.PriceLevel `json:"bids"`
	Asks     []model.PriceLevel `json:"asks"`
	Time     float64            `json:"time"`
	Checksum uint32             `json:"checksum"`
}
