package config

import "time"

// Default values for optional configuration fields.
const (
	DefaultWSURL                = "wss://ftx.com/ws/"
	DefaultRestURL              = "https://ftx.com/api"
	DefaultHandshakeTimeout     = 10 * time.Second
	DefaultPingInterval         = 15 * time.Second
	DefaultWriteTimeout         = 5 * time.Second
	DefaultFrameBufferSize      = 1000
	DefaultReconnectBaseDelay   = time.Second
	DefaultReconnectMaxDelay    = 60 * time.Second
	DefaultRetentionLimit       = 10000
	DefaultFirstSnapshotTimeout = 5 * time.Second
	DefaultRESTTimeout          = 30 * time.Second
	DefaultMaxRetries           = 3
	DefaultRetryBackoff         = time.Second
	DefaultPrintInterval        = 5 * time.Second
)

func (c *Config) applyDefaults() {
	if c.Endpoints.WSURL == "" {
		c.Endpoints.WSURL = DefaultWSURL
	}
	if c.Endpoints.RestURL == "" {
		c.Endpoints.RestURL = DefaultRestURL
	}

	if c.Stream.HandshakeTimeout == 0 {
		c.Stream.HandshakeTimeout = DefaultHandshakeTimeout
	}
	if c.Stream.PingInterval == 0 {
		c.Stream.PingInterval = DefaultPingInterval
	}
	if c.Stream.WriteTimeout == 0 {
		c.Stream.WriteTimeout = DefaultWriteTimeout
	}
	if c.Stream.FrameBufferSize == 0 {
		c.Stream.FrameBufferSize = DefaultFrameBufferSize
	}
	if c.Stream.ReconnectBaseDelay == 0 {
		c.Stream.ReconnectBaseDelay = DefaultReconnectBaseDelay
	}
	if c.Stream.ReconnectMaxDelay == 0 {
		c.Stream.ReconnectMaxDelay = DefaultReconnectMaxDelay
	}
	if c.Stream.RetentionLimit == 0 {
		c.Stream.RetentionLimit = DefaultRetentionLimit
	}
	if c.Stream.FirstSnapshotTimeout == 0 {
		c.Stream.FirstSnapshotTimeout = DefaultFirstSnapshotTimeout
	}

	if c.REST.Timeout == 0 {
		c.REST.Timeout = DefaultRESTTimeout
	}
	if c.REST.MaxRetries == 0 {
		c.REST.MaxRetries = DefaultMaxRetries
	}
	if c.REST.RetryBackoff == 0 {
		c.REST.RetryBackoff = DefaultRetryBackoff
	}

	if c.Watch.PrintInterval == 0 {
		c.Watch.PrintInterval = DefaultPrintInterval
	}
}
