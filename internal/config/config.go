package config

import "time"

// Config is the root configuration for the mirror.
type Config struct {
	Endpoints   EndpointsConfig   `yaml:"endpoints"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Stream      StreamConfig      `yaml:"stream"`
	REST        RESTConfig        `yaml:"rest"`
	Watch       WatchConfig       `yaml:"watch"`
}

// EndpointsConfig holds the exchange endpoints.
type EndpointsConfig struct {
	WSURL   string `yaml:"ws_url"`
	RestURL string `yaml:"rest_url"`
}

// CredentialsConfig holds API credentials. Values are usually injected
// via ${VAR} environment expansion rather than written into the file.
type CredentialsConfig struct {
	APIKey     string `yaml:"api_key"`
	APISecret  string `yaml:"api_secret"`
	Subaccount string `yaml:"subaccount"`
}

// StreamConfig holds websocket stream settings.
type StreamConfig struct {
	HandshakeTimeout     time.Duration `yaml:"handshake_timeout"`
	PingInterval         time.Duration `yaml:"ping_interval"`
	WriteTimeout         time.Duration `yaml:"write_timeout"`
	FrameBufferSize      int           `yaml:"frame_buffer_size"`
	ReconnectBaseDelay   time.Duration `yaml:"reconnect_base_delay"`
	ReconnectMaxDelay    time.Duration `yaml:"reconnect_max_delay"`
	RetentionLimit       int           `yaml:"retention_limit"`
	FirstSnapshotTimeout time.Duration `yaml:"first_snapshot_timeout"`
}

// RESTConfig holds REST client settings.
type RESTConfig struct {
	Timeout      time.Duration `yaml:"timeout"`
	MaxRetries   int           `yaml:"max_retries"`
	RetryBackoff time.Duration `yaml:"retry_backoff"`
}

// WatchConfig holds settings for the watch command.
type WatchConfig struct {
	Markets       []string      `yaml:"markets"`
	PrintInterval time.Duration `yaml:"print_interval"`
}

// HasCredentials reports whether API credentials are configured.
func (c *Config) HasCredentials() bool {
	return c.Credentials.APIKey != "" && c.Credentials.APISecret != ""
}
