package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeTempFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write temp config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	yaml := `
endpoints:
  ws_url: wss://ftx.us/ws/
  rest_url: https://ftx.us/api
stream:
  retention_limit: 500
  reconnect_base_delay: 250ms
watch:
  markets:
    - BTC-PERP
    - ETH-PERP
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Endpoints.WSURL != "wss://ftx.us/ws/" {
		t.Errorf("Endpoints.WSURL = %q, want %q", cfg.Endpoints.WSURL, "wss://ftx.us/ws/")
	}
	if cfg.Stream.RetentionLimit != 500 {
		t.Errorf("Stream.RetentionLimit = %d, want 500", cfg.Stream.RetentionLimit)
	}
	if cfg.Stream.ReconnectBaseDelay != 250*time.Millisecond {
		t.Errorf("Stream.ReconnectBaseDelay = %v, want 250ms", cfg.Stream.ReconnectBaseDelay)
	}
	if len(cfg.Watch.Markets) != 2 || cfg.Watch.Markets[0] != "BTC-PERP" {
		t.Errorf("Watch.Markets = %v", cfg.Watch.Markets)
	}
}

func TestLoadWithEnvSubstitution(t *testing.T) {
	t.Setenv("TEST_FTX_SECRET", "s3cr3t")

	yaml := `
credentials:
  api_key: my-key
  api_secret: ${TEST_FTX_SECRET}
`
	path := writeTempFile(t, yaml)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Credentials.APISecret != "s3cr3t" {
		t.Errorf("Credentials.APISecret = %q, want %q", cfg.Credentials.APISecret, "s3cr3t")
	}
	if !cfg.HasCredentials() {
		t.Error("HasCredentials() = false with key and secret set")
	}
}

func TestLoadWithDefaults(t *testing.T) {
	path := writeTempFile(t, "watch:\n  markets: [BTC-PERP]\n")

	cfg, err := LoadWithDefaults(path)
	if err != nil {
		t.Fatalf("LoadWithDefaults failed: %v", err)
	}

	if cfg.Endpoints.WSURL != DefaultWSURL {
		t.Errorf("Endpoints.WSURL = %q, want default %q", cfg.Endpoints.WSURL, DefaultWSURL)
	}
	if cfg.Endpoints.RestURL != DefaultRestURL {
		t.Errorf("Endpoints.RestURL = %q, want default %q", cfg.Endpoints.RestURL, DefaultRestURL)
	}
	if cfg.Stream.RetentionLimit != DefaultRetentionLimit {
		t.Errorf("Stream.RetentionLimit = %d, want default %d", cfg.Stream.RetentionLimit, DefaultRetentionLimit)
	}
	if cfg.Stream.ReconnectMaxDelay != DefaultReconnectMaxDelay {
		t.Errorf("Stream.ReconnectMaxDelay = %v, want default %v", cfg.Stream.ReconnectMaxDelay, DefaultReconnectMaxDelay)
	}
	if cfg.REST.Timeout != DefaultRESTTimeout {
		t.Errorf("REST.Timeout = %v, want default %v", cfg.REST.Timeout, DefaultRESTTimeout)
	}
}

func TestValidate(t *testing.T) {
	valid := func() Config {
		var cfg Config
		cfg.applyDefaults()
		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "valid defaults",
			mutate:  func(c *Config) {},
			wantErr: "",
		},
		{
			name:    "bad ws url",
			mutate:  func(c *Config) { c.Endpoints.WSURL = "ftp://example.com" },
			wantErr: `endpoints.ws_url must be a ws:// or wss:// URL, got "ftp://example.com"`,
		},
		{
			name:    "key without secret",
			mutate:  func(c *Config) { c.Credentials.APIKey = "k" },
			wantErr: "credentials.api_secret is required when api_key is set",
		},
		{
			name:    "zero retention",
			mutate:  func(c *Config) { c.Stream.RetentionLimit = -1 },
			wantErr: "stream.retention_limit must be >= 1",
		},
		{
			name: "base delay exceeds max",
			mutate: func(c *Config) {
				c.Stream.ReconnectBaseDelay = 2 * time.Minute
			},
			wantErr: "stream.reconnect_base_delay (2m0s) cannot exceed reconnect_max_delay (1m0s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
			} else {
				if err == nil {
					t.Errorf("Validate() expected error %q, got nil", tt.wantErr)
				} else if err.Error() != tt.wantErr {
					t.Errorf("Validate() error = %q, want %q", err.Error(), tt.wantErr)
				}
			}
		})
	}
}
