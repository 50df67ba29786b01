package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks that all required fields are set and values are valid.
func (c *Config) Validate() error {
	if !strings.HasPrefix(c.Endpoints.WSURL, "ws://") && !strings.HasPrefix(c.Endpoints.WSURL, "wss://") {
		return fmt.Errorf("endpoints.ws_url must be a ws:// or wss:// URL, got %q", c.Endpoints.WSURL)
	}
	if !strings.HasPrefix(c.Endpoints.RestURL, "http://") && !strings.HasPrefix(c.Endpoints.RestURL, "https://") {
		return fmt.Errorf("endpoints.rest_url must be an http:// or https:// URL, got %q", c.Endpoints.RestURL)
	}

	if c.Credentials.APIKey != "" && c.Credentials.APISecret == "" {
		return errors.New("credentials.api_secret is required when api_key is set")
	}
	if c.Credentials.APIKey == "" && c.Credentials.APISecret != "" {
		return errors.New("credentials.api_key is required when api_secret is set")
	}

	if c.Stream.RetentionLimit < 1 {
		return errors.New("stream.retention_limit must be >= 1")
	}
	if c.Stream.FrameBufferSize < 1 {
		return errors.New("stream.frame_buffer_size must be >= 1")
	}
	if c.Stream.ReconnectBaseDelay > c.Stream.ReconnectMaxDelay {
		return fmt.Errorf("stream.reconnect_base_delay (%v) cannot exceed reconnect_max_delay (%v)",
			c.Stream.ReconnectBaseDelay, c.Stream.ReconnectMaxDelay)
	}

	if c.REST.MaxRetries < 0 {
		return errors.New("rest.max_retries cannot be negative")
	}

	return nil
}
