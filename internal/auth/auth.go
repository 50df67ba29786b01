// Package auth provides FTX API authentication using HMAC-SHA256
// signatures, for both the websocket login handshake and signed REST
// requests.
package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"net/url"
)

// Credentials holds the API key pair and optional subaccount.
type Credentials struct {
	Key        string // API key
	Secret     string // API secret used for signing
	Subaccount string // Optional subaccount name
}

// LoginArgs is the payload of the websocket login frame.
type LoginArgs struct {
	Key  string `json:"key"`
	Sign string `json:"sign"`
	Time int64  `json:"time"`
}

// NewCredentials validates and returns a credential set.
func NewCredentials(key, secret, subaccount string) (*Credentials, error) {
	if key == "" {
		return nil, fmt.Errorf("API key is required")
	}
	if secret == "" {
		return nil, fmt.Errorf("API secret is required")
	}
	return &Credentials{Key: key, Secret: secret, Subaccount: subaccount}, nil
}

// LoginArgs builds the login frame payload for the given timestamp in
// milliseconds. The signature is HMAC-SHA256 over
// "{timestamp_ms}websocket_login".
func (c *Credentials) LoginArgs(timestampMs int64) LoginArgs {
	return LoginArgs{
		Key:  c.Key,
		Sign: c.sign(fmt.Sprintf("%dwebsocket_login", timestampMs)),
		Time: timestampMs,
	}
}

// SignRequest generates authentication headers for a REST request.
// The signed message is timestamp_ms + method + path (+ body when present).
func (c *Credentials) SignRequest(timestampMs int64, method, path string, body []byte) map[string]string {
	payload := fmt.Sprintf("%d%s%s", timestampMs, method, path)
	if len(body) > 0 {
		payload += string(body)
	}

	headers := map[string]string{
		"FTX-KEY":  c.Key,
		"FTX-SIGN": c.sign(payload),
		"FTX-TS":   fmt.Sprintf("%d", timestampMs),
	}
	if c.Subaccount != "" {
		headers["FTX-SUBACCOUNT"] = url.PathEscape(c.Subaccount)
	}
	return headers
}

// sign computes the hex-encoded HMAC-SHA256 of message under the secret.
func (c *Credentials) sign(message string) string {
	mac := hmac.New(sha256.New, []byte(c.Secret))
	mac.Write([]byte(message))
	return hex.EncodeToString(mac.Sum(nil))
}
