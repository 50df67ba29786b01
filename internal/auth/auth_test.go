package auth

import (
	"encoding/hex"
	"testing"
)

func TestCredentials_LoginArgs(t *testing.T) {
	creds := &Credentials{Key: "k3y", Secret: "s3cr3t"}

	args := creds.LoginArgs(1700000000000)

	if args.Key != "k3y" {
		t.Errorf("Key = %q, want %q", args.Key, "k3y")
	}
	if args.Time != 1700000000000 {
		t.Errorf("Time = %d, want 1700000000000", args.Time)
	}

	// Precomputed HMAC-SHA256("s3cr3t", "1700000000000websocket_login").
	want := "28afbecdee670647f83cfb84862766f1917fbc5538b1a569d66dcb6aa50bc6ec"
	if args.Sign != want {
		t.Errorf("Sign = %q, want %q", args.Sign, want)
	}
}

func TestCredentials_SignRequest(t *testing.T) {
	creds := &Credentials{Key: "test-key", Secret: "test-secret"}

	headers := creds.SignRequest(1700000000000, "GET", "/api/markets", nil)

	if headers["FTX-KEY"] != "test-key" {
		t.Errorf("FTX-KEY = %q, want %q", headers["FTX-KEY"], "test-key")
	}
	if headers["FTX-TS"] != "1700000000000" {
		t.Errorf("FTX-TS = %q, want %q", headers["FTX-TS"], "1700000000000")
	}
	if !isValidHex(headers["FTX-SIGN"]) {
		t.Errorf("FTX-SIGN is not valid hex: %q", headers["FTX-SIGN"])
	}
	if _, ok := headers["FTX-SUBACCOUNT"]; ok {
		t.Error("FTX-SUBACCOUNT must be absent without a subaccount")
	}
}

func TestCredentials_SignRequest_BodychangesSignature(t *testing.T) {
	creds := &Credentials{Key: "k", Secret: "s"}

	without := creds.SignRequest(1, "POST", "/api/orders", nil)
	with := creds.SignRequest(1, "POST", "/api/orders", []byte(`{"size":1}`))

	if without["FTX-SIGN"] == with["FTX-SIGN"] {
		t.Error("request body must be part of the signed payload")
	}
}

func TestCredentials_SignRequest_Subaccount(t *testing.T) {
	creds := &Credentials{Key: "k", Secret: "s", Subaccount: "my subaccount"}

	headers := creds.SignRequest(1, "GET", "/api/account", nil)

	if headers["FTX-SUBACCOUNT"] != "my%20subaccount" {
		t.Errorf("FTX-SUBACCOUNT = %q, want URL-escaped name", headers["FTX-SUBACCOUNT"])
	}
}

func TestNewCredentials_Validation(t *testing.T) {
	if _, err := NewCredentials("", "secret", ""); err == nil {
		t.Error("expected error for missing key")
	}
	if _, err := NewCredentials("key", "", ""); err == nil {
		t.Error("expected error for missing secret")
	}
	if _, err := NewCredentials("key", "secret", "sub"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func isValidHex(s string) bool {
	_, err := hex.DecodeString(s)
	return err == nil && s != ""
}
