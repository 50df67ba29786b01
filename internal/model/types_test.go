package model

import (
	"encoding/json"
	"testing"
)

func TestPriceLevel_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    PriceLevel
		wantErr bool
	}{
		{name: "plain pair", input: `[4025.5, 10.25]`, want: PriceLevel{Price: 4025.5, Size: 10.25}},
		{name: "zero size removal", input: `[100, 0]`, want: PriceLevel{Price: 100, Size: 0}},
		{name: "not an array", input: `{"price": 1}`, wantErr: true},
		{name: "non-numeric", input: `["a", "b"]`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var l PriceLevel
			err := json.Unmarshal([]byte(tt.input), &l)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal error = %v, wantErr %v", err, tt.wantErr)
			}
			if !tt.wantErr && l != tt.want {
				t.Errorf("level = %+v, want %+v", l, tt.want)
			}
		})
	}
}

func TestPriceLevel_MarshalRoundTrip(t *testing.T) {
	in := PriceLevel{Price: 99.5, Size: 2}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatalf("Marshal failed: %v", err)
	}
	if string(data) != `[99.5,2]` {
		t.Errorf("Marshal = %s, want [99.5,2]", data)
	}
}

func TestTrade_UnmarshalJSON(t *testing.T) {
	raw := `{
		"id": 3084555328,
		"price": 9089.5,
		"size": 0.0043,
		"side": "buy",
		"liquidation": false,
		"time": "2020-02-22T17:52:56.123456+00:00"
	}`

	var tr Trade
	if err := json.Unmarshal([]byte(raw), &tr); err != nil {
		t.Fatalf("Unmarshal failed: %v", err)
	}

	if tr.ID != 3084555328 {
		t.Errorf("ID = %d, want 3084555328", tr.ID)
	}
	if tr.Price != 9089.5 {
		t.Errorf("Price = %v, want 9089.5", tr.Price)
	}
	if tr.Side != "buy" {
		t.Errorf("Side = %q, want buy", tr.Side)
	}
	if tr.Time.IsZero() {
		t.Error("Time was not parsed")
	}
}
