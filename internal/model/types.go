package model

import (
	"encoding/json"
	"fmt"
	"time"
)

// -----------------------------------------------------------------------------
// Order Book Types
// -----------------------------------------------------------------------------

// PriceLevel is a single (price, size) pair on one side of an order book.
// On the wire FTX encodes a level as a two-element array [price, size];
// a size of zero marks the removal of that price.
type PriceLevel struct {
	Price float64
	Size  float64
}

// UnmarshalJSON decodes the [price, size] wire encoding.
func (l *PriceLevel) UnmarshalJSON(data []byte) error {
	var pair [2]float64
	if err := json.Unmarshal(data, &pair); err != nil {
		return fmt.Errorf("decode price level: %w", err)
	}
	l.Price = pair[0]
	l.Size = pair[1]
	return nil
}

// MarshalJSON encodes back to the [price, size] wire form.
func (l PriceLevel) MarshalJSON() ([]byte, error) {
	return json.Marshal([2]float64{l.Price, l.Size})
}

// Orderbook is a point-in-time view of one market's book. Bids are sorted
// by price descending, asks ascending; levels with zero size are excluded.
type Orderbook struct {
	Market string       // Market identifier (e.g. "BTC-PERP")
	Bids   []PriceLevel // Sorted best-first (highest price first)
	Asks   []PriceLevel // Sorted best-first (lowest price first)
	Time   float64      // Exchange timestamp of the last applied message (seconds)
}

// -----------------------------------------------------------------------------
// Stream Record Types
// -----------------------------------------------------------------------------

// Trade is one public trade from the trades channel.
type Trade struct {
	ID          int64     `json:"id"`
	Price       float64   `json:"price"`
	Size        float64   `json:"size"`
	Side        string    `json:"side"` // "buy" or "sell" (taker side)
	Liquidation bool      `json:"liquidation"`
	Time        time.Time `json:"time"`
}

// Fill is one execution against the authenticated account (fills channel).
type Fill struct {
	ID        int64     `json:"id"`
	Market    string    `json:"market"`
	OrderID   int64     `json:"orderId"`
	TradeID   int64     `json:"tradeId"`
	Price     float64   `json:"price"`
	Size      float64   `json:"size"`
	Side      string    `json:"side"`
	Liquidity string    `json:"liquidity"` // "maker" or "taker"
	Type      string    `json:"type"`
	Fee       float64   `json:"fee"`
	FeeRate   float64   `json:"feeRate"`
	Time      time.Time `json:"time"`
}

// Ticker is the latest best bid/offer snapshot for a market.
type Ticker struct {
	Bid     float64 `json:"bid"`
	Ask     float64 `json:"ask"`
	BidSize float64 `json:"bidSize"`
	AskSize float64 `json:"askSize"`
	Last    float64 `json:"last"`
	Time    float64 `json:"time"` // Seconds since epoch
}

// Order is the most recent state of one of the account's orders
// (orders channel). Updates for the same ID overwrite older state.
type Order struct {
	ID            int64     `json:"id"`
	ClientID      string    `json:"clientId"`
	Market        string    `json:"market"`
	Type          string    `json:"type"` // "limit" or "market"
	Side          string    `json:"side"`
	Price         float64   `json:"price"`
	Size          float64   `json:"size"`
	FilledSize    float64   `json:"filledSize"`
	RemainingSize float64   `json:"remainingSize"`
	AvgFillPrice  float64   `json:"avgFillPrice"`
	Status        string    `json:"status"` // "new", "open", "closed"
	ReduceOnly    bool      `json:"reduceOnly"`
	IOC           bool      `json:"ioc"`
	PostOnly      bool      `json:"postOnly"`
	CreatedAt     time.Time `json:"createdAt"`
}
