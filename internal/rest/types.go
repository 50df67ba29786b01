package rest

import (
	"time"

	"github.com/ashah/ftx-mirror/internal/model"
)

// Market is one tradable market.
type Market struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"` // "spot" or "future"
	BaseCurrency   string  `json:"baseCurrency"`
	QuoteCurrency  string  `json:"quoteCurrency"`
	Underlying     string  `json:"underlying"`
	Enabled        bool    `json:"enabled"`
	Ask            float64 `json:"ask"`
	Bid            float64 `json:"bid"`
	Last           float64 `json:"last"`
	Price          float64 `json:"price"`
	PriceIncrement float64 `json:"priceIncrement"`
	SizeIncrement  float64 `json:"sizeIncrement"`
	Restricted     bool    `json:"restricted"`
}

// Future is one futures contract.
type Future struct {
	Name           string     `json:"name"`
	Underlying     string     `json:"underlying"`
	Type           string     `json:"type"` // "future", "perpetual", "move"
	Perpetual      bool       `json:"perpetual"`
	Expiry         *time.Time `json:"expiry"`
	Expired        bool       `json:"expired"`
	Enabled        bool       `json:"enabled"`
	Ask            float64    `json:"ask"`
	Bid            float64    `json:"bid"`
	Last           float64    `json:"last"`
	Index          float64    `json:"index"`
	Mark           float64    `json:"mark"`
	PriceIncrement float64    `json:"priceIncrement"`
	SizeIncrement  float64    `json:"sizeIncrement"`
}

// OrderbookSnapshot is a point-in-time book from the REST API. Unlike
// the streamed book it carries no checksum.
type OrderbookSnapshot struct {
	Bids []model.PriceLevel `json:"bids"`
	Asks []model.PriceLevel `json:"asks"`
}

// Account is the authenticated account's summary.
type Account struct {
	Username          string     `json:"username"`
	Collateral        float64    `json:"collateral"`
	FreeCollateral    float64    `json:"freeCollateral"`
	TotalAccountValue float64    `json:"totalAccountValue"`
	TotalPositionSize float64    `json:"totalPositionSize"`
	Leverage          float64    `json:"leverage"`
	MarginFraction    float64    `json:"marginFraction"`
	BackstopProvider  bool       `json:"backstopProvider"`
	Liquidating       bool       `json:"liquidating"`
	Positions         []Position `json:"positions"`
}

// Balance is one coin's wallet balance.
type Balance struct {
	Coin                   string  `json:"coin"`
	Free                   float64 `json:"free"`
	Total                  float64 `json:"total"`
	UsdValue               float64 `json:"usdValue"`
	SpotBorrow             float64 `json:"spotBorrow"`
	AvailableWithoutBorrow float64 `json:"availableWithoutBorrow"`
}

// Position is one open futures position.
type Position struct {
	Future                    string   `json:"future"`
	Side                      string   `json:"side"`
	Size                      float64  `json:"size"`
	NetSize                   float64  `json:"netSize"`
	OpenSize                  float64  `json:"openSize"`
	Cost                      float64  `json:"cost"`
	EntryPrice                float64  `json:"entryPrice"`
	RealizedPnl               float64  `json:"realizedPnl"`
	UnrealizedPnl             float64  `json:"unrealizedPnl"`
	EstimatedLiquidationPrice float64  `json:"estimatedLiquidationPrice"`
	InitialMarginRequirement  float64  `json:"initialMarginRequirement"`
	MaintMarginRequirement    float64  `json:"maintenanceMarginRequirement"`
	LongOrderSize             float64  `json:"longOrderSize"`
	ShortOrderSize            float64  `json:"shortOrderSize"`
	RecentAverageOpenPrice    *float64 `json:"recentAverageOpenPrice,omitempty"`
}

// PlaceOrderRequest describes a new order. Price is ignored for market
// orders. A blank ClientID gets a generated UUID so fills can always be
// correlated back to the request.
type PlaceOrderRequest struct {
	Market     string  `json:"market"`
	Side       string  `json:"side"` // "buy" or "sell"
	Price      float64 `json:"price"`
	Size       float64 `json:"size"`
	Type       string  `json:"type"` // "limit" or "market"
	ReduceOnly bool    `json:"reduceOnly"`
	IOC        bool    `json:"ioc"`
	PostOnly   bool    `json:"postOnly"`
	ClientID   string  `json:"clientId,omitempty"`
}

// ModifyOrderRequest targets an existing order by exactly one of
// OrderID or ClientOrderID and changes its price or its size.
type ModifyOrderRequest struct {
	OrderID       int64   // Exchange-assigned ID
	ClientOrderID string  // Caller-assigned ID
	Price         *float64
	Size          *float64
	NewClientID   string // Optional replacement client ID
}

// OrderHistoryFilter narrows GetOrderHistory results. Zero values are
// omitted from the query.
type OrderHistoryFilter struct {
	Market    string
	Side      string
	OrderType string
	StartTime float64
	EndTime   float64
}

// CancelAllFilter narrows CancelAllOrders. The zero value cancels
// everything.
type CancelAllFilter struct {
	Market           string `json:"market,omitempty"`
	ConditionalOnly  bool   `json:"conditionalOrdersOnly,omitempty"`
	LimitOrdersOnly  bool   `json:"limitOrdersOnly,omitempty"`
}
