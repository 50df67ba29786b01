package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ashah/ftx-mirror/internal/model"
)

// ListMarkets fetches all markets.
func (c *Client) ListMarkets(ctx context.Context) ([]Market, error) {
	var markets []Market
	if err := c.get(ctx, "/markets", nil, &markets); err != nil {
		return nil, fmt.Errorf("list markets: %w", err)
	}
	return markets, nil
}

// ListFutures fetches all futures contracts.
func (c *Client) ListFutures(ctx context.Context) ([]Future, error) {
	var futures []Future
	if err := c.get(ctx, "/futures", nil, &futures); err != nil {
		return nil, fmt.Errorf("list futures: %w", err)
	}
	return futures, nil
}

// GetOrderbook fetches a book snapshot for market. depth <= 0 uses the
// server default.
func (c *Client) GetOrderbook(ctx context.Context, market string, depth int) (*OrderbookSnapshot, error) {
	query := url.Values{}
	if depth > 0 {
		query.Set("depth", strconv.Itoa(depth))
	}

	var book OrderbookSnapshot
	if err := c.get(ctx, "/markets/"+url.PathEscape(market)+"/orderbook", query, &book); err != nil {
		return nil, fmt.Errorf("get orderbook %s: %w", market, err)
	}
	return &book, nil
}

// GetTrades fetches recent public trades for market.
func (c *Client) GetTrades(ctx context.Context, market string) ([]model.Trade, error) {
	var trades []model.Trade
	if err := c.get(ctx, "/markets/"+url.PathEscape(market)+"/trades", nil, &trades); err != nil {
		return nil, fmt.Errorf("get trades %s: %w", market, err)
	}
	return trades, nil
}
