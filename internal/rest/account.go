package rest

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"github.com/ashah/ftx-mirror/internal/model"
)

// GetAccount fetches the authenticated account summary.
func (c *Client) GetAccount(ctx context.Context) (*Account, error) {
	var acct Account
	if err := c.get(ctx, "/account", nil, &acct); err != nil {
		return nil, fmt.Errorf("get account: %w", err)
	}
	return &acct, nil
}

// GetOpenOrders fetches open orders, optionally filtered by market.
func (c *Client) GetOpenOrders(ctx context.Context, market string) ([]model.Order, error) {
	query := url.Values{}
	if market != "" {
		query.Set("market", market)
	}

	var orders []model.Order
	if err := c.get(ctx, "/orders", query, &orders); err != nil {
		return nil, fmt.Errorf("get open orders: %w", err)
	}
	return orders, nil
}

// GetOrderHistory fetches past orders matching the filter.
func (c *Client) GetOrderHistory(ctx context.Context, filter OrderHistoryFilter) ([]model.Order, error) {
	query := url.Values{}
	if filter.Market != "" {
		query.Set("market", filter.Market)
	}
	if filter.Side != "" {
		query.Set("side", filter.Side)
	}
	if filter.OrderType != "" {
		query.Set("orderType", filter.OrderType)
	}
	if filter.StartTime != 0 {
		query.Set("start_time", strconv.FormatFloat(filter.StartTime, 'f', -1, 64))
	}
	if filter.EndTime != 0 {
		query.Set("end_time", strconv.FormatFloat(filter.EndTime, 'f', -1, 64))
	}

	var orders []model.Order
	if err := c.get(ctx, "/orders/history", query, &orders); err != nil {
		return nil, fmt.Errorf("get order history: %w", err)
	}
	return orders, nil
}

// GetFills fetches the account's fills.
func (c *Client) GetFills(ctx context.Context) ([]model.Fill, error) {
	var fills []model.Fill
	if err := c.get(ctx, "/fills", nil, &fills); err != nil {
		return nil, fmt.Errorf("get fills: %w", err)
	}
	return fills, nil
}

// GetBalances fetches wallet balances.
func (c *Client) GetBalances(ctx context.Context) ([]Balance, error) {
	var balances []Balance
	if err := c.get(ctx, "/wallet/balances", nil, &balances); err != nil {
		return nil, fmt.Errorf("get balances: %w", err)
	}
	return balances, nil
}

// GetPositions fetches open futures positions.
func (c *Client) GetPositions(ctx context.Context, showAvgPrice bool) ([]Position, error) {
	query := url.Values{}
	if showAvgPrice {
		query.Set("showAvgPrice", "true")
	}

	var positions []Position
	if err := c.get(ctx, "/positions", query, &positions); err != nil {
		return nil, fmt.Errorf("get positions: %w", err)
	}
	return positions, nil
}

// GetPosition fetches the position for one future, or nil if the
// account holds none.
func (c *Client) GetPosition(ctx context.Context, future string, showAvgPrice bool) (*Position, error) {
	positions, err := c.GetPositions(ctx, showAvgPrice)
	if err != nil {
		return nil, err
	}
	for i := range positions {
		if positions[i].Future == future {
			return &positions[i], nil
		}
	}
	return nil, nil
}
