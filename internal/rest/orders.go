package rest

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"strconv"

	"github.com/google/uuid"

	"github.com/ashah/ftx-mirror/internal/model"
)

// Modify request validation errors.
var (
	ErrModifyTarget = errors.New("exactly one of OrderID or ClientOrderID must be set")
	ErrModifyChange = errors.New("modify price or size, not both")
)

// PlaceOrder submits a new order. A blank ClientID is filled with a
// generated UUID before sending.
func (c *Client) PlaceOrder(ctx context.Context, req PlaceOrderRequest) (*model.Order, error) {
	if req.ClientID == "" {
		req.ClientID = uuid.NewString()
	}

	var order model.Order
	if err := c.post(ctx, "/orders", req, &order); err != nil {
		return nil, fmt.Errorf("place order: %w", err)
	}
	return &order, nil
}

// ModifyOrder replaces an existing order's price or size. The exchange
// implements this as cancel-and-replace, so the returned order carries a
// new ID. Never retried: a timed-out modify may still have landed.
func (c *Client) ModifyOrder(ctx context.Context, req ModifyOrderRequest) (*model.Order, error) {
	if (req.OrderID == 0) == (req.ClientOrderID == "") {
		return nil, ErrModifyTarget
	}
	if req.Price != nil && req.Size != nil {
		return nil, ErrModifyChange
	}

	path := "/orders/" + strconv.FormatInt(req.OrderID, 10) + "/modify"
	if req.ClientOrderID != "" {
		path = "/orders/by_client_id/" + url.PathEscape(req.ClientOrderID) + "/modify"
	}

	payload := map[string]any{}
	if req.Price != nil {
		payload["price"] = *req.Price
	}
	if req.Size != nil {
		payload["size"] = *req.Size
	}
	if req.NewClientID != "" {
		payload["clientId"] = req.NewClientID
	}

	var order model.Order
	if err := c.post(ctx, path, payload, &order); err != nil {
		return nil, fmt.Errorf("modify order: %w", err)
	}
	return &order, nil
}

// CancelOrder cancels one order by its exchange-assigned ID.
func (c *Client) CancelOrder(ctx context.Context, orderID int64) error {
	if err := c.delete(ctx, "/orders/"+strconv.FormatInt(orderID, 10), nil, nil); err != nil {
		return fmt.Errorf("cancel order %d: %w", orderID, err)
	}
	return nil
}

// CancelAllOrders cancels every order matching the filter.
func (c *Client) CancelAllOrders(ctx context.Context, filter CancelAllFilter) error {
	if err := c.delete(ctx, "/orders", filter, nil); err != nil {
		return fmt.Errorf("cancel all orders: %w", err)
	}
	return nil
}
