package stream

import (
	"encoding/json"

	"github.com/ashah/ftx-mirror/internal/model"
	"github.com/ashah/ftx-mirror/internal/ws"
)

// dispatchLoop is the single consumer of inbound frames and the only
// goroutine that mutates the mirrored data.
func (c *Client) dispatchLoop(conn *ws.Conn) {
	defer c.wg.Done()
	for {
		select {
		case <-c.done:
			return
		case err := <-conn.Errors():
			if c.isClosed() {
				return
			}
			c.logger.Warn("connection lost", "error", err)
			next, rerr := c.reconnect()
			if rerr != nil {
				return
			}
			conn = next
		case msg := <-conn.Messages():
			switch err := c.route(msg); {
			case err == nil:
			case err == errReconnect:
				c.logger.Info("server requested reconnect")
				next, rerr := c.reconnect()
				if rerr != nil {
					return
				}
				conn = next
			default:
				c.fail(err)
				return
			}
		}
	}
}

// route classifies one inbound frame and applies it. Returns nil,
// errReconnect, or a fatal error.
func (c *Client) route(msg ws.RawMessage) error {
	var frame inboundFrame
	if err := json.Unmarshal(msg.Data, &frame); err != nil {
		// The stream is framed per-message; a frame that is not even
		// JSON means the connection is not trustworthy anymore.
		c.logger.Warn("malformed frame, reconnecting", "error", err)
		return errReconnect
	}

	switch frame.Type {
	case "subscribed", "unsubscribed", "pong":
		return nil
	case "info":
		if frame.Code == reconnectRequestCode {
			return errReconnect
		}
		c.logger.Info("server info", "code", frame.Code, "msg", frame.Msg)
		return nil
	case "error":
		return &ServerError{Code: frame.Code, Message: frame.Msg}
	case "partial", "update":
	default:
		c.logger.Debug("dropping frame", "type", frame.Type, "channel", frame.Channel)
		return nil
	}

	switch frame.Channel {
	case ChannelOrderbook:
		c.handleOrderbook(frame)
	case ChannelTrades:
		c.handleTrades(frame)
	case ChannelTicker:
		c.handleTicker(frame)
	case ChannelFills:
		c.handleFill(frame)
	case ChannelOrders:
		c.handleOrder(frame)
	default:
		c.logger.Debug("dropping frame", "type", frame.Type, "channel", frame.Channel)
	}
	return nil
}

// handleOrderbook applies a snapshot or diff and verifies the book
// against the server checksum. A mismatch wipes the market's book and
// resubscribes the channel to force a fresh snapshot.
func (c *Client) handleOrderbook(frame inboundFrame) {
	var data orderbookData
	if err := json.Unmarshal(frame.Data, &data); err != nil {
		c.logger.Warn("bad orderbook payload", "market", frame.Market, "error", err)
		return
	}

	switch data.Action {
	case "partial":
		c.books.ApplySnapshot(frame.Market, data.Bids, data.Asks, data.Time)
	case "update":
		c.books.ApplyDiff(frame.Market, data.Bids, data.Asks, data.Time)
	default:
		c.logger.Debug("dropping orderbook action", "market", frame.Market, "action", data.Action)
		return
	}

	if sum := c.books.Checksum(frame.Market); sum != data.Checksum {
		c.logger.Warn("orderbook checksum mismatch, resubscribing",
			"market", frame.Market, "want", data.Checksum, "got", sum)
		c.books.Reset(frame.Market)
		sub := Subscription{Channel: ChannelOrderbook, Market: frame.Market}
		if err := c.unsubscribe(sub); err != nil {
			c.logger.Warn("resubscribe failed", "market", frame.Market, "error", err)
			return
		}
		if err := c.subscribe(sub); err != nil {
			c.logger.Warn("resubscribe failed", "market", frame.Market, "error", err)
		}
		return
	}
	c.notifier.Signal(frame.Market)
}

func (c *Client) handleTrades(frame inboundFrame) {
	var trades []model.Trade
	if err := json.Unmarshal(frame.Data, &trades); err != nil {
		c.logger.Warn("bad trades payload", "market", frame.Market, "error", err)
		return
	}
	c.data.PushTrades(frame.Market, trades)
}

func (c *Client) handleTicker(frame inboundFrame) {
	var t model.Ticker
	if err := json.Unmarshal(frame.Data, &t); err != nil {
		c.logger.Warn("bad ticker payload", "market", frame.Market, "error", err)
		return
	}
	c.data.SetTicker(frame.Market, t)
}

func (c *Client) handleFill(frame inboundFrame) {
	var f model.Fill
	if err := json.Unmarshal(frame.Data, &f); err != nil {
		c.logger.Warn("bad fill payload", "error", err)
		return
	}
	c.data.PushFill(f)
}

func (c *Client) handleOrder(frame inboundFrame) {
	var o model.Order
	if err := json.Unmarshal(frame.Data, &o); err != nil {
		c.logger.Warn("bad order payload", "error", err)
		return
	}
	c.data.UpsertOrder(o)
}
