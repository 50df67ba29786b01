package stream

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/ashah/ftx-mirror/internal/auth"
	"github.com/ashah/ftx-mirror/internal/book"
	"github.com/ashah/ftx-mirror/internal/model"
	"github.com/ashah/ftx-mirror/internal/notify"
	"github.com/ashah/ftx-mirror/internal/store"
	"github.com/ashah/ftx-mirror/internal/ws"
)

// Client maintains a single websocket connection to the exchange and
// mirrors the subscribed channels into in-memory stores. All mutation of
// the stores happens on the dispatch goroutine; readers get copies.
type Client struct {
	cfg    Config
	logger *slog.Logger
	creds  *auth.Credentials

	books    *book.Store
	data     *store.Store
	notifier *notify.Notifier

	mu       sync.Mutex
	conn     *ws.Conn
	state    State
	subs     map[Subscription]struct{}
	loggedIn bool
	closed   bool
	fatal    error

	done      chan struct{}
	closeOnce sync.Once
	wg        sync.WaitGroup
}

// New creates a Client. creds may be nil; private channels (fills,
// orders) will then be unavailable. logger may be nil.
func New(cfg Config, creds *auth.Credentials, logger *slog.Logger) *Client {
	cfg.applyDefaults()
	if logger == nil {
		logger = slog.Default()
	}
	return &Client{
		cfg:      cfg,
		logger:   logger,
		creds:    creds,
		books:    book.NewStore(),
		data:     store.NewStore(cfg.RetentionLimit),
		notifier: notify.New(),
		state:    StateDisconnected,
		subs:     make(map[Subscription]struct{}),
		done:     make(chan struct{}),
	}
}

// Connect dials the websocket endpoint and starts the dispatch loop.
// Calling Connect on an already-connected client is a no-op.
func (c *Client) Connect(ctx context.Context) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	if c.conn != nil {
		c.mu.Unlock()
		return nil
	}
	c.state = StateConnecting
	c.mu.Unlock()

	conn, err := ws.Dial(ctx, c.wsConfig(), c.logger)
	if err != nil {
		c.setState(StateDisconnected)
		return fmt.Errorf("connect: %w", err)
	}

	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		conn.Close()
		return ErrClosed
	}
	c.conn = conn
	c.state = StateOpen
	c.resetLocked()
	c.state = StateStreaming
	c.mu.Unlock()

	c.wg.Add(1)
	go c.dispatchLoop(conn)
	return nil
}

// Close tears down the connection and stops the dispatch loop. Safe to
// call more than once.
func (c *Client) Close() error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return nil
	}
	c.closed = true
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	c.closeOnce.Do(func() { close(c.done) })
	if conn != nil {
		conn.Close()
	}
	c.notifier.Reset()
	c.wg.Wait()
	return nil
}

// Done is closed when the client stops for good, either via Close or a
// fatal server error.
func (c *Client) Done() <-chan struct{} { return c.done }

// Err reports the fatal error that stopped the client, if any.
func (c *Client) Err() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fatal
}

// State reports the current connection state.
func (c *Client) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Subscriptions returns the active subscription set, sorted for
// deterministic output.
func (c *Client) Subscriptions() []Subscription {
	c.mu.Lock()
	out := make([]Subscription, 0, len(c.subs))
	for sub := range c.subs {
		out = append(out, sub)
	}
	c.mu.Unlock()
	sort.Slice(out, func(i, j int) bool {
		if out[i].Channel != out[j].Channel {
			return out[i].Channel < out[j].Channel
		}
		return out[i].Market < out[j].Market
	})
	return out
}

// -----------------------------------------------------------------------------
// Public data accessors. Each one lazily subscribes to the backing
// channel on first use, then returns whatever has been mirrored so far.
// -----------------------------------------------------------------------------

// Trades returns the buffered public trades for market, oldest first.
func (c *Client) Trades(market string) ([]model.Trade, error) {
	if err := c.subscribe(Subscription{Channel: ChannelTrades, Market: market}); err != nil {
		return nil, err
	}
	return c.data.Trades(market), nil
}

// Ticker returns the latest ticker for market. ok is false until the
// first ticker message arrives.
func (c *Client) Ticker(market string) (model.Ticker, bool, error) {
	if err := c.subscribe(Subscription{Channel: ChannelTicker, Market: market}); err != nil {
		return model.Ticker{}, false, err
	}
	t, ok := c.data.Ticker(market)
	return t, ok, nil
}

// Orderbook returns a sorted snapshot of the mirrored book for market.
// On the first call for a market it waits up to FirstSnapshotTimeout for
// the initial snapshot to arrive before returning, so callers do not
// have to poll for the book to populate.
func (c *Client) Orderbook(market string) (model.Orderbook, error) {
	if err := c.subscribe(Subscription{Channel: ChannelOrderbook, Market: market}); err != nil {
		return model.Orderbook{}, err
	}
	if c.books.Timestamp(market) == 0 {
		c.notifier.Wait(market, c.cfg.FirstSnapshotTimeout)
	}
	return c.books.Snapshot(market), nil
}

// OrderbookTimestamp returns the exchange timestamp of the last applied
// orderbook message for market, or 0 if none has been applied.
func (c *Client) OrderbookTimestamp(market string) (float64, error) {
	if err := c.subscribe(Subscription{Channel: ChannelOrderbook, Market: market}); err != nil {
		return 0, err
	}
	return c.books.Timestamp(market), nil
}

// WaitForOrderbookUpdate blocks until the next verified orderbook change
// for market, or until timeout elapses. timeout <= 0 waits indefinitely.
// Returning does not distinguish an update from a timeout; callers
// compare OrderbookTimestamp around the wait if they need to know.
func (c *Client) WaitForOrderbookUpdate(market string, timeout time.Duration) error {
	if err := c.subscribe(Subscription{Channel: ChannelOrderbook, Market: market}); err != nil {
		return err
	}
	c.notifier.Wait(market, timeout)
	return nil
}

// Fills returns the buffered private fills, oldest first. Requires
// credentials; logs in on first use.
func (c *Client) Fills() ([]model.Fill, error) {
	if err := c.login(); err != nil {
		return nil, err
	}
	if err := c.subscribe(Subscription{Channel: ChannelFills}); err != nil {
		return nil, err
	}
	return c.data.Fills(), nil
}

// Orders returns the latest known state of the account's orders keyed by
// order ID. Requires credentials; logs in on first use.
func (c *Client) Orders() (map[int64]model.Order, error) {
	if err := c.login(); err != nil {
		return nil, err
	}
	if err := c.subscribe(Subscription{Channel: ChannelOrders}); err != nil {
		return nil, err
	}
	return c.data.Orders(), nil
}

// -----------------------------------------------------------------------------
// Subscription management
// -----------------------------------------------------------------------------

// subscribe sends a subscribe op for sub unless it is already active.
// The registry is updated before the send so concurrent callers collapse
// to one frame; a failed send rolls the entry back.
func (c *Client) subscribe(sub Subscription) error {
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	conn := c.conn
	if conn == nil {
		c.mu.Unlock()
		return ErrNotConnected
	}
	if _, ok := c.subs[sub]; ok {
		c.mu.Unlock()
		return nil
	}
	c.subs[sub] = struct{}{}
	c.mu.Unlock()

	frame := subscribeFrame{Op: "subscribe", Channel: sub.Channel, Market: sub.Market}
	if err := conn.SendJSON(frame); err != nil {
		c.mu.Lock()
		delete(c.subs, sub)
		c.mu.Unlock()
		return fmt.Errorf("subscribe %s %s: %w", sub.Channel, sub.Market, err)
	}
	return nil
}

// unsubscribe sends an unsubscribe op and drops sub from the registry.
func (c *Client) unsubscribe(sub Subscription) error {
	c.mu.Lock()
	conn := c.conn
	delete(c.subs, sub)
	c.mu.Unlock()
	if conn == nil {
		return ErrNotConnected
	}
	frame := subscribeFrame{Op: "unsubscribe", Channel: sub.Channel, Market: sub.Market}
	if err := conn.SendJSON(frame); err != nil {
		return fmt.Errorf("unsubscribe %s %s: %w", sub.Channel, sub.Market, err)
	}
	return nil
}

// login authenticates the connection for private channels. Sent at most
// once per connection; the flag is cleared on reconnect.
func (c *Client) login() error {
	if c.creds == nil {
		return ErrCredentialsRequired
	}
	c.mu.Lock()
	if c.closed {
		c.mu.Unlock()
		return ErrClosed
	}
	conn := c.conn
	if conn == nil {
		c.mu.Unlock()
		return ErrNotConnected
	}
	if c.loggedIn {
		c.mu.Unlock()
		return nil
	}
	c.loggedIn = true
	c.mu.Unlock()

	frame := loginFrame{Op: "login", Args: c.creds.LoginArgs(time.Now().UnixMilli())}
	if err := conn.SendJSON(frame); err != nil {
		c.mu.Lock()
		c.loggedIn = false
		c.mu.Unlock()
		return fmt.Errorf("login: %w", err)
	}
	return nil
}

// -----------------------------------------------------------------------------
// Connection lifecycle
// -----------------------------------------------------------------------------

func (c *Client) wsConfig() ws.Config {
	return ws.Config{
		URL:              c.cfg.URL,
		HandshakeTimeout: c.cfg.HandshakeTimeout,
		PingInterval:     c.cfg.PingInterval,
		WriteTimeout:     c.cfg.WriteTimeout,
		BufferSize:       c.cfg.FrameBufferSize,
	}
}

func (c *Client) setState(s State) {
	c.mu.Lock()
	c.state = s
	c.mu.Unlock()
}

func (c *Client) isClosed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.closed
}

// resetLocked wipes all per-connection state. Every channel must be
// re-subscribed and login re-sent on the new connection, so none of the
// mirrored data can be trusted across a reconnect. Caller holds c.mu.
func (c *Client) resetLocked() {
	c.subs = make(map[Subscription]struct{})
	c.loggedIn = false
	c.books.ResetAll()
	c.data.Reset()
	c.notifier.Reset()
}

// reconnect closes the current connection and dials a fresh one with
// bounded exponential backoff. Returns ErrClosed if the client is closed
// while retrying.
func (c *Client) reconnect() (*ws.Conn, error) {
	c.mu.Lock()
	old := c.conn
	c.conn = nil
	c.state = StateReconnecting
	c.mu.Unlock()
	if old != nil {
		old.Close()
	}
	// Waiters are blocked on a connection that no longer exists.
	c.notifier.Reset()

	delay := c.cfg.ReconnectBaseDelay
	for {
		if c.isClosed() {
			return nil, ErrClosed
		}
		c.setState(StateConnecting)
		conn, err := ws.Dial(context.Background(), c.wsConfig(), c.logger)
		if err == nil {
			c.mu.Lock()
			if c.closed {
				c.mu.Unlock()
				conn.Close()
				return nil, ErrClosed
			}
			c.conn = conn
			c.state = StateOpen
			c.resetLocked()
			c.state = StateStreaming
			c.mu.Unlock()
			c.logger.Info("reconnected", "url", c.cfg.URL)
			return conn, nil
		}

		c.logger.Warn("reconnect failed, retrying", "error", err, "delay", delay)
		select {
		case <-c.done:
			return nil, ErrClosed
		case <-time.After(delay):
		}
		delay *= 2
		if delay > c.cfg.ReconnectMaxDelay {
			delay = c.cfg.ReconnectMaxDelay
		}
	}
}

// fail records a fatal error and stops the client without reconnecting.
func (c *Client) fail(err error) {
	c.mu.Lock()
	if c.fatal == nil {
		c.fatal = err
	}
	conn := c.conn
	c.conn = nil
	c.state = StateDisconnected
	c.mu.Unlock()

	c.logger.Error("stream stopped", "error", err)
	if conn != nil {
		conn.Close()
	}
	c.notifier.Reset()
	c.closeOnce.Do(func() { close(c.done) })
}
