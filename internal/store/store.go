// Package store holds the non-book stream state: bounded trade and fill
// buffers, the latest ticker per market, and the latest state per order.
package store

import (
	"sync"

	"github.com/gammazero/deque"

	"github.com/ashah/ftx-mirror/internal/model"
)

// DefaultCapacity is the retention limit for the trade and fill buffers.
const DefaultCapacity = 10000

// Store is the in-memory cache fed by the dispatch goroutine and read by
// consumers. All methods are safe for concurrent use. Reads copy out, so
// callers never alias internal state.
type Store struct {
	mu       sync.Mutex
	capacity int

	trades  map[string]*deque.Deque[model.Trade]
	fills   deque.Deque[model.Fill]
	tickers map[string]model.Ticker
	orders  map[int64]model.Order
}

// NewStore creates a Store retaining at most capacity trades per market
// and capacity fills overall. A non-positive capacity uses
// DefaultCapacity.
func NewStore(capacity int) *Store {
	if capacity <= 0 {
		capacity = DefaultCapacity
	}
	return &Store{
		capacity: capacity,
		trades:   make(map[string]*deque.Deque[model.Trade]),
		tickers:  make(map[string]model.Ticker),
		orders:   make(map[int64]model.Order),
	}
}

// PushTrades appends trades to market's buffer in arrival order, evicting
// the oldest entries once the buffer is full.
func (s *Store) PushTrades(market string, trades []model.Trade) {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.trades[market]
	if !ok {
		buf = &deque.Deque[model.Trade]{}
		s.trades[market] = buf
	}
	for _, tr := range trades {
		if buf.Len() >= s.capacity {
			buf.PopFront()
		}
		buf.PushBack(tr)
	}
}

// Trades returns a copy of market's buffered trades, oldest first.
func (s *Store) Trades(market string) []model.Trade {
	s.mu.Lock()
	defer s.mu.Unlock()

	buf, ok := s.trades[market]
	if !ok {
		return nil
	}
	out := make([]model.Trade, buf.Len())
	for i := range out {
		out[i] = buf.At(i)
	}
	return out
}

// PushFill appends one fill, evicting the oldest once the buffer is full.
// Fills are account-wide, not per market.
func (s *Store) PushFill(f model.Fill) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.fills.Len() >= s.capacity {
		s.fills.PopFront()
	}
	s.fills.PushBack(f)
}

// Fills returns a copy of the buffered fills, oldest first.
func (s *Store) Fills() []model.Fill {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]model.Fill, s.fills.Len())
	for i := range out {
		out[i] = s.fills.At(i)
	}
	return out
}

// SetTicker overwrites market's latest ticker.
func (s *Store) SetTicker(market string, t model.Ticker) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.tickers[market] = t
}

// Ticker returns market's latest ticker. ok is false when no ticker has
// arrived for the market.
func (s *Store) Ticker(market string) (t model.Ticker, ok bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	t, ok = s.tickers[market]
	return t, ok
}

// UpsertOrder records the latest state for an order, keyed by ID.
func (s *Store) UpsertOrder(o model.Order) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.orders[o.ID] = o
}

// Orders returns a copy of the latest state of every tracked order.
func (s *Store) Orders() map[int64]model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make(map[int64]model.Order, len(s.orders))
	for id, o := range s.orders {
		out[id] = o
	}
	return out
}

// Reset discards everything. Called on connection reset: the server keeps
// no session state across connections, so retained caches would silently
// diverge from the feed.
func (s *Store) Reset() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.trades = make(map[string]*deque.Deque[model.Trade])
	s.fills.Clear()
	s.tickers = make(map[string]model.Ticker)
	s.orders = make(map[int64]model.Order)
}
