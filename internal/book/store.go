// Package book maintains the locally mirrored order books, one per market.
//
// The exchange drives state through two message kinds: a partial (full
// snapshot, replaces the book) and an update (incremental level changes).
// After every applied message the server-supplied CRC-32 checksum is
// compared against one computed from the local top 100 levels per side;
// a mismatch means the mirror has diverged and the market must be resynced
// from a fresh snapshot.
package book

import (
	"sort"
	"sync"

	"github.com/ashah/ftx-mirror/internal/model"
)

// sideBook maps price to size for one side. Sizes are strictly positive:
// a zero-size level is deleted, never stored.
type sideBook map[float64]float64

// marketBook is the mutable book state for a single market.
type marketBook struct {
	bids      sideBook
	asks      sideBook
	updatedAt float64 // Exchange timestamp of the last applied message
}

func newMarketBook() *marketBook {
	return &marketBook{
		bids: make(sideBook),
		asks: make(sideBook),
	}
}

// Store holds the order books for every subscribed market. All methods are
// safe for concurrent use; state is partitioned by market key, so a single
// lock suffices for the dispatch-writer / many-readers pattern.
type Store struct {
	mu    sync.Mutex
	books map[string]*marketBook
}

// NewStore creates an empty Store.
func NewStore() *Store {
	return &Store{books: make(map[string]*marketBook)}
}

// ApplySnapshot discards any existing state for market and installs the
// given levels as the new book.
func (s *Store) ApplySnapshot(market string, bids, asks []model.PriceLevel, ts float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mb := newMarketBook()
	mb.applyLevels(bids, asks, ts)
	s.books[market] = mb
}

// ApplyDiff applies incremental level changes to market's book. A level
// with size > 0 inserts or overwrites; size == 0 removes the price if
// present. Creates the book if the diff arrives before any snapshot.
func (s *Store) ApplyDiff(market string, bids, asks []model.PriceLevel, ts float64) {
	s.mu.Lock()
	defer s.mu.Unlock()

	mb, ok := s.books[market]
	if !ok {
		mb = newMarketBook()
		s.books[market] = mb
	}
	mb.applyLevels(bids, asks, ts)
}

func (mb *marketBook) applyLevels(bids, asks []model.PriceLevel, ts float64) {
	for _, l := range bids {
		if l.Size > 0 {
			mb.bids[l.Price] = l.Size
		} else {
			delete(mb.bids, l.Price)
		}
	}
	for _, l := range asks {
		if l.Size > 0 {
			mb.asks[l.Price] = l.Size
		} else {
			delete(mb.asks, l.Price)
		}
	}
	mb.updatedAt = ts
}

// Snapshot returns the ordered view of market's book: bids descending,
// asks ascending, zero-size levels filtered defensively. Returns an empty
// book when the market is unknown.
func (s *Store) Snapshot(market string) model.Orderbook {
	s.mu.Lock()
	defer s.mu.Unlock()

	ob := model.Orderbook{Market: market}
	mb, ok := s.books[market]
	if !ok {
		return ob
	}

	ob.Bids = sortedLevels(mb.bids, true)
	ob.Asks = sortedLevels(mb.asks, false)
	ob.Time = mb.updatedAt
	return ob
}

// Timestamp returns the exchange timestamp of the last applied message for
// market, or 0 when no message has been applied.
func (s *Store) Timestamp(market string) float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	if mb, ok := s.books[market]; ok {
		return mb.updatedAt
	}
	return 0
}

// Checksum computes the CRC-32 of market's current top-100 levels in the
// exchange's canonical string form. Returns 0 for an unknown market.
func (s *Store) Checksum(market string) uint32 {
	s.mu.Lock()
	defer s.mu.Unlock()

	mb, ok := s.books[market]
	if !ok {
		return 0
	}
	return checksum(sortedLevels(mb.bids, true), sortedLevels(mb.asks, false))
}

// Reset discards all state for a single market.
func (s *Store) Reset(market string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.books, market)
}

// ResetAll discards every book. Called on connection reset.
func (s *Store) ResetAll() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.books = make(map[string]*marketBook)
}

// sortedLevels flattens one side into a sorted slice, best price first.
// Zero sizes should never be present, but are filtered anyway so a read
// can never surface a removed level.
func sortedLevels(side sideBook, descending bool) []model.PriceLevel {
	levels := make([]model.PriceLevel, 0, len(side))
	for price, size := range side {
		if size > 0 {
			levels = append(levels, model.PriceLevel{Price: price, Size: size})
		}
	}

	sort.Slice(levels, func(i, j int) bool {
		if descending {
			return levels[i].Price > levels[j].Price
		}
		return levels[i].Price < levels[j].Price
	})
	return levels
}
