package store

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashah/ftx-mirror/internal/model"
)

func TestStore_TradeRetention(t *testing.T) {
	s := NewStore(0) // DefaultCapacity

	batch := make([]model.Trade, DefaultCapacity+1)
	for i := range batch {
		batch[i] = model.Trade{ID: int64(i), Price: 100, Size: 1}
	}
	s.PushTrades("BTC-PERP", batch)

	got := s.Trades("BTC-PERP")
	assert.Len(t, got, DefaultCapacity, "buffer must retain exactly the capacity")
	assert.Equal(t, int64(1), got[0].ID, "oldest trade must be evicted first")
	assert.Equal(t, int64(DefaultCapacity), got[len(got)-1].ID, "newest trade must be retained")

	// Arrival order preserved throughout.
	for i := 1; i < len(got); i++ {
		assert.Equal(t, got[i-1].ID+1, got[i].ID)
	}
}

func TestStore_TradesPerMarket(t *testing.T) {
	s := NewStore(100)

	s.PushTrades("BTC-PERP", []model.Trade{{ID: 1}})
	s.PushTrades("ETH-PERP", []model.Trade{{ID: 2}, {ID: 3}})

	assert.Len(t, s.Trades("BTC-PERP"), 1)
	assert.Len(t, s.Trades("ETH-PERP"), 2)
	assert.Nil(t, s.Trades("SOL-PERP"))
}

func TestStore_TradesCopyOut(t *testing.T) {
	s := NewStore(100)
	s.PushTrades("BTC-PERP", []model.Trade{{ID: 1, Price: 100}})

	got := s.Trades("BTC-PERP")
	got[0].Price = 0

	assert.Equal(t, 100.0, s.Trades("BTC-PERP")[0].Price, "reads must not alias internal state")
}

func TestStore_FillRetention(t *testing.T) {
	s := NewStore(5)

	for i := 0; i < 7; i++ {
		s.PushFill(model.Fill{ID: int64(i)})
	}

	got := s.Fills()
	assert.Len(t, got, 5)
	assert.Equal(t, int64(2), got[0].ID)
	assert.Equal(t, int64(6), got[4].ID)
}

func TestStore_TickerOverwrite(t *testing.T) {
	s := NewStore(0)

	_, ok := s.Ticker("BTC-PERP")
	assert.False(t, ok)

	s.SetTicker("BTC-PERP", model.Ticker{Bid: 100, Ask: 101})
	s.SetTicker("BTC-PERP", model.Ticker{Bid: 100.5, Ask: 101.5})

	tick, ok := s.Ticker("BTC-PERP")
	assert.True(t, ok)
	assert.Equal(t, 100.5, tick.Bid, "ticker must keep only the latest value")
}

func TestStore_OrderUpsert(t *testing.T) {
	s := NewStore(0)

	s.UpsertOrder(model.Order{ID: 7, Status: "new"})
	s.UpsertOrder(model.Order{ID: 7, Status: "closed"})
	s.UpsertOrder(model.Order{ID: 8, Status: "open"})

	orders := s.Orders()
	assert.Len(t, orders, 2)
	assert.Equal(t, "closed", orders[7].Status, "same ID must overwrite")
	assert.Equal(t, "open", orders[8].Status)
}

func TestStore_Reset(t *testing.T) {
	s := NewStore(0)

	s.PushTrades("BTC-PERP", []model.Trade{{ID: 1}})
	s.PushFill(model.Fill{ID: 1})
	s.SetTicker("BTC-PERP", model.Ticker{Bid: 1})
	s.UpsertOrder(model.Order{ID: 1})

	s.Reset()

	assert.Nil(t, s.Trades("BTC-PERP"))
	assert.Empty(t, s.Fills())
	_, ok := s.Ticker("BTC-PERP")
	assert.False(t, ok)
	assert.Empty(t, s.Orders())
}
