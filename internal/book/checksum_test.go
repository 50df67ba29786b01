package book

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ashah/ftx-mirror/internal/model"
)

func levels(pairs ...[2]float64) []model.PriceLevel {
	out := make([]model.PriceLevel, len(pairs))
	for i, p := range pairs {
		out[i] = model.PriceLevel{Price: p[0], Size: p[1]}
	}
	return out
}

func TestChecksum_KnownVectors(t *testing.T) {
	tests := []struct {
		name string
		bids []model.PriceLevel
		asks []model.PriceLevel
		want uint32
	}{
		{
			name: "two bids one ask",
			bids: levels([2]float64{100, 1}, [2]float64{99, 2}),
			asks: levels([2]float64{101, 1}),
			want: 483019333,
		},
		{
			name: "one bid one ask",
			bids: levels([2]float64{99, 2}),
			asks: levels([2]float64{101, 1}),
			want: 1311374525,
		},
		{
			name: "fractional prices and sizes",
			bids: levels([2]float64{4025.5, 10.25}, [2]float64{4025, 0.5}),
			asks: levels([2]float64{4026, 1}, [2]float64{4027.25, 3.75}),
			want: 3996749297,
		},
		{
			name: "bid side only",
			bids: levels([2]float64{5000, 2}),
			asks: nil,
			want: 1743772556,
		},
		{
			name: "sub-penny prices",
			bids: levels([2]float64{0.00012345, 1000}),
			asks: levels([2]float64{0.00012999, 250.5}),
			want: 2764235314,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, checksum(tt.bids, tt.asks))
		})
	}
}

func TestChecksum_Deterministic(t *testing.T) {
	bids := levels([2]float64{100, 1}, [2]float64{99, 2})
	asks := levels([2]float64{101, 1})

	first := checksum(bids, asks)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, checksum(bids, asks), "checksum must be deterministic")
	}
}

func TestChecksum_TruncatesToTop100(t *testing.T) {
	deep := make([]model.PriceLevel, 150)
	for i := range deep {
		deep[i] = model.PriceLevel{Price: float64(10000 - i), Size: 1}
	}

	full := checksum(deep, nil)
	top := checksum(deep[:100], nil)
	assert.Equal(t, top, full, "levels beyond rank 100 must not affect the checksum")

	less := checksum(deep[:99], nil)
	assert.NotEqual(t, top, less, "levels within the top 100 must affect the checksum")
}

func TestFormatFloat(t *testing.T) {
	tests := []struct {
		in   float64
		want string
	}{
		{100, "100.0"},
		{100.5, "100.5"},
		{0.5, "0.5"},
		{0.00012345, "0.00012345"},
		{1e-05, "1e-05"},
		{12345.678, "12345.678"},
		{2, "2.0"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatFloat(tt.in), "formatFloat(%v)", tt.in)
	}
}
