package book

import (
	"hash/crc32"
	"strconv"
	"strings"

	"github.com/ashah/ftx-mirror/internal/model"
)

// checksumDepth is the number of levels per side covered by the checksum.
const checksumDepth = 100

// checksum builds the exchange's canonical checksum string from the top
// levels of each side and returns its CRC-32 (IEEE).
//
// Levels are paired by rank: bid[0]:ask[0]:bid[1]:ask[1]:... with each
// level rendered as "price:size". When one side is shorter its slot is
// simply absent (no placeholder). The input slices must already be sorted
// best-first.
func checksum(bids, asks []model.PriceLevel) uint32 {
	if len(bids) > checksumDepth {
		bids = bids[:checksumDepth]
	}
	if len(asks) > checksumDepth {
		asks = asks[:checksumDepth]
	}

	n := len(bids)
	if len(asks) > n {
		n = len(asks)
	}

	var sb strings.Builder
	for i := 0; i < n; i++ {
		if i < len(bids) {
			writeLevel(&sb, bids[i])
		}
		if i < len(asks) {
			writeLevel(&sb, asks[i])
		}
	}

	return crc32.ChecksumIEEE([]byte(sb.String()))
}

func writeLevel(sb *strings.Builder, l model.PriceLevel) {
	if sb.Len() > 0 {
		sb.WriteByte(':')
	}
	sb.WriteString(formatFloat(l.Price))
	sb.WriteByte(':')
	sb.WriteString(formatFloat(l.Size))
}

// formatFloat renders a float the way the exchange does when it computes
// the checksum: shortest round-trip decimal form, with integral values
// carrying an explicit ".0" (so 100 becomes "100.0", not "100").
func formatFloat(f float64) string {
	s := strconv.FormatFloat(f, 'g', -1, 64)
	if !strings.ContainsAny(s, ".eE") {
		s += ".0"
	}
	return s
}
