package domain

import "time"

// MaxMarketNameLen is the maximum market name length in bytes.
const MaxMarketNameLen = 32

// Market is the registry record for a named market. It owns the
// monotonic order-id counter and the coarse outstanding-volume
// aggregates. Volumes grow on placement and shrink (saturating) on
// cancellation; they are deliberately untouched by fills, so they are
// an outstanding-order metric rather than live book depth.
type Market struct {
	Authority      string // creator identity, informational
	Name           string
	NextOrderID    uint64
	TotalBidVolume uint64
	TotalAskVolume uint64
	CreatedAt      time.Time
}

// Address returns the market's derived record address.
func (m *Market) Address() string {
	return MarketAddress(m.Authority, m.Name)
}
