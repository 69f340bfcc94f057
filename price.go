package geflip

import "time"

// LatestPrice is the most recent instant-buy (high) and instant-sell (low)
// price observed for an item. A zero price means the side is unknown: some
// items trade so rarely that one side has never been seen.
type LatestPrice struct {
	High     int64 `json:"high"`
	HighTime int64 `json:"highTime,omitempty"`
	Low      int64 `json:"low"`
	LowTime  int64 `json:"lowTime,omitempty"`
}

// Known reports whether both sides of the price are known.
func (p LatestPrice) Known() bool { return p.High > 0 && p.Low > 0 }

// AggregatePrice is a windowed (1h or 24h) average price and traded volume.
// HighVolume counts instant-buys, LowVolume instant-sells.
type AggregatePrice struct {
	AvgHigh    int64 `json:"avgHighPrice"`
	HighVolume int64 `json:"highPriceVolume"`
	AvgLow     int64 `json:"avgLowPrice"`
	LowVolume  int64 `json:"lowPriceVolume"`
}

// TotalVolume returns the combined buy and sell volume of the window.
func (p AggregatePrice) TotalVolume() int64 { return p.HighVolume + p.LowVolume }

// Snapshot is a point-in-time view of the market: latest prices plus the
// 1h and 24h aggregate windows, keyed by item id. The filtering and scoring
// pipeline is a pure function of one snapshot; callers must not hand it a
// partially fetched one.
type Snapshot struct {
	Taken  time.Time
	Latest map[int]LatestPrice
	Hour   map[int]AggregatePrice
	Day    map[int]AggregatePrice
}

// SellPrices extracts the current instant-buy price per item, the price an
// open position would realistically sell at. Items with an unknown high
// side are absent from the result, which the portfolio summary treats with
// its neutral-fallback policy.
func (s *Snapshot) SellPrices() map[int]int64 {
	out := make(map[int]int64, len(s.Latest))
	for id, lp := range s.Latest {
		if lp.High > 0 {
			out[id] = lp.High
		}
	}
	return out
}
