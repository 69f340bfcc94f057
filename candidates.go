package geflip

import (
	"errors"
	"fmt"
	"math"
)

// ErrNoCandidates is returned when the filters leave nothing to rank. It is
// an expected outcome of strict filtering, not a fault: the dashboard shows
// it as a single "no matches" message.
var ErrNoCandidates = errors.New("no candidates match the current filters")

// Tradability is the coarse liquidity classification of a candidate,
// derived from 24h volume and the buy/sell balance.
type Tradability string

const (
	Excellent Tradability = "Excellent"
	Good      Tradability = "Good"
	Fair      Tradability = "Fair"
	Poor      Tradability = "Poor"
)

// Strategy selects the flipping style the pipeline scores for.
type Strategy string

const (
	Balanced      Strategy = "balanced"
	HighMargin    Strategy = "high_margin"
	DipBuys       Strategy = "dip_buys"
	MomentumPlays Strategy = "momentum_plays"
)

// Strategies lists every known strategy.
var Strategies = []Strategy{Balanced, HighMargin, DipBuys, MomentumPlays}

// ParseStrategy parses a strategy name.
func ParseStrategy(s string) (Strategy, error) {
	for _, st := range Strategies {
		if Strategy(s) == st {
			return st, nil
		}
	}
	return "", fmt.Errorf("unknown strategy %q", s)
}

// Candidate is one item that survived the hard filters, with every figure
// the scorer and the AI assistant need. Candidates are ephemeral: they are
// recomputed from a fresh snapshot on every analysis run and never
// persisted.
type Candidate struct {
	ItemID   int    `json:"itemId"`
	ItemName string `json:"itemName"`
	BuyLimit int64  `json:"buyLimit"`

	BuyPrice  int64   `json:"buyPrice"`  // current instant-sell price, what a buy offer fills at
	SellPrice int64   `json:"sellPrice"` // current instant-buy price, what a sell offer fills at
	MarginGp  int64   `json:"marginGp"`  // per-unit margin after per-unit tax
	MarginPct float64 `json:"marginPct"`

	Quantity        int64 `json:"quantity"` // affordable within budget and buy limit
	Tax             int64 `json:"tax"`      // full-quantity tax, capped
	PotentialProfit int64 `json:"potentialProfit"`

	BuyVolume      int64       `json:"buyVolume24h"`
	SellVolume     int64       `json:"sellVolume24h"`
	LiquidityRatio float64     `json:"liquidityRatio"`
	Tradability    Tradability `json:"tradability"`
	FlipVelocity   float64     `json:"flipVelocity"` // (buy+sell volume) / buy limit

	Change1h  float64 `json:"change1h"`  // % vs 1h average
	Change24h float64 `json:"change24h"` // % vs 24h average

	Score float64 `json:"score,omitempty"`
}

// Hard-filter thresholds. These are contract, not tuning: the pipeline must
// never emit an illiquid or unprofitable candidate.
const (
	minSellPrice      = 1000 // latest high must be at least this
	lowBuyLimit       = 1000 // threshold for the ignore-low-limits toggle
	minSideVolume     = 100  // 24h buy and sell volume floor
	minLiquidityRatio = 0.25
	maxRanked         = 30 // candidates handed to the assistant
)

// tradability derives the tier from total 24h volume and liquidity ratio.
func tradability(totalVolume int64, ratio float64) Tradability {
	switch {
	case totalVolume > 5000 && ratio > 0.75:
		return Excellent
	case totalVolume > 1000 && ratio > 0.5:
		return Good
	case totalVolume > 250 && ratio > 0.3:
		return Fair
	default:
		return Poor
	}
}

// tierAllowed applies the strategy's tier floor: balanced only flips highly
// tradable items, every other strategy merely refuses Poor.
func tierAllowed(t Tradability, strategy Strategy) bool {
	if t == Poor {
		return false
	}
	if strategy == Balanced && t == Fair {
		return false
	}
	return true
}

// FilterCandidates runs the sequential hard filters over every item in the
// snapshot and returns the survivors, unscored. Each filter short-circuits:
// the first failure excludes the item.
//
// The function is pure: it reads the snapshot and writes nothing, so the
// same inputs always produce the same candidates. A non-positive budget is
// rejected outright.
func FilterCandidates(items []Item, snap *Snapshot, budget int64, strategy Strategy, ignoreLowBuyLimits bool) ([]Candidate, error) {
	if budget <= 0 {
		return nil, fmt.Errorf("budget must be positive, got %d", budget)
	}
	if _, err := ParseStrategy(string(strategy)); err != nil {
		return nil, err
	}

	var out []Candidate
	for _, item := range items {
		// 1. Price and limit sanity: both latest sides known, a positive
		// buy limit, a sell side worth flipping, and 24h data to judge
		// liquidity with.
		lp, ok := snap.Latest[item.ID]
		if !ok || !lp.Known() || item.BuyLimit <= 0 || lp.High < minSellPrice {
			continue
		}
		day, ok := snap.Day[item.ID]
		if !ok {
			continue
		}

		// 2. Optionally skip items whose buy limit is too small to matter.
		if ignoreLowBuyLimits && item.BuyLimit < lowBuyLimit {
			continue
		}

		// 3. Cheap per-unit margin check before the full-quantity tax.
		buy, sell := lp.Low, lp.High
		perUnitTax := CalculateGeTax(item.Name, sell, 1)
		margin := sell - buy - perUnitTax
		if margin <= 0 {
			continue
		}

		// 4. How many units the budget affords, bounded by the buy limit.
		qty := budget / buy
		if qty > item.BuyLimit {
			qty = item.BuyLimit
		}
		if qty <= 0 {
			continue
		}

		// 5. Full-quantity tax (capped) must still leave a profit.
		tax := CalculateGeTax(item.Name, sell, qty)
		profit := (sell-buy)*qty - tax
		if profit <= 0 {
			continue
		}

		// 6. Liquidity floor on both sides and on the buy/sell balance.
		buyVol, sellVol := day.HighVolume, day.LowVolume
		if buyVol < minSideVolume || sellVol < minSideVolume {
			continue
		}
		ratio := float64(sellVol) / float64(buyVol)
		if ratio < minLiquidityRatio {
			continue
		}

		// 7. Price changes vs the hourly and daily averages must be
		// finite; a zero historical average would divide to infinity.
		hour := snap.Hour[item.ID]
		change1h := percentChange(sell, hour.AvgHigh)
		change24h := percentChange(sell, day.AvgHigh)
		if math.IsInf(change1h, 0) || math.IsNaN(change1h) ||
			math.IsInf(change24h, 0) || math.IsNaN(change24h) {
			continue
		}

		// 8. Tradability tier floor per strategy.
		tier := tradability(day.TotalVolume(), ratio)
		if !tierAllowed(tier, strategy) {
			continue
		}

		out = append(out, Candidate{
			ItemID:          item.ID,
			ItemName:        item.Name,
			BuyLimit:        item.BuyLimit,
			BuyPrice:        buy,
			SellPrice:       sell,
			MarginGp:        margin,
			MarginPct:       float64(margin) / float64(buy) * 100,
			Quantity:        qty,
			Tax:             tax,
			PotentialProfit: profit,
			BuyVolume:       buyVol,
			SellVolume:      sellVol,
			LiquidityRatio:  ratio,
			Tradability:     tier,
			FlipVelocity:    float64(buyVol+sellVol) / float64(item.BuyLimit),
			Change1h:        change1h,
			Change24h:       change24h,
		})
	}
	return out, nil
}

// percentChange returns the percentage move of current vs a historical
// average. Infinity when the average is zero; the caller filters that out.
func percentChange(current, avg int64) float64 {
	return (float64(current) - float64(avg)) / float64(avg) * 100
}
