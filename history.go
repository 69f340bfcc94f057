package geflip

import (
	"sort"

	"github.com/osrstools/geflip/date"
)

// DailyProfit is one point of the cumulative realised-profit series.
type DailyProfit struct {
	Date       date.Date `json:"date"`
	Cumulative int64     `json:"cumulative"`
}

// CumulativeHistory computes the cumulative realised profit for every
// calendar day of the range, one point per day.
//
// Profit is booked on the sell date of each closed lot; open lots are
// ignored. The running total is seeded with the profit of every lot sold
// strictly before the range so the series starts from the true historical
// position, and stays flat on days without sales. The result is a pure
// function of the lot set and range: replaying the same inputs yields the
// same series.
func CumulativeHistory(lots []Investment, rng date.Range) []DailyProfit {
	closed := make([]Investment, 0, len(lots))
	for _, lot := range lots {
		if lot.Closed() {
			closed = append(closed, lot)
		}
	}
	sort.SliceStable(closed, func(i, j int) bool {
		return closed[i].SellDate.Before(*closed[j].SellDate)
	})

	var running int64
	i := 0
	for ; i < len(closed) && closed[i].SellDate.Before(rng.From); i++ {
		running += closed[i].Profit()
	}

	var series []DailyProfit
	for on := range rng.Days() {
		for ; i < len(closed) && !closed[i].SellDate.After(on); i++ {
			running += closed[i].Profit()
		}
		series = append(series, DailyProfit{Date: on, Cumulative: running})
	}
	return series
}
