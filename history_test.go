package geflip

import (
	"testing"

	"github.com/osrstools/geflip/date"
)

func TestCumulativeHistory(t *testing.T) {
	lots := []Investment{
		closedLot(1, 10, 100, 200, 40, "2025-01-05"),  // +960, before range
		closedLot(2, 5, 1000, 1200, 120, "2025-02-02"), // +880
		closedLot(3, 2, 500, 400, 0, "2025-02-04"),     // -200
		// open lot, must be ignored
		{ID: "open", ItemID: 4, Quantity: 3, BuyPrice: 100, BuyDate: date.MustParse("2025-01-01")},
	}
	nar := date.Range{From: date.MustParse("2025-02-01"), To: date.MustParse("2025-02-05")}

	series := CumulativeHistory(lots, nar)
	if len(series) != 5 {
		t.Fatalf("series has %d points, want 5", len(series))
	}

	want := []int64{
		960,        // Feb 1: seeded with the pre-range sale
		960 + 880,  // Feb 2
		960 + 880,  // Feb 3: flat between sales
		1840 - 200, // Feb 4
		1640,       // Feb 5
	}
	for i, w := range want {
		if series[i].Cumulative != w {
			t.Errorf("day %s = %d, want %d", series[i].Date, series[i].Cumulative, w)
		}
	}
}

func TestCumulativeHistoryDeterministic(t *testing.T) {
	lots := []Investment{
		closedLot(1, 1, 10, 30, 0, "2025-03-03"),
		closedLot(2, 1, 10, 20, 0, "2025-03-01"),
	}
	rng := date.Range{From: date.MustParse("2025-03-01"), To: date.MustParse("2025-03-04")}

	first := CumulativeHistory(lots, rng)
	// Reversed input order must replay to the identical series.
	second := CumulativeHistory([]Investment{lots[1], lots[0]}, rng)
	if len(first) != len(second) {
		t.Fatalf("series lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("point %d differs: %+v vs %+v", i, first[i], second[i])
		}
	}
}

func TestCumulativeHistoryEmptyRange(t *testing.T) {
	rng := date.Range{From: date.MustParse("2025-03-04"), To: date.MustParse("2025-03-01")}
	if got := CumulativeHistory(nil, rng); len(got) != 0 {
		t.Errorf("inverted range produced %d points", len(got))
	}
}
