package renderer

import (
	"strings"
	"testing"

	"github.com/osrstools/geflip"
	"github.com/osrstools/geflip/advisor"
	"github.com/osrstools/geflip/date"
)

func TestSummaryMarkdown(t *testing.T) {
	got := SummaryMarkdown(geflip.Summary{
		TotalValue:       1500000,
		UnrealisedProfit: 120000,
		RealisedProfit:   -4500,
		TotalTaxPaid:     880,
		OpenLots:         3,
		ClosedLots:       2,
	})

	for _, want := range []string{
		"# Portfolio Summary",
		"1,500,000 gp",
		"+120,000 gp",
		"-4,500 gp", // losses keep their own sign
		"880 gp",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("summary misses %q:\n%s", want, got)
		}
	}
}

func TestLotsMarkdown(t *testing.T) {
	sell := int64(650)
	sold := date.MustParse("2026-08-20")
	lots := []geflip.Investment{
		{ID: "a", ItemID: 2, ItemName: "Cannonball", Quantity: 1000, BuyPrice: 160, BuyDate: date.MustParse("2026-08-19")},
		{ID: "b", ItemID: 561, ItemName: "Nature rune", Quantity: 40, BuyPrice: 520, BuyDate: date.MustParse("2026-08-18"),
			SellPrice: &sell, SellDate: &sold, TaxPaid: 520},
	}
	got := LotsMarkdown(lots, map[int]int64{2: 170})

	if !strings.Contains(got, "## Open Lots") || !strings.Contains(got, "## Closed Lots") {
		t.Fatalf("missing sections:\n%s", got)
	}
	// open lot: (170-160)*1000
	if !strings.Contains(got, "+10,000 gp") {
		t.Errorf("open lot unrealised missing:\n%s", got)
	}
	// closed lot: (650-520)*40 - 520
	if !strings.Contains(got, "+4,680 gp") {
		t.Errorf("closed lot profit missing:\n%s", got)
	}
}

func TestLotsMarkdownUnknownPrice(t *testing.T) {
	lots := []geflip.Investment{
		{ID: "a", ItemID: 2, ItemName: "Cannonball", Quantity: 10, BuyPrice: 160, BuyDate: date.Today()},
	}
	got := LotsMarkdown(lots, nil)
	if !strings.Contains(got, "| ?") && !strings.Contains(got, "? |") {
		t.Errorf("unknown price should render as ?:\n%s", got)
	}
}

func TestLotsMarkdownEmpty(t *testing.T) {
	got := LotsMarkdown(nil, nil)
	if !strings.Contains(got, "gfl buy") {
		t.Errorf("empty portfolio should hint at gfl buy:\n%s", got)
	}
}

func TestHistoryMarkdown(t *testing.T) {
	points := []geflip.DailyProfit{
		{Date: date.MustParse("2026-08-01"), Cumulative: 0},
		{Date: date.MustParse("2026-08-02"), Cumulative: 50000},
		{Date: date.MustParse("2026-08-03"), Cumulative: -10000},
	}
	got := HistoryMarkdown(points)

	if !strings.Contains(got, "from 2026-08-01 to 2026-08-03") {
		t.Errorf("range missing:\n%s", got)
	}
	if !strings.Contains(got, "+50,000 gp") || !strings.Contains(got, "-10,000 gp") {
		t.Errorf("cumulative values missing:\n%s", got)
	}
	if !strings.Contains(got, "█") || !strings.Contains(got, "▒") {
		t.Errorf("bars missing, negative days use a distinct glyph:\n%s", got)
	}

	if got := HistoryMarkdown(nil); !strings.Contains(got, "No history") {
		t.Errorf("empty history:\n%s", got)
	}
}

func TestCandidatesMarkdown(t *testing.T) {
	cands := []geflip.Candidate{{
		ItemID: 4151, ItemName: "Abyssal whip",
		BuyPrice: 1200000, SellPrice: 1250000,
		MarginGp: 25000, MarginPct: 2.08,
		Quantity: 8, PotentialProfit: 200000,
		FlipVelocity: 12.3, Tradability: geflip.Good,
		Change24h: -1.4,
	}}
	got := CandidatesMarkdown(cands, geflip.Balanced, 10_000_000)

	for _, want := range []string{"balanced", "10.0m", "Abyssal whip", "1.2m", "+200,000 gp", "Good"} {
		if !strings.Contains(got, want) {
			t.Errorf("candidates table misses %q:\n%s", want, got)
		}
	}

	empty := CandidatesMarkdown(nil, geflip.Balanced, 1000)
	if !strings.Contains(empty, "No item passed") {
		t.Errorf("empty candidates:\n%s", empty)
	}
}

func TestAdviceMarkdown(t *testing.T) {
	got := AdviceMarkdown([]advisor.Suggestion{{
		ItemID:     2,
		ItemName:   "Cannonball",
		Why:        "Steady two-sided volume and a tax-free margin.",
		Confidence: advisor.ConfidenceHigh,
		Risk:       advisor.RiskLow,
	}})
	for _, want := range []string{"## Cannonball", "tax-free margin", "confidence: high", "risk: low"} {
		if !strings.Contains(got, want) {
			t.Errorf("advice misses %q:\n%s", want, got)
		}
	}
}

func TestAlertsMarkdown(t *testing.T) {
	alerts := []geflip.PriceAlert{
		geflip.NewPriceAlert(geflip.Item{ID: 2, Name: "Cannonball"}, 180, geflip.Above, geflip.HighPrice),
		geflip.NewPriceAlert(geflip.Item{ID: 4151, Name: "Abyssal whip"}, 1000000, geflip.Below, geflip.LowPrice),
	}
	latest := map[int]geflip.LatestPrice{
		2: {High: 185, HighTime: 1, Low: 180, LowTime: 1}, // fires
		// whip has no price on record, must stay waiting
	}
	got := AlertsMarkdown(alerts, latest)

	if !strings.Contains(got, "**FIRING**") {
		t.Errorf("triggered alert not marked:\n%s", got)
	}
	if strings.Count(got, "waiting") != 1 {
		t.Errorf("exactly one alert should be waiting:\n%s", got)
	}

	if got := AlertsMarkdown(nil, nil); !strings.Contains(got, "No alerts") {
		t.Errorf("empty alerts:\n%s", got)
	}
}

func TestItemsMarkdown(t *testing.T) {
	got := ItemsMarkdown([]geflip.Item{
		{ID: 4151, Name: "Abyssal whip", BuyLimit: 70, HighAlch: 72000, Members: true},
	})
	for _, want := range []string{"4151", "Abyssal whip", "70", "72.0k", "yes"} {
		if !strings.Contains(got, want) {
			t.Errorf("items table misses %q:\n%s", want, got)
		}
	}
}
