package renderer

import (
	"fmt"
	"strings"

	"github.com/osrstools/geflip"
)

// CandidatesMarkdown renders the ranked flip candidates.
func CandidatesMarkdown(candidates []geflip.Candidate, strategy geflip.Strategy, budget int64) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Flip Candidates — %s, budget %s\n\n", strategy, geflip.FormatLargeNumber(budget))
	if len(candidates) == 0 {
		fmt.Fprintln(&b, "No item passed the filters. Try a larger budget or another strategy.")
		return b.String()
	}

	fmt.Fprintln(&b, "| # | Item | Buy | Sell | Margin | Qty | Profit | Velocity | Tier | 24h |")
	fmt.Fprintln(&b, "|---:|:---|---:|---:|---:|---:|---:|---:|:---|---:|")
	for i, c := range candidates {
		row(&b,
			fmt.Sprintf("%d", i+1),
			c.ItemName,
			geflip.FormatLargeNumber(c.BuyPrice),
			geflip.FormatLargeNumber(c.SellPrice),
			fmt.Sprintf("%s (%s)", signedGp(c.MarginGp), geflip.FormatPercent(c.MarginPct)),
			fmt.Sprintf("%d", c.Quantity),
			signedGp(c.PotentialProfit),
			fmt.Sprintf("%.1f", c.FlipVelocity),
			string(c.Tradability),
			geflip.FormatPercent(c.Change24h),
		)
	}
	return b.String()
}
