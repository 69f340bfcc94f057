package renderer

import (
	"fmt"
	"strings"

	"github.com/osrstools/geflip"
)

// AlertsMarkdown renders the configured alerts, and whether each currently
// fires against the given prices.
func AlertsMarkdown(alerts []geflip.PriceAlert, latest map[int]geflip.LatestPrice) string {
	if len(alerts) == 0 {
		return "No alerts configured. Add one with `gfl alert`.\n"
	}

	var b strings.Builder
	fmt.Fprint(&b, "# Price Alerts\n\n")
	fmt.Fprintln(&b, "| Item | Condition | Status |")
	fmt.Fprintln(&b, "|:---|:---|:---|")
	for _, a := range alerts {
		status := "waiting"
		if lp, ok := latest[a.ItemID]; ok && a.Check(lp) {
			status = "**FIRING**"
		}
		row(&b,
			a.ItemName,
			fmt.Sprintf("%s %s %s", a.Field, a.Direction, geflip.FormatGp(a.Target)),
			status,
		)
	}
	return b.String()
}

// ItemsMarkdown renders catalog search results.
func ItemsMarkdown(items []geflip.Item) string {
	if len(items) == 0 {
		return "No item matches.\n"
	}

	var b strings.Builder
	fmt.Fprintln(&b, "| ID | Item | Limit | High Alch | Members |")
	fmt.Fprintln(&b, "|---:|:---|---:|---:|:---|")
	for _, it := range items {
		members := ""
		if it.Members {
			members = "yes"
		}
		row(&b,
			fmt.Sprintf("%d", it.ID),
			it.Name,
			fmt.Sprintf("%d", it.BuyLimit),
			geflip.FormatLargeNumber(it.HighAlch),
			members,
		)
	}
	return b.String()
}
