package renderer

import (
	"fmt"
	"strings"

	"github.com/osrstools/geflip"
)

// SummaryMarkdown renders the portfolio summary report.
func SummaryMarkdown(s geflip.Summary) string {
	var b strings.Builder

	fmt.Fprint(&b, "# Portfolio Summary\n\n")
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	row(&b, "**Open Value**", "**"+geflip.FormatGp(s.TotalValue)+"**")
	row(&b, "Unrealised Profit", signedGp(s.UnrealisedProfit))
	row(&b, "Realised Profit", signedGp(s.RealisedProfit))
	row(&b, "Tax Paid", geflip.FormatGp(s.TotalTaxPaid))
	row(&b, "Open Lots", fmt.Sprintf("%d", s.OpenLots))
	row(&b, "Closed Lots", fmt.Sprintf("%d", s.ClosedLots))

	return b.String()
}

// LotsMarkdown renders the individual lots behind a summary. Open lots are
// valued against the current sell price when one is known.
func LotsMarkdown(lots []geflip.Investment, sellPrices map[int]int64) string {
	var b strings.Builder

	var open, closed []geflip.Investment
	for _, lot := range lots {
		if lot.Open() {
			open = append(open, lot)
		} else {
			closed = append(closed, lot)
		}
	}

	if len(open) > 0 {
		fmt.Fprint(&b, "## Open Lots\n\n")
		fmt.Fprintln(&b, "| Item | Qty | Buy | Bought | Unrealised |")
		fmt.Fprintln(&b, "|:---|---:|---:|:---|---:|")
		for _, lot := range open {
			unrealised := "?"
			if sell, ok := sellPrices[lot.ItemID]; ok && sell > 0 {
				unrealised = signedGp((sell - lot.BuyPrice) * lot.Quantity)
			}
			row(&b,
				lot.ItemName,
				fmt.Sprintf("%d", lot.Quantity),
				geflip.FormatGp(lot.BuyPrice),
				lot.BuyDate.String(),
				unrealised,
			)
		}
		b.WriteString("\n")
	}

	if len(closed) > 0 {
		fmt.Fprint(&b, "## Closed Lots\n\n")
		fmt.Fprintln(&b, "| Item | Qty | Buy | Sell | Sold | Profit |")
		fmt.Fprintln(&b, "|:---|---:|---:|---:|:---|---:|")
		for _, lot := range closed {
			row(&b,
				lot.ItemName,
				fmt.Sprintf("%d", lot.Quantity),
				geflip.FormatGp(lot.BuyPrice),
				geflip.FormatGp(*lot.SellPrice),
				lot.SellDate.String(),
				signedGp(lot.Profit()),
			)
		}
	}

	if b.Len() == 0 {
		return "No lots recorded yet. Record a purchase with `gfl buy`.\n"
	}
	return b.String()
}
