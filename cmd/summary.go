package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/osrstools/geflip"
	"github.com/osrstools/geflip/renderer"
)

// summaryCmd holds the flags for the 'summary' subcommand.
type summaryCmd struct {
	offline bool
}

func (*summaryCmd) Name() string     { return "summary" }
func (*summaryCmd) Synopsis() string { return "display the portfolio summary" }
func (*summaryCmd) Usage() string {
	return `gfl summary [-offline]

  Displays open and closed lots with realised and unrealised profit.
  Open lots are valued against live sell prices; with -offline (or when
  the price API is unreachable) they are valued at cost instead.
`
}

func (c *summaryCmd) SetFlags(f *flag.FlagSet) {
	f.BoolVar(&c.offline, "offline", false, "Skip the live price fetch, value open lots at cost.")
}

// currentSellPrices fetches the live instant-sell price per item held in
// the given lots. A nil map means "value at cost".
func currentSellPrices(ctx context.Context, lots []geflip.Investment) map[int]int64 {
	client, err := NewClient()
	if err != nil {
		return nil
	}
	latest, err := client.Latest(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: live prices unavailable (%v), valuing open lots at cost\n", err)
		return nil
	}
	prices := make(map[int]int64)
	for _, lot := range lots {
		if lp, ok := latest[lot.ItemID]; ok && lp.Low > 0 {
			prices[lot.ItemID] = lp.Low
		}
	}
	return prices
}

func (c *summaryCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	var prices map[int]int64
	if !c.offline {
		prices = currentSellPrices(ctx, ledger.OpenLots())
	}

	summary := geflip.Summarize(ledger.Investments(), prices)

	var b strings.Builder
	b.WriteString(renderer.SummaryMarkdown(summary))
	b.WriteString("\n")
	b.WriteString(renderer.LotsMarkdown(ledger.Investments(), prices))

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
