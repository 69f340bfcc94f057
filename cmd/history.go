package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/osrstools/geflip"
	"github.com/osrstools/geflip/date"
	"github.com/osrstools/geflip/renderer"
)

// historyCmd holds the flags for the 'history' subcommand.
type historyCmd struct {
	period string
	from   string
	to     string
}

func (*historyCmd) Name() string     { return "history" }
func (*historyCmd) Synopsis() string { return "display cumulative realised profit over time" }
func (*historyCmd) Usage() string {
	return `gfl history [-p <period>] | [-from <date> -to <date>]

  Displays the cumulative realised profit curve, one row per day. The
  window is a period ending today (daily, weekly, monthly, quarterly,
  yearly) or an explicit date range. Profit realised before the window
  seeds the curve, so it never pretends the account started from zero.
`
}

func (c *historyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.period, "p", "monthly", "Window period ending today.")
	f.StringVar(&c.from, "from", "", "Window start (YYYY-MM-DD), overrides -p.")
	f.StringVar(&c.to, "to", "", "Window end (YYYY-MM-DD), defaults to today.")
}

func (c *historyCmd) window() (date.Range, error) {
	today := date.Today()
	if c.from == "" {
		p, err := date.ParsePeriod(c.period)
		if err != nil {
			return date.Range{}, err
		}
		return date.Range{From: today.StartOf(p), To: today}, nil
	}
	from, err := date.Parse(c.from)
	if err != nil {
		return date.Range{}, fmt.Errorf("parsing -from: %w", err)
	}
	to := today
	if c.to != "" {
		if to, err = date.Parse(c.to); err != nil {
			return date.Range{}, fmt.Errorf("parsing -to: %w", err)
		}
	}
	return date.Range{From: from, To: to}, nil
}

func (c *historyCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	rng, err := c.window()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	ledger, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	points := geflip.CumulativeHistory(ledger.Investments(), rng)
	printMarkdown(renderer.HistoryMarkdown(points))
	return subcommands.ExitSuccess
}
