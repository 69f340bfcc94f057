package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/osrstools/geflip"
	"github.com/osrstools/geflip/advisor"
	"github.com/osrstools/geflip/renderer"
)

// analyzeCmd holds the flags for the 'analyze' subcommand.
type analyzeCmd struct {
	budget        string
	strategy      string
	weightsFile   string
	ignoreLimits  bool
	advise        bool
	watchlistOnly bool
}

func (*analyzeCmd) Name() string     { return "analyze" }
func (*analyzeCmd) Synopsis() string { return "scan the market for flip candidates" }
func (*analyzeCmd) Usage() string {
	return `gfl analyze -budget <gp> [-strategy <name>] [-advise]

  Fetches a live market snapshot, filters every tradeable item through
  liquidity, margin and budget checks, then scores and ranks the
  survivors. With -advise, a Gemini model picks its favourites among them
  (requires GEMINI_API_KEY).

Usage Examples:
$ gfl analyze -budget 10m
$ gfl analyze -budget 500k -strategy dip_buys -advise
`
}

func (c *analyzeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.budget, "budget", "1m", "Available gp, shorthands accepted (500k, 10m).")
	f.StringVar(&c.strategy, "strategy", string(geflip.Balanced),
		"One of: "+strategyNames())
	f.StringVar(&c.weightsFile, "weights", "", "YAML file overriding the scoring weights.")
	f.BoolVar(&c.ignoreLimits, "ignore-low-limits", false, "Keep items with a buy limit under 1000.")
	f.BoolVar(&c.advise, "advise", false, "Ask the AI advisor to pick among the ranked candidates.")
	f.BoolVar(&c.watchlistOnly, "watchlist", false, "Only consider items on the watchlist.")
}

func strategyNames() string {
	names := make([]string, len(geflip.Strategies))
	for i, s := range geflip.Strategies {
		names[i] = string(s)
	}
	return strings.Join(names, ", ")
}

func (c *analyzeCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	budget, err := geflip.ParseShorthandPrice(c.budget)
	if err != nil || budget <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid budget %q\n", c.budget)
		return subcommands.ExitUsageError
	}
	strategy, err := geflip.ParseStrategy(c.strategy)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	weights := geflip.DefaultWeights()
	if c.weightsFile != "" {
		if weights, err = geflip.LoadWeights(c.weightsFile); err != nil {
			fmt.Fprintf(os.Stderr, "Error loading weights: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	client, err := NewClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	catalog, err := fetchCatalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	snap, err := client.Snapshot(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error fetching market snapshot: %v\n", err)
		return subcommands.ExitFailure
	}

	items := catalog.Items()
	if c.watchlistOnly {
		ledger, err := LoadLedger()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
			return subcommands.ExitFailure
		}
		var kept []geflip.Item
		for _, it := range items {
			if ledger.Watchlist().Contains(it.ID) {
				kept = append(kept, it)
			}
		}
		items = kept
	}

	ranked, err := geflip.Analyze(items, snap, budget, strategy, c.ignoreLimits, weights)
	if err != nil && !errors.Is(err, geflip.ErrNoCandidates) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.CandidatesMarkdown(ranked, strategy, budget))

	if c.advise && len(ranked) > 0 {
		adv, err := advisor.New(ctx)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitFailure
		}
		suggestions, err := adv.Suggest(ctx, ranked, strategy)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error asking advisor: %v\n", err)
			return subcommands.ExitFailure
		}
		printMarkdown(renderer.AdviceMarkdown(suggestions))
	}
	return subcommands.ExitSuccess
}
