package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/osrstools/geflip"
	"github.com/osrstools/geflip/date"
)

// buyCmd holds the flags for the 'buy' subcommand.
type buyCmd struct {
	date string
}

func (*buyCmd) Name() string     { return "buy" }
func (*buyCmd) Synopsis() string { return "record a purchase as a new open lot" }
func (*buyCmd) Usage() string {
	return `gfl buy [-d <date>] <item> <qty>@<price>

  Records a purchase. The item is given by id or exact name, the price
  accepts the usual shorthands (600, 1.2k, 750k, 1.25m).

Usage Examples:
$ gfl buy 4151 1@1.2m
$ gfl buy "Nature rune" 500@104
`
}

func (c *buyCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Purchase date (YYYY-MM-DD).")
}

func (c *buyCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <item> <qty>@<price>")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}
	qty, price, err := parseQtyAtPrice(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	catalog, err := fetchCatalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	item, err := resolveItem(catalog, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	ledger, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger.Profile().TouchLogin(date.Today())

	lot := geflip.NewInvestment(*item, qty, price, on)
	if err := ledger.AddInvestment(lot); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded purchase of %d x %s at %s (lot %s)\n",
		qty, item.Name, geflip.FormatGp(price), lot.ID)
	return subcommands.ExitSuccess
}
