package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"github.com/osrstools/geflip"
	"github.com/osrstools/geflip/renderer"
)

// alertCmd holds the flags for the 'alert' subcommand.
type alertCmd struct {
	field string
	rm    bool
}

func (*alertCmd) Name() string     { return "alert" }
func (*alertCmd) Synopsis() string { return "manage price alerts" }
func (*alertCmd) Usage() string {
	return `gfl alert                           list alerts
gfl alert <item> above|below <price>  set an alert (one per item)
gfl alert -rm <item>                  remove an alert

  Alerts are checked by 'gfl watch' and shown against live prices when
  listing. Setting an alert on an item replaces its previous one.

Usage Examples:
$ gfl alert "Abyssal whip" below 1.1m
$ gfl alert 4151 above 1.3m -field high
`
}

func (c *alertCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.field, "field", "high", "Price side to watch: high or low.")
	f.BoolVar(&c.rm, "rm", false, "Remove the item's alert.")
}

func (c *alertCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	switch {
	case c.rm:
		return c.remove(ctx, f, ledger)
	case f.NArg() == 0:
		return c.list(ctx, ledger)
	default:
		return c.set(ctx, f, ledger)
	}
}

func (c *alertCmd) list(ctx context.Context, ledger *geflip.Ledger) subcommands.ExitStatus {
	var latest map[int]geflip.LatestPrice
	if client, err := NewClient(); err == nil {
		if l, err := client.Latest(ctx); err == nil {
			latest = l
		}
	}
	printMarkdown(renderer.AlertsMarkdown(ledger.Alerts(), latest))
	return subcommands.ExitSuccess
}

func (c *alertCmd) set(ctx context.Context, f *flag.FlagSet, ledger *geflip.Ledger) subcommands.ExitStatus {
	if f.NArg() != 3 {
		fmt.Fprintln(os.Stderr, "Error: expected <item> above|below <price>")
		return subcommands.ExitUsageError
	}
	dir, err := geflip.ParseDirection(f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	field, err := geflip.ParsePriceField(c.field)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	target, err := geflip.ParseShorthandPrice(f.Arg(2))
	if err != nil || target <= 0 {
		fmt.Fprintf(os.Stderr, "Error: invalid price %q\n", f.Arg(2))
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

	ledger.SetAlert(geflip.NewPriceAlert(*item, target, dir, field))
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Alert set: %s %s %s %s\n", item.Name, field, dir, geflip.FormatGp(target))
	return subcommands.ExitSuccess
}

func (c *alertCmd) remove(ctx context.Context, f *flag.FlagSet, ledger *geflip.Ledger) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected the item of the alert to remove")
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
	if !ledger.DeleteAlert(item.ID) {
		fmt.Fprintf(os.Stderr, "Error: no alert on %s\n", item.Name)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Alert on %s removed\n", item.Name)
	return subcommands.ExitSuccess
}
