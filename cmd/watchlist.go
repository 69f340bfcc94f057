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

type watchlistCmd struct{}

func (*watchlistCmd) Name() string     { return "watchlist" }
func (*watchlistCmd) Synopsis() string { return "manage the items to keep an eye on" }
func (*watchlistCmd) Usage() string {
	return `gfl watchlist              list watched items
gfl watchlist add <item>     add an item
gfl watchlist rm <item>      remove an item

  The watchlist restricts 'gfl analyze -watchlist' to hand-picked items.
`
}

func (*watchlistCmd) SetFlags(*flag.FlagSet) {}

func (c *watchlistCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	if f.NArg() == 0 {
		return c.list(ctx, ledger)
	}
	if f.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "Error: expected add|rm <item>")
		return subcommands.ExitUsageError
	}

	catalog, err := fetchCatalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	item, err := resolveItem(catalog, f.Arg(1))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	switch f.Arg(0) {
	case "add":
		if !ledger.Watchlist().Add(item.ID) {
			fmt.Printf("%s is already watched\n", item.Name)
			return subcommands.ExitSuccess
		}
		fmt.Printf("Watching %s\n", item.Name)
	case "rm":
		if !ledger.Watchlist().Remove(item.ID) {
			fmt.Fprintf(os.Stderr, "Error: %s is not watched\n", item.Name)
			return subcommands.ExitFailure
		}
		fmt.Printf("Stopped watching %s\n", item.Name)
	default:
		fmt.Fprintf(os.Stderr, "Error: unknown action %q, expected add or rm\n", f.Arg(0))
		return subcommands.ExitUsageError
	}

	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func (c *watchlistCmd) list(ctx context.Context, ledger *geflip.Ledger) subcommands.ExitStatus {
	ids := ledger.Watchlist().ItemIDs
	if len(ids) == 0 {
		fmt.Println("The watchlist is empty. Add items with 'gfl watchlist add <item>'.")
		return subcommands.ExitSuccess
	}
	catalog, err := fetchCatalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	var items []geflip.Item
	for _, id := range ids {
		if it := catalog.Get(id); it != nil {
			items = append(items, *it)
		}
	}
	printMarkdown(renderer.ItemsMarkdown(items))
	return subcommands.ExitSuccess
}
