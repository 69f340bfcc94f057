// Package cmd implements the CLI application to manage Grand Exchange
// flips.
package cmd

import (
	"context"
	"flag"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/subcommands"

	"github.com/osrstools/geflip"
	"github.com/osrstools/geflip/wiki"
)

// Commands lists every subcommand. A main package registers them all and
// executes the user-selected one.
var Commands = []subcommands.Command{
	&buyCmd{},
	&sellCmd{},
	&rmCmd{},
	&summaryCmd{},
	&historyCmd{},
	&analyzeCmd{},
	&searchCmd{},
	&alertCmd{},
	&watchlistCmd{},
	&profileCmd{},
	&fmtCmd{},
	&watchCmd{},
	&serveCmd{},
	&topicCmd{},
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var ledgerFile = flag.String("ledger-file", "geflip.jsonl", "Path to the ledger file (JSONL format)")

// userAgent identifies this tool to the price API, as its terms require.
const userAgent = "gfl - OSRS flipping ledger - github.com/osrstools/geflip"

// LoadLedger reads the app ledger, an empty one when none exists yet.
func LoadLedger() (*geflip.Ledger, error) {
	return geflip.LoadLedger(*ledgerFile)
}

// SaveLedger writes the app ledger back, atomically.
func SaveLedger(l *geflip.Ledger) error {
	return geflip.SaveLedger(*ledgerFile, l)
}

// NewClient builds the price API client.
func NewClient() (*wiki.Client, error) {
	return wiki.New(userAgent)
}

// fetchCatalog loads the item catalog from the price API (disk-cached
// daily).
func fetchCatalog(ctx context.Context) (*geflip.Catalog, error) {
	client, err := NewClient()
	if err != nil {
		return nil, err
	}
	items, err := client.Mapping(ctx)
	if err != nil {
		return nil, fmt.Errorf("fetching item catalog: %w", err)
	}
	return geflip.NewCatalog(items), nil
}

// resolveItem finds an item by numeric id or by exact name
// (case-insensitive).
func resolveItem(catalog *geflip.Catalog, arg string) (*geflip.Item, error) {
	if id, err := strconv.Atoi(arg); err == nil {
		if it := catalog.Get(id); it != nil {
			return it, nil
		}
		return nil, fmt.Errorf("no item with id %d", id)
	}
	if it := catalog.ByName(arg); it != nil {
		return it, nil
	}
	// Help with near misses.
	if matches := catalog.Search(arg, 5); len(matches) > 0 {
		names := make([]string, len(matches))
		for i, m := range matches {
			names[i] = m.Name
		}
		return nil, fmt.Errorf("no item named %q, did you mean: %s", arg, strings.Join(names, ", "))
	}
	return nil, fmt.Errorf("no item named %q", arg)
}

// parseQtyAtPrice parses a "qty@price" argument, where price accepts the
// usual k/m shorthands: "4@600", "40@1.2m".
func parseQtyAtPrice(arg string) (qty, price int64, err error) {
	lhs, rhs, found := strings.Cut(arg, "@")
	if !found {
		return 0, 0, fmt.Errorf("expected qty@price, got %q", arg)
	}
	qty, err = strconv.ParseInt(lhs, 10, 64)
	if err != nil || qty <= 0 {
		return 0, 0, fmt.Errorf("invalid quantity in %q", arg)
	}
	price, err = geflip.ParseShorthandPrice(rhs)
	if err != nil {
		return 0, 0, fmt.Errorf("invalid price in %q: %w", arg, err)
	}
	if price <= 0 {
		return 0, 0, fmt.Errorf("price in %q must be positive", arg)
	}
	return qty, price, nil
}
