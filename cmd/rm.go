package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/osrstools/geflip"
)

// findLot locates any lot, open or closed, by id prefix.
func findLot(ledger *geflip.Ledger, arg string) (geflip.Investment, error) {
	var matches []geflip.Investment
	for _, lot := range ledger.Investments() {
		if strings.HasPrefix(lot.ID, arg) {
			matches = append(matches, lot)
		}
	}
	switch len(matches) {
	case 0:
		return geflip.Investment{}, fmt.Errorf("no lot matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		return geflip.Investment{}, fmt.Errorf("%q matches %d lots, use a longer prefix", arg, len(matches))
	}
}

type rmCmd struct{}

func (*rmCmd) Name() string     { return "rm" }
func (*rmCmd) Synopsis() string { return "remove a lot from the ledger" }
func (*rmCmd) Usage() string {
	return `gfl rm <lot>

  Removes a lot (open or closed) from the ledger, typically a mistyped
  entry. The lot is given by its id or a unique prefix.
`
}

func (*rmCmd) SetFlags(*flag.FlagSet) {}

func (c *rmCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: expected a lot id")
		return subcommands.ExitUsageError
	}

	ledger, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	lot, err := findLot(ledger, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := ledger.DeleteInvestment(lot.ID); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	fmt.Printf("Removed lot %s (%s)\n", lot.ID[:8], lot.ItemName)
	return subcommands.ExitSuccess
}
