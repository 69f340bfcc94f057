package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/osrstools/geflip"
	"github.com/osrstools/geflip/date"
)

// sellCmd holds the flags for the 'sell' subcommand.
type sellCmd struct {
	date string
}

func (*sellCmd) Name() string     { return "sell" }
func (*sellCmd) Synopsis() string { return "record a sale against an open lot" }
func (*sellCmd) Usage() string {
	return `gfl sell [-d <date>] <lot> <qty>@<price> [<qty>@<price>...]

  Records one or more sale fills against an open lot. The lot is given by
  its id (a unique prefix is enough) or by the item name when only one
  open lot holds that item. Selling part of a lot splits it: each fill
  becomes a closed lot and the remainder stays open under the same id.
  Tax is deducted automatically.

Usage Examples:
$ gfl sell 9f3a 4@600 6@650
$ gfl sell "Nature rune" 500@110
`
}

func (c *sellCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.date, "d", date.Today().String(), "Sale date (YYYY-MM-DD).")
}

// findOpenLot locates the open lot designated by arg: an id prefix or an
// item name. Ambiguity is an error, never a guess.
func findOpenLot(ledger *geflip.Ledger, arg string) (geflip.Investment, error) {
	var matches []geflip.Investment
	for _, lot := range ledger.OpenLots() {
		if strings.HasPrefix(lot.ID, arg) || strings.EqualFold(lot.ItemName, arg) {
			matches = append(matches, lot)
		}
	}
	switch len(matches) {
	case 0:
		return geflip.Investment{}, fmt.Errorf("no open lot matches %q", arg)
	case 1:
		return matches[0], nil
	default:
		ids := make([]string, len(matches))
		for i, m := range matches {
			ids[i] = m.ID[:8]
		}
		return geflip.Investment{}, fmt.Errorf("%q is ambiguous, candidates: %s", arg, strings.Join(ids, ", "))
	}
}

func (c *sellCmd) Execute(_ context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() < 2 {
		fmt.Fprintln(os.Stderr, "Error: expected <lot> <qty>@<price>...")
		return subcommands.ExitUsageError
	}
	on, err := date.Parse(c.date)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error parsing date: %v\n", err)
		return subcommands.ExitUsageError
	}

	var sales []geflip.SaleEntry
	for _, arg := range f.Args()[1:] {
		qty, price, err := parseQtyAtPrice(arg)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return subcommands.ExitUsageError
		}
		sales = append(sales, geflip.SaleEntry{Quantity: qty, Price: price, Date: on})
	}

	ledger, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}
	ledger.Profile().TouchLogin(date.Today())

	lot, err := findOpenLot(ledger, f.Arg(0))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	result, err := ledger.ApplySplit(lot.ID, sales)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	var profit, tax int64
	for _, closed := range result.Closed {
		profit += closed.Profit()
		tax += closed.TaxPaid
		ledger.Profile().AwardFlipXP(closed.Profit())
	}

	if err := SaveLedger(ledger); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Printf("Recorded %d fill(s) on %s: profit %s, tax %s\n",
		len(result.Closed), lot.ItemName, geflip.FormatGp(profit), geflip.FormatGp(tax))
	if result.Remainder != nil {
		fmt.Printf("%d units remain open in lot %s\n", result.Remainder.Quantity, result.Remainder.ID[:8])
	}
	return subcommands.ExitSuccess
}
