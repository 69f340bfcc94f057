package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"

	"github.com/osrstools/geflip/renderer"
)

// searchCmd holds the flags for the 'search' subcommand.
type searchCmd struct {
	limit int
}

func (*searchCmd) Name() string     { return "search" }
func (*searchCmd) Synopsis() string { return "search the item catalog by name" }
func (*searchCmd) Usage() string {
	return `gfl search <query>

  Searches the item catalog by name substring, case-insensitive.
`
}

func (c *searchCmd) SetFlags(f *flag.FlagSet) {
	f.IntVar(&c.limit, "n", 20, "Maximum number of results.")
}

func (c *searchCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: expected a search query")
		return subcommands.ExitUsageError
	}
	query := strings.Join(f.Args(), " ")

	catalog, err := fetchCatalog(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	printMarkdown(renderer.ItemsMarkdown(catalog.Search(query, c.limit)))
	return subcommands.ExitSuccess
}
