package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/google/subcommands"
)

// profileCmd holds the flags for the 'profile' subcommand.
type profileCmd struct {
	username string
}

func (*profileCmd) Name() string     { return "profile" }
func (*profileCmd) Synopsis() string { return "show flipping level, XP and login streak" }
func (*profileCmd) Usage() string {
	return `gfl profile [-u <username>]

  Shows the flipper profile: level, XP earned from recorded flips and the
  daily login streak. -u sets the display name.
`
}

func (c *profileCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.username, "u", "", "Set the display name.")
}

func (c *profileCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	ledger, err := LoadLedger()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading ledger: %v\n", err)
		return subcommands.ExitFailure
	}

	p := ledger.Profile()
	if c.username != "" {
		p.Username = c.username
	}

	var b strings.Builder
	name := p.Username
	if name == "" {
		name = "anonymous flipper"
	}
	fmt.Fprintf(&b, "# %s\n\n", name)
	fmt.Fprintln(&b, "| | |")
	fmt.Fprintln(&b, "|:---|---:|")
	fmt.Fprintf(&b, "| Level | %d |\n", p.Level)
	fmt.Fprintf(&b, "| XP | %d |\n", p.XP)
	fmt.Fprintf(&b, "| Login streak | %d day(s) |\n", p.LoginStreak)
	fmt.Fprintf(&b, "| Tokens | %d |\n", p.Tokens)
	var badges []string
	if p.Developer {
		badges = append(badges, "developer")
	}
	if p.BetaTester {
		badges = append(badges, "beta tester")
	}
	if p.Premium {
		badges = append(badges, "premium")
	}
	if len(badges) > 0 {
		fmt.Fprintf(&b, "| Badges | %s |\n", strings.Join(badges, ", "))
	}

	if c.username != "" {
		if err := SaveLedger(ledger); err != nil {
			fmt.Fprintf(os.Stderr, "Error saving ledger: %v\n", err)
			return subcommands.ExitFailure
		}
	}

	printMarkdown(b.String())
	return subcommands.ExitSuccess
}
