package cmd

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/google/subcommands"
	"github.com/robfig/cron/v3"

	"github.com/osrstools/geflip"
	"github.com/osrstools/geflip/wiki"
)

// watchCmd holds the flags for the 'watch' subcommand.
type watchCmd struct {
	every time.Duration
}

func (*watchCmd) Name() string     { return "watch" }
func (*watchCmd) Synopsis() string { return "poll live prices and report firing alerts" }
func (*watchCmd) Usage() string {
	return `gfl watch [-every <duration>]

  Polls the price API on a schedule and logs every alert whose condition
  holds against the latest prices. Runs until interrupted. The ledger is
  reloaded on every tick, so alerts can be edited while watching.
`
}

func (c *watchCmd) SetFlags(f *flag.FlagSet) {
	f.DurationVar(&c.every, "every", 5*time.Minute, "Poll interval (minimum 1m, the API refreshes every minute).")
}

// tick fetches the latest prices and logs firing alerts.
func tick(ctx context.Context, client *wiki.Client) {
	ledger, err := LoadLedger()
	if err != nil {
		log.Printf("loading ledger: %v", err)
		return
	}
	alerts := ledger.Alerts()
	if len(alerts) == 0 {
		log.Print("no alerts configured")
		return
	}
	latest, err := client.Latest(ctx)
	if err != nil {
		log.Printf("fetching prices: %v", err)
		return
	}
	firing := geflip.CheckAlerts(alerts, latest)
	for _, a := range firing {
		lp := latest[a.ItemID]
		current := lp.High
		if a.Field == geflip.LowPrice {
			current = lp.Low
		}
		log.Printf("ALERT %s: %s price %s is %s target %s",
			a.ItemName, a.Field, geflip.FormatGp(current), a.Direction, geflip.FormatGp(a.Target))
	}
	if len(firing) == 0 {
		log.Printf("%d alert(s) quiet", len(alerts))
	}
}

func (c *watchCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if c.every < time.Minute {
		fmt.Fprintln(os.Stderr, "Error: -every must be at least 1m")
		return subcommands.ExitUsageError
	}
	client, err := NewClient()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}

	tick(ctx, client)

	scheduler := cron.New()
	if _, err := scheduler.AddFunc(fmt.Sprintf("@every %s", c.every), func() { tick(ctx, client) }); err != nil {
		fmt.Fprintf(os.Stderr, "Error scheduling: %v\n", err)
		return subcommands.ExitFailure
	}
	log.Printf("watching alerts every %s, Ctrl-C to stop", c.every)
	scheduler.Run()
	return subcommands.ExitSuccess
}
