package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"strconv"

	"github.com/google/subcommands"
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/osrstools/geflip"
	"github.com/osrstools/geflip/date"
)

// serveCmd holds the flags for the 'serve' subcommand.
type serveCmd struct {
	addr string
}

func (*serveCmd) Name() string     { return "serve" }
func (*serveCmd) Synopsis() string { return "serve the portfolio and analysis over HTTP" }
func (*serveCmd) Usage() string {
	return `gfl serve [-addr <host:port>]

  Serves a JSON API over the ledger and the live market:

    GET /health
    GET /api/summary
    GET /api/history?period=monthly
    GET /api/candidates?budget=10m&strategy=balanced
    GET /api/timeseries?id=4151&step=1h
    GET /api/search?q=rune
    GET /api/alerts
    GET /api/watchlist
`
}

func (c *serveCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.addr, "addr", ":8787", "Listen address.")
}

func (c *serveCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	e := echo.New()
	e.HideBanner = true
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	api := e.Group("/api")
	api.GET("/summary", handleSummary)
	api.GET("/history", handleHistory)
	api.GET("/candidates", handleCandidates)
	api.GET("/timeseries", handleTimeseries)
	api.GET("/search", handleSearch)
	api.GET("/alerts", handleAlerts)
	api.GET("/watchlist", handleWatchlist)

	if err := e.Start(c.addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

func handleSummary(c echo.Context) error {
	ledger, err := LoadLedger()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	prices := currentSellPrices(c.Request().Context(), ledger.OpenLots())
	s := geflip.Summarize(ledger.Investments(), prices)
	return c.JSON(http.StatusOK, map[string]any{
		"totalValue":       s.TotalValue,
		"unrealisedProfit": s.UnrealisedProfit,
		"realisedProfit":   s.RealisedProfit,
		"totalTaxPaid":     s.TotalTaxPaid,
		"openLots":         s.OpenLots,
		"closedLots":       s.ClosedLots,
		"lots":             ledger.Investments(),
	})
}

func handleHistory(c echo.Context) error {
	period := c.QueryParam("period")
	if period == "" {
		period = "monthly"
	}
	p, err := date.ParsePeriod(period)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}
	ledger, err := LoadLedger()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	today := date.Today()
	rng := date.Range{From: today.StartOf(p), To: today}
	return c.JSON(http.StatusOK, geflip.CumulativeHistory(ledger.Investments(), rng))
}

func handleCandidates(c echo.Context) error {
	budget, err := geflip.ParseShorthandPrice(c.QueryParam("budget"))
	if err != nil || budget <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "budget is required, e.g. budget=10m")
	}
	strategyName := c.QueryParam("strategy")
	if strategyName == "" {
		strategyName = string(geflip.Balanced)
	}
	strategy, err := geflip.ParseStrategy(strategyName)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	ctx := c.Request().Context()
	client, err := NewClient()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	catalog, err := fetchCatalog(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	snap, err := client.Snapshot(ctx)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}

	ranked, err := geflip.Analyze(catalog.Items(), snap, budget, strategy, false, geflip.DefaultWeights())
	if errors.Is(err, geflip.ErrNoCandidates) {
		return c.JSON(http.StatusOK, []geflip.Candidate{})
	}
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ranked)
}

func handleTimeseries(c echo.Context) error {
	id, err := strconv.Atoi(c.QueryParam("id"))
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "id is required, e.g. id=4151")
	}
	step := c.QueryParam("step")
	if step == "" {
		step = "1h"
	}
	client, err := NewClient()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	points, err := client.Timeseries(c.Request().Context(), id, step)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, points)
}

func handleSearch(c echo.Context) error {
	query := c.QueryParam("q")
	if query == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "q is required")
	}
	catalog, err := fetchCatalog(c.Request().Context())
	if err != nil {
		return echo.NewHTTPError(http.StatusBadGateway, err.Error())
	}
	return c.JSON(http.StatusOK, catalog.Search(query, 20))
}

func handleAlerts(c echo.Context) error {
	ledger, err := LoadLedger()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ledger.Alerts())
}

func handleWatchlist(c echo.Context) error {
	ledger, err := LoadLedger()
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, err.Error())
	}
	return c.JSON(http.StatusOK, ledger.Watchlist())
}
