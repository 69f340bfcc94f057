// Package wiki is a client for the prices.runescape.wiki real-time price
// API. It supplies the item mapping, latest prices, windowed aggregates and
// per-item timeseries that the geflip pipeline consumes.
//
// The API asks for a descriptive User-Agent from every consumer; New
// refuses to build a client without one.
package wiki

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/osrstools/geflip"
)

// DefaultBaseURL is the public endpoint of the price API.
const DefaultBaseURL = "https://prices.runescape.wiki/api/v1/osrs"

// Client talks to the price API.
type Client struct {
	rc *resty.Client
}

// New returns a client identifying itself with the given User-Agent.
// The static item mapping is cached on disk with a daily expiry; the live
// price endpoints always hit the network.
func New(userAgent string) (*Client, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("the price API requires a descriptive User-Agent")
	}
	rc := resty.New().
		SetBaseURL(DefaultBaseURL).
		SetHeader("User-Agent", userAgent).
		SetTimeout(30 * time.Second).
		SetTransport(newDiskCache())
	return &Client{rc: rc}, nil
}

// latestEntry mirrors one /latest record. Sides are pointers: an item that
// has never insta-bought or insta-sold has a null there.
type latestEntry struct {
	High     *int64 `json:"high"`
	HighTime *int64 `json:"highTime"`
	Low      *int64 `json:"low"`
	LowTime  *int64 `json:"lowTime"`
}

type latestResponse struct {
	Data map[string]latestEntry `json:"data"`
}

// aggregateEntry mirrors one /1h or /24h record.
type aggregateEntry struct {
	AvgHighPrice    *int64 `json:"avgHighPrice"`
	HighPriceVolume int64  `json:"highPriceVolume"`
	AvgLowPrice     *int64 `json:"avgLowPrice"`
	LowPriceVolume  int64  `json:"lowPriceVolume"`
}

type aggregateResponse struct {
	Data      map[string]aggregateEntry `json:"data"`
	Timestamp int64                     `json:"timestamp"`
}

// PricePoint is one step of a per-item timeseries.
type PricePoint struct {
	Timestamp       int64  `json:"timestamp"`
	AvgHighPrice    *int64 `json:"avgHighPrice"`
	AvgLowPrice     *int64 `json:"avgLowPrice"`
	HighPriceVolume int64  `json:"highPriceVolume"`
	LowPriceVolume  int64  `json:"lowPriceVolume"`
}

type timeseriesResponse struct {
	Data []PricePoint `json:"data"`
}

func (c *Client) get(ctx context.Context, path string, out any, params map[string]string) error {
	resp, err := c.rc.R().
		SetContext(ctx).
		SetQueryParams(params).
		SetResult(out).
		Get(path)
	if err != nil {
		return fmt.Errorf("GET %s: %w", path, err)
	}
	if resp.IsError() {
		return fmt.Errorf("GET %s: %s", path, resp.Status())
	}
	return nil
}

// Mapping fetches the static item catalog.
func (c *Client) Mapping(ctx context.Context) ([]geflip.Item, error) {
	var items []geflip.Item
	if err := c.get(ctx, "/mapping", &items, nil); err != nil {
		return nil, err
	}
	return items, nil
}

// Latest fetches the most recent high/low price for every item.
func (c *Client) Latest(ctx context.Context) (map[int]geflip.LatestPrice, error) {
	var raw latestResponse
	if err := c.get(ctx, "/latest", &raw, nil); err != nil {
		return nil, err
	}
	out := make(map[int]geflip.LatestPrice, len(raw.Data))
	for key, e := range raw.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("latest: bad item id %q", key)
		}
		lp := geflip.LatestPrice{}
		if e.High != nil {
			lp.High = *e.High
		}
		if e.HighTime != nil {
			lp.HighTime = *e.HighTime
		}
		if e.Low != nil {
			lp.Low = *e.Low
		}
		if e.LowTime != nil {
			lp.LowTime = *e.LowTime
		}
		out[id] = lp
	}
	return out, nil
}

// Aggregate fetches a windowed average-price map. Window is "1h" or "24h".
func (c *Client) Aggregate(ctx context.Context, window string) (map[int]geflip.AggregatePrice, error) {
	if window != "1h" && window != "24h" {
		return nil, fmt.Errorf("unknown aggregate window %q", window)
	}
	var raw aggregateResponse
	if err := c.get(ctx, "/"+window, &raw, nil); err != nil {
		return nil, err
	}
	out := make(map[int]geflip.AggregatePrice, len(raw.Data))
	for key, e := range raw.Data {
		id, err := strconv.Atoi(key)
		if err != nil {
			return nil, fmt.Errorf("%s: bad item id %q", window, key)
		}
		ap := geflip.AggregatePrice{
			HighVolume: e.HighPriceVolume,
			LowVolume:  e.LowPriceVolume,
		}
		if e.AvgHighPrice != nil {
			ap.AvgHigh = *e.AvgHighPrice
		}
		if e.AvgLowPrice != nil {
			ap.AvgLow = *e.AvgLowPrice
		}
		out[id] = ap
	}
	return out, nil
}

// Timeseries fetches the price history of one item at the given timestep
// ("5m", "1h", "6h" or "24h").
func (c *Client) Timeseries(ctx context.Context, itemID int, timestep string) ([]PricePoint, error) {
	var raw timeseriesResponse
	params := map[string]string{
		"id":       strconv.Itoa(itemID),
		"timestep": timestep,
	}
	if err := c.get(ctx, "/timeseries", &raw, params); err != nil {
		return nil, err
	}
	return raw.Data, nil
}

// Snapshot fetches the latest prices plus both aggregate windows and
// assembles the consistent market snapshot the pipeline needs. Any failure
// fails the whole snapshot: the pure functions must never see a partially
// fetched one.
func (c *Client) Snapshot(ctx context.Context) (*geflip.Snapshot, error) {
	latest, err := c.Latest(ctx)
	if err != nil {
		return nil, err
	}
	hour, err := c.Aggregate(ctx, "1h")
	if err != nil {
		return nil, err
	}
	day, err := c.Aggregate(ctx, "24h")
	if err != nil {
		return nil, err
	}
	return &geflip.Snapshot{
		Taken:  time.Now(),
		Latest: latest,
		Hour:   hour,
		Day:    day,
	}, nil
}
