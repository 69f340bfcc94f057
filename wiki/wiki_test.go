package wiki

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-resty/resty/v2"
)

// testClient returns a client pointed at a fake price API.
func testClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return &Client{rc: resty.New().SetBaseURL(srv.URL)}
}

func TestNewRequiresUserAgent(t *testing.T) {
	if _, err := New(""); err == nil {
		t.Fatal("New(\"\") should fail")
	}
	c, err := New("geflip-test - example@example.com")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if c == nil {
		t.Fatal("New returned a nil client")
	}
}

func TestLatest(t *testing.T) {
	body := `{"data":{
		"2":{"high":166,"highTime":1717000000,"low":164,"lowTime":1717000050},
		"4151":{"high":null,"highTime":null,"low":1200000,"lowTime":1717000100}
	}}`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/latest" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})

	latest, err := c.Latest(context.Background())
	if err != nil {
		t.Fatalf("Latest: %v", err)
	}
	if len(latest) != 2 {
		t.Fatalf("got %d entries, want 2", len(latest))
	}
	cb := latest[2]
	if cb.High != 166 || cb.Low != 164 {
		t.Errorf("item 2: got high=%d low=%d", cb.High, cb.Low)
	}
	if !cb.Known() {
		t.Error("item 2 should have both sides known")
	}
	whip := latest[4151]
	if whip.High != 0 || whip.Low != 1200000 {
		t.Errorf("item 4151: got high=%d low=%d", whip.High, whip.Low)
	}
	if whip.Known() {
		t.Error("item 4151 has a null side, must not be Known")
	}
}

func TestLatestBadItemID(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"not-a-number":{"high":1,"low":1}}}`))
	})
	if _, err := c.Latest(context.Background()); err == nil {
		t.Fatal("non-numeric item id should fail")
	}
}

func TestAggregate(t *testing.T) {
	body := `{"data":{
		"2":{"avgHighPrice":165,"highPriceVolume":500000,"avgLowPrice":163,"lowPriceVolume":480000},
		"13190":{"avgHighPrice":null,"highPriceVolume":0,"avgLowPrice":7990000,"lowPriceVolume":3}
	},"timestamp":1717000000}`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/24h" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})

	day, err := c.Aggregate(context.Background(), "24h")
	if err != nil {
		t.Fatalf("Aggregate: %v", err)
	}
	cb := day[2]
	if cb.AvgHigh != 165 || cb.HighVolume != 500000 || cb.AvgLow != 163 || cb.LowVolume != 480000 {
		t.Errorf("item 2: got %+v", cb)
	}
	if got := cb.TotalVolume(); got != 980000 {
		t.Errorf("TotalVolume = %d, want 980000", got)
	}
	bond := day[13190]
	if bond.AvgHigh != 0 || bond.AvgLow != 7990000 {
		t.Errorf("item 13190: got %+v", bond)
	}
}

func TestAggregateRejectsUnknownWindow(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		t.Error("no request should be made for an unknown window")
	})
	if _, err := c.Aggregate(context.Background(), "7d"); err == nil {
		t.Fatal("unknown window should fail")
	}
}

func TestMapping(t *testing.T) {
	body := `[
		{"id":2,"name":"Cannonball","examine":"Ammo for the Dwarf Cannon.","members":true,"limit":11000,"lowalch":2,"highalch":3,"value":5,"icon":"Cannonball.png"},
		{"id":4151,"name":"Abyssal whip","examine":"A weapon from the abyss.","members":true,"limit":70,"lowalch":48000,"highalch":72000,"value":120001,"icon":"Abyssal whip.png"}
	]`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/mapping" {
			t.Errorf("unexpected path %q", r.URL.Path)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})

	items, err := c.Mapping(context.Background())
	if err != nil {
		t.Fatalf("Mapping: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("got %d items, want 2", len(items))
	}
	if items[0].Name != "Cannonball" || items[0].BuyLimit != 11000 {
		t.Errorf("item 0: got %+v", items[0])
	}
	if items[1].ID != 4151 || items[1].HighAlch != 72000 {
		t.Errorf("item 1: got %+v", items[1])
	}
}

func TestTimeseries(t *testing.T) {
	body := `{"data":[
		{"timestamp":1717000000,"avgHighPrice":166,"avgLowPrice":164,"highPriceVolume":1000,"lowPriceVolume":900},
		{"timestamp":1717000300,"avgHighPrice":null,"avgLowPrice":165,"highPriceVolume":0,"lowPriceVolume":400}
	]}`
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("id"); got != "2" {
			t.Errorf("id = %q, want 2", got)
		}
		if got := r.URL.Query().Get("timestep"); got != "5m" {
			t.Errorf("timestep = %q, want 5m", got)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(body))
	})

	points, err := c.Timeseries(context.Background(), 2, "5m")
	if err != nil {
		t.Fatalf("Timeseries: %v", err)
	}
	if len(points) != 2 {
		t.Fatalf("got %d points, want 2", len(points))
	}
	if points[0].Timestamp != 1717000000 || *points[0].AvgHighPrice != 166 {
		t.Errorf("point 0: got %+v", points[0])
	}
	if points[1].AvgHighPrice != nil {
		t.Error("point 1 avgHighPrice should be null")
	}
}

func TestSnapshotFailsClosed(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/latest", "/1h":
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"data":{}}`))
		default:
			http.Error(w, "boom", http.StatusBadGateway)
		}
	})
	if _, err := c.Snapshot(context.Background()); err == nil {
		t.Fatal("a failing window must fail the whole snapshot")
	}
}

func TestSnapshot(t *testing.T) {
	c := testClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/latest":
			w.Write([]byte(`{"data":{"2":{"high":166,"highTime":1,"low":164,"lowTime":1}}}`))
		case "/1h", "/24h":
			w.Write([]byte(`{"data":{"2":{"avgHighPrice":165,"highPriceVolume":10,"avgLowPrice":163,"lowPriceVolume":9}},"timestamp":1}`))
		default:
			http.NotFound(w, r)
		}
	})
	snap, err := c.Snapshot(context.Background())
	if err != nil {
		t.Fatalf("Snapshot: %v", err)
	}
	if snap.Latest[2].High != 166 {
		t.Errorf("latest high = %d, want 166", snap.Latest[2].High)
	}
	if snap.Hour[2].AvgHigh != 165 || snap.Day[2].LowVolume != 9 {
		t.Error("aggregate windows not populated")
	}
	if snap.Taken.IsZero() {
		t.Error("Taken must be stamped")
	}
}

func TestDiskCacheOnlyCachesMapping(t *testing.T) {
	cache := newDiskCache()
	mapping, _ := http.NewRequest("GET", "https://example.org/api/v1/osrs/mapping", nil)
	latest, _ := http.NewRequest("GET", "https://example.org/api/v1/osrs/latest", nil)
	post, _ := http.NewRequest("POST", "https://example.org/api/v1/osrs/mapping", nil)

	if !cache.cacheable(mapping) {
		t.Error("GET /mapping must be cacheable")
	}
	if cache.cacheable(latest) {
		t.Error("GET /latest must never be cached")
	}
	if cache.cacheable(post) {
		t.Error("non-GET requests must never be cached")
	}
}
