package marketdata

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"
)

func TestWeeklySeries_ParsesAndSortsAscending(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "TIME_SERIES_WEEKLY" {
			t.Errorf("unexpected function param: %s", got)
		}
		if got := r.URL.Query().Get("symbol"); got != "AAPL" {
			t.Errorf("unexpected symbol param: %s", got)
		}
		w.Write([]byte(`{
			"Meta Data": {"2. Symbol": "AAPL"},
			"Weekly Time Series": {
				"2026-08-21": {"4. close": "232.10"},
				"2026-08-07": {"4. close": "225.00"},
				"2026-08-14": {"4. close": "228.55"}
			}
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", nil)

	series, err := c.WeeklySeries(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("WeeklySeries failed: %v", err)
	}

	if series.Synthetic {
		t.Error("expected real series, got synthetic")
	}
	if len(series.Points) != 3 {
		t.Fatalf("expected 3 points, got %d", len(series.Points))
	}
	if series.Points[0].Date != "2026-08-07" || series.Points[2].Date != "2026-08-21" {
		t.Errorf("expected ascending date order, got %v", series.Points)
	}
	if series.Points[2].Close != 232.10 {
		t.Errorf("expected last close 232.10, got %v", series.Points[2].Close)
	}
}

func TestWeeklySeries_RateLimitFallsBackToSynthetic(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Rate limits arrive as HTTP 200 with a Note body
		w.Write([]byte(`{"Note": "Thank you for using our API. Our standard API rate limit is 25 requests per day."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", nil)

	series, err := c.WeeklySeries(context.Background(), "TSLA")
	if err != nil {
		t.Fatalf("WeeklySeries should not error on rate limit: %v", err)
	}

	if !series.Synthetic {
		t.Error("expected synthetic series after rate limit")
	}
	if len(series.Points) != 52 {
		t.Errorf("expected 52-point fallback window, got %d", len(series.Points))
	}
	for i, p := range series.Points {
		if p.Close <= 0 {
			t.Errorf("point %d has non-positive close %v", i, p.Close)
		}
	}
}

func TestWeeklySeries_InvalidSymbolShapeFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Error Message": "Invalid API call. Please retry or visit the documentation."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", nil)

	series, err := c.WeeklySeries(context.Background(), "NOTREAL")
	if err != nil {
		t.Fatalf("WeeklySeries should not error on invalid symbol: %v", err)
	}
	if !series.Synthetic || len(series.Points) != 52 {
		t.Errorf("expected 52-point synthetic series, got synthetic=%v len=%d", series.Synthetic, len(series.Points))
	}
}

func TestSyntheticSeries_DeterministicPerSymbol(t *testing.T) {
	end := time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC)

	a := SyntheticSeries("AAPL", end)
	b := SyntheticSeries("AAPL", end)
	other := SyntheticSeries("MSFT", end)

	if len(a.Points) != 52 {
		t.Fatalf("expected 52 points, got %d", len(a.Points))
	}
	for i := range a.Points {
		if a.Points[i] != b.Points[i] {
			t.Fatalf("expected identical series for same symbol, diverged at %d", i)
		}
	}
	if a.Points[0].Close == other.Points[0].Close && a.Points[51].Close == other.Points[51].Close {
		t.Error("expected different symbols to produce different walks")
	}
	if a.Points[51].Date != "2026-08-28" {
		t.Errorf("expected series to end at 2026-08-28, got %s", a.Points[51].Date)
	}
}

func TestOverview_ParsesFundamentals(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("function"); got != "OVERVIEW" {
			t.Errorf("unexpected function param: %s", got)
		}
		w.Write([]byte(`{
			"Symbol": "AAPL",
			"Name": "Apple Inc",
			"Sector": "TECHNOLOGY",
			"MarketCapitalization": "2800000000000",
			"PERatio": "29.1"
		}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", nil)

	overview, err := c.Overview(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Overview failed: %v", err)
	}
	if overview.Name != "Apple Inc" {
		t.Errorf("expected name Apple Inc, got %s", overview.Name)
	}
	if overview.MarketCap() != 2800000000000 {
		t.Errorf("expected parsed market cap, got %v", overview.MarketCap())
	}
	if overview.IsZero() {
		t.Error("expected non-zero overview")
	}
}

func TestOverview_SoftErrorReturnsEmpty(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"Information": "API key limit reached."}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", nil)

	overview, err := c.Overview(context.Background(), "AAPL")
	if err != nil {
		t.Fatalf("Overview should not error on soft error: %v", err)
	}
	if !overview.IsZero() {
		t.Errorf("expected zero overview, got %+v", overview)
	}
	if overview.Symbol != "AAPL" {
		t.Errorf("expected symbol preserved, got %s", overview.Symbol)
	}
}

// memoryKV is a minimal KeyValueStorage for cache tests.
type memoryKV struct {
	mu sync.Mutex
	m  map[string]string
}

func newMemoryKV() *memoryKV { return &memoryKV{m: make(map[string]string)} }

func (s *memoryKV) Get(_ context.Context, key string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.m[key]
	if !ok {
		return "", fmt.Errorf("key not found: %s", key)
	}
	return v, nil
}

func (s *memoryKV) Set(_ context.Context, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.m[key] = value
	return nil
}

func (s *memoryKV) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.m, key)
	return nil
}

func (s *memoryKV) GetAll(_ context.Context) (map[string]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make(map[string]string, len(s.m))
	for k, v := range s.m {
		out[k] = v
	}
	return out, nil
}

func TestWeeklySeries_CachesSuccessfulPayload(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"Weekly Time Series": {"2026-08-21": {"4. close": "100.00"}}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", nil)
	c.SetCache(newMemoryKV())

	for i := 0; i < 3; i++ {
		if _, err := c.WeeklySeries(context.Background(), "AAPL"); err != nil {
			t.Fatalf("WeeklySeries call %d failed: %v", i, err)
		}
	}

	if calls != 1 {
		t.Errorf("expected 1 upstream call with cache enabled, got %d", calls)
	}
}

func TestWeeklySeries_DoesNotCacheSoftErrors(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.Write([]byte(`{"Note": "rate limited"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "test-key", nil)
	c.SetCache(newMemoryKV())

	for i := 0; i < 2; i++ {
		if _, err := c.WeeklySeries(context.Background(), "AAPL"); err != nil {
			t.Fatalf("WeeklySeries call %d failed: %v", i, err)
		}
	}

	if calls != 2 {
		t.Errorf("expected soft errors to bypass cache, got %d calls", calls)
	}
}
