// Package marketdata implements the client for the third-party price/overview
// API. The API signals rate limits and bad symbols through payload shape, not
// HTTP status; those soft errors are substituted with fallback data so the
// stock detail view never hard-fails.
package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"time"

	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/interfaces"
)

// PricePoint is a single weekly close.
type PricePoint struct {
	Date  string  `json:"date"` // YYYY-MM-DD
	Close float64 `json:"close"`
}

// Series is a weekly price history for one symbol.
// Synthetic marks a generated fallback series substituted after a soft error.
type Series struct {
	Symbol    string       `json:"symbol"`
	Points    []PricePoint `json:"points"`
	Synthetic bool         `json:"synthetic"`
}

// Overview holds company fundamentals. Numeric fields arrive as strings from
// the API and are kept as such for display; MarketCap parses on demand.
type Overview struct {
	Symbol               string `json:"Symbol"`
	Name                 string `json:"Name"`
	Description          string `json:"Description"`
	Sector               string `json:"Sector"`
	Industry             string `json:"Industry"`
	MarketCapitalization string `json:"MarketCapitalization"`
	PERatio              string `json:"PERatio"`
	DividendYield        string `json:"DividendYield"`
	WeekHigh52           string `json:"52WeekHigh"`
	WeekLow52            string `json:"52WeekLow"`
}

// IsZero reports whether the overview carries no data (soft-error fallback).
func (o Overview) IsZero() bool {
	return o.Name == "" && o.Sector == "" && o.MarketCapitalization == ""
}

// MarketCap returns the market capitalization as a float, or 0 if unparseable.
func (o Overview) MarketCap() float64 {
	v, err := strconv.ParseFloat(o.MarketCapitalization, 64)
	if err != nil {
		return 0
	}
	return v
}

// Client communicates with the market-data HTTP API.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *common.Logger
	cache      interfaces.KeyValueStorage
}

// NewClient creates a new market-data client.
func NewClient(baseURL, apiKey string, logger *common.Logger) *Client {
	if logger == nil {
		logger = common.NewSilentLogger()
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: 15 * time.Second},
		logger:     logger,
	}
}

// SetCache enables the daily on-disk response cache. Successful payloads are
// cached keyed by endpoint, symbol, and date so repeat views of the same
// stock don't burn the API rate limit.
func (c *Client) SetCache(kv interfaces.KeyValueStorage) {
	c.cache = kv
}

// softError returns the soft-error message if the payload is a recognized
// rate-limit / invalid-symbol / no-data shape, and "" otherwise.
func softError(payload map[string]json.RawMessage) string {
	for _, key := range []string{"Note", "Information", "Error Message"} {
		if raw, ok := payload[key]; ok {
			var msg string
			if err := json.Unmarshal(raw, &msg); err == nil {
				return msg
			}
			return key
		}
	}
	return ""
}

// fetch performs a GET against the query endpoint and returns the raw body.
func (c *Client) fetch(ctx context.Context, function, symbol string) ([]byte, error) {
	params := url.Values{}
	params.Set("function", function)
	params.Set("symbol", symbol)
	params.Set("apikey", c.apiKey)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/query?"+params.Encode(), nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach market-data API: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, 4<<20))
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("market-data API returned %d: %s", resp.StatusCode, string(body))
	}
	return body, nil
}

// cacheKey builds a per-day cache key for an endpoint and symbol.
func cacheKey(function, symbol string) string {
	return "md:" + function + ":" + symbol + ":" + time.Now().UTC().Format("2006-01-02")
}

// cachedOrFetch returns a cached payload for today if present, otherwise
// fetches and caches. Soft-error payloads are never cached.
func (c *Client) cachedOrFetch(ctx context.Context, function, symbol string) ([]byte, error) {
	key := cacheKey(function, symbol)
	if c.cache != nil {
		if v, err := c.cache.Get(ctx, key); err == nil && v != "" {
			return []byte(v), nil
		}
	}

	body, err := c.fetch(ctx, function, symbol)
	if err != nil {
		return nil, err
	}

	var payload map[string]json.RawMessage
	if c.cache != nil {
		if jsonErr := json.Unmarshal(body, &payload); jsonErr == nil && softError(payload) == "" {
			if err := c.cache.Set(ctx, key, string(body)); err != nil {
				c.logger.Warn().Str("symbol", symbol).Err(err).Msg("failed to cache market-data response")
			}
		}
	}
	return body, nil
}

// WeeklySeries fetches the weekly close history for a symbol.
// A recognized soft-error payload yields a 52-point synthetic random-walk
// series tagged Synthetic, never an error, so the chart always renders.
func (c *Client) WeeklySeries(ctx context.Context, symbol string) (*Series, error) {
	body, err := c.cachedOrFetch(ctx, "TIME_SERIES_WEEKLY", symbol)
	if err != nil {
		return nil, err
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse weekly series: %w", err)
	}

	if msg := softError(payload); msg != "" {
		c.logger.Warn().Str("symbol", symbol).Str("reason", msg).Msg("market-data soft error, substituting synthetic series")
		return SyntheticSeries(symbol, time.Now().UTC()), nil
	}

	raw, ok := payload["Weekly Time Series"]
	if !ok {
		c.logger.Warn().Str("symbol", symbol).Msg("weekly series missing from payload, substituting synthetic series")
		return SyntheticSeries(symbol, time.Now().UTC()), nil
	}

	var weeks map[string]struct {
		Close string `json:"4. close"`
	}
	if err := json.Unmarshal(raw, &weeks); err != nil {
		return nil, fmt.Errorf("failed to parse weekly series entries: %w", err)
	}

	points := make([]PricePoint, 0, len(weeks))
	for date, entry := range weeks {
		closePrice, err := strconv.ParseFloat(entry.Close, 64)
		if err != nil {
			continue
		}
		points = append(points, PricePoint{Date: date, Close: closePrice})
	}
	sort.Slice(points, func(i, j int) bool { return points[i].Date < points[j].Date })

	return &Series{Symbol: symbol, Points: points}, nil
}

// Overview fetches company fundamentals for a symbol.
// Soft errors and empty payloads yield a zero Overview, never an error.
func (c *Client) Overview(ctx context.Context, symbol string) (*Overview, error) {
	body, err := c.cachedOrFetch(ctx, "OVERVIEW", symbol)
	if err != nil {
		return nil, err
	}

	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("failed to parse overview: %w", err)
	}

	if msg := softError(payload); msg != "" {
		c.logger.Warn().Str("symbol", symbol).Str("reason", msg).Msg("market-data soft error, returning empty overview")
		return &Overview{Symbol: symbol}, nil
	}

	var overview Overview
	if err := json.Unmarshal(body, &overview); err != nil {
		return nil, fmt.Errorf("failed to parse overview fields: %w", err)
	}
	if overview.Symbol == "" {
		overview.Symbol = symbol
	}
	return &overview, nil
}
