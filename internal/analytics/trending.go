package analytics

import (
	"strings"

	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/models"
)

// TrendingSummary aggregates the per-institution changes behind one trending
// ticker into the headline numbers the trending table shows.
type TrendingSummary struct {
	Symbol             string  `json:"symbol"`
	Name               string  `json:"name"`
	ActiveInstitutions int     `json:"active_institutions"`
	Increased          int     `json:"increased"`
	Decreased          int     `json:"decreased"`
	NetShareFlow       int64   `json:"net_share_flow"`
	NetValueFlow       float64 `json:"net_value_flow"`
	SentimentRatio     float64 `json:"sentiment_ratio"`

	NetShareFlowDisplay string `json:"net_share_flow_display"`
	NetValueFlowDisplay string `json:"net_value_flow_display"`
}

// Summarize folds a ticker's institution-level changes into a TrendingSummary.
// Institutions with a zero share change held their position and do not count
// as active, nor toward either side of the sentiment ratio. The ratio is
// increased/(increased+decreased), 0.5 when no institution moved.
func Summarize(t models.TrendingTicker) TrendingSummary {
	s := TrendingSummary{Symbol: t.Symbol, Name: t.Name, SentimentRatio: 0.5}
	for _, c := range t.Changes {
		if c.ShareChange == 0 {
			continue
		}
		s.ActiveInstitutions++
		s.NetShareFlow += c.ShareChange
		s.NetValueFlow += c.ValueChange
		if c.ShareChange > 0 {
			s.Increased++
		} else {
			s.Decreased++
		}
	}
	if moved := s.Increased + s.Decreased; moved > 0 {
		s.SentimentRatio = float64(s.Increased) / float64(moved)
	}
	s.NetShareFlowDisplay = common.FormatSignedShares(s.NetShareFlow)
	s.NetValueFlowDisplay = common.FormatSignedMoney(s.NetValueFlow)
	return s
}

// SummarizeAll summarizes every trending ticker, preserving input order.
func SummarizeAll(tickers []models.TrendingTicker) []TrendingSummary {
	out := make([]TrendingSummary, 0, len(tickers))
	for _, t := range tickers {
		out = append(out, Summarize(t))
	}
	return out
}

// SentimentFor looks up the sentiment ratio for one symbol in a trending set.
// Used to paint the sentiment indicator next to watchlist positions; ok is
// false when the symbol is not trending this period.
func SentimentFor(symbol string, tickers []models.TrendingTicker) (float64, bool) {
	for _, t := range tickers {
		if strings.EqualFold(t.Symbol, symbol) {
			return Summarize(t).SentimentRatio, true
		}
	}
	return 0, false
}
