package handlers

import (
	"net/http"

	"github.com/Pranshu-J/Open-Hedge/internal/analytics"
	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/models"
	"github.com/Pranshu-J/Open-Hedge/internal/query"
)

const trendingTable = "trending"

// TrendingHandler serves the trending-accumulation list: tickers with the
// most institutional movement this period, with sentiment aggregates.
type TrendingHandler struct {
	logger  *common.Logger
	queries *query.Client
}

// NewTrendingHandler creates a new trending handler.
func NewTrendingHandler(logger *common.Logger, queries *query.Client) *TrendingHandler {
	return &TrendingHandler{logger: logger, queries: queries}
}

// ServeHTTP handles GET /api/trending.
func (h *TrendingHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	var tickers []models.TrendingTicker
	err := h.queries.From(trendingTable).Into(r.Context(), &tickers)
	if err != nil {
		h.logger.Error().Err(err).Msg("Trending fetch failed")
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"trending": []analytics.TrendingSummary{},
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"trending": analytics.SummarizeAll(tickers),
	})
}
