package handlers

import (
	"net/http"
	"net/url"
	"strings"

	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/marketdata"
	"github.com/Pranshu-J/Open-Hedge/internal/models"
	"github.com/Pranshu-J/Open-Hedge/internal/query"
)

// StockDetailHandler serves one ticker's institutional ownership plus market
// data enrichment (weekly price series and company overview).
type StockDetailHandler struct {
	logger  *common.Logger
	queries *query.Client
	market  *marketdata.Client
}

// NewStockDetailHandler creates a new stock detail handler.
func NewStockDetailHandler(logger *common.Logger, queries *query.Client, market *marketdata.Client) *StockDetailHandler {
	return &StockDetailHandler{logger: logger, queries: queries, market: market}
}

// ServeHTTP handles GET /api/stocks/{ticker}.
// Ownership rows, price series and overview degrade independently: a failed
// enrichment never blanks the ownership table.
func (h *StockDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	raw, err := url.PathUnescape(strings.TrimPrefix(r.URL.Path, "/api/stocks/"))
	if err != nil || raw == "" {
		WriteError(w, http.StatusBadRequest, "missing ticker")
		return
	}
	symbol := strings.ToUpper(strings.TrimSpace(raw))

	ctx := r.Context()

	var owners []models.InstitutionalOwner
	err = h.queries.From(holdingsTable).
		Select("company_name,report_date,shares,value").
		Eq("symbol", symbol).
		Order("report_date", false).
		Order("value", false).
		Into(ctx, &owners)
	if err != nil {
		h.logger.Error().Err(err).Str("symbol", symbol).Msg("Ownership fetch failed")
		owners = []models.InstitutionalOwner{}
	}

	series, err := h.market.WeeklySeries(ctx, symbol)
	if err != nil {
		h.logger.Warn().Err(err).Str("symbol", symbol).Msg("Price series unavailable")
		series = nil
	}

	overview, err := h.market.Overview(ctx, symbol)
	if err != nil {
		h.logger.Warn().Err(err).Str("symbol", symbol).Msg("Overview unavailable")
		overview = nil
	}

	resp := map[string]interface{}{
		"symbol": symbol,
		"owners": owners,
	}
	if series != nil {
		resp["series"] = series
	}
	if overview != nil && !overview.IsZero() {
		resp["overview"] = overview
	}

	WriteJSON(w, http.StatusOK, resp)
}
