package handlers

import (
	"net/http"
	"strings"

	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/models"
	"github.com/Pranshu-J/Open-Hedge/internal/query"
)

// searchRPC is the backend stored procedure doing relevance-ranked ticker
// lookup; ranking stays server-side.
const searchRPC = "search_securities"

// tickerSearchMinLength gates autocomplete queries; shorter terms return an
// empty option list without touching the backend.
const tickerSearchMinLength = 2

// StockSearchHandler serves ticker autocomplete.
type StockSearchHandler struct {
	logger  *common.Logger
	queries *query.Client
}

// NewStockSearchHandler creates a new stock search handler.
func NewStockSearchHandler(logger *common.Logger, queries *query.Client) *StockSearchHandler {
	return &StockSearchHandler{logger: logger, queries: queries}
}

// ServeHTTP handles GET /api/stocks/search?q=.
func (h *StockSearchHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) < tickerSearchMinLength {
		WriteJSON(w, http.StatusOK, map[string]interface{}{"results": []models.SecurityRef{}})
		return
	}

	var results []models.SecurityRef
	err := h.queries.RPC(r.Context(), searchRPC, map[string]string{"keyword": q}, &results)
	if err != nil {
		h.logger.Error().Err(err).Str("q", q).Msg("Ticker search failed")
		WriteJSON(w, http.StatusOK, map[string]interface{}{"results": []models.SecurityRef{}})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"results": models.DedupeSecurities(results),
	})
}
