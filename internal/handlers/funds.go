package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/models"
	"github.com/Pranshu-J/Open-Hedge/internal/query"
	"github.com/Pranshu-J/Open-Hedge/internal/view"
)

const (
	filingsTable = "filings"

	defaultPageSize = 30
	maxPageSize     = 50

	// Fund-name searches shorter than this return the unfiltered roster.
	fundSearchMinLength = 2
)

// fundSortKeys whitelists the roster columns that map to a backend order
// clause. Anything else falls back to the default sort.
var fundSortKeys = map[string]bool{
	"company_name":     true,
	"report_date":      true,
	"quarterly_return": true,
	"holdings_count":   true,
	"aum":              true,
}

// FundsHandler serves the fund roster: paginated, searchable, sortable.
type FundsHandler struct {
	logger  *common.Logger
	queries *query.Client
}

// NewFundsHandler creates a new funds handler.
func NewFundsHandler(logger *common.Logger, queries *query.Client) *FundsHandler {
	return &FundsHandler{logger: logger, queries: queries}
}

// ServeHTTP handles GET /api/funds.
// Query params: q (fund-name substring), sort, dir (asc|desc), offset, limit.
func (h *FundsHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	offset := parseIntParam(r, "offset", 0)
	limit := parseIntParam(r, "limit", defaultPageSize)
	if limit < 1 || limit > maxPageSize {
		limit = defaultPageSize
	}

	sortCol := r.URL.Query().Get("sort")
	if !fundSortKeys[sortCol] {
		sortCol = "company_name"
	}
	dir := view.ParseDirection(r.URL.Query().Get("dir"))
	ascending := dir == view.DirAsc || (dir == view.DirNone && sortCol == "company_name")

	b := h.queries.From(filingsTable).
		Order(sortCol, ascending).
		Range(offset, offset+limit-1)

	q := strings.TrimSpace(r.URL.Query().Get("q"))
	if len(q) >= fundSearchMinLength {
		b = b.ILike("company_name", q)
	}

	var funds []models.Fund
	if err := b.Into(r.Context(), &funds); err != nil {
		h.logger.Error().Err(err).Str("q", q).Msg("Fund roster fetch failed")
		WriteJSON(w, http.StatusOK, map[string]interface{}{
			"funds":     []models.Fund{},
			"exhausted": true,
		})
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"funds":     funds,
		"exhausted": len(funds) < limit,
	})
}

// parseIntParam reads a non-negative integer query parameter with a default.
func parseIntParam(r *http.Request, name string, def int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return def
	}
	return n
}
