package handlers

import (
	"context"
	"net/http"
	"net/url"
	"strings"

	"github.com/Pranshu-J/Open-Hedge/internal/analytics"
	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/models"
	"github.com/Pranshu-J/Open-Hedge/internal/query"
)

const holdingsTable = "holdings"

// FundDetailHandler serves one fund's latest holdings with computed weight
// and period-over-period change columns. Computed columns are not backend
// sort keys, so the full holding set for the period is returned in one batch
// and sorted client-side.
type FundDetailHandler struct {
	logger  *common.Logger
	queries *query.Client
}

// NewFundDetailHandler creates a new fund detail handler.
func NewFundDetailHandler(logger *common.Logger, queries *query.Client) *FundDetailHandler {
	return &FundDetailHandler{logger: logger, queries: queries}
}

// ServeHTTP handles GET /api/funds/{company}.
func (h *FundDetailHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, "GET") {
		return
	}

	company, err := url.PathUnescape(strings.TrimPrefix(r.URL.Path, "/api/funds/"))
	if err != nil || company == "" {
		WriteError(w, http.StatusBadRequest, "missing fund name")
		return
	}

	ctx := r.Context()

	var filings []models.Fund
	err = h.queries.From(filingsTable).
		Select("company_name,report_date,quarterly_return,filing_url,holdings_count").
		Eq("company_name", company).
		Order("report_date", false).
		Into(ctx, &filings)
	if err != nil {
		h.logger.Error().Err(err).Str("company", company).Msg("Filing history fetch failed")
		WriteError(w, http.StatusBadGateway, "fund lookup failed")
		return
	}
	if len(filings) == 0 {
		WriteError(w, http.StatusNotFound, "fund not found")
		return
	}
	latest := filings[0]

	current, err := h.holdingsFor(ctx, company, latest.ReportDate)
	if err != nil {
		h.logger.Error().Err(err).Str("company", company).Msg("Holdings fetch failed")
		WriteError(w, http.StatusBadGateway, "holdings fetch failed")
		return
	}

	// Change columns compare against the next-older filing; the oldest
	// filing on record marks every position new.
	var previous []models.Holding
	dates := make([]string, 0, len(filings))
	for _, f := range filings {
		dates = append(dates, f.ReportDate)
	}
	if prevDate, ok := analytics.PreviousReportDate(dates, latest.ReportDate); ok {
		previous, err = h.holdingsFor(ctx, company, prevDate)
		if err != nil {
			h.logger.Warn().Err(err).Str("company", company).Str("report_date", prevDate).
				Msg("Previous-period fetch failed, change columns omitted")
			previous = nil
		}
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"fund":     latest,
		"holdings": analytics.BuildHoldingRows(current, previous),
	})
}

func (h *FundDetailHandler) holdingsFor(ctx context.Context, company, reportDate string) ([]models.Holding, error) {
	var holdings []models.Holding
	err := h.queries.From(holdingsTable).
		Eq("company_name", company).
		Eq("report_date", reportDate).
		Order("value", false).
		Into(ctx, &holdings)
	return holdings, err
}
