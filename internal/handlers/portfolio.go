package handlers

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strings"

	"github.com/Pranshu-J/Open-Hedge/internal/analytics"
	"github.com/Pranshu-J/Open-Hedge/internal/cache"
	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/models"
	"github.com/Pranshu-J/Open-Hedge/internal/portfolio"
	"github.com/Pranshu-J/Open-Hedge/internal/query"
)

// PortfolioHandler serves the watchlist view and its CRUD. Every route is
// session-gated: without a valid session cookie the handler returns the 401
// locked state before touching the backend.
type PortfolioHandler struct {
	logger    *common.Logger
	service   *portfolio.Service
	queries   *query.Client
	respCache *cache.ResponseCache
	jwtSecret []byte
}

// NewPortfolioHandler creates a new portfolio handler.
func NewPortfolioHandler(logger *common.Logger, service *portfolio.Service, queries *query.Client, respCache *cache.ResponseCache, jwtSecret []byte) *PortfolioHandler {
	return &PortfolioHandler{
		logger:    logger,
		service:   service,
		queries:   queries,
		respCache: respCache,
		jwtSecret: jwtSecret,
	}
}

// positionView is a watchlist row with cost basis and trending sentiment
// merged in.
type positionView struct {
	models.Position
	CostBasis        float64  `json:"cost_basis"`
	CostBasisDisplay string   `json:"cost_basis_display"`
	SentimentRatio   *float64 `json:"sentiment_ratio,omitempty"`
}

// ServeHTTP dispatches /api/portfolio and /api/portfolio/{id}.
func (h *PortfolioHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	loggedIn, claims := IsLoggedIn(r, h.jwtSecret)
	if !loggedIn {
		WriteError(w, http.StatusUnauthorized, "login required")
		return
	}

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		h.handleGet(w, r, claims)
	case http.MethodPost:
		h.handleAdd(w, r, claims)
	case http.MethodDelete:
		h.handleRemove(w, r, claims)
	default:
		http.Error(w, "Method not allowed", http.StatusMethodNotAllowed)
	}
}

func (h *PortfolioHandler) handleGet(w http.ResponseWriter, r *http.Request, claims *JWTClaims) {
	profile, err := h.service.EnsureProfile(r.Context(), claims.Sub, claims.Email)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", claims.Sub).Msg("Portfolio fetch failed")
		WriteError(w, http.StatusBadGateway, "portfolio unavailable")
		return
	}

	h.writePortfolio(w, r, profile)
}

func (h *PortfolioHandler) handleAdd(w http.ResponseWriter, r *http.Request, claims *JWTClaims) {
	var input struct {
		Symbol   string `json:"symbol"`
		Name     string `json:"name"`
		CUSIP    string `json:"cusip"`
		Shares   string `json:"shares"`
		AvgPrice string `json:"avg_price"`
	}
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<16))
	if err != nil || json.Unmarshal(body, &input) != nil {
		WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile, err := h.service.AddPosition(r.Context(), claims.Sub, portfolio.AddPositionInput{
		Symbol:   input.Symbol,
		Name:     input.Name,
		CUSIP:    input.CUSIP,
		Shares:   input.Shares,
		AvgPrice: input.AvgPrice,
	})
	if err != nil {
		var verr *portfolio.ValidationError
		if errors.As(err, &verr) {
			WriteError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Error().Err(err).Str("user_id", claims.Sub).Msg("Add position failed")
		WriteError(w, http.StatusBadGateway, "could not save position")
		return
	}

	h.invalidate()
	h.writePortfolio(w, r, profile)
}

func (h *PortfolioHandler) handleRemove(w http.ResponseWriter, r *http.Request, claims *JWTClaims) {
	id := strings.TrimPrefix(r.URL.Path, "/api/portfolio/")
	if id == "" || strings.Contains(id, "/") {
		WriteError(w, http.StatusBadRequest, "missing position id")
		return
	}

	profile, err := h.service.RemovePosition(r.Context(), claims.Sub, id)
	if err != nil {
		h.logger.Error().Err(err).Str("user_id", claims.Sub).Str("position_id", id).Msg("Remove position failed")
		WriteError(w, http.StatusBadGateway, "could not remove position")
		return
	}

	h.invalidate()
	h.writePortfolio(w, r, profile)
}

// writePortfolio renders the profile's positions with trending sentiment
// merged in. A trending fetch failure degrades to positions without
// sentiment rather than an error.
func (h *PortfolioHandler) writePortfolio(w http.ResponseWriter, r *http.Request, profile *models.UserProfile) {
	var tickers []models.TrendingTicker
	if err := h.queries.From(trendingTable).Into(r.Context(), &tickers); err != nil {
		h.logger.Warn().Err(err).Msg("Trending fetch failed, sentiment omitted")
		tickers = nil
	}

	positions := make([]positionView, 0, len(profile.Portfolio))
	for _, p := range profile.Portfolio {
		pv := positionView{Position: p}
		pv.CostBasis = p.CostBasis()
		pv.CostBasisDisplay = common.FormatMoney(pv.CostBasis)
		if ratio, ok := analytics.SentimentFor(p.Symbol, tickers); ok {
			pv.SentimentRatio = &ratio
		}
		positions = append(positions, pv)
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"user_id":   profile.UserID,
		"positions": positions,
	})
}

func (h *PortfolioHandler) invalidate() {
	if h.respCache != nil {
		h.respCache.InvalidatePrefix("/api/portfolio")
	}
}
