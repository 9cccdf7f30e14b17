package server

import (
	"net/http"

	"github.com/Pranshu-J/Open-Hedge/internal/config"
	"github.com/Pranshu-J/Open-Hedge/internal/handlers"
)

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() *http.ServeMux {
	mux := http.NewServeMux()

	// Landing + catch-all: unknown non-API paths bounce back to the root.
	mux.HandleFunc("/", s.handleRoot)

	// Session
	mux.HandleFunc("/login", s.app.AuthHandler.HandleLogin)
	mux.HandleFunc("/auth/callback", s.app.AuthHandler.HandleCallback)
	mux.HandleFunc("/api/auth/logout", s.app.AuthHandler.HandleLogout)

	// Data views
	mux.Handle("/api/funds", s.cached(false, s.app.FundsHandler))
	mux.Handle("/api/funds/", s.cached(false, s.app.FundDetailHandler))
	mux.Handle("/api/stocks/search", s.app.StockSearchHandler)
	mux.Handle("/api/stocks/", s.cached(false, s.app.StockDetailHandler))
	mux.Handle("/api/trending", s.cached(false, s.app.TrendingHandler))

	// Watchlist (session-gated)
	mux.Handle("/api/portfolio", s.cached(true, s.app.PortfolioHandler))
	mux.Handle("/api/portfolio/", s.app.PortfolioHandler)

	mux.HandleFunc("/api/health", s.app.HealthHandler.ServeHTTP)
	mux.HandleFunc("/api/version", s.app.VersionHandler.ServeHTTP)

	// 404 handler for unmatched API routes
	mux.HandleFunc("/api/", s.handleNotFound)

	return mux
}

// handleRoot serves a small service descriptor at "/" and redirects every
// other unmatched path back to the root.
func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.Redirect(w, r, "/", http.StatusFound)
		return
	}

	handlers.WriteJSON(w, http.StatusOK, map[string]string{
		"service": "open-hedge",
		"version": config.GetVersion(),
	})
}

// handleNotFound returns a JSON 404 for unmatched API routes.
func (s *Server) handleNotFound(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusNotFound)
	w.Write([]byte(`{"error":"Not Found","message":"The requested endpoint does not exist"}`))
}
