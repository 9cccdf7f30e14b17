// Package app wires configuration, clients, storage and handlers together.
package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/Pranshu-J/Open-Hedge/internal/cache"
	"github.com/Pranshu-J/Open-Hedge/internal/common"
	"github.com/Pranshu-J/Open-Hedge/internal/config"
	"github.com/Pranshu-J/Open-Hedge/internal/handlers"
	"github.com/Pranshu-J/Open-Hedge/internal/interfaces"
	"github.com/Pranshu-J/Open-Hedge/internal/marketdata"
	"github.com/Pranshu-J/Open-Hedge/internal/portfolio"
	"github.com/Pranshu-J/Open-Hedge/internal/query"
	"github.com/Pranshu-J/Open-Hedge/internal/storage"
)

// Response cache sizing: filings data changes quarterly, so even a short TTL
// absorbs most duplicate reads.
const (
	responseCacheTTL     = 5 * time.Minute
	responseCacheEntries = 1000
)

// App holds all application components and dependencies.
type App struct {
	Config *config.Config
	Logger *common.Logger

	Queries   *query.Client
	Market    *marketdata.Client
	Storage   interfaces.StorageManager
	RespCache *cache.ResponseCache
	Profiles  *portfolio.Service

	// HTTP handlers
	HealthHandler      *handlers.HealthHandler
	VersionHandler     *handlers.VersionHandler
	AuthHandler        *handlers.AuthHandler
	FundsHandler       *handlers.FundsHandler
	FundDetailHandler  *handlers.FundDetailHandler
	StockSearchHandler *handlers.StockSearchHandler
	StockDetailHandler *handlers.StockDetailHandler
	TrendingHandler    *handlers.TrendingHandler
	PortfolioHandler   *handlers.PortfolioHandler
}

// New initializes the application with all dependencies.
func New(cfg *config.Config, logger *common.Logger) (*App, error) {
	a := &App{
		Config: cfg,
		Logger: logger,
	}

	env := strings.ToLower(strings.TrimSpace(cfg.Environment))
	if cfg.IsDevMode() {
		logger.Warn().Msg("RUNNING IN DEV MODE — JWT signature checks relaxed, do not use in production")
	} else if env != "prod" && env != "" {
		logger.Warn().
			Str("environment", cfg.Environment).
			Msg("unrecognized environment value, defaulting to prod behavior")
	}

	store, err := storage.NewStorageManager(logger, cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	a.Storage = store

	a.Queries = query.NewClient(cfg.Backend.URL, cfg.Backend.AnonKey, logger)

	a.Market = marketdata.NewClient(cfg.MarketData.URL, cfg.MarketData.APIKey, logger)
	a.Market.SetCache(store.KeyValueStorage())

	a.RespCache = cache.New(responseCacheTTL, responseCacheEntries)
	a.Profiles = portfolio.NewService(a.Queries, logger)

	a.initHandlers()

	logger.Info().Msg("application initialization complete")

	return a, nil
}

// initHandlers initializes all HTTP handlers.
func (a *App) initHandlers() {
	jwtSecret := []byte(a.Config.Auth.JWTSecret)

	a.HealthHandler = handlers.NewHealthHandler(a.Logger)
	a.VersionHandler = handlers.NewVersionHandler()
	a.AuthHandler = handlers.NewAuthHandler(a.Logger, a.Config.Backend.URL, a.Config.Auth.CallbackURL, jwtSecret, a.Profiles)
	a.FundsHandler = handlers.NewFundsHandler(a.Logger, a.Queries)
	a.FundDetailHandler = handlers.NewFundDetailHandler(a.Logger, a.Queries)
	a.StockSearchHandler = handlers.NewStockSearchHandler(a.Logger, a.Queries)
	a.StockDetailHandler = handlers.NewStockDetailHandler(a.Logger, a.Queries, a.Market)
	a.TrendingHandler = handlers.NewTrendingHandler(a.Logger, a.Queries)
	a.PortfolioHandler = handlers.NewPortfolioHandler(a.Logger, a.Profiles, a.Queries, a.RespCache, jwtSecret)
}

// Close releases application resources.
func (a *App) Close() error {
	if a.Storage != nil {
		return a.Storage.Close()
	}
	return nil
}
