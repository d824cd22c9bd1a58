package main

import (
	"log"
	"os"

	"stockwatch/internal/app/router"
	"stockwatch/internal/feature/identity/adapters/authapi"
	authmw "stockwatch/internal/feature/identity/transport/middleware"
	stocksadapters "stockwatch/internal/feature/stocks/adapters"
	"stockwatch/internal/feature/stocks/adapters/quoteapi"
	stockhandler "stockwatch/internal/feature/stocks/transport/handler"
	stocksusecase "stockwatch/internal/feature/stocks/usecase"
	watchlistadapters "stockwatch/internal/feature/watchlist/adapters"
	watchlisthandler "stockwatch/internal/feature/watchlist/transport/handler"
	watchlistusecase "stockwatch/internal/feature/watchlist/usecase"
	"stockwatch/internal/platform/db"
	platformhttp "stockwatch/internal/platform/http"
	"stockwatch/internal/platform/metrics"
)

func main() {
	// db
	gormDB := db.OpenDB()

	// Metrics
	m := metrics.New()

	// External clients
	authCfg := authapi.LoadConfig()
	if authCfg.BaseURL == "" {
		log.Println("[WARN] AUTH_API_URL is not set. Token validation will fail.")
	}
	validator := authapi.NewClient(authCfg, platformhttp.NewHTTPClient(authCfg.Timeout))

	quoteCfg := quoteapi.LoadConfig()
	quotes := quoteapi.NewClient(quoteCfg, platformhttp.NewHTTPClient(quoteCfg.Timeout))

	// Repository
	barRepo := stocksadapters.NewBarRepository(gormDB)
	watchlistRepo := watchlistadapters.NewWatchlistRepository(gormDB)

	// Usecase
	stocksUC := stocksusecase.NewStocksUsecase(quotes, barRepo)
	watchlistUC := watchlistusecase.NewWatchlistUsecase(watchlistRepo)

	// Handler
	stocksH := stockhandler.NewStockHandler(stocksUC, m)
	watchlistH := watchlisthandler.NewWatchlistHandler(watchlistUC, m)

	// Request gate
	gateCfg := authmw.LoadConfig()
	if len(gateCfg.AdminAPIKeys) == 0 {
		log.Println("[WARN] ADMIN_API_KEYS is not set. The sync trigger will be unable to authenticate.")
	}
	gate := authmw.AuthRequired(gateCfg, validator, m)

	r := router.NewRouter(gate, stocksH, watchlistH, gormDB)

	addr := ":8080"
	if p := os.Getenv("PORT"); p != "" {
		addr = ":" + p
	}
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
