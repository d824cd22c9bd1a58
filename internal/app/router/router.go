// Package router assembles the HTTP route table.
package router

import (
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"

	stockhandler "stockwatch/internal/feature/stocks/transport/handler"
	watchlisthandler "stockwatch/internal/feature/watchlist/transport/handler"
	platformhandler "stockwatch/internal/platform/http/handler"
)

// NewRouter builds the gin engine with the authentication gate applied to
// every route except the open allow-list (health probe, metrics, and the
// public bar listing).
func NewRouter(gate gin.HandlerFunc, stocks *stockhandler.StockHandler,
	watchlists *watchlisthandler.WatchlistHandler, db *gorm.DB) *gin.Engine {
	r := gin.Default()
	r.Use(cors.Default())

	// Open routes: no credential required.
	r.GET("/health", platformhandler.Health(db))
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))
	r.GET("/stocks", stocks.List)

	// Gated routes: admin key or bearer credential required.
	auth := r.Group("/")
	auth.Use(gate)
	{
		auth.POST("/stocks/sync", stocks.Sync)
		auth.POST("/watchlist", watchlists.Create)
		auth.PATCH("/watchlist/:id", watchlists.Update)
		auth.GET("/watchlist", watchlists.List)
	}

	return r
}
