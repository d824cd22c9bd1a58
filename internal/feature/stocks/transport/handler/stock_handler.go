// Package handler provides the HTTP handlers for the stocks feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"stockwatch/internal/api"
	"stockwatch/internal/feature/stocks/usecase"
)

// StocksUsecase defines the stocks operations used by the handlers.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type StocksUsecase interface {
	Sync(ctx context.Context, symbol, period string) (int, error)
	List(ctx context.Context, q usecase.ListQuery) (*usecase.Page, error)
}

// SyncMetrics records sync throughput. May be nil.
type SyncMetrics interface {
	ObserveSync(start time.Time, bars int)
}

// StockHandler processes HTTP requests for price bar data.
type StockHandler struct {
	uc StocksUsecase
	sm SyncMetrics
}

// NewStockHandler creates a StockHandler with the given usecase and metrics.
func NewStockHandler(uc StocksUsecase, sm SyncMetrics) *StockHandler {
	return &StockHandler{uc: uc, sm: sm}
}

// Sync handles POST /stocks/sync: it fetches the symbol's daily series from
// the provider and upserts every bar.
// - 400 when the body is missing a symbol
// - 404 when the provider returns no bars
// - 500 with the underlying message on provider or store failure
func (h *StockHandler) Sync(c *gin.Context) {
	var req api.SyncRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("sync validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	start := time.Now()
	n, err := h.uc.Sync(c.Request.Context(), req.Symbol, req.Period)
	if err != nil {
		if errors.Is(err, usecase.ErrNoData) {
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: usecase.ErrNoData.Error()})
			return
		}
		slog.Error("sync failed", "symbol", req.Symbol, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}
	if h.sm != nil {
		h.sm.ObserveSync(start, n)
	}

	slog.Info("sync complete", "symbol", req.Symbol, "bars", n)
	c.JSON(http.StatusOK, api.SyncResponse{Symbol: req.Symbol, Status: "synced", Bars: n})
}

// List handles GET /stocks: a filtered, sorted, paginated bar listing.
//
// Query parameters: symbol (optional filter), page (>= 1), page_size
// (1..max), sort_by (allow-listed column), order (asc|desc). Invalid
// parameters are rejected with 400 before any query runs.
func (h *StockHandler) List(c *gin.Context) {
	page, err := strconv.Atoi(c.DefaultQuery("page", "1"))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "page must be an integer"})
		return
	}
	pageSize, err := strconv.Atoi(c.DefaultQuery("page_size", strconv.Itoa(usecase.DefaultPageSize)))
	if err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "page_size must be an integer"})
		return
	}

	q := usecase.ListQuery{
		Symbol:   c.Query("symbol"),
		Page:     page,
		PageSize: pageSize,
		SortBy:   c.DefaultQuery("sort_by", usecase.DefaultSortBy),
		Order:    c.DefaultQuery("order", usecase.DefaultOrder),
	}

	result, err := h.uc.List(c.Request.Context(), q)
	if err != nil {
		if errors.Is(err, usecase.ErrInvalidSort) || errors.Is(err, usecase.ErrInvalidPage) {
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: err.Error()})
			return
		}
		slog.Error("list bars failed", "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	items := make([]api.BarResponse, 0, len(result.Items))
	for _, b := range result.Items {
		items = append(items, api.BarResponse{
			Symbol: b.Symbol,
			Date:   b.Date,
			Open:   b.Open,
			High:   b.High,
			Low:    b.Low,
			Close:  b.Close,
			Volume: b.Volume,
		})
	}

	c.JSON(http.StatusOK, api.PagedBarsResponse{
		Items:      items,
		Total:      result.Total,
		Page:       result.Page,
		PageSize:   result.PageSize,
		TotalPages: result.TotalPages,
	})
}
