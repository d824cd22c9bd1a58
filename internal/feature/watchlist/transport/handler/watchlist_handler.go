// Package handler provides the HTTP handlers for the watchlist feature.
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"stockwatch/internal/api"
	"stockwatch/internal/feature/identity/transport/middleware"
	"stockwatch/internal/feature/watchlist/domain/entity"
	"stockwatch/internal/feature/watchlist/usecase"
)

// WatchlistUsecase defines the watchlist operations used by the handlers.
// Following Go convention: interfaces are defined by the consumer (handler),
// not the provider (usecase).
type WatchlistUsecase interface {
	Create(ctx context.Context, ownerID, name string, symbols []string) (*entity.Watchlist, error)
	Update(ctx context.Context, ownerID, id string, patch usecase.UpdatePatch) (*entity.Watchlist, error)
	List(ctx context.Context, ownerID string) ([]entity.Watchlist, error)
}

// WatchlistMetrics counts created watchlists. May be nil.
type WatchlistMetrics interface {
	IncrementWatchlistsCreated()
}

// WatchlistHandler processes HTTP requests for user watchlists. Every
// operation requires a resolved identity; the gate does not guarantee one,
// so each handler re-checks the context itself.
type WatchlistHandler struct {
	uc WatchlistUsecase
	wm WatchlistMetrics
}

// NewWatchlistHandler creates a WatchlistHandler with the given usecase and
// metrics.
func NewWatchlistHandler(uc WatchlistUsecase, wm WatchlistMetrics) *WatchlistHandler {
	return &WatchlistHandler{uc: uc, wm: wm}
}

// Create handles POST /watchlist.
// - 401 without a resolved identity
// - 400 when the body is missing a name, or the name is blank after trimming
// - 409 when the caller already has a watchlist with that name
func (h *WatchlistHandler) Create(c *gin.Context) {
	ident, ok := middleware.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "not authenticated"})
		return
	}

	var req api.CreateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create watchlist validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	w, err := h.uc.Create(c.Request.Context(), ident.ID, req.Name, req.Symbols)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrEmptyName):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: usecase.ErrEmptyName.Error()})
		case errors.Is(err, usecase.ErrDuplicateName):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: usecase.ErrDuplicateName.Error()})
		default:
			slog.Error("create watchlist failed", "owner", ident.ID, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		}
		return
	}
	if h.wm != nil {
		h.wm.IncrementWatchlistsCreated()
	}

	c.JSON(http.StatusCreated, toResponse(w))
}

// Update handles PATCH /watchlist/:id, a partial update of the caller's
// watchlist.
// - 401 without a resolved identity
// - 400 on a malformed id or body, or a rename to a blank name
// - 404 when the id does not exist under the caller (including ids that
//   exist under another owner)
// - 409 when a rename collides with the caller's other watchlists
func (h *WatchlistHandler) Update(c *gin.Context) {
	ident, ok := middleware.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "not authenticated"})
		return
	}

	id := c.Param("id")
	if _, err := uuid.Parse(id); err != nil {
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "malformed watchlist id"})
		return
	}

	var req api.UpdateWatchlistRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("update watchlist validation failed", "error", err, "remote_addr", c.ClientIP())
		c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: "invalid request"})
		return
	}

	w, err := h.uc.Update(c.Request.Context(), ident.ID, id,
		usecase.UpdatePatch{Name: req.Name, Symbols: req.Symbols})
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrNotFound):
			c.JSON(http.StatusNotFound, api.ErrorResponse{Error: usecase.ErrNotFound.Error()})
		case errors.Is(err, usecase.ErrEmptyName):
			c.JSON(http.StatusBadRequest, api.ErrorResponse{Error: usecase.ErrEmptyName.Error()})
		case errors.Is(err, usecase.ErrDuplicateName):
			c.JSON(http.StatusConflict, api.ErrorResponse{Error: usecase.ErrDuplicateName.Error()})
		default:
			slog.Error("update watchlist failed", "owner", ident.ID, "id", id, "error", err)
			c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		}
		return
	}

	c.JSON(http.StatusOK, toResponse(w))
}

// List handles GET /watchlist, returning exactly the caller's watchlists.
func (h *WatchlistHandler) List(c *gin.Context) {
	ident, ok := middleware.FromContext(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, api.ErrorResponse{Error: "not authenticated"})
		return
	}

	ws, err := h.uc.List(c.Request.Context(), ident.ID)
	if err != nil {
		slog.Error("list watchlists failed", "owner", ident.ID, "error", err)
		c.JSON(http.StatusInternalServerError, api.ErrorResponse{Error: err.Error()})
		return
	}

	out := make([]api.WatchlistResponse, 0, len(ws))
	for i := range ws {
		out = append(out, toResponse(&ws[i]))
	}
	c.JSON(http.StatusOK, out)
}

func toResponse(w *entity.Watchlist) api.WatchlistResponse {
	symbols := w.Symbols
	if symbols == nil {
		symbols = []string{}
	}
	return api.WatchlistResponse{ID: w.ID, Name: w.Name, Symbols: symbols}
}
