// Package api defines the shared HTTP request/response types for the service.
package api

// ErrorResponse is the standard error envelope returned by all endpoints.
type ErrorResponse struct {
	Error string `json:"error"`
}

// MessageResponse is a generic success envelope for endpoints without a payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// SyncRequest is the body of POST /stocks/sync.
type SyncRequest struct {
	Symbol string `json:"symbol" binding:"required"`
	Period string `json:"period"`
}

// SyncResponse reports the outcome of a sync operation.
type SyncResponse struct {
	Symbol string `json:"symbol"`
	Status string `json:"status"`
	Bars   int    `json:"bars"`
}

// BarResponse is one daily price bar as returned by GET /stocks.
type BarResponse struct {
	Symbol string  `json:"symbol"`
	Date   string  `json:"date"`
	Open   float64 `json:"open"`
	High   float64 `json:"high"`
	Low    float64 `json:"low"`
	Close  float64 `json:"close"`
	Volume int64   `json:"volume"`
}

// PagedBarsResponse is the paginated envelope for GET /stocks.
type PagedBarsResponse struct {
	Items      []BarResponse `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// CreateWatchlistRequest is the body of POST /watchlist.
type CreateWatchlistRequest struct {
	Name    string   `json:"name" binding:"required"`
	Symbols []string `json:"symbols"`
}

// UpdateWatchlistRequest is the body of PATCH /watchlist/:id.
// Nil fields are left untouched by the update.
type UpdateWatchlistRequest struct {
	Name    *string   `json:"name"`
	Symbols *[]string `json:"symbols"`
}

// WatchlistResponse is one watchlist as returned to its owner.
type WatchlistResponse struct {
	ID      string   `json:"id"`
	Name    string   `json:"name"`
	Symbols []string `json:"symbols"`
}
