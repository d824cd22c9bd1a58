package usecase

import (
	"context"
	"fmt"
	"strings"

	"stockwatch/internal/feature/stocks/domain/entity"
)

const (
	// DefaultPeriod is the lookback period used when a sync request omits one.
	DefaultPeriod = "1mo"
	// DefaultPageSize is the page size used when a list request omits one.
	DefaultPageSize = 20
	// MaxPageSize is the largest accepted page size.
	MaxPageSize = 100
	// DefaultSortBy is the sort field used when a list request omits one.
	DefaultSortBy = "date"
	// DefaultOrder is the sort direction used when a list request omits one.
	DefaultOrder = "desc"
)

// sortFields is the allow-list of sortable bar columns.
var sortFields = []string{"symbol", "date", "open", "high", "low", "close", "volume"}

// BarRepository abstracts the persistence layer for price bars.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type BarRepository interface {
	// UpsertBatch writes bars keyed by (symbol, date), replacing OHLCV
	// values of bars that already exist.
	UpsertBatch(ctx context.Context, bars []entity.Bar) error
	// Count returns the number of bars matching the optional symbol filter.
	Count(ctx context.Context, symbol string) (int64, error)
	// FindPage returns one page of bars ordered by sortBy/order.
	FindPage(ctx context.Context, symbol, sortBy, order string, limit, offset int) ([]entity.Bar, error)
}

// QuoteRepository abstracts the external market-data provider.
type QuoteRepository interface {
	// GetDailyBars fetches the daily bar series for symbol over the given
	// lookback period.
	GetDailyBars(ctx context.Context, symbol, period string) ([]entity.Bar, error)
}

// ListQuery describes a validated-on-use bar listing request.
type ListQuery struct {
	Symbol   string // optional filter, case-insensitive
	Page     int    // 1-based page number
	PageSize int
	SortBy   string
	Order    string // "asc" or "desc"
}

// Page is one page of bars with pagination totals.
type Page struct {
	Items      []entity.Bar
	Total      int64
	Page       int
	PageSize   int
	TotalPages int
}

// stocksUsecase implements the sync and list operations over bars.
type stocksUsecase struct {
	quotes QuoteRepository
	bars   BarRepository
}

// NewStocksUsecase creates a stocksUsecase with the given provider and store.
func NewStocksUsecase(quotes QuoteRepository, bars BarRepository) *stocksUsecase {
	return &stocksUsecase{quotes: quotes, bars: bars}
}

// Sync fetches the daily bar series for symbol from the provider and
// upserts every row keyed by (symbol, date). It returns the number of bars
// written.
//
// The batch is written in a single statement, but sync as a whole is not
// transactional across calls: concurrent syncs of the same symbol resolve
// per-bar with last-write-wins on the (symbol, date) key.
func (u *stocksUsecase) Sync(ctx context.Context, symbol, period string) (int, error) {
	symbol = strings.ToUpper(strings.TrimSpace(symbol))
	if period == "" {
		period = DefaultPeriod
	}

	bars, err := u.quotes.GetDailyBars(ctx, symbol, period)
	if err != nil {
		return 0, fmt.Errorf("fetch %s: %w", symbol, err)
	}
	if len(bars) == 0 {
		return 0, ErrNoData
	}

	for i := range bars {
		bars[i].Symbol = symbol
	}
	if err := u.bars.UpsertBatch(ctx, bars); err != nil {
		return 0, fmt.Errorf("store %s: %w", symbol, err)
	}
	return len(bars), nil
}

// List validates the query against the sort allow-list and pagination
// bounds, then returns exactly one page of matching bars together with the
// total match count and ceiling-divided page count.
//
// Page and PageSize must be within bounds as given; out-of-bounds values
// (zero included) are rejected, never clamped. Filling in defaults for
// omitted parameters is the transport layer's job. Invalid parameters are
// rejected before any query executes.
func (u *stocksUsecase) List(ctx context.Context, q ListQuery) (*Page, error) {
	if q.SortBy == "" {
		q.SortBy = DefaultSortBy
	}
	if q.Order == "" {
		q.Order = DefaultOrder
	}

	if !validSortField(q.SortBy) {
		return nil, fmt.Errorf("%w: sort_by must be one of %s",
			ErrInvalidSort, strings.Join(sortFields, ", "))
	}
	if q.Order != "asc" && q.Order != "desc" {
		return nil, fmt.Errorf("%w: order must be asc or desc", ErrInvalidSort)
	}
	if q.Page < 1 {
		return nil, fmt.Errorf("%w: page must be >= 1", ErrInvalidPage)
	}
	if q.PageSize < 1 || q.PageSize > MaxPageSize {
		return nil, fmt.Errorf("%w: page_size must be between 1 and %d", ErrInvalidPage, MaxPageSize)
	}

	symbol := strings.ToUpper(strings.TrimSpace(q.Symbol))

	total, err := u.bars.Count(ctx, symbol)
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(q.PageSize) - 1) / int64(q.PageSize))

	items := []entity.Bar{}
	if total > 0 {
		offset := (q.Page - 1) * q.PageSize
		items, err = u.bars.FindPage(ctx, symbol, q.SortBy, q.Order, q.PageSize, offset)
		if err != nil {
			return nil, err
		}
	}

	return &Page{
		Items:      items,
		Total:      total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: totalPages,
	}, nil
}

func validSortField(f string) bool {
	for _, s := range sortFields {
		if f == s {
			return true
		}
	}
	return false
}
