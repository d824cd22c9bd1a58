// Package usecase implements the business logic for the stocks feature.
package usecase

import "errors"

var (
	// ErrNoData is returned when the market-data provider has no bars for
	// the requested symbol and period.
	ErrNoData = errors.New("stock data not found")

	// ErrInvalidSort is returned when the requested sort field or order is
	// not in the allow-list. The wrapped message enumerates allowed values.
	ErrInvalidSort = errors.New("invalid sort parameter")

	// ErrInvalidPage is returned when page or page size is outside the
	// declared bounds. Out-of-bounds values are rejected, never clamped.
	ErrInvalidPage = errors.New("invalid pagination parameter")
)
