// Package usecase implements the business logic for the watchlist feature.
package usecase

import "errors"

var (
	// ErrNotFound is returned when a watchlist does not exist or is not
	// owned by the caller. The two cases are deliberately collapsed so
	// other users' watchlist ids cannot be probed.
	ErrNotFound = errors.New("watchlist not found")

	// ErrDuplicateName is returned when the owner already has a watchlist
	// with the requested name.
	ErrDuplicateName = errors.New("watchlist with this name already exists")

	// ErrEmptyName is returned when a create or rename supplies a name that
	// is empty after trimming whitespace.
	ErrEmptyName = errors.New("watchlist name must not be empty")
)
