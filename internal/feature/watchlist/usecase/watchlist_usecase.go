package usecase

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"

	"stockwatch/internal/feature/watchlist/domain/entity"
)

// WatchlistRepository abstracts the persistence layer for watchlists.
// Following Go convention: interfaces are defined by the consumer (usecase),
// not the provider (adapters).
type WatchlistRepository interface {
	// Create persists a new watchlist. Returns ErrDuplicateName when the
	// owner already has a watchlist with the same name.
	Create(ctx context.Context, w *entity.Watchlist) error
	// FindByIDAndOwner returns the watchlist with the given id if it is
	// owned by ownerID, ErrNotFound otherwise.
	FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Watchlist, error)
	// FindByOwnerAndName returns the owner's watchlist with the given name,
	// ErrNotFound when none exists.
	FindByOwnerAndName(ctx context.Context, ownerID, name string) (*entity.Watchlist, error)
	// Update replaces the stored record.
	Update(ctx context.Context, w *entity.Watchlist) error
	// ListByOwner returns all watchlists owned by ownerID.
	ListByOwner(ctx context.Context, ownerID string) ([]entity.Watchlist, error)
}

// UpdatePatch describes a partial watchlist update. Nil fields are left
// untouched.
type UpdatePatch struct {
	Name    *string
	Symbols *[]string
}

// watchlistUsecase implements watchlist operations with ownership and
// name-uniqueness enforcement.
type watchlistUsecase struct {
	repo WatchlistRepository
}

// NewWatchlistUsecase creates a watchlistUsecase with the given repository.
func NewWatchlistUsecase(repo WatchlistRepository) *watchlistUsecase {
	return &watchlistUsecase{repo: repo}
}

// Create adds a new watchlist for ownerID. The name must be non-empty
// after trimming and must not collide with another watchlist of the same
// owner; the same name under a different owner is fine.
func (u *watchlistUsecase) Create(ctx context.Context, ownerID, name string, symbols []string) (*entity.Watchlist, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyName
	}

	// Pre-check for a friendly error; the unique index on (owner_id, name)
	// still backstops concurrent creates.
	if _, err := u.repo.FindByOwnerAndName(ctx, ownerID, name); err == nil {
		return nil, ErrDuplicateName
	} else if !errors.Is(err, ErrNotFound) {
		return nil, err
	}

	if symbols == nil {
		symbols = []string{}
	}
	w := &entity.Watchlist{
		ID:      uuid.NewString(),
		Name:    name,
		Symbols: symbols,
		OwnerID: ownerID,
	}
	if err := u.repo.Create(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// Update applies a partial update to the caller's watchlist. A watchlist
// that does not exist or belongs to another owner yields ErrNotFound either
// way. A rename is checked against the caller's other watchlists only. An
// empty patch returns the stored record unchanged without writing.
func (u *watchlistUsecase) Update(ctx context.Context, ownerID, id string, patch UpdatePatch) (*entity.Watchlist, error) {
	w, err := u.repo.FindByIDAndOwner(ctx, id, ownerID)
	if err != nil {
		return nil, err
	}

	if patch.Name == nil && patch.Symbols == nil {
		return w, nil
	}

	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return nil, ErrEmptyName
		}
		if name != w.Name {
			other, err := u.repo.FindByOwnerAndName(ctx, ownerID, name)
			if err == nil && other.ID != w.ID {
				return nil, ErrDuplicateName
			}
			if err != nil && !errors.Is(err, ErrNotFound) {
				return nil, err
			}
		}
		w.Name = name
	}
	if patch.Symbols != nil {
		w.Symbols = *patch.Symbols
	}

	if err := u.repo.Update(ctx, w); err != nil {
		return nil, err
	}
	return w, nil
}

// List returns all watchlists owned by the caller. The result is unbounded;
// pagination is unnecessary at the expected per-user scale.
func (u *watchlistUsecase) List(ctx context.Context, ownerID string) ([]entity.Watchlist, error) {
	return u.repo.ListByOwner(ctx, ownerID)
}
