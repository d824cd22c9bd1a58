// Package adapters provides the repository implementations for the watchlist feature.
package adapters

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"

	"stockwatch/internal/feature/watchlist/domain/entity"
	"stockwatch/internal/feature/watchlist/usecase"
)

// uniqueViolation is the Postgres error code for unique constraint violations.
const uniqueViolation = "23505"

// watchlistPostgres is the Postgres implementation of the WatchlistRepository
// interface.
type watchlistPostgres struct {
	db *gorm.DB
}

var _ usecase.WatchlistRepository = (*watchlistPostgres)(nil)

// NewWatchlistRepository creates a watchlistPostgres repository with the
// given DB handle.
func NewWatchlistRepository(db *gorm.DB) *watchlistPostgres {
	return &watchlistPostgres{db: db}
}

// WatchlistModel is the persistence model for watchlists. The unique index
// on (owner_id, name) enforces name uniqueness per owner at the store level.
type WatchlistModel struct {
	ID      string   `gorm:"primaryKey;size:36"`
	OwnerID string   `gorm:"size:64;not null;index;uniqueIndex:wl_owner_name,priority:1"`
	Name    string   `gorm:"size:255;not null;uniqueIndex:wl_owner_name,priority:2"`
	Symbols []string `gorm:"serializer:json"`
}

func (WatchlistModel) TableName() string {
	return "watchlists"
}

func toModel(e *entity.Watchlist) WatchlistModel {
	return WatchlistModel{
		ID:      e.ID,
		OwnerID: e.OwnerID,
		Name:    e.Name,
		Symbols: e.Symbols,
	}
}

func toEntity(m WatchlistModel) entity.Watchlist {
	symbols := m.Symbols
	if symbols == nil {
		symbols = []string{}
	}
	return entity.Watchlist{
		ID:      m.ID,
		OwnerID: m.OwnerID,
		Name:    m.Name,
		Symbols: symbols,
	}
}

// isDuplicate reports whether err is a unique constraint violation.
func isDuplicate(err error) bool {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
		return true
	}
	return errors.Is(err, gorm.ErrDuplicatedKey)
}

// Create persists a new watchlist. A collision on (owner_id, name) is
// returned as usecase.ErrDuplicateName.
func (r *watchlistPostgres) Create(ctx context.Context, w *entity.Watchlist) error {
	m := toModel(w)
	if err := r.db.WithContext(ctx).Create(&m).Error; err != nil {
		if isDuplicate(err) {
			return usecase.ErrDuplicateName
		}
		return err
	}
	return nil
}

// FindByIDAndOwner fetches a watchlist by id scoped to its owner. A missing
// row and a row owned by someone else are both usecase.ErrNotFound.
func (r *watchlistPostgres) FindByIDAndOwner(ctx context.Context, id, ownerID string) (*entity.Watchlist, error) {
	var m WatchlistModel
	if err := r.db.WithContext(ctx).
		Where("id = ? AND owner_id = ?", id, ownerID).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}

// FindByOwnerAndName fetches the owner's watchlist with the given name.
func (r *watchlistPostgres) FindByOwnerAndName(ctx context.Context, ownerID, name string) (*entity.Watchlist, error) {
	var m WatchlistModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ? AND name = ?", ownerID, name).
		First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, usecase.ErrNotFound
		}
		return nil, err
	}
	e := toEntity(m)
	return &e, nil
}

// Update replaces the stored record. A rename colliding with another list
// of the same owner is returned as usecase.ErrDuplicateName.
func (r *watchlistPostgres) Update(ctx context.Context, w *entity.Watchlist) error {
	m := toModel(w)
	if err := r.db.WithContext(ctx).Save(&m).Error; err != nil {
		if isDuplicate(err) {
			return usecase.ErrDuplicateName
		}
		return err
	}
	return nil
}

// ListByOwner returns all watchlists owned by ownerID, ordered by name.
func (r *watchlistPostgres) ListByOwner(ctx context.Context, ownerID string) ([]entity.Watchlist, error) {
	var rows []WatchlistModel
	if err := r.db.WithContext(ctx).
		Where("owner_id = ?", ownerID).
		Order("name ASC").
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Watchlist, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}
