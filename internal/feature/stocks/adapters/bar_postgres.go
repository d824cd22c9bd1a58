// Package adapters provides the repository implementations for the stocks feature.
package adapters

import (
	"context"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"stockwatch/internal/feature/stocks/domain/entity"
	"stockwatch/internal/feature/stocks/usecase"
)

// barPostgres is the Postgres implementation of the BarRepository interface.
type barPostgres struct {
	db *gorm.DB
}

var _ usecase.BarRepository = (*barPostgres)(nil)

// NewBarRepository creates a barPostgres repository with the given DB handle.
func NewBarRepository(db *gorm.DB) *barPostgres {
	return &barPostgres{db: db}
}

// BarModel is the persistence model for daily price bars.
type BarModel struct {
	ID     uint   `gorm:"primaryKey"`
	Symbol string `gorm:"size:32;not null;uniqueIndex:bar_symbol_date,priority:1"`
	Date   string `gorm:"size:10;not null;uniqueIndex:bar_symbol_date,priority:2"`

	Open   float64 `gorm:"not null"`
	High   float64 `gorm:"not null"`
	Low    float64 `gorm:"not null"`
	Close  float64 `gorm:"not null"`
	Volume int64   `gorm:"not null;default:0"`
}

func (BarModel) TableName() string {
	return "bars"
}

func toModel(e entity.Bar) BarModel {
	return BarModel{
		Symbol: e.Symbol,
		Date:   e.Date,
		Open:   e.Open,
		High:   e.High,
		Low:    e.Low,
		Close:  e.Close,
		Volume: e.Volume,
	}
}

func toEntity(m BarModel) entity.Bar {
	return entity.Bar{
		Symbol: m.Symbol,
		Date:   m.Date,
		Open:   m.Open,
		High:   m.High,
		Low:    m.Low,
		Close:  m.Close,
		Volume: m.Volume,
	}
}

// UpsertBatch inserts bars in one statement, updating OHLCV values of rows
// that already exist for the same (symbol, date).
func (r *barPostgres) UpsertBatch(ctx context.Context, bars []entity.Bar) error {
	if len(bars) == 0 {
		return nil
	}
	ms := make([]BarModel, 0, len(bars))
	for _, e := range bars {
		ms = append(ms, toModel(e))
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "symbol"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "volume"}),
	}).Create(&ms).Error
}

// Count returns the number of bars, restricted to symbol when non-empty.
func (r *barPostgres) Count(ctx context.Context, symbol string) (int64, error) {
	var count int64
	q := r.db.WithContext(ctx).Model(&BarModel{})
	if symbol != "" {
		q = q.Where("symbol = ?", symbol)
	}
	if err := q.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// FindPage returns one page of bars ordered by sortBy/order. Both values
// must already be validated against the usecase allow-list; they are
// interpolated into the ORDER BY clause.
func (r *barPostgres) FindPage(ctx context.Context, symbol, sortBy, order string, limit, offset int) ([]entity.Bar, error) {
	var rows []BarModel
	q := r.db.WithContext(ctx).
		Order(fmt.Sprintf("%s %s", sortBy, order)).
		Limit(limit).
		Offset(offset)
	if symbol != "" {
		q = q.Where("symbol = ?", symbol)
	}
	if err := q.Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make([]entity.Bar, 0, len(rows))
	for _, m := range rows {
		out = append(out, toEntity(m))
	}
	return out, nil
}

// DistinctSymbols returns every symbol present in the bars table, sorted.
// The sync trigger uses this as the universe of symbols to refresh.
func (r *barPostgres) DistinctSymbols(ctx context.Context) ([]string, error) {
	var symbols []string
	if err := r.db.WithContext(ctx).
		Model(&BarModel{}).
		Distinct().
		Order("symbol ASC").
		Pluck("symbol", &symbols).Error; err != nil {
		return nil, err
	}
	return symbols, nil
}
