package repositories

import (
	"context"
	"fmt"

	"github.com/folioapp/folio/internal/db"
	"github.com/folioapp/folio/internal/models"
	"gorm.io/gorm/clause"
)

type historyRepository struct {
	db *db.DB
}

// NewHistoryRepository creates a new history repository
func NewHistoryRepository(database *db.DB) HistoryRepository {
	return &historyRepository{db: database}
}

// UpsertPrices writes a batch of daily candles, replacing rows already
// present for the same ticker and date. Feeds re-serve the most recent
// day with updated values, so the last stored day is always overwritten.
func (r *historyRepository) UpsertPrices(ctx context.Context, points []*models.PricePoint) error {
	if len(points) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close", "dividends", "splits"}),
	}).Create(points).Error
	if err != nil {
		return fmt.Errorf("failed to upsert prices: %w", err)
	}
	return nil
}

func (r *historyRepository) PricesByTicker(ctx context.Context, ticker string) ([]*models.PricePoint, error) {
	points := []*models.PricePoint{}
	if err := r.db.WithContext(ctx).Where("ticker = ?", ticker).Order("date ASC").Find(&points).Error; err != nil {
		return nil, fmt.Errorf("failed to get prices for %s: %w", ticker, err)
	}
	return points, nil
}

func (r *historyRepository) AllPrices(ctx context.Context) ([]*models.PricePoint, error) {
	var points []*models.PricePoint
	if err := r.db.WithContext(ctx).Order("ticker ASC, date ASC").Find(&points).Error; err != nil {
		return nil, fmt.Errorf("failed to load prices: %w", err)
	}
	return points, nil
}

func (r *historyRepository) LastPriceDate(ctx context.Context, ticker string) (*models.Date, error) {
	return maxDate(ctx, r.db, "SELECT MAX(date) FROM historical WHERE ticker = ?", ticker)
}

func (r *historyRepository) LastAnyPriceDate(ctx context.Context) (*models.Date, error) {
	return maxDate(ctx, r.db, "SELECT MAX(date) FROM historical")
}

func (r *historyRepository) UpsertFxPoints(ctx context.Context, points []*models.FxPoint) error {
	if len(points) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "from_curr"}, {Name: "to_curr"}},
		DoUpdates: clause.AssignmentColumns([]string{"open", "high", "low", "close"}),
	}).Create(points).Error
	if err != nil {
		return fmt.Errorf("failed to upsert fx rates: %w", err)
	}
	return nil
}

func (r *historyRepository) AllFx(ctx context.Context) ([]*models.FxPoint, error) {
	var points []*models.FxPoint
	if err := r.db.WithContext(ctx).Order("from_curr ASC, to_curr ASC, date ASC").Find(&points).Error; err != nil {
		return nil, fmt.Errorf("failed to load fx rates: %w", err)
	}
	return points, nil
}

func (r *historyRepository) LastFxDate(ctx context.Context, from, to string) (*models.Date, error) {
	return maxDate(ctx, r.db, "SELECT MAX(date) FROM fx WHERE from_curr = ? AND to_curr = ?", from, to)
}

func (r *historyRepository) LastAnyFxDate(ctx context.Context) (*models.Date, error) {
	return maxDate(ctx, r.db, "SELECT MAX(date) FROM fx")
}

// maxDate runs an aggregate returning a single nullable date column. Dates
// are stored as ISO text, so MAX sorts them chronologically.
func maxDate(ctx context.Context, database *db.DB, query string, args ...interface{}) (*models.Date, error) {
	var raw *string
	if err := database.WithContext(ctx).Raw(query, args...).Scan(&raw).Error; err != nil {
		return nil, fmt.Errorf("failed to query max date: %w", err)
	}
	if raw == nil || *raw == "" {
		return nil, nil
	}
	date, err := models.ParseDate(*raw)
	if err != nil {
		return nil, fmt.Errorf("failed to parse max date %q: %w", *raw, err)
	}
	return &date, nil
}
