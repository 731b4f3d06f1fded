package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/folioapp/folio/internal/db"
	"github.com/folioapp/folio/internal/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type instrumentRepository struct {
	db *db.DB
}

// NewInstrumentRepository creates a new instrument repository
func NewInstrumentRepository(database *db.DB) InstrumentRepository {
	return &instrumentRepository{db: database}
}

// Upsert writes the instrument, replacing the definition already stored
// under the same ticker. Re-posting an instrument edits it in place.
func (r *instrumentRepository) Upsert(ctx context.Context, instrument *models.Instrument) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "ticker"}},
		UpdateAll: true,
	}).Create(instrument).Error
	if err != nil {
		return fmt.Errorf("failed to upsert instrument: %w", err)
	}
	return nil
}

func (r *instrumentRepository) GetByTicker(ctx context.Context, ticker string) (*models.Instrument, error) {
	var instrument models.Instrument
	if err := r.db.WithContext(ctx).First(&instrument, "ticker = ?", ticker).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("instrument not found: %s", ticker)
		}
		return nil, fmt.Errorf("failed to get instrument: %w", err)
	}
	return &instrument, nil
}

func (r *instrumentRepository) List(ctx context.Context) ([]*models.Instrument, error) {
	var instruments []*models.Instrument
	if err := r.db.WithContext(ctx).Order("ticker ASC").Find(&instruments).Error; err != nil {
		return nil, fmt.Errorf("failed to list instruments: %w", err)
	}
	return instruments, nil
}
