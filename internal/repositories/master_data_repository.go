package repositories

import (
	"context"
	"fmt"

	"github.com/folioapp/folio/internal/db"
	"github.com/folioapp/folio/internal/models"
)

type masterDataRepository struct {
	db *db.DB
}

// NewMasterDataRepository creates a new master data repository
func NewMasterDataRepository(database *db.DB) MasterDataRepository {
	return &masterDataRepository{db: database}
}

func (r *masterDataRepository) CreateCurrency(ctx context.Context, currency *models.Currency) error {
	if err := r.db.WithContext(ctx).Create(currency).Error; err != nil {
		return fmt.Errorf("failed to create currency: %w", err)
	}
	return nil
}

func (r *masterDataRepository) ListCurrencies(ctx context.Context) ([]*models.Currency, error) {
	var currencies []*models.Currency
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&currencies).Error; err != nil {
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	return currencies, nil
}

func (r *masterDataRepository) CreateAssetType(ctx context.Context, assetType *models.AssetType) error {
	if err := r.db.WithContext(ctx).Create(assetType).Error; err != nil {
		return fmt.Errorf("failed to create asset type: %w", err)
	}
	return nil
}

func (r *masterDataRepository) ListAssetTypes(ctx context.Context) ([]*models.AssetType, error) {
	var types []*models.AssetType
	if err := r.db.WithContext(ctx).Order("name ASC").Find(&types).Error; err != nil {
		return nil, fmt.Errorf("failed to list asset types: %w", err)
	}
	return types, nil
}
