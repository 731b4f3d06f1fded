package models

import (
	apperrors "github.com/folioapp/folio/internal/errors"
)

// Currency is a vocabulary entry for currencies selectable on instruments.
type Currency struct {
	Name string `json:"name" gorm:"primaryKey;column:name"`
}

// TableName returns the table name for the Currency model
func (Currency) TableName() string {
	return "currencies"
}

// Validate validates the currency data
func (c *Currency) Validate() error {
	if c.Name == "" {
		return &apperrors.ErrValidation{Field: "currency", Message: "is required"}
	}
	return nil
}

// AssetType is a vocabulary entry for instrument categories (stock, ETF,
// crypto, fund, ...). Used as the chart filter dimension.
type AssetType struct {
	Name string `json:"name" gorm:"primaryKey;column:name"`
}

// TableName returns the table name for the AssetType model
func (AssetType) TableName() string {
	return "types"
}

// Validate validates the asset type data
func (t *AssetType) Validate() error {
	if t.Name == "" {
		return &apperrors.ErrValidation{Field: "type", Message: "is required"}
	}
	return nil
}
