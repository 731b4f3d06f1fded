package models

import (
	"github.com/shopspring/decimal"

	apperrors "github.com/folioapp/folio/internal/errors"
)

// Trade is a single buy (positive volume) or sell (negative volume) of an
// instrument. Volume may be null for account-like instruments tracked by
// price only; such trades count as one unit toward cost and contribute
// nothing to held volume. Rate is the instrument-per-base-currency exchange
// rate at trade time; null or zero means no conversion. Trades are
// append-only and ordered by (date, id).
type Trade struct {
	ID     int64            `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	Date   Date             `json:"date" gorm:"column:date;not null;index"`
	Ticker string           `json:"ticker" gorm:"column:ticker;not null;index"`
	Volume *decimal.Decimal `json:"volume" gorm:"column:volume;type:decimal(30,10)"`
	Price  decimal.Decimal  `json:"price" gorm:"column:price;type:decimal(30,10);not null"`
	Fee    *decimal.Decimal `json:"fee" gorm:"column:fee;type:decimal(30,10)"`
	Rate   *decimal.Decimal `json:"rate" gorm:"column:rate;type:decimal(30,10)"`
}

// TableName returns the table name for the Trade model
func (Trade) TableName() string {
	return "trades"
}

// Cost returns the trade's cost in the instrument currency. A null volume
// counts as one unit.
func (t *Trade) Cost() decimal.Decimal {
	if t.Volume == nil {
		return t.Price
	}
	return t.Price.Mul(*t.Volume)
}

// BaseCost returns the trade's cost converted to the base currency using the
// trade's own rate field. A null or zero rate means the trade already is in
// base currency.
func (t *Trade) BaseCost() decimal.Decimal {
	cost := t.Cost()
	if t.Rate == nil || t.Rate.IsZero() {
		return cost
	}
	return cost.Div(*t.Rate)
}

// Validate validates the trade data
func (t *Trade) Validate() error {
	if t.Date.IsZero() {
		return &apperrors.ErrValidation{Field: "date", Message: "is required"}
	}
	if t.Ticker == "" {
		return &apperrors.ErrValidation{Field: "ticker", Message: "is required"}
	}
	return nil
}

// Deposit is a signed cash movement into (positive) or out of (negative) an
// account-like instrument tracked by net contributions. Append-only.
type Deposit struct {
	ID     int64            `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	Date   Date             `json:"date" gorm:"column:date;not null;index"`
	Ticker string           `json:"ticker" gorm:"column:ticker;not null;index"`
	Amount decimal.Decimal  `json:"amount" gorm:"column:amount;type:decimal(30,10);not null"`
	Fee    *decimal.Decimal `json:"fee" gorm:"column:fee;type:decimal(30,10)"`
}

// TableName returns the table name for the Deposit model
func (Deposit) TableName() string {
	return "deposits"
}

// Validate validates the deposit data
func (d *Deposit) Validate() error {
	if d.Date.IsZero() {
		return &apperrors.ErrValidation{Field: "date", Message: "is required"}
	}
	if d.Ticker == "" {
		return &apperrors.ErrValidation{Field: "ticker", Message: "is required"}
	}
	if d.Amount.IsZero() {
		return &apperrors.ErrValidation{Field: "amount", Message: "must be non-zero"}
	}
	return nil
}

// ManualValue is a user-asserted value snapshot for a manually valued
// instrument. One row per (date, ticker); re-inserting the same key
// overwrites the value (last write wins).
type ManualValue struct {
	Date   Date            `json:"date" gorm:"primaryKey;column:date"`
	Ticker string          `json:"ticker" gorm:"primaryKey;column:ticker"`
	Value  decimal.Decimal `json:"value" gorm:"column:value;type:decimal(30,10);not null"`
}

// TableName returns the table name for the ManualValue model
func (ManualValue) TableName() string {
	return "manual_values"
}

// Validate validates the manual value data
func (v *ManualValue) Validate() error {
	if v.Date.IsZero() {
		return &apperrors.ErrValidation{Field: "date", Message: "is required"}
	}
	if v.Ticker == "" {
		return &apperrors.ErrValidation{Field: "ticker", Message: "is required"}
	}
	return nil
}

// Dividend is a dividend payment in the instrument's dividend currency.
// Append-only.
type Dividend struct {
	ID     int64           `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	Date   Date            `json:"date" gorm:"column:date;not null;index"`
	Ticker string          `json:"ticker" gorm:"column:ticker;not null;index"`
	Amount decimal.Decimal `json:"amount" gorm:"column:amount;type:decimal(30,10);not null"`
}

// TableName returns the table name for the Dividend model
func (Dividend) TableName() string {
	return "dividends"
}

// Validate validates the dividend data
func (d *Dividend) Validate() error {
	if d.Date.IsZero() {
		return &apperrors.ErrValidation{Field: "date", Message: "is required"}
	}
	if d.Ticker == "" {
		return &apperrors.ErrValidation{Field: "ticker", Message: "is required"}
	}
	if d.Amount.IsZero() {
		return &apperrors.ErrValidation{Field: "amount", Message: "must be non-zero"}
	}
	return nil
}

// StakingEvent is a reward accrual adding to held volume with no
// corresponding trade cost. Append-only.
type StakingEvent struct {
	ID     int64           `json:"id" gorm:"primaryKey;autoIncrement;column:id"`
	Date   Date            `json:"date" gorm:"column:date;not null;index"`
	Ticker string          `json:"ticker" gorm:"column:ticker;not null;index"`
	Volume decimal.Decimal `json:"volume" gorm:"column:volume;type:decimal(30,10);not null"`
}

// TableName returns the table name for the StakingEvent model
func (StakingEvent) TableName() string {
	return "staking"
}

// Validate validates the staking event data
func (s *StakingEvent) Validate() error {
	if s.Date.IsZero() {
		return &apperrors.ErrValidation{Field: "date", Message: "is required"}
	}
	if s.Ticker == "" {
		return &apperrors.ErrValidation{Field: "ticker", Message: "is required"}
	}
	if s.Volume.IsZero() {
		return &apperrors.ErrValidation{Field: "volume", Message: "must be non-zero"}
	}
	return nil
}
