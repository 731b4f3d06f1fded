package models

import (
	"github.com/shopspring/decimal"
)

// PricePoint is one day of OHLC history for an instrument, as fetched from
// its price feed. One row per (date, ticker); ingestion upserts idempotently,
// the latest fetch wins.
type PricePoint struct {
	Date      Date            `json:"date" gorm:"primaryKey;column:date"`
	Ticker    string          `json:"ticker" gorm:"primaryKey;column:ticker"`
	Open      decimal.Decimal `json:"open" gorm:"column:open;type:decimal(30,10);not null"`
	High      decimal.Decimal `json:"high" gorm:"column:high;type:decimal(30,10);not null"`
	Low       decimal.Decimal `json:"low" gorm:"column:low;type:decimal(30,10);not null"`
	Close     decimal.Decimal `json:"close" gorm:"column:close;type:decimal(30,10);not null"`
	Dividends decimal.Decimal `json:"dividends" gorm:"column:dividends;type:decimal(30,10);not null"`
	Splits    decimal.Decimal `json:"splits" gorm:"column:splits;type:decimal(30,10);not null"`
}

// TableName returns the table name for the PricePoint model
func (PricePoint) TableName() string {
	return "historical"
}

// FxPoint is one day of OHLC history for a currency pair. One row per
// (date, from, to); same upsert semantics as PricePoint.
type FxPoint struct {
	Date         Date            `json:"date" gorm:"primaryKey;column:date"`
	FromCurrency string          `json:"from_curr" gorm:"primaryKey;column:from_curr"`
	ToCurrency   string          `json:"to_curr" gorm:"primaryKey;column:to_curr"`
	Open         decimal.Decimal `json:"open" gorm:"column:open;type:decimal(30,10);not null"`
	High         decimal.Decimal `json:"high" gorm:"column:high;type:decimal(30,10);not null"`
	Low          decimal.Decimal `json:"low" gorm:"column:low;type:decimal(30,10);not null"`
	Close        decimal.Decimal `json:"close" gorm:"column:close;type:decimal(30,10);not null"`
}

// TableName returns the table name for the FxPoint model
func (FxPoint) TableName() string {
	return "fx"
}
