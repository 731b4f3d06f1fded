package models

import (
	apperrors "github.com/folioapp/folio/internal/errors"
)

// Valuation modes. Market-priced instruments carry the name of the feed that
// supplies their history; manually valued instruments are priced from
// user-entered snapshots.
const (
	EvaluationYahoo  = "yfinance"
	EvaluationHTTP   = "http"
	EvaluationManual = "manual"
)

// Instrument is a tradable or manually tracked asset. The ticker is the
// natural key referenced by every ledger table. The evaluation mode is fixed
// for the life of the instrument's ledger; switching it orphans historical
// computations.
type Instrument struct {
	Ticker           string  `json:"ticker" gorm:"primaryKey;column:ticker"`
	Currency         string  `json:"currency" gorm:"column:currency;not null"`
	DividendCurrency *string `json:"dividend_currency" gorm:"column:dividend_currency"`
	Type             string  `json:"type" gorm:"column:type;not null"`
	Evaluation       string  `json:"evaluation" gorm:"column:evaluation;not null"`
	EvalParam        *string `json:"eval_param" gorm:"column:eval_param"`
}

// TableName returns the table name for the Instrument model
func (Instrument) TableName() string {
	return "instruments"
}

// IsManual reports whether the instrument is valued from manual snapshots
// rather than a market price feed.
func (i *Instrument) IsManual() bool {
	return i.Evaluation == EvaluationManual
}

// FeedTicker returns the symbol to request from the instrument's price feed,
// falling back to the portfolio ticker when no override is configured.
func (i *Instrument) FeedTicker() string {
	if i.EvalParam != nil && *i.EvalParam != "" {
		return *i.EvalParam
	}
	return i.Ticker
}

// Validate validates the instrument data
func (i *Instrument) Validate() error {
	if i.Ticker == "" {
		return &apperrors.ErrValidation{Field: "ticker", Message: "is required"}
	}
	if i.Currency == "" {
		return &apperrors.ErrValidation{Field: "currency", Message: "is required"}
	}
	if i.Type == "" {
		return &apperrors.ErrValidation{Field: "type", Message: "is required"}
	}
	switch i.Evaluation {
	case EvaluationYahoo, EvaluationHTTP, EvaluationManual:
	default:
		return &apperrors.ErrValidation{Field: "evaluation", Message: "must be yfinance, http or manual"}
	}
	return nil
}
