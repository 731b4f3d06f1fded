package models

import (
	"github.com/shopspring/decimal"
)

// OverviewRow is one instrument's point-in-time summary. The row is a tagged
// union keyed on Evaluation: market-mode rows populate LastPrice and the
// MarketProfit/FxProfit/StakingRewards decomposition, manual-mode rows
// populate ManualValueCorrection; the other mode's fields stay null.
// Value and Profit are null while the instrument is not yet measurable
// (no price, FX rate or manual snapshot at or before the requested date).
type OverviewRow struct {
	Ticker     string `json:"ticker"`
	Currency   string `json:"currency"`
	Evaluation string `json:"evaluation"`

	Volume    *decimal.Decimal `json:"volume"`
	Invested  decimal.Decimal  `json:"invested"`
	Returned  decimal.Decimal  `json:"returned"`
	Fee       decimal.Decimal  `json:"fee"`
	AvgPrice  *decimal.Decimal `json:"avg_price"`
	LastPrice *decimal.Decimal `json:"last_price"`
	Value     *decimal.Decimal `json:"value"`
	Profit    *decimal.Decimal `json:"profit"`

	// Market-mode profit decomposition.
	MarketProfit   *decimal.Decimal `json:"market_profit"`
	FxProfit       *decimal.Decimal `json:"fx_profit"`
	StakingRewards *decimal.Decimal `json:"staking_rewards"`

	// Manual-mode reconciliation term.
	ManualValueCorrection *decimal.Decimal `json:"manual_value_correction"`
}

// PerformanceRow is one instrument's delta for a single calendar year.
type PerformanceRow struct {
	Fee        decimal.Decimal `json:"fee"`
	Investment decimal.Decimal `json:"investment"`
	Value      decimal.Decimal `json:"value"`
	Profit     decimal.Decimal `json:"profit"`
}

// PerformanceReport maps year -> ticker -> that year's deltas.
type PerformanceReport map[int]map[string]PerformanceRow

// ChartRow is the portfolio-wide aggregate as of one date.
type ChartRow struct {
	Date       Date            `json:"date"`
	Fee        decimal.Decimal `json:"fee"`
	Investment decimal.Decimal `json:"investment"`
	Returned   decimal.Decimal `json:"returned"`
	Value      decimal.Decimal `json:"value"`
	Profit     decimal.Decimal `json:"profit"`
}

// ChartFilter optionally restricts the chart to one ticker or one asset
// type before aggregation.
type ChartFilter struct {
	Ticker string
	Type   string
}

// LastData reports the most recent date present in each externally fed
// series, used by the front end to decide whether a refresh is due.
type LastData struct {
	Historical  *Date `json:"historical"`
	Fx          *Date `json:"fx"`
	ManualValue *Date `json:"manual_value"`
}

// TradeRow is a trade joined with its instrument's trading currency.
type TradeRow struct {
	Trade    `gorm:"embedded"`
	Currency string `json:"currency"`
}

// DepositRow is a deposit joined with its instrument's trading currency.
type DepositRow struct {
	Deposit  `gorm:"embedded"`
	Currency string `json:"currency"`
}

// ManualValueRow is a manual value joined with its instrument's currency.
type ManualValueRow struct {
	ManualValue `gorm:"embedded"`
	Currency    string `json:"currency"`
}

// DividendRow is a dividend joined with its instrument's dividend currency.
type DividendRow struct {
	Dividend `gorm:"embedded"`
	Currency string `json:"currency"`
}

// StakingRow is a staking event joined with its instrument's currency.
type StakingRow struct {
	StakingEvent `gorm:"embedded"`
	Currency     string `json:"currency"`
}

// DividendTotal sums one instrument's dividends in its dividend currency and
// in the base currency (converted at the rate in effect on each payment
// date). TotalBase is null when no FX history covers any payment.
type DividendTotal struct {
	Ticker    string           `json:"ticker"`
	Currency  string           `json:"currency"`
	Total     decimal.Decimal  `json:"total"`
	TotalBase *decimal.Decimal `json:"total_base"`
}
