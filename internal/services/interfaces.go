package services

import (
	"context"

	"github.com/folioapp/folio/internal/models"
)

// ValuationService computes portfolio reports from the ledger and the stored
// price/FX history. All reports value holdings with the latest data at or
// before the report date; nothing is interpolated or looked up ahead.
type ValuationService interface {
	// Overview returns one row per instrument with ledger activity,
	// valued as of today.
	Overview(ctx context.Context) ([]*models.OverviewRow, error)

	// Performance returns per-year, per-instrument deltas of cumulative
	// fee, investment, value and profit.
	Performance(ctx context.Context) (models.PerformanceReport, error)

	// Chart returns the portfolio-wide aggregate series, optionally
	// restricted to one ticker or one asset type.
	Chart(ctx context.Context, filter models.ChartFilter) ([]*models.ChartRow, error)

	// DividendTotals sums dividends per instrument, in the dividend
	// currency and converted to the base currency.
	DividendTotals(ctx context.Context) ([]*models.DividendTotal, error)

	// LastData reports the most recent stored date of each fed series.
	LastData(ctx context.Context) (*models.LastData, error)
}

// MarketDataService refreshes the stored price and FX history from the
// external feeds. Per-instrument failures are logged and skipped so one dead
// ticker cannot block the rest of the refresh.
type MarketDataService interface {
	RefreshPrices(ctx context.Context) error
	RefreshFX(ctx context.Context) error
}

// PriceFeed fetches daily candles for one symbol from an external source.
// Implementations exist for the Yahoo chart API and for fund NAV feeds.
type PriceFeed interface {
	DailyHistory(ctx context.Context, symbol string, from models.Date) ([]*models.PricePoint, error)
}
