package repositories

import (
	"context"

	"github.com/folioapp/folio/internal/models"
)

// InstrumentRepository defines the interface for instrument master data
type InstrumentRepository interface {
	Upsert(ctx context.Context, instrument *models.Instrument) error
	GetByTicker(ctx context.Context, ticker string) (*models.Instrument, error)
	List(ctx context.Context) ([]*models.Instrument, error)
}

// MasterDataRepository defines the interface for currency and asset type lists
type MasterDataRepository interface {
	CreateCurrency(ctx context.Context, currency *models.Currency) error
	ListCurrencies(ctx context.Context) ([]*models.Currency, error)
	CreateAssetType(ctx context.Context, assetType *models.AssetType) error
	ListAssetTypes(ctx context.Context) ([]*models.AssetType, error)
}

// LedgerRepository defines the interface for the append-mostly event tables:
// trades, deposits, dividends, staking rewards and manual value snapshots.
type LedgerRepository interface {
	CreateTrade(ctx context.Context, trade *models.Trade) error
	ListTrades(ctx context.Context, ticker string) ([]*models.TradeRow, error)
	AllTrades(ctx context.Context) ([]*models.Trade, error)

	CreateDeposit(ctx context.Context, deposit *models.Deposit) error
	ListDeposits(ctx context.Context, ticker string) ([]*models.DepositRow, error)
	AllDeposits(ctx context.Context) ([]*models.Deposit, error)

	CreateDividend(ctx context.Context, dividend *models.Dividend) error
	ListDividends(ctx context.Context, ticker string) ([]*models.DividendRow, error)
	AllDividends(ctx context.Context) ([]*models.Dividend, error)

	CreateStakingEvent(ctx context.Context, event *models.StakingEvent) error
	ListStakingEvents(ctx context.Context, ticker string) ([]*models.StakingRow, error)
	AllStakingEvents(ctx context.Context) ([]*models.StakingEvent, error)

	UpsertManualValue(ctx context.Context, value *models.ManualValue) error
	ListManualValues(ctx context.Context, ticker string) ([]*models.ManualValueRow, error)
	AllManualValues(ctx context.Context) ([]*models.ManualValue, error)
	LastManualValueDate(ctx context.Context) (*models.Date, error)
}

// HistoryRepository defines the interface for the daily price and FX series
type HistoryRepository interface {
	UpsertPrices(ctx context.Context, points []*models.PricePoint) error
	PricesByTicker(ctx context.Context, ticker string) ([]*models.PricePoint, error)
	AllPrices(ctx context.Context) ([]*models.PricePoint, error)
	LastPriceDate(ctx context.Context, ticker string) (*models.Date, error)
	LastAnyPriceDate(ctx context.Context) (*models.Date, error)

	UpsertFxPoints(ctx context.Context, points []*models.FxPoint) error
	AllFx(ctx context.Context) ([]*models.FxPoint, error)
	LastFxDate(ctx context.Context, from, to string) (*models.Date, error)
	LastAnyFxDate(ctx context.Context) (*models.Date, error)
}
