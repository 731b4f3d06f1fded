package repositories

import (
	"context"
	"fmt"

	"github.com/folioapp/folio/internal/db"
	"github.com/folioapp/folio/internal/models"
	"gorm.io/gorm/clause"
)

type ledgerRepository struct {
	db *db.DB
}

// NewLedgerRepository creates a new ledger repository
func NewLedgerRepository(database *db.DB) LedgerRepository {
	return &ledgerRepository{db: database}
}

func (r *ledgerRepository) CreateTrade(ctx context.Context, trade *models.Trade) error {
	if err := r.db.WithContext(ctx).Create(trade).Error; err != nil {
		return fmt.Errorf("failed to create trade: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ListTrades(ctx context.Context, ticker string) ([]*models.TradeRow, error) {
	rows := []*models.TradeRow{}
	query := r.db.WithContext(ctx).
		Table("trades").
		Select("trades.*, instruments.currency AS currency").
		Joins("JOIN instruments ON instruments.ticker = trades.ticker")
	if ticker != "" {
		query = query.Where("trades.ticker = ?", ticker)
	}
	err := query.Order("trades.date ASC, trades.id ASC").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list trades: %w", err)
	}
	return rows, nil
}

func (r *ledgerRepository) AllTrades(ctx context.Context) ([]*models.Trade, error) {
	var trades []*models.Trade
	if err := r.db.WithContext(ctx).Order("date ASC, id ASC").Find(&trades).Error; err != nil {
		return nil, fmt.Errorf("failed to load trades: %w", err)
	}
	return trades, nil
}

func (r *ledgerRepository) CreateDeposit(ctx context.Context, deposit *models.Deposit) error {
	if err := r.db.WithContext(ctx).Create(deposit).Error; err != nil {
		return fmt.Errorf("failed to create deposit: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ListDeposits(ctx context.Context, ticker string) ([]*models.DepositRow, error) {
	rows := []*models.DepositRow{}
	query := r.db.WithContext(ctx).
		Table("deposits").
		Select("deposits.*, instruments.currency AS currency").
		Joins("JOIN instruments ON instruments.ticker = deposits.ticker")
	if ticker != "" {
		query = query.Where("deposits.ticker = ?", ticker)
	}
	err := query.Order("deposits.date ASC, deposits.id ASC").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list deposits: %w", err)
	}
	return rows, nil
}

func (r *ledgerRepository) AllDeposits(ctx context.Context) ([]*models.Deposit, error) {
	var deposits []*models.Deposit
	if err := r.db.WithContext(ctx).Order("date ASC, id ASC").Find(&deposits).Error; err != nil {
		return nil, fmt.Errorf("failed to load deposits: %w", err)
	}
	return deposits, nil
}

func (r *ledgerRepository) CreateDividend(ctx context.Context, dividend *models.Dividend) error {
	if err := r.db.WithContext(ctx).Create(dividend).Error; err != nil {
		return fmt.Errorf("failed to create dividend: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ListDividends(ctx context.Context, ticker string) ([]*models.DividendRow, error) {
	rows := []*models.DividendRow{}
	query := r.db.WithContext(ctx).
		Table("dividends").
		Select("dividends.*, COALESCE(instruments.dividend_currency, instruments.currency) AS currency").
		Joins("JOIN instruments ON instruments.ticker = dividends.ticker")
	if ticker != "" {
		query = query.Where("dividends.ticker = ?", ticker)
	}
	err := query.Order("dividends.date ASC, dividends.id ASC").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list dividends: %w", err)
	}
	return rows, nil
}

func (r *ledgerRepository) AllDividends(ctx context.Context) ([]*models.Dividend, error) {
	var dividends []*models.Dividend
	if err := r.db.WithContext(ctx).Order("date ASC, id ASC").Find(&dividends).Error; err != nil {
		return nil, fmt.Errorf("failed to load dividends: %w", err)
	}
	return dividends, nil
}

func (r *ledgerRepository) CreateStakingEvent(ctx context.Context, event *models.StakingEvent) error {
	if err := r.db.WithContext(ctx).Create(event).Error; err != nil {
		return fmt.Errorf("failed to create staking event: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ListStakingEvents(ctx context.Context, ticker string) ([]*models.StakingRow, error) {
	rows := []*models.StakingRow{}
	query := r.db.WithContext(ctx).
		Table("staking").
		Select("staking.*, instruments.currency AS currency").
		Joins("JOIN instruments ON instruments.ticker = staking.ticker")
	if ticker != "" {
		query = query.Where("staking.ticker = ?", ticker)
	}
	err := query.Order("staking.date ASC, staking.id ASC").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list staking events: %w", err)
	}
	return rows, nil
}

func (r *ledgerRepository) AllStakingEvents(ctx context.Context) ([]*models.StakingEvent, error) {
	var events []*models.StakingEvent
	if err := r.db.WithContext(ctx).Order("date ASC, id ASC").Find(&events).Error; err != nil {
		return nil, fmt.Errorf("failed to load staking events: %w", err)
	}
	return events, nil
}

// UpsertManualValue replaces any existing snapshot for the same date and
// ticker, re-entering a valuation corrects it rather than duplicating it.
func (r *ledgerRepository) UpsertManualValue(ctx context.Context, value *models.ManualValue) error {
	err := r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "date"}, {Name: "ticker"}},
		DoUpdates: clause.AssignmentColumns([]string{"value"}),
	}).Create(value).Error
	if err != nil {
		return fmt.Errorf("failed to upsert manual value: %w", err)
	}
	return nil
}

func (r *ledgerRepository) ListManualValues(ctx context.Context, ticker string) ([]*models.ManualValueRow, error) {
	rows := []*models.ManualValueRow{}
	query := r.db.WithContext(ctx).
		Table("manual_values").
		Select("manual_values.*, instruments.currency AS currency").
		Joins("JOIN instruments ON instruments.ticker = manual_values.ticker")
	if ticker != "" {
		query = query.Where("manual_values.ticker = ?", ticker)
	}
	err := query.Order("manual_values.date ASC, manual_values.ticker ASC").Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list manual values: %w", err)
	}
	return rows, nil
}

func (r *ledgerRepository) AllManualValues(ctx context.Context) ([]*models.ManualValue, error) {
	var values []*models.ManualValue
	if err := r.db.WithContext(ctx).Order("date ASC, ticker ASC").Find(&values).Error; err != nil {
		return nil, fmt.Errorf("failed to load manual values: %w", err)
	}
	return values, nil
}

func (r *ledgerRepository) LastManualValueDate(ctx context.Context) (*models.Date, error) {
	return maxDate(ctx, r.db, "SELECT MAX(date) FROM manual_values")
}
