package services

import (
	"path/filepath"
	"testing"
	"time"

	"github.com/folioapp/folio/internal/db"
	"github.com/folioapp/folio/internal/models"
	"github.com/folioapp/folio/internal/repositories"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	database    *db.DB
	instruments repositories.InstrumentRepository
	ledger      repositories.LedgerRepository
	history     repositories.HistoryRepository
	cache       *SnapshotCache
	valuation   ValuationService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()

	database, err := db.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })

	instruments := repositories.NewInstrumentRepository(database)
	ledger := repositories.NewLedgerRepository(database)
	history := repositories.NewHistoryRepository(database)
	cache := NewSnapshotCache(instruments, ledger, history)

	return &testEnv{
		database:    database,
		instruments: instruments,
		ledger:      ledger,
		history:     history,
		cache:       cache,
		valuation:   NewValuationService(cache, ledger, history, "CZK"),
	}
}

func date(year int, month time.Month, day int) models.Date {
	return models.NewDate(year, month, day)
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func strPtr(s string) *string {
	return &s
}

func pricePoint(d models.Date, ticker, close string) *models.PricePoint {
	return &models.PricePoint{
		Date:   d,
		Ticker: ticker,
		Open:   dec(close),
		High:   dec(close),
		Low:    dec(close),
		Close:  dec(close),
	}
}

func fxPoint(d models.Date, from, to, close string) *models.FxPoint {
	return &models.FxPoint{
		Date:         d,
		FromCurrency: from,
		ToCurrency:   to,
		Open:         dec(close),
		High:         dec(close),
		Low:          dec(close),
		Close:        dec(close),
	}
}
