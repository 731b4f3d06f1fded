package repositories

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/folioapp/folio/internal/db"
	"github.com/folioapp/folio/internal/models"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *db.DB {
	t.Helper()
	database, err := db.Connect(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func decPtr(v string) *decimal.Decimal {
	d := dec(v)
	return &d
}

func candle(d models.Date, ticker, close string) *models.PricePoint {
	return &models.PricePoint{
		Date:   d,
		Ticker: ticker,
		Open:   dec(close),
		High:   dec(close),
		Low:    dec(close),
		Close:  dec(close),
	}
}

func TestUpsertPricesIsIdempotent(t *testing.T) {
	repo := NewHistoryRepository(setupTestDB(t))
	ctx := context.Background()

	day := models.NewDate(2024, time.January, 10)
	require.NoError(t, repo.UpsertPrices(ctx, []*models.PricePoint{candle(day, "ABC", "100")}))
	require.NoError(t, repo.UpsertPrices(ctx, []*models.PricePoint{candle(day, "ABC", "105")}))

	points, err := repo.PricesByTicker(ctx, "ABC")
	require.NoError(t, err)
	require.Len(t, points, 1)
	assert.True(t, points[0].Close.Equal(dec("105")))
}

func TestUpsertFxPointsIsIdempotent(t *testing.T) {
	repo := NewHistoryRepository(setupTestDB(t))
	ctx := context.Background()

	point := &models.FxPoint{
		Date:         models.NewDate(2024, time.January, 10),
		FromCurrency: "USD",
		ToCurrency:   "CZK",
		Open:         dec("23"), High: dec("23"), Low: dec("23"), Close: dec("23"),
	}
	require.NoError(t, repo.UpsertFxPoints(ctx, []*models.FxPoint{point}))

	point.Close = dec("23.4")
	require.NoError(t, repo.UpsertFxPoints(ctx, []*models.FxPoint{point}))

	all, err := repo.AllFx(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
	assert.True(t, all[0].Close.Equal(dec("23.4")))
}

func TestLastPriceDate(t *testing.T) {
	repo := NewHistoryRepository(setupTestDB(t))
	ctx := context.Background()

	last, err := repo.LastPriceDate(ctx, "ABC")
	require.NoError(t, err)
	assert.Nil(t, last)

	require.NoError(t, repo.UpsertPrices(ctx, []*models.PricePoint{
		candle(models.NewDate(2024, time.January, 10), "ABC", "100"),
		candle(models.NewDate(2024, time.March, 2), "ABC", "110"),
		candle(models.NewDate(2024, time.February, 1), "XYZ", "50"),
	}))

	last, err = repo.LastPriceDate(ctx, "ABC")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "2024-03-02", last.String())

	any, err := repo.LastAnyPriceDate(ctx)
	require.NoError(t, err)
	require.NotNil(t, any)
	assert.Equal(t, "2024-03-02", any.String())
}

func TestManualValueUpsert(t *testing.T) {
	database := setupTestDB(t)
	instruments := NewInstrumentRepository(database)
	ledger := NewLedgerRepository(database)
	ctx := context.Background()

	require.NoError(t, instruments.Upsert(ctx, &models.Instrument{
		Ticker: "PF", Currency: "CZK", Type: "fund", Evaluation: models.EvaluationManual,
	}))

	day := models.NewDate(2024, time.February, 1)
	require.NoError(t, ledger.UpsertManualValue(ctx, &models.ManualValue{Date: day, Ticker: "PF", Value: dec("1000")}))
	require.NoError(t, ledger.UpsertManualValue(ctx, &models.ManualValue{Date: day, Ticker: "PF", Value: dec("1200")}))

	values, err := ledger.AllManualValues(ctx)
	require.NoError(t, err)
	require.Len(t, values, 1)
	assert.True(t, values[0].Value.Equal(dec("1200")))
}

func TestListTradesJoinsCurrencyAndFilters(t *testing.T) {
	database := setupTestDB(t)
	instruments := NewInstrumentRepository(database)
	ledger := NewLedgerRepository(database)
	ctx := context.Background()

	require.NoError(t, instruments.Upsert(ctx, &models.Instrument{
		Ticker: "US1", Currency: "USD", Type: "stock", Evaluation: models.EvaluationYahoo,
	}))
	require.NoError(t, instruments.Upsert(ctx, &models.Instrument{
		Ticker: "CZ1", Currency: "CZK", Type: "stock", Evaluation: models.EvaluationYahoo,
	}))
	require.NoError(t, ledger.CreateTrade(ctx, &models.Trade{
		Date: models.NewDate(2024, time.January, 2), Ticker: "US1", Volume: decPtr("1"), Price: dec("10"),
	}))
	require.NoError(t, ledger.CreateTrade(ctx, &models.Trade{
		Date: models.NewDate(2024, time.January, 5), Ticker: "CZ1", Volume: decPtr("2"), Price: dec("20"),
	}))

	rows, err := ledger.ListTrades(ctx, "")
	require.NoError(t, err)
	require.Len(t, rows, 2)
	// oldest first
	assert.Equal(t, "US1", rows[0].Ticker)
	assert.Equal(t, "USD", rows[0].Currency)
	assert.Equal(t, "CZK", rows[1].Currency)

	rows, err = ledger.ListTrades(ctx, "US1")
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "US1", rows[0].Ticker)
}

func TestInstrumentUpsertReplaces(t *testing.T) {
	repo := NewInstrumentRepository(setupTestDB(t))
	ctx := context.Background()

	require.NoError(t, repo.Upsert(ctx, &models.Instrument{
		Ticker: "ABC", Currency: "CZK", Type: "stock", Evaluation: models.EvaluationYahoo,
	}))
	require.NoError(t, repo.Upsert(ctx, &models.Instrument{
		Ticker: "ABC", Currency: "EUR", Type: "etf", Evaluation: models.EvaluationYahoo,
	}))

	instrument, err := repo.GetByTicker(ctx, "ABC")
	require.NoError(t, err)
	assert.Equal(t, "EUR", instrument.Currency)
	assert.Equal(t, "etf", instrument.Type)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	assert.Len(t, list, 1)
}
