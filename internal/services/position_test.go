package services

import (
	"testing"
	"time"

	"github.com/folioapp/folio/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPositionBuysAccumulate(t *testing.T) {
	snap := &Snapshot{
		Trades: map[string][]*models.Trade{
			"ABC": {
				{Date: date(2024, time.January, 2), Ticker: "ABC", Volume: decPtr("10"), Price: dec("100"), Fee: decPtr("1")},
				{Date: date(2024, time.February, 2), Ticker: "ABC", Volume: decPtr("5"), Price: dec("120"), Fee: decPtr("1")},
			},
		},
	}

	cursor := newPositionCursor(snap, "ABC")
	pos := cursor.Advance(date(2024, time.December, 31))

	assert.True(t, pos.Volume.Equal(dec("15")))
	assert.True(t, pos.Investment.Equal(dec("1600")))
	assert.True(t, pos.Fees.Equal(dec("2")))
	assert.True(t, pos.Returned.IsZero())

	avg := pos.AvgEntryPrice()
	require.NotNil(t, avg)
	// 1600 / 15
	assert.True(t, avg.Equal(dec("1600").Div(dec("15"))))
}

func TestPositionSellBecomesReturn(t *testing.T) {
	snap := &Snapshot{
		Trades: map[string][]*models.Trade{
			"ABC": {
				{Date: date(2024, time.January, 2), Ticker: "ABC", Volume: decPtr("10"), Price: dec("100")},
				{Date: date(2024, time.March, 2), Ticker: "ABC", Volume: decPtr("-4"), Price: dec("110")},
			},
		},
	}

	cursor := newPositionCursor(snap, "ABC")
	pos := cursor.Advance(date(2024, time.December, 31))

	assert.True(t, pos.Volume.Equal(dec("6")))
	// the sell never reduces investment
	assert.True(t, pos.Investment.Equal(dec("1000")))
	assert.True(t, pos.Returned.Equal(dec("440")))
	assert.True(t, pos.ProceedsLocal.Equal(dec("440")))
	assert.True(t, pos.BuyVolume.Equal(dec("10")))
}

func TestPositionTradeRateConvertsToBase(t *testing.T) {
	snap := &Snapshot{
		Trades: map[string][]*models.Trade{
			"US1": {
				{Date: date(2024, time.January, 2), Ticker: "US1", Volume: decPtr("2"), Price: dec("50"), Fee: decPtr("10"), Rate: decPtr("25")},
			},
		},
	}

	cursor := newPositionCursor(snap, "US1")
	pos := cursor.Advance(date(2024, time.December, 31))

	// 100 local / 25 = 4 base; the fee is already base currency and sums raw
	assert.True(t, pos.Investment.Equal(dec("4")))
	assert.True(t, pos.Fees.Equal(dec("10")))
	assert.True(t, pos.CostLocal.Equal(dec("100")))
}

func TestPositionNilVolumeCostsButHoldsNothing(t *testing.T) {
	snap := &Snapshot{
		Trades: map[string][]*models.Trade{
			"FUND": {
				{Date: date(2024, time.January, 2), Ticker: "FUND", Price: dec("500")},
			},
		},
	}

	cursor := newPositionCursor(snap, "FUND")
	pos := cursor.Advance(date(2024, time.December, 31))

	assert.True(t, pos.Volume.IsZero())
	assert.True(t, pos.Investment.Equal(dec("500")))
	assert.Nil(t, pos.AvgEntryPrice())
}

func TestPositionDepositsAndStaking(t *testing.T) {
	snap := &Snapshot{
		Deposits: map[string][]*models.Deposit{
			"SAV": {
				{Date: date(2024, time.January, 2), Ticker: "SAV", Amount: dec("1000"), Fee: decPtr("5")},
				{Date: date(2024, time.June, 2), Ticker: "SAV", Amount: dec("-200")},
			},
		},
		Staking: map[string][]*models.StakingEvent{
			"SAV": {
				{Date: date(2024, time.March, 2), Ticker: "SAV", Volume: dec("0.5")},
			},
		},
	}

	cursor := newPositionCursor(snap, "SAV")
	pos := cursor.Advance(date(2024, time.December, 31))

	assert.True(t, pos.Investment.Equal(dec("1000")))
	assert.True(t, pos.Returned.Equal(dec("200")))
	assert.True(t, pos.Fees.Equal(dec("5")))
	assert.True(t, pos.Volume.Equal(dec("0.5")))
	assert.True(t, pos.StakedVolume.Equal(dec("0.5")))
}

func TestPositionCursorIsIncremental(t *testing.T) {
	snap := &Snapshot{
		Trades: map[string][]*models.Trade{
			"ABC": {
				{Date: date(2024, time.January, 2), Ticker: "ABC", Volume: decPtr("10"), Price: dec("100")},
				{Date: date(2024, time.February, 2), Ticker: "ABC", Volume: decPtr("5"), Price: dec("120")},
			},
		},
	}

	cursor := newPositionCursor(snap, "ABC")

	pos := cursor.Advance(date(2024, time.January, 31))
	assert.True(t, pos.Volume.Equal(dec("10")))

	pos = cursor.Advance(date(2024, time.February, 28))
	assert.True(t, pos.Volume.Equal(dec("15")))
	assert.True(t, pos.Investment.Equal(dec("1600")))
}

func TestPositionManualCorrectionResets(t *testing.T) {
	snap := &Snapshot{
		Trades: map[string][]*models.Trade{
			"PF": {
				{Date: date(2024, time.January, 10), Ticker: "PF", Price: dec("300")},
				{Date: date(2024, time.March, 10), Ticker: "PF", Price: dec("50")},
			},
		},
		ManualValues: map[string][]*models.ManualValue{
			"PF": {
				{Date: date(2024, time.February, 1), Ticker: "PF", Value: dec("1000")},
			},
		},
	}

	cursor := newPositionCursor(snap, "PF")
	cursor.Advance(date(2024, time.December, 31))

	manual, correction := cursor.ManualValue()
	require.NotNil(t, manual)
	assert.True(t, manual.Value.Equal(dec("1000")))
	// only the trade after the snapshot counts
	assert.True(t, correction.Equal(dec("50")))
}
