package services

import (
	"sort"

	"github.com/folioapp/folio/internal/models"
	"github.com/shopspring/decimal"
)

// PriceAsOf resolves the closing price of ticker in effect on date: the
// close of the latest stored day at or before it. Prices carry forward over
// gaps (weekends, stale feeds) but never backward; with no stored day at or
// before the date the instrument is not yet measurable and nil is returned.
func (s *Snapshot) PriceAsOf(ticker string, date models.Date) *decimal.Decimal {
	series := s.Prices[ticker]
	i := sort.Search(len(series), func(i int) bool {
		return series[i].Date.After(date)
	})
	if i == 0 {
		return nil
	}
	close := series[i-1].Close
	return &close
}

// FxAsOf resolves the conversion rate from one currency to another in effect
// on date, with the same carry-forward rule as PriceAsOf. Converting a
// currency to itself is always rate one, whether or not FX history exists.
func (s *Snapshot) FxAsOf(from, to string, date models.Date) *decimal.Decimal {
	if from == to {
		one := decimal.NewFromInt(1)
		return &one
	}
	series := s.Fx[fxPair{From: from, To: to}]
	i := sort.Search(len(series), func(i int) bool {
		return series[i].Date.After(date)
	})
	if i == 0 {
		return nil
	}
	close := series[i-1].Close
	return &close
}
