package services

import (
	"context"
	"sort"
	"time"

	"github.com/folioapp/folio/internal/models"
	"github.com/folioapp/folio/internal/repositories"
	"github.com/shopspring/decimal"
)

type valuationService struct {
	cache        *SnapshotCache
	ledger       repositories.LedgerRepository
	history      repositories.HistoryRepository
	baseCurrency string
}

// NewValuationService creates the report engine over a snapshot cache
func NewValuationService(cache *SnapshotCache, ledger repositories.LedgerRepository, history repositories.HistoryRepository, baseCurrency string) ValuationService {
	return &valuationService{
		cache:        cache,
		ledger:       ledger,
		history:      history,
		baseCurrency: baseCurrency,
	}
}

func (s *valuationService) Overview(ctx context.Context) ([]*models.OverviewRow, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	today := models.DateOf(time.Now())
	rows := []*models.OverviewRow{}
	for _, ticker := range snap.Tickers {
		if !snap.HasActivity(ticker) {
			continue
		}
		instrument := snap.Instruments[ticker]
		cursor := newPositionCursor(snap, ticker)
		pos := cursor.Advance(today)

		row := &models.OverviewRow{
			Ticker:     ticker,
			Currency:   instrument.Currency,
			Evaluation: instrument.Evaluation,
			Invested:   pos.Investment,
			Returned:   pos.Returned,
			Fee:        pos.Fees,
		}

		if instrument.IsManual() {
			s.fillManualRow(snap, instrument, cursor, pos, today, row)
		} else {
			s.fillMarketRow(snap, instrument, pos, today, row)
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// fillMarketRow values a market-mode position and splits its profit into the
// part explained by price movement in the instrument currency, the part
// earned as staking rewards, and the remainder attributable to FX drift.
// Without a resolvable price and rate the value fields stay null.
func (s *valuationService) fillMarketRow(snap *Snapshot, instrument *models.Instrument, pos *position, date models.Date, row *models.OverviewRow) {
	volume := pos.Volume
	row.Volume = &volume
	row.AvgPrice = pos.AvgEntryPrice()

	price := snap.PriceAsOf(instrument.Ticker, date)
	row.LastPrice = price
	fx := snap.FxAsOf(instrument.Currency, s.baseCurrency, date)
	if price == nil || fx == nil {
		return
	}

	value := pos.Volume.Mul(*price).Mul(*fx)
	profit := value.Add(pos.Returned).Sub(pos.Investment).Sub(pos.Fees)
	row.Value = &value
	row.Profit = &profit

	staking := pos.StakedVolume.Mul(*price).Mul(*fx)
	tradedVolume := pos.Volume.Sub(pos.StakedVolume)
	marketProfit := tradedVolume.Mul(*price).Add(pos.ProceedsLocal).Sub(pos.CostLocal).Mul(*fx)
	gross := value.Add(pos.Returned).Sub(pos.Investment)
	fxProfit := gross.Sub(marketProfit).Sub(staking)
	row.MarketProfit = &marketProfit
	row.FxProfit = &fxProfit
	row.StakingRewards = &staking
}

// fillManualRow values a manually valued position: the latest self-reported
// valuation converted at today's rate, corrected by the base cost of trades
// booked since that valuation was taken.
func (s *valuationService) fillManualRow(snap *Snapshot, instrument *models.Instrument, cursor *positionCursor, pos *position, date models.Date, row *models.OverviewRow) {
	manual, correction := cursor.ManualValue()
	if manual == nil {
		return
	}
	fx := snap.FxAsOf(instrument.Currency, s.baseCurrency, date)
	if fx == nil {
		return
	}

	value := manual.Value.Mul(*fx).Add(correction)
	profit := value.Add(pos.Returned).Sub(pos.Investment).Sub(pos.Fees)
	row.Value = &value
	row.Profit = &profit
	row.ManualValueCorrection = &correction
}

// instrumentValue resolves the base-currency value of one position on one
// date, or nil while the instrument is not measurable there.
func (s *valuationService) instrumentValue(snap *Snapshot, instrument *models.Instrument, cursor *positionCursor, pos *position, date models.Date) *decimal.Decimal {
	fx := snap.FxAsOf(instrument.Currency, s.baseCurrency, date)
	if fx == nil {
		return nil
	}
	if instrument.IsManual() {
		manual, correction := cursor.ManualValue()
		if manual == nil {
			return nil
		}
		value := manual.Value.Mul(*fx).Add(correction)
		return &value
	}
	price := snap.PriceAsOf(instrument.Ticker, date)
	if price == nil {
		return nil
	}
	value := pos.Volume.Mul(*price).Mul(*fx)
	return &value
}

func (s *valuationService) Performance(ctx context.Context) (models.PerformanceReport, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	report := models.PerformanceReport{}
	for _, ticker := range snap.Tickers {
		if !snap.HasActivity(ticker) {
			continue
		}
		instrument := snap.Instruments[ticker]
		cursor := newPositionCursor(snap, ticker)

		var prev models.PerformanceRow
		for _, year := range s.activeYears(snap, ticker) {
			yearEnd := models.NewDate(year, time.December, 31)
			pos := cursor.Advance(yearEnd)

			value := decimal.Zero
			if v := s.instrumentValue(snap, instrument, cursor, pos, yearEnd); v != nil {
				value = *v
			}
			current := models.PerformanceRow{
				Fee:        pos.Fees,
				Investment: pos.Investment,
				Value:      value,
				Profit:     value.Add(pos.Returned).Sub(pos.Investment).Sub(pos.Fees),
			}

			if report[year] == nil {
				report[year] = map[string]models.PerformanceRow{}
			}
			report[year][ticker] = models.PerformanceRow{
				Fee:        current.Fee.Sub(prev.Fee),
				Investment: current.Investment.Sub(prev.Investment),
				Value:      current.Value.Sub(prev.Value),
				Profit:     current.Profit.Sub(prev.Profit),
			}
			prev = current
		}
	}
	return report, nil
}

// activeYears lists, ascending, every calendar year in which the instrument
// has a ledger entry or a stored price. Years are skipped entirely when
// nothing happened; deltas then chain across the gap.
func (s *valuationService) activeYears(snap *Snapshot, ticker string) []int {
	seen := map[int]bool{}
	for _, t := range snap.Trades[ticker] {
		seen[t.Date.Year()] = true
	}
	for _, d := range snap.Deposits[ticker] {
		seen[d.Date.Year()] = true
	}
	for _, d := range snap.Dividends[ticker] {
		seen[d.Date.Year()] = true
	}
	for _, e := range snap.Staking[ticker] {
		seen[e.Date.Year()] = true
	}
	for _, v := range snap.ManualValues[ticker] {
		seen[v.Date.Year()] = true
	}
	for _, p := range snap.Prices[ticker] {
		seen[p.Date.Year()] = true
	}

	years := make([]int, 0, len(seen))
	for year := range seen {
		years = append(years, year)
	}
	sort.Ints(years)
	return years
}

func (s *valuationService) Chart(ctx context.Context, filter models.ChartFilter) ([]*models.ChartRow, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	tickers := s.filteredTickers(snap, filter)
	dates := s.chartDates(snap, tickers)

	cursors := make(map[string]*positionCursor, len(tickers))
	for _, ticker := range tickers {
		cursors[ticker] = newPositionCursor(snap, ticker)
	}

	rows := []*models.ChartRow{}
	for _, date := range dates {
		row := &models.ChartRow{
			Date:       date,
			Fee:        decimal.Zero,
			Investment: decimal.Zero,
			Returned:   decimal.Zero,
			Value:      decimal.Zero,
		}
		for _, ticker := range tickers {
			cursor := cursors[ticker]
			pos := cursor.Advance(date)
			row.Fee = row.Fee.Add(pos.Fees)
			row.Investment = row.Investment.Add(pos.Investment)
			row.Returned = row.Returned.Add(pos.Returned)
			if v := s.instrumentValue(snap, snap.Instruments[ticker], cursor, pos, date); v != nil {
				row.Value = row.Value.Add(*v)
			}
		}
		// A date before any money moved in says nothing; drop it.
		if row.Investment.IsZero() {
			continue
		}
		row.Profit = row.Value.Add(row.Returned).Sub(row.Investment).Sub(row.Fee)
		rows = append(rows, row)
	}
	return rows, nil
}

func (s *valuationService) filteredTickers(snap *Snapshot, filter models.ChartFilter) []string {
	tickers := []string{}
	for _, ticker := range snap.Tickers {
		if !snap.HasActivity(ticker) {
			continue
		}
		if filter.Ticker != "" && ticker != filter.Ticker {
			continue
		}
		if filter.Type != "" && snap.Instruments[ticker].Type != filter.Type {
			continue
		}
		tickers = append(tickers, ticker)
	}
	return tickers
}

// chartDates unions every date on which something observable changed for the
// given instruments: a trade, a stored price, a relevant FX rate or a manual
// valuation. Deposits alone do not add chart points.
func (s *valuationService) chartDates(snap *Snapshot, tickers []string) []models.Date {
	seen := map[string]models.Date{}
	currencies := map[string]bool{}
	for _, ticker := range tickers {
		for _, t := range snap.Trades[ticker] {
			seen[t.Date.String()] = t.Date
		}
		for _, p := range snap.Prices[ticker] {
			seen[p.Date.String()] = p.Date
		}
		for _, v := range snap.ManualValues[ticker] {
			seen[v.Date.String()] = v.Date
		}
		currencies[snap.Instruments[ticker].Currency] = true
	}
	for currency := range currencies {
		for _, p := range snap.Fx[fxPair{From: currency, To: s.baseCurrency}] {
			seen[p.Date.String()] = p.Date
		}
	}

	dates := make([]models.Date, 0, len(seen))
	for _, date := range seen {
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates
}

func (s *valuationService) DividendTotals(ctx context.Context) ([]*models.DividendTotal, error) {
	snap, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}

	totals := []*models.DividendTotal{}
	for _, ticker := range snap.Tickers {
		dividends := snap.Dividends[ticker]
		if len(dividends) == 0 {
			continue
		}
		instrument := snap.Instruments[ticker]
		currency := instrument.Currency
		if instrument.DividendCurrency != nil && *instrument.DividendCurrency != "" {
			currency = *instrument.DividendCurrency
		}

		total := decimal.Zero
		totalBase := decimal.Zero
		measurable := false
		for _, dividend := range dividends {
			total = total.Add(dividend.Amount)
			// Payments with no rate in effect yet are left out of the
			// base total rather than poisoning it.
			if fx := snap.FxAsOf(currency, s.baseCurrency, dividend.Date); fx != nil {
				totalBase = totalBase.Add(dividend.Amount.Mul(*fx))
				measurable = true
			}
		}

		row := &models.DividendTotal{
			Ticker:   ticker,
			Currency: currency,
			Total:    total,
		}
		if measurable {
			row.TotalBase = &totalBase
		}
		totals = append(totals, row)
	}
	return totals, nil
}

func (s *valuationService) LastData(ctx context.Context) (*models.LastData, error) {
	historical, err := s.history.LastAnyPriceDate(ctx)
	if err != nil {
		return nil, err
	}
	fx, err := s.history.LastAnyFxDate(ctx)
	if err != nil {
		return nil, err
	}
	manual, err := s.ledger.LastManualValueDate(ctx)
	if err != nil {
		return nil, err
	}
	return &models.LastData{
		Historical:  historical,
		Fx:          fx,
		ManualValue: manual,
	}, nil
}
