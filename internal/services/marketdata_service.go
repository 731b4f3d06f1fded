package services

import (
	"context"
	"fmt"

	"github.com/folioapp/folio/internal/models"
	"github.com/folioapp/folio/internal/repositories"
	"go.uber.org/zap"
)

type marketDataService struct {
	instruments repositories.InstrumentRepository
	ledger      repositories.LedgerRepository
	history     repositories.HistoryRepository
	cache       *SnapshotCache

	yahoo PriceFeed
	fund  PriceFeed

	baseCurrency string
	log          *zap.Logger
}

// NewMarketDataService creates the feed refresh service
func NewMarketDataService(
	instruments repositories.InstrumentRepository,
	ledger repositories.LedgerRepository,
	history repositories.HistoryRepository,
	cache *SnapshotCache,
	yahoo PriceFeed,
	fund PriceFeed,
	baseCurrency string,
	log *zap.Logger,
) MarketDataService {
	return &marketDataService{
		instruments:  instruments,
		ledger:       ledger,
		history:      history,
		cache:        cache,
		yahoo:        yahoo,
		fund:         fund,
		baseCurrency: baseCurrency,
		log:          log.Named("marketdata"),
	}
}

// RefreshPrices pulls daily history for every priced instrument that has
// trades, from its last stored day (re-fetched, feeds revise it intraday)
// or its first trade date. A failing instrument is logged and skipped; the
// refresh as a whole still succeeds.
func (s *marketDataService) RefreshPrices(ctx context.Context) error {
	instruments, err := s.instruments.List(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh prices: %w", err)
	}
	firstTrade, err := s.firstTradeDates(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh prices: %w", err)
	}

	for _, instrument := range instruments {
		if instrument.IsManual() {
			continue
		}
		start, ok := firstTrade[instrument.Ticker]
		if !ok {
			continue
		}
		if err := s.refreshInstrument(ctx, instrument, start); err != nil {
			s.log.Warn("price refresh failed",
				zap.String("ticker", instrument.Ticker),
				zap.Error(err))
		}
	}

	s.cache.Invalidate()
	return nil
}

func (s *marketDataService) refreshInstrument(ctx context.Context, instrument *models.Instrument, firstTrade models.Date) error {
	from := firstTrade
	if last, err := s.history.LastPriceDate(ctx, instrument.Ticker); err != nil {
		return err
	} else if last != nil {
		from = *last
	}

	var points []*models.PricePoint
	var err error
	switch instrument.Evaluation {
	case models.EvaluationHTTP:
		if instrument.EvalParam == nil || *instrument.EvalParam == "" {
			return fmt.Errorf("instrument %s has no feed url", instrument.Ticker)
		}
		points, err = s.fund.DailyHistory(ctx, *instrument.EvalParam, from)
	default:
		points, err = s.yahoo.DailyHistory(ctx, instrument.FeedTicker(), from)
	}
	if err != nil {
		return err
	}

	// Feeds serve their own symbols; rows are stored under the ledger ticker.
	for _, point := range points {
		point.Ticker = instrument.Ticker
	}
	if err := s.history.UpsertPrices(ctx, points); err != nil {
		return err
	}

	s.log.Info("refreshed prices",
		zap.String("ticker", instrument.Ticker),
		zap.Int("days", len(points)))
	return nil
}

// RefreshFX pulls daily rates toward the base currency for every foreign
// currency the ledger touches, trading or dividend side. Start dates come
// from the earliest ledger activity in that currency.
func (s *marketDataService) RefreshFX(ctx context.Context) error {
	currencies, err := s.foreignCurrencies(ctx)
	if err != nil {
		return fmt.Errorf("failed to refresh fx: %w", err)
	}

	for currency, start := range currencies {
		if err := s.refreshPair(ctx, currency, start); err != nil {
			s.log.Warn("fx refresh failed",
				zap.String("from", currency),
				zap.String("to", s.baseCurrency),
				zap.Error(err))
		}
	}

	s.cache.Invalidate()
	return nil
}

func (s *marketDataService) refreshPair(ctx context.Context, currency string, start models.Date) error {
	from := start
	if last, err := s.history.LastFxDate(ctx, currency, s.baseCurrency); err != nil {
		return err
	} else if last != nil {
		from = *last
	}

	candles, err := s.yahoo.DailyHistory(ctx, FxTicker(currency, s.baseCurrency), from)
	if err != nil {
		return err
	}

	points := make([]*models.FxPoint, 0, len(candles))
	for _, candle := range candles {
		points = append(points, &models.FxPoint{
			Date:         candle.Date,
			FromCurrency: currency,
			ToCurrency:   s.baseCurrency,
			Open:         candle.Open,
			High:         candle.High,
			Low:          candle.Low,
			Close:        candle.Close,
		})
	}
	if err := s.history.UpsertFxPoints(ctx, points); err != nil {
		return err
	}

	s.log.Info("refreshed fx rates",
		zap.String("from", currency),
		zap.String("to", s.baseCurrency),
		zap.Int("days", len(points)))
	return nil
}

// firstTradeDates maps each ticker to its earliest trade date.
func (s *marketDataService) firstTradeDates(ctx context.Context) (map[string]models.Date, error) {
	trades, err := s.ledger.AllTrades(ctx)
	if err != nil {
		return nil, err
	}
	first := map[string]models.Date{}
	for _, trade := range trades {
		if _, ok := first[trade.Ticker]; !ok {
			first[trade.Ticker] = trade.Date
		}
	}
	return first, nil
}

// foreignCurrencies maps each non-base currency in use to the earliest date
// its rate is needed: first ledger activity for instrument currencies, first
// payment for dividend currencies.
func (s *marketDataService) foreignCurrencies(ctx context.Context) (map[string]models.Date, error) {
	instruments, err := s.instruments.List(ctx)
	if err != nil {
		return nil, err
	}
	firstActivity, firstDividend, err := s.firstActivityDates(ctx)
	if err != nil {
		return nil, err
	}

	need := map[string]models.Date{}
	observe := func(currency string, date models.Date, ok bool) {
		if !ok || currency == s.baseCurrency {
			return
		}
		if existing, seen := need[currency]; !seen || date.Before(existing) {
			need[currency] = date
		}
	}
	for _, instrument := range instruments {
		date, ok := firstActivity[instrument.Ticker]
		observe(instrument.Currency, date, ok)

		divDate, ok := firstDividend[instrument.Ticker]
		divCurrency := instrument.Currency
		if instrument.DividendCurrency != nil && *instrument.DividendCurrency != "" {
			divCurrency = *instrument.DividendCurrency
		}
		observe(divCurrency, divDate, ok)
	}
	return need, nil
}

func (s *marketDataService) firstActivityDates(ctx context.Context) (activity, dividends map[string]models.Date, err error) {
	activity = map[string]models.Date{}
	dividends = map[string]models.Date{}
	record := func(into map[string]models.Date, ticker string, date models.Date) {
		if existing, ok := into[ticker]; !ok || date.Before(existing) {
			into[ticker] = date
		}
	}

	trades, err := s.ledger.AllTrades(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, t := range trades {
		record(activity, t.Ticker, t.Date)
	}
	deposits, err := s.ledger.AllDeposits(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, d := range deposits {
		record(activity, d.Ticker, d.Date)
	}
	staking, err := s.ledger.AllStakingEvents(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, e := range staking {
		record(activity, e.Ticker, e.Date)
	}
	values, err := s.ledger.AllManualValues(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, v := range values {
		record(activity, v.Ticker, v.Date)
	}
	divs, err := s.ledger.AllDividends(ctx)
	if err != nil {
		return nil, nil, err
	}
	for _, d := range divs {
		record(activity, d.Ticker, d.Date)
		record(dividends, d.Ticker, d.Date)
	}
	return activity, dividends, nil
}
