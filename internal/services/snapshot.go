package services

import (
	"context"
	"fmt"
	"sync"

	"github.com/folioapp/folio/internal/models"
	"github.com/folioapp/folio/internal/repositories"
)

// fxPair identifies one conversion series.
type fxPair struct {
	From string
	To   string
}

// Snapshot is an immutable in-memory mirror of the ledger and history
// tables, grouped per instrument and sorted ascending by date. The valuation
// engine runs against a snapshot so a report sees one consistent state and
// never touches the database mid-computation.
type Snapshot struct {
	Instruments map[string]*models.Instrument
	Tickers     []string // sorted

	Trades       map[string][]*models.Trade
	Deposits     map[string][]*models.Deposit
	Dividends    map[string][]*models.Dividend
	Staking      map[string][]*models.StakingEvent
	ManualValues map[string][]*models.ManualValue

	Prices map[string][]*models.PricePoint
	Fx     map[fxPair][]*models.FxPoint
}

// HasActivity reports whether the instrument appears in any ledger table.
func (s *Snapshot) HasActivity(ticker string) bool {
	return len(s.Trades[ticker]) > 0 ||
		len(s.Deposits[ticker]) > 0 ||
		len(s.Staking[ticker]) > 0 ||
		len(s.ManualValues[ticker]) > 0
}

// SnapshotCache lazily builds a Snapshot and hands the same one to every
// reader until a write invalidates it. Reads share an RLock; a rebuild takes
// the write lock and re-checks so concurrent readers rebuild only once.
type SnapshotCache struct {
	instruments repositories.InstrumentRepository
	ledger      repositories.LedgerRepository
	history     repositories.HistoryRepository

	mu   sync.RWMutex
	snap *Snapshot
}

// NewSnapshotCache creates a snapshot cache over the given repositories
func NewSnapshotCache(instruments repositories.InstrumentRepository, ledger repositories.LedgerRepository, history repositories.HistoryRepository) *SnapshotCache {
	return &SnapshotCache{
		instruments: instruments,
		ledger:      ledger,
		history:     history,
	}
}

// Get returns the current snapshot, building it if needed.
func (c *SnapshotCache) Get(ctx context.Context) (*Snapshot, error) {
	c.mu.RLock()
	snap := c.snap
	c.mu.RUnlock()
	if snap != nil {
		return snap, nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.snap != nil {
		return c.snap, nil
	}

	snap, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	c.snap = snap
	return snap, nil
}

// Invalidate drops the cached snapshot. Every write path calls this after a
// successful mutation so the next report sees the new state.
func (c *SnapshotCache) Invalidate() {
	c.mu.Lock()
	c.snap = nil
	c.mu.Unlock()
}

func (c *SnapshotCache) load(ctx context.Context) (*Snapshot, error) {
	snap := &Snapshot{
		Instruments:  make(map[string]*models.Instrument),
		Trades:       make(map[string][]*models.Trade),
		Deposits:     make(map[string][]*models.Deposit),
		Dividends:    make(map[string][]*models.Dividend),
		Staking:      make(map[string][]*models.StakingEvent),
		ManualValues: make(map[string][]*models.ManualValue),
		Prices:       make(map[string][]*models.PricePoint),
		Fx:           make(map[fxPair][]*models.FxPoint),
	}

	instruments, err := c.instruments.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}
	for _, instrument := range instruments {
		snap.Instruments[instrument.Ticker] = instrument
		snap.Tickers = append(snap.Tickers, instrument.Ticker)
	}

	trades, err := c.ledger.AllTrades(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}
	for _, trade := range trades {
		snap.Trades[trade.Ticker] = append(snap.Trades[trade.Ticker], trade)
	}

	deposits, err := c.ledger.AllDeposits(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}
	for _, deposit := range deposits {
		snap.Deposits[deposit.Ticker] = append(snap.Deposits[deposit.Ticker], deposit)
	}

	dividends, err := c.ledger.AllDividends(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}
	for _, dividend := range dividends {
		snap.Dividends[dividend.Ticker] = append(snap.Dividends[dividend.Ticker], dividend)
	}

	staking, err := c.ledger.AllStakingEvents(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}
	for _, event := range staking {
		snap.Staking[event.Ticker] = append(snap.Staking[event.Ticker], event)
	}

	values, err := c.ledger.AllManualValues(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}
	for _, value := range values {
		snap.ManualValues[value.Ticker] = append(snap.ManualValues[value.Ticker], value)
	}

	prices, err := c.history.AllPrices(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}
	for _, point := range prices {
		snap.Prices[point.Ticker] = append(snap.Prices[point.Ticker], point)
	}

	fx, err := c.history.AllFx(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to build snapshot: %w", err)
	}
	for _, point := range fx {
		key := fxPair{From: point.FromCurrency, To: point.ToCurrency}
		snap.Fx[key] = append(snap.Fx[key], point)
	}

	return snap, nil
}
