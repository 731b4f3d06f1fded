package services

import (
	"github.com/folioapp/folio/internal/models"
	"github.com/shopspring/decimal"
)

// position is the running state of one instrument after replaying its ledger
// up to some date. Base-currency figures use each trade's own rate, never the
// FX history; the local figures stay in the instrument currency so market
// profit can be separated from currency movement later.
type position struct {
	Volume       decimal.Decimal // held units, staking included
	StakedVolume decimal.Decimal
	Investment   decimal.Decimal // base currency, buys and positive deposits
	Returned     decimal.Decimal // base currency, sells and negative deposits
	Fees         decimal.Decimal // base currency

	CostLocal     decimal.Decimal // instrument currency, buys only
	ProceedsLocal decimal.Decimal // instrument currency, sells only
	BuyVolume     decimal.Decimal

	Active bool
}

// AvgEntryPrice is the volume-weighted buy price in the instrument currency.
// Undefined until something with volume has been bought.
func (p *position) AvgEntryPrice() *decimal.Decimal {
	if p.BuyVolume.IsZero() {
		return nil
	}
	avg := p.CostLocal.Div(p.BuyVolume)
	return &avg
}

func (p *position) applyTrade(t *models.Trade) {
	p.Active = true
	// Fees are booked in the base currency already; the trade rate converts
	// cost basis and proceeds only.
	if t.Fee != nil {
		p.Fees = p.Fees.Add(*t.Fee)
	}

	// A negative volume is a sell; its (negative) cost becomes positive
	// proceeds. A null volume is a unit-less buy: it costs its price but
	// moves no volume.
	if t.Volume != nil && t.Volume.IsNegative() {
		p.Volume = p.Volume.Add(*t.Volume)
		p.Returned = p.Returned.Sub(t.BaseCost())
		p.ProceedsLocal = p.ProceedsLocal.Sub(t.Cost())
		return
	}
	if t.Volume != nil {
		p.Volume = p.Volume.Add(*t.Volume)
		p.BuyVolume = p.BuyVolume.Add(*t.Volume)
	}
	p.Investment = p.Investment.Add(t.BaseCost())
	p.CostLocal = p.CostLocal.Add(t.Cost())
}

func (p *position) applyDeposit(d *models.Deposit) {
	p.Active = true
	if d.Fee != nil {
		p.Fees = p.Fees.Add(*d.Fee)
	}
	if d.Amount.IsNegative() {
		p.Returned = p.Returned.Sub(d.Amount)
		return
	}
	p.Investment = p.Investment.Add(d.Amount)
}

func (p *position) applyStaking(e *models.StakingEvent) {
	p.Active = true
	p.Volume = p.Volume.Add(e.Volume)
	p.StakedVolume = p.StakedVolume.Add(e.Volume)
}

// positionCursor replays one instrument's ledger events in date order. It is
// advanced with non-decreasing dates, so walking a whole report timeline
// costs one pass over the events regardless of how many dates are evaluated.
type positionCursor struct {
	trades   []*models.Trade
	deposits []*models.Deposit
	staking  []*models.StakingEvent

	// correction state for manual-valuation instruments
	manualValues []*models.ManualValue
	mi           int
	lastManual   *models.ManualValue
	correction   decimal.Decimal // base cost of trades after lastManual.Date

	ti, di, si int
	pos        position
}

func newPositionCursor(snap *Snapshot, ticker string) *positionCursor {
	return &positionCursor{
		trades:       snap.Trades[ticker],
		deposits:     snap.Deposits[ticker],
		staking:      snap.Staking[ticker],
		manualValues: snap.ManualValues[ticker],
	}
}

// Advance consumes every event dated at or before date and returns the
// resulting position. Dates passed in must not decrease.
func (c *positionCursor) Advance(date models.Date) *position {
	for c.mi < len(c.manualValues) && !c.manualValues[c.mi].Date.After(date) {
		c.lastManual = c.manualValues[c.mi]
		c.correction = decimal.Zero
		c.mi++
	}
	for c.ti < len(c.trades) && !c.trades[c.ti].Date.After(date) {
		t := c.trades[c.ti]
		c.pos.applyTrade(t)
		if c.lastManual == nil || t.Date.After(c.lastManual.Date) {
			c.correction = c.correction.Add(t.BaseCost())
		}
		c.ti++
	}
	for c.di < len(c.deposits) && !c.deposits[c.di].Date.After(date) {
		c.pos.applyDeposit(c.deposits[c.di])
		c.di++
	}
	for c.si < len(c.staking) && !c.staking[c.si].Date.After(date) {
		c.pos.applyStaking(c.staking[c.si])
		c.si++
	}
	return &c.pos
}

// ManualValue returns the manual snapshot in effect after the last Advance,
// together with the accumulated base cost of trades recorded since it. Nil
// while no snapshot has been reached.
func (c *positionCursor) ManualValue() (*models.ManualValue, decimal.Decimal) {
	return c.lastManual, c.correction
}
