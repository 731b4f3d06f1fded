package services

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"time"

	"github.com/folioapp/folio/internal/config"
	"github.com/folioapp/folio/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// fxTickerOverrides maps currency pairs whose Yahoo symbol does not follow
// the usual "{FROM}{TO}=X" scheme.
var fxTickerOverrides = map[fxPair]string{
	{From: "USD", To: "CZK"}: "CZK=X",
}

// FxTicker returns the Yahoo symbol quoting one unit of from in to.
func FxTicker(from, to string) string {
	if override, ok := fxTickerOverrides[fxPair{From: from, To: to}]; ok {
		return override
	}
	return from + to + "=X"
}

// YahooClient fetches daily candles from the Yahoo Finance chart API. The
// same endpoint serves equities, crypto and FX pairs, so one client covers
// both the price and the rate refresh.
type YahooClient struct {
	client *resty.Client
	log    *zap.Logger
}

// NewYahooClient creates a Yahoo Finance chart API client
func NewYahooClient(cfg config.Feeds, log *zap.Logger) *YahooClient {
	client := resty.New().
		SetDebug(cfg.Debug).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetBaseURL(cfg.YahooURL).
		SetHeader("User-Agent", "Mozilla/5.0 (X11; Linux x86_64)")
	return &YahooClient{client: client, log: log.With(zap.String("client", "yahoo"))}
}

// yahooChartResponse is the relevant subset of the v8 chart payload.
type yahooChartResponse struct {
	Chart struct {
		Result []struct {
			Timestamp  []int64 `json:"timestamp"`
			Indicators struct {
				Quote []struct {
					Open  []*float64 `json:"open"`
					High  []*float64 `json:"high"`
					Low   []*float64 `json:"low"`
					Close []*float64 `json:"close"`
				} `json:"quote"`
			} `json:"indicators"`
			Events struct {
				Dividends map[string]struct {
					Amount float64 `json:"amount"`
					Date   int64   `json:"date"`
				} `json:"dividends"`
				Splits map[string]struct {
					Numerator   float64 `json:"numerator"`
					Denominator float64 `json:"denominator"`
					Date        int64   `json:"date"`
				} `json:"splits"`
			} `json:"events"`
		} `json:"result"`
		Error *struct {
			Code        string `json:"code"`
			Description string `json:"description"`
		} `json:"error"`
	} `json:"chart"`
}

// DailyHistory fetches one-day candles for symbol from the given date
// through today. Days the feed reports with null quotes (holidays, halted
// sessions) are skipped.
func (c *YahooClient) DailyHistory(ctx context.Context, symbol string, from models.Date) ([]*models.PricePoint, error) {
	c.log.Debug("fetching price history", zap.String("symbol", symbol), zap.String("from", from.String()))

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		SetQueryParams(map[string]string{
			"interval": "1d",
			"period1":  fmt.Sprintf("%d", from.Unix()),
			"period2":  fmt.Sprintf("%d", time.Now().Unix()),
			"events":   "div,splits",
		}).
		Get("/v8/finance/chart/" + url.PathEscape(symbol))
	if err != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %w", symbol, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch history for %s: status %d", symbol, resp.StatusCode())
	}

	var payload yahooChartResponse
	if err := json.Unmarshal(resp.Body(), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse history for %s: %w", symbol, err)
	}
	if payload.Chart.Error != nil {
		return nil, fmt.Errorf("failed to fetch history for %s: %s", symbol, payload.Chart.Error.Description)
	}
	if len(payload.Chart.Result) == 0 || len(payload.Chart.Result[0].Indicators.Quote) == 0 {
		c.log.Warn("no history returned", zap.String("symbol", symbol))
		return []*models.PricePoint{}, nil
	}

	result := payload.Chart.Result[0]
	quote := result.Indicators.Quote[0]

	dividends := map[string]decimal.Decimal{}
	for _, d := range result.Events.Dividends {
		date := models.DateOf(time.Unix(d.Date, 0).UTC())
		dividends[date.String()] = decimal.NewFromFloat(d.Amount)
	}
	splits := map[string]decimal.Decimal{}
	for _, s := range result.Events.Splits {
		if s.Denominator == 0 {
			continue
		}
		date := models.DateOf(time.Unix(s.Date, 0).UTC())
		splits[date.String()] = decimal.NewFromFloat(s.Numerator / s.Denominator)
	}

	points := make([]*models.PricePoint, 0, len(result.Timestamp))
	for i, ts := range result.Timestamp {
		if i >= len(quote.Open) || i >= len(quote.High) || i >= len(quote.Low) || i >= len(quote.Close) {
			break
		}
		if quote.Open[i] == nil || quote.High[i] == nil || quote.Low[i] == nil || quote.Close[i] == nil {
			continue
		}
		date := models.DateOf(time.Unix(ts, 0).UTC())
		point := &models.PricePoint{
			Date:      date,
			Ticker:    symbol,
			Open:      decimal.NewFromFloat(*quote.Open[i]),
			High:      decimal.NewFromFloat(*quote.High[i]),
			Low:       decimal.NewFromFloat(*quote.Low[i]),
			Close:     decimal.NewFromFloat(*quote.Close[i]),
			Dividends: dividends[date.String()],
			Splits:    splits[date.String()],
		}
		points = append(points, point)
	}

	c.log.Debug("fetched price history", zap.String("symbol", symbol), zap.Int("days", len(points)))
	return points, nil
}

var _ PriceFeed = (*YahooClient)(nil)
