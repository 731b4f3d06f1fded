package services

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/folioapp/folio/internal/config"
	"github.com/folioapp/folio/internal/models"
	"github.com/go-resty/resty/v2"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// FundChartClient fetches NAV series from fund providers that expose their
// website chart data as JSON: a flat array of {x: epoch millis, value: NAV}.
// The instrument's eval_param carries the full chart URL.
type FundChartClient struct {
	client *resty.Client
	log    *zap.Logger
}

// NewFundChartClient creates a fund NAV chart client
func NewFundChartClient(cfg config.Feeds, log *zap.Logger) *FundChartClient {
	client := resty.New().
		SetDebug(cfg.Debug).
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount)
	return &FundChartClient{client: client, log: log.With(zap.String("client", "fundchart"))}
}

type fundChartPoint struct {
	X     int64   `json:"x"`
	Value float64 `json:"value"`
}

// DailyHistory fetches the NAV series behind chartURL and returns the days
// from the given date onward. Funds publish a single daily NAV, so all four
// candle fields carry the same number.
func (c *FundChartClient) DailyHistory(ctx context.Context, chartURL string, from models.Date) ([]*models.PricePoint, error) {
	c.log.Debug("fetching fund NAV history", zap.String("url", chartURL), zap.String("from", from.String()))

	resp, err := c.client.R().
		SetContext(ctx).
		SetHeader("Accept", "application/json").
		Get(chartURL)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch fund chart %s: %w", chartURL, err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("failed to fetch fund chart %s: status %d", chartURL, resp.StatusCode())
	}

	var raw []fundChartPoint
	if err := json.Unmarshal(resp.Body(), &raw); err != nil {
		return nil, fmt.Errorf("failed to parse fund chart %s: %w", chartURL, err)
	}

	points := make([]*models.PricePoint, 0, len(raw))
	for _, p := range raw {
		date := models.DateOf(time.UnixMilli(p.X).UTC())
		if date.Before(from) {
			continue
		}
		nav := decimal.NewFromFloat(p.Value)
		points = append(points, &models.PricePoint{
			Date:  date,
			Open:  nav,
			High:  nav,
			Low:   nav,
			Close: nav,
		})
	}

	c.log.Debug("fetched fund NAV history", zap.String("url", chartURL), zap.Int("days", len(points)))
	return points, nil
}

var _ PriceFeed = (*FundChartClient)(nil)
