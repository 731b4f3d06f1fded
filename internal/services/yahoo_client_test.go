package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/folioapp/folio/internal/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

const chartFixture = `{
  "chart": {
    "result": [{
      "timestamp": [1704153600, 1704240000, 1704326400],
      "indicators": {
        "quote": [{
          "open":  [10.0, null, 12.0],
          "high":  [11.0, null, 13.0],
          "low":   [9.0,  null, 11.5],
          "close": [10.5, null, 12.5]
        }]
      },
      "events": {
        "dividends": {"1704326400": {"amount": 0.25, "date": 1704326400}},
        "splits": {}
      }
    }],
    "error": null
  }
}`

func feedConfig(serverURL string) config.Feeds {
	return config.Feeds{Timeout: 5 * time.Second, YahooURL: serverURL}
}

func TestYahooClientParsesChart(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v8/finance/chart/ABC", r.URL.Path)
		assert.Equal(t, "1d", r.URL.Query().Get("interval"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(chartFixture))
	}))
	defer server.Close()

	client := NewYahooClient(feedConfig(server.URL), zap.NewNop())
	points, err := client.DailyHistory(context.Background(), "ABC", date(2024, time.January, 1))
	require.NoError(t, err)

	// the null middle day is skipped
	require.Len(t, points, 2)
	assert.Equal(t, "2024-01-02", points[0].Date.String())
	assert.True(t, points[0].Close.Equal(dec("10.5")))
	assert.Equal(t, "2024-01-04", points[1].Date.String())
	assert.True(t, points[1].Close.Equal(dec("12.5")))
	assert.True(t, points[1].Dividends.Equal(dec("0.25")))
}

func TestYahooClientReportsAPIError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"chart":{"result":null,"error":{"code":"Not Found","description":"No data found"}}}`))
	}))
	defer server.Close()

	client := NewYahooClient(feedConfig(server.URL), zap.NewNop())
	_, err := client.DailyHistory(context.Background(), "NOPE", date(2024, time.January, 1))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No data found")
}

func TestFundChartClientFiltersByDate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// epoch millis for 2024-01-02 and 2024-03-01
		w.Write([]byte(`[{"x":1704153600000,"value":1.10},{"x":1709251200000,"value":1.25}]`))
	}))
	defer server.Close()

	client := NewFundChartClient(config.Feeds{Timeout: 5 * time.Second}, zap.NewNop())
	points, err := client.DailyHistory(context.Background(), server.URL, date(2024, time.February, 1))
	require.NoError(t, err)

	require.Len(t, points, 1)
	assert.Equal(t, "2024-03-01", points[0].Date.String())
	assert.True(t, points[0].Close.Equal(dec("1.25")))
}
