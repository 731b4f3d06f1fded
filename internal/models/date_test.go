package models

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func dec(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestDateJSONRoundTrip(t *testing.T) {
	d := NewDate(2024, time.March, 5)

	raw, err := json.Marshal(d)
	require.NoError(t, err)
	assert.Equal(t, `"2024-03-05"`, string(raw))

	var parsed Date
	require.NoError(t, json.Unmarshal(raw, &parsed))
	assert.True(t, parsed.Equal(d))
}

func TestParseDateRejectsGarbage(t *testing.T) {
	_, err := ParseDate("05.03.2024")
	assert.Error(t, err)

	_, err = ParseDate("")
	assert.Error(t, err)
}

func TestDateScan(t *testing.T) {
	var d Date
	require.NoError(t, d.Scan("2024-03-05"))
	assert.Equal(t, "2024-03-05", d.String())

	// sqlite drivers sometimes hand back a full timestamp string
	require.NoError(t, d.Scan("2024-03-05 00:00:00"))
	assert.Equal(t, "2024-03-05", d.String())

	require.NoError(t, d.Scan(time.Date(2024, time.March, 5, 13, 30, 0, 0, time.UTC)))
	assert.Equal(t, "2024-03-05", d.String())

	assert.Error(t, d.Scan(42))
}

func TestTradeCostAndBaseCost(t *testing.T) {
	volume := dec("10")
	rate := dec("25")
	trade := Trade{Price: dec("100"), Volume: &volume, Rate: &rate}

	assert.True(t, trade.Cost().Equal(dec("1000")))
	assert.True(t, trade.BaseCost().Equal(dec("40")))

	// null volume counts as a single unit
	unitless := Trade{Price: dec("500")}
	assert.True(t, unitless.Cost().Equal(dec("500")))
	assert.True(t, unitless.BaseCost().Equal(dec("500")))

	// zero rate means the price is already in base currency
	zero := dec("0")
	noRate := Trade{Price: dec("500"), Rate: &zero}
	assert.True(t, noRate.BaseCost().Equal(dec("500")))
}
