package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betbot/goalpaca/pkg/schema"
)

func accountJSON() map[string]any {
	raw := map[string]any{
		"id":                      "904837e3-3b76-47ec-b432-046db621571b",
		"account_number":          "010203ABCD",
		"status":                  "ACTIVE",
		"currency":                "USD",
		"multiplier":              "4",
		"daytrade_count":          0,
		"pattern_day_trader":      false,
		"trading_blocked":         false,
		"transfers_blocked":       false,
		"account_blocked":         false,
		"trade_suspended_by_user": false,
		"shorting_enabled":        true,
		"created_at":              "2019-06-12T22:47:07.99658Z",
		"options_trading_level":   2,
		"crypto_status":           "ACTIVE",
	}
	for _, k := range []string{
		"cash", "portfolio_value", "equity", "last_equity", "buying_power", "regt_buying_power",
		"daytrading_buying_power", "non_marginable_buying_power", "long_market_value",
		"short_market_value", "initial_margin", "maintenance_margin", "last_maintenance_margin", "sma",
	} {
		raw[k] = "1000.00"
	}
	return raw
}

func TestAccountSchema(t *testing.T) {
	acct, err := AccountSchema.Parse(accountJSON())
	require.NoError(t, err)
	assert.Equal(t, AccountActive, acct.Status)
	assert.Equal(t, 4, acct.Multiplier)
	assert.Equal(t, "1000", acct.Cash.String())
	require.NotNil(t, acct.OptionsTradingLevel)
	assert.Equal(t, OptionsLongCallPut, *acct.OptionsTradingLevel)
	assert.Equal(t, "Long Call/Put", acct.OptionsTradingLevel.String())
	assert.Nil(t, acct.OptionsApprovedLevel)
	assert.Nil(t, acct.AccruedFees)
	assert.Equal(t, "ACTIVE", acct.CryptoStatus)
}

func TestAccountSchema_Errors(t *testing.T) {
	raw := accountJSON()
	raw["cash"] = "lots"
	raw["options_trading_level"] = 7
	delete(raw, "equity")

	_, err := AccountSchema.Parse(raw)
	var sve *schema.SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, "Account", sve.Schema)
	assert.NotNil(t, sve.Find("cash", schema.InvalidNumericFormat))
	assert.NotNil(t, sve.Find("equity", schema.MissingField))
	assert.NotNil(t, sve.Find("options_trading_level", schema.OutOfRange))
	assert.Len(t, sve.Errors, 3)
}

func TestAccountConfigurations_PartialBody(t *testing.T) {
	level := OptionsCoveredCallCashSecuredPut
	check := DTBPCheckExit
	body, err := schema.SerializeBody(AccountConfigurations{DTBPCheck: &check, MaxOptionsTradingLevel: &level})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"dtbp_check": "exit", "max_options_trading_level": int64(1)}, body)
	assert.NoError(t, AccountConfigurationsSchema.Validate(body))
}

func TestWatchlistAndClock(t *testing.T) {
	_, err := WatchlistSchema.Parse(map[string]any{
		"id":         "fb306e55-16d3-4118-8c3d-c1615fcd4c03",
		"account_id": "not-a-uuid",
		"created_at": "2022-01-31T21:49:05.14628Z",
		"updated_at": "2022-01-31",
		"name":       "",
	})
	var sve *schema.SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, []string{"account_id", "updated_at", "name"}, sve.Fields())

	clock, err := ClockSchema.Parse(map[string]any{
		"timestamp":  "2024-01-02T10:00:00-05:00",
		"is_open":    false,
		"next_open":  "2024-01-02T09:30:00-05:00",
		"next_close": "2024-01-02T16:00:00-05:00",
	})
	require.NoError(t, err)
	assert.False(t, clock.IsOpen)
}
