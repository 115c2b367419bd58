package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betbot/goalpaca/pkg/schema"
)

func treasuryJSON() map[string]any {
	return map[string]any{
		"cusip":                   "912797GL5",
		"isin":                    "US912797GL59",
		"bond_status":             "outstanding",
		"tradable":                true,
		"subtype":                 "bill",
		"issue_date":              "2023-08-01",
		"maturity_date":           "2024-01-30",
		"description":             "United States Treasury Bill",
		"description_short":       "T-Bill 0 01/30/24",
		"close_price":             99.33,
		"close_price_date":        "2023-10-02",
		"close_yield_to_maturity": 5.51,
		"close_yield_to_worst":    5.51,
		"coupon":                  0,
		"coupon_type":             "zero",
		"coupon_frequency":        "zero",
	}
}

func TestTreasuriesResponse(t *testing.T) {
	good := treasuryJSON()
	good["cusip"] = "912797GL5XYZ"

	list, err := TreasuriesResponse.Convert(map[string]any{"us_treasuries": []any{good}})
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, TreasuryBill, list[0].Subtype)
	assert.Equal(t, CouponNone, list[0].CouponFrequency)
	require.NotNil(t, list[0].ClosePrice)
	assert.Equal(t, 99.33, *list[0].ClosePrice)

	_, err = TreasuriesResponse.Convert(map[string]any{"us_treasuries": []any{treasuryJSON()}})
	var sve *schema.SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.NotNil(t, sve.Find("us_treasuries.0.cusip", schema.OutOfRange))
}

func TestTreasuriesQuery_Limits(t *testing.T) {
	ids := make([]string, 1001)
	for i := range ids {
		ids[i] = "US912797GL59"
	}
	params, err := schema.SerializeQuery(TreasuriesQuery{ISINs: ids})
	require.NoError(t, err)
	err = TreasuriesQuerySchema.Validate(params.Raw())
	var sve *schema.SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.NotNil(t, sve.Find("isins", schema.OutOfRange))

	params, err = schema.SerializeQuery(TreasuriesQuery{ISINs: ids[:1000]})
	require.NoError(t, err)
	assert.NoError(t, TreasuriesQuerySchema.Validate(params.Raw()))
}

func TestOptionContractsPage(t *testing.T) {
	page, err := OptionContractsPageSchema.Parse(map[string]any{
		"option_contracts": []any{map[string]any{
			"id":                  "6e58f870-fe73-4583-81e4-b9a37892c36f",
			"symbol":              "AAPL240119C00100000",
			"name":                "AAPL Jan 19 2024 100 Call",
			"status":              "active",
			"tradable":            true,
			"expiration_date":     "2024-01-19",
			"root_symbol":         "AAPL",
			"underlying_symbol":   "AAPL",
			"underlying_asset_id": "b0b6dd9d-8b9b-48a9-ba46-b9d54906e415",
			"type":                "call",
			"style":               "american",
			"strike_price":        "100",
			"multiplier":          "100",
			"size":                "100",
			"open_interest":       "6832",
			"open_interest_date":  "2023-12-11",
			"close_price":         "94.1",
			"close_price_date":    "2023-12-11",
			"deliverables": []any{map[string]any{
				"type":                  "equity",
				"symbol":                "AAPL",
				"asset_id":              "b0b6dd9d-8b9b-48a9-ba46-b9d54906e415",
				"amount":                "100",
				"allocation_percentage": "100",
				"settlement_type":       "T+2",
				"settlement_method":     "CCC",
				"delayed_settlement":    false,
			}},
		}},
		"next_page_token": "MTAwMA==",
	})
	require.NoError(t, err)
	require.Len(t, page.Contracts, 1)
	c := page.Contracts[0]
	assert.Equal(t, 100.0, c.StrikePrice)
	assert.Equal(t, ContractCall, c.Type)
	require.Len(t, c.Deliverables, 1)
	assert.Equal(t, SettlementT2, c.Deliverables[0].SettlementType)
	require.NotNil(t, page.NextPageToken)
	assert.Equal(t, "MTAwMA==", *page.NextPageToken)
}

func TestAssetsQuery_RoundTrip(t *testing.T) {
	class := AssetClassUSOption
	q := AssetsQuery{AssetClass: &class, Attributes: []AssetAttribute{AttrPTPNoException, AttrHasOptions}}
	params, err := schema.SerializeQuery(q)
	require.NoError(t, err)
	assert.Equal(t, "ptp_no_exception,has_options", params["attributes"])

	parsed, err := AssetsQuerySchema.Parse(params.Raw())
	require.NoError(t, err)
	assert.Equal(t, q, parsed)

	params["attributes"] = "ipo,bogus"
	err = AssetsQuerySchema.Validate(params.Raw())
	var sve *schema.SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.Equal(t, []string{"attributes.1"}, sve.Fields())
}
