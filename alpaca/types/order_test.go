package types

import (
	"fmt"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betbot/goalpaca/pkg/schema"
)

func legJSON(id string) map[string]any {
	return map[string]any{
		"id":            id,
		"symbol":        "AAPL",
		"type":          "limit",
		"side":          "sell",
		"time_in_force": "gtc",
		"limit_price":   "170.00",
		"order_class":   "bracket",
	}
}

func TestOrderSchema_Legs(t *testing.T) {
	raw := map[string]any{
		"id":            "parent",
		"type":          "market",
		"time_in_force": "gtc",
		"order_class":   "bracket",
		"qty":           "10",
		"filled_qty":    "2.5",
		"status":        "partially_filled",
		"legs":          []any{legJSON("tp"), legJSON("sl")},
	}
	order, err := OrderSchema.Parse(raw)
	require.NoError(t, err)
	require.Len(t, order.Legs, 2)
	assert.Equal(t, "sl", order.Legs[1].ID)
	assert.True(t, order.Legs[0].LimitPrice.Equal(decimal.RequireFromString("170")))
	assert.True(t, order.FilledQty.Equal(decimal.RequireFromString("2.5")))
	assert.True(t, order.Status.IsOpen())
	assert.Equal(t, "parent", order.Raw()["id"])
}

func TestOrderSchema_TooManyLegs(t *testing.T) {
	legs := make([]any, MaxLegs+1)
	for i := range legs {
		legs[i] = legJSON(fmt.Sprint(i))
	}
	_, err := OrderSchema.Parse(map[string]any{"type": "market", "time_in_force": "day", "legs": legs})
	var sve *schema.SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.NotNil(t, sve.Find("legs", schema.OutOfRange))
}

func TestOrderSchema_LegErrorsCarryIndex(t *testing.T) {
	bad := legJSON("x")
	bad["side"] = "hold"
	delete(bad, "type")
	_, err := OrderSchema.Parse(map[string]any{
		"type": "market", "time_in_force": "day",
		"legs": []any{legJSON("ok"), bad},
	})
	var sve *schema.SchemaValidationError
	require.ErrorAs(t, err, &sve)
	assert.NotNil(t, sve.Find("legs.1.side", schema.InvalidEnumValue))
	assert.NotNil(t, sve.Find("legs.1.type", schema.MissingField))
	assert.Len(t, sve.Errors, 2)
}

func TestOrderStatus_IsOpen(t *testing.T) {
	for _, s := range []OrderStatus{OrderNew, OrderAccepted, OrderPendingCancel} {
		assert.True(t, s.IsOpen(), s)
	}
	for _, s := range []OrderStatus{OrderFilled, OrderCanceled, OrderRejected, OrderExpired} {
		assert.False(t, s.IsOpen(), s)
	}
}

func TestCreateOrderRequest_Body(t *testing.T) {
	qty := decimal.RequireFromString("0.5")
	stop := decimal.RequireFromString("95")
	req := CreateOrderRequest{
		Symbol:      "AAPL",
		Qty:         &qty,
		Side:        SideBuy,
		Type:        OrderTypeMarket,
		TimeInForce: TIFGTC,
		OrderClass:  OrderClassBracket,
		TakeProfit:  &TakeProfit{LimitPrice: decimal.RequireFromString("110")},
		StopLoss:    &StopLoss{StopPrice: stop},
	}
	body, err := schema.SerializeBody(req)
	require.NoError(t, err)
	assert.Equal(t, "0.5", body["qty"])
	assert.Equal(t, map[string]any{"limit_price": "110"}, body["take_profit"])
	assert.Equal(t, map[string]any{"stop_price": "95"}, body["stop_loss"])
	require.NoError(t, CreateOrderRequestSchema.Validate(body))
}

func TestCreateOrderRequest_MultiLeg(t *testing.T) {
	req := CreateOrderRequest{
		Type:        OrderTypeLimit,
		TimeInForce: TIFDay,
		OrderClass:  OrderClassMLeg,
		Legs: []OrderLegRequest{
			{Symbol: "AAPL250620C00100000", RatioQty: decimal.NewFromInt(1), Side: SideBuy, PositionIntent: BuyToOpen},
			{Symbol: "AAPL250620C00110000", RatioQty: decimal.NewFromInt(1), Side: SideSell, PositionIntent: SellToOpen},
		},
	}
	body, err := schema.SerializeBody(req)
	require.NoError(t, err)
	legs, ok := body["legs"].([]any)
	require.True(t, ok)
	require.Len(t, legs, 2)
	assert.Equal(t, "1", legs[0].(map[string]any)["ratio_qty"])
	assert.NoError(t, CreateOrderRequestSchema.Validate(body))
}

func TestOrdersQuery_RoundTrip(t *testing.T) {
	status := QueryClosed
	limit := 50
	q := OrdersQuery{Status: &status, Limit: &limit, Symbols: []string{"AAPL", "TSLA"}}
	params, err := schema.SerializeQuery(q)
	require.NoError(t, err)
	assert.Equal(t, "limit=50&status=closed&symbols=AAPL%2CTSLA", params.Values().Encode())

	parsed, err := OrdersQuerySchema.Parse(params.Raw())
	require.NoError(t, err)
	assert.Equal(t, q, parsed)
}
