package schema

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type side string

type orderQuery struct {
	Status    *status   `query:"status"`
	Limit     *int      `query:"limit"`
	Symbols   []string  `query:"symbols"`
	Price     *float64  `query:"price"`
	Nested    bool      `query:"nested"`
	Side      side      `query:"side,omitempty"`
	Until     time.Time `query:"until,omitempty"`
	Ignored   string    `query:"-"`
	JSONNamed string    `json:"json_named,omitempty"`
}

var orderQuerySchema = MustDefine("OrderQuery",
	Field("status", Optional(Enum(statusActive, statusInactive)), func(q *orderQuery, v *status) { q.Status = v }),
	Field("limit", Optional(StringToInt()), func(q *orderQuery, v *int) { q.Limit = v }),
	Field("symbols", Optional(StringToList(String())), func(q *orderQuery, v *[]string) {
		if v != nil {
			q.Symbols = *v
		}
	}),
	Field("price", Optional(StringToFloat()), func(q *orderQuery, v *float64) { q.Price = v }),
	Field("nested", StringToBool(), func(q *orderQuery, v bool) { q.Nested = v }),
)

func ptr[V any](v V) *V { return &v }

func TestSerializeQuery(t *testing.T) {
	until := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)
	got, err := SerializeQuery(&orderQuery{
		Status:    ptr(statusActive),
		Limit:     ptr(50),
		Symbols:   []string{"AAPL", "MSFT"},
		Price:     ptr(150.5),
		Nested:    true,
		Until:     until,
		Ignored:   "x",
		JSONNamed: "y",
	})
	require.NoError(t, err)
	assert.Equal(t, QueryParams{
		"status":     "active",
		"limit":      "50",
		"symbols":    "AAPL,MSFT",
		"price":      "150.5",
		"nested":     "true",
		"until":      "2024-01-02T03:04:05Z",
		"json_named": "y",
	}, got)

	empty, err := SerializeQuery(orderQuery{})
	require.NoError(t, err)
	assert.Equal(t, QueryParams{"nested": "false"}, empty)

	emptyList, err := SerializeQuery(orderQuery{Symbols: []string{}})
	require.NoError(t, err)
	assert.Equal(t, QueryParams{"nested": "false"}, emptyList)
	assert.Equal(t, "nested=false", emptyList.Values().Encode())

	none, err := SerializeQuery(nil)
	require.NoError(t, err)
	assert.Empty(t, none)

	_, err = SerializeQuery(42)
	assert.Error(t, err)
}

func TestSerializeQuery_RoundTrip(t *testing.T) {
	in := orderQuery{
		Status:  ptr(statusInactive),
		Limit:   ptr(7),
		Symbols: []string{"AAPL"},
		Price:   ptr(150.5),
		Nested:  true,
	}
	q, err := SerializeQuery(in)
	require.NoError(t, err)
	assert.Equal(t, "150.5", q["price"])

	back, err := orderQuerySchema.Parse(q.Raw())
	require.NoError(t, err)
	assert.Equal(t, in, back)

	for _, f := range []float64{0.1, 1.0 / 3.0, 123456789.125, 1e-7, -42} {
		q, err := SerializeQuery(orderQuery{Price: ptr(f)})
		require.NoError(t, err)
		back, err := orderQuerySchema.Parse(q.Raw())
		require.NoError(t, err)
		require.NotNil(t, back.Price)
		assert.Equal(t, f, *back.Price)
	}
}

type bodyLeg struct {
	Symbol string  `json:"symbol"`
	Qty    float64 `json:"qty,string"`
}

type orderBody struct {
	Symbol     string           `json:"symbol"`
	Qty        *float64         `json:"qty,omitempty,string"`
	Notional   *decimal.Decimal `json:"notional,omitempty"`
	Extended   bool             `json:"extended_hours"`
	ClientID   *string          `json:"client_order_id,omitempty"`
	TakeProfit *bodyLeg         `json:"take_profit,omitempty"`
	Legs       []bodyLeg        `json:"legs,omitempty"`
	Limit      int              `json:"limit"`
}

func TestSerializeBody(t *testing.T) {
	notional := decimal.RequireFromString("1000.50")
	got, err := SerializeBody(orderBody{
		Symbol:     "AAPL",
		Qty:        ptr(2.5),
		Notional:   &notional,
		TakeProfit: &bodyLeg{Symbol: "AAPL", Qty: 1},
		Legs:       []bodyLeg{{Symbol: "MSFT", Qty: 3}},
		Limit:      5,
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{
		"symbol":         "AAPL",
		"qty":            "2.5",
		"notional":       "1000.5",
		"extended_hours": false,
		"take_profit":    map[string]any{"symbol": "AAPL", "qty": "1"},
		"legs":           []any{map[string]any{"symbol": "MSFT", "qty": "3"}},
		"limit":          int64(5),
	}, got)

	big, err := SerializeBody(struct {
		Small uint32 `json:"small"`
		Large uint64 `json:"large"`
	}{Small: 7, Large: 1<<63 + 1})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"small": int64(7), "large": uint64(1<<63 + 1)}, big)

	none, err := SerializeBody((*orderBody)(nil))
	require.NoError(t, err)
	assert.Nil(t, none)

	encoded, err := EncodeJSON(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"symbol":"AAPL","qty":"2.5","notional":"1000.5","extended_hours":false,
		"take_profit":{"symbol":"AAPL","qty":"1"},"legs":[{"symbol":"MSFT","qty":"3"}],"limit":5}`, string(encoded))
}
