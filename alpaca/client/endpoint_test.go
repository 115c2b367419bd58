package client

import (
	"context"
	"errors"
	"net/http"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/betbot/goalpaca/alpaca/types"
	"github.com/betbot/goalpaca/pkg/config"
	"github.com/betbot/goalpaca/pkg/schema"
	"github.com/betbot/goalpaca/pkg/schema/tagged"
	sdkhttp "github.com/betbot/goalpaca/pkg/sdk/http"
)

// fakeTransport 记录调用次数并返回预置响应
type fakeTransport struct {
	mu    sync.Mutex
	calls int
	last  *sdkhttp.Request
	resp  *sdkhttp.Response
	err   error
}

func (f *fakeTransport) Do(_ context.Context, req *sdkhttp.Request) (*sdkhttp.Response, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	f.last = req
	if f.err != nil {
		return nil, f.err
	}
	return f.resp, nil
}

func (f *fakeTransport) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func respond(status int, body string) *sdkhttp.Response {
	return &sdkhttp.Response{Status: status, StatusText: http.StatusText(status), Body: []byte(body)}
}

func newFakeClient(t *testing.T, ft *fakeTransport) *Client {
	t.Helper()
	cfg := config.Default()
	cfg.Key = "key"
	cfg.Secret = "secret"
	c, err := New(cfg, WithTransport(ft))
	require.NoError(t, err)
	return c
}

func TestInvoke_InvalidQueryNeverSent(t *testing.T) {
	ft := &fakeTransport{resp: respond(200, `[]`)}
	c := newFakeClient(t, ft)
	ctx := context.Background()

	limit := 20000
	_, err := c.Orders.List(ctx, types.OrdersQuery{Limit: &limit})
	sve, ok := schema.AsValidation(err)
	require.True(t, ok, "expected SchemaValidationError, got %v", err)
	assert.Equal(t, schema.StageQuery, sve.Stage)
	assert.Equal(t, "Get Orders", sve.Operation)
	assert.NotNil(t, sve.Find("limit", schema.OutOfRange))

	bad := tagged.Date("2024-13-45")
	_, err = c.Time.Calendar(ctx, types.CalendarQuery{Start: &bad})
	sve, ok = schema.AsValidation(err)
	require.True(t, ok)
	assert.NotNil(t, sve.Find("start", schema.InvalidFormat))

	_, err = c.Watchlists.GetByName(ctx, "")
	_, ok = schema.AsValidation(err)
	assert.True(t, ok)

	_, err = c.Positions.Close(ctx, "AAPL", types.ClosePositionQuery{})
	sve, ok = schema.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "Close Position", sve.Operation)

	assert.Equal(t, 0, ft.Calls())
}

func TestInvoke_InvalidBodyNeverSent(t *testing.T) {
	ft := &fakeTransport{resp: respond(200, `{}`)}
	c := newFakeClient(t, ft)

	legs := make([]types.OrderLegRequest, types.MaxLegs+1)
	for i := range legs {
		legs[i] = types.OrderLegRequest{Symbol: "AAPL250620C00100000"}
	}
	legs[2].Symbol = ""
	_, err := c.Orders.Create(context.Background(), types.CreateOrderRequest{
		Type:        "market",
		TimeInForce: "forever",
		OrderClass:  types.OrderClassMLeg,
		Legs:        legs,
	})
	sve, ok := schema.AsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, schema.StageBody, sve.Stage)
	assert.NotNil(t, sve.Find("time_in_force", schema.InvalidEnumValue))
	assert.NotNil(t, sve.Find("legs.2.symbol", schema.OutOfRange))
	assert.Equal(t, 0, ft.Calls())
}

func TestInvoke_RequestShape(t *testing.T) {
	ft := &fakeTransport{resp: respond(200, `[]`)}
	c := newFakeClient(t, ft)
	ctx := context.Background()

	nested := true
	_, err := c.Orders.List(ctx, types.OrdersQuery{
		Nested:     &nested,
		Symbols:    []string{"AAPL", "MSFT"},
		AssetClass: []types.AssetClass{types.AssetClassUSEquity},
	})
	require.NoError(t, err)
	req := ft.last
	assert.Equal(t, http.MethodGet, req.Method)
	assert.Equal(t, PathOrders, req.Path)
	assert.Equal(t, "true", req.Query.Get("nested"))
	assert.Equal(t, "AAPL,MSFT", req.Query.Get("symbols"))
	assert.Equal(t, "us_equity", req.Query.Get("asset_class"))
	assert.False(t, req.Query.Has("limit"))
	assert.Nil(t, req.Body)
	assert.Equal(t, "application/json", req.Headers["Accept"])
	assert.Equal(t, "key", req.Headers[HeaderKeyID])
	assert.Equal(t, "secret", req.Headers[HeaderSecretKey])
	_, hasCT := req.Headers["Content-Type"]
	assert.False(t, hasCT, "content-type must only be sent with a body")

	ft.resp = respond(200, `{"id":"w","account_id":"x"}`)
	_, _ = c.Watchlists.RemoveSymbol(ctx, "fb306e55-16d3-4118-8c3d-c1615fcd4c03", "BRK/B")
	assert.Equal(t, "/v2/watchlists/fb306e55-16d3-4118-8c3d-c1615fcd4c03/BRK%2FB", ft.last.Path)
}

func TestInvoke_StatusDispatch(t *testing.T) {
	ft := &fakeTransport{}
	c := newFakeClient(t, ft)
	ctx := context.Background()

	ft.resp = respond(http.StatusNotFound, `{"message":"not found"}`)
	_, err := c.Assets.Get(ctx, "NOPE")
	var known *KnownHTTPError
	require.ErrorAs(t, err, &known)
	assert.Equal(t, 404, known.Status)
	assert.Equal(t, "Asset Not Found: NOPE", known.Message)
	assert.Equal(t, "Get Asset", known.Operation)
	assert.EqualError(t, err, "Get Asset: 404 Asset Not Found: NOPE")

	ft.resp = respond(http.StatusTeapot, ``)
	_, err = c.Assets.Get(ctx, "NOPE")
	var undocumented *UndocumentedHTTPError
	require.ErrorAs(t, err, &undocumented)
	assert.Equal(t, 418, undocumented.Status)
	assert.Equal(t, "I'm a teapot", undocumented.StatusText)
	assert.False(t, errors.As(err, &known))

	// 200 不是 204 端点的成功码
	ft.resp = respond(http.StatusOK, `{}`)
	err = c.Orders.Cancel(ctx, "61e69015-8549-4bfd-b9c3-01e75843f47d")
	require.ErrorAs(t, err, &undocumented)

	ft.resp = respond(http.StatusUnprocessableEntity, `{}`)
	err = c.Orders.Cancel(ctx, "61e69015-8549-4bfd-b9c3-01e75843f47d")
	require.ErrorAs(t, err, &known)
	assert.Equal(t, "Delete Order: 422 The order status is not cancelable", known.Error())

	ft.resp = respond(http.StatusNoContent, ``)
	assert.NoError(t, c.Orders.Cancel(ctx, "61e69015-8549-4bfd-b9c3-01e75843f47d"))
}

func TestInvoke_ResponseValidation(t *testing.T) {
	ft := &fakeTransport{resp: respond(200, `{"timestamp":"yesterday","is_open":"maybe"}`)}
	c := newFakeClient(t, ft)

	_, err := c.Time.Clock(context.Background())
	sve, ok := schema.AsValidation(err)
	require.True(t, ok, "got %v", err)
	assert.Equal(t, schema.StageResponse, sve.Stage)
	assert.Equal(t, "Clock", sve.Schema)
	assert.NotNil(t, sve.Find("timestamp", schema.InvalidFormat))
	assert.NotNil(t, sve.Find("next_open", schema.MissingField))
	assert.NotNil(t, sve.Find("next_close", schema.MissingField))
	assert.Len(t, sve.Errors, 4)

	ft.resp = respond(200, `not json`)
	_, err = c.Time.Clock(context.Background())
	_, ok = schema.AsValidation(err)
	assert.True(t, ok)

	ft.resp = respond(200, `[{"id":"nope"}]`)
	_, err = c.Orders.List(context.Background(), types.OrdersQuery{})
	sve, ok = schema.AsValidation(err)
	require.True(t, ok)
	assert.Equal(t, "[]Order", sve.Schema)
	assert.NotNil(t, sve.Find("0.type", schema.MissingField))
}

func TestInvoke_TransportError(t *testing.T) {
	ft := &fakeTransport{err: errors.New("connection refused")}
	c := newFakeClient(t, ft)
	_, err := c.Account.Get(context.Background())
	assert.ErrorContains(t, err, "Get Account: connection refused")
}

func TestSubstitute(t *testing.T) {
	out, err := substitute("/v2/watchlists/{watchlist_id}/{symbol}", map[string]string{"watchlist_id": "a b", "symbol": "X"}, true)
	require.NoError(t, err)
	assert.Equal(t, "/v2/watchlists/a%20b/X", out)

	_, err = substitute("/v2/orders/{order_id}", nil, true)
	assert.ErrorContains(t, err, `"order_id"`)

	out, err = substitute("Asset Not Found: {symbol_or_asset_id}", map[string]string{"symbol_or_asset_id": "BRK/B"}, false)
	require.NoError(t, err)
	assert.Equal(t, "Asset Not Found: BRK/B", out)
}

func TestNew_RequiresCredentials(t *testing.T) {
	_, err := New(config.Default())
	assert.ErrorContains(t, err, config.EnvKeyID)
}

func TestKnownHTTPError_Message(t *testing.T) {
	cases := []struct {
		err  KnownHTTPError
		want string
	}{
		{KnownHTTPError{Operation: "Get Treasuries", Status: 403, Message: "Forbidden"}, "Get Treasuries: 403 Forbidden"},
		{KnownHTTPError{Operation: "Create Order", Status: 403, Message: "Create Order: 403 Buying power or shares is not sufficient"},
			"Create Order: 403 Buying power or shares is not sufficient"},
		{KnownHTTPError{Operation: "Get Order", Status: 404, Message: "Order Not Found: abc"}, "Get Order: 404 Order Not Found: abc"},
	}
	for _, tc := range cases {
		t.Run(tc.want, func(t *testing.T) {
			assert.Equal(t, tc.want, tc.err.Error())
		})
	}
}
