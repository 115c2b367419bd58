package client

import (
	"context"
	"net/http"

	"github.com/betbot/goalpaca/alpaca/types"
	"github.com/betbot/goalpaca/pkg/schema/tagged"
)

// OrdersModule 订单
type OrdersModule struct {
	c *Client
}

var (
	createOrderEndpoint = Endpoint[NoParams, types.CreateOrderRequest, types.Order]{
		Name:     "Create Order",
		Method:   http.MethodPost,
		Path:     PathOrders,
		Body:     types.CreateOrderRequestSchema,
		Response: types.OrderSchema,
		StatusMessages: map[int]string{
			http.StatusForbidden:           "Create Order: 403 Buying power or shares is not sufficient",
			http.StatusUnprocessableEntity: "Create Order: 422 Input parameters are not recognized",
		},
	}
	listOrdersEndpoint = Endpoint[types.OrdersQuery, NoParams, []types.Order]{
		Name:     "Get Orders",
		Method:   http.MethodGet,
		Path:     PathOrders,
		Query:    types.OrdersQuerySchema,
		Response: listOf(types.OrderSchema),
	}
	cancelAllOrdersEndpoint = Endpoint[NoParams, NoParams, []types.BulkItem]{
		Name:     "Delete All Orders",
		Method:   http.MethodDelete,
		Path:     PathOrders,
		Response: listOf(types.CancelOrderResultSchema),
		OKStatus: http.StatusMultiStatus,
	}
	getOrderByClientIDEndpoint = Endpoint[types.ClientOrderIDQuery, NoParams, types.Order]{
		Name:     "Get Order by Client ID",
		Method:   http.MethodGet,
		Path:     PathOrderByClientID,
		Query:    types.ClientOrderIDQuerySchema,
		Response: types.OrderSchema,
	}
	getOrderEndpoint = Endpoint[types.GetOrderQuery, NoParams, types.Order]{
		Name:     "Get Order",
		Method:   http.MethodGet,
		Path:     PathOrder,
		Query:    types.GetOrderQuerySchema,
		Response: types.OrderSchema,
		StatusMessages: map[int]string{
			http.StatusNotFound: "Order Not Found: {order_id}",
		},
	}
	replaceOrderEndpoint = Endpoint[NoParams, types.ReplaceOrderRequest, types.Order]{
		Name:     "Replace Order",
		Method:   http.MethodPatch,
		Path:     PathOrder,
		Body:     types.ReplaceOrderRequestSchema,
		Response: types.OrderSchema,
		StatusMessages: map[int]string{
			http.StatusForbidden:           "Replace Order: 403 Buying power or shares is not sufficient",
			http.StatusUnprocessableEntity: "Replace Order: 422 Input parameters are not recognized",
		},
	}
	cancelOrderEndpoint = Endpoint[NoParams, NoParams, struct{}]{
		Name:     "Delete Order",
		Method:   http.MethodDelete,
		Path:     PathOrder,
		OKStatus: http.StatusNoContent,
		StatusMessages: map[int]string{
			http.StatusNotFound:            "Order Not Found: {order_id}",
			http.StatusUnprocessableEntity: "Delete Order: 422 The order status is not cancelable",
		},
	}
)

// Create 下单。ClientOrderID 为空时自动生成。
func (m *OrdersModule) Create(ctx context.Context, req types.CreateOrderRequest) (types.Order, error) {
	if req.ClientOrderID == "" {
		req.ClientOrderID = tagged.NewClientOrderID()
	}
	return Invoke(ctx, m.c, createOrderEndpoint, Call[NoParams, types.CreateOrderRequest]{Body: &req})
}

// List 查询订单
func (m *OrdersModule) List(ctx context.Context, query types.OrdersQuery) ([]types.Order, error) {
	return Invoke(ctx, m.c, listOrdersEndpoint, Call[types.OrdersQuery, NoParams]{Query: &query})
}

// CancelAll 撤销全部挂单。
// 返回每一项结果；任意一项状态不是 200 时同时返回 *AggregateError，列出所有失败项。
func (m *OrdersModule) CancelAll(ctx context.Context) ([]types.BulkItem, error) {
	items, err := Invoke(ctx, m.c, cancelAllOrdersEndpoint, Call[NoParams, NoParams]{})
	if err != nil {
		return nil, err
	}
	if agg := bulkFailures(cancelAllOrdersEndpoint.Name, "some orders failed to cancel", items); agg != nil {
		return items, agg
	}
	return items, nil
}

// GetByClientID 按 client_order_id 查询
func (m *OrdersModule) GetByClientID(ctx context.Context, clientOrderID string) (types.Order, error) {
	return Invoke(ctx, m.c, getOrderByClientIDEndpoint, Call[types.ClientOrderIDQuery, NoParams]{
		Query: &types.ClientOrderIDQuery{ClientOrderID: clientOrderID},
	})
}

// Get 按订单 ID 查询；nested 为 true 时带出子订单
func (m *OrdersModule) Get(ctx context.Context, orderID string, nested bool) (types.Order, error) {
	query := types.GetOrderQuery{}
	if nested {
		query.Nested = &nested
	}
	return Invoke(ctx, m.c, getOrderEndpoint, Call[types.GetOrderQuery, NoParams]{
		PathParams: map[string]string{"order_id": orderID},
		Query:      &query,
	})
}

// Replace 改单，返回新订单
func (m *OrdersModule) Replace(ctx context.Context, orderID string, req types.ReplaceOrderRequest) (types.Order, error) {
	return Invoke(ctx, m.c, replaceOrderEndpoint, Call[NoParams, types.ReplaceOrderRequest]{
		PathParams: map[string]string{"order_id": orderID},
		Body:       &req,
	})
}

// Cancel 撤单
func (m *OrdersModule) Cancel(ctx context.Context, orderID string) error {
	_, err := Invoke(ctx, m.c, cancelOrderEndpoint, Call[NoParams, NoParams]{
		PathParams: map[string]string{"order_id": orderID},
	})
	return err
}

// bulkFailures 收集 207 响应中状态非 200 的单项；全部成功时返回 nil
func bulkFailures(operation, message string, items []types.BulkItem) *AggregateError {
	var failures []*ItemError
	for _, item := range items {
		if item.OK() {
			continue
		}
		failures = append(failures, &ItemError{ID: item.ID, Status: item.Status, Message: item.Message()})
	}
	if len(failures) == 0 {
		return nil
	}
	return &AggregateError{Operation: operation, Message: message, Failures: failures}
}
