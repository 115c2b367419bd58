package client

import (
	"context"
	"net/http"

	"github.com/betbot/goalpaca/alpaca/types"
	"github.com/betbot/goalpaca/pkg/schema"
)

// PositionsModule 持仓
type PositionsModule struct {
	c *Client
}

var (
	listPositionsEndpoint = Endpoint[NoParams, NoParams, []types.Position]{
		Name:     "Get All Positions",
		Method:   http.MethodGet,
		Path:     PathPositions,
		Response: listOf(types.PositionSchema),
	}
	getPositionEndpoint = Endpoint[NoParams, NoParams, types.Position]{
		Name:     "Get Position",
		Method:   http.MethodGet,
		Path:     PathPosition,
		Response: types.PositionSchema,
		StatusMessages: map[int]string{
			http.StatusNotFound: "Position Not Found: {symbol_or_asset_id}",
		},
	}
	closePositionEndpoint = Endpoint[types.ClosePositionQuery, NoParams, types.Order]{
		Name:     "Close Position",
		Method:   http.MethodDelete,
		Path:     PathPosition,
		Query:    types.ClosePositionQuerySchema,
		Response: types.OrderSchema,
		StatusMessages: map[int]string{
			http.StatusNotFound: "Position Not Found: {symbol_or_asset_id}",
		},
	}
	closeAllPositionsEndpoint = Endpoint[types.CloseAllPositionsQuery, NoParams, []types.BulkItem]{
		Name:     "Close All Positions",
		Method:   http.MethodDelete,
		Path:     PathPositions,
		Query:    types.CloseAllPositionsQuerySchema,
		Response: listOf(types.ClosePositionResultSchema),
		OKStatus: http.StatusMultiStatus,
		StatusMessages: map[int]string{
			http.StatusInternalServerError: "Close All Positions: Failed to liquidate",
		},
	}
	exercisePositionEndpoint = Endpoint[NoParams, NoParams, struct{}]{
		Name:   "Exercise Options Position",
		Method: http.MethodPost,
		Path:   PathPositionExercise,
		StatusMessages: map[int]string{
			http.StatusForbidden:           "Exercise Options Position: Available position quantity is not sufficient",
			http.StatusUnprocessableEntity: "Exercise Options Position: One or more parameters provided are invalid",
		},
	}
)

// List 列出全部持仓
func (m *PositionsModule) List(ctx context.Context) ([]types.Position, error) {
	return Invoke(ctx, m.c, listPositionsEndpoint, Call[NoParams, NoParams]{})
}

// Get 按 symbol 或资产 ID 查询持仓
func (m *PositionsModule) Get(ctx context.Context, symbolOrAssetID string) (types.Position, error) {
	return Invoke(ctx, m.c, getPositionEndpoint, Call[NoParams, NoParams]{
		PathParams: map[string]string{"symbol_or_asset_id": symbolOrAssetID},
	})
}

// Close 按数量或百分比平仓，返回平仓订单
func (m *PositionsModule) Close(ctx context.Context, symbolOrAssetID string, query types.ClosePositionQuery) (types.Order, error) {
	if err := query.Check(); err != nil {
		return types.Order{}, schema.AtStage(err, types.ClosePositionQuerySchema.Name(), schema.StageQuery, closePositionEndpoint.Name)
	}
	return Invoke(ctx, m.c, closePositionEndpoint, Call[types.ClosePositionQuery, NoParams]{
		PathParams: map[string]string{"symbol_or_asset_id": symbolOrAssetID},
		Query:      &query,
	})
}

// CloseAll 平掉全部持仓。
// 与 OrdersModule.CancelAll 相同：返回全部单项，存在失败项时同时返回 *AggregateError。
func (m *PositionsModule) CloseAll(ctx context.Context, query types.CloseAllPositionsQuery) ([]types.BulkItem, error) {
	items, err := Invoke(ctx, m.c, closeAllPositionsEndpoint, Call[types.CloseAllPositionsQuery, NoParams]{Query: &query})
	if err != nil {
		return nil, err
	}
	if agg := bulkFailures(closeAllPositionsEndpoint.Name, "some positions failed to close", items); agg != nil {
		return items, agg
	}
	return items, nil
}

// Exercise 行权（期权持仓），成功时无响应体
func (m *PositionsModule) Exercise(ctx context.Context, symbolOrContractID string) error {
	_, err := Invoke(ctx, m.c, exercisePositionEndpoint, Call[NoParams, NoParams]{
		PathParams: map[string]string{"symbol_or_contract_id": symbolOrContractID},
	})
	return err
}
