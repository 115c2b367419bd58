package client

import (
	"context"
	"net/http"

	"github.com/betbot/goalpaca/alpaca/types"
)

// HistoryModule 账户组合历史
type HistoryModule struct {
	c *Client
}

var portfolioHistoryEndpoint = Endpoint[types.HistoryQuery, NoParams, types.History]{
	Name:     "Get Account Portfolio History",
	Method:   http.MethodGet,
	Path:     PathPortfolioHistory,
	Query:    types.HistoryQuerySchema,
	Response: types.HistoryResponse,
}

// Get 查询组合历史，返回按时间排列的采样点
func (m *HistoryModule) Get(ctx context.Context, query types.HistoryQuery) (types.History, error) {
	return Invoke(ctx, m.c, portfolioHistoryEndpoint, Call[types.HistoryQuery, NoParams]{Query: &query})
}
