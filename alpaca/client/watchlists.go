package client

import (
	"context"
	"net/http"

	"github.com/betbot/goalpaca/alpaca/types"
)

// WatchlistsModule 自选列表；每个操作都有按 ID 和按名称两种寻址方式
type WatchlistsModule struct {
	c *Client
}

var (
	listWatchlistsEndpoint = Endpoint[NoParams, NoParams, []types.Watchlist]{
		Name:     "Get All Watchlists",
		Method:   http.MethodGet,
		Path:     PathWatchlists,
		Response: listOf(types.WatchlistSchema),
	}
	createWatchlistEndpoint = Endpoint[NoParams, types.CreateWatchlistRequest, types.Watchlist]{
		Name:     "Create Watchlist",
		Method:   http.MethodPost,
		Path:     PathWatchlists,
		Body:     types.CreateWatchlistRequestSchema,
		Response: types.WatchlistSchema,
	}
	getWatchlistByNameEndpoint = Endpoint[types.WatchlistNameQuery, NoParams, types.Watchlist]{
		Name:     "Get Watchlist by Name",
		Method:   http.MethodGet,
		Path:     PathWatchlistByName,
		Query:    types.WatchlistNameQuerySchema,
		Response: types.WatchlistSchema,
	}
	getWatchlistEndpoint = Endpoint[NoParams, NoParams, types.Watchlist]{
		Name:     "Get Watchlist by ID",
		Method:   http.MethodGet,
		Path:     PathWatchlist,
		Response: types.WatchlistSchema,
	}
	updateWatchlistByNameEndpoint = Endpoint[types.WatchlistNameQuery, types.UpdateWatchlistRequest, types.Watchlist]{
		Name:     "Update Watchlist by Name",
		Method:   http.MethodPut,
		Path:     PathWatchlistByName,
		Query:    types.WatchlistNameQuerySchema,
		Body:     types.UpdateWatchlistRequestSchema,
		Response: types.WatchlistSchema,
	}
	updateWatchlistEndpoint = Endpoint[NoParams, types.UpdateWatchlistRequest, types.Watchlist]{
		Name:     "Update Watchlist by ID",
		Method:   http.MethodPut,
		Path:     PathWatchlist,
		Body:     types.UpdateWatchlistRequestSchema,
		Response: types.WatchlistSchema,
	}
	addSymbolByNameEndpoint = Endpoint[types.WatchlistNameQuery, types.AddSymbolRequest, types.Watchlist]{
		Name:     "Add Symbol to Watchlist by Name",
		Method:   http.MethodPost,
		Path:     PathWatchlistByName,
		Query:    types.WatchlistNameQuerySchema,
		Body:     types.AddSymbolRequestSchema,
		Response: types.WatchlistSchema,
	}
	addSymbolEndpoint = Endpoint[NoParams, types.AddSymbolRequest, types.Watchlist]{
		Name:     "Add Symbol to Watchlist by ID",
		Method:   http.MethodPost,
		Path:     PathWatchlist,
		Body:     types.AddSymbolRequestSchema,
		Response: types.WatchlistSchema,
	}
	deleteWatchlistByNameEndpoint = Endpoint[types.WatchlistNameQuery, NoParams, struct{}]{
		Name:     "Delete Watchlist by Name",
		Method:   http.MethodDelete,
		Path:     PathWatchlistByName,
		Query:    types.WatchlistNameQuerySchema,
		OKStatus: http.StatusNoContent,
	}
	deleteWatchlistEndpoint = Endpoint[NoParams, NoParams, struct{}]{
		Name:     "Delete Watchlist by ID",
		Method:   http.MethodDelete,
		Path:     PathWatchlist,
		OKStatus: http.StatusNoContent,
		StatusMessages: map[int]string{
			http.StatusNotFound: "Watchlist Not Found: {watchlist_id}",
		},
	}
	removeSymbolEndpoint = Endpoint[NoParams, NoParams, types.Watchlist]{
		Name:     "Remove Symbol from Watchlist by ID",
		Method:   http.MethodDelete,
		Path:     PathWatchlistSymbol,
		Response: types.WatchlistSchema,
	}
)

func byID(id string) map[string]string { return map[string]string{"watchlist_id": id} }

func byName(name string) *types.WatchlistNameQuery { return &types.WatchlistNameQuery{Name: name} }

// List 列出全部自选列表（不含资产明细）
func (m *WatchlistsModule) List(ctx context.Context) ([]types.Watchlist, error) {
	return Invoke(ctx, m.c, listWatchlistsEndpoint, Call[NoParams, NoParams]{})
}

// Create 新建自选列表
func (m *WatchlistsModule) Create(ctx context.Context, req types.CreateWatchlistRequest) (types.Watchlist, error) {
	return Invoke(ctx, m.c, createWatchlistEndpoint, Call[NoParams, types.CreateWatchlistRequest]{Body: &req})
}

// Get 按 ID 查询
func (m *WatchlistsModule) Get(ctx context.Context, watchlistID string) (types.Watchlist, error) {
	return Invoke(ctx, m.c, getWatchlistEndpoint, Call[NoParams, NoParams]{PathParams: byID(watchlistID)})
}

// GetByName 按名称查询
func (m *WatchlistsModule) GetByName(ctx context.Context, name string) (types.Watchlist, error) {
	return Invoke(ctx, m.c, getWatchlistByNameEndpoint, Call[types.WatchlistNameQuery, NoParams]{Query: byName(name)})
}

// Update 按 ID 更新名称或整体替换 symbol 列表
func (m *WatchlistsModule) Update(ctx context.Context, watchlistID string, req types.UpdateWatchlistRequest) (types.Watchlist, error) {
	return Invoke(ctx, m.c, updateWatchlistEndpoint, Call[NoParams, types.UpdateWatchlistRequest]{
		PathParams: byID(watchlistID),
		Body:       &req,
	})
}

// UpdateByName 按名称更新
func (m *WatchlistsModule) UpdateByName(ctx context.Context, name string, req types.UpdateWatchlistRequest) (types.Watchlist, error) {
	return Invoke(ctx, m.c, updateWatchlistByNameEndpoint, Call[types.WatchlistNameQuery, types.UpdateWatchlistRequest]{
		Query: byName(name),
		Body:  &req,
	})
}

// AddSymbol 按 ID 追加一个 symbol
func (m *WatchlistsModule) AddSymbol(ctx context.Context, watchlistID, symbol string) (types.Watchlist, error) {
	return Invoke(ctx, m.c, addSymbolEndpoint, Call[NoParams, types.AddSymbolRequest]{
		PathParams: byID(watchlistID),
		Body:       &types.AddSymbolRequest{Symbol: symbol},
	})
}

// AddSymbolByName 按名称追加一个 symbol
func (m *WatchlistsModule) AddSymbolByName(ctx context.Context, name, symbol string) (types.Watchlist, error) {
	return Invoke(ctx, m.c, addSymbolByNameEndpoint, Call[types.WatchlistNameQuery, types.AddSymbolRequest]{
		Query: byName(name),
		Body:  &types.AddSymbolRequest{Symbol: symbol},
	})
}

// Delete 按 ID 删除
func (m *WatchlistsModule) Delete(ctx context.Context, watchlistID string) error {
	_, err := Invoke(ctx, m.c, deleteWatchlistEndpoint, Call[NoParams, NoParams]{PathParams: byID(watchlistID)})
	return err
}

// DeleteByName 按名称删除
func (m *WatchlistsModule) DeleteByName(ctx context.Context, name string) error {
	_, err := Invoke(ctx, m.c, deleteWatchlistByNameEndpoint, Call[types.WatchlistNameQuery, NoParams]{Query: byName(name)})
	return err
}

// RemoveSymbol 从列表中移除一个 symbol，返回更新后的列表
func (m *WatchlistsModule) RemoveSymbol(ctx context.Context, watchlistID, symbol string) (types.Watchlist, error) {
	return Invoke(ctx, m.c, removeSymbolEndpoint, Call[NoParams, NoParams]{
		PathParams: map[string]string{"watchlist_id": watchlistID, "symbol": symbol},
	})
}
