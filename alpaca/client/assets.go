package client

import (
	"context"
	"net/http"

	"github.com/betbot/goalpaca/alpaca/types"
)

// AssetsModule 资产、期权合约与国债
type AssetsModule struct {
	c *Client
}

var (
	listAssetsEndpoint = Endpoint[types.AssetsQuery, NoParams, []types.Asset]{
		Name:     "Get Assets",
		Method:   http.MethodGet,
		Path:     PathAssets,
		Query:    types.AssetsQuerySchema,
		Response: listOf(types.AssetSchema),
	}
	getAssetEndpoint = Endpoint[NoParams, NoParams, types.Asset]{
		Name:     "Get Asset",
		Method:   http.MethodGet,
		Path:     PathAsset,
		Response: types.AssetSchema,
		StatusMessages: map[int]string{
			http.StatusNotFound: "Asset Not Found: {symbol_or_asset_id}",
		},
	}
	listOptionContractsEndpoint = Endpoint[types.OptionContractsQuery, NoParams, types.OptionContractsPage]{
		Name:     "Get Option Contracts",
		Method:   http.MethodGet,
		Path:     PathOptionContracts,
		Query:    types.OptionContractsQuerySchema,
		Response: types.OptionContractsPageSchema,
	}
	getOptionContractEndpoint = Endpoint[NoParams, NoParams, types.OptionContract]{
		Name:     "Get Option Contract",
		Method:   http.MethodGet,
		Path:     PathOptionContract,
		Response: types.OptionContractSchema,
		StatusMessages: map[int]string{
			http.StatusNotFound: "Option Contract Not Found: {symbol_or_id}",
		},
	}
	listTreasuriesEndpoint = Endpoint[types.TreasuriesQuery, NoParams, []types.Treasury]{
		Name:     "Get Treasuries",
		Method:   http.MethodGet,
		Path:     PathTreasuries,
		Query:    types.TreasuriesQuerySchema,
		Response: types.TreasuriesResponse,
		StatusMessages: map[int]string{
			http.StatusBadRequest:          "Bad Request",
			http.StatusForbidden:           "Forbidden",
			http.StatusTooManyRequests:     "Too Many Requests",
			http.StatusInternalServerError: "Internal Server Error",
		},
	}
)

// List 列出资产
func (m *AssetsModule) List(ctx context.Context, query types.AssetsQuery) ([]types.Asset, error) {
	return Invoke(ctx, m.c, listAssetsEndpoint, Call[types.AssetsQuery, NoParams]{Query: &query})
}

// Get 按 symbol 或资产 ID 查询
func (m *AssetsModule) Get(ctx context.Context, symbolOrAssetID string) (types.Asset, error) {
	return Invoke(ctx, m.c, getAssetEndpoint, Call[NoParams, NoParams]{
		PathParams: map[string]string{"symbol_or_asset_id": symbolOrAssetID},
	})
}

// ListOptionContracts 分页列出期权合约；NextPageToken 为空表示最后一页
func (m *AssetsModule) ListOptionContracts(ctx context.Context, query types.OptionContractsQuery) (types.OptionContractsPage, error) {
	return Invoke(ctx, m.c, listOptionContractsEndpoint, Call[types.OptionContractsQuery, NoParams]{Query: &query})
}

// AllOptionContracts 跟随 page_token 取回全部期权合约
func (m *AssetsModule) AllOptionContracts(ctx context.Context, query types.OptionContractsQuery) ([]types.OptionContract, error) {
	var out []types.OptionContract
	for {
		page, err := m.ListOptionContracts(ctx, query)
		if err != nil {
			return out, err
		}
		out = append(out, page.Contracts...)
		if page.NextPageToken == nil || *page.NextPageToken == "" {
			return out, nil
		}
		query.PageToken = page.NextPageToken
	}
}

// GetOptionContract 按合约 symbol 或 ID 查询
func (m *AssetsModule) GetOptionContract(ctx context.Context, symbolOrID string) (types.OptionContract, error) {
	return Invoke(ctx, m.c, getOptionContractEndpoint, Call[NoParams, NoParams]{
		PathParams: map[string]string{"symbol_or_id": symbolOrID},
	})
}

// ListTreasuries 列出美国国债
func (m *AssetsModule) ListTreasuries(ctx context.Context, query types.TreasuriesQuery) ([]types.Treasury, error) {
	return Invoke(ctx, m.c, listTreasuriesEndpoint, Call[types.TreasuriesQuery, NoParams]{Query: &query})
}
