package client

import (
	"context"
	"net/http"

	"github.com/betbot/goalpaca/alpaca/types"
)

// AccountModule 账户与账户配置
type AccountModule struct {
	c *Client
}

var (
	getAccountEndpoint = Endpoint[NoParams, NoParams, types.Account]{
		Name:     "Get Account",
		Method:   http.MethodGet,
		Path:     PathAccount,
		Response: types.AccountSchema,
	}
	getAccountConfigurationsEndpoint = Endpoint[NoParams, NoParams, types.AccountConfigurations]{
		Name:     "Get Account Configurations",
		Method:   http.MethodGet,
		Path:     PathAccountConfigurations,
		Response: types.AccountConfigurationsSchema,
	}
	updateAccountConfigurationsEndpoint = Endpoint[NoParams, types.AccountConfigurations, types.AccountConfigurations]{
		Name:     "Update Account Configurations",
		Method:   http.MethodPatch,
		Path:     PathAccountConfigurations,
		Body:     types.AccountConfigurationsSchema,
		Response: types.AccountConfigurationsSchema,
	}
)

// Get 获取账户信息
func (m *AccountModule) Get(ctx context.Context) (types.Account, error) {
	return Invoke(ctx, m.c, getAccountEndpoint, Call[NoParams, NoParams]{})
}

// GetConfigurations 获取账户配置
func (m *AccountModule) GetConfigurations(ctx context.Context) (types.AccountConfigurations, error) {
	return Invoke(ctx, m.c, getAccountConfigurationsEndpoint, Call[NoParams, NoParams]{})
}

// UpdateConfigurations 部分更新账户配置，未设置的字段保持不变
func (m *AccountModule) UpdateConfigurations(ctx context.Context, body types.AccountConfigurations) (types.AccountConfigurations, error) {
	return Invoke(ctx, m.c, updateAccountConfigurationsEndpoint, Call[NoParams, types.AccountConfigurations]{Body: &body})
}
