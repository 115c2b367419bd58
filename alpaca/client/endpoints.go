package client

import (
	"github.com/betbot/goalpaca/pkg/schema"
)

// 交易接口路径
const (
	PathAccount               = "/v2/account"
	PathAccountConfigurations = "/v2/account/configurations"
	PathPortfolioHistory      = "/v2/account/portfolio/history"

	PathAssets          = "/v2/assets"
	PathAsset           = "/v2/assets/{symbol_or_asset_id}"
	PathOptionContracts = "/v2/options/contracts"
	PathOptionContract  = "/v2/options/contracts/{symbol_or_id}"
	PathTreasuries      = "/v2/treasuries"

	PathOrders           = "/v2/orders"
	PathOrder            = "/v2/orders/{order_id}"
	PathOrderByClientID  = "/v2/orders:by_client_order_id"
	PathPositions        = "/v2/positions"
	PathPosition         = "/v2/positions/{symbol_or_asset_id}"
	PathPositionExercise = "/v2/positions/{symbol_or_contract_id}/exercise"
	PathWatchlists       = "/v2/watchlists"
	PathWatchlist        = "/v2/watchlists/{watchlist_id}"
	PathWatchlistByName  = "/v2/watchlists:by_name"
	PathWatchlistSymbol  = "/v2/watchlists/{watchlist_id}/{symbol}"
	PathCalendar         = "/v2/calendar"
	PathClock            = "/v2/clock"
)

// namedList 给列表规则带上元素 Schema 的名称，便于错误信息定位
type namedList[V any] struct {
	schema.Rule[[]V]
	name string
}

func (l namedList[V]) Name() string { return l.name }

func listOf[V any](s *schema.Schema[V]) schema.Rule[[]V] {
	return namedList[V]{Rule: schema.ArrayOf[V](s), name: "[]" + s.Name()}
}
