package types

import (
	"github.com/shopspring/decimal"

	"github.com/betbot/goalpaca/pkg/schema"
	"github.com/betbot/goalpaca/pkg/schema/tagged"
)

// PositionSide 持仓方向
type PositionSide string

const (
	PositionLong  PositionSide = "long"
	PositionShort PositionSide = "short"
)

// Position 持仓
type Position struct {
	schema.Retained
	AssetID                tagged.UUID
	Symbol                 string
	Exchange               Exchange
	AssetClass             AssetClass
	AvgEntryPrice          decimal.Decimal
	Qty                    decimal.Decimal
	QtyAvailable           decimal.Decimal
	Side                   PositionSide
	MarketValue            decimal.Decimal
	CostBasis              decimal.Decimal
	UnrealizedPL           decimal.Decimal
	UnrealizedPLPC         decimal.Decimal
	UnrealizedIntradayPL   decimal.Decimal
	UnrealizedIntradayPLPC decimal.Decimal
	CurrentPrice           decimal.Decimal
	LastdayPrice           decimal.Decimal
	ChangeToday            decimal.Decimal
	AssetMarginable        bool
}

func posDec(name string, set func(*Position, decimal.Decimal)) schema.FieldDef[Position] {
	return schema.Field(name, schema.StringToDecimal(), set)
}

var PositionSchema = schema.MustDefine("Position",
	schema.Field("asset_id", tagged.UUIDRule(), func(p *Position, v tagged.UUID) { p.AssetID = v }),
	schema.Field("symbol", schema.MinLen(schema.String(), 1), func(p *Position, v string) { p.Symbol = v }),
	schema.Field("exchange", exchangeRule, func(p *Position, v Exchange) { p.Exchange = v }),
	schema.Field("asset_class", assetClassRule, func(p *Position, v AssetClass) { p.AssetClass = v }),
	posDec("avg_entry_price", func(p *Position, v decimal.Decimal) { p.AvgEntryPrice = v }),
	posDec("qty", func(p *Position, v decimal.Decimal) { p.Qty = v }),
	posDec("qty_available", func(p *Position, v decimal.Decimal) { p.QtyAvailable = v }),
	schema.Field("side", schema.Enum(PositionLong, PositionShort), func(p *Position, v PositionSide) { p.Side = v }),
	posDec("market_value", func(p *Position, v decimal.Decimal) { p.MarketValue = v }),
	posDec("cost_basis", func(p *Position, v decimal.Decimal) { p.CostBasis = v }),
	posDec("unrealized_pl", func(p *Position, v decimal.Decimal) { p.UnrealizedPL = v }),
	posDec("unrealized_plpc", func(p *Position, v decimal.Decimal) { p.UnrealizedPLPC = v }),
	posDec("unrealized_intraday_pl", func(p *Position, v decimal.Decimal) { p.UnrealizedIntradayPL = v }),
	posDec("unrealized_intraday_plpc", func(p *Position, v decimal.Decimal) { p.UnrealizedIntradayPLPC = v }),
	posDec("current_price", func(p *Position, v decimal.Decimal) { p.CurrentPrice = v }),
	posDec("lastday_price", func(p *Position, v decimal.Decimal) { p.LastdayPrice = v }),
	posDec("change_today", func(p *Position, v decimal.Decimal) { p.ChangeToday = v }),
	schema.Field("asset_marginable", schema.Bool(), func(p *Position, v bool) { p.AssetMarginable = v }),
)

// ClosePositionQuery DELETE /v2/positions/{symbol_or_asset_id} 查询参数，Qty 与 Percentage 二选一
type ClosePositionQuery struct {
	Qty        *decimal.Decimal `query:"qty"`
	Percentage *float64         `query:"percentage"`
}

var ClosePositionQuerySchema = schema.MustDefine("ClosePositionQuery",
	schema.Field("qty", optDecimal, func(q *ClosePositionQuery, v *decimal.Decimal) { q.Qty = v }),
	schema.Field("percentage", schema.Optional(schema.Max(schema.Min(schema.StringToFloat(), 0), 100)),
		func(q *ClosePositionQuery, v *float64) { q.Percentage = v }),
)

// Check 检查 qty 与 percentage 恰好设置一个
func (q ClosePositionQuery) Check() error {
	if (q.Qty == nil) == (q.Percentage == nil) {
		return &schema.ValidationError{
			Kind:   schema.InvalidFormat,
			Field:  "qty",
			Detail: "exactly one of qty or percentage must be set",
		}
	}
	return nil
}

// CloseAllPositionsQuery DELETE /v2/positions 查询参数
type CloseAllPositionsQuery struct {
	CancelOrders *bool `query:"cancel_orders"`
}

var CloseAllPositionsQuerySchema = schema.MustDefine("CloseAllPositionsQuery",
	schema.Field("cancel_orders", schema.Optional(schema.StringToBool()), func(q *CloseAllPositionsQuery, v *bool) { q.CancelOrders = v }),
)

// ClosePositionResultSchema DELETE /v2/positions 207 响应中的单项 {symbol, status, body}
var ClosePositionResultSchema = bulkItemSchema("ClosePositionResult", "symbol")

// ClosedOrder 成功单项的 body 解析为平仓订单
func ClosedOrder(item BulkItem) (Order, error) {
	return OrderSchema.Parse(item.Body)
}
