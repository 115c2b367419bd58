package types

import (
	"github.com/shopspring/decimal"

	"github.com/betbot/goalpaca/pkg/schema"
	"github.com/betbot/goalpaca/pkg/schema/tagged"
)

// OrderClass 订单类别；空串为旧版 simple 订单的取值
type OrderClass string

const (
	OrderClassNone    OrderClass = ""
	OrderClassSimple  OrderClass = "simple"
	OrderClassBracket OrderClass = "bracket"
	OrderClassOCO     OrderClass = "oco"
	OrderClassOTO     OrderClass = "oto"
	OrderClassMLeg    OrderClass = "mleg"
)

// OrderSide 买卖方向
type OrderSide string

const (
	SideBuy  OrderSide = "buy"
	SideSell OrderSide = "sell"
)

// OrderType 订单类型
type OrderType string

const (
	OrderTypeMarket       OrderType = "market"
	OrderTypeLimit        OrderType = "limit"
	OrderTypeStop         OrderType = "stop"
	OrderTypeStopLimit    OrderType = "stop_limit"
	OrderTypeTrailingStop OrderType = "trailing_stop"
)

// TimeInForce 有效期
type TimeInForce string

const (
	TIFDay TimeInForce = "day"
	TIFGTC TimeInForce = "gtc"
	TIFOPG TimeInForce = "opg"
	TIFCLS TimeInForce = "cls"
	TIFIOC TimeInForce = "ioc"
	TIFFOK TimeInForce = "fok"
)

// PositionIntent 开平仓意图（期权）
type PositionIntent string

const (
	BuyToOpen   PositionIntent = "buy_to_open"
	BuyToClose  PositionIntent = "buy_to_close"
	SellToOpen  PositionIntent = "sell_to_open"
	SellToClose PositionIntent = "sell_to_close"
)

// OrderStatus 订单状态
type OrderStatus string

const (
	OrderNew                OrderStatus = "new"
	OrderPartiallyFilled    OrderStatus = "partially_filled"
	OrderFilled             OrderStatus = "filled"
	OrderDoneForDay         OrderStatus = "done_for_day"
	OrderCanceled           OrderStatus = "canceled"
	OrderExpired            OrderStatus = "expired"
	OrderReplaced           OrderStatus = "replaced"
	OrderPendingCancel      OrderStatus = "pending_cancel"
	OrderPendingReplace     OrderStatus = "pending_replace"
	OrderAccepted           OrderStatus = "accepted"
	OrderPendingNew         OrderStatus = "pending_new"
	OrderAcceptedForBidding OrderStatus = "accepted_for_bidding"
	OrderStopped            OrderStatus = "stopped"
	OrderRejected           OrderStatus = "rejected"
	OrderSuspended          OrderStatus = "suspended"
	OrderCalculated         OrderStatus = "calculated"
)

// IsOpen 订单是否仍可能成交
func (s OrderStatus) IsOpen() bool {
	switch s {
	case OrderNew, OrderPartiallyFilled, OrderAccepted, OrderPendingNew,
		OrderAcceptedForBidding, OrderPendingCancel, OrderPendingReplace, OrderCalculated:
		return true
	}
	return false
}

// OrderQueryStatus 列表查询的状态过滤
type OrderQueryStatus string

const (
	QueryOpen   OrderQueryStatus = "open"
	QueryClosed OrderQueryStatus = "closed"
	QueryAll    OrderQueryStatus = "all"
)

// MaxLegs 多腿订单的腿数上限
const MaxLegs = 4

var (
	orderClassRule = schema.Enum(OrderClassNone, OrderClassSimple, OrderClassBracket,
		OrderClassOCO, OrderClassOTO, OrderClassMLeg)
	sideRule           = schema.Enum(SideBuy, SideSell)
	orderTypeRule      = schema.Enum(OrderTypeMarket, OrderTypeLimit, OrderTypeStop, OrderTypeStopLimit, OrderTypeTrailingStop)
	timeInForceRule    = schema.Enum(TIFDay, TIFGTC, TIFOPG, TIFCLS, TIFIOC, TIFFOK)
	positionIntentRule = schema.Enum(BuyToOpen, BuyToClose, SellToOpen, SellToClose)
	orderStatusRule    = schema.Enum(
		OrderNew, OrderPartiallyFilled, OrderFilled, OrderDoneForDay, OrderCanceled, OrderExpired,
		OrderReplaced, OrderPendingCancel, OrderPendingReplace, OrderAccepted, OrderPendingNew,
		OrderAcceptedForBidding, OrderStopped, OrderRejected, OrderSuspended, OrderCalculated,
	)
	optDecimal  = schema.Optional(schema.StringToDecimal())
	optDateTime = schema.Optional(tagged.DateTimeRule())
)

// Order 订单
type Order struct {
	schema.Retained
	ID             string
	ClientOrderID  string
	CreatedAt      *tagged.DateTime
	UpdatedAt      *tagged.DateTime
	SubmittedAt    *tagged.DateTime
	FilledAt       *tagged.DateTime
	ExpiredAt      *tagged.DateTime
	CanceledAt     *tagged.DateTime
	FailedAt       *tagged.DateTime
	ReplacedAt     *tagged.DateTime
	ReplacedBy     *tagged.UUID
	Replaces       *tagged.UUID
	AssetID        *tagged.UUID
	Symbol         string
	AssetClass     AssetClass
	Notional       *decimal.Decimal
	Qty            *decimal.Decimal
	FilledQty      decimal.Decimal
	FilledAvgPrice *decimal.Decimal
	OrderClass     OrderClass
	Type           OrderType
	Side           OrderSide
	TimeInForce    TimeInForce
	LimitPrice     *decimal.Decimal
	StopPrice      *decimal.Decimal
	TrailPercent   *decimal.Decimal
	TrailPrice     *decimal.Decimal
	HWM            *decimal.Decimal
	Status         OrderStatus
	ExtendedHours  bool
	PositionIntent *PositionIntent
	Legs           []Order
}

// orderSchema 腿与父订单同构；腿本身不再嵌套腿
func orderSchema(name string, withLegs bool) *schema.Schema[Order] {
	fields := []schema.FieldDef[Order]{
		schema.Field("id", schema.Optional(schema.String()), func(o *Order, v *string) { o.ID = deref(v) }),
		schema.Field("client_order_id", schema.Optional(schema.MaxLen(schema.String(), 128)), func(o *Order, v *string) { o.ClientOrderID = deref(v) }),
		schema.Field("created_at", optDateTime, func(o *Order, v *tagged.DateTime) { o.CreatedAt = v }),
		schema.Field("updated_at", optDateTime, func(o *Order, v *tagged.DateTime) { o.UpdatedAt = v }),
		schema.Field("submitted_at", optDateTime, func(o *Order, v *tagged.DateTime) { o.SubmittedAt = v }),
		schema.Field("filled_at", optDateTime, func(o *Order, v *tagged.DateTime) { o.FilledAt = v }),
		schema.Field("expired_at", optDateTime, func(o *Order, v *tagged.DateTime) { o.ExpiredAt = v }),
		schema.Field("canceled_at", optDateTime, func(o *Order, v *tagged.DateTime) { o.CanceledAt = v }),
		schema.Field("failed_at", optDateTime, func(o *Order, v *tagged.DateTime) { o.FailedAt = v }),
		schema.Field("replaced_at", optDateTime, func(o *Order, v *tagged.DateTime) { o.ReplacedAt = v }),
		schema.Field("replaced_by", schema.Optional(tagged.UUIDRule()), func(o *Order, v *tagged.UUID) { o.ReplacedBy = v }),
		schema.Field("replaces", schema.Optional(tagged.UUIDRule()), func(o *Order, v *tagged.UUID) { o.Replaces = v }),
		schema.Field("asset_id", schema.Optional(tagged.UUIDRule()), func(o *Order, v *tagged.UUID) { o.AssetID = v }),
		schema.Field("symbol", schema.Optional(schema.MinLen(schema.String(), 1)), func(o *Order, v *string) { o.Symbol = deref(v) }),
		schema.Field("asset_class", schema.Optional(assetClassRule), func(o *Order, v *AssetClass) { o.AssetClass = deref(v) }),
		schema.Field("notional", optDecimal, func(o *Order, v *decimal.Decimal) { o.Notional = v }),
		schema.Field("qty", optDecimal, func(o *Order, v *decimal.Decimal) { o.Qty = v }),
		schema.Field("filled_qty", optDecimal, func(o *Order, v *decimal.Decimal) {
			if v != nil {
				o.FilledQty = *v
			}
		}),
		schema.Field("filled_avg_price", optDecimal, func(o *Order, v *decimal.Decimal) { o.FilledAvgPrice = v }),
		schema.Field("order_class", schema.Optional(orderClassRule), func(o *Order, v *OrderClass) { o.OrderClass = deref(v) }),
		schema.Field("type", orderTypeRule, func(o *Order, v OrderType) { o.Type = v }),
		schema.Field("side", schema.Optional(sideRule), func(o *Order, v *OrderSide) { o.Side = deref(v) }),
		schema.Field("time_in_force", timeInForceRule, func(o *Order, v TimeInForce) { o.TimeInForce = v }),
		schema.Field("limit_price", optDecimal, func(o *Order, v *decimal.Decimal) { o.LimitPrice = v }),
		schema.Field("stop_price", optDecimal, func(o *Order, v *decimal.Decimal) { o.StopPrice = v }),
		schema.Field("trail_percent", optDecimal, func(o *Order, v *decimal.Decimal) { o.TrailPercent = v }),
		schema.Field("trail_price", optDecimal, func(o *Order, v *decimal.Decimal) { o.TrailPrice = v }),
		schema.Field("hwm", optDecimal, func(o *Order, v *decimal.Decimal) { o.HWM = v }),
		schema.Field("status", schema.Optional(orderStatusRule), func(o *Order, v *OrderStatus) { o.Status = deref(v) }),
		schema.Field("extended_hours", schema.Optional(schema.Bool()), func(o *Order, v *bool) { o.ExtendedHours = deref(v) }),
		schema.Field("position_intent", schema.Optional(positionIntentRule), func(o *Order, v *PositionIntent) { o.PositionIntent = v }),
	}
	if withLegs {
		legs := schema.MaxItems(schema.ArrayOf[Order](orderSchema("OrderLeg", false)), MaxLegs)
		fields = append(fields, schema.Field("legs", schema.Optional(legs), func(o *Order, v *[]Order) { o.Legs = deref(v) }))
	}
	return schema.MustDefine(name, fields...)
}

var OrderSchema = orderSchema("Order", true)

// TakeProfit 止盈腿
type TakeProfit struct {
	LimitPrice decimal.Decimal `json:"limit_price"`
}

var TakeProfitSchema = schema.MustDefine("TakeProfit",
	schema.Field("limit_price", schema.StringToDecimal(), func(t *TakeProfit, v decimal.Decimal) { t.LimitPrice = v }),
)

// StopLoss 止损腿；LimitPrice 为空时是 stop 单，否则 stop_limit
type StopLoss struct {
	StopPrice  decimal.Decimal  `json:"stop_price"`
	LimitPrice *decimal.Decimal `json:"limit_price,omitempty"`
}

var StopLossSchema = schema.MustDefine("StopLoss",
	schema.Field("stop_price", schema.StringToDecimal(), func(s *StopLoss, v decimal.Decimal) { s.StopPrice = v }),
	schema.Field("limit_price", optDecimal, func(s *StopLoss, v *decimal.Decimal) { s.LimitPrice = v }),
)

// OrderLegRequest mleg 订单的单条腿
type OrderLegRequest struct {
	Symbol         string          `json:"symbol"`
	RatioQty       decimal.Decimal `json:"ratio_qty"`
	Side           OrderSide       `json:"side,omitempty"`
	PositionIntent PositionIntent  `json:"position_intent,omitempty"`
}

var OrderLegRequestSchema = schema.MustDefine("OrderLegRequest",
	schema.Field("symbol", schema.MinLen(schema.String(), 1), func(l *OrderLegRequest, v string) { l.Symbol = v }),
	schema.Field("ratio_qty", schema.StringToDecimal(), func(l *OrderLegRequest, v decimal.Decimal) { l.RatioQty = v }),
	schema.Field("side", schema.Optional(sideRule), func(l *OrderLegRequest, v *OrderSide) { l.Side = deref(v) }),
	schema.Field("position_intent", schema.Optional(positionIntentRule), func(l *OrderLegRequest, v *PositionIntent) { l.PositionIntent = deref(v) }),
)

// CreateOrderRequest POST /v2/orders 请求体。数量与价格以字符串上送。
type CreateOrderRequest struct {
	Symbol         string            `json:"symbol,omitempty"`
	Qty            *decimal.Decimal  `json:"qty,omitempty"`
	Notional       *decimal.Decimal  `json:"notional,omitempty"`
	Side           OrderSide         `json:"side,omitempty"`
	Type           OrderType         `json:"type"`
	TimeInForce    TimeInForce       `json:"time_in_force"`
	LimitPrice     *decimal.Decimal  `json:"limit_price,omitempty"`
	StopPrice      *decimal.Decimal  `json:"stop_price,omitempty"`
	TrailPrice     *decimal.Decimal  `json:"trail_price,omitempty"`
	TrailPercent   *decimal.Decimal  `json:"trail_percent,omitempty"`
	ExtendedHours  bool              `json:"extended_hours,omitempty"`
	ClientOrderID  tagged.UUID       `json:"client_order_id,omitempty"`
	OrderClass     OrderClass        `json:"order_class,omitempty"`
	Legs           []OrderLegRequest `json:"legs,omitempty"`
	TakeProfit     *TakeProfit       `json:"take_profit,omitempty"`
	StopLoss       *StopLoss         `json:"stop_loss,omitempty"`
	PositionIntent PositionIntent    `json:"position_intent,omitempty"`
}

var CreateOrderRequestSchema = schema.MustDefine("CreateOrderRequest",
	schema.Field("symbol", schema.Optional(schema.MinLen(schema.String(), 1)), func(r *CreateOrderRequest, v *string) { r.Symbol = deref(v) }),
	schema.Field("qty", optDecimal, func(r *CreateOrderRequest, v *decimal.Decimal) { r.Qty = v }),
	schema.Field("notional", optDecimal, func(r *CreateOrderRequest, v *decimal.Decimal) { r.Notional = v }),
	schema.Field("side", schema.Optional(sideRule), func(r *CreateOrderRequest, v *OrderSide) { r.Side = deref(v) }),
	schema.Field("type", orderTypeRule, func(r *CreateOrderRequest, v OrderType) { r.Type = v }),
	schema.Field("time_in_force", timeInForceRule, func(r *CreateOrderRequest, v TimeInForce) { r.TimeInForce = v }),
	schema.Field("limit_price", optDecimal, func(r *CreateOrderRequest, v *decimal.Decimal) { r.LimitPrice = v }),
	schema.Field("stop_price", optDecimal, func(r *CreateOrderRequest, v *decimal.Decimal) { r.StopPrice = v }),
	schema.Field("trail_price", optDecimal, func(r *CreateOrderRequest, v *decimal.Decimal) { r.TrailPrice = v }),
	schema.Field("trail_percent", optDecimal, func(r *CreateOrderRequest, v *decimal.Decimal) { r.TrailPercent = v }),
	schema.Field("extended_hours", schema.Optional(schema.Bool()), func(r *CreateOrderRequest, v *bool) { r.ExtendedHours = deref(v) }),
	schema.Field("client_order_id", schema.Optional(tagged.UUIDRule()), func(r *CreateOrderRequest, v *tagged.UUID) { r.ClientOrderID = deref(v) }),
	schema.Field("order_class", schema.Optional(orderClassRule), func(r *CreateOrderRequest, v *OrderClass) { r.OrderClass = deref(v) }),
	schema.Field("legs", schema.Optional(schema.MaxItems(schema.ArrayOf[OrderLegRequest](OrderLegRequestSchema), MaxLegs)),
		func(r *CreateOrderRequest, v *[]OrderLegRequest) { r.Legs = deref(v) }),
	schema.Field("take_profit", schema.Optional[TakeProfit](TakeProfitSchema), func(r *CreateOrderRequest, v *TakeProfit) { r.TakeProfit = v }),
	schema.Field("stop_loss", schema.Optional[StopLoss](StopLossSchema), func(r *CreateOrderRequest, v *StopLoss) { r.StopLoss = v }),
	schema.Field("position_intent", schema.Optional(positionIntentRule), func(r *CreateOrderRequest, v *PositionIntent) { r.PositionIntent = deref(v) }),
)

// ReplaceOrderRequest PATCH /v2/orders/{order_id} 请求体
type ReplaceOrderRequest struct {
	Qty           *decimal.Decimal `json:"qty,omitempty"`
	TimeInForce   TimeInForce      `json:"time_in_force,omitempty"`
	LimitPrice    *decimal.Decimal `json:"limit_price,omitempty"`
	StopPrice     *decimal.Decimal `json:"stop_price,omitempty"`
	Trail         *decimal.Decimal `json:"trail,omitempty"`
	ClientOrderID string           `json:"client_order_id,omitempty"`
}

var ReplaceOrderRequestSchema = schema.MustDefine("ReplaceOrderRequest",
	schema.Field("qty", optDecimal, func(r *ReplaceOrderRequest, v *decimal.Decimal) { r.Qty = v }),
	schema.Field("time_in_force", schema.Optional(timeInForceRule), func(r *ReplaceOrderRequest, v *TimeInForce) { r.TimeInForce = deref(v) }),
	schema.Field("limit_price", optDecimal, func(r *ReplaceOrderRequest, v *decimal.Decimal) { r.LimitPrice = v }),
	schema.Field("stop_price", optDecimal, func(r *ReplaceOrderRequest, v *decimal.Decimal) { r.StopPrice = v }),
	schema.Field("trail", optDecimal, func(r *ReplaceOrderRequest, v *decimal.Decimal) { r.Trail = v }),
	schema.Field("client_order_id", schema.Optional(schema.MaxLen(schema.String(), 128)), func(r *ReplaceOrderRequest, v *string) { r.ClientOrderID = deref(v) }),
)

// OrdersQuery GET /v2/orders 查询参数
type OrdersQuery struct {
	Status     *OrderQueryStatus `query:"status"`
	Limit      *int              `query:"limit"`
	After      *tagged.DateTime  `query:"after"`
	Until      *tagged.DateTime  `query:"until"`
	Direction  *SortDirection    `query:"direction"`
	Nested     *bool             `query:"nested"`
	Symbols    []string          `query:"symbols"`
	Side       *OrderSide        `query:"side"`
	AssetClass []AssetClass      `query:"asset_class"`
}

var OrdersQuerySchema = schema.MustDefine("OrdersQuery",
	schema.Field("status", schema.Optional(schema.Enum(QueryOpen, QueryClosed, QueryAll)), func(q *OrdersQuery, v *OrderQueryStatus) { q.Status = v }),
	schema.Field("limit", schema.Optional(schema.Max(schema.StringToInt(), 10000)), func(q *OrdersQuery, v *int) { q.Limit = v }),
	schema.Field("after", optDateTime, func(q *OrdersQuery, v *tagged.DateTime) { q.After = v }),
	schema.Field("until", optDateTime, func(q *OrdersQuery, v *tagged.DateTime) { q.Until = v }),
	schema.Field("direction", schema.Optional(directionRule), func(q *OrdersQuery, v *SortDirection) { q.Direction = v }),
	schema.Field("nested", schema.Optional(schema.StringToBool()), func(q *OrdersQuery, v *bool) { q.Nested = v }),
	schema.Field("symbols", schema.Optional(schema.StringToList(schema.MinLen(schema.String(), 1))), func(q *OrdersQuery, v *[]string) { q.Symbols = deref(v) }),
	schema.Field("side", schema.Optional(sideRule), func(q *OrdersQuery, v *OrderSide) { q.Side = v }),
	schema.Field("asset_class", schema.Optional(schema.StringToList(assetClassRule)), func(q *OrdersQuery, v *[]AssetClass) { q.AssetClass = deref(v) }),
)

// GetOrderQuery GET /v2/orders/{order_id} 查询参数
type GetOrderQuery struct {
	Nested *bool `query:"nested"`
}

var GetOrderQuerySchema = schema.MustDefine("GetOrderQuery",
	schema.Field("nested", schema.Optional(schema.StringToBool()), func(q *GetOrderQuery, v *bool) { q.Nested = v }),
)

// ClientOrderIDQuery GET /v2/orders:by_client_order_id 查询参数
type ClientOrderIDQuery struct {
	ClientOrderID string `query:"client_order_id"`
}

var ClientOrderIDQuerySchema = schema.MustDefine("ClientOrderIDQuery",
	schema.Field("client_order_id", schema.MaxLen(schema.MinLen(schema.String(), 1), 128), func(q *ClientOrderIDQuery, v string) { q.ClientOrderID = v }),
)

// CancelOrderResultSchema DELETE /v2/orders 207 响应中的单项 {id, status, body?}
var CancelOrderResultSchema = bulkItemSchema("CancelOrderResult", "id")
