// Package types 定义交易接口的领域类型、请求参数以及它们对应的 Schema。
package types

import (
	"github.com/betbot/goalpaca/pkg/schema"
)

// Currency 账户币种
type Currency string

const (
	CurrencyUSD Currency = "USD"
)

// AssetClass 资产类别
type AssetClass string

const (
	AssetClassUSEquity AssetClass = "us_equity"
	AssetClassUSOption AssetClass = "us_option"
	AssetClassCrypto   AssetClass = "crypto"
)

var AssetClasses = []AssetClass{AssetClassUSEquity, AssetClassUSOption, AssetClassCrypto}

// Exchange 交易所
type Exchange string

const (
	ExchangeAMEX     Exchange = "AMEX"
	ExchangeARCA     Exchange = "ARCA"
	ExchangeBATS     Exchange = "BATS"
	ExchangeNYSE     Exchange = "NYSE"
	ExchangeNASDAQ   Exchange = "NASDAQ"
	ExchangeNYSEARCA Exchange = "NYSEARCA"
	ExchangeOTC      Exchange = "OTC"
	ExchangeCRYPTO   Exchange = "CRYPTO"
)

var Exchanges = []Exchange{
	ExchangeAMEX, ExchangeARCA, ExchangeBATS, ExchangeNYSE,
	ExchangeNASDAQ, ExchangeNYSEARCA, ExchangeOTC, ExchangeCRYPTO,
}

// ActiveStatus 资产/合约状态
type ActiveStatus string

const (
	StatusActive   ActiveStatus = "active"
	StatusInactive ActiveStatus = "inactive"
)

// SortDirection 排序方向
type SortDirection string

const (
	SortAsc  SortDirection = "asc"
	SortDesc SortDirection = "desc"
)

var (
	currencyRule     = schema.Enum(CurrencyUSD)
	assetClassRule   = schema.Enum(AssetClasses...)
	exchangeRule     = schema.Enum(Exchanges...)
	activeStatusRule = schema.Enum(StatusActive, StatusInactive)
	directionRule    = schema.Enum(SortAsc, SortDesc)
)

// BulkItem 批量操作（207）中的单项结果
type BulkItem struct {
	schema.Retained
	ID     string         // 订单 ID 或持仓 symbol
	Status int            // 单项 HTTP 状态，200 为成功
	Body   map[string]any // 单项响应体（可选）
}

// OK 单项是否成功
func (b BulkItem) OK() bool { return b.Status == 200 }

// Message 失败单项的错误信息（body.message）
func (b BulkItem) Message() string {
	if msg, ok := b.Body["message"].(string); ok {
		return msg
	}
	return ""
}

func bulkItemSchema(name, idField string) *schema.Schema[BulkItem] {
	return schema.MustDefine(name,
		schema.Field(idField, schema.MinLen(schema.String(), 1), func(b *BulkItem, v string) { b.ID = v }),
		schema.Field("status", schema.Int(), func(b *BulkItem, v int) { b.Status = v }),
		schema.Field("body", schema.Optional(schema.Identity[map[string]any]()), func(b *BulkItem, v *map[string]any) {
			if v != nil {
				b.Body = *v
			}
		}),
	)
}

func deref[V any](p *V) V {
	var zero V
	if p == nil {
		return zero
	}
	return *p
}
