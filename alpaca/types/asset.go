package types

import (
	"github.com/betbot/goalpaca/pkg/schema"
	"github.com/betbot/goalpaca/pkg/schema/tagged"
)

// AssetAttribute 资产属性
type AssetAttribute string

const (
	AttrPTPNoException      AssetAttribute = "ptp_no_exception"
	AttrPTPWithException    AssetAttribute = "ptp_with_exception"
	AttrIPO                 AssetAttribute = "ipo"
	AttrHasOptions          AssetAttribute = "has_options"
	AttrOptionsLateClose    AssetAttribute = "options_late_close"
	AttrFractionalEHEnabled AssetAttribute = "fractional_eh_enabled"
	AttrOvernightTradable   AssetAttribute = "overnight_tradable"
	AttrOvernightHalted     AssetAttribute = "overnight_halted"
)

var attributeRule = schema.Enum(
	AttrPTPNoException, AttrPTPWithException, AttrIPO, AttrHasOptions,
	AttrOptionsLateClose, AttrFractionalEHEnabled, AttrOvernightTradable, AttrOvernightHalted,
)

// Asset 可交易资产
type Asset struct {
	schema.Retained
	ID                           tagged.UUID
	Class                        AssetClass
	Cusip                        *string
	Exchange                     Exchange
	Symbol                       string
	Name                         string
	Status                       ActiveStatus
	Tradable                     bool
	Marginable                   bool
	Shortable                    bool
	EasyToBorrow                 bool
	Fractionable                 bool
	MaintenanceMarginRequirement *float64 // 已废弃，使用 MarginRequirementLong/Short
	MarginRequirementLong        *float64
	MarginRequirementShort       *float64
	Attributes                   []AssetAttribute
}

var AssetSchema = schema.MustDefine("Asset",
	schema.Field("id", tagged.UUIDRule(), func(a *Asset, v tagged.UUID) { a.ID = v }),
	schema.Field("class", assetClassRule, func(a *Asset, v AssetClass) { a.Class = v }),
	schema.Field("cusip", schema.Optional(schema.String()), func(a *Asset, v *string) { a.Cusip = v }),
	schema.Field("exchange", exchangeRule, func(a *Asset, v Exchange) { a.Exchange = v }),
	schema.Field("symbol", schema.String(), func(a *Asset, v string) { a.Symbol = v }),
	schema.Field("name", schema.MinLen(schema.String(), 1), func(a *Asset, v string) { a.Name = v }),
	schema.Field("status", activeStatusRule, func(a *Asset, v ActiveStatus) { a.Status = v }),
	schema.Field("tradable", schema.Bool(), func(a *Asset, v bool) { a.Tradable = v }),
	schema.Field("marginable", schema.Bool(), func(a *Asset, v bool) { a.Marginable = v }),
	schema.Field("shortable", schema.Bool(), func(a *Asset, v bool) { a.Shortable = v }),
	schema.Field("easy_to_borrow", schema.Bool(), func(a *Asset, v bool) { a.EasyToBorrow = v }),
	schema.Field("fractionable", schema.Bool(), func(a *Asset, v bool) { a.Fractionable = v }),
	schema.Field("maintenance_margin_requirement", schema.Optional(schema.Float()), func(a *Asset, v *float64) { a.MaintenanceMarginRequirement = v }),
	schema.Field("margin_requirement_long", schema.Optional(schema.Float()), func(a *Asset, v *float64) { a.MarginRequirementLong = v }),
	schema.Field("margin_requirement_short", schema.Optional(schema.Float()), func(a *Asset, v *float64) { a.MarginRequirementShort = v }),
	schema.Field("attributes", schema.Optional(schema.ArrayOf(attributeRule)), func(a *Asset, v *[]AssetAttribute) { a.Attributes = deref(v) }),
)

// AssetsQuery GET /v2/assets 查询参数
type AssetsQuery struct {
	Status     *ActiveStatus    `query:"status"`
	AssetClass *AssetClass      `query:"asset_class"`
	Exchange   *Exchange        `query:"exchange"`
	Attributes []AssetAttribute `query:"attributes"`
}

var AssetsQuerySchema = schema.MustDefine("AssetsQuery",
	schema.Field("status", schema.Optional(activeStatusRule), func(q *AssetsQuery, v *ActiveStatus) { q.Status = v }),
	schema.Field("asset_class", schema.Optional(assetClassRule), func(q *AssetsQuery, v *AssetClass) { q.AssetClass = v }),
	schema.Field("exchange", schema.Optional(exchangeRule), func(q *AssetsQuery, v *Exchange) { q.Exchange = v }),
	schema.Field("attributes", schema.Optional(schema.StringToList(attributeRule)), func(q *AssetsQuery, v *[]AssetAttribute) { q.Attributes = deref(v) }),
)

// 期权合约

type ContractType string

const (
	ContractCall ContractType = "call"
	ContractPut  ContractType = "put"
)

type ContractStyle string

const (
	StyleAmerican ContractStyle = "american"
	StyleEuropean ContractStyle = "european"
)

type DeliverableType string

const (
	DeliverableCash   DeliverableType = "cash"
	DeliverableEquity DeliverableType = "equity"
)

type SettlementType string

const (
	SettlementT0 SettlementType = "T+0"
	SettlementT1 SettlementType = "T+1"
	SettlementT2 SettlementType = "T+2"
	SettlementT3 SettlementType = "T+3"
	SettlementT4 SettlementType = "T+4"
	SettlementT5 SettlementType = "T+5"
)

type SettlementMethod string

const (
	SettlementBTOB SettlementMethod = "BTOB"
	SettlementCADF SettlementMethod = "CADF"
	SettlementCAFX SettlementMethod = "CAFX"
	SettlementCCC  SettlementMethod = "CCC"
)

var (
	contractTypeRule  = schema.Enum(ContractCall, ContractPut)
	contractStyleRule = schema.Enum(StyleAmerican, StyleEuropean)
)

// Deliverable 期权合约交割物
type Deliverable struct {
	Type                 DeliverableType
	Symbol               string
	AssetID              *tagged.UUID
	Amount               float64
	AllocationPercentage float64
	SettlementType       SettlementType
	SettlementMethod     SettlementMethod
	DelayedSettlement    bool
}

var DeliverableSchema = schema.MustDefine("Deliverable",
	schema.Field("type", schema.Enum(DeliverableCash, DeliverableEquity), func(d *Deliverable, v DeliverableType) { d.Type = v }),
	schema.Field("symbol", schema.String(), func(d *Deliverable, v string) { d.Symbol = v }),
	schema.Field("asset_id", schema.Optional(tagged.UUIDRule()), func(d *Deliverable, v *tagged.UUID) { d.AssetID = v }),
	schema.Field("amount", schema.Float(), func(d *Deliverable, v float64) { d.Amount = v }),
	schema.Field("allocation_percentage", schema.Float(), func(d *Deliverable, v float64) { d.AllocationPercentage = v }),
	schema.Field("settlement_type", schema.Enum(SettlementT0, SettlementT1, SettlementT2, SettlementT3, SettlementT4, SettlementT5),
		func(d *Deliverable, v SettlementType) { d.SettlementType = v }),
	schema.Field("settlement_method", schema.Enum(SettlementBTOB, SettlementCADF, SettlementCAFX, SettlementCCC),
		func(d *Deliverable, v SettlementMethod) { d.SettlementMethod = v }),
	schema.Field("delayed_settlement", schema.Bool(), func(d *Deliverable, v bool) { d.DelayedSettlement = v }),
)

// OptionContract 期权合约
type OptionContract struct {
	schema.Retained
	ID                tagged.UUID
	Symbol            string
	Name              string
	Status            ActiveStatus
	Tradable          bool
	ExpirationDate    tagged.Date
	RootSymbol        *string
	UnderlyingSymbol  string
	UnderlyingAssetID tagged.UUID
	Type              ContractType
	Style             ContractStyle
	StrikePrice       float64
	Multiplier        float64
	Size              float64
	OpenInterest      *float64
	OpenInterestDate  *tagged.Date
	ClosePrice        *float64
	ClosePriceDate    *tagged.Date
	Deliverables      []Deliverable
}

var OptionContractSchema = schema.MustDefine("OptionContract",
	schema.Field("id", tagged.UUIDRule(), func(c *OptionContract, v tagged.UUID) { c.ID = v }),
	schema.Field("symbol", schema.String(), func(c *OptionContract, v string) { c.Symbol = v }),
	schema.Field("name", schema.String(), func(c *OptionContract, v string) { c.Name = v }),
	schema.Field("status", activeStatusRule, func(c *OptionContract, v ActiveStatus) { c.Status = v }),
	schema.Field("tradable", schema.Bool(), func(c *OptionContract, v bool) { c.Tradable = v }),
	schema.Field("expiration_date", tagged.DateRule(), func(c *OptionContract, v tagged.Date) { c.ExpirationDate = v }),
	schema.Field("root_symbol", schema.Optional(schema.String()), func(c *OptionContract, v *string) { c.RootSymbol = v }),
	schema.Field("underlying_symbol", schema.String(), func(c *OptionContract, v string) { c.UnderlyingSymbol = v }),
	schema.Field("underlying_asset_id", tagged.UUIDRule(), func(c *OptionContract, v tagged.UUID) { c.UnderlyingAssetID = v }),
	schema.Field("type", contractTypeRule, func(c *OptionContract, v ContractType) { c.Type = v }),
	schema.Field("style", contractStyleRule, func(c *OptionContract, v ContractStyle) { c.Style = v }),
	schema.Field("strike_price", schema.Float(), func(c *OptionContract, v float64) { c.StrikePrice = v }),
	schema.Field("multiplier", schema.Float(), func(c *OptionContract, v float64) { c.Multiplier = v }),
	schema.Field("size", schema.Float(), func(c *OptionContract, v float64) { c.Size = v }),
	schema.Field("open_interest", schema.Optional(schema.Float()), func(c *OptionContract, v *float64) { c.OpenInterest = v }),
	schema.Field("open_interest_date", schema.Optional(tagged.DateRule()), func(c *OptionContract, v *tagged.Date) { c.OpenInterestDate = v }),
	schema.Field("close_price", schema.Optional(schema.Float()), func(c *OptionContract, v *float64) { c.ClosePrice = v }),
	schema.Field("close_price_date", schema.Optional(tagged.DateRule()), func(c *OptionContract, v *tagged.Date) { c.ClosePriceDate = v }),
	schema.Field("deliverables", schema.Optional(schema.ArrayOf[Deliverable](DeliverableSchema)), func(c *OptionContract, v *[]Deliverable) { c.Deliverables = deref(v) }),
)

// OptionContractsQuery GET /v2/options/contracts 查询参数
type OptionContractsQuery struct {
	UnderlyingSymbols []string       `query:"underlying_symbols"`
	ShowDeliverables  *bool          `query:"show_deliverables"`
	Status            *ActiveStatus  `query:"status"`
	ExpirationDate    *tagged.Date   `query:"expiration_date"`
	ExpirationDateGTE *tagged.Date   `query:"expiration_date_gte"`
	ExpirationDateLTE *tagged.Date   `query:"expiration_date_lte"`
	RootSymbol        *string        `query:"root_symbol"`
	Type              *ContractType  `query:"type"`
	Style             *ContractStyle `query:"style"`
	StrikePriceGTE    *float64       `query:"strike_price_gte"`
	StrikePriceLTE    *float64       `query:"strike_price_lte"`
	PageToken         *string        `query:"page_token"`
	Limit             *int           `query:"limit"`
	PPInd             *bool          `query:"ppind"`
}

var OptionContractsQuerySchema = schema.MustDefine("OptionContractsQuery",
	schema.Field("underlying_symbols", schema.Optional(schema.StringToList(schema.String())), func(q *OptionContractsQuery, v *[]string) { q.UnderlyingSymbols = deref(v) }),
	schema.Field("show_deliverables", schema.Optional(schema.StringToBool()), func(q *OptionContractsQuery, v *bool) { q.ShowDeliverables = v }),
	schema.Field("status", schema.Optional(activeStatusRule), func(q *OptionContractsQuery, v *ActiveStatus) { q.Status = v }),
	schema.Field("expiration_date", schema.Optional(tagged.DateRule()), func(q *OptionContractsQuery, v *tagged.Date) { q.ExpirationDate = v }),
	schema.Field("expiration_date_gte", schema.Optional(tagged.DateRule()), func(q *OptionContractsQuery, v *tagged.Date) { q.ExpirationDateGTE = v }),
	schema.Field("expiration_date_lte", schema.Optional(tagged.DateRule()), func(q *OptionContractsQuery, v *tagged.Date) { q.ExpirationDateLTE = v }),
	schema.Field("root_symbol", schema.Optional(schema.String()), func(q *OptionContractsQuery, v *string) { q.RootSymbol = v }),
	schema.Field("type", schema.Optional(contractTypeRule), func(q *OptionContractsQuery, v *ContractType) { q.Type = v }),
	schema.Field("style", schema.Optional(contractStyleRule), func(q *OptionContractsQuery, v *ContractStyle) { q.Style = v }),
	schema.Field("strike_price_gte", schema.Optional(schema.StringToFloat()), func(q *OptionContractsQuery, v *float64) { q.StrikePriceGTE = v }),
	schema.Field("strike_price_lte", schema.Optional(schema.StringToFloat()), func(q *OptionContractsQuery, v *float64) { q.StrikePriceLTE = v }),
	schema.Field("page_token", schema.Optional(schema.String()), func(q *OptionContractsQuery, v *string) { q.PageToken = v }),
	schema.Field("limit", schema.Optional(schema.Max(schema.StringToInt(), 10000)), func(q *OptionContractsQuery, v *int) { q.Limit = v }),
	schema.Field("ppind", schema.Optional(schema.StringToBool()), func(q *OptionContractsQuery, v *bool) { q.PPInd = v }),
)

// OptionContractsPage 一页期权合约
type OptionContractsPage struct {
	schema.Retained
	Contracts     []OptionContract
	NextPageToken *string
}

var OptionContractsPageSchema = schema.MustDefine("OptionContractsPage",
	schema.Field("option_contracts", schema.ArrayOf[OptionContract](OptionContractSchema), func(p *OptionContractsPage, v []OptionContract) { p.Contracts = v }),
	schema.Field("next_page_token", schema.Optional(schema.String()), func(p *OptionContractsPage, v *string) { p.NextPageToken = v }),
)

// 美国国债

type TreasurySubtype string

const (
	TreasuryBond     TreasurySubtype = "bond"
	TreasuryBill     TreasurySubtype = "bill"
	TreasuryNote     TreasurySubtype = "note"
	TreasuryStrips   TreasurySubtype = "strips"
	TreasuryTIPS     TreasurySubtype = "tips"
	TreasuryFloating TreasurySubtype = "floating"
)

type BondStatus string

const (
	BondOutstanding BondStatus = "outstanding"
	BondMatured     BondStatus = "matured"
	BondPreIssuance BondStatus = "pre_issuance"
)

type CouponType string

const (
	CouponFixed    CouponType = "fixed"
	CouponFloating CouponType = "floating"
	CouponZero     CouponType = "zero"
)

type CouponFrequency string

const (
	CouponAnnual     CouponFrequency = "annual"
	CouponSemiAnnual CouponFrequency = "semi_annual"
	CouponQuarterly  CouponFrequency = "quarterly"
	CouponMonthly    CouponFrequency = "monthly"
	CouponNone       CouponFrequency = "zero"
)

var (
	treasurySubtypeRule = schema.Enum(TreasuryBond, TreasuryBill, TreasuryNote, TreasuryStrips, TreasuryTIPS, TreasuryFloating)
	bondStatusRule      = schema.Enum(BondOutstanding, BondMatured, BondPreIssuance)
	securityIDRule      = schema.Len(schema.String(), 12)
)

// Treasury 国债
type Treasury struct {
	schema.Retained
	Cusip                string
	ISIN                 string
	BondStatus           BondStatus
	Tradable             bool
	Subtype              TreasurySubtype
	IssueDate            tagged.Date
	MaturityDate         tagged.Date
	Description          string
	DescriptionShort     string
	ClosePrice           *float64
	ClosePriceDate       *tagged.Date
	CloseYieldToMaturity *float64
	CloseYieldToWorst    *float64
	Coupon               float64
	CouponType           CouponType
	CouponFrequency      CouponFrequency
	FirstCouponDate      *tagged.Date
	NextCouponDate       *tagged.Date
	LastCouponDate       *tagged.Date
}

var TreasurySchema = schema.MustDefine("Treasury",
	schema.Field("cusip", securityIDRule, func(t *Treasury, v string) { t.Cusip = v }),
	schema.Field("isin", securityIDRule, func(t *Treasury, v string) { t.ISIN = v }),
	schema.Field("bond_status", bondStatusRule, func(t *Treasury, v BondStatus) { t.BondStatus = v }),
	schema.Field("tradable", schema.Bool(), func(t *Treasury, v bool) { t.Tradable = v }),
	schema.Field("subtype", treasurySubtypeRule, func(t *Treasury, v TreasurySubtype) { t.Subtype = v }),
	schema.Field("issue_date", tagged.DateRule(), func(t *Treasury, v tagged.Date) { t.IssueDate = v }),
	schema.Field("maturity_date", tagged.DateRule(), func(t *Treasury, v tagged.Date) { t.MaturityDate = v }),
	schema.Field("description", schema.String(), func(t *Treasury, v string) { t.Description = v }),
	schema.Field("description_short", schema.String(), func(t *Treasury, v string) { t.DescriptionShort = v }),
	schema.Field("close_price", schema.Optional(schema.Float()), func(t *Treasury, v *float64) { t.ClosePrice = v }),
	schema.Field("close_price_date", schema.Optional(tagged.DateRule()), func(t *Treasury, v *tagged.Date) { t.ClosePriceDate = v }),
	schema.Field("close_yield_to_maturity", schema.Optional(schema.Float()), func(t *Treasury, v *float64) { t.CloseYieldToMaturity = v }),
	schema.Field("close_yield_to_worst", schema.Optional(schema.Float()), func(t *Treasury, v *float64) { t.CloseYieldToWorst = v }),
	schema.Field("coupon", schema.Float(), func(t *Treasury, v float64) { t.Coupon = v }),
	schema.Field("coupon_type", schema.Enum(CouponFixed, CouponFloating, CouponZero), func(t *Treasury, v CouponType) { t.CouponType = v }),
	schema.Field("coupon_frequency", schema.Enum(CouponAnnual, CouponSemiAnnual, CouponQuarterly, CouponMonthly, CouponNone),
		func(t *Treasury, v CouponFrequency) { t.CouponFrequency = v }),
	schema.Field("first_coupon_date", schema.Optional(tagged.DateRule()), func(t *Treasury, v *tagged.Date) { t.FirstCouponDate = v }),
	schema.Field("next_coupon_date", schema.Optional(tagged.DateRule()), func(t *Treasury, v *tagged.Date) { t.NextCouponDate = v }),
	schema.Field("last_coupon_date", schema.Optional(tagged.DateRule()), func(t *Treasury, v *tagged.Date) { t.LastCouponDate = v }),
)

type treasuriesEnvelope struct {
	Treasuries []Treasury
}

// TreasuriesResponse 响应体 {"us_treasuries": [...]} 展开为列表
var TreasuriesResponse = schema.Transform(
	schema.Rule[treasuriesEnvelope](schema.MustDefine("TreasuriesResponse",
		schema.Field("us_treasuries", schema.ArrayOf[Treasury](TreasurySchema), func(e *treasuriesEnvelope, v []Treasury) { e.Treasuries = v }),
	)),
	func(e treasuriesEnvelope) ([]Treasury, error) { return e.Treasuries, nil },
)

// TreasuriesQuery GET /v2/treasuries 查询参数
type TreasuriesQuery struct {
	Subtype    *TreasurySubtype `query:"subtype"`
	BondStatus *BondStatus      `query:"bond_status"`
	Cusips     []string         `query:"cusips"`
	ISINs      []string         `query:"isins"`
}

var TreasuriesQuerySchema = schema.MustDefine("TreasuriesQuery",
	schema.Field("subtype", schema.Optional(treasurySubtypeRule), func(q *TreasuriesQuery, v *TreasurySubtype) { q.Subtype = v }),
	schema.Field("bond_status", schema.Optional(bondStatusRule), func(q *TreasuriesQuery, v *BondStatus) { q.BondStatus = v }),
	schema.Field("cusips", schema.Optional(schema.MaxItems(schema.StringToList(securityIDRule), 1000)), func(q *TreasuriesQuery, v *[]string) { q.Cusips = deref(v) }),
	schema.Field("isins", schema.Optional(schema.MaxItems(schema.StringToList(securityIDRule), 1000)), func(q *TreasuriesQuery, v *[]string) { q.ISINs = deref(v) }),
)
