package types

import (
	"github.com/shopspring/decimal"

	"github.com/betbot/goalpaca/pkg/schema"
	"github.com/betbot/goalpaca/pkg/schema/tagged"
)

// AccountStatus 账户状态
type AccountStatus string

const (
	AccountOnboarding       AccountStatus = "ONBOARDING"
	AccountSubmissionFailed AccountStatus = "SUBMISSION_FAILED"
	AccountSubmitted        AccountStatus = "SUBMITTED"
	AccountUpdated          AccountStatus = "ACCOUNT_UPDATED"
	AccountApprovalPending  AccountStatus = "APPROVAL_PENDING"
	AccountActive           AccountStatus = "ACTIVE"
	AccountRejected         AccountStatus = "REJECTED"
)

// OptionsTradingLevel 期权交易等级
type OptionsTradingLevel int

const (
	OptionsDisabled                  OptionsTradingLevel = 0
	OptionsCoveredCallCashSecuredPut OptionsTradingLevel = 1
	OptionsLongCallPut               OptionsTradingLevel = 2
	OptionsSpreadsStraddles          OptionsTradingLevel = 3
)

func (l OptionsTradingLevel) String() string {
	switch l {
	case OptionsDisabled:
		return "disabled"
	case OptionsCoveredCallCashSecuredPut:
		return "Covered Call/Cash-Secured Put"
	case OptionsLongCallPut:
		return "Long Call/Put"
	case OptionsSpreadsStraddles:
		return "Spreads/Straddles"
	}
	return "unknown"
}

var optionsLevelRule = schema.Transform(
	schema.Max(schema.Min(schema.Int(), 0), 3),
	func(n int) (OptionsTradingLevel, error) { return OptionsTradingLevel(n), nil },
)

// Account 交易账户。金额字段使用 decimal 避免精度损失。
type Account struct {
	schema.Retained
	ID                       tagged.UUID
	AccountNumber            string
	Status                   AccountStatus
	Currency                 Currency
	Cash                     decimal.Decimal
	PortfolioValue           decimal.Decimal // 已废弃，使用 Equity
	Equity                   decimal.Decimal
	LastEquity               decimal.Decimal
	BuyingPower              decimal.Decimal
	RegTBuyingPower          decimal.Decimal
	DaytradingBuyingPower    decimal.Decimal
	NonMarginableBuyingPower decimal.Decimal
	LongMarketValue          decimal.Decimal
	ShortMarketValue         decimal.Decimal
	InitialMargin            decimal.Decimal
	MaintenanceMargin        decimal.Decimal
	LastMaintenanceMargin    decimal.Decimal
	SMA                      decimal.Decimal
	Multiplier               int
	DaytradeCount            int
	PatternDayTrader         bool
	TradingBlocked           bool
	TransfersBlocked         bool
	AccountBlocked           bool
	TradeSuspendedByUser     bool
	ShortingEnabled          bool
	CreatedAt                tagged.DateTime

	// 文档标明可能缺省的字段
	OptionsBuyingPower   *decimal.Decimal
	AccruedFees          *decimal.Decimal
	PendingTransferIn    *decimal.Decimal
	PendingTransferOut   *decimal.Decimal
	IntradayAdjustments  *decimal.Decimal
	PendingRegTAFFees    *decimal.Decimal
	BalanceAsOf          *tagged.Date
	OptionsApprovedLevel *OptionsTradingLevel
	OptionsTradingLevel  *OptionsTradingLevel

	// 未文档化字段，原样保留
	EffectiveBuyingPower *decimal.Decimal
	PositionMarketValue  *decimal.Decimal
	BodDTBP              *decimal.Decimal
	CryptoTier           *int
	CryptoStatus         any
	AdminConfigurations  any
	UserConfigurations   any
}

func dec(name string, set func(*Account, decimal.Decimal)) schema.FieldDef[Account] {
	return schema.Field(name, schema.StringToDecimal(), set)
}

func optDec(name string, set func(*Account, *decimal.Decimal)) schema.FieldDef[Account] {
	return schema.Field(name, schema.Optional(schema.StringToDecimal()), set)
}

func flag(name string, set func(*Account, bool)) schema.FieldDef[Account] {
	return schema.Field(name, schema.Bool(), set)
}

var AccountSchema = schema.MustDefine("Account",
	schema.Field("id", tagged.UUIDRule(), func(a *Account, v tagged.UUID) { a.ID = v }),
	schema.Field("account_number", schema.String(), func(a *Account, v string) { a.AccountNumber = v }),
	schema.Field("status", schema.Enum(
		AccountOnboarding, AccountSubmissionFailed, AccountSubmitted, AccountUpdated,
		AccountApprovalPending, AccountActive, AccountRejected,
	), func(a *Account, v AccountStatus) { a.Status = v }),
	schema.Field("currency", currencyRule, func(a *Account, v Currency) { a.Currency = v }),
	dec("cash", func(a *Account, v decimal.Decimal) { a.Cash = v }),
	dec("portfolio_value", func(a *Account, v decimal.Decimal) { a.PortfolioValue = v }),
	dec("equity", func(a *Account, v decimal.Decimal) { a.Equity = v }),
	dec("last_equity", func(a *Account, v decimal.Decimal) { a.LastEquity = v }),
	dec("buying_power", func(a *Account, v decimal.Decimal) { a.BuyingPower = v }),
	dec("regt_buying_power", func(a *Account, v decimal.Decimal) { a.RegTBuyingPower = v }),
	dec("daytrading_buying_power", func(a *Account, v decimal.Decimal) { a.DaytradingBuyingPower = v }),
	dec("non_marginable_buying_power", func(a *Account, v decimal.Decimal) { a.NonMarginableBuyingPower = v }),
	dec("long_market_value", func(a *Account, v decimal.Decimal) { a.LongMarketValue = v }),
	dec("short_market_value", func(a *Account, v decimal.Decimal) { a.ShortMarketValue = v }),
	dec("initial_margin", func(a *Account, v decimal.Decimal) { a.InitialMargin = v }),
	dec("maintenance_margin", func(a *Account, v decimal.Decimal) { a.MaintenanceMargin = v }),
	dec("last_maintenance_margin", func(a *Account, v decimal.Decimal) { a.LastMaintenanceMargin = v }),
	dec("sma", func(a *Account, v decimal.Decimal) { a.SMA = v }),
	schema.Field("multiplier", schema.Int(), func(a *Account, v int) { a.Multiplier = v }),
	schema.Field("daytrade_count", schema.Int(), func(a *Account, v int) { a.DaytradeCount = v }),
	flag("pattern_day_trader", func(a *Account, v bool) { a.PatternDayTrader = v }),
	flag("trading_blocked", func(a *Account, v bool) { a.TradingBlocked = v }),
	flag("transfers_blocked", func(a *Account, v bool) { a.TransfersBlocked = v }),
	flag("account_blocked", func(a *Account, v bool) { a.AccountBlocked = v }),
	flag("trade_suspended_by_user", func(a *Account, v bool) { a.TradeSuspendedByUser = v }),
	flag("shorting_enabled", func(a *Account, v bool) { a.ShortingEnabled = v }),
	schema.Field("created_at", tagged.DateTimeRule(), func(a *Account, v tagged.DateTime) { a.CreatedAt = v }),

	optDec("options_buying_power", func(a *Account, v *decimal.Decimal) { a.OptionsBuyingPower = v }),
	optDec("accrued_fees", func(a *Account, v *decimal.Decimal) { a.AccruedFees = v }),
	optDec("pending_transfer_in", func(a *Account, v *decimal.Decimal) { a.PendingTransferIn = v }),
	optDec("pending_transfer_out", func(a *Account, v *decimal.Decimal) { a.PendingTransferOut = v }),
	optDec("intraday_adjustments", func(a *Account, v *decimal.Decimal) { a.IntradayAdjustments = v }),
	optDec("pending_reg_taf_fees", func(a *Account, v *decimal.Decimal) { a.PendingRegTAFFees = v }),
	schema.Field("balance_asof", schema.Optional(tagged.DateRule()), func(a *Account, v *tagged.Date) { a.BalanceAsOf = v }),
	schema.Field("options_approved_level", schema.Optional(optionsLevelRule), func(a *Account, v *OptionsTradingLevel) { a.OptionsApprovedLevel = v }),
	schema.Field("options_trading_level", schema.Optional(optionsLevelRule), func(a *Account, v *OptionsTradingLevel) { a.OptionsTradingLevel = v }),

	optDec("effective_buying_power", func(a *Account, v *decimal.Decimal) { a.EffectiveBuyingPower = v }),
	optDec("position_market_value", func(a *Account, v *decimal.Decimal) { a.PositionMarketValue = v }),
	optDec("bod_dtbp", func(a *Account, v *decimal.Decimal) { a.BodDTBP = v }),
	schema.Field("crypto_tier", schema.Optional(schema.Int()), func(a *Account, v *int) { a.CryptoTier = v }),
	schema.Field("crypto_status", schema.Any(), func(a *Account, v any) { a.CryptoStatus = v }),
	schema.Field("admin_configurations", schema.Any(), func(a *Account, v any) { a.AdminConfigurations = v }),
	schema.Field("user_configurations", schema.Any(), func(a *Account, v any) { a.UserConfigurations = v }),
)

// DTBPCheck 日内交易购买力检查
type DTBPCheck string

const (
	DTBPCheckBoth  DTBPCheck = "both"
	DTBPCheckEntry DTBPCheck = "entry"
	DTBPCheckExit  DTBPCheck = "exit"
)

// TradeConfirmEmail 成交确认邮件
type TradeConfirmEmail string

const (
	TradeConfirmAll  TradeConfirmEmail = "all"
	TradeConfirmNone TradeConfirmEmail = "none"
)

var (
	dtbpCheckRule    = schema.Enum(DTBPCheckBoth, DTBPCheckEntry, DTBPCheckExit)
	tradeConfirmRule = schema.Enum(TradeConfirmAll, TradeConfirmNone)
	maxMarginRule    = schema.Enum("1", "2", "4")
)

// AccountConfigurations 账户配置（同一结构同时用于响应和 PATCH 请求体）
type AccountConfigurations struct {
	schema.Retained
	DTBPCheck              *DTBPCheck           `json:"dtbp_check,omitempty"`
	PDTCheck               *DTBPCheck           `json:"pdt_check,omitempty"`
	TradeConfirmEmail      *TradeConfirmEmail   `json:"trade_confirm_email,omitempty"`
	SuspendTrade           *bool                `json:"suspend_trade,omitempty"`
	NoShorting             *bool                `json:"no_shorting,omitempty"`
	FractionalTrading      *bool                `json:"fractional_trading,omitempty"`
	MaxMarginMultiplier    *string              `json:"max_margin_multiplier,omitempty"`
	MaxOptionsTradingLevel *OptionsTradingLevel `json:"max_options_trading_level,omitempty"`
	PTPNoExceptionEntry    *bool                `json:"ptp_no_exception_entry,omitempty"`
}

var AccountConfigurationsSchema = schema.MustDefine("AccountConfigurations",
	schema.Field("dtbp_check", schema.Optional(dtbpCheckRule), func(c *AccountConfigurations, v *DTBPCheck) { c.DTBPCheck = v }),
	schema.Field("pdt_check", schema.Optional(dtbpCheckRule), func(c *AccountConfigurations, v *DTBPCheck) { c.PDTCheck = v }),
	schema.Field("trade_confirm_email", schema.Optional(tradeConfirmRule), func(c *AccountConfigurations, v *TradeConfirmEmail) { c.TradeConfirmEmail = v }),
	schema.Field("suspend_trade", schema.Optional(schema.Bool()), func(c *AccountConfigurations, v *bool) { c.SuspendTrade = v }),
	schema.Field("no_shorting", schema.Optional(schema.Bool()), func(c *AccountConfigurations, v *bool) { c.NoShorting = v }),
	schema.Field("fractional_trading", schema.Optional(schema.Bool()), func(c *AccountConfigurations, v *bool) { c.FractionalTrading = v }),
	schema.Field("max_margin_multiplier", schema.Optional(maxMarginRule), func(c *AccountConfigurations, v *string) { c.MaxMarginMultiplier = v }),
	schema.Field("max_options_trading_level", schema.Optional(optionsLevelRule), func(c *AccountConfigurations, v *OptionsTradingLevel) { c.MaxOptionsTradingLevel = v }),
	schema.Field("ptp_no_exception_entry", schema.Optional(schema.Bool()), func(c *AccountConfigurations, v *bool) { c.PTPNoExceptionEntry = v }),
)
