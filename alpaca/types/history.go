package types

import (
	"fmt"
	"regexp"
	"time"

	"github.com/betbot/goalpaca/pkg/schema"
	"github.com/betbot/goalpaca/pkg/schema/tagged"
)

// IntradayReporting 日内数据口径
type IntradayReporting string

const (
	ReportMarketHours   IntradayReporting = "market_hours"
	ReportExtendedHours IntradayReporting = "extended_hours"
	ReportContinuous    IntradayReporting = "continuous"
)

// PNLReset 盈亏基准重置方式
type PNLReset string

const (
	PNLResetPerDay PNLReset = "per_day"
	PNLResetNone   PNLReset = "no_reset"
)

// ActivityType 账户活动类型（用于 cashflow_types）
type ActivityType string

const (
	ActivityAll  ActivityType = "ALL"
	ActivityNone ActivityType = "NONE"
)

// ActivityTypes 可用于 cashflow_types 的全部取值
var ActivityTypes = []ActivityType{
	"FILL", "TRANS", "MISC", "ACATC", "ACATS", "CFEE", "CSD", "CSW", "DIV", "DIVCGL",
	"DIVCGS", "DIVFEE", "DIVFT", "DIVNRA", "DIVROC", "DIVTW", "DIVTXEX", "FEE", "INT",
	"INTNRA", "INTTW", "JNL", "JNLC", "JNLS", "MA", "NC", "OPASN", "OPCA", "OPCSH",
	"OPEXC", "OPEXP", "OPTRD", "PTC", "PTR", "REORG", "SPIN", "SPLIT",
	ActivityAll, ActivityNone,
}

var (
	periodPattern    = regexp.MustCompile(`^\d+[DWMA]$`)
	timeframePattern = regexp.MustCompile(`^\d+(Min|H|D)$`)

	timeframeRule = schema.Pattern(schema.String(), timeframePattern, "timeframe")
)

// HistoryQuery GET /v2/account/portfolio/history 查询参数
type HistoryQuery struct {
	Period            string             `query:"period,omitempty"`    // 例如 1D、2W、3M、1A
	Timeframe         string             `query:"timeframe,omitempty"` // 例如 1Min、15Min、1H、1D
	IntradayReporting *IntradayReporting `query:"intraday_reporting"`
	Start             *tagged.DateTime   `query:"start"`
	End               *tagged.DateTime   `query:"end"`
	PNLReset          *PNLReset          `query:"pnl_reset"`
	ExtendedHours     *bool              `query:"extended_hours"` // 已废弃，使用 IntradayReporting
	CashflowTypes     []ActivityType     `query:"cashflow_types"`
}

var HistoryQuerySchema = schema.MustDefine("HistoryQuery",
	schema.Field("period", schema.Optional(schema.Pattern(schema.String(), periodPattern, "period")), func(q *HistoryQuery, v *string) { q.Period = deref(v) }),
	schema.Field("timeframe", schema.Optional(timeframeRule), func(q *HistoryQuery, v *string) { q.Timeframe = deref(v) }),
	schema.Field("intraday_reporting", schema.Optional(schema.Enum(ReportMarketHours, ReportExtendedHours, ReportContinuous)),
		func(q *HistoryQuery, v *IntradayReporting) { q.IntradayReporting = v }),
	schema.Field("start", optDateTime, func(q *HistoryQuery, v *tagged.DateTime) { q.Start = v }),
	schema.Field("end", optDateTime, func(q *HistoryQuery, v *tagged.DateTime) { q.End = v }),
	schema.Field("pnl_reset", schema.Optional(schema.Enum(PNLResetPerDay, PNLResetNone)), func(q *HistoryQuery, v *PNLReset) { q.PNLReset = v }),
	schema.Field("extended_hours", schema.Optional(schema.StringToBool()), func(q *HistoryQuery, v *bool) { q.ExtendedHours = v }),
	schema.Field("cashflow_types", schema.Optional(schema.StringToList(schema.Enum(ActivityTypes...))),
		func(q *HistoryQuery, v *[]ActivityType) { q.CashflowTypes = deref(v) }),
)

// HistoryFrame 组合曲线上的一个采样点
type HistoryFrame struct {
	Timestamp     int64 // unix 秒
	Equity        float64
	ProfitLoss    float64
	ProfitLossPct float64
}

// Time 返回采样时间（UTC）
func (f HistoryFrame) Time() time.Time { return time.Unix(f.Timestamp, 0).UTC() }

// History 账户组合历史；线上的并列数组按下标合并为 Frames
type History struct {
	schema.Retained
	Frames        []HistoryFrame
	BaseValue     float64
	BaseValueAsOf *tagged.Date
	Timeframe     string
	Cashflow      map[string]any
}

type historyWire struct {
	schema.Retained
	Timestamp     []int
	Equity        []float64
	ProfitLoss    []float64
	ProfitLossPct []float64
	BaseValue     float64
	BaseValueAsOf *tagged.Date
	Timeframe     string
	Cashflow      map[string]any
}

var historyWireSchema = schema.MustDefine("History",
	schema.Field("timestamp", schema.ArrayOf(schema.Integer()), func(h *historyWire, v []int) { h.Timestamp = v }),
	schema.Field("equity", schema.ArrayOf(schema.Number()), func(h *historyWire, v []float64) { h.Equity = v }),
	schema.Field("profit_loss", schema.ArrayOf(schema.Number()), func(h *historyWire, v []float64) { h.ProfitLoss = v }),
	schema.Field("profit_loss_pct", schema.ArrayOf(schema.Number()), func(h *historyWire, v []float64) { h.ProfitLossPct = v }),
	schema.Field("base_value", schema.Number(), func(h *historyWire, v float64) { h.BaseValue = v }),
	schema.Field("base_value_asof", schema.Optional(tagged.DateRule()), func(h *historyWire, v *tagged.Date) { h.BaseValueAsOf = v }),
	schema.Field("timeframe", timeframeRule, func(h *historyWire, v string) { h.Timeframe = v }),
	schema.Field("cashflow", schema.Optional(schema.Identity[map[string]any]()), func(h *historyWire, v *map[string]any) { h.Cashflow = deref(v) }),
)

// zipHistory 并列数组长度必须一致
func zipHistory(w historyWire) (History, error) {
	n := len(w.Timestamp)
	for _, c := range []struct {
		field string
		l     int
	}{
		{"equity", len(w.Equity)},
		{"profit_loss", len(w.ProfitLoss)},
		{"profit_loss_pct", len(w.ProfitLossPct)},
	} {
		if c.l != n {
			return History{}, &schema.ValidationError{
				Kind:   schema.OutOfRange,
				Field:  c.field,
				Input:  fmt.Sprint(c.l),
				Detail: fmt.Sprintf("length must match timestamp (%d)", n),
			}
		}
	}
	h := History{
		Frames:        make([]HistoryFrame, n),
		BaseValue:     w.BaseValue,
		BaseValueAsOf: w.BaseValueAsOf,
		Timeframe:     w.Timeframe,
		Cashflow:      w.Cashflow,
	}
	h.Retained = w.Retained
	for i := range n {
		h.Frames[i] = HistoryFrame{
			Timestamp:     int64(w.Timestamp[i]),
			Equity:        w.Equity[i],
			ProfitLoss:    w.ProfitLoss[i],
			ProfitLossPct: w.ProfitLossPct[i],
		}
	}
	return h, nil
}

// HistoryResponse 解析并合并组合历史响应
var HistoryResponse = schema.Transform(schema.Rule[historyWire](historyWireSchema), zipHistory)
