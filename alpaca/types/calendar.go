package types

import (
	"github.com/betbot/goalpaca/pkg/schema"
	"github.com/betbot/goalpaca/pkg/schema/tagged"
)

// CalendarDay 交易日历中的一天（时间为美东时间 HH:MM）
type CalendarDay struct {
	Date           tagged.Date
	Open           tagged.Time
	Close          tagged.Time
	SettlementDate tagged.Date
}

var CalendarDaySchema = schema.MustDefine("CalendarDay",
	schema.Field("date", tagged.DateRule(), func(d *CalendarDay, v tagged.Date) { d.Date = v }),
	schema.Field("open", tagged.TimeRule(), func(d *CalendarDay, v tagged.Time) { d.Open = v }),
	schema.Field("close", tagged.TimeRule(), func(d *CalendarDay, v tagged.Time) { d.Close = v }),
	schema.Field("settlement_date", tagged.DateRule(), func(d *CalendarDay, v tagged.Date) { d.SettlementDate = v }),
)

// CalendarDateType start/end 按交易日还是结算日解释
type CalendarDateType string

const (
	DateTypeTrading    CalendarDateType = "TRADING"
	DateTypeSettlement CalendarDateType = "SETTLEMENT"
)

// CalendarQuery GET /v2/calendar 查询参数
type CalendarQuery struct {
	Start    *tagged.Date      `query:"start"`
	End      *tagged.Date      `query:"end"`
	DateType *CalendarDateType `query:"date_type"`
}

var CalendarQuerySchema = schema.MustDefine("CalendarQuery",
	schema.Field("start", schema.Optional(tagged.DateRule()), func(q *CalendarQuery, v *tagged.Date) { q.Start = v }),
	schema.Field("end", schema.Optional(tagged.DateRule()), func(q *CalendarQuery, v *tagged.Date) { q.End = v }),
	schema.Field("date_type", schema.Optional(schema.Enum(DateTypeTrading, DateTypeSettlement)),
		func(q *CalendarQuery, v *CalendarDateType) { q.DateType = v }),
)

// Clock 市场时钟
type Clock struct {
	schema.Retained
	Timestamp tagged.DateTime
	IsOpen    bool
	NextOpen  tagged.DateTime
	NextClose tagged.DateTime
}

var ClockSchema = schema.MustDefine("Clock",
	schema.Field("timestamp", tagged.DateTimeRule(), func(c *Clock, v tagged.DateTime) { c.Timestamp = v }),
	schema.Field("is_open", schema.Bool(), func(c *Clock, v bool) { c.IsOpen = v }),
	schema.Field("next_open", tagged.DateTimeRule(), func(c *Clock, v tagged.DateTime) { c.NextOpen = v }),
	schema.Field("next_close", tagged.DateTimeRule(), func(c *Clock, v tagged.DateTime) { c.NextClose = v }),
)
