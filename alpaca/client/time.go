package client

import (
	"context"
	"net/http"

	"github.com/betbot/goalpaca/alpaca/types"
)

// TimeModule 交易日历与市场时钟
type TimeModule struct {
	c *Client
}

var (
	calendarEndpoint = Endpoint[types.CalendarQuery, NoParams, []types.CalendarDay]{
		Name:     "Get Calendar",
		Method:   http.MethodGet,
		Path:     PathCalendar,
		Query:    types.CalendarQuerySchema,
		Response: listOf(types.CalendarDaySchema),
	}
	clockEndpoint = Endpoint[NoParams, NoParams, types.Clock]{
		Name:     "Get Clock",
		Method:   http.MethodGet,
		Path:     PathClock,
		Response: types.ClockSchema,
	}
)

// Calendar 查询交易日历
func (m *TimeModule) Calendar(ctx context.Context, query types.CalendarQuery) ([]types.CalendarDay, error) {
	return Invoke(ctx, m.c, calendarEndpoint, Call[types.CalendarQuery, NoParams]{Query: &query})
}

// Clock 查询市场时钟
func (m *TimeModule) Clock(ctx context.Context) (types.Clock, error) {
	return Invoke(ctx, m.c, clockEndpoint, Call[NoParams, NoParams]{})
}
