package main

import (
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/betbot/goalpaca/alpaca/client"
	"github.com/betbot/goalpaca/alpaca/types"
	"github.com/betbot/goalpaca/pkg/schema/tagged"
)

func registerAccountCmd(parent *cobra.Command, opts *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:   "account",
		Short: "显示账户概要",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(opts)
			if err != nil {
				return err
			}
			a, err := c.Account.Get(cmd.Context())
			if err != nil {
				return err
			}
			title := fmt.Sprintf("账户 %s (%s)", a.AccountNumber, mode(c))
			fmt.Print(renderPairs(title, []kv{
				{"状态", string(a.Status)},
				{"权益", a.Equity.StringFixed(2)},
				{"现金", a.Cash.StringFixed(2)},
				{"购买力", a.BuyingPower.StringFixed(2)},
				{"日内购买力", a.DaytradingBuyingPower.StringFixed(2)},
				{"当日盈亏", signed(a.Equity.Sub(a.LastEquity))},
				{"多头市值", a.LongMarketValue.StringFixed(2)},
				{"空头市值", a.ShortMarketValue.StringFixed(2)},
				{"日内交易次数", fmt.Sprint(a.DaytradeCount)},
				{"PDT", yesNo(a.PatternDayTrader)},
				{"交易受限", yesNo(a.TradingBlocked)},
			}))
			return nil
		},
	})
}

func registerAssetsCmd(parent *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "assets",
		Short: "查询可交易资产",
	}

	var class, exchange string
	list := &cobra.Command{
		Use:   "list",
		Short: "列出资产",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(opts)
			if err != nil {
				return err
			}
			status := types.StatusActive
			query := types.AssetsQuery{Status: &status}
			if class != "" {
				ac := types.AssetClass(class)
				query.AssetClass = &ac
			}
			if exchange != "" {
				ex := types.Exchange(strings.ToUpper(exchange))
				query.Exchange = &ex
			}
			assets, err := c.Assets.List(cmd.Context(), query)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(assets))
			for _, a := range assets {
				rows = append(rows, []string{a.Symbol, string(a.Exchange), string(a.Class), yesNo(a.Tradable), yesNo(a.Fractionable), a.Name})
			}
			fmt.Println(renderTable([]string{"SYMBOL", "EXCHANGE", "CLASS", "TRADABLE", "FRACTIONABLE", "NAME"}, rows))
			fmt.Printf("共 %d 个资产\n", len(assets))
			return nil
		},
	}
	list.Flags().StringVar(&class, "class", "", "资产类别: us_equity, us_option, crypto")
	list.Flags().StringVar(&exchange, "exchange", "", "交易所，例如 NASDAQ")

	get := &cobra.Command{
		Use:   "get <symbol>",
		Short: "查看单个资产",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := newClient(opts)
			if err != nil {
				return err
			}
			a, err := c.Assets.Get(cmd.Context(), strings.ToUpper(args[0]))
			if err != nil {
				return err
			}
			attrs := make([]string, len(a.Attributes))
			for i, attr := range a.Attributes {
				attrs[i] = string(attr)
			}
			fmt.Print(renderPairs(a.Symbol+" "+a.Name, []kv{
				{"ID", string(a.ID)},
				{"类别", string(a.Class)},
				{"交易所", string(a.Exchange)},
				{"状态", string(a.Status)},
				{"可交易", yesNo(a.Tradable)},
				{"可融资", yesNo(a.Marginable)},
				{"可做空", yesNo(a.Shortable)},
				{"易借券", yesNo(a.EasyToBorrow)},
				{"可碎股", yesNo(a.Fractionable)},
				{"属性", orDash(strings.Join(attrs, ", "))},
			}))
			return nil
		},
	}

	cmd.AddCommand(list, get)
	parent.AddCommand(cmd)
}

func registerOrdersCmd(parent *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "orders",
		Short: "查询与撤销订单",
	}

	var status string
	var limit int
	list := &cobra.Command{
		Use:   "list",
		Short: "列出订单",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(opts)
			if err != nil {
				return err
			}
			qs := types.OrderQueryStatus(status)
			query := types.OrdersQuery{Status: &qs}
			if limit > 0 {
				query.Limit = &limit
			}
			orders, err := c.Orders.List(cmd.Context(), query)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(orders))
			for _, o := range orders {
				rows = append(rows, []string{
					o.ID, o.Symbol, string(o.Side), string(o.Type), decOrDash(o.Qty), o.FilledQty.String(),
					decOrDash(o.LimitPrice), string(o.TimeInForce), string(o.Status),
				})
			}
			fmt.Println(renderTable([]string{"ID", "SYMBOL", "SIDE", "TYPE", "QTY", "FILLED", "LIMIT", "TIF", "STATUS"}, rows))
			return nil
		},
	}
	list.Flags().StringVar(&status, "status", string(types.QueryOpen), "open, closed, all")
	list.Flags().IntVar(&limit, "limit", 0, "最多返回条数（上限 10000）")

	cancelAll := &cobra.Command{
		Use:   "cancel-all",
		Short: "撤销全部未完成订单",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(opts)
			if err != nil {
				return err
			}
			items, err := c.Orders.CancelAll(cmd.Context())
			printBulk(items)
			return err
		},
	}

	cmd.AddCommand(list, cancelAll)
	parent.AddCommand(cmd)
}

func registerPositionsCmd(parent *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "positions",
		Short: "查询持仓",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "列出持仓",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(opts)
			if err != nil {
				return err
			}
			positions, err := c.Positions.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(positions))
			for _, p := range positions {
				rows = append(rows, []string{
					p.Symbol, string(p.Side), p.Qty.String(), p.AvgEntryPrice.StringFixed(2),
					p.CurrentPrice.StringFixed(2), p.MarketValue.StringFixed(2), signed(p.UnrealizedPL), pct(p.UnrealizedPLPC),
				})
			}
			fmt.Println(renderTable([]string{"SYMBOL", "SIDE", "QTY", "AVG", "PRICE", "VALUE", "P/L", "P/L%"}, rows))
			return nil
		},
	})
	parent.AddCommand(cmd)
}

func registerWatchlistsCmd(parent *cobra.Command, opts *rootOptions) {
	cmd := &cobra.Command{
		Use:   "watchlists",
		Short: "查询自选列表",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "列出自选列表",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(opts)
			if err != nil {
				return err
			}
			lists, err := c.Watchlists.List(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(lists))
			for _, w := range lists {
				rows = append(rows, []string{string(w.ID), w.Name, string(w.UpdatedAt)})
			}
			fmt.Println(renderTable([]string{"ID", "NAME", "UPDATED"}, rows))
			return nil
		},
	})
	parent.AddCommand(cmd)
}

func registerTimeCmds(parent *cobra.Command, opts *rootOptions) {
	parent.AddCommand(&cobra.Command{
		Use:   "clock",
		Short: "显示市场时钟",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(opts)
			if err != nil {
				return err
			}
			clock, err := c.Time.Clock(cmd.Context())
			if err != nil {
				return err
			}
			state := downStyle.Render("休市")
			if clock.IsOpen {
				state = upStyle.Render("开市")
			}
			fmt.Print(renderPairs("市场时钟", []kv{
				{"当前时间", string(clock.Timestamp)},
				{"状态", state},
				{"下次开市", string(clock.NextOpen)},
				{"下次收市", string(clock.NextClose)},
			}))
			return nil
		},
	})

	var start, end string
	calendar := &cobra.Command{
		Use:   "calendar",
		Short: "显示交易日历",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := newClient(opts)
			if err != nil {
				return err
			}
			var query types.CalendarQuery
			if start != "" {
				d, err := tagged.NewDate(start)
				if err != nil {
					return errors.Wrap(err, "--start")
				}
				query.Start = &d
			}
			if end != "" {
				d, err := tagged.NewDate(end)
				if err != nil {
					return errors.Wrap(err, "--end")
				}
				query.End = &d
			}
			days, err := c.Time.Calendar(cmd.Context(), query)
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(days))
			for _, d := range days {
				rows = append(rows, []string{string(d.Date), string(d.Open), string(d.Close), string(d.SettlementDate)})
			}
			fmt.Println(renderTable([]string{"DATE", "OPEN", "CLOSE", "SETTLEMENT"}, rows))
			return nil
		},
	}
	calendar.Flags().StringVar(&start, "start", "", "起始日期 YYYY-MM-DD")
	calendar.Flags().StringVar(&end, "end", "", "结束日期 YYYY-MM-DD")
	parent.AddCommand(calendar)
}

// printBulk 输出批量操作的逐项结果
func printBulk(items []types.BulkItem) {
	if len(items) == 0 {
		fmt.Println("没有需要处理的项")
		return
	}
	rows := make([][]string, 0, len(items))
	for _, it := range items {
		result := upStyle.Render("ok")
		if !it.OK() {
			result = downStyle.Render(fmt.Sprintf("%d %s", it.Status, it.Message()))
		}
		rows = append(rows, []string{it.ID, result})
	}
	fmt.Println(renderTable([]string{"ID", "RESULT"}, rows))
}

func mode(c *client.Client) string {
	if c.Paper() {
		return "paper"
	}
	return "live"
}
