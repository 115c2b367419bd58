package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15"))

	headerStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("15")).
			Background(lipgloss.Color("62")).
			Padding(0, 1)

	cellStyle = lipgloss.NewStyle().Padding(0, 1)

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("245")).
			Width(24)

	upStyle = lipgloss.NewStyle().
		Foreground(lipgloss.Color("2")) // 绿色

	downStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("1")) // 红色

	errorStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("1"))

	borderStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("238"))
)

// renderTable 圆角表格
func renderTable(headers []string, rows [][]string) string {
	t := table.New().
		Border(lipgloss.RoundedBorder()).
		BorderStyle(borderStyle).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
	return t.Render()
}

type kv struct {
	key   string
	value string
}

// renderPairs 键值对列表，带标题
func renderPairs(title string, pairs []kv) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(title))
	b.WriteString("\n")
	for _, p := range pairs {
		b.WriteString(labelStyle.Render(p.key))
		b.WriteString(p.value)
		b.WriteString("\n")
	}
	return b.String()
}

// signed 按正负着色
func signed(d decimal.Decimal) string {
	switch d.Sign() {
	case 1:
		return upStyle.Render("+" + d.StringFixed(2))
	case -1:
		return downStyle.Render(d.StringFixed(2))
	}
	return d.StringFixed(2)
}

func decOrDash(d *decimal.Decimal) string {
	if d == nil {
		return "-"
	}
	return d.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}

func yesNo(b bool) string {
	if b {
		return upStyle.Render("yes")
	}
	return "no"
}

func pct(d decimal.Decimal) string {
	return fmt.Sprintf("%s%%", d.Mul(decimal.NewFromInt(100)).StringFixed(2))
}
