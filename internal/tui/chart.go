package tui

import (
	"fmt"
	"math"
	"strings"
	"time"

	tslc "github.com/NimbleMarkets/ntcharts/linechart/timeserieslinechart"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/jask/tickerdeck/internal/dataset"
)

const chartHeight = 12

// renderCharts draws price and volume series on separate charts so their
// scales do not collide.
func renderCharts(data dataset.ChartData, width int, s styles) string {
	if len(data.Times) == 0 || len(data.Series) == 0 {
		return ""
	}
	var price, volume []dataset.ChartSeries
	for _, cs := range data.Series {
		if cs.Kind == dataset.Volume {
			volume = append(volume, cs)
		} else {
			price = append(price, cs)
		}
	}
	colors := s.seriesColors()
	var out []string
	next := 0
	for _, group := range []struct {
		title  string
		series []dataset.ChartSeries
	}{{"Price", price}, {"Volume", volume}} {
		if len(group.series) == 0 {
			continue
		}
		out = append(out, s.section.Render(group.title))
		out = append(out, renderChart(data.Times, group.series, colors[next:], width, s))
		next = (next + len(group.series)) % len(colors)
	}
	return strings.Join(out, "\n")
}

func renderChart(times []time.Time, series []dataset.ChartSeries, colors []lipgloss.Color, width int, s styles) string {
	if len(colors) < len(series) {
		colors = append(colors, s.seriesColors()...)
	}
	start, end := times[0], times[len(times)-1]
	if !end.After(start) {
		end = start.Add(24 * time.Hour)
	}
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, cs := range series {
		for _, v := range cs.Values {
			lo, hi = math.Min(lo, v), math.Max(hi, v)
		}
	}
	if hi <= lo {
		lo, hi = lo-1, hi+1
	}

	chart := tslc.New(max(20, width), chartHeight)
	chart.AxisStyle = s.axis
	chart.LabelStyle = s.label
	chart.SetTimeRange(start, end)
	chart.SetViewTimeRange(start, end)
	chart.SetYRange(lo, hi)
	chart.SetViewYRange(lo, hi)
	chart.Model.XLabelFormatter = func(_ int, v float64) string {
		return time.Unix(int64(v), 0).UTC().Format(dataset.PreviewDateLayout)
	}
	chart.Model.YLabelFormatter = func(_ int, v float64) string { return compact(v) }

	legend := make([]string, len(series))
	for i, cs := range series {
		style := lipgloss.NewStyle().Foreground(colors[i])
		chart.SetDataSetStyle(cs.Label, style)
		for j, v := range cs.Values {
			if j < len(times) {
				chart.PushDataSet(cs.Label, tslc.TimePoint{Time: times[j], Value: v})
			}
		}
		legend[i] = style.Render("■") + " " + s.legend.Render(cs.Label)
	}
	chart.DrawBrailleAll()
	return chart.View() + "\n" + strings.Join(legend, "  ")
}

// compact formats axis values: 1234567 -> 1.2M.
func compact(v float64) string {
	a := math.Abs(v)
	switch {
	case a >= 1e9:
		return fmt.Sprintf("%.1fB", v/1e9)
	case a >= 1e6:
		return fmt.Sprintf("%.1fM", v/1e6)
	case a >= 1e4:
		return fmt.Sprintf("%.1fk", v/1e3)
	case a >= 100:
		return fmt.Sprintf("%.0f", v)
	default:
		return fmt.Sprintf("%.2f", v)
	}
}

const (
	dateColWidth = 9
	minColWidth  = 10
)

// previewTable lays out the tail of a download. Columns share what is left
// of width after the date. kinds parallels p.Columns.
func previewTable(p dataset.Preview, kinds []dataset.Kind, width int, s styles) table.Model {
	n := len(p.Columns)
	colW := minColWidth
	if n > 0 {
		colW = max(minColWidth, (width-dateColWidth-2*(n+1))/n)
	}
	cols := make([]table.Column, 0, n+1)
	cols = append(cols, table.Column{Title: "Date", Width: dateColWidth})
	for _, c := range p.Columns {
		cols = append(cols, table.Column{Title: clip(c, colW), Width: colW})
	}
	rows := make([]table.Row, len(p.Rows))
	for i, r := range p.Rows {
		row := make(table.Row, 0, n+1)
		row = append(row, p.Dates[i])
		for ci, cell := range r {
			row = append(row, formatCell(cell, ci < len(kinds) && kinds[ci] == dataset.Volume))
		}
		rows[i] = row
	}
	t := table.New(
		table.WithColumns(cols),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithFocused(false),
	)
	t.SetStyles(s.tableStyles())
	t.SetWidth(width)
	return t
}

func formatCell(v *float64, volume bool) string {
	if v == nil {
		return "-"
	}
	if volume {
		return fmt.Sprintf("%.0f", *v)
	}
	return fmt.Sprintf("%.2f", *v)
}
