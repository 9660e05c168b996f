package handler

import (
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/storeflow/order-console/internal/core/domain"
)

// Colour ramp from "no orders" to "7+ orders", matching the level
// thresholds used by ActivityLevel.
var heatmapColors = []string{"#ebedf0", "#9be9a8", "#40c463", "#30a14e", "#216e39"}

// renderActivityHeatmap writes the 52x7 order-activity grid as a
// self-contained ECharts heat map. Columns are weeks (oldest first), rows
// are days within the week.
func renderActivityHeatmap(w io.Writer, grid [][]domain.ActivityDay) error {
	hm := charts.NewHeatMap()
	hm.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    "Order Activity",
			Subtitle: "Orders per day over the last 52 weeks",
		}),
		charts.WithInitializationOpts(opts.Initialization{Width: "100%", Height: "280px"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true)}),
		charts.WithYAxisOpts(opts.YAxis{Type: "category", Data: dayLabels(grid)}),
		charts.WithVisualMapOpts(opts.VisualMap{
			Calculable: opts.Bool(false),
			Min:        0,
			Max:        8,
			InRange:    &opts.VisualMapInRange{Color: heatmapColors},
		}),
	)

	weekLabels := make([]string, len(grid))
	data := make([]opts.HeatMapData, 0, len(grid)*domain.ActivityDaysPerWeek)
	for wk, week := range grid {
		if len(week) > 0 {
			weekLabels[wk] = week[0].Date.Format("Jan 02")
		}
		for i, day := range week {
			data = append(data, opts.HeatMapData{
				Name:  day.Date.Format("2006-01-02"),
				Value: [3]interface{}{wk, i, day.Count},
			})
		}
	}

	hm.SetXAxis(weekLabels).AddSeries("orders", data)
	return hm.Render(w)
}

// dayLabels derives the weekday name of each grid row. Rows advance one day
// at a time, so every week shares the same weekday per row.
func dayLabels(grid [][]domain.ActivityDay) []string {
	labels := make([]string, domain.ActivityDaysPerWeek)
	if len(grid) == 0 {
		return labels
	}
	week := grid[len(grid)-1]
	for i, day := range week {
		labels[i] = day.Date.Weekday().String()[:3]
	}
	return labels
}
