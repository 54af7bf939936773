package chart

import (
	"io"
	"strconv"
	"time"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/enercast/enercast/timeseries"
)

// MonthlyOptions configures the monthly totals chart. Zero values take
// the defaults: the 2018-2023 year range and a six-color palette.
type MonthlyOptions struct {
	Title   string
	Years   []int
	Palette []string
}

// DefaultMonthlyOptions returns the default chart configuration.
func DefaultMonthlyOptions() *MonthlyOptions {
	return &MonthlyOptions{
		Title: "Monthly consumption totals",
		Years: []int{2018, 2019, 2020, 2021, 2022, 2023},
		Palette: []string{
			"#1f77b4", "#ff7f0e", "#2ca02c",
			"#d62728", "#9467bd", "#8c564b",
		},
	}
}

// MonthlyBars renders grouped bars of per-month totals, one series per
// year, with months ordered January through December.
func MonthlyBars(totals []timeseries.MonthlyTotal, o *MonthlyOptions, w io.Writer) error {
	cfg := DefaultMonthlyOptions()
	if o != nil {
		if o.Title != "" {
			cfg.Title = o.Title
		}
		if len(o.Years) > 0 {
			cfg.Years = o.Years
		}
		if len(o.Palette) > 0 {
			cfg.Palette = o.Palette
		}
	}

	months := make([]string, 12)
	for m := time.January; m <= time.December; m++ {
		months[m-1] = m.String()[:3]
	}

	byYear := make(map[int][12]float64)
	for _, t := range totals {
		sums := byYear[t.Year]
		sums[t.Month-1] += t.Total
		byYear[t.Year] = sums
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{Title: cfg.Title}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "month"}),
	)
	bar.SetXAxis(months)

	for i, year := range cfg.Years {
		sums := byYear[year]
		data := make([]opts.BarData, 12)
		for m := 0; m < 12; m++ {
			data[m] = opts.BarData{Value: sums[m]}
		}
		bar.AddSeries(strconv.Itoa(year), data,
			charts.WithItemStyleOpts(opts.ItemStyle{Color: cfg.Palette[i%len(cfg.Palette)]}))
	}

	return bar.Render(w)
}
