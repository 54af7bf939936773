package chart

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"

	"github.com/enercast/enercast/stats"
)

// Correlation renders a correlogram: stem markers for the point
// estimates and a shaded 95% band centered at each lag's own value.
func Correlation(cg *stats.Correlogram, w io.Writer) error {
	title := "Autocorrelation"
	seriesName := "acf"
	if cg.Partial {
		title = "Partial autocorrelation"
		seriesName = "pacf"
	}

	lags := make([]string, len(cg.Lags))
	stems := make([]opts.BarData, len(cg.Values))
	upper := make([]opts.LineData, len(cg.Values))
	lower := make([]opts.LineData, len(cg.Values))
	for i, v := range cg.Values {
		lags[i] = fmt.Sprintf("%d", cg.Lags[i])
		stems[i] = opts.BarData{Value: v}
		upper[i] = opts.LineData{Value: v + cg.Bands[i]}
		lower[i] = opts.LineData{Value: v - cg.Bands[i]}
	}

	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithTitleOpts(opts.Title{
			Title:    title,
			Subtitle: fmt.Sprintf("n=%d, 95%% confidence band", cg.NObs),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Trigger: "axis"}),
		charts.WithXAxisOpts(opts.XAxis{Name: "lag"}),
	)
	bar.SetXAxis(lags).AddSeries(seriesName, stems)

	band := charts.NewLine()
	band.SetXAxis(lags).
		AddSeries("upper", upper,
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.15})).
		AddSeries("lower", lower,
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: 0.15}))
	bar.Overlap(band)

	return bar.Render(w)
}
