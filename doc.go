// Package enercast provides analysis and ARIMA forecasting of electrical
// consumption time series.
//
// Enercast loads time-stamped consumption readings from CSV, resamples them
// to hourly averages, and selects an ARIMA(p,d,q) forecasting model by
// exhaustive grid search over out-of-sample one-step-ahead error. It also
// renders the diagnostic charts used to pick candidate orders: ACF/PACF
// correlograms with confidence bands and monthly consumption totals.
//
// # Quick Start
//
// Resample raw readings and search for the best forecasting order:
//
//	series, _ := timeseries.LoadConsumption("data/consumption.csv", nil)
//	hourly := timeseries.ResampleHourly(series)
//	train, test := hourly.Split(hourly.Len() - 24)
//
//	result, _ := evaluate.GridSearch(train, test,
//	    []int{0, 1, 2, 4}, []int{0, 1, 2}, []int{0, 1, 2}, os.Stdout)
//	fmt.Println(result.Best, result.BestMSE)
//
// # Packages
//
// The module is organized into the following packages:
//
//   - timeseries: time series data structures, CSV loading, hourly
//     resampling, and monthly aggregation
//   - stats: autocorrelation analysis and forecast accuracy metrics
//   - arima: ARIMA(p,d,q) model estimation and forecasting
//   - evaluate: walk-forward evaluation and grid search over orders
//   - chart: HTML chart rendering for correlograms and monthly totals
//
// The enercast CLI under cmd/enercast exposes each analysis step as a
// subcommand.
package enercast
