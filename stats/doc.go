// Package stats provides autocorrelation analysis and forecast accuracy
// metrics for time series.
//
// # Autocorrelation Functions
//
// Analyze the correlation structure of a series:
//
//	// Autocorrelation function, lags 0..20
//	acf := stats.ACF(series, 20)
//
//	// Partial autocorrelation function
//	pacf := stats.PACF(series, 20)
//
// Correlation produces the values together with two-sided 95% confidence
// intervals, ready for plotting:
//
//	cg, err := stats.Correlation(series, 50, false) // false = ACF, true = PACF
//	for k, v := range cg.Values {
//	    fmt.Printf("lag %d: %.3f +/- %.3f\n", k, v, cg.Bands[k])
//	}
//
// NaN values are dropped before computation. ACF intervals use
// Bartlett's formula; PACF intervals use the 1/sqrt(n) large-sample bound.
//
// # Forecast Accuracy
//
// Compare predictions against actuals:
//
//	mse := stats.MSE(actual, predicted)
//	rmse := stats.RMSE(actual, predicted)
//	mae := stats.MAE(actual, predicted)
package stats
