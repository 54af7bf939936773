// Package timeseries provides time series data structures and loading
// for consumption data.
//
// This package includes the Series type, strict consumption CSV loading,
// hourly resampling, and wide-table monthly aggregation.
//
// # Loading and Resampling
//
// Load raw consumption readings and resample them to hourly means:
//
//	series, err := timeseries.LoadConsumption("data/consumption.csv", nil)
//	hourly := timeseries.ResampleHourly(series)
//
// Loading is strict: an unparseable timestamp or a non-numeric
// consumption cell is an error, not a skipped row. Resampling produces
// one row per hour present in the source; missing hours are absent.
//
// # Train/Test Splitting
//
// Partition a series at a fixed boundary into immutable train and test
// parts:
//
//	train, test := hourly.Split(hourly.Len() - 24)
//
// # Transformations
//
// Basic statistics and differencing:
//
//	mean := series.Mean()
//	std := series.Std()
//	diff := series.Diff()    // first difference
//	diff2 := series.DiffN(2) // second difference
//
// # Monthly Aggregation
//
// Sum per-date columns of a wide table and group by calendar month:
//
//	table, err := timeseries.LoadWide("data/daily_wide.csv")
//	totals, err := table.MonthlyTotals(2, len(table.Header), "2006-01-02")
package timeseries
