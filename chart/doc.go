// Package chart renders correlograms and monthly consumption totals as
// self-contained ECharts HTML documents for viewing in a browser.
package chart
