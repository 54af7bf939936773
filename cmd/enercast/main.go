// Command enercast analyzes hourly electrical consumption and selects an
// ARIMA forecasting model by out-of-sample grid search.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/enercast/enercast/chart"
	"github.com/enercast/enercast/evaluate"
	"github.com/enercast/enercast/stats"
	"github.com/enercast/enercast/timeseries"
)

var (
	inputPath   string
	timeColumn  string
	valueColumn string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "enercast",
		Short: "Electrical consumption analysis and ARIMA forecasting",
		Long: `Enercast loads time-stamped consumption readings from CSV, resamples
them to hourly averages, renders ACF/PACF and monthly-total charts, and
grid-searches ARIMA(p,d,q) orders by walk-forward out-of-sample error.`,
	}

	rootCmd.PersistentFlags().StringVarP(&inputPath, "input", "i", "data/consumption.csv", "Input CSV path")
	rootCmd.PersistentFlags().StringVar(&timeColumn, "time-col", "Datetime", "Timestamp column name")
	rootCmd.PersistentFlags().StringVar(&valueColumn, "value-col", "Consumption", "Consumption column name")

	rootCmd.AddCommand(resampleCmd())
	rootCmd.AddCommand(correlateCmd())
	rootCmd.AddCommand(monthlyCmd())
	rootCmd.AddCommand(searchCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadHourly() (*timeseries.Series, error) {
	opts := timeseries.DefaultLoadOptions()
	opts.TimeColumn = timeColumn
	opts.ValueColumn = valueColumn

	series, err := timeseries.LoadConsumption(inputPath, opts)
	if err != nil {
		return nil, fmt.Errorf("load consumption: %w", err)
	}
	return timeseries.ResampleHourly(series), nil
}

// resampleCmd writes the hourly-mean series as a two-column CSV.
func resampleCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "resample",
		Short: "Resample raw readings to hourly means",
		RunE: func(cmd *cobra.Command, args []string) error {
			hourly, err := loadHourly()
			if err != nil {
				return err
			}
			if err := timeseries.SaveHourly(hourly, output); err != nil {
				return fmt.Errorf("write %s: %w", output, err)
			}
			fmt.Printf("Wrote %d hourly rows to %s\n", hourly.Len(), output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "consumption_hourly.csv", "Output CSV path")
	return cmd
}

// correlateCmd renders an ACF or PACF correlogram to an HTML file.
func correlateCmd() *cobra.Command {
	var (
		lags    int
		partial bool
		output  string
	)

	cmd := &cobra.Command{
		Use:   "correlate",
		Short: "Render an ACF or PACF chart of the hourly series",
		RunE: func(cmd *cobra.Command, args []string) error {
			hourly, err := loadHourly()
			if err != nil {
				return err
			}

			cg, err := stats.Correlation(hourly, lags, partial)
			if err != nil {
				return fmt.Errorf("correlation: %w", err)
			}

			file, err := os.Create(output)
			if err != nil {
				return err
			}
			defer file.Close()

			if err := chart.Correlation(cg, file); err != nil {
				return fmt.Errorf("render chart: %w", err)
			}
			fmt.Printf("Wrote correlogram to %s\n", output)
			return nil
		},
	}

	cmd.Flags().IntVar(&lags, "lags", 50, "Maximum lag")
	cmd.Flags().BoolVar(&partial, "partial", false, "Render the partial autocorrelation function")
	cmd.Flags().StringVarP(&output, "output", "o", "correlogram.html", "Output HTML path")
	return cmd
}

// monthlyCmd renders per-month totals of a wide table as grouped bars.
func monthlyCmd() *cobra.Command {
	var (
		startCol int
		endCol   int
		layout   string
		years    []int
		palette  []string
		output   string
	)

	cmd := &cobra.Command{
		Use:   "monthly",
		Short: "Render monthly consumption totals from a wide CSV",
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := timeseries.LoadWide(inputPath)
			if err != nil {
				return fmt.Errorf("load wide table: %w", err)
			}

			end := endCol
			if end <= 0 {
				end = len(table.Header)
			}
			totals, err := table.MonthlyTotals(startCol, end, layout)
			if err != nil {
				return fmt.Errorf("monthly totals: %w", err)
			}

			opts := chart.DefaultMonthlyOptions()
			if len(years) > 0 {
				opts.Years = years
			}
			if len(palette) > 0 {
				opts.Palette = palette
			}

			file, err := os.Create(output)
			if err != nil {
				return err
			}
			defer file.Close()

			if err := chart.MonthlyBars(totals, opts, file); err != nil {
				return fmt.Errorf("render chart: %w", err)
			}
			fmt.Printf("Wrote monthly totals to %s\n", output)
			return nil
		},
	}

	cmd.Flags().IntVar(&startCol, "start-col", 2, "First date column index")
	cmd.Flags().IntVar(&endCol, "end-col", 0, "Date column end index, exclusive (0 = all remaining)")
	cmd.Flags().StringVar(&layout, "date-layout", "2006-01-02", "Date layout of the column headers")
	cmd.Flags().IntSliceVar(&years, "years", nil, "Years to plot (default 2018-2023)")
	cmd.Flags().StringSliceVar(&palette, "palette", nil, "Bar colors, one per year")
	cmd.Flags().StringVarP(&output, "output", "o", "monthly.html", "Output HTML path")
	return cmd
}

// searchCmd grid-searches ARIMA orders by walk-forward evaluation.
func searchCmd() *cobra.Command {
	var (
		testSize int
		ps       []int
		ds       []int
		qs       []int
	)

	cmd := &cobra.Command{
		Use:   "search",
		Short: "Grid-search ARIMA(p,d,q) by walk-forward out-of-sample MSE",
		RunE: func(cmd *cobra.Command, args []string) error {
			hourly, err := loadHourly()
			if err != nil {
				return err
			}
			if hourly.Len() <= testSize {
				return fmt.Errorf("series has %d hours, need more than the %d-hour test window", hourly.Len(), testSize)
			}

			train, test := hourly.Split(hourly.Len() - testSize)
			fmt.Printf("Train: %d hours, Test: %d hours\n", train.Len(), test.Len())

			result, err := evaluate.GridSearch(train, test, ps, ds, qs, os.Stdout)
			if err != nil {
				return fmt.Errorf("grid search: %w", err)
			}
			if result.Skipped > 0 {
				fmt.Printf("Skipped %d configurations that failed to fit\n", result.Skipped)
			}
			return nil
		},
	}

	cmd.Flags().IntVar(&testSize, "test-size", 24, "Test window length in hours")
	cmd.Flags().IntSliceVar(&ps, "p", []int{0, 1, 2, 4}, "Candidate AR orders")
	cmd.Flags().IntSliceVar(&ds, "d", []int{0, 1, 2}, "Candidate differencing orders")
	cmd.Flags().IntSliceVar(&qs, "q", []int{0, 1, 2}, "Candidate MA orders")
	return cmd
}
