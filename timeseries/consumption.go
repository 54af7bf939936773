package timeseries

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"
)

// LoadOptions configures consumption CSV loading.
type LoadOptions struct {
	TimeColumn  string   // Timestamp column name (default: "Datetime")
	ValueColumn string   // Consumption column name (default: "Consumption")
	TimeLayouts []string // Candidate timestamp layouts, tried in order
	Delimiter   rune     // Field delimiter (default: ',')
}

// DefaultLoadOptions returns the default consumption CSV options.
func DefaultLoadOptions() *LoadOptions {
	return &LoadOptions{
		TimeColumn:  "Datetime",
		ValueColumn: "Consumption",
		TimeLayouts: []string{
			"2006-01-02 15:04:05",
			"2006-01-02T15:04:05",
			"2006-01-02 15:04",
			"2006-01-02",
			"01/02/2006 15:04",
		},
		Delimiter: ',',
	}
}

// LoadConsumption reads a time-stamped consumption CSV into a series.
// An unparseable timestamp or non-numeric consumption cell aborts the
// load; malformed rows are never silently skipped.
func LoadConsumption(path string, opts *LoadOptions) (*Series, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	series, err := LoadConsumptionFrom(file, opts)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return series, nil
}

// LoadConsumptionFrom reads a consumption CSV from r.
func LoadConsumptionFrom(r io.Reader, opts *LoadOptions) (*Series, error) {
	if opts == nil {
		opts = DefaultLoadOptions()
	}

	reader := csv.NewReader(r)
	reader.Comma = opts.Delimiter
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	timeIdx, valueIdx := -1, -1
	for i, h := range header {
		switch strings.TrimSpace(h) {
		case opts.TimeColumn:
			timeIdx = i
		case opts.ValueColumn:
			valueIdx = i
		}
	}
	if timeIdx == -1 {
		return nil, fmt.Errorf("timestamp column %q not found", opts.TimeColumn)
	}
	if valueIdx == -1 {
		return nil, fmt.Errorf("consumption column %q not found", opts.ValueColumn)
	}

	var timestamps []time.Time
	var values []float64

	for row := 2; ; row++ {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}

		ts, err := parseTimestamp(record[timeIdx], opts.TimeLayouts)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", row, err)
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(record[valueIdx]), 64)
		if err != nil {
			return nil, fmt.Errorf("row %d: consumption %q is not numeric", row, record[valueIdx])
		}

		timestamps = append(timestamps, ts)
		values = append(values, v)
	}

	if len(values) == 0 {
		return nil, fmt.Errorf("no data rows")
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       opts.ValueColumn,
	}, nil
}

func parseTimestamp(field string, layouts []string) (time.Time, error) {
	field = strings.TrimSpace(field)
	for _, layout := range layouts {
		if ts, err := time.Parse(layout, field); err == nil {
			return ts, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", field)
}

// SaveHourly writes a resampled series as a two-column (hour, consumption) CSV.
func SaveHourly(series *Series, path string) error {
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	defer writer.Flush()

	writer.WriteString("hour,consumption\n")
	for i, v := range series.Values {
		writer.WriteString(series.Timestamps[i].Format("2006-01-02 15:04:05"))
		writer.WriteString(",")
		writer.WriteString(strconv.FormatFloat(v, 'f', -1, 64))
		writer.WriteString("\n")
	}

	return nil
}
