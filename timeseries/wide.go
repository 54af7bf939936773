package timeseries

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"
)

// WideTable is a CSV table where a range of columns holds per-date values,
// one column per date.
type WideTable struct {
	Header []string
	Rows   [][]string
}

// LoadWide reads a wide CSV table.
func LoadWide(path string) (*WideTable, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	table, err := LoadWideFrom(file)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// LoadWideFrom reads a wide CSV table from r.
func LoadWideFrom(r io.Reader) (*WideTable, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	var rows [][]string
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		rows = append(rows, record)
	}

	return &WideTable{Header: header, Rows: rows}, nil
}

// MonthlyTotal is the sum of one calendar month's date columns for one year.
type MonthlyTotal struct {
	Year  int
	Month time.Month
	Total float64
}

// MonthlyTotals sums each date column in [startCol, endCol) over all rows
// and groups the sums by (year, month) parsed from the column header.
// Results are ordered by year, then calendar month (January through
// December), independent of the string order of the headers.
func (t *WideTable) MonthlyTotals(startCol, endCol int, layout string) ([]MonthlyTotal, error) {
	if layout == "" {
		layout = "2006-01-02"
	}
	if startCol < 0 || endCol > len(t.Header) || startCol >= endCol {
		return nil, fmt.Errorf("invalid column range [%d, %d) for %d columns", startCol, endCol, len(t.Header))
	}

	type key struct {
		year  int
		month time.Month
	}
	totals := make(map[key]float64)

	for col := startCol; col < endCol; col++ {
		date, err := time.Parse(layout, strings.TrimSpace(t.Header[col]))
		if err != nil {
			return nil, fmt.Errorf("column %d: unparseable date %q", col, t.Header[col])
		}

		sum := 0.0
		for i, row := range t.Rows {
			if col >= len(row) {
				return nil, fmt.Errorf("row %d: missing column %d", i+2, col)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(row[col]), 64)
			if err != nil {
				return nil, fmt.Errorf("row %d column %d: value %q is not numeric", i+2, col, row[col])
			}
			sum += v
		}

		totals[key{date.Year(), date.Month()}] += sum
	}

	keys := make([]key, 0, len(totals))
	for k := range totals {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	result := make([]MonthlyTotal, len(keys))
	for i, k := range keys {
		result[i] = MonthlyTotal{Year: k.year, Month: k.month, Total: totals[k]}
	}
	return result, nil
}
