package timeseries

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyTotals(t *testing.T) {
	input := `meter,zone,2022-01-10,2022-01-20,2022-02-05,2023-01-15
m1,north,1.0,2.0,3.0,10.0
m2,south,4.0,5.0,6.0,20.0`

	table, err := LoadWideFrom(strings.NewReader(input))
	require.NoError(t, err)

	totals, err := table.MonthlyTotals(2, len(table.Header), "2006-01-02")
	require.NoError(t, err)
	require.Len(t, totals, 3)

	// Ordered by year, then calendar month.
	assert.Equal(t, MonthlyTotal{Year: 2022, Month: time.January, Total: 12.0}, totals[0])
	assert.Equal(t, MonthlyTotal{Year: 2022, Month: time.February, Total: 9.0}, totals[1])
	assert.Equal(t, MonthlyTotal{Year: 2023, Month: time.January, Total: 30.0}, totals[2])
}

func TestMonthlyTotalsCalendarOrderBeatsStringOrder(t *testing.T) {
	// Header dates deliberately out of string order within one year.
	input := `id,2022-12-01,2022-02-01,2022-10-01
r1,12,2,10`

	table, err := LoadWideFrom(strings.NewReader(input))
	require.NoError(t, err)

	totals, err := table.MonthlyTotals(1, 4, "2006-01-02")
	require.NoError(t, err)
	require.Len(t, totals, 3)

	assert.Equal(t, time.February, totals[0].Month)
	assert.Equal(t, time.October, totals[1].Month)
	assert.Equal(t, time.December, totals[2].Month)
}

func TestMonthlyTotalsBadDateHeader(t *testing.T) {
	input := `id,not-a-date
r1,1`

	table, err := LoadWideFrom(strings.NewReader(input))
	require.NoError(t, err)

	_, err = table.MonthlyTotals(1, 2, "2006-01-02")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unparseable date")
}

func TestMonthlyTotalsNonNumericCell(t *testing.T) {
	input := `id,2022-01-01
r1,oops`

	table, err := LoadWideFrom(strings.NewReader(input))
	require.NoError(t, err)

	_, err = table.MonthlyTotals(1, 2, "2006-01-02")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not numeric")
}

func TestMonthlyTotalsInvalidRange(t *testing.T) {
	table := &WideTable{Header: []string{"a", "b"}}

	_, err := table.MonthlyTotals(1, 1, "")
	assert.Error(t, err)
	_, err = table.MonthlyTotals(0, 5, "")
	assert.Error(t, err)
}
