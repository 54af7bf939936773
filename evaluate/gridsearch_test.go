package evaluate

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enercast/enercast/arima"
	"github.com/enercast/enercast/timeseries"
)

// scriptedForecaster returns a forecaster producing a fixed per-order
// error against a constant test window of zeros: forecasting the scripted
// value v for every step yields MSE v*v.
func scriptedForecaster(errs map[arima.Order]float64, failing map[arima.Order]error) Forecaster {
	return func(history []float64, order arima.Order) (float64, error) {
		if err, ok := failing[order]; ok {
			return 0, err
		}
		return errs[order], nil
	}
}

func zeroSplit() (*timeseries.Series, *timeseries.Series) {
	return timeseries.New(make([]float64, 20)), timeseries.New(make([]float64, 5))
}

func TestGridSearchFindsMinimum(t *testing.T) {
	train, test := zeroSplit()

	scores := map[arima.Order]float64{
		{P: 0, D: 0, Q: 0}: 3,
		{P: 0, D: 0, Q: 1}: 2,
		{P: 1, D: 0, Q: 0}: 1,
		{P: 1, D: 0, Q: 1}: 4,
	}

	result, err := GridSearchWith(scriptedForecaster(scores, nil),
		train, test, []int{0, 1}, []int{0}, []int{0, 1}, nil)
	require.NoError(t, err)

	require.True(t, result.Found)
	assert.Equal(t, arima.Order{P: 1, D: 0, Q: 0}, result.Best)
	assert.InDelta(t, 1.0, result.BestMSE, 1e-12)
	assert.Equal(t, 4, result.Evaluated)

	// The final best equals the minimum of all individually computed scores.
	minScore := math.Inf(1)
	for _, v := range scores {
		minScore = math.Min(minScore, v*v)
	}
	assert.InDelta(t, minScore, result.BestMSE, 1e-12)
}

func TestGridSearchTieBreakKeepsFirst(t *testing.T) {
	train, test := zeroSplit()

	// (0,0,1) and (1,0,0) tie; nested p->d->q order visits (0,0,1) first.
	scores := map[arima.Order]float64{
		{P: 0, D: 0, Q: 0}: 5,
		{P: 0, D: 0, Q: 1}: 2,
		{P: 1, D: 0, Q: 0}: 2,
		{P: 1, D: 0, Q: 1}: 5,
	}

	result, err := GridSearchWith(scriptedForecaster(scores, nil),
		train, test, []int{0, 1}, []int{0}, []int{0, 1}, nil)
	require.NoError(t, err)
	assert.Equal(t, arima.Order{P: 0, D: 0, Q: 1}, result.Best)
}

func TestGridSearchSkipsFitErrors(t *testing.T) {
	train, test := zeroSplit()

	scores := map[arima.Order]float64{
		{P: 0, D: 0, Q: 0}: 2,
		{P: 1, D: 0, Q: 1}: 1,
	}
	failing := map[arima.Order]error{
		{P: 0, D: 0, Q: 1}: &arima.FitError{Order: arima.Order{Q: 1}, Reason: "non-invertible"},
		{P: 1, D: 0, Q: 0}: &arima.FitError{Order: arima.Order{P: 1}, Reason: "non-stationary"},
	}

	var buf bytes.Buffer
	result, err := GridSearchWith(scriptedForecaster(scores, failing),
		train, test, []int{0, 1}, []int{0}, []int{0, 1}, &buf)
	require.NoError(t, err)

	assert.Equal(t, 2, result.Evaluated)
	assert.Equal(t, 2, result.Skipped)
	assert.Equal(t, arima.Order{P: 1, D: 0, Q: 1}, result.Best)

	// Skipped configurations leave no trace in the printed list.
	out := buf.String()
	assert.NotContains(t, out, "ARIMA(0,0,1)")
	assert.NotContains(t, out, "ARIMA(1,0,0)")
}

func TestGridSearchPropagatesUnexpectedErrors(t *testing.T) {
	train, test := zeroSplit()

	boom := errors.New("index out of range")
	failing := map[arima.Order]error{
		{P: 0, D: 0, Q: 1}: boom,
	}

	_, err := GridSearchWith(scriptedForecaster(nil, failing),
		train, test, []int{0}, []int{0}, []int{0, 1}, nil)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestGridSearchAllFailSentinel(t *testing.T) {
	train, test := zeroSplit()

	fc := func(history []float64, order arima.Order) (float64, error) {
		return 0, &arima.FitError{Order: order, Reason: "no"}
	}

	var buf bytes.Buffer
	result, err := GridSearchWith(fc, train, test, []int{0, 1}, []int{0}, []int{0, 1}, &buf)
	require.NoError(t, err)

	assert.False(t, result.Found)
	assert.True(t, math.IsInf(result.BestMSE, 1))
	assert.Equal(t, 0, result.Evaluated)
	assert.Contains(t, buf.String(), "No valid ARIMA configuration found")
}

func TestGridSearchBestScoreMonotone(t *testing.T) {
	train, test := zeroSplit()

	// Record each intermediate best by replaying prefixes of the search.
	scores := map[arima.Order]float64{
		{P: 0, D: 0, Q: 0}: 4,
		{P: 0, D: 0, Q: 1}: 6,
		{P: 1, D: 0, Q: 0}: 3,
		{P: 1, D: 0, Q: 1}: 5,
		{P: 2, D: 0, Q: 0}: 1,
		{P: 2, D: 0, Q: 1}: 9,
	}

	prev := math.Inf(1)
	for _, ps := range [][]int{{0}, {0, 1}, {0, 1, 2}} {
		result, err := GridSearchWith(scriptedForecaster(scores, nil),
			train, test, ps, []int{0}, []int{0, 1}, nil)
		require.NoError(t, err)
		assert.LessOrEqual(t, result.BestMSE, prev)
		prev = result.BestMSE
	}
}

func TestGridSearchOutputContract(t *testing.T) {
	train, test := zeroSplit()

	scores := map[arima.Order]float64{
		{P: 0, D: 0, Q: 0}: 2,
		{P: 0, D: 1, Q: 0}: 3,
	}

	var buf bytes.Buffer
	_, err := GridSearchWith(scriptedForecaster(scores, nil),
		train, test, []int{0}, []int{0, 1}, []int{0}, &buf)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.Equal(t, "ARIMA(0,0,0) MSE=4.000", lines[0])
	assert.Equal(t, "ARIMA(0,1,0) MSE=9.000", lines[1])
	assert.Equal(t, "Best ARIMA(0,0,0) MSE=4.000", lines[2])
}

func TestGridSearchEndToEndSine(t *testing.T) {
	// Deterministic sine-plus-noise sequence of length 50, split 40/10,
	// searched over p in {0,1}, d in {0}, q in {0,1}. The search must
	// terminate with one of the four orders and a finite score, or the
	// sentinel if every fit fails.
	train, test := sineSeries(50).Split(40)

	var buf bytes.Buffer
	result, err := GridSearch(train, test, []int{0, 1}, []int{0}, []int{0, 1}, &buf)
	require.NoError(t, err)

	if !result.Found {
		assert.True(t, math.IsInf(result.BestMSE, 1))
		return
	}

	assert.Contains(t, []arima.Order{
		{P: 0, D: 0, Q: 0},
		{P: 0, D: 0, Q: 1},
		{P: 1, D: 0, Q: 0},
		{P: 1, D: 0, Q: 1},
	}, result.Best)
	assert.False(t, math.IsNaN(result.BestMSE) || math.IsInf(result.BestMSE, 0))
	assert.GreaterOrEqual(t, result.BestMSE, 0.0)
	assert.Contains(t, buf.String(), fmt.Sprintf("Best ARIMA%s", result.Best))
}
