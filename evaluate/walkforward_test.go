package evaluate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/enercast/enercast/arima"
	"github.com/enercast/enercast/timeseries"
)

func sineSeries(n int) *timeseries.Series {
	values := make([]float64, n)
	for i := 0; i < n; i++ {
		values[i] = 100 + 10*math.Sin(2*math.Pi*float64(i)/12) + float64(i%7-3)/5
	}
	return timeseries.New(values)
}

func TestWalkForwardPredictionsMatchTestLength(t *testing.T) {
	train, test := sineSeries(50).Split(40)

	result, err := WalkForward(train, test, arima.Order{P: 1, D: 0, Q: 0})
	require.NoError(t, err)

	assert.Len(t, result.Predictions, test.Len())
	assert.False(t, math.IsNaN(result.MSE))
	assert.GreaterOrEqual(t, result.MSE, 0.0)
}

func TestWalkForwardHistoryGrowsByOneEachStep(t *testing.T) {
	train, test := sineSeries(50).Split(40)

	var lengths []int
	fc := func(history []float64, order arima.Order) (float64, error) {
		lengths = append(lengths, len(history))
		return history[len(history)-1], nil
	}

	_, err := WalkForwardWith(fc, train, test, arima.Order{})
	require.NoError(t, err)

	// Before forecasting test index t the history holds the training
	// series plus the first t test observations.
	require.Len(t, lengths, test.Len())
	for t2, n := range lengths {
		assert.Equal(t, train.Len()+t2, n)
	}
}

func TestWalkForwardUsesTrueValuesNotForecasts(t *testing.T) {
	train, _ := sineSeries(50).Split(40)
	test := timeseries.New([]float64{1, 2, 3})

	var lastSeen []float64
	fc := func(history []float64, order arima.Order) (float64, error) {
		lastSeen = append(lastSeen, history[len(history)-1])
		return -999, nil // wildly wrong forecast must never enter history
	}

	_, err := WalkForwardWith(fc, train, test, arima.Order{})
	require.NoError(t, err)

	assert.Equal(t, []float64{train.Values[train.Len()-1], 1, 2}, lastSeen)
}

func TestWalkForwardDoesNotMutateInputs(t *testing.T) {
	train, test := sineSeries(50).Split(40)
	trainBefore := append([]float64(nil), train.Values...)
	testBefore := append([]float64(nil), test.Values...)

	_, err := WalkForward(train, test, arima.Order{P: 0, D: 0, Q: 0})
	require.NoError(t, err)

	assert.Equal(t, trainBefore, train.Values)
	assert.Equal(t, testBefore, test.Values)
}

func TestWalkForwardPropagatesFitFailure(t *testing.T) {
	train, test := sineSeries(50).Split(40)

	wantErr := &arima.FitError{Order: arima.Order{P: 9}, Reason: "boom"}
	calls := 0
	fc := func(history []float64, order arima.Order) (float64, error) {
		calls++
		if calls == 3 {
			return 0, wantErr
		}
		return history[len(history)-1], nil
	}

	result, err := WalkForwardWith(fc, train, test, arima.Order{})
	require.Error(t, err)
	assert.Nil(t, result, "a failed evaluation must not yield a partial result")

	var fe *arima.FitError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, wantErr, fe)
}

func TestWalkForwardMSEAgainstNaiveForecaster(t *testing.T) {
	train := timeseries.New([]float64{10, 10, 10})
	test := timeseries.New([]float64{12, 14})

	// Naive last-value forecaster: predictions are 10 and 12.
	fc := func(history []float64, order arima.Order) (float64, error) {
		return history[len(history)-1], nil
	}

	result, err := WalkForwardWith(fc, train, test, arima.Order{})
	require.NoError(t, err)
	assert.Equal(t, []float64{10, 12}, result.Predictions)
	assert.InDelta(t, 4.0, result.MSE, 1e-12) // ((12-10)^2 + (14-12)^2) / 2
}
