package stats

import "math"

// MSE returns the mean squared error between actual and predicted values.
// The shorter of the two slices bounds the comparison.
func MSE(actual, predicted []float64) float64 {
	n := min(len(actual), len(predicted))
	if n == 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		d := actual[i] - predicted[i]
		sum += d * d
	}
	return sum / float64(n)
}

// RMSE returns the root mean squared error.
func RMSE(actual, predicted []float64) float64 {
	return math.Sqrt(MSE(actual, predicted))
}

// MAE returns the mean absolute error.
func MAE(actual, predicted []float64) float64 {
	n := min(len(actual), len(predicted))
	if n == 0 {
		return math.NaN()
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += math.Abs(actual[i] - predicted[i])
	}
	return sum / float64(n)
}
