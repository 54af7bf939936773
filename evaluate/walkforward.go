package evaluate

import (
	"github.com/enercast/enercast/arima"
	"github.com/enercast/enercast/stats"
	"github.com/enercast/enercast/timeseries"
)

// Forecaster fits a model of the given order on history and returns the
// one-step-ahead point forecast.
type Forecaster func(history []float64, order arima.Order) (float64, error)

// Result pairs the walk-forward error with the recorded one-step-ahead
// predictions, one per test observation.
type Result struct {
	MSE         float64
	Predictions []float64
}

// WalkForward evaluates one ARIMA order by walking forward through the
// test window: at each step a fresh model of the given order is fitted
// on the full history so far, its one-step-ahead forecast is recorded,
// and the true observation is appended to history. The model is
// deliberately refitted from scratch every step; reusing a previous fit
// would change the numerical result.
//
// Any fit failure propagates unchanged; no partial result is returned.
func WalkForward(train, test *timeseries.Series, order arima.Order) (*Result, error) {
	return WalkForwardWith(fitAndForecast, train, test, order)
}

// WalkForwardWith runs the walk-forward scheme with a caller-supplied
// forecaster, keeping the bookkeeping testable without numerical fits.
func WalkForwardWith(fc Forecaster, train, test *timeseries.Series, order arima.Order) (*Result, error) {
	history := make([]float64, train.Len(), train.Len()+test.Len())
	copy(history, train.Values)

	predictions := make([]float64, 0, test.Len())
	for t := 0; t < test.Len(); t++ {
		forecast, err := fc(history, order)
		if err != nil {
			return nil, err
		}
		predictions = append(predictions, forecast)
		history = append(history, test.Values[t])
	}

	return &Result{
		MSE:         stats.MSE(test.Values, predictions),
		Predictions: predictions,
	}, nil
}

func fitAndForecast(history []float64, order arima.Order) (float64, error) {
	model := arima.New(order.P, order.D, order.Q)
	if err := model.Fit(timeseries.New(history)); err != nil {
		return 0, err
	}
	forecasts, err := model.Predict(1)
	if err != nil {
		return 0, err
	}
	return forecasts[0], nil
}
