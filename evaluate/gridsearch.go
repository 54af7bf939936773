package evaluate

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/enercast/enercast/arima"
	"github.com/enercast/enercast/timeseries"
)

// SearchResult is the outcome of a grid search. Found is false when
// every candidate order failed to fit, in which case Best is meaningless
// and BestMSE is +Inf.
type SearchResult struct {
	Best      arima.Order
	BestMSE   float64
	Evaluated int
	Skipped   int
	Found     bool
}

// GridSearch evaluates the full cross-product of the candidate p, d and
// q values with WalkForward, nested p outer, d middle, q inner. An order
// failing with *arima.FitError is skipped; any other error aborts the
// search. The best order is updated only on strictly smaller error, so
// the first order reaching a given score wins ties.
//
// Each successful evaluation writes one line to w, followed by a final
// summary line. Pass nil to suppress output.
func GridSearch(train, test *timeseries.Series, ps, ds, qs []int, w io.Writer) (*SearchResult, error) {
	return GridSearchWith(fitAndForecast, train, test, ps, ds, qs, w)
}

// GridSearchWith runs the grid search with a caller-supplied forecaster.
func GridSearchWith(fc Forecaster, train, test *timeseries.Series, ps, ds, qs []int, w io.Writer) (*SearchResult, error) {
	if w == nil {
		w = io.Discard
	}

	result := &SearchResult{BestMSE: math.Inf(1)}

	for _, p := range ps {
		for _, d := range ds {
			for _, q := range qs {
				order := arima.Order{P: p, D: d, Q: q}

				eval, err := WalkForwardWith(fc, train, test, order)
				if err != nil {
					var fe *arima.FitError
					if errors.As(err, &fe) {
						result.Skipped++
						continue
					}
					return nil, err
				}

				result.Evaluated++
				fmt.Fprintf(w, "ARIMA%s MSE=%.3f\n", order, eval.MSE)

				if eval.MSE < result.BestMSE {
					result.Best = order
					result.BestMSE = eval.MSE
					result.Found = true
				}
			}
		}
	}

	if result.Found {
		fmt.Fprintf(w, "Best ARIMA%s MSE=%.3f\n", result.Best, result.BestMSE)
	} else {
		fmt.Fprintln(w, "No valid ARIMA configuration found")
	}

	return result, nil
}
