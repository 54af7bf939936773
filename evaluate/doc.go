// Package evaluate provides out-of-sample evaluation of ARIMA orders.
//
// The walk-forward scheme simulates real-time forecasting: the model is
// refitted on the full history before every one-step-ahead forecast, and
// the true observation joins the history afterwards. Grid search runs
// the scheme over the cross-product of candidate (p,d,q) values and
// keeps the configuration with the smallest mean squared error.
//
//	train, test := hourly.Split(hourly.Len() - 24)
//	result, err := evaluate.GridSearch(train, test,
//	    []int{0, 1, 2}, []int{0, 1}, []int{0, 1, 2}, os.Stdout)
//	if result.Found {
//	    fmt.Println(result.Best, result.BestMSE)
//	}
//
// Orders that fail to fit are skipped, not retried; the search reports a
// not-found result when every candidate fails. Errors other than
// *arima.FitError abort the search.
package evaluate
