package arima

import "fmt"

// FitError reports that estimation failed for a specific order, for
// example through numerical non-convergence or an order the series
// cannot support. Callers running a model search can match it with
// errors.As and skip the order; any other error kind signals a genuine
// fault and should propagate.
type FitError struct {
	Order  Order
	Reason string
}

func (e *FitError) Error() string {
	return fmt.Sprintf("arima: fit %s failed: %s", e.Order, e.Reason)
}

func fitErrorf(order Order, format string, args ...any) *FitError {
	return &FitError{Order: order, Reason: fmt.Sprintf(format, args...)}
}
