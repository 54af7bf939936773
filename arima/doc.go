// Package arima implements ARIMA(p,d,q) estimation and forecasting.
//
// Models are estimated by two-stage conditional least squares
// (Hannan-Rissanen): a long autoregression supplies innovation
// estimates, then the autoregressive and moving-average coefficients
// come from a single least-squares regression on lagged values and
// lagged innovations.
//
// # Fitting and Forecasting
//
//	model := arima.New(1, 1, 1)
//	if err := model.Fit(series); err != nil {
//	    var fe *arima.FitError
//	    if errors.As(err, &fe) {
//	        // the order cannot be fitted on this series
//	    }
//	}
//	forecasts, err := model.Predict(24)
//
// # Failure Model
//
// Every estimation failure, including insufficient history for the
// requested order, non-finite estimates, non-stationary autoregressive
// roots, and non-invertible moving-average roots, is reported as a
// *FitError. Search drivers skip orders failing with *FitError and let
// any other error propagate.
package arima
