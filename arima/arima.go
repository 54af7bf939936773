package arima

import (
	"errors"
	"fmt"
	"math"
	"math/cmplx"

	"gonum.org/v1/gonum/mat"

	"github.com/enercast/enercast/timeseries"
)

// Order identifies an ARIMA model by its autoregressive order P,
// differencing order D, and moving-average order Q.
type Order struct {
	P int
	D int
	Q int
}

func (o Order) String() string {
	return fmt.Sprintf("(%d,%d,%d)", o.P, o.D, o.Q)
}

// Model is an ARIMA model.
type Model struct {
	Order     Order
	ARCoeffs  []float64 // phi
	MACoeffs  []float64 // theta
	Intercept float64   // mean of the differenced series
	Variance  float64   // residual variance
	AIC       float64
	BIC       float64
	LogLik    float64

	fitted     bool
	centered   []float64 // differenced series minus intercept
	diffTails  []float64 // last value at each differencing level, for integration
	residuals  []float64
	fittedVals []float64
}

// New creates an ARIMA model with the given order.
func New(p, d, q int) *Model {
	return &Model{Order: Order{P: p, D: d, Q: q}}
}

// Fit estimates the model on the given series using two-stage
// conditional least squares (Hannan-Rissanen). Estimation failures,
// including orders the series cannot support and non-stationary or
// non-invertible estimates, are reported as *FitError.
func (m *Model) Fit(series *timeseries.Series) error {
	p, d, q := m.Order.P, m.Order.D, m.Order.Q

	if p < 0 || d < 0 || q < 0 {
		return fitErrorf(m.Order, "order components must be non-negative")
	}
	if series.Len() < p+q+d+10 {
		return fitErrorf(m.Order, "insufficient data: %d observations", series.Len())
	}

	// Difference d times, recording the tail value at each level so
	// forecasts can be integrated back to the original scale.
	w := make([]float64, series.Len())
	copy(w, series.Values)
	m.diffTails = make([]float64, d)
	for level := 0; level < d; level++ {
		m.diffTails[level] = w[len(w)-1]
		next := make([]float64, len(w)-1)
		for i := 1; i < len(w); i++ {
			next[i-1] = w[i] - w[i-1]
		}
		w = next
	}
	if len(w) < p+q+5 {
		return fitErrorf(m.Order, "series too short after differencing")
	}

	mu := 0.0
	for _, v := range w {
		mu += v
	}
	mu /= float64(len(w))
	m.Intercept = mu

	x := make([]float64, len(w))
	for i, v := range w {
		x[i] = v - mu
	}
	m.centered = x

	if err := m.estimate(x); err != nil {
		return err
	}

	m.computeResiduals(x)
	if err := m.computeVariance(); err != nil {
		return err
	}
	m.informationCriteria()

	m.fitted = true
	return nil
}

// estimate runs the two-stage regression populating ARCoeffs and MACoeffs.
func (m *Model) estimate(x []float64) error {
	p, q := m.Order.P, m.Order.Q
	n := len(x)

	if p == 0 && q == 0 {
		m.ARCoeffs = nil
		m.MACoeffs = nil
		return nil
	}

	// Stage one: a long autoregression supplies innovation estimates for
	// the moving-average regressors.
	var e []float64
	if q > 0 {
		long := 2 * (p + q)
		if long < 4 {
			long = 4
		}
		if long >= n/2 {
			return fitErrorf(m.Order, "insufficient data for long autoregression")
		}

		a, err := olsAR(x, long)
		if err != nil {
			return fitErrorf(m.Order, "long autoregression: %v", err)
		}

		e = make([]float64, n)
		for t := long; t < n; t++ {
			pred := 0.0
			for j := 0; j < long; j++ {
				pred += a[j] * x[t-j-1]
			}
			e[t] = x[t] - pred
		}
	}

	// Stage two: regress x_t on its own lags and the lagged innovations.
	start := p
	if q > start {
		start = q
	}
	rows := n - start
	cols := p + q
	if rows <= cols+2 {
		return fitErrorf(m.Order, "insufficient data: %d usable rows for %d parameters", rows, cols)
	}

	X := mat.NewDense(rows, cols, nil)
	y := mat.NewVecDense(rows, nil)
	for t := start; t < n; t++ {
		row := t - start
		for i := 0; i < p; i++ {
			X.Set(row, i, x[t-i-1])
		}
		for j := 0; j < q; j++ {
			X.Set(row, p+j, e[t-j-1])
		}
		y.SetVec(row, x[t])
	}

	beta, err := olsSolve(X, y)
	if err != nil {
		return fitErrorf(m.Order, "least squares: %v", err)
	}
	for _, b := range beta {
		if math.IsNaN(b) || math.IsInf(b, 0) {
			return fitErrorf(m.Order, "coefficient estimate is not finite")
		}
	}

	phi := beta[:p]
	theta := beta[p:]

	if p > 0 {
		stable, err := polyStable(phi)
		if err != nil {
			return fitErrorf(m.Order, "stationarity check: %v", err)
		}
		if !stable {
			return fitErrorf(m.Order, "autoregressive estimates are non-stationary")
		}
	}
	if q > 0 {
		neg := make([]float64, q)
		for j, v := range theta {
			neg[j] = -v
		}
		stable, err := polyStable(neg)
		if err != nil {
			return fitErrorf(m.Order, "invertibility check: %v", err)
		}
		if !stable {
			return fitErrorf(m.Order, "moving-average estimates are non-invertible")
		}
	}

	m.ARCoeffs = phi
	m.MACoeffs = theta
	return nil
}

// computeResiduals runs the fitted recursion over the centered series.
func (m *Model) computeResiduals(x []float64) {
	p, q := m.Order.P, m.Order.Q
	n := len(x)

	resid := make([]float64, n)
	fitted := make([]float64, n)
	for t := 0; t < n; t++ {
		pred := 0.0
		for i := 0; i < p && t-i-1 >= 0; i++ {
			pred += m.ARCoeffs[i] * x[t-i-1]
		}
		for j := 0; j < q && t-j-1 >= 0; j++ {
			pred += m.MACoeffs[j] * resid[t-j-1]
		}
		resid[t] = x[t] - pred
		fitted[t] = m.Intercept + pred
	}

	m.residuals = resid
	m.fittedVals = fitted
}

func (m *Model) computeVariance() error {
	p, q := m.Order.P, m.Order.Q
	start := p
	if q > start {
		start = q
	}

	sse := 0.0
	count := 0
	for t := start; t < len(m.residuals); t++ {
		sse += m.residuals[t] * m.residuals[t]
		count++
	}
	if count > p+q+1 {
		m.Variance = sse / float64(count-p-q-1)
	} else if count > 0 {
		m.Variance = sse / float64(count)
	}
	if math.IsNaN(m.Variance) || math.IsInf(m.Variance, 0) {
		return fitErrorf(m.Order, "residual variance is not finite")
	}
	return nil
}

func (m *Model) informationCriteria() {
	n := len(m.residuals)
	k := m.Order.P + m.Order.Q + 1

	sse := 0.0
	for _, r := range m.residuals {
		sse += r * r
	}

	if m.Variance > 0 {
		m.LogLik = -float64(n)/2*math.Log(2*math.Pi) - float64(n)/2*math.Log(m.Variance) - sse/(2*m.Variance)
	} else {
		m.LogLik = math.Inf(-1)
	}

	m.AIC = -2*m.LogLik + 2*float64(k)
	m.BIC = -2*m.LogLik + float64(k)*math.Log(float64(n))
}

// Predict generates point forecasts for the given number of steps ahead,
// integrated back to the original scale.
func (m *Model) Predict(steps int) ([]float64, error) {
	if !m.fitted {
		return nil, errors.New("arima: model must be fitted before forecasting")
	}
	if steps < 1 {
		return nil, errors.New("arima: steps must be at least 1")
	}

	p, q := m.Order.P, m.Order.Q
	n := len(m.centered)

	extX := make([]float64, n+steps)
	copy(extX, m.centered)
	extE := make([]float64, n+steps)
	copy(extE, m.residuals)

	forecasts := make([]float64, steps)
	for h := 0; h < steps; h++ {
		t := n + h
		pred := 0.0
		for i := 0; i < p && t-i-1 >= 0; i++ {
			pred += m.ARCoeffs[i] * extX[t-i-1]
		}
		for j := 0; j < q && t-j-1 >= 0; j++ {
			pred += m.MACoeffs[j] * extE[t-j-1]
		}
		extX[t] = pred
		extE[t] = 0 // expected future shock is zero
		forecasts[h] = m.Intercept + pred
	}

	// Undo differencing, innermost level first.
	for level := len(m.diffTails) - 1; level >= 0; level-- {
		forecasts[0] += m.diffTails[level]
		for j := 1; j < len(forecasts); j++ {
			forecasts[j] += forecasts[j-1]
		}
	}

	return forecasts, nil
}

// Residuals returns a copy of the in-sample residuals.
func (m *Model) Residuals() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.residuals))
	copy(out, m.residuals)
	return out
}

// FittedValues returns a copy of the in-sample one-step fitted values on
// the differenced scale.
func (m *Model) FittedValues() []float64 {
	if !m.fitted {
		return nil
	}
	out := make([]float64, len(m.fittedVals))
	copy(out, m.fittedVals)
	return out
}

// olsAR fits an AR(order) regression to x by least squares.
func olsAR(x []float64, order int) ([]float64, error) {
	n := len(x)
	rows := n - order
	if rows <= order+2 {
		return nil, errors.New("insufficient rows")
	}

	X := mat.NewDense(rows, order, nil)
	y := mat.NewVecDense(rows, nil)
	for t := order; t < n; t++ {
		row := t - order
		for j := 0; j < order; j++ {
			X.Set(row, j, x[t-j-1])
		}
		y.SetVec(row, x[t])
	}

	return olsSolve(X, y)
}

// olsSolve solves the normal equations, falling back to SVD least
// squares when X'X is singular or badly conditioned.
func olsSolve(X *mat.Dense, y *mat.VecDense) ([]float64, error) {
	_, cols := X.Dims()

	var beta mat.Dense
	var xtx mat.Dense
	xtx.Mul(X.T(), X)

	var xtxInv mat.Dense
	if err := xtxInv.Inverse(&xtx); err == nil {
		var xty mat.Dense
		xty.Mul(X.T(), y)
		beta.Mul(&xtxInv, &xty)
	} else {
		var svd mat.SVD
		if !svd.Factorize(X, mat.SVDThin) {
			return nil, errors.New("SVD factorization failed")
		}
		rank := svd.Rank(1e-12)
		if rank == 0 {
			return nil, errors.New("design matrix has rank zero")
		}
		svd.SolveTo(&beta, y, rank)
	}

	out := make([]float64, cols)
	for i := range out {
		out[i] = beta.At(i, 0)
	}
	return out, nil
}

// polyStable reports whether all eigenvalues of the companion matrix of
// the lag polynomial lie strictly inside the unit circle.
func polyStable(coeffs []float64) (bool, error) {
	k := len(coeffs)
	if k == 0 {
		return true, nil
	}
	if k == 1 {
		return math.Abs(coeffs[0]) < 1, nil
	}

	data := make([]float64, k*k)
	copy(data[:k], coeffs)
	for i := 1; i < k; i++ {
		data[i*k+i-1] = 1
	}

	var eig mat.Eigen
	if !eig.Factorize(mat.NewDense(k, k, data), mat.EigenNone) {
		return false, errors.New("eigendecomposition failed")
	}
	for _, v := range eig.Values(nil) {
		if cmplx.Abs(v) >= 1 {
			return false, nil
		}
	}
	return true, nil
}
