package stats

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/enercast/enercast/timeseries"
)

// ACF calculates the autocorrelation function for lags 0 to maxLag.
func ACF(series *timeseries.Series, maxLag int) []float64 {
	values := dropNaN(series.Values)
	n := len(values)
	if maxLag >= n {
		maxLag = n - 1
	}
	if maxLag < 0 {
		return nil
	}

	mean := 0.0
	for _, v := range values {
		mean += v
	}
	mean /= float64(n)

	variance := 0.0
	for _, v := range values {
		diff := v - mean
		variance += diff * diff
	}
	if variance == 0 {
		return nil
	}

	acf := make([]float64, maxLag+1)
	for k := 0; k <= maxLag; k++ {
		sum := 0.0
		for i := k; i < n; i++ {
			sum += (values[i] - mean) * (values[i-k] - mean)
		}
		acf[k] = sum / variance
	}

	return acf
}

// PACF calculates the partial autocorrelation function via the
// Durbin-Levinson recursion for lags 0 to maxLag.
func PACF(series *timeseries.Series, maxLag int) []float64 {
	acf := ACF(series, maxLag)
	if acf == nil || len(acf) < 2 {
		return nil
	}
	maxLag = len(acf) - 1

	pacf := make([]float64, maxLag+1)
	pacf[0] = 1.0

	phi := make([][]float64, maxLag+1)
	for i := range phi {
		phi[i] = make([]float64, maxLag+1)
	}

	phi[1][1] = acf[1]
	pacf[1] = acf[1]

	for k := 2; k <= maxLag; k++ {
		num := acf[k]
		den := 1.0
		for j := 1; j < k; j++ {
			num -= phi[k-1][j] * acf[k-j]
			den -= phi[k-1][j] * acf[j]
		}

		if den == 0 {
			pacf[k] = 0
			continue
		}

		phi[k][k] = num / den
		pacf[k] = phi[k][k]

		for j := 1; j < k; j++ {
			phi[k][j] = phi[k-1][j] - phi[k][k]*phi[k-1][k-j]
		}
	}

	return pacf
}

// Correlogram holds correlation coefficients and the half-width of the
// two-sided 95% confidence interval at each lag.
type Correlogram struct {
	Lags    []int
	Values  []float64
	Bands   []float64
	Partial bool
	NObs    int
}

// Correlation computes an ACF or PACF correlogram with per-lag 95%
// confidence intervals. NaN values are dropped before computation.
// ACF intervals use Bartlett's formula and therefore widen with lag;
// PACF intervals are the constant large-sample bound.
func Correlation(series *timeseries.Series, maxLag int, partial bool) (*Correlogram, error) {
	clean := timeseries.New(dropNaN(series.Values))
	n := clean.Len()
	if n < 2 {
		return nil, errors.New("stats: series too short for correlation analysis")
	}

	var values []float64
	if partial {
		values = PACF(clean, maxLag)
	} else {
		values = ACF(clean, maxLag)
	}
	if values == nil {
		return nil, errors.New("stats: correlation is undefined for a constant series")
	}

	z := distuv.Normal{Mu: 0, Sigma: 1}.Quantile(0.975)

	bands := make([]float64, len(values))
	if partial {
		bound := z / math.Sqrt(float64(n))
		for k := 1; k < len(bands); k++ {
			bands[k] = bound
		}
	} else {
		// Bartlett: Var(r_k) ~ (1 + 2*sum_{j<k} r_j^2) / n
		cum := 0.0
		for k := 1; k < len(bands); k++ {
			bands[k] = z * math.Sqrt((1+2*cum)/float64(n))
			cum += values[k] * values[k]
		}
	}

	lags := make([]int, len(values))
	for i := range lags {
		lags[i] = i
	}

	return &Correlogram{
		Lags:    lags,
		Values:  values,
		Bands:   bands,
		Partial: partial,
		NObs:    n,
	}, nil
}

func dropNaN(values []float64) []float64 {
	clean := make([]float64, 0, len(values))
	for _, v := range values {
		if !math.IsNaN(v) {
			clean = append(clean, v)
		}
	}
	return clean
}
