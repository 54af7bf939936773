package timeseries

import (
	"errors"
	"math"
	"time"

	"gonum.org/v1/gonum/stat"
)

// Series is an ordered sequence of (timestamp, value) pairs.
type Series struct {
	Timestamps []time.Time
	Values     []float64
	Name       string
}

// New creates a series from values on an hourly index starting now.
func New(values []float64) *Series {
	timestamps := make([]time.Time, len(values))
	base := time.Now().Truncate(time.Hour)
	for i := range timestamps {
		timestamps[i] = base.Add(time.Duration(i) * time.Hour)
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}
}

// NewWithTimestamps creates a series with explicit timestamps.
func NewWithTimestamps(timestamps []time.Time, values []float64) (*Series, error) {
	if len(timestamps) != len(values) {
		return nil, errors.New("timestamps and values must have the same length")
	}
	return &Series{
		Timestamps: timestamps,
		Values:     values,
	}, nil
}

// Len returns the number of observations.
func (s *Series) Len() int {
	return len(s.Values)
}

// Mean returns the arithmetic mean of the series.
func (s *Series) Mean() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	return stat.Mean(s.Values, nil)
}

// Variance returns the sample variance of the series.
func (s *Series) Variance() float64 {
	if len(s.Values) < 2 {
		return 0
	}
	return stat.Variance(s.Values, nil)
}

// Std returns the sample standard deviation of the series.
func (s *Series) Std() float64 {
	return math.Sqrt(s.Variance())
}

// Min returns the smallest value in the series.
func (s *Series) Min() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	min := s.Values[0]
	for _, v := range s.Values[1:] {
		if v < min {
			min = v
		}
	}
	return min
}

// Max returns the largest value in the series.
func (s *Series) Max() float64 {
	if len(s.Values) == 0 {
		return math.NaN()
	}
	max := s.Values[0]
	for _, v := range s.Values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Diff returns the first difference of the series.
func (s *Series) Diff() *Series {
	return s.DiffN(1)
}

// DiffN returns the series differenced n times at lag one. Each pass
// shortens the series by one observation.
func (s *Series) DiffN(n int) *Series {
	if n <= 0 || len(s.Values) <= n {
		return &Series{Values: []float64{}}
	}

	values := make([]float64, len(s.Values))
	copy(values, s.Values)
	for pass := 0; pass < n; pass++ {
		next := make([]float64, len(values)-1)
		for i := 1; i < len(values); i++ {
			next[i-1] = values[i] - values[i-1]
		}
		values = next
	}

	timestamps := make([]time.Time, len(values))
	if len(s.Timestamps) > n {
		copy(timestamps, s.Timestamps[n:])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name + "_diff",
	}
}

// Slice returns a copy of the series from start to end (exclusive).
func (s *Series) Slice(start, end int) *Series {
	if start < 0 {
		start = 0
	}
	if end > len(s.Values) {
		end = len(s.Values)
	}
	if start >= end {
		return &Series{Values: []float64{}}
	}

	values := make([]float64, end-start)
	copy(values, s.Values[start:end])

	timestamps := make([]time.Time, len(values))
	if len(s.Timestamps) >= end {
		copy(timestamps, s.Timestamps[start:end])
	}

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}

// Split partitions the series at boundary into a contiguous training
// prefix and a contiguous test suffix. Both parts are copies, so later
// mutation of one side cannot leak into the other.
func (s *Series) Split(boundary int) (train, test *Series) {
	return s.Slice(0, boundary), s.Slice(boundary, s.Len())
}

// Copy returns a deep copy of the series.
func (s *Series) Copy() *Series {
	values := make([]float64, len(s.Values))
	copy(values, s.Values)

	timestamps := make([]time.Time, len(s.Timestamps))
	copy(timestamps, s.Timestamps)

	return &Series{
		Timestamps: timestamps,
		Values:     values,
		Name:       s.Name,
	}
}
