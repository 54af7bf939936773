package timeseries

import (
	"sort"
	"time"
)

// ResampleHourly groups a series by calendar hour and averages the values
// within each hour. The result carries one row per hour that appears in
// the input, with hour-start timestamps in strictly increasing order.
// Hours with no source rows are absent, not zero-filled.
func ResampleHourly(s *Series) *Series {
	type bucket struct {
		sum   float64
		count int
	}

	buckets := make(map[time.Time]*bucket)
	for i, v := range s.Values {
		hour := s.Timestamps[i].Truncate(time.Hour)
		b, ok := buckets[hour]
		if !ok {
			b = &bucket{}
			buckets[hour] = b
		}
		b.sum += v
		b.count++
	}

	hours := make([]time.Time, 0, len(buckets))
	for hour := range buckets {
		hours = append(hours, hour)
	}
	sort.Slice(hours, func(i, j int) bool { return hours[i].Before(hours[j]) })

	values := make([]float64, len(hours))
	for i, hour := range hours {
		b := buckets[hour]
		values[i] = b.sum / float64(b.count)
	}

	return &Series{
		Timestamps: hours,
		Values:     values,
		Name:       s.Name,
	}
}
