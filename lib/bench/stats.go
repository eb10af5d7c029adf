package bench

import (
	gometrics "github.com/rcrowley/go-metrics"
	"math"
	"time"
)

// ----------------------------------------------------------------------------
// Size statistics
// ----------------------------------------------------------------------------

// SizeStats summarizes the encoded sizes of the benchmark items in bytes
type SizeStats struct {
	Total        int     `json:"total"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	Mean         float64 `json:"mean"`
	StdDeviation float64 `json:"std_deviation"`
}

// NewSizeStats computes total, mean, standard deviation, minimum and maximum
// of the given sizes
func NewSizeStats(sizes []int) SizeStats {
	if len(sizes) == 0 {
		return SizeStats{}
	}

	// initialize min and max with the first value
	min := float64(sizes[0])
	max := min

	total := 0
	for _, s := range sizes {
		total += s
		v := float64(s)
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	mean := float64(total) / float64(len(sizes))

	// population standard deviation
	var sumSquaredDiffs float64
	for _, s := range sizes {
		diff := float64(s) - mean
		sumSquaredDiffs += diff * diff
	}

	return SizeStats{
		Total:        total,
		Min:          min,
		Max:          max,
		Mean:         mean,
		StdDeviation: math.Sqrt(sumSquaredDiffs / float64(len(sizes))),
	}
}

// ----------------------------------------------------------------------------
// Latency statistics
// ----------------------------------------------------------------------------

// LatencyStats summarizes the recorded duration of single operations
type LatencyStats struct {
	Count int64
	Mean  time.Duration
	P50   time.Duration
	P99   time.Duration
	Max   time.Duration
}

// newLatencyStats reads a snapshot of a timer
func newLatencyStats(t gometrics.Timer) LatencyStats {
	s := t.Snapshot()
	if s.Count() == 0 {
		return LatencyStats{}
	}
	ps := s.Percentiles([]float64{0.5, 0.99})
	return LatencyStats{
		Count: s.Count(),
		Mean:  time.Duration(s.Mean()),
		P50:   time.Duration(ps[0]),
		P99:   time.Duration(ps[1]),
		Max:   time.Duration(s.Max()),
	}
}
