package stats

import (
	"math"
	"sort"

	"github.com/golang/geo/r1"
)

// Mean calculates the arithmetic mean of a slice of float64 values
func Mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}

// Median calculates the median value
func Median(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	// Create a copy to avoid modifying the original slice
	sorted := make([]float64, len(values))
	copy(sorted, values)
	sort.Float64s(sorted)

	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Max returns the maximum value
func Max(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}

	max := values[0]
	for _, v := range values[1:] {
		if v > max {
			max = v
		}
	}
	return max
}

// Extent returns the [min, max] interval of the values
// NaN values are skipped; no values yields an empty interval
func Extent(values []float64) r1.Interval {
	extent := r1.EmptyInterval()
	for _, v := range values {
		if math.IsNaN(v) {
			continue
		}
		extent = extent.AddPoint(v)
	}
	return extent
}

// Steps returns start, start+step, ... for every value below stop
// The count is ceil((stop-start)/step), so floating point error may add one extra stop
func Steps(start, stop, step float64) []float64 {
	if step == 0 || math.IsNaN(step) || math.IsInf(step, 0) {
		return nil
	}

	n := math.Ceil((stop - start) / step)
	if n <= 0 || math.IsNaN(n) {
		return nil
	}

	steps := make([]float64, int(n))
	for i := range steps {
		steps[i] = start + float64(i)*step
	}
	return steps
}
