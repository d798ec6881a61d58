package common

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// Basic statistical functions used across algorithms using gonum for robustness

// Mean calculates the arithmetic mean of a slice using gonum
func Mean(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return stat.Mean(data, nil)
}

// StdDev calculates the sample standard deviation (n-1 in the denominator)
func StdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.StdDev(data, nil)
}

// PopStdDev calculates the population standard deviation (n in the denominator)
func PopStdDev(data []float64) float64 {
	if len(data) < 2 {
		return 0.0
	}
	return stat.PopStdDev(data, nil)
}

// Min returns the smallest value in data
func Min(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Min(data)
}

// Max returns the largest value in data
func Max(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}
	return floats.Max(data)
}

// Median returns the middle value of data, averaging the two middle
// values for even lengths. The input is not modified.
func Median(data []float64) float64 {
	if len(data) == 0 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	mid := len(sorted) / 2
	if len(sorted)%2 == 0 {
		return (sorted[mid-1] + sorted[mid]) / 2.0
	}
	return sorted[mid]
}

// Percentile calculates the p-th percentile (p between 0 and 100) by
// linear interpolation between closest ranks (the R-7 method).
func Percentile(data []float64, p float64) float64 {
	if len(data) == 0 || p < 0 || p > 100 {
		return 0.0
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	n := len(sorted)
	if n == 1 {
		return sorted[0]
	}

	h := float64(n-1) * p / 100.0
	lower := int(math.Floor(h))
	upper := int(math.Ceil(h))
	if upper >= n {
		return sorted[n-1]
	}
	if lower == upper {
		return sorted[lower]
	}

	frac := h - math.Floor(h)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

// InterpAt linearly interpolates y at the position where x falls between
// x0 and x1, clamping to the interval boundaries. x0 must not exceed x1.
func InterpAt(x, x0, x1, y0, y1 float64) float64 {
	if x <= x0 {
		return y0
	}
	if x >= x1 {
		return y1
	}
	if x1 == x0 {
		return y0
	}
	t := (x - x0) / (x1 - x0)
	return y0 + t*(y1-y0)
}

// Clamp constrains a value to a range
func Clamp(value, min, max float64) float64 {
	if value < min {
		return min
	}
	if value > max {
		return max
	}
	return value
}
