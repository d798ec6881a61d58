// Package threshold turns raw signal statistics into detection thresholds
// for the relative-threshold peak detectors.
//
// Every estimator exists in two forms: a scalar form computed over the
// whole data array, and a windowed form (see windowed.go) that computes
// one value per half-overlapping window and broadcasts it across that
// window's samples.
package threshold

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"

	"github.com/weygoldt/thunderfish/algorithms/common"
)

// Defaults for the histogram estimator.
const (
	DefaultHistBins = 100
)

// DefaultHistHeight is the relative histogram height at which the
// distribution width is measured. 1/sqrt(e) makes the half width of a
// Gaussian histogram equal its standard deviation.
var DefaultHistHeight = 1.0 / math.Sqrt(math.E)

// Std estimates a detection threshold as the sample standard deviation
// of the data multiplied by factor.
//
// For Gaussian distributed data, factor 2 spans 68% of the data,
// factor 4 spans 95%, and factor 6 spans 99.7%.
func Std(data []float64, factor float64) (float64, error) {
	if len(data) < 2 {
		return 0, fmt.Errorf("std threshold needs at least 2 samples, got %d: %w",
			len(data), common.ErrInvalidArgument)
	}
	return common.StdDev(data) * factor, nil
}

// MedianStd estimates a detection threshold from the median standard
// deviation of short data snippets.
//
// Up to nSnippets windows of winSize duration (at least 10 samples each)
// are spread over the data. The threshold is the median of the strictly
// positive window standard deviations multiplied by factor. Compared to
// Std this is robust against rare large excursions such as the events
// themselves.
func MedianStd(data []float64, rate, winSize float64, nSnippets int, factor float64) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty data: %w", common.ErrInvalidArgument)
	}
	if rate <= 0 {
		return 0, fmt.Errorf("sampling rate must be positive, got %g: %w",
			rate, common.ErrInvalidArgument)
	}
	if winSize <= 0 {
		return 0, fmt.Errorf("window size must be positive, got %g: %w",
			winSize, common.ErrInvalidArgument)
	}
	if nSnippets <= 0 {
		return 0, fmt.Errorf("number of snippets must be positive, got %d: %w",
			nSnippets, common.ErrInvalidArgument)
	}

	win := int(winSize * rate)
	if win < 10 {
		win = 10
	}
	if len(data) <= win {
		return 0, fmt.Errorf("data too short for %d sample windows: %w",
			win, common.ErrInvalidArgument)
	}

	step := len(data) / nSnippets
	if step < win/2 {
		step = win / 2
	}

	var stds []float64
	for i := 0; i < len(data)-win; i += step {
		if s := common.PopStdDev(data[i : i+win]); s > 0 {
			stds = append(stds, s)
		}
	}
	if len(stds) == 0 {
		return 0, fmt.Errorf("no data window with positive standard deviation: %w",
			common.ErrInvalidArgument)
	}

	return common.Median(stds) * factor, nil
}

// Hist estimates a detection threshold from the width of the data's
// histogram, ignoring the tails of the distribution. The standard
// deviation is taken as half the full width of the histogram at height
// relative to its peak count, and the returned threshold is that
// estimate multiplied by factor. The second return value is the center
// of the histogram at that width.
//
// Data with near-zero dynamic range would produce a degenerate
// histogram; in that case the estimate falls back to the plain standard
// deviation and mean of the data.
func Hist(data []float64, factor float64, nbins int, height float64) (thresh, center float64, err error) {
	if len(data) == 0 {
		return 0, 0, fmt.Errorf("empty data: %w", common.ErrInvalidArgument)
	}
	if nbins < 2 {
		return 0, 0, fmt.Errorf("histogram needs at least 2 bins, got %d: %w",
			nbins, common.ErrInvalidArgument)
	}
	if height <= 0 || height > 1 {
		return 0, 0, fmt.Errorf("histogram height must be in (0, 1], got %g: %w",
			height, common.ErrInvalidArgument)
	}

	maxd := floats.Max(data)
	mind := floats.Min(data)
	contrast := math.Abs((maxd - mind) / (maxd + mind))
	if !(contrast > 1e-8) {
		// low contrast: the histogram would collapse into one bin
		return common.PopStdDev(data) * factor, common.Mean(data), nil
	}

	sorted := make([]float64, len(data))
	copy(sorted, data)
	sort.Float64s(sorted)

	dividers := make([]float64, nbins+1)
	floats.Span(dividers, mind, maxd)
	dividers[nbins] = math.Nextafter(maxd, math.Inf(1))
	counts := stat.Histogram(nil, dividers, sorted, nil)

	minCount := floats.Max(counts) * height
	lower := mind
	upper := maxd
	for i, c := range counts {
		if c > minCount {
			lower = dividers[i]
			break
		}
	}
	for i := len(counts) - 1; i >= 0; i-- {
		if counts[i] > minCount {
			upper = dividers[i+1] // right edge of the last qualifying bin
			break
		}
	}

	return 0.5 * (upper - lower) * factor, 0.5 * (lower + upper), nil
}

// MinMax estimates a detection threshold as the difference between the
// maximum and minimum data value multiplied by factor.
func MinMax(data []float64, factor float64) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty data: %w", common.ErrInvalidArgument)
	}
	return (common.Max(data) - common.Min(data)) * factor, nil
}

// Percentile estimates a detection threshold as the range between the
// percentile and 100-percentile percentiles of the data multiplied by
// factor.
//
// For percentile values close to zero the estimate approaches the one
// returned by MinMax. For percentile 16 and Gaussian distributed data
// the returned threshold is twice the standard deviation. If the
// fraction of data points in the tails of the distribution is known,
// prefer this estimator over Hist.
func Percentile(data []float64, factor, percentile float64) (float64, error) {
	if len(data) == 0 {
		return 0, fmt.Errorf("empty data: %w", common.ErrInvalidArgument)
	}
	if percentile < 0 || percentile > 100 {
		return 0, fmt.Errorf("percentile must be between 0 and 100, got %g: %w",
			percentile, common.ErrInvalidArgument)
	}
	if percentile < 1e-8 {
		return MinMax(data, factor)
	}

	lo := common.Percentile(data, percentile)
	hi := common.Percentile(data, 100.0-percentile)
	return math.Abs(hi-lo) * factor, nil
}
