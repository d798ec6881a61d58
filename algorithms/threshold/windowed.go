package threshold

import (
	"fmt"
	"math"

	"github.com/weygoldt/thunderfish/algorithms/common"
)

// Windowed estimators compute one threshold value per half-overlapping
// window of winSize duration and broadcast it across the window's
// samples. Window i spans [i*step, i*step+win) with step = win/2, so
// each sample ends up with the estimate of the last window covering it.
// The returned slice has the same length as data.

// StdWindowed is the windowed form of Std.
func StdWindowed(data []float64, rate, winSize, factor float64) ([]float64, error) {
	win, err := windowSamples(len(data), rate, winSize)
	if err != nil {
		return nil, err
	}
	return broadcast(data, win, func(w []float64) float64 {
		return common.StdDev(w) * factor
	}), nil
}

// MinMaxWindowed is the windowed form of MinMax.
func MinMaxWindowed(data []float64, rate, winSize, factor float64) ([]float64, error) {
	win, err := windowSamples(len(data), rate, winSize)
	if err != nil {
		return nil, err
	}
	return broadcast(data, win, func(w []float64) float64 {
		return (common.Max(w) - common.Min(w)) * factor
	}), nil
}

// PercentileWindowed is the windowed form of Percentile.
func PercentileWindowed(data []float64, rate, winSize, factor, percentile float64) ([]float64, error) {
	if percentile < 0 || percentile > 100 {
		return nil, fmt.Errorf("percentile must be between 0 and 100, got %g: %w",
			percentile, common.ErrInvalidArgument)
	}
	if percentile < 1e-8 {
		return MinMaxWindowed(data, rate, winSize, factor)
	}
	win, err := windowSamples(len(data), rate, winSize)
	if err != nil {
		return nil, err
	}
	return broadcast(data, win, func(w []float64) float64 {
		lo := common.Percentile(w, percentile)
		hi := common.Percentile(w, 100.0-percentile)
		return math.Abs(hi-lo) * factor
	}), nil
}

// HistWindowed is the windowed form of Hist. It returns per-sample
// thresholds and histogram centers.
func HistWindowed(data []float64, rate, winSize, factor float64, nbins int, height float64) ([]float64, []float64, error) {
	if nbins < 2 {
		return nil, nil, fmt.Errorf("histogram needs at least 2 bins, got %d: %w",
			nbins, common.ErrInvalidArgument)
	}
	if height <= 0 || height > 1 {
		return nil, nil, fmt.Errorf("histogram height must be in (0, 1], got %g: %w",
			height, common.ErrInvalidArgument)
	}
	win, err := windowSamples(len(data), rate, winSize)
	if err != nil {
		return nil, nil, err
	}

	thresholds := make([]float64, len(data))
	centers := make([]float64, len(data))
	step := win / 2
	for i0 := 0; i0 < len(data)-step; i0 += step {
		i1 := min(i0+win, len(data))
		th, ctr, err := Hist(data[i0:i1], factor, nbins, height)
		if err != nil {
			return nil, nil, err
		}
		for i := i0; i < i1; i++ {
			thresholds[i] = th
			centers[i] = ctr
		}
	}
	return thresholds, centers, nil
}

// windowSamples resolves a window duration to a sample count and
// validates that it yields usable windows over the data.
func windowSamples(dataLen int, rate, winSize float64) (int, error) {
	if dataLen == 0 {
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
	win := int(winSize * rate)
	if win < 2 {
		return 0, fmt.Errorf("window of %d samples is too small: %w",
			win, common.ErrInvalidArgument)
	}
	if dataLen <= win/2 {
		return 0, fmt.Errorf("data of %d samples too short for %d sample windows: %w",
			dataLen, win, common.ErrInvalidArgument)
	}
	return win, nil
}

// broadcast runs est over every half-overlapping window and writes its
// value to all samples of that window.
func broadcast(data []float64, win int, est func([]float64) float64) []float64 {
	out := make([]float64, len(data))
	step := win / 2
	for i0 := 0; i0 < len(data)-step; i0 += step {
		i1 := min(i0+win, len(data))
		v := est(data[i0:i1])
		for i := i0; i < i1; i++ {
			out[i] = v
		}
	}
	return out
}
