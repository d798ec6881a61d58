// Package detect extracts discrete events from noisy, quasi-periodic
// signals: peaks and troughs via a relative threshold, threshold
// crossings, and fixed-length snippets around event indices.
package detect

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/weygoldt/thunderfish/algorithms/common"
)

// Peaks detects peaks and troughs using a fixed relative threshold.
//
// This is an implementation of the algorithm by Bryan S. Todd and
// David C. Andrews (1999): The identification of peaks in physiological
// signals. Computers and Biomedical Research 32, 322-335.
//
// A single left-to-right pass tracks a running maximum and minimum.
// Once the data drops at least threshold below the running maximum,
// that maximum is committed as a peak and the scan turns to tracking a
// minimum; troughs are committed symmetrically. The threshold is the
// minimum vertical distance between a peak and its neighboring troughs.
//
// The returned index slices are strictly ascending. They are not
// necessarily of equal length, but peaks and troughs alternate once the
// first event has been committed.
func Peaks(data []float64, threshold float64) (peaks, troughs []int, err error) {
	if threshold <= 0 {
		return nil, nil, fmt.Errorf("threshold must be positive, got %g: %w",
			threshold, common.ErrInvalidArgument)
	}
	peaks, troughs = scanExtrema(data, func(int) float64 { return threshold })
	return peaks, troughs, nil
}

// PeaksVarying detects peaks and troughs like Peaks, but reads the
// detection threshold for each comparison from a per-sample threshold
// sequence aligned with the data.
//
// The threshold sequence is sampled pointwise, not smoothed: it must
// not vary faster than the expected intervals between peaks and
// troughs.
func PeaksVarying(data, threshold []float64) (peaks, troughs []int, err error) {
	if len(data) != len(threshold) {
		return nil, nil, fmt.Errorf("data and threshold lengths differ (%d != %d): %w",
			len(data), len(threshold), common.ErrLengthMismatch)
	}
	if len(threshold) > 0 && floats.Min(threshold) <= 0 {
		return nil, nil, fmt.Errorf("threshold values must be positive: %w",
			common.ErrInvalidArgument)
	}
	peaks, troughs = scanExtrema(data, func(i int) float64 { return threshold[i] })
	return peaks, troughs, nil
}

// scanExtrema runs the alternating extremum scan with the threshold for
// each sample supplied by thresholdAt. All tracker state is local to
// one call.
func scanExtrema(data []float64, thresholdAt func(int) float64) (peaks, troughs []int) {
	peaks = []int{}
	troughs = []int{}
	if len(data) == 0 {
		return peaks, troughs
	}

	direction := 0
	minInx, maxInx := 0, 0
	minValue := data[0]
	maxValue := minValue

	for index, value := range data {
		threshold := thresholdAt(index)
		switch {
		// rising?
		case direction > 0:
			if value > maxValue {
				maxInx, maxValue = index, value
			} else if value <= maxValue-threshold {
				// the maximum is a peak
				peaks = append(peaks, maxInx)
				direction = -1
				minInx, minValue = index, value
			}

		// falling?
		case direction < 0:
			if value < minValue {
				minInx, minValue = index, value
			} else if value >= minValue+threshold {
				// the minimum is a trough
				troughs = append(troughs, minInx)
				direction = +1
				maxInx, maxValue = index, value
			}

		// direction not known yet: track both extrema
		default:
			if value <= maxValue-threshold {
				direction = -1
			} else if value >= minValue+threshold {
				direction = +1
			}

			if value > maxValue {
				maxInx, maxValue = index, value
			} else if value < minValue {
				minInx, minValue = index, value
			}
		}
	}

	return peaks, troughs
}
