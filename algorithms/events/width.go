package events

import (
	"fmt"

	"github.com/weygoldt/thunderfish/algorithms/common"
)

// BasePolicy selects which neighboring trough value serves as the
// reference baseline when measuring a peak's size and width.
type BasePolicy int

const (
	// BaseLeft uses the trough to the left of the peak.
	BaseLeft BasePolicy = iota
	// BaseRight uses the trough to the right of the peak.
	BaseRight
	// BaseMin uses the lower of the two neighboring troughs.
	BaseMin
	// BaseMax uses the higher of the two neighboring troughs.
	BaseMax
	// BaseMean uses the mean of the two neighboring troughs.
	BaseMean
	// BaseClosest uses whichever trough is nearer to the peak.
	BaseClosest
)

func (b BasePolicy) String() string {
	switch b {
	case BaseLeft:
		return "left"
	case BaseRight:
		return "right"
	case BaseMin:
		return "min"
	case BaseMax:
		return "max"
	case BaseMean:
		return "mean"
	case BaseClosest:
		return "closest"
	default:
		return "unknown"
	}
}

// ParseBasePolicy converts a policy name into a BasePolicy.
func ParseBasePolicy(s string) (BasePolicy, error) {
	switch s {
	case "left":
		return BaseLeft, nil
	case "right":
		return BaseRight, nil
	case "min":
		return BaseMin, nil
	case "max":
		return BaseMax, nil
	case "mean":
		return BaseMean, nil
	case "closest":
		return BaseClosest, nil
	default:
		return 0, fmt.Errorf("invalid base policy %q: %w", s, common.ErrInvalidArgument)
	}
}

// baseFunc resolves the policy into its baseline function once, outside
// the measurement loop.
func (b BasePolicy) baseFunc() (func(data []float64, left, right, peak int) float64, error) {
	switch b {
	case BaseLeft:
		return func(data []float64, left, right, peak int) float64 {
			return data[left]
		}, nil
	case BaseRight:
		return func(data []float64, left, right, peak int) float64 {
			return data[right]
		}, nil
	case BaseMin:
		return func(data []float64, left, right, peak int) float64 {
			return min(data[left], data[right])
		}, nil
	case BaseMax:
		return func(data []float64, left, right, peak int) float64 {
			return max(data[left], data[right])
		}, nil
	case BaseMean:
		return func(data []float64, left, right, peak int) float64 {
			return 0.5 * (data[left] + data[right])
		}, nil
	case BaseClosest:
		return func(data []float64, left, right, peak int) float64 {
			if peak-left <= right-peak {
				return data[left]
			}
			return data[right]
		}, nil
	default:
		return nil, fmt.Errorf("invalid base policy %d: %w", b, common.ErrInvalidArgument)
	}
}

// PeakMeasure describes one measured peak.
type PeakMeasure struct {
	Time   float64 // time of the peak sample
	Height float64 // data value at the peak
	Size   float64 // peak height minus the baseline trough value
	Width  float64 // width at the fractional height
}

// PeakWidths measures the width of each peak at peakFrac of its height
// above the baseline selected by base. The crossing positions on both
// flanks are found by linear interpolation between the bracketing
// samples and clamped to the first/last timestamp when a flank never
// crosses the measurement height. Boundary troughs are synthesized at
// the first and last sample when the peak sequence extends beyond the
// trough sequence.
func PeakWidths(time, data []float64, peaks, troughs []int, peakFrac float64, base BasePolicy) ([]float64, error) {
	widths := make([]float64, len(peaks))
	if len(peaks) == 0 {
		return widths, nil
	}
	baseFn, bracket, err := prepareMeasure(time, data, peaks, troughs, base)
	if err != nil {
		return nil, err
	}

	for j, pi := range peaks {
		li, ri := bracket[j], bracket[j+1]
		baseval := baseFn(data, li, ri, pi)
		height := baseval*(1.0-peakFrac) + data[pi]*peakFrac
		t0 := risingCrossTime(time, data, li, ri, height)
		t1 := fallingCrossTime(time, data, li, ri, height)
		widths[j] = t1 - t0
	}
	return widths, nil
}

// PeakSizeWidths measures both size and width of each peak; see
// PeakWidths for the width measurement.
func PeakSizeWidths(time, data []float64, peaks, troughs []int, peakFrac float64, base BasePolicy) ([]PeakMeasure, error) {
	measures := make([]PeakMeasure, len(peaks))
	if len(peaks) == 0 {
		return measures, nil
	}
	baseFn, bracket, err := prepareMeasure(time, data, peaks, troughs, base)
	if err != nil {
		return nil, err
	}

	for j, pi := range peaks {
		li, ri := bracket[j], bracket[j+1]
		baseval := baseFn(data, li, ri, pi)
		height := baseval*(1.0-peakFrac) + data[pi]*peakFrac
		t0 := risingCrossTime(time, data, li, ri, height)
		t1 := fallingCrossTime(time, data, li, ri, height)
		measures[j] = PeakMeasure{
			Time:   time[pi],
			Height: data[pi],
			Size:   data[pi] - baseval,
			Width:  t1 - t0,
		}
	}
	return measures, nil
}

// prepareMeasure validates the inputs, resolves the base policy and
// builds the bracketing trough sequence with synthesized boundary
// troughs, so that bracket[j] and bracket[j+1] enclose peaks[j].
func prepareMeasure(time, data []float64, peaks, troughs []int, base BasePolicy) (func([]float64, int, int, int) float64, []int, error) {
	if len(time) != len(data) {
		return nil, nil, fmt.Errorf("time and data lengths differ (%d != %d): %w",
			len(time), len(data), common.ErrLengthMismatch)
	}
	baseFn, err := base.baseFunc()
	if err != nil {
		return nil, nil, err
	}

	bracket := make([]int, 0, len(troughs)+2)
	if len(troughs) == 0 || peaks[0] < troughs[0] {
		bracket = append(bracket, 0)
	}
	bracket = append(bracket, troughs...)
	if peaks[len(peaks)-1] > bracket[len(bracket)-1] {
		bracket = append(bracket, len(data)-1)
	}
	if len(bracket) < len(peaks)+1 {
		return nil, nil, fmt.Errorf("%d troughs cannot bracket %d peaks: %w",
			len(troughs), len(peaks), common.ErrLengthMismatch)
	}
	return baseFn, bracket, nil
}

// risingCrossTime finds the interpolated time where the data first
// exceeds height on the rising flank within [left, right), falling back
// to the first timestamp when the flank starts at the data boundary.
func risingCrossTime(time, data []float64, left, right int, height float64) float64 {
	inx := left
	for i := left; i < right; i++ {
		if data[i] > height {
			inx = i
			break
		}
	}
	if inx > 0 {
		return common.InterpAt(height, data[inx-1], data[inx], time[inx-1], time[inx])
	}
	return time[0]
}

// fallingCrossTime finds the interpolated time where the data last
// exceeds height on the falling flank within (left, right], falling
// back to the last timestamp when the flank ends at the data boundary.
func fallingCrossTime(time, data []float64, left, right int, height float64) float64 {
	inx := right
	for i := right; i > left; i-- {
		if data[i] > height {
			inx = i
			break
		}
	}
	if inx+1 < len(data) {
		return common.InterpAt(height, data[inx+1], data[inx], time[inx+1], time[inx])
	}
	return time[len(time)-1]
}
