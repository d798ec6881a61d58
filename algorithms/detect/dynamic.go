package detect

import (
	"fmt"

	"github.com/weygoldt/thunderfish/algorithms/common"
)

// CheckContext carries the scan state handed to a CheckFunc when the
// dynamic detector finds a candidate peak or trough.
type CheckContext struct {
	Time       []float64 // time of each sample, nil when scanning by index
	Data       []float64 // the full data array
	EventIndex int       // index of the candidate peak or trough
	ScanIndex  int       // current scan position
	PrevIndex  int       // index of the preceding opposite extremum
	Threshold  float64   // current threshold value
	MinThresh  float64   // floor of the decaying threshold
	Tau        float64   // decay time constant
}

// CheckResult is what a CheckFunc reports back about a candidate event.
// Accept commits Value to the result list; a rejected candidate is
// skipped. SetThreshold replaces the detector's threshold with
// NewThreshold, which is clamped to stay at or above the minimum
// threshold.
type CheckResult struct {
	Value        float64
	Accept       bool
	NewThreshold float64
	SetThreshold bool
}

// CheckFunc evaluates a candidate event found by DynamicPeaks. It must
// not retain ctx, which is only valid for the duration of the call.
type CheckFunc func(ctx *CheckContext) CheckResult

// DynamicPeaks detects peaks and troughs with a relative threshold that
// decays exponentially towards minThresh with time constant tau, one
// first-order relaxation step per sample:
//
//	threshold += (minThresh - threshold) / tau
//
// or, with an explicit time array, scaled by the forward time step
// dt/tau (the last sample reuses the preceding interval). Use checkPeak
// and checkTrough to accept, reject, or re-threshold candidates; see
// PeakSizeCheck for a ready-made policy.
//
// The scan itself is the same alternating extremum pass as Peaks. tau
// is given in sample indices when time is nil, in time units otherwise.
//
// Without check functions the committed value is the event index (or
// its time). With check functions the committed values are whatever
// they return. A rejected candidate is not committed, but the scan
// still reverses direction at the triggering sample.
func DynamicPeaks(data []float64, threshold, minThresh, tau float64, time []float64,
	checkPeak, checkTrough CheckFunc) (peaks, troughs []float64, err error) {

	if threshold <= 0 {
		return nil, nil, fmt.Errorf("threshold must be positive, got %g: %w",
			threshold, common.ErrInvalidArgument)
	}
	if minThresh <= 0 {
		return nil, nil, fmt.Errorf("minimum threshold must be positive, got %g: %w",
			minThresh, common.ErrInvalidArgument)
	}
	if tau <= 0 {
		return nil, nil, fmt.Errorf("tau must be positive, got %g: %w",
			tau, common.ErrInvalidArgument)
	}
	if time != nil && len(data) != len(time) {
		return nil, nil, fmt.Errorf("data and time lengths differ (%d != %d): %w",
			len(data), len(time), common.ErrLengthMismatch)
	}

	peaks = []float64{}
	troughs = []float64{}
	if len(data) < 2 {
		return peaks, troughs, nil
	}

	// commit runs the check function (or the default index/time commit)
	// and applies a replacement threshold, clamped to minThresh.
	commit := func(check CheckFunc, eventInx, prevInx, index int, list *[]float64) {
		if check == nil {
			if time == nil {
				*list = append(*list, float64(eventInx))
			} else {
				*list = append(*list, time[eventInx])
			}
			return
		}
		res := check(&CheckContext{
			Time:       time,
			Data:       data,
			EventIndex: eventInx,
			ScanIndex:  index,
			PrevIndex:  prevInx,
			Threshold:  threshold,
			MinThresh:  minThresh,
			Tau:        tau,
		})
		if res.Accept {
			*list = append(*list, res.Value)
		}
		if res.SetThreshold {
			threshold = res.NewThreshold
			if threshold < minThresh {
				threshold = minThresh
			}
		}
	}

	direction := 0
	minInx, maxInx := 0, 0
	minValue := data[0]
	maxValue := minValue

	for index, value := range data {
		// decaying threshold, a first order low pass filter
		if time == nil {
			threshold += (minThresh - threshold) / tau
		} else {
			idx := index
			if idx+1 >= len(data) {
				idx = len(data) - 2
			}
			threshold += (minThresh - threshold) * (time[idx+1] - time[idx]) / tau
		}

		switch {
		// rising?
		case direction > 0:
			if value > maxValue {
				maxInx, maxValue = index, value
			} else if maxValue >= value+threshold {
				// the maximum is a peak
				commit(checkPeak, maxInx, minInx, index, &peaks)
				minInx, minValue = index, value
				direction = -1
			}

		// falling?
		case direction < 0:
			if value < minValue {
				minInx, minValue = index, value
			} else if value >= minValue+threshold {
				// the minimum is a trough
				commit(checkTrough, minInx, maxInx, index, &troughs)
				maxInx, maxValue = index, value
				direction = +1
			}

		// direction not known yet: track both extrema
		default:
			if maxValue >= value+threshold {
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

	return peaks, troughs, nil
}

// PeakSizeCheck returns a CheckFunc that accepts every candidate with
// its index (or time) as the value and adapts the detection threshold
// to the size of the events: the threshold relaxes towards amplFac
// times the event size with smoothing weight:
//
//	threshold += weight * (amplFac*size - threshold)
//
// where size is the candidate's value minus the value at the preceding
// opposite extremum. Pass it as both check functions of DynamicPeaks to
// track slowly changing event amplitudes.
func PeakSizeCheck(amplFac, weight float64) CheckFunc {
	return func(ctx *CheckContext) CheckResult {
		size := ctx.Data[ctx.EventIndex] - ctx.Data[ctx.PrevIndex]
		value := float64(ctx.EventIndex)
		if ctx.Time != nil {
			value = ctx.Time[ctx.EventIndex]
		}
		return CheckResult{
			Value:        value,
			Accept:       true,
			NewThreshold: ctx.Threshold + weight*(amplFac*size-ctx.Threshold),
			SetThreshold: true,
		}
	}
}
