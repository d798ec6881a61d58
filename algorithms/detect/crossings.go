package detect

import (
	"fmt"

	"github.com/weygoldt/thunderfish/algorithms/common"
)

// Crossings detects where the data crosses a threshold with positive
// and negative slope. An up crossing is reported at index i when
// data[i] does not exceed the threshold but data[i+1] does; a down
// crossing is the mirror condition. The detector is stateless, a pure
// comparison of consecutive samples.
func Crossings(data []float64, threshold float64) (up, down []int) {
	up = []int{}
	down = []int{}
	for i := 0; i+1 < len(data); i++ {
		if data[i+1] > threshold && data[i] <= threshold {
			up = append(up, i)
		} else if data[i+1] <= threshold && data[i] > threshold {
			down = append(down, i)
		}
	}
	return up, down
}

// CrossingsVarying detects crossings of a per-sample threshold line.
func CrossingsVarying(data, threshold []float64) (up, down []int, err error) {
	if len(data) != len(threshold) {
		return nil, nil, fmt.Errorf("data and threshold lengths differ (%d != %d): %w",
			len(data), len(threshold), common.ErrLengthMismatch)
	}
	up = []int{}
	down = []int{}
	for i := 0; i+1 < len(data); i++ {
		if data[i+1] > threshold[i+1] && data[i] <= threshold[i] {
			up = append(up, i)
		} else if data[i+1] <= threshold[i+1] && data[i] > threshold[i] {
			down = append(down, i)
		}
	}
	return up, down, nil
}

// CrossingTimes converts the integer crossing indices reported by
// Crossings into sub-sample crossing times by linear interpolation
// between the two samples bracketing each crossing.
func CrossingTimes(time, data []float64, threshold float64, up, down []int) (upTimes, downTimes []float64, err error) {
	if len(time) != len(data) {
		return nil, nil, fmt.Errorf("time and data lengths differ (%d != %d): %w",
			len(time), len(data), common.ErrLengthMismatch)
	}
	upTimes = make([]float64, len(up))
	for k, inx := range up {
		// rising flank: data increases across the crossing
		upTimes[k] = common.InterpAt(threshold,
			data[inx], data[inx+1], time[inx], time[inx+1])
	}
	downTimes = make([]float64, len(down))
	for k, inx := range down {
		// falling flank: interpolate on the negated data
		downTimes[k] = common.InterpAt(-threshold,
			-data[inx], -data[inx+1], time[inx], time[inx+1])
	}
	return upTimes, downTimes, nil
}

// CrossingTimesVarying is CrossingTimes for a per-sample threshold
// line: each crossing time is where the data segment intersects the
// threshold segment between the two bracketing samples.
func CrossingTimesVarying(time, data, threshold []float64, up, down []int) (upTimes, downTimes []float64, err error) {
	if len(time) != len(data) {
		return nil, nil, fmt.Errorf("time and data lengths differ (%d != %d): %w",
			len(time), len(data), common.ErrLengthMismatch)
	}
	if len(threshold) != len(data) {
		return nil, nil, fmt.Errorf("data and threshold lengths differ (%d != %d): %w",
			len(data), len(threshold), common.ErrLengthMismatch)
	}
	cross := func(inx int) float64 {
		f0 := data[inx] - threshold[inx]
		f1 := data[inx+1] - threshold[inx+1]
		if f1 == f0 {
			return time[inx]
		}
		frac := common.Clamp(-f0/(f1-f0), 0, 1)
		return time[inx] + frac*(time[inx+1]-time[inx])
	}
	upTimes = make([]float64, len(up))
	for k, inx := range up {
		upTimes[k] = cross(inx)
	}
	downTimes = make([]float64, len(down))
	for k, inx := range down {
		downTimes[k] = cross(inx)
	}
	return upTimes, downTimes, nil
}
