// Package events post-processes paired onset/offset sequences produced
// by the detectors: peaks and troughs, or up and down threshold
// crossings. All operations are pure functions over the sequences and
// are generic over the coordinate type, so the same algebra serves
// sample indices and interpolated times.
package events

import (
	"math"
)

// Number constrains event coordinates: sample indices or times.
type Number interface {
	~int | ~int32 | ~int64 | ~float32 | ~float64
}

// Trim truncates both sequences to their common length. No ordering
// between onsets and offsets is assumed.
func Trim[T Number](onsets, offsets []T) ([]T, []T) {
	n := min(len(onsets), len(offsets))
	return onsets[:n], offsets[:n]
}

// TrimToOnset drops a leading offset that precedes the first onset and
// truncates both sequences to their common length, so that the first
// remaining pair begins with an onset.
func TrimToOnset[T Number](onsets, offsets []T) ([]T, []T) {
	tidx := 0
	if len(onsets) > 0 && len(offsets) > 0 && offsets[0] < onsets[0] {
		tidx = 1
	}
	n := min(len(onsets), len(offsets)-tidx)
	if n < 0 {
		n = 0
	}
	return onsets[:n], offsets[tidx : tidx+n]
}

// TrimClosest truncates both sequences to a common length such that the
// mean signed onset minus offset distance over the pairing is smallest.
// It considers keeping the alignment as is, dropping the first onset,
// or dropping the first offset, and only shifts the alignment when that
// strictly improves the distance.
func TrimClosest[T Number](onsets, offsets []T) ([]T, []T) {
	nn := min(len(onsets), len(offsets))
	if nn == 0 {
		return []T{}, []T{}
	}

	pidx, tidx := 0, 0
	dist := meanDistance(onsets[:nn], offsets[:nn])
	if onsets[0] < offsets[0] {
		nnp := min(len(onsets)-1, len(offsets))
		if nnp > 1 {
			if distp := meanDistance(onsets[1:nnp], offsets[:nnp-1]); distp < dist {
				pidx, nn = 1, nnp
			}
		}
	} else {
		nnt := min(len(onsets), len(offsets)-1)
		if nnt > 1 {
			if distt := meanDistance(onsets[:nnt-1], offsets[1:nnt]); distt < dist {
				tidx, nn = 1, nnt
			}
		}
	}

	return onsets[pidx : pidx+nn], offsets[tidx : tidx+nn]
}

// meanDistance is the absolute mean of the pairwise a-b differences.
func meanDistance[T Number](a, b []T) float64 {
	sum := 0.0
	for i := range a {
		sum += float64(a[i]) - float64(b[i])
	}
	return math.Abs(sum / float64(len(a)))
}

// Merge merges events that are closer together than minDistance: when
// the onset of an event is separated from the offset of the previous
// event by minDistance or less, the two become one event spanning from
// the earlier onset to the later offset. The sequences are aligned with
// TrimToOnset first. Merging looks at each consecutive gap once, so the
// result never holds an internal gap of minDistance or less and a
// second application is a no-op.
func Merge[T Number](onsets, offsets []T, minDistance T) ([]T, []T) {
	onsets, offsets = TrimToOnset(onsets, offsets)
	if len(onsets) == 0 || len(offsets) == 0 {
		return []T{}, []T{}
	}

	// mask over the gaps between consecutive events
	mergedOnsets := []T{onsets[0]}
	mergedOffsets := []T{}
	for i := 0; i+1 < len(onsets); i++ {
		if onsets[i+1]-offsets[i] > minDistance {
			mergedOffsets = append(mergedOffsets, offsets[i])
			mergedOnsets = append(mergedOnsets, onsets[i+1])
		}
	}
	mergedOffsets = append(mergedOffsets, offsets[len(offsets)-1])
	return mergedOnsets, mergedOffsets
}

// Remove drops events that are too short or too long: only pairs with
// minDuration < offset-onset < maxDuration survive. A zero bound
// disables the corresponding test. The sequences are aligned with
// TrimToOnset first.
func Remove[T Number](onsets, offsets []T, minDuration, maxDuration T) ([]T, []T) {
	onsets, offsets = TrimToOnset(onsets, offsets)
	if len(onsets) == 0 || len(offsets) == 0 {
		return []T{}, []T{}
	}

	var zero T
	checkMin := minDuration > zero
	checkMax := maxDuration > zero
	if !checkMin && !checkMax {
		return onsets, offsets
	}

	keptOnsets := []T{}
	keptOffsets := []T{}
	for i := range onsets {
		duration := offsets[i] - onsets[i]
		if checkMin && duration <= minDuration {
			continue
		}
		if checkMax && duration >= maxDuration {
			continue
		}
		keptOnsets = append(keptOnsets, onsets[i])
		keptOffsets = append(keptOffsets, offsets[i])
	}
	return keptOnsets, keptOffsets
}

// Widen enlarges events on both sides without overlap: each onset moves
// earlier and each offset later by duration, clamped to [0, maxTime].
// When two consecutive events are separated by less than twice the
// duration, the offset of the first and the onset of the second
// collapse onto the midpoint of the gap instead of overlapping.
func Widen[T Number](onsets, offsets []T, maxTime, duration T) ([]T, []T) {
	newOnsets := []T{}
	newOffsets := []T{}

	if len(onsets) > 0 {
		var first T
		if onsets[0] >= duration {
			first = onsets[0] - duration
		}
		newOnsets = append(newOnsets, first)
	}

	n := min(len(offsets), len(onsets)) - 1
	for i := 0; i < n; i++ {
		off, on := offsets[i], onsets[i+1]
		if on-off < 2*duration {
			mid := (on + off) / 2
			newOffsets = append(newOffsets, mid)
			newOnsets = append(newOnsets, mid)
		} else {
			newOffsets = append(newOffsets, off+duration)
			newOnsets = append(newOnsets, on-duration)
		}
	}

	if len(offsets) > 0 {
		last := offsets[len(offsets)-1] + duration
		if last >= maxTime {
			last = maxTime
		}
		newOffsets = append(newOffsets, last)
	}
	return newOnsets, newOffsets
}
