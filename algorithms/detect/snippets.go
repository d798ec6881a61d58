package detect

import (
	"fmt"

	"github.com/weygoldt/thunderfish/algorithms/common"
)

// Snippets cuts out a window of the data around each of the given
// indices, spanning [index+start, index+stop). Indices too close to
// either end of the data to yield a full window are silently discarded,
// so the result may hold fewer snippets than indices. Each snippet is a
// fresh copy; the data is never aliased.
func Snippets(data []float64, indices []int, start, stop int) ([][]float64, error) {
	if stop <= start {
		return nil, fmt.Errorf("snippet extent [%d, %d) is empty: %w",
			start, stop, common.ErrInvalidArgument)
	}
	snippets := make([][]float64, 0, len(indices))
	for _, idx := range indices {
		if idx < -start || idx >= len(data)-stop {
			continue
		}
		snippet := make([]float64, stop-start)
		copy(snippet, data[idx+start:idx+stop])
		snippets = append(snippets, snippet)
	}
	return snippets, nil
}
