package detect

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weygoldt/thunderfish/algorithms/common"
)

func TestSnippets(t *testing.T) {
	data := make([]float64, 100)
	for i := range data {
		data[i] = float64(i)
	}

	snips, err := Snippets(data, []int{5, 0, 95, 98}, -2, 3)
	require.NoError(t, err)

	// indices 0 and 98 are too close to the edges for a full window
	require.Len(t, snips, 2)
	assert.Equal(t, []float64{3, 4, 5, 6, 7}, snips[0])
	assert.Equal(t, []float64{93, 94, 95, 96, 97}, snips[1])
}

func TestSnippets_CopiesData(t *testing.T) {
	data := []float64{0, 1, 2, 3, 4}

	snips, err := Snippets(data, []int{2}, -1, 2)
	require.NoError(t, err)
	require.Len(t, snips, 1)

	snips[0][0] = 99
	assert.Equal(t, 1.0, data[1])
}

func TestSnippets_NoIndices(t *testing.T) {
	snips, err := Snippets([]float64{1, 2, 3}, nil, -1, 1)
	require.NoError(t, err)
	assert.NotNil(t, snips)
	assert.Empty(t, snips)
}

func TestSnippets_EmptyExtent(t *testing.T) {
	_, err := Snippets([]float64{1, 2, 3}, []int{1}, 2, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, err = Snippets([]float64{1, 2, 3}, []int{1}, 2, -2)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}
