package events

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrim(t *testing.T) {
	onsets, offsets := Trim([]int{1, 2, 3}, []int{4, 5})
	assert.Equal(t, []int{1, 2}, onsets)
	assert.Equal(t, []int{4, 5}, offsets)

	onsets, offsets = Trim([]int{}, []int{1})
	assert.Empty(t, onsets)
	assert.Empty(t, offsets)
}

func TestTrimToOnset(t *testing.T) {
	t.Run("leading offset dropped", func(t *testing.T) {
		onsets, offsets := TrimToOnset([]int{5, 15}, []int{2, 10, 20})
		assert.Equal(t, []int{5, 15}, onsets)
		assert.Equal(t, []int{10, 20}, offsets)
	})

	t.Run("already aligned", func(t *testing.T) {
		onsets, offsets := TrimToOnset([]int{1, 2, 3}, []int{2})
		assert.Equal(t, []int{1}, onsets)
		assert.Equal(t, []int{2}, offsets)
	})

	t.Run("single leading offset", func(t *testing.T) {
		onsets, offsets := TrimToOnset([]int{5}, []int{2})
		assert.Empty(t, onsets)
		assert.Empty(t, offsets)
	})

	t.Run("empty", func(t *testing.T) {
		onsets, offsets := TrimToOnset([]int{}, []int{})
		assert.Empty(t, onsets)
		assert.Empty(t, offsets)
	})
}

func TestTrimClosest(t *testing.T) {
	t.Run("shift improves alignment", func(t *testing.T) {
		onsets, offsets := TrimClosest([]int{0, 10, 20, 30}, []int{9, 19, 29, 39})
		assert.Equal(t, []int{10, 20, 30}, onsets)
		assert.Equal(t, []int{9, 19, 29}, offsets)
	})

	t.Run("shift improves alignment the other way", func(t *testing.T) {
		onsets, offsets := TrimClosest([]int{9, 19, 29}, []int{0, 10, 20, 30})
		assert.Equal(t, []int{9, 19, 29}, onsets)
		assert.Equal(t, []int{10, 20, 30}, offsets)
	})

	t.Run("equal distance keeps alignment", func(t *testing.T) {
		onsets, offsets := TrimClosest([]int{0, 4, 8, 12}, []int{2, 6, 10, 14})
		assert.Equal(t, []int{0, 4, 8, 12}, onsets)
		assert.Equal(t, []int{2, 6, 10, 14}, offsets)
	})

	t.Run("empty", func(t *testing.T) {
		onsets, offsets := TrimClosest([]int{}, []int{1, 2})
		assert.Empty(t, onsets)
		assert.Empty(t, offsets)
	})
}

func TestMerge(t *testing.T) {
	onsets, offsets := Merge([]int{10, 50, 200}, []int{20, 60, 210}, 40)
	assert.Equal(t, []int{10, 200}, onsets)
	assert.Equal(t, []int{60, 210}, offsets)

	// merging again changes nothing
	onsets2, offsets2 := Merge(onsets, offsets, 40)
	assert.Equal(t, onsets, onsets2)
	assert.Equal(t, offsets, offsets2)
}

func TestMerge_Times(t *testing.T) {
	onsets, offsets := Merge([]float64{0.1, 0.5, 2.0}, []float64{0.2, 0.6, 2.1}, 0.4)
	assert.Equal(t, []float64{0.1, 2.0}, onsets)
	assert.Equal(t, []float64{0.6, 2.1}, offsets)
}

func TestMerge_LeadingOffset(t *testing.T) {
	onsets, offsets := Merge([]int{10, 50}, []int{5, 20, 60}, 10)
	assert.Equal(t, []int{10, 50}, onsets)
	assert.Equal(t, []int{20, 60}, offsets)
}

func TestRemove(t *testing.T) {
	onsets := []int{0, 10, 20, 30}
	offsets := []int{5, 12, 29, 31}

	t.Run("both bounds", func(t *testing.T) {
		on, off := Remove(onsets, offsets, 1, 8)
		assert.Equal(t, []int{0, 10}, on)
		assert.Equal(t, []int{5, 12}, off)
	})

	t.Run("min only", func(t *testing.T) {
		on, off := Remove(onsets, offsets, 2, 0)
		assert.Equal(t, []int{0, 20}, on)
		assert.Equal(t, []int{5, 29}, off)
	})

	t.Run("zero bounds disable filtering", func(t *testing.T) {
		on, off := Remove(onsets, offsets, 0, 0)
		assert.Equal(t, onsets, on)
		assert.Equal(t, offsets, off)
	})
}

func TestWiden(t *testing.T) {
	t.Run("narrow gap collapses onto midpoint", func(t *testing.T) {
		onsets, offsets := Widen([]int{10, 30}, []int{20, 40}, 100, 6)
		assert.Equal(t, []int{4, 25}, onsets)
		assert.Equal(t, []int{25, 46}, offsets)
	})

	t.Run("wide gap widens both sides", func(t *testing.T) {
		onsets, offsets := Widen([]int{10, 50}, []int{20, 60}, 100, 5)
		assert.Equal(t, []int{5, 45}, onsets)
		assert.Equal(t, []int{25, 65}, offsets)
	})

	t.Run("clamped to data extent", func(t *testing.T) {
		onsets, offsets := Widen([]int{3, 90}, []int{10, 98}, 100, 6)
		assert.Equal(t, []int{0, 84}, onsets)
		assert.Equal(t, []int{16, 100}, offsets)
	})

	t.Run("odd midpoint rounds down", func(t *testing.T) {
		onsets, offsets := Widen([]int{10, 31}, []int{20, 40}, 100, 6)
		assert.Equal(t, []int{4, 25}, onsets)
		assert.Equal(t, []int{25, 46}, offsets)
	})

	t.Run("zero duration is the identity", func(t *testing.T) {
		onsets, offsets := Widen([]int{10, 50, 200}, []int{20, 60, 210}, 1000, 0)
		assert.Equal(t, []int{10, 50, 200}, onsets)
		assert.Equal(t, []int{20, 60, 210}, offsets)
	})

	t.Run("zero duration is the identity for times", func(t *testing.T) {
		onsets, offsets := Widen([]float64{0.1, 0.5}, []float64{0.2, 0.6}, 10.0, 0.0)
		assert.Equal(t, []float64{0.1, 0.5}, onsets)
		assert.Equal(t, []float64{0.2, 0.6}, offsets)
	})

	t.Run("times", func(t *testing.T) {
		onsets, offsets := Widen([]float64{1.0, 3.0}, []float64{2.0, 4.0}, 10.0, 0.4)
		assert.InDeltaSlice(t, []float64{0.6, 2.6}, onsets, 1e-9)
		assert.InDeltaSlice(t, []float64{2.4, 4.4}, offsets, 1e-9)
	})
}
