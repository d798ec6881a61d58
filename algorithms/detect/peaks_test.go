package detect

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/weygoldt/thunderfish/algorithms/common"
)

// sine returns n samples of sin(2*pi*freq*i/rate) scaled by amp.
func sine(n int, freq, rate, amp float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		data[i] = amp * math.Sin(2*math.Pi*freq*float64(i)/rate)
	}
	return data
}

// trianglePulse returns n zeros with a triangular pulse of the given
// height rising over halfWidth samples on either side of center.
func trianglePulse(n, center, halfWidth int, height float64) []float64 {
	data := make([]float64, n)
	for i := center - halfWidth; i <= center+halfWidth; i++ {
		if i < 0 || i >= n {
			continue
		}
		d := math.Abs(float64(i - center))
		data[i] = height * (1 - d/float64(halfWidth))
	}
	return data
}

func TestPeaks_Sine(t *testing.T) {
	data := sine(1000, 10.0, 1000.0, 1.0)

	peaks, troughs, err := Peaks(data, 0.5)
	require.NoError(t, err)

	require.Len(t, peaks, 10)
	require.Len(t, troughs, 10)
	for i, p := range peaks {
		assert.InDelta(t, 25+100*i, p, 1, "peak %d", i)
	}
	for i, tr := range troughs {
		assert.InDelta(t, 75+100*i, tr, 1, "trough %d", i)
	}
	// peaks and troughs alternate
	for i := range peaks {
		assert.Less(t, peaks[i], troughs[i])
	}
}

func TestPeaks_SinglePulse(t *testing.T) {
	data := trianglePulse(1000, 500, 40, 10.0)

	peaks, troughs, err := Peaks(data, 5.0)
	require.NoError(t, err)

	assert.Equal(t, []int{500}, peaks)
	// the trailing zeros never rise back above the minimum
	assert.Empty(t, troughs)
}

func TestPeaks_SubThresholdSignal(t *testing.T) {
	data := sine(1000, 10.0, 1000.0, 0.4)

	// peak-to-trough excursion is 0.8, below the threshold
	peaks, troughs, err := Peaks(data, 1.0)
	require.NoError(t, err)
	assert.Empty(t, peaks)
	assert.Empty(t, troughs)
}

func TestPeaks_EmptyData(t *testing.T) {
	peaks, troughs, err := Peaks(nil, 1.0)
	require.NoError(t, err)
	assert.NotNil(t, peaks)
	assert.NotNil(t, troughs)
	assert.Empty(t, peaks)
	assert.Empty(t, troughs)
}

func TestPeaks_InvalidThreshold(t *testing.T) {
	_, _, err := Peaks([]float64{0, 1, 0}, 0)
	require.Error(t, err)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)

	_, _, err = Peaks([]float64{0, 1, 0}, -1)
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}

func TestPeaksVarying_MatchesFixedThreshold(t *testing.T) {
	data := sine(1000, 10.0, 1000.0, 1.0)
	thresh := make([]float64, len(data))
	for i := range thresh {
		thresh[i] = 0.5
	}

	vp, vt, err := PeaksVarying(data, thresh)
	require.NoError(t, err)
	fp, ft, err := Peaks(data, 0.5)
	require.NoError(t, err)

	assert.Equal(t, fp, vp)
	assert.Equal(t, ft, vt)
}

func TestPeaksVarying_SuppressesWhereRaised(t *testing.T) {
	data := sine(2000, 10.0, 1000.0, 1.0)
	thresh := make([]float64, len(data))
	for i := range thresh {
		thresh[i] = 0.5
		if i >= 1000 {
			thresh[i] = 3.0 // beyond the full excursion
		}
	}

	peaks, _, err := PeaksVarying(data, thresh)
	require.NoError(t, err)
	require.NotEmpty(t, peaks)
	assert.Less(t, peaks[len(peaks)-1], 1000)
}

func TestPeaksVarying_Errors(t *testing.T) {
	data := []float64{0, 1, 0}

	_, _, err := PeaksVarying(data, []float64{1, 1})
	assert.ErrorIs(t, err, common.ErrLengthMismatch)

	_, _, err = PeaksVarying(data, []float64{1, 0, 1})
	assert.ErrorIs(t, err, common.ErrInvalidArgument)
}
