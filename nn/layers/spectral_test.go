package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvnet/ctensor"
)

func TestSpectralPool2D_OutputShape(t *testing.T) {
	pool, err := NewSpectralPool2D("pool", [2]float64{0.25, 0.25})
	require.NoError(t, err)

	shape, err := pool.OutputShape([]int{3, 8, 8})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 2, 2}, shape)

	// never collapses below one element per dimension
	shape, err = pool.OutputShape([]int{3, 2, 2})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 1, 1}, shape)
}

func TestSpectralPool2D_ConstantSignal(t *testing.T) {
	// A constant signal lives entirely in the DC bin; cropping the spectrum
	// must pass it through unchanged.
	pool, err := NewSpectralPool2D("pool", [2]float64{0.5, 0.5})
	require.NoError(t, err)

	x := ctensor.New(1, 4, 4)
	for i := range x.Data {
		x.Data[i] = 2 + 1i
	}
	y, err := pool.Forward(x)
	require.NoError(t, err)
	require.Equal(t, []int{1, 2, 2}, y.Shape)
	for _, v := range y.Data {
		assert.InDelta(t, 2, real(v), 1e-9)
		assert.InDelta(t, 1, imag(v), 1e-9)
	}
}

func TestSpectralPool2D_InvalidGamma(t *testing.T) {
	_, err := NewSpectralPool2D("pool", [2]float64{0, 0.5})
	assert.Error(t, err)
	_, err = NewSpectralPool2D("pool", [2]float64{0.5, 1.5})
	assert.Error(t, err)
}

func TestLowFreqIndices(t *testing.T) {
	// 3 lowest frequencies of an 8-point spectrum: DC, +1, -1.
	assert.Equal(t, []int{0, 1, 7}, lowFreqIndices(8, 3))
	assert.Equal(t, []int{0, 1, 6, 7}, lowFreqIndices(8, 4))
}
