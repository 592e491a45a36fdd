package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvnet/ctensor"
)

func TestZeroPadding2D(t *testing.T) {
	pad := NewZeroPadding2D("pad", 1)

	shape, err := pad.OutputShape([]int{3, 4, 4})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 6, 6}, shape)

	x := ctensor.New(1, 2, 2)
	x.Data = []complex128{1, 2, 3 + 1i, 4}
	y, err := pad.Forward(x)
	require.NoError(t, err)
	require.Equal(t, []int{1, 4, 4}, y.Shape)
	assert.Equal(t, complex128(0), y.At(0, 0, 0))
	assert.Equal(t, complex128(1), y.At(0, 1, 1))
	assert.Equal(t, complex(3, 1), y.At(0, 2, 1))
	assert.Equal(t, complex128(4), y.At(0, 2, 2))
	assert.Equal(t, complex128(0), y.At(0, 3, 3))
}

func TestZeroPadding2D_BadRank(t *testing.T) {
	pad := NewZeroPadding2D("pad", 1)
	_, err := pad.OutputShape([]int{4, 4})
	assert.Error(t, err)
}

func TestZeroPadding3D(t *testing.T) {
	pad := NewZeroPadding3D("pad", 1)

	shape, err := pad.OutputShape([]int{2, 3, 3, 3})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 5, 5, 5}, shape)

	x := ctensor.New(1, 1, 1, 1)
	x.Data[0] = 7 - 2i
	y, err := pad.Forward(x)
	require.NoError(t, err)
	require.Equal(t, []int{1, 3, 3, 3}, y.Shape)
	assert.Equal(t, complex(7, -2), y.At(0, 1, 1, 1))
	assert.Equal(t, complex128(0), y.At(0, 0, 1, 1))
	assert.Equal(t, complex128(0), y.At(0, 1, 0, 1))
	assert.Equal(t, complex128(0), y.At(0, 1, 1, 0))
}

func TestSamePadHalvesDimension(t *testing.T) {
	assert.Equal(t, 4, convOutDim(8, 3, 2, PaddingSame))
	assert.Equal(t, 3, convOutDim(8, 3, 2, PaddingValid))
	assert.Equal(t, 8, convOutDim(8, 3, 1, PaddingSame))
	assert.Equal(t, 1, samePad(8, 3, 1))
}
