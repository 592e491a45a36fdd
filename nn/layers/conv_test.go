package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvnet/ctensor"
)

func TestConv2D_Identity1x1(t *testing.T) {
	conv, err := NewComplexConv2D("conv", 1, 1, 1, 1, 1, PaddingValid, false)
	require.NoError(t, err)
	conv.W.Data[0] = 1

	x := ctensor.New(1, 2, 2)
	x.Data = []complex128{1 + 1i, 2, 3i, -4}
	y, err := conv.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 2}, y.Shape)
	assert.Equal(t, x.Data, y.Data)
}

func TestConv2D_OutputShape(t *testing.T) {
	conv, err := NewComplexConv2D("conv", 3, 8, 3, 3, 2, PaddingValid, false)
	require.NoError(t, err)

	shape, err := conv.OutputShape([]int{3, 9, 9})
	require.NoError(t, err)
	assert.Equal(t, []int{8, 4, 4}, shape)

	shape, err = conv.OutputShape([]int{2, 3, 9, 9})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 8, 4, 4}, shape)

	_, err = conv.OutputShape([]int{4, 9, 9})
	assert.Error(t, err)
	_, err = conv.OutputShape([]int{3, 2, 2})
	assert.Error(t, err)
}

func TestConv2D_SamePadding(t *testing.T) {
	conv, err := NewComplexConv2D("conv", 1, 1, 3, 3, 1, PaddingSame, false)
	require.NoError(t, err)
	// sum-pooling kernel
	for i := range conv.W.Data {
		conv.W.Data[i] = 1
	}

	x := ctensor.New(1, 3, 3)
	for i := range x.Data {
		x.Data[i] = 1
	}
	y, err := conv.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 3, 3}, y.Shape)
	// corner sees a 2x2 window, center the full 3x3
	assert.Equal(t, complex128(4), y.At(0, 0, 0))
	assert.Equal(t, complex128(9), y.At(0, 1, 1))
}

func TestConv2D_Bias(t *testing.T) {
	conv, err := NewComplexConv2D("conv", 1, 1, 1, 1, 1, PaddingValid, true)
	require.NoError(t, err)
	conv.W.Data[0] = 0
	conv.B.Data[0] = 2 - 1i

	x := ctensor.New(1, 1, 1)
	x.Data[0] = 5
	y, err := conv.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, complex(2, -1), y.Data[0])

	assert.Len(t, conv.Params(), 2)
}

func TestConv2D_InvalidParams(t *testing.T) {
	_, err := NewComplexConv2D("conv", 0, 1, 3, 3, 1, PaddingValid, false)
	assert.Error(t, err)
	_, err = NewComplexConv2D("conv", 1, 1, 3, 3, 1, Padding("reflect"), false)
	assert.Error(t, err)
}

func TestConv3D_Identity1x1(t *testing.T) {
	conv, err := NewComplexConv3D("conv", 1, 1, 1, 1, PaddingValid, false)
	require.NoError(t, err)
	conv.W.Data[0] = 1

	x := ctensor.New(1, 2, 2, 2)
	for i := range x.Data {
		x.Data[i] = complex(float64(i), -float64(i))
	}
	y, err := conv.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 2, 2}, y.Shape)
	assert.Equal(t, x.Data, y.Data)
}

func TestConv3D_OutputShape(t *testing.T) {
	conv, err := NewComplexConv3D("conv", 2, 4, 3, 2, PaddingSame, false)
	require.NoError(t, err)
	shape, err := conv.OutputShape([]int{2, 8, 8, 8})
	require.NoError(t, err)
	assert.Equal(t, []int{4, 4, 4, 4}, shape)

	_, err = conv.OutputShape([]int{3, 8, 8, 8})
	assert.Error(t, err)
}
