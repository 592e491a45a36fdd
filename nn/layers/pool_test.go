package layers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvnet/ctensor"
)

func TestMaxPool2D_ByModulus(t *testing.T) {
	pool, err := NewComplexMaxPool2D("pool", 2, 2, PaddingValid)
	require.NoError(t, err)

	x := ctensor.New(1, 2, 2)
	x.Data = []complex128{1, -3, 2i, 0.5}
	y, err := pool.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1}, y.Shape)
	// -3 has the largest modulus, sign preserved
	assert.Equal(t, complex128(-3), y.Data[0])
}

func TestAvgPool2D_ComplexMean(t *testing.T) {
	pool, err := NewComplexAvgPool2D("pool", 2, 2, PaddingValid)
	require.NoError(t, err)

	x := ctensor.New(1, 2, 2)
	x.Data = []complex128{1 + 1i, 3 - 1i, 2, 2}
	y, err := pool.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, complex128(2), y.Data[0])
}

func TestPool2D_SamePaddingPartialWindows(t *testing.T) {
	pool, err := NewComplexAvgPool2D("pool", 2, 2, PaddingSame)
	require.NoError(t, err)

	x := ctensor.New(1, 3, 3)
	for i := range x.Data {
		x.Data[i] = complex(float64(i), 0)
	}
	y, err := pool.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 2, 2}, y.Shape)
	// bottom-right window covers only element 8
	assert.Equal(t, complex128(8), y.At(0, 1, 1))
	// top-left window is the full 2x2: (0+1+3+4)/4
	assert.Equal(t, complex128(2), y.At(0, 0, 0))
}

func TestPool2D_Validation(t *testing.T) {
	_, err := NewComplexMaxPool2D("pool", 0, 2, PaddingValid)
	assert.Error(t, err)
	_, err = NewComplexMaxPool2D("pool", 2, 2, Padding("reflect"))
	assert.Error(t, err)

	pool, err := NewComplexMaxPool2D("pool", 2, 2, PaddingValid)
	require.NoError(t, err)
	_, err = pool.OutputShape([]int{1, 1, 1})
	assert.Error(t, err)
}

func TestGlobalAvgPool(t *testing.T) {
	pool := NewGlobalAvgPool("pool")

	x := ctensor.New(2, 2, 2)
	x.Data = []complex128{1, 2, 3, 4, 1i, 2i, 3i, 4i}
	y, err := pool.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []int{2}, y.Shape)
	assert.Equal(t, complex128(2.5), y.Data[0])
	assert.Equal(t, complex128(2.5i), y.Data[1])

	_, err = pool.OutputShape([]int{4})
	assert.Error(t, err)
}

func TestMaxPool3D_ByModulus(t *testing.T) {
	pool, err := NewComplexMaxPool3D("pool", 2, 2, PaddingValid)
	require.NoError(t, err)

	x := ctensor.New(1, 2, 2, 2)
	x.Data = []complex128{1, 2, 3, 4, 5, -6, 2, 1}
	y, err := pool.Forward(x)
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 1, 1}, y.Shape)
	assert.Equal(t, complex128(-6), y.Data[0])
}
