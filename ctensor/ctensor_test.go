package ctensor

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndSize(t *testing.T) {
	x := New(2, 3, 4)
	assert.Equal(t, []int{2, 3, 4}, x.Shape)
	assert.Equal(t, 24, x.Size())
	assert.Len(t, x.Data, 24)
}

func TestAtSet(t *testing.T) {
	x := New(2, 3)
	x.Set(complex(1, -1), 1, 2)
	assert.Equal(t, complex(1, -1), x.At(1, 2))
	assert.Equal(t, complex(1, -1), x.Data[5])

	assert.Panics(t, func() { x.At(2, 0) })
	assert.Panics(t, func() { x.At(0) })
}

func TestReshape(t *testing.T) {
	x := NewWithData([]complex128{1, 2, 3, 4, 5, 6})
	y, err := x.Reshape(2, 3)
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3}, y.Shape)
	assert.Equal(t, complex128(6), y.At(1, 2))

	_, err = x.Reshape(4, 2)
	assert.Error(t, err)
}

func TestAdd(t *testing.T) {
	a := NewWithData([]complex128{1 + 2i, 3})
	b := NewWithData([]complex128{2 - 1i, -3})
	c, err := Add(a, b)
	require.NoError(t, err)
	assert.Equal(t, []complex128{3 + 1i, 0}, c.Data)
	// inputs untouched
	assert.Equal(t, []complex128{1 + 2i, 3}, a.Data)

	_, err = Add(a, New(3))
	assert.Error(t, err)
}

func TestScale(t *testing.T) {
	x := NewWithData([]complex128{1 + 1i, 2})
	y := Scale(2i, x)
	assert.Equal(t, []complex128{-2 + 2i, 4i}, y.Data)
}

func TestAbs(t *testing.T) {
	x := NewWithData([]complex128{3 + 4i, -2})
	assert.InDeltaSlice(t, []float64{5, 2}, Abs(x), 1e-12)
}

func TestClone(t *testing.T) {
	x := NewWithData([]complex128{1, 2})
	y := x.Clone()
	y.Data[0] = 9
	assert.Equal(t, complex128(1), x.Data[0])
}

func TestMoveAxis(t *testing.T) {
	// [H=2, W=3, C=4] -> [C, H, W]
	x := New(2, 3, 4)
	for i := range x.Data {
		x.Data[i] = complex(float64(i), 0)
	}
	y, err := MoveAxis(x, -1, 0)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 2, 3}, y.Shape)
	for h := 0; h < 2; h++ {
		for w := 0; w < 3; w++ {
			for c := 0; c < 4; c++ {
				assert.Equal(t, x.At(h, w, c), y.At(c, h, w))
			}
		}
	}
}

func TestMoveAxisNoop(t *testing.T) {
	x := NewWithData([]complex128{1, 2, 3})
	y, err := MoveAxis(x, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, x.Data, y.Data)

	_, err = MoveAxis(x, 3, 0)
	assert.Error(t, err)
}
