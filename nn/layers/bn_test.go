package layers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvnet/ctensor"
)

func TestBatchNorm_DefaultInit(t *testing.T) {
	bn, err := NewComplexBatchNorm("bn", 3)
	require.NoError(t, err)

	invSqrt2 := complex(1/math.Sqrt2, 0)
	for c := 0; c < 3; c++ {
		assert.Equal(t, invSqrt2, bn.GammaRR.Data[c])
		assert.Equal(t, invSqrt2, bn.GammaII.Data[c])
		assert.Equal(t, complex128(0), bn.GammaRI.Data[c])
		assert.Equal(t, complex128(0), bn.Beta.Data[c])
	}
	assert.Len(t, bn.Params(), 8)

	_, err = NewComplexBatchNorm("bn", 0)
	assert.Error(t, err)
}

func TestBatchNorm_IdentityStatistics(t *testing.T) {
	// Unit covariance with identity Gamma and zero Beta passes the input
	// through, up to epsilon.
	bn, err := NewComplexBatchNorm("bn", 2)
	require.NoError(t, err)
	for c := 0; c < 2; c++ {
		bn.MovingVrr.Data[c] = 1
		bn.MovingVii.Data[c] = 1
		bn.MovingVri.Data[c] = 0
		bn.GammaRR.Data[c] = 1
		bn.GammaII.Data[c] = 1
		bn.GammaRI.Data[c] = 0
	}

	x := ctensor.New(2, 2, 2)
	for i := range x.Data {
		x.Data[i] = complex(float64(i)-3, float64(i)*0.5)
	}
	y, err := bn.Forward(x)
	require.NoError(t, err)
	require.Equal(t, x.Shape, y.Shape)
	for i := range x.Data {
		assert.InDelta(t, real(x.Data[i]), real(y.Data[i]), 1e-3)
		assert.InDelta(t, imag(x.Data[i]), imag(y.Data[i]), 1e-3)
	}
}

func TestBatchNorm_BetaShift(t *testing.T) {
	bn, err := NewComplexBatchNorm("bn", 1)
	require.NoError(t, err)
	bn.GammaRR.Data[0] = 0
	bn.GammaII.Data[0] = 0
	bn.Beta.Data[0] = 1 + 2i

	x := ctensor.New(1, 2, 2)
	for i := range x.Data {
		x.Data[i] = complex(float64(i), 1)
	}
	y, err := bn.Forward(x)
	require.NoError(t, err)
	for _, v := range y.Data {
		assert.Equal(t, complex(1, 2), v)
	}
}

func TestBatchNorm_ChannelAxis(t *testing.T) {
	bn, err := NewComplexBatchNorm("bn", 3)
	require.NoError(t, err)

	shape, err := bn.OutputShape([]int{3, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, []int{3, 5, 5}, shape)

	shape, err = bn.OutputShape([]int{2, 3, 5, 5})
	require.NoError(t, err)
	assert.Equal(t, []int{2, 3, 5, 5}, shape)

	_, err = bn.OutputShape([]int{4, 5, 5})
	assert.Error(t, err)
}
