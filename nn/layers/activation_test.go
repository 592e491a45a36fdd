package layers

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"cvnet/ctensor"
)

func applyTag(t *testing.T, tag string, in []complex128) []complex128 {
	t.Helper()
	act, err := NewActivation("act", tag)
	require.NoError(t, err)
	out, err := act.Forward(ctensor.NewWithData(in))
	require.NoError(t, err)
	return out.Data
}

func TestActivation_CReLU(t *testing.T) {
	out := applyTag(t, "crelu", []complex128{1 + 2i, -1 + 2i, 1 - 2i, -1 - 2i})
	assert.Equal(t, []complex128{1 + 2i, 2i, 1, 0}, out)
}

func TestActivation_ZReLU(t *testing.T) {
	out := applyTag(t, "zrelu", []complex128{1 + 1i, -1 + 1i, 1 - 1i, -1 - 1i})
	assert.Equal(t, []complex128{1 + 1i, 0, 0, 0}, out)
}

func TestActivation_Cardioid(t *testing.T) {
	out := applyTag(t, "cardioid", []complex128{3, -3})
	// phase 0 passes, phase pi is fully attenuated
	assert.InDelta(t, 3, real(out[0]), 1e-12)
	assert.InDelta(t, 0, real(out[1]), 1e-12)
	assert.InDelta(t, 0, imag(out[1]), 1e-12)
}

func TestActivation_Separable(t *testing.T) {
	out := applyTag(t, "tanh", []complex128{complex(1, -1)})
	assert.InDelta(t, math.Tanh(1), real(out[0]), 1e-12)
	assert.InDelta(t, math.Tanh(-1), imag(out[0]), 1e-12)

	out = applyTag(t, "sigmoid", []complex128{0})
	assert.Equal(t, complex(0.5, 0.5), out[0])
}

func TestActivation_Softmax(t *testing.T) {
	out := applyTag(t, "softmax", []complex128{1 + 5i, 1 - 5i, 1})
	var sum float64
	for _, v := range out {
		assert.Zero(t, imag(v))
		sum += real(v)
	}
	assert.InDelta(t, 1, sum, 1e-12)
	// equal real parts: uniform regardless of imaginary parts
	assert.InDelta(t, 1.0/3, real(out[0]), 1e-12)
}

func TestActivation_Linear(t *testing.T) {
	in := []complex128{1 + 2i, -3}
	assert.Equal(t, in, applyTag(t, "linear", in))
}

func TestActivation_UnknownTag(t *testing.T) {
	_, err := NewActivation("act", "relu6")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "relu6")
	assert.Contains(t, err.Error(), "crelu")
}

func TestActivation_Tags(t *testing.T) {
	tags := ActivationTags()
	assert.Contains(t, tags, "crelu")
	assert.Contains(t, tags, "softmax")
	assert.IsIncreasing(t, tags)
}

func TestComplexPrefix(t *testing.T) {
	assert.True(t, IsComplexActivation("complex_cardioid"))
	assert.False(t, IsComplexActivation("cardioid"))
	assert.Equal(t, "cardioid", TrimComplexPrefix("complex_cardioid"))
	assert.Equal(t, "softmax", TrimComplexPrefix("softmax"))
}
