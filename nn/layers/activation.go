package layers

import (
	"fmt"
	"math"
	"math/cmplx"
	"sort"
	"strings"

	"cvnet/ctensor"
)

// ComplexPrefix tags output activations that should run through a
// complex-aware dense layer instead of a real one.
const ComplexPrefix = "complex_"

// IsComplexActivation reports whether tag carries the complex_ prefix.
func IsComplexActivation(tag string) bool {
	return strings.HasPrefix(tag, ComplexPrefix)
}

// TrimComplexPrefix strips the complex_ prefix, if present.
func TrimComplexPrefix(tag string) string {
	return strings.TrimPrefix(tag, ComplexPrefix)
}

type activationFunc func(*ctensor.Tensor) *ctensor.Tensor

// supportedActivations is the closed set of activation tags. Selection is by
// exact tag; unknown tags are a construction-time error.
var supportedActivations = map[string]activationFunc{
	"linear": func(t *ctensor.Tensor) *ctensor.Tensor {
		return t.Clone()
	},
	// CReLU: ReLU applied independently to real and imaginary parts.
	"crelu": elementwise(func(z complex128) complex128 {
		return complex(math.Max(real(z), 0), math.Max(imag(z), 0))
	}),
	// zReLU: passes z only when its phase lies in the first quadrant.
	"zrelu": elementwise(func(z complex128) complex128 {
		if real(z) >= 0 && imag(z) >= 0 {
			return z
		}
		return 0
	}),
	// Cardioid: phase-dependent attenuation, 0.5*(1+cos(arg z))*z.
	"cardioid": elementwise(func(z complex128) complex128 {
		return complex(0.5*(1+math.Cos(cmplx.Phase(z))), 0) * z
	}),
	// tanh and sigmoid act on real and imaginary parts independently.
	"tanh": elementwise(func(z complex128) complex128 {
		return complex(math.Tanh(real(z)), math.Tanh(imag(z)))
	}),
	"sigmoid": elementwise(func(z complex128) complex128 {
		return complex(sigmoid(real(z)), sigmoid(imag(z)))
	}),
	// softmax normalizes the real parts across the whole tensor; imaginary
	// parts are dropped. Meant for real-valued classifier outputs.
	"softmax": softmax,
}

func elementwise(f func(complex128) complex128) activationFunc {
	return func(t *ctensor.Tensor) *ctensor.Tensor {
		out := ctensor.New(t.Shape...)
		for i, v := range t.Data {
			out.Data[i] = f(v)
		}
		return out
	}
}

func sigmoid(x float64) float64 {
	return 1 / (1 + math.Exp(-x))
}

func softmax(t *ctensor.Tensor) *ctensor.Tensor {
	out := ctensor.New(t.Shape...)
	maxRe := math.Inf(-1)
	for _, v := range t.Data {
		if real(v) > maxRe {
			maxRe = real(v)
		}
	}
	var sum float64
	for _, v := range t.Data {
		sum += math.Exp(real(v) - maxRe)
	}
	for i, v := range t.Data {
		out.Data[i] = complex(math.Exp(real(v)-maxRe)/sum, 0)
	}
	return out
}

// ActivationTags lists the supported activation tags in sorted order.
func ActivationTags() []string {
	tags := make([]string, 0, len(supportedActivations))
	for tag := range supportedActivations {
		tags = append(tags, tag)
	}
	sort.Strings(tags)
	return tags
}

// Activation applies a named activation transform.
type Activation struct {
	name string
	tag  string
	fn   activationFunc
}

// NewActivation creates a new activation layer. The tag must be one of the
// supported activation tags; complex_ prefixes are not resolved here.
func NewActivation(name, tag string) (*Activation, error) {
	fn, ok := supportedActivations[tag]
	if !ok {
		return nil, fmt.Errorf("%s: unsupported activation %q (supported: %s)",
			name, tag, strings.Join(ActivationTags(), ", "))
	}
	return &Activation{name: name, tag: tag, fn: fn}, nil
}

func (a *Activation) Name() string { return a.name }

// Tag returns the activation tag this layer was constructed with.
func (a *Activation) Tag() string { return a.tag }

func (a *Activation) OutputShape(inShape []int) ([]int, error) {
	return append([]int(nil), inShape...), nil
}

func (a *Activation) Forward(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	return a.fn(x), nil
}
