package ctensor

import (
	"fmt"
	"math/cmplx"

	"gonum.org/v1/gonum/cmplxs"
)

// Tensor is a simple n-D array of complex values backed by a flat []complex128.
type Tensor struct {
	Data  []complex128
	Shape []int
}

// New allocates a Tensor of given shape (product of dims = len(Data)).
func New(shape ...int) *Tensor {
	total := 1
	for _, d := range shape {
		total *= d
	}
	return &Tensor{
		Data:  make([]complex128, total),
		Shape: append([]int(nil), shape...),
	}
}

// NewWithData creates a 1-D tensor from existing data slice.
func NewWithData(data []complex128) *Tensor {
	return &Tensor{
		Data:  append([]complex128(nil), data...),
		Shape: []int{len(data)},
	}
}

// Clone returns a deep copy of t.
func (t *Tensor) Clone() *Tensor {
	out := New(t.Shape...)
	copy(out.Data, t.Data)
	return out
}

// Size returns the total number of elements.
func (t *Tensor) Size() int {
	return len(t.Data)
}

// Reshape returns a view-copy of t with a new shape of equal size.
func (t *Tensor) Reshape(shape ...int) (*Tensor, error) {
	total := 1
	for _, d := range shape {
		total *= d
	}
	if total != len(t.Data) {
		return nil, fmt.Errorf("reshape: size mismatch: %v -> %v", t.Shape, shape)
	}
	out := t.Clone()
	out.Shape = append([]int(nil), shape...)
	return out, nil
}

// ShapeEqual reports whether a and b have identical shapes.
func ShapeEqual(a, b *Tensor) bool {
	if len(a.Shape) != len(b.Shape) {
		return false
	}
	for i := range a.Shape {
		if a.Shape[i] != b.Shape[i] {
			return false
		}
	}
	return true
}

// Add returns a+b (same shape), or error if shapes differ.
func Add(a, b *Tensor) (*Tensor, error) {
	if !ShapeEqual(a, b) {
		return nil, fmt.Errorf("shape mismatch: %v vs %v", a.Shape, b.Shape)
	}
	out := a.Clone()
	cmplxs.Add(out.Data, b.Data)
	return out, nil
}

// Scale returns c*t element-wise.
func Scale(c complex128, t *Tensor) *Tensor {
	out := t.Clone()
	cmplxs.Scale(c, out.Data)
	return out
}

// Abs returns the element-wise modulus of t as a real-valued slice.
func Abs(t *Tensor) []float64 {
	out := make([]float64, len(t.Data))
	for i, v := range t.Data {
		out[i] = cmplx.Abs(v)
	}
	return out
}

// At returns the element at the given indices.
// For a 4D tensor [a, b, c, d], At(i, j, k, l) returns the element at position [i][j][k][l].
func (t *Tensor) At(indices ...int) complex128 {
	return t.Data[t.index("At", indices)]
}

// Set sets the element at the given indices to the given value.
func (t *Tensor) Set(value complex128, indices ...int) {
	t.Data[t.index("Set", indices)] = value
}

func (t *Tensor) index(op string, indices []int) int {
	if len(indices) != len(t.Shape) {
		panic(fmt.Sprintf("%s: expected %d indices, got %d", op, len(t.Shape), len(indices)))
	}
	idx := 0
	stride := 1
	for i := len(indices) - 1; i >= 0; i-- {
		if indices[i] < 0 || indices[i] >= t.Shape[i] {
			panic(fmt.Sprintf("%s: index %d out of bounds for dimension %d (shape: %v)", op, indices[i], i, t.Shape))
		}
		idx += indices[i] * stride
		stride *= t.Shape[i]
	}
	return idx
}

// MoveAxis returns a copy of t with the axis at position from moved to position to.
// Used to canonicalize channels-last inputs into the channels-first layout the
// layer implementations operate on.
func MoveAxis(t *Tensor, from, to int) (*Tensor, error) {
	n := len(t.Shape)
	if from < 0 {
		from += n
	}
	if to < 0 {
		to += n
	}
	if from < 0 || from >= n || to < 0 || to >= n {
		return nil, fmt.Errorf("move axis: axes (%d, %d) out of range for rank %d", from, to, n)
	}
	if from == to {
		return t.Clone(), nil
	}

	// Build the axis permutation.
	perm := make([]int, 0, n)
	for i := 0; i < n; i++ {
		if i != from {
			perm = append(perm, i)
		}
	}
	perm = append(perm[:to], append([]int{from}, perm[to:]...)...)

	outShape := make([]int, n)
	for i, ax := range perm {
		outShape[i] = t.Shape[ax]
	}
	out := New(outShape...)

	inStrides := strides(t.Shape)
	outStrides := strides(outShape)

	idx := make([]int, n)
	for flat := range t.Data {
		rem := flat
		for i, s := range inStrides {
			idx[i] = rem / s
			rem %= s
		}
		outFlat := 0
		for i, ax := range perm {
			outFlat += idx[ax] * outStrides[i]
		}
		out.Data[outFlat] = t.Data[flat]
	}
	return out, nil
}

func strides(shape []int) []int {
	out := make([]int, len(shape))
	s := 1
	for i := len(shape) - 1; i >= 0; i-- {
		out[i] = s
		s *= shape[i]
	}
	return out
}
