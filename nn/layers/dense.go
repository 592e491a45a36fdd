package layers

import (
	"fmt"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/mat"

	"cvnet/ctensor"
	"cvnet/nn"
)

// ComplexDense is a complex-valued fully-connected layer over a flat [in]
// tensor, with an output activation applied in place.
type ComplexDense struct {
	name          string
	inDim, outDim int
	act           *Activation

	W *ctensor.Tensor // weights: [outDim, inDim]
	B *ctensor.Tensor // bias: [outDim]
}

// NewComplexDense creates a new complex dense layer with the given output
// activation tag.
func NewComplexDense(name string, inDim, outDim int, activation string) (*ComplexDense, error) {
	if inDim <= 0 || outDim <= 0 {
		return nil, fmt.Errorf("%s: invalid dimensions %dx%d", name, inDim, outDim)
	}
	act, err := NewActivation(name+"_"+activation, activation)
	if err != nil {
		return nil, err
	}
	d := &ComplexDense{
		name:   name,
		inDim:  inDim,
		outDim: outDim,
		act:    act,
		W:      ctensor.New(outDim, inDim),
		B:      ctensor.New(outDim),
	}
	initComplexHe(d.W, inDim)
	return d, nil
}

func (d *ComplexDense) Name() string { return d.name }

func (d *ComplexDense) Params() []nn.Param {
	return []nn.Param{{Name: "weight", Value: d.W}, {Name: "bias", Value: d.B}}
}

func (d *ComplexDense) OutputShape(inShape []int) ([]int, error) {
	if len(inShape) != 1 || inShape[0] != d.inDim {
		return nil, fmt.Errorf("%s: expected input shape [%d], got %v", d.name, d.inDim, inShape)
	}
	return []int{d.outDim}, nil
}

func (d *ComplexDense) Forward(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	if _, err := d.OutputShape(x.Shape); err != nil {
		return nil, err
	}
	// y = W*x + b via zgemv, with y preloaded with the bias.
	out := ctensor.New(d.outDim)
	copy(out.Data, d.B.Data)
	cblas128.Gemv(blas.NoTrans, 1,
		cblas128.General{Rows: d.outDim, Cols: d.inDim, Stride: d.inDim, Data: d.W.Data},
		cblas128.Vector{N: d.inDim, Inc: 1, Data: x.Data},
		1,
		cblas128.Vector{N: d.outDim, Inc: 1, Data: out.Data})
	return d.act.Forward(out)
}

// Dense is a real-valued fully-connected layer. It consumes the real parts
// of its input and produces outputs with zero imaginary part, the way the
// classification head behaves when the output activation is not tagged
// complex.
type Dense struct {
	name          string
	inDim, outDim int
	act           *Activation

	W *ctensor.Tensor // weights: [outDim, inDim], imaginary parts unused
	B *ctensor.Tensor // bias: [outDim]
}

// NewDense creates a new real dense layer with the given output activation tag.
func NewDense(name string, inDim, outDim int, activation string) (*Dense, error) {
	if inDim <= 0 || outDim <= 0 {
		return nil, fmt.Errorf("%s: invalid dimensions %dx%d", name, inDim, outDim)
	}
	act, err := NewActivation(name+"_"+activation, activation)
	if err != nil {
		return nil, err
	}
	d := &Dense{
		name:   name,
		inDim:  inDim,
		outDim: outDim,
		act:    act,
		W:      ctensor.New(outDim, inDim),
		B:      ctensor.New(outDim),
	}
	initComplexHe(d.W, inDim)
	for i := range d.W.Data {
		d.W.Data[i] = complex(real(d.W.Data[i]), 0)
	}
	return d, nil
}

func (d *Dense) Name() string { return d.name }

func (d *Dense) Params() []nn.Param {
	return []nn.Param{{Name: "weight", Value: d.W}, {Name: "bias", Value: d.B}}
}

func (d *Dense) OutputShape(inShape []int) ([]int, error) {
	if len(inShape) != 1 || inShape[0] != d.inDim {
		return nil, fmt.Errorf("%s: expected input shape [%d], got %v", d.name, d.inDim, inShape)
	}
	return []int{d.outDim}, nil
}

func (d *Dense) Forward(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	if _, err := d.OutputShape(x.Shape); err != nil {
		return nil, err
	}
	wData := make([]float64, len(d.W.Data))
	for i, v := range d.W.Data {
		wData[i] = real(v)
	}
	xData := make([]float64, len(x.Data))
	for i, v := range x.Data {
		xData[i] = real(v)
	}
	w := mat.NewDense(d.outDim, d.inDim, wData)
	v := mat.NewVecDense(d.inDim, xData)
	var y mat.VecDense
	y.MulVec(w, v)

	out := ctensor.New(d.outDim)
	for i := 0; i < d.outDim; i++ {
		out.Data[i] = complex(y.AtVec(i)+real(d.B.Data[i]), 0)
	}
	return d.act.Forward(out)
}
