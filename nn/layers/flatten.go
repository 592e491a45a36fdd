package layers

import (
	"cvnet/ctensor"
)

// Flatten reshapes any tensor to 1-D.
type Flatten struct {
	name string
}

func NewFlatten(name string) *Flatten { return &Flatten{name: name} }

func (f *Flatten) Name() string { return f.name }

func (f *Flatten) OutputShape(inShape []int) ([]int, error) {
	total := 1
	for _, d := range inShape {
		total *= d
	}
	return []int{total}, nil
}

func (f *Flatten) Forward(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	y := ctensor.New(len(x.Data))
	copy(y.Data, x.Data)
	return y, nil
}
