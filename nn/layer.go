package nn

import (
	"cvnet/ctensor"
)

// Layer defines a single named unit in the network graph.
type Layer interface {
	// Name returns the unique layer name within one network instance.
	// Names are a de facto wire format: saved weight archives are keyed
	// by them, so they must stay stable across builds.
	Name() string
	// OutputShape computes the output shape for a channels-first input
	// shape without running the layer.
	OutputShape(inShape []int) ([]int, error)
	Forward(x *ctensor.Tensor) (*ctensor.Tensor, error)
}

// Param is one named parameter tensor of a layer. The archive key for a
// parameter is "{layer name}/{param name}".
type Param struct {
	Name  string
	Value *ctensor.Tensor
}

// ParamLayer is implemented by layers carrying trainable parameters.
type ParamLayer interface {
	Layer
	Params() []Param
}

// Sequential chains multiple Layers in order.
type Sequential struct {
	Layers []Layer
}

// Forward applies each layer in sequence.
func (s *Sequential) Forward(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	var err error
	out := x
	for _, layer := range s.Layers {
		out, err = layer.Forward(out)
		if err != nil {
			return nil, err
		}
	}
	return out, nil
}

// OutputShape propagates a shape through all layers in sequence.
func (s *Sequential) OutputShape(inShape []int) ([]int, error) {
	var err error
	shape := inShape
	for _, layer := range s.Layers {
		shape, err = layer.OutputShape(shape)
		if err != nil {
			return nil, err
		}
	}
	return shape, nil
}
