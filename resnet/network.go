package resnet

import (
	"fmt"
	"strings"

	"cvnet/ctensor"
	"cvnet/nn"
	"cvnet/utils"
)

// Network is an assembled residual network: stem, residual stages, and an
// optional classification head. Construction is all-or-nothing; a Network
// only exists fully wired.
type Network struct {
	inputShape []int // canonical channels-first shape
	format     nn.DataFormat
	stem       []nn.Layer
	stages     [][]*Block
	head       []nn.Layer
	includeTop bool
}

// InputShape returns the canonical channels-first input shape.
func (n *Network) InputShape() []int {
	return append([]int(nil), n.inputShape...)
}

// IncludeTop reports whether the network carries a classification head.
func (n *Network) IncludeTop() bool { return n.includeTop }

// Blocks returns every residual block in network order.
func (n *Network) Blocks() []*Block {
	var out []*Block
	for _, stage := range n.stages {
		out = append(out, stage...)
	}
	return out
}

// Layers returns every named layer in network order, including the layers
// inside residual blocks.
func (n *Network) Layers() []nn.Layer {
	out := append([]nn.Layer(nil), n.stem...)
	for _, stage := range n.stages {
		for _, b := range stage {
			out = append(out, b.Layers()...)
		}
	}
	return append(out, n.head...)
}

// LayerNames returns the generated layer names in network order, including
// block merge points. Every name is unique within one network instance and
// deterministic across builds of the same configuration.
func (n *Network) LayerNames() []string {
	var names []string
	for _, l := range n.stem {
		names = append(names, l.Name())
	}
	for _, stage := range n.stages {
		for _, b := range stage {
			names = append(names, b.LayerNames()...)
		}
	}
	for _, l := range n.head {
		names = append(names, l.Name())
	}
	return names
}

// canonicalize moves a channels-last input into the channels-first layout
// the layers compute in. Channels-last inputs must be unbatched.
func (n *Network) canonicalize(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	if n.format != nn.ChannelsLast {
		return x, nil
	}
	if len(x.Shape) != len(n.inputShape) {
		return nil, fmt.Errorf("resnet: channels-last input must be unbatched with rank %d, got shape %v",
			len(n.inputShape), x.Shape)
	}
	return ctensor.MoveAxis(x, len(x.Shape)-1, 0)
}

// ForwardFeatures runs the network up to the end of every stage and returns
// the per-stage feature maps.
func (n *Network) ForwardFeatures(x *ctensor.Tensor) ([]*ctensor.Tensor, error) {
	x, err := n.canonicalize(x)
	if err != nil {
		return nil, err
	}
	stem := &nn.Sequential{Layers: n.stem}
	out, err := stem.Forward(x)
	if err != nil {
		return nil, err
	}
	features := make([]*ctensor.Tensor, 0, len(n.stages))
	for _, stage := range n.stages {
		for _, b := range stage {
			out, err = b.Forward(out)
			if err != nil {
				return nil, err
			}
		}
		features = append(features, out)
	}
	return features, nil
}

// Forward runs a full inference pass. With a classification head the result
// is the classifier output; without one it is the final stage's feature map
// (use ForwardFeatures for all stages).
func (n *Network) Forward(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	features, err := n.ForwardFeatures(x)
	if err != nil {
		return nil, err
	}
	out := features[len(features)-1]
	if !n.includeTop {
		return out, nil
	}
	head := &nn.Sequential{Layers: n.head}
	return head.Forward(out)
}

// SummaryRow describes one entry of the network summary.
type SummaryRow struct {
	Name        string
	Type        string
	OutputShape []int
	Params      int
}

// Summary propagates the input shape through the network and returns one
// row per stem layer, residual block, and head layer.
func (n *Network) Summary() ([]SummaryRow, error) {
	var rows []SummaryRow
	shape := n.inputShape
	appendRows := func(ls []nn.Layer) error {
		for _, l := range ls {
			var err error
			shape, err = l.OutputShape(shape)
			if err != nil {
				return err
			}
			rows = append(rows, SummaryRow{
				Name:        l.Name(),
				Type:        typeName(l),
				OutputShape: shape,
				Params:      layerParamCount(l),
			})
		}
		return nil
	}
	if err := appendRows(n.stem); err != nil {
		return nil, err
	}
	for _, stage := range n.stages {
		for _, b := range stage {
			var err error
			shape, err = b.OutputShape(shape)
			if err != nil {
				return nil, err
			}
			rows = append(rows, SummaryRow{
				Name:        b.Name(),
				Type:        fmt.Sprintf("%s block", b.Kind()),
				OutputShape: shape,
				Params:      blockParamCount(b),
			})
		}
	}
	if err := appendRows(n.head); err != nil {
		return nil, err
	}
	return rows, nil
}

// ParamCount returns the total number of parameter elements.
func (n *Network) ParamCount() int {
	total := 0
	for _, l := range n.Layers() {
		total += layerParamCount(l)
	}
	return total
}

func layerParamCount(l nn.Layer) int {
	pl, ok := l.(nn.ParamLayer)
	if !ok {
		return 0
	}
	total := 0
	for _, p := range pl.Params() {
		total += p.Value.Size()
	}
	return total
}

func blockParamCount(b *Block) int {
	total := 0
	for _, l := range b.Layers() {
		total += layerParamCount(l)
	}
	return total
}

func typeName(l nn.Layer) string {
	s := fmt.Sprintf("%T", l)
	if i := strings.LastIndex(s, "."); i >= 0 {
		s = s[i+1:]
	}
	return s
}

// Weights collects every parameter tensor into an archive keyed by layer
// name, the format saved weight files use.
func (n *Network) Weights() *utils.ModelWeights {
	mw := utils.NewModelWeights()
	for _, l := range n.Layers() {
		pl, ok := l.(nn.ParamLayer)
		if !ok {
			continue
		}
		lw := utils.LayerWeights{}
		for _, p := range pl.Params() {
			lw[p.Name] = utils.TensorToWeightData(p.Value)
		}
		mw.Layers[l.Name()] = lw
	}
	return mw
}

// ApplyWeights copies archived parameters into the network by layer name.
// Every archive entry must match an existing layer and parameter shape.
func (n *Network) ApplyWeights(mw *utils.ModelWeights) error {
	params := map[string]map[string]*ctensor.Tensor{}
	for _, l := range n.Layers() {
		pl, ok := l.(nn.ParamLayer)
		if !ok {
			continue
		}
		m := map[string]*ctensor.Tensor{}
		for _, p := range pl.Params() {
			m[p.Name] = p.Value
		}
		params[l.Name()] = m
	}

	for layerName, lw := range mw.Layers {
		layerParams, ok := params[layerName]
		if !ok {
			return fmt.Errorf("resnet: archive names unknown layer %q", layerName)
		}
		for paramName, wd := range lw {
			dst, ok := layerParams[paramName]
			if !ok {
				return fmt.Errorf("resnet: layer %q has no parameter %q", layerName, paramName)
			}
			src, err := utils.WeightDataToTensor(wd)
			if err != nil {
				return fmt.Errorf("resnet: %s/%s: %w", layerName, paramName, err)
			}
			if !ctensor.ShapeEqual(dst, src) {
				return fmt.Errorf("resnet: %s/%s: shape mismatch: archive %v vs layer %v",
					layerName, paramName, src.Shape, dst.Shape)
			}
			copy(dst.Data, src.Data)
		}
	}
	return nil
}
