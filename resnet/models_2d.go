package resnet

import (
	"fmt"

	"cvnet/nn"
	"cvnet/nn/layers"
)

// NewResNet2D assembles a complex-valued 2D residual network for the given
// input shape: [C,H,W] under the channels-first convention, [H,W,C] under
// channels-last (the global setting is consulted at build time).
func NewResNet2D(inputShape []int, cfg Config) (*Network, error) {
	cfg, err := cfg.withDefaults()
	if err != nil {
		return nil, err
	}
	if len(inputShape) != 3 {
		return nil, fmt.Errorf("resnet: 2D input shape must have rank 3, got %v", inputShape)
	}

	format := nn.ImageDataFormat()
	canonical := append([]int(nil), inputShape...)
	if format == nn.ChannelsLast {
		canonical = []int{inputShape[2], inputShape[0], inputShape[1]}
	}
	inChan := canonical[0]

	conv1, err := layers.NewComplexConv2D("conv1", inChan, cfg.Filters, 7, 7, 2, layers.PaddingSame, false)
	if err != nil {
		return nil, err
	}
	bnConv1, err := layers.NewComplexBatchNorm("bn_conv1", cfg.Filters)
	if err != nil {
		return nil, err
	}
	actConv1, err := layers.NewActivation(fmt.Sprintf("conv1_%s", cfg.Activation), cfg.Activation)
	if err != nil {
		return nil, err
	}
	stem := []nn.Layer{conv1, bnConv1, actConv1}

	switch cfg.StemPool {
	case StemPoolMax:
		pool1, err := layers.NewComplexMaxPool2D("pool1", 3, 2, layers.PaddingSame)
		if err != nil {
			return nil, err
		}
		stem = append(stem, pool1)
	case StemPoolAverage:
		pool1, err := layers.NewComplexAvgPool2D("pool1", 3, 2, layers.PaddingSame)
		if err != nil {
			return nil, err
		}
		stem = append(stem, pool1)
	case StemPoolNone:
	}

	builder := BasicBlock2D
	if cfg.Block == BottleneckBlock {
		builder = Bottleneck2D
	}
	stages, err := buildStages(cfg.Filters, cfg, builder)
	if err != nil {
		return nil, err
	}

	net := &Network{
		inputShape: canonical,
		format:     format,
		stem:       stem,
		stages:     stages,
		includeTop: cfg.IncludeTop,
	}
	if !cfg.IncludeTop {
		return net, nil
	}

	// Propagate the shape to size the head.
	shape, err := (&nn.Sequential{Layers: stem}).OutputShape(canonical)
	if err != nil {
		return nil, err
	}
	for _, b := range net.Blocks() {
		shape, err = b.OutputShape(shape)
		if err != nil {
			return nil, err
		}
	}

	var pool5 nn.Layer
	switch cfg.HeadPool {
	case HeadPoolGlobalAverage:
		pool5 = layers.NewGlobalAvgPool("pool5")
	case HeadPoolComplexAverage:
		pool5, err = layers.NewComplexAvgPool2D("pool5", 2, 2, layers.PaddingValid)
	case HeadPoolComplexMax:
		pool5, err = layers.NewComplexMaxPool2D("pool5", 2, 2, layers.PaddingValid)
	case HeadPoolSpectralAverage:
		pool5, err = layers.NewSpectralPool2D("pool5", [2]float64{0.25, 0.25})
	}
	if err != nil {
		return nil, err
	}
	net.head = append(net.head, pool5)
	shape, err = pool5.OutputShape(shape)
	if err != nil {
		return nil, err
	}

	if len(shape) > 1 {
		flatten := layers.NewFlatten("flatten1")
		net.head = append(net.head, flatten)
		shape, err = flatten.OutputShape(shape)
		if err != nil {
			return nil, err
		}
	}

	fc, err := headDense(shape[0], cfg.Classes, cfg.OutputActivation)
	if err != nil {
		return nil, err
	}
	net.head = append(net.head, fc)
	return net, nil
}
