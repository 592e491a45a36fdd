package resnet

import (
	"fmt"

	"cvnet/nn"
	"cvnet/nn/layers"
)

// BasicBlock2D builds a two-convolution residual block over 2D feature
// maps: pad, conv (strided), norm, activation, pad, conv, norm, plus an
// additive shortcut. Block 0 of a stage projects the input through a 1x1
// convolution; later blocks use the identity.
func BasicBlock2D(inChan, filters, stage, block int, opts BlockOpts) (*Block, error) {
	opts.applyDefaults()
	stride := opts.resolveStride(stage, block)
	sc := stageChar(stage)
	bc := blockChar(block, opts.NumericalName)
	kh, kw := opts.KernelSize, opts.KernelWidth

	pad2a := layers.NewZeroPadding2D(fmt.Sprintf("padding%s%s_branch2a", sc, bc), 1)
	conv2a, err := layers.NewComplexConv2D(fmt.Sprintf("res%s%s_branch2a", sc, bc), inChan, filters, kh, kw, stride, layers.PaddingValid, false)
	if err != nil {
		return nil, err
	}
	bn2a, err := layers.NewComplexBatchNorm(fmt.Sprintf("bn%s%s_branch2a", sc, bc), filters)
	if err != nil {
		return nil, err
	}
	act2a, err := layers.NewActivation(fmt.Sprintf("res%s%s_branch2a_%s", sc, bc, opts.Activation), opts.Activation)
	if err != nil {
		return nil, err
	}
	pad2b := layers.NewZeroPadding2D(fmt.Sprintf("padding%s%s_branch2b", sc, bc), 1)
	conv2b, err := layers.NewComplexConv2D(fmt.Sprintf("res%s%s_branch2b", sc, bc), filters, filters, kh, kw, 1, layers.PaddingValid, false)
	if err != nil {
		return nil, err
	}
	bn2b, err := layers.NewComplexBatchNorm(fmt.Sprintf("bn%s%s_branch2b", sc, bc), filters)
	if err != nil {
		return nil, err
	}

	var shortcut []nn.Layer
	if block == 0 {
		conv1, err := layers.NewComplexConv2D(fmt.Sprintf("res%s%s_branch1", sc, bc), inChan, filters, 1, 1, stride, layers.PaddingValid, false)
		if err != nil {
			return nil, err
		}
		bn1, err := layers.NewComplexBatchNorm(fmt.Sprintf("bn%s%s_branch1", sc, bc), filters)
		if err != nil {
			return nil, err
		}
		shortcut = []nn.Layer{conv1, bn1}
	}

	act, err := layers.NewActivation(fmt.Sprintf("res%s%s_%s", sc, bc, opts.Activation), opts.Activation)
	if err != nil {
		return nil, err
	}

	return &Block{
		name:     fmt.Sprintf("res%s%s", sc, bc),
		kind:     BasicBlock,
		main:     []nn.Layer{pad2a, conv2a, bn2a, act2a, pad2b, conv2b, bn2b},
		shortcut: shortcut,
		act:      act,
		outChan:  filters,
	}, nil
}

// Bottleneck2D builds a three-convolution residual block over 2D feature
// maps: 1x1 reduce (strided), kxk, then 1x1 expand to filters*4 channels.
// The block-0 shortcut projects to the expanded channel count.
func Bottleneck2D(inChan, filters, stage, block int, opts BlockOpts) (*Block, error) {
	opts.applyDefaults()
	stride := opts.resolveStride(stage, block)
	sc := stageChar(stage)
	bc := blockChar(block, opts.NumericalName)
	kh, kw := opts.KernelSize, opts.KernelWidth

	conv2a, err := layers.NewComplexConv2D(fmt.Sprintf("res%s%s_branch2a", sc, bc), inChan, filters, 1, 1, stride, layers.PaddingValid, false)
	if err != nil {
		return nil, err
	}
	bn2a, err := layers.NewComplexBatchNorm(fmt.Sprintf("bn%s%s_branch2a", sc, bc), filters)
	if err != nil {
		return nil, err
	}
	act2a, err := layers.NewActivation(fmt.Sprintf("res%s%s_branch2a_%s", sc, bc, opts.Activation), opts.Activation)
	if err != nil {
		return nil, err
	}
	pad2b := layers.NewZeroPadding2D(fmt.Sprintf("padding%s%s_branch2b", sc, bc), 1)
	conv2b, err := layers.NewComplexConv2D(fmt.Sprintf("res%s%s_branch2b", sc, bc), filters, filters, kh, kw, 1, layers.PaddingValid, false)
	if err != nil {
		return nil, err
	}
	bn2b, err := layers.NewComplexBatchNorm(fmt.Sprintf("bn%s%s_branch2b", sc, bc), filters)
	if err != nil {
		return nil, err
	}
	act2b, err := layers.NewActivation(fmt.Sprintf("res%s%s_branch2b_%s", sc, bc, opts.Activation), opts.Activation)
	if err != nil {
		return nil, err
	}
	conv2c, err := layers.NewComplexConv2D(fmt.Sprintf("res%s%s_branch2c", sc, bc), filters, filters*4, 1, 1, 1, layers.PaddingValid, false)
	if err != nil {
		return nil, err
	}
	bn2c, err := layers.NewComplexBatchNorm(fmt.Sprintf("bn%s%s_branch2c", sc, bc), filters*4)
	if err != nil {
		return nil, err
	}

	var shortcut []nn.Layer
	if block == 0 {
		conv1, err := layers.NewComplexConv2D(fmt.Sprintf("res%s%s_branch1", sc, bc), inChan, filters*4, 1, 1, stride, layers.PaddingValid, false)
		if err != nil {
			return nil, err
		}
		bn1, err := layers.NewComplexBatchNorm(fmt.Sprintf("bn%s%s_branch1", sc, bc), filters*4)
		if err != nil {
			return nil, err
		}
		shortcut = []nn.Layer{conv1, bn1}
	}

	act, err := layers.NewActivation(fmt.Sprintf("res%s%s_%s", sc, bc, opts.Activation), opts.Activation)
	if err != nil {
		return nil, err
	}

	return &Block{
		name:     fmt.Sprintf("res%s%s", sc, bc),
		kind:     BottleneckBlock,
		main:     []nn.Layer{conv2a, bn2a, act2a, pad2b, conv2b, bn2b, act2b, conv2c, bn2c},
		shortcut: shortcut,
		act:      act,
		outChan:  filters * 4,
	}, nil
}
