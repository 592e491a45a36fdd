package resnet

import (
	"fmt"
	"strconv"

	"cvnet/ctensor"
	"cvnet/nn"
	"cvnet/nn/layers"
)

// BlockKind selects the residual architecture of a network's blocks.
type BlockKind string

const (
	BasicBlock      BlockKind = "basic"
	BottleneckBlock BlockKind = "bottleneck"
)

// BlockOpts configures a residual block builder. Zero values select the
// documented defaults; there are no silently forwarded options.
type BlockOpts struct {
	// KernelSize of the main-path spatial convolution. Default 3.
	KernelSize int
	// KernelWidth makes the 2D main-path kernel rectangular
	// (KernelSize x KernelWidth) when positive. Defaults to KernelSize.
	// 3D blocks take cubic kernels only and reject any other width.
	KernelWidth int
	// NumericalName switches the block-name component from letters
	// ('b', 'c', ...) to the "b{n}" form used by deep stages.
	NumericalName bool
	// Stride overrides the derived stride when positive. By default the
	// first block of every stage after the first downsamples by 2.
	Stride int
	// Activation tag applied inside the block. Default "crelu".
	Activation string
}

func (o *BlockOpts) applyDefaults() {
	if o.KernelSize == 0 {
		o.KernelSize = 3
	}
	if o.KernelWidth == 0 {
		o.KernelWidth = o.KernelSize
	}
	if o.Activation == "" {
		o.Activation = "crelu"
	}
}

// resolveStride derives the block stride: an explicit value wins, otherwise
// stride is 2 iff this is the first block of a stage after the first.
func (o *BlockOpts) resolveStride(stage, block int) int {
	if o.Stride > 0 {
		return o.Stride
	}
	if block != 0 || stage == 0 {
		return 1
	}
	return 2
}

// stageChar is the stage component of generated layer names.
func stageChar(stage int) string {
	return strconv.Itoa(stage + 2)
}

// blockChar is the block component of generated layer names: always 'a' for
// block 0, then letters or "b{n}" depending on the naming mode.
func blockChar(block int, numerical bool) string {
	if block > 0 && numerical {
		return fmt.Sprintf("b%d", block)
	}
	return string(rune('a' + block))
}

// Block is one residual unit: a main path of convolution stages plus an
// additive shortcut, either identity or a projection.
type Block struct {
	name     string
	kind     BlockKind
	main     []nn.Layer
	shortcut []nn.Layer // nil means identity
	act      *layers.Activation
	outChan  int
}

// Name returns the merge-point name "res{stage}{block}".
func (b *Block) Name() string { return b.name }

// Kind returns the block's residual architecture.
func (b *Block) Kind() BlockKind { return b.kind }

// OutChannels returns the channel count this block produces.
func (b *Block) OutChannels() int { return b.outChan }

// Projecting reports whether the shortcut is a projection rather than the
// identity.
func (b *Block) Projecting() bool { return len(b.shortcut) > 0 }

// Layers returns every named layer inside the block, main path first.
func (b *Block) Layers() []nn.Layer {
	out := append([]nn.Layer(nil), b.main...)
	out = append(out, b.shortcut...)
	return append(out, b.act)
}

// LayerNames returns the block's layer names including the merge point.
func (b *Block) LayerNames() []string {
	names := make([]string, 0, len(b.main)+len(b.shortcut)+2)
	for _, l := range b.main {
		names = append(names, l.Name())
	}
	for _, l := range b.shortcut {
		names = append(names, l.Name())
	}
	return append(names, b.name, b.act.Name())
}

func (b *Block) OutputShape(inShape []int) ([]int, error) {
	main := &nn.Sequential{Layers: b.main}
	outShape, err := main.OutputShape(inShape)
	if err != nil {
		return nil, err
	}
	shortShape := inShape
	if b.Projecting() {
		short := &nn.Sequential{Layers: b.shortcut}
		shortShape, err = short.OutputShape(inShape)
		if err != nil {
			return nil, err
		}
	}
	if len(shortShape) != len(outShape) {
		return nil, fmt.Errorf("%s: shortcut shape %v does not match main path %v", b.name, shortShape, outShape)
	}
	for i := range outShape {
		if outShape[i] != shortShape[i] {
			return nil, fmt.Errorf("%s: shortcut shape %v does not match main path %v", b.name, shortShape, outShape)
		}
	}
	return outShape, nil
}

func (b *Block) Forward(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	main := &nn.Sequential{Layers: b.main}
	out, err := main.Forward(x)
	if err != nil {
		return nil, err
	}

	shortcut := x
	if b.Projecting() {
		short := &nn.Sequential{Layers: b.shortcut}
		shortcut, err = short.Forward(x)
		if err != nil {
			return nil, err
		}
	}

	merged, err := ctensor.Add(out, shortcut)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.name, err)
	}
	return b.act.Forward(merged)
}
