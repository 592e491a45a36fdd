package resnet

import (
	"fmt"

	"cvnet/nn"
	"cvnet/nn/layers"
)

// StemPool selects the pooling layer applied after the stem convolution.
type StemPool string

const (
	StemPoolMax     StemPool = "max"
	StemPoolAverage StemPool = "average"
	// StemPoolNone leaves the stem unpooled. It must be requested
	// explicitly; unrecognized tags are an error.
	StemPoolNone StemPool = "none"
)

// HeadPool selects the pooling reduction in front of the classifier.
type HeadPool string

const (
	HeadPoolGlobalAverage   HeadPool = "global_average"
	HeadPoolComplexAverage  HeadPool = "complex_average"
	HeadPoolComplexMax      HeadPool = "complex_max"
	HeadPoolSpectralAverage HeadPool = "spectral_average"
)

// Config describes a residual network to assemble. The zero value of every
// optional field selects its documented default; NumBlocks is required, and
// Classes is required when IncludeTop is set.
type Config struct {
	// NumBlocks holds one entry per stage: the residual block count of
	// that stage. Filter counts double from stage to stage.
	NumBlocks []int
	// Block selects the residual architecture. Default BasicBlock.
	Block BlockKind
	// Activation tag used inside the stem and the residual blocks.
	// Default "crelu".
	Activation string
	// Filters is the base filter count entering the first stage.
	// Default 64.
	Filters int
	// StemPool is the pooling applied after the stem convolution.
	// Default StemPoolMax.
	StemPool StemPool
	// HeadPool is the pooling reduction of the classification head.
	// Default HeadPoolGlobalAverage.
	HeadPool HeadPool
	// IncludeTop appends the classification head. Without it the network
	// outputs per-stage feature maps.
	IncludeTop bool
	// Classes is the classifier output size. Must be positive when
	// IncludeTop is set.
	Classes int
	// NumericalNames holds one entry per stage; stages flagged true name
	// their blocks "b{n}" instead of by letter. Default: all true.
	NumericalNames []bool
	// OutputActivation is the classifier activation tag. A complex_
	// prefix selects a complex-aware dense layer. Default "softmax".
	OutputActivation string
}

// withDefaults validates cfg and fills in defaults, returning the resolved
// copy. Configuration errors surface here, before any layer is created.
func (cfg Config) withDefaults() (Config, error) {
	if len(cfg.NumBlocks) == 0 {
		return cfg, fmt.Errorf("resnet: NumBlocks must name at least one stage")
	}
	for i, n := range cfg.NumBlocks {
		if n <= 0 {
			return cfg, fmt.Errorf("resnet: stage %d has invalid block count %d", i, n)
		}
	}
	if cfg.IncludeTop && cfg.Classes <= 0 {
		return cfg, fmt.Errorf("resnet: classification head requires classes > 0, got %d", cfg.Classes)
	}
	if cfg.Block == "" {
		cfg.Block = BasicBlock
	}
	if cfg.Block != BasicBlock && cfg.Block != BottleneckBlock {
		return cfg, fmt.Errorf("resnet: unknown block kind %q", cfg.Block)
	}
	if cfg.Activation == "" {
		cfg.Activation = "crelu"
	}
	if cfg.Filters == 0 {
		cfg.Filters = 64
	}
	if cfg.Filters < 0 {
		return cfg, fmt.Errorf("resnet: invalid base filter count %d", cfg.Filters)
	}
	switch cfg.StemPool {
	case "":
		cfg.StemPool = StemPoolMax
	case StemPoolMax, StemPoolAverage, StemPoolNone:
	default:
		return cfg, fmt.Errorf("resnet: unknown stem pooling %q", cfg.StemPool)
	}
	switch cfg.HeadPool {
	case "":
		cfg.HeadPool = HeadPoolGlobalAverage
	case HeadPoolGlobalAverage, HeadPoolComplexAverage, HeadPoolComplexMax, HeadPoolSpectralAverage:
	default:
		return cfg, fmt.Errorf("resnet: unknown head pooling %q", cfg.HeadPool)
	}
	if cfg.NumericalNames == nil {
		cfg.NumericalNames = make([]bool, len(cfg.NumBlocks))
		for i := range cfg.NumericalNames {
			cfg.NumericalNames[i] = true
		}
	}
	if len(cfg.NumericalNames) != len(cfg.NumBlocks) {
		return cfg, fmt.Errorf("resnet: NumericalNames has %d entries for %d stages",
			len(cfg.NumericalNames), len(cfg.NumBlocks))
	}
	if cfg.OutputActivation == "" {
		cfg.OutputActivation = "softmax"
	}
	return cfg, nil
}

// blockBuilder assembles one residual block given the incoming channel
// count, the stage filter count, and the block's position.
type blockBuilder func(inChan, filters, stage, block int, opts BlockOpts) (*Block, error)

// buildStages runs the stage loop shared by the 2D and 3D assemblers:
// filters double per stage, and every block feeds the next.
func buildStages(inChan int, cfg Config, builder blockBuilder) ([][]*Block, error) {
	stages := make([][]*Block, len(cfg.NumBlocks))
	filters := cfg.Filters
	for stage, iterations := range cfg.NumBlocks {
		blocks := make([]*Block, iterations)
		for block := 0; block < iterations; block++ {
			b, err := builder(inChan, filters, stage, block, BlockOpts{
				NumericalName: block > 0 && cfg.NumericalNames[stage],
				Activation:    cfg.Activation,
			})
			if err != nil {
				return nil, err
			}
			blocks[block] = b
			inChan = b.OutChannels()
		}
		stages[stage] = blocks
		filters *= 2
	}
	return stages, nil
}

// headDense builds the classifier layer, complex-aware when the output
// activation is tagged complex.
func headDense(inDim, classes int, outputActivation string) (nn.Layer, error) {
	name := fmt.Sprintf("fc%d", classes)
	if layers.IsComplexActivation(outputActivation) {
		return layers.NewComplexDense(name, inDim, classes, layers.TrimComplexPrefix(outputActivation))
	}
	return layers.NewDense(name, inDim, classes, outputActivation)
}
