package resnet

// Depth presets. Each returns a filled-in Config for one of the named
// depths; callers adjust fields (classes, pooling, activations) before
// passing the result to NewResNet2D or NewResNet3D.
//
// Shallow depths use basic blocks and letter naming throughout. Deeper
// depths use bottleneck blocks and switch the long interior stages to
// numerical block names so they cannot run out of letters. Presets pin
// the classifier activation to sigmoid; a Config built from scratch
// defaults to softmax instead.

// ResNet18Config returns the depth-18 configuration: basic blocks,
// [2,2,2,2].
func ResNet18Config() Config {
	return Config{
		NumBlocks:        []int{2, 2, 2, 2},
		Block:            BasicBlock,
		IncludeTop:       true,
		Classes:          1000,
		OutputActivation: "sigmoid",
	}
}

// ResNet34Config returns the depth-34 configuration: basic blocks,
// [3,4,6,3].
func ResNet34Config() Config {
	return Config{
		NumBlocks:        []int{3, 4, 6, 3},
		Block:            BasicBlock,
		IncludeTop:       true,
		Classes:          1000,
		OutputActivation: "sigmoid",
	}
}

// ResNet50Config returns the depth-50 configuration: bottleneck blocks,
// [3,4,6,3], letter naming in every stage.
func ResNet50Config() Config {
	return Config{
		NumBlocks:        []int{3, 4, 6, 3},
		Block:            BottleneckBlock,
		NumericalNames:   []bool{false, false, false, false},
		IncludeTop:       true,
		Classes:          1000,
		OutputActivation: "sigmoid",
	}
}

// ResNet101Config returns the depth-101 configuration: bottleneck blocks,
// [3,4,23,3], numerical naming in the interior stages.
func ResNet101Config() Config {
	return Config{
		NumBlocks:        []int{3, 4, 23, 3},
		Block:            BottleneckBlock,
		NumericalNames:   []bool{false, true, true, false},
		IncludeTop:       true,
		Classes:          1000,
		OutputActivation: "sigmoid",
	}
}

// ResNet152Config returns the depth-152 configuration: bottleneck blocks,
// [3,8,36,3], numerical naming in the interior stages.
func ResNet152Config() Config {
	return Config{
		NumBlocks:        []int{3, 8, 36, 3},
		Block:            BottleneckBlock,
		NumericalNames:   []bool{false, true, true, false},
		IncludeTop:       true,
		Classes:          1000,
		OutputActivation: "sigmoid",
	}
}

// ResNet200Config returns the depth-200 configuration: bottleneck blocks,
// [3,24,36,3], numerical naming in the interior stages.
func ResNet200Config() Config {
	return Config{
		NumBlocks:        []int{3, 24, 36, 3},
		Block:            BottleneckBlock,
		NumericalNames:   []bool{false, true, true, false},
		IncludeTop:       true,
		Classes:          1000,
		OutputActivation: "sigmoid",
	}
}

// PresetConfigs maps depth preset names to their configurations.
var PresetConfigs = map[string]func() Config{
	"resnet18":  ResNet18Config,
	"resnet34":  ResNet34Config,
	"resnet50":  ResNet50Config,
	"resnet101": ResNet101Config,
	"resnet152": ResNet152Config,
	"resnet200": ResNet200Config,
}
