// cvnet-infer: builds a complex-valued ResNet, runs one inference pass on
// synthetic input, and optionally saves or loads the weight archive.
//
// Usage:
//
//	cvnet-infer --model=resnet18 --input="1 32 32" --classes=3 --save=weights.json
package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"sort"
	"time"

	"cvnet/ctensor"
	"cvnet/resnet"
	"cvnet/utils"
)

var (
	modelName   = flag.String("model", "resnet18", "Depth preset: resnet18, resnet34, resnet50, resnet101, resnet152, resnet200")
	inputShape  = flag.String("input", "1 32 32", "Channels-first input shape: \"C H W\" for 2D, \"C D H W\" for 3D")
	classes     = flag.Int("classes", 10, "Number of classes")
	seed        = flag.Int64("seed", 42, "Random seed")
	weightsFile = flag.String("weights", "", "Weight archive to load (JSON)")
	saveFile    = flag.String("save", "", "Weight archive to save after building (JSON)")
	verbose     = flag.Bool("verbose", true, "Verbose output")
)

func main() {
	flag.Parse()
	utils.Verbose = *verbose
	rand.Seed(*seed)

	presetFn, ok := resnet.PresetConfigs[*modelName]
	if !ok {
		fmt.Fprintf(os.Stderr, "unknown model %q\n", *modelName)
		os.Exit(1)
	}
	shape, err := utils.ParseShape(*inputShape)
	if err != nil {
		fmt.Fprintf(os.Stderr, "invalid input shape: %v\n", err)
		os.Exit(1)
	}

	cfg := presetFn()
	cfg.Classes = *classes

	stats := &utils.TimingStats{}
	totalStart := time.Now()

	buildStart := time.Now()
	var net *resnet.Network
	switch len(shape) {
	case 3:
		net, err = resnet.NewResNet2D(shape, cfg)
	case 4:
		net, err = resnet.NewResNet3D(shape, cfg)
	default:
		err = fmt.Errorf("input shape must have rank 3 or 4, got %v", shape)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "failed to build %s: %v\n", *modelName, err)
		os.Exit(1)
	}
	stats.ModelBuildTime = time.Since(buildStart)

	if *weightsFile != "" {
		ioStart := time.Now()
		mw, err := utils.LoadWeights(*weightsFile)
		if err != nil {
			fmt.Fprintf(os.Stderr, "failed to load weights: %v\n", err)
			os.Exit(1)
		}
		if err := net.ApplyWeights(mw); err != nil {
			fmt.Fprintf(os.Stderr, "failed to apply weights: %v\n", err)
			os.Exit(1)
		}
		stats.WeightsIOTime += time.Since(ioStart)
	}

	input := ctensor.New(shape...)
	for i := range input.Data {
		input.Data[i] = complex(rand.NormFloat64(), rand.NormFloat64())
	}

	forwardStart := time.Now()
	output, err := net.Forward(input)
	if err != nil {
		fmt.Fprintf(os.Stderr, "forward pass failed: %v\n", err)
		os.Exit(1)
	}
	stats.ForwardPassTime = time.Since(forwardStart)

	fmt.Printf("%s, input %v -> output %v\n", *modelName, shape, output.Shape)
	printTop(output, 5)

	if *saveFile != "" {
		ioStart := time.Now()
		if err := utils.SaveWeights(*saveFile, net.Weights()); err != nil {
			fmt.Fprintf(os.Stderr, "failed to save weights: %v\n", err)
			os.Exit(1)
		}
		stats.WeightsIOTime += time.Since(ioStart)
		fmt.Printf("weights saved to %s\n", *saveFile)
	}

	stats.TotalTime = time.Since(totalStart)
	utils.PrintTimingStats(stats)
}

// printTop prints the k highest-scoring classes by the real part of the
// classifier output.
func printTop(output *ctensor.Tensor, k int) {
	type scored struct {
		class int
		score float64
	}
	scores := make([]scored, len(output.Data))
	for i, v := range output.Data {
		scores[i] = scored{class: i, score: real(v)}
	}
	sort.Slice(scores, func(i, j int) bool { return scores[i].score > scores[j].score })
	if k > len(scores) {
		k = len(scores)
	}
	for _, s := range scores[:k] {
		fmt.Printf("  class %d: %.4f\n", s.class, s.score)
	}
}
