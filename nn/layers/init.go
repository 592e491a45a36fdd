package layers

import (
	"math"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"

	"cvnet/ctensor"
)

// initComplexHe fills t with complex He-style initial values: independent
// real and imaginary parts drawn from N(0, 1/fanIn).
func initComplexHe(t *ctensor.Tensor, fanIn int) {
	dist := distuv.Normal{
		Mu:    0,
		Sigma: math.Sqrt(1.0 / float64(fanIn)),
		Src:   rand.NewSource(rand.Uint64()),
	}
	for i := range t.Data {
		t.Data[i] = complex(dist.Rand(), dist.Rand())
	}
}
