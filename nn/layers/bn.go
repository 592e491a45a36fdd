package layers

import (
	"fmt"
	"math"

	"cvnet/ctensor"
	"cvnet/nn"
)

// ComplexBatchNorm normalizes complex feature maps per channel by whitening
// the 2x2 covariance of (re, im), then applies the learned Gamma scaling and
// Beta shift. This is inference-mode normalization driven by the moving
// statistics; the statistics and parameters are loadable through Params.
type ComplexBatchNorm struct {
	name     string
	channels int
	eps      float64

	// Learned parameters, one entry per channel. Gamma is the symmetric
	// 2x2 scaling [[rr, ri], [ri, ii]]; Beta is a complex shift.
	GammaRR *ctensor.Tensor
	GammaRI *ctensor.Tensor
	GammaII *ctensor.Tensor
	Beta    *ctensor.Tensor

	// Moving statistics accumulated during training.
	MovingMean *ctensor.Tensor
	MovingVrr  *ctensor.Tensor
	MovingVri  *ctensor.Tensor
	MovingVii  *ctensor.Tensor
}

// NewComplexBatchNorm creates a normalization layer over the given channel
// count with epsilon 1e-5. Gamma starts at 1/sqrt(2) on the diagonal and the
// moving covariance likewise, so a fresh layer maps unit-variance inputs to
// unit-variance outputs.
func NewComplexBatchNorm(name string, channels int) (*ComplexBatchNorm, error) {
	if channels <= 0 {
		return nil, fmt.Errorf("%s: invalid channel count %d", name, channels)
	}
	b := &ComplexBatchNorm{
		name:       name,
		channels:   channels,
		eps:        1e-5,
		GammaRR:    ctensor.New(channels),
		GammaRI:    ctensor.New(channels),
		GammaII:    ctensor.New(channels),
		Beta:       ctensor.New(channels),
		MovingMean: ctensor.New(channels),
		MovingVrr:  ctensor.New(channels),
		MovingVri:  ctensor.New(channels),
		MovingVii:  ctensor.New(channels),
	}
	invSqrt2 := complex(1/math.Sqrt2, 0)
	for c := 0; c < channels; c++ {
		b.GammaRR.Data[c] = invSqrt2
		b.GammaII.Data[c] = invSqrt2
		b.MovingVrr.Data[c] = invSqrt2
		b.MovingVii.Data[c] = invSqrt2
	}
	return b, nil
}

func (b *ComplexBatchNorm) Name() string { return b.name }

func (b *ComplexBatchNorm) Params() []nn.Param {
	return []nn.Param{
		{Name: "gamma_rr", Value: b.GammaRR},
		{Name: "gamma_ri", Value: b.GammaRI},
		{Name: "gamma_ii", Value: b.GammaII},
		{Name: "beta", Value: b.Beta},
		{Name: "moving_mean", Value: b.MovingMean},
		{Name: "moving_vrr", Value: b.MovingVrr},
		{Name: "moving_vri", Value: b.MovingVri},
		{Name: "moving_vii", Value: b.MovingVii},
	}
}

// channelAxis locates the channel dimension: axis 0 for unbatched input,
// axis 1 when a batch dimension leads.
func (b *ComplexBatchNorm) channelAxis(shape []int) (int, error) {
	if len(shape) >= 1 && shape[0] == b.channels {
		return 0, nil
	}
	if len(shape) >= 2 && shape[1] == b.channels {
		return 1, nil
	}
	return 0, fmt.Errorf("%s: no axis with %d channels in shape %v", b.name, b.channels, shape)
}

func (b *ComplexBatchNorm) OutputShape(inShape []int) ([]int, error) {
	if _, err := b.channelAxis(inShape); err != nil {
		return nil, err
	}
	return append([]int(nil), inShape...), nil
}

func (b *ComplexBatchNorm) Forward(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	axis, err := b.channelAxis(x.Shape)
	if err != nil {
		return nil, err
	}

	// Extent of one channel slab and count of leading repeats.
	inner := 1
	for _, d := range x.Shape[axis+1:] {
		inner *= d
	}
	lead := 1
	for _, d := range x.Shape[:axis] {
		lead *= d
	}

	out := ctensor.New(x.Shape...)
	for c := 0; c < b.channels; c++ {
		// Inverse square root of the 2x2 covariance for this channel.
		vrr := real(b.MovingVrr.Data[c]) + b.eps
		vii := real(b.MovingVii.Data[c]) + b.eps
		vri := real(b.MovingVri.Data[c])
		det := vrr*vii - vri*vri
		s := math.Sqrt(det)
		t := math.Sqrt(vrr + vii + 2*s)
		inv := 1 / (s * t)
		wrr := (vii + s) * inv
		wii := (vrr + s) * inv
		wri := -vri * inv

		grr := real(b.GammaRR.Data[c])
		gri := real(b.GammaRI.Data[c])
		gii := real(b.GammaII.Data[c])
		mean := b.MovingMean.Data[c]
		beta := b.Beta.Data[c]

		for l := 0; l < lead; l++ {
			base := (l*b.channels + c) * inner
			for i := 0; i < inner; i++ {
				z := x.Data[base+i] - mean
				re := wrr*real(z) + wri*imag(z)
				im := wri*real(z) + wii*imag(z)
				out.Data[base+i] = complex(grr*re+gri*im, gri*re+gii*im) + beta
			}
		}
	}
	return out, nil
}
