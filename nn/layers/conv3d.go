package layers

import (
	"fmt"

	"cvnet/ctensor"
	"cvnet/nn"
)

// ComplexConv3D is a complex-valued 3D convolution over [C,D,H,W] or
// [B,C,D,H,W] tensors. Kernels are cubic.
type ComplexConv3D struct {
	name            string
	inChan, outChan int
	k               int
	stride          int
	padding         Padding
	useBias         bool

	W *ctensor.Tensor // weights: [outChan, inChan, k, k, k]
	B *ctensor.Tensor // bias: [outChan], unused when useBias is false
}

// NewComplexConv3D creates a new complex 3D convolution layer.
func NewComplexConv3D(name string, inChan, outChan, kernel, stride int, padding Padding, useBias bool) (*ComplexConv3D, error) {
	if inChan <= 0 || outChan <= 0 || kernel <= 0 || stride <= 0 {
		return nil, fmt.Errorf("%s: invalid conv parameters: in=%d out=%d kernel=%d stride=%d",
			name, inChan, outChan, kernel, stride)
	}
	if err := padding.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	c := &ComplexConv3D{
		name:    name,
		inChan:  inChan,
		outChan: outChan,
		k:       kernel,
		stride:  stride,
		padding: padding,
		useBias: useBias,
		W:       ctensor.New(outChan, inChan, kernel, kernel, kernel),
		B:       ctensor.New(outChan),
	}
	initComplexHe(c.W, inChan*kernel*kernel*kernel)
	return c, nil
}

func (c *ComplexConv3D) Name() string { return c.name }

func (c *ComplexConv3D) Params() []nn.Param {
	if c.useBias {
		return []nn.Param{{Name: "weight", Value: c.W}, {Name: "bias", Value: c.B}}
	}
	return []nn.Param{{Name: "weight", Value: c.W}}
}

func (c *ComplexConv3D) OutputShape(inShape []int) ([]int, error) {
	if len(inShape) != 4 && len(inShape) != 5 {
		return nil, fmt.Errorf("%s: input must be 4D or 5D, got %v", c.name, inShape)
	}
	n := len(inShape)
	if inShape[n-4] != c.inChan {
		return nil, fmt.Errorf("%s: expected %d input channels, got %d", c.name, c.inChan, inShape[n-4])
	}
	for i := n - 3; i < n; i++ {
		if c.padding == PaddingValid && inShape[i] < c.k {
			return nil, fmt.Errorf("%s: input %v smaller than kernel %d", c.name, inShape, c.k)
		}
	}
	out := append([]int(nil), inShape...)
	out[n-4] = c.outChan
	for i := n - 3; i < n; i++ {
		out[i] = convOutDim(inShape[i], c.k, c.stride, c.padding)
	}
	return out, nil
}

func (c *ComplexConv3D) Forward(input *ctensor.Tensor) (*ctensor.Tensor, error) {
	outShape, err := c.OutputShape(input.Shape)
	if err != nil {
		return nil, err
	}

	n := len(input.Shape)
	batch := 1
	if n == 5 {
		batch = input.Shape[0]
	}
	d, h, w := input.Shape[n-3], input.Shape[n-2], input.Shape[n-1]
	outD, outH, outW := outShape[n-3], outShape[n-2], outShape[n-1]

	padF, padT, padL := 0, 0, 0
	if c.padding == PaddingSame {
		padF = samePad(d, c.k, c.stride)
		padT = samePad(h, c.k, c.stride)
		padL = samePad(w, c.k, c.stride)
	}

	k := c.k
	output := ctensor.New(outShape...)
	for b := 0; b < batch; b++ {
		inBase := b * c.inChan * d * h * w
		outBase := b * c.outChan * outD * outH * outW
		for oc := 0; oc < c.outChan; oc++ {
			for z := 0; z < outD; z++ {
				for y := 0; y < outH; y++ {
					for x := 0; x < outW; x++ {
						var sum complex128
						if c.useBias {
							sum = c.B.Data[oc]
						}
						for ic := 0; ic < c.inChan; ic++ {
							for dz := 0; dz < k; dz++ {
								iz := z*c.stride + dz - padF
								if iz < 0 || iz >= d {
									continue
								}
								for dy := 0; dy < k; dy++ {
									iy := y*c.stride + dy - padT
									if iy < 0 || iy >= h {
										continue
									}
									for dx := 0; dx < k; dx++ {
										ix := x*c.stride + dx - padL
										if ix < 0 || ix >= w {
											continue
										}
										wIdx := ((oc*c.inChan+ic)*k+dz)*k*k + dy*k + dx
										inIdx := inBase + ic*d*h*w + iz*h*w + iy*w + ix
										sum += input.Data[inIdx] * c.W.Data[wIdx]
									}
								}
							}
						}
						output.Data[outBase+oc*outD*outH*outW+z*outH*outW+y*outW+x] = sum
					}
				}
			}
		}
	}
	return output, nil
}
