package layers

import (
	"fmt"

	"cvnet/ctensor"
	"cvnet/nn"
)

// ComplexConv2D is a complex-valued 2D convolution over [C,H,W] or
// [B,C,H,W] tensors.
type ComplexConv2D struct {
	name            string
	inChan, outChan int
	kh, kw          int
	stride          int
	padding         Padding
	useBias         bool

	W *ctensor.Tensor // weights: [outChan, inChan, kh, kw]
	B *ctensor.Tensor // bias: [outChan], unused when useBias is false
}

// NewComplexConv2D creates a new complex convolution layer.
func NewComplexConv2D(name string, inChan, outChan, kh, kw, stride int, padding Padding, useBias bool) (*ComplexConv2D, error) {
	if inChan <= 0 || outChan <= 0 || kh <= 0 || kw <= 0 || stride <= 0 {
		return nil, fmt.Errorf("%s: invalid conv parameters: in=%d out=%d kernel=%dx%d stride=%d",
			name, inChan, outChan, kh, kw, stride)
	}
	if err := padding.validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}
	c := &ComplexConv2D{
		name:    name,
		inChan:  inChan,
		outChan: outChan,
		kh:      kh,
		kw:      kw,
		stride:  stride,
		padding: padding,
		useBias: useBias,
		W:       ctensor.New(outChan, inChan, kh, kw),
		B:       ctensor.New(outChan),
	}
	initComplexHe(c.W, inChan*kh*kw)
	return c, nil
}

func (c *ComplexConv2D) Name() string { return c.name }

func (c *ComplexConv2D) Params() []nn.Param {
	if c.useBias {
		return []nn.Param{{Name: "weight", Value: c.W}, {Name: "bias", Value: c.B}}
	}
	return []nn.Param{{Name: "weight", Value: c.W}}
}

func (c *ComplexConv2D) OutputShape(inShape []int) ([]int, error) {
	if len(inShape) != 3 && len(inShape) != 4 {
		return nil, fmt.Errorf("%s: input must be 3D or 4D, got %v", c.name, inShape)
	}
	n := len(inShape)
	if inShape[n-3] != c.inChan {
		return nil, fmt.Errorf("%s: expected %d input channels, got %d", c.name, c.inChan, inShape[n-3])
	}
	h, w := inShape[n-2], inShape[n-1]
	if c.padding == PaddingValid && (h < c.kh || w < c.kw) {
		return nil, fmt.Errorf("%s: input %dx%d smaller than kernel %dx%d", c.name, h, w, c.kh, c.kw)
	}
	out := append([]int(nil), inShape...)
	out[n-3] = c.outChan
	out[n-2] = convOutDim(h, c.kh, c.stride, c.padding)
	out[n-1] = convOutDim(w, c.kw, c.stride, c.padding)
	return out, nil
}

func (c *ComplexConv2D) Forward(input *ctensor.Tensor) (*ctensor.Tensor, error) {
	outShape, err := c.OutputShape(input.Shape)
	if err != nil {
		return nil, err
	}

	n := len(input.Shape)
	batch := 1
	if n == 4 {
		batch = input.Shape[0]
	}
	h, w := input.Shape[n-2], input.Shape[n-1]
	outH, outW := outShape[n-2], outShape[n-1]

	padT, padL := 0, 0
	if c.padding == PaddingSame {
		padT = samePad(h, c.kh, c.stride)
		padL = samePad(w, c.kw, c.stride)
	}

	output := ctensor.New(outShape...)
	for b := 0; b < batch; b++ {
		inBase := b * c.inChan * h * w
		outBase := b * c.outChan * outH * outW
		for oc := 0; oc < c.outChan; oc++ {
			for y := 0; y < outH; y++ {
				for x := 0; x < outW; x++ {
					var sum complex128
					if c.useBias {
						sum = c.B.Data[oc]
					}
					for ic := 0; ic < c.inChan; ic++ {
						for dy := 0; dy < c.kh; dy++ {
							iy := y*c.stride + dy - padT
							if iy < 0 || iy >= h {
								continue
							}
							for dx := 0; dx < c.kw; dx++ {
								ix := x*c.stride + dx - padL
								if ix < 0 || ix >= w {
									continue
								}
								wIdx := oc*c.inChan*c.kh*c.kw + ic*c.kh*c.kw + dy*c.kw + dx
								inIdx := inBase + ic*h*w + iy*w + ix
								sum += input.Data[inIdx] * c.W.Data[wIdx]
							}
						}
					}
					output.Data[outBase+oc*outH*outW+y*outW+x] = sum
				}
			}
		}
	}
	return output, nil
}
