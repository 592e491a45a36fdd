package layers

import (
	"fmt"
	"math/cmplx"

	"cvnet/ctensor"
)

type poolKind int

const (
	poolMax poolKind = iota
	poolAvg
)

// pool2d carries the shared bookkeeping of 2D pooling layers. Max pooling
// selects the element of largest modulus in each window; average pooling
// takes the complex mean over the valid window elements.
type pool2d struct {
	name    string
	kind    poolKind
	pool    int
	stride  int
	padding Padding
}

func (p *pool2d) Name() string { return p.name }

func (p *pool2d) OutputShape(inShape []int) ([]int, error) {
	if len(inShape) != 3 && len(inShape) != 4 {
		return nil, fmt.Errorf("%s: input must be 3D or 4D, got %v", p.name, inShape)
	}
	n := len(inShape)
	h, w := inShape[n-2], inShape[n-1]
	if p.padding == PaddingValid && (h < p.pool || w < p.pool) {
		return nil, fmt.Errorf("%s: input %dx%d smaller than pool size %d", p.name, h, w, p.pool)
	}
	out := append([]int(nil), inShape...)
	out[n-2] = convOutDim(h, p.pool, p.stride, p.padding)
	out[n-1] = convOutDim(w, p.pool, p.stride, p.padding)
	return out, nil
}

func (p *pool2d) Forward(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	outShape, err := p.OutputShape(x.Shape)
	if err != nil {
		return nil, err
	}

	n := len(x.Shape)
	h, w := x.Shape[n-2], x.Shape[n-1]
	outH, outW := outShape[n-2], outShape[n-1]
	lead := 1
	for _, d := range x.Shape[:n-2] {
		lead *= d
	}

	padT, padL := 0, 0
	if p.padding == PaddingSame {
		padT = samePad(h, p.pool, p.stride)
		padL = samePad(w, p.pool, p.stride)
	}

	out := ctensor.New(outShape...)
	for c := 0; c < lead; c++ {
		inBase := c * h * w
		outBase := c * outH * outW
		for y := 0; y < outH; y++ {
			for x2 := 0; x2 < outW; x2++ {
				var best complex128
				bestMod := -1.0
				var sum complex128
				count := 0
				for dy := 0; dy < p.pool; dy++ {
					iy := y*p.stride + dy - padT
					if iy < 0 || iy >= h {
						continue
					}
					for dx := 0; dx < p.pool; dx++ {
						ix := x2*p.stride + dx - padL
						if ix < 0 || ix >= w {
							continue
						}
						v := x.Data[inBase+iy*w+ix]
						sum += v
						count++
						if m := cmplx.Abs(v); m > bestMod {
							bestMod = m
							best = v
						}
					}
				}
				switch p.kind {
				case poolMax:
					out.Data[outBase+y*outW+x2] = best
				case poolAvg:
					if count > 0 {
						out.Data[outBase+y*outW+x2] = sum / complex(float64(count), 0)
					}
				}
			}
		}
	}
	return out, nil
}

// ComplexMaxPool2D pools by the window element of largest modulus.
type ComplexMaxPool2D struct{ pool2d }

func NewComplexMaxPool2D(name string, pool, stride int, padding Padding) (*ComplexMaxPool2D, error) {
	if err := validatePool(name, pool, stride, padding); err != nil {
		return nil, err
	}
	return &ComplexMaxPool2D{pool2d{name: name, kind: poolMax, pool: pool, stride: stride, padding: padding}}, nil
}

// ComplexAvgPool2D pools by the complex mean of each window.
type ComplexAvgPool2D struct{ pool2d }

func NewComplexAvgPool2D(name string, pool, stride int, padding Padding) (*ComplexAvgPool2D, error) {
	if err := validatePool(name, pool, stride, padding); err != nil {
		return nil, err
	}
	return &ComplexAvgPool2D{pool2d{name: name, kind: poolAvg, pool: pool, stride: stride, padding: padding}}, nil
}

func validatePool(name string, pool, stride int, padding Padding) error {
	if pool <= 0 || stride <= 0 {
		return fmt.Errorf("%s: invalid pool parameters: pool=%d stride=%d", name, pool, stride)
	}
	if err := padding.validate(); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return nil
}

// GlobalAvgPool collapses every spatial dimension of an unbatched feature
// map to the complex mean per channel, producing a [C] tensor.
type GlobalAvgPool struct {
	name string
}

func NewGlobalAvgPool(name string) *GlobalAvgPool {
	return &GlobalAvgPool{name: name}
}

func (g *GlobalAvgPool) Name() string { return g.name }

func (g *GlobalAvgPool) OutputShape(inShape []int) ([]int, error) {
	if len(inShape) < 2 {
		return nil, fmt.Errorf("%s: input must have spatial dimensions, got %v", g.name, inShape)
	}
	return []int{inShape[0]}, nil
}

func (g *GlobalAvgPool) Forward(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	if _, err := g.OutputShape(x.Shape); err != nil {
		return nil, err
	}
	channels := x.Shape[0]
	inner := len(x.Data) / channels
	out := ctensor.New(channels)
	for c := 0; c < channels; c++ {
		var sum complex128
		for i := 0; i < inner; i++ {
			sum += x.Data[c*inner+i]
		}
		out.Data[c] = sum / complex(float64(inner), 0)
	}
	return out, nil
}
