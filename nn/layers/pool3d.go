package layers

import (
	"fmt"
	"math/cmplx"

	"cvnet/ctensor"
)

// pool3d mirrors pool2d over [C,D,H,W] or [B,C,D,H,W] tensors.
type pool3d struct {
	name    string
	kind    poolKind
	pool    int
	stride  int
	padding Padding
}

func (p *pool3d) Name() string { return p.name }

func (p *pool3d) OutputShape(inShape []int) ([]int, error) {
	if len(inShape) != 4 && len(inShape) != 5 {
		return nil, fmt.Errorf("%s: input must be 4D or 5D, got %v", p.name, inShape)
	}
	n := len(inShape)
	out := append([]int(nil), inShape...)
	for i := n - 3; i < n; i++ {
		if p.padding == PaddingValid && inShape[i] < p.pool {
			return nil, fmt.Errorf("%s: input %v smaller than pool size %d", p.name, inShape, p.pool)
		}
		out[i] = convOutDim(inShape[i], p.pool, p.stride, p.padding)
	}
	return out, nil
}

func (p *pool3d) Forward(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	outShape, err := p.OutputShape(x.Shape)
	if err != nil {
		return nil, err
	}

	n := len(x.Shape)
	d, h, w := x.Shape[n-3], x.Shape[n-2], x.Shape[n-1]
	outD, outH, outW := outShape[n-3], outShape[n-2], outShape[n-1]
	lead := 1
	for _, dim := range x.Shape[:n-3] {
		lead *= dim
	}

	padF, padT, padL := 0, 0, 0
	if p.padding == PaddingSame {
		padF = samePad(d, p.pool, p.stride)
		padT = samePad(h, p.pool, p.stride)
		padL = samePad(w, p.pool, p.stride)
	}

	out := ctensor.New(outShape...)
	for c := 0; c < lead; c++ {
		inBase := c * d * h * w
		outBase := c * outD * outH * outW
		for z := 0; z < outD; z++ {
			for y := 0; y < outH; y++ {
				for x2 := 0; x2 < outW; x2++ {
					var best complex128
					bestMod := -1.0
					var sum complex128
					count := 0
					for dz := 0; dz < p.pool; dz++ {
						iz := z*p.stride + dz - padF
						if iz < 0 || iz >= d {
							continue
						}
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
								v := x.Data[inBase+iz*h*w+iy*w+ix]
								sum += v
								count++
								if m := cmplx.Abs(v); m > bestMod {
									bestMod = m
									best = v
								}
							}
						}
					}
					idx := outBase + z*outH*outW + y*outW + x2
					switch p.kind {
					case poolMax:
						out.Data[idx] = best
					case poolAvg:
						if count > 0 {
							out.Data[idx] = sum / complex(float64(count), 0)
						}
					}
				}
			}
		}
	}
	return out, nil
}

// ComplexMaxPool3D pools by the window element of largest modulus.
type ComplexMaxPool3D struct{ pool3d }

func NewComplexMaxPool3D(name string, pool, stride int, padding Padding) (*ComplexMaxPool3D, error) {
	if err := validatePool(name, pool, stride, padding); err != nil {
		return nil, err
	}
	return &ComplexMaxPool3D{pool3d{name: name, kind: poolMax, pool: pool, stride: stride, padding: padding}}, nil
}

// ComplexAvgPool3D pools by the complex mean of each window.
type ComplexAvgPool3D struct{ pool3d }

func NewComplexAvgPool3D(name string, pool, stride int, padding Padding) (*ComplexAvgPool3D, error) {
	if err := validatePool(name, pool, stride, padding); err != nil {
		return nil, err
	}
	return &ComplexAvgPool3D{pool3d{name: name, kind: poolAvg, pool: pool, stride: stride, padding: padding}}, nil
}
