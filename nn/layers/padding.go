package layers

import (
	"fmt"

	"cvnet/ctensor"
)

// Padding selects the spatial padding mode of convolution and pooling
// layers.
type Padding string

const (
	PaddingValid Padding = "valid"
	PaddingSame  Padding = "same"
)

func (p Padding) validate() error {
	switch p {
	case PaddingValid, PaddingSame:
		return nil
	}
	return fmt.Errorf("unsupported padding %q", p)
}

// samePad returns the leading pad amount for "same" padding, matching the
// convention that puts the extra element on the trailing side when the
// total pad is odd.
func samePad(in, k, stride int) int {
	out := (in + stride - 1) / stride
	total := (out-1)*stride + k - in
	if total < 0 {
		total = 0
	}
	return total / 2
}

func convOutDim(in, k, stride int, padding Padding) int {
	if padding == PaddingSame {
		return (in + stride - 1) / stride
	}
	return (in-k)/stride + 1
}

// ZeroPadding2D pads the two trailing spatial dimensions with zeros on
// every side.
type ZeroPadding2D struct {
	name string
	pad  int
}

func NewZeroPadding2D(name string, pad int) *ZeroPadding2D {
	return &ZeroPadding2D{name: name, pad: pad}
}

func (z *ZeroPadding2D) Name() string { return z.name }

func (z *ZeroPadding2D) OutputShape(inShape []int) ([]int, error) {
	if len(inShape) < 3 {
		return nil, fmt.Errorf("%s: input must have at least 3 dimensions, got %v", z.name, inShape)
	}
	n := len(inShape)
	out := append([]int(nil), inShape...)
	out[n-2] += 2 * z.pad
	out[n-1] += 2 * z.pad
	return out, nil
}

func (z *ZeroPadding2D) Forward(input *ctensor.Tensor) (*ctensor.Tensor, error) {
	outShape, err := z.OutputShape(input.Shape)
	if err != nil {
		return nil, err
	}
	n := len(input.Shape)
	h, w := input.Shape[n-2], input.Shape[n-1]
	outH, outW := outShape[n-2], outShape[n-1]

	planes := input.Size() / (h * w)
	output := ctensor.New(outShape...)
	for p := 0; p < planes; p++ {
		src := p * h * w
		dst := p*outH*outW + z.pad*outW + z.pad
		for y := 0; y < h; y++ {
			copy(output.Data[dst+y*outW:dst+y*outW+w], input.Data[src+y*w:src+(y+1)*w])
		}
	}
	return output, nil
}

// ZeroPadding3D pads the three trailing spatial dimensions with zeros on
// every side.
type ZeroPadding3D struct {
	name string
	pad  int
}

func NewZeroPadding3D(name string, pad int) *ZeroPadding3D {
	return &ZeroPadding3D{name: name, pad: pad}
}

func (z *ZeroPadding3D) Name() string { return z.name }

func (z *ZeroPadding3D) OutputShape(inShape []int) ([]int, error) {
	if len(inShape) < 4 {
		return nil, fmt.Errorf("%s: input must have at least 4 dimensions, got %v", z.name, inShape)
	}
	n := len(inShape)
	out := append([]int(nil), inShape...)
	out[n-3] += 2 * z.pad
	out[n-2] += 2 * z.pad
	out[n-1] += 2 * z.pad
	return out, nil
}

func (z *ZeroPadding3D) Forward(input *ctensor.Tensor) (*ctensor.Tensor, error) {
	outShape, err := z.OutputShape(input.Shape)
	if err != nil {
		return nil, err
	}
	n := len(input.Shape)
	d, h, w := input.Shape[n-3], input.Shape[n-2], input.Shape[n-1]
	outD, outH, outW := outShape[n-3], outShape[n-2], outShape[n-1]

	volumes := input.Size() / (d * h * w)
	output := ctensor.New(outShape...)
	for v := 0; v < volumes; v++ {
		for zc := 0; zc < d; zc++ {
			src := (v*d + zc) * h * w
			dst := (v*outD+zc+z.pad)*outH*outW + z.pad*outW + z.pad
			for y := 0; y < h; y++ {
				copy(output.Data[dst+y*outW:dst+y*outW+w], input.Data[src+y*w:src+(y+1)*w])
			}
		}
	}
	return output, nil
}
