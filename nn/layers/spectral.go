package layers

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/dsp/fourier"

	"cvnet/ctensor"
)

// SpectralPool2D downsamples each channel by truncating its 2D Fourier
// spectrum to the lowest frequencies. Gamma holds the fraction of
// frequencies kept per spatial dimension; the output extent is
// max(1, round(gamma*dim)). Amplitudes are rescaled so a constant signal
// passes through unchanged.
type SpectralPool2D struct {
	name  string
	gamma [2]float64
}

func NewSpectralPool2D(name string, gamma [2]float64) (*SpectralPool2D, error) {
	for _, g := range gamma {
		if g <= 0 || g > 1 {
			return nil, fmt.Errorf("%s: gamma must be in (0, 1], got %v", name, gamma)
		}
	}
	return &SpectralPool2D{name: name, gamma: gamma}, nil
}

func (s *SpectralPool2D) Name() string { return s.name }

func (s *SpectralPool2D) outDims(h, w int) (int, int) {
	oh := int(math.Round(s.gamma[0] * float64(h)))
	ow := int(math.Round(s.gamma[1] * float64(w)))
	if oh < 1 {
		oh = 1
	}
	if ow < 1 {
		ow = 1
	}
	if oh > h {
		oh = h
	}
	if ow > w {
		ow = w
	}
	return oh, ow
}

func (s *SpectralPool2D) OutputShape(inShape []int) ([]int, error) {
	if len(inShape) != 3 && len(inShape) != 4 {
		return nil, fmt.Errorf("%s: input must be 3D or 4D, got %v", s.name, inShape)
	}
	n := len(inShape)
	out := append([]int(nil), inShape...)
	out[n-2], out[n-1] = s.outDims(inShape[n-2], inShape[n-1])
	return out, nil
}

// lowFreqIndices maps the m lowest frequencies of an n-point spectrum to
// their source indices, in standard FFT order of the cropped spectrum.
func lowFreqIndices(n, m int) []int {
	idx := make([]int, m)
	for j := 0; j < m; j++ {
		f := j
		if j >= (m+1)/2 {
			f = j - m
		}
		if f < 0 {
			f += n
		}
		idx[j] = f
	}
	return idx
}

func (s *SpectralPool2D) Forward(x *ctensor.Tensor) (*ctensor.Tensor, error) {
	outShape, err := s.OutputShape(x.Shape)
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

	fftW := fourier.NewCmplxFFT(w)
	fftH := fourier.NewCmplxFFT(h)
	ifftW := fourier.NewCmplxFFT(outW)
	ifftH := fourier.NewCmplxFFT(outH)
	rowIdx := lowFreqIndices(h, outH)
	colIdx := lowFreqIndices(w, outW)
	// Inverse-FFT normalization (1/(outH*outW)) combined with the
	// amplitude rescale (outH*outW)/(h*w).
	scale := complex(1/float64(h*w), 0)

	out := ctensor.New(outShape...)
	spec := make([]complex128, h*w)
	col := make([]complex128, h)
	cropped := make([]complex128, outH*outW)
	icol := make([]complex128, outH)
	for c := 0; c < lead; c++ {
		// Forward transform: rows, then columns.
		for y := 0; y < h; y++ {
			copy(spec[y*w:(y+1)*w], x.Data[c*h*w+y*w:c*h*w+(y+1)*w])
			fftW.Coefficients(spec[y*w:(y+1)*w], spec[y*w:(y+1)*w])
		}
		for x2 := 0; x2 < w; x2++ {
			for y := 0; y < h; y++ {
				col[y] = spec[y*w+x2]
			}
			fftH.Coefficients(col, col)
			for y := 0; y < h; y++ {
				spec[y*w+x2] = col[y]
			}
		}

		// Crop to the lowest frequencies.
		for j, sy := range rowIdx {
			for k, sx := range colIdx {
				cropped[j*outW+k] = spec[sy*w+sx]
			}
		}

		// Inverse transform on the cropped spectrum: columns, then rows.
		for x2 := 0; x2 < outW; x2++ {
			for y := 0; y < outH; y++ {
				icol[y] = cropped[y*outW+x2]
			}
			ifftH.Sequence(icol, icol)
			for y := 0; y < outH; y++ {
				cropped[y*outW+x2] = icol[y]
			}
		}
		for y := 0; y < outH; y++ {
			ifftW.Sequence(cropped[y*outW:(y+1)*outW], cropped[y*outW:(y+1)*outW])
		}
		for i, v := range cropped {
			out.Data[c*outH*outW+i] = v * scale
		}
	}
	return out, nil
}
