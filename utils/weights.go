package utils

import (
	"encoding/json"
	"fmt"
	"os"

	"cvnet/ctensor"
)

// WeightData is one serializable parameter tensor, stored as separate real
// and imaginary planes.
type WeightData struct {
	Shape []int     `json:"shape"`
	Real  []float64 `json:"real"`
	Imag  []float64 `json:"imag"`
}

// LayerWeights maps parameter names ("weight", "bias", "gamma_rr", ...) to
// their data within one layer.
type LayerWeights map[string]*WeightData

// ModelWeights is a full weight archive keyed by layer name. Layer names
// are the compatibility contract: an archive written by one build of a
// configuration loads into any other build of the same configuration.
type ModelWeights struct {
	Version string                  `json:"version"`
	Layers  map[string]LayerWeights `json:"layers"`
}

// WeightsVersion is the current archive format version.
const WeightsVersion = "1"

// NewModelWeights returns an empty archive at the current version.
func NewModelWeights() *ModelWeights {
	return &ModelWeights{Version: WeightsVersion, Layers: map[string]LayerWeights{}}
}

// SaveWeights saves a weight archive to a JSON file.
func SaveWeights(filepath string, weights *ModelWeights) error {
	data, err := json.MarshalIndent(weights, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal weights: %w", err)
	}
	return os.WriteFile(filepath, data, 0644)
}

// LoadWeights loads a weight archive from a JSON file.
func LoadWeights(filepath string) (*ModelWeights, error) {
	data, err := os.ReadFile(filepath)
	if err != nil {
		return nil, fmt.Errorf("failed to read weights file: %w", err)
	}
	var weights ModelWeights
	if err := json.Unmarshal(data, &weights); err != nil {
		return nil, fmt.Errorf("failed to unmarshal weights: %w", err)
	}
	if weights.Version != WeightsVersion {
		return nil, fmt.Errorf("unsupported weights version %q", weights.Version)
	}
	return &weights, nil
}

// TensorToWeightData converts a tensor to serializable weight data.
func TensorToWeightData(t *ctensor.Tensor) *WeightData {
	wd := &WeightData{
		Shape: append([]int(nil), t.Shape...),
		Real:  make([]float64, len(t.Data)),
		Imag:  make([]float64, len(t.Data)),
	}
	for i, v := range t.Data {
		wd.Real[i] = real(v)
		wd.Imag[i] = imag(v)
	}
	return wd
}

// WeightDataToTensor converts weight data back to a tensor.
func WeightDataToTensor(wd *WeightData) (*ctensor.Tensor, error) {
	t := ctensor.New(wd.Shape...)
	if len(wd.Real) != len(t.Data) || len(wd.Imag) != len(t.Data) {
		return nil, fmt.Errorf("weight data length %d/%d does not match shape %v",
			len(wd.Real), len(wd.Imag), wd.Shape)
	}
	for i := range t.Data {
		t.Data[i] = complex(wd.Real[i], wd.Imag[i])
	}
	return t, nil
}
