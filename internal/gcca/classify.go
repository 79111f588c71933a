package gcca

import (
	"fmt"
	"math"
)

// Classify maps a measured footprint onto exactly one label of schema.
//
// Values at or below the A threshold are AA. Above that, value v belongs to
// band k when Upper[k] <= v < Upper[k+1]. Values at or beyond the last
// threshold saturate into the last band.
func Classify(value float64, schema BandSchema) (string, error) {
	if err := schema.Validate(); err != nil {
		return "", err
	}
	if math.IsNaN(value) {
		return "", fmt.Errorf("%w: %v", ErrInvalidValue, value)
	}

	bands := schema.Bands
	if value <= float64(bands[1].Upper) {
		return LabelNearZero, nil
	}

	for k := 1; k < len(bands)-1; k++ {
		if float64(bands[k].Upper) <= value && value < float64(bands[k+1].Upper) {
			return bands[k].Label, nil
		}
	}

	return bands[len(bands)-1].Label, nil
}
