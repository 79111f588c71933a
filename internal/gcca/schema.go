// Package gcca derives GCCA carbon bands from a clinker-to-cement ratio and
// classifies measured footprints against them.
package gcca

import (
	"errors"
	"fmt"
	"math"
	"slices"

	"github.com/shopspring/decimal"
)

const (
	LabelNearZero     = "AA"
	DefaultClassCount = 7
	MaxClassCount     = 7
)

var classLabels = [MaxClassCount]string{"A", "B", "C", "D", "E", "F", "G"}

var (
	baseIntercept = decimal.NewFromInt(40)
	baseSlope     = decimal.NewFromInt(85)
	maxThreshold  = decimal.NewFromInt(math.MaxInt64)
)

// Band is a class label with its inclusive upper threshold in kg CO2e per
// functional unit.
type Band struct {
	Label string `json:"label"`
	Upper int64  `json:"upper"`
}

// BandSchema is ordered by increasing threshold. Bands[0] is always AA at 0.
type BandSchema struct {
	ClinkerRatio float64  `json:"clinker_ratio"`
	Resistance   float64  `json:"resistance,omitempty"`
	Base         float64  `json:"base"`
	Bands        []Band   `json:"bands"`
	Warnings     []string `json:"warnings,omitempty"`
}

// BuildSchema computes base = 40 + 85*clinkerRatio and threshold[i] =
// floor(base*i) for i in 1..classCount, labelled A onwards.
func BuildSchema(clinkerRatio float64, classCount int) (BandSchema, error) {
	if math.IsNaN(clinkerRatio) || math.IsInf(clinkerRatio, 0) {
		return BandSchema{}, &InvalidSchemaError{ClinkerRatio: clinkerRatio, Index: -1, Reason: "non-finite base"}
	}

	base := baseIntercept.Add(baseSlope.Mul(decimal.NewFromFloat(clinkerRatio)))
	schema, err := schemaFromBase(base, classCount)
	if err != nil {
		var se *InvalidSchemaError
		if errors.As(err, &se) {
			se.ClinkerRatio = clinkerRatio
		}
		return BandSchema{}, err
	}

	schema.ClinkerRatio = clinkerRatio
	if clinkerRatio < 0 || clinkerRatio > 1 {
		schema.Warnings = append(schema.Warnings,
			fmt.Sprintf("clinker ratio %v outside [0,1]", clinkerRatio))
	}

	return schema, nil
}

func schemaFromBase(base decimal.Decimal, classCount int) (BandSchema, error) {
	if classCount < 1 || classCount > MaxClassCount {
		return BandSchema{}, fmt.Errorf("%w: %d not in 1..%d", ErrClassCountOutRange, classCount, MaxClassCount)
	}

	if base.Mul(decimal.NewFromInt(int64(classCount))).GreaterThan(maxThreshold) {
		return BandSchema{}, &InvalidSchemaError{Index: -1, Reason: "non-finite base"}
	}

	bands := make([]Band, 0, classCount+1)
	bands = append(bands, Band{Label: LabelNearZero, Upper: 0})
	for i := 1; i <= classCount; i++ {
		upper := base.Mul(decimal.NewFromInt(int64(i))).Floor().IntPart()
		bands = append(bands, Band{Label: classLabels[i-1], Upper: upper})
	}

	schema := BandSchema{Base: base.InexactFloat64(), Bands: bands}
	if err := schema.Validate(); err != nil {
		return BandSchema{}, err
	}

	return schema, nil
}

// Validate checks that AA is first at 0, that at least one class follows, and
// that thresholds strictly increase.
func (s BandSchema) Validate() error {
	if len(s.Bands) < 2 {
		return &InvalidSchemaError{ClinkerRatio: s.ClinkerRatio, Index: -1, Reason: "at least one class above AA required"}
	}
	if s.Bands[0].Label != LabelNearZero || s.Bands[0].Upper != 0 {
		return &InvalidSchemaError{ClinkerRatio: s.ClinkerRatio, Index: 0, Reason: "first band must be AA at 0"}
	}

	seen := make(map[string]struct{}, len(s.Bands))
	for i, b := range s.Bands {
		if b.Label == "" {
			return &InvalidSchemaError{ClinkerRatio: s.ClinkerRatio, Index: i, Reason: "empty label"}
		}
		if _, dup := seen[b.Label]; dup {
			return &InvalidSchemaError{ClinkerRatio: s.ClinkerRatio, Index: i, Reason: "duplicate label " + b.Label}
		}
		seen[b.Label] = struct{}{}

		if i > 0 && b.Upper <= s.Bands[i-1].Upper {
			return &InvalidSchemaError{
				ClinkerRatio: s.ClinkerRatio,
				Index:        i,
				Reason:       fmt.Sprintf("threshold %d not above %d", b.Upper, s.Bands[i-1].Upper),
			}
		}
	}

	return nil
}

// Threshold returns the upper bound of label.
func (s BandSchema) Threshold(label string) (int64, bool) {
	for _, b := range s.Bands {
		if b.Label == label {
			return b.Upper, true
		}
	}
	return 0, false
}

// Clone returns a copy that shares no slices with s.
func (s BandSchema) Clone() BandSchema {
	s.Bands = slices.Clone(s.Bands)
	s.Warnings = slices.Clone(s.Warnings)
	return s
}

// Labels returns the labels in increasing severity.
func (s BandSchema) Labels() []string {
	labels := make([]string, len(s.Bands))
	for i, b := range s.Bands {
		labels[i] = b.Label
	}
	return labels
}
