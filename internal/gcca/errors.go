package gcca

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSchema      = errors.New("invalid band schema")
	ErrInvalidValue       = errors.New("measured value is not a number")
	ErrNoResistanceTable  = errors.New("no resistance table configured for concrete")
	ErrClassCountOutRange = errors.New("class count out of range")
)

// InvalidSchemaError is returned when thresholds are not strictly increasing
// or the clinker ratio does not produce a finite base.
type InvalidSchemaError struct {
	ClinkerRatio float64
	Index        int
	Reason       string
}

func (e *InvalidSchemaError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("%s: band %d: %s (clinker_ratio=%v)", ErrInvalidSchema, e.Index, e.Reason, e.ClinkerRatio)
	}
	return fmt.Sprintf("%s: %s (clinker_ratio=%v)", ErrInvalidSchema, e.Reason, e.ClinkerRatio)
}

func (e *InvalidSchemaError) Is(target error) bool {
	return target == ErrInvalidSchema
}
