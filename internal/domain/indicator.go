package domain

import "time"

type PolicyKind string

const (
	PolicySum             PolicyKind = "SUM"
	PolicyWeightedAverage PolicyKind = "WEIGHTED_AVERAGE"
)

// Indicator is one row of the indicator metadata table. WeightCode is only
// meaningful for PolicyWeightedAverage.
type Indicator struct {
	Code       string     `db:"code" json:"code" yaml:"code" validate:"required"`
	Name       string     `db:"name" json:"name" yaml:"name"`
	Unit       string     `db:"unit" json:"unit" yaml:"unit"`
	Policy     PolicyKind `db:"policy" json:"policy" yaml:"policy" default:"SUM" validate:"oneof=SUM WEIGHTED_AVERAGE"`
	WeightCode string     `db:"weight_code" json:"weight_code,omitempty" yaml:"weight_code" validate:"required_if=Policy WEIGHTED_AVERAGE"`
	UpdatedAt  time.Time  `db:"updated_at" json:"updated_at" yaml:"-"`
}
