package gcca

import (
	"fmt"
	"math"
	"sort"

	"github.com/shopspring/decimal"
)

// ResistancePoint anchors the concrete band base (kg CO2e/m3) at a
// compressive strength in MPa.
type ResistancePoint struct {
	MPa  float64 `mapstructure:"mpa" yaml:"mpa" json:"mpa"`
	Base float64 `mapstructure:"base" yaml:"base" json:"base"`
}

// ConcreteBase linearly interpolates the base for resistance. Resistances
// outside the table are clamped to its ends.
func ConcreteBase(resistance float64, table []ResistancePoint) (float64, error) {
	if len(table) == 0 {
		return 0, ErrNoResistanceTable
	}
	if math.IsNaN(resistance) || math.IsInf(resistance, 0) {
		return 0, fmt.Errorf("%w: resistance %v", ErrInvalidValue, resistance)
	}

	points := make([]ResistancePoint, len(table))
	copy(points, table)
	sort.Slice(points, func(i, j int) bool { return points[i].MPa < points[j].MPa })

	for i := 1; i < len(points); i++ {
		if points[i].MPa == points[i-1].MPa {
			return 0, &InvalidSchemaError{Index: i, Reason: fmt.Sprintf("duplicate resistance %v MPa", points[i].MPa)}
		}
	}

	if resistance <= points[0].MPa {
		return points[0].Base, nil
	}
	last := points[len(points)-1]
	if resistance >= last.MPa {
		return last.Base, nil
	}

	i := sort.Search(len(points), func(i int) bool { return points[i].MPa >= resistance })
	lo, hi := points[i-1], points[i]
	frac := (resistance - lo.MPa) / (hi.MPa - lo.MPa)
	return lo.Base + frac*(hi.Base-lo.Base), nil
}

// BuildConcreteSchema applies the floor(base*i) rule to the base
// interpolated for resistance.
func BuildConcreteSchema(resistance float64, table []ResistancePoint, classCount int) (BandSchema, error) {
	base, err := ConcreteBase(resistance, table)
	if err != nil {
		return BandSchema{}, err
	}

	schema, err := schemaFromBase(decimal.NewFromFloat(base), classCount)
	if err != nil {
		return BandSchema{}, err
	}
	schema.Resistance = resistance

	return schema, nil
}
