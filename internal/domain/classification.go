package domain

type ProductType string

const (
	ProductCement   ProductType = "cement"
	ProductConcrete ProductType = "concrete"
)

// ClassificationResult is derived data: it is always recomputable from the
// measured value and the schema that produced it.
type ClassificationResult struct {
	Level         Level       `json:"level"`
	EntityID      string      `json:"entity_id"`
	ProductType   ProductType `json:"product_type"`
	IndicatorCode string      `json:"indicator_code"`
	Year          Year        `json:"year"`
	Month         Month       `json:"month"`
	ClassLabel    string      `json:"class_label"`
	MeasuredValue float64     `json:"measured_value"`
	ClinkerRatio  float64     `json:"clinker_ratio"`
	Resistance    float64     `json:"resistance,omitempty"`
	Thresholds    []Threshold `json:"schema_used"`
}

// Threshold mirrors one band of the schema used for a classification.
type Threshold struct {
	Label string `json:"label"`
	Upper int64  `json:"upper"`
}
