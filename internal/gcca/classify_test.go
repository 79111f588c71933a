package gcca

import (
	"math"
	"slices"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify_Bands(t *testing.T) {
	schema, err := BuildSchema(0.95, DefaultClassCount)
	require.NoError(t, err)

	tests := []struct {
		value float64
		want  string
	}{
		{value: -5, want: "AA"},
		{value: 0, want: "AA"},
		{value: 60, want: "AA"},
		{value: 120, want: "AA"},
		{value: 120.0001, want: "A"},
		{value: 240.99, want: "A"},
		{value: 241, want: "B"},
		{value: 500, want: "D"},
		{value: 724, want: "F"},
		{value: 844.9, want: "F"},
		{value: 845, want: "G"},
		{value: 10_000, want: "G"},
		{value: math.Inf(1), want: "G"},
	}

	for _, tt := range tests {
		got, err := Classify(tt.value, schema)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "value %v", tt.value)
	}
}

func TestClassify_BoundaryExactness(t *testing.T) {
	schema, err := BuildSchema(0.95, DefaultClassCount)
	require.NoError(t, err)

	upperA, ok := schema.Threshold("A")
	require.True(t, ok)

	got, err := Classify(float64(upperA), schema)
	require.NoError(t, err)
	assert.Equal(t, "AA", got)

	got, err = Classify(math.Nextafter(float64(upperA), math.Inf(1)), schema)
	require.NoError(t, err)
	assert.Equal(t, "A", got)
}

func TestClassify_TotalAndMonotonic(t *testing.T) {
	for _, classCount := range []int{1, 3, 7} {
		for _, ratio := range []float64{0, 0.5, 0.95, 1} {
			schema, err := BuildSchema(ratio, classCount)
			require.NoError(t, err)

			top := schema.Bands[len(schema.Bands)-1].Upper
			limit := float64(10 * top)
			step := limit / 20_000

			prev := -1
			for v := 0.0; v <= limit; v += step {
				label, err := Classify(v, schema)
				require.NoError(t, err, "value %v", v)

				severity := slices.Index(schema.Labels(), label)
				require.GreaterOrEqual(t, severity, 0, label)
				require.GreaterOrEqual(t, severity, prev, "value %v ratio %v classes %d", v, ratio, classCount)
				prev = severity
			}
			assert.Equal(t, classCount, prev, "scan must saturate into the last class")
		}
	}
}

func TestClassify_OpenEndedTopBand(t *testing.T) {
	schema, err := BuildSchema(0.95, 3)
	require.NoError(t, err)

	got, err := Classify(1e9, schema)
	require.NoError(t, err)
	assert.Equal(t, "C", got)
}

func TestClassify_InvalidInputs(t *testing.T) {
	broken := BandSchema{Bands: []Band{{Label: "AA"}, {Label: "A", Upper: 300}, {Label: "B", Upper: 200}}}
	_, err := Classify(250, broken)
	require.ErrorIs(t, err, ErrInvalidSchema)

	schema, err := BuildSchema(0.95, DefaultClassCount)
	require.NoError(t, err)
	_, err = Classify(math.NaN(), schema)
	require.ErrorIs(t, err, ErrInvalidValue)
}
