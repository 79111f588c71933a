package gcca

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildSchema_ReferenceRatio(t *testing.T) {
	schema, err := BuildSchema(0.95, DefaultClassCount)
	require.NoError(t, err)

	assert.InDelta(t, 120.75, schema.Base, 1e-9)
	assert.Empty(t, schema.Warnings)

	expected := []Band{
		{Label: "AA", Upper: 0},
		{Label: "A", Upper: 120},
		{Label: "B", Upper: 241},
		{Label: "C", Upper: 362},
		{Label: "D", Upper: 483},
		{Label: "E", Upper: 603},
		{Label: "F", Upper: 724},
		{Label: "G", Upper: 845},
	}
	assert.Equal(t, expected, schema.Bands)
}

func TestBuildSchema_Deterministic(t *testing.T) {
	for _, ratio := range []float64{0, 0.1, 0.33, 0.5, 0.72, 0.95, 1} {
		first, err := BuildSchema(ratio, DefaultClassCount)
		require.NoError(t, err)
		second, err := BuildSchema(ratio, DefaultClassCount)
		require.NoError(t, err)
		assert.Equal(t, first, second, "ratio %v", ratio)
	}
}

func TestBuildSchema_ClassCount(t *testing.T) {
	tests := []struct {
		name       string
		classCount int
		wantLabels []string
		wantErr    error
	}{
		{name: "single class", classCount: 1, wantLabels: []string{"AA", "A"}},
		{name: "four classes", classCount: 4, wantLabels: []string{"AA", "A", "B", "C", "D"}},
		{name: "full", classCount: 7, wantLabels: []string{"AA", "A", "B", "C", "D", "E", "F", "G"}},
		{name: "zero", classCount: 0, wantErr: ErrClassCountOutRange},
		{name: "too many", classCount: 8, wantErr: ErrClassCountOutRange},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			schema, err := BuildSchema(0.95, tt.classCount)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantLabels, schema.Labels())
		})
	}
}

func TestBuildSchema_RatioOutsideUnitRangeWarns(t *testing.T) {
	schema, err := BuildSchema(1.2, DefaultClassCount)
	require.NoError(t, err)
	require.Len(t, schema.Warnings, 1)
	assert.Contains(t, schema.Warnings[0], "outside [0,1]")

	upper, ok := schema.Threshold("A")
	require.True(t, ok)
	assert.Equal(t, int64(142), upper)
}

func TestBuildSchema_InvalidRatio(t *testing.T) {
	tests := []struct {
		name  string
		ratio float64
	}{
		{name: "nan", ratio: math.NaN()},
		{name: "inf", ratio: math.Inf(1)},
		{name: "huge", ratio: 1e300},
		{name: "base collapses", ratio: -0.47},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildSchema(tt.ratio, DefaultClassCount)
			require.ErrorIs(t, err, ErrInvalidSchema)

			var se *InvalidSchemaError
			require.ErrorAs(t, err, &se)
		})
	}
}

func TestValidate(t *testing.T) {
	aa := Band{Label: LabelNearZero, Upper: 0}

	require.NoError(t, BandSchema{Bands: []Band{aa, {Label: "A", Upper: 100}, {Label: "B", Upper: 200}}}.Validate())

	err := BandSchema{Bands: []Band{aa, {Label: "A", Upper: 200}, {Label: "B", Upper: 100}}}.Validate()
	var se *InvalidSchemaError
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 2, se.Index)

	err = BandSchema{Bands: []Band{aa, {Label: "A", Upper: 100}, {Label: "B", Upper: 100}}}.Validate()
	require.ErrorIs(t, err, ErrInvalidSchema)

	err = BandSchema{Bands: []Band{{Label: "A", Upper: 100}, {Label: "B", Upper: 200}}}.Validate()
	require.ErrorAs(t, err, &se)
	assert.Equal(t, 0, se.Index)

	err = BandSchema{Bands: []Band{aa, {Label: "A", Upper: 100}, {Label: "A", Upper: 200}}}.Validate()
	require.ErrorIs(t, err, ErrInvalidSchema)

	require.ErrorIs(t, BandSchema{Bands: []Band{aa}}.Validate(), ErrInvalidSchema)
}
