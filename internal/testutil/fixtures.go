package testutil

import (
	"context"
	"testing"

	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/stretchr/testify/require"
)

// Indicators is a small cement indicator table: two extensive quantities and
// two intensities weighted by them.
func Indicators() []domain.Indicator {
	return []domain.Indicator{
		{Code: "cement_production", Name: "Producción de cemento", Unit: "t", Policy: domain.PolicySum},
		{Code: "clinker_consumption", Name: "Consumo de clínker", Unit: "t", Policy: domain.PolicySum},
		{Code: "co2_intensity", Name: "Huella de carbono A1-A3", Unit: "kgCO2e/t", Policy: domain.PolicyWeightedAverage, WeightCode: "cement_production"},
		{Code: "energy_intensity", Name: "Consumo térmico", Unit: "MJ/t", Policy: domain.PolicyWeightedAverage, WeightCode: "clinker_consumption"},
	}
}

// SeedHierarchy creates companies C1 (plants P1, P2) and C2 (plant P3).
func SeedHierarchy(t *testing.T, s *MemStore) {
	t.Helper()
	ctx := context.Background()

	c1, err := s.UpsertCompany(ctx, "C1", "Cementos Uno")
	require.NoError(t, err)
	c2, err := s.UpsertCompany(ctx, "C2", "Cementos Dos")
	require.NoError(t, err)

	for code, companyID := range map[string]int64{"P1": c1.ID, "P2": c1.ID, "P3": c2.ID} {
		_, err := s.UpsertPlant(ctx, companyID, code, "Planta "+code)
		require.NoError(t, err)
	}

	require.NoError(t, s.UpsertIndicators(ctx, Indicators()))
}

func PlantRecord(entity, code string, year, month int, value float64) domain.IndicatorRecord {
	return domain.IndicatorRecord{
		Level:         domain.LevelPlant,
		EntityID:      entity,
		IndicatorCode: code,
		Year:          year,
		Month:         month,
		Value:         value,
		Contributors:  1,
		Source:        "fixture",
	}
}
