package etl

import (
	"context"
	"database/sql"
	"errors"
	"path/filepath"
	"testing"

	"github.com/ougirez/carbon4c/internal/config"
	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/pkg/store"
	"github.com/ougirez/carbon4c/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var defaultTable = config.SourceTable{
	Name:            "indicadores",
	IndicatorColumn: "codigo",
	YearColumn:      "anio",
	MonthColumn:     "mes",
	ValueColumn:     "valor",
}

type row struct {
	code  string
	year  int
	month any
	value any
}

func writeSource(t *testing.T, name string, rows []row) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), name)
	db, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer db.Close()

	_, err = db.Exec(`CREATE TABLE indicadores (codigo TEXT NOT NULL, anio INTEGER NOT NULL, mes INTEGER, valor REAL)`)
	require.NoError(t, err)

	for _, r := range rows {
		_, err = db.Exec(`INSERT INTO indicadores (codigo, anio, mes, valor) VALUES (?, ?, ?, ?)`, r.code, r.year, r.month, r.value)
		require.NoError(t, err)
	}

	return path
}

func plantRecords(t *testing.T, s store.Store, plant string) []domain.IndicatorRecord {
	t.Helper()
	recs, err := s.ListRecords(context.Background(), store.ListRecordsOpts{Level: domain.LevelPlant, EntityIDs: []string{plant}})
	require.NoError(t, err)
	return recs
}

func TestRun_LoadsSources(t *testing.T) {
	ctx := context.Background()
	mem := testutil.NewMemStore()
	svc := NewETLService(mem, defaultTable, 2)

	p1 := writeSource(t, "p1.db", []row{
		{"cement_production", 2023, 1, 100.0},
		{"cement_production", 2023, 2, 120.0},
		{"co2_intensity", 2023, nil, 610.5},
		{"energy_intensity", 2023, 1, nil},
	})
	p3 := writeSource(t, "p3.db", []row{
		{"cement_production", 2023, 1, 50.0},
	})

	report, err := svc.Run(ctx, []config.SourceEntry{
		{Path: p1, CompanyCode: "C1", CompanyName: "Cementos Uno", PlantCode: "P1", PlantName: "Planta 1"},
		{Path: p3, CompanyCode: "C2", CompanyName: "Cementos Dos", PlantCode: "P3", PlantName: "Planta 3"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, map[string]int{"P1": 3, "P3": 1}, report.Loaded)
	assert.Empty(t, report.Failed)

	recs := plantRecords(t, mem, "P1")
	require.Len(t, recs, 3)
	assert.Equal(t, domain.AnnualMonth, recs[2].Month)
	assert.Equal(t, "co2_intensity", recs[2].IndicatorCode)
	assert.Equal(t, p1+"#"+report.RunID, recs[0].Source)

	plants, err := mem.ListPlants(ctx, store.ListPlantsOpts{})
	require.NoError(t, err)
	require.Len(t, plants, 2)
	assert.Equal(t, "C1", plants[0].CompanyCode)
	assert.Equal(t, "C2", plants[1].CompanyCode)
}

func TestRun_DuplicateRejectsWholeSource(t *testing.T) {
	mem := testutil.NewMemStore()
	svc := NewETLService(mem, defaultTable, 4)

	bad := writeSource(t, "p2.db", []row{
		{"cement_production", 2023, 1, 100.0},
		{"cement_production", 2023, 1, 101.0},
	})
	good := writeSource(t, "p1.db", []row{
		{"cement_production", 2023, 1, 80.0},
	})

	report, err := svc.Run(context.Background(), []config.SourceEntry{
		{Path: bad, CompanyCode: "C1", PlantCode: "P2"},
		{Path: good, CompanyCode: "C1", PlantCode: "P1"},
	})
	require.NoError(t, err)
	assert.Contains(t, report.Failed, "P2")
	assert.Equal(t, map[string]int{"P1": 1}, report.Loaded)
	assert.Empty(t, plantRecords(t, mem, "P2"))
	assert.Len(t, plantRecords(t, mem, "P1"), 1)
}

func TestRun_RerunIsIdempotent(t *testing.T) {
	mem := testutil.NewMemStore()
	svc := NewETLService(mem, defaultTable, 1)

	path := writeSource(t, "p1.db", []row{
		{"cement_production", 2023, 1, 100.0},
		{"cement_production", 2023, 2, 110.0},
	})
	sources := []config.SourceEntry{{Path: path, CompanyCode: "C1", PlantCode: "P1"}}

	_, err := svc.Run(context.Background(), sources)
	require.NoError(t, err)
	_, err = svc.Run(context.Background(), sources)
	require.NoError(t, err)

	recs := plantRecords(t, mem, "P1")
	require.Len(t, recs, 2)
	assert.Equal(t, 100.0, recs[0].Value)
}

func TestRun_MissingFileIsReported(t *testing.T) {
	mem := testutil.NewMemStore()
	svc := NewETLService(mem, defaultTable, 1)

	report, err := svc.Run(context.Background(), []config.SourceEntry{
		{Path: filepath.Join(t.TempDir(), "absent.db"), CompanyCode: "C1", PlantCode: "P9"},
	})
	require.NoError(t, err)
	assert.Contains(t, report.Failed, "P9")
	assert.Empty(t, report.Loaded)
}

func TestRun_StoreErrorAborts(t *testing.T) {
	mem := testutil.NewMemStore()
	mem.FailUpsertRecords = errors.New("connection reset")
	svc := NewETLService(mem, defaultTable, 1)

	path := writeSource(t, "p1.db", []row{{"cement_production", 2023, 1, 100.0}})

	_, err := svc.Run(context.Background(), []config.SourceEntry{{Path: path, CompanyCode: "C1", PlantCode: "P1"}})
	require.Error(t, err)
	assert.ErrorIs(t, err, mem.FailUpsertRecords)
}

func TestRun_Validation(t *testing.T) {
	svc := NewETLService(testutil.NewMemStore(), defaultTable, 1)
	_, err := svc.Run(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSources)

	table := defaultTable
	table.Name = "indicadores; DROP TABLE x"
	svc = NewETLService(testutil.NewMemStore(), table, 1)
	_, err = svc.Run(context.Background(), []config.SourceEntry{{Path: "x.db", PlantCode: "P1"}})
	assert.ErrorIs(t, err, ErrInvalidIdentifier)
}
