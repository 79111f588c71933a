package export

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
	"github.com/ougirez/carbon4c/internal/service/footprint"
	"github.com/ougirez/carbon4c/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func newService(t *testing.T) *Service {
	t.Helper()
	ctx := context.Background()

	mem := testutil.NewMemStore()
	testutil.SeedHierarchy(t, mem)

	national := func(month int, value float64) domain.IndicatorRecord {
		r := testutil.PlantRecord("PE", "co2_intensity", 2023, month, value)
		r.Level = domain.LevelNational
		return r
	}
	company := testutil.PlantRecord("C1", "co2_intensity", 2023, 1, 450)
	company.Level = domain.LevelCompany

	require.NoError(t, mem.UpsertRecords(ctx, []domain.IndicatorRecord{
		testutil.PlantRecord("P1", "co2_intensity", 2023, 1, 600),
		testutil.PlantRecord("P1", "cement_production", 2023, 1, 100),
		company,
		national(1, 470),
		national(2, 455),
		national(0, 460),
	}))

	fp := footprint.NewFootprintService(mem, nil, footprint.Options{ClinkerRatio: 0.95, ClassCount: 7})
	return NewExportService(fp, "co2_intensity")
}

func TestWriteWorkbook(t *testing.T) {
	svc := newService(t)

	buf := &bytes.Buffer{}
	require.NoError(t, svc.WriteWorkbook(context.Background(), buf, 2023))

	f, err := excelize.OpenReader(buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{"plant", "company", "national", SheetClassification}, f.GetSheetList())

	plants, err := f.GetRows("plant")
	require.NoError(t, err)
	require.Len(t, plants, 3)
	assert.Equal(t, recordHeader, plants[0])
	assert.Equal(t, "P1", plants[1][0])

	classes, err := f.GetRows(SheetClassification)
	require.NoError(t, err)
	require.Len(t, classes, 5)
	assert.Equal(t, classificationHeader, classes[0])
	assert.Equal(t, "company", classes[1][0])
	assert.Equal(t, "C", classes[1][7])
}

type failingClassifier struct {
	Source
}

func (failingClassifier) ClassifyRecords(context.Context, []domain.IndicatorRecord) ([]domain.ClassificationResult, error) {
	return nil, errors.New("classifier down")
}

func TestWorkbook_ClassifyError(t *testing.T) {
	svc := newService(t)
	svc.source = failingClassifier{Source: svc.source}

	f, err := svc.Workbook(context.Background(), 2023)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "ClassifyRecords: classifier down")
	assert.Nil(t, f)

	buf := &bytes.Buffer{}
	assert.Error(t, svc.WriteWorkbook(context.Background(), buf, 2023))
	assert.Zero(t, buf.Len())
}

func TestWriteChart(t *testing.T) {
	svc := newService(t)

	buf := &bytes.Buffer{}
	require.NoError(t, svc.WriteChart(context.Background(), buf, 2023, ""))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))

	err := svc.WriteChart(context.Background(), &bytes.Buffer{}, 2019, "")
	assert.ErrorIs(t, err, constants.ErrNoRecord)
}
