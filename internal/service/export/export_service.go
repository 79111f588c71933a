// Package export renders warehouse records as an xlsx workbook and a PNG
// chart.
package export

import (
	"context"
	"fmt"
	"io"
	"strconv"

	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/domain/dto"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
	"github.com/xuri/excelize/v2"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
)

const SheetClassification = "classification"

var (
	recordHeader         = []string{"entity_id", "indicator_code", "year", "month", "value", "contributors", "source"}
	classificationHeader = []string{"level", "entity_id", "indicator_code", "year", "month", "measured_value", "clinker_ratio", "class_label"}
	levels               = []domain.Level{domain.LevelPlant, domain.LevelCompany, domain.LevelNational}
)

type Source interface {
	ListRecords(ctx context.Context, req dto.RecordsRequest) ([]domain.IndicatorRecord, error)
	ClassifyRecords(ctx context.Context, records []domain.IndicatorRecord) ([]domain.ClassificationResult, error)
}

type Service struct {
	source             Source
	footprintIndicator string
}

func NewExportService(source Source, footprintIndicator string) *Service {
	return &Service{source: source, footprintIndicator: footprintIndicator}
}

// Workbook builds one sheet per level plus the classification of company
// and national footprints.
func (s *Service) Workbook(ctx context.Context, year domain.Year) (_ *excelize.File, err error) {
	f := excelize.NewFile()
	defer func() {
		if err != nil {
			_ = f.Close()
		}
	}()

	var footprints []domain.IndicatorRecord
	for i, level := range levels {
		records, err := s.source.ListRecords(ctx, dto.RecordsRequest{Level: level, Year: &year})
		if err != nil {
			return nil, fmt.Errorf("ListRecords, level-%s: %w", level, err)
		}

		sheet := string(level)
		if i == 0 {
			if err := f.SetSheetName("Sheet1", sheet); err != nil {
				return nil, fmt.Errorf("SetSheetName: %w", err)
			}
		} else if _, err := f.NewSheet(sheet); err != nil {
			return nil, fmt.Errorf("NewSheet %s: %w", sheet, err)
		}

		rows := make([][]any, 0, len(records))
		for _, r := range records {
			rows = append(rows, []any{r.EntityID, r.IndicatorCode, r.Year, r.Month, r.Value, r.Contributors, r.Source})
			if level != domain.LevelPlant && r.IndicatorCode == s.footprintIndicator {
				footprints = append(footprints, r)
			}
		}
		if err := writeTable(f, sheet, recordHeader, rows); err != nil {
			return nil, err
		}
	}

	results, err := s.source.ClassifyRecords(ctx, footprints)
	if err != nil {
		return nil, fmt.Errorf("ClassifyRecords: %w", err)
	}

	if _, err := f.NewSheet(SheetClassification); err != nil {
		return nil, fmt.Errorf("NewSheet %s: %w", SheetClassification, err)
	}
	rows := make([][]any, 0, len(results))
	for _, r := range results {
		rows = append(rows, []any{string(r.Level), r.EntityID, r.IndicatorCode, r.Year, r.Month, r.MeasuredValue, r.ClinkerRatio, r.ClassLabel})
	}
	if err := writeTable(f, SheetClassification, classificationHeader, rows); err != nil {
		return nil, err
	}

	return f, nil
}

func (s *Service) WriteWorkbook(ctx context.Context, w io.Writer, year domain.Year) error {
	f, err := s.Workbook(ctx, year)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeTable(f *excelize.File, sheet string, header []string, rows [][]any) error {
	for i, h := range header {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(sheet, cell, h); err != nil {
			return fmt.Errorf("SetCellValue %s!%s: %w", sheet, cell, err)
		}
	}

	for r, row := range rows {
		cell, _ := excelize.CoordinatesToCellName(1, r+2)
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("SetSheetRow %s!%s: %w", sheet, cell, err)
		}
	}

	return f.SetColWidth(sheet, "A", "H", 18)
}

// WriteChart draws national monthly values of indicatorCode for year as a
// PNG bar chart. Annual records are left out.
func (s *Service) WriteChart(ctx context.Context, w io.Writer, year domain.Year, indicatorCode string) error {
	if indicatorCode == "" {
		indicatorCode = s.footprintIndicator
	}

	records, err := s.source.ListRecords(ctx, dto.RecordsRequest{
		Level:     domain.LevelNational,
		Indicator: []string{indicatorCode},
		Year:      &year,
	})
	if err != nil {
		return fmt.Errorf("ListRecords: %w", err)
	}

	values := make(plotter.Values, 0, 12)
	names := make([]string, 0, 12)
	for _, r := range records {
		if r.Month == domain.AnnualMonth {
			continue
		}
		values = append(values, r.Value)
		names = append(names, strconv.Itoa(r.Month))
	}
	if len(values) == 0 {
		return fmt.Errorf("%w: no monthly national %s for %d", constants.ErrNoRecord, indicatorCode, year)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s %d", indicatorCode, year)
	p.Title.TextStyle.Font.Size = vg.Points(14)
	p.X.Label.Text = "month"
	p.Y.Label.Text = indicatorCode

	bars, err := plotter.NewBarChart(values, vg.Points(18))
	if err != nil {
		return fmt.Errorf("plotter.NewBarChart: %w", err)
	}
	p.Add(bars, plotter.NewGrid())
	p.NominalX(names...)

	wt, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("plot.WriterTo: %w", err)
	}
	if _, err := wt.WriteTo(w); err != nil {
		return fmt.Errorf("write chart: %w", err)
	}

	return nil
}
