package footprint

import (
	"context"
	"fmt"

	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/domain/dto"
	"github.com/ougirez/carbon4c/internal/gcca"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
	"github.com/ougirez/carbon4c/internal/pkg/observability"
	"github.com/ougirez/carbon4c/internal/pkg/store"
)

// Classify looks up the measured value of the requested record and labels it
// against the schema for the product.
func (s *Service) Classify(ctx context.Context, req dto.ClassifyRequest) (*domain.ClassificationResult, error) {
	value, err := s.recordValue(ctx, req.Level, req.EntityID, req.IndicatorCode, req.Year, req.Month)
	if err != nil {
		return nil, err
	}

	classCount := s.classCount(req.ClassCount)

	var schema gcca.BandSchema
	switch req.ProductType {
	case domain.ProductConcrete:
		if req.Resistance == nil {
			return nil, fmt.Errorf("%w: resistance required for concrete", gcca.ErrInvalidValue)
		}
		schema, err = s.ConcreteSchema(ctx, *req.Resistance, classCount)
	default:
		var ratio float64
		ratio, err = s.clinkerRatio(ctx, req)
		if err != nil {
			return nil, err
		}
		schema, err = s.CementSchema(ctx, ratio, classCount)
	}
	if err != nil {
		return nil, err
	}

	label, err := gcca.Classify(value, schema)
	if err != nil {
		return nil, fmt.Errorf("classify %s/%s: %w", req.EntityID, req.IndicatorCode, err)
	}

	observability.Classifications.WithLabelValues(string(req.ProductType), label).Inc()

	return newResult(req, value, label, schema), nil
}

// ClassifyRecords labels already loaded records against one cement schema.
// Records with values the schema rejects are skipped.
func (s *Service) ClassifyRecords(ctx context.Context, records []domain.IndicatorRecord) ([]domain.ClassificationResult, error) {
	schema, err := s.CementSchema(ctx, s.opts.ClinkerRatio, s.opts.ClassCount)
	if err != nil {
		return nil, err
	}

	out := make([]domain.ClassificationResult, 0, len(records))
	for _, rec := range records {
		label, err := gcca.Classify(rec.Value, schema)
		if err != nil {
			continue
		}
		req := dto.ClassifyRequest{
			Level:         rec.Level,
			EntityID:      rec.EntityID,
			ProductType:   domain.ProductCement,
			IndicatorCode: rec.IndicatorCode,
			Year:          rec.Year,
			Month:         rec.Month,
		}
		out = append(out, *newResult(req, rec.Value, label, schema))
	}

	return out, nil
}

func newResult(req dto.ClassifyRequest, value float64, label string, schema gcca.BandSchema) *domain.ClassificationResult {
	thresholds := make([]domain.Threshold, len(schema.Bands))
	for i, b := range schema.Bands {
		thresholds[i] = domain.Threshold{Label: b.Label, Upper: b.Upper}
	}

	return &domain.ClassificationResult{
		Level:         req.Level,
		EntityID:      req.EntityID,
		ProductType:   req.ProductType,
		IndicatorCode: req.IndicatorCode,
		Year:          req.Year,
		Month:         req.Month,
		ClassLabel:    label,
		MeasuredValue: value,
		ClinkerRatio:  schema.ClinkerRatio,
		Resistance:    schema.Resistance,
		Thresholds:    thresholds,
	}
}

// clinkerRatio prefers the request, then the entity's own clinker/cement
// ratio when derivation is enabled, then the configured ratio.
func (s *Service) clinkerRatio(ctx context.Context, req dto.ClassifyRequest) (float64, error) {
	if req.ClinkerRatio != nil {
		return *req.ClinkerRatio, nil
	}
	if !s.opts.DeriveClinkerRatio {
		return s.opts.ClinkerRatio, nil
	}

	clinker, err := s.recordValue(ctx, req.Level, req.EntityID, s.opts.ClinkerIndicator, req.Year, req.Month)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", constants.ErrNoClinkerRatio, err)
	}
	cement, err := s.recordValue(ctx, req.Level, req.EntityID, s.opts.CementIndicator, req.Year, req.Month)
	if err != nil {
		return 0, fmt.Errorf("%w: %w", constants.ErrNoClinkerRatio, err)
	}
	if cement == 0 {
		return 0, fmt.Errorf("%w: %s is zero for %s", constants.ErrNoClinkerRatio, s.opts.CementIndicator, req.EntityID)
	}

	return clinker / cement, nil
}

func (s *Service) recordValue(ctx context.Context, level domain.Level, entityID, indicatorCode string, year domain.Year, month domain.Month) (float64, error) {
	records, err := s.store.ListRecords(ctx, store.ListRecordsOpts{
		Level:          level,
		EntityIDs:      []string{entityID},
		IndicatorCodes: []string{indicatorCode},
		Year:           &year,
		Month:          &month,
	})
	if err != nil {
		return 0, fmt.Errorf("store.ListRecords: %w", err)
	}
	if len(records) == 0 {
		return 0, fmt.Errorf("%w: %s %s %s %d-%02d", constants.ErrNoRecord, level, entityID, indicatorCode, year, month)
	}

	return records[0].Value, nil
}
