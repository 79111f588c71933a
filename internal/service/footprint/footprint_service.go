// Package footprint serves the warehouse: band schemas, classification,
// aggregation runs and peer benchmarks.
package footprint

import (
	"context"
	"fmt"

	"github.com/ougirez/carbon4c/internal/config"
	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/domain/dto"
	"github.com/ougirez/carbon4c/internal/gcca"
	"github.com/ougirez/carbon4c/internal/pkg/cache"
	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/ougirez/carbon4c/internal/pkg/store"
)

type Options struct {
	ClinkerRatio       float64
	ClassCount         int
	DeriveClinkerRatio bool
	ClinkerIndicator   string
	CementIndicator    string
	FootprintIndicator string
	ResistanceTable    []gcca.ResistancePoint
}

func OptionsFromConfig(cfg config.GCCAConfig) Options {
	return Options{
		ClinkerRatio:       cfg.ClinkerRatio,
		ClassCount:         cfg.ClassCount,
		DeriveClinkerRatio: cfg.DeriveClinkerRatio,
		ClinkerIndicator:   cfg.ClinkerIndicator,
		CementIndicator:    cfg.CementIndicator,
		FootprintIndicator: cfg.FootprintIndicator,
		ResistanceTable:    cfg.ResistanceTable,
	}
}

type Service struct {
	store   store.Store
	schemas cache.SchemaCache
	opts    Options
}

func NewFootprintService(store store.Store, schemas cache.SchemaCache, opts Options) *Service {
	if schemas == nil {
		schemas = cache.NewMemory()
	}
	if opts.ClassCount == 0 {
		opts.ClassCount = gcca.DefaultClassCount
	}
	return &Service{store: store, schemas: schemas, opts: opts}
}

func (s *Service) Options() Options {
	return s.opts
}

// Schema resolves a schema request against the configured defaults.
func (s *Service) Schema(ctx context.Context, req dto.SchemaRequest) (gcca.BandSchema, error) {
	classCount := s.classCount(req.ClassCount)

	if req.ProductType == domain.ProductConcrete {
		if req.Resistance == nil {
			return gcca.BandSchema{}, fmt.Errorf("%w: resistance required for concrete", gcca.ErrInvalidValue)
		}
		return s.ConcreteSchema(ctx, *req.Resistance, classCount)
	}

	ratio := s.opts.ClinkerRatio
	if req.ClinkerRatio != nil {
		ratio = *req.ClinkerRatio
	}
	return s.CementSchema(ctx, ratio, classCount)
}

func (s *Service) CementSchema(ctx context.Context, clinkerRatio float64, classCount int) (gcca.BandSchema, error) {
	return s.cachedSchema(ctx, cache.SchemaKey(domain.ProductCement, clinkerRatio, classCount), func() (gcca.BandSchema, error) {
		return gcca.BuildSchema(clinkerRatio, classCount)
	})
}

func (s *Service) ConcreteSchema(ctx context.Context, resistance float64, classCount int) (gcca.BandSchema, error) {
	return s.cachedSchema(ctx, cache.SchemaKey(domain.ProductConcrete, resistance, classCount), func() (gcca.BandSchema, error) {
		return gcca.BuildConcreteSchema(resistance, s.opts.ResistanceTable, classCount)
	})
}

// cachedSchema treats the cache as best effort: read or write failures are
// logged and the schema is computed anyway.
func (s *Service) cachedSchema(ctx context.Context, key string, build func() (gcca.BandSchema, error)) (gcca.BandSchema, error) {
	schema, ok, err := s.schemas.Get(ctx, key)
	if err != nil {
		logger.Warnf(ctx, "schema cache get %s: %s", key, err.Error())
	}
	if ok {
		return schema, nil
	}

	schema, err = build()
	if err != nil {
		return gcca.BandSchema{}, err
	}
	for _, w := range schema.Warnings {
		logger.Warnf(ctx, "schema %s: %s", key, w)
	}

	if err := s.schemas.Set(ctx, key, schema); err != nil {
		logger.Warnf(ctx, "schema cache set %s: %s", key, err.Error())
	}

	return schema, nil
}

func (s *Service) classCount(requested *int) int {
	if requested != nil {
		return *requested
	}
	return s.opts.ClassCount
}

func (s *Service) ListRecords(ctx context.Context, req dto.RecordsRequest) ([]domain.IndicatorRecord, error) {
	records, err := s.store.ListRecords(ctx, store.ListRecordsOpts{
		Level:          req.Level,
		EntityIDs:      req.EntityID,
		IndicatorCodes: req.Indicator,
		Year:           req.Year,
		Month:          req.Month,
	})
	if err != nil {
		return nil, fmt.Errorf("store.ListRecords: %w", err)
	}
	return records, nil
}

func (s *Service) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	companies, err := s.store.ListCompanies(ctx)
	if err != nil {
		return nil, fmt.Errorf("store.ListCompanies: %w", err)
	}
	return companies, nil
}

func (s *Service) ListPlants(ctx context.Context, companyID int64) ([]domain.Plant, error) {
	plants, err := s.store.ListPlants(ctx, store.ListPlantsOpts{CompanyID: &companyID})
	if err != nil {
		return nil, fmt.Errorf("store.ListPlants: %w", err)
	}
	return plants, nil
}
