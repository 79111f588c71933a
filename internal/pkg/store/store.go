package store

import (
	"context"

	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/pkg/store/xpgx"
)

type Pool = xpgx.Pool

type Store interface {
	EntityStore
	IndicatorStore
	RecordStore
}

type EntityStore interface {
	UpsertCompany(ctx context.Context, code, name string) (*domain.Company, error)
	UpsertPlant(ctx context.Context, companyID int64, code, name string) (*domain.Plant, error)
	ListCompanies(ctx context.Context) ([]domain.Company, error)
	ListPlants(ctx context.Context, opts ListPlantsOpts) ([]domain.Plant, error)
}

type IndicatorStore interface {
	UpsertIndicators(ctx context.Context, indicators []domain.Indicator) error
	ListIndicators(ctx context.Context) ([]domain.Indicator, error)
}

type RecordStore interface {
	UpsertRecords(ctx context.Context, records []domain.IndicatorRecord) error
	ReplaceLevels(ctx context.Context, year domain.Year, levels map[domain.Level][]domain.IndicatorRecord) error
	ListRecords(ctx context.Context, opts ListRecordsOpts) ([]domain.IndicatorRecord, error)
}

type store struct {
	pool Pool
}

func NewStore(pool Pool) Store {
	return &store{pool}
}
