package footprint

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/ougirez/carbon4c/internal/aggregate"
	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
	"github.com/ougirez/carbon4c/internal/pkg/logger"
	"github.com/ougirez/carbon4c/internal/pkg/observability"
	"github.com/ougirez/carbon4c/internal/pkg/store"
	"golang.org/x/sync/errgroup"
)

type AggregateReport struct {
	BatchID   string      `json:"batch_id"`
	Year      domain.Year `json:"year"`
	Plants    int         `json:"plant_records"`
	Companies int         `json:"company_records"`
	National  int         `json:"national_records"`
}

// Aggregate recomputes the company and national levels of year from the
// plant records in the warehouse. Nothing is written unless both hops
// succeed.
func (s *Service) Aggregate(ctx context.Context, year domain.Year) (*AggregateReport, error) {
	batchID := uuid.NewString()
	ctx = logger.WithBatchID(ctx, batchID)

	var (
		indicators []domain.Indicator
		plants     []domain.Plant
		records    []domain.IndicatorRecord
	)

	eg, egCtx := errgroup.WithContext(ctx)
	eg.Go(func() (err error) {
		indicators, err = s.store.ListIndicators(egCtx)
		if err != nil {
			return fmt.Errorf("store.ListIndicators: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		plants, err = s.store.ListPlants(egCtx, store.ListPlantsOpts{})
		if err != nil {
			return fmt.Errorf("store.ListPlants: %w", err)
		}
		return nil
	})
	eg.Go(func() (err error) {
		records, err = s.store.ListRecords(egCtx, store.ListRecordsOpts{Level: domain.LevelPlant, Year: &year})
		if err != nil {
			return fmt.Errorf("store.ListRecords: %w", err)
		}
		return nil
	})
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	if len(indicators) == 0 {
		return nil, constants.ErrEmptyPolicyTable
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: no plant records for %d", constants.ErrNoRecord, year)
	}

	policies, err := aggregate.NewPolicyTable(indicators)
	if err != nil {
		return nil, fmt.Errorf("aggregate.NewPolicyTable: %w", err)
	}

	parents := make(aggregate.ParentMap, len(plants))
	for _, p := range plants {
		parents[p.Code] = p.CompanyCode
	}

	companies, national, err := aggregate.Rollup(records, parents, policies)
	if err != nil {
		countFailures(err)
		logger.Errorf(ctx, "aggregate year %d: %s", year, err.Error())
		return nil, fmt.Errorf("aggregate year %d: %w", year, err)
	}

	err = s.store.ReplaceLevels(ctx, year, map[domain.Level][]domain.IndicatorRecord{
		domain.LevelCompany:  companies,
		domain.LevelNational: national,
	})
	if err != nil {
		return nil, fmt.Errorf("store.ReplaceLevels: %w", err)
	}

	logger.Infof(ctx, "aggregated %d: %d plant, %d company, %d national records",
		year, len(records), len(companies), len(national))

	return &AggregateReport{
		BatchID:   batchID,
		Year:      year,
		Plants:    len(records),
		Companies: len(companies),
		National:  len(national),
	}, nil
}

var failureKinds = []struct {
	kind string
	err  error
}{
	{"undefined_aggregate", aggregate.ErrUndefinedAggregate},
	{"missing_policy", aggregate.ErrMissingPolicy},
	{"duplicate_key", aggregate.ErrDuplicateKey},
	{"already_aggregated", aggregate.ErrAlreadyAggregated},
	{"level_mismatch", aggregate.ErrLevelMismatch},
	{"unknown_parent", aggregate.ErrUnknownParent},
	{"non_finite", aggregate.ErrNonFiniteValue},
}

func countFailures(err error) {
	var level *aggregate.LevelError
	from := string(domain.LevelPlant)
	if errors.As(err, &level) {
		from = string(level.Want)
	}

	for _, k := range failureKinds {
		if errors.Is(err, k.err) {
			observability.AggregationFailures.WithLabelValues(from, k.kind).Inc()
		}
	}
}
