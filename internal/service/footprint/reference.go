package footprint

import (
	"context"
	"fmt"
	"strconv"

	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/domain/dto"
	"github.com/ougirez/carbon4c/internal/pkg/store"
	"github.com/ougirez/carbon4c/internal/reference"
)

const (
	GroupByEntity    = "entity"
	GroupByCompany   = "company"
	GroupByIndicator = "indicator"
	GroupByYear      = "year"
	GroupByMonth     = "month"
)

// Reference summarises every requested indicator per group. Without
// group_by the records are grouped by indicator.
func (s *Service) Reference(ctx context.Context, req dto.ReferenceRequest) ([]reference.Group, error) {
	records, err := s.store.ListRecords(ctx, store.ListRecordsOpts{
		Level:          req.Level,
		IndicatorCodes: req.Indicator,
		Year:           req.Year,
	})
	if err != nil {
		return nil, fmt.Errorf("store.ListRecords: %w", err)
	}

	groupBy := req.GroupBy
	if len(groupBy) == 0 {
		groupBy = []string{GroupByIndicator}
	}

	companyOf, err := s.companyResolver(ctx, req.Level)
	if err != nil {
		return nil, err
	}

	key := func(r domain.IndicatorRecord) []string {
		k := make([]string, len(groupBy))
		for i, g := range groupBy {
			switch g {
			case GroupByEntity:
				k[i] = r.EntityID
			case GroupByCompany:
				k[i] = companyOf(r.EntityID)
			case GroupByIndicator:
				k[i] = r.IndicatorCode
			case GroupByYear:
				k[i] = strconv.Itoa(r.Year)
			case GroupByMonth:
				k[i] = strconv.Itoa(r.Month)
			}
		}
		return k
	}

	fields := make(map[string]reference.Field[domain.IndicatorRecord])
	for _, r := range records {
		code := r.IndicatorCode
		if _, ok := fields[code]; ok {
			continue
		}
		fields[code] = func(item domain.IndicatorRecord) (float64, bool) {
			return item.Value, item.IndicatorCode == code
		}
	}

	return reference.Build(records, key, fields), nil
}

// companyResolver maps an entity id of level to its company code.
func (s *Service) companyResolver(ctx context.Context, level domain.Level) (func(string) string, error) {
	switch level {
	case domain.LevelCompany:
		return func(id string) string { return id }, nil
	case domain.LevelNational:
		return func(string) string { return domain.NationalEntityID }, nil
	}

	plants, err := s.store.ListPlants(ctx, store.ListPlantsOpts{})
	if err != nil {
		return nil, fmt.Errorf("store.ListPlants: %w", err)
	}

	companies := make(map[string]string, len(plants))
	for _, p := range plants {
		companies[p.Code] = p.CompanyCode
	}

	return func(id string) string { return companies[id] }, nil
}
