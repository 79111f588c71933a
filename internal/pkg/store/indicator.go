package store

import (
	"context"
	"fmt"

	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/pkg/store/xpgx"
)

var indicatorColumns = []string{"code", "name", "unit", "policy", "weight_code", "updated_at"}

func (s *store) UpsertIndicators(ctx context.Context, indicators []domain.Indicator) error {
	if len(indicators) == 0 {
		return nil
	}

	query := builder().Insert(tableIndicators).
		Columns("code", "name", "unit", "policy", "weight_code")

	for _, ind := range indicators {
		query = query.Values(ind.Code, ind.Name, ind.Unit, string(ind.Policy), ind.WeightCode)
	}

	query = query.Suffix(`
on conflict (code)
do update
set
	name = excluded.name,
	unit = excluded.unit,
	policy = excluded.policy,
	weight_code = excluded.weight_code,
	updated_at = now()`)

	if _, err := xpgx.Execx(ctx, s.pool, query); err != nil {
		return fmt.Errorf("upsert indicators: %w", err)
	}

	return nil
}

func (s *store) ListIndicators(ctx context.Context) ([]domain.Indicator, error) {
	query := builder().Select(indicatorColumns...).
		From(tableIndicators).
		OrderBy("code")

	return xpgx.Selectx[domain.Indicator](ctx, s.pool, query)
}
