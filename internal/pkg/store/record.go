package store

import (
	"context"
	"fmt"
	"slices"

	sq "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/pkg/store/xpgx"
)

type ListRecordsOpts struct {
	Level          domain.Level
	EntityIDs      []string
	IndicatorCodes []string
	Year           *domain.Year
	Month          *domain.Month
}

var recordColumns = []string{"level", "entity_id", "indicator_code", "year", "month", "value", "contributors", "source", "created_at"}

const recordConflict = `
on conflict (level, entity_id, indicator_code, year, month)
do update
set
	value = excluded.value,
	contributors = excluded.contributors,
	source = excluded.source,
	created_at = now()`

func (s *store) UpsertRecords(ctx context.Context, records []domain.IndicatorRecord) error {
	return xpgx.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return insertRecords(ctx, tx, records)
	})
}

// ReplaceLevels swaps every record of year at each level in levels for the
// given records. All levels are replaced in a single transaction, so either
// every level holds the new records or none does.
func (s *store) ReplaceLevels(ctx context.Context, year domain.Year, levels map[domain.Level][]domain.IndicatorRecord) error {
	return xpgx.WithTx(ctx, s.pool, func(tx pgx.Tx) error {
		return replaceLevels(ctx, tx, year, levels)
	})
}

func replaceLevels(ctx context.Context, q xpgx.Querier, year domain.Year, levels map[domain.Level][]domain.IndicatorRecord) error {
	order := make([]domain.Level, 0, len(levels))
	for level := range levels {
		order = append(order, level)
	}
	slices.Sort(order)

	for _, level := range order {
		del := builder().Delete(tableIndicatorRecords).
			Where(sq.Eq{"level": string(level), "year": year})
		if _, err := xpgx.Execx(ctx, q, del); err != nil {
			return fmt.Errorf("delete %s/%d: %w", level, year, err)
		}
		if err := insertRecords(ctx, q, levels[level]); err != nil {
			return fmt.Errorf("level %s: %w", level, err)
		}
	}
	return nil
}

func insertRecords(ctx context.Context, q xpgx.Querier, records []domain.IndicatorRecord) error {
	for start := 0; start < len(records); start += insertChunk {
		end := min(start+insertChunk, len(records))

		query := builder().Insert(tableIndicatorRecords).
			Columns("level", "entity_id", "indicator_code", "year", "month", "value", "contributors", "source")
		for _, r := range records[start:end] {
			query = query.Values(string(r.Level), r.EntityID, r.IndicatorCode, r.Year, r.Month, r.Value, r.Contributors, r.Source)
		}
		query = query.Suffix(recordConflict)

		if _, err := xpgx.Execx(ctx, q, query); err != nil {
			return fmt.Errorf("insert records [%d:%d]: %w", start, end, err)
		}
	}
	return nil
}

func (s *store) ListRecords(ctx context.Context, opts ListRecordsOpts) ([]domain.IndicatorRecord, error) {
	query := builder().Select(recordColumns...).
		From(tableIndicatorRecords).
		Where(sq.Eq{"level": string(opts.Level)}).
		OrderBy("entity_id", "indicator_code", "year", "month")

	if len(opts.EntityIDs) > 0 {
		query = query.Where(sq.Eq{"entity_id": opts.EntityIDs})
	}
	if len(opts.IndicatorCodes) > 0 {
		query = query.Where(sq.Eq{"indicator_code": opts.IndicatorCodes})
	}
	if opts.Year != nil {
		query = query.Where(sq.Eq{"year": *opts.Year})
	}
	if opts.Month != nil {
		query = query.Where(sq.Eq{"month": *opts.Month})
	}

	return xpgx.Selectx[domain.IndicatorRecord](ctx, s.pool, query)
}
