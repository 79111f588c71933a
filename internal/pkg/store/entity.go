package store

import (
	"context"
	"strings"

	sq "github.com/Masterminds/squirrel"
	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/pkg/store/xpgx"
)

type ListPlantsOpts struct {
	CompanyID  *int64
	ActiveOnly bool
}

var (
	companyColumns = []string{"id", "code", "name", "active", "created_at", "updated_at"}
	plantColumns   = []string{"p.id", "p.company_id", "c.code as company_code", "p.code", "p.name", "p.active", "p.created_at", "p.updated_at"}
)

func (s *store) UpsertCompany(ctx context.Context, code, name string) (*domain.Company, error) {
	query := builder().Insert(tableCompanies).
		Columns("code", "name").
		Values(code, name).
		Suffix(`on conflict (code) do update set name=coalesce(nullif(excluded.name, ''), companies.name), updated_at=now() returning ` + strings.Join(companyColumns, ", "))

	selected, err := xpgx.Getx[domain.Company](ctx, s.pool, query)
	if err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) UpsertPlant(ctx context.Context, companyID int64, code, name string) (*domain.Plant, error) {
	query := builder().Insert(tablePlants).
		Columns("company_id", "code", "name").
		Values(companyID, code, name).
		Suffix(`on conflict (code) do update set company_id=excluded.company_id, name=coalesce(nullif(excluded.name, ''), plants.name), updated_at=now()`)

	if _, err := xpgx.Execx(ctx, s.pool, query); err != nil {
		return nil, err
	}

	selectQuery := builder().Select(plantColumns...).
		From("plants p").
		Join("companies c on c.id=p.company_id").
		Where(sq.Eq{"p.code": code})

	selected, err := xpgx.Getx[domain.Plant](ctx, s.pool, selectQuery)
	if err != nil {
		return nil, wrapErr(err)
	}

	return &selected, nil
}

func (s *store) ListCompanies(ctx context.Context) ([]domain.Company, error) {
	query := builder().Select(companyColumns...).
		From(tableCompanies).
		OrderBy("code")

	return xpgx.Selectx[domain.Company](ctx, s.pool, query)
}

func (s *store) ListPlants(ctx context.Context, opts ListPlantsOpts) ([]domain.Plant, error) {
	query := builder().Select(plantColumns...).
		From("plants p").
		Join("companies c on c.id=p.company_id").
		OrderBy("c.code, p.code")

	if opts.CompanyID != nil {
		query = query.Where(sq.Eq{"p.company_id": *opts.CompanyID})
	}
	if opts.ActiveOnly {
		query = query.Where(sq.Eq{"p.active": true})
	}

	return xpgx.Selectx[domain.Plant](ctx, s.pool, query)
}
