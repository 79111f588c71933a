// Package testutil holds in-memory stand-ins for the warehouse.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sort"
	"sync"
	"time"

	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/pkg/constants"
	"github.com/ougirez/carbon4c/internal/pkg/store"
)

type recordKey struct {
	level domain.Level
	key   domain.RecordKey
}

// MemStore implements store.Store in memory.
type MemStore struct {
	mu         sync.Mutex
	companies  map[string]*domain.Company
	plants     map[string]*domain.Plant
	indicators map[string]domain.Indicator
	records    map[recordKey]domain.IndicatorRecord
	nextID     int64

	// FailUpsertRecords makes UpsertRecords and ReplaceLevels fail.
	FailUpsertRecords error
	// FailReplaceLevel makes ReplaceLevels fail, leaving every level
	// untouched, when the batch includes this level.
	FailReplaceLevel domain.Level
}

var _ store.Store = (*MemStore)(nil)

func NewMemStore() *MemStore {
	return &MemStore{
		companies:  make(map[string]*domain.Company),
		plants:     make(map[string]*domain.Plant),
		indicators: make(map[string]domain.Indicator),
		records:    make(map[recordKey]domain.IndicatorRecord),
	}
}

func (m *MemStore) UpsertCompany(_ context.Context, code, name string) (*domain.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	c, ok := m.companies[code]
	if !ok {
		m.nextID++
		c = &domain.Company{ID: m.nextID, Code: code, Active: true, CreatedAt: time.Now()}
		m.companies[code] = c
	}
	if name != "" {
		c.Name = name
	}
	c.UpdatedAt = time.Now()

	out := *c
	return &out, nil
}

func (m *MemStore) UpsertPlant(_ context.Context, companyID int64, code, name string) (*domain.Plant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var company *domain.Company
	for _, c := range m.companies {
		if c.ID == companyID {
			company = c
		}
	}
	if company == nil {
		return nil, constants.ErrDBNotFound
	}

	p, ok := m.plants[code]
	if !ok {
		m.nextID++
		p = &domain.Plant{ID: m.nextID, Code: code, Active: true, CreatedAt: time.Now()}
		m.plants[code] = p
	}
	p.CompanyID = company.ID
	p.CompanyCode = company.Code
	if name != "" {
		p.Name = name
	}
	p.UpdatedAt = time.Now()

	out := *p
	return &out, nil
}

func (m *MemStore) ListCompanies(context.Context) ([]domain.Company, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Company, 0, len(m.companies))
	for _, c := range m.companies {
		out = append(out, *c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *MemStore) ListPlants(_ context.Context, opts store.ListPlantsOpts) ([]domain.Plant, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Plant, 0, len(m.plants))
	for _, p := range m.plants {
		if opts.CompanyID != nil && p.CompanyID != *opts.CompanyID {
			continue
		}
		if opts.ActiveOnly && !p.Active {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *MemStore) UpsertIndicators(_ context.Context, indicators []domain.Indicator) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, ind := range indicators {
		ind.UpdatedAt = time.Now()
		m.indicators[ind.Code] = ind
	}
	return nil
}

func (m *MemStore) ListIndicators(context.Context) ([]domain.Indicator, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.Indicator, 0, len(m.indicators))
	for _, ind := range m.indicators {
		out = append(out, ind)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (m *MemStore) UpsertRecords(_ context.Context, records []domain.IndicatorRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailUpsertRecords != nil {
		return m.FailUpsertRecords
	}
	m.putLocked(records)
	return nil
}

func (m *MemStore) ReplaceLevels(_ context.Context, year domain.Year, levels map[domain.Level][]domain.IndicatorRecord) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.FailUpsertRecords != nil {
		return m.FailUpsertRecords
	}
	if _, ok := levels[m.FailReplaceLevel]; ok && m.FailReplaceLevel != "" {
		return fmt.Errorf("replace level %s: write failed", m.FailReplaceLevel)
	}

	for k := range m.records {
		if _, ok := levels[k.level]; ok && k.key.Year == year {
			delete(m.records, k)
		}
	}
	for _, records := range levels {
		m.putLocked(records)
	}
	return nil
}

func (m *MemStore) putLocked(records []domain.IndicatorRecord) {
	for _, r := range records {
		r.CreatedAt = time.Time{}
		m.records[recordKey{level: r.Level, key: r.Key()}] = r
	}
}

func (m *MemStore) ListRecords(_ context.Context, opts store.ListRecordsOpts) ([]domain.IndicatorRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]domain.IndicatorRecord, 0)
	for k, r := range m.records {
		if k.level != opts.Level {
			continue
		}
		if len(opts.EntityIDs) > 0 && !slices.Contains(opts.EntityIDs, r.EntityID) {
			continue
		}
		if len(opts.IndicatorCodes) > 0 && !slices.Contains(opts.IndicatorCodes, r.IndicatorCode) {
			continue
		}
		if opts.Year != nil && r.Year != *opts.Year {
			continue
		}
		if opts.Month != nil && r.Month != *opts.Month {
			continue
		}
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key().Less(out[j].Key()) })
	return out, nil
}
