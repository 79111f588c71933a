package dto

import (
	"fmt"
	"math"
	"sort"
	"sync"

	"github.com/ougirez/carbon4c/internal/aggregate"
	"github.com/ougirez/carbon4c/internal/domain"
)

// PlantBatch collects the records read from one plant source. A key seen
// twice poisons the batch: the caller must not load any of it.
type PlantBatch struct {
	PlantCode string
	Source    string
	records   map[domain.RecordKey]domain.IndicatorRecord
	recordsMx sync.Mutex
}

func NewPlantBatch(plantCode, source string) *PlantBatch {
	return &PlantBatch{
		PlantCode: plantCode,
		Source:    source,
		records:   make(map[domain.RecordKey]domain.IndicatorRecord),
	}
}

func (b *PlantBatch) PutData(indicatorCode string, year domain.Year, month domain.Month, value float64) error {
	if indicatorCode == "" {
		return fmt.Errorf("empty indicator code, year-%d, month-%d", year, month)
	}
	if month < domain.AnnualMonth || month > 12 {
		return fmt.Errorf("indicator %s, year-%d: month %d out of range", indicatorCode, year, month)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return fmt.Errorf("indicator %s, year-%d, month-%d: %w", indicatorCode, year, month, aggregate.ErrNonFiniteValue)
	}

	rec := domain.IndicatorRecord{
		Level:         domain.LevelPlant,
		EntityID:      b.PlantCode,
		IndicatorCode: indicatorCode,
		Year:          year,
		Month:         month,
		Value:         value,
		Contributors:  1,
		Source:        b.Source,
	}

	b.recordsMx.Lock()
	defer b.recordsMx.Unlock()

	if _, ok := b.records[rec.Key()]; ok {
		return &aggregate.DuplicateKeyError{Level: domain.LevelPlant, Key: rec.Key()}
	}
	b.records[rec.Key()] = rec

	return nil
}

func (b *PlantBatch) Len() int {
	b.recordsMx.Lock()
	defer b.recordsMx.Unlock()
	return len(b.records)
}

// Records returns the batch ordered by key.
func (b *PlantBatch) Records() []domain.IndicatorRecord {
	b.recordsMx.Lock()
	defer b.recordsMx.Unlock()

	out := make([]domain.IndicatorRecord, 0, len(b.records))
	for _, r := range b.records {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key().Less(out[j].Key()) })

	return out
}
