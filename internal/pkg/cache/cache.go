// Package cache stores computed band schemas. A schema is a pure function
// of its inputs, so entries never need invalidation beyond their TTL.
package cache

import (
	"context"
	"fmt"
	"strconv"
	"sync"

	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/gcca"
)

type SchemaCache interface {
	Get(ctx context.Context, key string) (gcca.BandSchema, bool, error)
	Set(ctx context.Context, key string, schema gcca.BandSchema) error
}

// SchemaKey identifies a schema by product, parameter and class count.
func SchemaKey(product domain.ProductType, param float64, classCount int) string {
	return fmt.Sprintf("gcca:schema:%s:%s:%d", product, strconv.FormatFloat(param, 'g', -1, 64), classCount)
}

type memory struct {
	mu      sync.RWMutex
	schemas map[string]gcca.BandSchema
}

func NewMemory() SchemaCache {
	return &memory{schemas: make(map[string]gcca.BandSchema)}
}

func (m *memory) Get(_ context.Context, key string) (gcca.BandSchema, bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	s, ok := m.schemas[key]
	if !ok {
		return gcca.BandSchema{}, false, nil
	}
	return s.Clone(), true, nil
}

func (m *memory) Set(_ context.Context, key string, schema gcca.BandSchema) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.schemas[key] = schema.Clone()
	return nil
}
