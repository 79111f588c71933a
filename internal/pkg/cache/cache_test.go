package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/ougirez/carbon4c/internal/domain"
	"github.com/ougirez/carbon4c/internal/gcca"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchemaCaches(t *testing.T) map[string]SchemaCache {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return map[string]SchemaCache{
		"memory": NewMemory(),
		"redis":  NewRedisFromClient(client, time.Minute),
	}
}

func TestSchemaCache_RoundTrip(t *testing.T) {
	schema, err := gcca.BuildSchema(0.95, gcca.DefaultClassCount)
	require.NoError(t, err)

	for name, c := range testSchemaCaches(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := SchemaKey(domain.ProductCement, 0.95, gcca.DefaultClassCount)

			_, ok, err := c.Get(ctx, key)
			require.NoError(t, err)
			assert.False(t, ok)

			require.NoError(t, c.Set(ctx, key, schema))

			got, ok, err := c.Get(ctx, key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, schema, got)
		})
	}
}

func TestRedisCache_TTL(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	defer client.Close()

	c := NewRedisFromClient(client, time.Minute)
	ctx := context.Background()
	key := SchemaKey(domain.ProductConcrete, 30, 7)

	schema, err := gcca.BuildSchema(0.95, 1)
	require.NoError(t, err)
	require.NoError(t, c.Set(ctx, key, schema))

	mr.FastForward(2 * time.Minute)

	_, ok, err := c.Get(ctx, key)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestSchemaCache_CallerMutationDoesNotLeak(t *testing.T) {
	for name, c := range testSchemaCaches(t) {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			key := SchemaKey(domain.ProductCement, 1.5, 7)

			schema, err := gcca.BuildSchema(1.5, 7)
			require.NoError(t, err)
			require.NotEmpty(t, schema.Warnings)
			want := schema.Clone()

			require.NoError(t, c.Set(ctx, key, schema))
			schema.Bands[1].Upper = -1

			got, ok, err := c.Get(ctx, key)
			require.NoError(t, err)
			require.True(t, ok)
			got.Bands[1].Label = "Z"
			got.Warnings[0] = "mutated"

			again, ok, err := c.Get(ctx, key)
			require.NoError(t, err)
			require.True(t, ok)
			assert.Equal(t, want, again)
		})
	}
}

func TestSchemaKey(t *testing.T) {
	assert.Equal(t, "gcca:schema:cement:0.95:7", SchemaKey(domain.ProductCement, 0.95, 7))
	assert.Equal(t, "gcca:schema:concrete:25:5", SchemaKey(domain.ProductConcrete, 25, 5))
}
