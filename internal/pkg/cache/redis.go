package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/ougirez/carbon4c/internal/gcca"
	"github.com/redis/go-redis/v9"
)

type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis parses url (redis://host:port/db) and returns a cache backed by it.
func NewRedis(url string, ttl time.Duration) (SchemaCache, *redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, nil, fmt.Errorf("redis.ParseURL: %w", err)
	}
	client := redis.NewClient(opts)
	return NewRedisFromClient(client, ttl), client, nil
}

func NewRedisFromClient(client *redis.Client, ttl time.Duration) SchemaCache {
	return &redisCache{client: client, ttl: ttl}
}

func (c *redisCache) Get(ctx context.Context, key string) (gcca.BandSchema, bool, error) {
	raw, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return gcca.BandSchema{}, false, nil
	}
	if err != nil {
		return gcca.BandSchema{}, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	var schema gcca.BandSchema
	if err := sonic.Unmarshal(raw, &schema); err != nil {
		return gcca.BandSchema{}, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return schema, true, nil
}

func (c *redisCache) Set(ctx context.Context, key string, schema gcca.BandSchema) error {
	raw, err := sonic.Marshal(schema)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := c.client.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}
