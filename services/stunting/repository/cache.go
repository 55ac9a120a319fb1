package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-redis/redis/v8"

	"stunting/domain"
)

const (
	cachePrefix     = "stunting:"
	cacheVersionKey = cachePrefix + "version"
)

// redisCache keeps JSON values in redis. Keys embed a generation counter, so
// Invalidate only has to bump the counter.
type redisCache struct {
	client *redis.Client
	ttl    time.Duration
}

// NewStatsCache returns a redis backed cache, or a no-op one when client is
// nil.
func NewStatsCache(client *redis.Client, ttl time.Duration) domain.StatsCache {
	if client == nil {
		return noopCache{}
	}
	return &redisCache{
		client: client,
		ttl:    ttl,
	}
}

func (rc *redisCache) key(ctx context.Context, key string) (string, error) {
	version, err := rc.client.Get(ctx, cacheVersionKey).Result()
	if errors.Is(err, redis.Nil) {
		version = "0"
	} else if err != nil {
		return "", err
	}
	return fmt.Sprintf("%s%s:%s", cachePrefix, version, key), nil
}

func (rc *redisCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	k, err := rc.key(ctx, key)
	if err != nil {
		return false, err
	}

	val, err := rc.client.Get(ctx, k).Result()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	if err := sonic.UnmarshalString(val, dest); err != nil {
		return false, err
	}
	return true, nil
}

func (rc *redisCache) Set(ctx context.Context, key string, value interface{}) error {
	k, err := rc.key(ctx, key)
	if err != nil {
		return err
	}

	jsonValue, err := sonic.Marshal(value)
	if err != nil {
		return err
	}
	return rc.client.Set(ctx, k, jsonValue, rc.ttl).Err()
}

func (rc *redisCache) Invalidate(ctx context.Context) error {
	return rc.client.Incr(ctx, cacheVersionKey).Err()
}

type noopCache struct{}

func (noopCache) Get(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (noopCache) Set(ctx context.Context, key string, value interface{}) error {
	return nil
}

func (noopCache) Invalidate(ctx context.Context) error {
	return nil
}
