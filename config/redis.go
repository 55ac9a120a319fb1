package config

import (
	"context"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
)

func GetRedisAddr() string {
	return os.Getenv("REDIS_ADDR")
}

func GetRedisDB() int {
	v, err := strconv.Atoi(os.Getenv("REDIS_DB"))
	if err != nil {
		return 0
	}
	return v
}

func GetCacheTTL() time.Duration {
	return getSeconds("CACHE_TTL_SECONDS", 300)
}

// InitRedis connects to redis when REDIS_ADDR is set. A nil client disables
// caching.
func InitRedis(ctx context.Context) *redis.Client {
	log := GetLogrusInstance()

	addr := GetRedisAddr()
	if addr == "" {
		log.Info("REDIS_ADDR is empty, statistics cache disabled")
		return nil
	}

	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       GetRedisDB(),
	})

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		log.WithError(err).Warn("Redis unreachable, statistics cache disabled")
		_ = client.Close()
		return nil
	}

	log.Infof("Redis cache connected at %s", addr)
	return client
}
