package cache

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"catalog-service/internal/domain/entity"
	"catalog-service/pkg/clock"

	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
)

// StatisticsKey holds the shared snapshot when the redis driver is selected.
const StatisticsKey = "catalog:stats"

// MemoryStatisticsCache keeps one snapshot per process. A recomputation that
// finishes after a concurrent invalidation may still be stored; it is served
// until the next write or until the window elapses.
type MemoryStatisticsCache struct {
	mu       sync.Mutex
	ttl      time.Duration
	clock    clock.Clock
	stats    *entity.ProductStatistics
	storedAt time.Time
}

func NewMemoryStatisticsCache(ttl time.Duration, c clock.Clock) *MemoryStatisticsCache {
	return &MemoryStatisticsCache{ttl: ttl, clock: c}
}

func (c *MemoryStatisticsCache) Get(_ context.Context) (*entity.ProductStatistics, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.stats == nil || c.clock.Now().Sub(c.storedAt) >= c.ttl {
		return nil, false
	}
	return c.stats, true
}

func (c *MemoryStatisticsCache) Set(_ context.Context, stats *entity.ProductStatistics) {
	c.mu.Lock()
	c.stats = stats
	c.storedAt = c.clock.Now()
	c.mu.Unlock()
}

func (c *MemoryStatisticsCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	c.stats = nil
	c.storedAt = time.Time{}
	c.mu.Unlock()
}

// RedisStatisticsCache shares the snapshot between instances. Redis failures
// degrade to a cache miss.
type RedisStatisticsCache struct {
	client *redis.Client
	ttl    time.Duration
	log    *logrus.Logger
}

func NewRedisStatisticsCache(client *redis.Client, ttl time.Duration, log *logrus.Logger) *RedisStatisticsCache {
	return &RedisStatisticsCache{client: client, ttl: ttl, log: log}
}

func (c *RedisStatisticsCache) Get(ctx context.Context) (*entity.ProductStatistics, bool) {
	data, err := c.client.Get(ctx, StatisticsKey).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warnf("Failed to read statistics from cache: %+v", err)
		}
		return nil, false
	}

	var stats entity.ProductStatistics
	if err := json.Unmarshal(data, &stats); err != nil {
		c.log.Warnf("Failed to decode cached statistics: %+v", err)
		return nil, false
	}
	return &stats, true
}

func (c *RedisStatisticsCache) Set(ctx context.Context, stats *entity.ProductStatistics) {
	data, err := json.Marshal(stats)
	if err != nil {
		c.log.Warnf("Failed to encode statistics: %+v", err)
		return
	}
	if err := c.client.Set(ctx, StatisticsKey, data, c.ttl).Err(); err != nil {
		c.log.Warnf("Failed to store statistics in cache: %+v", err)
	}
}

func (c *RedisStatisticsCache) Invalidate(ctx context.Context) {
	if err := c.client.Del(ctx, StatisticsKey).Err(); err != nil {
		c.log.Warnf("Failed to invalidate statistics cache: %+v", err)
	}
}
