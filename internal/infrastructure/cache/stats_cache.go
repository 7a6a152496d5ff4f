package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"

	"coffee-server/internal/domain/donation"
)

// StatsKey ストアフロント集計値のキャッシュキー
const StatsKey = "coffee:storefront:stats"

type cachedStats struct {
	Supporters int64 `json:"supporters"`
	Coffees    int64 `json:"coffees"`
}

// StatsCache Redis実装のStatsCache
type StatsCache struct {
	client redis.Cmdable
	ttl    time.Duration
}

// NewStatsCache 新しいStatsCacheを作成
func NewStatsCache(client redis.Cmdable, ttl time.Duration) *StatsCache {
	return &StatsCache{
		client: client,
		ttl:    ttl,
	}
}

var _ donation.StatsCache = (*StatsCache)(nil)

// Get キャッシュされた集計値を取得
func (c *StatsCache) Get(ctx context.Context) (donation.Stats, bool, error) {
	raw, err := c.client.Get(ctx, StatsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return donation.Stats{}, false, nil
	}
	if err != nil {
		return donation.Stats{}, false, fmt.Errorf("failed to get stats: %w", err)
	}

	stats, err := decodeStats(raw)
	if err != nil {
		return donation.Stats{}, false, err
	}
	return stats, true, nil
}

// Set 集計値をTTL付きでキャッシュ
func (c *StatsCache) Set(ctx context.Context, stats donation.Stats) error {
	raw, err := encodeStats(stats)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, StatsKey, raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to set stats: %w", err)
	}
	return nil
}

// HealthCheck Redisへの疎通確認
func (c *StatsCache) HealthCheck(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()
	return c.client.Ping(ctx).Err()
}

func encodeStats(stats donation.Stats) ([]byte, error) {
	raw, err := json.Marshal(cachedStats{Supporters: stats.Supporters, Coffees: stats.Coffees})
	if err != nil {
		return nil, fmt.Errorf("failed to encode stats: %w", err)
	}
	return raw, nil
}

func decodeStats(raw []byte) (donation.Stats, error) {
	var v cachedStats
	if err := json.Unmarshal(raw, &v); err != nil {
		return donation.Stats{}, fmt.Errorf("failed to decode stats: %w", err)
	}
	return donation.Stats{Supporters: v.Supporters, Coffees: v.Coffees}, nil
}
