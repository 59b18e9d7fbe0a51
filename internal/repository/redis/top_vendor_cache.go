package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"foodRanking/business/ranking"
	"foodRanking/domain"
	"time"

	"github.com/redis/go-redis/v9"
)

const topKeyPrefix = "ranking:top:"

type TopVendorCache struct {
	client *redis.Client
	ttl    time.Duration
}

var _ ranking.TopVendorCache = (*TopVendorCache)(nil)

func NewTopVendorCache(client *redis.Client, ttl time.Duration) *TopVendorCache {
	return &TopVendorCache{
		client: client,
		ttl:    ttl,
	}
}

func topKey(limit int) string {
	// key format: "ranking:top:{limit}"
	return fmt.Sprintf("%s%d", topKeyPrefix, limit)
}

// GetTop returns the cached top-N list, ok=false on a miss.
func (c *TopVendorCache) GetTop(ctx context.Context, limit int) ([]domain.TopVendor, bool, error) {
	val, err := c.client.Get(ctx, topKey(limit)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get top vendors from Redis: %w", err)
	}

	var vendors []domain.TopVendor
	if err := json.Unmarshal(val, &vendors); err != nil {
		return nil, false, fmt.Errorf("failed to unmarshal top vendors: %w", err)
	}

	return vendors, true, nil
}

func (c *TopVendorCache) SetTop(ctx context.Context, limit int, vendors []domain.TopVendor) error {
	raw, err := json.Marshal(vendors)
	if err != nil {
		return fmt.Errorf("failed to marshal top vendors: %w", err)
	}

	if err := c.client.Set(ctx, topKey(limit), raw, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to store top vendors in Redis: %w", err)
	}

	return nil
}

// Invalidate drops every cached top-N list.
func (c *TopVendorCache) Invalidate(ctx context.Context) error {
	iter := c.client.Scan(ctx, 0, topKeyPrefix+"*", 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return fmt.Errorf("failed to scan top vendor keys: %w", err)
	}

	if len(keys) == 0 {
		return nil
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to delete top vendor keys: %w", err)
	}

	return nil
}
