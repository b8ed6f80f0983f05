// Package redis caches order summaries in Redis.
package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"ordering/internal/core/domain/model/order"

	goredis "github.com/redis/go-redis/v9"
)

// DefaultSummaryTTL is used when NewOrderSummaryCache receives a non-positive ttl.
const DefaultSummaryTTL = 10 * time.Minute

// OrderSummaryCache stores JSON encoded order summaries under "order:<id>:summary".
//
// It implements ports.OrderSummaryCache for reads and ports.OrderChangeListener
// so every committed change overwrites the cached entry.
type OrderSummaryCache struct {
	client summaryStore
	ttl    time.Duration
}

// summaryStore is the subset of goredis.Cmdable the cache uses.
type summaryStore interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
	Del(ctx context.Context, keys ...string) *goredis.IntCmd
}

func NewOrderSummaryCache(client *goredis.Client, ttl time.Duration) *OrderSummaryCache {
	return newOrderSummaryCache(client, ttl)
}

func newOrderSummaryCache(store summaryStore, ttl time.Duration) *OrderSummaryCache {
	if ttl <= 0 {
		ttl = DefaultSummaryTTL
	}
	return &OrderSummaryCache{client: store, ttl: ttl}
}

func summaryKey(orderID string) string {
	return fmt.Sprintf("order:%s:summary", orderID)
}

// GetSummary reports a miss as (Summary{}, false, nil).
func (c *OrderSummaryCache) GetSummary(ctx context.Context, orderID string) (order.Summary, bool, error) {
	raw, err := c.client.Get(ctx, summaryKey(orderID)).Bytes()
	if errors.Is(err, goredis.Nil) {
		return order.Summary{}, false, nil
	}
	if err != nil {
		return order.Summary{}, false, err
	}

	var summary order.Summary
	if err = json.Unmarshal(raw, &summary); err != nil {
		return order.Summary{}, false, fmt.Errorf("decode cached summary of order %s: %w", orderID, err)
	}

	return summary, true, nil
}

func (c *OrderSummaryCache) SetSummary(ctx context.Context, summary order.Summary) error {
	raw, err := json.Marshal(summary)
	if err != nil {
		return err
	}

	return c.client.Set(ctx, summaryKey(summary.OrderID), raw, c.ttl).Err()
}

// OrderChanged writes the fresh summary of changed. When the write fails the
// entry is evicted so readers fall back to the database instead of a stale summary.
func (c *OrderSummaryCache) OrderChanged(ctx context.Context, changed *order.Order) error {
	summary, err := changed.Summary()
	if err != nil {
		return err
	}

	setErr := c.SetSummary(ctx, summary)
	if setErr == nil {
		return nil
	}

	if delErr := c.client.Del(ctx, summaryKey(summary.OrderID)).Err(); delErr != nil {
		return errors.Join(setErr, fmt.Errorf("evict stale summary of order %s: %w", summary.OrderID, delErr))
	}
	return setErr
}
