package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"

	"github.com/actuallystonmai/chef-recommendation-service/internal/domain"
)

const (
	defaultTTL         = 10 * time.Minute
	defaultTrendingTTL = time.Minute
)

type Cache struct {
	client      *redis.Client
	ttl         time.Duration
	trendingTTL time.Duration
}

func NewCache(client *redis.Client, ttl, trendingTTL time.Duration) *Cache {
	if ttl <= 0 {
		ttl = defaultTTL
	}
	if trendingTTL <= 0 {
		trendingTTL = defaultTrendingTTL
	}
	return &Cache{client: client, ttl: ttl, trendingTTL: trendingTTL}
}

func feedKey(userID int64, contentType domain.ContentType, limit int) string {
	return fmt.Sprintf("feed:user:%d:type:%s:limit:%d", userID, contentType, limit)
}

func feedPattern(userID int64) string {
	return fmt.Sprintf("feed:user:%d:*", userID)
}

func trendingKey(contentType domain.ContentType, limit int) string {
	return fmt.Sprintf("trending:type:%s:limit:%d", contentType, limit)
}

// GetFeed returns a cached feed; found is false on a miss.
func (c *Cache) GetFeed(ctx context.Context, userID int64, contentType domain.ContentType, limit int) ([]domain.ScoredCandidate, bool, error) {
	var recs []domain.ScoredCandidate
	found, err := c.get(ctx, feedKey(userID, contentType, limit), &recs)
	return recs, found, err
}

func (c *Cache) SetFeed(ctx context.Context, userID int64, contentType domain.ContentType, limit int, recs []domain.ScoredCandidate) error {
	return c.set(ctx, feedKey(userID, contentType, limit), recs, c.ttl)
}

func (c *Cache) GetTrending(ctx context.Context, contentType domain.ContentType, limit int) ([]domain.TrendingEntry, bool, error) {
	var entries []domain.TrendingEntry
	found, err := c.get(ctx, trendingKey(contentType, limit), &entries)
	return entries, found, err
}

func (c *Cache) SetTrending(ctx context.Context, contentType domain.ContentType, limit int, entries []domain.TrendingEntry) error {
	return c.set(ctx, trendingKey(contentType, limit), entries, c.trendingTTL)
}

// ClearUserFeeds drops every cached feed for the user; used when the user's
// interaction history changes.
func (c *Cache) ClearUserFeeds(ctx context.Context, userID int64) error {
	iter := c.client.Scan(ctx, 0, feedPattern(userID), 100).Iterator()
	for iter.Next(ctx) {
		if err := c.client.Del(ctx, iter.Val()).Err(); err != nil {
			return fmt.Errorf("cache delete %s: %w", iter.Val(), err)
		}
	}
	return iter.Err()
}

// Ping connectivity
func (c *Cache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *Cache) get(ctx context.Context, key string, dst any) (bool, error) {
	val, err := c.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache get %s: %w", key, err)
	}

	if err := json.Unmarshal(val, dst); err != nil {
		return false, fmt.Errorf("unmarshal cached value %s: %w", key, err)
	}
	return true, nil
}

func (c *Cache) set(ctx context.Context, key string, v any, ttl time.Duration) error {
	val, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal cache value %s: %w", key, err)
	}

	if err := c.client.Set(ctx, key, val, ttl).Err(); err != nil {
		return fmt.Errorf("cache set %s: %w", key, err)
	}
	return nil
}
