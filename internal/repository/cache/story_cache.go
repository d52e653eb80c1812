package cache

import (
	"context"
	"encoding/json"
	"time"

	"placement-mentor-be/internal/entity"

	"github.com/redis/go-redis/v9"
)

const (
	keyPrefix = "story:aggregate:"
	ttl       = 5 * time.Minute
)

// StoryCache is a read-through cache for merged aggregates. Every failure is
// reported to the caller but treated as a miss there; the database stays the
// source of truth.
type StoryCache struct {
	rdb *redis.Client
}

func NewStoryCache(rdb *redis.Client) *StoryCache {
	return &StoryCache{rdb: rdb}
}

func (c *StoryCache) Get(ctx context.Context, slug string) (*entity.StoryAggregate, bool, error) {
	if c.rdb == nil {
		return nil, false, nil
	}

	raw, err := c.rdb.Get(ctx, keyPrefix+slug).Bytes()
	if err == redis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var aggregate entity.StoryAggregate
	if err := json.Unmarshal(raw, &aggregate); err != nil {
		return nil, false, err
	}
	return &aggregate, true, nil
}

func (c *StoryCache) Set(ctx context.Context, aggregate *entity.StoryAggregate) error {
	if c.rdb == nil || aggregate == nil || aggregate.Summary == nil {
		return nil
	}

	raw, err := json.Marshal(aggregate)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, keyPrefix+aggregate.Slug(), raw, ttl).Err()
}

func (c *StoryCache) Invalidate(ctx context.Context, slug string) error {
	if c.rdb == nil {
		return nil
	}
	return c.rdb.Del(ctx, keyPrefix+slug).Err()
}
