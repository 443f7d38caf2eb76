package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	redisv9 "github.com/redis/go-redis/v9"

	"gopherblog/internal/model"
)

const (
	firstPageKey      = "blog:page:first"
	firstPageDirtyKey = "blog:page:first:dirty"
)

// PageCache keeps the first listing page in redis. Only the first page is
// cached: it takes nearly all the read traffic and a single key keeps
// invalidation trivial. The dirty marker covers the window between a
// mutation and the worker dropping the stale entry.
type PageCache struct {
	client         *redisv9.Client
	pageTTL        time.Duration
	dirtyMarkerTTL time.Duration
}

type cachedPage struct {
	Posts []model.Post `json:"posts"`
	Total int64        `json:"total"`
}

func NewPageCache(client *redisv9.Client, pageTTL, dirtyMarkerTTL time.Duration) *PageCache {
	if pageTTL <= 0 {
		pageTTL = 60 * time.Second
	}
	if dirtyMarkerTTL <= 0 {
		dirtyMarkerTTL = 5 * time.Second
	}
	return &PageCache{
		client:         client,
		pageTTL:        pageTTL,
		dirtyMarkerTTL: dirtyMarkerTTL,
	}
}

func (c *PageCache) GetFirstPage(ctx context.Context) ([]model.Post, int64, bool, error) {
	raw, err := c.client.Get(ctx, firstPageKey).Result()
	if err == redisv9.Nil {
		return nil, 0, false, nil
	}
	if err != nil {
		return nil, 0, false, fmt.Errorf("redis get first page failed: %w", err)
	}

	var page cachedPage
	if err := json.Unmarshal([]byte(raw), &page); err != nil {
		return nil, 0, false, fmt.Errorf("unmarshal cached page failed: %w", err)
	}
	return page.Posts, page.Total, true, nil
}

func (c *PageCache) SetFirstPage(ctx context.Context, posts []model.Post, total int64) error {
	payload, err := json.Marshal(cachedPage{Posts: posts, Total: total})
	if err != nil {
		return fmt.Errorf("marshal page cache failed: %w", err)
	}
	if err := c.client.Set(ctx, firstPageKey, payload, c.pageTTL).Err(); err != nil {
		return fmt.Errorf("redis set first page failed: %w", err)
	}
	return nil
}

func (c *PageCache) DeleteFirstPage(ctx context.Context) error {
	if err := c.client.Del(ctx, firstPageKey).Err(); err != nil {
		return fmt.Errorf("redis delete first page failed: %w", err)
	}
	return nil
}

func (c *PageCache) MarkDirty(ctx context.Context) error {
	if err := c.client.Set(ctx, firstPageDirtyKey, "1", c.dirtyMarkerTTL).Err(); err != nil {
		return fmt.Errorf("redis set dirty marker failed: %w", err)
	}
	return nil
}

func (c *PageCache) IsDirty(ctx context.Context) (bool, error) {
	exists, err := c.client.Exists(ctx, firstPageDirtyKey).Result()
	if err != nil {
		return false, fmt.Errorf("redis check dirty marker failed: %w", err)
	}
	return exists > 0, nil
}
