package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"fncs-api/internal/domain"
)

// CategoryCache guarda el listado de categorías por un TTL corto.
// Es best-effort: un fallo del backend se trata como cache miss.
type CategoryCache interface {
	Get(ctx context.Context) ([]domain.Category, bool)
	Set(ctx context.Context, categories []domain.Category)
	Invalidate(ctx context.Context)
}

type memoryCategoryCache struct {
	mu        sync.Mutex
	ttl       time.Duration
	items     []domain.Category
	expiresAt time.Time
}

func NewMemoryCategoryCache(ttl time.Duration) CategoryCache {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &memoryCategoryCache{ttl: ttl}
}

func (c *memoryCategoryCache) Get(_ context.Context) ([]domain.Category, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.items == nil || time.Now().UTC().After(c.expiresAt) {
		c.items = nil
		return nil, false
	}
	out := make([]domain.Category, len(c.items))
	copy(out, c.items)
	return out, true
}

func (c *memoryCategoryCache) Set(_ context.Context, categories []domain.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	items := make([]domain.Category, len(categories))
	copy(items, categories)
	c.items = items
	c.expiresAt = time.Now().UTC().Add(c.ttl)
}

func (c *memoryCategoryCache) Invalidate(_ context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = nil
}

type redisCategoryCache struct {
	client *redis.Client
	ttl    time.Duration
	key    string
}

func NewRedisCategoryCache(client *redis.Client, ttl time.Duration) CategoryCache {
	if client == nil {
		return nil
	}
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &redisCategoryCache{
		client: client,
		ttl:    ttl,
		key:    "categories:list",
	}
}

func (c *redisCategoryCache) Get(ctx context.Context) ([]domain.Category, bool) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	raw, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		return nil, false
	}
	var categories []domain.Category
	if err := json.Unmarshal(raw, &categories); err != nil {
		return nil, false
	}
	return categories, true
}

func (c *redisCategoryCache) Set(ctx context.Context, categories []domain.Category) {
	raw, err := json.Marshal(categories)
	if err != nil {
		return
	}
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	_ = c.client.Set(ctx, c.key, raw, c.ttl).Err()
}

func (c *redisCategoryCache) Invalidate(ctx context.Context) {
	ctx, cancel := context.WithTimeout(ctx, 500*time.Millisecond)
	defer cancel()
	_ = c.client.Del(ctx, c.key).Err()
}
