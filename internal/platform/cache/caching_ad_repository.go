// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"adboard_backend/internal/feature/ads/domain/entity"
	"adboard_backend/internal/feature/ads/usecase"
)

// CachingAdRepository decorates an AdRepository with Redis caching.
// It implements the decorator pattern, transparently adding caching without
// modifying the underlying repository. Listings change only when a new ad is
// posted, so Create invalidates the whole namespace.
type CachingAdRepository struct {
	inner     usecase.AdRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

// NewCachingAdRepository decorates an AdRepository with Redis caching.
// If ttl is 0, it defaults to 5 minutes. If namespace is empty, it uses "ads".
func NewCachingAdRepository(rdb *redis.Client, ttl time.Duration, inner usecase.AdRepository, namespace string) *CachingAdRepository {
	if ttl <= 0 {
		ttl = 5 * time.Minute
	}
	if namespace == "" {
		namespace = "ads"
	}
	return &CachingAdRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Create inserts an advertisement and invalidates the cached listings.
func (c *CachingAdRepository) Create(ctx context.Context, ad *entity.Advertisement) error {
	// First insert into the underlying repository
	if err := c.inner.Create(ctx, ad); err != nil {
		return err
	}
	// Exit early if Redis is not configured
	if c.rdb == nil {
		return nil
	}

	// Invalidate the listing caches (best effort: don't fail the write)
	_ = c.deleteByPattern(ctx, c.namespace+":*")
	return nil
}

// FindByID retrieves a single advertisement, bypassing the cache.
// Single-row lookups are cheap; only the listings are cached.
func (c *CachingAdRepository) FindByID(ctx context.Context, id uint) (*entity.Advertisement, error) {
	return c.inner.FindByID(ctx, id)
}

// ListAll retrieves all advertisements, checking cache first then falling
// back to the database.
func (c *CachingAdRepository) ListAll(ctx context.Context) ([]entity.Advertisement, error) {
	return c.cachedList(ctx, c.namespace+":all", func() ([]entity.Advertisement, error) {
		return c.inner.ListAll(ctx)
	})
}

// ListByUser retrieves one user's advertisements, checking cache first then
// falling back to the database.
func (c *CachingAdRepository) ListByUser(ctx context.Context, userID uint) ([]entity.Advertisement, error) {
	key := fmt.Sprintf("%s:user:%d", c.namespace, userID)
	return c.cachedList(ctx, key, func() ([]entity.Advertisement, error) {
		return c.inner.ListByUser(ctx, userID)
	})
}

// cachedList serves a listing from cache when possible.
func (c *CachingAdRepository) cachedList(ctx context.Context, key string, load func() ([]entity.Advertisement, error)) ([]entity.Advertisement, error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out []entity.Advertisement
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return nil, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}

	return out, nil
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingAdRepository) deleteByPattern(ctx context.Context, pattern string) error {
	var cursor uint64
	for {
		keys, cur, err := c.rdb.Scan(ctx, cursor, pattern, 200).Result()
		if err != nil {
			return err
		}
		if len(keys) > 0 {
			if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
				return err
			}
		}
		cursor = cur
		if cursor == 0 {
			break
		}
	}
	return nil
}
