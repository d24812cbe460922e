package di

import (
	"time"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	adadapters "adboard_backend/internal/feature/ads/adapters"
	"adboard_backend/internal/feature/ads/usecase"
	"adboard_backend/internal/platform/cache"
)

// NewAdRepository creates an AdRepository implementation.
// If Redis is available, the GORM repository is wrapped with the caching
// decorator. Otherwise the plain repository is returned.
func NewAdRepository(rdb *redis.Client, db *gorm.DB, ttl time.Duration) usecase.AdRepository {
	repo := adadapters.NewAdGorm(db)
	if rdb != nil {
		return cache.NewCachingAdRepository(rdb, ttl, repo, "ads")
	}
	return repo
}
