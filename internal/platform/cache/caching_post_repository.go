// Package cache provides caching implementations for repository interfaces.
package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"toysns/internal/feature/post/domain/entity"
	"toysns/internal/feature/post/usecase"
	"toysns/internal/shared/pagination"
)

// CachingPostRepository decorates a PostRepository with Redis caching of list pages.
// Single-post lookups always go to the underlying repository so that ownership
// checks see the current owner and deletion state.
type CachingPostRepository struct {
	inner     usecase.PostRepository
	rdb       *redis.Client
	ttl       time.Duration
	namespace string
}

var _ usecase.PostRepository = (*CachingPostRepository)(nil)

// NewCachingPostRepository decorates a PostRepository with Redis caching.
// If ttl is 0, it defaults to 1 minute. If namespace is empty, it uses "posts".
// A nil rdb disables caching.
func NewCachingPostRepository(rdb *redis.Client, ttl time.Duration, inner usecase.PostRepository, namespace string) *CachingPostRepository {
	if ttl <= 0 {
		ttl = time.Minute
	}
	if namespace == "" {
		namespace = "posts"
	}
	return &CachingPostRepository{
		inner:     inner,
		rdb:       rdb,
		ttl:       ttl,
		namespace: namespace,
	}
}

// Save writes the post and drops every cached page.
func (c *CachingPostRepository) Save(ctx context.Context, post *entity.Post) error {
	if err := c.inner.Save(ctx, post); err != nil {
		return err
	}
	if c.rdb == nil {
		return nil
	}
	// Best effort: a failed invalidation leaves pages stale until the TTL expires
	if err := c.deleteByPattern(ctx, c.namespace+":*"); err != nil {
		slog.Warn("post cache invalidation failed", "error", err)
	}
	return nil
}

// FindByID is never cached.
func (c *CachingPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	return c.inner.FindByID(ctx, id)
}

// FindAll returns a page of all posts, checking the cache first.
func (c *CachingPostRepository) FindAll(ctx context.Context, req pagination.Request) (pagination.Page[entity.Post], error) {
	return c.cachedPage(ctx, c.cacheKey("all", req), func() (pagination.Page[entity.Post], error) {
		return c.inner.FindAll(ctx, req)
	})
}

// FindAllByUserID returns a page of one user's posts, checking the cache first.
func (c *CachingPostRepository) FindAllByUserID(ctx context.Context, userID uint, req pagination.Request) (pagination.Page[entity.Post], error) {
	return c.cachedPage(ctx, c.cacheKey(fmt.Sprintf("user:%d", userID), req), func() (pagination.Page[entity.Post], error) {
		return c.inner.FindAllByUserID(ctx, userID, req)
	})
}

func (c *CachingPostRepository) cachedPage(ctx context.Context, key string, load func() (pagination.Page[entity.Post], error)) (pagination.Page[entity.Post], error) {
	// Bypass cache if Redis is not configured
	if c.rdb == nil {
		return load()
	}

	// 1) Check cache
	if b, err := c.rdb.Get(ctx, key).Bytes(); err == nil && len(b) > 0 {
		var out pagination.Page[entity.Post]
		if err := json.Unmarshal(b, &out); err == nil {
			return out, nil
		}
		// Delete corrupted cache entry
		_ = c.rdb.Del(ctx, key).Err()
	}

	// 2) Fallback to database
	out, err := load()
	if err != nil {
		return pagination.Page[entity.Post]{}, err
	}

	// 3) Store in cache (best effort)
	if b, err := json.Marshal(out); err == nil {
		_ = c.rdb.Set(ctx, key, b, c.ttl).Err()
	}
	return out, nil
}

// cacheKey generates a cache key for one page of a listing.
func (c *CachingPostRepository) cacheKey(scope string, req pagination.Request) string {
	sort := req.Sort
	if sort == "" {
		sort = "-"
	}
	return fmt.Sprintf("%s:%s:%d:%d:%s:%s",
		c.namespace,
		scope,
		req.Page,
		req.Size,
		safe(sort),
		req.Direction,
	)
}

// deleteByPattern deletes all cache keys matching a given pattern using SCAN.
func (c *CachingPostRepository) deleteByPattern(ctx context.Context, pattern string) error {
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

// safe escapes characters that are problematic for Redis keys.
func safe(s string) string {
	s = strings.ReplaceAll(s, " ", "_")
	s = strings.ReplaceAll(s, ":", "_")
	return s
}
