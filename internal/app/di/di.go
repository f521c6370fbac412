// Package di provides dependency injection factories for creating application components.
package di

import (
	"context"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"

	"toysns/internal/app/router"
	postadapters "toysns/internal/feature/post/adapters"
	posthandler "toysns/internal/feature/post/transport/handler"
	postusecase "toysns/internal/feature/post/usecase"
	useradapters "toysns/internal/feature/user/adapters"
	userhandler "toysns/internal/feature/user/transport/handler"
	userusecase "toysns/internal/feature/user/usecase"
	"toysns/internal/platform/cache"
	"toysns/internal/platform/config"
	"toysns/internal/platform/http/handler"
	jwtmw "toysns/internal/platform/jwt"
	"toysns/internal/platform/metrics"
	"toysns/internal/platform/password"
	"toysns/internal/shared/ratelimiter"
)

// metricsNamespace prefixes every exported Prometheus metric.
const metricsNamespace = "toysns"

// Models lists the GORM models migrated at startup.
func Models() []any {
	return []any{&useradapters.UserModel{}, &postadapters.PostModel{}}
}

// NewPostRepository creates a PostRepository implementation.
// If Redis is available, list pages are cached in Redis.
func NewPostRepository(rdb *redis.Client, db *gorm.DB, cfg *config.Config) postusecase.PostRepository {
	repo := postadapters.NewPostRepository(db)
	if rdb != nil {
		return cache.NewCachingPostRepository(rdb, cfg.PostCacheTTL, repo, "posts")
	}
	return repo
}

// NewRateLimiter creates the limiter for join and login.
// If Redis is available, the budget is shared by every instance.
// Otherwise, it falls back to an in-process limiter.
func NewRateLimiter(rdb *redis.Client, cfg config.RateLimitConfig) ratelimiter.Limiter {
	if rdb != nil {
		return ratelimiter.NewRedisRateLimiter(rdb, cfg.Requests, cfg.Window)
	}
	return ratelimiter.NewRateLimiter(cfg.Requests, cfg.Window)
}

// NewPrincipalLoader caches principal lookups in process memory.
func NewPrincipalLoader(inner jwtmw.PrincipalLoader, cfg *config.Config) jwtmw.PrincipalLoader {
	return cache.NewCachingPrincipalLoader(inner, cfg.PrincipalCacheTTL)
}

// NewReadyChecks returns the dependency checks served on /readyz.
func NewReadyChecks(db *gorm.DB, rdb *redis.Client) map[string]handler.Check {
	checks := map[string]handler.Check{
		"database": func(ctx context.Context) error {
			sqlDB, err := db.DB()
			if err != nil {
				return err
			}
			return sqlDB.PingContext(ctx)
		},
	}
	if rdb != nil {
		checks["redis"] = func(ctx context.Context) error {
			return rdb.Ping(ctx).Err()
		}
	}
	return checks
}

// NewRouterDeps wires repositories, usecases and handlers. rdb may be nil.
func NewRouterDeps(cfg *config.Config, db *gorm.DB, rdb *redis.Client, logger *slog.Logger) router.Deps {
	// Repository
	userRepo := useradapters.NewUserRepository(db)
	postRepo := NewPostRepository(rdb, db, cfg)

	// Usecase
	userUC := userusecase.NewUserUsecase(userRepo, password.NewBcryptEncoder(cfg.BcryptCost), jwtmw.NewGenerator(cfg.JWT))
	postUC := postusecase.NewPostUsecase(postRepo, userRepo)

	return router.Deps{
		Users:              userhandler.NewUserHandler(userUC),
		Posts:              posthandler.NewPostHandler(postUC),
		JWT:                cfg.JWT,
		Principals:         NewPrincipalLoader(userUC, cfg),
		AuthLimiter:        NewRateLimiter(rdb, cfg.RateLimit),
		Metrics:            metrics.NewMetrics(metricsNamespace),
		Logger:             logger,
		ReadyChecks:        NewReadyChecks(db, rdb),
		CORSAllowedOrigins: cfg.CORSAllowedOrigins,
	}
}
