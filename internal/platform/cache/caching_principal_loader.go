package cache

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"toysns/internal/feature/user/domain/entity"
	jwtmw "toysns/internal/platform/jwt"
)

// CachingPrincipalLoader keeps recently resolved principals in process memory
// so that authenticated requests do not hit the user store every time.
// Only successful lookups are cached.
type CachingPrincipalLoader struct {
	inner jwtmw.PrincipalLoader
	store *gocache.Cache
}

var _ jwtmw.PrincipalLoader = (*CachingPrincipalLoader)(nil)

// NewCachingPrincipalLoader wraps inner. If ttl is 0, it defaults to 30 seconds.
func NewCachingPrincipalLoader(inner jwtmw.PrincipalLoader, ttl time.Duration) *CachingPrincipalLoader {
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	return &CachingPrincipalLoader{
		inner: inner,
		store: gocache.New(ttl, 2*ttl),
	}
}

// LoadPrincipal returns the cached principal for userName or loads it from inner.
func (l *CachingPrincipalLoader) LoadPrincipal(ctx context.Context, userName string) (entity.Principal, error) {
	if v, ok := l.store.Get(userName); ok {
		return v.(entity.Principal), nil
	}

	p, err := l.inner.LoadPrincipal(ctx, userName)
	if err != nil {
		return entity.Principal{}, err
	}
	l.store.SetDefault(userName, p)
	return p, nil
}

// Forget drops the cached principal for userName.
func (l *CachingPrincipalLoader) Forget(userName string) {
	l.store.Delete(userName)
}
