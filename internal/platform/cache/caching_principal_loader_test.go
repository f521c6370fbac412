package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"toysns/internal/feature/user/domain/entity"
	"toysns/internal/shared/apperr"
)

type countingLoader struct {
	calls int
	fn    func(userName string) (entity.Principal, error)
}

func (l *countingLoader) LoadPrincipal(_ context.Context, userName string) (entity.Principal, error) {
	l.calls++
	return l.fn(userName)
}

func TestCachingPrincipalLoader_CachesSuccess(t *testing.T) {
	t.Parallel()

	inner := &countingLoader{fn: func(userName string) (entity.Principal, error) {
		return entity.Principal{UserName: userName, Active: true}, nil
	}}
	loader := NewCachingPrincipalLoader(inner, time.Minute)

	for i := 0; i < 3; i++ {
		p, err := loader.LoadPrincipal(context.Background(), "alice")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if p.UserName != "alice" || !p.Active {
			t.Errorf("unexpected principal: %+v", p)
		}
	}
	if inner.calls != 1 {
		t.Errorf("expected 1 inner call, got %d", inner.calls)
	}

	loader.Forget("alice")
	if _, err := loader.LoadPrincipal(context.Background(), "alice"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if inner.calls != 2 {
		t.Errorf("expected reload after Forget, got %d calls", inner.calls)
	}
}

func TestCachingPrincipalLoader_DoesNotCacheErrors(t *testing.T) {
	t.Parallel()

	inner := &countingLoader{fn: func(userName string) (entity.Principal, error) {
		return entity.Principal{}, apperr.New(apperr.CodeUserNotFound, "%s not founded", userName)
	}}
	loader := NewCachingPrincipalLoader(inner, time.Minute)

	for i := 0; i < 2; i++ {
		_, err := loader.LoadPrincipal(context.Background(), "ghost")
		if !errors.Is(err, apperr.ErrUserNotFound) {
			t.Errorf("expected USER_NOT_FOUND, got %v", err)
		}
	}
	if inner.calls != 2 {
		t.Errorf("expected errors to be retried, got %d calls", inner.calls)
	}
}

func TestCachingPrincipalLoader_Expires(t *testing.T) {
	t.Parallel()

	inner := &countingLoader{fn: func(userName string) (entity.Principal, error) {
		return entity.Principal{UserName: userName, Active: true}, nil
	}}
	loader := NewCachingPrincipalLoader(inner, 20*time.Millisecond)

	_, _ = loader.LoadPrincipal(context.Background(), "alice")
	time.Sleep(40 * time.Millisecond)
	_, _ = loader.LoadPrincipal(context.Background(), "alice")

	if inner.calls != 2 {
		t.Errorf("expected expired entry to be reloaded, got %d calls", inner.calls)
	}
}
