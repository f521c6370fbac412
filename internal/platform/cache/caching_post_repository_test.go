package cache

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/go-redis/redismock/v9"

	"toysns/internal/feature/post/domain/entity"
	"toysns/internal/shared/pagination"
)

// mockPostRepository is a mock implementation of PostRepository.
type mockPostRepository struct {
	saveFn            func(ctx context.Context, post *entity.Post) error
	findByIDFn        func(ctx context.Context, id uint) (*entity.Post, error)
	findAllFn         func(ctx context.Context, req pagination.Request) (pagination.Page[entity.Post], error)
	findAllByUserIDFn func(ctx context.Context, userID uint, req pagination.Request) (pagination.Page[entity.Post], error)
}

func (m *mockPostRepository) Save(ctx context.Context, post *entity.Post) error {
	if m.saveFn != nil {
		return m.saveFn(ctx, post)
	}
	return nil
}

func (m *mockPostRepository) FindByID(ctx context.Context, id uint) (*entity.Post, error) {
	if m.findByIDFn != nil {
		return m.findByIDFn(ctx, id)
	}
	return nil, nil
}

func (m *mockPostRepository) FindAll(ctx context.Context, req pagination.Request) (pagination.Page[entity.Post], error) {
	if m.findAllFn != nil {
		return m.findAllFn(ctx, req)
	}
	return pagination.NewPage[entity.Post](nil, req, 0), nil
}

func (m *mockPostRepository) FindAllByUserID(ctx context.Context, userID uint, req pagination.Request) (pagination.Page[entity.Post], error) {
	if m.findAllByUserIDFn != nil {
		return m.findAllByUserIDFn(ctx, userID, req)
	}
	return pagination.NewPage[entity.Post](nil, req, 0), nil
}

func samplePage(req pagination.Request) pagination.Page[entity.Post] {
	return pagination.NewPage([]entity.Post{{ID: 1, Title: "hello", Body: "world"}}, req, 1)
}

// TestNewCachingPostRepository_Defaults verifies the TTL and namespace defaults.
func TestNewCachingPostRepository_Defaults(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name              string
		ttl               time.Duration
		namespace         string
		expectedTTL       time.Duration
		expectedNamespace string
	}{
		{"default values when zero/empty", 0, "", time.Minute, "posts"},
		{"negative ttl uses default", -1 * time.Minute, "", time.Minute, "posts"},
		{"custom values preserved", 10 * time.Minute, "custom", 10 * time.Minute, "custom"},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			repo := NewCachingPostRepository(nil, tt.ttl, &mockPostRepository{}, tt.namespace)

			if repo.ttl != tt.expectedTTL {
				t.Errorf("expected TTL %v, got %v", tt.expectedTTL, repo.ttl)
			}
			if repo.namespace != tt.expectedNamespace {
				t.Errorf("expected namespace %q, got %q", tt.expectedNamespace, repo.namespace)
			}
		})
	}
}

// TestCachingPostRepository_FindAll_NilRedis verifies that a nil client bypasses the cache.
func TestCachingPostRepository_FindAll_NilRedis(t *testing.T) {
	t.Parallel()

	req := pagination.NewRequest(0, 10, "")
	calls := 0
	inner := &mockPostRepository{
		findAllFn: func(ctx context.Context, r pagination.Request) (pagination.Page[entity.Post], error) {
			calls++
			return samplePage(r), nil
		},
	}

	repo := NewCachingPostRepository(nil, time.Minute, inner, "posts")

	for i := 0; i < 2; i++ {
		page, err := repo.FindAll(context.Background(), req)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(page.Content) != 1 {
			t.Errorf("expected 1 post, got %d", len(page.Content))
		}
	}
	if calls != 2 {
		t.Errorf("expected inner to be called twice, got %d", calls)
	}
}

// TestCachingPostRepository_FindAll_CacheHit verifies that a hit never reaches the inner repository.
func TestCachingPostRepository_FindAll_CacheHit(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	req := pagination.NewRequest(1, 5, "createdAt,desc")
	cachedJSON, _ := json.Marshal(samplePage(req))
	mock.ExpectGet("posts:all:1:5:createdAt:DESC").SetVal(string(cachedJSON))

	innerCalled := false
	inner := &mockPostRepository{
		findAllFn: func(ctx context.Context, r pagination.Request) (pagination.Page[entity.Post], error) {
			innerCalled = true
			return pagination.Page[entity.Post]{}, nil
		},
	}

	repo := NewCachingPostRepository(rdb, time.Minute, inner, "posts")
	page, err := repo.FindAll(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if innerCalled {
		t.Error("inner repository should not be called on cache hit")
	}
	if len(page.Content) != 1 || page.Content[0].Title != "hello" {
		t.Errorf("unexpected cached page: %+v", page)
	}
	if page.TotalElements != 1 || page.Number != 1 || page.Size != 5 {
		t.Errorf("paging metadata not restored: %+v", page)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_FindAllByUserID_CacheMiss verifies that a miss loads from the inner repository and stores the page.
func TestCachingPostRepository_FindAllByUserID_CacheMiss(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	req := pagination.NewRequest(0, 20, "")
	expectedJSON, _ := json.Marshal(samplePage(req))

	mock.ExpectGet("posts:user:42:0:20:-:ASC").RedisNil()
	mock.ExpectSet("posts:user:42:0:20:-:ASC", expectedJSON, time.Minute).SetVal("OK")

	var gotUserID uint
	inner := &mockPostRepository{
		findAllByUserIDFn: func(ctx context.Context, userID uint, r pagination.Request) (pagination.Page[entity.Post], error) {
			gotUserID = userID
			return samplePage(r), nil
		},
	}

	repo := NewCachingPostRepository(rdb, time.Minute, inner, "posts")
	page, err := repo.FindAllByUserID(context.Background(), 42, req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotUserID != 42 {
		t.Errorf("expected user id 42, got %d", gotUserID)
	}
	if len(page.Content) != 1 {
		t.Errorf("expected 1 post, got %d", len(page.Content))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_FindAll_InnerError verifies that inner errors propagate and are not cached.
func TestCachingPostRepository_FindAll_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("database error")
	mock.ExpectGet("posts:all:0:20:-:ASC").RedisNil()

	inner := &mockPostRepository{
		findAllFn: func(ctx context.Context, r pagination.Request) (pagination.Page[entity.Post], error) {
			return pagination.Page[entity.Post]{}, expectedErr
		},
	}

	repo := NewCachingPostRepository(rdb, time.Minute, inner, "posts")
	_, err := repo.FindAll(context.Background(), pagination.NewRequest(0, 0, ""))

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_FindAll_CorruptedCache verifies that a corrupted entry is deleted and reloaded.
func TestCachingPostRepository_FindAll_CorruptedCache(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	req := pagination.NewRequest(0, 20, "")
	expectedJSON, _ := json.Marshal(samplePage(req))

	mock.ExpectGet("posts:all:0:20:-:ASC").SetVal("invalid json")
	mock.ExpectDel("posts:all:0:20:-:ASC").SetVal(1)
	mock.ExpectSet("posts:all:0:20:-:ASC", expectedJSON, time.Minute).SetVal("OK")

	inner := &mockPostRepository{
		findAllFn: func(ctx context.Context, r pagination.Request) (pagination.Page[entity.Post], error) {
			return samplePage(r), nil
		},
	}

	repo := NewCachingPostRepository(rdb, time.Minute, inner, "posts")
	page, err := repo.FindAll(context.Background(), req)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(page.Content) != 1 {
		t.Errorf("expected 1 post, got %d", len(page.Content))
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_FindByID_NotCached verifies that FindByID never touches Redis.
func TestCachingPostRepository_FindByID_NotCached(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	inner := &mockPostRepository{
		findByIDFn: func(ctx context.Context, id uint) (*entity.Post, error) {
			return &entity.Post{ID: id}, nil
		},
	}

	repo := NewCachingPostRepository(rdb, time.Minute, inner, "posts")
	post, err := repo.FindByID(context.Background(), 9)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if post.ID != 9 {
		t.Errorf("expected post 9, got %d", post.ID)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected redis calls: %v", err)
	}
}

// TestCachingPostRepository_Save_CacheInvalidation verifies that Save drops every cached page.
func TestCachingPostRepository_Save_CacheInvalidation(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "posts:*", 200).SetVal([]string{"posts:all:0:20:-:ASC"}, 7)
	mock.ExpectDel("posts:all:0:20:-:ASC").SetVal(1)
	mock.ExpectScan(7, "posts:*", 200).SetVal([]string{"posts:user:1:0:20:-:ASC"}, 0)
	mock.ExpectDel("posts:user:1:0:20:-:ASC").SetVal(1)

	repo := NewCachingPostRepository(rdb, time.Minute, &mockPostRepository{}, "posts")
	if err := repo.Save(context.Background(), &entity.Post{Title: "t", Body: "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unfulfilled mock expectations: %v", err)
	}
}

// TestCachingPostRepository_Save_InvalidationFailure verifies that a failed invalidation does not fail Save.
func TestCachingPostRepository_Save_InvalidationFailure(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	mock.ExpectScan(0, "posts:*", 200).SetErr(errors.New("redis down"))

	repo := NewCachingPostRepository(rdb, time.Minute, &mockPostRepository{}, "posts")
	if err := repo.Save(context.Background(), &entity.Post{Title: "t", Body: "b"}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

// TestCachingPostRepository_Save_InnerError verifies that inner errors propagate without touching the cache.
func TestCachingPostRepository_Save_InnerError(t *testing.T) {
	t.Parallel()

	rdb, mock := redismock.NewClientMock()
	defer func() { _ = rdb.Close() }()

	expectedErr := errors.New("save error")
	inner := &mockPostRepository{
		saveFn: func(ctx context.Context, post *entity.Post) error { return expectedErr },
	}

	repo := NewCachingPostRepository(rdb, time.Minute, inner, "posts")
	err := repo.Save(context.Background(), &entity.Post{})

	if !errors.Is(err, expectedErr) {
		t.Errorf("expected error %v, got %v", expectedErr, err)
	}
	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("unexpected redis calls: %v", err)
	}
}

// TestSafe verifies that safe escapes characters that are problematic in Redis keys.
func TestSafe(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"createdAt", "createdAt"},
		{"created at", "created_at"},
		{"key:value", "key_value"},
		{"", ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()

			if got := safe(tt.input); got != tt.expected {
				t.Errorf("safe(%q) = %q, expected %q", tt.input, got, tt.expected)
			}
		})
	}
}
