// Package usecase implements the business logic of the post feature.
package usecase

import (
	"context"
	"time"

	"toysns/internal/feature/post/domain/entity"
	userentity "toysns/internal/feature/user/domain/entity"
	"toysns/internal/shared/apperr"
	"toysns/internal/shared/pagination"
)

// PostRepository abstracts persistence of posts. Implementations perform no
// authorization; every ownership check happens in postUsecase.
type PostRepository interface {
	// Save inserts a post with a zero ID and updates an existing one otherwise.
	Save(ctx context.Context, post *entity.Post) error

	// FindByID returns the live post with id, or POST_NOT_FOUND.
	FindByID(ctx context.Context, id uint) (*entity.Post, error)

	// FindAll returns one page of live posts.
	FindAll(ctx context.Context, req pagination.Request) (pagination.Page[entity.Post], error)

	// FindAllByUserID returns one page of live posts owned by userID.
	FindAllByUserID(ctx context.Context, userID uint, req pagination.Request) (pagination.Page[entity.Post], error)
}

// UserRepository is the user lookup the post feature needs.
type UserRepository interface {
	FindByUserName(ctx context.Context, userName string) (*userentity.User, error)
}

// postUsecase implements post creation, modification, deletion and listing.
type postUsecase struct {
	posts PostRepository
	users UserRepository
	now   func() time.Time
}

// NewPostUsecase creates a postUsecase.
func NewPostUsecase(posts PostRepository, users UserRepository) *postUsecase {
	return &postUsecase{
		posts: posts,
		users: users,
		now:   time.Now,
	}
}

// Create stores a new post owned by userName.
func (u *postUsecase) Create(ctx context.Context, title, body, userName string) (*entity.Post, error) {
	user, err := u.users.FindByUserName(ctx, userName)
	if err != nil {
		return nil, err
	}

	post := &entity.Post{
		Title: title,
		Body:  body,
		User:  *user,
	}
	if err := u.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Modify replaces the title and body of a post owned by userName.
func (u *postUsecase) Modify(ctx context.Context, title, body, userName string, postID uint) (*entity.Post, error) {
	post, err := u.ownedPost(ctx, userName, postID)
	if err != nil {
		return nil, err
	}

	post.Title = title
	post.Body = body
	post.UpdatedAt = u.now()
	if err := u.posts.Save(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete soft-deletes a post owned by userName.
func (u *postUsecase) Delete(ctx context.Context, userName string, postID uint) error {
	post, err := u.ownedPost(ctx, userName, postID)
	if err != nil {
		return err
	}

	now := u.now()
	post.DeletedAt = &now
	post.UpdatedAt = now
	return u.posts.Save(ctx, post)
}

// List returns one page of all live posts.
func (u *postUsecase) List(ctx context.Context, req pagination.Request) (pagination.Page[entity.Post], error) {
	return u.posts.FindAll(ctx, req)
}

// ListByAuthor returns one page of the live posts owned by userName.
func (u *postUsecase) ListByAuthor(ctx context.Context, userName string, req pagination.Request) (pagination.Page[entity.Post], error) {
	user, err := u.users.FindByUserName(ctx, userName)
	if err != nil {
		return pagination.Page[entity.Post]{}, err
	}
	return u.posts.FindAllByUserID(ctx, user.ID, req)
}

// ownedPost loads the post and checks that userName owns it.
func (u *postUsecase) ownedPost(ctx context.Context, userName string, postID uint) (*entity.Post, error) {
	post, err := u.posts.FindByID(ctx, postID)
	if err != nil {
		return nil, err
	}
	if !post.IsOwnedBy(userName) {
		return nil, apperr.New(apperr.CodeInvalidPermission, "%s has no permission with %d", userName, postID)
	}
	return post, nil
}
