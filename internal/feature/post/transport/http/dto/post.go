// Package dto defines data transfer objects for the post feature's HTTP transport layer.
package dto

import (
	"time"

	"toysns/internal/feature/post/domain/entity"
)

// CreateReq is the request body of POST /posts.
type CreateReq struct {
	Title string `json:"title" binding:"required,max=255"`
	Body  string `json:"body" binding:"required"`
}

// ModifyReq is the request body of PUT /posts/{postId}.
type ModifyReq struct {
	Title string `json:"title" binding:"required,max=255"`
	Body  string `json:"body" binding:"required"`
}

// ListParams are the query parameters of the list endpoints.
// Pointers distinguish "absent" from zero.
type ListParams struct {
	Page *int
	Size *int
	Sort *string
}

// UserRes is the public view of a post's owner.
type UserRes struct {
	ID       uint   `json:"id"`
	UserName string `json:"userName"`
}

// PostRes is the public view of a post.
type PostRes struct {
	ID        uint       `json:"id"`
	Title     string     `json:"title"`
	Body      string     `json:"body"`
	User      UserRes    `json:"user"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
	DeletedAt *time.Time `json:"deletedAt"`
}

// PostResFromEntity builds a PostRes from p.
func PostResFromEntity(p entity.Post) PostRes {
	return PostRes{
		ID:    p.ID,
		Title: p.Title,
		Body:  p.Body,
		User: UserRes{
			ID:       p.User.ID,
			UserName: p.User.UserName,
		},
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
		DeletedAt: p.DeletedAt,
	}
}
