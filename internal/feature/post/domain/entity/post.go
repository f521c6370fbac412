// Package entity defines the domain entities for the post feature.
package entity

import (
	"time"

	userentity "toysns/internal/feature/user/domain/entity"
)

// Post is a piece of content owned by exactly one user.
type Post struct {
	ID    uint
	Title string
	Body  string

	// User is the owner. It is set at creation and never changes.
	User userentity.User

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt *time.Time
}

// IsOwnedBy reports whether userName owns p.
func (p *Post) IsOwnedBy(userName string) bool {
	return p.User.UserName == userName
}

// IsDeleted reports whether the post has been soft-deleted.
func (p *Post) IsDeleted() bool {
	return p.DeletedAt != nil
}
