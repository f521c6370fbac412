// Package entity defines the domain entities for the user feature.
package entity

import "time"

// Role is the role assigned to a user. It is recorded but no authorization rule reads it.
type Role string

const (
	// RoleUser is assigned to every user created through join.
	RoleUser Role = "USER"
	// RoleAdmin is reserved for operators.
	RoleAdmin Role = "ADMIN"
)

// User represents a registered user.
type User struct {
	// ID is assigned by the store at creation and never changes.
	ID uint

	// UserName is unique across all users and immutable after creation.
	UserName string

	// Password is the bcrypt hash of the user's password.
	// It is never serialized.
	Password string `json:"-"`

	Role Role

	CreatedAt time.Time
	UpdatedAt time.Time

	// DeletedAt is set when the user is soft-deleted.
	DeletedAt *time.Time
}

// IsDeleted reports whether the user has been soft-deleted.
func (u *User) IsDeleted() bool {
	return u.DeletedAt != nil
}

// Principal returns the authentication-relevant facts about u.
func (u *User) Principal() Principal {
	return Principal{
		UserName:     u.UserName,
		PasswordHash: u.Password,
		Active:       !u.IsDeleted(),
	}
}

// Principal is what the authentication middleware needs to know about a caller.
type Principal struct {
	UserName     string
	PasswordHash string
	// Active is false once the user is soft-deleted.
	Active bool
}
