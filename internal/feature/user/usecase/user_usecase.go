// Package usecase implements the business logic of the user feature.
package usecase

import (
	"context"
	"errors"
	"fmt"

	"toysns/internal/feature/user/domain/entity"
	"toysns/internal/shared/apperr"
)

// UserRepository abstracts persistence of user entities.
// Following Go convention, the consumer (usecase) defines the interface.
type UserRepository interface {
	// Create persists a new user and fills in its generated fields.
	// It returns DUPLICATED_USER_NAME if the name is already taken.
	Create(ctx context.Context, user *entity.User) error

	// FindByUserName returns the user with the given name, or USER_NOT_FOUND.
	FindByUserName(ctx context.Context, userName string) (*entity.User, error)
}

// PasswordEncoder hashes and verifies passwords.
type PasswordEncoder interface {
	Encode(raw string) (string, error)
	Matches(raw, hash string) bool
}

// TokenGenerator issues signed tokens whose subject is the user name.
type TokenGenerator interface {
	GenerateToken(userName string) (string, error)
}

// userUsecase implements registration, login and principal lookup.
type userUsecase struct {
	users   UserRepository
	encoder PasswordEncoder
	tokens  TokenGenerator
}

// NewUserUsecase creates a userUsecase.
func NewUserUsecase(users UserRepository, encoder PasswordEncoder, tokens TokenGenerator) *userUsecase {
	return &userUsecase{
		users:   users,
		encoder: encoder,
		tokens:  tokens,
	}
}

// Join registers a new user with the USER role and returns the stored record.
func (u *userUsecase) Join(ctx context.Context, userName, password string) (*entity.User, error) {
	_, err := u.users.FindByUserName(ctx, userName)
	switch {
	case err == nil:
		return nil, apperr.New(apperr.CodeDuplicatedUserName, "%s is duplicated", userName)
	case !errors.Is(err, apperr.ErrUserNotFound):
		return nil, err
	}

	hashed, err := u.encoder.Encode(password)
	if err != nil {
		return nil, err
	}

	user := &entity.User{
		UserName: userName,
		Password: hashed,
		Role:     entity.RoleUser,
	}
	// The store's unique index reports a concurrent join of the same name.
	if err := u.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// Login verifies the credentials and returns a signed token.
func (u *userUsecase) Login(ctx context.Context, userName, password string) (string, error) {
	user, err := u.users.FindByUserName(ctx, userName)
	if err != nil {
		return "", err
	}
	if user.IsDeleted() {
		return "", apperr.New(apperr.CodeUserNotFound, "%s not founded", userName)
	}

	if !u.encoder.Matches(password, user.Password) {
		return "", &apperr.Error{Code: apperr.CodeInvalidPassword}
	}

	token, err := u.tokens.GenerateToken(user.UserName)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return token, nil
}

// LoadPrincipal resolves a token subject to the facts the auth middleware needs.
func (u *userUsecase) LoadPrincipal(ctx context.Context, userName string) (entity.Principal, error) {
	user, err := u.users.FindByUserName(ctx, userName)
	if err != nil {
		return entity.Principal{}, err
	}
	return user.Principal(), nil
}
