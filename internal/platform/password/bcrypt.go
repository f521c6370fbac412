// Package password hashes and verifies user passwords with bcrypt.
package password

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"toysns/internal/shared/apperr"
)

// BcryptEncoder hashes passwords with a fixed bcrypt cost.
type BcryptEncoder struct {
	cost int
}

// NewBcryptEncoder returns an encoder using cost, or bcrypt.DefaultCost when
// cost is outside the range bcrypt accepts.
func NewBcryptEncoder(cost int) *BcryptEncoder {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &BcryptEncoder{cost: cost}
}

// Encode returns the bcrypt hash of raw.
// Passwords longer than 72 bytes are rejected as INVALID_REQUEST.
func (e *BcryptEncoder) Encode(raw string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(raw), e.cost)
	if err != nil {
		if errors.Is(err, bcrypt.ErrPasswordTooLong) {
			return "", apperr.Wrap(apperr.CodeInvalidRequest, err)
		}
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Matches reports whether raw hashes to hash.
func (e *BcryptEncoder) Matches(raw, hash string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(raw)) == nil
}
