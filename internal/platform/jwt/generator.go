// Package jwtmw issues and verifies the bearer tokens used by the API.
package jwtmw

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Config holds the signing secret and token lifetime.
type Config struct {
	Secret     string
	Expiration time.Duration
}

// Claims are the claims carried by an access token. The subject is the user name.
type Claims struct {
	UserName string `json:"userName"`
	jwt.RegisteredClaims
}

// generator signs HS256 tokens.
type generator struct {
	secret     []byte
	expiration time.Duration
}

// NewGenerator creates a token generator from cfg.
func NewGenerator(cfg Config) *generator {
	return &generator{
		secret:     []byte(cfg.Secret),
		expiration: cfg.Expiration,
	}
}

// GenerateToken creates a signed token for userName.
func (g *generator) GenerateToken(userName string) (string, error) {
	now := time.Now()
	claims := Claims{
		UserName: userName,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userName,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(g.expiration)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(g.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return signed, nil
}
