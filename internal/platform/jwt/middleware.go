package jwtmw

import (
	"context"
	"errors"
	"log/slog"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"toysns/internal/feature/user/domain/entity"
	"toysns/internal/platform/http/response"
	"toysns/internal/shared/apperr"
)

// ContextUserName is the gin context key holding the authenticated user name.
const ContextUserName = "userName"

// PrincipalLoader resolves a token subject to the current state of that user.
type PrincipalLoader interface {
	LoadPrincipal(ctx context.Context, userName string) (entity.Principal, error)
}

// AuthRequired returns a Gin middleware that validates the bearer token and
// restricts access to active users.
func AuthRequired(cfg Config, loader PrincipalLoader) gin.HandlerFunc {
	secret := []byte(cfg.Secret)
	keyFunc := func(t *jwt.Token) (any, error) {
		return secret, nil
	}

	return func(c *gin.Context) {
		// 1. Get Authorization header
		auth := c.GetHeader("Authorization")
		if !strings.HasPrefix(auth, "Bearer ") {
			slog.Warn("missing bearer token", "path", c.FullPath(), "remote_addr", c.ClientIP())
			response.Error(c, apperr.ErrInvalidToken)
			return
		}
		tokenStr := strings.TrimPrefix(auth, "Bearer ")

		// 2. Parse and verify signature, algorithm and expiry
		var claims Claims
		token, err := jwt.ParseWithClaims(tokenStr, &claims, keyFunc,
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithExpirationRequired(),
		)
		if err != nil || !token.Valid || claims.Subject == "" {
			slog.Warn("invalid token", "error", err, "remote_addr", c.ClientIP())
			response.Error(c, apperr.Wrap(apperr.CodeInvalidToken, err))
			return
		}

		// 3. Resolve the subject to a live user
		principal, err := loader.LoadPrincipal(c.Request.Context(), claims.Subject)
		if err != nil {
			if errors.Is(err, apperr.ErrUserNotFound) {
				slog.Warn("token subject not found", "userName", claims.Subject, "remote_addr", c.ClientIP())
				response.Error(c, apperr.Wrap(apperr.CodeInvalidToken, err))
				return
			}
			slog.Error("failed to load principal", "error", err, "userName", claims.Subject)
			response.Error(c, err)
			return
		}
		if !principal.Active {
			slog.Warn("token subject is deleted", "userName", claims.Subject, "remote_addr", c.ClientIP())
			response.Error(c, apperr.ErrInvalidToken)
			return
		}

		c.Set(ContextUserName, principal.UserName)
		c.Next()
	}
}

// UserName returns the authenticated user name set by AuthRequired.
func UserName(c *gin.Context) (string, bool) {
	name := c.GetString(ContextUserName)
	return name, name != ""
}
