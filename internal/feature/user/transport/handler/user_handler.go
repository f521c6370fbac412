// Package handler provides the HTTP handlers of the user feature.
package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"toysns/internal/feature/user/domain/entity"
	"toysns/internal/feature/user/transport/http/dto"
	"toysns/internal/platform/http/response"
	"toysns/internal/shared/apperr"
)

// UserUsecase defines the user operations the handler needs.
// Following Go convention, the consumer (handler) defines the interface.
type UserUsecase interface {
	// Join registers a new user and returns the stored record.
	Join(ctx context.Context, userName, password string) (*entity.User, error)
	// Login authenticates the user and returns a signed token.
	Login(ctx context.Context, userName, password string) (string, error)
}

// UserHandler handles HTTP requests for registration and login.
type UserHandler struct {
	users UserUsecase
}

// NewUserHandler creates a UserHandler.
func NewUserHandler(users UserUsecase) *UserHandler {
	return &UserHandler{users: users}
}

// Join handles POST /users/join.
// - invalid body: 400 INVALID_REQUEST
// - name taken: 409 DUPLICATED_USER_NAME
// - success: 200 with the created user's id, userName and role
func (h *UserHandler) Join(c *gin.Context) {
	var req dto.JoinReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("join validation failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, apperr.Wrap(apperr.CodeInvalidRequest, err))
		return
	}

	user, err := h.users.Join(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		slog.Warn("join failed", "error", err, "userName", req.UserName, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}

	slog.Info("user join successful", "userName", user.UserName, "remote_addr", c.ClientIP())
	response.Success(c, http.StatusOK, dto.JoinResFromEntity(user))
}

// Login handles POST /users/login.
// - invalid body: 400 INVALID_REQUEST
// - unknown user: 404 USER_NOT_FOUND
// - wrong password: 401 INVALID_PASSWORD
// - success: 200 with the token
func (h *UserHandler) Login(c *gin.Context) {
	var req dto.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("login validation failed", "error", err, "remote_addr", c.ClientIP())
		response.Error(c, apperr.Wrap(apperr.CodeInvalidRequest, err))
		return
	}

	token, err := h.users.Login(c.Request.Context(), req.UserName, req.Password)
	if err != nil {
		slog.Warn("login failed", "error", err, "userName", req.UserName, "remote_addr", c.ClientIP())
		response.Error(c, err)
		return
	}

	slog.Info("user login successful", "userName", req.UserName, "remote_addr", c.ClientIP())
	response.Success(c, http.StatusOK, dto.LoginRes{Token: token})
}
