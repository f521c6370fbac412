// Package handler provides the HTTP handlers of the post feature.
package handler

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/oapi-codegen/runtime"

	"toysns/internal/feature/post/domain/entity"
	"toysns/internal/feature/post/transport/http/dto"
	"toysns/internal/platform/http/response"
	jwtmw "toysns/internal/platform/jwt"
	"toysns/internal/shared/apperr"
	"toysns/internal/shared/pagination"
)

// sortFields are the fields a client may sort posts by.
var sortFields = map[string]bool{
	"id":        true,
	"title":     true,
	"createdAt": true,
	"updatedAt": true,
}

// PostUsecase defines the post operations the handler needs.
type PostUsecase interface {
	Create(ctx context.Context, title, body, userName string) (*entity.Post, error)
	Modify(ctx context.Context, title, body, userName string, postID uint) (*entity.Post, error)
	Delete(ctx context.Context, userName string, postID uint) error
	List(ctx context.Context, req pagination.Request) (pagination.Page[entity.Post], error)
	ListByAuthor(ctx context.Context, userName string, req pagination.Request) (pagination.Page[entity.Post], error)
}

// PostHandler handles HTTP requests for posts. Every route requires jwtmw.AuthRequired.
type PostHandler struct {
	posts PostUsecase
}

// NewPostHandler creates a PostHandler.
func NewPostHandler(posts PostUsecase) *PostHandler {
	return &PostHandler{posts: posts}
}

// Create handles POST /posts. Success is 201 with no payload.
func (h *PostHandler) Create(c *gin.Context) {
	userName, ok := h.caller(c)
	if !ok {
		return
	}

	var req dto.CreateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("create post validation failed", "error", err, "userName", userName)
		response.Error(c, apperr.Wrap(apperr.CodeInvalidRequest, err))
		return
	}

	post, err := h.posts.Create(c.Request.Context(), req.Title, req.Body, userName)
	if err != nil {
		slog.Warn("create post failed", "error", err, "userName", userName)
		response.Error(c, err)
		return
	}

	slog.Info("post created", "postId", post.ID, "userName", userName)
	response.Success(c, http.StatusCreated, nil)
}

// Modify handles PUT /posts/{postId} and returns the updated post.
func (h *PostHandler) Modify(c *gin.Context) {
	userName, ok := h.caller(c)
	if !ok {
		return
	}
	postID, ok := bindPostID(c)
	if !ok {
		return
	}

	var req dto.ModifyReq
	if err := c.ShouldBindJSON(&req); err != nil {
		slog.Warn("modify post validation failed", "error", err, "userName", userName)
		response.Error(c, apperr.Wrap(apperr.CodeInvalidRequest, err))
		return
	}

	post, err := h.posts.Modify(c.Request.Context(), req.Title, req.Body, userName, postID)
	if err != nil {
		slog.Warn("modify post failed", "error", err, "postId", postID, "userName", userName)
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, dto.PostResFromEntity(*post))
}

// Delete handles DELETE /posts/{postId}. Success has no payload.
func (h *PostHandler) Delete(c *gin.Context) {
	userName, ok := h.caller(c)
	if !ok {
		return
	}
	postID, ok := bindPostID(c)
	if !ok {
		return
	}

	if err := h.posts.Delete(c.Request.Context(), userName, postID); err != nil {
		slog.Warn("delete post failed", "error", err, "postId", postID, "userName", userName)
		response.Error(c, err)
		return
	}

	slog.Info("post deleted", "postId", postID, "userName", userName)
	response.Success(c, http.StatusOK, nil)
}

// List handles GET /posts?page=&size=&sort=.
func (h *PostHandler) List(c *gin.Context) {
	req, ok := bindPageRequest(c)
	if !ok {
		return
	}

	page, err := h.posts.List(c.Request.Context(), req)
	if err != nil {
		slog.Error("list posts failed", "error", err)
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, pagination.Map(page, dto.PostResFromEntity))
}

// ListMine handles GET /posts/my and lists the caller's posts.
func (h *PostHandler) ListMine(c *gin.Context) {
	userName, ok := h.caller(c)
	if !ok {
		return
	}
	req, ok := bindPageRequest(c)
	if !ok {
		return
	}

	page, err := h.posts.ListByAuthor(c.Request.Context(), userName, req)
	if err != nil {
		slog.Warn("list my posts failed", "error", err, "userName", userName)
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, pagination.Map(page, dto.PostResFromEntity))
}

// caller returns the authenticated user name, aborting with INVALID_TOKEN when absent.
func (h *PostHandler) caller(c *gin.Context) (string, bool) {
	userName, ok := jwtmw.UserName(c)
	if !ok {
		response.Error(c, apperr.ErrInvalidToken)
		return "", false
	}
	return userName, true
}

// bindPostID parses the postId path parameter.
func bindPostID(c *gin.Context) (uint, bool) {
	var postID int64
	err := runtime.BindStyledParameterWithOptions("simple", "postId", c.Param("postId"), &postID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil || postID <= 0 {
		slog.Warn("invalid postId", "error", err, "postId", c.Param("postId"))
		response.Error(c, apperr.New(apperr.CodeInvalidRequest, "invalid postId %q", c.Param("postId")))
		return 0, false
	}
	return uint(postID), true
}

// bindPageRequest parses page, size and sort from the query string.
func bindPageRequest(c *gin.Context) (pagination.Request, bool) {
	var params dto.ListParams
	query := c.Request.URL.Query()

	bind := func(name string, dest any) error {
		if err := runtime.BindQueryParameter("form", true, false, name, query, dest); err != nil {
			return fmt.Errorf("invalid %s: %w", name, err)
		}
		return nil
	}
	for name, dest := range map[string]any{"page": &params.Page, "size": &params.Size, "sort": &params.Sort} {
		if err := bind(name, dest); err != nil {
			slog.Warn("invalid page request", "error", err)
			response.Error(c, apperr.Wrap(apperr.CodeInvalidRequest, err))
			return pagination.Request{}, false
		}
	}

	var page, size int
	var sort string
	if params.Page != nil {
		page = *params.Page
	}
	if params.Size != nil {
		size = *params.Size
	}
	if params.Sort != nil {
		sort = *params.Sort
	}

	req := pagination.NewRequest(page, size, sort)
	if req.Sort != "" && !sortFields[req.Sort] {
		response.Error(c, apperr.New(apperr.CodeInvalidRequest, "unsupported sort field %q", req.Sort))
		return pagination.Request{}, false
	}
	if dir := sortDirection(sort); dir != "" && dir != "asc" && dir != "desc" {
		response.Error(c, apperr.New(apperr.CodeInvalidRequest, "unsupported sort direction %q", dir))
		return pagination.Request{}, false
	}
	return req, true
}

// sortDirection returns the lower-cased direction part of "field,dir".
func sortDirection(sort string) string {
	_, dir, _ := strings.Cut(sort, ",")
	return strings.ToLower(strings.TrimSpace(dir))
}
