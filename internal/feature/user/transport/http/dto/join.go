// Package dto defines data transfer objects for the user feature's HTTP transport layer.
package dto

import "toysns/internal/feature/user/domain/entity"

// JoinReq is the request body of /users/join.
type JoinReq struct {
	UserName string `json:"userName" binding:"required,max=255"`
	Password string `json:"password" binding:"required,max=72"`
}

// JoinRes is the created user. The password hash is never included.
type JoinRes struct {
	ID       uint   `json:"id"`
	UserName string `json:"userName"`
	Role     string `json:"role"`
}

// JoinResFromEntity builds a JoinRes from u.
func JoinResFromEntity(u *entity.User) JoinRes {
	return JoinRes{
		ID:       u.ID,
		UserName: u.UserName,
		Role:     string(u.Role),
	}
}
