package dto

// LoginReq is the request body of /users/login.
type LoginReq struct {
	UserName string `json:"userName" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// LoginRes carries the issued bearer token.
type LoginRes struct {
	Token string `json:"token"`
}
