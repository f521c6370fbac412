// Package apperr defines the application error taxonomy shared by every feature.
// Each error carries a Code that the HTTP layer maps to a status and a result code.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Code identifies the kind of an application error. Its string value is the
// resultCode returned to API clients.
type Code string

const (
	CodeDuplicatedUserName  Code = "DUPLICATED_USER_NAME"
	CodeUserNotFound        Code = "USER_NOT_FOUND"
	CodePostNotFound        Code = "POST_NOT_FOUND"
	CodeInvalidToken        Code = "INVALID_TOKEN"
	CodeInvalidPassword     Code = "INVALID_PASSWORD"
	CodeInvalidPermission   Code = "INVALID_PERMISSION"
	CodeInvalidRequest      Code = "INVALID_REQUEST"
	CodeTooManyRequests     Code = "TOO_MANY_REQUESTS"
	CodeInternalServerError Code = "INTERNAL_SERVER_ERROR"
)

type codeInfo struct {
	status  int
	message string
}

var codes = map[Code]codeInfo{
	CodeDuplicatedUserName:  {http.StatusConflict, "User name is duplicated"},
	CodeUserNotFound:        {http.StatusNotFound, "User not founded"},
	CodePostNotFound:        {http.StatusNotFound, "Post not founded"},
	CodeInvalidToken:        {http.StatusUnauthorized, "Token is invalid"},
	CodeInvalidPassword:     {http.StatusUnauthorized, "Password is invalid"},
	CodeInvalidPermission:   {http.StatusUnauthorized, "Permission is invalid"},
	CodeInvalidRequest:      {http.StatusBadRequest, "Request is invalid"},
	CodeTooManyRequests:     {http.StatusTooManyRequests, "Too many requests"},
	CodeInternalServerError: {http.StatusInternalServerError, "Internal server error"},
}

// Status returns the HTTP status code associated with c.
// Unknown codes map to 500.
func (c Code) Status() int {
	if info, ok := codes[c]; ok {
		return info.status
	}
	return http.StatusInternalServerError
}

// Message returns the human-readable message for c.
func (c Code) Message() string {
	if info, ok := codes[c]; ok {
		return info.message
	}
	return codes[CodeInternalServerError].message
}

// Sentinel errors for use with errors.Is. Errors created with New or Wrap
// match the sentinel of the same code regardless of detail.
var (
	ErrDuplicatedUserName  = &Error{Code: CodeDuplicatedUserName}
	ErrUserNotFound        = &Error{Code: CodeUserNotFound}
	ErrPostNotFound        = &Error{Code: CodePostNotFound}
	ErrInvalidToken        = &Error{Code: CodeInvalidToken}
	ErrInvalidPassword     = &Error{Code: CodeInvalidPassword}
	ErrInvalidPermission   = &Error{Code: CodeInvalidPermission}
	ErrInvalidRequest      = &Error{Code: CodeInvalidRequest}
	ErrTooManyRequests     = &Error{Code: CodeTooManyRequests}
	ErrInternalServerError = &Error{Code: CodeInternalServerError}
)

// Error is a typed application error with an optional detail string and cause.
type Error struct {
	Code   Code
	Detail string
	Err    error
}

// New returns an Error of the given code with a formatted detail.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Detail: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error of the given code that keeps err as its cause.
func Wrap(code Code, err error) *Error {
	return &Error{Code: code, Err: err}
}

// Error formats the message as "<code message>. <detail>" when a detail is set.
func (e *Error) Error() string {
	if e.Detail == "" {
		return e.Code.Message()
	}
	return fmt.Sprintf("%s. %s", e.Code.Message(), e.Detail)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

// CodeOf extracts the Code carried by err. Errors outside the taxonomy are
// reported as CodeInternalServerError.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternalServerError
}
