// Package response writes the JSON envelope shared by every API endpoint.
package response

import (
	"github.com/gin-gonic/gin"

	"toysns/internal/shared/apperr"
)

// ResultSuccess is the result code of every successful response.
const ResultSuccess = "SUCCESS"

// Envelope is the body of every API response. Result is omitted on error.
type Envelope struct {
	ResultCode string `json:"resultCode"`
	Result     any    `json:"result,omitempty"`
}

// Success writes a SUCCESS envelope. A nil result produces no payload.
func Success(c *gin.Context, status int, result any) {
	c.JSON(status, Envelope{ResultCode: ResultSuccess, Result: result})
}

// Error aborts the request with the envelope for err's code.
// Errors outside the taxonomy become INTERNAL_SERVER_ERROR.
func Error(c *gin.Context, err error) {
	code := apperr.CodeOf(err)
	_ = c.Error(err)
	c.AbortWithStatusJSON(code.Status(), Envelope{ResultCode: string(code)})
}
