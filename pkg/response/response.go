package response

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Stable machine-readable error codes surfaced to API clients.
const (
	CodeValidationFailed = "VALIDATION_FAILED"
	CodeIDMismatch       = "ID_MISMATCH"
	CodeUserNotFound     = "USER_NOT_FOUND"
	CodeDuplication      = "DUPLICATION"
	CodeRateLimited      = "RATE_LIMITED"
	CodeInternal         = "INTERNAL"
)

// ErrorBody is the structured error representation. Details carries
// per-field validation messages or the colliding field for duplicates.
type ErrorBody struct {
	Status    int         `json:"status"`
	Timestamp time.Time   `json:"timestamp"`
	RequestID string      `json:"request_id,omitempty"`
	Code      string      `json:"code"`
	Message   string      `json:"message"`
	Details   interface{} `json:"details,omitempty"`
}

// Error writes a structured error response and aborts the handler chain.
func Error(c *gin.Context, status int, code, message string, details interface{}) {
	if status == 0 {
		status = http.StatusBadRequest
	}
	c.AbortWithStatusJSON(status, ErrorBody{
		Status:    status,
		Timestamp: time.Now().UTC(),
		RequestID: c.GetString("request_id"),
		Code:      code,
		Message:   message,
		Details:   details,
	})
}
