package response

import (
	"net/http"
	"time"

	"movieticket/pkg/upstream"

	"github.com/gin-gonic/gin"
)

func Success(c *gin.Context, code int, message string, data interface{}) {
	c.JSON(code, ApiResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: time.Now().UnixMilli(),
	})
}

func Error(c *gin.Context, code int, message string) {
	c.JSON(code, ApiResponse{
		Success:   false,
		Message:   message,
		Timestamp: time.Now().UnixMilli(),
	})
}

// ValidationFailed renders per-field validation errors caught before any
// network call.
func ValidationFailed(c *gin.Context, message string, errors interface{}) {
	c.JSON(http.StatusBadRequest, ApiResponse{
		Success:   false,
		Message:   message,
		Errors:    errors,
		Timestamp: time.Now().UnixMilli(),
	})
}

// FromError renders an upstream failure with its original status and
// message, and anything else as a 500.
func FromError(c *gin.Context, err error) {
	if apiErr, ok := upstream.AsAPIError(err); ok {
		status := apiErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		Error(c, status, apiErr.Message)
		return
	}
	Error(c, http.StatusInternalServerError, err.Error())
}
