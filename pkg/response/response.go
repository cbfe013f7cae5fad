package response

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/linskybing/formbuilder-go/pkg/apperr"
)

const TimeLayout = "2006-01-02 15:04:05"

var now = time.Now

type SuccessResponse struct {
	Success   bool   `json:"success" example:"true"`
	Message   string `json:"message"`
	Data      any    `json:"data"`
	Timestamp string `json:"timestamp" example:"2025-01-01 10:00:00"`
}

type ErrorResponse struct {
	Success   bool   `json:"success" example:"false"`
	Message   string `json:"message"`
	Details   any    `json:"details"`
	Timestamp string `json:"timestamp" example:"2025-01-01 10:00:00"`
}

type TokenResponse struct {
	Token string `json:"token"`
	User  any    `json:"user"`
}

func timestamp() string {
	return now().Format(TimeLayout)
}

// Success writes a 200 envelope and stops the handler chain.
func Success(c *gin.Context, data any, message string) {
	if message == "" {
		message = "موفق"
	}
	c.AbortWithStatusJSON(http.StatusOK, SuccessResponse{
		Success:   true,
		Message:   message,
		Data:      data,
		Timestamp: timestamp(),
	})
}

// Error writes a failure envelope with the given status and stops the chain.
func Error(c *gin.Context, status int, message string, details any) {
	c.AbortWithStatusJSON(status, ErrorResponse{
		Success:   false,
		Message:   message,
		Details:   details,
		Timestamp: timestamp(),
	})
}

func NotFound(c *gin.Context, message string) {
	if message == "" {
		message = "یافت نشد"
	}
	Error(c, http.StatusNotFound, message, nil)
}

func ServerError(c *gin.Context, message string) {
	if message == "" {
		message = "خطای سرور"
	}
	Error(c, http.StatusInternalServerError, message, nil)
}

func MethodNotAllowed(c *gin.Context, allowed string) {
	Error(c, http.StatusMethodNotAllowed, fmt.Sprintf("متد درخواست باید %s باشد", allowed), nil)
}

// FromError maps a service error onto an envelope. Internal errors only
// expose fallback, never the underlying cause.
func FromError(c *gin.Context, err error, fallback string) {
	var appErr *apperr.Error
	if !errors.As(err, &appErr) || appErr.Kind == apperr.KindInternal {
		ServerError(c, fallback)
		return
	}

	var details any
	if len(appErr.Details) > 0 {
		details = appErr.Details
	}
	Error(c, apperr.HTTPStatus(appErr.Kind), appErr.Message, details)
}
