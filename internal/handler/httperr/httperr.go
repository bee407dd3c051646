package httperr

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeAuthorization  = "AUTHORIZATION_ERROR"
	CodeNotFound       = "NOT_FOUND"
	CodeConflict       = "CONFLICT"
	CodeDatabase       = "DATABASE_ERROR"
	CodeInternal       = "INTERNAL_SERVER_ERROR"
	CodeRateLimited    = "RATE_LIMITED"
)

type ErrorBody struct {
	Code      string `json:"code"`
	Message   string `json:"message"`
	Details   any    `json:"details,omitempty"`
	Timestamp string `json:"timestamp"`
	Path      string `json:"path"`
}

type Response struct {
	Status int       `json:"-"`
	Error  ErrorBody `json:"error"`
}

// preserves original error for the error middleware and monitoring
func AbortWithError(c *gin.Context, status int, err error, code, msg string, details any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{
		Status: status,
		Error: ErrorBody{
			Code:      code,
			Message:   msg,
			Details:   details,
			Timestamp: time.Now().UTC().Format(time.RFC3339),
			Path:      c.Request.URL.Path,
		},
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

func BadRequest(c *gin.Context, err error, msg string, details any) {
	AbortWithError(c, http.StatusBadRequest, err, CodeValidation, msg, details)
}

func Unauthorized(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusUnauthorized, err, CodeAuthentication, msg, nil)
}

func Forbidden(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusForbidden, err, CodeAuthorization, msg, nil)
}

func NotFound(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusNotFound, err, CodeNotFound, msg, nil)
}

func Conflict(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusConflict, err, CodeConflict, msg, nil)
}

func Internal(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusInternalServerError, err, CodeInternal, msg, nil)
}

func Database(c *gin.Context, err error, msg string) {
	AbortWithError(c, http.StatusInternalServerError, err, CodeDatabase, msg, nil)
}
