package httperr

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"
)

// conflictCodes are business errors reported as 409.
var conflictCodes = map[string]bool{
	"time_conflict":     true,
	"already_assigned":  true,
	"already_tracking":  true,
	"duplicate":         true,
	"already_completed": true,
}

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond maps a use case error onto the HTTP error envelope.
// Anything that is not a known domain error is logged and reported as 500.
func Respond(c *gin.Context, err error, fallbackCode string) {
	var (
		be BusinessError
		nf NotFoundError
		fe ForbiddenError
	)

	switch {
	case errors.As(err, &be):
		status := http.StatusBadRequest
		if conflictCodes[be.Code] {
			status = http.StatusConflict
		}
		msg := be.Message
		if msg == "" {
			msg = be.Code
		}
		Write(c, status, be.Code, msg)
	case errors.As(err, &nf):
		NotFound(c, nf.Code, nf.Code)
	case errors.As(err, &fe):
		Forbidden(c, "forbidden", "You do not have permission to perform this action.")
	default:
		slog.ErrorContext(c.Request.Context(), "request failed",
			slog.String("path", c.FullPath()),
			slog.String("error", err.Error()),
		)
		Internal(c, fallbackCode, "Internal error.")
	}
}
