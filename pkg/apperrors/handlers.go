package apperrors

import (
	"log/slog"

	"github.com/gin-gonic/gin"
)

// ErrorResponse is the JSON envelope every error answer uses.
type ErrorResponse struct {
	Error *AppError `json:"error"`
}

// debug controls whether 500 responses expose the underlying error message.
// Set once at startup from the server environment.
var debug bool

// SetDebug enables detailed 500 responses. Call during bootstrap only.
func SetDebug(enabled bool) {
	debug = enabled
}

// HandleError maps any error to an HTTP response. Non-AppError values become
// a generic 500 with details suppressed outside development mode.
func HandleError(c *gin.Context, err error) {
	appErr, ok := AsAppError(err)
	if !ok {
		appErr = InternalError(err)
	}

	if appErr.HTTPCode >= 500 {
		slog.Error("server error", "error", appErr.Error(), "path", c.Request.URL.Path)
		if debug && appErr.Err != nil && appErr.Details == nil {
			appErr = New(appErr.Code, appErr.Domain, appErr.Message, appErr.HTTPCode).
				WithDetails(appErr.Err.Error())
		} else if !debug {
			appErr = New(appErr.Code, appErr.Domain, "Internal server error", appErr.HTTPCode)
		}
	}

	c.JSON(appErr.HTTPCode, ErrorResponse{Error: appErr})
}

// AsAppError extracts an *AppError from an error chain.
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
