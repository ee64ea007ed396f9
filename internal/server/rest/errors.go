package rest

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omkar-28/authd/internal/common"
)

type errorMapping struct {
	err     error
	status  int
	message string
}

// errorMappings translates domain errors into client-safe responses. Order
// matters only for errors that wrap one another.
var errorMappings = []errorMapping{
	{common.ErrValidation, http.StatusBadRequest, "All fields are required"},
	{common.ErrPasswordTooLong, http.StatusBadRequest, "Password must be at most 72 bytes"},
	{common.ErrAlreadyExists, http.StatusBadRequest, "Email already exists"},
	{common.ErrUserNotFound, http.StatusNotFound, "User not found"},
	{common.ErrInvalidCredentials, http.StatusBadRequest, "Incorrect password"},
	{common.ErrBadLogin, http.StatusBadRequest, "Invalid email or password"},
	{common.ErrInvalidVerificationToken, http.StatusNotFound, "Invalid or missing verification token"},
	{common.ErrInvalidOrExpiredToken, http.StatusBadRequest, "Invalid or expired reset token"},
	{common.ErrInvalidToken, http.StatusUnauthorized, msgInvalidToken},
	{common.ErrTokenExpired, http.StatusUnauthorized, msgInvalidToken},
	{common.ErrorUnauthorized, http.StatusUnauthorized, msgInvalidToken},
}

const (
	msgNoToken      = "Unauthorized - no token provided"
	msgInvalidToken = "Unauthorized - invalid token"
	msgInternal     = "Internal server error"
	msgBadRequest   = "Invalid request body"
)

// statusOverrides replaces the default status for specific errors on one
// route.
type statusOverrides map[error]int

// mapError returns the status and message for err. Unknown errors become a
// generic 500 and report false so the caller logs them.
func mapError(err error, overrides statusOverrides) (int, string, bool) {
	for _, m := range errorMappings {
		if errors.Is(err, m.err) {
			status := m.status
			if s, ok := overrides[m.err]; ok {
				status = s
			}
			return status, m.message, true
		}
	}
	return http.StatusInternalServerError, msgInternal, false
}

func (h *AuthHandler) fail(c *gin.Context, err error, overrides statusOverrides) {
	status, message, known := mapError(err, overrides)
	if !known || status >= http.StatusInternalServerError {
		h.logger.Error(c.Request.Context(), "request failed",
			"path", c.FullPath(), "error", err)
	}
	c.AbortWithStatusJSON(status, envelope{Success: false, Message: message})
}
