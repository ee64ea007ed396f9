package rest

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/omkar-28/authd/internal/common"
	"github.com/stretchr/testify/assert"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name      string
		err       error
		overrides statusOverrides
		status    int
		message   string
		known     bool
	}{
		{"validation", common.ErrValidation, nil, http.StatusBadRequest, "All fields are required", true},
		{"password too long", common.ErrPasswordTooLong, nil, http.StatusBadRequest, "Password must be at most 72 bytes", true},
		{"wrapped conflict", fmt.Errorf("create: %w", common.ErrAlreadyExists), nil, http.StatusBadRequest, "Email already exists", true},
		{"user not found", common.ErrUserNotFound, nil, http.StatusNotFound, "User not found", true},
		{"user not found override", common.ErrUserNotFound, statusOverrides{common.ErrUserNotFound: http.StatusBadRequest}, http.StatusBadRequest, "User not found", true},
		{"expired session", common.ErrTokenExpired, nil, http.StatusUnauthorized, "Unauthorized - invalid token", true},
		{"internal", common.ErrorInternal, nil, http.StatusInternalServerError, "Internal server error", false},
		{"raw driver error", errors.New("pq: connection refused"), nil, http.StatusInternalServerError, "Internal server error", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, message, known := mapError(tt.err, tt.overrides)
			assert.Equal(t, tt.status, status)
			assert.Equal(t, tt.message, message)
			assert.Equal(t, tt.known, known)
		})
	}
}
