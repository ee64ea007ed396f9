// Package rest exposes the account operations as a JSON API on gin.
package rest

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/omkar-28/authd/internal/common"
	"github.com/omkar-28/authd/internal/logging"
	"github.com/omkar-28/authd/internal/server/models"
	"github.com/omkar-28/authd/internal/server/services"
)

// AuthService is the account logic the handlers drive.
type AuthService interface {
	Signup(ctx context.Context, email, password, name string) (*services.AuthResult, error)
	VerifyEmail(ctx context.Context, code string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*services.AuthResult, error)
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	CheckAuth(ctx context.Context, userID string) (*models.User, error)
}

// Sessions verifies session tokens and moves them in and out of cookies.
type Sessions interface {
	Verify(token string) (string, error)
	SetCookie(w http.ResponseWriter, token string)
	ClearCookie(w http.ResponseWriter)
}

// envelope is the shape of every response body.
type envelope struct {
	Success bool         `json:"success"`
	Message string       `json:"message,omitempty"`
	User    *models.User `json:"user,omitempty"`
}

type signupRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type verifyEmailRequest struct {
	Code lenientString `json:"code"`
}

// lenientString decodes a JSON string or number into its text. Verification
// codes are digits and some clients send them as numbers.
type lenientString string

func (s *lenientString) UnmarshalJSON(b []byte) error {
	if string(b) == "null" {
		*s = ""
		return nil
	}
	var str string
	if err := json.Unmarshal(b, &str); err == nil {
		*s = lenientString(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return err
	}
	*s = lenientString(n.String())
	return nil
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type resetPasswordRequest struct {
	Password string `json:"password"`
}

type AuthHandler struct {
	service  AuthService
	sessions Sessions
	logger   logging.Logger
}

func NewAuthHandler(service AuthService, sessions Sessions, logger logging.Logger) *AuthHandler {
	return &AuthHandler{service: service, sessions: sessions, logger: logger.With("module", "rest")}
}

func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !h.bind(c, &req) {
		return
	}

	res, err := h.service.Signup(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		h.fail(c, err, nil)
		return
	}

	h.sessions.SetCookie(c.Writer, res.Token)
	c.JSON(http.StatusCreated, envelope{Success: true, Message: "User registered successfully", User: res.User})
}

func (h *AuthHandler) VerifyEmail(c *gin.Context) {
	var req verifyEmailRequest
	if !h.bind(c, &req) {
		return
	}

	user, err := h.service.VerifyEmail(c.Request.Context(), string(req.Code))
	if err != nil {
		h.fail(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, envelope{Success: true, Message: "Email verification successful", User: user})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if !h.bind(c, &req) {
		return
	}

	res, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.fail(c, err, nil)
		return
	}

	h.sessions.SetCookie(c.Writer, res.Token)
	c.JSON(http.StatusOK, envelope{Success: true, Message: "Login successful", User: res.User})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	h.sessions.ClearCookie(c.Writer)
	c.JSON(http.StatusOK, envelope{Success: true, Message: "Logged out successfully"})
}

func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req forgotPasswordRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.service.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		h.fail(c, err, statusOverrides{common.ErrUserNotFound: http.StatusBadRequest})
		return
	}

	c.JSON(http.StatusOK, envelope{Success: true, Message: "Password reset email sent successfully"})
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !h.bind(c, &req) {
		return
	}

	if err := h.service.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		h.fail(c, err, nil)
		return
	}

	c.JSON(http.StatusOK, envelope{Success: true, Message: "Password reset successful"})
}

func (h *AuthHandler) CheckAuth(c *gin.Context) {
	userID, ok := UserIDFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusUnauthorized, envelope{Message: msgNoToken})
		return
	}

	user, err := h.service.CheckAuth(c.Request.Context(), userID)
	if err != nil {
		h.fail(c, err, statusOverrides{common.ErrUserNotFound: http.StatusBadRequest})
		return
	}

	c.JSON(http.StatusOK, envelope{Success: true, User: user})
}

// bind decodes the JSON body into req. An empty body leaves req zeroed so the
// service reports the missing fields itself.
func (h *AuthHandler) bind(c *gin.Context, req any) bool {
	if err := c.ShouldBindJSON(req); err != nil && !errors.Is(err, io.EOF) {
		c.AbortWithStatusJSON(http.StatusBadRequest, envelope{Message: msgBadRequest})
		return false
	}
	return true
}
