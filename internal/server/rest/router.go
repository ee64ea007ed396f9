package rest

import (
	"github.com/gin-gonic/gin"
	"github.com/omkar-28/authd/internal/logging"
)

// NewRouter wires the auth routes and middleware.
func NewRouter(h *AuthHandler, sessions Sessions, logger logging.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(RequestLogger(logger))
	r.HandleMethodNotAllowed = true

	authGroup := r.Group("/api/auth")
	{
		authGroup.POST("/signup", h.Signup)
		authGroup.POST("/verify-email", h.VerifyEmail)
		authGroup.POST("/login", h.Login)
		authGroup.POST("/logout", h.Logout)
		authGroup.POST("/forgot-password", h.ForgotPassword)
		authGroup.POST("/reset-password/:token", h.ResetPassword)
		authGroup.GET("/check-auth", RequireSession(sessions), h.CheckAuth)
	}

	return r
}
