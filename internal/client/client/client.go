package client

import (
	"context"

	"github.com/omkar-28/authd/internal/client/models"
)

// Client is the auth API as seen by the CLI.
type Client interface {
	Signup(ctx context.Context, email, password, name string) (*models.User, error)
	VerifyEmail(ctx context.Context, code string) (*models.User, error)
	Login(ctx context.Context, email, password string) (*models.User, error)
	Logout(ctx context.Context) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, token, password string) error
	CheckAuth(ctx context.Context) (*models.User, error)
}
