// Package users holds the User Store: one Repository interface and its
// MongoDB, PostgreSQL and in-memory implementations.
package users

import (
	"context"
	"time"

	"github.com/omkar-28/authd/internal/server/models"
)

// Repository persists users. Lookups return common.ErrorNotFound when no
// record matches; Create returns common.ErrAlreadyExists on a duplicate
// email. Token lookups only match tokens whose expiry is after now.
type Repository interface {
	Create(ctx context.Context, user *models.User) (*models.User, error)
	GetByID(ctx context.Context, id string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByVerificationToken(ctx context.Context, code string, now time.Time) (*models.User, error)
	GetByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
}
