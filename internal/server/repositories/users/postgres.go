package users

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/omkar-28/authd/internal/common"
	"github.com/omkar-28/authd/internal/dbx"
	"github.com/omkar-28/authd/internal/server/models"
)

type PostgresRepository struct {
	db dbx.DBTX
}

func NewPostgresRepository(db dbx.DBTX) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const userColumns = `id, email, password, name, is_verified,
		 verification_token, verification_expired_at,
		 reset_password_token, reset_password_expired_at,
		 last_login, created_at, updated_at`

func (r *PostgresRepository) Create(ctx context.Context, user *models.User) (*models.User, error) {

	if user.ID == "" {
		user.ID = uuid.NewString()
	}

	query :=
		`INSERT INTO users (` + userColumns + `)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		 `

	_, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Password, user.Name, user.IsVerified,
		dbx.NullString(user.VerificationToken), user.VerificationExpiredAt,
		dbx.NullString(user.ResetPasswordToken), user.ResetPasswordExpiredAt,
		user.LastLogin, user.CreatedAt, user.UpdatedAt)

	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	return user, nil
}

func (r *PostgresRepository) GetByID(ctx context.Context, id string) (*models.User, error) {
	// ids are uuids; anything else cannot match and would make postgres reject the cast
	if _, err := uuid.Parse(id); err != nil {
		return nil, common.ErrorNotFound
	}

	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE id = $1
		 `
	return r.queryOne(ctx, query, id)
}

func (r *PostgresRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE email = $1
		 `
	return r.queryOne(ctx, query, email)
}

func (r *PostgresRepository) GetByVerificationToken(ctx context.Context, code string, now time.Time) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE verification_token = $1 AND verification_expired_at > $2
		 `
	return r.queryOne(ctx, query, code, now)
}

func (r *PostgresRepository) GetByResetToken(ctx context.Context, token string, now time.Time) (*models.User, error) {
	query :=
		`SELECT ` + userColumns + ` FROM users
		 WHERE reset_password_token = $1 AND reset_password_expired_at > $2
		 `
	return r.queryOne(ctx, query, token, now)
}

func (r *PostgresRepository) Update(ctx context.Context, user *models.User) error {
	query :=
		`UPDATE users SET email = $2, password = $3, name = $4, is_verified = $5,
		 verification_token = $6, verification_expired_at = $7,
		 reset_password_token = $8, reset_password_expired_at = $9,
		 last_login = $10, updated_at = $11
		 WHERE id = $1
		 `

	res, err := r.db.ExecContext(ctx, query,
		user.ID, user.Email, user.Password, user.Name, user.IsVerified,
		dbx.NullString(user.VerificationToken), user.VerificationExpiredAt,
		dbx.NullString(user.ResetPasswordToken), user.ResetPasswordExpiredAt,
		user.LastLogin, user.UpdatedAt)
	if err != nil {
		if dbx.IsUniqueViolation(err) {
			return common.ErrAlreadyExists
		}
		return fmt.Errorf("db error: %w", err)
	}

	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("db error: %w", err)
	}
	if n == 0 {
		return common.ErrorNotFound
	}

	return nil
}

func (r *PostgresRepository) queryOne(ctx context.Context, query string, args ...any) (*models.User, error) {
	var (
		user                          models.User
		verificationToken, resetToken sql.NullString
		verificationExp, resetExp     sql.NullTime
		lastLogin                     sql.NullTime
	)

	err := r.db.QueryRowContext(ctx, query, args...).Scan(
		&user.ID, &user.Email, &user.Password, &user.Name, &user.IsVerified,
		&verificationToken, &verificationExp,
		&resetToken, &resetExp,
		&lastLogin, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, common.ErrorNotFound
		}
		return nil, fmt.Errorf("db error: %w", err)
	}

	user.VerificationToken = verificationToken.String
	user.VerificationExpiredAt = timePtr(verificationExp)
	user.ResetPasswordToken = resetToken.String
	user.ResetPasswordExpiredAt = timePtr(resetExp)
	user.LastLogin = timePtr(lastLogin)

	return &user, nil
}

func timePtr(t sql.NullTime) *time.Time {
	if !t.Valid {
		return nil
	}
	v := t.Time
	return &v
}
