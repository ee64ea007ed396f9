// Package services contains server-side business logic. This file implements
// UserService, which runs the account lifecycle: signup, email verification,
// login and password reset.
package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	"github.com/omkar-28/authd/internal/common"
	"github.com/omkar-28/authd/internal/cryptox"
	"github.com/omkar-28/authd/internal/logging"
	"github.com/omkar-28/authd/internal/server/config"
	"github.com/omkar-28/authd/internal/server/mail"
	"github.com/omkar-28/authd/internal/server/models"
	"github.com/omkar-28/authd/internal/server/repositories/users"
)

// TokenIssuer mints a signed session token for a user id.
type TokenIssuer interface {
	Issue(userID string) (string, error)
}

// AuthResult is a user together with the session token minted for them.
type AuthResult struct {
	User  *models.User
	Token string
}

// UserService provides the account operations. Notification failures are
// logged and never change an operation's outcome.
type UserService struct {
	repo     users.Repository
	notifier mail.Notifier
	sessions TokenIssuer
	logger   logging.Logger
	hasher   *cryptox.PasswordHasher
	now      func() time.Time

	verificationTTL    time.Duration
	resetTTL           time.Duration
	clientURL          string
	uniformLoginErrors bool
}

// NewUserService constructs a UserService from its collaborators and the
// server config.
func NewUserService(repo users.Repository, notifier mail.Notifier, sessions TokenIssuer, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		repo:               repo,
		notifier:           notifier,
		sessions:           sessions,
		logger:             logger,
		hasher:             cryptox.NewPasswordHasher(cfg.BcryptCost),
		now:                time.Now,
		verificationTTL:    cfg.VerificationTokenValidityDuration,
		resetTTL:           cfg.ResetTokenValidityDuration,
		clientURL:          strings.TrimRight(cfg.ClientURL, "/"),
		uniformLoginErrors: cfg.UniformLoginErrors,
	}
}

// Signup registers an unverified user, mints their session and mails the
// verification code.
func (s *UserService) Signup(ctx context.Context, email, password, name string) (*AuthResult, error) {
	if common.IsBlank(email) || common.IsBlank(password) || common.IsBlank(name) {
		return nil, common.ErrValidation
	}
	if err := cryptox.CheckLength([]byte(password)); err != nil {
		return nil, err
	}

	_, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrAlreadyExists
	}
	if !errors.Is(err, common.ErrorNotFound) {
		return nil, s.internal(ctx, "lookup by email failed", err)
	}

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return nil, s.internal(ctx, "password hashing failed", err)
	}

	code, err := cryptox.MakeVerificationCode()
	if err != nil {
		return nil, s.internal(ctx, "verification code generation failed", err)
	}

	now := s.now()
	expires := now.Add(s.verificationTTL)
	user, err := s.repo.Create(ctx, &models.User{
		Email:                 email,
		Password:              hash,
		Name:                  name,
		VerificationToken:     code,
		VerificationExpiredAt: &expires,
		CreatedAt:             now,
		UpdatedAt:             now,
	})
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, s.internal(ctx, "user creation failed", err)
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, s.internal(ctx, "session issue failed", err)
	}

	if err := s.notifier.SendVerification(ctx, user.Email, code); err != nil {
		s.logger.Warn(ctx, "verification email failed", "user_id", user.ID, "error", err)
	}

	return &AuthResult{User: user, Token: token}, nil
}

// VerifyEmail consumes a pending verification code. Wrong and expired codes
// are reported identically.
func (s *UserService) VerifyEmail(ctx context.Context, code string) (*models.User, error) {
	if common.IsBlank(code) {
		return nil, common.ErrInvalidVerificationToken
	}

	now := s.now()
	user, err := s.repo.GetByVerificationToken(ctx, code, now)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidVerificationToken
		}
		return nil, s.internal(ctx, "lookup by verification code failed", err)
	}

	user.IsVerified = true
	user.ClearVerification()
	user.UpdatedAt = now
	if err := s.update(ctx, user); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidVerificationToken
		}
		return nil, err
	}

	if err := s.notifier.SendWelcome(ctx, user.Email, user.Name); err != nil {
		s.logger.Warn(ctx, "welcome email failed", "user_id", user.ID, "error", err)
	}

	return user, nil
}

// Login checks the password and mints a session. Unknown emails yield
// ErrUserNotFound and wrong passwords ErrInvalidCredentials, unless uniform
// login errors are on, in which case both yield ErrBadLogin.
func (s *UserService) Login(ctx context.Context, email, password string) (*AuthResult, error) {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			if s.uniformLoginErrors {
				// burn a comparable amount of time so a miss looks like a mismatch
				s.hasher.CompareDummy([]byte(password))
				return nil, common.ErrBadLogin
			}
			return nil, common.ErrUserNotFound
		}
		return nil, s.internal(ctx, "lookup by email failed", err)
	}

	if !s.hasher.Compare(user.Password, []byte(password)) {
		if s.uniformLoginErrors {
			return nil, common.ErrBadLogin
		}
		return nil, common.ErrInvalidCredentials
	}

	token, err := s.sessions.Issue(user.ID)
	if err != nil {
		return nil, s.internal(ctx, "session issue failed", err)
	}

	now := s.now()
	user.LastLogin = &now
	user.UpdatedAt = now
	if err := s.update(ctx, user); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// ForgotPassword stores a fresh reset token and mails a link embedding it.
// The token is never returned to the caller.
func (s *UserService) ForgotPassword(ctx context.Context, email string) error {
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return s.internal(ctx, "lookup by email failed", err)
	}

	token, err := cryptox.MakeResetToken()
	if err != nil {
		return s.internal(ctx, "reset token generation failed", err)
	}

	now := s.now()
	expires := now.Add(s.resetTTL)
	user.ResetPasswordToken = token
	user.ResetPasswordExpiredAt = &expires
	user.UpdatedAt = now
	if err := s.update(ctx, user); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrUserNotFound
		}
		return err
	}

	if err := s.notifier.SendPasswordReset(ctx, user.Email, s.resetURL(token)); err != nil {
		s.logger.Warn(ctx, "password reset email failed", "user_id", user.ID, "error", err)
	}

	return nil
}

// ResetPassword consumes a pending reset token and replaces the password.
func (s *UserService) ResetPassword(ctx context.Context, token, password string) error {
	if common.IsBlank(token) {
		return common.ErrInvalidOrExpiredToken
	}
	if common.IsBlank(password) {
		return common.ErrValidation
	}
	if err := cryptox.CheckLength([]byte(password)); err != nil {
		return err
	}

	now := s.now()
	user, err := s.repo.GetByResetToken(ctx, token, now)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidOrExpiredToken
		}
		return s.internal(ctx, "lookup by reset token failed", err)
	}

	hash, err := s.hasher.Hash([]byte(password))
	if err != nil {
		return s.internal(ctx, "password hashing failed", err)
	}

	user.Password = hash
	user.ClearPasswordReset()
	user.UpdatedAt = now
	if err := s.update(ctx, user); err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return common.ErrInvalidOrExpiredToken
		}
		return err
	}

	if err := s.notifier.SendResetSuccess(ctx, user.Email); err != nil {
		s.logger.Warn(ctx, "reset success email failed", "user_id", user.ID, "error", err)
	}

	return nil
}

// CheckAuth returns the owner of an already verified session.
func (s *UserService) CheckAuth(ctx context.Context, userID string) (*models.User, error) {
	user, err := s.repo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrUserNotFound
		}
		return nil, s.internal(ctx, "lookup by id failed", err)
	}
	return user, nil
}

// update persists user, passing ErrorNotFound through and hiding anything else
// behind ErrorInternal.
func (s *UserService) update(ctx context.Context, user *models.User) error {
	err := s.repo.Update(ctx, user)
	if err == nil || errors.Is(err, common.ErrorNotFound) {
		return err
	}
	return s.internal(ctx, "user update failed", err)
}

func (s *UserService) internal(ctx context.Context, msg string, err error) error {
	s.logger.Error(ctx, msg, "error", err)
	return common.ErrorInternal
}

func (s *UserService) resetURL(token string) string {
	return s.clientURL + "/reset-password/" + url.PathEscape(token)
}
