package models

import (
	"crypto/subtle"
	"time"
)

// User is the persisted account record. The password hash and both
// single-use tokens are tagged json:"-" so a User can be written to a
// response as is.
type User struct {
	ID       string `json:"_id"`
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"-"`

	IsVerified            bool       `json:"isVerified"`
	VerificationToken     string     `json:"-"`
	VerificationExpiredAt *time.Time `json:"-"`

	ResetPasswordToken     string     `json:"-"`
	ResetPasswordExpiredAt *time.Time `json:"-"`

	LastLogin *time.Time `json:"lastLogin,omitempty"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// HasVerificationToken reports whether code is the user's pending
// verification code and it has not expired at now.
func (u *User) HasVerificationToken(code string, now time.Time) bool {
	return tokenMatches(u.VerificationToken, u.VerificationExpiredAt, code, now)
}

// HasResetToken reports whether token is the user's pending reset token
// and it has not expired at now.
func (u *User) HasResetToken(token string, now time.Time) bool {
	return tokenMatches(u.ResetPasswordToken, u.ResetPasswordExpiredAt, token, now)
}

// ClearVerification drops the verification code and its expiry.
func (u *User) ClearVerification() {
	u.VerificationToken = ""
	u.VerificationExpiredAt = nil
}

// ClearPasswordReset drops the reset token and its expiry.
func (u *User) ClearPasswordReset() {
	u.ResetPasswordToken = ""
	u.ResetPasswordExpiredAt = nil
}

func tokenMatches(stored string, expires *time.Time, candidate string, now time.Time) bool {
	if stored == "" || candidate == "" || expires == nil {
		return false
	}
	if !expires.After(now) {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(stored), []byte(candidate)) == 1
}
