// Package cryptox holds the secret-handling primitives of the account
// lifecycle: password hashing and single-use token generation.
package cryptox

import (
	"sync"

	"github.com/omkar-28/authd/internal/common"
	"golang.org/x/crypto/bcrypt"
)

const (
	VerificationCodeDigits = 6
	ResetTokenBytes        = 20

	// MaxPasswordBytes is the longest input bcrypt hashes.
	MaxPasswordBytes = 72
)

// PasswordHasher hashes and checks passwords with bcrypt at a fixed cost.
type PasswordHasher struct {
	cost int

	dummyOnce sync.Once
	dummy     []byte
}

// NewPasswordHasher returns a hasher for cost. Costs outside the range bcrypt
// accepts fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

func (h *PasswordHasher) Cost() int {
	return h.cost
}

// CheckLength returns common.ErrPasswordTooLong when password cannot be
// hashed.
func CheckLength(password []byte) error {
	if len(password) > MaxPasswordBytes {
		return common.ErrPasswordTooLong
	}
	return nil
}

// Hash returns the encoded bcrypt hash of password.
func (h *PasswordHasher) Hash(password []byte) (string, error) {
	if err := CheckLength(password); err != nil {
		return "", err
	}
	b, err := bcrypt.GenerateFromPassword(password, h.cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// Compare reports whether password matches hash.
func (h *PasswordHasher) Compare(hash string, password []byte) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), password) == nil
}

// CompareDummy spends about as long as Compare against a real hash and
// always fails. It is used when there is no stored hash to check against.
func (h *PasswordHasher) CompareDummy(password []byte) {
	h.dummyOnce.Do(func() {
		h.dummy, _ = bcrypt.GenerateFromPassword([]byte("authd-dummy-password"), h.cost)
	})
	_ = bcrypt.CompareHashAndPassword(h.dummy, password)
}

// MakeVerificationCode returns a 6-digit numeric email verification code.
func MakeVerificationCode() (string, error) {
	return common.MakeNumericCode(VerificationCodeDigits)
}

// MakeResetToken returns 20 random bytes, hex-encoded.
func MakeResetToken() (string, error) {
	return common.MakeRandHexString(ResetTokenBytes)
}
