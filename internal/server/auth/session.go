package auth

import (
	"net/http"
	"time"

	"github.com/omkar-28/authd/internal/common"
)

// SessionIssuer mints session tokens and attaches them to responses as the
// session cookie. Token expiry and cookie MaxAge share one TTL.
type SessionIssuer struct {
	secret []byte
	ttl    time.Duration
	secure bool
}

// NewSessionIssuer builds an issuer. secure marks the cookie Secure, which
// production deployments behind TLS want.
func NewSessionIssuer(secret string, ttl time.Duration, secure bool) *SessionIssuer {
	return &SessionIssuer{secret: []byte(secret), ttl: ttl, secure: secure}
}

func (s *SessionIssuer) TTL() time.Duration {
	return s.ttl
}

func (s *SessionIssuer) Issue(userID string) (string, error) {
	return GenerateToken(userID, s.secret, s.ttl)
}

func (s *SessionIssuer) Verify(token string) (string, error) {
	return GetUserIDFromToken(token, s.secret)
}

// SetCookie writes the session cookie carrying token.
func (s *SessionIssuer) SetCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, s.cookie(token, int(s.ttl/time.Second)))
}

// ClearCookie expires the session cookie on the client.
func (s *SessionIssuer) ClearCookie(w http.ResponseWriter) {
	http.SetCookie(w, s.cookie("", -1))
}

func (s *SessionIssuer) cookie(value string, maxAge int) *http.Cookie {
	return &http.Cookie{
		Name:     common.SessionCookieName,
		Value:    value,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteStrictMode,
	}
}
