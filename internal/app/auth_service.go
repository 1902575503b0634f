// Package app holds the application services: the persistence gateway, the
// tracker that owns the user's data, derived views and the access guard.
package app

import (
	"context"
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"time"

	"scaleshift/internal/domain"

	"golang.org/x/crypto/bcrypt"
)

const (
	sessionTTL      = 24 * time.Hour
	passcodeSubject = "passcode"
)

var (
	// ErrInvalidCredentials indicates that the provided passcode was incorrect.
	ErrInvalidCredentials = errors.New("invalid passcode")
	// ErrSessionNotFound indicates that the requested session does not exist.
	ErrSessionNotFound = errors.New("session not found")
	// ErrSessionExpired indicates that the session has expired.
	ErrSessionExpired = errors.New("session expired")
	// ErrSubjectNotAllowed indicates an SSO identity other than the owner's.
	ErrSubjectNotAllowed = errors.New("subject not allowed")
)

// AuthService guards the API of a single-user installation with a passcode
// and, optionally, an SSO identity.
type AuthService struct {
	sessions       domain.SessionRepository
	passcodeHash   []byte
	allowedSubject string
	now            func() time.Time
}

// NewAuthService creates an AuthService. An empty passcodeHash disables
// passcode login; an empty allowedSubject disables SSO login.
func NewAuthService(sessions domain.SessionRepository, passcodeHash, allowedSubject string) *AuthService {
	return &AuthService{
		sessions:       sessions,
		passcodeHash:   []byte(passcodeHash),
		allowedSubject: allowedSubject,
		now:            time.Now,
	}
}

// Enabled reports whether any login method is configured.
func (s *AuthService) Enabled() bool {
	return len(s.passcodeHash) > 0 || s.allowedSubject != ""
}

// Login checks the passcode and creates a session.
func (s *AuthService) Login(ctx context.Context, passcode, userAgent string) (string, error) {
	if len(s.passcodeHash) == 0 {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passcodeHash, []byte(passcode)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.createSession(ctx, passcodeSubject, userAgent)
}

// LoginWithSubject creates a session for an identity already verified by the
// SSO provider. Only the configured owner is admitted.
func (s *AuthService) LoginWithSubject(ctx context.Context, subject, userAgent string) (string, error) {
	if s.allowedSubject == "" || !ConstantTimeCompare(subject, s.allowedSubject) {
		return "", ErrSubjectNotAllowed
	}
	return s.createSession(ctx, subject, userAgent)
}

// Logout invalidates a session.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	return s.sessions.Delete(ctx, token)
}

// ValidateSession checks if a session token is valid and matches the user agent.
func (s *AuthService) ValidateSession(ctx context.Context, token, userAgent string) (*domain.Session, error) {
	session, err := s.sessions.GetByToken(ctx, token)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}

	if s.now().After(session.ExpiresAt) {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}

	if session.UserAgent != userAgent {
		_ = s.sessions.Delete(ctx, token)
		return nil, ErrSessionExpired
	}
	return session, nil
}

// PurgeExpired removes sessions past their expiry.
func (s *AuthService) PurgeExpired(ctx context.Context) error {
	return s.sessions.DeleteExpired(ctx)
}

func (s *AuthService) createSession(ctx context.Context, subject, userAgent string) (string, error) {
	token, err := generateToken()
	if err != nil {
		return "", err
	}
	now := s.now()
	err = s.sessions.Create(ctx, domain.Session{
		Token:     token,
		Subject:   subject,
		UserAgent: userAgent,
		ExpiresAt: now.Add(sessionTTL),
		CreatedAt: now,
	})
	if err != nil {
		return "", err
	}
	return token, nil
}

// HashPasscode returns the bcrypt hash to configure as PASSCODE_HASH.
func HashPasscode(passcode string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(passcode), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return base64.URLEncoding.EncodeToString(b), nil
}

// ConstantTimeCompare performs a constant-time comparison of two strings.
func ConstantTimeCompare(a, b string) bool {
	return subtle.ConstantTimeCompare([]byte(a), []byte(b)) == 1
}
