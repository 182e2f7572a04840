// Package auth provides account registration, login and opaque session
// tokens. Sessions are server-side records; the token the client holds
// carries no claims of its own.
package auth

import (
	"context"
	"strings"
	"time"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
)

// User is an account. Every other record in the system hangs off a user id.
type User struct {
	ID           id.ID  `db:"id" json:"id"`
	Email        string `db:"email" json:"email"`
	PasswordHash string `db:"password_hash" json:"-"`
	Name         string `db:"name" json:"name"`
	BusinessName string `db:"business_name" json:"businessName"`
	Currency     string `db:"currency" json:"currency"`
	CreatedAt    string `db:"created_at" json:"createdAt"`
}

// defaultCurrency applies when the profile carries no usable currency code.
const defaultCurrency = "INR"

// sanitizeCurrency accepts a three-letter code, uppercased; anything else
// falls back to the default.
func sanitizeCurrency(raw string) string {
	code := strings.ToUpper(strings.TrimSpace(raw))
	if len(code) != 3 {
		return defaultCurrency
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return defaultCurrency
		}
	}
	return code
}

// Credentials is the login payload.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// RegisterRequest is the signup payload.
type RegisterRequest struct {
	Email        string `json:"email"`
	Password     string `json:"password"`
	Name         string `json:"name"`
	BusinessName string `json:"businessName"`
}

// ProfileUpdate is the profile edit payload.
type ProfileUpdate struct {
	Name         string `json:"name"`
	BusinessName string `json:"businessName"`
	Currency     string `json:"currency"`
}

func (r RegisterRequest) validate() error {
	if strings.TrimSpace(r.Email) == "" || r.Password == "" {
		return apperror.NewInvalidInput("Email and password are required.")
	}
	if len(r.Password) < 6 {
		return apperror.NewInvalidInput("Password should be at least 6 characters.")
	}
	return nil
}

// Session is a server-side login record. The Token value is what the
// client presents on every request.
type Session struct {
	ID        id.ID     `db:"id" json:"-"`
	Token     string    `db:"token" json:"token"`
	UserID    id.ID     `db:"user_id" json:"-"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	ExpiresAt time.Time `db:"expires_at" json:"expiresAt"`
}

// Expired reports whether the session is past its expiry.
func (s *Session) Expired(now time.Time) bool {
	return now.After(s.ExpiresAt)
}

// UserRepository persists accounts.
type UserRepository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, userID id.ID) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
}

// SessionStore persists login sessions. Lookup returns NotFound for
// unknown or destroyed tokens.
type SessionStore interface {
	Create(ctx context.Context, s *Session) error
	Lookup(ctx context.Context, token string) (*Session, error)
	Destroy(ctx context.Context, token string) error
}
