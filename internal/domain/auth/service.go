package auth

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"ledgerpro/internal/core/apperror"
	"ledgerpro/internal/core/id"
	"ledgerpro/internal/core/types"
	"ledgerpro/pkg/logger"
)

// sessionTTL is how long a login stays valid without re-authentication.
const sessionTTL = 30 * 24 * time.Hour

// Service handles registration, login and profile management.
type Service struct {
	users    UserRepository
	sessions SessionStore
}

// NewService creates a new auth service.
func NewService(users UserRepository, sessions SessionStore) *Service {
	return &Service{users: users, sessions: sessions}
}

// LoginResult is what a successful register or login returns.
type LoginResult struct {
	User    *User    `json:"user"`
	Session *Session `json:"session"`
}

// Register creates an account and logs it in.
func (s *Service) Register(ctx context.Context, req RegisterRequest) (*LoginResult, error) {
	if err := req.validate(); err != nil {
		return nil, err
	}
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.users.GetByEmail(ctx, email); err == nil && existing != nil {
		return nil, apperror.NewDuplicate("user", "email", email)
	} else if err != nil && !apperror.IsNotFound(err) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.NewInternal(err)
	}

	u := &User{
		ID:           id.New(),
		Email:        email,
		PasswordHash: string(hash),
		Name:         strings.TrimSpace(req.Name),
		BusinessName: strings.TrimSpace(req.BusinessName),
		Currency:     defaultCurrency,
		CreatedAt:    types.NowISO(),
	}
	if err := s.users.Create(ctx, u); err != nil {
		return nil, err
	}
	logger.Info(ctx, "user registered", "user_id", u.ID, "email", u.Email)

	return s.startSession(ctx, u)
}

// Login verifies credentials and opens a session.
func (s *Service) Login(ctx context.Context, creds Credentials) (*LoginResult, error) {
	email := strings.ToLower(strings.TrimSpace(creds.Email))
	if email == "" || creds.Password == "" {
		return nil, apperror.NewInvalidInput("Email and password are required.")
	}

	u, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, apperror.NewUnauthorized("Invalid email or password.")
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(creds.Password)) != nil {
		return nil, apperror.NewUnauthorized("Invalid email or password.")
	}

	return s.startSession(ctx, u)
}

// Logout destroys the session behind the token. Unknown tokens are fine.
func (s *Service) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	err := s.sessions.Destroy(ctx, token)
	if err != nil && !apperror.IsNotFound(err) {
		return err
	}
	return nil
}

// Authenticate resolves a session token to its user. Expired sessions are
// destroyed on sight.
func (s *Service) Authenticate(ctx context.Context, token string) (*User, *Session, error) {
	if token == "" {
		return nil, nil, apperror.NewUnauthorized("Authentication required.")
	}
	sess, err := s.sessions.Lookup(ctx, token)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil, apperror.NewUnauthorized("Invalid or expired session.")
		}
		return nil, nil, err
	}
	if sess.Expired(time.Now().UTC()) {
		_ = s.sessions.Destroy(ctx, token)
		return nil, nil, apperror.NewUnauthorized("Invalid or expired session.")
	}
	u, err := s.users.GetByID(ctx, sess.UserID)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil, apperror.NewUnauthorized("Invalid or expired session.")
		}
		return nil, nil, err
	}
	return u, sess, nil
}

// Profile returns the user's account record.
func (s *Service) Profile(ctx context.Context, userID id.ID) (*User, error) {
	return s.users.GetByID(ctx, userID)
}

// UpdateProfile edits display fields. The currency code is normalized;
// anything that is not three letters becomes the default.
func (s *Service) UpdateProfile(ctx context.Context, userID id.ID, upd ProfileUpdate) (*User, error) {
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	u.Name = strings.TrimSpace(upd.Name)
	u.BusinessName = strings.TrimSpace(upd.BusinessName)
	u.Currency = sanitizeCurrency(upd.Currency)
	if err := s.users.Update(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

func (s *Service) startSession(ctx context.Context, u *User) (*LoginResult, error) {
	token, err := newToken()
	if err != nil {
		return nil, apperror.NewInternal(err)
	}
	now := time.Now().UTC()
	sess := &Session{
		ID:        id.New(),
		Token:     token,
		UserID:    u.ID,
		CreatedAt: now,
		ExpiresAt: now.Add(sessionTTL),
	}
	if err := s.sessions.Create(ctx, sess); err != nil {
		return nil, err
	}
	return &LoginResult{User: u, Session: sess}, nil
}

// newToken returns 32 random bytes hex-encoded.
func newToken() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(buf), nil
}
