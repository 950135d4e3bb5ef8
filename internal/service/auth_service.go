package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/spec-kit/gripe-service/internal/auth"
	"github.com/spec-kit/gripe-service/internal/domain"
	"github.com/spec-kit/gripe-service/internal/repository"
	apperrors "github.com/spec-kit/gripe-service/pkg/util/errorutil"
)

// Session is the established login state returned to the transport layer,
// which persists it as a cookie.
type Session struct {
	User      *domain.User
	Token     string
	ExpiresAt time.Time
}

// AuthService coordinates signup, login and logout flows.
type AuthService struct {
	users      repository.UserRepository
	sessions   *auth.SessionManager
	bcryptCost int
}

// NewAuthService builds the service.
func NewAuthService(users repository.UserRepository, sessions *auth.SessionManager, bcryptCost int) *AuthService {
	return &AuthService{users: users, sessions: sessions, bcryptCost: bcryptCost}
}

// Signup creates a new account and establishes a session for it.
func (s *AuthService) Signup(ctx context.Context, email, password string) (*Session, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return nil, apperrors.NewValidationError("email and password required", nil)
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, apperrors.NewDuplicateEmail(email)
	} else if !errors.Is(err, pgx.ErrNoRows) {
		return nil, err
	}

	hash, err := auth.HashPassword(password, s.bcryptCost)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hash,
	}
	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return s.establish(ctx, user)
}

// Login authenticates an existing account. Unknown emails and wrong
// passwords both come back as InvalidCredentials so the response cannot be
// used to probe which emails are registered.
func (s *AuthService) Login(ctx context.Context, email, password string) (*Session, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.NewInvalidCredentials()
		}
		return nil, err
	}
	if err := auth.ComparePassword(user.PasswordHash, password); err != nil {
		return nil, apperrors.NewInvalidCredentials()
	}

	return s.establish(ctx, user)
}

// Logout destroys the session unconditionally; logging out twice or with a
// garbage cookie is not an error.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	return s.sessions.Revoke(ctx, token)
}

func (s *AuthService) establish(ctx context.Context, user *domain.User) (*Session, error) {
	token, exp, err := s.sessions.Issue(ctx, user.ID)
	if err != nil {
		return nil, err
	}
	return &Session{User: user, Token: token, ExpiresAt: exp}, nil
}
