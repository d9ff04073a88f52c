package service

import (
	"context"
	"errors"
	"time"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/password"
	"github.com/99minutos/auth-service/internal/core/ports"
	"github.com/99minutos/auth-service/internal/core/token"
)

// AuthService drives registration and login on top of the credential store
// and the token service.
type AuthService struct {
	repo    ports.UserRepository
	tokens  *token.Service
	limiter ports.LoginLimiter
}

// NewAuthService wires the orchestrator. limiter may be nil, in which case
// failed logins are not throttled.
func NewAuthService(repo ports.UserRepository, tokens *token.Service, limiter ports.LoginLimiter) *AuthService {
	return &AuthService{repo: repo, tokens: tokens, limiter: limiter}
}

// Register creates a user with a hashed password. An omitted role defaults
// to domain.DefaultRole; a role outside the closed set is rejected rather
// than coerced.
func (s *AuthService) Register(ctx context.Context, username, pass, role string) (*domain.User, error) {
	if username == "" || pass == "" {
		return nil, domain.ErrMissingFields
	}
	if role == "" {
		role = domain.DefaultRole
	}
	if !domain.ValidRole(role) {
		return nil, domain.ErrInvalidRole
	}

	hash, err := password.Hash(pass)
	if err != nil {
		return nil, err
	}

	user := &domain.User{
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		CreatedAt:    time.Now().UTC(),
	}
	return s.repo.Create(ctx, user)
}

// Login verifies credentials and issues a signed token. Unknown usernames
// and wrong passwords both surface as domain.ErrInvalidCredentials so a
// caller cannot tell which occurred. The token role is always the stored
// role; nothing from the login request reaches the claims.
func (s *AuthService) Login(ctx context.Context, username, pass string) (string, error) {
	if username == "" || pass == "" {
		return "", domain.ErrMissingFields
	}

	if s.limiter != nil {
		ok, err := s.limiter.Allow(ctx, username)
		// A limiter outage must not lock everyone out; only a definitive
		// "no" blocks the attempt.
		if err == nil && !ok {
			return "", domain.ErrTooManyAttempts
		}
	}

	user, err := s.repo.FindByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			s.recordFailure(ctx, username)
			return "", domain.ErrInvalidCredentials
		}
		return "", err
	}

	if !password.Verify(pass, user.PasswordHash) {
		s.recordFailure(ctx, username)
		return "", domain.ErrInvalidCredentials
	}

	if s.limiter != nil {
		_ = s.limiter.Reset(ctx, username)
	}

	return s.tokens.Issue(user.Username, user.Role, time.Now().UTC())
}

func (s *AuthService) recordFailure(ctx context.Context, username string) {
	if s.limiter != nil {
		_ = s.limiter.RecordFailure(ctx, username)
	}
}
