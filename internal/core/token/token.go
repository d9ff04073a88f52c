// Package token issues and validates the service's HS256 access tokens.
// Tokens are self-contained: validity is fully determined by signature and
// expiry, nothing is stored server-side.
package token

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// DefaultTTL is the validity window applied when no TTL is configured.
const DefaultTTL = 30 * time.Minute

// Claims is the verified payload of an access token. The wire claims are
// {user, role, exp, iat}.
type Claims struct {
	Username string `json:"user"`
	Role     string `json:"role"`
	jwt.RegisteredClaims
}

// Service signs and validates tokens with a process-wide symmetric secret.
// It is stateless and safe for concurrent use.
type Service struct {
	secret []byte
	ttl    time.Duration
}

func NewService(secret string, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{secret: []byte(secret), ttl: ttl}
}

// TTL returns the configured validity window.
func (s *Service) TTL() time.Duration {
	return s.ttl
}

// Issue signs a token for subject with the given role, expiring ttl after
// now.
func (s *Service) Issue(subject, role string, now time.Time) (string, error) {
	claims := Claims{
		Username: subject,
		Role:     role,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
		},
	}
	t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return t.SignedString(s.secret)
}

// Validate checks a presented token against the secret and now, in order:
// malformed structure or a signature that does not verify yields
// ErrInvalidToken; a verified token past its expiry yields ErrExpiredToken;
// a verified, current token missing required claims yields ErrInvalidToken.
// Expiry is only ever read from the verified payload, so a tampered exp
// claim surfaces as a signature failure, not as an accepted extension.
func (s *Service) Validate(tokenStr string, now time.Time) (*Claims, error) {
	claims := &Claims{}
	parsed, err := jwt.ParseWithClaims(tokenStr, claims,
		func(t *jwt.Token) (interface{}, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, domain.ErrInvalidToken
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, domain.ErrExpiredToken
		default:
			return nil, domain.ErrInvalidToken
		}
	}
	if !parsed.Valid || claims.Username == "" || claims.Role == "" {
		return nil, domain.ErrInvalidToken
	}
	return claims, nil
}
