package server

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/juju/clock"

	"github.com/jonathan/resume-intake/internal/config"
	"github.com/jonathan/resume-intake/internal/server/middleware"
)

// Claims represents the bearer token claims of an API caller.
// The caller identity is the registered subject claim.
type Claims struct {
	jwt.RegisteredClaims
}

// GetSubject returns the caller identity from the claims.
// This implements the middleware.SubjectGetter interface.
func (c *Claims) GetSubject() string {
	return c.Subject
}

// AsTokenValidator returns a TokenValidator adapter for this TokenService.
// This allows the TokenService to be used with middleware without creating import cycles.
func (s *TokenService) AsTokenValidator() middleware.TokenValidator {
	return &tokenServiceValidator{service: s}
}

// tokenServiceValidator adapts TokenService to middleware.TokenValidator interface.
type tokenServiceValidator struct {
	service *TokenService
}

func (v *tokenServiceValidator) ValidateToken(tokenString string) (middleware.SubjectGetter, error) {
	claims, err := v.service.ValidateToken(tokenString)
	if err != nil {
		return nil, err
	}
	return claims, nil
}

// TokenService issues and verifies HS256 bearer tokens for API callers.
type TokenService struct {
	secret   []byte
	audience string
	clock    clock.Clock
}

// NewTokenService creates a token service from the auth configuration.
// It returns nil when no secret is configured, which disables authentication.
func NewTokenService(cfg config.AuthConfig, clk clock.Clock) *TokenService {
	if cfg.JWTSecret == "" {
		return nil
	}
	if clk == nil {
		clk = clock.WallClock
	}
	return &TokenService{
		secret:   []byte(cfg.JWTSecret),
		audience: cfg.Audience,
		clock:    clk,
	}
}

// GenerateToken issues a token for subject that expires after ttl.
func (s *TokenService) GenerateToken(subject string, ttl time.Duration) (string, error) {
	if subject == "" {
		return "", fmt.Errorf("token subject is empty")
	}
	if ttl <= 0 {
		return "", fmt.Errorf("token lifetime must be positive")
	}

	now := s.clock.Now()
	claims := &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}
	if s.audience != "" {
		claims.Audience = jwt.ClaimStrings{s.audience}
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	tokenString, err := token.SignedString(s.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}

	return tokenString, nil
}

// ValidateToken validates a token and returns its claims. Tokens must be
// HS256, unexpired, carry a subject and match the configured audience.
func (s *TokenService) ValidateToken(tokenString string) (*Claims, error) {
	if tokenString == "" {
		return nil, fmt.Errorf("token string is empty")
	}

	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.clock.Now),
		jwt.WithExpirationRequired(),
	}
	if s.audience != "" {
		opts = append(opts, jwt.WithAudience(s.audience))
	}

	claims := &Claims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	}, opts...)
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return nil, fmt.Errorf("invalid token signature: %w", err)
		case errors.Is(err, jwt.ErrTokenExpired):
			return nil, fmt.Errorf("token expired: %w", err)
		case errors.Is(err, jwt.ErrTokenMalformed):
			return nil, fmt.Errorf("malformed token: %w", err)
		default:
			return nil, fmt.Errorf("failed to parse token: %w", err)
		}
	}

	if claims.Subject == "" {
		return nil, fmt.Errorf("token has no subject")
	}

	return claims, nil
}
