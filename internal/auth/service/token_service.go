package service

import (
	"time"

	"github.com/golang-jwt/jwt/v5"

	authDomain "github.com/allisson/identity/internal/auth/domain"
	apperrors "github.com/allisson/identity/internal/errors"
)

// JWTTokenService implements TokenService with HS256-signed JWTs.
//
// Payload claims are sub, iat and exp (epoch seconds). There is no server-side
// session state and no revocation: a token stays valid until exp.
type JWTTokenService struct {
	secret   []byte
	lifetime time.Duration
	now      func() time.Time
}

// TokenServiceOption configures a JWTTokenService.
type TokenServiceOption func(*JWTTokenService)

// WithClock overrides the time source used for issuing and validating tokens.
func WithClock(now func() time.Time) TokenServiceOption {
	return func(s *JWTTokenService) {
		s.now = now
	}
}

// NewTokenService creates a JWTTokenService.
func NewTokenService(secret string, lifetime time.Duration, opts ...TokenServiceOption) (*JWTTokenService, error) {
	if secret == "" {
		return nil, authDomain.ErrTokenSecretNotSet
	}
	if lifetime <= 0 {
		return nil, authDomain.ErrInvalidTokenLifetime
	}

	s := &JWTTokenService{
		secret:   []byte(secret),
		lifetime: lifetime,
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// Issue signs a token for subject.
func (s *JWTTokenService) Issue(subject string) (*authDomain.Token, error) {
	if subject == "" {
		return nil, apperrors.Wrap(apperrors.ErrInvalidInput, "token subject is empty")
	}

	issuedAt := jwt.NewNumericDate(s.now())
	expiresAt := jwt.NewNumericDate(issuedAt.Add(s.lifetime))

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   subject,
		IssuedAt:  issuedAt,
		ExpiresAt: expiresAt,
	})

	signed, err := token.SignedString(s.secret)
	if err != nil {
		return nil, apperrors.Wrap(err, "failed to sign token")
	}

	return &authDomain.Token{
		Value:     signed,
		IssuedAt:  issuedAt.UTC(),
		ExpiresAt: expiresAt.UTC(),
	}, nil
}

// Validate parses and verifies token. The validity window is [iat, exp).
func (s *JWTTokenService) Validate(token string) (*authDomain.Claims, error) {
	claims := &jwt.RegisteredClaims{}

	_, err := jwt.ParseWithClaims(
		token,
		claims,
		func(*jwt.Token) (any, error) {
			return s.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithIssuedAt(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return nil, authDomain.ErrInvalidToken
	}
	if claims.Subject == "" || claims.IssuedAt == nil {
		return nil, authDomain.ErrInvalidToken
	}

	return &authDomain.Claims{
		Subject:   claims.Subject,
		IssuedAt:  claims.IssuedAt.UTC(),
		ExpiresAt: claims.ExpiresAt.UTC(),
	}, nil
}
