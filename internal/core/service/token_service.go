package service

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// DefaultTokenTTL matches the one-day lifetime used when none is configured.
const DefaultTokenTTL = 24 * time.Hour

var signingMethod = jwt.SigningMethodHS256

// accessClaims is the closed claim set carried by every access token.
type accessClaims struct {
	jwt.RegisteredClaims
	Email string      `json:"email"`
	Name  string      `json:"name"`
	Role  domain.Role `json:"role"`
}

// TokenConfig is the signing configuration, built once at startup.
type TokenConfig struct {
	Secret string
	TTL    time.Duration
}

// TokenService signs and verifies HS256 access tokens.
type TokenService struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewTokenService(cfg TokenConfig) (*TokenService, error) {
	if cfg.Secret == "" {
		return nil, errors.New("token service: empty signing secret")
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{secret: []byte(cfg.Secret), ttl: ttl, now: time.Now}, nil
}

// Issue signs a token for identity. Every token gets a random jti so two tokens
// issued to the same user within one second are still distinct on the deny-list.
func (s *TokenService) Issue(identity domain.Identity) (domain.IssuedToken, error) {
	now := s.now()
	exp := now.Add(s.ttl)

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   identity.Subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
			ID:        uuid.NewString(),
		},
		Email: identity.Email,
		Name:  identity.Name,
		Role:  identity.Role,
	}

	signed, err := jwt.NewWithClaims(signingMethod, claims).SignedString(s.secret)
	if err != nil {
		return domain.IssuedToken{}, fmt.Errorf("signing access token: %w", err)
	}
	return domain.IssuedToken{Value: signed, ExpiresAt: exp.Truncate(time.Second)}, nil
}

// Verify checks algorithm, signature and expiry. Every failure collapses into
// domain.ErrUnauthorized; the underlying cause is not exposed.
func (s *TokenService) Verify(token string) (domain.Identity, error) {
	claims := &accessClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{signingMethod.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !parsed.Valid {
		return domain.Identity{}, domain.ErrUnauthorized
	}
	if claims.Subject == "" || !claims.Role.Valid() {
		return domain.Identity{}, domain.ErrUnauthorized
	}

	return domain.Identity{
		Subject: claims.Subject,
		Email:   claims.Email,
		Name:    claims.Name,
		Role:    claims.Role,
	}, nil
}

// ExpiresAt decodes the token without checking its signature and returns the
// exp claim. It exists for deny-list bookkeeping only.
func (s *TokenService) ExpiresAt(token string) (time.Time, error) {
	claims := &accessClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, domain.ErrInvalidToken
	}
	if claims.ExpiresAt == nil {
		return time.Time{}, domain.ErrInvalidToken
	}
	return claims.ExpiresAt.Time, nil
}
