package ports

import (
	"context"
	"time"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// PasswordHasher hashes and verifies credentials.
type PasswordHasher interface {
	Hash(plaintext string) (string, error)
	Verify(plaintext, digest string) bool
}

// TokenIssuer signs bearer tokens and reads their expiry without verification.
type TokenIssuer interface {
	Issue(identity domain.Identity) (domain.IssuedToken, error)
	// ExpiresAt decodes the token structure only. It must never be used to
	// authorize a request.
	ExpiresAt(token string) (time.Time, error)
}

// TokenVerifier checks signature, algorithm and expiry of a bearer token.
type TokenVerifier interface {
	Verify(token string) (domain.Identity, error)
}

// RevocationLedger is the deny-list consulted after signature verification.
type RevocationLedger interface {
	Revoke(ctx context.Context, token string, expiresAt time.Time) error
	IsRevoked(ctx context.Context, token string) (bool, error)
}
