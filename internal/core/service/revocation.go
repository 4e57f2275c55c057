package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/ports"
)

// RevocationLedger is the token deny-list. Entries are keyed by the SHA-256 of
// the raw token so stored keys have a fixed size.
type RevocationLedger struct {
	repo ports.RevokedTokenRepository
	log  zerolog.Logger
	now  func() time.Time
}

func NewRevocationLedger(repo ports.RevokedTokenRepository, log zerolog.Logger) *RevocationLedger {
	return &RevocationLedger{repo: repo, log: log, now: time.Now}
}

// LedgerKey derives the deny-list key for a raw token.
func LedgerKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}

// Revoke puts token on the deny-list until expiresAt. Revoking twice is a no-op.
// A token that has already expired is skipped since verification rejects it anyway.
func (l *RevocationLedger) Revoke(ctx context.Context, token string, expiresAt time.Time) error {
	if !expiresAt.After(l.now()) {
		l.log.Debug().Time("expires_at", expiresAt).Msg("skipping revocation of expired token")
		return nil
	}
	if err := l.repo.Insert(ctx, LedgerKey(token), expiresAt.UTC()); err != nil {
		return fmt.Errorf("revoke token: %w", err)
	}
	return nil
}

// IsRevoked reports whether token is on the deny-list.
func (l *RevocationLedger) IsRevoked(ctx context.Context, token string) (bool, error) {
	revoked, err := l.repo.Exists(ctx, LedgerKey(token))
	if err != nil {
		return false, fmt.Errorf("revocation lookup: %w", err)
	}
	return revoked, nil
}

// Prune deletes entries that expired before now. It only touches tokens whose
// own expiry has passed, so a concurrent IsRevoked never changes its answer
// for a live token.
func (l *RevocationLedger) Prune(ctx context.Context) (int64, error) {
	n, err := l.repo.DeleteExpired(ctx, l.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("prune revoked tokens: %w", err)
	}
	return n, nil
}

var _ ports.RevocationLedger = (*RevocationLedger)(nil)
