package ports

import (
	"context"
	"time"
)

// RevokedTokenRepository persists deny-list entries keyed by a stable token key.
type RevokedTokenRepository interface {
	// Insert records key until expiresAt. Inserting an existing key is not an error.
	Insert(ctx context.Context, key string, expiresAt time.Time) error
	// Exists reports whether key is on the deny-list.
	Exists(ctx context.Context, key string) (bool, error)
	// DeleteExpired removes entries whose expiry is at or before the given instant
	// and returns how many were removed.
	DeleteExpired(ctx context.Context, before time.Time) (int64, error)
}
