package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

// RevokedTokenRepository keeps deny-list entries as Redis keys that expire
// together with the token they describe.
// Key format: revoked:<ledger key>
type RevokedTokenRepository struct {
	client *redis.Client
}

func NewRevokedTokenRepository(client *redis.Client) *RevokedTokenRepository {
	return &RevokedTokenRepository{client: client}
}

// Insert uses SET NX so revoking twice keeps the first entry and its expiry.
func (r *RevokedTokenRepository) Insert(ctx context.Context, key string, expiresAt time.Time) error {
	err := r.client.SetArgs(ctx, r.key(key), "1", redis.SetArgs{
		Mode:     "NX",
		ExpireAt: expiresAt,
	}).Err()
	if err != nil && !errors.Is(err, redis.Nil) {
		return storeError("insert revoked token", err)
	}
	return nil
}

func (r *RevokedTokenRepository) Exists(ctx context.Context, key string) (bool, error) {
	n, err := r.client.Exists(ctx, r.key(key)).Result()
	if err != nil {
		return false, storeError("find revoked token", err)
	}
	return n > 0, nil
}

// DeleteExpired is a no-op: Redis evicts each key at its own expiry.
func (r *RevokedTokenRepository) DeleteExpired(context.Context, time.Time) (int64, error) {
	return 0, nil
}

func (r *RevokedTokenRepository) key(k string) string {
	return "revoked:" + k
}

func storeError(op string, err error) error {
	return fmt.Errorf("%s: %w: %w", op, domain.ErrUnavailable, err)
}

var _ ports.RevokedTokenRepository = (*RevokedTokenRepository)(nil)
