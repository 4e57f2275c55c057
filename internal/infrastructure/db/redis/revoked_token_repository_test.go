package redis

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/99minutos/auth-service/internal/core/domain"
)

func testClientRepo(t *testing.T) *RevokedTokenRepository {
	t.Helper()
	addr := os.Getenv("TEST_REDIS_ADDR")
	if addr == "" {
		t.Skip("TEST_REDIS_ADDR not set")
	}
	client, err := Connect(context.Background(), Config{Addr: addr})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })
	return NewRevokedTokenRepository(client)
}

func TestRevokedTokenRepository_InsertExists(t *testing.T) {
	repo := testClientRepo(t)
	ctx := context.Background()
	key := fmt.Sprintf("test-%d", time.Now().UnixNano())

	ok, err := repo.Exists(ctx, key)
	if err != nil || ok {
		t.Fatalf("expected absent key, got %v %v", ok, err)
	}

	for i := 0; i < 2; i++ {
		if err := repo.Insert(ctx, key, time.Now().Add(time.Minute)); err != nil {
			t.Fatalf("Insert #%d: %v", i, err)
		}
	}

	ok, err = repo.Exists(ctx, key)
	if err != nil || !ok {
		t.Fatalf("expected key present, got %v %v", ok, err)
	}

	ttl, err := repo.client.TTL(ctx, repo.key(key)).Result()
	if err != nil || ttl <= 0 || ttl > time.Minute {
		t.Fatalf("expected ttl bounded by token expiry, got %v %v", ttl, err)
	}
}

func TestRevokedTokenRepository_Unavailable(t *testing.T) {
	repo := testClientRepo(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := repo.Exists(ctx, "k"); !errors.Is(err, domain.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable on cancelled context, got %v", err)
	}
}

func TestRevokedTokenRepository_KeyFormat(t *testing.T) {
	repo := &RevokedTokenRepository{}
	if got := repo.key("abc"); got != "revoked:abc" {
		t.Fatalf("unexpected key %q", got)
	}
}
