package mongo

import (
	"context"
	"errors"
	"fmt"
	"os"
	"testing"
	"time"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// These tests need a reachable MongoDB; they are skipped unless TEST_MONGO_URI is set.
func testDatabase(t *testing.T) (*UserRepository, *RevokedTokenRepository) {
	t.Helper()
	uri := os.Getenv("TEST_MONGO_URI")
	if uri == "" {
		t.Skip("TEST_MONGO_URI not set")
	}

	ctx := context.Background()
	client, db, err := Connect(ctx, Config{URI: uri, Database: fmt.Sprintf("auth_service_test_%d", time.Now().UnixNano())})
	if err != nil {
		t.Fatalf("connect: %v", err)
	}
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = client.Disconnect(context.Background())
	})

	users := NewUserRepository(db)
	revoked := NewRevokedTokenRepository(db)
	if err := users.EnsureIndexes(ctx); err != nil {
		t.Fatalf("user indexes: %v", err)
	}
	if err := revoked.EnsureIndexes(ctx); err != nil {
		t.Fatalf("revoked indexes: %v", err)
	}
	return users, revoked
}

func TestUserRepository_Lifecycle(t *testing.T) {
	users, _ := testDatabase(t)
	ctx := context.Background()
	now := time.Now().UTC().Truncate(time.Millisecond)

	created, err := users.Create(ctx, &domain.User{
		Email: "a@x.com", Name: "A", Role: domain.RoleUser, PasswordHash: "h", CreatedAt: now, UpdatedAt: now,
	})
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	if created.ID == "" {
		t.Fatalf("expected generated id")
	}

	if _, err := users.Create(ctx, &domain.User{Email: "a@x.com", Role: domain.RoleUser}); !errors.Is(err, domain.ErrUserExists) {
		t.Fatalf("expected ErrUserExists, got %v", err)
	}

	byID, err := users.FindByID(ctx, created.ID)
	if err != nil || byID.Email != "a@x.com" || byID.PasswordHash != "h" {
		t.Fatalf("FindByID: %+v %v", byID, err)
	}

	if _, err := users.FindByID(ctx, "not-an-object-id"); !errors.Is(err, domain.ErrUserNotFound) {
		t.Fatalf("expected ErrUserNotFound, got %v", err)
	}

	role := domain.RoleAdmin
	name := "Renamed"
	updated, err := users.Update(ctx, created.ID, domain.UserPatch{Name: &name, Role: &role}, now.Add(time.Minute))
	if err != nil {
		t.Fatalf("Update: %v", err)
	}
	if updated.Name != "Renamed" || updated.Role != domain.RoleAdmin || updated.Email != "a@x.com" {
		t.Fatalf("unexpected update result: %+v", updated)
	}
}

func TestRevokedTokenRepository_Lifecycle(t *testing.T) {
	_, revoked := testDatabase(t)
	ctx := context.Background()
	now := time.Now().UTC()

	for i := 0; i < 2; i++ {
		if err := revoked.Insert(ctx, "k1", now.Add(time.Hour)); err != nil {
			t.Fatalf("Insert #%d: %v", i, err)
		}
	}
	if err := revoked.Insert(ctx, "k2", now.Add(-time.Minute)); err != nil {
		t.Fatalf("Insert k2: %v", err)
	}

	ok, err := revoked.Exists(ctx, "k1")
	if err != nil || !ok {
		t.Fatalf("expected k1 present: %v %v", ok, err)
	}

	n, err := revoked.DeleteExpired(ctx, now)
	if err != nil {
		t.Fatalf("DeleteExpired: %v", err)
	}
	if n > 1 {
		t.Fatalf("expected at most the expired entry removed, got %d", n)
	}
	if ok, _ := revoked.Exists(ctx, "k1"); !ok {
		t.Fatalf("live entry removed by DeleteExpired")
	}
}
