package ports

import (
	"context"
	"time"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// UserRepository defines persistence for user accounts. Emails are passed in
// normalized form; uniqueness on email is enforced by the store.
type UserRepository interface {
	// FindByEmail returns domain.ErrUserNotFound when no user has the email.
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	// FindByID returns domain.ErrUserNotFound when the id is unknown or malformed.
	FindByID(ctx context.Context, id string) (*domain.User, error)
	// Create returns domain.ErrUserExists on a duplicate email.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// Update applies the non-nil patch fields and returns the stored result.
	Update(ctx context.Context, id string, patch domain.UserPatch, updatedAt time.Time) (*domain.User, error)
}
