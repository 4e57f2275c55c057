package ports

import (
	"context"
	"time"

	"github.com/99minutos/auth-service/internal/core/domain"
)

// RegisterInput carries a new account's credentials and profile fields.
type RegisterInput struct {
	Email     string
	Password  string
	Name      string
	Telephone string
}

// LoginResult is returned by a successful login.
type LoginResult struct {
	AccessToken string
	ExpiresAt   time.Time
	User        domain.UserView
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) error
	Login(ctx context.Context, email, password string) (*LoginResult, error)
	Logout(ctx context.Context, token string) error
	GetProfile(ctx context.Context, userID string) (*domain.Profile, error)
	UpdateUser(ctx context.Context, caller domain.Identity, targetID string, patch domain.UserPatch) (*domain.Profile, error)
}
