package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

// AuthService implements registration, login, logout and account management.
type AuthService struct {
	users  ports.UserRepository
	hasher ports.PasswordHasher
	tokens ports.TokenIssuer
	ledger ports.RevocationLedger
	log    zerolog.Logger
	now    func() time.Time
}

func NewAuthService(
	users ports.UserRepository,
	hasher ports.PasswordHasher,
	tokens ports.TokenIssuer,
	ledger ports.RevocationLedger,
	log zerolog.Logger,
) *AuthService {
	return &AuthService{
		users:  users,
		hasher: hasher,
		tokens: tokens,
		ledger: ledger,
		log:    log,
		now:    time.Now,
	}
}

// Register creates a user with role "user". It does not log the user in.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	email := domain.NormalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return fmt.Errorf("%w: email and password are required", domain.ErrBadRequest)
	}

	_, err := s.create(ctx, email, in.Password, in.Name, in.Telephone, domain.RoleUser)
	return err
}

// SeedAdmin creates an admin account if email is not registered yet.
func (s *AuthService) SeedAdmin(ctx context.Context, email, password, name string) error {
	email = domain.NormalizeEmail(email)
	if email == "" || password == "" {
		return fmt.Errorf("%w: admin email and password are required", domain.ErrBadRequest)
	}

	_, err := s.create(ctx, email, password, name, "", domain.RoleAdmin)
	if errors.Is(err, domain.ErrUserExists) {
		s.log.Info().Str("email", email).Msg("admin account exists, skipping seed")
		return nil
	}
	if err != nil {
		return fmt.Errorf("seed admin: %w", err)
	}
	return nil
}

func (s *AuthService) create(ctx context.Context, email, password, name, telephone string, role domain.Role) (*domain.User, error) {
	if _, err := s.users.FindByEmail(ctx, email); err == nil {
		return nil, domain.ErrUserExists
	} else if !errors.Is(err, domain.ErrUserNotFound) {
		return nil, err
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	created, err := s.users.Create(ctx, &domain.User{
		Email:        email,
		Name:         strings.TrimSpace(name),
		Telephone:    strings.TrimSpace(telephone),
		Role:         role,
		PasswordHash: hash,
		CreatedAt:    now,
		UpdatedAt:    now,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", created.ID).Str("role", string(role)).Msg("user registered")
	return created, nil
}

// Login checks the password and issues an access token embedding the user's
// id, email, name and current role.
func (s *AuthService) Login(ctx context.Context, email, password string) (*ports.LoginResult, error) {
	user, err := s.users.FindByEmail(ctx, domain.NormalizeEmail(email))
	if err != nil {
		return nil, err
	}

	if !s.hasher.Verify(password, user.PasswordHash) {
		s.log.Info().Str("user_id", user.ID).Msg("login rejected: password mismatch")
		return nil, domain.ErrInvalidCredentials
	}

	issued, err := s.tokens.Issue(domain.Identity{
		Subject: user.ID,
		Email:   user.Email,
		Name:    user.Name,
		Role:    user.Role,
	})
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("user_id", user.ID).Msg("login succeeded")
	return &ports.LoginResult{
		AccessToken: issued.Value,
		ExpiresAt:   issued.ExpiresAt,
		User:        user.View(),
	}, nil
}

// Logout places token on the deny-list until its own expiry. The expiry is
// read without signature verification; callers are expected to have passed the
// guard first. Logging out a token that is already revoked succeeds.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("%w: token is required", domain.ErrBadRequest)
	}

	expiresAt, err := s.tokens.ExpiresAt(token)
	if err != nil {
		return err
	}

	if err := s.ledger.Revoke(ctx, token, expiresAt); err != nil {
		return err
	}

	s.log.Info().Time("expires_at", expiresAt).Msg("token revoked")
	return nil
}

// GetProfile returns the user's profile without its password hash.
func (s *AuthService) GetProfile(ctx context.Context, userID string) (*domain.Profile, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	return user.Profile(), nil
}

// UpdateUser applies patch to the target account. The route guard already
// restricts this operation to admins; the role check here is kept on purpose
// so the service cannot be misused by a caller that skips the guard.
func (s *AuthService) UpdateUser(ctx context.Context, caller domain.Identity, targetID string, patch domain.UserPatch) (*domain.Profile, error) {
	target, err := s.users.FindByID(ctx, targetID)
	if err != nil {
		return nil, err
	}

	if caller.Role != domain.RoleAdmin {
		s.log.Warn().Str("caller", caller.Subject).Str("target", targetID).Msg("update rejected: caller is not admin")
		return nil, domain.ErrForbidden
	}

	if patch.Role != nil && !patch.Role.Valid() {
		return nil, fmt.Errorf("%w: unknown role %q", domain.ErrBadRequest, *patch.Role)
	}
	if patch.Email != nil {
		email := domain.NormalizeEmail(*patch.Email)
		if email == "" {
			return nil, fmt.Errorf("%w: email must not be empty", domain.ErrBadRequest)
		}
		patch.Email = &email
	}
	if patch.Empty() {
		return target.Profile(), nil
	}

	updated, err := s.users.Update(ctx, targetID, patch, s.now().UTC())
	if err != nil {
		return nil, err
	}

	s.log.Info().Str("caller", caller.Subject).Str("target", targetID).Msg("user updated")
	return updated.Profile(), nil
}

var _ ports.AuthService = (*AuthService)(nil)
