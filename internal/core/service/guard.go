package service

import (
	"context"
	"errors"
	"strings"

	"github.com/rs/zerolog"

	"github.com/99minutos/auth-service/internal/core/domain"
	"github.com/99minutos/auth-service/internal/core/ports"
)

// Operation identifies a protected endpoint for role lookups.
type Operation string

const (
	OpProfile    Operation = "auth.profile"
	OpLogout     Operation = "auth.logout"
	OpUpdateUser Operation = "auth.update-user"
)

// Policy maps an operation to the roles allowed to call it. An operation with
// no entry needs authentication only; an entry with an empty role list
// forbids every caller.
type Policy map[Operation][]domain.Role

// DefaultPolicy is the role table for the auth endpoints.
func DefaultPolicy() Policy {
	return Policy{
		OpUpdateUser: {domain.RoleAdmin},
	}
}

// Allows reports whether role may call op.
func (p Policy) Allows(op Operation, role domain.Role) bool {
	required, declared := p[op]
	if !declared {
		return true
	}
	for _, r := range required {
		if r == role {
			return true
		}
	}
	return false
}

// Guard authenticates a bearer token and then authorizes the caller's role.
type Guard struct {
	tokens ports.TokenVerifier
	ledger ports.RevocationLedger
	policy Policy
	log    zerolog.Logger
}

func NewGuard(tokens ports.TokenVerifier, ledger ports.RevocationLedger, policy Policy, log zerolog.Logger) *Guard {
	if policy == nil {
		policy = Policy{}
	}
	return &Guard{tokens: tokens, ledger: ledger, policy: policy, log: log}
}

// BearerToken extracts the token from an Authorization header value.
func BearerToken(header string) (string, bool) {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "bearer") {
		return "", false
	}
	token = strings.TrimSpace(token)
	return token, token != ""
}

// Authenticate verifies the token in header and checks the deny-list.
// Missing, invalid, expired and revoked tokens all yield domain.ErrUnauthorized.
// A failing deny-list lookup surfaces as the store error, not as a rejection.
func (g *Guard) Authenticate(ctx context.Context, header string) (domain.Identity, error) {
	token, ok := BearerToken(header)
	if !ok {
		g.log.Debug().Msg("guard: missing bearer token")
		return domain.Identity{}, domain.ErrUnauthorized
	}

	identity, err := g.tokens.Verify(token)
	if err != nil {
		g.log.Debug().Msg("guard: token verification failed")
		return domain.Identity{}, domain.ErrUnauthorized
	}

	revoked, err := g.ledger.IsRevoked(ctx, token)
	if err != nil {
		return domain.Identity{}, err
	}
	if revoked {
		g.log.Debug().Str("sub", identity.Subject).Msg("guard: token revoked")
		return domain.Identity{}, domain.ErrUnauthorized
	}

	return identity, nil
}

// Authorize checks the caller's role against op's requirement.
func (g *Guard) Authorize(identity domain.Identity, op Operation) error {
	if !g.policy.Allows(op, identity.Role) {
		g.log.Debug().Str("sub", identity.Subject).Str("role", string(identity.Role)).Str("op", string(op)).Msg("guard: role not permitted")
		return domain.ErrForbidden
	}
	return nil
}

// Check runs Authenticate and then Authorize, returning the first failure.
func (g *Guard) Check(ctx context.Context, header string, op Operation) (domain.Identity, error) {
	identity, err := g.Authenticate(ctx, header)
	if err != nil {
		return domain.Identity{}, err
	}
	if err := g.Authorize(identity, op); err != nil {
		return domain.Identity{}, err
	}
	return identity, nil
}

// IsRejection reports whether err is a guard decision rather than a store failure.
func IsRejection(err error) bool {
	return errors.Is(err, domain.ErrUnauthorized) || errors.Is(err, domain.ErrForbidden)
}
