package service

import (
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/99minutos/auth-service/internal/core/domain"
)

func newTestTokenService(t *testing.T, secret string) *TokenService {
	t.Helper()
	svc, err := NewTokenService(TokenConfig{Secret: secret, TTL: time.Hour})
	if err != nil {
		t.Fatalf("NewTokenService: %v", err)
	}
	return svc
}

var aliceIdentity = domain.Identity{
	Subject: "u-1",
	Email:   "alice@example.com",
	Name:    "Alice",
	Role:    domain.RoleAdmin,
}

func TestTokenService_IssueVerify(t *testing.T) {
	svc := newTestTokenService(t, "secret")

	issued, err := svc.Issue(aliceIdentity)
	if err != nil {
		t.Fatalf("Issue: %v", err)
	}
	if issued.Value == "" {
		t.Fatalf("expected signed token")
	}
	if d := time.Until(issued.ExpiresAt); d <= 0 || d > time.Hour {
		t.Fatalf("unexpected expiry %v", issued.ExpiresAt)
	}

	got, err := svc.Verify(issued.Value)
	if err != nil {
		t.Fatalf("Verify: %v", err)
	}
	if got != aliceIdentity {
		t.Fatalf("expected %+v, got %+v", aliceIdentity, got)
	}
}

func TestTokenService_DistinctTokens(t *testing.T) {
	svc := newTestTokenService(t, "secret")

	a, _ := svc.Issue(aliceIdentity)
	b, _ := svc.Issue(aliceIdentity)
	if a.Value == b.Value {
		t.Fatalf("expected distinct tokens for consecutive issues")
	}
}

func TestTokenService_RejectsWrongSecret(t *testing.T) {
	issuer := newTestTokenService(t, "secret")
	verifier := newTestTokenService(t, "rotated")

	issued, _ := issuer.Issue(aliceIdentity)
	if _, err := verifier.Verify(issued.Value); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized, got %v", err)
	}
}

func TestTokenService_RejectsExpired(t *testing.T) {
	svc := newTestTokenService(t, "secret")
	svc.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	issued, _ := svc.Issue(aliceIdentity)

	svc.now = time.Now
	if _, err := svc.Verify(issued.Value); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected ErrUnauthorized for expired token, got %v", err)
	}
}

func TestTokenService_RejectsOtherAlgorithms(t *testing.T) {
	svc := newTestTokenService(t, "secret")

	claims := accessClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "u-1",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
		Role: domain.RoleAdmin,
	}

	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	if _, err := svc.Verify(hs512); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected HS512 token to be rejected, got %v", err)
	}

	none, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := svc.Verify(none); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected alg=none token to be rejected, got %v", err)
	}
}

func TestTokenService_RejectsMissingExpiry(t *testing.T) {
	svc := newTestTokenService(t, "secret")

	claims := accessClaims{RegisteredClaims: jwt.RegisteredClaims{Subject: "u-1"}, Role: domain.RoleUser}
	signed, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("secret"))

	if _, err := svc.Verify(signed); !errors.Is(err, domain.ErrUnauthorized) {
		t.Fatalf("expected token without exp to be rejected, got %v", err)
	}
}

func TestTokenService_RejectsMalformed(t *testing.T) {
	svc := newTestTokenService(t, "secret")

	for _, tok := range []string{"", "not-a-token", "a.b.c"} {
		if _, err := svc.Verify(tok); !errors.Is(err, domain.ErrUnauthorized) {
			t.Fatalf("expected %q to be rejected, got %v", tok, err)
		}
	}
}

func TestTokenService_ExpiresAt(t *testing.T) {
	svc := newTestTokenService(t, "secret")
	issued, _ := svc.Issue(aliceIdentity)

	exp, err := svc.ExpiresAt(issued.Value)
	if err != nil {
		t.Fatalf("ExpiresAt: %v", err)
	}
	if !exp.Equal(issued.ExpiresAt) {
		t.Fatalf("expected %v, got %v", issued.ExpiresAt, exp)
	}

	if _, err := svc.ExpiresAt("garbage"); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken, got %v", err)
	}

	noExp, _ := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "u-1"}).SignedString([]byte("secret"))
	if _, err := svc.ExpiresAt(noExp); !errors.Is(err, domain.ErrInvalidToken) {
		t.Fatalf("expected ErrInvalidToken for missing exp, got %v", err)
	}
}

func TestNewTokenService_RequiresSecret(t *testing.T) {
	if _, err := NewTokenService(TokenConfig{}); err == nil {
		t.Fatalf("expected error for empty secret")
	}
}
