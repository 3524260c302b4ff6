package token

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
)

const testSecret = "test-secret-at-least-32-bytes-long"

func newTestProvider() *Provider {
	return NewProvider(testSecret, time.Minute, time.Hour)
}

func TestAccessTokenRoundTrip(t *testing.T) {
	p := newTestProvider()

	tok, err := p.CreateAccessToken("alice", []domain.Role{domain.RoleUser, domain.RoleAdmin})
	if err != nil {
		t.Fatalf("CreateAccessToken: %v", err)
	}
	if !p.Validate(tok) {
		t.Fatal("freshly minted token should validate")
	}

	subject, roles, err := p.Identity(tok)
	if err != nil {
		t.Fatalf("Identity: %v", err)
	}
	if subject != "alice" {
		t.Errorf("subject = %q, want alice", subject)
	}
	if len(roles) != 2 || roles[0] != domain.RoleUser || roles[1] != domain.RoleAdmin {
		t.Errorf("roles = %v", roles)
	}
}

func TestRefreshTokenRoundTrip(t *testing.T) {
	p := newTestProvider()

	tok, err := p.CreateRefreshToken("bob", []domain.Role{domain.RoleUser})
	if err != nil {
		t.Fatalf("CreateRefreshToken: %v", err)
	}
	if !p.Validate(tok) {
		t.Fatal("refresh token should validate")
	}
	subject, _, err := p.Identity(tok)
	if err != nil {
		t.Fatalf("Identity: %v", err)
	}
	if subject != "bob" {
		t.Errorf("subject = %q, want bob", subject)
	}
}

func TestValidateFailsClosed(t *testing.T) {
	p := newTestProvider()

	tok, err := p.CreateAccessToken("alice", nil)
	if err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name  string
		token string
	}{
		{"empty", ""},
		{"garbage", "not-a-token"},
		{"tampered payload", tok[:len(tok)-4] + "AAAA"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if p.Validate(tt.token) {
				t.Error("Validate should return false")
			}
		})
	}
}

func TestValidateRejectsForeignSignature(t *testing.T) {
	p := newTestProvider()
	other := NewProvider("a-completely-different-signing-key", time.Minute, time.Hour)

	tok, err := other.CreateAccessToken("alice", nil)
	if err != nil {
		t.Fatal(err)
	}
	if p.Validate(tok) {
		t.Error("token signed with another key should not validate")
	}
	if _, _, err := p.Identity(tok); err == nil {
		t.Error("Identity should fail on a foreign signature")
	}
}

func TestValidateRejectsExpiredToken(t *testing.T) {
	p := newTestProvider()

	// Crafted by hand so the expiry is already in the past.
	claims := Claims{
		Roles: []string{"USER"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}

	if p.Validate(expired) {
		t.Error("expired token should not validate")
	}
}

func TestIdentityRejectsUnknownRole(t *testing.T) {
	p := newTestProvider()

	claims := Claims{
		Roles: []string{"ROOT"},
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "alice",
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
		},
	}
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	if err != nil {
		t.Fatal(err)
	}

	if _, _, err := p.Identity(tok); err == nil {
		t.Error("Identity should reject a token carrying an unknown role")
	}
}

func TestDefaultTTLs(t *testing.T) {
	p := NewProvider(testSecret, 0, -time.Hour)
	if p.accessTTL != defaultAccessTTL {
		t.Errorf("accessTTL = %v, want %v", p.accessTTL, defaultAccessTTL)
	}
	if p.refreshTTL != defaultRefreshTTL {
		t.Errorf("refreshTTL = %v, want %v", p.refreshTTL, defaultRefreshTTL)
	}
}
