package service

import (
	"context"
	"strconv"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
	"github.com/hahn-ecommerce/catalog-api/internal/core/ports"
	"github.com/hahn-ecommerce/catalog-api/internal/core/token"
)

// stubUserRepo is an in-memory UserRepository that records which checks ran.
type stubUserRepo struct {
	users map[string]*domain.User // keyed by username

	existsUsernameCalled bool
	existsEmailCalled    bool
	seq                  int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func (r *stubUserRepo) FindByUsername(_ context.Context, username string) (*domain.User, error) {
	if u, ok := r.users[username]; ok {
		return u, nil
	}
	return nil, domain.NewNotFound("user not found")
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, domain.NewNotFound("user not found")
}

func (r *stubUserRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.existsUsernameCalled = true
	_, ok := r.users[username]
	return ok, nil
}

func (r *stubUserRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.existsEmailCalled = true
	for _, u := range r.users {
		if u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *stubUserRepo) Save(_ context.Context, user *domain.User) (*domain.User, error) {
	if user.ID == "" {
		r.seq++
		user.ID = strconv.Itoa(r.seq)
	}
	r.users[user.Username] = user
	return user, nil
}

// stubHasher is a transparent hasher that counts Hash calls.
type stubHasher struct {
	hashCalls int
}

func (h *stubHasher) Hash(plaintext string) (string, error) {
	h.hashCalls++
	return "hashed:" + plaintext, nil
}

func (h *stubHasher) Verify(plaintext, hash string) bool {
	return hash == "hashed:"+plaintext
}

func newAuthFixture() (*AuthService, *stubUserRepo, *stubHasher, *token.Provider) {
	repo := newStubUserRepo()
	hasher := &stubHasher{}
	tokens := token.NewProvider("auth-service-test-signing-key", time.Minute, time.Hour)
	svc := NewAuthService(repo, hasher, tokens, zerolog.Nop())
	return svc, repo, hasher, tokens
}

func TestRegisterThenLogin(t *testing.T) {
	svc, _, _, tokens := newAuthFixture()
	ctx := context.Background()

	input := ports.RegisterInput{Username: "alice", Email: "alice@example.com", Password: "secret1"}
	if err := svc.Register(ctx, input); err != nil {
		t.Fatalf("Register: %v", err)
	}

	result, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatalf("Login: %v", err)
	}
	if result.AccessToken == "" || result.RefreshToken == "" {
		t.Fatal("login should mint both tokens")
	}
	if result.User.Username != "alice" || !result.User.Active {
		t.Errorf("profile = %+v", result.User)
	}
	if len(result.User.Roles) != 1 || result.User.Roles[0] != domain.RoleUser {
		t.Errorf("roles should default to USER, got %v", result.User.Roles)
	}

	subject, roles, err := tokens.Identity(result.AccessToken)
	if err != nil {
		t.Fatalf("access token identity: %v", err)
	}
	if subject != "alice" {
		t.Errorf("token subject = %q, want alice", subject)
	}
	if len(roles) != 1 || roles[0] != domain.RoleUser {
		t.Errorf("token roles = %v", roles)
	}
}

func TestRegisterDuplicateUsername(t *testing.T) {
	svc, repo, hasher, _ := newAuthFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	repo.existsEmailCalled = false
	hasher.hashCalls = 0

	err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Email: "other@example.com", Password: "secret2"})
	if err == nil {
		t.Fatal("duplicate username should fail")
	}
	if domain.KindOf(err) != domain.KindConflict {
		t.Errorf("expected conflict kind, got %v", domain.KindOf(err))
	}
	if err.Error() != "username is already taken" {
		t.Errorf("message = %q", err.Error())
	}
	if repo.existsEmailCalled {
		t.Error("email check should not run after a username conflict")
	}
	if hasher.hashCalls != 0 {
		t.Error("hasher should not run after a username conflict")
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	err := svc.Register(ctx, ports.RegisterInput{Username: "bob", Email: "a@example.com", Password: "secret2"})
	if err == nil {
		t.Fatal("duplicate email should fail")
	}
	if domain.KindOf(err) != domain.KindConflict {
		t.Errorf("expected conflict kind, got %v", domain.KindOf(err))
	}
	if err.Error() != "email is already in use" {
		t.Errorf("message = %q", err.Error())
	}
}

func TestLoginFailures(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "mallory", "secret1"},
		{"wrong password", "alice", "wrong"},
		{"empty username", "", "secret1"},
		{"empty password", "alice", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := svc.Login(ctx, tt.username, tt.password)
			if err == nil {
				t.Fatal("expected error")
			}
			if domain.KindOf(err) != domain.KindUnauthorized {
				t.Errorf("expected unauthorized kind, got %v", domain.KindOf(err))
			}
			// Same generic message regardless of the failure cause.
			if err.Error() != "invalid username or password" {
				t.Errorf("message = %q", err.Error())
			}
			if result != nil {
				t.Error("no tokens may be issued on failure")
			}
		})
	}
}

func TestRefresh(t *testing.T) {
	svc, _, _, tokens := newAuthFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}
	login, err := svc.Login(ctx, "alice", "secret1")
	if err != nil {
		t.Fatal(err)
	}

	result, err := svc.Refresh(ctx, login.RefreshToken)
	if err != nil {
		t.Fatalf("Refresh: %v", err)
	}
	if result.RefreshToken != login.RefreshToken {
		t.Error("refresh token must be returned unchanged")
	}
	subject, _, err := tokens.Identity(result.AccessToken)
	if err != nil {
		t.Fatalf("new access token identity: %v", err)
	}
	if subject != "alice" {
		t.Errorf("subject = %q, want alice", subject)
	}
}

func TestRefreshRejectsInvalidToken(t *testing.T) {
	svc, _, _, _ := newAuthFixture()

	for _, tok := range []string{"", "garbage", "a.b.c"} {
		result, err := svc.Refresh(context.Background(), tok)
		if err == nil {
			t.Fatalf("Refresh(%q) should fail", tok)
		}
		if domain.KindOf(err) != domain.KindUnauthorized {
			t.Errorf("expected unauthorized kind, got %v", domain.KindOf(err))
		}
		if result != nil {
			t.Error("no tokens may be issued for an invalid refresh token")
		}
	}
}

func TestCurrentUser(t *testing.T) {
	svc, _, _, _ := newAuthFixture()
	ctx := context.Background()

	if err := svc.Register(ctx, ports.RegisterInput{Username: "alice", Email: "a@example.com", Password: "secret1"}); err != nil {
		t.Fatal(err)
	}

	profile, err := svc.CurrentUser(ctx, "alice")
	if err != nil {
		t.Fatalf("CurrentUser: %v", err)
	}
	if profile.Username != "alice" || profile.Email != "a@example.com" {
		t.Errorf("profile = %+v", profile)
	}

	_, err = svc.CurrentUser(ctx, "ghost")
	if err == nil {
		t.Fatal("missing user should fail")
	}
	if domain.KindOf(err) != domain.KindNotFound {
		t.Errorf("expected not-found kind, got %v", domain.KindOf(err))
	}
}
