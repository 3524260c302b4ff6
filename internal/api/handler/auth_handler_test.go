package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/hahn-ecommerce/catalog-api/internal/core/domain"
	"github.com/hahn-ecommerce/catalog-api/internal/core/ports"
)

// stubAuthService implements ports.AuthService with function fields so each
// test injects only the behavior it needs.
type stubAuthService struct {
	login       func(ctx context.Context, username, password string) (*ports.LoginResult, error)
	register    func(ctx context.Context, input ports.RegisterInput) error
	refresh     func(ctx context.Context, refreshToken string) (*ports.RefreshResult, error)
	currentUser func(ctx context.Context, username string) (*ports.UserProfile, error)
}

func (s *stubAuthService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	return s.login(ctx, username, password)
}

func (s *stubAuthService) Register(ctx context.Context, input ports.RegisterInput) error {
	return s.register(ctx, input)
}

func (s *stubAuthService) Refresh(ctx context.Context, refreshToken string) (*ports.RefreshResult, error) {
	return s.refresh(ctx, refreshToken)
}

func (s *stubAuthService) CurrentUser(ctx context.Context, username string) (*ports.UserProfile, error) {
	return s.currentUser(ctx, username)
}

func newJSONContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()

	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, target, nil)
	} else {
		req = httptest.NewRequest(method, target, strings.NewReader(body))
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return body
}

func TestSignin(t *testing.T) {
	svc := &stubAuthService{
		login: func(_ context.Context, username, password string) (*ports.LoginResult, error) {
			if username != "alice" || password != "secret1" {
				t.Errorf("login called with %q/%q", username, password)
			}
			return &ports.LoginResult{
				AccessToken:  "access",
				RefreshToken: "refresh",
				User:         ports.UserProfile{ID: "1", Username: "alice", Email: "a@b.com", Active: true, Roles: []domain.Role{domain.RoleUser}},
			}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/signin", `{"username":"alice","password":"secret1"}`)
	if err := h.Signin(c); err != nil {
		t.Fatalf("Signin: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}

	body := decodeBody(t, rec)
	data, _ := body["data"].(map[string]any)
	if data["access_token"] != "access" || data["refresh_token"] != "refresh" {
		t.Errorf("tokens missing from response: %v", data)
	}
	user, _ := data["user"].(map[string]any)
	if user["username"] != "alice" {
		t.Errorf("profile missing from response: %v", data)
	}
}

func TestSigninValidatesPayload(t *testing.T) {
	svc := &stubAuthService{
		login: func(context.Context, string, string) (*ports.LoginResult, error) {
			t.Fatal("service must not be called on invalid payload")
			return nil, nil
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/signin", `{"username":"alice"}`)
	err := h.Signin(c)
	if err == nil {
		t.Fatal("missing password should fail validation")
	}
	if domain.KindOf(err) != domain.KindValidation {
		t.Errorf("expected validation kind, got %v", domain.KindOf(err))
	}
}

func TestSigninPropagatesUnauthorized(t *testing.T) {
	svc := &stubAuthService{
		login: func(context.Context, string, string) (*ports.LoginResult, error) {
			return nil, domain.NewUnauthorized("invalid username or password")
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/signin", `{"username":"alice","password":"wrong"}`)
	err := h.Signin(c)
	if domain.KindOf(err) != domain.KindUnauthorized {
		t.Errorf("expected unauthorized kind, got %v", domain.KindOf(err))
	}
}

func TestSignup(t *testing.T) {
	var got ports.RegisterInput
	svc := &stubAuthService{
		register: func(_ context.Context, input ports.RegisterInput) error {
			got = input
			return nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","email":"a@b.com","password":"secret1","roles":["admin"]}`)
	if err := h.Signup(c); err != nil {
		t.Fatalf("Signup: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Errorf("status = %d, want 201", rec.Code)
	}
	if got.Username != "alice" || got.Email != "a@b.com" {
		t.Errorf("register input = %+v", got)
	}
	if len(got.Roles) != 1 || got.Roles[0] != domain.RoleAdmin {
		t.Errorf("roles = %v, want [ADMIN]", got.Roles)
	}

	// No tokens in the registration response.
	if strings.Contains(rec.Body.String(), "access_token") {
		t.Error("signup response must not contain tokens")
	}
}

func TestSignupValidation(t *testing.T) {
	svc := &stubAuthService{
		register: func(context.Context, ports.RegisterInput) error {
			t.Fatal("service must not be called on invalid payload")
			return nil
		},
	}
	h := NewAuthHandler(svc)

	tests := []struct {
		name string
		body string
	}{
		{"short username", `{"username":"ab","email":"a@b.com","password":"secret1"}`},
		{"bad email", `{"username":"alice","email":"nope","password":"secret1"}`},
		{"short password", `{"username":"alice","email":"a@b.com","password":"12345"}`},
		{"unknown role", `{"username":"alice","email":"a@b.com","password":"secret1","roles":["root"]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newJSONContext(t, http.MethodPost, "/api/auth/signup", tt.body)
			err := h.Signup(c)
			if err == nil {
				t.Fatal("expected validation error")
			}
			if domain.KindOf(err) != domain.KindValidation {
				t.Errorf("expected validation kind, got %v", domain.KindOf(err))
			}
		})
	}
}

func TestSignupConflict(t *testing.T) {
	svc := &stubAuthService{
		register: func(context.Context, ports.RegisterInput) error {
			return domain.NewConflict("username is already taken")
		},
	}
	h := NewAuthHandler(svc)

	c, _ := newJSONContext(t, http.MethodPost, "/api/auth/signup",
		`{"username":"alice","email":"a@b.com","password":"secret1"}`)
	err := h.Signup(c)
	if domain.KindOf(err) != domain.KindConflict {
		t.Errorf("expected conflict kind, got %v", domain.KindOf(err))
	}
}

func TestRefresh(t *testing.T) {
	svc := &stubAuthService{
		refresh: func(_ context.Context, refreshToken string) (*ports.RefreshResult, error) {
			if refreshToken != "the-refresh-token" {
				t.Errorf("refresh called with %q", refreshToken)
			}
			return &ports.RefreshResult{AccessToken: "new-access", RefreshToken: refreshToken}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodPost, "/api/auth/refreshtoken", "")
	c.Request().Header.Set("Authorization", "Bearer the-refresh-token")
	if err := h.Refresh(c); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	body := decodeBody(t, rec)
	data, _ := body["data"].(map[string]any)
	if data["access_token"] != "new-access" || data["refresh_token"] != "the-refresh-token" {
		t.Errorf("data = %v", data)
	}
}

func TestRefreshRequiresBearerHeader(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	for _, header := range []string{"", "Basic abc"} {
		c, _ := newJSONContext(t, http.MethodPost, "/api/auth/refreshtoken", "")
		if header != "" {
			c.Request().Header.Set("Authorization", header)
		}
		err := h.Refresh(c)
		if err == nil {
			t.Fatalf("header %q should fail", header)
		}
		if domain.KindOf(err) != domain.KindUnauthorized {
			t.Errorf("expected unauthorized kind, got %v", domain.KindOf(err))
		}
	}
}

func TestMe(t *testing.T) {
	svc := &stubAuthService{
		currentUser: func(_ context.Context, username string) (*ports.UserProfile, error) {
			if username != "alice" {
				t.Errorf("currentUser called with %q", username)
			}
			return &ports.UserProfile{ID: "1", Username: "alice", Email: "a@b.com", Active: true, Roles: []domain.Role{domain.RoleUser}}, nil
		},
	}
	h := NewAuthHandler(svc)

	c, rec := newJSONContext(t, http.MethodGet, "/api/auth/me", "")
	c.Set("username", "alice")
	if err := h.Me(c); err != nil {
		t.Fatalf("Me: %v", err)
	}

	body := decodeBody(t, rec)
	data, _ := body["data"].(map[string]any)
	if data["username"] != "alice" || data["email"] != "a@b.com" {
		t.Errorf("data = %v", data)
	}
	if _, leaked := data["password"]; leaked {
		t.Error("profile must not expose password fields")
	}
}

func TestMeWithoutClaims(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{})

	c, _ := newJSONContext(t, http.MethodGet, "/api/auth/me", "")
	err := h.Me(c)
	if err == nil {
		t.Fatal("expected error without auth claims")
	}
	if domain.KindOf(err) != domain.KindUnauthorized {
		t.Errorf("expected unauthorized kind, got %v", domain.KindOf(err))
	}
}
