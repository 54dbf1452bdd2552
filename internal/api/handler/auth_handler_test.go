package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/docuforge/docgen-api/internal/core/domain"
)

type stubAuthService struct {
	token     string
	user      *domain.User
	sess      *domain.Session
	err       error
	loggedOut []string
	logoutErr error
}

func (s *stubAuthService) Register(_ context.Context, email, _, name, role string) (*domain.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &domain.User{ID: "user_1", Email: email, Name: name, Role: role}, nil
}

func (s *stubAuthService) Login(_ context.Context, email, password string) (string, *domain.User, error) {
	if email == "" || password == "" {
		return "", nil, domain.ErrMissingCredentials
	}
	if s.err != nil {
		return "", nil, s.err
	}
	return s.token, s.user, nil
}

func (s *stubAuthService) LoginSession(_ context.Context, email, password, _ string) (*domain.Session, *domain.User, error) {
	if email == "" || password == "" {
		return nil, nil, domain.ErrMissingCredentials
	}
	if s.err != nil {
		return nil, nil, s.err
	}
	return s.sess, s.user, nil
}

func (s *stubAuthService) Logout(_ context.Context, tok string) error {
	if s.logoutErr != nil {
		return s.logoutErr
	}
	s.loggedOut = append(s.loggedOut, tok)
	return nil
}

func newEchoContext(t *testing.T, method, path, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func TestAuthHandler_Login_Success(t *testing.T) {
	svc := &stubAuthService{
		token: "signed-token",
		user:  &domain.User{ID: "user_1", Email: "alice@example.com", Role: domain.RoleClient},
	}
	h := NewAuthHandler(svc, nil)

	c, rec := newEchoContext(t, http.MethodPost, "/auth/login",
		`{"email":"alice@example.com","password":"pass"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp authResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Token != "signed-token" {
		t.Fatalf("unexpected token: %s", resp.Token)
	}
	if resp.User == nil || resp.User.Email != "alice@example.com" {
		t.Fatalf("unexpected user: %+v", resp.User)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, nil)

	c, rec := newEchoContext(t, http.MethodPost, "/auth/login", `{"email":"a@b.test"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("login: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Login_FailureShapes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{"unknown user", domain.ErrUserNotFound, http.StatusUnauthorized},
		{"wrong password", domain.ErrInvalidCredentials, http.StatusUnauthorized},
		{"storage down", domain.ErrStorageUnavailable, http.StatusServiceUnavailable},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h := NewAuthHandler(&stubAuthService{err: tc.err}, nil)
			c, rec := newEchoContext(t, http.MethodPost, "/auth/login",
				`{"email":"a@b.test","password":"pass"}`)
			if err := h.Login(c); err != nil {
				t.Fatalf("login: %v", err)
			}
			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
		})
	}
}

func TestAuthHandler_Login_UnknownAndWrongPasswordIndistinguishable(t *testing.T) {
	bodies := make([]string, 0, 2)
	for _, err := range []error{domain.ErrUserNotFound, domain.ErrInvalidCredentials} {
		h := NewAuthHandler(&stubAuthService{err: err}, nil)
		c, rec := newEchoContext(t, http.MethodPost, "/auth/login",
			`{"email":"a@b.test","password":"pass"}`)
		if err := h.Login(c); err != nil {
			t.Fatalf("login: %v", err)
		}
		bodies = append(bodies, rec.Body.String())
	}
	if bodies[0] != bodies[1] {
		t.Fatalf("unknown-user and wrong-password responses differ: %q vs %q", bodies[0], bodies[1])
	}
}

func TestAuthHandler_Register_Validation(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, nil)

	c, rec := newEchoContext(t, http.MethodPost, "/auth/register",
		`{"email":"not-an-email","password":"longenough","role":"client"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}

func TestAuthHandler_Register_Success(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, nil)

	c, rec := newEchoContext(t, http.MethodPost, "/auth/register",
		`{"email":"bob@example.com","password":"longenough","name":"Bob","role":"client"}`)
	if err := h.Register(c); err != nil {
		t.Fatalf("register: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
}

func TestAuthHandler_Me(t *testing.T) {
	h := NewAuthHandler(&stubAuthService{}, nil)

	c, rec := newEchoContext(t, http.MethodGet, "/auth/me", "")
	c.Set("user_id", "user_1")
	c.Set("email", "alice@example.com")
	c.Set("role", domain.RoleClient)

	if err := h.Me(c); err != nil {
		t.Fatalf("me: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "alice@example.com") {
		t.Fatalf("expected identity in response, got %s", rec.Body.String())
	}
}

func validSession() *domain.Session {
	now := time.Now()
	return &domain.Session{
		Token:     "opaque-token",
		UserID:    "user_1",
		Role:      domain.RoleAdmin,
		CreatedAt: now,
		ExpiresAt: now.Add(24 * time.Hour),
	}
}
