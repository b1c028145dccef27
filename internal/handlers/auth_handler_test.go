package handlers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"onna/internal/api"
	"onna/internal/models"
	"onna/internal/session"
)

func postForm(path string, form url.Values) *http.Request {
	req := httptest.NewRequest("POST", path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return req
}

func TestLoginSuccessSetsSessionAndRedirects(t *testing.T) {
	base := newTestBase(t)
	backend := &stubClient{
		login: func(ctx context.Context, req api.LoginRequest) (*models.SessionUser, error) {
			if req.Email != "mina@example.com" {
				t.Errorf("expected submitted email forwarded, got %q", req.Email)
			}
			return &models.SessionUser{ID: 7, Name: "Mina", Role: models.RoleYouth}, nil
		},
	}
	handler := NewAuthHandler(base, backend)

	form := url.Values{"email": {"mina@example.com"}, "password": {"correct horse"}, "return": {"/classes/10"}}
	recorder := httptest.NewRecorder()
	handler.Login(recorder, postForm("/login", form))

	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected 303 redirect, got %d", recorder.Code)
	}
	if loc := recorder.Header().Get("Location"); loc != "/classes/10" {
		t.Errorf("expected redirect to return path, got %q", loc)
	}

	var sessionCookie *http.Cookie
	for _, c := range recorder.Result().Cookies() {
		if c.Name == session.CookieName {
			sessionCookie = c
		}
	}
	if sessionCookie == nil {
		t.Fatal("expected session cookie to be set")
	}
	user, err := base.Sessions.Parse(sessionCookie.Value)
	if err != nil {
		t.Fatalf("parsing issued session cookie: %v", err)
	}
	if user.ID != 7 || user.Role != models.RoleYouth {
		t.Errorf("session user = %+v, want id 7 role YOUTH", user)
	}
}

func TestLoginRejectedCredentialsRerendersForm(t *testing.T) {
	base := newTestBase(t)
	backend := &stubClient{
		login: func(ctx context.Context, req api.LoginRequest) (*models.SessionUser, error) {
			return nil, &api.APIError{Status: 401, Method: "POST", Path: "/api/auth/login"}
		},
	}
	handler := NewAuthHandler(base, backend)

	form := url.Values{"email": {"mina@example.com"}, "password": {"wrong"}}
	recorder := httptest.NewRecorder()
	handler.Login(recorder, postForm("/login", form))

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "Invalid email or password") {
		t.Errorf("expected credential error message, got %q", recorder.Body.String())
	}
	for _, c := range recorder.Result().Cookies() {
		if c.Name == session.CookieName {
			t.Error("no session cookie may be set on failed login")
		}
	}
}

func TestLoginMalformedRedirectCollapsesToLanding(t *testing.T) {
	base := newTestBase(t)
	backend := &stubClient{
		login: func(ctx context.Context, req api.LoginRequest) (*models.SessionUser, error) {
			return &models.SessionUser{ID: 7, Name: "Mina", Role: models.RoleYouth}, nil
		},
	}
	handler := NewAuthHandler(base, backend)

	form := url.Values{"email": {"mina@example.com"}, "password": {"correct horse"}, "return": {"//evil.example"}}
	recorder := httptest.NewRecorder()
	handler.Login(recorder, postForm("/login", form))

	if loc := recorder.Header().Get("Location"); loc != "/" {
		t.Errorf("expected off-site return path rejected, got redirect to %q", loc)
	}
}

func TestSignupValidationErrorRerendersForm(t *testing.T) {
	base := newTestBase(t)
	handler := NewAuthHandler(base, &stubClient{
		signup: func(ctx context.Context, req api.SignupRequest) (*models.SessionUser, error) {
			t.Fatal("backend must not be called on validation failure")
			return nil, nil
		},
	})

	form := url.Values{"name": {"Mina"}, "email": {"not-an-email"}, "password": {"long enough"}, "role": {"YOUTH"}}
	recorder := httptest.NewRecorder()
	handler.Signup(recorder, postForm("/signup", form))

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("expected 422, got %d", recorder.Code)
	}
	if !strings.Contains(recorder.Body.String(), "error=") {
		t.Errorf("expected validation error rendered, got %q", recorder.Body.String())
	}
}

func TestSignupSuccessRedirectsToLogin(t *testing.T) {
	base := newTestBase(t)
	backend := &stubClient{
		signup: func(ctx context.Context, req api.SignupRequest) (*models.SessionUser, error) {
			if req.Role != models.RoleSenior {
				t.Errorf("expected SENIOR role forwarded, got %q", req.Role)
			}
			return &models.SessionUser{ID: 3, Name: "Mr. Park", Role: models.RoleSenior}, nil
		},
	}
	handler := NewAuthHandler(base, backend)

	form := url.Values{"name": {"Mr. Park"}, "email": {"park@example.com"}, "password": {"long enough"}, "role": {"SENIOR"}}
	recorder := httptest.NewRecorder()
	handler.Signup(recorder, postForm("/signup", form))

	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", recorder.Code)
	}
	if loc := recorder.Header().Get("Location"); loc != "/login" {
		t.Errorf("expected redirect to /login, got %q", loc)
	}
}

func TestLogoutClearsSessionAndRedirectsToLanding(t *testing.T) {
	base := newTestBase(t)
	handler := NewAuthHandler(base, &stubClient{})

	req := httptest.NewRequest("POST", "/logout", nil)
	signIn(t, base, req, models.SessionUser{ID: 7, Name: "Mina", Role: models.RoleYouth})
	recorder := httptest.NewRecorder()
	handler.Logout(recorder, req)

	if recorder.Code != http.StatusSeeOther {
		t.Fatalf("expected 303, got %d", recorder.Code)
	}
	if loc := recorder.Header().Get("Location"); loc != "/" {
		t.Errorf("expected redirect to landing page, got %q", loc)
	}

	cleared := false
	for _, c := range recorder.Result().Cookies() {
		if c.Name == session.CookieName && c.MaxAge < 0 {
			cleared = true
		}
	}
	if !cleared {
		t.Error("expected session cookie to be expired")
	}
}
