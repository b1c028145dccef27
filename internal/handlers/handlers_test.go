package handlers

import (
	"context"
	"html/template"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"onna/internal/api"
	"onna/internal/flash"
	"onna/internal/models"
	"onna/internal/session"
)

// Minimal template set covering every page name the handlers render. Each
// stub emits just enough for the tests to assert on.
const testTemplates = `
{{define "home.tmpl"}}home tab={{.ActiveTab}} n={{len .Classes}}{{if .FetchError}} fetch-error{{end}}{{end}}
{{define "classes.tmpl"}}classes n={{len .Classes}}{{if .FetchError}} fetch-error{{end}}{{end}}
{{define "class_detail.tmpl"}}detail {{.Class.Title}} hours={{.DurationHours}}{{if .CanReserve}} can-reserve{{end}}{{end}}
{{define "login.tmpl"}}login{{if .Error}} error={{.Error}}{{end}}{{end}}
{{define "signup.tmpl"}}signup{{if .Error}} error={{.Error}}{{end}}{{end}}
{{define "reservations.tmpl"}}reservations{{if .FetchError}} fetch-error{{end}}{{range .Rows}} row={{.Reservation.ID}}{{if .Missing}} missing={{.MissingClassID}}{{else}} class={{.Class.Title}}{{end}}{{end}}{{end}}
{{define "reservation_detail.tmpl"}}reservation {{.Row.Reservation.ID}}{{if .Row.Missing}} missing={{.Row.MissingClassID}}{{else}} total={{.TotalPrice}}{{end}}{{end}}
{{define "dashboard.tmpl"}}dashboard n={{len .Classes}}{{if .FetchError}} fetch-error{{end}}{{end}}
{{define "gate_signin.tmpl"}}gate-signin return={{.ReturnTo}}{{end}}
{{define "gate_role.tmpl"}}gate-role {{.Heading}}{{end}}
`

func newTestBase(t *testing.T) *Base {
	t.Helper()
	tmpl := template.Must(template.New("").Parse(testTemplates))
	sessions := session.NewManager("test-secret", time.Hour)
	flashes := flash.NewStore("test-secret")
	return NewBase(sessions, flashes, tmpl)
}

// signIn issues a session cookie for u and attaches it to the request.
func signIn(t *testing.T, b *Base, r *http.Request, u models.SessionUser) {
	t.Helper()
	recorder := httptest.NewRecorder()
	if err := b.Sessions.SignIn(recorder, r, u); err != nil {
		t.Fatalf("signing in test user: %v", err)
	}
	for _, c := range recorder.Result().Cookies() {
		r.AddCookie(c)
	}
}

// withUser places u directly in the request context the way RequireUser does.
func withUser(r *http.Request, u *models.SessionUser) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), UserContextKey, u))
}

// stubClient implements api.Client with per-call function fields. Unset calls
// fail the test by returning a sentinel error.
type stubClient struct {
	listClasses       func(ctx context.Context, region, category string) ([]models.Class, error)
	getClass          func(ctx context.Context, id int64) (*models.Class, error)
	myReservations    func(ctx context.Context, userID int64) ([]models.Reservation, error)
	createReservation func(ctx context.Context, req api.CreateReservationRequest) (*models.Reservation, error)
	login             func(ctx context.Context, req api.LoginRequest) (*models.SessionUser, error)
	signup            func(ctx context.Context, req api.SignupRequest) (*models.SessionUser, error)
}

func (s *stubClient) ListClasses(ctx context.Context, region, category string) ([]models.Class, error) {
	if s.listClasses == nil {
		return nil, &api.APIError{Status: 500, Method: "GET", Path: "/api/classes"}
	}
	return s.listClasses(ctx, region, category)
}

func (s *stubClient) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	if s.getClass == nil {
		return nil, &api.APIError{Status: 500, Method: "GET", Path: "/api/classes"}
	}
	return s.getClass(ctx, id)
}

func (s *stubClient) MyReservations(ctx context.Context, userID int64) ([]models.Reservation, error) {
	if s.myReservations == nil {
		return nil, &api.APIError{Status: 500, Method: "GET", Path: "/api/reservations/my"}
	}
	return s.myReservations(ctx, userID)
}

func (s *stubClient) CreateReservation(ctx context.Context, req api.CreateReservationRequest) (*models.Reservation, error) {
	if s.createReservation == nil {
		return nil, &api.APIError{Status: 500, Method: "POST", Path: "/api/reservations"}
	}
	return s.createReservation(ctx, req)
}

func (s *stubClient) Login(ctx context.Context, req api.LoginRequest) (*models.SessionUser, error) {
	if s.login == nil {
		return nil, &api.APIError{Status: 500, Method: "POST", Path: "/api/auth/login"}
	}
	return s.login(ctx, req)
}

func (s *stubClient) Signup(ctx context.Context, req api.SignupRequest) (*models.SessionUser, error) {
	if s.signup == nil {
		return nil, &api.APIError{Status: 500, Method: "POST", Path: "/api/auth/signup"}
	}
	return s.signup(ctx, req)
}
