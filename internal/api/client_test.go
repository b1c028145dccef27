package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"onna/internal/models"
)

func newTestClient(handler http.HandlerFunc) (*HTTPClient, *httptest.Server) {
	server := httptest.NewServer(handler)
	return NewClient(server.URL, 5*time.Second), server
}

func TestListClassesPassesFilters(t *testing.T) {
	var gotPath, gotQuery string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]models.Class{{ID: 1, Title: "Pottery"}})
	})
	defer server.Close()

	classes, err := client.ListClasses(context.Background(), "Busan", "Craft")
	if err != nil {
		t.Fatalf("ListClasses() error: %v", err)
	}
	if gotPath != "/api/classes" {
		t.Errorf("path = %q, want /api/classes", gotPath)
	}
	if gotQuery != "category=Craft&region=Busan" {
		t.Errorf("query = %q, want category=Craft&region=Busan", gotQuery)
	}
	if len(classes) != 1 || classes[0].Title != "Pottery" {
		t.Errorf("unexpected classes %+v", classes)
	}
}

func TestListClassesOmitsEmptyFilters(t *testing.T) {
	var gotQuery string
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		gotQuery = r.URL.RawQuery
		json.NewEncoder(w).Encode([]models.Class{})
	})
	defer server.Close()

	if _, err := client.ListClasses(context.Background(), "", ""); err != nil {
		t.Fatalf("ListClasses() error: %v", err)
	}
	if gotQuery != "" {
		t.Errorf("query = %q, want empty", gotQuery)
	}
}

func TestGetClass(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/classes/42" {
			t.Errorf("path = %q, want /api/classes/42", r.URL.Path)
		}
		json.NewEncoder(w).Encode(models.Class{ID: 42, Title: "Hanji Craft", StartTime: "14:00:00"})
	})
	defer server.Close()

	class, err := client.GetClass(context.Background(), 42)
	if err != nil {
		t.Fatalf("GetClass() error: %v", err)
	}
	if class.ID != 42 || class.Title != "Hanji Craft" {
		t.Errorf("unexpected class %+v", class)
	}
}

func TestMyReservations(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("userId"); got != "7" {
			t.Errorf("userId = %q, want 7", got)
		}
		json.NewEncoder(w).Encode([]models.Reservation{{ID: 1, ClassID: 10, UserID: 7, HeadCount: 2}})
	})
	defer server.Close()

	reservations, err := client.MyReservations(context.Background(), 7)
	if err != nil {
		t.Fatalf("MyReservations() error: %v", err)
	}
	if len(reservations) != 1 || reservations[0].ClassID != 10 {
		t.Errorf("unexpected reservations %+v", reservations)
	}
}

func TestCreateReservationPostsBody(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		var req CreateReservationRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if req.ClassID != 10 || req.UserID != 7 || req.HeadCount != 2 {
			t.Errorf("unexpected request %+v", req)
		}
		json.NewEncoder(w).Encode(models.Reservation{ID: 5, ClassID: req.ClassID, UserID: req.UserID, HeadCount: req.HeadCount})
	})
	defer server.Close()

	res, err := client.CreateReservation(context.Background(), CreateReservationRequest{ClassID: 10, UserID: 7, HeadCount: 2})
	if err != nil {
		t.Fatalf("CreateReservation() error: %v", err)
	}
	if res.ID != 5 {
		t.Errorf("reservation id = %d, want 5", res.ID)
	}
}

func TestLoginSurfacesAPIError(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad credentials", http.StatusUnauthorized)
	})
	defer server.Close()

	_, err := client.Login(context.Background(), LoginRequest{Email: "a@b.c", Password: "nope"})
	if err == nil {
		t.Fatal("expected an error for 401")
	}
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.Status != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", apiErr.Status)
	}
	if !IsStatus(err, http.StatusUnauthorized) {
		t.Error("IsStatus should match the 401")
	}
}

func TestSignupRoundTrip(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		var req SignupRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decoding request body: %v", err)
		}
		if req.Role != models.RoleSenior {
			t.Errorf("role = %q, want SENIOR", req.Role)
		}
		json.NewEncoder(w).Encode(models.SessionUser{ID: 3, Name: req.Name, Role: req.Role})
	})
	defer server.Close()

	user, err := client.Signup(context.Background(), SignupRequest{
		Name: "Soon-ja", Email: "s@example.com", Password: "secret123", Role: models.RoleSenior,
	})
	if err != nil {
		t.Fatalf("Signup() error: %v", err)
	}
	if user.ID != 3 || user.Name != "Soon-ja" {
		t.Errorf("unexpected user %+v", user)
	}
}

func TestDecodeFailureIsWrapped(t *testing.T) {
	client, server := newTestClient(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("not json"))
	})
	defer server.Close()

	if _, err := client.GetClass(context.Background(), 1); err == nil {
		t.Fatal("expected a decode error")
	}
}
