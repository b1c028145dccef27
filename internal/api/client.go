// Package api is the typed client for the backend REST service that owns all
// marketplace data. The front end holds no database; everything renders from
// these calls.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"onna/internal/models"
)

// Client is the surface the handlers depend on. Kept as an interface so page
// tests can substitute a stub backend.
type Client interface {
	ListClasses(ctx context.Context, region, category string) ([]models.Class, error)
	GetClass(ctx context.Context, id int64) (*models.Class, error)
	MyReservations(ctx context.Context, userID int64) ([]models.Reservation, error)
	CreateReservation(ctx context.Context, req CreateReservationRequest) (*models.Reservation, error)
	Login(ctx context.Context, req LoginRequest) (*models.SessionUser, error)
	Signup(ctx context.Context, req SignupRequest) (*models.SessionUser, error)
}

// CreateReservationRequest is the body of POST /api/reservations.
type CreateReservationRequest struct {
	ClassID   int64 `json:"classId"`
	UserID    int64 `json:"userId"`
	HeadCount int   `json:"headCount"`
}

// LoginRequest is the body of POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// SignupRequest is the body of POST /api/auth/signup.
type SignupRequest struct {
	Name     string      `json:"name"`
	Email    string      `json:"email"`
	Password string      `json:"password"`
	Role     models.Role `json:"role"`
}

// APIError is a non-2xx response from the backend.
type APIError struct {
	Status int
	Method string
	Path   string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("backend %s %s returned %d", e.Method, e.Path, e.Status)
}

// IsStatus reports whether err is an APIError with the given status code.
func IsStatus(err error, status int) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == status
}

// HTTPClient talks to the backend over plain JSON/HTTP.
type HTTPClient struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a client for the backend at baseURL.
func NewClient(baseURL string, timeout time.Duration) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListClasses fetches the catalog, optionally narrowed by region and
// category. Empty filter values are omitted from the query.
func (c *HTTPClient) ListClasses(ctx context.Context, region, category string) ([]models.Class, error) {
	query := url.Values{}
	if region != "" {
		query.Set("region", region)
	}
	if category != "" {
		query.Set("category", category)
	}

	endpoint := "/api/classes"
	if qs := query.Encode(); qs != "" {
		endpoint += "?" + qs
	}

	var out []models.Class
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// GetClass fetches one class by id.
func (c *HTTPClient) GetClass(ctx context.Context, id int64) (*models.Class, error) {
	out := &models.Class{}
	if err := c.doJSON(ctx, http.MethodGet, "/api/classes/"+strconv.FormatInt(id, 10), nil, out); err != nil {
		return nil, err
	}
	return out, nil
}

// MyReservations fetches the reservations of one user.
func (c *HTTPClient) MyReservations(ctx context.Context, userID int64) ([]models.Reservation, error) {
	endpoint := "/api/reservations/my?userId=" + strconv.FormatInt(userID, 10)
	var out []models.Reservation
	if err := c.doJSON(ctx, http.MethodGet, endpoint, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateReservation books seats on a class.
func (c *HTTPClient) CreateReservation(ctx context.Context, req CreateReservationRequest) (*models.Reservation, error) {
	out := &models.Reservation{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/reservations", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Login exchanges credentials for the user's identity record.
func (c *HTTPClient) Login(ctx context.Context, req LoginRequest) (*models.SessionUser, error) {
	out := &models.SessionUser{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/login", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// Signup registers a new account and returns its identity record.
func (c *HTTPClient) Signup(ctx context.Context, req SignupRequest) (*models.SessionUser, error) {
	out := &models.SessionUser{}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/signup", req, out); err != nil {
		return nil, err
	}
	return out, nil
}

// doJSON issues one request and decodes the JSON response into out. Non-2xx
// statuses become an *APIError.
func (c *HTTPClient) doJSON(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("encoding %s %s body: %w", method, endpoint, err)
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reqBody)
	if err != nil {
		return fmt.Errorf("building %s %s: %w", method, endpoint, err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("calling %s %s: %w", method, endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &APIError{Status: resp.StatusCode, Method: method, Path: strings.SplitN(endpoint, "?", 2)[0]}
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decoding %s %s response: %w", method, endpoint, err)
	}
	return nil
}
