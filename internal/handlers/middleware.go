package handlers

import (
	"context"
	"net"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"onna/internal/models"
	"onna/internal/security"
)

// ContextKey is a custom type for request context keys.
type ContextKey string

// UserContextKey carries the verified session user through the middleware
// chain to the handlers.
const UserContextKey ContextKey = "user"

// Middleware provides the access-control and operational wrappers applied to
// routes.
type Middleware struct {
	base    *Base
	limiter *security.RateLimiter
}

// NewMiddleware creates the middleware set.
func NewMiddleware(base *Base, limiter *security.RateLimiter) *Middleware {
	return &Middleware{base: base, limiter: limiter}
}

// GetUserFromContext retrieves the user placed in the context by RequireUser
// or RequireRole.
func GetUserFromContext(ctx context.Context) (*models.SessionUser, bool) {
	user, ok := ctx.Value(UserContextKey).(*models.SessionUser)
	return user, ok
}

// RequireUser admits only signed-in visitors. Anyone else gets an explicit
// sign-in-required page carrying a link back to the route they wanted, never
// a silent redirect.
func (m *Middleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := m.base.Sessions.Current(r)
		if user == nil {
			m.renderSignInGate(w, r)
			return
		}
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

// RequireRole admits only signed-in visitors with the given role. A signed-in
// visitor with the wrong role gets an explicit wrong-role page; a signed-out
// one gets the sign-in gate.
func (m *Middleware) RequireRole(role models.Role, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		user := m.base.Sessions.Current(r)
		if user == nil {
			m.renderSignInGate(w, r)
			return
		}
		if user.Role != role {
			vm := GateViewModel{
				Page:    m.base.NewPage(w, r, "Not available for this account"),
				Heading: "This page is for instructor accounts",
				Detail:  "You are signed in as " + user.Name + ", but this area is only available to instructors.",
			}
			if role == models.RoleYouth {
				vm.Heading = "This page is for learner accounts"
				vm.Detail = "You are signed in as " + user.Name + ", but this area is only available to learners."
			}
			w.WriteHeader(http.StatusForbidden)
			m.base.Render(w, "gate_role.tmpl", vm)
			return
		}
		ctx := context.WithValue(r.Context(), UserContextKey, user)
		next(w, r.WithContext(ctx))
	}
}

func (m *Middleware) renderSignInGate(w http.ResponseWriter, r *http.Request) {
	vm := GateViewModel{
		Page:     m.base.NewPage(w, r, "Sign in required"),
		Heading:  "Sign in to continue",
		Detail:   "You need an account to view this page.",
		ReturnTo: r.URL.RequestURI(),
	}
	w.WriteHeader(http.StatusUnauthorized)
	m.base.Render(w, "gate_signin.tmpl", vm)
}

// RateLimit throttles requests per client IP. Applied to the form posts that
// reach the backend API, not to plain page views.
func (m *Middleware) RateLimit(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ip := clientIP(r)
		if !m.limiter.Allow(ip) {
			log.Warn().Str("ip", ip).Str("path", r.URL.Path).Msg("rate limit exceeded")
			http.Error(w, "Too many requests", http.StatusTooManyRequests)
			return
		}
		next(w, r)
	}
}

// RequestLogger tags every request with an id and logs it on completion.
func (m *Middleware) RequestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		w.Header().Set("X-Request-ID", requestID)

		recorder := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(recorder, r)

		log.Info().
			Str("request_id", requestID).
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", recorder.status).
			Msg("request")
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func clientIP(r *http.Request) string {
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
