// Package session keeps track of the signed-in user. The identity lives in a
// single HMAC-signed JWT cookie; every page re-reads it on every request, so
// signing out simply clears the cookie and sends the browser back to the
// landing page.
package session

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"onna/internal/models"
	"onna/internal/prefs"
	"onna/internal/security"
)

// CookieName is the persisted-record key for the signed-in user.
const CookieName = "onna_user"

var errBadRole = errors.New("session: unknown role in token")

// Manager issues and verifies identity cookies.
type Manager struct {
	secret []byte
	ttl    time.Duration
}

// NewManager creates a manager signing tokens with secret, valid for ttl.
func NewManager(secret string, ttl time.Duration) *Manager {
	return &Manager{secret: []byte(secret), ttl: ttl}
}

type userClaims struct {
	Name string      `json:"name"`
	Role models.Role `json:"role"`
	jwt.RegisteredClaims
}

// Issue returns a signed token carrying the user's id, name and role.
func (m *Manager) Issue(u models.SessionUser) (string, error) {
	now := time.Now()
	claims := userClaims{
		Name: u.Name,
		Role: u.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(u.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
}

// Parse verifies a token and reconstructs the stored user.
func (m *Manager) Parse(token string) (*models.SessionUser, error) {
	claims := &userClaims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, err
	}
	if !claims.Role.Valid() {
		return nil, errBadRole
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return nil, err
	}
	return &models.SessionUser{ID: id, Name: claims.Name, Role: claims.Role}, nil
}

// Current returns the signed-in user, or nil when there is none. A cookie
// that fails to parse is treated exactly like an absent one: logged for
// diagnostics, never surfaced.
func (m *Manager) Current(r *http.Request) *models.SessionUser {
	cookie, err := r.Cookie(CookieName)
	if err != nil {
		return nil
	}
	user, err := m.Parse(cookie.Value)
	if err != nil {
		log.Debug().Err(err).Msg("discarding unparseable session cookie")
		return nil
	}
	return user
}

// SignIn persists the user record in the identity cookie.
func (m *Manager) SignIn(w http.ResponseWriter, r *http.Request, u models.SessionUser) error {
	token, err := m.Issue(u)
	if err != nil {
		return err
	}
	http.SetCookie(w, security.CreateSessionCookie(r, CookieName, token, time.Now().Add(m.ttl)))
	return nil
}

// SignOut clears the persisted record. Callers follow up with a redirect to
// the landing route so every view re-reads the signed-out state.
func (m *Manager) SignOut(w http.ResponseWriter, r *http.Request) {
	http.SetCookie(w, security.CreateDeleteCookie(r, CookieName))
}

// IsLargeMode reports whether pages should render the enlarged presentation
// variant: on for every senior and for anyone with the large-text flag set.
func IsLargeMode(u *models.SessionUser, p prefs.Preferences) bool {
	return u.IsSenior() || p.LargeText
}
