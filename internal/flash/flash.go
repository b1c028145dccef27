// Package flash carries one-shot notifications (reservation confirmed, login
// failed, ...) across the redirect that follows a form post. Messages ride in
// a signed session cookie and are cleared on first read.
package flash

import (
	"encoding/gob"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/rs/zerolog/log"
)

const sessionName = "onna_flash"

// Levels steer the styling of the rendered notification.
const (
	LevelSuccess = "success"
	LevelError   = "error"
)

// Message is one pending notification.
type Message struct {
	Level string
	Text  string
}

func init() {
	gob.Register(Message{})
}

// Store wraps a cookie-backed session store dedicated to flash messages.
type Store struct {
	store *sessions.CookieStore
}

// NewStore creates a flash store signing its cookie with secret.
func NewStore(secret string) *Store {
	store := sessions.NewCookieStore([]byte(secret))
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.SameSite = http.SameSiteLaxMode
	return &Store{store: store}
}

// Add queues a notification for the next rendered page.
func (s *Store) Add(w http.ResponseWriter, r *http.Request, level, text string) {
	session, _ := s.store.Get(r, sessionName)
	session.AddFlash(Message{Level: level, Text: text})
	if err := session.Save(r, w); err != nil {
		log.Warn().Err(err).Msg("saving flash message")
	}
}

// Pop returns and clears all pending notifications.
func (s *Store) Pop(w http.ResponseWriter, r *http.Request) []Message {
	session, _ := s.store.Get(r, sessionName)
	raw := session.Flashes()
	if len(raw) == 0 {
		return nil
	}
	if err := session.Save(r, w); err != nil {
		log.Warn().Err(err).Msg("clearing flash messages")
	}

	messages := make([]Message, 0, len(raw))
	for _, f := range raw {
		if m, ok := f.(Message); ok {
			messages = append(messages, m)
		}
	}
	return messages
}
