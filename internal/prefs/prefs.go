// Package prefs holds the two accessibility display flags (high contrast and
// large text). The flags live in plain string-valued cookies so they survive
// reloads and are shared by every page, mirroring the localStorage contract
// of the browser client they replace.
package prefs

import (
	"net/http"

	"onna/internal/security"
)

// Cookie names double as the persisted storage keys. The stored value is the
// string "true" or "false", never a bare boolean.
const (
	HighContrastCookie = "highContrast"
	LargeTextCookie    = "largeText"
)

// Preferences is the decoded pair of display flags. Both flags are
// independent; both may be on at once.
type Preferences struct {
	HighContrast bool
	LargeText    bool
}

// ParseFlag is the strict persisted-flag parser: true iff the stored value is
// exactly "true". Absent, empty, "false" and garbage all read as false.
// Malformed values are never an error.
func ParseFlag(v string) bool {
	return v == "true"
}

func formatFlag(v bool) string {
	if v {
		return "true"
	}
	return "false"
}

// FromRequest reads both flags from the request cookies. A missing cookie
// reads as false.
func FromRequest(r *http.Request) Preferences {
	var p Preferences
	if c, err := r.Cookie(HighContrastCookie); err == nil {
		p.HighContrast = ParseFlag(c.Value)
	}
	if c, err := r.Cookie(LargeTextCookie); err == nil {
		p.LargeText = ParseFlag(c.Value)
	}
	return p
}

// Write persists both flags back to cookies in one go. Writing both on every
// change keeps the stored pair consistent with in-memory state even when only
// one flag flipped.
func Write(w http.ResponseWriter, r *http.Request, p Preferences) {
	http.SetCookie(w, security.CreatePreferenceCookie(r, HighContrastCookie, formatFlag(p.HighContrast)))
	http.SetCookie(w, security.CreatePreferenceCookie(r, LargeTextCookie, formatFlag(p.LargeText)))
}

// ToggleHighContrast flips the high-contrast flag only.
func (p Preferences) ToggleHighContrast() Preferences {
	p.HighContrast = !p.HighContrast
	return p
}

// ToggleLargeText flips the large-text flag only.
func (p Preferences) ToggleLargeText() Preferences {
	p.LargeText = !p.LargeText
	return p
}

// RootClasses returns the marker classes applied to the document root on
// every render. Styling keys off these, so they must always match the
// current flag state.
func (p Preferences) RootClasses() string {
	switch {
	case p.HighContrast && p.LargeText:
		return "high-contrast large-text"
	case p.HighContrast:
		return "high-contrast"
	case p.LargeText:
		return "large-text"
	}
	return ""
}
