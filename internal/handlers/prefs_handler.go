package handlers

import (
	"net/http"

	"onna/internal/prefs"
)

// PrefsHandler flips the accessibility display flags. Each toggle rewrites
// both cookies and redirects back to the page the form was on, so the next
// render picks the flags up synchronously.
type PrefsHandler struct {
	base *Base
}

// NewPrefsHandler creates the preferences handler.
func NewPrefsHandler(base *Base) *PrefsHandler {
	return &PrefsHandler{base: base}
}

// ToggleHighContrast flips the high-contrast flag only.
func (h *PrefsHandler) ToggleHighContrast(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, prefs.Preferences.ToggleHighContrast)
}

// ToggleLargeText flips the large-text flag only.
func (h *PrefsHandler) ToggleLargeText(w http.ResponseWriter, r *http.Request) {
	h.toggle(w, r, prefs.Preferences.ToggleLargeText)
}

func (h *PrefsHandler) toggle(w http.ResponseWriter, r *http.Request, flip func(prefs.Preferences) prefs.Preferences) {
	p := flip(prefs.FromRequest(r))
	prefs.Write(w, r, p)
	http.Redirect(w, r, safeReturnPath(r.FormValue("return")), http.StatusSeeOther)
}
