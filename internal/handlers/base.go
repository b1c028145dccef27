package handlers

import (
	"html/template"
	"net/http"
	"strings"

	"github.com/gorilla/csrf"
	"github.com/rs/zerolog/log"

	"onna/internal/flash"
	"onna/internal/prefs"
	"onna/internal/session"
)

// Base bundles what every page handler needs: the identity cookie manager,
// the flash store and the parsed template set.
type Base struct {
	Sessions  *session.Manager
	Flashes   *flash.Store
	Templates *template.Template
}

// NewBase creates the shared handler dependencies.
func NewBase(sessions *session.Manager, flashes *flash.Store, templates *template.Template) *Base {
	return &Base{Sessions: sessions, Flashes: flashes, Templates: templates}
}

// NewPage assembles the fields common to every template: the current user,
// display preferences, the derived large mode, the root marker classes and
// any pending flash messages.
func (b *Base) NewPage(w http.ResponseWriter, r *http.Request, title string) Page {
	p := prefs.FromRequest(r)
	user := b.Sessions.Current(r)
	return Page{
		Title:       title,
		User:        user,
		Prefs:       p,
		LargeMode:   session.IsLargeMode(user, p),
		RootClasses: p.RootClasses(),
		CSRFField:   csrf.TemplateField(r),
		Flashes:     b.Flashes.Pop(w, r),
		RequestPath: r.URL.RequestURI(),
	}
}

// Render executes one named template.
func (b *Base) Render(w http.ResponseWriter, name string, data interface{}) {
	if err := b.Templates.ExecuteTemplate(w, name, data); err != nil {
		log.Error().Err(err).Str("template", name).Msg("rendering template")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
	}
}

// safeReturnPath keeps post-action redirects on this site. Anything that is
// not a plain local path collapses to the landing route.
func safeReturnPath(path string) string {
	if strings.HasPrefix(path, "/") && !strings.HasPrefix(path, "//") {
		return path
	}
	return "/"
}
