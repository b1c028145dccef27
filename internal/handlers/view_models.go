package handlers

import (
	"html/template"

	"onna/internal/flash"
	"onna/internal/models"
	"onna/internal/prefs"
	"onna/internal/reconcile"
)

// Page carries the fields every template renders: title, the signed-in user
// (nil when signed out), the display flags and the marker classes derived
// from them, plus pending flash messages and the CSRF field for forms.
type Page struct {
	Title       string
	User        *models.SessionUser
	Prefs       prefs.Preferences
	LargeMode   bool
	RootClasses string
	CSRFField   template.HTML
	Flashes     []flash.Message
	RequestPath string
}

// HomeViewModel backs the landing page.
type HomeViewModel struct {
	Page
	ActiveTab  string
	Tabs       []CategoryTab
	Classes    []models.Class
	FetchError bool
}

// CategoryTab is one entry in the landing page category strip.
type CategoryTab struct {
	Label    string
	Category string
}

// ClassListViewModel backs the catalog search page.
type ClassListViewModel struct {
	Page
	Region     string
	Category   string
	Query      string
	Regions    []string
	Categories []string
	Classes    []models.Class
	FetchError bool
}

// ClassDetailViewModel backs the single-class page.
type ClassDetailViewModel struct {
	Page
	Class         models.Class
	Description   template.HTML
	TimeLabel     string
	DurationHours float64
	CanReserve    bool
}

// LoginViewModel backs the sign-in form.
type LoginViewModel struct {
	Page
	Email    string
	ReturnTo string
	Error    string
}

// SignupViewModel backs the registration form.
type SignupViewModel struct {
	Page
	Name  string
	Email string
	Role  string
	Error string
}

// ReservationListViewModel backs the my-reservations page. FetchError is the
// page-level failure state: when either backend fetch failed, no rows are
// shown at all rather than a partially joined list.
type ReservationListViewModel struct {
	Page
	Rows       []reconcile.Row
	FetchError bool
}

// ReservationDetailViewModel backs the single-reservation page.
type ReservationDetailViewModel struct {
	Page
	Row           reconcile.Row
	DurationHours float64
	TotalPrice    int
}

// DashboardViewModel backs the instructor dashboard.
type DashboardViewModel struct {
	Page
	Classes    []models.Class
	FetchError bool
}

// GateViewModel backs the sign-in-required and wrong-role pages. These render
// an explicit explanation instead of silently redirecting.
type GateViewModel struct {
	Page
	Heading  string
	Detail   string
	ReturnTo string
}
