package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"onna/internal/api"
	"onna/internal/models"
)

// DashboardHandler serves the instructor dashboard. Routing wraps it in
// RequireRole(SENIOR), so by the time it runs the visitor is a signed-in
// instructor.
type DashboardHandler struct {
	base    *Base
	backend api.Client
}

// NewDashboardHandler creates the dashboard handler.
func NewDashboardHandler(base *Base, backend api.Client) *DashboardHandler {
	return &DashboardHandler{base: base, backend: backend}
}

// Show renders the instructor's own classes.
func (h *DashboardHandler) Show(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Sign in required", "", nil)
		return
	}

	vm := DashboardViewModel{
		Page: h.base.NewPage(w, r, "My classes"),
	}

	classes, err := h.backend.ListClasses(r.Context(), "", "")
	if err != nil {
		log.Warn().Err(err).Msg("fetching dashboard classes")
		vm.FetchError = true
	} else {
		vm.Classes = ownClasses(classes, user.ID)
	}

	h.base.Render(w, "dashboard.tmpl", vm)
}

func ownClasses(classes []models.Class, hostID int64) []models.Class {
	own := make([]models.Class, 0, len(classes))
	for _, c := range classes {
		if c.HostID == hostID {
			own = append(own, c)
		}
	}
	return own
}
