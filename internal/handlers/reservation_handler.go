package handlers

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/rs/zerolog/log"

	"onna/internal/api"
	"onna/internal/models"
	"onna/internal/reconcile"
)

// ReservationHandler serves the my-reservations list and detail pages.
type ReservationHandler struct {
	base    *Base
	backend api.Client
}

// NewReservationHandler creates the reservation handler.
func NewReservationHandler(base *Base, backend api.Client) *ReservationHandler {
	return &ReservationHandler{base: base, backend: backend}
}

// List renders the signed-in learner's reservations joined against the class
// catalog. Both lists are fetched concurrently; if either fetch fails the
// page reports one overall error and shows no rows, so a half-fetched state
// never renders as spurious per-row problems.
func (h *ReservationHandler) List(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Sign in required", "", nil)
		return
	}

	var (
		wg           sync.WaitGroup
		classes      []models.Class
		reservations []models.Reservation
		classErr     error
		resErr       error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		classes, classErr = h.backend.ListClasses(r.Context(), "", "")
	}()
	go func() {
		defer wg.Done()
		reservations, resErr = h.backend.MyReservations(r.Context(), user.ID)
	}()
	wg.Wait()

	vm := ReservationListViewModel{
		Page: h.base.NewPage(w, r, "My reservations"),
	}

	if classErr != nil || resErr != nil {
		log.Warn().AnErr("classes", classErr).AnErr("reservations", resErr).Msg("fetching reservation page data")
		vm.FetchError = true
	} else {
		vm.Rows = reconcile.Reconcile(reservations, reconcile.BuildIndex(classes))
	}

	h.base.Render(w, "reservations.tmpl", vm)
}

// Detail renders one of the signed-in learner's reservations. The reservation
// is looked up in the user's own list, so one user can never view another's
// booking by guessing ids.
func (h *ReservationHandler) Detail(w http.ResponseWriter, r *http.Request) {
	user, ok := GetUserFromContext(r.Context())
	if !ok {
		respondWithError(w, http.StatusUnauthorized, "Sign in required", "", nil)
		return
	}

	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	reservations, err := h.backend.MyReservations(r.Context(), user.ID)
	if err != nil {
		respondWithError(w, http.StatusBadGateway, "Reservations are temporarily unavailable", "fetching reservations", err)
		return
	}

	var reservation *models.Reservation
	for i := range reservations {
		if reservations[i].ID == id {
			reservation = &reservations[i]
			break
		}
	}
	if reservation == nil {
		http.NotFound(w, r)
		return
	}

	vm := ReservationDetailViewModel{
		Page: h.base.NewPage(w, r, "Reservation"),
	}

	class, err := h.backend.GetClass(r.Context(), reservation.ClassID)
	if err != nil {
		// The booking exists but its class reference does not resolve;
		// render the same error marker the list page uses.
		log.Warn().Err(err).Int64("class_id", reservation.ClassID).Msg("resolving reservation class")
		vm.Row = reconcile.Row{Reservation: *reservation, MissingClassID: reservation.ClassID}
	} else {
		vm.Row = reconcile.Row{
			Reservation: *reservation,
			Class:       class,
			TimeLabel:   reconcile.TimeRangeLabel(class.Date, class.StartTime, class.EndTime),
		}
		vm.DurationHours = reconcile.DurationHours(class.StartTime, class.EndTime)
		vm.TotalPrice = reservation.TotalPrice(*class)
	}

	h.base.Render(w, "reservation_detail.tmpl", vm)
}
