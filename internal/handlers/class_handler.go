package handlers

import (
	"bytes"
	"html/template"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"
	"github.com/yuin/goldmark"

	"onna/internal/api"
	"onna/internal/catalog"
	"onna/internal/flash"
	"onna/internal/models"
	"onna/internal/reconcile"
	"onna/internal/validation"
)

// Category tabs on the landing page. The empty category means no filter.
var homeTabs = []CategoryTab{
	{Label: "All", Category: ""},
	{Label: "Cooking", Category: "Cooking"},
	{Label: "Craft", Category: "Craft"},
	{Label: "Art", Category: "Art"},
	{Label: "Other", Category: "Other"},
}

var searchRegions = []string{"Busan", "Ulsan", "Gyeongnam"}

var searchCategories = []string{"Cooking", "Craft", "Art", "Other"}

// ClassHandler serves the landing page, the catalog search page and the
// class detail page, and takes reservation posts.
type ClassHandler struct {
	base     *Base
	backend  api.Client
	snapshot *catalog.Snapshot
	markdown goldmark.Markdown
}

// NewClassHandler creates the class handler.
func NewClassHandler(base *Base, backend api.Client, snapshot *catalog.Snapshot) *ClassHandler {
	return &ClassHandler{
		base:     base,
		backend:  backend,
		snapshot: snapshot,
		markdown: goldmark.New(),
	}
}

// Home renders the landing page. Every visit refetches the catalog for the
// selected category tab; when the fetch fails the previously committed
// snapshot is shown with a staleness notice instead of a blank page.
func (h *ClassHandler) Home(w http.ResponseWriter, r *http.Request) {
	tab := r.URL.Query().Get("tab")
	if !validTab(tab) {
		tab = ""
	}

	vm := HomeViewModel{
		Page:      h.base.NewPage(w, r, "Onna"),
		ActiveTab: tab,
		Tabs:      homeTabs,
	}

	classes, err := h.snapshot.Refresh(r.Context(), tab)
	if err != nil {
		log.Warn().Err(err).Str("category", tab).Msg("refreshing class snapshot")
		vm.FetchError = true
		if cached, ok := h.snapshot.Current(); ok {
			vm.Classes = cached
		}
	} else {
		vm.Classes = classes
	}

	h.base.Render(w, "home.tmpl", vm)
}

func validTab(tab string) bool {
	for _, t := range homeTabs {
		if t.Category == tab {
			return true
		}
	}
	return false
}

// List renders the catalog search page. Region and category narrow the
// backend query; the free-text query filters the fetched page locally.
func (h *ClassHandler) List(w http.ResponseWriter, r *http.Request) {
	region := r.URL.Query().Get("region")
	category := r.URL.Query().Get("category")
	query := r.URL.Query().Get("q")

	vm := ClassListViewModel{
		Page:       h.base.NewPage(w, r, "Find a class"),
		Region:     region,
		Category:   category,
		Query:      query,
		Regions:    searchRegions,
		Categories: searchCategories,
	}

	classes, err := h.backend.ListClasses(r.Context(), region, category)
	if err != nil {
		log.Warn().Err(err).Msg("fetching class list")
		vm.FetchError = true
	} else {
		vm.Classes = filterClasses(classes, query)
	}

	h.base.Render(w, "classes.tmpl", vm)
}

// Detail renders one class. The description is authored as markdown on the
// backend and rendered here with raw HTML disabled.
func (h *ClassHandler) Detail(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil {
		http.NotFound(w, r)
		return
	}

	class, err := h.backend.GetClass(r.Context(), id)
	if err != nil {
		if api.IsStatus(err, http.StatusNotFound) {
			http.NotFound(w, r)
			return
		}
		respondWithError(w, http.StatusBadGateway, "Class details are temporarily unavailable", "fetching class", err)
		return
	}

	user := h.base.Sessions.Current(r)
	vm := ClassDetailViewModel{
		Page:          h.base.NewPage(w, r, class.Title),
		Class:         *class,
		Description:   h.renderDescription(class.Description),
		TimeLabel:     reconcile.TimeRangeLabel(class.Date, class.StartTime, class.EndTime),
		DurationHours: reconcile.DurationHours(class.StartTime, class.EndTime),
		CanReserve:    user != nil && user.Role == models.RoleYouth && class.SeatsLeft() > 0,
	}
	h.base.Render(w, "class_detail.tmpl", vm)
}

func (h *ClassHandler) renderDescription(src string) template.HTML {
	var buf bytes.Buffer
	if err := h.markdown.Convert([]byte(src), &buf); err != nil {
		log.Warn().Err(err).Msg("rendering class description")
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// Reserve books seats on a class for the signed-in learner and redirects to
// the reservations page.
func (h *ClassHandler) Reserve(w http.ResponseWriter, r *http.Request) {
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

	if err := r.ParseForm(); err != nil {
		respondWithError(w, http.StatusBadRequest, "Invalid form submission", "parsing reservation form", err)
		return
	}

	detailPath := "/classes/" + strconv.FormatInt(id, 10)

	headCount, err := validation.ParseHeadCount(r.FormValue("headCount"))
	if err != nil {
		h.base.Flashes.Add(w, r, flash.LevelError, err.Error())
		http.Redirect(w, r, detailPath, http.StatusSeeOther)
		return
	}

	_, err = h.backend.CreateReservation(r.Context(), api.CreateReservationRequest{
		ClassID:   id,
		UserID:    user.ID,
		HeadCount: headCount,
	})
	if err != nil {
		if api.IsStatus(err, http.StatusConflict) {
			h.base.Flashes.Add(w, r, flash.LevelError, "Not enough seats left on this class.")
		} else {
			log.Error().Err(err).Int64("class_id", id).Msg("creating reservation")
			h.base.Flashes.Add(w, r, flash.LevelError, "Reservation failed. Please try again.")
		}
		http.Redirect(w, r, detailPath, http.StatusSeeOther)
		return
	}

	h.base.Flashes.Add(w, r, flash.LevelSuccess, "Reservation confirmed.")
	http.Redirect(w, r, "/reservations", http.StatusSeeOther)
}
