package handlers

import (
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"hanzidrill/internal/models"
	"hanzidrill/internal/security"
	"hanzidrill/internal/service"
)

// Characters failed at least this often show up in the trouble list
const frequentlyWrongThreshold = 2

// DashboardHandler renders the review-plan table and the trouble list
type DashboardHandler struct {
	csrfHelper
	reviews    *service.ReviewService
	characters *service.CharacterService
	templates  *template.Template
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(reviews *service.ReviewService, characters *service.CharacterService, csrf *security.CSRFGenerator, templates *template.Template) *DashboardHandler {
	return &DashboardHandler{
		csrfHelper: csrfHelper{csrf: csrf},
		reviews:    reviews,
		characters: characters,
		templates:  templates,
	}
}

// ShowDashboard renders the plan table for the selected set
func (h *DashboardHandler) ShowDashboard(w http.ResponseWriter, r *http.Request) {
	today := time.Now()

	sets, err := h.characters.Sets()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Error loading sets", err)
		return
	}

	selected := 0
	if len(sets) > 0 {
		selected = sets[0]
	}
	if v := r.URL.Query().Get("set"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			selected = n
		}
	}

	rows, err := h.reviews.PlanForSet(selected, today)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Error building review plan", err)
		return
	}

	due, err := h.reviews.DueToday(today)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Error loading due characters", err)
		return
	}

	wrong, err := h.reviews.FrequentlyWrong(frequentlyWrongThreshold)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Error loading frequently wrong characters", err)
		return
	}

	data := DashboardViewData{
		Title:           "Dashboard - HanziDrill",
		Today:           models.DateOnly(today),
		Sets:            sets,
		SelectedSet:     selected,
		ReviewDays:      h.reviews.Ladder().ReviewDays(),
		Rows:            planRowViews(rows),
		DueCount:        len(due),
		FrequentlyWrong: wrong,
		CSRFToken:       h.csrfToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "dashboard.tmpl", data); err != nil {
		log.Printf("Error rendering dashboard template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}
