package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"hanzidrill/internal/models"
	"hanzidrill/internal/review"
	"hanzidrill/internal/security"
	"hanzidrill/internal/service"
)

// FlashcardHandler drives the daily review session. Cards are shown one
// at a time from the set due today; the answer buttons depend on the
// card's progress schema.
type FlashcardHandler struct {
	csrfHelper
	reviews   *service.ReviewService
	templates *template.Template
}

// NewFlashcardHandler creates a new flashcard handler
func NewFlashcardHandler(reviews *service.ReviewService, csrf *security.CSRFGenerator, templates *template.Template) *FlashcardHandler {
	return &FlashcardHandler{
		csrfHelper: csrfHelper{csrf: csrf},
		reviews:    reviews,
		templates:  templates,
	}
}

// ShowSession renders the current card of today's review session
func (h *FlashcardHandler) ShowSession(w http.ResponseWriter, r *http.Request) {
	today := time.Now()

	due, err := h.reviews.DueToday(today)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Error loading due characters", err)
		return
	}

	index := 0
	if v := r.URL.Query().Get("index"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			index = n
		}
	}

	if index >= len(due) {
		data := FlashcardDoneViewData{
			Title: "Review - HanziDrill",
			Today: models.DateOnly(today),
		}
		if err := h.templates.ExecuteTemplate(w, "flashcard_done.tmpl", data); err != nil {
			log.Printf("Error rendering flashcard_done template: %v", err)
			http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
		}
		return
	}

	card := due[index]
	step, _ := review.DueStep(card, today, h.reviews.Ladder())

	data := FlashcardViewData{
		Title:        "Review - HanziDrill",
		Today:        models.DateOnly(today),
		Character:    &card,
		DueStep:      step,
		CurrentIndex: index,
		TotalDue:     len(due),
		CSRFToken:    h.csrfToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "flashcard.tmpl", data); err != nil {
		log.Printf("Error rendering flashcard template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// RecordOutcome handles the Right/Wrong buttons of a tally-schema card
func (h *FlashcardHandler) RecordOutcome(w http.ResponseWriter, r *http.Request) {
	id, index, ok := h.parseCardForm(w, r)
	if !ok {
		return
	}

	correct := r.FormValue("outcome") == "correct"
	if err := h.reviews.RecordOutcome(id, correct); err != nil {
		h.respondReviewError(w, "Error recording outcome", err)
		return
	}

	h.redirectToCard(w, r, index+1)
}

// SetDayReviewed handles the reviewed checkbox of a per-day-schema card
func (h *FlashcardHandler) SetDayReviewed(w http.ResponseWriter, r *http.Request) {
	id, index, ok := h.parseCardForm(w, r)
	if !ok {
		return
	}

	step, err := strconv.Atoi(r.FormValue("step"))
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}
	reviewed := r.FormValue("reviewed") == "true"

	if err := h.reviews.SetDayReviewed(id, step, reviewed, time.Now()); err != nil {
		h.respondReviewError(w, "Error setting day reviewed", err)
		return
	}

	h.redirectToCard(w, r, index+1)
}

// ToggleMarked flips a per-day card's attention flag and stays on the card
func (h *FlashcardHandler) ToggleMarked(w http.ResponseWriter, r *http.Request) {
	id, index, ok := h.parseCardForm(w, r)
	if !ok {
		return
	}

	marked := r.FormValue("marked") == "true"
	if err := h.reviews.SetMarked(id, marked); err != nil {
		h.respondReviewError(w, "Error toggling mark", err)
		return
	}

	h.redirectToCard(w, r, index)
}

func (h *FlashcardHandler) parseCardForm(w http.ResponseWriter, r *http.Request) (id int64, index int, ok bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return 0, 0, false
	}
	if !h.validCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return 0, 0, false
	}

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return 0, 0, false
	}
	index, err = strconv.Atoi(r.FormValue("index"))
	if err != nil || index < 0 {
		index = 0
	}
	return id, index, true
}

func (h *FlashcardHandler) respondReviewError(w http.ResponseWriter, logMsg string, err error) {
	switch {
	case errors.Is(err, models.ErrNotFound):
		respondWithError(w, http.StatusNotFound, ErrCharacterNotFound, logMsg, err)
	case errors.Is(err, service.ErrWrongSchema), errors.Is(err, service.ErrStepNotDue):
		respondWithError(w, http.StatusBadRequest, err.Error(), logMsg, err)
	default:
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
	}
}

func (h *FlashcardHandler) redirectToCard(w http.ResponseWriter, r *http.Request, index int) {
	http.Redirect(w, r, "/flashcards?index="+strconv.Itoa(index), http.StatusSeeOther)
}
