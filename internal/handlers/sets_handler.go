package handlers

import (
	"errors"
	"html/template"
	"log"
	"net/http"
	"strconv"
	"time"

	"hanzidrill/internal/models"
	"hanzidrill/internal/security"
	"hanzidrill/internal/service"
	"hanzidrill/internal/validation"
)

// SetsHandler manages sets and the characters in them
type SetsHandler struct {
	csrfHelper
	characters *service.CharacterService
	templates  *template.Template
}

// NewSetsHandler creates a new sets handler
func NewSetsHandler(characters *service.CharacterService, csrf *security.CSRFGenerator, templates *template.Template) *SetsHandler {
	return &SetsHandler{
		csrfHelper: csrfHelper{csrf: csrf},
		characters: characters,
		templates:  templates,
	}
}

// ShowSets lists the known sets
func (h *SetsHandler) ShowSets(w http.ResponseWriter, r *http.Request) {
	sets, err := h.characters.Sets()
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Error loading sets", err)
		return
	}

	data := SetsViewData{
		Title:     "Sets - HanziDrill",
		Sets:      sets,
		CSRFToken: h.csrfToken(r),
	}
	if err := h.templates.ExecuteTemplate(w, "sets.tmpl", data); err != nil {
		log.Printf("Error rendering sets template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

// ShowSet renders one set with its characters
func (h *SetsHandler) ShowSet(w http.ResponseWriter, r *http.Request) {
	setNr, err := strconv.Atoi(r.PathValue("setNr"))
	if err != nil {
		http.Error(w, "Invalid set number", http.StatusBadRequest)
		return
	}
	h.renderSet(w, r, setNr, "")
}

// AddCharacter handles the new-character form of a set
func (h *SetsHandler) AddCharacter(w http.ResponseWriter, r *http.Request) {
	setNr, ok := h.parseSetForm(w, r)
	if !ok {
		return
	}

	glyph := r.FormValue("glyph")
	pinyin := r.FormValue("pinyin")
	example := r.FormValue("example")
	schema := models.ProgressSchema(r.FormValue("schema"))

	var learned *time.Time
	if v := r.FormValue("learned_date"); v != "" {
		t, err := validation.ParseDate(v)
		if err != nil {
			h.renderSet(w, r, setNr, "Invalid learned date, use YYYY-MM-DD")
			return
		}
		learned = &t
	}

	if _, err := h.characters.AddCharacter(setNr, glyph, pinyin, example, learned, schema); err != nil {
		if errors.Is(err, validation.ErrGlyphRequired) || errors.Is(err, validation.ErrSetNrNegative) {
			h.renderSet(w, r, setNr, err.Error())
			return
		}
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Error adding character", err)
		return
	}

	h.redirectToSet(w, r, setNr)
}

// UpdateAnnotations edits a character's pinyin and example
func (h *SetsHandler) UpdateAnnotations(w http.ResponseWriter, r *http.Request) {
	setNr, ok := h.parseSetForm(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	if err := h.characters.UpdateAnnotations(id, r.FormValue("pinyin"), r.FormValue("example")); err != nil {
		h.respondSetError(w, "Error updating annotations", err)
		return
	}

	h.redirectToSet(w, r, setNr)
}

// UpdateSetDate moves the learned date of every character in the set
func (h *SetsHandler) UpdateSetDate(w http.ResponseWriter, r *http.Request) {
	setNr, ok := h.parseSetForm(w, r)
	if !ok {
		return
	}

	learned, err := validation.ParseDate(r.FormValue("learned_date"))
	if err != nil {
		h.renderSet(w, r, setNr, "Invalid learned date, use YYYY-MM-DD")
		return
	}

	if err := h.characters.UpdateSetDate(setNr, learned); err != nil {
		h.respondSetError(w, "Error updating set date", err)
		return
	}

	h.redirectToSet(w, r, setNr)
}

// DeleteCharacter removes one character from a set
func (h *SetsHandler) DeleteCharacter(w http.ResponseWriter, r *http.Request) {
	setNr, ok := h.parseSetForm(w, r)
	if !ok {
		return
	}

	id, err := strconv.ParseInt(r.FormValue("id"), 10, 64)
	if err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return
	}

	if err := h.characters.DeleteCharacter(id); err != nil {
		h.respondSetError(w, "Error deleting character", err)
		return
	}

	h.redirectToSet(w, r, setNr)
}

// DeleteSet removes an entire set
func (h *SetsHandler) DeleteSet(w http.ResponseWriter, r *http.Request) {
	setNr, ok := h.parseSetForm(w, r)
	if !ok {
		return
	}

	if err := h.characters.DeleteSet(setNr); err != nil {
		h.respondSetError(w, "Error deleting set", err)
		return
	}

	http.Redirect(w, r, "/sets", http.StatusSeeOther)
}

func (h *SetsHandler) parseSetForm(w http.ResponseWriter, r *http.Request) (int, bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, ErrInvalidFormData, http.StatusBadRequest)
		return 0, false
	}
	if !h.validCSRF(r) {
		http.Error(w, ErrUnauthorized, http.StatusForbidden)
		return 0, false
	}

	setNr, err := strconv.Atoi(r.FormValue("set_nr"))
	if err != nil {
		http.Error(w, "Invalid set number", http.StatusBadRequest)
		return 0, false
	}
	return setNr, true
}

func (h *SetsHandler) respondSetError(w http.ResponseWriter, logMsg string, err error) {
	if errors.Is(err, models.ErrNotFound) {
		respondWithError(w, http.StatusNotFound, ErrCharacterNotFound, logMsg, err)
		return
	}
	respondWithError(w, http.StatusInternalServerError, ErrInternalServerError, logMsg, err)
}

func (h *SetsHandler) renderSet(w http.ResponseWriter, r *http.Request, setNr int, errMsg string) {
	chars, err := h.characters.ListSet(setNr)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, ErrInternalServerError,
			"Error loading set", err)
		return
	}

	data := SetDetailViewData{
		Title:      "Set " + strconv.Itoa(setNr) + " - HanziDrill",
		SetNr:      setNr,
		Characters: chars,
		CSRFToken:  h.csrfToken(r),
		Error:      errMsg,
	}
	if err := h.templates.ExecuteTemplate(w, "set_detail.tmpl", data); err != nil {
		log.Printf("Error rendering set_detail template: %v", err)
		http.Error(w, ErrInternalServerError, http.StatusInternalServerError)
	}
}

func (h *SetsHandler) redirectToSet(w http.ResponseWriter, r *http.Request, setNr int) {
	http.Redirect(w, r, "/sets/"+strconv.Itoa(setNr), http.StatusSeeOther)
}
