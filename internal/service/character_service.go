package service

import (
	"fmt"
	"strings"
	"time"

	"hanzidrill/internal/models"
	"hanzidrill/internal/repository"
	"hanzidrill/internal/validation"
)

// CharacterService handles character and set maintenance
type CharacterService struct {
	repo *repository.CharacterRepository
}

// NewCharacterService creates a new character service
func NewCharacterService(repo *repository.CharacterRepository) *CharacterService {
	return &CharacterService{repo: repo}
}

// AddCharacter creates a new character in the given set. The glyph is
// required; a rejected create leaves the collection untouched.
func (s *CharacterService) AddCharacter(setNr int, glyph, pinyin, example string, learned *time.Time, schema models.ProgressSchema) (*models.Character, error) {
	if err := validation.ValidateGlyph(glyph); err != nil {
		return nil, err
	}
	if err := validation.ValidateSetNr(setNr); err != nil {
		return nil, err
	}
	if !schema.Valid() {
		schema = models.SchemaTally
	}

	progress := models.NewTallyProgress()
	if schema == models.SchemaPerDay {
		progress = models.NewPerDayProgress()
	}

	c := &models.Character{
		SetNr:    setNr,
		Glyph:    strings.TrimSpace(glyph),
		Pinyin:   strings.TrimSpace(pinyin),
		Example:  strings.TrimSpace(example),
		Progress: progress,
	}
	if learned != nil {
		d := models.DateOnly(*learned)
		c.LearnedDate = &d
	}

	if err := s.repo.Create(c); err != nil {
		return nil, fmt.Errorf("failed to add character: %w", err)
	}
	return c, nil
}

// GetCharacter fetches a single character
func (s *CharacterService) GetCharacter(id int64) (*models.Character, error) {
	return s.repo.GetByID(id)
}

// ListAll returns the whole collection
func (s *CharacterService) ListAll() ([]models.Character, error) {
	return s.repo.List()
}

// ListSet returns the characters of one set
func (s *CharacterService) ListSet(setNr int) ([]models.Character, error) {
	return s.repo.ListBySet(setNr)
}

// Sets returns the known set numbers
func (s *CharacterService) Sets() ([]int, error) {
	return s.repo.Sets()
}

// UpdateAnnotations edits a character's pinyin and example text
func (s *CharacterService) UpdateAnnotations(id int64, pinyin, example string) error {
	return s.repo.UpdateAnnotations(id, strings.TrimSpace(pinyin), strings.TrimSpace(example))
}

// UpdateSetDate moves the learned date of every character in a set,
// shifting the whole review schedule with it
func (s *CharacterService) UpdateSetDate(setNr int, learned time.Time) error {
	return s.repo.UpdateSetLearnedDate(setNr, learned)
}

// DeleteCharacter removes a single character
func (s *CharacterService) DeleteCharacter(id int64) error {
	return s.repo.Delete(id)
}

// DeleteSet removes every character in a set
func (s *CharacterService) DeleteSet(setNr int) error {
	return s.repo.DeleteSet(setNr)
}
