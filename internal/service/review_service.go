package service

import (
	"errors"
	"fmt"
	"time"

	"hanzidrill/internal/models"
	"hanzidrill/internal/repository"
	"hanzidrill/internal/review"
)

var (
	ErrWrongSchema = errors.New("operation does not apply to this progress schema")
	ErrStepNotDue  = errors.New("ladder step is not due today for this character")
)

// ReviewService drives the daily review session and the plan dashboard.
// "Today" is always an explicit parameter so behavior is deterministic
// under test; callers normally pass time.Now().
type ReviewService struct {
	repo   *repository.CharacterRepository
	ladder review.Ladder
}

// NewReviewService creates a review service using the given ladder
func NewReviewService(repo *repository.CharacterRepository, ladder review.Ladder) *ReviewService {
	if len(ladder) == 0 {
		ladder = review.DefaultLadder
	}
	return &ReviewService{repo: repo, ladder: ladder}
}

// Ladder returns the review ladder in use
func (s *ReviewService) Ladder() review.Ladder {
	return s.ladder
}

// DueToday returns the characters due for review on the given date
func (s *ReviewService) DueToday(today time.Time) ([]models.Character, error) {
	chars, err := s.repo.List()
	if err != nil {
		return nil, err
	}
	return review.Due(chars, today, s.ladder), nil
}

// PlanForSet builds the review-plan table for one set
func (s *ReviewService) PlanForSet(setNr int, today time.Time) ([]review.PlanRow, error) {
	chars, err := s.repo.ListBySet(setNr)
	if err != nil {
		return nil, err
	}
	return review.BuildPlan(chars, today, s.ladder), nil
}

// RecordOutcome increments the correct or wrong tally of a character
func (s *ReviewService) RecordOutcome(id int64, correct bool) error {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c.Progress.Schema != models.SchemaTally {
		return ErrWrongSchema
	}
	return s.repo.IncrementTally(id, correct)
}

// SetDayReviewed records whether today's review of a character was
// completed. The step must be the ladder step actually due today;
// anything else is rejected without mutation.
func (s *ReviewService) SetDayReviewed(id int64, step int, reviewed bool, today time.Time) error {
	c, err := s.repo.GetByID(id)
	if err != nil {
		return err
	}
	if c.Progress.Schema != models.SchemaPerDay {
		return ErrWrongSchema
	}

	due, ok := review.DueStep(*c, today, s.ladder)
	if !ok || due != step {
		return fmt.Errorf("%w: step %d", ErrStepNotDue, step)
	}
	return s.repo.SetDayReviewed(id, step, reviewed)
}

// SetMarked flips the learner's attention flag. Unlike the per-day toggle
// this is never gated by the schedule.
func (s *ReviewService) SetMarked(id int64, marked bool) error {
	return s.repo.SetMarked(id, marked)
}

// FrequentlyWrong lists tally-schema characters failed at least minWrong
// times
func (s *ReviewService) FrequentlyWrong(minWrong int) ([]models.Character, error) {
	return s.repo.FrequentlyWrong(minWrong)
}
