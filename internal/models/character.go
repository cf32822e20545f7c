package models

import (
	"errors"
	"time"
)

// ErrNotFound is returned when an operation references a character or set
// that does not exist.
var ErrNotFound = errors.New("not found")

// ProgressSchema identifies which progress-tracking schema a character uses
type ProgressSchema string

const (
	// SchemaTally tracks cumulative correct/wrong counters
	SchemaTally ProgressSchema = "tally"
	// SchemaPerDay tracks one reviewed flag per ladder day plus a marked flag
	SchemaPerDay ProgressSchema = "perday"
)

// Valid reports whether s is a known progress schema
func (s ProgressSchema) Valid() bool {
	return s == SchemaTally || s == SchemaPerDay
}

// Progress is the review progress of a single character. The Schema
// discriminant decides which fields are meaningful: Correct/Wrong for the
// tally schema, Marked/ReviewedDays for the per-day schema. The unused
// fields stay at their zero values.
type Progress struct {
	Schema  ProgressSchema
	Correct int
	Wrong   int
	Marked  bool
	// ReviewedDays maps a ladder step (days since learning, step > 0) to
	// whether that day's review was completed
	ReviewedDays map[int]bool
}

// NewTallyProgress returns zeroed tally-schema progress
func NewTallyProgress() Progress {
	return Progress{Schema: SchemaTally}
}

// NewPerDayProgress returns zeroed per-day-schema progress
func NewPerDayProgress() Progress {
	return Progress{Schema: SchemaPerDay, ReviewedDays: make(map[int]bool)}
}

// Interacted reports whether the learner has recorded any outcome at all.
// Only meaningful for the tally schema.
func (p Progress) Interacted() bool {
	return p.Correct > 0 || p.Wrong > 0
}

// ReviewedOn reports whether the review for the given ladder step was
// completed. Only meaningful for the per-day schema.
func (p Progress) ReviewedOn(step int) bool {
	return p.ReviewedDays[step]
}

// Character represents one learned character
type Character struct {
	ID      int64
	SetNr   int
	Glyph   string
	Pinyin  string
	Example string
	// LearnedDate anchors all review-date computation. Nil means the
	// character is excluded from scheduling.
	LearnedDate *time.Time
	Progress    Progress
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// HasLearnedDate reports whether the character participates in scheduling
func (c Character) HasLearnedDate() bool {
	return c.LearnedDate != nil
}

// DateOnly truncates t to midnight UTC so calendar dates compare equal
// regardless of the wall-clock time they were recorded with
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// SameDate reports whether a and b fall on the same calendar date
func SameDate(a, b time.Time) bool {
	return DateOnly(a).Equal(DateOnly(b))
}
