package review

import (
	"time"

	"hanzidrill/internal/models"
)

// DueDates returns the calendar dates on which a character learned on
// `learned` is due for review: learned + step for each ladder step.
func DueDates(learned time.Time, ladder Ladder) []time.Time {
	base := models.DateOnly(learned)
	dates := make([]time.Time, len(ladder))
	for i, step := range ladder {
		dates[i] = base.AddDate(0, 0, step)
	}
	return dates
}

// DueStep returns the ladder step whose review date equals today. The
// ladder is scanned in order and the first match wins; steps are strictly
// increasing so at most one matches. Characters without a learned date are
// never due.
func DueStep(c models.Character, today time.Time, ladder Ladder) (int, bool) {
	if !c.HasLearnedDate() {
		return 0, false
	}
	learned := models.DateOnly(*c.LearnedDate)
	day := models.DateOnly(today)
	for _, step := range ladder {
		if learned.AddDate(0, 0, step).Equal(day) {
			return step, true
		}
	}
	return 0, false
}

// IsDueOn reports whether the character is due for review on the given date
func IsDueOn(c models.Character, today time.Time, ladder Ladder) bool {
	_, ok := DueStep(c, today, ladder)
	return ok
}

// Due returns the subset of chars due for review today, in input order
func Due(chars []models.Character, today time.Time, ladder Ladder) []models.Character {
	var due []models.Character
	for _, c := range chars {
		if IsDueOn(c, today, ladder) {
			due = append(due, c)
		}
	}
	return due
}
