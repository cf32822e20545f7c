package review

import (
	"time"

	"hanzidrill/internal/models"
)

// CellStatus is the displayed state of one review-day cell in the plan table
type CellStatus string

const (
	// StatusCompleted means the day's review counts as done
	StatusCompleted CellStatus = "completed"
	// StatusMissed means the review date has arrived or passed with no
	// recorded interaction
	StatusMissed CellStatus = "missed"
	// StatusNotYet means the day is not due yet, or carries no state to show
	StatusNotYet CellStatus = "not-yet"
)

// PlanCell is one review-day column of a plan row
type PlanCell struct {
	Step   int
	Date   time.Time
	Status CellStatus
}

// PlanRow is the review plan of a single character
type PlanRow struct {
	SetNr       int
	Glyph       string
	LearnedDate time.Time
	Correct     int
	Wrong       int
	Cells       []PlanCell
}

// BuildPlan produces one plan row per character, with a cell for every
// ladder step after day 0. Characters without a learned date are skipped.
//
// Tally schema: day 1 is completed as soon as any outcome was recorded.
// Later days are completed when their date has arrived and any outcome
// exists, so a single recorded interaction satisfies every past due day.
// That conflation is intentional and kept as-is.
//
// Per-day schema: a cell is completed only when its date is today and that
// day's reviewed flag is set; anything else shows as not-yet.
func BuildPlan(chars []models.Character, today time.Time, ladder Ladder) []PlanRow {
	day := models.DateOnly(today)
	var rows []PlanRow
	for _, c := range chars {
		if !c.HasLearnedDate() {
			continue
		}
		learned := models.DateOnly(*c.LearnedDate)
		row := PlanRow{
			SetNr:       c.SetNr,
			Glyph:       c.Glyph,
			LearnedDate: learned,
			Correct:     c.Progress.Correct,
			Wrong:       c.Progress.Wrong,
		}
		for _, step := range ladder.ReviewDays() {
			date := learned.AddDate(0, 0, step)
			cell := PlanCell{Step: step, Date: date}
			switch c.Progress.Schema {
			case models.SchemaPerDay:
				if date.Equal(day) && c.Progress.ReviewedOn(step) {
					cell.Status = StatusCompleted
				} else {
					cell.Status = StatusNotYet
				}
			default: // tally
				cell.Status = tallyStatus(c.Progress, step, date, day)
			}
			row.Cells = append(row.Cells, cell)
		}
		rows = append(rows, row)
	}
	return rows
}

func tallyStatus(p models.Progress, step int, date, today time.Time) CellStatus {
	if step == 1 {
		if p.Interacted() {
			return StatusCompleted
		}
		return StatusNotYet
	}
	if date.After(today) {
		return StatusNotYet
	}
	if p.Interacted() {
		return StatusCompleted
	}
	return StatusMissed
}
