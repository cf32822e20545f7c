package review

import (
	"testing"
	"time"

	"hanzidrill/internal/models"
)

func tallyChar(learned time.Time, correct, wrong int) models.Character {
	c := charLearnedOn(learned)
	c.Progress.Correct = correct
	c.Progress.Wrong = wrong
	return c
}

func cellForStep(t *testing.T, row PlanRow, step int) PlanCell {
	t.Helper()
	for _, cell := range row.Cells {
		if cell.Step == step {
			return cell
		}
	}
	t.Fatalf("No cell for step %d", step)
	return PlanCell{}
}

func TestBuildPlanSkipsCharactersWithoutLearnedDate(t *testing.T) {
	chars := []models.Character{
		{Glyph: "猫", Progress: models.NewTallyProgress()},
	}
	rows := BuildPlan(chars, date(2024, 1, 2), DefaultLadder)
	if len(rows) != 0 {
		t.Errorf("Expected no rows, got %d", len(rows))
	}
}

func TestBuildPlanTallyDayOne(t *testing.T) {
	learned := date(2024, 1, 1)
	today := date(2024, 1, 2)

	tests := []struct {
		name string
		c    models.Character
		want CellStatus
	}{
		{
			name: "no interaction yet",
			c:    tallyChar(learned, 0, 0),
			want: StatusNotYet,
		},
		{
			name: "correct outcome recorded",
			c:    tallyChar(learned, 1, 0),
			want: StatusCompleted,
		},
		{
			name: "wrong outcome recorded",
			c:    tallyChar(learned, 0, 1),
			want: StatusCompleted,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := BuildPlan([]models.Character{tt.c}, today, DefaultLadder)
			if len(rows) != 1 {
				t.Fatalf("Expected 1 row, got %d", len(rows))
			}
			cell := cellForStep(t, rows[0], 1)
			if cell.Status != tt.want {
				t.Errorf("Day 1 status = %s, want %s", cell.Status, tt.want)
			}
		})
	}
}

func TestBuildPlanTallyLaterDays(t *testing.T) {
	learned := date(2024, 1, 1)
	today := date(2024, 1, 10) // days 1, 2, 4, 7 have passed, 15+ are future

	t.Run("no interaction marks passed days missed", func(t *testing.T) {
		rows := BuildPlan([]models.Character{tallyChar(learned, 0, 0)}, today, DefaultLadder)
		row := rows[0]

		for _, step := range []int{2, 4, 7} {
			if got := cellForStep(t, row, step).Status; got != StatusMissed {
				t.Errorf("Day %d status = %s, want %s", step, got, StatusMissed)
			}
		}
		for _, step := range []int{15, 30, 90, 180} {
			if got := cellForStep(t, row, step).Status; got != StatusNotYet {
				t.Errorf("Day %d status = %s, want %s", step, got, StatusNotYet)
			}
		}
	})

	t.Run("one interaction completes every passed day", func(t *testing.T) {
		rows := BuildPlan([]models.Character{tallyChar(learned, 1, 0)}, today, DefaultLadder)
		row := rows[0]

		for _, step := range []int{1, 2, 4, 7} {
			if got := cellForStep(t, row, step).Status; got != StatusCompleted {
				t.Errorf("Day %d status = %s, want %s", step, got, StatusCompleted)
			}
		}
		for _, step := range []int{15, 30, 90, 180} {
			if got := cellForStep(t, row, step).Status; got != StatusNotYet {
				t.Errorf("Day %d status = %s, want %s", step, got, StatusNotYet)
			}
		}
	})
}

func TestBuildPlanTallyCellDueToday(t *testing.T) {
	learned := date(2024, 1, 1)
	today := date(2024, 1, 3) // day 2 is due today

	rows := BuildPlan([]models.Character{tallyChar(learned, 0, 0)}, today, DefaultLadder)
	if got := cellForStep(t, rows[0], 2).Status; got != StatusMissed {
		t.Errorf("Today's untouched cell status = %s, want %s", got, StatusMissed)
	}

	rows = BuildPlan([]models.Character{tallyChar(learned, 0, 1)}, today, DefaultLadder)
	if got := cellForStep(t, rows[0], 2).Status; got != StatusCompleted {
		t.Errorf("Today's answered cell status = %s, want %s", got, StatusCompleted)
	}
}

func TestBuildPlanPerDay(t *testing.T) {
	learned := date(2024, 1, 1)
	today := date(2024, 1, 3) // step 2 due today

	c := charLearnedOn(learned)
	c.Progress = models.NewPerDayProgress()
	c.Progress.ReviewedDays[1] = true // completed yesterday
	c.Progress.ReviewedDays[2] = true // completed today

	rows := BuildPlan([]models.Character{c}, today, DefaultLadder)
	row := rows[0]

	if got := cellForStep(t, row, 2).Status; got != StatusCompleted {
		t.Errorf("Today's reviewed cell status = %s, want %s", got, StatusCompleted)
	}
	// Only today's cell ever shows completed, past flags included
	if got := cellForStep(t, row, 1).Status; got != StatusNotYet {
		t.Errorf("Yesterday's cell status = %s, want %s", got, StatusNotYet)
	}
	if got := cellForStep(t, row, 4).Status; got != StatusNotYet {
		t.Errorf("Future cell status = %s, want %s", got, StatusNotYet)
	}
}

func TestBuildPlanPerDayNotReviewedToday(t *testing.T) {
	learned := date(2024, 1, 1)
	today := date(2024, 1, 3)

	c := charLearnedOn(learned)
	c.Progress = models.NewPerDayProgress()

	rows := BuildPlan([]models.Character{c}, today, DefaultLadder)
	if got := cellForStep(t, rows[0], 2).Status; got != StatusNotYet {
		t.Errorf("Today's unreviewed cell status = %s, want %s", got, StatusNotYet)
	}
}

func TestBuildPlanRowFields(t *testing.T) {
	learned := date(2024, 1, 1)
	c := tallyChar(learned, 3, 2)
	c.SetNr = 5

	rows := BuildPlan([]models.Character{c}, date(2024, 1, 2), DefaultLadder)
	row := rows[0]

	if row.SetNr != 5 || row.Glyph != "爱" {
		t.Errorf("Unexpected row identity: set=%d glyph=%q", row.SetNr, row.Glyph)
	}
	if row.Correct != 3 || row.Wrong != 2 {
		t.Errorf("Unexpected tallies: correct=%d wrong=%d", row.Correct, row.Wrong)
	}
	if !row.LearnedDate.Equal(learned) {
		t.Errorf("LearnedDate = %v, want %v", row.LearnedDate, learned)
	}
	if len(row.Cells) != len(DefaultLadder.ReviewDays()) {
		t.Errorf("Expected %d cells, got %d", len(DefaultLadder.ReviewDays()), len(row.Cells))
	}
}
