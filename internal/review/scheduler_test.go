package review

import (
	"testing"
	"time"

	"hanzidrill/internal/models"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func charLearnedOn(learned time.Time) models.Character {
	d := models.DateOnly(learned)
	return models.Character{
		Glyph:       "爱",
		LearnedDate: &d,
		Progress:    models.NewTallyProgress(),
	}
}

func TestDueDates(t *testing.T) {
	learned := date(2024, 1, 1)
	dates := DueDates(learned, DefaultLadder)

	if len(dates) != len(DefaultLadder) {
		t.Fatalf("Expected %d dates, got %d", len(DefaultLadder), len(dates))
	}
	for i, step := range DefaultLadder {
		want := learned.AddDate(0, 0, step)
		if !dates[i].Equal(want) {
			t.Errorf("Step %d: expected %v, got %v", step, want, dates[i])
		}
	}
}

func TestDueStep(t *testing.T) {
	c := charLearnedOn(date(2024, 1, 1))

	tests := []struct {
		name     string
		today    time.Time
		wantStep int
		wantDue  bool
	}{
		{
			name:     "learning day itself",
			today:    date(2024, 1, 1),
			wantStep: 0,
			wantDue:  true,
		},
		{
			name:     "one day later",
			today:    date(2024, 1, 2),
			wantStep: 1,
			wantDue:  true,
		},
		{
			name:     "two days later",
			today:    date(2024, 1, 3),
			wantStep: 2,
			wantDue:  true,
		},
		{
			name:    "three days later is not on the ladder",
			today:   date(2024, 1, 4),
			wantDue: false,
		},
		{
			name:     "seven days later",
			today:    date(2024, 1, 8),
			wantStep: 7,
			wantDue:  true,
		},
		{
			name:     "180 days later",
			today:    date(2024, 1, 1).AddDate(0, 0, 180),
			wantStep: 180,
			wantDue:  true,
		},
		{
			name:    "before the learned date",
			today:   date(2023, 12, 31),
			wantDue: false,
		},
		{
			name:    "long after the ladder ends",
			today:   date(2024, 1, 1).AddDate(0, 0, 181),
			wantDue: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			step, due := DueStep(c, tt.today, DefaultLadder)
			if due != tt.wantDue {
				t.Fatalf("DueStep() due = %v, want %v", due, tt.wantDue)
			}
			if due && step != tt.wantStep {
				t.Errorf("DueStep() step = %d, want %d", step, tt.wantStep)
			}
		})
	}
}

func TestDueStepIgnoresTimeOfDay(t *testing.T) {
	c := charLearnedOn(time.Date(2024, 1, 1, 23, 59, 0, 0, time.UTC))
	today := time.Date(2024, 1, 2, 0, 1, 0, 0, time.UTC)

	step, due := DueStep(c, today, DefaultLadder)
	if !due || step != 1 {
		t.Errorf("Expected step 1 due, got step=%d due=%v", step, due)
	}
}

func TestDueStepWithoutLearnedDate(t *testing.T) {
	c := models.Character{Glyph: "爱", Progress: models.NewTallyProgress()}

	for days := 0; days < 200; days++ {
		today := date(2024, 1, 1).AddDate(0, 0, days)
		if _, due := DueStep(c, today, DefaultLadder); due {
			t.Fatalf("Character without learned date reported due on %v", today)
		}
	}
}

func TestDue(t *testing.T) {
	due := charLearnedOn(date(2024, 1, 1))  // step 1 on Jan 2
	notDue := charLearnedOn(date(2023, 12, 30)) // Jan 2 is 3 days later
	noDate := models.Character{Glyph: "猫", Progress: models.NewTallyProgress()}

	got := Due([]models.Character{due, notDue, noDate}, date(2024, 1, 2), DefaultLadder)
	if len(got) != 1 {
		t.Fatalf("Expected 1 due character, got %d", len(got))
	}
	if got[0].Glyph != due.Glyph {
		t.Errorf("Expected %q due, got %q", due.Glyph, got[0].Glyph)
	}
}

func TestLadderReviewDays(t *testing.T) {
	days := DefaultLadder.ReviewDays()
	want := []int{1, 2, 4, 7, 15, 30, 90, 180}

	if len(days) != len(want) {
		t.Fatalf("Expected %d review days, got %d", len(want), len(days))
	}
	for i, d := range want {
		if days[i] != d {
			t.Errorf("ReviewDays()[%d] = %d, want %d", i, days[i], d)
		}
	}
}

func TestLadderContains(t *testing.T) {
	if !DefaultLadder.Contains(7) {
		t.Error("Expected ladder to contain step 7")
	}
	if DefaultLadder.Contains(3) {
		t.Error("Expected ladder not to contain step 3")
	}
}
