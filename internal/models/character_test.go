package models

import (
	"testing"
	"time"
)

func TestProgressSchemaValid(t *testing.T) {
	tests := []struct {
		name   string
		schema ProgressSchema
		want   bool
	}{
		{name: "tally", schema: SchemaTally, want: true},
		{name: "perday", schema: SchemaPerDay, want: true},
		{name: "empty", schema: "", want: false},
		{name: "unknown", schema: "leitner", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.schema.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestProgressInteracted(t *testing.T) {
	p := NewTallyProgress()
	if p.Interacted() {
		t.Error("Fresh tally progress should not count as interacted")
	}

	p.Correct = 1
	if !p.Interacted() {
		t.Error("Progress with a correct outcome should count as interacted")
	}

	p = NewTallyProgress()
	p.Wrong = 1
	if !p.Interacted() {
		t.Error("Progress with a wrong outcome should count as interacted")
	}
}

func TestProgressReviewedOn(t *testing.T) {
	p := NewPerDayProgress()
	if p.ReviewedOn(7) {
		t.Error("Fresh per-day progress should have no reviewed days")
	}

	p.ReviewedDays[7] = true
	if !p.ReviewedOn(7) {
		t.Error("Expected day 7 reviewed")
	}
	if p.ReviewedOn(15) {
		t.Error("Day 15 should remain unreviewed")
	}
}

func TestReviewedOnNilMap(t *testing.T) {
	// Tally progress has no map at all; lookups must still be safe
	p := NewTallyProgress()
	if p.ReviewedOn(1) {
		t.Error("Expected false from a nil ReviewedDays map")
	}
}

func TestDateOnly(t *testing.T) {
	loc := time.FixedZone("CST", 8*3600)
	in := time.Date(2024, 3, 15, 23, 45, 12, 999, loc)

	got := DateOnly(in)
	want := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly() = %v, want %v", got, want)
	}
}

func TestSameDate(t *testing.T) {
	a := time.Date(2024, 3, 15, 0, 1, 0, 0, time.UTC)
	b := time.Date(2024, 3, 15, 23, 59, 0, 0, time.UTC)
	c := time.Date(2024, 3, 16, 0, 0, 0, 0, time.UTC)

	if !SameDate(a, b) {
		t.Error("Expected same-day times to compare equal")
	}
	if SameDate(a, c) {
		t.Error("Expected different days to compare unequal")
	}
}

func TestHasLearnedDate(t *testing.T) {
	c := Character{Glyph: "爱"}
	if c.HasLearnedDate() {
		t.Error("Character without learned date should report false")
	}

	d := DateOnly(time.Now())
	c.LearnedDate = &d
	if !c.HasLearnedDate() {
		t.Error("Character with learned date should report true")
	}
}
