package handlers

import (
	"time"

	"hanzidrill/internal/models"
	"hanzidrill/internal/review"
)

type LoginViewData struct {
	Title string
	Error string
}

// PlanCellView is one plan-table cell rendered as its display symbol
type PlanCellView struct {
	Step   int
	Date   time.Time
	Symbol string
}

// PlanRowView is one character's row in the plan table
type PlanRowView struct {
	Glyph       string
	LearnedDate time.Time
	Correct     int
	Wrong       int
	Cells       []PlanCellView
}

type DashboardViewData struct {
	Title           string
	Today           time.Time
	Sets            []int
	SelectedSet     int
	ReviewDays      []int
	Rows            []PlanRowView
	DueCount        int
	FrequentlyWrong []models.Character
	CSRFToken       string
}

type FlashcardViewData struct {
	Title        string
	Today        time.Time
	Character    *models.Character
	DueStep      int
	CurrentIndex int
	TotalDue     int
	CSRFToken    string
}

type FlashcardDoneViewData struct {
	Title string
	Today time.Time
}

type SetsViewData struct {
	Title     string
	Sets      []int
	CSRFToken string
}

type SetDetailViewData struct {
	Title      string
	SetNr      int
	Characters []models.Character
	CSRFToken  string
	Error      string
}

// statusSymbol maps a plan cell status to the glyph the table shows
func statusSymbol(s review.CellStatus) string {
	switch s {
	case review.StatusCompleted:
		return "✅"
	case review.StatusMissed:
		return "❌"
	default:
		return "--"
	}
}

// planRowViews converts plan rows into their rendered form
func planRowViews(rows []review.PlanRow) []PlanRowView {
	views := make([]PlanRowView, len(rows))
	for i, row := range rows {
		v := PlanRowView{
			Glyph:       row.Glyph,
			LearnedDate: row.LearnedDate,
			Correct:     row.Correct,
			Wrong:       row.Wrong,
		}
		for _, cell := range row.Cells {
			v.Cells = append(v.Cells, PlanCellView{
				Step:   cell.Step,
				Date:   cell.Date,
				Symbol: statusSymbol(cell.Status),
			})
		}
		views[i] = v
	}
	return views
}
