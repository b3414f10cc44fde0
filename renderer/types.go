package renderer

import (
	"github.com/etnz/budget"
	"github.com/etnz/budget/date"
)

// Entries holds the ledger entries for rendering.
type Entries struct {
	Income   []EntryRow
	Expenses []EntryRow
}

// EntryRow is one line of an entry table.
type EntryRow struct {
	Position int // index to pass to a removal
	ID       budget.EntryID
	Date     date.Date
	Label    string
	Category budget.Category // empty for income
	Amount   budget.Money
}

// NewEntries converts the ledger entries, in insertion order.
func NewEntries(l *budget.Ledger) *Entries {
	e := &Entries{}
	for i, in := range l.IncomeEntries() {
		e.Income = append(e.Income, EntryRow{
			Position: i,
			ID:       in.ID,
			Date:     in.Date,
			Label:    in.Label,
			Amount:   budget.M(in.Amount, l.Currency()),
		})
	}
	for i, ex := range l.ExpenseEntries() {
		e.Expenses = append(e.Expenses, EntryRow{
			Position: i,
			ID:       ex.ID,
			Date:     ex.Date,
			Label:    ex.Label,
			Category: ex.Category,
			Amount:   budget.M(ex.Amount, l.Currency()),
		})
	}
	return e
}

// Report is the full budget report: summary, income/expense comparison and
// category breakdown.
type Report struct {
	Title      string
	Summary    *budget.SummaryReport
	Breakdown  *budget.CategoryBreakdown
	Comparison []ChartRow
}

// ChartRow is one bar of a chart, Percent is relative to the largest bar.
type ChartRow struct {
	Label   string
	Amount  budget.Money
	Percent budget.Percent
}

// NewReport assembles the report from both aggregations.
func NewReport(title string, s *budget.SummaryReport, b *budget.CategoryBreakdown) *Report {
	largest := s.TotalIncome
	if s.TotalExpenses.GreaterThan(largest) {
		largest = s.TotalExpenses
	}
	return &Report{
		Title:     title,
		Summary:   s,
		Breakdown: b,
		Comparison: []ChartRow{
			{Label: "Income", Amount: s.TotalIncome, Percent: s.TotalIncome.Ratio(largest)},
			{Label: "Expenses", Amount: s.TotalExpenses, Percent: s.TotalExpenses.Ratio(largest)},
		},
	}
}
