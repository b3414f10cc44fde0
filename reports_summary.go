package budget

import (
	"time"

	"github.com/etnz/budget/date"
)

// SummaryReport is an at-a-glance view of the ledger totals.
type SummaryReport struct {
	GeneratedAt   time.Time
	Range         date.Range // zero for all time
	Currency      string
	TotalIncome   Money
	TotalExpenses Money
	Balance       Money
	IncomeCount   int
	ExpenseCount  int
	// SavingsRate is the balance as a percentage of total income, 0 when
	// there is no income.
	SavingsRate Percent
}

// NewSummaryReport computes the summary of the ledger. It never mutates l.
func NewSummaryReport(l *Ledger, opts ...ReportOption) *SummaryReport {
	c := newReportConfig(l, opts)
	income, expenses := l.entriesWithin(c.Range)

	report := &SummaryReport{
		GeneratedAt:   c.At,
		Range:         c.Range,
		Currency:      l.currency,
		TotalIncome:   sumIncome(income, l.currency),
		TotalExpenses: sumExpenses(expenses, l.currency),
		IncomeCount:   len(income),
		ExpenseCount:  len(expenses),
	}
	report.Balance = report.TotalIncome.Sub(report.TotalExpenses)
	report.SavingsRate = report.Balance.Ratio(report.TotalIncome)
	return report
}
