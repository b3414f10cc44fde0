package budget

import (
	"time"

	"github.com/etnz/budget/date"
)

// reportConfig holds the parameters shared by all reports.
type reportConfig struct {
	Range date.Range
	At    time.Time
}

// ReportOption configures a report.
type ReportOption func(*reportConfig)

// Within restricts a report to the entries dated in r. The zero Range, the
// default, includes every entry.
func Within(r date.Range) ReportOption { return func(c *reportConfig) { c.Range = r } }

// At sets the report generation timestamp. It defaults to the ledger clock.
func At(t time.Time) ReportOption { return func(c *reportConfig) { c.At = t } }

func newReportConfig(l *Ledger, opts []ReportOption) reportConfig {
	var c reportConfig
	for _, opt := range opts {
		opt(&c)
	}
	if c.At.IsZero() {
		c.At = l.now()
	}
	return c
}

// entriesWithin returns a consistent copy of the entries dated in r.
func (l *Ledger) entriesWithin(r date.Range) ([]IncomeEntry, []ExpenseEntry) {
	income, expenses := l.snapshot()
	if r.IsZero() {
		return income, expenses
	}
	var in []IncomeEntry
	for _, e := range income {
		if r.Contains(e.Date) {
			in = append(in, e)
		}
	}
	var out []ExpenseEntry
	for _, e := range expenses {
		if r.Contains(e.Date) {
			out = append(out, e)
		}
	}
	return in, out
}
