package budget

import (
	"cmp"
	"slices"
	"time"

	"github.com/etnz/budget/date"
)

// CategoryShare is the part of the expenses spent in one category.
type CategoryShare struct {
	Category Category
	Amount   Money
	// Percent of the total expenses, 0 when there are none.
	Percent Percent
}

// CategoryBreakdown lists the expenses per category.
type CategoryBreakdown struct {
	GeneratedAt time.Time
	Range       date.Range
	Currency    string
	Total       Money
	// Shares are sorted by amount descending, then by category name.
	// Only categories with at least one expense are listed.
	Shares []CategoryShare
}

// NewCategoryBreakdown computes the expenses per category. The sum of the
// shares amounts is exactly the total expenses.
func NewCategoryBreakdown(l *Ledger, opts ...ReportOption) *CategoryBreakdown {
	c := newReportConfig(l, opts)
	_, expenses := l.entriesWithin(c.Range)

	total := sumExpenses(expenses, l.currency)
	shares := make([]CategoryShare, 0)
	for cat, amount := range groupByCategory(expenses, l.currency) {
		shares = append(shares, CategoryShare{
			Category: cat,
			Amount:   amount,
			Percent:  amount.Ratio(total),
		})
	}
	slices.SortFunc(shares, func(a, b CategoryShare) int {
		if n := b.Amount.Decimal().Cmp(a.Amount.Decimal()); n != 0 {
			return n
		}
		return cmp.Compare(a.Category, b.Category)
	})

	return &CategoryBreakdown{
		GeneratedAt: c.At,
		Range:       c.Range,
		Currency:    l.currency,
		Total:       total,
		Shares:      shares,
	}
}
