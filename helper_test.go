package budget

import (
	"io/fs"
	"testing"
	"time"

	"github.com/etnz/budget/date"
	"github.com/shopspring/decimal"
)

// USD is a helper for test to create usd money from const
func USD(v float64) Money { return M(v, "USD") }

// D is a helper for test to create decimal amounts from const
func D(v string) decimal.Decimal { return decimal.RequireFromString(v) }

// fixedClock always returns the same instant.
func fixedClock() time.Time { return time.Date(2024, time.January, 5, 10, 0, 0, 0, time.UTC) }

// memStore is a Store kept in memory.
type memStore struct {
	doc   *Document
	saves int
	err   error // returned by Save when set
}

func (s *memStore) Load() (*Document, error) {
	if s.doc == nil {
		return nil, &PersistenceError{Op: "load", Path: "mem", Err: fs.ErrNotExist}
	}
	return s.doc, nil
}

func (s *memStore) Save(doc *Document) error {
	if s.err != nil {
		return &PersistenceError{Op: "save", Path: "mem", Err: s.err}
	}
	s.saves++
	// keep a copy, the ledger owns its slices.
	s.doc = &Document{
		IncomeEntries:  append([]IncomeEntry{}, doc.IncomeEntries...),
		ExpenseEntries: append([]ExpenseEntry{}, doc.ExpenseEntries...),
	}
	return nil
}

// exampleLedger returns the ledger of the reference scenario: one salary
// and two expenses in two categories.
func exampleLedger(t *testing.T, opts ...Option) *Ledger {
	t.Helper()
	l := NewLedger(append([]Option{WithClock(fixedClock)}, opts...)...)
	if _, err := l.AddIncome(D("1500.00"), "Salary", date.MustParse("2024-01-01")); err != nil {
		t.Fatalf("AddIncome() error = %v", err)
	}
	if _, err := l.AddExpense(D("200.00"), "Groceries", "Food & Dining", date.MustParse("2024-01-02")); err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}
	if _, err := l.AddExpense(D("100.00"), "Gas", "Transportation", date.MustParse("2024-01-03")); err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}
	return l
}
