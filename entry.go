package budget

import (
	"strconv"
	"strings"
	"time"

	"github.com/etnz/budget/date"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// EntryID identifies an entry independently of its position in the ledger.
type EntryID string

func newEntryID() EntryID { return EntryID(uuid.NewString()) }

// IncomeEntry records money received.
type IncomeEntry struct {
	ID        EntryID
	Amount    decimal.Decimal
	Label     string
	Date      date.Date
	CreatedAt time.Time
}

// ExpenseEntry records money spent in a category.
type ExpenseEntry struct {
	ID        EntryID
	Amount    decimal.Decimal
	Label     string
	Category  Category
	Date      date.Date
	CreatedAt time.Time
}

// validateEntry checks the fields common to income and expenses and returns
// the label trimmed of surrounding whitespace.
func validateEntry(amount decimal.Decimal, label string, on date.Date) (string, error) {
	if !amount.IsPositive() {
		return "", &ValidationError{Field: "amount", Value: amount, Err: ErrInvalidAmount}
	}
	label = strings.TrimSpace(label)
	if label == "" {
		return "", &ValidationError{Field: "label", Value: `""`, Err: ErrEmptyLabel}
	}
	if on.IsZero() {
		return "", &ValidationError{Field: "date", Value: `""`, Err: ErrInvalidDate}
	}
	return label, nil
}

// Validate checks the entry invariants.
func (e IncomeEntry) Validate() error {
	_, err := validateEntry(e.Amount, e.Label, e.Date)
	return err
}

// Validate checks the entry invariants against the category set.
// A nil set accepts any non empty category.
func (e ExpenseEntry) Validate(categories *Categories) error {
	if _, err := validateEntry(e.Amount, e.Label, e.Date); err != nil {
		return err
	}
	return validateCategory(e.Category, categories)
}

func validateCategory(cat Category, categories *Categories) error {
	if cat == "" || (categories != nil && !categories.Contains(cat)) {
		return &ValidationError{Field: "category", Value: strconv.Quote(string(cat)), Err: ErrUnknownCategory}
	}
	return nil
}
