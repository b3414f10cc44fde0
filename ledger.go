package budget

import (
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"sync"
	"time"

	"github.com/etnz/budget/date"
	"github.com/shopspring/decimal"
)

// Store persists the full content of a ledger.
type Store interface {
	Load() (*Document, error)
	Save(doc *Document) error
}

// Ledger holds the income and expense entries of one user.
//
// Entries keep their insertion order. Every mutation is followed by a full
// save to the ledger's Store, if any. The in-memory content is authoritative:
// when a save fails the mutation is kept and the error is returned.
//
// A Ledger is safe for concurrent use; mutations and saves are serialized.
type Ledger struct {
	mu         sync.RWMutex
	income     []IncomeEntry
	expenses   []ExpenseEntry
	categories *Categories
	currency   string
	store      Store
	now        func() time.Time
	warning    error // non fatal load problem

	subMu       sync.Mutex
	subscribers map[int]func(Event)
	nextSub     int
}

// Option configures a Ledger.
type Option func(*Ledger)

// WithStore sets the Store written after every mutation.
func WithStore(s Store) Option { return func(l *Ledger) { l.store = s } }

// WithCategories sets the category set accepted for new expenses.
func WithCategories(c *Categories) Option { return func(l *Ledger) { l.categories = c } }

// WithCurrency sets the currency used to report amounts.
func WithCurrency(currency string) Option { return func(l *Ledger) { l.currency = currency } }

// WithClock sets the clock used to timestamp new entries.
func WithClock(now func() time.Time) Option { return func(l *Ledger) { l.now = now } }

// NewLedger creates an empty ledger.
func NewLedger(opts ...Option) *Ledger {
	l := &Ledger{
		income:      make([]IncomeEntry, 0),
		expenses:    make([]ExpenseEntry, 0),
		categories:  NewCategories(DefaultCategories...),
		currency:    DefaultCurrency,
		now:         time.Now,
		subscribers: make(map[int]func(Event)),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Currency returns the currency used to report amounts.
func (l *Ledger) Currency() string { return l.currency }

// Categories returns the category set accepted for new expenses.
func (l *Ledger) Categories() *Categories { return l.categories }

// Warning returns the problem met while loading the ledger, if any.
func (l *Ledger) Warning() error {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.warning
}

// AddIncome appends a new income entry and persists the ledger.
//
// It fails with a *ValidationError if amount is not positive, label is blank
// or the date is missing; the ledger is then unchanged. A *PersistenceError
// means the entry was added but may not be durable.
func (l *Ledger) AddIncome(amount decimal.Decimal, label string, on date.Date) (EntryID, error) {
	label, err := validateEntry(amount, label, on)
	if err != nil {
		return "", err
	}
	e := IncomeEntry{ID: newEntryID(), Amount: amount, Label: label, Date: on, CreatedAt: l.now()}

	l.mu.Lock()
	l.income = append(l.income, e)
	index := len(l.income) - 1
	err = l.saveLocked()
	l.mu.Unlock()

	l.publish(Event{Kind: IncomeAdded, Index: index, ID: e.ID})
	return e.ID, err
}

// AddExpense appends a new expense entry and persists the ledger.
//
// Validation is the same as AddIncome, and the category must belong to the
// ledger's category set.
func (l *Ledger) AddExpense(amount decimal.Decimal, label string, category Category, on date.Date) (EntryID, error) {
	label, err := validateEntry(amount, label, on)
	if err != nil {
		return "", err
	}
	if err := validateCategory(category, l.categories); err != nil {
		return "", err
	}
	e := ExpenseEntry{ID: newEntryID(), Amount: amount, Label: label, Category: category, Date: on, CreatedAt: l.now()}

	l.mu.Lock()
	l.expenses = append(l.expenses, e)
	index := len(l.expenses) - 1
	err = l.saveLocked()
	l.mu.Unlock()

	l.publish(Event{Kind: ExpenseAdded, Index: index, ID: e.ID})
	return e.ID, err
}

// RemoveIncome removes the income entry at index. Following entries shift
// down by one position.
//
// It returns an error wrapping ErrIndexOutOfRange, and leaves the ledger
// unchanged, if index is not in [0, len).
func (l *Ledger) RemoveIncome(index int) error {
	l.mu.Lock()
	if index < 0 || index >= len(l.income) {
		n := len(l.income)
		l.mu.Unlock()
		return fmt.Errorf("income #%d not in [0, %d): %w", index, n, ErrIndexOutOfRange)
	}
	id := l.income[index].ID
	l.income = slices.Delete(l.income, index, index+1)
	err := l.saveLocked()
	l.mu.Unlock()

	l.publish(Event{Kind: IncomeRemoved, Index: index, ID: id})
	return err
}

// RemoveExpense removes the expense entry at index, see RemoveIncome.
func (l *Ledger) RemoveExpense(index int) error {
	l.mu.Lock()
	if index < 0 || index >= len(l.expenses) {
		n := len(l.expenses)
		l.mu.Unlock()
		return fmt.Errorf("expense #%d not in [0, %d): %w", index, n, ErrIndexOutOfRange)
	}
	id := l.expenses[index].ID
	l.expenses = slices.Delete(l.expenses, index, index+1)
	err := l.saveLocked()
	l.mu.Unlock()

	l.publish(Event{Kind: ExpenseRemoved, Index: index, ID: id})
	return err
}

// RemoveIncomeByID removes the income entry with the given id.
//
// Unlike positions, ids are stable across mutations.
func (l *Ledger) RemoveIncomeByID(id EntryID) error {
	l.mu.Lock()
	index := slices.IndexFunc(l.income, func(e IncomeEntry) bool { return e.ID == id })
	if index < 0 {
		l.mu.Unlock()
		return fmt.Errorf("income %q: %w", id, ErrEntryNotFound)
	}
	l.income = slices.Delete(l.income, index, index+1)
	err := l.saveLocked()
	l.mu.Unlock()

	l.publish(Event{Kind: IncomeRemoved, Index: index, ID: id})
	return err
}

// RemoveExpenseByID removes the expense entry with the given id.
func (l *Ledger) RemoveExpenseByID(id EntryID) error {
	l.mu.Lock()
	index := slices.IndexFunc(l.expenses, func(e ExpenseEntry) bool { return e.ID == id })
	if index < 0 {
		l.mu.Unlock()
		return fmt.Errorf("expense %q: %w", id, ErrEntryNotFound)
	}
	l.expenses = slices.Delete(l.expenses, index, index+1)
	err := l.saveLocked()
	l.mu.Unlock()

	l.publish(Event{Kind: ExpenseRemoved, Index: index, ID: id})
	return err
}

// IncomeEntries returns a copy of the income entries in insertion order.
func (l *Ledger) IncomeEntries() []IncomeEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.income)
}

// ExpenseEntries returns a copy of the expense entries in insertion order.
func (l *Ledger) ExpenseEntries() []ExpenseEntry {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.expenses)
}

// TotalIncome returns the sum of all income entries.
func (l *Ledger) TotalIncome() Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sumIncome(l.income, l.currency)
}

// TotalExpenses returns the sum of all expense entries.
func (l *Ledger) TotalExpenses() Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sumExpenses(l.expenses, l.currency)
}

// Balance returns total income minus total expenses.
func (l *Ledger) Balance() Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return sumIncome(l.income, l.currency).Sub(sumExpenses(l.expenses, l.currency))
}

// ExpensesByCategory returns the summed expenses of each category that has
// at least one expense. The map has no meaningful order, see
// NewCategoryBreakdown for a sorted view.
func (l *Ledger) ExpensesByCategory() map[Category]Money {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return groupByCategory(l.expenses, l.currency)
}

// snapshot returns a consistent copy of both sequences.
func (l *Ledger) snapshot() ([]IncomeEntry, []ExpenseEntry) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return slices.Clone(l.income), slices.Clone(l.expenses)
}

func sumIncome(entries []IncomeEntry, currency string) Money {
	total := M(decimal.Zero, currency)
	for _, e := range entries {
		total = total.Add(M(e.Amount, currency))
	}
	return total
}

func sumExpenses(entries []ExpenseEntry, currency string) Money {
	total := M(decimal.Zero, currency)
	for _, e := range entries {
		total = total.Add(M(e.Amount, currency))
	}
	return total
}

func groupByCategory(entries []ExpenseEntry, currency string) map[Category]Money {
	groups := make(map[Category]Money)
	for _, e := range entries {
		sum, ok := groups[e.Category]
		if !ok {
			sum = M(decimal.Zero, currency)
		}
		groups[e.Category] = sum.Add(M(e.Amount, currency))
	}
	return groups
}

// Save writes the full ledger to its store, in canonical form.
func (l *Ledger) Save() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.saveLocked()
}

// saveLocked writes the full ledger to the store. l.mu must be held.
func (l *Ledger) saveLocked() error {
	if l.store == nil {
		return nil
	}
	doc := &Document{IncomeEntries: l.income, ExpenseEntries: l.expenses}
	if err := l.store.Save(doc); err != nil {
		slog.Error("ledger not saved, latest change may be lost", "error", err)
		return err
	}
	slog.Debug("ledger saved", "income", len(l.income), "expenses", len(l.expenses))
	return nil
}

// restore replaces the ledger content with the entries of doc, skipping the
// ones that break the entry invariants. It returns why each entry was
// skipped, and how many entries got a new id.
func (l *Ledger) restore(doc *Document) (skipped []error, generated int) {
	income := make([]IncomeEntry, 0, len(doc.IncomeEntries))
	for i, e := range doc.IncomeEntries {
		if err := e.Validate(); err != nil {
			slog.Warn("skipping invalid income entry", "position", i, "error", err)
			skipped = append(skipped, fmt.Errorf("income #%d: %w", i, err))
			continue
		}
		if e.ID == "" {
			e.ID = newEntryID()
			generated++
		}
		income = append(income, e)
	}

	unknown := make(map[Category]int)
	expenses := make([]ExpenseEntry, 0, len(doc.ExpenseEntries))
	for i, e := range doc.ExpenseEntries {
		// the category set restricts new input only.
		if err := e.Validate(nil); err != nil {
			slog.Warn("skipping invalid expense entry", "position", i, "error", err)
			skipped = append(skipped, fmt.Errorf("expense #%d: %w", i, err))
			continue
		}
		if !l.categories.Contains(e.Category) {
			unknown[e.Category]++
		}
		if e.ID == "" {
			e.ID = newEntryID()
			generated++
		}
		expenses = append(expenses, e)
	}
	for _, cat := range slices.Sorted(maps.Keys(unknown)) {
		slog.Warn("expenses use a category that is not configured", "category", cat, "count", unknown[cat])
	}

	l.mu.Lock()
	l.income, l.expenses = income, expenses
	l.mu.Unlock()
	return skipped, generated
}
