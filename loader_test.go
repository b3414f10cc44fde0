package budget

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/etnz/budget/date"
)

func TestOpen_MissingFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget_data.json")

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if !l.TotalIncome().IsZero() || !l.TotalExpenses().IsZero() {
		t.Errorf("totals = %v, %v, want zeros", l.TotalIncome(), l.TotalExpenses())
	}
	if l.Warning() != nil {
		t.Errorf("Warning() = %v, want nil for a missing file", l.Warning())
	}
	if _, err := os.Stat(path); !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Open() created the file, want no write before the first mutation")
	}
}

func TestOpen_EmptyPath(t *testing.T) {
	if _, err := Open(""); err == nil {
		t.Errorf("Open(\"\") error = nil, want an error")
	}
}

func TestOpen_MalformedFile(t *testing.T) {
	testCases := []struct {
		name    string
		content string
	}{
		{name: "empty", content: ""},
		{name: "truncated", content: `{"income_entries":[{"amount":1`},
		{name: "garbage", content: "not json at all"},
		{name: "trailing content", content: `{"income_entries":[],"expense_entries":[]}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "budget_data.json")
			if err := os.WriteFile(path, []byte(tc.content), 0644); err != nil {
				t.Fatal(err)
			}

			l, err := Open(path)
			if err != nil {
				t.Fatalf("Open() error = %v", err)
			}
			if n := len(l.IncomeEntries()) + len(l.ExpenseEntries()); n != 0 {
				t.Errorf("ledger has %d entries, want 0", n)
			}
			var perr *ParseError
			if !errors.As(l.Warning(), &perr) {
				t.Errorf("Warning() = %v, want *ParseError", l.Warning())
			}

			backup, err := os.ReadFile(path + ".corrupt")
			if err != nil {
				t.Fatalf("backup not found: %v", err)
			}
			if string(backup) != tc.content {
				t.Errorf("backup = %q, want %q", backup, tc.content)
			}
		})
	}
}

func TestOpen_SaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "budget_data.json")

	l, err := Open(path, WithClock(fixedClock))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if _, err := l.AddIncome(D("1500.00"), "Salary", date.MustParse("2024-01-01")); err != nil {
		t.Fatalf("AddIncome() error = %v", err)
	}
	if _, err := l.AddExpense(D("200.00"), "Groceries", "Food & Dining", date.MustParse("2024-01-02")); err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}
	if _, err := l.AddExpense(D("100.00"), "Gas", "Transportation", date.MustParse("2024-01-03")); err != nil {
		t.Fatalf("AddExpense() error = %v", err)
	}
	if err := l.RemoveExpense(1); err != nil {
		t.Fatalf("RemoveExpense() error = %v", err)
	}

	reloaded, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if got := reloaded.TotalIncome(); !got.Equal(USD(1500)) {
		t.Errorf("TotalIncome() = %v, want $1,500.00", got)
	}
	if got := reloaded.TotalExpenses(); !got.Equal(USD(200)) {
		t.Errorf("TotalExpenses() = %v, want $200.00", got)
	}
	want := l.ExpenseEntries()
	got := reloaded.ExpenseEntries()
	if len(got) != 1 || got[0].ID != want[0].ID || !got[0].CreatedAt.Equal(fixedClock()) {
		t.Errorf("ExpenseEntries() = %+v, want %+v", got, want)
	}

	// no temporary file is left behind.
	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatal(err)
	}
	if len(entries) != 1 {
		t.Errorf("directory holds %d files, want only the ledger", len(entries))
	}
}

func TestFileStore_SaveFailure(t *testing.T) {
	if runtime.GOOS == "windows" || os.Geteuid() == 0 {
		t.Skip("directory permissions are not enforced")
	}
	dir := t.TempDir()
	path := filepath.Join(dir, "budget_data.json")
	l, err := Open(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chmod(dir, 0555); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { os.Chmod(dir, 0755) })

	_, err = l.AddIncome(D("1"), "Tip", date.MustParse("2024-01-01"))
	var perr *PersistenceError
	if !errors.As(err, &perr) {
		t.Fatalf("AddIncome() error = %v, want *PersistenceError", err)
	}
	if perr.Op != "save" || perr.Path != path {
		t.Errorf("PersistenceError = %+v, want save of %q", perr, path)
	}
	if n := len(l.IncomeEntries()); n != 1 {
		t.Errorf("len(IncomeEntries()) = %d, want 1, memory is authoritative", n)
	}
}

func TestFileStore_LoadMissing(t *testing.T) {
	_, err := NewFileStore(filepath.Join(t.TempDir(), "nope.json")).Load()
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("Load() error = %v, want fs.ErrNotExist", err)
	}
}

func TestOpen_InvalidEntriesAreBackedUp(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget_data.json")
	legacy := `{"income_entries":[` +
		`{"amount":0,"label":"Gift","date":"2024-01-01","timestamp":"2024-01-01T09:00:00.000001"},` +
		`{"amount":1500.0,"label":"Salary","date":"2024-01-01","timestamp":"2024-01-01T10:00:00.000001"}` +
		`],"expense_entries":[]}`
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	l, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if n := len(l.IncomeEntries()); n != 1 {
		t.Fatalf("len(IncomeEntries()) = %d, want 1", n)
	}
	var serr *SkippedEntriesError
	if !errors.As(l.Warning(), &serr) {
		t.Fatalf("Warning() = %v, want *SkippedEntriesError", l.Warning())
	}
	if !errors.Is(serr, ErrInvalidAmount) {
		t.Errorf("Warning() = %v, want it to wrap %v", serr, ErrInvalidAmount)
	}
	if want := path + ".bak"; serr.Backup != want {
		t.Errorf("Backup = %q, want %q", serr.Backup, want)
	}

	if _, err := l.AddIncome(D("20"), "Refund", date.MustParse("2024-01-02")); err != nil {
		t.Fatalf("AddIncome() error = %v", err)
	}

	current, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if strings.Contains(string(current), "Gift") {
		t.Errorf("ledger file still holds the invalid entry")
	}
	backup, err := os.ReadFile(path + ".bak")
	if err != nil {
		t.Fatalf("backup not found: %v", err)
	}
	if string(backup) != legacy {
		t.Errorf("backup = %q, want the original file %q", backup, legacy)
	}
}

func TestOpen_GeneratedIDsAreStable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "budget_data.json")
	legacy := `{"income_entries":[{"amount":1500.0,"label":"Salary","date":"2024-01-01","timestamp":""}],"expense_entries":[]}`
	if err := os.WriteFile(path, []byte(legacy), 0644); err != nil {
		t.Fatal(err)
	}

	first, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	second, err := Open(path)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	id := first.IncomeEntries()[0].ID
	if id == "" || second.IncomeEntries()[0].ID != id {
		t.Errorf("ids = %q then %q, want the same id on every open", id, second.IncomeEntries()[0].ID)
	}
	if err := second.RemoveIncomeByID(id); err != nil {
		t.Errorf("RemoveIncomeByID(%q) error = %v", id, err)
	}
}

func TestOpen_MissingFileIsQuiet(t *testing.T) {
	var logs strings.Builder
	old := slog.Default()
	slog.SetDefault(slog.New(slog.NewTextHandler(&logs, &slog.HandlerOptions{Level: slog.LevelInfo})))
	t.Cleanup(func() { slog.SetDefault(old) })

	if _, err := Open(filepath.Join(t.TempDir(), "budget_data.json")); err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if logs.Len() != 0 {
		t.Errorf("Open() on a first run logged %q, want nothing at info level", logs.String())
	}
}
