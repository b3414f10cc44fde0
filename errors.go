package budget

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrInvalidAmount   = errors.New("amount must be greater than zero")
	ErrEmptyLabel      = errors.New("label cannot be empty")
	ErrUnknownCategory = errors.New("unknown category")
	ErrInvalidDate     = errors.New("date is required")

	// ErrIndexOutOfRange is returned when a positional removal does not match
	// any entry. The ledger is left unchanged.
	ErrIndexOutOfRange = errors.New("index out of range")
	// ErrEntryNotFound is returned when a removal by id does not match any entry.
	ErrEntryNotFound = errors.New("entry not found")
)

// ValidationError reports user input rejected before any mutation.
type ValidationError struct {
	Field string
	Value any
	Err   error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s %v: %v", e.Field, e.Value, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

// PersistenceError reports an I/O failure on the ledger file.
//
// When returned by a mutation, the mutation has been applied in memory but
// may not be durable.
type PersistenceError struct {
	Op   string // "load", "save" or "backup"
	Path string
	Err  error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("could not %s ledger %q: %v", e.Op, e.Path, e.Err)
}

func (e *PersistenceError) Unwrap() error { return e.Err }

// ParseError reports a ledger file whose content cannot be decoded.
type ParseError struct {
	Path string
	Err  error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed ledger %q: %v", e.Path, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SkippedEntriesError reports entries of a ledger file that break an entry
// invariant and were left out of the ledger. They are lost from the file at
// the next save, Backup is the copy kept before that, if any.
type SkippedEntriesError struct {
	Skipped []error
	Backup  string
}

func (e *SkippedEntriesError) Error() string {
	causes := make([]string, len(e.Skipped))
	for i, err := range e.Skipped {
		causes[i] = err.Error()
	}
	msg := fmt.Sprintf("skipped %d invalid entries (%s)", len(e.Skipped), strings.Join(causes, "; "))
	if e.Backup != "" {
		msg += fmt.Sprintf(", the original file is kept as %q", e.Backup)
	}
	return msg
}

func (e *SkippedEntriesError) Unwrap() []error { return e.Skipped }
