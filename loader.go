package budget

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
)

// FileStore persists a ledger as a single JSON document on local storage.
type FileStore struct {
	path string
}

// NewFileStore returns a store for the ledger file at path.
func NewFileStore(path string) *FileStore { return &FileStore{path: path} }

// Path returns the ledger file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the ledger file.
//
// A missing file is reported as a *PersistenceError wrapping fs.ErrNotExist,
// malformed content as a *ParseError.
func (s *FileStore) Load() (*Document, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, &PersistenceError{Op: "load", Path: s.path, Err: err}
	}
	defer f.Close()

	doc, err := DecodeDocument(f)
	if err != nil {
		return nil, &ParseError{Path: s.path, Err: err}
	}
	return doc, nil
}

// Save overwrites the ledger file with doc.
//
// The document is written to a temporary file in the same directory, then
// renamed over the ledger file, so a crash mid-write leaves the previous
// content intact.
func (s *FileStore) Save(doc *Document) error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(s.path)+".*.tmp")
	if err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	// no-op once renamed.
	defer os.Remove(tmp.Name())

	if err := EncodeDocument(tmp, doc); err != nil {
		tmp.Close()
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := tmp.Close(); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return &PersistenceError{Op: "save", Path: s.path, Err: err}
	}
	return nil
}

// Backup copies the ledger file to "<path>.bak" and returns the copy path.
func (s *FileStore) Backup() (string, error) {
	content, err := os.ReadFile(s.path)
	if err != nil {
		return "", &PersistenceError{Op: "backup", Path: s.path, Err: err}
	}
	backup := s.path + ".bak"
	if err := os.WriteFile(backup, content, 0644); err != nil {
		return "", &PersistenceError{Op: "backup", Path: s.path, Err: err}
	}
	return backup, nil
}

// quarantine moves a malformed ledger file aside so that the next save does
// not overwrite it. It returns the new path.
func (s *FileStore) quarantine() (string, error) {
	backup := s.path + ".corrupt"
	if err := os.Rename(s.path, backup); err != nil {
		return "", fmt.Errorf("could not move malformed ledger aside: %w", err)
	}
	return backup, nil
}

// Open loads the ledger persisted at path, and keeps it in sync with that file.
//
// Open never fails on the file content: a missing file yields an empty
// ledger, and an unreadable or malformed file yields an empty ledger whose
// Warning reports the problem. A malformed file is first renamed to
// "<path>.corrupt". A file with invalid entries is copied to "<path>.bak"
// before the valid entries are loaded.
func Open(path string, opts ...Option) (*Ledger, error) {
	if path == "" {
		return nil, errors.New("ledger path is empty")
	}
	store := NewFileStore(path)
	l := OpenStore(store, opts...)

	var perr *ParseError
	if errors.As(l.warning, &perr) {
		backup, err := store.quarantine()
		if err != nil {
			slog.Warn("malformed ledger kept in place", "path", path, "error", err)
		} else {
			slog.Warn("malformed ledger moved aside", "path", path, "backup", backup)
		}
	}
	return l, nil
}

// backuper is implemented by stores that can keep a copy of their content
// before it is rewritten.
type backuper interface {
	Backup() (string, error)
}

// OpenStore creates a ledger from the content of store, and keeps store in
// sync with it. See Open for the recovery rules.
//
// Entries that break an entry invariant are left out and reported by
// Warning as a *SkippedEntriesError. If store can back up its content, the
// copy is made right away, otherwise the store is not written until the
// next mutation. Ids generated for entries that had none are saved at once,
// so that they stay valid from one Open to the next.
func OpenStore(store Store, opts ...Option) *Ledger {
	l := NewLedger(append(opts, WithStore(store))...)

	doc, err := store.Load()
	switch {
	case err == nil:
	case errors.Is(err, fs.ErrNotExist):
		slog.Debug("no ledger found, starting with an empty ledger", "error", err)
		return l
	default:
		slog.Warn("could not load ledger, starting with an empty ledger", "error", err)
		l.warning = err
		return l
	}

	skipped, generated := l.restore(doc)
	slog.Debug("ledger loaded", "income", len(l.income), "expenses", len(l.expenses), "skipped", len(skipped))
	if len(skipped) > 0 {
		serr := &SkippedEntriesError{Skipped: skipped}
		if b, ok := store.(backuper); ok {
			backup, err := b.Backup()
			if err != nil {
				slog.Warn("could not back up the ledger before rewriting it", "error", err)
			} else {
				serr.Backup = backup
			}
		}
		l.warning = serr
		if serr.Backup == "" {
			// rewriting now would lose the skipped entries without a copy.
			return l
		}
	}
	if generated > 0 {
		if err := l.Save(); err != nil {
			slog.Warn("could not save the generated entry ids", "count", generated, "error", err)
		} else {
			slog.Info("saved new ids for entries that had none", "count", generated)
		}
	}
	return l
}
