package budget

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"
)

// Category classifies an expense.
type Category string

// DefaultCategories is the category set used when none is configured.
var DefaultCategories = []Category{
	"Food & Dining",
	"Transportation",
	"Utilities",
	"Entertainment",
	"Housing",
	"Healthcare",
	"Insurance",
	"Savings & Investments",
	"Education",
	"Travel",
	"Shopping",
	"Personal Care",
	"Debt Payments",
	"Gifts & Donations",
	"Miscellaneous",
}

// Categories is a closed, ordered set of expense categories.
//
// A Categories is immutable once created and can be shared.
type Categories struct {
	list  []Category
	index map[Category]struct{}
}

// NewCategories creates a category set. Names are trimmed, blanks and
// duplicates are dropped, and the input order is preserved.
func NewCategories(names ...Category) *Categories {
	c := &Categories{index: make(map[Category]struct{}, len(names))}
	for _, name := range names {
		name = Category(strings.TrimSpace(string(name)))
		if name == "" {
			continue
		}
		if _, ok := c.index[name]; ok {
			continue
		}
		c.index[name] = struct{}{}
		c.list = append(c.list, name)
	}
	return c
}

// Contains reports whether cat belongs to the set.
func (c *Categories) Contains(cat Category) bool {
	_, ok := c.index[cat]
	return ok
}

// List returns a copy of the categories in their configured order.
func (c *Categories) List() []Category { return slices.Clone(c.list) }

// Len returns the number of categories.
func (c *Categories) Len() int { return len(c.list) }

// DecodeCategories reads one category per line. Blank lines and lines
// starting with '#' are ignored.
func DecodeCategories(r io.Reader) (*Categories, error) {
	var names []Category
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		names = append(names, Category(line))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("error reading categories: %w", err)
	}
	c := NewCategories(names...)
	if c.Len() == 0 {
		return nil, fmt.Errorf("no category defined")
	}
	return c, nil
}

// LoadCategories reads the category set from a file, see DecodeCategories.
func LoadCategories(path string) (*Categories, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("could not open categories file %q: %w", path, err)
	}
	defer f.Close()
	c, err := DecodeCategories(f)
	if err != nil {
		return nil, fmt.Errorf("could not decode categories file %q: %w", path, err)
	}
	return c, nil
}
