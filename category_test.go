package budget

import (
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
)

func TestNewCategories(t *testing.T) {
	c := NewCategories(" Travel", "Housing", "", "Travel", "  ", "Food & Dining")
	want := []Category{"Travel", "Housing", "Food & Dining"}
	if got := c.List(); !slices.Equal(got, want) {
		t.Errorf("List() = %v, want %v", got, want)
	}
	if !c.Contains("Food & Dining") || c.Contains("Pets") {
		t.Errorf("Contains() mismatch")
	}
}

func TestDefaultCategories(t *testing.T) {
	c := NewCategories(DefaultCategories...)
	if c.Len() != 15 {
		t.Errorf("Len() = %d, want 15", c.Len())
	}
}

func TestDecodeCategories(t *testing.T) {
	testCases := []struct {
		name    string
		input   string
		want    []Category
		wantErr bool
	}{
		{name: "one per line", input: "Rent\nFood\n", want: []Category{"Rent", "Food"}},
		{name: "comments and blanks", input: "# mine\n\nRent\n  # indented\n Food \n", want: []Category{"Rent", "Food"}},
		{name: "empty", input: "\n# nothing\n", wantErr: true},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := DecodeCategories(strings.NewReader(tc.input))
			if (err != nil) != tc.wantErr {
				t.Fatalf("DecodeCategories() error = %v, wantErr %v", err, tc.wantErr)
			}
			if err == nil && !slices.Equal(got.List(), tc.want) {
				t.Errorf("DecodeCategories() = %v, want %v", got.List(), tc.want)
			}
		})
	}
}

func TestLoadCategories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "categories.txt")
	if err := os.WriteFile(path, []byte("Pets\nGarden\n"), 0644); err != nil {
		t.Fatal(err)
	}
	c, err := LoadCategories(path)
	if err != nil {
		t.Fatalf("LoadCategories() error = %v", err)
	}
	if c.Len() != 2 {
		t.Errorf("Len() = %d, want 2", c.Len())
	}
	if _, err := LoadCategories(path + ".missing"); err == nil {
		t.Errorf("LoadCategories() on a missing file error = nil")
	}
}
