package budget

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/etnz/budget/date"
	"github.com/shopspring/decimal"
)

func init() {
	decimal.MarshalJSONWithoutQuotes = true
}

// Document is the persisted form of a ledger.
type Document struct {
	IncomeEntries  []IncomeEntry  `json:"income_entries"`
	ExpenseEntries []ExpenseEntry `json:"expense_entries"`
}

// TimestampFormat is the format used to persist entry creation instants.
const TimestampFormat = time.RFC3339Nano

// legacy layouts are zone-less ISO-8601 timestamps, read in local time.
var legacyTimestampFormats = []string{
	"2006-01-02T15:04:05.999999999",
	"2006-01-02 15:04:05.999999999",
}

// timestamp is the JSON representation of an entry creation instant.
type timestamp time.Time

func (t timestamp) MarshalJSON() ([]byte, error) {
	tt := time.Time(t)
	if tt.IsZero() {
		return []byte(`""`), nil
	}
	return json.Marshal(tt.Format(TimestampFormat))
}

func (t *timestamp) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err != nil {
		return err
	}
	if str == "" {
		*t = timestamp{}
		return nil
	}
	if tt, err := time.Parse(TimestampFormat, str); err == nil {
		*t = timestamp(tt)
		return nil
	}
	for _, layout := range legacyTimestampFormats {
		if tt, err := time.ParseInLocation(layout, str, time.Local); err == nil {
			*t = timestamp(tt)
			return nil
		}
	}
	return fmt.Errorf("invalid timestamp %q want format %q", str, TimestampFormat)
}

func (e IncomeEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", e.Amount).
		Append("label", e.Label).
		Append("date", e.Date).
		Append("timestamp", timestamp(e.CreatedAt)).
		Optional("id", e.ID)
	return w.MarshalJSON()
}

func (e *IncomeEntry) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID        EntryID         `json:"id"`
		Amount    decimal.Decimal `json:"amount"`
		Label     string          `json:"label"`
		Date      date.Date       `json:"date"`
		Timestamp timestamp       `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*e = IncomeEntry{
		ID:        temp.ID,
		Amount:    temp.Amount,
		Label:     temp.Label,
		Date:      temp.Date,
		CreatedAt: time.Time(temp.Timestamp),
	}
	return nil
}

func (e ExpenseEntry) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("amount", e.Amount).
		Append("label", e.Label).
		Append("category", e.Category).
		Append("date", e.Date).
		Append("timestamp", timestamp(e.CreatedAt)).
		Optional("id", e.ID)
	return w.MarshalJSON()
}

func (e *ExpenseEntry) UnmarshalJSON(data []byte) error {
	var temp struct {
		ID        EntryID         `json:"id"`
		Amount    decimal.Decimal `json:"amount"`
		Label     string          `json:"label"`
		Category  Category        `json:"category"`
		Date      date.Date       `json:"date"`
		Timestamp timestamp       `json:"timestamp"`
	}
	if err := json.Unmarshal(data, &temp); err != nil {
		return err
	}
	*e = ExpenseEntry{
		ID:        temp.ID,
		Amount:    temp.Amount,
		Label:     temp.Label,
		Category:  temp.Category,
		Date:      temp.Date,
		CreatedAt: time.Time(temp.Timestamp),
	}
	return nil
}

// DecodeDocument decodes a ledger document. Missing top-level keys decode as
// empty sequences. Content after the document is an error.
func DecodeDocument(r io.Reader) (*Document, error) {
	var doc Document
	dec := json.NewDecoder(r)
	if err := dec.Decode(&doc); err != nil {
		if err == io.EOF {
			return nil, fmt.Errorf("empty document: %w", io.ErrUnexpectedEOF)
		}
		return nil, err
	}
	// a save would drop anything after the document.
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("unexpected content after the ledger document at offset %d", dec.InputOffset())
	}
	if doc.IncomeEntries == nil {
		doc.IncomeEntries = []IncomeEntry{}
	}
	if doc.ExpenseEntries == nil {
		doc.ExpenseEntries = []ExpenseEntry{}
	}
	return &doc, nil
}

// EncodeDocument writes the document as indented JSON.
func EncodeDocument(w io.Writer, doc *Document) error {
	out := Document{IncomeEntries: doc.IncomeEntries, ExpenseEntries: doc.ExpenseEntries}
	// always write both keys as arrays, never null.
	if out.IncomeEntries == nil {
		out.IncomeEntries = []IncomeEntry{}
	}
	if out.ExpenseEntries == nil {
		out.ExpenseEntries = []ExpenseEntry{}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if err := enc.Encode(&out); err != nil {
		return fmt.Errorf("failed to encode ledger: %w", err)
	}
	return nil
}
