package date

import (
	"testing"
	"time"
)

func TestNewRange(t *testing.T) {
	testCases := []struct {
		name   string
		in     Date
		period Period
		want   Range
	}{
		{
			name:   "single day",
			in:     New(2025, time.September, 8),
			period: Daily,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 8)},
		},
		{
			name:   "a Wednesday",
			in:     New(2025, time.September, 10),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)},
		},
		{
			name:   "a Sunday closes the week",
			in:     New(2025, time.September, 14),
			period: Weekly,
			want:   Range{From: New(2025, time.September, 8), To: New(2025, time.September, 14)},
		},
		{
			name:   "a leap year",
			in:     New(2024, time.February, 15),
			period: Monthly,
			want:   Range{From: New(2024, time.February, 1), To: New(2024, time.February, 29)},
		},
		{
			name:   "Q2",
			in:     New(2025, time.May, 20),
			period: Quarterly,
			want:   Range{From: New(2025, time.April, 1), To: New(2025, time.June, 30)},
		},
		{
			name:   "year",
			in:     New(2025, time.September, 8),
			period: Yearly,
			want:   Range{From: New(2025, time.January, 1), To: New(2025, time.December, 31)},
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			if got := NewRange(tc.in, tc.period); got != tc.want {
				t.Errorf("NewRange(%v, %v) = %v, want %v", tc.in, tc.period, got, tc.want)
			}
		})
	}
}

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		in      string
		want    Period
		wantErr bool
	}{
		{"daily", Daily, false},
		{"weekly", Weekly, false},
		{"monthly", Monthly, false},
		{"quarterly", Quarterly, false},
		{"yearly", Yearly, false},
		{"unknown", Daily, true},
		{"day", Daily, false},
		{"week", Weekly, false},
		{" Month ", Monthly, false},
		{"quarter", Quarterly, false},
		{"year", Yearly, false},
	}

	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := ParsePeriod(tc.in)
			if (err != nil) != tc.wantErr {
				t.Errorf("ParsePeriod() error = %v, wantErr %v", err, tc.wantErr)
				return
			}
			if got != tc.want {
				t.Errorf("ParsePeriod() = %v, want %v", got, tc.want)
			}
		})
	}
}
