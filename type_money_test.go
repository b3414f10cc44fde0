package budget

import "testing"

func TestMoney_String(t *testing.T) {
	testCases := []struct {
		money Money
		want  string
	}{
		{USD(1500), "$1,500.00"},
		{USD(0.125), "$0.13"},
		{USD(-50), "-$50.00"},
	}
	for _, tc := range testCases {
		if got := tc.money.String(); got != tc.want {
			t.Errorf("%#v.String() = %q, want %q", tc.money, got, tc.want)
		}
	}
}

func TestMoney_SignedString(t *testing.T) {
	testCases := []struct {
		money Money
		want  string
	}{
		{USD(1200), "+$1,200.00"},
		{USD(0), "$0.00"},
		{USD(-50), "-$50.00"},
	}
	for _, tc := range testCases {
		if got := tc.money.SignedString(); got != tc.want {
			t.Errorf("%v.SignedString() = %q, want %q", tc.money, got, tc.want)
		}
	}
}

func TestMoney_Ratio(t *testing.T) {
	if got := USD(1200).Ratio(USD(1500)); !got.Equal(80) {
		t.Errorf("Ratio() = %v, want 80%%", got)
	}
	if got := USD(1200).Ratio(USD(0)); got != 0 {
		t.Errorf("Ratio() by zero = %v, want 0", got)
	}
}

func TestPercent_String(t *testing.T) {
	testCases := []struct {
		p    Percent
		want string
	}{
		{66.66666, "66.7%"},
		{33.33333, "33.3%"},
		{0, "0.0%"},
		{-12.5, "-12.5%"},
	}
	for _, tc := range testCases {
		if got := tc.p.String(); got != tc.want {
			t.Errorf("Percent(%v).String() = %q, want %q", float64(tc.p), got, tc.want)
		}
	}
}
