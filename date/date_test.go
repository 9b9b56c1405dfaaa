package date

import (
	"testing"
	"time"
)

// TestTime asserts that time() is canonical and gives comparable times.
func TestTime(t *testing.T) {
	d1 := New(2025, 7, 31)
	d2 := New(2025, 7, 31)

	if d1.time() != d2.time() {
		// Note that usually time.Time are not comparable (there is a pointer
		// for the timezone) this test also checks that the property remains true.
		t.Errorf("invalid time() function same day gives two different time")
	}
}

func TestNewNormalizes(t *testing.T) {
	// Day zero is the last day of the previous month.
	got := New(2024, time.March, 0)
	want := New(2024, time.February, 29)
	if got != want {
		t.Errorf("New(2024, March, 0) = %v, want %v", got, want)
	}
}

func TestParse(t *testing.T) {
	testCases := []struct {
		in   string
		want Date
	}{
		{"2024-01-02", New(2024, time.January, 2)},
		{"2024-1-2", New(2024, time.January, 2)},
		{" 2024-12-31 ", New(2024, time.December, 31)},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}

	if _, err := Parse("02/01/2024"); err == nil {
		t.Errorf("Parse(%q) expected an error, got none", "02/01/2024")
	}
}

func TestParseRelative(t *testing.T) {
	today := Today()
	testCases := []struct {
		in   string
		want Date
	}{
		{"0d", today},
		{"-1d", today.Add(-1)},
		{"+2w", today.Add(14)},
		{"-1y", New(today.Year()-1, today.Month(), today.Day())},
	}
	for _, tc := range testCases {
		t.Run(tc.in, func(t *testing.T) {
			got, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) error: %v", tc.in, err)
			}
			if got != tc.want {
				t.Errorf("Parse(%q) = %v, want %v", tc.in, got, tc.want)
			}
		})
	}
}

func TestAddCrossesMonth(t *testing.T) {
	got := New(2024, time.January, 31).Add(1)
	want := New(2024, time.February, 1)
	if got != want {
		t.Errorf("Add(1) = %v, want %v", got, want)
	}
}

func TestUnixRoundTrip(t *testing.T) {
	d := New(2024, time.June, 15)
	if got := FromUnix(d.Unix()); got != d {
		t.Errorf("FromUnix(Unix()) = %v, want %v", got, d)
	}
}
