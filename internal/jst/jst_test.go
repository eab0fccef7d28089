package jst

import (
	"errors"
	"testing"
	"time"
)

func TestToReadable(t *testing.T) {
	tests := []struct {
		name string
		ts   string
		want string
	}{
		{
			name: "whole seconds",
			// 2023-01-01 00:00:00 UTC is 09:00:00 JST
			ts:   "1672531200",
			want: "2023-01-01 09:00:00",
		},
		{
			name: "fractional part ignored for display",
			ts:   "1672531200.123456",
			want: "2023-01-01 09:00:00",
		},
		{
			name: "crosses the date line into JST",
			// 2023-06-30 23:30:00 UTC is 2023-07-01 08:30:00 JST
			ts:   "1688167800.000100",
			want: "2023-07-01 08:30:00",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ToReadable(tt.ts)
			if err != nil {
				t.Fatalf("ToReadable(%q) returned error: %v", tt.ts, err)
			}
			if got != tt.want {
				t.Errorf("ToReadable(%q) = %q, want %q", tt.ts, got, tt.want)
			}
		})
	}
}

func TestToReadable_Deterministic(t *testing.T) {
	first, err := ToReadable("1700000000.654321")
	if err != nil {
		t.Fatalf("ToReadable returned error: %v", err)
	}
	for i := 0; i < 10; i++ {
		got, err := ToReadable("1700000000.654321")
		if err != nil {
			t.Fatalf("ToReadable returned error: %v", err)
		}
		if got != first {
			t.Fatalf("ToReadable not stable: got %q, want %q", got, first)
		}
	}
}

func TestToReadable_RoundTripDate(t *testing.T) {
	// Rendering then re-parsing the calendar portion recovers the same instant.
	ts := "1672531200"
	readable, err := ToReadable(ts)
	if err != nil {
		t.Fatalf("ToReadable returned error: %v", err)
	}

	parsed, err := time.ParseInLocation("2006-01-02 15:04:05", readable, Location)
	if err != nil {
		t.Fatalf("re-parsing %q failed: %v", readable, err)
	}
	if parsed.Unix() != 1672531200 {
		t.Errorf("round trip: got %d, want 1672531200", parsed.Unix())
	}
}

func TestToReadable_Malformed(t *testing.T) {
	for _, ts := range []string{"", "not-a-timestamp", "12345.abc", "."} {
		if _, err := ToReadable(ts); err == nil {
			t.Errorf("ToReadable(%q): expected error, got nil", ts)
		}
	}
}

func TestNewRange_Bounds(t *testing.T) {
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	r, err := NewRange("2023-01-01", "2023-01-02", now)
	if err != nil {
		t.Fatalf("NewRange returned error: %v", err)
	}

	if got, want := r.StartReadable(), "2023-01-01 00:00:00"; got != want {
		t.Errorf("StartReadable: got %q, want %q", got, want)
	}
	if got, want := r.EndReadable(), "2023-01-02 23:59:59"; got != want {
		t.Errorf("EndReadable: got %q, want %q", got, want)
	}

	// 2023-01-01 00:00:00 JST is 2022-12-31 15:00:00 UTC
	if got, want := r.Oldest(), "1672498800.000000"; got != want {
		t.Errorf("Oldest: got %q, want %q", got, want)
	}
	// 2023-01-02 23:59:59 JST
	if got, want := r.Latest(), "1672671599.000000"; got != want {
		t.Errorf("Latest: got %q, want %q", got, want)
	}
}

func TestNewRange_SameDay(t *testing.T) {
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	r, err := NewRange("2023-03-15", "2023-03-15", now)
	if err != nil {
		t.Fatalf("NewRange returned error: %v", err)
	}
	if r.End.Sub(r.Start) != 24*time.Hour-time.Second {
		t.Errorf("same-day range should span 23:59:59, got %v", r.End.Sub(r.Start))
	}
}

func TestNewRange_DefaultEndIsNow(t *testing.T) {
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	r, err := NewRange("2023-01-01", "", now)
	if err != nil {
		t.Fatalf("NewRange returned error: %v", err)
	}
	if !r.End.Equal(now) {
		t.Errorf("End: got %v, want %v", r.End, now)
	}
	if got, want := r.EndReadable(), "2023-06-01 21:00:00"; got != want {
		t.Errorf("EndReadable: got %q, want %q", got, want)
	}
}

func TestNewRange_Invalid(t *testing.T) {
	now := time.Date(2023, 6, 1, 12, 0, 0, 0, time.UTC)

	tests := []struct {
		name  string
		start string
		end   string
	}{
		{name: "malformed start", start: "01-01-2023", end: ""},
		{name: "not a calendar date", start: "2023-02-30", end: ""},
		{name: "malformed end", start: "2023-01-01", end: "tomorrow"},
		{name: "inverted range", start: "2023-05-02", end: "2023-05-01"},
		{name: "start after now with no end", start: "2031-01-01", end: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewRange(tt.start, tt.end, now)
			var dateErr *InvalidDateError
			if !errors.As(err, &dateErr) {
				t.Fatalf("NewRange(%q, %q) error = %v, want *InvalidDateError", tt.start, tt.end, err)
			}
		})
	}
}
