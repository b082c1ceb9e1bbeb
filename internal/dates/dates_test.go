package dates

import (
	"testing"
	"time"
)

func TestMidnight(t *testing.T) {
	in := time.Date(2024, 6, 10, 15, 42, 7, 99, time.Local)
	got := Midnight(in)
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("Midnight(%v) = %v, want %v", in, got, want)
	}
}

func TestSameDay(t *testing.T) {
	morning := time.Date(2024, 6, 10, 0, 0, 1, 0, time.Local)
	night := time.Date(2024, 6, 10, 23, 59, 59, 0, time.Local)
	nextDay := time.Date(2024, 6, 11, 0, 0, 0, 0, time.Local)

	if !SameDay(morning, night) {
		t.Error("expected morning and night of the same date to match")
	}
	if SameDay(night, nextDay) {
		t.Error("expected different dates not to match")
	}
}

func TestStartOfMonth(t *testing.T) {
	in := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	want := time.Date(2024, 6, 1, 0, 0, 0, 0, time.Local)
	if got := StartOfMonth(in); !got.Equal(want) {
		t.Errorf("StartOfMonth = %v, want %v", got, want)
	}
}

func TestStartOfYear(t *testing.T) {
	in := time.Date(2024, 6, 10, 12, 0, 0, 0, time.Local)
	want := time.Date(2024, 1, 1, 0, 0, 0, 0, time.Local)
	if got := StartOfYear(in); !got.Equal(want) {
		t.Errorf("StartOfYear = %v, want %v", got, want)
	}
}

func TestParseDay(t *testing.T) {
	got, err := ParseDay("2024-06-10")
	if err != nil {
		t.Fatalf("ParseDay unexpected error: %v", err)
	}
	want := time.Date(2024, 6, 10, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Errorf("ParseDay = %v, want %v", got, want)
	}

	if _, err := ParseDay("last tuesday"); err == nil {
		t.Error("expected error for unparseable date")
	}
}
