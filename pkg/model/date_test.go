package model

import (
	"encoding/json"
	"testing"
	"time"
)

func TestParseDate(t *testing.T) {
	d, err := ParseDate("2025-09-10")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Year() != 2025 || d.Month() != time.September || d.Day() != 10 {
		t.Errorf("parsed wrong date: %v", d)
	}
	if d.Location() != time.UTC {
		t.Errorf("expected UTC, got %v", d.Location())
	}
}

func TestParseDate_Invalid(t *testing.T) {
	invalid := []string{"", "2025-13-01", "2025-02-30", "10-09-2025", "2025/09/10", "not-a-date"}
	for _, s := range invalid {
		if _, err := ParseDate(s); err == nil {
			t.Errorf("expected error for %q", s)
		}
	}
}

func TestDate_JSONRoundTrip(t *testing.T) {
	d := NewDate(2025, time.September, 10)

	data, err := json.Marshal(d)
	if err != nil {
		t.Fatalf("marshal failed: %v", err)
	}
	if string(data) != `"2025-09-10"` {
		t.Errorf("expected \"2025-09-10\", got %s", data)
	}

	var decoded Date
	if err := json.Unmarshal(data, &decoded); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}
	if !decoded.Equal(d.Time) {
		t.Errorf("round trip changed the date: %v != %v", decoded, d)
	}
}

func TestDateOf_TruncatesToDay(t *testing.T) {
	instant := time.Date(2025, time.September, 10, 23, 59, 59, 0, time.UTC)
	d := DateOf(instant)

	if d.String() != "2025-09-10" {
		t.Errorf("expected 2025-09-10, got %s", d.String())
	}
	if d.Hour() != 0 || d.Minute() != 0 {
		t.Error("expected midnight after truncation")
	}
}

func TestDate_AddDays(t *testing.T) {
	d := NewDate(2025, time.September, 30)

	next := d.AddDays(1)
	if next.String() != "2025-10-01" {
		t.Errorf("expected month rollover to 2025-10-01, got %s", next.String())
	}

	prev := d.AddDays(-30)
	if prev.String() != "2025-08-31" {
		t.Errorf("expected 2025-08-31, got %s", prev.String())
	}
}

func TestDate_DaysUntil(t *testing.T) {
	a := NewDate(2025, time.September, 10)
	b := NewDate(2025, time.September, 12)

	if got := a.DaysUntil(b); got != 2 {
		t.Errorf("expected 2 days, got %d", got)
	}
	if got := b.DaysUntil(a); got != -2 {
		t.Errorf("expected -2 days, got %d", got)
	}
	if got := a.DaysUntil(a); got != 0 {
		t.Errorf("expected 0 days, got %d", got)
	}
}
