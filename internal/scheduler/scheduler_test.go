package scheduler

import (
	"testing"
	"time"
)

func TestCallbackDue(t *testing.T) {
	now := time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC)
	lookAhead := 15 * time.Minute

	due, err := callbackDue("2026-09-01", "10:10", now, lookAhead)
	if err != nil || !due {
		t.Fatalf("callback inside window: due=%v err=%v", due, err)
	}

	due, err = callbackDue("2026-09-01", "10:30", now, lookAhead)
	if err != nil || due {
		t.Fatalf("callback beyond window: due=%v err=%v", due, err)
	}

	// Overdue callbacks still surface.
	due, err = callbackDue("2026-08-31", "09:00", now, lookAhead)
	if err != nil || !due {
		t.Fatalf("overdue callback: due=%v err=%v", due, err)
	}

	// Date-only callbacks count from midnight.
	due, err = callbackDue("2026-09-01", "", now, lookAhead)
	if err != nil || !due {
		t.Fatalf("date-only callback: due=%v err=%v", due, err)
	}

	due, err = callbackDue("", "", now, lookAhead)
	if err != nil || due {
		t.Fatalf("empty date must not be due: due=%v err=%v", due, err)
	}

	if _, err = callbackDue("soon", "10:00", now, lookAhead); err == nil {
		t.Fatal("expected parse error for malformed date")
	}
}

func TestWithinQuietHours(t *testing.T) {
	at := func(hour, min int) time.Time {
		return time.Date(2026, 9, 1, hour, min, 0, 0, time.UTC)
	}

	if !withinQuietHours(at(23, 0), "21:00", "08:00") {
		t.Fatal("23:00 should be quiet in a cross-midnight window")
	}
	if !withinQuietHours(at(7, 30), "21:00", "08:00") {
		t.Fatal("07:30 should be quiet in a cross-midnight window")
	}
	if withinQuietHours(at(12, 0), "21:00", "08:00") {
		t.Fatal("noon should not be quiet")
	}

	if !withinQuietHours(at(13, 0), "12:00", "14:00") {
		t.Fatal("13:00 should be quiet in a same-day window")
	}
	if withinQuietHours(at(14, 0), "12:00", "14:00") {
		t.Fatal("quiet window end is exclusive")
	}

	if withinQuietHours(at(23, 0), "", "") {
		t.Fatal("empty bounds disable the quiet window")
	}
}
