package validation

import (
	"testing"
	"time"
)

func TestTodayWindowBounds(t *testing.T) {
	now := time.Date(2024, 3, 15, 10, 30, 45, 123456789, ReferenceZone())
	window := TodayWindow(now)

	wantStart := time.Date(2024, 3, 15, 0, 0, 0, 0, ReferenceZone())
	wantEnd := time.Date(2024, 3, 15, 23, 59, 59, 999999000, ReferenceZone())

	if !window.Start.Equal(wantStart) {
		t.Errorf("Expected start %v, got %v", wantStart, window.Start)
	}
	if !window.End.Equal(wantEnd) {
		t.Errorf("Expected end %v, got %v", wantEnd, window.End)
	}
}

func TestTodayWindowSameDate(t *testing.T) {
	instants := []time.Time{
		time.Date(2024, 1, 1, 0, 0, 0, 0, ReferenceZone()),
		time.Date(2024, 6, 30, 23, 59, 59, 999999999, ReferenceZone()),
		time.Date(2024, 12, 31, 12, 0, 0, 0, ReferenceZone()),
	}

	for _, now := range instants {
		window := TodayWindow(now)

		sy, sm, sd := window.Start.Date()
		ey, em, ed := window.End.Date()
		ny, nm, nd := now.Date()

		if sy != ny || sm != nm || sd != nd {
			t.Errorf("Start date %v does not match input date %v", window.Start, now)
		}
		if ey != ny || em != nm || ed != nd {
			t.Errorf("End date %v does not match input date %v", window.End, now)
		}
		if window.Start.After(window.End) {
			t.Errorf("Start %v is after end %v", window.Start, window.End)
		}
	}
}

func TestWindowContainsBoundsInclusive(t *testing.T) {
	now := time.Date(2024, 3, 15, 12, 0, 0, 0, ReferenceZone())
	window := TodayWindow(now)

	if !window.Contains(window.Start) {
		t.Error("Expected window to contain its start bound")
	}
	if !window.Contains(window.End) {
		t.Error("Expected window to contain its end bound")
	}
	if window.Contains(window.Start.Add(-time.Nanosecond)) {
		t.Error("Expected window to exclude instants before start")
	}
	if window.Contains(window.End.Add(time.Nanosecond)) {
		t.Error("Expected window to exclude instants after end")
	}
}
